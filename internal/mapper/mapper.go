package mapper

import (
	"strings"

	"github.com/Lovely-Solutions-LLC/AppEvents/internal/countries"
	"github.com/Lovely-Solutions-LLC/AppEvents/internal/domain"
)

// Mapper builds the full column value set for a lifecycle event. Map is a
// pure function of the event: every missing or malformed field degrades to an
// empty value instead of failing, so a partial payload still produces a
// usable item.
type Mapper struct {
	countries countries.Resolver
}

// NewMapper creates a mapper using the given country lookup.
func NewMapper(resolver countries.Resolver) *Mapper {
	return &Mapper{countries: resolver}
}

// Map translates a lifecycle event into the board's column vocabulary.
// The account tier is defaulted and lowercased here; validating it against
// the accepted label set is the create path's job, not the mapper's.
func (m *Mapper) Map(event *domain.LifecycleEvent) domain.ColumnValueSet {
	firstName, lastName := SplitName(event.UserName)

	tier := strings.ToLower(strings.TrimSpace(event.AccountTier))
	if tier == "" {
		tier = domain.DefaultAccountTier
	}

	return domain.ColumnValueSet{
		domain.ColumnEmail:       domain.EmailValue{Email: event.UserEmail, Text: event.UserEmail},
		domain.ColumnFirstName:   firstName,
		domain.ColumnLastName:    lastName,
		domain.ColumnTimestamp:   domain.DateValue{Date: datePart(event.Timestamp)},
		domain.ColumnSlug:        event.AccountSlug,
		domain.ColumnCompanyName: event.AccountName,
		domain.ColumnAppID:       event.ApplicationID,
		domain.ColumnCluster:     event.UserCluster,
		domain.ColumnMaxUsers:    event.MaxUsers,
		domain.ColumnAccountID:   event.AccountID,
		domain.ColumnPlanID:      event.PlanID,
		domain.ColumnCountry: domain.CountryValue{
			CountryCode: event.UserCountry,
			CountryName: m.countries.CountryName(event.UserCountry),
		},
		domain.ColumnAccountTier: domain.LabelValue{Label: tier},
	}
}

// SplitName splits a display name into first and last name. The first
// whitespace-separated token is the first name; everything after it is the
// last name. A missing name yields two empty strings.
func SplitName(name string) (string, string) {
	fields := strings.Fields(name)
	if len(fields) == 0 {
		return "", ""
	}
	return fields[0], strings.Join(fields[1:], " ")
}

// datePart extracts the calendar date of an ISO-8601 timestamp. A missing
// timestamp maps to an empty date, which clears the column rather than
// rejecting the event.
func datePart(timestamp string) string {
	if timestamp == "" {
		return ""
	}
	date, _, _ := strings.Cut(timestamp, "T")
	return date
}
