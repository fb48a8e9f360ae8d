package mapper

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Lovely-Solutions-LLC/AppEvents/internal/domain"
)

// fakeCountries resolves from a fixed table, mirroring the production
// resolver's unknown-code behavior.
type fakeCountries struct {
	names map[string]string
}

func (f *fakeCountries) CountryName(code string) string {
	return f.names[code]
}

func newTestMapper() *Mapper {
	return NewMapper(&fakeCountries{names: map[string]string{
		"US": "United States",
		"DE": "Germany",
	}})
}

func TestMapper_Map_FullEvent(t *testing.T) {
	m := newTestMapper()

	event := &domain.LifecycleEvent{
		Kind:          domain.KindInstall,
		ApplicationID: "10142077",
		AccountID:     "555",
		AccountName:   "Acme Inc",
		AccountSlug:   "acme",
		UserName:      "Jane Doe",
		UserEmail:     "jane@acme.test",
		UserCountry:   "US",
		UserCluster:   "saas",
		AccountTier:   "pro",
		PlanID:        "plan_5",
		MaxUsers:      "25",
		Timestamp:     "2024-01-01T00:00:00Z",
	}

	columns := m.Map(event)

	assert.Equal(t, "Jane", columns[domain.ColumnFirstName])
	assert.Equal(t, "Doe", columns[domain.ColumnLastName])
	assert.Equal(t, domain.EmailValue{Email: "jane@acme.test", Text: "jane@acme.test"}, columns[domain.ColumnEmail])
	assert.Equal(t, domain.DateValue{Date: "2024-01-01"}, columns[domain.ColumnTimestamp])
	assert.Equal(t, "acme", columns[domain.ColumnSlug])
	assert.Equal(t, "Acme Inc", columns[domain.ColumnCompanyName])
	assert.Equal(t, "10142077", columns[domain.ColumnAppID])
	assert.Equal(t, "saas", columns[domain.ColumnCluster])
	assert.Equal(t, "25", columns[domain.ColumnMaxUsers])
	assert.Equal(t, "555", columns[domain.ColumnAccountID])
	assert.Equal(t, "plan_5", columns[domain.ColumnPlanID])
	assert.Equal(t, domain.CountryValue{CountryCode: "US", CountryName: "United States"}, columns[domain.ColumnCountry])
	assert.Equal(t, domain.LabelValue{Label: "pro"}, columns[domain.ColumnAccountTier])
}

func TestMapper_Map_MissingFieldsDefault(t *testing.T) {
	m := newTestMapper()

	columns := m.Map(&domain.LifecycleEvent{Kind: domain.KindInstall})

	assert.Equal(t, "", columns[domain.ColumnFirstName])
	assert.Equal(t, "", columns[domain.ColumnLastName])
	assert.Equal(t, domain.DateValue{Date: ""}, columns[domain.ColumnTimestamp])
	assert.Equal(t, "", columns[domain.ColumnMaxUsers])
	assert.Equal(t, "", columns[domain.ColumnAccountID])
	assert.Equal(t, "", columns[domain.ColumnPlanID])
	assert.Equal(t, domain.LabelValue{Label: "free"}, columns[domain.ColumnAccountTier])
}

func TestMapper_Map_TierIsLowercasedNotValidated(t *testing.T) {
	m := newTestMapper()

	// The mapper lowercases and defaults the tier but leaves closed-list
	// validation to the create path.
	columns := m.Map(&domain.LifecycleEvent{AccountTier: "Platinum"})
	assert.Equal(t, domain.LabelValue{Label: "platinum"}, columns[domain.ColumnAccountTier])

	columns = m.Map(&domain.LifecycleEvent{AccountTier: "  "})
	assert.Equal(t, domain.LabelValue{Label: "free"}, columns[domain.ColumnAccountTier])
}

func TestMapper_Map_UnknownCountry(t *testing.T) {
	m := newTestMapper()

	columns := m.Map(&domain.LifecycleEvent{UserCountry: "ZZ"})

	assert.Equal(t, domain.CountryValue{CountryCode: "ZZ", CountryName: ""}, columns[domain.ColumnCountry])
}

func TestSplitName(t *testing.T) {
	tests := []struct {
		name      string
		wantFirst string
		wantLast  string
	}{
		{"Jane Doe", "Jane", "Doe"},
		{"Jane", "Jane", ""},
		{"", "", ""},
		{"  Jane   van der Berg ", "Jane", "van der Berg"},
	}

	for _, tt := range tests {
		first, last := SplitName(tt.name)
		assert.Equal(t, tt.wantFirst, first, "input %q", tt.name)
		assert.Equal(t, tt.wantLast, last, "input %q", tt.name)
	}
}

func TestDatePart(t *testing.T) {
	assert.Equal(t, "2024-01-01", datePart("2024-01-01T00:00:00Z"))
	assert.Equal(t, "2024-01-01", datePart("2024-01-01"))
	assert.Equal(t, "", datePart(""))
}
