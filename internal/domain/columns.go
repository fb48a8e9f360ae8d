package domain

import "strings"

// Column IDs of the destination board. These are the board's own column
// identifiers and change only when the board schema changes.
const (
	ColumnEmail       = "email__1"
	ColumnFirstName   = "text8__1"
	ColumnLastName    = "text9__1"
	ColumnTimestamp   = "date4"
	ColumnSlug        = "text__1"
	ColumnCompanyName = "text1__1"
	ColumnAppID       = "text3__1"
	ColumnCluster     = "text0__1"
	ColumnMaxUsers    = "text7__1"
	ColumnAccountID   = "text2__1"
	ColumnPlanID      = "text21__1"
	ColumnCountry     = "text6__1"
	ColumnAccountTier = "status__1"
	ColumnStatus      = "status"
)

// ColumnValueSet maps column IDs to their typed values. Plain text columns
// hold strings; structured columns hold one of the *Value types below, which
// marshal to the JSON shapes the board API expects.
type ColumnValueSet map[string]any

// EmailValue fills an email column.
type EmailValue struct {
	Email string `json:"email"`
	Text  string `json:"text"`
}

// DateValue fills a date column. An empty Date clears the column.
type DateValue struct {
	Date string `json:"date"`
}

// LabelValue fills a status column by label name.
type LabelValue struct {
	Label string `json:"label"`
}

// CountryValue fills a country column.
type CountryValue struct {
	CountryCode string `json:"countryCode"`
	CountryName string `json:"countryName"`
}

// Status labels written by the dispatcher.
const (
	StatusUninstalled           = "Uninstalled"
	StatusSubscriptionCreated   = "Subscription Created"
	StatusSubscriptionCancelled = "Subscription Cancelled"
	StatusSubscriptionRenewed   = "Subscription Renewed"
)

// DefaultAccountTier is applied whenever the inbound tier is absent or not in
// the accepted set.
const DefaultAccountTier = "free"

var acceptedTiers = map[string]struct{}{
	"pro":        {},
	"standard":   {},
	"enterprise": {},
	"free":       {},
	"basic":      {},
}

// ValidAccountTier reports whether label is one of the accepted tier labels.
// Matching is case-insensitive; the accepted set is closed.
func ValidAccountTier(label string) bool {
	_, ok := acceptedTiers[strings.ToLower(label)]
	return ok
}
