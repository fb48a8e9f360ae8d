package countries

import (
	"strings"

	countrydb "github.com/biter777/countries"
)

// Resolver translates an ISO country code into a display name. Implementations
// must be safe for concurrent use and must treat unknown codes as a lookup
// miss, never an error.
type Resolver interface {
	CountryName(code string) string
}

// ISOResolver resolves codes against the embedded ISO 3166 database.
type ISOResolver struct{}

// NewISOResolver returns the production resolver.
func NewISOResolver() *ISOResolver {
	return &ISOResolver{}
}

// CountryName returns the display name for an alpha-2/alpha-3 code, or ""
// when the code is empty or unrecognized.
func (r *ISOResolver) CountryName(code string) string {
	code = strings.TrimSpace(code)
	if code == "" {
		return ""
	}
	cc := countrydb.ByName(code)
	if cc == countrydb.Unknown {
		return ""
	}
	return cc.String()
}
