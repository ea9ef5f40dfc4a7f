// Package slug derives stable string identifiers from free-form text.
// Import rows without an explicit source id get one derived from their
// country code and name, so repeated imports of the same file key the
// same records.
package slug

import (
	"fmt"
	"regexp"
	"strings"
	"time"
)

var nonAlnum = regexp.MustCompile(`[^a-z0-9]+`)

// Make lowercases the input, collapses every run of characters outside
// [a-z0-9] into a single hyphen and strips leading/trailing hyphens.
// An input that slugifies to nothing yields a time-based token so the
// result is always non-empty.
func Make(value string) string {
	s := strings.ToLower(strings.TrimSpace(value))
	s = nonAlnum.ReplaceAllString(s, "-")
	s = strings.Trim(s, "-")
	if s == "" {
		return fmt.Sprintf("row-%d", time.Now().UnixNano())
	}
	return s
}

// DeriveSourceID builds the import source id for a row that carries
// none: the slug of alpha2+name plus the row number as discriminator.
// The discriminator keeps ids unique when two rows share a name.
func DeriveSourceID(alpha2, name string, rowNumber int) string {
	return fmt.Sprintf("%s-%d", Make(alpha2+" "+name), rowNumber)
}

// LegacySourceID is the derivation an older import used: the bare slug
// of alpha2+name, with no row discriminator. Kept so records imported
// under the old scheme are still matched (and re-keyed) by new imports.
func LegacySourceID(alpha2, name string) string {
	return Make(alpha2 + " " + name)
}
