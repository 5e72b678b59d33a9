package table

import (
	"regexp"
	"strings"
	"unicode"
)

var tagUnsafe = regexp.MustCompile(`[^A-Za-z0-9._-]+`)

// SanitizeTag turns a column name into a valid XML element name while
// keeping it readable for the Power Query consumers downstream. Runs of
// forbidden characters collapse to a single underscore, and names that do
// not start with a letter get a "col_" prefix.
func SanitizeTag(name string) string {
	s := tagUnsafe.ReplaceAllString(strings.TrimSpace(name), "_")
	if s == "" || !unicode.IsLetter(rune(s[0])) {
		s = "col_" + s
	}
	return s
}
