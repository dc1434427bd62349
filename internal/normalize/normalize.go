// Package normalize canonicalizes user-entered names for comparison.
package normalize

import (
	"strings"

	"golang.org/x/text/unicode/norm"
)

// Name canonicalizes a tag or ingredient name: Unicode NFC, leading and
// trailing whitespace trimmed, internal runs of whitespace collapsed to a
// single space. Display casing is preserved, so "Thai Basil" and
// "Thai  Basil " are the same name but "thai basil" is not.
func Name(s string) string {
	s = norm.NFC.String(s)
	return strings.Join(strings.Fields(s), " ")
}
