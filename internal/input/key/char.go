package key

import (
	"github.com/rivo/uniseg"
	"golang.org/x/text/unicode/norm"
)

// sameCharacter compares host-resolved text against a required character.
// want must be exactly one grapheme cluster; canonically equivalent forms
// (precomposed vs combining sequence) compare equal.
func sameCharacter(got, want string) bool {
	if got == "" || want == "" {
		return false
	}
	if got == want {
		return uniseg.GraphemeClusterCount(want) == 1
	}
	g, w := norm.NFC.String(got), norm.NFC.String(want)
	return g == w && uniseg.GraphemeClusterCount(w) == 1
}

// IsSingleCharacter reports whether s is exactly one user-perceived character.
func IsSingleCharacter(s string) bool {
	return uniseg.GraphemeClusterCount(s) == 1
}
