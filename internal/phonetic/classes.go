package phonetic

import (
	"strings"
	"unicode"
)

// graphemeSet is a fixed classification set of rendered graphemes.
type graphemeSet map[string]struct{}

func newGraphemeSet(items ...string) graphemeSet {
	s := make(graphemeSet, len(items))
	for _, it := range items {
		s[it] = struct{}{}
	}
	return s
}

func (s graphemeSet) has(g string) bool {
	_, ok := s[g]
	return ok
}

var (
	// implicitA holds consonants that keep their inherent vowel at word
	// end instead of taking a written "a" sign.
	implicitA = newGraphemeSet("ঘ", "ঙ", "ণ", "ঞ", "ড", "ঢ")

	// noO holds consonants that never take a written "o" sign at word end.
	noO = newGraphemeSet("ঘ")

	// vowelSigns are the dependent signs stripped before y-phala.
	vowelSigns = []string{"া", "ি", "ী", "ু", "ূ", "ৃ", "ে", "ৈ", "ো", "ৌ"}
)

// yaPhala is the virama + ya sequence fused onto a consonant.
const yaPhala = "্য"

// stripSign removes a trailing dependent vowel sign from a rendered unit.
func stripSign(s string) string {
	for _, v := range vowelSigns {
		if strings.HasSuffix(s, v) {
			return strings.TrimSuffix(s, v)
		}
	}
	return s
}

// isBoundary reports whether r ends a word for the scan.
func isBoundary(r rune) bool {
	return unicode.IsSpace(r)
}
