package phonetic

import "unicode/utf8"

// aaSign is the written "a" sign attached by the short-a rule.
const aaSign = "া"

type unitKind uint8

const (
	unitConsonant unitKind = iota + 1
	unitVowel
	unitBoundary
	unitLiteral
)

// unit is one rendered output grapheme cluster. Vowel signs and y-phala
// are attached to the consonant unit in front of them.
type unit struct {
	text string
	sign string
	kind unitKind
}

func (u *unit) String() string { return u.text + u.sign }

// bare reports whether u is a consonant with no vowel sign attached.
func (u *unit) bare() bool { return u.kind == unitConsonant && u.sign == "" }

// rule is one entry of the scan table. A rule looks at the next length
// runes; match reports the rendering for that key and apply updates the
// output. Rules are tried in table order and the first match consumes
// its length.
type rule struct {
	name   string
	length int
	match  func(s *scan, key string) (string, bool)
	apply  func(s *scan, key, value string)
}

var rules = []rule{
	{name: "conjunct3", length: 3, match: matchConjunct, apply: pushConsonant},
	{name: "consonant3", length: 3, match: matchConsonant, apply: pushConsonant},
	{name: "conjunct2", length: 2, match: matchConjunct, apply: pushConsonant},
	{name: "consonant2", length: 2, match: matchConsonant, apply: pushConsonant},
	{name: "vowel2", length: 2, match: matchVowel, apply: placeVowel},
	{name: "ya-phala", length: 1, match: matchYaPhala, apply: applyYaPhala},
	{name: "consonant1", length: 1, match: matchConsonant, apply: pushConsonant},
	{name: "vowel1", length: 1, match: matchVowel, apply: placeVowel},
	{name: "punctuation", length: 1, match: matchPunctuation, apply: pushBoundary},
	{name: "literal", length: 1, match: matchAny, apply: pushLiteral},
}

// RuleNames lists the scan rules in priority order.
func RuleNames() []string {
	names := make([]string, len(rules))
	for i, r := range rules {
		names[i] = r.name
	}
	return names
}

// scan is the mutable state of one Render call.
type scan struct {
	t     *Tables
	text  []rune
	pos   int
	units []unit
}

// peek returns the n runes starting at from.
func (s *scan) peek(from, n int) (string, bool) {
	if from < 0 || from+n > len(s.text) {
		return "", false
	}
	return string(s.text[from : from+n]), true
}

func (s *scan) last() *unit {
	if len(s.units) == 0 {
		return nil
	}
	return &s.units[len(s.units)-1]
}

func (s *scan) atWordStart() bool {
	u := s.last()
	return u == nil || u.kind == unitBoundary
}

// step applies the first matching rule at the current position and
// returns its name.
func (s *scan) step() string {
	for _, r := range rules {
		key, ok := s.peek(s.pos, r.length)
		if !ok {
			continue
		}
		value, ok := r.match(s, key)
		if !ok {
			continue
		}
		r.apply(s, key, value)
		s.pos += r.length
		return r.name
	}
	// The literal rule always matches a single rune.
	panic("phonetic: no rule matched")
}

// consonantAhead reports whether the next meaningful rune after from
// starts a consonant or conjunct. Punctuation, numerals and unknown runes
// are skipped; a vowel or the end of the word stops the search.
func (s *scan) consonantAhead(from int) bool {
	for i := from; i < len(s.text); i++ {
		r := s.text[i]
		if isBoundary(r) {
			return false
		}
		if pair, ok := s.peek(i, 2); ok {
			if s.t.IsVowel(pair) {
				return false
			}
			if s.t.StartsPair(r) {
				if _, ok := s.t.Consonant(pair); ok {
					return true
				}
				if _, ok := s.t.Conjunct(pair); ok {
					return true
				}
			}
		}
		key := string(r)
		if _, ok := s.t.Consonant(key); ok {
			return true
		}
		if s.t.IsVowel(key) {
			return false
		}
	}
	return false
}

func matchConjunct(s *scan, key string) (string, bool)  { return s.t.Conjunct(key) }
func matchConsonant(s *scan, key string) (string, bool) { return s.t.Consonant(key) }

func matchVowel(s *scan, key string) (string, bool) {
	return s.t.Standalone(key)
}

func matchYaPhala(s *scan, key string) (string, bool) {
	if key != "y" || s.atWordStart() {
		return "", false
	}
	if u := s.last(); u.kind != unitConsonant {
		return "", false
	}
	return yaPhala, true
}

func matchPunctuation(s *scan, key string) (string, bool) {
	r, _ := utf8.DecodeRuneInString(key)
	return s.t.Punctuation(r)
}

func matchAny(_ *scan, key string) (string, bool) { return key, true }

func pushConsonant(s *scan, _, value string) {
	s.units = append(s.units, unit{text: value, kind: unitConsonant})
}

func pushBoundary(s *scan, _, value string) {
	s.units = append(s.units, unit{text: value, kind: unitBoundary})
}

func pushLiteral(s *scan, key, _ string) {
	r, _ := utf8.DecodeRuneInString(key)
	kind := unitLiteral
	if isBoundary(r) {
		kind = unitBoundary
	}
	s.units = append(s.units, unit{text: key, kind: kind})
}

// applyYaPhala drops any sign on the previous consonant and fuses the
// y-phala onto it. The unit stays bare so a following vowel attaches.
func applyYaPhala(s *scan, _, value string) {
	u := s.last()
	u.text = stripSign(u.text) + value
	u.sign = ""
}

func placeVowel(s *scan, key, standalone string) {
	prev := s.last()
	if prev == nil || !prev.bare() {
		s.units = append(s.units, unit{text: standalone, kind: unitVowel})
		return
	}

	switch key {
	case "a":
		placeShortA(s, prev)
	case "o":
		placeO(s, prev)
	default:
		dep, _ := s.t.Dependent(key)
		prev.sign = dep
	}
}

// placeShortA decides between the inherent vowel and a written "a"
// sign. Before a conjunct the inherent vowel is kept; before any other
// consonant the sign is written; at word end it is written unless the
// consonant is in the implicit-a set.
func placeShortA(s *scan, prev *unit) {
	if s.consonantAhead(s.pos + 1) {
		if next, ok := s.peek(s.pos+1, 2); ok {
			if _, ok := s.t.Conjunct(next); ok {
				return
			}
		}
		prev.sign = aaSign
		return
	}
	if !implicitA.has(prev.text) {
		prev.sign = aaSign
	}
}

// placeO writes the "o" sign mid-word, and at word end unless the
// consonant is in the no-o set.
func placeO(s *scan, prev *unit) {
	dep, _ := s.t.Dependent("o")
	if s.consonantAhead(s.pos + 1) {
		prev.sign = dep
		return
	}
	if !noO.has(prev.text) {
		prev.sign = dep
	}
}
