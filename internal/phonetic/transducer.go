// Package phonetic converts Romanized Bangla keystrokes into Bangla script.
//
// A Transducer renders a whole buffer at a time: an exact whole-word
// override wins outright, otherwise the lower-cased buffer is scanned left
// to right through an ordered rule table (longest key first) with
// context-sensitive vowel placement. Tables and overrides are immutable
// and may be shared by any number of goroutines.
package phonetic

import (
	"errors"
	"strings"
	"unicode/utf8"
)

// Transducer renders raw Romanized buffers. It holds no per-call state.
type Transducer struct {
	tables    *Tables
	overrides *Overrides
}

// New returns a Transducer over the given tables. overrides may be nil.
func New(tables *Tables, overrides *Overrides) (*Transducer, error) {
	if tables == nil {
		return nil, errors.New("phonetic: nil tables")
	}
	return &Transducer{tables: tables, overrides: overrides}, nil
}

// NewDefault returns a Transducer over the built-in tables and overrides.
func NewDefault() (*Transducer, error) {
	t, o, err := Default()
	if err != nil {
		return nil, err
	}
	return New(t, o)
}

// Tables returns the mapping tables in use.
func (tr *Transducer) Tables() *Tables { return tr.tables }

// Overrides returns the whole-word overrides in use.
func (tr *Transducer) Overrides() *Overrides { return tr.overrides }

// Render returns the Bangla rendering of buffer. It is total: runes no
// table knows are copied through unchanged, and so are bytes that are not
// valid UTF-8. An invalid byte ends the word before it.
func (tr *Transducer) Render(buffer string) string {
	if utf8.ValidString(buffer) {
		return tr.render(buffer)
	}
	var b strings.Builder
	eachValid(buffer, func(seg string, valid bool) {
		if valid {
			b.WriteString(tr.render(seg))
		} else {
			b.WriteString(seg)
		}
	})
	return b.String()
}

func (tr *Transducer) render(buffer string) string {
	text := strings.ToLower(buffer)
	if v, ok := tr.overrides.Lookup(text); ok {
		return v
	}
	s := tr.run(text, nil)
	return s.output()
}

// eachValid splits s into maximal runs of valid UTF-8 and runs of invalid
// bytes, in order.
func eachValid(s string, fn func(seg string, valid bool)) {
	start := 0
	for i := 0; i < len(s); {
		r, size := utf8.DecodeRuneInString(s[i:])
		if r != utf8.RuneError || size > 1 {
			i += size
			continue
		}
		if start < i {
			fn(s[start:i], true)
		}
		j := i + 1
		for j < len(s) {
			if r, size := utf8.DecodeRuneInString(s[j:]); r != utf8.RuneError || size > 1 {
				break
			}
			j++
		}
		fn(s[i:j], false)
		i, start = j, j
	}
	if start < len(s) {
		fn(s[start:], true)
	}
}

// Match records one rule application.
type Match struct {
	Rule  string
	Input string
}

// Explain renders buffer and reports which rule consumed each part of
// it. An override hit is reported as a single "override" match and
// invalid UTF-8 as a "literal" match.
func (tr *Transducer) Explain(buffer string) (string, []Match) {
	var (
		b       strings.Builder
		matches []Match
	)
	eachValid(buffer, func(seg string, valid bool) {
		if !valid {
			b.WriteString(seg)
			matches = append(matches, Match{Rule: "literal", Input: seg})
			return
		}
		text := strings.ToLower(seg)
		if v, ok := tr.overrides.Lookup(text); ok {
			b.WriteString(v)
			matches = append(matches, Match{Rule: "override", Input: text})
			return
		}
		s := tr.run(text, func(name string, from, to int, src []rune) {
			matches = append(matches, Match{Rule: name, Input: string(src[from:to])})
		})
		b.WriteString(s.output())
	})
	return b.String(), matches
}

func (tr *Transducer) run(text string, observe func(rule string, from, to int, src []rune)) *scan {
	s := &scan{t: tr.tables, text: []rune(text)}
	s.units = make([]unit, 0, len(s.text))
	for s.pos < len(s.text) {
		from := s.pos
		name := s.step()
		if observe != nil {
			observe(name, from, s.pos, s.text)
		}
	}
	return s
}

func (s *scan) output() string {
	var b strings.Builder
	for i := range s.units {
		b.WriteString(s.units[i].String())
	}
	return b.String()
}
