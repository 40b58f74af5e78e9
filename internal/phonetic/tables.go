package phonetic

import (
	"errors"
	"fmt"
	"unicode/utf8"
)

// MaxKeyLen is the longest Romanized key any table may carry.
const MaxKeyLen = 3

const (
	maxVowelKeyLen    = 2
	minConjunctKeyLen = 2
)

// Table construction errors.
var (
	ErrKeyLength      = errors.New("key length out of range")
	ErrDuplicateKey   = errors.New("duplicate key")
	ErrOverlappingKey = errors.New("key present in more than one category")
	ErrEmptyValue     = errors.New("empty value")
)

// Entry maps a Romanized key to its Bangla rendering.
type Entry struct {
	Key   string
	Value string
}

// Vowel carries both forms of a vowel. Dependent may be empty, meaning
// the vowel is inherent in the preceding consonant.
type Vowel struct {
	Key        string
	Standalone string
	Dependent  string
}

// TableSet is the raw input to NewTables.
type TableSet struct {
	Vowels      []Vowel
	Consonants  []Entry
	Conjuncts   []Entry
	Punctuation []Entry
}

// category identifies which table a key belongs to.
type category uint8

const (
	catNone category = iota
	catVowel
	catConsonant
	catConjunct
	catPunctuation
)

func (c category) String() string {
	switch c {
	case catVowel:
		return "vowel"
	case catConsonant:
		return "consonant"
	case catConjunct:
		return "conjunct"
	case catPunctuation:
		return "punctuation"
	default:
		return "none"
	}
}

// Tables is the immutable set of mapping tables consulted by the
// Transducer. It is safe for concurrent use once built.
type Tables struct {
	standalone map[string]string
	dependent  map[string]string

	// byLen[n] holds the keys of length n for each category.
	consonants [MaxKeyLen + 1]map[string]string
	conjuncts  [MaxKeyLen + 1]map[string]string
	vowels     [MaxKeyLen + 1]map[string]struct{}

	punctuation map[rune]string

	// pairs indexes 2-rune consonant and conjunct keys by first rune.
	pairs map[rune][]string

	// consonantValues holds every consonant and conjunct rendering.
	consonantValues map[string]struct{}
}

// NewTables validates set and builds the length-partitioned tables.
// Every key must appear in exactly one category and have a length some
// scan rule looks up: vowels 1-2 runes, consonants 1-3, conjuncts 2-3,
// punctuation exactly 1.
func NewTables(set TableSet) (*Tables, error) {
	t := &Tables{
		standalone:      make(map[string]string, len(set.Vowels)),
		dependent:       make(map[string]string, len(set.Vowels)),
		punctuation:     make(map[rune]string, len(set.Punctuation)),
		pairs:           make(map[rune][]string),
		consonantValues: make(map[string]struct{}),
	}
	for n := 1; n <= MaxKeyLen; n++ {
		t.consonants[n] = make(map[string]string)
		t.conjuncts[n] = make(map[string]string)
		t.vowels[n] = make(map[string]struct{})
	}

	seen := make(map[string]category)
	claim := func(key string, cat category, minLen, maxLen int) (int, error) {
		n := utf8.RuneCountInString(key)
		if n < minLen || n > maxLen {
			return 0, fmt.Errorf("%s %q: %w", cat, key, ErrKeyLength)
		}
		if prev, ok := seen[key]; ok {
			if prev == cat {
				return 0, fmt.Errorf("%s %q: %w", cat, key, ErrDuplicateKey)
			}
			return 0, fmt.Errorf("%s %q already a %s: %w", cat, key, prev, ErrOverlappingKey)
		}
		seen[key] = cat
		return n, nil
	}

	for _, v := range set.Vowels {
		n, err := claim(v.Key, catVowel, 1, maxVowelKeyLen)
		if err != nil {
			return nil, err
		}
		if v.Standalone == "" {
			return nil, fmt.Errorf("vowel %q standalone form: %w", v.Key, ErrEmptyValue)
		}
		t.standalone[v.Key] = v.Standalone
		t.dependent[v.Key] = v.Dependent
		t.vowels[n][v.Key] = struct{}{}
	}

	add := func(entries []Entry, cat category, minLen int, dst *[MaxKeyLen + 1]map[string]string) error {
		for _, e := range entries {
			n, err := claim(e.Key, cat, minLen, MaxKeyLen)
			if err != nil {
				return err
			}
			if e.Value == "" {
				return fmt.Errorf("%s %q: %w", cat, e.Key, ErrEmptyValue)
			}
			dst[n][e.Key] = e.Value
			t.consonantValues[e.Value] = struct{}{}
			if n == 2 {
				first, _ := utf8.DecodeRuneInString(e.Key)
				t.pairs[first] = append(t.pairs[first], e.Key)
			}
		}
		return nil
	}
	if err := add(set.Consonants, catConsonant, 1, &t.consonants); err != nil {
		return nil, err
	}
	if err := add(set.Conjuncts, catConjunct, minConjunctKeyLen, &t.conjuncts); err != nil {
		return nil, err
	}

	for _, p := range set.Punctuation {
		if _, err := claim(p.Key, catPunctuation, 1, 1); err != nil {
			return nil, err
		}
		if p.Value == "" {
			return nil, fmt.Errorf("punctuation %q: %w", p.Key, ErrEmptyValue)
		}
		r, _ := utf8.DecodeRuneInString(p.Key)
		t.punctuation[r] = p.Value
	}

	return t, nil
}

// Consonant returns the rendering of a consonant key.
func (t *Tables) Consonant(key string) (string, bool) {
	n := utf8.RuneCountInString(key)
	if n < 1 || n > MaxKeyLen {
		return "", false
	}
	v, ok := t.consonants[n][key]
	return v, ok
}

// Conjunct returns the rendering of a conjunct key.
func (t *Tables) Conjunct(key string) (string, bool) {
	n := utf8.RuneCountInString(key)
	if n < 1 || n > MaxKeyLen {
		return "", false
	}
	v, ok := t.conjuncts[n][key]
	return v, ok
}

// IsVowel reports whether key is a vowel key.
func (t *Tables) IsVowel(key string) bool {
	_, ok := t.standalone[key]
	return ok
}

// Standalone returns the independent form of a vowel.
func (t *Tables) Standalone(key string) (string, bool) {
	v, ok := t.standalone[key]
	return v, ok
}

// Dependent returns the vowel sign for key. The sign may be empty for
// the inherent vowel, so callers must check ok.
func (t *Tables) Dependent(key string) (string, bool) {
	v, ok := t.dependent[key]
	return v, ok
}

// Punctuation returns the substitution for a punctuation or numeral rune.
func (t *Tables) Punctuation(r rune) (string, bool) {
	v, ok := t.punctuation[r]
	return v, ok
}

// StartsPair reports whether r begins any 2-rune consonant or conjunct key.
func (t *Tables) StartsPair(r rune) bool {
	return len(t.pairs[r]) > 0
}

// Pairs returns the 2-rune consonant and conjunct keys starting with r.
func (t *Tables) Pairs(r rune) []string {
	keys := t.pairs[r]
	out := make([]string, len(keys))
	copy(out, keys)
	return out
}

// IsConsonantValue reports whether s is exactly a consonant or conjunct
// rendering with nothing attached.
func (t *Tables) IsConsonantValue(s string) bool {
	_, ok := t.consonantValues[s]
	return ok
}

// Len returns the number of keys per category.
func (t *Tables) Len() (vowels, consonants, conjuncts, punctuation int) {
	for n := 1; n <= MaxKeyLen; n++ {
		vowels += len(t.vowels[n])
		consonants += len(t.consonants[n])
		conjuncts += len(t.conjuncts[n])
	}
	return vowels, consonants, conjuncts, len(t.punctuation)
}
