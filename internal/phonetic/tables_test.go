package phonetic

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuiltinTablesValid(t *testing.T) {
	tables, overrides, err := Default()
	require.NoError(t, err)
	require.NotNil(t, tables)
	require.NotNil(t, overrides)

	vowels, consonants, conjuncts, punct := tables.Len()
	assert.Equal(t, len(builtinVowels), vowels)
	assert.Equal(t, len(builtinConsonants), consonants)
	assert.Equal(t, len(builtinConjuncts), conjuncts)
	assert.Equal(t, len(builtinPunctuation), punct)
	assert.Equal(t, len(builtinOverrides), overrides.Len())
}

func TestDefaultIsShared(t *testing.T) {
	t1, o1 := MustDefault()
	t2, o2 := MustDefault()
	assert.Same(t, t1, t2)
	assert.Same(t, o1, o2)
}

func TestVowelFormsPaired(t *testing.T) {
	tables, _ := MustDefault()
	for _, v := range builtinVowels {
		s, ok := tables.Standalone(v.Key)
		require.True(t, ok, v.Key)
		assert.NotEmpty(t, s, v.Key)
		_, ok = tables.Dependent(v.Key)
		assert.True(t, ok, "vowel %q has no dependent form", v.Key)
	}
	dep, ok := tables.Dependent("a")
	assert.True(t, ok)
	assert.Empty(t, dep, "short a is inherent")
}

func TestLookupByLength(t *testing.T) {
	tables, _ := MustDefault()

	tests := []struct {
		key  string
		want string
		cat  string
	}{
		{"k", "ক", "consonant"},
		{"kh", "খ", "consonant"},
		{"rrh", "ঢ়", "consonant"},
		{"kr", "ক্র", "conjunct"},
		{"ksh", "ক্ষ", "conjunct"},
		{"tth", "ত্থ", "conjunct"},
		{"rh", "রহ", "conjunct"},
		{"vh", "ভ", "conjunct"},
	}
	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			var got string
			var ok bool
			if tt.cat == "consonant" {
				got, ok = tables.Consonant(tt.key)
			} else {
				got, ok = tables.Conjunct(tt.key)
			}
			require.True(t, ok)
			assert.Equal(t, tt.want, got)
		})
	}

	_, ok := tables.Consonant("")
	assert.False(t, ok)
	_, ok = tables.Conjunct("abcd")
	assert.False(t, ok)
	_, ok = tables.Consonant("K")
	assert.False(t, ok, "upper-case keys are not carried")
}

func TestPairIndex(t *testing.T) {
	tables, _ := MustDefault()

	assert.True(t, tables.StartsPair('k'))
	assert.True(t, tables.StartsPair('s'))
	assert.False(t, tables.StartsPair('a'))
	assert.False(t, tables.StartsPair('z'))

	pairs := tables.Pairs('k')
	assert.Contains(t, pairs, "kh")
	assert.Contains(t, pairs, "kr")
	assert.NotContains(t, pairs, "ksh")

	// Callers get a copy.
	pairs[0] = "zz"
	assert.NotContains(t, tables.Pairs('k'), "zz")
}

func TestPunctuation(t *testing.T) {
	tables, _ := MustDefault()

	got, ok := tables.Punctuation('.')
	require.True(t, ok)
	assert.Equal(t, "।", got)

	got, ok = tables.Punctuation('7')
	require.True(t, ok)
	assert.Equal(t, "৭", got)

	for _, r := range "[]{}" {
		got, ok = tables.Punctuation(r)
		require.True(t, ok)
		assert.Equal(t, string(r), got)
	}
}

func TestNewTablesRejects(t *testing.T) {
	tests := []struct {
		name string
		set  TableSet
		want error
	}{
		{
			name: "duplicate consonant",
			set:  TableSet{Consonants: []Entry{{"k", "ক"}, {"k", "খ"}}},
			want: ErrDuplicateKey,
		},
		{
			name: "consonant also conjunct",
			set: TableSet{
				Consonants: []Entry{{"rh", "ড়"}},
				Conjuncts:  []Entry{{"rh", "রহ"}},
			},
			want: ErrOverlappingKey,
		},
		{
			name: "vowel also consonant",
			set: TableSet{
				Vowels:     []Vowel{{Key: "y", Standalone: "য়"}},
				Consonants: []Entry{{"y", "য"}},
			},
			want: ErrOverlappingKey,
		},
		{
			name: "key too long",
			set:  TableSet{Conjuncts: []Entry{{"kshm", "ক্ষ্ম"}}},
			want: ErrKeyLength,
		},
		{
			name: "three-rune vowel",
			set:  TableSet{Vowels: []Vowel{{Key: "aai", Standalone: "আই"}}},
			want: ErrKeyLength,
		},
		{
			name: "one-rune conjunct",
			set:  TableSet{Conjuncts: []Entry{{"x", "ক্স"}}},
			want: ErrKeyLength,
		},
		{
			name: "empty key",
			set:  TableSet{Consonants: []Entry{{"", "ক"}}},
			want: ErrKeyLength,
		},
		{
			name: "multi-rune punctuation",
			set:  TableSet{Punctuation: []Entry{{"..", "।।"}}},
			want: ErrKeyLength,
		},
		{
			name: "empty standalone",
			set:  TableSet{Vowels: []Vowel{{Key: "a", Dependent: "া"}}},
			want: ErrEmptyValue,
		},
		{
			name: "empty consonant value",
			set:  TableSet{Consonants: []Entry{{"k", ""}}},
			want: ErrEmptyValue,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewTables(tt.set)
			require.Error(t, err)
			assert.True(t, errors.Is(err, tt.want), "got %v", err)
		})
	}
}

func TestOverrides(t *testing.T) {
	_, overrides := MustDefault()

	v, ok := overrides.Lookup("rastra")
	require.True(t, ok)
	assert.Equal(t, "রাষ্ট্র", v)

	_, ok = overrides.Lookup("rast")
	assert.False(t, ok)

	got := overrides.WithPrefix("bang")
	require.Len(t, got, 2)
	assert.Equal(t, "bangla", got[0].Key)
	assert.Equal(t, "banglay", got[1].Key)

	got = overrides.WithPrefix("bh")
	keys := make([]string, len(got))
	for i, e := range got {
		keys[i] = e.Key
	}
	assert.Equal(t, []string{"bhasha", "bhashan", "bhashai"}, keys, "table order is kept")

	assert.Empty(t, overrides.WithPrefix("zz"))
	assert.Empty(t, overrides.WithPrefix(""))
}

func TestOverridesRejectDuplicates(t *testing.T) {
	_, err := NewOverrides([]Entry{{"meye", "মেয়ে"}, {"Meye", "মেয়ে"}})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrDuplicateKey)

	_, err = NewOverrides([]Entry{{"ami", ""}})
	assert.ErrorIs(t, err, ErrEmptyValue)
}

func TestNilOverrides(t *testing.T) {
	var o *Overrides
	_, ok := o.Lookup("ami")
	assert.False(t, ok)
	assert.Nil(t, o.WithPrefix("am"))
	assert.Zero(t, o.Len())
}
