package suggest

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"banglawriter/internal/dictionary"
	"banglawriter/internal/phonetic"
)

func newRanker(t *testing.T, dict *dictionary.Index, opts Options) *Ranker {
	t.Helper()
	tr, err := phonetic.NewDefault()
	require.NoError(t, err)
	return NewRanker(tr, dict, opts)
}

func TestSuggestOverrides(t *testing.T) {
	r := newRanker(t, dictionary.Builtin(), Options{})

	assert.Equal(t, []string{"বাংলা", "বাংলায়"}, r.Suggest("ba"))
	assert.Equal(t, []string{"ভাষা", "ভাষণ", "ভাষায়"}, r.Suggest("bh"))
	assert.Equal(t, []string{"আমি"}, r.Suggest("ami"))
	assert.Equal(t, []string{"বাংলা", "বাংলায়"}, r.Suggest("BAN"))
}

func TestSuggestShortBuffer(t *testing.T) {
	r := newRanker(t, dictionary.Builtin(), Options{Phonetic: true})
	assert.Nil(t, r.Suggest(""))
	assert.Nil(t, r.Suggest("b"))
	assert.Nil(t, r.Suggest("ক"))
}

func TestSuggestDictionaryLiteralPrefix(t *testing.T) {
	r := newRanker(t, dictionary.Builtin(), Options{})
	assert.Equal(t,
		[]string{"করি", "করো", "করে", "করেন", "করেছ", "করেছি"},
		r.Suggest("কর"))
}

func TestSuggestPhonetic(t *testing.T) {
	r := newRanker(t, dictionary.Builtin(), Options{Phonetic: true})
	assert.Equal(t, []string{"বাঘ", "বাংলা", "বাংলায়", "বাংলাদেশ"}, r.Suggest("ba"))

	plain := newRanker(t, dictionary.Builtin(), Options{})
	assert.NotContains(t, plain.Suggest("ba"), "বাঘ")
}

func TestSuggestLimit(t *testing.T) {
	words := make([]string, 0, 15)
	for i := 0; i < 15; i++ {
		words = append(words, "ক"+strings.Repeat("া", i))
	}
	dict, err := dictionary.NewIndex(dictionary.FromWords(words))
	require.NoError(t, err)

	r := newRanker(t, dict, Options{})
	got := r.Suggest("কা")
	require.Len(t, got, MaxSuggestions)
	assert.Equal(t, "কা", got[0])

	r = newRanker(t, dict, Options{Limit: 3})
	assert.Len(t, r.Suggest("কা"), 3)

	r = newRanker(t, dict, Options{Limit: 50})
	assert.Len(t, r.Suggest("কা"), MaxSuggestions)
}

func TestSuggestNilDictionary(t *testing.T) {
	r := newRanker(t, nil, Options{Phonetic: true})
	assert.Equal(t, []string{"বাংলা", "বাংলায়"}, r.Suggest("ba"))
}

func TestSuggestPrefixInvariant(t *testing.T) {
	tr, err := phonetic.NewDefault()
	require.NoError(t, err)
	r := NewRanker(tr, dictionary.Builtin(), Options{})

	for _, buf := range []string{"am", "ami", "ba", "ban", "bh", "de", "ko", "kor", "gh", "ga", "mu", "ra", "sh", "কর", "বা"} {
		t.Run(buf, func(t *testing.T) {
			lower := strings.ToLower(buf)
			for _, s := range r.Suggest(buf) {
				ok := strings.HasPrefix(s, lower)
				for _, e := range tr.Overrides().WithPrefix(lower) {
					ok = ok || e.Value == s
				}
				assert.True(t, ok, fmt.Sprintf("%q does not extend %q", s, buf))
			}
		})
	}
}

func TestSuggestPhoneticMatchesRendering(t *testing.T) {
	tr, err := phonetic.NewDefault()
	require.NoError(t, err)
	r := NewRanker(tr, dictionary.Builtin(), Options{Phonetic: true})

	for _, buf := range []string{"am", "ba", "bh", "de", "ko", "gh", "sh"} {
		t.Run(buf, func(t *testing.T) {
			lower := strings.ToLower(buf)
			rendered := tr.Render(lower)
			for _, s := range r.Suggest(buf) {
				ok := strings.HasPrefix(s, lower) || strings.HasPrefix(s, rendered)
				for _, e := range tr.Overrides().WithPrefix(lower) {
					ok = ok || e.Value == s
				}
				assert.True(t, ok, fmt.Sprintf("%q is not reachable from %q", s, buf))
			}
		})
	}

	assert.Empty(t, NewRanker(tr, dictionary.Builtin(), Options{}).Suggest("de"))
	assert.Contains(t, r.Suggest("de"), "দেশ")
}

func TestSuggestOrderedShortestFirst(t *testing.T) {
	r := newRanker(t, dictionary.Builtin(), Options{Phonetic: true})
	for _, buf := range []string{"ba", "bh", "ko", "কর"} {
		got := r.Suggest(buf)
		for i := 1; i < len(got); i++ {
			assert.LessOrEqual(t, len([]rune(got[i-1])), len([]rune(got[i])), buf)
		}
		seen := map[string]bool{}
		for _, s := range got {
			assert.False(t, seen[s], "duplicate %q for %q", s, buf)
			seen[s] = true
		}
	}
}
