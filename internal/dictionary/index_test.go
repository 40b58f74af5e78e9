package dictionary

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuiltinBuckets(t *testing.T) {
	idx := Builtin()
	require.NotNil(t, idx)

	assert.Equal(t, []string{"আমি", "আমরা", "আপনি"}, idx.Bucket("আ"))
	assert.Equal(t, []string{"বড়", "বলি", "বলো", "বাংলাদেশ", "বাংলা", "বাংলায়", "বিদেশ", "বাঘ"}, idx.Bucket("ব"))
	assert.Empty(t, idx.Bucket("z"))

	// Repeats in the source list are collapsed.
	assert.Equal(t, len(uniq(builtinWords)), idx.Len())
	assert.Same(t, idx, Builtin())
}

func uniq(words []string) []string {
	seen := map[string]bool{}
	var out []string
	for _, w := range words {
		if !seen[w] {
			seen[w] = true
			out = append(out, w)
		}
	}
	return out
}

func TestMatch(t *testing.T) {
	idx := Builtin()

	assert.Equal(t, []string{"বাংলাদেশ", "বাংলা", "বাংলায়"}, idx.Match("বাংলা"))
	assert.Equal(t, []string{"করি", "করো", "করেন", "করে", "করেছি", "করেছ"}, idx.Match("কর"))
	assert.Empty(t, idx.Match("bangla"))
	assert.Empty(t, idx.Match(""))

	var nilIdx *Index
	assert.Nil(t, nilIdx.Match("ক"))
}

func TestMatchFoldsCase(t *testing.T) {
	idx, err := NewIndex(WordList{
		"H": {"Hello", "help", "HELIUM"},
		"h": {"hello", "hat"},
	})
	require.NoError(t, err)

	assert.Equal(t, []string{"Hello", "help", "HELIUM"}, idx.Match("Hel"))
	assert.Equal(t, []string{"hello"}, idx.Match("hell"))
	assert.Equal(t, []string{"hello", "hat"}, idx.Match("h"))
}

func TestMatchKeepsBucketScope(t *testing.T) {
	// A word filed under another bucket is not reachable through this one.
	idx, err := NewIndex(WordList{
		"ক": {"কথা"},
		"খ": {"কলম"},
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"কথা"}, idx.Match("ক"))
	assert.Empty(t, idx.Match("খা"))
}

func TestNewIndexRejectsBadKeys(t *testing.T) {
	_, err := NewIndex(WordList{"কথ": {"কথা"}})
	assert.ErrorIs(t, err, ErrMalformed)

	_, err = NewIndex(WordList{"": {"কথা"}})
	assert.ErrorIs(t, err, ErrMalformed)
}

func TestNewIndexCleansWords(t *testing.T) {
	idx, err := NewIndex(WordList{"ক": {" কথা ", "", "কথা", "কলম"}})
	require.NoError(t, err)
	assert.Equal(t, []string{"কথা", "কলম"}, idx.Bucket("ক"))
	assert.Equal(t, 2, idx.Len())
	assert.Equal(t, []string{"ক"}, idx.Keys())
}

func TestNewIndexNormalises(t *testing.T) {
	// U+09DF is decomposed to U+09AF U+09BC under NFC.
	idx, err := NewIndex(WordList{"ম": {"মে\u09dfে"}})
	require.NoError(t, err)
	assert.Equal(t, []string{"মে\u09af\u09bcে"}, idx.Bucket("ম"))
}

func TestFromWords(t *testing.T) {
	list := FromWords([]string{"আমি", "ঘর", "আমরা", ""})
	assert.Equal(t, WordList{
		"আ": {"আমি", "আমরা"},
		"ঘ": {"ঘর"},
	}, list)
}

func TestWordListIsCopy(t *testing.T) {
	idx := Builtin()
	list := idx.WordList()
	list["আ"][0] = "changed"
	assert.Equal(t, "আমি", idx.Bucket("আ")[0])
}
