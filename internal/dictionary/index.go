// Package dictionary holds the word list used for completion candidates.
//
// Words are grouped into buckets keyed by a single leading character and
// keep their load order inside a bucket. An Index is immutable once built
// and may be shared between sessions without locking.
package dictionary

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/derekparker/trie"
	"golang.org/x/text/cases"
	"golang.org/x/text/unicode/norm"
)

// ErrMalformed is returned for word lists that do not have the expected
// shape.
var ErrMalformed = errors.New("malformed word list")

// WordList is the external shape of a dictionary: leading character to
// ordered words.
type WordList map[string][]string

// ref locates a word inside its bucket.
type ref struct {
	bucket string
	pos    int
}

// Index is a bucketed, prefix-searchable word list.
type Index struct {
	buckets map[string][]string
	keys    []string
	words   int

	// folded maps case-folded words to their bucket positions.
	folded *trie.Trie
}

// NewIndex builds an Index from list. Words are NFC-normalised, empty
// words dropped and repeats within a bucket collapsed to the first
// occurrence. Bucket keys must be exactly one character.
func NewIndex(list WordList) (*Index, error) {
	idx := &Index{
		buckets: make(map[string][]string, len(list)),
		folded:  trie.New(),
	}
	fold := cases.Fold()

	keys := make([]string, 0, len(list))
	for k := range list {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, rawKey := range keys {
		key := norm.NFC.String(rawKey)
		if utf8.RuneCountInString(key) != 1 {
			return nil, fmt.Errorf("bucket %q: key must be one character: %w", rawKey, ErrMalformed)
		}
		if _, dup := idx.buckets[key]; dup {
			return nil, fmt.Errorf("bucket %q: duplicate after normalisation: %w", rawKey, ErrMalformed)
		}

		seen := make(map[string]struct{}, len(list[rawKey]))
		words := make([]string, 0, len(list[rawKey]))
		for _, w := range list[rawKey] {
			w = norm.NFC.String(strings.TrimSpace(w))
			if w == "" {
				continue
			}
			if _, ok := seen[w]; ok {
				continue
			}
			seen[w] = struct{}{}

			r := ref{bucket: key, pos: len(words)}
			words = append(words, w)

			f := fold.String(w)
			refs := []ref{r}
			if node, ok := idx.folded.Find(f); ok {
				refs = append(node.Meta().([]ref), r)
			}
			idx.folded.Add(f, refs)
		}
		idx.buckets[key] = words
		idx.keys = append(idx.keys, key)
		idx.words += len(words)
	}
	return idx, nil
}

// FromWords buckets words by their first character, keeping order.
func FromWords(words []string) WordList {
	list := make(WordList)
	for _, w := range words {
		w = norm.NFC.String(w)
		r, size := utf8.DecodeRuneInString(w)
		if size == 0 || r == utf8.RuneError {
			continue
		}
		key := string(r)
		list[key] = append(list[key], w)
	}
	return list
}

// Bucket returns a copy of the words stored under key.
func (i *Index) Bucket(key string) []string {
	return append([]string(nil), i.buckets[key]...)
}

// Keys returns the bucket keys in sorted order.
func (i *Index) Keys() []string {
	return append([]string(nil), i.keys...)
}

// Len returns the total number of words.
func (i *Index) Len() int { return i.words }

// Match returns the words in the bucket keyed by the first character of
// prefix whose case-folded form starts with the case-folded prefix. Words
// keep their bucket order.
func (i *Index) Match(prefix string) []string {
	if i == nil || prefix == "" {
		return nil
	}
	prefix = norm.NFC.String(prefix)
	r, _ := utf8.DecodeRuneInString(prefix)
	bucket := string(r)
	words, ok := i.buckets[bucket]
	if !ok {
		return nil
	}

	// A Caser holds state and must not be shared across goroutines.
	fp := cases.Fold().String(prefix)

	var hits []int
	for _, key := range i.folded.PrefixSearch(fp) {
		node, ok := i.folded.Find(key)
		if !ok {
			continue
		}
		for _, r := range node.Meta().([]ref) {
			if r.bucket == bucket {
				hits = append(hits, r.pos)
			}
		}
	}
	sort.Ints(hits)

	out := make([]string, len(hits))
	for n, pos := range hits {
		out[n] = words[pos]
	}
	return out
}

// WordList returns a copy of the index in its external shape.
func (i *Index) WordList() WordList {
	list := make(WordList, len(i.buckets))
	for k, words := range i.buckets {
		list[k] = append([]string(nil), words...)
	}
	return list
}
