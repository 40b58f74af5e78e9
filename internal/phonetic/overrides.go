package phonetic

import (
	"fmt"
	"sort"
	"strings"

	"github.com/derekparker/trie"
)

// Overrides is the whole-word override table: full lower-case Romanized
// words whose rendering bypasses the rule scan. Order is preserved for
// suggestion ranking.
type Overrides struct {
	entries []Entry
	exact   map[string]string
	keys    *trie.Trie
}

// NewOverrides builds an override table. Keys are lower-cased; a key
// appearing twice is rejected even if both values agree.
func NewOverrides(entries []Entry) (*Overrides, error) {
	o := &Overrides{
		entries: make([]Entry, 0, len(entries)),
		exact:   make(map[string]string, len(entries)),
		keys:    trie.New(),
	}
	for _, e := range entries {
		key := strings.ToLower(e.Key)
		if key == "" {
			return nil, fmt.Errorf("override: %w", ErrKeyLength)
		}
		if e.Value == "" {
			return nil, fmt.Errorf("override %q: %w", key, ErrEmptyValue)
		}
		if _, dup := o.exact[key]; dup {
			return nil, fmt.Errorf("override %q: %w", key, ErrDuplicateKey)
		}
		o.exact[key] = e.Value
		o.keys.Add(key, len(o.entries))
		o.entries = append(o.entries, Entry{Key: key, Value: e.Value})
	}
	return o, nil
}

// Lookup returns the override for an exact lower-case word.
func (o *Overrides) Lookup(word string) (string, bool) {
	if o == nil {
		return "", false
	}
	v, ok := o.exact[word]
	return v, ok
}

// WithPrefix returns the overrides whose key starts with prefix, in
// table order.
func (o *Overrides) WithPrefix(prefix string) []Entry {
	if o == nil || prefix == "" {
		return nil
	}
	keys := o.keys.PrefixSearch(prefix)
	idx := make([]int, 0, len(keys))
	for _, k := range keys {
		node, ok := o.keys.Find(k)
		if !ok {
			continue
		}
		if i, ok := node.Meta().(int); ok {
			idx = append(idx, i)
		}
	}
	sort.Ints(idx)

	out := make([]Entry, len(idx))
	for n, i := range idx {
		out[n] = o.entries[i]
	}
	return out
}

// Entries returns a copy of the table in order.
func (o *Overrides) Entries() []Entry {
	if o == nil {
		return nil
	}
	return append([]Entry(nil), o.entries...)
}

// Len returns the number of overrides.
func (o *Overrides) Len() int {
	if o == nil {
		return 0
	}
	return len(o.entries)
}
