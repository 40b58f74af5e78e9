// Package suggest ranks completion candidates for a composing buffer.
package suggest

import (
	"sort"
	"strings"
	"unicode/utf8"

	"banglawriter/internal/dictionary"
	"banglawriter/internal/phonetic"
)

const (
	// MaxSuggestions caps the candidate list.
	MaxSuggestions = 10

	// MinBufferLen is the shortest buffer that produces candidates.
	MinBufferLen = 2
)

// Options tunes a Ranker.
type Options struct {
	// Phonetic also matches dictionary words against the live rendering
	// of the buffer, so Romanized input reaches Bangla words.
	Phonetic bool

	// Limit overrides MaxSuggestions when positive and smaller.
	Limit int
}

// Ranker produces candidates from the whole-word overrides and the
// dictionary. It is immutable and safe for concurrent use.
type Ranker struct {
	transducer *phonetic.Transducer
	dict       *dictionary.Index
	opts       Options
}

// NewRanker returns a Ranker. dict may be nil.
func NewRanker(tr *phonetic.Transducer, dict *dictionary.Index, opts Options) *Ranker {
	if opts.Limit <= 0 || opts.Limit > MaxSuggestions {
		opts.Limit = MaxSuggestions
	}
	return &Ranker{transducer: tr, dict: dict, opts: opts}
}

// Options returns the ranker settings.
func (r *Ranker) Options() Options { return r.opts }

// Suggest returns up to Limit candidates for buffer, shortest first.
// Buffers shorter than MinBufferLen runes yield nil.
func (r *Ranker) Suggest(buffer string) []string {
	prefix := strings.ToLower(buffer)
	if utf8.RuneCountInString(prefix) < MinBufferLen {
		return nil
	}

	var c collector
	for _, e := range r.transducer.Overrides().WithPrefix(prefix) {
		c.add(e.Value)
	}
	for _, w := range r.dict.Match(prefix) {
		c.add(w)
	}
	if r.opts.Phonetic {
		if rendered := r.transducer.Render(prefix); rendered != prefix {
			for _, w := range r.dict.Match(rendered) {
				c.add(w)
			}
		}
	}

	out := c.items
	sort.SliceStable(out, func(i, j int) bool {
		return utf8.RuneCountInString(out[i]) < utf8.RuneCountInString(out[j])
	})
	if len(out) > r.opts.Limit {
		out = out[:r.opts.Limit]
	}
	return out
}

// collector keeps candidates in first-seen order without repeats.
type collector struct {
	items []string
	seen  map[string]struct{}
}

func (c *collector) add(s string) {
	if c.seen == nil {
		c.seen = make(map[string]struct{})
	}
	if _, ok := c.seen[s]; ok {
		return
	}
	c.seen[s] = struct{}{}
	c.items = append(c.items, s)
}
