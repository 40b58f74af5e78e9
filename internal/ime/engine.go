package ime

import (
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode"

	"banglawriter/internal/metrics"
	"banglawriter/internal/phonetic"
	"banglawriter/internal/suggest"
)

// Mode selects between phonetic conversion and pass-through.
type Mode int

const (
	// ModeBangla converts Romanized keystrokes to Bangla.
	ModeBangla Mode = iota
	// ModeASCII passes every keystroke through unchanged.
	ModeASCII
)

func (m Mode) String() string {
	switch m {
	case ModeBangla:
		return "bangla"
	case ModeASCII:
		return "ascii"
	default:
		return fmt.Sprintf("Mode(%d)", int(m))
	}
}

// ParseMode parses "bangla" or "ascii".
func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(s) {
	case "bangla", "":
		return ModeBangla, nil
	case "ascii":
		return ModeASCII, nil
	default:
		return ModeBangla, fmt.Errorf("unknown mode: %s", s)
	}
}

// Toggle returns the other mode.
func (m Mode) Toggle() Mode {
	if m == ModeBangla {
		return ModeASCII
	}
	return ModeBangla
}

// CancelRune is the key that abandons a composition.
const CancelRune = '\x1b'

// ErrCandidateIndex is returned when a candidate index is out of range.
var ErrCandidateIndex = errors.New("candidate index out of range")

// KeyResult is the outcome of one keystroke.
type KeyResult struct {
	// Committed is text to deliver to the application, usually empty.
	Committed string

	// Suggestions are the current candidates, shortest first.
	Suggestions []string

	// Complete is set when the keystroke ended a composition.
	Complete bool
}

// Factory creates Sessions that share one transducer and ranker.
type Factory struct {
	transducer  *phonetic.Transducer
	ranker      *suggest.Ranker
	metrics     *metrics.Metrics
	defaultMode Mode
}

// NewFactory returns a Factory. ranker and m may be nil.
func NewFactory(tr *phonetic.Transducer, ranker *suggest.Ranker, m *metrics.Metrics) *Factory {
	return &Factory{transducer: tr, ranker: ranker, metrics: m}
}

// WithDefaultMode returns a copy of f whose sessions start in mode.
func (f *Factory) WithDefaultMode(mode Mode) *Factory {
	clone := *f
	clone.defaultMode = mode
	return &clone
}

// WithRanker returns a copy of f that ranks with r.
func (f *Factory) WithRanker(r *suggest.Ranker) *Factory {
	clone := *f
	clone.ranker = r
	return &clone
}

// Transducer returns the shared transducer.
func (f *Factory) Transducer() *phonetic.Transducer { return f.transducer }

// Ranker returns the shared ranker, which may be nil.
func (f *Factory) Ranker() *suggest.Ranker { return f.ranker }

// NewSession returns an empty Session in the factory's default mode.
func (f *Factory) NewSession() *Session {
	f.metrics.SessionOpened()
	return &Session{
		transducer: f.transducer,
		ranker:     f.ranker,
		metrics:    f.metrics,
		mode:       f.defaultMode,
	}
}

// Session is the composition state of one input context. It is not safe
// for concurrent use.
type Session struct {
	transducer  *phonetic.Transducer
	ranker      *suggest.Ranker
	metrics     *metrics.Metrics
	mode        Mode
	buf         []rune
	suggestions []string
	closed      bool
}

// ProcessKey handles one keystroke.
func (s *Session) ProcessKey(r rune) KeyResult {
	s.metrics.Key(s.mode.String())

	if s.mode == ModeASCII {
		s.metrics.Commit(metrics.CommitPassthrough)
		return KeyResult{Committed: string(r)}
	}

	switch {
	case r == CancelRune:
		s.clear()
		return KeyResult{Complete: true}
	case isDelimiter(r):
		if len(s.buf) == 0 {
			s.metrics.Commit(metrics.CommitPassthrough)
			return KeyResult{Committed: string(r), Complete: true}
		}
		return KeyResult{Committed: s.CommitBuffer(), Complete: true}
	}

	s.buf = append(s.buf, r)
	s.refresh()
	return KeyResult{Suggestions: s.Suggestions()}
}

func isDelimiter(r rune) bool {
	return unicode.IsSpace(r) || unicode.IsControl(r)
}

// PreeditText returns the live rendering of the buffer.
func (s *Session) PreeditText() string {
	if len(s.buf) == 0 {
		return ""
	}
	return s.render()
}

func (s *Session) render() string {
	start := time.Now()
	out := s.transducer.Render(string(s.buf))
	s.metrics.ObserveRender(time.Since(start))
	return out
}

// Suggestions returns a copy of the current candidates.
func (s *Session) Suggestions() []string {
	if len(s.suggestions) == 0 {
		return nil
	}
	return append([]string(nil), s.suggestions...)
}

// Backspace removes the last buffered rune. It reports false when the
// buffer was already empty.
func (s *Session) Backspace() bool {
	if len(s.buf) == 0 {
		return false
	}
	s.buf = s.buf[:len(s.buf)-1]
	s.refresh()
	return true
}

// CommitBuffer renders and clears the buffer. An empty buffer yields "".
func (s *Session) CommitBuffer() string {
	if len(s.buf) == 0 {
		s.suggestions = nil
		return ""
	}
	out := s.render()
	s.clear()
	s.metrics.Commit(metrics.CommitBuffer)
	return out
}

// SelectSuggestion commits candidate i and clears the composition. An
// out-of-range index returns ErrCandidateIndex and changes nothing.
func (s *Session) SelectSuggestion(i int) (string, error) {
	if i < 0 || i >= len(s.suggestions) {
		return "", fmt.Errorf("%w: %d of %d", ErrCandidateIndex, i, len(s.suggestions))
	}
	out := s.suggestions[i]
	s.clear()
	s.metrics.Commit(metrics.CommitCandidate)
	return out, nil
}

// Reset clears the buffer and candidates.
func (s *Session) Reset() {
	s.clear()
}

// SetMode switches mode and drops any composition.
func (s *Session) SetMode(m Mode) {
	s.mode = m
	s.clear()
}

// Mode returns the current mode.
func (s *Session) Mode() Mode { return s.mode }

// Buffer returns the raw keystrokes of the composition.
func (s *Session) Buffer() string { return string(s.buf) }

// Composing reports whether the buffer is non-empty.
func (s *Session) Composing() bool { return len(s.buf) > 0 }

// Close releases the session. Further use is allowed but no longer
// counted as active.
func (s *Session) Close() {
	if s.closed {
		return
	}
	s.closed = true
	s.metrics.SessionClosed()
}

func (s *Session) clear() {
	s.buf = s.buf[:0]
	s.suggestions = nil
}

func (s *Session) refresh() {
	if s.ranker == nil || len(s.buf) < suggest.MinBufferLen {
		s.suggestions = nil
		return
	}
	s.suggestions = s.ranker.Suggest(string(s.buf))
	s.metrics.Suggestions(len(s.suggestions))
}
