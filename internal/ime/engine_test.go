package ime

import (
	"errors"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"banglawriter/internal/dictionary"
	"banglawriter/internal/metrics"
	"banglawriter/internal/phonetic"
	"banglawriter/internal/suggest"
)

func newFactory(t *testing.T, m *metrics.Metrics) *Factory {
	t.Helper()
	tr, err := phonetic.NewDefault()
	require.NoError(t, err)
	return NewFactory(tr, suggest.NewRanker(tr, dictionary.Builtin(), suggest.Options{}), m)
}

func typeString(s *Session, text string) KeyResult {
	var res KeyResult
	for _, r := range text {
		res = s.ProcessKey(r)
	}
	return res
}

func TestSessionCommitOnSpace(t *testing.T) {
	s := newFactory(t, nil).NewSession()

	res := typeString(s, "ami")
	assert.Empty(t, res.Committed)
	assert.False(t, res.Complete)
	assert.Equal(t, "আমি", s.PreeditText())

	res = s.ProcessKey(' ')
	assert.Equal(t, "আমি", res.Committed)
	assert.True(t, res.Complete)
	assert.Empty(t, res.Suggestions)
	assert.False(t, s.Composing())
	assert.Empty(t, s.PreeditText())
}

func TestSessionSentence(t *testing.T) {
	s := newFactory(t, nil).NewSession()

	var out string
	for _, r := range "ami banglay gan gacchi\n" {
		res := s.ProcessKey(r)
		out += res.Committed
		if res.Complete && r == ' ' {
			out += " "
		}
	}
	assert.Equal(t, "আমি বাংলায় গান গাচ্ছি", out)
}

func TestSessionDelimiterOnEmptyBuffer(t *testing.T) {
	s := newFactory(t, nil).NewSession()

	for _, r := range []rune{' ', '\n', '\t'} {
		res := s.ProcessKey(r)
		assert.Equal(t, string(r), res.Committed)
		assert.True(t, res.Complete)
	}
}

func TestSessionCancel(t *testing.T) {
	s := newFactory(t, nil).NewSession()

	typeString(s, "bangla")
	require.NotEmpty(t, s.Suggestions())

	res := s.ProcessKey(CancelRune)
	assert.Equal(t, KeyResult{Complete: true}, res)
	assert.Empty(t, s.Buffer())
	assert.Nil(t, s.Suggestions())
}

func TestSessionSuggestionsNeedTwoRunes(t *testing.T) {
	s := newFactory(t, nil).NewSession()

	res := s.ProcessKey('b')
	assert.Nil(t, res.Suggestions)

	res = s.ProcessKey('a')
	assert.Equal(t, []string{"বাংলা", "বাংলায়"}, res.Suggestions)

	assert.True(t, s.Backspace())
	assert.Nil(t, s.Suggestions())
	assert.True(t, s.Backspace())
	assert.False(t, s.Backspace())
}

func TestSessionSuggestionsAreCopies(t *testing.T) {
	s := newFactory(t, nil).NewSession()
	typeString(s, "ba")

	got := s.Suggestions()
	got[0] = "x"
	assert.Equal(t, "বাংলা", s.Suggestions()[0])
}

func TestSessionSelectSuggestion(t *testing.T) {
	s := newFactory(t, nil).NewSession()
	typeString(s, "ba")

	_, err := s.SelectSuggestion(5)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrCandidateIndex))
	assert.Equal(t, "ba", s.Buffer(), "bad index must not change state")

	word, err := s.SelectSuggestion(1)
	require.NoError(t, err)
	assert.Equal(t, "বাংলায়", word)
	assert.False(t, s.Composing())
	assert.Nil(t, s.Suggestions())
}

func TestSessionCommitBuffer(t *testing.T) {
	s := newFactory(t, nil).NewSession()
	assert.Equal(t, "", s.CommitBuffer())

	typeString(s, "ghor")
	assert.Equal(t, "ghor", s.Buffer())
	assert.Equal(t, "ঘর", s.CommitBuffer())
	assert.Empty(t, s.Buffer())
}

func TestSessionASCIIMode(t *testing.T) {
	s := newFactory(t, nil).WithDefaultMode(ModeASCII).NewSession()
	require.Equal(t, ModeASCII, s.Mode())

	for _, r := range "ami " {
		res := s.ProcessKey(r)
		assert.Equal(t, string(r), res.Committed)
		assert.False(t, res.Complete)
	}
	assert.False(t, s.Composing())
}

func TestSessionSetModeClears(t *testing.T) {
	s := newFactory(t, nil).NewSession()
	typeString(s, "bangla")

	s.SetMode(ModeASCII)
	assert.Empty(t, s.Buffer())
	assert.Nil(t, s.Suggestions())

	s.SetMode(ModeASCII.Toggle())
	assert.Equal(t, ModeBangla, s.Mode())
}

func TestSessionReset(t *testing.T) {
	s := newFactory(t, nil).NewSession()
	typeString(s, "desh")
	s.Reset()
	assert.False(t, s.Composing())
	assert.Empty(t, s.PreeditText())
}

func TestSessionWithoutRanker(t *testing.T) {
	tr, err := phonetic.NewDefault()
	require.NoError(t, err)
	s := NewFactory(tr, nil, nil).NewSession()

	res := typeString(s, "bangla")
	assert.Nil(t, res.Suggestions)
	assert.Equal(t, "বাংলা", s.PreeditText())
}

func TestSessionMetrics(t *testing.T) {
	m := metrics.New()
	f := newFactory(t, m)

	s := f.NewSession()
	assert.Equal(t, 1.0, testutil.ToFloat64(m.ActiveSessions))

	typeString(s, "ami ")
	assert.Equal(t, 4.0, testutil.ToFloat64(m.KeysTotal.WithLabelValues("bangla")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.CommitsTotal.WithLabelValues(metrics.CommitBuffer)))

	s.Close()
	s.Close()
	assert.Equal(t, 0.0, testutil.ToFloat64(m.ActiveSessions))
}

func TestParseMode(t *testing.T) {
	tests := []struct {
		in   string
		want Mode
		ok   bool
	}{
		{"bangla", ModeBangla, true},
		{"ASCII", ModeASCII, true},
		{"", ModeBangla, true},
		{"hindi", ModeBangla, false},
	}
	for _, tt := range tests {
		got, err := ParseMode(tt.in)
		if (err == nil) != tt.ok || got != tt.want {
			t.Errorf("ParseMode(%q) = %v, %v", tt.in, got, err)
		}
	}
	if ModeBangla.String() != "bangla" || Mode(7).String() != "Mode(7)" {
		t.Error("unexpected Mode.String")
	}
}
