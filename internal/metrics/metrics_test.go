package metrics

import (
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCounters(t *testing.T) {
	m := New()

	m.Key("bangla")
	m.Key("bangla")
	m.Key("ascii")
	assert.Equal(t, 2.0, testutil.ToFloat64(m.KeysTotal.WithLabelValues("bangla")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.KeysTotal.WithLabelValues("ascii")))

	m.Commit(CommitBuffer)
	m.Commit(CommitCandidate)
	m.Commit(CommitCandidate)
	assert.Equal(t, 2.0, testutil.ToFloat64(m.CommitsTotal.WithLabelValues(CommitCandidate)))

	m.Suggestions(0)
	m.Suggestions(3)
	assert.Equal(t, 1.0, testutil.ToFloat64(m.SuggestionsShown))

	m.SessionOpened()
	m.SessionOpened()
	m.SessionClosed()
	assert.Equal(t, 1.0, testutil.ToFloat64(m.ActiveSessions))

	m.Dictionary(42, true)
	assert.Equal(t, 42.0, testutil.ToFloat64(m.DictionaryWords))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.DictionaryFallback))

	m.ConfigReload(nil)
	m.ConfigReload(errors.New("bad"))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.ConfigReloads.WithLabelValues("error")))

	m.ObserveRender(200 * time.Microsecond)
	assert.Equal(t, 1, testutil.CollectAndCount(m.RenderDuration))
}

func TestNilMetrics(t *testing.T) {
	var m *Metrics
	assert.NotPanics(t, func() {
		m.Key("bangla")
		m.Commit(CommitBuffer)
		m.Suggestions(1)
		m.ObserveRender(time.Millisecond)
		m.SessionOpened()
		m.SessionClosed()
		m.Dictionary(1, true)
		m.ConfigReload(nil)
	})
}

func TestIndependentRegistries(t *testing.T) {
	a, b := New(), New()
	a.Key("bangla")
	assert.Equal(t, 0.0, testutil.ToFloat64(b.KeysTotal.WithLabelValues("bangla")))
}

func TestHandler(t *testing.T) {
	m := New()
	m.Commit(CommitBuffer)

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest("GET", "/metrics", nil))
	require.Equal(t, 200, rec.Code)

	body, err := io.ReadAll(rec.Body)
	require.NoError(t, err)
	assert.True(t, strings.Contains(string(body), `banglawriter_commits_total{source="buffer"} 1`))
}

func TestMux(t *testing.T) {
	m := New()
	mux := newMux(m, map[string]http.Handler{
		"/healthz": http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusTeapot)
		}),
	})

	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `href="/healthz"`)
	assert.Contains(t, rec.Body.String(), `href="/metrics"`)

	rec = httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	assert.Equal(t, http.StatusTeapot, rec.Code)

	rec = httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/nope", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
