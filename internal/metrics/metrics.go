// Package metrics defines the Prometheus collectors for the input method
// and exposes an HTTP handler for scraping.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "banglawriter"

// Commit sources.
const (
	CommitBuffer      = "buffer"
	CommitCandidate   = "candidate"
	CommitPassthrough = "passthrough"
)

// Metrics holds all collectors. A nil *Metrics is valid and records
// nothing, so components can take one unconditionally.
type Metrics struct {
	registry *prometheus.Registry

	KeysTotal          *prometheus.CounterVec
	CommitsTotal       *prometheus.CounterVec
	SuggestionsShown   prometheus.Counter
	RenderDuration     prometheus.Histogram
	ActiveSessions     prometheus.Gauge
	DictionaryWords    prometheus.Gauge
	DictionaryFallback prometheus.Counter
	ConfigReloads      *prometheus.CounterVec
}

// New creates the collectors and registers them on a private registry
// together with the Go runtime and process collectors.
func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		KeysTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "keys_total",
				Help:      "Key events processed by mode (bangla, ascii).",
			},
			[]string{"mode"},
		),
		CommitsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "commits_total",
				Help:      "Text commits by source (buffer, candidate, passthrough).",
			},
			[]string{"source"},
		),
		SuggestionsShown: prometheus.NewCounter(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "suggestions_shown_total",
				Help:      "Number of times a non-empty candidate list was shown.",
			},
		),
		RenderDuration: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "render_duration_seconds",
				Help:      "Time to render the preedit and candidates for one key.",
				Buckets:   []float64{0.00001, 0.00005, 0.0001, 0.0005, 0.001, 0.005, 0.01, 0.05},
			},
		),
		ActiveSessions: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Name:      "active_sessions",
				Help:      "Number of live input contexts.",
			},
		),
		DictionaryWords: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Name:      "dictionary_words",
				Help:      "Words in the loaded dictionary.",
			},
		),
		DictionaryFallback: prometheus.NewCounter(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "dictionary_fallback_total",
				Help:      "Dictionary loads that fell back to the built-in list.",
			},
		),
		ConfigReloads: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "config_reloads_total",
				Help:      "Configuration reloads by status (ok, error).",
			},
			[]string{"status"},
		),
	}

	m.registry.MustRegister(
		m.KeysTotal,
		m.CommitsTotal,
		m.SuggestionsShown,
		m.RenderDuration,
		m.ActiveSessions,
		m.DictionaryWords,
		m.DictionaryFallback,
		m.ConfigReloads,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return m
}

// Registry returns the registry the collectors are registered on.
func (m *Metrics) Registry() *prometheus.Registry { return m.registry }

// Handler returns the Prometheus scrape HTTP handler.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// Key counts one key event in mode.
func (m *Metrics) Key(mode string) {
	if m == nil {
		return
	}
	m.KeysTotal.WithLabelValues(mode).Inc()
}

// Commit counts one commit from source.
func (m *Metrics) Commit(source string) {
	if m == nil {
		return
	}
	m.CommitsTotal.WithLabelValues(source).Inc()
}

// Suggestions counts a shown candidate list.
func (m *Metrics) Suggestions(n int) {
	if m == nil || n == 0 {
		return
	}
	m.SuggestionsShown.Inc()
}

// ObserveRender records how long a render took.
func (m *Metrics) ObserveRender(d time.Duration) {
	if m == nil {
		return
	}
	m.RenderDuration.Observe(d.Seconds())
}

// SessionOpened and SessionClosed track live input contexts.
func (m *Metrics) SessionOpened() {
	if m == nil {
		return
	}
	m.ActiveSessions.Inc()
}

func (m *Metrics) SessionClosed() {
	if m == nil {
		return
	}
	m.ActiveSessions.Dec()
}

// Dictionary records the loaded dictionary size and whether the
// built-in list had to stand in.
func (m *Metrics) Dictionary(words int, fallback bool) {
	if m == nil {
		return
	}
	m.DictionaryWords.Set(float64(words))
	if fallback {
		m.DictionaryFallback.Inc()
	}
}

// ConfigReload counts a configuration reload attempt.
func (m *Metrics) ConfigReload(err error) {
	if m == nil {
		return
	}
	status := "ok"
	if err != nil {
		status = "error"
	}
	m.ConfigReloads.WithLabelValues(status).Inc()
}
