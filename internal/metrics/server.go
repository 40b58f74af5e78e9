package metrics

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"sort"
	"strings"
	"time"

	"banglawriter/internal/logging"
)

// Serve exposes m on addr under /metrics, plus any extra handlers keyed
// by path, until ctx is done.
func Serve(ctx context.Context, addr string, m *Metrics, extra map[string]http.Handler) error {
	mux := newMux(m, extra)

	server := &http.Server{
		Addr:         addr,
		Handler:      mux,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logging.Info("metrics server listening", "addr", addr)
		errCh <- server.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("metrics server: %w", err)
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return server.Shutdown(shutdownCtx)
	}
}

func newMux(m *Metrics, extra map[string]http.Handler) *http.ServeMux {
	mux := http.NewServeMux()
	mux.Handle("/metrics", m.Handler())

	paths := []string{"/metrics"}
	for path, h := range extra {
		mux.Handle(path, h)
		paths = append(paths, path)
	}
	sort.Strings(paths)

	var links strings.Builder
	for _, p := range paths {
		fmt.Fprintf(&links, `<p><a href="%s">%s</a></p>`, p, p)
	}
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/" {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "text/html")
		fmt.Fprintf(w, `<html><body><h1>banglawriter</h1>%s</body></html>`, links.String())
	})
	return mux
}
