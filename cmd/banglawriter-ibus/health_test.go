//go:build linux

package main

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"banglawriter/internal/config"
	"banglawriter/internal/dictionary"
	"banglawriter/internal/health"
	"banglawriter/internal/ime"
)

func TestHealthChecker(t *testing.T) {
	cfg := config.DefaultConfig()
	factory, res, err := ime.FactoryFromConfig(cfg, nil)
	require.NoError(t, err)
	svc := ime.NewService(factory, ime.ServiceConfig{Bus: cfg.IBus})

	var dict atomic.Pointer[dictionary.LoadResult]
	dict.Store(&res)

	checker := newHealthChecker(svc, &dict)
	assert.Equal(t, []string{"bus", "dictionary"}, checker.Names())

	results := checker.Check(context.Background())
	assert.Equal(t, health.StatusUnhealthy, results["bus"].Status, "service never started")
	assert.Equal(t, health.StatusHealthy, results["dictionary"].Status)
	assert.Equal(t, health.StatusUnhealthy, checker.OverallStatus(results))

	dict.Store(&dictionary.LoadResult{
		Index:  dictionary.Builtin(),
		Source: dictionary.SourceBuiltin,
		Path:   "/missing.json",
		Err:    errors.New("open word list: no such file"),
	})
	results = checker.Check(context.Background())
	assert.Equal(t, health.StatusDegraded, results["dictionary"].Status)
	assert.Contains(t, results["dictionary"].Message, "built-in")
}
