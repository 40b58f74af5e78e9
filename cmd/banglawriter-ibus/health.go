//go:build linux

package main

import (
	"context"
	"fmt"
	"sync/atomic"

	"banglawriter/internal/dictionary"
	"banglawriter/internal/health"
	"banglawriter/internal/ime"
)

// newHealthChecker reports the bus connection and the dictionary in use.
// It is served next to /metrics, so it only exists when metrics are on.
func newHealthChecker(svc *ime.Service, dict *atomic.Pointer[dictionary.LoadResult]) *health.Checker {
	checker := health.NewChecker()
	checker.RegisterFunc("bus", true, func(context.Context) health.CheckResult {
		if !svc.Connected() {
			return health.CheckResult{Status: health.StatusUnhealthy, Message: "not connected"}
		}
		return health.CheckResult{Status: health.StatusHealthy, Message: fmt.Sprintf("%d engines", svc.Engines())}
	})
	checker.RegisterFunc("dictionary", false, func(context.Context) health.CheckResult {
		r := dict.Load()
		if r.Fallback() {
			return health.CheckResult{Status: health.StatusDegraded, Message: "using built-in list: " + r.Err.Error()}
		}
		return health.CheckResult{Status: health.StatusHealthy, Message: fmt.Sprintf("%s, %d words", r.Source, r.Index.Len())}
	})
	return checker
}
