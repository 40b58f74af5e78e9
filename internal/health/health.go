// Package health reports the state of the running engine over HTTP.
//
// Components register a Check. Critical components that are unhealthy
// make the whole process unhealthy; anything else only degrades it.
package health

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"sort"
	"sync"
	"time"
)

// Status represents the health status of a component.
type Status string

const (
	StatusHealthy   Status = "healthy"
	StatusDegraded  Status = "degraded"
	StatusUnhealthy Status = "unhealthy"
)

// CheckResult is the outcome of one check.
type CheckResult struct {
	Status  Status `json:"status"`
	Message string `json:"message,omitempty"`
}

// Check reports the health of one component.
type Check func(ctx context.Context) CheckResult

type component struct {
	name     string
	critical bool
	check    Check
}

// Checker aggregates component checks.
type Checker struct {
	mu         sync.RWMutex
	components map[string]component
	ready      bool
	startTime  time.Time
}

// NewChecker creates a Checker with no components.
func NewChecker() *Checker {
	return &Checker{
		components: make(map[string]component),
		startTime:  time.Now(),
	}
}

// RegisterFunc adds or replaces the check for name.
func (c *Checker) RegisterFunc(name string, critical bool, check Check) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.components[name] = component{name: name, critical: critical, check: check}
}

// SetReady marks the process as ready to serve input contexts.
func (c *Checker) SetReady(ready bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.ready = ready
}

// IsReady reports the value last given to SetReady.
func (c *Checker) IsReady() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.ready
}

// Check runs every registered check. A panicking check is reported as
// unhealthy.
func (c *Checker) Check(ctx context.Context) map[string]CheckResult {
	c.mu.RLock()
	comps := make([]component, 0, len(c.components))
	for _, comp := range c.components {
		comps = append(comps, comp)
	}
	c.mu.RUnlock()

	results := make(map[string]CheckResult, len(comps))
	for _, comp := range comps {
		results[comp.name] = runCheck(ctx, comp.check)
	}
	return results
}

func runCheck(ctx context.Context, check Check) (result CheckResult) {
	defer func() {
		if r := recover(); r != nil {
			result = CheckResult{Status: StatusUnhealthy, Message: fmt.Sprintf("check panicked: %v", r)}
		}
	}()
	return check(ctx)
}

// OverallStatus folds results into one status.
func (c *Checker) OverallStatus(results map[string]CheckResult) Status {
	c.mu.RLock()
	defer c.mu.RUnlock()

	overall := StatusHealthy
	for name, res := range results {
		switch res.Status {
		case StatusUnhealthy:
			if c.components[name].critical {
				return StatusUnhealthy
			}
			overall = StatusDegraded
		case StatusDegraded:
			overall = StatusDegraded
		}
	}
	return overall
}

// Response is the JSON body of the health endpoint.
type Response struct {
	Status     Status                 `json:"status"`
	Ready      bool                   `json:"ready"`
	Uptime     string                 `json:"uptime"`
	Components map[string]CheckResult `json:"components"`
}

// Handler serves the aggregated status. Unhealthy or not-ready processes
// answer 503.
func (c *Checker) Handler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		results := c.Check(r.Context())
		resp := Response{
			Status:     c.OverallStatus(results),
			Ready:      c.IsReady(),
			Uptime:     time.Since(c.startTime).Round(time.Second).String(),
			Components: results,
		}

		w.Header().Set("Content-Type", "application/json")
		if resp.Status == StatusUnhealthy || !resp.Ready {
			w.WriteHeader(http.StatusServiceUnavailable)
		} else {
			w.WriteHeader(http.StatusOK)
		}
		json.NewEncoder(w).Encode(resp)
	})
}

// Names returns the registered component names in order.
func (c *Checker) Names() []string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	names := make([]string, 0, len(c.components))
	for name := range c.components {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
