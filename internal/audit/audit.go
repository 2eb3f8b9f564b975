// Package audit collects the debug trail for a mirror run.
//
// The trail is an ordered, in-memory list of messages describing what a run
// did: URLs fetched, files written or skipped, stale files removed, rewrite
// failures. It is returned as part of the run result and is never persisted;
// a disabled trail discards messages so callers can log unconditionally.
package audit

import (
	"fmt"
	"sync"
)

// Trail is an append-only message collector. The zero value is disabled.
type Trail struct {
	enabled bool

	mu    sync.Mutex
	lines []string
}

// New creates a Trail. When enabled is false every Logf call is a no-op.
func New(enabled bool) *Trail {
	return &Trail{enabled: enabled}
}

// Enabled reports whether the trail records messages.
func (t *Trail) Enabled() bool {
	return t.enabled
}

// Logf appends a formatted message to the trail.
func (t *Trail) Logf(format string, args ...interface{}) {
	if !t.enabled {
		return
	}

	t.mu.Lock()
	defer t.mu.Unlock()
	t.lines = append(t.lines, fmt.Sprintf(format, args...))
}

// Lines returns a copy of the collected messages in append order.
func (t *Trail) Lines() []string {
	t.mu.Lock()
	defer t.mu.Unlock()

	out := make([]string, len(t.lines))
	copy(out, t.lines)
	return out
}

// Len returns the number of collected messages.
func (t *Trail) Len() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.lines)
}
