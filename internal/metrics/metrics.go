// Package metrics provides the instrumentation surface of the connector: a
// no-op recorder by default and a Prometheus-backed one when enabled.
package metrics

import (
	"sync"
	"time"
)

// Recorder defines the metrics surface used across the codebase.
type Recorder interface {
	IncUpstreamTotal(op string, success bool)
	ObserveUpstreamSeconds(op string, success bool, seconds float64)
	IncRequestTotal(route string, status int)
	ObserveRequestSeconds(route string, status int, seconds float64)
}

type noopRecorder struct{}

func (n *noopRecorder) IncUpstreamTotal(string, bool)                {}
func (n *noopRecorder) ObserveUpstreamSeconds(string, bool, float64) {}
func (n *noopRecorder) IncRequestTotal(string, int)                  {}
func (n *noopRecorder) ObserveRequestSeconds(string, int, float64)   {}

var (
	recMu    sync.RWMutex
	recorder Recorder = &noopRecorder{}
)

// Default returns the current recorder.
func Default() Recorder {
	recMu.RLock()
	defer recMu.RUnlock()
	return recorder
}

// SetRecorder swaps the global recorder implementation.
func SetRecorder(r Recorder) {
	recMu.Lock()
	defer recMu.Unlock()
	if r == nil {
		r = &noopRecorder{}
	}
	recorder = r
}

// TimeUpstream times one call to the external data source.
func TimeUpstream(op string) func(success bool) {
	start := time.Now()
	return func(success bool) {
		dur := time.Since(start).Seconds()
		Default().IncUpstreamTotal(op, success)
		Default().ObserveUpstreamSeconds(op, success, dur)
	}
}

// TimeRequest times one inbound request.
func TimeRequest(route string) func(status int) {
	start := time.Now()
	return func(status int) {
		dur := time.Since(start).Seconds()
		Default().IncRequestTotal(route, status)
		Default().ObserveRequestSeconds(route, status, dur)
	}
}
