// Package metrics counts kernel-internal events (context switches,
// preemptions, resource-blocked scheduling passes, timer expiries) through
// hashicorp/go-metrics, the same instrumentation library the teacher
// codebase uses for its own scheduler and client subsystems.
package metrics

import (
	"time"

	gometrics "github.com/hashicorp/go-metrics"
)

// Sink wraps a go-metrics handle scoped to the kernel subsystem. The zero
// value is safe to use and records nothing; use New for an in-memory sink.
type Sink struct {
	m *gometrics.Metrics
}

// New constructs a Sink backed by an in-memory go-metrics sink, so host
// tests can assert on counters without standing up a real collector.
func New() *Sink {
	cfg := gometrics.DefaultConfig("kernel")
	cfg.EnableHostname = false
	cfg.EnableRuntimeMetrics = false
	inmem := gometrics.NewInmemSink(10*time.Second, time.Minute)
	m, err := gometrics.New(cfg, inmem)
	if err != nil {
		return &Sink{}
	}
	return &Sink{m: m}
}

func (s *Sink) inc(key string) {
	if s == nil || s.m == nil {
		return
	}
	s.m.IncrCounter([]string{key}, 1)
}

// ContextSwitch records a context switch (a new task became Running).
func (s *Sink) ContextSwitch() { s.inc("context_switch") }

// Preemption records the Running task being preempted by a higher-priority one.
func (s *Sink) Preemption() { s.inc("preemption") }

// ResourceBlockedPass records a scheduling pass in which at least one
// otherwise-ready task was excluded by the priority ceiling.
func (s *Sink) ResourceBlockedPass() { s.inc("resource_blocked_pass") }

// TimerExpiry records a timer reaching zero and posting its event.
func (s *Sink) TimerExpiry() { s.inc("timer_expiry") }
