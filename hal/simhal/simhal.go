// Package simhal provides a host-testable implementation of hal.Controller.
// It exists so the kernel package's scheduling, event, resource, and timer
// logic can be exercised and tested without real microcontroller hardware.
// It is infrastructure for testing the kernel, not a general-purpose
// hardware emulator and not the out-of-scope board-game demonstration
// application.
//
// Each task is represented by a goroutine, spawned lazily the first time
// its context is restored (mirroring the bootstrap jump-to-entry-point
// protocol described by the kernel package). A task goroutine runs until
// it calls into a kernel operation that suspends it (WaitEvents); Go gives
// us no way to preempt a goroutine mid-instruction the way a hardware
// interrupt preempts a CPU core, so task Entry functions are expected to
// do bounded work between suspension points, exactly as a well-behaved
// OSEK task does between its own wait_events calls.
package simhal

import (
	"context"
	"sync"

	"github.com/hashicorp/go-hclog"

	"github.com/avrkernel/osek/hal"
)

// taskHandle tracks one task's goroutine lifecycle.
type taskHandle struct {
	name    string
	entry   func()
	mu      sync.Mutex
	started bool
	resume  chan struct{}
}

// Board is a host implementation of hal.Controller backed by goroutines
// and a single mutex standing in for "global interrupts disabled" — a
// faithful encoding of the single-core, non-nested-interrupt model: the
// critical-section lock is never held across a blocking call.
type Board struct {
	logger hclog.Logger

	crit sync.Mutex

	mu                sync.Mutex
	interruptsEnabled bool
	forceCh           chan struct{}

	handles map[*hal.StackAnchor]*taskHandle
}

// New constructs a Board. A nil logger is replaced with a no-op logger.
func New(logger hclog.Logger) *Board {
	if logger == nil {
		logger = hclog.NewNullLogger()
	}
	return &Board{
		logger:  logger,
		forceCh: make(chan struct{}, 1),
		handles: make(map[*hal.StackAnchor]*taskHandle),
	}
}

// Register associates a task's stack anchor with its entry function,
// before StartOS ever runs. Without a prior Register call, RestoreContext
// for an unknown anchor is a harness programmer error.
func (b *Board) Register(anchor *hal.StackAnchor, name string, entry func()) {
	b.mu.Lock()
	defer b.mu.Unlock()
	// resume is buffered so a RestoreContext that wins the race against
	// this task's own goroutine reaching Suspend still latches the
	// wakeup instead of losing it to the non-blocking send's default
	// case below.
	b.handles[anchor] = &taskHandle{name: name, entry: entry, resume: make(chan struct{}, 1)}
}

func (b *Board) DisableAllInterrupts() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.interruptsEnabled = false
}

func (b *Board) EnableAllInterrupts() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.interruptsEnabled = true
}

func (b *Board) EnterCritical() {
	b.crit.Lock()
}

func (b *Board) ExitCritical() {
	b.crit.Unlock()
}

// ForceSchedule is a non-blocking wakeup of the Clock driver loop, if one
// is running; it never blocks the caller, matching the HAL contract.
func (b *Board) ForceSchedule() {
	select {
	case b.forceCh <- struct{}{}:
	default:
	}
}

// SaveContext has nothing to push on a host goroutine's real stack; the
// task's state already lives entirely in its kernel.Task descriptor. It
// exists to keep the Tick call site faithful to the documented protocol.
func (b *Board) SaveContext(anchor *hal.StackAnchor) {
	b.logger.Trace("save_context", "anchor", anchor)
}

// RestoreContext resumes the task owning anchor: spawning its goroutine on
// first use (the bootstrap jump to the entry point), or unparking it if it
// had previously called Suspend.
func (b *Board) RestoreContext(anchor *hal.StackAnchor) {
	b.mu.Lock()
	h, ok := b.handles[anchor]
	b.mu.Unlock()
	if !ok {
		panic("simhal: RestoreContext on an unregistered stack anchor")
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	if !h.started {
		h.started = true
		go h.entry()
		return
	}
	select {
	case h.resume <- struct{}{}:
	default:
		// Already running or already signaled; nothing to do. A task
		// whose own goroutine is mid-execution (not parked in Suspend)
		// is, by construction, the one that was already Running.
	}
}

// Suspend parks the calling goroutine until Board resumes anchor via
// RestoreContext, or ctx is done — the latter is a test-harness-only
// escape hatch that never fires in a correct kernel use, since real
// hardware has no way to cancel a wait.
func (b *Board) Suspend(ctx context.Context, anchor *hal.StackAnchor) {
	b.mu.Lock()
	h, ok := b.handles[anchor]
	b.mu.Unlock()
	if !ok {
		panic("simhal: Suspend on an unregistered stack anchor")
	}

	select {
	case <-h.resume:
	case <-ctx.Done():
		panic("simhal: context canceled while a task was suspended; this is a test-harness contract violation, not a supported kernel path")
	}
}
