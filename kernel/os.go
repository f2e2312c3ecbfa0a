package kernel

import (
	"fmt"

	"github.com/hashicorp/go-hclog"

	"github.com/avrkernel/osek/hal"
	"github.com/avrkernel/osek/kernel/internal/metrics"
	"github.com/avrkernel/osek/kernel/internal/trace"
)

// StartOS wires the given task and timer tables into a new Kernel,
// validates them, enables global interrupts, and returns. It never leaves
// the caller blocked: on real hardware, the caller's only remaining job is
// to enter its own idle loop (the "idle task" entry) and let interrupts
// drive everything from here; in this Go encoding that idle loop is just
// the idle task's own Entry function, run like any other task.
//
// StartOS returns an error instead of proceeding on a contract violation
// spec.md would otherwise leave as undefined behavior (duplicate
// priorities, missing idle task, out-of-range timer ownership). This does
// not add a runtime error channel: every other kernel call still returns
// no status, exactly as documented.
func StartOS(tasks []Task, timers []Timer, h hal.Controller, opts ...Option) (*Kernel, error) {
	if err := Validate(tasks, timers); err != nil {
		return nil, fmt.Errorf("kernel: invalid configuration: %w", err)
	}

	k := &Kernel{
		hal:               h,
		tasks:             tasks,
		timers:            timers,
		currentTask:       nil,
		currentTaskIndex:  -1,
		resourcesOccupied: 0,
		logger:            hclog.NewNullLogger(),
		metrics:           metrics.New(),
		idleIndex:         idleTaskIndex(tasks),
	}
	for _, opt := range opts {
		opt(k)
	}
	if k.trace == nil {
		b, _ := trace.New(trace.DefaultSize)
		k.trace = b
	}

	k.logger.Info("starting kernel", "tasks", len(tasks), "timers", len(timers))
	h.EnableAllInterrupts()

	return k, nil
}

// ShutdownOS disables global interrupts and halts. It never returns on
// real hardware (the caller enters a low-power sleep forever); the Go
// encoding returns so callers (tests, kernelctl) can observe that it ran.
func (k *Kernel) ShutdownOS() {
	k.hal.DisableAllInterrupts()
	k.logger.Info("kernel halted")
}
