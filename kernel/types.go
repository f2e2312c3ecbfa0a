// Package kernel implements a small statically-configured, fixed-priority,
// fully-preemptive multitasking kernel in the style of OSEK/VDX: a scheduler,
// a task state machine, an event service, a resource service with
// priority-ceiling semantics, and a timer service, all driven through a
// pluggable hardware-abstraction interface (see the hal package).
package kernel

import (
	"github.com/hashicorp/go-hclog"

	"github.com/avrkernel/osek/hal"
	"github.com/avrkernel/osek/kernel/internal/metrics"
	"github.com/avrkernel/osek/kernel/internal/trace"
)

// TaskState is the task state machine's current state. There is no terminal
// state: every descriptor exists for the lifetime of the process.
type TaskState uint8

const (
	// Ready means the task is eligible to run but is not currently running.
	Ready TaskState = iota
	// Running means the task is the one currently executing.
	Running
	// Waiting means the task has called WaitEvents and none of its awaited
	// events are set yet.
	Waiting
)

func (s TaskState) String() string {
	switch s {
	case Ready:
		return "Ready"
	case Running:
		return "Running"
	case Waiting:
		return "Waiting"
	default:
		return "Unknown"
	}
}

// TaskID indexes the task table. Valid values are [0, len(tasks)).
type TaskID uint8

// TimerID indexes the timer table. Valid values are [0, len(timers)).
type TimerID uint8

// Task is one task's descriptor. StackAnchor MUST remain the first field:
// the context-switch primitive locates a task's saved stack pointer through
// a single pointer-to-task, and StackAnchorOf depends on that layout.
type Task struct {
	// StackAnchor is the opaque slot the HAL's SaveContext/RestoreContext
	// read and write the task's saved stack pointer through.
	StackAnchor hal.StackAnchor

	// Name is a human-readable identifier used only for logging, tracing,
	// and CLI output. It never participates in a scheduling decision.
	Name string

	// Priority is immutable and must be unique across all tasks in a valid
	// configuration. Higher values run in preference to lower ones.
	Priority uint8

	// RequiredResources is the immutable bitmask of every resource this
	// task may ever acquire, used for priority-ceiling scheduling.
	RequiredResources uint8

	// Entry is the task's entry function, invoked the first time the
	// scheduler picks this task and the HAL restores its (virtual,
	// bootstrap) saved context.
	Entry func(k *Kernel)

	State    TaskState
	Events   uint8
	WaitMask uint8
}

// Timer is one countdown timer's descriptor.
type Timer struct {
	// Value is the remaining tick count; 0 means inactive.
	Value uint16

	// OwnerTask is the immutable task id the expiry event is delivered to.
	OwnerTask TaskID

	// Event is the immutable event bit delivered on expiry.
	Event uint8

	// Name is a human-readable identifier, logging/tracing only.
	Name string
}

// StackAnchorOf returns the address the context-switch primitive uses to
// save and restore t's stack pointer. It exists because real hardware
// context-switch macros rely on the stack anchor being locatable in O(1)
// from a bare task pointer; this accessor is the portable equivalent of
// that pointer-punning trick.
func StackAnchorOf(t *Task) *hal.StackAnchor {
	return &t.StackAnchor
}

// Kernel is the single kernel instance: the task table, the timer table,
// the resources-occupied bitmap, and the services that operate on them.
type Kernel struct {
	hal hal.Controller

	tasks  []Task
	timers []Timer

	currentTask      *Task
	currentTaskIndex int

	resourcesOccupied uint8

	logger  hclog.Logger
	trace   *trace.Buffer
	metrics *metrics.Sink

	// idleIndex is the index of the conventional idle task: lowest
	// priority (0), no required resources, selected by the scheduler
	// whenever no other task is Ready-and-eligible.
	idleIndex int
}

// Option configures optional, non-functional kernel behavior (logging,
// tracing, metrics). The zero value of Kernel is never used directly;
// construct one with StartOS.
type Option func(*Kernel)

// WithLogger injects a structured logger. Defaults to hclog.NewNullLogger().
func WithLogger(l hclog.Logger) Option {
	return func(k *Kernel) { k.logger = l }
}

// WithTraceSize sets the capacity, in bytes, of the scheduling-decision ring
// buffer consumed by kernelctl trace. Defaults to 4096 bytes.
func WithTraceSize(n int64) Option {
	return func(k *Kernel) {
		b, err := trace.New(n)
		if err == nil {
			k.trace = b
		}
	}
}

// Tasks returns a read-only snapshot of the task table, for inspection
// tooling. It must not be used to drive scheduling decisions from outside
// the kernel package.
func (k *Kernel) Tasks() []Task {
	out := make([]Task, len(k.tasks))
	copy(out, k.tasks)
	return out
}

// Timers returns a read-only snapshot of the timer table.
func (k *Kernel) Timers() []Timer {
	out := make([]Timer, len(k.timers))
	copy(out, k.timers)
	return out
}

// ResourcesOccupied returns the current resources-occupied bitmask.
func (k *Kernel) ResourcesOccupied() uint8 {
	return k.resourcesOccupied
}

// Trace returns the recent scheduling-decision log lines, oldest first.
func (k *Kernel) Trace() string {
	if k.trace == nil {
		return ""
	}
	return k.trace.String()
}

// CurrentTaskIndex returns the index into Tasks() of the currently
// executing task.
func (k *Kernel) CurrentTaskIndex() int {
	return k.currentTaskIndex
}
