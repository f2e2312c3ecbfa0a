// Package hal declares the hardware-abstraction contract the kernel
// consumes: global interrupt control, forced rescheduling, and
// save/restore of a task's machine context. The kernel never implements
// these itself — a concrete board (or, for tests, hal/simhal) does.
package hal

import "context"

// StackAnchor is the opaque slot a task's saved stack pointer lives in.
// On real hardware this is a raw address; here it is whatever the
// Controller implementation needs to resume the task (simhal leaves Opaque
// unset and keys its per-task resume channel by the anchor's address).
type StackAnchor struct {
	// Opaque is implementation-defined storage. The kernel never
	// dereferences it directly; only a Controller implementation does.
	Opaque any
}

// Controller is the hardware-abstraction-layer contract consumed by the
// kernel. Every method is expected to be cheap and non-blocking except
// Suspend, which blocks the calling task's flow until a later
// RestoreContext against the same anchor resumes it.
type Controller interface {
	// DisableAllInterrupts masks every interrupt source. Used only at
	// StartOS/ShutdownOS boundaries, not for per-call critical sections.
	DisableAllInterrupts()

	// EnableAllInterrupts unmasks every interrupt source.
	EnableAllInterrupts()

	// EnterCritical begins a critical section: every kernel service body
	// that mutates shared state runs inside one. Interrupt nesting is out
	// of scope, so implementations need not support a nested EnterCritical.
	EnterCritical()

	// ExitCritical ends the critical section started by EnterCritical.
	ExitCritical()

	// ForceSchedule ensures the scheduler runs at the earliest possible
	// subsequent instruction cycle (on real hardware: by winding the
	// driving timer so it overflows immediately).
	ForceSchedule()

	// SaveContext pushes the full register set and status word of the
	// currently running flow onto its own stack and records the resulting
	// stack pointer in the anchor StackAnchorOf(t) names.
	SaveContext(anchor *StackAnchor)

	// RestoreContext loads the stack pointer from the given anchor and
	// resumes execution there. For a task that has never run, this is the
	// bootstrap jump to the task's entry function.
	RestoreContext(anchor *StackAnchor)

	// Suspend is the task-context counterpart of SaveContext/
	// RestoreContext: it is called by a task's own execution flow (from
	// WaitEvents) to give up the CPU until some later RestoreContext call
	// against the same anchor resumes it. ctx exists only so a test
	// harness can bound how long it waits for a resume that never comes;
	// a production implementation on real hardware never observes ctx
	// firing, because there is no cancellation path out of a wait.
	Suspend(ctx context.Context, anchor *StackAnchor)
}
