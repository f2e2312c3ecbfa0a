package kernel

import "context"

// SetEvent ORs mask into tasks[taskID].Events inside a critical section.
// If the target's wait mask intersects its (now updated) events, the
// target transitions Waiting -> Ready. If the target's priority exceeds
// the currently running task's priority, a forced reschedule is raised so
// the scheduler runs on the earliest possible tick. Safe to call from
// interrupt context (i.e. from inside Tick).
func (k *Kernel) SetEvent(taskID TaskID, mask uint8) {
	k.hal.EnterCritical()
	defer k.hal.ExitCritical()

	target := &k.tasks[taskID]
	target.Events |= mask

	if target.State == Waiting && target.WaitMask&target.Events != 0 {
		target.State = Ready
		k.trace.Logf("set_event %s: %s -> Ready", target.Name, target.Name)
	}

	if k.currentTask != nil && target.Priority > k.currentTask.Priority {
		k.hal.ForceSchedule()
	}
}

// ClearEvents AND-NOTs mask out of the current task's Events, inside a
// critical section. Restricted to the owning (current) task by
// construction: it only ever touches k.currentTask.
func (k *Kernel) ClearEvents(mask uint8) {
	k.hal.EnterCritical()
	defer k.hal.ExitCritical()

	k.currentTask.Events &^= mask
}

// GetEvents returns the current task's Events, read inside a critical
// section.
func (k *Kernel) GetEvents() uint8 {
	k.hal.EnterCritical()
	defer k.hal.ExitCritical()

	return k.currentTask.Events
}

// WaitEvents blocks the calling task until at least one bit in mask is set
// on its own Events. If a requested bit is already set, it returns
// immediately without modifying Events (no auto-clear: the caller must
// call ClearEvents explicitly, or the next WaitEvents with the same mask
// returns immediately again).
//
// Calling WaitEvents while holding one or more resources is forbidden by
// the kernel's contract (it is not enforced here — see the resource
// service's priority-ceiling discussion) and can deadlock the system.
//
// ctx does not give WaitEvents a cancellation path: real hardware has
// none, and the kernel preserves that. A canceled ctx only bounds test
// harnesses (hal/simhal) and panics if it ever fires, flagging a harness
// bug rather than returning an error to the caller.
func (k *Kernel) WaitEvents(ctx context.Context, mask uint8) {
	k.hal.EnterCritical()

	self := k.currentTask
	self.WaitMask |= mask

	if self.Events&mask != 0 {
		k.hal.ExitCritical()
		return
	}

	self.State = Waiting
	k.trace.Logf("wait_events %s: Running -> Waiting", self.Name)
	k.hal.ForceSchedule()
	k.hal.ExitCritical()

	// Resumption point: the context switch itself is what wakes this
	// task back up once the scheduler re-selects it, so this is a single
	// blocking call, not a spin loop.
	k.hal.Suspend(ctx, &self.StackAnchor)
}
