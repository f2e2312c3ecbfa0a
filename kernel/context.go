package kernel

// Tick is the kernel's periodic interrupt handler. The HAL's periodic
// driver (hal/simhal.Clock on the host) invokes it at kernel-tick cadence.
// It follows the context-switch protocol exactly:
//
//  1. SaveContext pushes the preempted flow's register set onto its own
//     stack and records the resulting stack pointer through the current
//     task's stack anchor.
//  2. The body — here, every armed timer is ticked and the scheduler is
//     run — may reassign the current task.
//  3. RestoreContext loads the (possibly new) current task's saved stack
//     pointer and resumes it.
//
// Tick takes the critical section only around Schedule, which requires its
// caller to hold it. TickTimer manages its own; SaveContext and
// RestoreContext are called outside it.
func (k *Kernel) Tick() {
	if k.currentTask != nil {
		k.hal.SaveContext(&k.currentTask.StackAnchor)
	}

	for id := range k.timers {
		k.TickTimer(TimerID(id))
	}

	k.hal.EnterCritical()
	k.Schedule()
	k.hal.ExitCritical()

	k.hal.RestoreContext(&k.currentTask.StackAnchor)
}
