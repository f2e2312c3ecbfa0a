package kernel

// priorityNone is a sentinel strictly below any valid task priority. The
// distilled design started the "best candidate so far" search at priority
// 0, which spec.md's own Open Questions flag as ambiguous (a priority-0
// task blocked by a resource ceiling could transiently look like "best so
// far" before a real candidate is found, even though the per-iteration
// eligibility check happens to make this harmless today). Starting below
// any valid value removes the ambiguity outright.
const priorityNone int16 = -1

// Schedule selects the next task to run and updates k.currentTask. It must
// be called with the kernel's critical section already held; in the kernel
// its caller is Tick, which the HAL's periodic driver runs every tick and,
// early, after a task-context kernel call raised a forced reschedule.
// Schedule runs to completion without blocking.
func (k *Kernel) Schedule() {
	bestIdx := -1
	bestPriority := priorityNone
	blocked := false

	for i := range k.tasks {
		t := &k.tasks[i]
		if t.State != Ready {
			continue
		}
		if t.RequiredResources&k.resourcesOccupied != 0 {
			blocked = true
			continue
		}
		if int16(t.Priority) > bestPriority {
			bestPriority = int16(t.Priority)
			bestIdx = i
		}
	}
	if blocked {
		k.metrics.ResourceBlockedPass()
	}

	// If no Ready-and-eligible task was found, the picked task is the
	// conventional idle task by convention, regardless of its current
	// state (it may already be Running, in which case nothing changes).
	nextIdx := bestIdx
	if nextIdx < 0 {
		nextIdx = k.idleIndex
	}
	next := &k.tasks[nextIdx]

	if k.currentTask == nil {
		// Pre-first-tick bootstrap: no task is Running yet.
		next.State = Running
		k.currentTask = next
		k.currentTaskIndex = nextIdx
		k.trace.Logf("boot -> %s", next.Name)
		k.metrics.ContextSwitch()
		return
	}

	curr := k.currentTask
	switch curr.State {
	case Ready, Waiting:
		// The running task already left Running state (yielded, blocked
		// on a wait, or was moved to Ready elsewhere). We do not touch
		// curr.State here; whoever moved it out of Running owns that.
		if next != curr {
			next.State = Running
			k.currentTask = next
			k.currentTaskIndex = nextIdx
			k.trace.Logf("%s(%s) -> %s(Running)", curr.Name, curr.State, next.Name)
			k.metrics.ContextSwitch()
		}
	case Running:
		if next != curr && int16(next.Priority) > int16(curr.Priority) {
			curr.State = Ready
			next.State = Running
			k.currentTask = next
			k.currentTaskIndex = nextIdx
			k.trace.Logf("%s(Running) preempted by %s", curr.Name, next.Name)
			k.metrics.ContextSwitch()
			k.metrics.Preemption()
		}
		// else: next == curr, or curr retains the higher priority; no change.
	}
}
