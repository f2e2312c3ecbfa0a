package kernel

import (
	"fmt"

	"github.com/hashicorp/go-multierror"
	"github.com/hashicorp/go-set/v3"
)

// Validate checks the static task/timer tables for the configuration-time
// contract violations spec.md §7 says are otherwise silent or undefined:
// duplicate priorities, out-of-range timer ownership, and a missing idle
// task. It never runs after StartOS; there is no dynamic reconfiguration.
// Every problem found is reported, via go-multierror, instead of stopping
// at the first one.
func Validate(tasks []Task, timers []Timer) error {
	var result *multierror.Error

	if len(tasks) == 0 {
		result = multierror.Append(result, fmt.Errorf("task table must declare at least one task (the idle task)"))
		return result.ErrorOrNil()
	}
	if len(tasks) > 256 {
		result = multierror.Append(result, fmt.Errorf("task table has %d entries, exceeds the 256 limit", len(tasks)))
	}
	if len(timers) > 256 {
		result = multierror.Append(result, fmt.Errorf("timer table has %d entries, exceeds the 256 limit", len(timers)))
	}

	seenPriority := set.New[uint8](len(tasks))
	idleCandidates := 0
	for i, t := range tasks {
		if seenPriority.Contains(t.Priority) {
			result = multierror.Append(result, fmt.Errorf("task %q (index %d): priority %d is not unique", t.Name, i, t.Priority))
		}
		seenPriority.Insert(t.Priority)

		if t.Entry == nil {
			result = multierror.Append(result, fmt.Errorf("task %q (index %d): no entry function", t.Name, i))
		}
		if t.Priority == 0 {
			idleCandidates++
		}
	}
	if idleCandidates == 0 {
		result = multierror.Append(result, fmt.Errorf("no task declares priority 0; the scheduler requires a conventional idle task at priority 0"))
	} else if idleCandidates > 1 {
		result = multierror.Append(result, fmt.Errorf("%d tasks declare priority 0; priorities must be unique and exactly one must be the idle task", idleCandidates))
	}

	for i, tm := range timers {
		if int(tm.OwnerTask) >= len(tasks) {
			result = multierror.Append(result, fmt.Errorf("timer %q (index %d): owner task id %d is out of range (%d tasks declared)", tm.Name, i, tm.OwnerTask, len(tasks)))
		}
	}

	return result.ErrorOrNil()
}

// ValidateResourceDeclarations is a configuration-time lint, not a runtime
// check (GetResources/ReleaseResources stay exactly as permissive as
// spec.md §7 describes). It flags a resource bit claimed by only one task:
// the priority-ceiling mechanism (Schedule excluding a task while its
// RequiredResources overlaps resourcesOccupied) only serializes access
// between two or more declaring tasks, so a bit required by a single task
// protects nothing — almost always a missing or misspelled resource name
// on its would-be other owner. Called by config.Build, not by Validate
// itself, since it is advisory rather than a hard startup precondition.
func ValidateResourceDeclarations(tasks []Task) error {
	var result *multierror.Error

	var counts [8]int
	for _, t := range tasks {
		for bit := uint(0); bit < 8; bit++ {
			if t.RequiredResources&(1<<bit) != 0 {
				counts[bit]++
			}
		}
	}
	for bit, n := range counts {
		if n == 1 {
			result = multierror.Append(result, fmt.Errorf("resource bit %d is required by exactly one task; a resource shared by only one task serializes nothing", bit))
		}
	}
	return result.ErrorOrNil()
}

// idleTaskIndex returns the index of the conventional idle task: the task
// declaring priority 0. Validate must have already confirmed exactly one
// such task exists.
func idleTaskIndex(tasks []Task) int {
	for i, t := range tasks {
		if t.Priority == 0 {
			return i
		}
	}
	return -1
}
