package main

import (
	"context"
	"fmt"

	"github.com/fatih/color"

	"github.com/avrkernel/osek/config"
	"github.com/avrkernel/osek/hal/simhal"
	"github.com/avrkernel/osek/kernel"
)

// stubEntries builds a no-op Entry function for every task sys declares.
// kernelctl has no access to the real application's task bodies -- it
// only knows the declarative task/timer/event names -- so every non-idle
// task here just loops forever waiting on its own full event mask and
// clearing it on wake. That is enough to exercise the scheduler, the
// resource ceiling, and timer-driven event delivery end to end without
// ever terminating a task (Non-goals forbid task termination).
func stubEntries(sys *config.System) map[string]func(*kernel.Kernel) {
	entries := make(map[string]func(*kernel.Kernel), len(sys.Tasks))
	for _, ts := range sys.Tasks {
		if ts.Priority == 0 {
			continue // idle task: config.Build supplies the default idle entry.
		}
		mask := uint8(0xFF)
		if n := len(ts.Events); n > 0 && n < 8 {
			mask = uint8(1<<uint(n)) - 1
		}
		entries[ts.Name] = func(k *kernel.Kernel) {
			for {
				k.WaitEvents(context.Background(), mask)
				k.ClearEvents(mask)
			}
		}
	}
	return entries
}

// buildKernel loads and builds a configuration file into a fully wired
// Kernel backed by a simhal.Board, registering every task's stack anchor
// with its (stub) entry function. It does not start the interrupt-driven
// Clock; callers drive ticks explicitly via k.Tick().
func buildKernel(path string) (*kernel.Kernel, *simhal.Board, error) {
	sys, err := config.Load(path)
	if err != nil {
		return nil, nil, err
	}

	tasks, timers, err := config.Build(sys, stubEntries(sys))
	if err != nil {
		return nil, nil, err
	}

	board := simhal.New(nil)
	k, err := kernel.StartOS(tasks, timers, board)
	if err != nil {
		return nil, nil, err
	}

	for i := range tasks {
		t := &tasks[i]
		board.Register(kernel.StackAnchorOf(t), t.Name, func() { t.Entry(k) })
	}

	return k, board, nil
}

// taskView is a display/filter-friendly projection of kernel.Task, tagged
// for github.com/hashicorp/go-bexpr so `kernelctl inspect --filter` can
// query plain field names instead of reflecting over the kernel's
// internal struct.
type taskView struct {
	Index             int    `bexpr:"index"`
	Name              string `bexpr:"name"`
	State             string `bexpr:"state"`
	Priority          uint8  `bexpr:"priority"`
	Events            uint8  `bexpr:"events"`
	WaitMask          uint8  `bexpr:"wait_mask"`
	RequiredResources uint8  `bexpr:"required_resources"`
}

func taskViews(k *kernel.Kernel) []taskView {
	tasks := k.Tasks()
	views := make([]taskView, len(tasks))
	for i, t := range tasks {
		views[i] = taskView{
			Index:             i,
			Name:              t.Name,
			State:             t.State.String(),
			Priority:          t.Priority,
			Events:            t.Events,
			WaitMask:          t.WaitMask,
			RequiredResources: t.RequiredResources,
		}
	}
	return views
}

// coloredState renders a task state the way the teacher's CLI colors
// status strings: Ready green, Running cyan, Waiting yellow.
func coloredState(state string) string {
	switch state {
	case "Ready":
		return color.GreenString(state)
	case "Running":
		return color.CyanString(state)
	case "Waiting":
		return color.YellowString(state)
	default:
		return state
	}
}

func printTaskTable(out func(string), views []taskView) {
	out(fmt.Sprintf("%-4s %-16s %-9s %-4s %-8s %-10s %s", "IDX", "NAME", "STATE", "PRIO", "EVENTS", "WAITMASK", "REQUIRED"))
	for _, v := range views {
		out(fmt.Sprintf("%-4d %-16s %-18s %-4d 0x%02x     0x%02x       0x%02x",
			v.Index, v.Name, coloredState(v.State), v.Priority, v.Events, v.WaitMask, v.RequiredResources))
	}
}
