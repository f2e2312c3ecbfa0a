package config

import (
	"fmt"
	"os"

	"github.com/hashicorp/go-multierror"
	"github.com/hashicorp/hcl"

	"github.com/avrkernel/osek/kernel"
)

// Load reads and decodes an HCL configuration file into a System, applying
// KERNEL_*-prefixed environment overrides on top (see ApplyEnvOverrides).
// It performs only syntactic/structural validation here; cross-referential
// validation (duplicate priorities, dangling names) happens in Build,
// because it requires the fully name-resolved table.
func Load(path string) (*System, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: read %s: %w", path, err)
	}

	var sys System
	if err := hcl.Decode(&sys, string(data)); err != nil {
		return nil, fmt.Errorf("config: parse %s: %w", path, err)
	}

	if err := ApplyEnvOverrides(&sys, os.Environ()); err != nil {
		return nil, fmt.Errorf("config: environment overrides: %w", err)
	}

	return &sys, nil
}

// Build resolves the System's name-based declarations into the kernel
// package's index/bitmask-based descriptor tables. entries supplies each
// named task's entry function; a task with no matching entry defaults to
// idleEntry, which blocks forever (appropriate only for the conventional
// priority 0 idle task — Build reports an error if any other task is
// missing one). Name-resolution errors and the kernel.Validate and
// kernel.ValidateResourceDeclarations findings are reported together.
func Build(sys *System, entries map[string]func(k *kernel.Kernel)) ([]kernel.Task, []kernel.Timer, error) {
	var result *multierror.Error

	if len(sys.Resources) > 8 {
		result = multierror.Append(result, fmt.Errorf("config: %d resources declared, at most 8 are supported", len(sys.Resources)))
	}
	resourceBit := make(map[string]uint8, len(sys.Resources))
	for i, name := range sys.Resources {
		resourceBit[name] = uint8(i)
	}

	taskIndex := make(map[string]int, len(sys.Tasks))
	eventBit := make(map[string]map[string]uint8, len(sys.Tasks))
	for i, ts := range sys.Tasks {
		taskIndex[ts.Name] = i
		if len(ts.Events) > 8 {
			result = multierror.Append(result, fmt.Errorf("config: task %q declares %d events, at most 8 are supported", ts.Name, len(ts.Events)))
		}
		bits := make(map[string]uint8, len(ts.Events))
		for j, ev := range ts.Events {
			bits[ev] = uint8(j)
		}
		eventBit[ts.Name] = bits
	}

	tasks := make([]kernel.Task, len(sys.Tasks))
	for i, ts := range sys.Tasks {
		var required uint8
		for _, r := range ts.RequiredResources {
			bit, ok := resourceBit[r]
			if !ok {
				result = multierror.Append(result, fmt.Errorf("config: task %q requires undeclared resource %q", ts.Name, r))
				continue
			}
			required |= 1 << bit
		}

		entry := entries[ts.Name]
		if entry == nil {
			if ts.Priority != 0 {
				result = multierror.Append(result, fmt.Errorf("config: task %q has no entry function", ts.Name))
			}
			entry = idleEntry
		}

		tasks[i] = kernel.Task{
			Name:              ts.Name,
			Priority:          ts.Priority,
			RequiredResources: required,
			Entry:             entry,
		}
	}

	timers := make([]kernel.Timer, len(sys.Timers))
	for i, tmr := range sys.Timers {
		ownerIdx, ok := taskIndex[tmr.Owner]
		if !ok {
			result = multierror.Append(result, fmt.Errorf("config: timer %q owner %q is not a declared task", tmr.Name, tmr.Owner))
			continue
		}
		bit, ok := eventBit[tmr.Owner][tmr.Event]
		if !ok {
			result = multierror.Append(result, fmt.Errorf("config: timer %q event %q is not declared by task %q", tmr.Name, tmr.Event, tmr.Owner))
			continue
		}
		timers[i] = kernel.Timer{
			Name:      tmr.Name,
			OwnerTask: kernel.TaskID(ownerIdx),
			Event:     1 << bit,
			Value:     tmr.InitialValue,
		}
	}

	if err := kernel.Validate(tasks, timers); err != nil {
		result = multierror.Append(result, err)
	}
	if err := kernel.ValidateResourceDeclarations(tasks); err != nil {
		result = multierror.Append(result, err)
	}
	if err := result.ErrorOrNil(); err != nil {
		return nil, nil, err
	}
	return tasks, timers, nil
}

// idleEntry is the default entry function for a task with no supplied
// behavior: it blocks its goroutine forever on an empty select, without
// calling into the kernel, matching the "enter a low-power
// state" idle loop described in spec.md §4.7. Real board code replaces
// this with an actual low-power-sleep instruction sequence; hal.Controller
// implementations are free to treat an idle task specially.
func idleEntry(_ *kernel.Kernel) {
	select {}
}
