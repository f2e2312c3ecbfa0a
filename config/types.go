// Package config loads a static declarative task/timer table from HCL,
// the same configuration language the teacher codebase uses for its job
// specifications, and turns it into the fixed-size descriptor tables the
// kernel package consumes. Nothing in this package runs after StartOS —
// there is no dynamic reconfiguration, matching spec.md's Non-goals.
package config

import "time"

// System is the fully-parsed, name-resolved static configuration for one
// kernel instance.
type System struct {
	// TickPeriod records a host tick cadence for hal/simhal.Clock (the
	// kernel itself makes no assumption about absolute time). Load and
	// ApplyEnvOverrides set it; kernelctl run does not read it and takes
	// its tick period from its -period flag.
	TickPeriod time.Duration `hcl:"tick_period"`

	// Resources names the (at most 8) shared resources available to
	// RequiredResources declarations, in bit-index order.
	Resources []string `hcl:"resources"`

	Tasks  []TaskSpec  `hcl:"task"`
	Timers []TimerSpec `hcl:"timer"`
}

// TaskSpec is one task's static declaration.
type TaskSpec struct {
	Name string `hcl:",key"`

	// Priority must be unique across all tasks; 0 is reserved for the
	// conventional idle task.
	Priority uint8 `hcl:"priority"`

	// RequiredResources names entries from System.Resources.
	RequiredResources []string `hcl:"required_resources"`

	// Events names this task's own event bits, in bit-index order (at
	// most 8). Timers and other tasks refer to one of these names when
	// targeting an event owned by this task.
	Events []string `hcl:"events"`
}

// TimerSpec is one timer's static declaration.
type TimerSpec struct {
	Name string `hcl:",key"`

	// Owner names the task the expiry event is delivered to.
	Owner string `hcl:"owner"`

	// Event names one of Owner's declared Events.
	Event string `hcl:"event"`

	// InitialValue optionally arms the timer at StartOS time; 0 (the
	// default) leaves it inactive until SetTimer is called.
	InitialValue uint16 `hcl:"initial_value"`
}
