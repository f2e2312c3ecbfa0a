package kernel

// GetResources ORs mask into the resources-occupied bitmap inside a
// critical section. It never blocks: correctness depends entirely on
// every task that may touch the protected data declaring the
// corresponding bits in its RequiredResources field, so the scheduler
// refuses to run any such task while the bits are set (see Schedule).
//
// Nesting is allowed only if strictly LIFO (bracketed); the kernel does
// not verify this at runtime — see ValidateResourceDeclarations for a
// configuration-time lint that catches some misdeclarations before
// StartOS.
func (k *Kernel) GetResources(mask uint8) {
	k.hal.EnterCritical()
	defer k.hal.ExitCritical()

	k.resourcesOccupied |= mask
}

// ReleaseResources AND-NOTs mask out of the resources-occupied bitmap
// inside a critical section, then unconditionally raises a forced
// reschedule so a previously-blocked higher-priority task can preempt
// before the releaser executes further work. This is intentionally
// unconditional rather than checking whether any blocked task actually
// needed the released bits — see DESIGN.md for why that's kept as-is.
func (k *Kernel) ReleaseResources(mask uint8) {
	k.hal.EnterCritical()
	k.resourcesOccupied &^= mask
	k.hal.ExitCritical()

	k.hal.ForceSchedule()
}
