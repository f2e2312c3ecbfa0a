package kernel

// SetTimer writes value into the given timer's remaining tick count inside
// a critical section. Setting 0 disables the timer.
func (k *Kernel) SetTimer(id TimerID, value uint16) {
	k.hal.EnterCritical()
	defer k.hal.ExitCritical()

	k.timers[id].Value = value
}

// TickTimer decrements the given timer's remaining count by one, inside a
// critical section, if it is currently armed (Value > 0). If it reaches
// zero, it posts its configured event to its configured owner task via
// SetEvent. The tick cadence is defined entirely by the caller; the kernel
// makes no assumption about absolute time.
func (k *Kernel) TickTimer(id TimerID) {
	k.hal.EnterCritical()
	t := &k.timers[id]
	if t.Value == 0 {
		k.hal.ExitCritical()
		return
	}
	t.Value--
	expired := t.Value == 0
	owner, event := t.OwnerTask, t.Event
	k.hal.ExitCritical()

	if expired {
		k.metrics.TimerExpiry()
		k.trace.Logf("timer %s expired -> task %d event 0x%02x", t.Name, owner, event)
		k.SetEvent(owner, event)
	}
}
