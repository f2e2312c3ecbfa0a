package kernel_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/avrkernel/osek/hal/simhal"
	"github.com/avrkernel/osek/kernel"
)

// Scenario 2 (Wake): a task calls wait_events with none of its awaited
// events set and transitions to Waiting; an interrupt (here, the test
// goroutine standing in for one) calls set_event with the awaited bit;
// the task transitions to Ready and the next scheduling tick resumes it.
// This is the one kernel-package test that needs hal/simhal's real
// goroutine-and-channel context-switch machinery rather than direct field
// manipulation, since WaitEvents actually suspends the calling goroutine.
func TestWaitEvents_WakesOnMatchingSetEvent(t *testing.T) {
	const waitMask uint8 = 0x01

	woke := make(chan struct{}, 8)
	tasks := []kernel.Task{
		{Name: "idle", Priority: 0, Entry: func(*kernel.Kernel) { select {} }},
		{Name: "A", Priority: 1, Entry: func(k *kernel.Kernel) {
			for {
				k.WaitEvents(context.Background(), waitMask)
				select {
				case woke <- struct{}{}:
				default:
				}
				k.ClearEvents(waitMask)
			}
		}},
	}

	board := simhal.New(nil)
	k, err := kernel.StartOS(tasks, nil, board)
	require.NoError(t, err)
	board.Register(kernel.StackAnchorOf(&tasks[0]), tasks[0].Name, func() { tasks[0].Entry(k) })
	board.Register(kernel.StackAnchorOf(&tasks[1]), tasks[1].Name, func() { tasks[1].Entry(k) })

	k.Tick() // bootstrap: A outranks idle, so A is picked and starts running
	require.Equal(t, 1, k.CurrentTaskIndex())

	require.Eventually(t, func() bool {
		return k.Tasks()[1].State == kernel.Waiting
	}, time.Second, time.Millisecond, "A must self-park in WaitEvents before the next tick")

	k.Tick() // A is Waiting: the scheduler falls back to idle
	require.Equal(t, 0, k.CurrentTaskIndex())
	require.Equal(t, kernel.Waiting, k.Tasks()[1].State)

	k.SetEvent(kernel.TaskID(1), waitMask)
	require.Equal(t, kernel.Ready, k.Tasks()[1].State)

	k.Tick() // A outranks idle again and is resumed, not restarted
	require.Equal(t, 1, k.CurrentTaskIndex())

	require.Eventually(t, func() bool {
		select {
		case <-woke:
			return true
		default:
			return false
		}
	}, time.Second, time.Millisecond, "A's goroutine must actually resume past its Suspend call")

	require.Eventually(t, func() bool {
		return k.Tasks()[1].State == kernel.Waiting
	}, time.Second, time.Millisecond, "A clears its event and waits again, completing the cycle")
}

// A RestoreContext that wins the race against the target goroutine still
// reaching hal.Suspend must not lose the wakeup (the lost-wakeup hazard
// hal/simhal's buffered resume channel exists to close). This test is a
// stress regression for that race: it runs the wake cycle many times in a
// tight loop, which would eventually deadlock on an unbuffered channel.
func TestWaitEvents_RepeatedWakeDoesNotDeadlock(t *testing.T) {
	const waitMask uint8 = 0x01
	tasks := []kernel.Task{
		{Name: "idle", Priority: 0, Entry: func(*kernel.Kernel) { select {} }},
		{Name: "A", Priority: 1, Entry: func(k *kernel.Kernel) {
			for {
				k.WaitEvents(context.Background(), waitMask)
				k.ClearEvents(waitMask)
			}
		}},
	}

	board := simhal.New(nil)
	k, err := kernel.StartOS(tasks, nil, board)
	require.NoError(t, err)
	board.Register(kernel.StackAnchorOf(&tasks[0]), tasks[0].Name, func() { tasks[0].Entry(k) })
	board.Register(kernel.StackAnchorOf(&tasks[1]), tasks[1].Name, func() { tasks[1].Entry(k) })

	k.Tick() // bootstrap: A outranks idle
	for i := 0; i < 200; i++ {
		require.Eventually(t, func() bool {
			return k.Tasks()[1].State == kernel.Waiting
		}, time.Second, time.Millisecond)

		k.Tick() // A is Waiting: fall back to idle, exactly as a real tick cycle would
		require.Equal(t, 0, k.CurrentTaskIndex())

		k.SetEvent(kernel.TaskID(1), waitMask)
		k.Tick() // A outranks idle again and is resumed
		require.Equal(t, 1, k.CurrentTaskIndex())
	}
}
