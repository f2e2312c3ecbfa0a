package kernel

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestResources_GetAndReleaseRoundTrip(t *testing.T) {
	tasks := newTestTasks(1)
	k := newTestKernel(t, tasks, nil)
	k.Schedule()

	require.Equal(t, uint8(0), k.ResourcesOccupied())

	k.GetResources(0x01)
	require.Equal(t, uint8(0x01), k.ResourcesOccupied())

	k.GetResources(0x02)
	require.Equal(t, uint8(0x03), k.ResourcesOccupied(), "acquiring a second resource does not release the first")

	k.ReleaseResources(0x01)
	require.Equal(t, uint8(0x02), k.ResourcesOccupied())

	k.ReleaseResources(0x02)
	require.Equal(t, uint8(0), k.ResourcesOccupied())
}

// A task whose RequiredResources does not intersect the occupied bitmap is
// unaffected by another resource being held.
func TestResources_UnrelatedResourceDoesNotBlockScheduling(t *testing.T) {
	tasks := []Task{
		{Name: "idle", Priority: 0, Entry: func(*Kernel) {}},
		{Name: "A", Priority: 1, RequiredResources: 0x01, Entry: func(*Kernel) {}},
		{Name: "B", Priority: 2, RequiredResources: 0x02, Entry: func(*Kernel) {}},
	}
	k := newTestKernel(t, tasks, nil)

	k.GetResources(0x01)
	k.Schedule()
	require.Equal(t, "B", k.tasks[k.currentTaskIndex].Name, "B requires a different resource than the one occupied")
}
