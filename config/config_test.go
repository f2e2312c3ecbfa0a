package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/avrkernel/osek/kernel"
)

const sampleHCL = `
tick_period = "10ms"
resources = ["spi"]

task "idle" {
  priority = 0
}

task "worker" {
  priority = 1
  required_resources = ["spi"]
  events = ["tick", "done"]
}

task "logger" {
  priority = 2
  required_resources = ["spi"]
}

timer "watchdog" {
  owner = "worker"
  event = "tick"
  initial_value = 5
}
`

func writeFixture(t *testing.T, contents string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "system.hcl")
	require.NoError(t, os.WriteFile(path, []byte(contents), 0o644))
	return path
}

func TestLoad_ParsesWellFormedFile(t *testing.T) {
	path := writeFixture(t, sampleHCL)
	sys, err := Load(path)
	require.NoError(t, err)

	require.Equal(t, 10*time.Millisecond, sys.TickPeriod)
	require.Equal(t, []string{"spi"}, sys.Resources)
	require.Len(t, sys.Tasks, 3)
	require.Len(t, sys.Timers, 1)
}

func TestLoad_RejectsMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "does-not-exist.hcl"))
	require.Error(t, err)
}

func TestBuild_ResolvesNamesToIndicesAndBitmasks(t *testing.T) {
	path := writeFixture(t, sampleHCL)
	sys, err := Load(path)
	require.NoError(t, err)

	entries := map[string]func(*kernel.Kernel){
		"worker": func(*kernel.Kernel) {},
		"logger": func(*kernel.Kernel) {},
	}
	tasks, timers, err := Build(sys, entries)
	require.NoError(t, err)
	require.Len(t, tasks, 3)
	require.Len(t, timers, 1)

	require.Equal(t, "worker", tasks[1].Name)
	require.Equal(t, uint8(0x01), tasks[1].RequiredResources, "spi is resource bit 0")

	require.Equal(t, kernel.TaskID(1), timers[0].OwnerTask)
	require.Equal(t, uint8(0x01), timers[0].Event, "tick is worker's event bit 0")
	require.Equal(t, uint16(5), timers[0].Value)
}

func TestBuild_SuppliesDefaultIdleEntry(t *testing.T) {
	path := writeFixture(t, sampleHCL)
	sys, err := Load(path)
	require.NoError(t, err)

	tasks, _, err := Build(sys, map[string]func(*kernel.Kernel){
		"worker": func(*kernel.Kernel) {},
		"logger": func(*kernel.Kernel) {},
	})
	require.NoError(t, err)
	require.NotNil(t, tasks[0].Entry, "priority 0 task gets the default idle entry even with no matching supplied entry")
}

func TestBuild_RejectsTaskWithNoEntryAndNonZeroPriority(t *testing.T) {
	path := writeFixture(t, sampleHCL)
	sys, err := Load(path)
	require.NoError(t, err)

	_, _, err = Build(sys, map[string]func(*kernel.Kernel){})
	require.Error(t, err)
	require.ErrorContains(t, err, "no entry function")
}

func TestBuild_RejectsUndeclaredResource(t *testing.T) {
	const badHCL = `
tick_period = "10ms"
resources = ["spi"]

task "idle" {
  priority = 0
}

task "worker" {
  priority = 1
  required_resources = ["i2c"]
}
`
	path := writeFixture(t, badHCL)
	sys, err := Load(path)
	require.NoError(t, err)

	_, _, err = Build(sys, map[string]func(*kernel.Kernel){"worker": func(*kernel.Kernel) {}})
	require.Error(t, err)
	require.ErrorContains(t, err, "undeclared resource")
}

func TestBuild_RejectsTimerWithUndeclaredOwner(t *testing.T) {
	const badHCL = `
tick_period = "10ms"

task "idle" {
  priority = 0
}

timer "watchdog" {
  owner = "ghost"
  event = "tick"
}
`
	path := writeFixture(t, badHCL)
	sys, err := Load(path)
	require.NoError(t, err)

	_, _, err = Build(sys, nil)
	require.Error(t, err)
	require.ErrorContains(t, err, "not a declared task")
}

func TestBuild_RejectsTimerWithUndeclaredEvent(t *testing.T) {
	const badHCL = `
tick_period = "10ms"

task "idle" {
  priority = 0
}

task "worker" {
  priority = 1
  events = ["tick"]
}

timer "watchdog" {
  owner = "worker"
  event = "ghost"
}
`
	path := writeFixture(t, badHCL)
	sys, err := Load(path)
	require.NoError(t, err)

	_, _, err = Build(sys, map[string]func(*kernel.Kernel){"worker": func(*kernel.Kernel) {}})
	require.Error(t, err)
	require.ErrorContains(t, err, "not declared by task")
}

func TestBuild_PropagatesDuplicatePriorityFromKernelValidate(t *testing.T) {
	const badHCL = `
tick_period = "10ms"

task "idle" {
  priority = 0
}

task "a" {
  priority = 1
}

task "b" {
  priority = 1
}
`
	path := writeFixture(t, badHCL)
	sys, err := Load(path)
	require.NoError(t, err)

	_, _, err = Build(sys, map[string]func(*kernel.Kernel){
		"a": func(*kernel.Kernel) {},
		"b": func(*kernel.Kernel) {},
	})
	require.Error(t, err)
	require.ErrorContains(t, err, "not unique")
}

func TestBuild_RejectsResourceDeclaredByOnlyOneTask(t *testing.T) {
	const badHCL = `
tick_period = "10ms"
resources = ["spi"]

task "idle" {
  priority = 0
}

task "worker" {
  priority = 1
  required_resources = ["spi"]
}
`
	path := writeFixture(t, badHCL)
	sys, err := Load(path)
	require.NoError(t, err)

	_, _, err = Build(sys, map[string]func(*kernel.Kernel){"worker": func(*kernel.Kernel) {}})
	require.Error(t, err)
	require.ErrorContains(t, err, "required by exactly one task")
}
