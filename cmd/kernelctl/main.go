// Command kernelctl is the operator-facing tool for the kernel: it
// validates a static HCL configuration, runs a bounded smoke test against
// a simhal-backed kernel instance, and inspects or replays the resulting
// task/timer snapshot and scheduling trace. None of this is part of the
// kernel's own runtime contract (spec.md §6: "CLI / environment /
// persisted state: none") -- kernelctl talks to an in-process kernel it
// builds itself from a configuration file, never to a remote server.
package main

import (
	"fmt"
	"os"

	"github.com/hashicorp/cli"
)

// version is overridden at build time via -ldflags, matching the
// teacher's convention for its own CLI binary.
var version = "dev"

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	ui := &cli.BasicUi{
		Reader:      os.Stdin,
		Writer:      os.Stdout,
		ErrorWriter: os.Stderr,
	}

	c := cli.NewCLI("kernelctl", version)
	c.Args = args
	c.Autocomplete = true
	c.Commands = map[string]cli.CommandFactory{
		"validate": func() (cli.Command, error) { return &ValidateCommand{UI: ui}, nil },
		"inspect":  func() (cli.Command, error) { return &InspectCommand{UI: ui}, nil },
		"trace":    func() (cli.Command, error) { return &TraceCommand{UI: ui}, nil },
		"run":      func() (cli.Command, error) { return &RunCommand{UI: ui}, nil },
	}

	exitStatus, err := c.Run()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	return exitStatus
}
