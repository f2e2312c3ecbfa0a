package main

import (
	"github.com/hashicorp/cli"
	"github.com/posener/complete"
)

// TraceCommand builds a kernel from a static configuration, drives it for
// a bounded number of ticks, and dumps its bounded scheduling-decision
// ring buffer -- the host-testable stand-in for the on-chip trace buffer
// an embedded kernel keeps when there's no room for a full log.
type TraceCommand struct {
	UI cli.Ui
}

func (c *TraceCommand) Help() string {
	return "Usage: kernelctl trace [-ticks N] <config.hcl>\n\n" +
		"  Builds a kernel from the given configuration, drives it for N ticks\n" +
		"  (default 8), and dumps the resulting scheduling-decision trace."
}

func (c *TraceCommand) Synopsis() string {
	return "Replay a kernel's scheduling-decision trace buffer"
}

func (c *TraceCommand) AutocompleteArgs() complete.Predictor {
	return filePredictor
}

func (c *TraceCommand) AutocompleteFlags() complete.Flags {
	return complete.Flags{
		"-ticks": complete.PredictAnything,
	}
}

func (c *TraceCommand) Run(args []string) int {
	m := &Meta{UI: c.UI}
	fs := m.flagSet("trace")
	ticks := fs.Int("ticks", 8, "number of ticks to simulate before dumping the trace")
	if err := fs.Parse(args); err != nil {
		return 1
	}
	if fs.NArg() != 1 {
		return m.errf("trace requires exactly one configuration file argument")
	}

	k, _, err := buildKernel(fs.Arg(0))
	if err != nil {
		return m.errf("%s", err)
	}
	for i := 0; i < *ticks; i++ {
		k.Tick()
	}

	c.UI.Output(k.Trace())
	return 0
}
