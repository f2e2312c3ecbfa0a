package main

import (
	"fmt"

	"github.com/hashicorp/cli"
	"github.com/hashicorp/go-bexpr"
	"github.com/posener/complete"

	"github.com/avrkernel/osek/kernel"
)

// InspectCommand builds a kernel from a static configuration, drives it
// for a bounded number of ticks, and prints its task table -- optionally
// filtered by a go-bexpr boolean expression -- the same way the teacher's
// CLI filters job/allocation listings server-side.
type InspectCommand struct {
	UI cli.Ui
}

func (c *InspectCommand) Help() string {
	return "Usage: kernelctl inspect [-ticks N] [-filter expr] <config.hcl>\n\n" +
		"  Builds a kernel from the given configuration, drives it for N ticks\n" +
		"  (default 1), and prints the resulting task table. -filter takes a\n" +
		"  go-bexpr expression evaluated against each task, e.g.:\n" +
		"    kernelctl inspect -filter 'state == \"Waiting\"' system.hcl"
}

func (c *InspectCommand) Synopsis() string {
	return "Inspect a kernel's task table after N simulated ticks"
}

func (c *InspectCommand) AutocompleteArgs() complete.Predictor {
	return filePredictor
}

func (c *InspectCommand) AutocompleteFlags() complete.Flags {
	return complete.Flags{
		"-ticks":  complete.PredictAnything,
		"-filter": complete.PredictAnything,
	}
}

func (c *InspectCommand) Run(args []string) int {
	m := &Meta{UI: c.UI}
	fs := m.flagSet("inspect")
	ticks := fs.Int("ticks", 1, "number of ticks to simulate before printing")
	filter := fs.String("filter", "", "go-bexpr expression to filter the printed tasks")
	if err := fs.Parse(args); err != nil {
		return 1
	}
	if fs.NArg() != 1 {
		return m.errf("inspect requires exactly one configuration file argument")
	}

	k, _, err := buildKernel(fs.Arg(0))
	if err != nil {
		return m.errf("%s", err)
	}
	for i := 0; i < *ticks; i++ {
		k.Tick()
	}

	views := taskViews(k)
	if *filter != "" {
		eval, err := bexpr.CreateEvaluator(*filter)
		if err != nil {
			return m.errf("invalid filter expression: %s", err)
		}
		filtered := views[:0]
		for _, v := range views {
			ok, err := eval.Evaluate(v)
			if err != nil {
				return m.errf("evaluate filter against task %q: %s", v.Name, err)
			}
			if ok {
				filtered = append(filtered, v)
			}
		}
		views = filtered
	}

	printTaskTable(c.UI.Output, views)
	c.UI.Output("")
	c.UI.Output(resourcesLine(k))
	return 0
}

func resourcesLine(k *kernel.Kernel) string {
	return fmt.Sprintf("resources occupied: 0x%02x", k.ResourcesOccupied())
}
