package main

import (
	"context"
	"fmt"
	"time"

	"github.com/hashicorp/cli"
	"github.com/posener/complete"
	"golang.org/x/sync/errgroup"

	"github.com/avrkernel/osek/hal/simhal"
)

// RunCommand is the minimal smoke-test harness: it drives a kernel built
// from a static configuration in real time, at a configurable tick
// period, for a bounded duration, then prints the final task snapshot.
// This is NOT the out-of-scope board-game demonstration application --
// it runs only the stub task bodies kernelctl itself supplies (see
// harness.go) -- but it is the one place kernelctl exercises the
// interrupt-driven Clock instead of calling Tick synchronously.
type RunCommand struct {
	UI cli.Ui
}

func (c *RunCommand) Help() string {
	return "Usage: kernelctl run [-period D] [-duration D] <config.hcl>\n\n" +
		"  Drives a kernel built from the given configuration in real time,\n" +
		"  ticking every -period (default 10ms) for -duration (default 1s),\n" +
		"  then prints the final task table. A failing task goroutine aborts\n" +
		"  the whole run instead of hanging silently."
}

func (c *RunCommand) Synopsis() string {
	return "Run a kernel built from a configuration file for a bounded duration"
}

func (c *RunCommand) AutocompleteArgs() complete.Predictor {
	return filePredictor
}

func (c *RunCommand) AutocompleteFlags() complete.Flags {
	return complete.Flags{
		"-period":   complete.PredictAnything,
		"-duration": complete.PredictAnything,
	}
}

func (c *RunCommand) Run(args []string) int {
	m := &Meta{UI: c.UI}
	fs := m.flagSet("run")
	period := fs.Duration("period", 10*time.Millisecond, "tick period")
	duration := fs.Duration("duration", time.Second, "total run duration")
	if err := fs.Parse(args); err != nil {
		return 1
	}
	if fs.NArg() != 1 {
		return m.errf("run requires exactly one configuration file argument")
	}

	k, board, err := buildKernel(fs.Arg(0))
	if err != nil {
		return m.errf("%s", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), *duration)
	defer cancel()

	g, gctx := errgroup.WithContext(ctx)
	clock := simhal.NewClock(board, tickerFunc(k.Tick), *period)
	clock.Run(gctx, g)

	<-ctx.Done()
	if err := g.Wait(); err != nil {
		return m.errf("run: %s", err)
	}

	k.ShutdownOS()
	c.UI.Output(fmt.Sprintf("ran for %s at %s tick period", *duration, *period))
	printTaskTable(c.UI.Output, taskViews(k))
	return 0
}

// tickerFunc adapts a bare func() to simhal.Ticker.
type tickerFunc func()

func (f tickerFunc) Tick() { f() }
