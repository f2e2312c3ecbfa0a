package main

import (
	"flag"
	"fmt"

	"github.com/hashicorp/cli"
	"github.com/posener/complete"
)

// Meta holds state shared by every kernelctl subcommand: the UI to write
// output to. Each command's Run builds one from its own UI, matching the
// teacher's convention of a shared Meta type used by every command.Run.
type Meta struct {
	UI cli.Ui
}

// flagSet returns a FlagSet pre-wired to report usage errors through the
// command's UI instead of printing directly to stderr, so a JSON/colored
// frontend can capture it the same way the teacher's command.Meta does.
func (m *Meta) flagSet(name string) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.Usage = func() {}
	fs.SetOutput(&cli.UiWriter{Ui: m.UI})
	return fs
}

func (m *Meta) errf(format string, args ...any) int {
	m.UI.Error(fmt.Sprintf(format, args...))
	return 1
}

// filePredictor predicts *.hcl configuration files for shell completion.
var filePredictor = complete.PredictFiles("*.hcl")
