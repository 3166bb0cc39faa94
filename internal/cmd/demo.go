// Package cmd holds the dequectl subcommands.
package cmd

import (
	"context"
	"flag"
	"io"
	"os"

	"github.com/google/subcommands"
	"github.com/lucasgdosr/ringdeque/internal/config"
	"github.com/lucasgdosr/ringdeque/internal/script"
	"github.com/sirupsen/logrus"
)

// Demo implements subcommands.Command for the "demo" command.
type Demo struct {
	// Out receives the demo output. Defaults to os.Stdout.
	Out io.Writer
}

// Name implements subcommands.Command.Name.
func (*Demo) Name() string {
	return "demo"
}

// Synopsis implements subcommands.Command.Synopsis.
func (*Demo) Synopsis() string {
	return "run the built-in sample operations and dump the buffer after each"
}

// Usage implements subcommands.Command.Usage.
func (*Demo) Usage() string {
	return "demo\n"
}

// SetFlags implements subcommands.Command.SetFlags.
func (*Demo) SetFlags(*flag.FlagSet) {}

// Execute implements subcommands.Command.Execute. args must hold a
// *config.Config and a *logrus.Entry.
func (d *Demo) Execute(ctx context.Context, f *flag.FlagSet, args ...any) subcommands.ExitStatus {
	if f.NArg() != 0 {
		f.Usage()
		return subcommands.ExitUsageError
	}
	conf, log := unpack(args)
	r := &script.Runner{
		Out:             outOrStdout(d.Out),
		Log:             log,
		DefaultCapacity: conf.InitialCapacity,
	}
	if _, err := r.Run(ctx, script.Demo()); err != nil {
		log.WithError(err).Error("Demo failed")
		return subcommands.ExitFailure
	}
	return subcommands.ExitSuccess
}

func unpack(args []any) (*config.Config, *logrus.Entry) {
	return args[0].(*config.Config), args[1].(*logrus.Entry)
}

func outOrStdout(w io.Writer) io.Writer {
	if w == nil {
		return os.Stdout
	}
	return w
}
