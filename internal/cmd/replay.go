package cmd

import (
	"bytes"
	"context"
	"flag"
	"io"

	"github.com/google/subcommands"
	"github.com/lucasgdosr/ringdeque/internal/script"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
)

// Replay implements subcommands.Command for the "replay" command.
type Replay struct {
	// Out receives the scripts' output. Defaults to os.Stdout.
	Out io.Writer

	quiet bool
}

// Name implements subcommands.Command.Name.
func (*Replay) Name() string {
	return "replay"
}

// Synopsis implements subcommands.Command.Synopsis.
func (*Replay) Synopsis() string {
	return "replay operation scripts against fresh deques and check their results"
}

// Usage implements subcommands.Command.Usage.
func (*Replay) Usage() string {
	return `replay [flags] <script.toml|script.yaml>...

Each script runs against its own deque. Scripts run in parallel, bounded by
the configured parallelism; their output is printed in argument order.
`
}

// SetFlags implements subcommands.Command.SetFlags.
func (r *Replay) SetFlags(f *flag.FlagSet) {
	f.BoolVar(&r.quiet, "quiet", false, "discard labels, dumps and printed results")
}

// Execute implements subcommands.Command.Execute. args must hold a
// *config.Config and a *logrus.Entry.
func (r *Replay) Execute(ctx context.Context, f *flag.FlagSet, args ...any) subcommands.ExitStatus {
	if f.NArg() == 0 {
		f.Usage()
		return subcommands.ExitUsageError
	}
	conf, log := unpack(args)

	paths := f.Args()
	outs := make([]bytes.Buffer, len(paths))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(conf.Parallelism)
	for i, path := range paths {
		g.Go(func() error {
			s, err := script.Load(path)
			if err != nil {
				return err
			}
			runner := &script.Runner{
				Out:             &outs[i],
				Log:             log.WithField("path", path),
				DefaultCapacity: conf.InitialCapacity,
			}
			d, err := runner.Run(ctx, s)
			if err != nil {
				return err
			}
			log.WithFields(logrus.Fields{
				"script": s.Name,
				"steps":  len(s.Steps),
				"len":    d.Len(),
			}).Info("Script passed")
			return nil
		})
	}
	err := g.Wait()

	if !r.quiet {
		w := outOrStdout(r.Out)
		for i := range outs {
			if _, werr := outs[i].WriteTo(w); werr != nil {
				log.WithError(werr).Error("Writing output")
				return subcommands.ExitFailure
			}
		}
	}
	if err != nil {
		log.WithError(err).Error("Replay failed")
		return subcommands.ExitFailure
	}
	return subcommands.ExitSuccess
}
