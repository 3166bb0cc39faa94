// Binary dequectl replays scripted operations against ring-buffer deques.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/google/subcommands"
	"github.com/lucasgdosr/ringdeque/internal/cmd"
	"github.com/lucasgdosr/ringdeque/internal/config"
)

var (
	configPath = flag.String("config", "", "path to a TOML configuration file")
	logLevel   = flag.String("log-level", "", "log level, overrides the configuration file")
	logFormat  = flag.String("log-format", "", `log format, "text" or "json", overrides the configuration file`)
)

func main() {
	subcommands.Register(subcommands.HelpCommand(), "")
	subcommands.Register(subcommands.FlagsCommand(), "")
	subcommands.Register(new(cmd.Demo), "")
	subcommands.Register(new(cmd.Replay), "")

	// All subcommands must be registered before flag parsing.
	flag.Parse()

	conf := config.Default()
	if *configPath != "" {
		var err error
		if conf, err = config.Load(*configPath); err != nil {
			fatalf("%v", err)
		}
	}
	if *logLevel != "" {
		conf.LogLevel = *logLevel
	}
	if *logFormat != "" {
		conf.LogFormat = *logFormat
	}
	log, err := conf.NewLogger(os.Stderr)
	if err != nil {
		fatalf("%v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	status := subcommands.Execute(ctx, conf, log.WithField("command", flag.Arg(0)))
	stop()
	os.Exit(int(status))
}

func fatalf(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "dequectl: "+format+"\n", args...)
	os.Exit(int(subcommands.ExitUsageError))
}
