// Package config holds the configuration of dequectl.
package config

import (
	"errors"
	"fmt"
	"io"

	"github.com/BurntSushi/toml"
	"github.com/sirupsen/logrus"
)

// ErrInvalid is wrapped by every configuration error.
var ErrInvalid = errors.New("invalid configuration")

// Config is the configuration of dequectl. It is read from a TOML file and
// then overridden by command line flags.
type Config struct {
	// LogLevel is a logrus level name: debug, info, warn, error...
	LogLevel string `toml:"log_level"`
	// LogFormat is "text" or "json".
	LogFormat string `toml:"log_format"`
	// InitialCapacity is the deque capacity for scripts that set neither
	// from nor initial_capacity.
	InitialCapacity int `toml:"initial_capacity"`
	// Parallelism bounds how many scripts replay runs at once.
	Parallelism int `toml:"parallelism"`
}

// Default returns the configuration used when no file is given.
func Default() *Config {
	return &Config{
		LogLevel:    "info",
		LogFormat:   "text",
		Parallelism: 4,
	}
}

// Load reads the TOML file at path on top of the defaults. Keys missing from
// the file keep their default.
func Load(path string) (*Config, error) {
	c := Default()
	md, err := toml.DecodeFile(path, c)
	if err != nil {
		return nil, fmt.Errorf("loading config %q: %w", path, err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return nil, fmt.Errorf("%w: unknown keys %v in %q", ErrInvalid, undecoded, path)
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

// Validate checks every field.
func (c *Config) Validate() error {
	if _, err := logrus.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalid, err)
	}
	switch c.LogFormat {
	case "text", "json":
	default:
		return fmt.Errorf("%w: unknown log_format %q", ErrInvalid, c.LogFormat)
	}
	if c.InitialCapacity < 0 {
		return fmt.Errorf("%w: negative initial_capacity %d", ErrInvalid, c.InitialCapacity)
	}
	if c.Parallelism < 1 {
		return fmt.Errorf("%w: parallelism must be at least 1, got %d", ErrInvalid, c.Parallelism)
	}
	return nil
}

// NewLogger returns a logger writing to out with the configured level and
// format.
func (c *Config) NewLogger(out io.Writer) (*logrus.Logger, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}
	level, _ := logrus.ParseLevel(c.LogLevel)
	log := logrus.New()
	log.SetOutput(out)
	log.SetLevel(level)
	if c.LogFormat == "json" {
		log.SetFormatter(&logrus.JSONFormatter{})
	} else {
		log.SetFormatter(&logrus.TextFormatter{DisableColors: true, FullTimestamp: true})
	}
	return log, nil
}
