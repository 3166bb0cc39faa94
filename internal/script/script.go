// Package script describes sequences of deque operations, decodes them from
// TOML or YAML, and replays them against a ringdeque.Deque.
package script

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"
)

// Format is the encoding of a script file.
type Format string

// Supported formats.
const (
	FormatTOML Format = "toml"
	FormatYAML Format = "yaml"
)

// Operations understood by the runner.
const (
	OpPushBack  = "push_back"
	OpPushFront = "push_front"
	OpPopBack   = "pop_back"
	OpPopFront  = "pop_front"
	OpPeekBack  = "peek_back"
	OpPeekFront = "peek_front"
	OpClear     = "clear"
	OpTrim      = "trim"
	OpContains  = "contains"
	OpDump      = "dump"
	OpIterate   = "iterate"
)

var knownOps = map[string]bool{
	OpPushBack: true, OpPushFront: true,
	OpPopBack: true, OpPopFront: true,
	OpPeekBack: true, OpPeekFront: true,
	OpClear: true, OpTrim: true,
	OpContains: true, OpDump: true, OpIterate: true,
}

// fallibleOps are the operations that fail on an empty deque.
var fallibleOps = map[string]bool{
	OpPopBack: true, OpPopFront: true,
	OpPeekBack: true, OpPeekFront: true,
}

// ErrInvalid is wrapped by every error caused by a malformed script.
var ErrInvalid = errors.New("invalid script")

// Script is a named sequence of steps applied to one deque.
type Script struct {
	// Name identifies the script in logs and errors. Load defaults it to the
	// file name.
	Name string `toml:"name" yaml:"name"`
	// InitialCapacity is the capacity of the deque when From is empty. When
	// absent the runner's default applies.
	InitialCapacity *int `toml:"initial_capacity" yaml:"initial_capacity"`
	// From bulk-loads the deque before the first step.
	From []int `toml:"from" yaml:"from"`
	// Order is the end From is pushed to: "back" (default) or "front".
	Order string `toml:"order" yaml:"order"`
	Steps []Step `toml:"steps" yaml:"steps"`
}

// Step is one operation plus the checks made after it.
type Step struct {
	// Label, if set, is printed before the step runs.
	Label string `toml:"label" yaml:"label"`
	Op    string `toml:"op" yaml:"op"`
	// Values are the pushed elements, or the element looked up by contains.
	Values []int `toml:"values" yaml:"values"`
	// Print writes the result of a pop, peek or contains.
	Print bool `toml:"print" yaml:"print"`

	// Want is the element a pop or peek must return.
	Want *int `toml:"want" yaml:"want"`
	// WantErr requires the operation itself to fail.
	WantErr bool `toml:"want_err" yaml:"want_err"`
	// Found is the result contains must return.
	Found *bool `toml:"found" yaml:"found"`
	// Expect is the full deque content, front to back, after the step.
	Expect []int `toml:"expect" yaml:"expect"`
	// ExpectLen is the deque length after the step.
	ExpectLen *int `toml:"expect_len" yaml:"expect_len"`
}

// Parse decodes a script encoded in format and validates it.
func Parse(data []byte, format Format) (*Script, error) {
	var s Script
	switch format {
	case FormatTOML:
		md, err := toml.Decode(string(data), &s)
		if err != nil {
			return nil, fmt.Errorf("decoding toml: %w", err)
		}
		if undecoded := md.Undecoded(); len(undecoded) > 0 {
			return nil, fmt.Errorf("%w: unknown keys %v", ErrInvalid, undecoded)
		}
	case FormatYAML:
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		if err := dec.Decode(&s); err != nil && !errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("%w: decoding yaml: %v", ErrInvalid, err)
		}
	default:
		return nil, fmt.Errorf("%w: unknown format %q", ErrInvalid, format)
	}
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return &s, nil
}

// FormatOf infers the format of a script file from its extension.
func FormatOf(path string) (Format, error) {
	switch ext := filepath.Ext(path); ext {
	case ".toml":
		return FormatTOML, nil
	case ".yaml", ".yml":
		return FormatYAML, nil
	default:
		return "", fmt.Errorf("%w: unsupported extension %q", ErrInvalid, ext)
	}
}

// Load reads and parses the script at path.
func Load(path string) (*Script, error) {
	format, err := FormatOf(path)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	s, err := Parse(data, format)
	if err != nil {
		return nil, fmt.Errorf("script %q: %w", path, err)
	}
	if s.Name == "" {
		s.Name = filepath.Base(path)
	}
	return s, nil
}

// Validate checks the script without running it.
func (s *Script) Validate() error {
	if s.InitialCapacity != nil && *s.InitialCapacity < 0 {
		return fmt.Errorf("%w: negative initial_capacity %d", ErrInvalid, *s.InitialCapacity)
	}
	switch s.Order {
	case "", "back", "front":
	default:
		return fmt.Errorf("%w: unknown order %q", ErrInvalid, s.Order)
	}
	for i, st := range s.Steps {
		if !knownOps[st.Op] {
			return fmt.Errorf("%w: step %d: unknown op %q", ErrInvalid, i, st.Op)
		}
		if st.Op == OpContains && len(st.Values) != 1 {
			return fmt.Errorf("%w: step %d: contains takes exactly one value", ErrInvalid, i)
		}
		if st.WantErr && !fallibleOps[st.Op] {
			return fmt.Errorf("%w: step %d: %s cannot fail, want_err is not allowed", ErrInvalid, i, st.Op)
		}
	}
	return nil
}

//go:embed demo.toml
var demo []byte

// Demo returns the built-in demonstration script.
func Demo() *Script {
	s, err := Parse(demo, FormatTOML)
	if err != nil {
		panic(fmt.Sprintf("built-in demo script: %v", err))
	}
	return s
}
