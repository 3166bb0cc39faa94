package cmd

import (
	"bytes"
	"context"
	"flag"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/subcommands"
	"github.com/lucasgdosr/ringdeque/internal/config"
	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
)

func execute(t *testing.T, c subcommands.Command, args ...string) (subcommands.ExitStatus, *test.Hook) {
	t.Helper()
	f := flag.NewFlagSet(c.Name(), flag.ContinueOnError)
	f.SetOutput(io.Discard)
	c.SetFlags(f)
	if err := f.Parse(args); err != nil {
		t.Fatalf("parsing %v: %v", args, err)
	}
	logger, hook := test.NewNullLogger()
	return c.Execute(context.Background(), f, config.Default(), logrus.NewEntry(logger)), hook
}

func writeScripts(t *testing.T, scripts map[string]string) string {
	t.Helper()
	dir := t.TempDir()
	for name, data := range scripts {
		if err := os.WriteFile(filepath.Join(dir, name), []byte(data), 0o644); err != nil {
			t.Fatal(err)
		}
	}
	return dir
}

func TestDemo(t *testing.T) {
	var out bytes.Buffer
	status, _ := execute(t, &Demo{Out: &out})
	if status != subcommands.ExitSuccess {
		t.Fatalf("Execute()=%v, want: %v", status, subcommands.ExitSuccess)
	}
	if !strings.HasPrefix(out.String(), "100\n1  (head)\n") {
		t.Errorf("unexpected demo output:\n%s", out.String())
	}
	for _, label := range []string{"101", "105", "109"} {
		if !strings.Contains(out.String(), "\n"+label+"\n") {
			t.Errorf("demo output lacks label %s", label)
		}
	}

	if status, _ := execute(t, &Demo{Out: &out}, "extra"); status != subcommands.ExitUsageError {
		t.Errorf("Execute(extra)=%v, want: %v", status, subcommands.ExitUsageError)
	}
}

func TestReplay(t *testing.T) {
	dir := writeScripts(t, map[string]string{
		"a.toml": "from = [1, 2]\n[[steps]]\nlabel = \"a\"\nop = \"iterate\"\n",
		"b.yaml": "from: [3]\nsteps:\n  - label: b\n    op: pop_back\n    want: 3\n    print: true\n",
	})

	var out bytes.Buffer
	status, hook := execute(t, &Replay{Out: &out}, filepath.Join(dir, "a.toml"), filepath.Join(dir, "b.yaml"))
	if status != subcommands.ExitSuccess {
		t.Fatalf("Execute()=%v, want: %v", status, subcommands.ExitSuccess)
	}
	if got, want := out.String(), "a\n1\n2\nb\n3\n"; got != want {
		t.Errorf("output=%q, want: %q", got, want)
	}
	passed := 0
	for _, e := range hook.AllEntries() {
		if e.Message == "Script passed" {
			passed++
		}
	}
	if passed != 2 {
		t.Errorf("%d scripts logged as passed, want: 2", passed)
	}
}

func TestReplayQuiet(t *testing.T) {
	dir := writeScripts(t, map[string]string{"a.toml": "[[steps]]\nop = \"dump\"\n"})
	var out bytes.Buffer
	status, _ := execute(t, &Replay{Out: &out}, "-quiet", filepath.Join(dir, "a.toml"))
	if status != subcommands.ExitSuccess {
		t.Fatalf("Execute()=%v, want: %v", status, subcommands.ExitSuccess)
	}
	if out.Len() != 0 {
		t.Errorf("quiet replay wrote %q", out.String())
	}
}

func TestReplayFailure(t *testing.T) {
	dir := writeScripts(t, map[string]string{
		"ok.toml":  "[[steps]]\nop = \"push_back\"\nvalues = [1]\n",
		"bad.toml": "[[steps]]\nop = \"pop_front\"\n",
	})
	for name, paths := range map[string][]string{
		"failing step":   {filepath.Join(dir, "ok.toml"), filepath.Join(dir, "bad.toml")},
		"missing script": {filepath.Join(dir, "missing.toml")},
		"bad extension":  {filepath.Join(dir, "ok.txt")},
	} {
		status, hook := execute(t, &Replay{Out: io.Discard}, paths...)
		if status != subcommands.ExitFailure {
			t.Errorf("%s: Execute()=%v, want: %v", name, status, subcommands.ExitFailure)
		}
		if e := hook.LastEntry(); e == nil || e.Level != logrus.ErrorLevel {
			t.Errorf("%s: last log entry=%v, want an error", name, e)
		}
	}

	if status, _ := execute(t, &Replay{Out: io.Discard}); status != subcommands.ExitUsageError {
		t.Errorf("Execute()=%v, want: %v", status, subcommands.ExitUsageError)
	}
}
