package cli

import (
	"flag"
	"os"
	"path/filepath"
	"testing"
)

func newFS() *flag.FlagSet { return flag.NewFlagSet("test", flag.ContinueOnError) }

func mustParse(t *testing.T, args ...string) Options {
	t.Helper()
	o, err := ParseArgs(newFS(), args)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	return o
}

func TestDefaults(t *testing.T) {
	o := mustParse(t, "exp.json")
	if o.Input != "exp.json" || o.Output != OutputText || !o.Header || o.Sort {
		t.Fatalf("bad defaults: %+v", o)
	}
}

func TestFlagsOK(t *testing.T) {
	o := mustParse(t, "--output", "csv", "--no-header", "--sort", "exp.yaml")
	if o.Output != OutputCSV || o.Header || !o.Sort || o.Input != "exp.yaml" {
		t.Fatalf("bad parse: %+v", o)
	}
}

func TestFlagAfterPositional(t *testing.T) {
	o := mustParse(t, "exp.json", "--output", "json")
	if o.Output != OutputJSON || o.Input != "exp.json" {
		t.Fatalf("bad parse: %+v", o)
	}
}

func TestMissingInputErrors(t *testing.T) {
	if _, err := ParseArgs(newFS(), nil); err == nil {
		t.Fatal("expected error without an experiment file")
	}
}

func TestTooManyInputsErrors(t *testing.T) {
	if _, err := ParseArgs(newFS(), []string{"a.json", "b.json"}); err == nil {
		t.Fatal("expected error with two experiment files")
	}
}

func TestStdinRequiresFormat(t *testing.T) {
	if _, err := ParseArgs(newFS(), []string{"-"}); err == nil {
		t.Fatal("expected error for stdin without --format")
	}
	o := mustParse(t, "--format", "yaml", "-")
	if o.Input != "-" || o.Format != "yaml" {
		t.Fatalf("bad parse: %+v", o)
	}
}

func TestInvalidEnums(t *testing.T) {
	if _, err := ParseArgs(newFS(), []string{"--output", "xml", "exp.json"}); err == nil {
		t.Fatal("expected invalid --output error")
	}
	if _, err := ParseArgs(newFS(), []string{"--format", "toml", "exp.json"}); err == nil {
		t.Fatal("expected invalid --format error")
	}
}

func TestPositionalGlobOK(t *testing.T) {
	dir := t.TempDir()
	p := filepath.Join(dir, "exp.json")
	_ = os.WriteFile(p, []byte("{}"), 0o644)

	o := mustParse(t, filepath.Join(dir, "*.json"))
	if o.Input != p {
		t.Fatalf("want %q, got %q", p, o.Input)
	}
}

func TestVersionShortCircuits(t *testing.T) {
	o := mustParse(t, "-v")
	if !o.Version {
		t.Fatalf("want Version=true: %+v", o)
	}
}
