package genspec

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/spf13/pflag"
)

const spec = `args: ["records.csv%", "verbose:"]
database: true
server: true
output: wrangle.go
`

func newFlags() *pflag.FlagSet {
	flags := pflag.NewFlagSet("generate", pflag.ContinueOnError)
	flags.StringArrayP("args", "a", nil, "")
	flags.BoolP("csv", "c", false, "")
	flags.BoolP("database", "d", false, "")
	flags.BoolP("server", "s", false, "")
	flags.StringP("output", "o", "", "")
	return flags
}

func writeSpec(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "gen.yaml")
	if err := os.WriteFile(path, []byte(spec), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadAndApply(t *testing.T) {
	loaded, err := Load(writeSpec(t))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if !loaded.Database || !loaded.Server || loaded.Output != "wrangle.go" {
		t.Fatalf("unexpected spec %+v", loaded)
	}

	flags := newFlags()
	if err := Apply(flags, loaded); err != nil {
		t.Fatalf("Apply: %v", err)
	}

	tokens, _ := flags.GetStringArray("args")
	if want := []string{"records.csv%", "verbose:"}; !reflect.DeepEqual(tokens, want) {
		t.Fatalf("args = %v, want %v", tokens, want)
	}
	if db, _ := flags.GetBool("database"); !db {
		t.Fatal("expected database from spec")
	}
	if out, _ := flags.GetString("output"); out != "wrangle.go" {
		t.Fatalf("output = %q", out)
	}
	if csv, _ := flags.GetBool("csv"); csv {
		t.Fatal("csv was neither set nor in the spec")
	}
}

func TestApplyExplicitFlagsWin(t *testing.T) {
	loaded, err := Load(writeSpec(t))
	if err != nil {
		t.Fatal(err)
	}

	flags := newFlags()
	if err := flags.Parse([]string{"--output", "other.go", "-a", "x"}); err != nil {
		t.Fatal(err)
	}
	if err := Apply(flags, loaded); err != nil {
		t.Fatal(err)
	}

	if out, _ := flags.GetString("output"); out != "other.go" {
		t.Fatalf("explicit output overridden: %q", out)
	}
	tokens, _ := flags.GetStringArray("args")
	if want := []string{"x"}; !reflect.DeepEqual(tokens, want) {
		t.Fatalf("explicit args overridden: %v", tokens)
	}
	if db, _ := flags.GetBool("database"); !db {
		t.Fatal("unset database should still adopt the spec value")
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "absent.yaml")); err == nil {
		t.Fatal("expected error for missing spec file")
	}
}
