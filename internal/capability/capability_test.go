package capability

import (
	"reflect"
	"testing"

	"github.com/stubgen-org/stubgen/internal/descriptor"
)

func parseAll(t *testing.T, tokens ...string) []descriptor.Descriptor {
	t.Helper()
	descs, err := descriptor.ParseAll(tokens)
	if err != nil {
		t.Fatal(err)
	}
	return descs
}

func TestInferSerializationOR(t *testing.T) {
	// Declared type activates the capability even without the flag.
	set, _ := Infer(parseAll(t, "x.csv", "y:", "output"), Flags{})
	if !set.CSV {
		t.Fatal("expected csv capability from x.csv descriptor")
	}
	if set.JSON || set.YAML {
		t.Fatalf("unexpected capabilities: %+v", set)
	}

	// The explicit flag activates it even without a matching descriptor.
	set, _ = Infer(parseAll(t, "x"), Flags{JSON: true})
	if !set.JSON {
		t.Fatal("expected json capability from explicit flag")
	}
}

func TestInferServerInjection(t *testing.T) {
	descs := parseAll(t, "x")
	set, final := Infer(descs, Flags{Server: true})
	if !set.Server {
		t.Fatal("expected server capability")
	}
	if len(final) != len(descs)+3 {
		t.Fatalf("expected exactly 3 synthetic entries, got %d", len(final)-len(descs))
	}
	names := []string{final[1].Name, final[2].Name, final[3].Name}
	if !reflect.DeepEqual(names, []string{"server", "host", "port"}) {
		t.Fatalf("unexpected synthetic names: %v", names)
	}
	if final[1].Type != "bool" {
		t.Fatalf("server control should be a boolean flag, got type %q", final[1].Type)
	}
	for _, d := range final[1:] {
		if d.Role != descriptor.RoleServerControl {
			t.Fatalf("expected server-control role for %s", d.Name)
		}
	}
}

func TestInferFileInputInjection(t *testing.T) {
	set, final := Infer(parseAll(t, "x"), Flags{FileInput: true})
	if !set.FileInput || !set.RawRead {
		t.Fatalf("expected fileinput and raw-read capabilities: %+v", set)
	}
	last := final[len(final)-1]
	if last.Name != "inputspec" || last.Modifier != descriptor.ModRepeat {
		t.Fatalf("expected trailing inputspec+ descriptor, got %+v", last)
	}
}

func TestInferConfigGating(t *testing.T) {
	// config descriptor with yaml active: config-wrapper mode.
	set, _ := Infer(parseAll(t, "config.yaml", "x"), Flags{})
	if !set.Config {
		t.Fatal("expected config-wrapper mode")
	}

	// yaml flag alone also gates it on.
	set, _ = Infer(parseAll(t, "config", "x"), Flags{YAML: true})
	if !set.Config {
		t.Fatal("expected config-wrapper mode from explicit yaml flag")
	}

	// config without yaml stays plain.
	set, _ = Infer(parseAll(t, "config", "x"), Flags{})
	if set.Config {
		t.Fatal("config-wrapper mode requires yaml")
	}

	// yaml without a config descriptor stays plain.
	set, _ = Infer(parseAll(t, "x.yaml"), Flags{})
	if set.Config {
		t.Fatal("config-wrapper mode requires a config descriptor")
	}
}

func TestInferNumericPositional(t *testing.T) {
	// Only a numeric type in the trailing (positional) slot needs the
	// string conversion.
	set, _ := Infer(parseAll(t, "x", "count.int"), Flags{})
	if !set.NumParse {
		t.Fatal("expected numeric conversion for trailing int descriptor")
	}

	set, _ = Infer(parseAll(t, "ratio.float"), Flags{})
	if !set.NumParse {
		t.Fatal("expected numeric conversion for trailing float descriptor")
	}

	set, _ = Infer(parseAll(t, "count.int", "x"), Flags{})
	if set.NumParse {
		t.Fatal("named numeric flag needs no conversion")
	}

	set, _ = Infer(parseAll(t, "nums.int+"), Flags{})
	if set.NumParse {
		t.Fatal("list positional passes through as strings")
	}

	// Server injection shifts the positional slot onto a synthetic control.
	set, _ = Infer(parseAll(t, "count.int"), Flags{Server: true})
	if set.NumParse {
		t.Fatal("injected port descriptor is not numeric")
	}
}

func TestInferDoesNotMutateInput(t *testing.T) {
	descs := parseAll(t, "x", "y")
	_, final := Infer(descs, Flags{Server: true, FileInput: true})
	if len(descs) != 2 {
		t.Fatalf("input list mutated: %v", descs)
	}
	if len(final) != 6 {
		t.Fatalf("expected 6 finalized descriptors, got %d", len(final))
	}
}

func TestTypesDuplicateOverwrite(t *testing.T) {
	// A later token reusing a name overwrites the inferred type, but both
	// entries stay in the list.
	final := parseAll(t, "x", "x.csv")
	types := Types(final)
	if types["x"] != "csv" {
		t.Fatalf("expected later type to win, got %q", types["x"])
	}
	if len(final) != 2 {
		t.Fatalf("duplicate entry should survive in the list, got %d", len(final))
	}
}

func TestNames(t *testing.T) {
	set, _ := Infer(parseAll(t, "config.yaml"), Flags{Server: true})
	want := []string{"yaml", "server", "config"}
	if got := set.Names(); !reflect.DeepEqual(got, want) {
		t.Fatalf("Names() = %v, want %v", got, want)
	}
}
