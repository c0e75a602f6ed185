// SPDX-License-Identifier: AGPL-3.0-or-later

// Package capability derives whole-program feature flags from the descriptor
// set and finalizes the argument list, injecting the synthetic descriptors
// that server and fileinput modes require.
package capability

import (
	"github.com/stubgen-org/stubgen/internal/descriptor"
)

// Flags are the explicit capability switches accepted by the generator.
type Flags struct {
	CSV       bool
	JSON      bool
	YAML      bool
	FileInput bool
	Database  bool
	Server    bool
	Logging   bool
}

// Set is the inferred, program-wide capability set. It is computed once,
// before synthesis begins, and read-only afterwards; the emitted header block
// is a pure function of it.
type Set struct {
	Args      bool // any descriptors at all
	CSV       bool
	JSON      bool
	YAML      bool
	FileInput bool
	Database  bool
	Server    bool
	Logging   bool
	Config    bool // config-wrapper mode: a config descriptor with yaml active
	Output    bool // an output descriptor exists
	RawRead   bool // some reader performs a raw byte read
	NumParse  bool // the trailing positional converts to a number
}

// Infer computes the capability set and returns the finalized descriptor
// list: the input descriptors in order, followed by the synthetic server
// controls (server, host, port) when Server is on and the synthetic
// inputspec descriptor when FileInput is on. The finalized list is the
// single source of truth for every downstream component; callers must not
// recompute it.
func Infer(descs []descriptor.Descriptor, flags Flags) (Set, []descriptor.Descriptor) {
	set := Set{
		CSV:       flags.CSV,
		JSON:      flags.JSON,
		YAML:      flags.YAML,
		FileInput: flags.FileInput,
		Database:  flags.Database,
		Server:    flags.Server,
		Logging:   flags.Logging,
	}

	for _, d := range descs {
		switch d.Type {
		case "csv":
			set.CSV = true
		case "json":
			set.JSON = true
		case "yaml":
			set.YAML = true
		}
	}

	final := make([]descriptor.Descriptor, 0, len(descs)+4)
	final = append(final, descs...)
	if flags.Server {
		final = append(final,
			descriptor.Synthetic("server:"),
			descriptor.Synthetic("host"),
			descriptor.Synthetic("port"),
		)
	}
	if flags.FileInput {
		final = append(final, descriptor.Synthetic("inputspec+"))
	}

	for _, d := range final {
		set.Args = true
		switch d.Role {
		case descriptor.RoleConfigSource:
			if set.YAML {
				set.Config = true
			}
		case descriptor.RoleOutputSink:
			set.Output = true
		}
		if d.NeedsStream() && d.Type == "" {
			set.RawRead = true
		}
	}
	if flags.FileInput {
		set.RawRead = true
	}
	// The last descriptor renders positional, so a declared numeric type
	// there needs a string conversion in the CLI block.
	if n := len(final); n > 0 {
		if last := final[n-1]; !last.IsList() && (last.Type == "int" || last.Type == "float") {
			set.NumParse = true
		}
	}

	return set, final
}

// Names lists the active capabilities in a stable order, for display and
// history records.
func (s Set) Names() []string {
	var out []string
	for _, c := range []struct {
		name string
		on   bool
	}{
		{"csv", s.CSV},
		{"json", s.JSON},
		{"yaml", s.YAML},
		{"fileinput", s.FileInput},
		{"database", s.Database},
		{"server", s.Server},
		{"logging", s.Logging},
		{"config", s.Config},
	} {
		if c.on {
			out = append(out, c.name)
		}
	}
	return out
}

// Types builds the name-to-declared-type lookup over the finalized list.
// Later duplicates overwrite earlier entries; the list itself keeps both
// textual entries.
func Types(final []descriptor.Descriptor) map[string]string {
	types := make(map[string]string, len(final))
	for _, d := range final {
		types[d.Name] = d.Type
	}
	return types
}
