// SPDX-License-Identifier: AGPL-3.0-or-later

package synth

import (
	"strings"

	"github.com/stubgen-org/stubgen/internal/capability"
)

// renderHeader emits the executable marker, the package clause, and one
// import line per active capability in a fixed canonical sequence: the
// flag-parsing library and its positional numeric conversion first, then the
// serialization and transport
// capabilities, then the process-exit library, with yaml trailing. The
// block is a pure function of the capability set; two identical sets render
// byte-identical headers regardless of descriptor order.
func renderHeader(b *strings.Builder, caps capability.Set) {
	b.WriteString("//usr/bin/env go run \"$0\" \"$@\"; exit \"$?\"\n\n")
	b.WriteString("package main\n\n")
	b.WriteString("import (\n")
	if caps.Args {
		b.WriteString("\t\"github.com/spf13/pflag\"\n")
	}
	if caps.NumParse {
		b.WriteString("\t\"strconv\"\n")
	}
	if caps.CSV {
		b.WriteString("\t\"encoding/csv\"\n")
	}
	if caps.RawRead {
		b.WriteString("\t\"io\"\n")
	}
	if caps.Server {
		b.WriteString("\t\"net/http\"\n")
	}
	if caps.JSON || caps.Server {
		b.WriteString("\t\"encoding/json\"\n")
	}
	if caps.Database {
		b.WriteString("\t\"database/sql\"\n")
	}
	if (caps.Database && caps.Config) || caps.Output {
		b.WriteString("\t\"fmt\"\n")
	}
	if caps.Database {
		b.WriteString("\t_ \"github.com/lib/pq\"\n")
	}
	if caps.Logging {
		b.WriteString("\t\"log/slog\"\n")
	}
	b.WriteString("\t\"os\"\n")
	if caps.YAML {
		b.WriteString("\t\"gopkg.in/yaml.v3\"\n")
	}
	b.WriteString(")\n")
}
