// SPDX-License-Identifier: AGPL-3.0-or-later

package synth

import (
	"fmt"
	"strings"

	"github.com/stubgen-org/stubgen/internal/capability"
	"github.com/stubgen-org/stubgen/internal/descriptor"
)

// renderWrapper emits the orchestration wrapper. In config-wrapper mode it is
// <prog>_on_files with one explicit parameter per finalized argument plus the
// config document; otherwise it is <prog>_main taking the parsed argument
// map. Input resources are acquired inside one function literal so they are
// all released before the output target is opened; writing back to a file
// that was also an input stays safe.
func renderWrapper(b *strings.Builder, prog string, final []descriptor.Descriptor, caps capability.Set) {
	if hasCSVArg(final) {
		renderCSVRows(b)
	}

	if caps.Config {
		params := make([]string, 0, len(final)+1)
		for _, d := range final {
			params = append(params, d.Name+" "+cliParamType(d))
		}
		params = append(params, "configData map[string]any")
		fmt.Fprintf(b, "\nfunc %s_on_files(%s) (any, error) {\n", prog, strings.Join(params, ", "))
		renderOrchestration(b, prog, final, caps, "nil, ")
		b.WriteString("\treturn result, nil\n}\n")
		return
	}

	fmt.Fprintf(b, "\nfunc %s_main(args map[string]any) error {\n", prog)
	if !caps.Args {
		b.WriteString("\treturn nil\n}\n")
		return
	}
	for _, d := range final {
		if d.Role == descriptor.RoleConfigSource {
			// Without config-wrapper mode nothing consumes the config
			// value; extracting it would leave a dead local.
			continue
		}
		assertExpr(b, "\t", d.Name, "args", cliParamType(d))
	}
	if caps.Server {
		fmt.Fprintf(b, "\tif server {\n\t\treturn %s_serve(host, port)\n\t}\n", prog)
	}
	renderOrchestration(b, prog, final, caps, "")
	if !caps.Output {
		b.WriteString("\t_ = result\n")
	}
	b.WriteString("\treturn nil\n}\n")
}

// renderOrchestration writes the scoped-acquisition closure, the error
// check, and the deferred output write. errPrefix is what precedes err in
// the enclosing function's return statements.
func renderOrchestration(b *strings.Builder, prog string, final []descriptor.Descriptor, caps capability.Set, errPrefix string) {
	core := coreArgs(final)

	b.WriteString("\tresult, err := func() (any, error) {\n")
	if caps.FileInput {
		b.WriteString("\t\tvar files []*os.File\n")
		b.WriteString("\t\tdefer func() {\n")
		b.WriteString("\t\t\tfor _, f := range files {\n\t\t\t\tf.Close()\n\t\t\t}\n")
		b.WriteString("\t\t}()\n")
		b.WriteString("\t\tvar readers []io.Reader\n")
		b.WriteString("\t\tfor _, name := range inputspec {\n")
		b.WriteString("\t\t\tf, err := os.Open(name)\n")
		b.WriteString("\t\t\tif err != nil {\n\t\t\t\treturn nil, err\n\t\t\t}\n")
		b.WriteString("\t\t\tfiles = append(files, f)\n")
		b.WriteString("\t\t\treaders = append(readers, f)\n")
		b.WriteString("\t\t}\n")
		b.WriteString("\t\tdata, err := io.ReadAll(io.MultiReader(readers...))\n")
		b.WriteString("\t\tif err != nil {\n\t\t\treturn nil, err\n\t\t}\n")
	} else {
		for _, d := range final {
			if !d.NeedsStream() {
				continue
			}
			fmt.Fprintf(b, "\t\t%sStream, err := os.Open(%s)\n", d.Name, d.Name)
			b.WriteString("\t\tif err != nil {\n\t\t\treturn nil, err\n\t\t}\n")
			fmt.Fprintf(b, "\t\tdefer %sStream.Close()\n", d.Name)
		}
	}
	if caps.Database {
		if caps.Config {
			b.WriteString("\t\tconn, err := sql.Open(\"postgres\", fmt.Sprintf(\"dbname=%v user=%v\", configData[\"database\"], configData[\"datauser\"]))\n")
		} else {
			b.WriteString("\t\tconn, err := sql.Open(\"postgres\", os.Getenv(\"DATABASE_URL\"))\n")
		}
		b.WriteString("\t\tif err != nil {\n\t\t\treturn nil, err\n\t\t}\n")
		b.WriteString("\t\tdefer conn.Close()\n")
	}

	if !caps.FileInput {
		for _, d := range core {
			if !d.NeedsStream() {
				continue
			}
			switch d.Type {
			case "csv":
				fmt.Fprintf(b, "\t\t%sRecords, err := csv.NewReader(%sStream).ReadAll()\n", d.Name, d.Name)
				b.WriteString("\t\tif err != nil {\n\t\t\treturn nil, err\n\t\t}\n")
			case "json":
				fmt.Fprintf(b, "\t\tvar %sDoc any\n", d.Name)
				fmt.Fprintf(b, "\t\tif err := json.NewDecoder(%sStream).Decode(&%sDoc); err != nil {\n\t\t\treturn nil, err\n\t\t}\n", d.Name, d.Name)
			case "yaml":
				fmt.Fprintf(b, "\t\tvar %sDoc any\n", d.Name)
				fmt.Fprintf(b, "\t\tif err := yaml.NewDecoder(%sStream).Decode(&%sDoc); err != nil {\n\t\t\treturn nil, err\n\t\t}\n", d.Name, d.Name)
			default:
				fmt.Fprintf(b, "\t\t%sData, err := io.ReadAll(%sStream)\n", d.Name, d.Name)
				b.WriteString("\t\tif err != nil {\n\t\t\treturn nil, err\n\t\t}\n")
			}
		}
	}

	callArgs := make([]string, 0, len(core)+2)
	for _, d := range core {
		callArgs = append(callArgs, readerExpr(d, caps))
	}
	if caps.Config {
		callArgs = append(callArgs, "configData")
	}
	if caps.Database {
		callArgs = append(callArgs, "conn")
	}
	fmt.Fprintf(b, "\t\treturn %s(%s), nil\n", prog, strings.Join(callArgs, ", "))
	b.WriteString("\t}()\n")
	fmt.Fprintf(b, "\tif err != nil {\n\t\treturn %serr\n\t}\n", errPrefix)

	// The output target opens only after the closure has released every
	// input stream.
	if caps.Output {
		b.WriteString("\tif output != \"\" {\n")
		b.WriteString("\t\toutstream, err := os.Create(output)\n")
		fmt.Fprintf(b, "\t\tif err != nil {\n\t\t\treturn %serr\n\t\t}\n", errPrefix)
		b.WriteString("\t\tif _, err := fmt.Fprintf(outstream, \"%v\\n\", result); err != nil {\n")
		b.WriteString("\t\t\toutstream.Close()\n")
		fmt.Fprintf(b, "\t\t\treturn %serr\n\t\t}\n", errPrefix)
		fmt.Fprintf(b, "\t\tif err := outstream.Close(); err != nil {\n\t\t\treturn %serr\n\t\t}\n", errPrefix)
		b.WriteString("\t}\n")
	}
}

// readerExpr selects the decoded expression handed to the core logic for one
// argument: csv rows through the transform hook, a decoded document for
// json/yaml, raw text for untyped file inputs, and the value itself for
// everything that passes through unchanged.
func readerExpr(d descriptor.Descriptor, caps capability.Set) string {
	if caps.FileInput {
		if d.Name == "inputspec" {
			return "string(data)"
		}
		return d.Name
	}
	if !d.NeedsStream() {
		return d.Name
	}
	switch d.Type {
	case "csv":
		return "csvRows(" + d.Name + "Records)"
	case "json", "yaml":
		return d.Name + "Doc"
	}
	return "string(" + d.Name + "Data)"
}

func hasCSVArg(final []descriptor.Descriptor) bool {
	for _, d := range final {
		if d.Type == "csv" && d.Name != "config" && d.Name != "output" {
			return true
		}
	}
	return false
}

// renderCSVRows emits the per-row transform hook for CSV inputs.
func renderCSVRows(b *strings.Builder) {
	b.WriteString("\n// csvRows maps raw CSV records onto header-keyed rows. Adjust the\n")
	b.WriteString("// per-row handling here.\n")
	b.WriteString("func csvRows(records [][]string) []map[string]string {\n")
	b.WriteString("\tif len(records) == 0 {\n\t\treturn nil\n\t}\n")
	b.WriteString("\theader := records[0]\n")
	b.WriteString("\trows := make([]map[string]string, 0, len(records)-1)\n")
	b.WriteString("\tfor _, rec := range records[1:] {\n")
	b.WriteString("\t\trow := make(map[string]string, len(header))\n")
	b.WriteString("\t\tfor i, col := range header {\n")
	b.WriteString("\t\t\tif i < len(rec) {\n\t\t\t\trow[col] = rec[i]\n\t\t\t}\n")
	b.WriteString("\t\t}\n")
	b.WriteString("\t\trows = append(rows, row)\n")
	b.WriteString("\t}\n")
	b.WriteString("\treturn rows\n}\n")
}
