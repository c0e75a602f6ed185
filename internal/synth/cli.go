// SPDX-License-Identifier: AGPL-3.0-or-later

package synth

import (
	"fmt"
	"strings"

	"github.com/stubgen-org/stubgen/internal/capability"
	"github.com/stubgen-org/stubgen/internal/descriptor"
)

// renderCLI emits parseArgs. Every finalized descriptor becomes a named flag
// except the last, which is rendered positional; shorthands are allocated
// greedily across the whole list, so the positional argument still consumes
// its letter.
func renderCLI(b *strings.Builder, final []descriptor.Descriptor, caps capability.Set) {
	if !caps.Args {
		return
	}

	b.WriteString("\nfunc parseArgs() map[string]any {\n")
	b.WriteString("\targs := map[string]any{}\n")

	shorts := newShortAllocator()
	last := len(final) - 1
	for i, d := range final {
		short := shorts.alloc(d.Name)
		if i == last {
			continue
		}
		fmt.Fprintf(b, "\t%s := %s\n", d.Name, flagCall(d, short))
	}
	b.WriteString("\tpflag.Parse()\n")

	for i, d := range final {
		if i == last {
			fmt.Fprintf(b, "\t%s\n", positionalAssign(d))
			continue
		}
		fmt.Fprintf(b, "\targs[%q] = *%s\n", d.Name, d.Name)
	}
	b.WriteString("\treturn args\n}\n")
}

func flagCall(d descriptor.Descriptor, short string) string {
	fn, def := "String", `""`
	switch {
	case d.Modifier == descriptor.ModRepeat:
		fn, def = "StringArray", "nil"
	case d.Modifier == descriptor.ModMulti:
		fn, def = "StringSlice", "nil"
	case d.Type == "bool":
		fn, def = "Bool", "false"
	case d.Type == "int":
		fn, def = "Int", "0"
	case d.Type == "float":
		fn, def = "Float64", "0"
	}
	if short == "" {
		return fmt.Sprintf("pflag.%s(%q, %s, \"\")", fn, d.Name, def)
	}
	return fmt.Sprintf("pflag.%sP(%q, %q, %s, \"\")", fn, d.Name, short, def)
}

// positionalAssign renders the args-map binding for the positional last
// descriptor, converting the raw argument string to the declared type so the
// wrapper's assertion sees the value it expects.
func positionalAssign(d descriptor.Descriptor) string {
	if d.IsList() {
		return fmt.Sprintf("args[%q] = pflag.Args()", d.Name)
	}
	switch d.Type {
	case "bool":
		return fmt.Sprintf("args[%q] = pflag.Arg(0) == \"true\"", d.Name)
	case "int":
		return fmt.Sprintf("args[%q], _ = strconv.Atoi(pflag.Arg(0))", d.Name)
	case "float":
		return fmt.Sprintf("args[%q], _ = strconv.ParseFloat(pflag.Arg(0), 64)", d.Name)
	}
	return fmt.Sprintf("args[%q] = pflag.Arg(0)", d.Name)
}
