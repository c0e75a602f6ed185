// SPDX-License-Identifier: AGPL-3.0-or-later

// Package synth renders the generated program: six ordered text blocks
// driven entirely by the capability set and the finalized descriptor list.
package synth

import (
	"strings"

	"github.com/stubgen-org/stubgen/internal/capability"
	"github.com/stubgen-org/stubgen/internal/descriptor"
)

// Result carries the rendered program source together with the frozen
// finalized argument list. Downstream writers (test stub, config template)
// consume Args as-is and never recompute it.
type Result struct {
	Source string
	Args   []descriptor.Descriptor
}

// Synthesize renders the full program text for progName. The finalized
// descriptor list must come from capability.Infer; it is not mutated.
func Synthesize(progName string, final []descriptor.Descriptor, caps capability.Set) *Result {
	prog := Identifier(progName)

	var b strings.Builder
	renderHeader(&b, caps)
	renderCLI(&b, final, caps)
	renderCoreStub(&b, prog, final, caps)
	if caps.Server {
		renderAPI(&b, prog, final, caps)
	}
	renderWrapper(&b, prog, final, caps)
	if caps.Config {
		renderConfigMain(&b, prog, final, caps)
	}
	renderEntry(&b, prog, caps)

	frozen := make([]descriptor.Descriptor, len(final))
	copy(frozen, final)
	return &Result{Source: b.String(), Args: frozen}
}

// Identifier maps a program name onto a valid Go identifier. Output base
// names routinely carry dashes or dots that Go cannot accept in a function
// name.
func Identifier(name string) string {
	if name == "" {
		return "program"
	}
	var out []byte
	for i := 0; i < len(name); i++ {
		c := name[i]
		switch {
		case c >= 'a' && c <= 'z', c >= 'A' && c <= 'Z', c == '_':
			out = append(out, c)
		case c >= '0' && c <= '9':
			if i == 0 {
				out = append(out, '_')
			}
			out = append(out, c)
		default:
			out = append(out, '_')
		}
	}
	return string(out)
}

// shortAllocator hands out single-letter flag shorthands greedily in list
// order: first letter, then its upper-case form, then nothing. The used set
// spans the whole argument list, so allocation is order dependent.
type shortAllocator struct {
	used map[string]bool
}

func newShortAllocator() *shortAllocator {
	return &shortAllocator{used: make(map[string]bool)}
}

func (a *shortAllocator) alloc(name string) string {
	if name == "" {
		return ""
	}
	short := name[:1]
	if !a.used[short] {
		a.used[short] = true
		return short
	}
	upper := strings.ToUpper(short)
	if upper != short && !a.used[upper] {
		a.used[upper] = true
		return upper
	}
	return ""
}

// coreArgs is the core-logic parameter selection: every finalized argument
// except config and output, in finalized order. Duplicate names survive.
func coreArgs(final []descriptor.Descriptor) []descriptor.Descriptor {
	out := make([]descriptor.Descriptor, 0, len(final))
	for _, d := range final {
		if d.Name == "config" || d.Name == "output" {
			continue
		}
		out = append(out, d)
	}
	return out
}

// CoreParamType is the decoded Go type a core-logic parameter carries once
// the orchestration wrapper has run its reader.
func CoreParamType(d descriptor.Descriptor, caps capability.Set) string {
	if caps.FileInput {
		// The multi-file reader replaces per-argument streams entirely:
		// inputspec carries the combined text, and any other file-flavoured
		// argument passes through as typed on the command line.
		if d.Name == "inputspec" {
			return "string"
		}
		if d.NeedsStream() {
			return cliParamType(d)
		}
	}
	if d.IsList() {
		return "[]string"
	}
	switch d.Type {
	case "csv":
		return "[]map[string]string"
	case "json", "yaml":
		return "any"
	case "bool":
		return "bool"
	case "int":
		return "int"
	case "float":
		return "float64"
	}
	return "string"
}

// cliParamType is the Go type an argument has straight off the command line,
// before any reader runs.
func cliParamType(d descriptor.Descriptor) string {
	if d.IsList() {
		return "[]string"
	}
	switch d.Type {
	case "bool":
		return "bool"
	case "int":
		return "int"
	case "float":
		return "float64"
	}
	return "string"
}

// NeutralValue is the placeholder literal the companion test binds to a
// core-logic parameter.
func NeutralValue(goType string) string {
	switch goType {
	case "bool":
		return "false"
	case "int":
		return "0"
	case "float64":
		return "0"
	case "string":
		return `""`
	}
	return "nil"
}

// assertExpr renders the type-assertion extraction of name from the given
// map expression for a cliParamType-shaped value.
func assertExpr(b *strings.Builder, indent, name, mapExpr, goType string) {
	if goType == "any" {
		b.WriteString(indent + name + " := " + mapExpr + "[\"" + name + "\"]\n")
		return
	}
	b.WriteString(indent + name + ", _ := " + mapExpr + "[\"" + name + "\"].(" + goType + ")\n")
}
