// SPDX-License-Identifier: AGPL-3.0-or-later

// Package companion renders the artifacts that accompany a generated
// program: the placeholder contract test and, in config-wrapper mode, the
// default config template. Both consume the finalized argument list frozen
// by the synthesis engine.
package companion

import (
	"bytes"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/stubgen-org/stubgen/internal/capability"
	"github.com/stubgen-org/stubgen/internal/descriptor"
	"github.com/stubgen-org/stubgen/internal/synth"
)

// RenderTest produces the test stub: a call to the core-logic function with
// every parameter bound to a neutral placeholder, compared against a literal
// marker. It is expected to fail until the developer fills the core in.
func RenderTest(progName string, args []descriptor.Descriptor, caps capability.Set) string {
	prog := synth.Identifier(progName)

	params := make([]string, 0, len(args)+2)
	for _, d := range args {
		if d.Name == "config" || d.Name == "output" {
			continue
		}
		params = append(params, synth.NeutralValue(synth.CoreParamType(d, caps)))
	}
	if caps.Config {
		params = append(params, "nil")
	}
	if caps.Database {
		params = append(params, "nil")
	}

	var b strings.Builder
	b.WriteString("package main\n\n")
	b.WriteString("import \"testing\"\n\n")
	b.WriteString("// Placeholder contract test: replace the zero-value inputs and the\n")
	b.WriteString("// expected marker with real fixtures.\n")
	fmt.Fprintf(&b, "func Test_%s(t *testing.T) {\n", prog)
	fmt.Fprintf(&b, "\tgot := %s(%s)\n", prog, strings.Join(params, ", "))
	b.WriteString("\tif got != \"expected_result\" {\n")
	fmt.Fprintf(&b, "\t\tt.Fatalf(\"%s() = %%v, want %%q\", got, \"expected_result\")\n", prog)
	b.WriteString("\t}\n}\n")
	return b.String()
}

// RenderConfig produces the YAML config template: every finalized argument
// except config itself, mapped to a readable placeholder default, in list
// order.
func RenderConfig(progName string, args []descriptor.Descriptor) (string, error) {
	mapping := &yaml.Node{Kind: yaml.MappingNode}
	seen := make(map[string]bool, len(args))
	for _, d := range args {
		if d.Name == "config" || seen[d.Name] {
			continue
		}
		seen[d.Name] = true
		mapping.Content = append(mapping.Content,
			&yaml.Node{Kind: yaml.ScalarNode, Value: d.Name},
			&yaml.Node{Kind: yaml.ScalarNode, Value: "default value for " + d.Name},
		)
	}
	root := &yaml.Node{
		Kind: yaml.MappingNode,
		Content: []*yaml.Node{
			{Kind: yaml.ScalarNode, Value: "args"},
			mapping,
		},
	}

	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(4)
	if err := enc.Encode(root); err != nil {
		return "", fmt.Errorf("encode config template: %w", err)
	}
	if err := enc.Close(); err != nil {
		return "", fmt.Errorf("close config template encoder: %w", err)
	}
	return buf.String(), nil
}

