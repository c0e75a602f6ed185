// SPDX-License-Identifier: AGPL-3.0-or-later

package synth

import (
	"fmt"
	"strings"

	"github.com/stubgen-org/stubgen/internal/capability"
	"github.com/stubgen-org/stubgen/internal/descriptor"
)

// renderEntry emits the config-load wrapper (config mode only) and the
// process entry point. The entry point wraps the main invocation in a
// failure boundary: any error or panic maps to exit code 1, success to 0.
func renderEntry(b *strings.Builder, prog string, caps capability.Set) {
	b.WriteString("\nfunc main() {\n")
	b.WriteString("\tdefer func() {\n")
	b.WriteString("\t\tif recover() != nil {\n\t\t\tos.Exit(1)\n\t\t}\n")
	b.WriteString("\t}()\n")
	if caps.Args {
		fmt.Fprintf(b, "\tif err := %s_main(parseArgs()); err != nil {\n", prog)
	} else {
		fmt.Fprintf(b, "\tif err := %s_main(map[string]any{}); err != nil {\n", prog)
	}
	if caps.Logging {
		fmt.Fprintf(b, "\t\tslog.Error(\"%s failed\", \"err\", err)\n", prog)
	}
	b.WriteString("\t\tos.Exit(1)\n\t}\n")
	b.WriteString("\tos.Exit(0)\n}\n")
}

// renderConfigMain emits the <prog>_main wrapper for config-wrapper mode: it
// loads the YAML config document, layers environment overrides beneath the
// explicit arguments (explicit wins), and either starts the listener or
// dispatches to <prog>_on_files with the whole document as config data.
func renderConfigMain(b *strings.Builder, prog string, final []descriptor.Descriptor, caps capability.Set) {
	fmt.Fprintf(b, "\nfunc %s_main(args map[string]any) error {\n", prog)
	b.WriteString("\tconfPath, _ := args[\"config\"].(string)\n")
	b.WriteString("\tconfStream, err := os.Open(confPath)\n")
	b.WriteString("\tif err != nil {\n\t\treturn err\n\t}\n")
	b.WriteString("\tdefer confStream.Close()\n")
	b.WriteString("\tvar confDoc map[string]any\n")
	b.WriteString("\tif err := yaml.NewDecoder(confStream).Decode(&confDoc); err != nil {\n\t\treturn err\n\t}\n")
	b.WriteString("\tmerged, _ := confDoc[\"args\"].(map[string]any)\n")
	b.WriteString("\tif merged == nil {\n\t\tmerged = map[string]any{}\n\t}\n")

	b.WriteString("\t// Environment overrides sit beneath explicit arguments.\n")
	seen := make(map[string]bool, len(final))
	for _, d := range final {
		if seen[d.Name] {
			continue
		}
		seen[d.Name] = true
		fmt.Fprintf(b, "\tif v, ok := os.LookupEnv(%q); ok {\n\t\tmerged[%q] = v\n\t}\n",
			strings.ToUpper(d.Name), d.Name)
	}
	b.WriteString("\tfor k, v := range args {\n\t\tmerged[k] = v\n\t}\n")

	if caps.Server {
		b.WriteString("\tif on, _ := merged[\"server\"].(bool); on {\n")
		b.WriteString("\t\thost, _ := merged[\"host\"].(string)\n")
		b.WriteString("\t\tport, _ := merged[\"port\"].(string)\n")
		fmt.Fprintf(b, "\t\treturn %s_serve(host, port)\n\t}\n", prog)
	}

	callArgs := make([]string, 0, len(final)+1)
	for i, d := range final {
		if seenAgain(final, i) {
			// Duplicate names were already extracted once; reuse the local.
			callArgs = append(callArgs, d.Name)
			continue
		}
		assertExpr(b, "\t", d.Name, "merged", cliParamType(d))
		callArgs = append(callArgs, d.Name)
	}
	callArgs = append(callArgs, "confDoc")
	fmt.Fprintf(b, "\t_, err = %s_on_files(%s)\n", prog, strings.Join(callArgs, ", "))
	b.WriteString("\treturn err\n}\n")
}

// seenAgain reports whether final[i] repeats an earlier name.
func seenAgain(final []descriptor.Descriptor, i int) bool {
	for j := 0; j < i; j++ {
		if final[j].Name == final[i].Name {
			return true
		}
	}
	return false
}
