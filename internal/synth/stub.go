// SPDX-License-Identifier: AGPL-3.0-or-later

package synth

import (
	"fmt"
	"strings"

	"github.com/stubgen-org/stubgen/internal/capability"
	"github.com/stubgen-org/stubgen/internal/descriptor"
)

// renderCoreStub emits the core-logic placeholder: one typed parameter per
// finalized argument except config and output, plus the config document in
// config-wrapper mode and the connection in database mode. The body is the
// point of the whole exercise; it stays empty on purpose.
func renderCoreStub(b *strings.Builder, prog string, final []descriptor.Descriptor, caps capability.Set) {
	params := make([]string, 0, len(final)+2)
	for _, d := range coreArgs(final) {
		params = append(params, d.Name+" "+CoreParamType(d, caps))
	}
	if caps.Config {
		params = append(params, "configData map[string]any")
	}
	if caps.Database {
		params = append(params, "conn *sql.DB")
	}

	fmt.Fprintf(b, "\n// %s is the core logic of the program, callable from the command\n", prog)
	b.WriteString("// line")
	if caps.Server {
		b.WriteString(", the HTTP API,")
	}
	b.WriteString(" or directly from other Go code.\n")
	fmt.Fprintf(b, "func %s(%s) any {\n", prog, strings.Join(params, ", "))
	if caps.Database {
		b.WriteString("\t// Write your main logic here, e.g. conn.Query(...).\n")
	} else {
		b.WriteString("\t// Write your main logic here.\n")
	}
	b.WriteString("\treturn nil\n}\n")
}

// renderAPI emits the HTTP endpoint for server mode: a keyword adapter that
// maps decoded JSON body keys onto the core parameters, the GET/POST handler
// at /<prog>/, and the listener wiring.
func renderAPI(b *strings.Builder, prog string, final []descriptor.Descriptor, caps capability.Set) {
	core := coreArgs(final)

	fmt.Fprintf(b, "\nfunc %s_kw(kw map[string]any) any {\n", prog)
	callArgs := make([]string, 0, len(core)+2)
	for _, d := range core {
		assertExpr(b, "\t", d.Name, "kw", CoreParamType(d, caps))
		callArgs = append(callArgs, d.Name)
	}
	if caps.Config {
		callArgs = append(callArgs, "nil")
	}
	if caps.Database {
		callArgs = append(callArgs, "nil")
	}
	fmt.Fprintf(b, "\treturn %s(%s)\n}\n", prog, strings.Join(callArgs, ", "))

	fmt.Fprintf(b, "\nfunc respond_%s(w http.ResponseWriter, r *http.Request) {\n", prog)
	b.WriteString("\tif r.Method != http.MethodGet && r.Method != http.MethodPost {\n")
	b.WriteString("\t\thttp.Error(w, \"method not allowed\", http.StatusMethodNotAllowed)\n")
	b.WriteString("\t\treturn\n\t}\n")
	b.WriteString("\tkw := map[string]any{}\n")
	b.WriteString("\tif r.Body != nil {\n")
	b.WriteString("\t\tdefer r.Body.Close()\n")
	b.WriteString("\t\t_ = json.NewDecoder(r.Body).Decode(&kw)\n")
	b.WriteString("\t}\n")
	fmt.Fprintf(b, "\tif err := json.NewEncoder(w).Encode(%s_kw(kw)); err != nil {\n", prog)
	b.WriteString("\t\thttp.Error(w, err.Error(), http.StatusInternalServerError)\n")
	b.WriteString("\t}\n}\n")

	fmt.Fprintf(b, "\nfunc %s_serve(host, port string) error {\n", prog)
	fmt.Fprintf(b, "\thttp.HandleFunc(\"/%s/\", respond_%s)\n", prog, prog)
	b.WriteString("\treturn http.ListenAndServe(host+\":\"+port, nil)\n}\n")
}
