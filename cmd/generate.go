// SPDX-License-Identifier: AGPL-3.0-or-later

package cmd

import (
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/stubgen-org/stubgen/internal/capability"
	"github.com/stubgen-org/stubgen/internal/companion"
	"github.com/stubgen-org/stubgen/internal/descriptor"
	"github.com/stubgen-org/stubgen/internal/genspec"
	"github.com/stubgen-org/stubgen/internal/history"
	"github.com/stubgen-org/stubgen/internal/materialize"
	"github.com/stubgen-org/stubgen/internal/synth"
)

// NewGenerateCmd creates the generate command, the core operation: descriptor
// tokens plus capability flags in, a program skeleton with companions out.
func NewGenerateCmd() *cobra.Command {
	var (
		argTokens []string
		csvFlag   bool
		jsonFlag  bool
		yamlFlag  bool
		fileInput bool
		database  bool
		server    bool
		logging   bool
		output    string
		specPath  string
		noHistory bool
	)

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate a Go program skeleton from argument descriptors",
		Long: `Each --args token follows the grammar name[.type][modifier], with
type in {csv,json,yaml,bool,int,float} and at most one trailing modifier:
'+' repeatable, '*' multi-value, ':' boolean flag, '%' input file. The
argument names config and output are treated specially.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if specPath != "" {
				spec, err := genspec.Load(specPath)
				if err != nil {
					return err
				}
				if err := genspec.Apply(cmd.Flags(), spec); err != nil {
					return err
				}
			}
			if output == "" {
				return errors.New("--output is required (flag or spec file)")
			}

			descs, err := descriptor.ParseAll(argTokens)
			if err != nil {
				return err
			}
			caps, final := capability.Infer(descs, capability.Flags{
				CSV:       csvFlag,
				JSON:      jsonFlag,
				YAML:      yamlFlag,
				FileInput: fileInput,
				Database:  database,
				Server:    server,
				Logging:   logging,
			})

			progName := strings.TrimSuffix(filepath.Base(output), filepath.Ext(output))
			res := synth.Synthesize(progName, final, caps)

			// Render every companion before touching the filesystem so a
			// rendering failure aborts with nothing written.
			testSrc := companion.RenderTest(progName, res.Args, caps)
			confSrc := ""
			if caps.Config {
				confSrc, err = companion.RenderConfig(progName, res.Args)
				if err != nil {
					return err
				}
			}

			if err := materialize.WriteProgram(output, res.Source); err != nil {
				return err
			}
			testPath, err := materialize.WriteTestStub(output, synth.Identifier(progName), testSrc)
			if err != nil {
				return err
			}
			fmt.Printf("[OK] Generated %s (test stub %s)\n", output, testPath)
			if caps.Config {
				confPath, err := materialize.WriteConfigTemplate(output, progName, confSrc)
				if err != nil {
					return err
				}
				fmt.Printf("[OK] Config template %s\n", confPath)
			}

			if !noHistory {
				recordRun(cmd, progName, output, argTokens, caps)
			}
			return nil
		},
	}

	cmd.Flags().StringArrayVarP(&argTokens, "args", "a", nil, "Argument descriptor token (repeatable)")
	cmd.Flags().BoolVarP(&csvFlag, "csv", "c", false, "Import CSV handling even without a .csv argument")
	cmd.Flags().BoolVarP(&jsonFlag, "json", "j", false, "Import JSON handling even without a .json argument")
	cmd.Flags().BoolVarP(&yamlFlag, "yaml", "y", false, "Import YAML handling even without a .yaml argument")
	cmd.Flags().BoolVarP(&fileInput, "fileinput", "f", false, "Read multiple input files through one combined reader")
	cmd.Flags().BoolVarP(&database, "database", "d", false, "Include SQL database setup")
	cmd.Flags().BoolVarP(&server, "server", "s", false, "Include a JSON HTTP API server")
	cmd.Flags().BoolVarP(&logging, "logging", "l", false, "Include structured logging")
	cmd.Flags().StringVarP(&output, "output", "o", "", "Path of the generated program")
	cmd.Flags().StringVar(&specPath, "spec", "", "YAML generation spec (explicit flags win)")
	cmd.Flags().BoolVar(&noHistory, "no-history", false, "Skip recording this run in the history store")

	return cmd
}

// recordRun appends the run to the history store. History is best effort; a
// missing or broken store never fails a generation.
func recordRun(cmd *cobra.Command, progName, output string, tokens []string, caps capability.Set) {
	ctx := cmd.Context()
	store, err := history.Open(ctx, history.Options{})
	if err != nil {
		slog.Debug("history unavailable", "err", err)
		return
	}
	defer store.Close()

	if _, err := store.Append(ctx, history.Record{
		Program:      progName,
		OutputPath:   output,
		Args:         tokens,
		Capabilities: caps.Names(),
	}); err != nil {
		slog.Debug("history append failed", "err", err)
	}
}
