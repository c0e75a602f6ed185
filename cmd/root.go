// SPDX-License-Identifier: AGPL-3.0-or-later

package cmd

import (
	"fmt"
	"os"

	"github.com/stubgen-org/stubgen/internal/paths"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "stubgen",
	Short: "Go program stub generator",
	Long: `stubgen generates a runnable Go program skeleton from a compact
argument specification: command-line parsing, a core-logic placeholder, an
I/O orchestration wrapper, optional HTTP-API and database glue, a companion
test stub, and (in config mode) a default config template.`,
}

func Execute() {
	if dataDir := os.Getenv("STUBGEN_DATA_DIR"); dataDir != "" {
		paths.SetDataDirOverride(dataDir)
	}

	rootCmd.AddCommand(NewGenerateCmd())
	rootCmd.AddCommand(NewHistoryCmd())
	rootCmd.AddCommand(NewCompletionCmd(rootCmd))

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
