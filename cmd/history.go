// SPDX-License-Identifier: AGPL-3.0-or-later

package cmd

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/stubgen-org/stubgen/internal/history"
)

// NewHistoryCmd creates the history command listing previous generation runs.
func NewHistoryCmd() *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "history",
		Short: "List previous generation runs",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			store, err := history.Open(ctx, history.Options{})
			if err != nil {
				return fmt.Errorf("open history: %w", err)
			}
			defer store.Close()

			recs, err := store.List(ctx, limit)
			if err != nil {
				return err
			}
			if len(recs) == 0 {
				fmt.Println("No generation runs recorded yet.")
				return nil
			}
			for _, r := range recs {
				caps := strings.Join(r.Capabilities, ",")
				if caps == "" {
					caps = "-"
				}
				fmt.Printf("%d\t%s\t%s\t%s\t%s\n",
					r.Seq,
					r.CreatedAt.Format(time.RFC3339),
					r.Program,
					r.OutputPath,
					caps)
			}
			return nil
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "n", 20, "Maximum number of runs to show")
	return cmd
}
