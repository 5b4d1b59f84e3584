package main

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/spf13/cobra"
)

func newHistoryCmd() *cobra.Command {
	var limit int
	cmd := &cobra.Command{
		Use:   "history",
		Short: "List your most recent searches",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			entries, err := apiClient.Motifs.History(context.Background(), limit)
			if err != nil {
				fatal("history", err)
			}
			if flagFmt != "table" {
				output(entries, strconv.Itoa(len(entries)))
				return
			}

			headers := []string{"ID", "MODE", "MOTIF", "RESULTS", "MS", "ERROR", "CREATED"}
			var rows [][]string
			for _, e := range entries {
				results := strconv.Itoa(e.Results)
				if e.Truncated {
					results += "+"
				}
				rows = append(rows, []string{
					strconv.FormatInt(e.ID, 10),
					e.Mode,
					fmt.Sprintf("%dn/%de", e.MotifNodes, e.MotifEdges),
					results,
					fmt.Sprintf("%.1f", e.DurationMS),
					e.ErrorCode,
					e.CreatedAt.Format(time.RFC3339),
				})
			}
			formatTable(headers, rows)
		},
	}
	cmd.Flags().IntVar(&limit, "limit", 20, "Number of entries")
	return cmd
}
