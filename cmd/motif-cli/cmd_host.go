package main

import (
	"context"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
)

func newHostCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "host",
		Short: "Manage the host graph searches run against",
	}
	cmd.AddCommand(newHostImportCmd(), newHostInvalidateCmd())
	return cmd
}

func newHostImportCmd() *cobra.Command {
	var replace bool
	cmd := &cobra.Command{
		Use:   "import <graph-file>",
		Short: "Upsert a YAML or JSON graph document into your host graph",
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			g, err := readGraphFile(args[0])
			if err != nil {
				fatal("import", err)
			}
			res, err := apiClient.Hosts.Import(context.Background(), g, replace)
			if err != nil {
				fatal("import", err)
			}
			if flagFmt == "table" {
				formatTable([]string{"NODES", "EDGES", "REPLACED"},
					[][]string{{strconv.Itoa(res.Nodes), strconv.Itoa(res.Edges), strconv.FormatBool(res.Replaced)}})
				return
			}
			output(res, fmt.Sprintf("%d %d", res.Nodes, res.Edges))
		},
	}
	cmd.Flags().BoolVar(&replace, "replace", false, "Delete the existing host graph first")
	return cmd
}

func newHostInvalidateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "invalidate",
		Short: "Drop the server's cached copy of your host graph",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			if err := apiClient.Hosts.Invalidate(context.Background()); err != nil {
				fatal("invalidate", err)
			}
			output(map[string]bool{"invalidated": true}, "ok")
		},
	}
}
