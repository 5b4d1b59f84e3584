package main

import (
	"context"
	"strconv"

	"github.com/spf13/cobra"
)

func newSearchCmd() *cobra.Command {
	var f searchFlags
	cmd := &cobra.Command{
		Use:   "search <motif-file>",
		Short: "Find mappings of a motif into your host graph",
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			req, err := f.request(args[0])
			if err != nil {
				fatal("search", err)
			}
			res, err := apiClient.Motifs.Search(context.Background(), req)
			if err != nil {
				fatal("search", err)
			}
			if flagFmt == "table" {
				printMappings(res)
				return
			}
			output(res, strconv.Itoa(res.Count))
		},
	}
	f.register(cmd)
	return cmd
}

func newCountCmd() *cobra.Command {
	var f searchFlags
	cmd := &cobra.Command{
		Use:   "count <motif-file>",
		Short: "Count mappings of a motif without transferring them",
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			req, err := f.request(args[0])
			if err != nil {
				fatal("count", err)
			}
			res, err := apiClient.Motifs.Count(context.Background(), req)
			if err != nil {
				fatal("count", err)
			}
			if flagFmt == "table" {
				printSummary(res)
				return
			}
			output(res, strconv.Itoa(res.Count))
		},
	}
	f.register(cmd)
	return cmd
}
