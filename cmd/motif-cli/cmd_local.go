package main

import (
	"context"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"github.com/persistorai/motif/client"
	"github.com/persistorai/motif/internal/graph"
	"github.com/persistorai/motif/internal/motif"
)

func newLocalCmd() *cobra.Command {
	var (
		f         searchFlags
		countOnly bool
	)
	cmd := &cobra.Command{
		Use:   "local <motif-file> <host-file>",
		Short: "Search a host graph file in-process, without a server",
		Args:  cobra.ExactArgs(2),
		Run: func(cmd *cobra.Command, args []string) {
			res, err := runLocal(context.Background(), args[0], args[1], &f, countOnly)
			if err != nil {
				fatal("local", err)
			}
			if flagFmt == "table" {
				printMappings(res)
				return
			}
			output(res, strconv.Itoa(res.Count))
		},
	}
	f.register(cmd)
	cmd.Flags().BoolVar(&countOnly, "count", false, "Only count mappings")
	return cmd
}

// runLocal loads both graph files and runs the engine with the same mode
// selection as the server.
func runLocal(ctx context.Context, motifPath, hostPath string, f *searchFlags, countOnly bool) (*client.SearchResult, error) {
	m, err := graph.LoadFile(motifPath)
	if err != nil {
		return nil, err
	}
	host, err := graph.LoadFile(hostPath)
	if err != nil {
		return nil, err
	}
	opts, err := f.engineOptions()
	if err != nil {
		return nil, err
	}

	s, err := motif.Prepare(m, host, opts)
	if err != nil {
		return nil, err
	}

	res := &client.SearchResult{HostNodes: host.Len(), HostEdges: host.EdgeCount()}
	start := time.Now()

	// One extra result tells a complete answer from a truncated one.
	probe := 0
	if f.limit > 0 {
		probe = f.limit + 1
	}

	var mappings []motif.Mapping
	switch {
	case countOnly:
		res.Mode = "count"
		res.Count, err = s.Count(ctx, probe)
	case f.workers > 1:
		res.Mode = "parallel"
		mappings, err = s.SearchParallel(ctx, f.workers)
	default:
		res.Mode = "sequential"
		mappings, err = s.Collect(ctx, probe)
	}
	if err != nil {
		return nil, err
	}

	if !countOnly {
		res.Count = len(mappings)
	}
	if f.limit > 0 && res.Count > f.limit {
		res.Count, res.Truncated = f.limit, true
		if mappings != nil {
			mappings = mappings[:f.limit]
		}
	}
	for _, mp := range mappings {
		res.Mappings = append(res.Mappings, mp)
	}

	st := s.Stats()
	res.DurationMS = float64(time.Since(start).Microseconds()) / 1000
	res.Stats = client.SearchStats{
		Expanded:     st.Expanded,
		Emitted:      st.Emitted,
		Discarded:    st.Discarded,
		PeakPending:  st.PeakPending,
		DroppedHints: st.DroppedHints,
		QueueHistory: st.QueueHistory,
	}
	return res, nil
}
