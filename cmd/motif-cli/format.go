package main

import (
	"encoding/json"
	"fmt"
	"os"
	"slices"
	"strings"

	"github.com/persistorai/motif/client"
)

func formatJSON(v any) {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		fmt.Fprintf(os.Stderr, "Error: encode json: %v\n", err)
		os.Exit(1)
	}
}

func formatTable(headers []string, rows [][]string) {
	widths := make([]int, len(headers))
	for i, h := range headers {
		widths[i] = len(h)
	}
	for _, row := range rows {
		for i, cell := range row {
			if i < len(widths) {
				widths[i] = max(widths[i], len(cell))
			}
		}
	}

	printRow := func(cells []string) {
		parts := make([]string, len(cells))
		for i, cell := range cells {
			w := 0
			if i < len(widths) {
				w = widths[i]
			}
			parts[i] = fmt.Sprintf("%-*s", w, cell)
		}
		fmt.Println(strings.Join(parts, "  "))
	}

	printRow(headers)
	seps := make([]string, len(headers))
	for i, w := range widths {
		seps[i] = strings.Repeat("-", w)
	}
	printRow(seps)
	for _, row := range rows {
		printRow(row)
	}
}

// output prints v as JSON, or quietVal alone in quiet mode. Table rendering
// is left to callers.
func output(v any, quietVal string) {
	if flagFmt == "quiet" {
		fmt.Println(quietVal)
		return
	}
	formatJSON(v)
}

// printMappings renders one row per mapping with a column per motif node.
func printMappings(res *client.SearchResult) {
	var cols []string
	for _, m := range res.Mappings {
		for k := range m {
			if !slices.Contains(cols, k) {
				cols = append(cols, k)
			}
		}
	}
	slices.Sort(cols)

	rows := make([][]string, 0, len(res.Mappings))
	for _, m := range res.Mappings {
		row := make([]string, len(cols))
		for i, c := range cols {
			row[i] = m[c]
		}
		rows = append(rows, row)
	}
	if len(cols) > 0 {
		formatTable(cols, rows)
	}
	printSummary(res)
}

func printSummary(res *client.SearchResult) {
	more := ""
	if res.Truncated {
		more = " (truncated)"
	}
	fmt.Printf("%d mappings%s, %s, %.1fms, %d expanded, host %d nodes / %d edges\n",
		res.Count, more, res.Mode, res.DurationMS, res.Stats.Expanded, res.HostNodes, res.HostEdges)
}
