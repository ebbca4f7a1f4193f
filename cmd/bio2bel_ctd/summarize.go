package main

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

var summarizeJSON bool

var summarizeCmd = &cobra.Command{
	Use:   "summarize",
	Short: "Show per-table record counts",
	Long: `Summarize prints how many records each CTD table holds. Counts come from
the statistics cache refreshed at the end of every populate run.`,
	RunE: runSummarize,
}

func init() {
	summarizeCmd.Flags().BoolVar(&summarizeJSON, "json", false, "Emit counts as JSON")
}

func runSummarize(cmd *cobra.Command, args []string) error {
	m, _, err := openManager()
	if err != nil {
		printError("%v", err)
		return err
	}
	defer m.Close()

	populated, err := m.IsPopulated()
	if err != nil {
		printError("%v", err)
		return err
	}
	if !populated {
		printWarning("Database is not populated; run 'bio2bel_ctd populate' first")
	}

	stats, err := m.Summarize()
	if err != nil {
		printError("%v", err)
		return err
	}

	if summarizeJSON {
		return json.NewEncoder(os.Stdout).Encode(stats)
	}

	tables := make([]string, 0, len(stats))
	for table := range stats {
		tables = append(tables, table)
	}
	sort.Strings(tables)

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, colorize(colorBold, "TABLE\tRECORDS"))
	var total int64
	for _, table := range tables {
		fmt.Fprintf(w, "%s\t%s\n", table, formatCount(stats[table]))
		total += stats[table]
	}
	fmt.Fprintf(w, "%s\t%s\n", colorize(colorBold, "total"), formatCount(total))
	return w.Flush()
}
