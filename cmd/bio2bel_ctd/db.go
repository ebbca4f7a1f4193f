package main

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/bio2bel/ctd/internal/downloader"
)

var dbJSON bool

var dbCmd = &cobra.Command{
	Use:   "db",
	Short: "Inspect the local CTD database",
}

var dbInfoCmd = &cobra.Command{
	Use:   "info",
	Short: "Show database location, size, and import history",
	RunE:  runDBInfo,
}

var dbStatsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show cached per-table record counts",
	RunE:  runDBStats,
}

func init() {
	dbInfoCmd.Flags().BoolVar(&dbJSON, "json", false, "Emit as JSON")
	dbStatsCmd.Flags().BoolVar(&dbJSON, "json", false, "Emit as JSON")

	dbCmd.AddCommand(dbInfoCmd)
	dbCmd.AddCommand(dbStatsCmd)
}

func runDBInfo(cmd *cobra.Command, args []string) error {
	m, _, err := openManager()
	if err != nil {
		printError("%v", err)
		return err
	}
	defer m.Close()

	info, err := m.DB().GetInfo()
	if err != nil {
		printError("%v", err)
		return err
	}
	imports, err := m.Tracker().List()
	if err != nil {
		printError("%v", err)
		return err
	}

	if dbJSON {
		return json.NewEncoder(os.Stdout).Encode(map[string]interface{}{
			"database": info,
			"imports":  imports,
		})
	}

	printInfo("Database: %s", info.Path)
	printInfo("Size:     %s", downloader.FormatSize(info.Size))

	if len(imports) == 0 {
		printInfo("No populate run recorded")
		return nil
	}

	fmt.Println()
	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, colorize(colorBold, "REPORT\tSTATE\tRECORDS\tCOMPLETED"))
	for _, imp := range imports {
		completed := "-"
		if imp.CompletedAt != nil {
			completed = imp.CompletedAt.Format("2006-01-02 15:04")
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", imp.Report, imp.State, formatCount(imp.Records), completed)
	}
	return w.Flush()
}

func runDBStats(cmd *cobra.Command, args []string) error {
	m, _, err := openManager()
	if err != nil {
		printError("%v", err)
		return err
	}
	defer m.Close()

	stats, err := m.Summarize()
	if err != nil {
		printError("%v", err)
		return err
	}

	if dbJSON {
		return json.NewEncoder(os.Stdout).Encode(stats)
	}

	tables := make([]string, 0, len(stats))
	for table := range stats {
		tables = append(tables, table)
	}
	sort.Strings(tables)

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, colorize(colorBold, "TABLE\tRECORDS"))
	for _, table := range tables {
		fmt.Fprintf(w, "%s\t%s\n", table, formatCount(stats[table]))
	}
	return w.Flush()
}
