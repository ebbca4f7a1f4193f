package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/bio2bel/ctd/internal/database"
	"github.com/bio2bel/ctd/internal/search"
	"github.com/bio2bel/ctd/internal/ui"
)

var indexBatchSize int

var indexCmd = &cobra.Command{
	Use:   "index",
	Short: "Manage the Bleve search index",
}

var indexBuildCmd = &cobra.Command{
	Use:   "build",
	Short: "Build the search index from the database",
	Long: `Build creates (or rebuilds) two search backends over the vocabulary
tables: the SQLite FTS5 tables used by the default search, and the Bleve
index used by 'search --index'.`,
	RunE: runIndexBuild,
}

var indexInfoCmd = &cobra.Command{
	Use:   "info",
	Short: "Show search index statistics",
	RunE:  runIndexInfo,
}

func init() {
	indexBuildCmd.Flags().IntVar(&indexBatchSize, "batch-size", 0, "Documents per indexing batch (0 = configured default)")

	indexCmd.AddCommand(indexBuildCmd)
	indexCmd.AddCommand(indexInfoCmd)
}

func runIndexBuild(cmd *cobra.Command, args []string) error {
	m, cfg, err := openManager()
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
		err := fmt.Errorf("database is not populated")
		printError("%v; run 'bio2bel_ctd populate' first", err)
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// FTS5 tables first; they back the default search path
	err = ui.WithSpinner("Building FTS5 tables", func() error {
		return database.NewFTS5Manager(m.DB()).CreateFTSTables()
	})
	if err != nil {
		printError("FTS5 build failed: %v", err)
		return err
	}

	batchSize := indexBatchSize
	if batchSize <= 0 {
		batchSize = cfg.Search.BatchSize
	}

	idx, err := search.Open(cfg.Search.IndexPath)
	if err != nil {
		printError("Opening index: %v", err)
		return err
	}
	defer idx.Close()

	spinner := ui.NewSpinner("Building Bleve index")
	if !quiet {
		spinner.Start()
	}
	stats, err := idx.Build(ctx, m.DB(), search.BuildOptions{
		BatchSize: batchSize,
		Progress: func(docType string, indexed int64) {
			spinner.Update(fmt.Sprintf("Indexing %ss: %s", docType, formatCount(indexed)))
		},
	})
	spinner.Stop("")
	if err != nil {
		printError("Index build failed: %v", err)
		return err
	}

	printSuccess("Indexed %s documents (%s chemicals, %s diseases, %s genes)",
		formatCount(stats.Total()), formatCount(stats.Chemicals),
		formatCount(stats.Diseases), formatCount(stats.Genes))
	return nil
}

func runIndexInfo(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		printError("%v", err)
		return err
	}

	idx, err := search.Open(cfg.Search.IndexPath)
	if err != nil {
		printError("Opening index: %v", err)
		return err
	}
	defer idx.Close()

	count, err := idx.DocCount()
	if err != nil {
		printError("%v", err)
		return err
	}

	printInfo("Index path: %s", idx.Path())
	printInfo("Documents:  %s", formatCount(int64(count)))
	return nil
}
