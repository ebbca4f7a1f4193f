package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/bio2bel/ctd/internal/ctd"
	"github.com/bio2bel/ctd/internal/downloader"
	"github.com/bio2bel/ctd/internal/manager"
	"github.com/bio2bel/ctd/internal/ui"
)

var (
	populateURL        string
	populateForce      bool
	populateOnly       []string
	populateExclude    []string
	populateEverything bool
)

var populateCmd = &cobra.Command{
	Use:   "populate",
	Short: "Download the CTD reports and build the database",
	Long: `Populate downloads the CTD report files and loads them into the local
SQLite database. Existing database contents are dropped first, so populate
always yields a database matching the current CTD release.

Downloaded report files are cached; use --force to re-download them. By
default the exposure events report is skipped because of its size; use
--include-exposure or --only exposure_events to load it.`,
	Example: `  # Standard population
  bio2bel_ctd populate

  # Re-download the report files first
  bio2bel_ctd populate --force

  # Only load the chemical and gene vocabularies
  bio2bel_ctd populate --only chemicals --only genes

  # Everything, including exposure events
  bio2bel_ctd populate --include-exposure`,
	RunE: runPopulate,
}

func init() {
	populateCmd.Flags().StringVar(&populateURL, "url", "", "Base URL for CTD report downloads")
	populateCmd.Flags().BoolVarP(&populateForce, "force", "f", false, "Re-download report files even when cached")
	populateCmd.Flags().StringArrayVar(&populateOnly, "only", nil, "Load only the named reports (repeatable)")
	populateCmd.Flags().StringArrayVar(&populateExclude, "exclude", nil, "Skip the named reports in addition to the defaults (repeatable)")
	populateCmd.Flags().BoolVar(&populateEverything, "include-exposure", false, "Also load the exposure events report")
}

func runPopulate(cmd *cobra.Command, args []string) error {
	m, _, err := openManager()
	if err != nil {
		printError("%v", err)
		return err
	}
	defer m.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	exclude, err := resolveExclusions(populateExclude, populateEverything)
	if err != nil {
		printError("%v", err)
		return err
	}

	spinner := ui.NewSpinner("Populating CTD database")
	if !quiet {
		spinner.Start()
	}

	result, err := m.Populate(ctx, manager.PopulateOptions{
		BaseURL: populateURL,
		Force:   populateForce,
		Only:    populateOnly,
		Exclude: exclude,
		Progress: func(report string, records int64) {
			spinner.Update(fmt.Sprintf("Importing %s: %s records", report, formatCount(records)))
		},
	})
	if err != nil {
		spinner.Stop("")
		printError("Population failed: %v", err)
		return err
	}
	spinner.Stop("")

	for _, r := range result.Reports {
		source := downloader.FormatSize(r.FileSize)
		if r.Cached {
			source += ", cached"
		}
		printInfo("  %-20s %12s records  (%s)", r.Report, formatCount(r.Records), source)
		if r.Skipped > 0 {
			printWarning("%s: skipped %s malformed rows", r.Report, formatCount(r.Skipped))
		}
	}
	printSuccess("Populated %s records from %d reports in %s",
		formatCount(result.Records), len(result.Reports),
		downloader.FormatDuration(result.Duration))

	return nil
}

// resolveExclusions builds the effective exclusion list for a populate run.
// Explicit --exclude names add to the default exclusions; --include-exposure
// lifts the default exposure events exclusion.
func resolveExclusions(explicit []string, includeExposure bool) ([]string, error) {
	exclude := append([]string{}, ctd.DefaultExcluded...)
	exclude = append(exclude, explicit...)
	if !includeExposure {
		return exclude, nil
	}

	for _, name := range explicit {
		if name == ctd.ReportExposureEvents {
			return nil, fmt.Errorf("--include-exposure conflicts with --exclude %s", name)
		}
	}
	kept := exclude[:0]
	for _, name := range exclude {
		if name != ctd.ReportExposureEvents {
			kept = append(kept, name)
		}
	}
	return kept, nil
}

// reportNames is shared by populate and download flag help
var reportNames = ctd.Names()
