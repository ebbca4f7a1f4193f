package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/bio2bel/ctd/internal/ctd"
	"github.com/bio2bel/ctd/internal/downloader"
)

var (
	downloadURL    string
	downloadForce  bool
	downloadDryRun bool
)

var downloadCmd = &cobra.Command{
	Use:   "download [report...]",
	Short: "Download CTD report files without importing them",
	Long: fmt.Sprintf(`Download fetches CTD report files into the local cache without touching
the database. With no arguments, all reports except the default exclusions
are fetched.

Available reports: %s`, strings.Join(reportNames, ", ")),
	Example: `  # Fetch all default reports
  bio2bel_ctd download

  # Fetch just the chemical vocabulary
  bio2bel_ctd download chemicals

  # Show what would be downloaded and how large the files are
  bio2bel_ctd download --dry-run`,
	RunE: runDownload,
}

func init() {
	downloadCmd.Flags().StringVar(&downloadURL, "url", "", "Base URL for CTD report downloads")
	downloadCmd.Flags().BoolVarP(&downloadForce, "force", "f", false, "Re-download even when cached copies exist")
	downloadCmd.Flags().BoolVarP(&downloadDryRun, "dry-run", "n", false, "Report remote file sizes without downloading")
}

func runDownload(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		printError("%v", err)
		return err
	}
	if err := cfg.EnsureDirectories(); err != nil {
		printError("%v", err)
		return err
	}

	reports, err := ctd.Select(args, nil)
	if err != nil {
		printError("%v", err)
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	dl := downloader.New(downloader.Config{
		BaseURL:       firstNonEmpty(downloadURL, cfg.Download.BaseURL),
		OutputDir:     cfg.Download.Directory,
		ParallelJobs:  cfg.Download.ParallelJobs,
		RetryAttempts: cfg.Download.RetryAttempts,
		Force:         downloadForce,
		Validate:      cfg.Download.Validate,
		DryRun:        downloadDryRun,
		Verbose:       verbose,
	})

	results, err := dl.DownloadAll(ctx, reports)
	if err != nil {
		printError("Download failed: %v", err)
		return err
	}

	var total int64
	for _, r := range results {
		status := "downloaded"
		if downloadDryRun {
			status = "remote"
		} else if r.Cached {
			status = "cached"
		}
		printInfo("  %-32s %10s  (%s)", r.Report.FileName, downloader.FormatSize(r.Size), status)
		total += r.Size
	}
	if downloadDryRun {
		printSuccess("%d report files, %s total", len(results), downloader.FormatSize(total))
	} else {
		printSuccess("%d report files in %s (%s total)",
			len(results), cfg.Download.Directory, downloader.FormatSize(total))
	}

	return nil
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
