// Package manager coordinates the CTD populate pipeline: downloading the
// published report files, loading them into SQLite, and answering queries
// about the resulting database.
package manager

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/bio2bel/ctd/internal/config"
	"github.com/bio2bel/ctd/internal/ctd"
	"github.com/bio2bel/ctd/internal/database"
	"github.com/bio2bel/ctd/internal/downloader"
	"github.com/bio2bel/ctd/internal/progress"
)

// Manager owns the CTD database and the machinery to populate it
type Manager struct {
	cfg     *config.Config
	db      *database.DB
	tracker *progress.Tracker
	verbose bool
}

// New opens the database named by the configuration and returns a Manager
func New(cfg *config.Config) (*Manager, error) {
	db, err := database.Initialize(cfg.Database.Path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	tracker, err := progress.NewTracker(db.DB)
	if err != nil {
		db.Close()
		return nil, err
	}

	return &Manager{cfg: cfg, db: db, tracker: tracker}, nil
}

// Open constructs a Manager over the database at path with otherwise default
// configuration.
func Open(path string) (*Manager, error) {
	cfg := config.DefaultConfig()
	cfg.Database.Path = path
	return New(cfg)
}

// SetVerbose enables per-report log output during populate
func (m *Manager) SetVerbose(v bool) {
	m.verbose = v
}

// DB exposes the underlying database for queries
func (m *Manager) DB() *database.DB {
	return m.db
}

// Tracker exposes the import progress records
func (m *Manager) Tracker() *progress.Tracker {
	return m.tracker
}

// Close closes the database
func (m *Manager) Close() error {
	return m.db.Close()
}

// PopulateOptions controls a populate run
type PopulateOptions struct {
	// BaseURL overrides where report files are downloaded from. An empty
	// value uses the configured URL, falling back to ctdbase.org.
	BaseURL string

	// Force re-downloads report files even when cached copies exist
	Force bool

	// Only restricts the run to the named reports. When empty, all reports
	// except Exclude are loaded.
	Only []string

	// Exclude names reports to skip. nil applies the default exclusions
	// (exposure events); an empty non-nil slice excludes nothing.
	Exclude []string

	// Progress, when set, receives running record counts during import
	Progress func(report string, records int64)
}

// ReportResult describes the outcome of importing one report
type ReportResult struct {
	Report   string        `json:"report"`
	FileName string        `json:"file_name"`
	FileSize int64         `json:"file_size"`
	Records  int64         `json:"records"`
	Skipped  int64         `json:"skipped"`
	Cached   bool          `json:"cached"`
	Duration time.Duration `json:"duration"`
}

// PopulateResult summarizes a completed populate run
type PopulateResult struct {
	Reports  []ReportResult `json:"reports"`
	Records  int64          `json:"records"`
	Duration time.Duration  `json:"duration"`
}

// Populate rebuilds the database from the CTD reports. Existing contents are
// dropped first, so a failed run leaves a partially-filled database that
// IsPopulated reports as unpopulated until the run is repeated.
func (m *Manager) Populate(ctx context.Context, opts PopulateOptions) (*PopulateResult, error) {
	start := time.Now()

	reports, err := ctd.Select(opts.Only, opts.Exclude)
	if err != nil {
		return nil, err
	}

	baseURL := opts.BaseURL
	if baseURL == "" {
		baseURL = m.cfg.Download.BaseURL
	}

	if err := m.db.DropAll(); err != nil {
		return nil, fmt.Errorf("failed to drop existing tables: %w", err)
	}
	if err := m.tracker.Clear(); err != nil {
		return nil, err
	}

	dl := downloader.New(downloader.Config{
		BaseURL:       baseURL,
		OutputDir:     m.cfg.Download.Directory,
		ParallelJobs:  m.cfg.Download.ParallelJobs,
		RetryAttempts: m.cfg.Download.RetryAttempts,
		Force:         opts.Force,
		Validate:      m.cfg.Download.Validate,
	})

	downloads, err := dl.DownloadAll(ctx, reports)
	if err != nil {
		return nil, fmt.Errorf("failed to download reports: %w", err)
	}

	result := &PopulateResult{}
	for _, dlResult := range downloads {
		report := dlResult.Report
		if m.verbose {
			log.Printf("Importing %s (%s)", report.FileName, downloader.FormatSize(dlResult.Size))
		}

		if err := m.tracker.Start(report.Name, report.FileName, dlResult.Size); err != nil {
			return nil, err
		}

		// Push running counts to the tracker so an import in flight can be
		// inspected. A failed update never aborts the import.
		progress := func(name string, records, skipped int64) {
			m.tracker.Update(name, records, skipped)
			if opts.Progress != nil {
				opts.Progress(name, records)
			}
		}

		importStart := time.Now()
		records, skipped, err := m.importReport(ctx, report, dlResult.Path, progress)
		if err != nil {
			m.tracker.Fail(report.Name, err.Error())
			return nil, fmt.Errorf("failed to import %s: %w", report.Name, err)
		}
		if err := m.tracker.Complete(report.Name, records, skipped); err != nil {
			return nil, err
		}

		result.Reports = append(result.Reports, ReportResult{
			Report:   report.Name,
			FileName: report.FileName,
			FileSize: dlResult.Size,
			Records:  records,
			Skipped:  skipped,
			Cached:   dlResult.Cached,
			Duration: time.Since(importStart),
		})
		result.Records += records
	}

	if err := m.db.UpdateStatistics(); err != nil {
		return nil, fmt.Errorf("failed to refresh statistics: %w", err)
	}

	result.Duration = time.Since(start)
	return result, nil
}

// IsPopulated reports whether the database holds imported CTD data, keyed on
// the chemical-gene interactions table.
func (m *Manager) IsPopulated() (bool, error) {
	count, err := m.db.CountTable("chem_gene_ixns")
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// DropAll removes all imported data and recreates the empty schema
func (m *Manager) DropAll() error {
	if err := m.db.DropAll(); err != nil {
		return err
	}
	return m.tracker.Clear()
}

// Summarize returns per-table record counts
func (m *Manager) Summarize() (map[string]int64, error) {
	return m.db.GetStatistics()
}
