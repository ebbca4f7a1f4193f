// Package downloader fetches the CTD report files over HTTP with bounded
// parallelism and simple caching on disk.
package downloader

import (
	"context"
	"crypto/md5"
	"encoding/hex"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/bio2bel/ctd/internal/ctd"
)

// Config holds configuration for the report downloader
type Config struct {
	BaseURL       string // CTD reports base URL; empty means the default
	OutputDir     string
	ParallelJobs  int
	RetryAttempts int
	Force         bool // re-download even when a cached copy exists
	Validate      bool // compute an MD5 checksum of the downloaded file
	DryRun        bool
	Verbose       bool
}

// Result contains information about a downloaded report file
type Result struct {
	Report   ctd.Report
	Path     string
	URL      string
	Size     int64
	MD5      string
	Cached   bool // satisfied from the local cache, no network transfer
	Duration time.Duration
}

// Downloader handles downloading CTD report files
type Downloader struct {
	config     Config
	httpClient *http.Client
	semaphore  chan struct{}
}

// New creates a new report downloader
func New(config Config) *Downloader {
	if config.ParallelJobs <= 0 {
		config.ParallelJobs = 1
	}

	return &Downloader{
		config: config,
		httpClient: &http.Client{
			Timeout: 0, // No timeout: the interaction reports are large
		},
		semaphore: make(chan struct{}, config.ParallelJobs),
	}
}

// LocalPath returns where the report file lives in the download cache.
func (d *Downloader) LocalPath(report ctd.Report) string {
	return filepath.Join(d.config.OutputDir, report.FileName)
}

// Download downloads a single report file.
func (d *Downloader) Download(ctx context.Context, report ctd.Report) (*Result, error) {
	d.semaphore <- struct{}{}
	defer func() { <-d.semaphore }()

	startTime := time.Now()

	url := report.URL(d.config.BaseURL)
	outputPath := d.LocalPath(report)

	result := &Result{
		Report: report,
		Path:   outputPath,
		URL:    url,
	}

	if d.config.DryRun {
		size, _ := d.remoteSize(ctx, url)
		result.Size = size
		return result, nil
	}

	// A cached copy satisfies the download unless forced
	if !d.config.Force {
		if stat, err := os.Stat(outputPath); err == nil && stat.Size() > 0 {
			result.Size = stat.Size()
			result.Cached = true
			result.Duration = time.Since(startTime)
			return result, nil
		}
	}

	var downloadErr error
	attempts := d.config.RetryAttempts
	if attempts <= 0 {
		attempts = 1
	}
	for attempt := 0; attempt < attempts; attempt++ {
		if attempt > 0 {
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(time.Duration(attempt) * 2 * time.Second):
			}
		}
		downloadErr = d.downloadWithHTTP(ctx, url, outputPath)
		if downloadErr == nil {
			break
		}
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
	}
	if downloadErr != nil {
		return nil, fmt.Errorf("failed to download %s: %w", report.FileName, downloadErr)
	}

	stat, err := os.Stat(outputPath)
	if err != nil {
		return nil, err
	}
	result.Size = stat.Size()

	if d.config.Validate {
		md5sum, err := calculateMD5(outputPath)
		if err == nil {
			result.MD5 = md5sum
		}
	}

	result.Duration = time.Since(startTime)
	return result, nil
}

// DownloadAll downloads the given reports with bounded parallelism. The
// first error cancels the remaining downloads.
func (d *Downloader) DownloadAll(ctx context.Context, reports []ctd.Report) ([]*Result, error) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	results := make([]*Result, len(reports))
	errs := make([]error, len(reports))

	var wg sync.WaitGroup
	for i, report := range reports {
		wg.Add(1)
		go func(i int, report ctd.Report) {
			defer wg.Done()
			res, err := d.Download(ctx, report)
			if err != nil {
				errs[i] = err
				cancel()
				return
			}
			results[i] = res
		}(i, report)
	}
	wg.Wait()

	for _, err := range errs {
		if err != nil {
			return nil, err
		}
	}
	return results, nil
}

// downloadWithHTTP downloads a file to a temporary path, renaming on success
// so a partial download never masquerades as a cached report.
func (d *Downloader) downloadWithHTTP(ctx context.Context, url, outputPath string) error {
	if err := os.MkdirAll(filepath.Dir(outputPath), 0755); err != nil {
		return err
	}

	tmpPath := outputPath + ".tmp"
	out, err := os.Create(tmpPath)
	if err != nil {
		return err
	}
	defer out.Close()
	defer os.Remove(tmpPath)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return err
	}

	resp, err := d.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("HTTP %d: %s", resp.StatusCode, resp.Status)
	}

	if _, err := io.Copy(out, resp.Body); err != nil {
		return err
	}
	if err := out.Close(); err != nil {
		return err
	}

	return os.Rename(tmpPath, outputPath)
}

// remoteSize attempts to get the size of a remote file via HEAD
func (d *Downloader) remoteSize(ctx context.Context, url string) (int64, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodHead, url, nil)
	if err != nil {
		return 0, err
	}

	resp, err := d.httpClient.Do(req)
	if err != nil {
		return 0, err
	}
	defer resp.Body.Close()

	return resp.ContentLength, nil
}

// calculateMD5 calculates the MD5 checksum of a file
func calculateMD5(path string) (string, error) {
	file, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer file.Close()

	hash := md5.New()
	if _, err := io.Copy(hash, file); err != nil {
		return "", err
	}

	return hex.EncodeToString(hash.Sum(nil)), nil
}

// FormatSize formats bytes as human-readable string
func FormatSize(bytes int64) string {
	const unit = 1024
	if bytes < unit {
		return fmt.Sprintf("%d B", bytes)
	}
	div, exp := int64(unit), 0
	for n := bytes / unit; n >= unit; n /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %cB", float64(bytes)/float64(div), "KMGTPE"[exp])
}

// FormatDuration formats a duration in human-readable form
func FormatDuration(d time.Duration) string {
	if d < time.Minute {
		return fmt.Sprintf("%.0f seconds", d.Seconds())
	}
	if d < time.Hour {
		return fmt.Sprintf("%.1f minutes", d.Minutes())
	}
	return fmt.Sprintf("%.1f hours", d.Hours())
}
