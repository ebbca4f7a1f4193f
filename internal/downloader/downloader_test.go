package downloader

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/bio2bel/ctd/internal/ctd"
)

func testReport() ctd.Report {
	return ctd.Report{
		Name:     "chemical",
		FileName: "CTD_chemicals.tsv.gz",
		Fields:   []string{"ChemicalName", "ChemicalID"},
	}
}

func newTestServer(t *testing.T, body string, hits *int32) *httptest.Server {
	t.Helper()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodGet {
			atomic.AddInt32(hits, 1)
		}
		w.Write([]byte(body))
	}))
	t.Cleanup(server.Close)
	return server
}

func TestDownload(t *testing.T) {
	var hits int32
	server := newTestServer(t, "report contents", &hits)

	dir := t.TempDir()
	d := New(Config{
		BaseURL:      server.URL + "/",
		OutputDir:    dir,
		ParallelJobs: 1,
		Validate:     true,
	})

	result, err := d.Download(context.Background(), testReport())
	if err != nil {
		t.Fatalf("Download() error = %v", err)
	}
	if result.Cached {
		t.Error("first download should not be cached")
	}
	if result.Size != int64(len("report contents")) {
		t.Errorf("Size = %d, want %d", result.Size, len("report contents"))
	}
	if result.MD5 == "" {
		t.Error("expected MD5 checksum with Validate enabled")
	}

	data, err := os.ReadFile(filepath.Join(dir, "CTD_chemicals.tsv.gz"))
	if err != nil {
		t.Fatalf("reading downloaded file: %v", err)
	}
	if string(data) != "report contents" {
		t.Errorf("file contents = %q", data)
	}

	// No leftover temp file
	if _, err := os.Stat(filepath.Join(dir, "CTD_chemicals.tsv.gz.tmp")); !os.IsNotExist(err) {
		t.Error("temporary download file was not cleaned up")
	}
}

func TestDownloadUsesCache(t *testing.T) {
	var hits int32
	server := newTestServer(t, "report contents", &hits)

	dir := t.TempDir()
	d := New(Config{BaseURL: server.URL + "/", OutputDir: dir, ParallelJobs: 1})

	if _, err := d.Download(context.Background(), testReport()); err != nil {
		t.Fatalf("Download() error = %v", err)
	}
	result, err := d.Download(context.Background(), testReport())
	if err != nil {
		t.Fatalf("second Download() error = %v", err)
	}
	if !result.Cached {
		t.Error("second download should be served from cache")
	}
	if got := atomic.LoadInt32(&hits); got != 1 {
		t.Errorf("server hits = %d, want 1", got)
	}
}

func TestDownloadForce(t *testing.T) {
	var hits int32
	server := newTestServer(t, "report contents", &hits)

	dir := t.TempDir()
	d := New(Config{BaseURL: server.URL + "/", OutputDir: dir, ParallelJobs: 1, Force: true})

	for i := 0; i < 2; i++ {
		result, err := d.Download(context.Background(), testReport())
		if err != nil {
			t.Fatalf("Download() error = %v", err)
		}
		if result.Cached {
			t.Error("forced download should not report cached")
		}
	}
	if got := atomic.LoadInt32(&hits); got != 2 {
		t.Errorf("server hits = %d, want 2", got)
	}
}

func TestDownloadDryRun(t *testing.T) {
	var hits int32
	server := newTestServer(t, "report contents", &hits)

	dir := t.TempDir()
	d := New(Config{BaseURL: server.URL + "/", OutputDir: dir, ParallelJobs: 1, DryRun: true})

	result, err := d.Download(context.Background(), testReport())
	if err != nil {
		t.Fatalf("Download() error = %v", err)
	}
	if result.Size != int64(len("report contents")) {
		t.Errorf("dry run Size = %d, want %d", result.Size, len("report contents"))
	}
	if _, err := os.Stat(filepath.Join(dir, "CTD_chemicals.tsv.gz")); !os.IsNotExist(err) {
		t.Error("dry run must not write files")
	}
	if got := atomic.LoadInt32(&hits); got != 0 {
		t.Errorf("dry run made %d GET requests", got)
	}
}

func TestDownloadServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "not found", http.StatusNotFound)
	}))
	defer server.Close()

	d := New(Config{BaseURL: server.URL + "/", OutputDir: t.TempDir(), ParallelJobs: 1})

	if _, err := d.Download(context.Background(), testReport()); err == nil {
		t.Fatal("expected error for HTTP 404")
	}
}

func TestDownloadContextCancellation(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(5 * time.Second)
	}))
	defer server.Close()

	d := New(Config{BaseURL: server.URL + "/", OutputDir: t.TempDir(), ParallelJobs: 1, RetryAttempts: 3})

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	if _, err := d.Download(ctx, testReport()); err == nil {
		t.Fatal("expected error after context cancellation")
	}
}

func TestDownloadAll(t *testing.T) {
	var hits int32
	server := newTestServer(t, "data", &hits)

	dir := t.TempDir()
	d := New(Config{BaseURL: server.URL + "/", OutputDir: dir, ParallelJobs: 3})

	reports := []ctd.Report{
		{Name: "chemical", FileName: "a.tsv.gz"},
		{Name: "disease", FileName: "b.tsv.gz"},
		{Name: "gene", FileName: "c.tsv.gz"},
	}
	results, err := d.DownloadAll(context.Background(), reports)
	if err != nil {
		t.Fatalf("DownloadAll() error = %v", err)
	}
	if len(results) != 3 {
		t.Fatalf("got %d results, want 3", len(results))
	}
	for i, res := range results {
		if res.Report.Name != reports[i].Name {
			t.Errorf("result %d report = %q, want %q", i, res.Report.Name, reports[i].Name)
		}
	}
}

func TestFormatSize(t *testing.T) {
	tests := []struct {
		bytes int64
		want  string
	}{
		{512, "512 B"},
		{2048, "2.0 KB"},
		{5 * 1024 * 1024, "5.0 MB"},
		{3 * 1024 * 1024 * 1024, "3.0 GB"},
	}
	for _, tt := range tests {
		if got := FormatSize(tt.bytes); got != tt.want {
			t.Errorf("FormatSize(%d) = %q, want %q", tt.bytes, got, tt.want)
		}
	}
}
