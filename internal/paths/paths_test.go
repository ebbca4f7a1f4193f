package paths

import (
	"path/filepath"
	"strings"
	"testing"
)

func TestGetPathsWithAppEnv(t *testing.T) {
	t.Setenv("BIO2BEL_CTD_CONFIG_HOME", "/custom/config")
	t.Setenv("BIO2BEL_CTD_DATA_HOME", "/custom/data")
	t.Setenv("BIO2BEL_CTD_CACHE_HOME", "/custom/cache")

	p := GetPaths()
	if p.ConfigDir != "/custom/config" {
		t.Errorf("ConfigDir = %q, want /custom/config", p.ConfigDir)
	}
	if p.DataDir != "/custom/data" {
		t.Errorf("DataDir = %q, want /custom/data", p.DataDir)
	}
	if p.CacheDir != "/custom/cache" {
		t.Errorf("CacheDir = %q, want /custom/cache", p.CacheDir)
	}
}

func TestGetPathsWithXDGEnv(t *testing.T) {
	t.Setenv("BIO2BEL_CTD_DATA_HOME", "")
	t.Setenv("XDG_DATA_HOME", "/xdg/share")

	p := GetPaths()
	want := filepath.Join("/xdg/share", appName)
	if p.DataDir != want {
		t.Errorf("DataDir = %q, want %q", p.DataDir, want)
	}
}

func TestGetDatabasePath(t *testing.T) {
	t.Setenv("BIO2BEL_CTD_DB_PATH", "/tmp/custom.db")
	if got := GetDatabasePath(); got != "/tmp/custom.db" {
		t.Errorf("GetDatabasePath = %q, want /tmp/custom.db", got)
	}

	t.Setenv("BIO2BEL_CTD_DB_PATH", "")
	t.Setenv("BIO2BEL_CTD_DATA_HOME", "/data/home")
	want := filepath.Join("/data/home", "ctd.db")
	if got := GetDatabasePath(); got != want {
		t.Errorf("GetDatabasePath = %q, want %q", got, want)
	}
}

func TestGetIndexPathAdjacentToDatabase(t *testing.T) {
	t.Setenv("BIO2BEL_CTD_INDEX_PATH", "")
	t.Setenv("BIO2BEL_CTD_DB_PATH", "/data/project/ctd.db")

	got := GetIndexPath()
	if got != "/data/project/ctd.bleve" {
		t.Errorf("GetIndexPath = %q, want /data/project/ctd.bleve", got)
	}
}

func TestGetDownloadsPath(t *testing.T) {
	t.Setenv("BIO2BEL_CTD_DOWNLOADS_PATH", "")
	t.Setenv("BIO2BEL_CTD_CACHE_HOME", "/cache/home")

	got := GetDownloadsPath()
	if !strings.HasSuffix(got, filepath.Join("cache", "home", "reports")) {
		t.Errorf("GetDownloadsPath = %q, want suffix cache/home/reports", got)
	}
}

func TestEnsureDirectories(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("BIO2BEL_CTD_CONFIG_HOME", filepath.Join(dir, "config"))
	t.Setenv("BIO2BEL_CTD_DATA_HOME", filepath.Join(dir, "data"))
	t.Setenv("BIO2BEL_CTD_CACHE_HOME", filepath.Join(dir, "cache"))

	if err := EnsureDirectories(); err != nil {
		t.Fatalf("EnsureDirectories failed: %v", err)
	}
}
