package paths

import (
	"fmt"
	"os"
	"path/filepath"
)

const appName = "bio2bel-ctd"

type Paths struct {
	ConfigDir string
	DataDir   string
	CacheDir  string
}

// GetPaths returns all base paths respecting environment variables
func GetPaths() Paths {
	return Paths{
		ConfigDir: getDir("BIO2BEL_CTD_CONFIG_HOME", "XDG_CONFIG_HOME", ".config"),
		DataDir:   getDir("BIO2BEL_CTD_DATA_HOME", "XDG_DATA_HOME", ".local/share"),
		CacheDir:  getDir("BIO2BEL_CTD_CACHE_HOME", "XDG_CACHE_HOME", ".cache"),
	}
}

func getDir(appEnv, xdgEnv, defaultBase string) string {
	// 1. App-specific env wins
	if dir := os.Getenv(appEnv); dir != "" {
		return dir
	}

	// 2. XDG env
	if xdgBase := os.Getenv(xdgEnv); xdgBase != "" {
		return filepath.Join(xdgBase, appName)
	}

	// 3. Default
	home, _ := os.UserHomeDir()
	return filepath.Join(home, defaultBase, appName)
}

// GetDatabasePath returns the path to the SQLite database
func GetDatabasePath() string {
	if path := os.Getenv("BIO2BEL_CTD_DB_PATH"); path != "" {
		return path
	}
	return filepath.Join(GetPaths().DataDir, "ctd.db")
}

// GetIndexPath returns the path to the search index.
// Default: adjacent to the database for easy backup/migration.
func GetIndexPath() string {
	if path := os.Getenv("BIO2BEL_CTD_INDEX_PATH"); path != "" {
		return path
	}

	dbPath := GetDatabasePath()
	dir := filepath.Dir(dbPath)
	dbName := filepath.Base(dbPath)
	dbNameNoExt := dbName[:len(dbName)-len(filepath.Ext(dbName))]

	return filepath.Join(dir, dbNameNoExt+".bleve")
}

// GetDownloadsPath returns the directory where CTD report files are cached
func GetDownloadsPath() string {
	if path := os.Getenv("BIO2BEL_CTD_DOWNLOADS_PATH"); path != "" {
		return path
	}
	return filepath.Join(GetPaths().CacheDir, "reports")
}

// EnsureDirectories creates all necessary directories
func EnsureDirectories() error {
	paths := GetPaths()
	dirs := []string{
		paths.ConfigDir,
		paths.DataDir,
		paths.CacheDir,
		filepath.Join(paths.CacheDir, "reports"),
	}

	for _, dir := range dirs {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create directory %s: %w", dir, err)
		}
	}
	return nil
}
