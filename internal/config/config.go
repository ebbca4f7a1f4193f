package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/bio2bel/ctd/internal/ctd"
	"github.com/bio2bel/ctd/internal/paths"
	"gopkg.in/yaml.v3"
)

// Config represents the bio2bel_ctd configuration
type Config struct {
	DataDirectory string         `yaml:"data_directory"`
	Database      DatabaseConfig `yaml:"database"` // SQLite settings
	Download      DownloadConfig `yaml:"download"` // CTD report acquisition
	Search        SearchConfig   `yaml:"search"`   // Optional Bleve index
	Server        ServerConfig   `yaml:"server"`   // HTTP API
}

// DatabaseConfig contains SQLite database settings
type DatabaseConfig struct {
	Path        string `yaml:"path"`
	CacheSize   int    `yaml:"cache_size"`   // in KB
	MMapSize    int64  `yaml:"mmap_size"`    // in bytes
	JournalMode string `yaml:"journal_mode"` // WAL
	BatchSize   int    `yaml:"batch_size"`   // rows per import transaction
}

// DownloadConfig contains CTD report download settings
type DownloadConfig struct {
	Directory     string `yaml:"directory"`      // where report files are cached
	BaseURL       string `yaml:"base_url"`       // CTD reports base URL
	ParallelJobs  int    `yaml:"parallel_jobs"`  // concurrent downloads
	RetryAttempts int    `yaml:"retry_attempts"` // per-file retries
	Validate      bool   `yaml:"validate"`       // checksum downloaded files
}

// SearchConfig contains search-related settings
type SearchConfig struct {
	Enabled      bool   `yaml:"enabled"`       // Enable Bleve search
	IndexPath    string `yaml:"index_path"`    // Path to Bleve index
	BatchSize    int    `yaml:"batch_size"`    // Indexing batch size
	DefaultLimit int    `yaml:"default_limit"` // Default result limit
}

// ServerConfig contains HTTP API settings
type ServerConfig struct {
	Host       string `yaml:"host"`
	Port       int    `yaml:"port"`
	EnableCORS bool   `yaml:"enable_cors"`
}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	p := paths.GetPaths()

	return &Config{
		DataDirectory: p.DataDir,
		Database: DatabaseConfig{
			Path:        paths.GetDatabasePath(),
			CacheSize:   10000,     // 40MB
			MMapSize:    268435456, // 256MB
			JournalMode: "WAL",
			BatchSize:   5000,
		},
		Download: DownloadConfig{
			Directory:     paths.GetDownloadsPath(),
			BaseURL:       ctd.DefaultBaseURL,
			ParallelJobs:  3,
			RetryAttempts: 3,
			Validate:      false,
		},
		Search: SearchConfig{
			Enabled:      true,
			IndexPath:    paths.GetIndexPath(),
			BatchSize:    1000,
			DefaultLimit: 100,
		},
		Server: ServerConfig{
			Host:       "localhost",
			Port:       8080,
			EnableCORS: true,
		},
	}
}

// Load loads configuration from a file, falling back to defaults when the
// file does not exist.
func Load(path string) (*Config, error) {
	config := DefaultConfig()

	if _, err := os.Stat(path); os.IsNotExist(err) {
		return config, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	if err := yaml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	config.DataDirectory = expandPath(config.DataDirectory)
	config.Database.Path = expandPath(config.Database.Path)
	config.Download.Directory = expandPath(config.Download.Directory)
	config.Search.IndexPath = expandPath(config.Search.IndexPath)

	if config.Database.BatchSize <= 0 {
		config.Database.BatchSize = 5000
	}
	if config.Download.ParallelJobs <= 0 {
		config.Download.ParallelJobs = 1
	}

	return config, nil
}

// Save saves the configuration to a file
func (c *Config) Save(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// GetConfigPath returns the default config file path
func GetConfigPath() string {
	// Environment variable wins
	if path := os.Getenv("BIO2BEL_CTD_CONFIG"); path != "" {
		return path
	}

	// Current directory
	if _, err := os.Stat("bio2bel_ctd.yaml"); err == nil {
		return "bio2bel_ctd.yaml"
	}

	p := paths.GetPaths()
	return filepath.Join(p.ConfigDir, "config.yaml")
}

// EnsureDirectories creates necessary directories
func (c *Config) EnsureDirectories() error {
	if err := paths.EnsureDirectories(); err != nil {
		return err
	}

	dirs := []string{
		c.DataDirectory,
		filepath.Dir(c.Database.Path),
		c.Download.Directory,
		filepath.Dir(c.Search.IndexPath),
	}

	for _, dir := range dirs {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create directory %s: %w", dir, err)
		}
	}

	return nil
}

// expandPath expands ~ to home directory
func expandPath(path string) string {
	if len(path) == 0 {
		return path
	}

	if path[0] == '~' {
		homeDir, _ := os.UserHomeDir()
		return filepath.Join(homeDir, path[1:])
	}

	return path
}
