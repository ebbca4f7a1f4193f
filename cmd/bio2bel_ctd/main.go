package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// Version info
var (
	version = "0.1.0"
	commit  = "dev"
	date    = "unknown"
)

// Global flags
var (
	cfgPath string
	noColor bool
	quiet   bool
	verbose bool
	yes     bool
	debug   bool
)

// Root command
var rootCmd = &cobra.Command{
	Use:   "bio2bel_ctd",
	Short: "Comparative Toxicogenomics Database loader",
	Long: `bio2bel_ctd downloads the Comparative Toxicogenomics Database (CTD)
report files from ctdbase.org and loads them into a local SQLite database.

The resulting database holds the CTD chemical, disease, gene, and pathway
vocabularies along with their curated associations, queryable from the
command line or over an HTTP API.`,
	Version: fmt.Sprintf("%s (commit: %s, built: %s)", version, commit, date),
	Example: `  # Download the CTD reports and build the database
  bio2bel_ctd populate

  # Show per-table record counts
  bio2bel_ctd summarize

  # Look up a chemical by MeSH identifier
  bio2bel_ctd chemicals get MESH:D003042

  # Full-text search across the vocabularies
  bio2bel_ctd search "liver cancer" --limit 10

  # Start the HTTP API
  bio2bel_ctd server --port 8080`,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgPath, "config", "", "Path to configuration file")
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "Disable colored output")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose output")
	rootCmd.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false, "Suppress non-error output")
	rootCmd.PersistentFlags().BoolVarP(&yes, "yes", "y", false, "Assume yes to all prompts (non-interactive mode)")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "Enable debug output")

	rootCmd.AddCommand(populateCmd)
	rootCmd.AddCommand(dropCmd)
	rootCmd.AddCommand(summarizeCmd)
	rootCmd.AddCommand(downloadCmd)
	rootCmd.AddCommand(chemicalsCmd)
	rootCmd.AddCommand(diseasesCmd)
	rootCmd.AddCommand(genesCmd)
	rootCmd.AddCommand(searchCmd)
	rootCmd.AddCommand(indexCmd)
	rootCmd.AddCommand(dbCmd)
	rootCmd.AddCommand(serverCmd)
	rootCmd.AddCommand(configCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
