package main

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/bio2bel/ctd/internal/database"
	"github.com/bio2bel/ctd/internal/search"
)

var (
	searchLimit int
	searchType  string
	searchFuzzy bool
	searchIndex bool
	searchJSON  bool
)

var searchCmd = &cobra.Command{
	Use:   "search <query>",
	Short: "Full-text search across the CTD vocabularies",
	Long: `Search looks up chemicals, diseases, and genes by name, synonym, or
identifier. The default backend is the SQLite FTS5 tables; --index switches
to the Bleve index built with 'bio2bel_ctd index build', which adds query
syntax (field:value, boolean operators) and fuzzy matching.`,
	Args: cobra.MinimumNArgs(1),
	Example: `  bio2bel_ctd search codeine
  bio2bel_ctd search "diabetes mellitus" --type disease
  bio2bel_ctd search cisplatn --index --fuzzy`,
	RunE: runSearch,
}

func init() {
	searchCmd.Flags().IntVarP(&searchLimit, "limit", "l", 25, "Maximum results")
	searchCmd.Flags().StringVarP(&searchType, "type", "t", "", "Restrict to a type (chemical|disease|gene)")
	searchCmd.Flags().BoolVar(&searchFuzzy, "fuzzy", false, "Fuzzy matching for typo tolerance (requires --index)")
	searchCmd.Flags().BoolVar(&searchIndex, "index", false, "Search the Bleve index instead of FTS5")
	searchCmd.Flags().BoolVar(&searchJSON, "json", false, "Emit results as JSON")
}

func runSearch(cmd *cobra.Command, args []string) error {
	query := strings.Join(args, " ")

	if searchIndex || searchFuzzy {
		return runBleveSearch(query)
	}
	return runFTSSearch(query)
}

func runFTSSearch(query string) error {
	m, _, err := openManager()
	if err != nil {
		printError("%v", err)
		return err
	}
	defer m.Close()

	fts := database.NewFTS5Manager(m.DB())
	results, err := fts.Search(query, searchLimit)
	if err != nil {
		printError("Search failed: %v", err)
		return err
	}

	if searchType != "" {
		filtered := results[:0]
		for _, r := range results {
			if r.Type == searchType {
				filtered = append(filtered, r)
			}
		}
		results = filtered
	}

	if searchJSON {
		return json.NewEncoder(os.Stdout).Encode(results)
	}
	if len(results) == 0 {
		printInfo("No results for %q", query)
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, colorize(colorBold, "TYPE\tIDENTIFIER\tNAME"))
	for _, r := range results {
		fmt.Fprintf(w, "%s\t%s\t%s\n", r.Type, r.ID, r.Name)
	}
	return w.Flush()
}

func runBleveSearch(query string) error {
	cfg, err := loadConfig()
	if err != nil {
		printError("%v", err)
		return err
	}

	idx, err := search.Open(cfg.Search.IndexPath)
	if err != nil {
		printError("Opening index (run 'bio2bel_ctd index build' first): %v", err)
		return err
	}
	defer idx.Close()

	var result *search.Result
	switch {
	case searchFuzzy:
		result, err = idx.FuzzySearch(query, 2, searchLimit)
	case searchType != "":
		result, err = idx.SearchType(query, searchType, searchLimit)
	default:
		result, err = idx.Search(query, searchLimit)
	}
	if err != nil {
		printError("Search failed: %v", err)
		return err
	}

	if searchJSON {
		return json.NewEncoder(os.Stdout).Encode(result)
	}
	if result.Total == 0 {
		printInfo("No results for %q", query)
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, colorize(colorBold, "SCORE\tTYPE\tIDENTIFIER\tNAME"))
	for _, hit := range result.Hits {
		docType, _ := hit.Fields["type"].(string)
		identifier, _ := hit.Fields["identifier"].(string)
		name, _ := hit.Fields["name"].(string)
		fmt.Fprintf(w, "%.3f\t%s\t%s\t%s\n", hit.Score, docType, identifier, name)
	}
	if err := w.Flush(); err != nil {
		return err
	}
	printInfo("%d of %d results", len(result.Hits), result.Total)
	return nil
}
