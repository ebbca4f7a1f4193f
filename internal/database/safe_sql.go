// Package database provides safe SQL utilities to prevent SQL injection.
package database

import (
	"fmt"
	"regexp"
)

// AllowedTables is the whitelist of valid table names in the CTD database.
// Any table name not in this list will be rejected to prevent SQL injection.
var AllowedTables = map[string]bool{
	// Vocabulary tables
	"chemicals": true,
	"diseases":  true,
	"genes":     true,
	"pathways":  true,
	"actions":   true,

	// Association tables
	"chem_gene_ixns":    true,
	"chemical_diseases": true,
	"gene_diseases":     true,
	"gene_pathways":     true,
	"disease_pathways":  true,
	"exposure_events":   true,

	// FTS5 virtual tables
	"fts_chemicals": true,
	"fts_diseases":  true,
	"fts_genes":     true,

	// System tables
	"statistics": true,
}

// AllowedColumns is the whitelist of valid column names for dynamic column
// selection in queries.
var AllowedColumns = map[string]bool{
	// Identifier columns
	"chemical_id": true,
	"disease_id":  true,
	"gene_id":     true,
	"pathway_id":  true,
	"code":        true,
	"id":          true,

	// Name/description columns
	"chemical_name": true,
	"disease_name":  true,
	"gene_name":     true,
	"gene_symbol":   true,
	"pathway_name":  true,
	"type_name":     true,
	"definition":    true,
	"description":   true,
	"synonyms":      true,
	"cas_rn":        true,

	// Association columns
	"direct_evidence":     true,
	"inference_score":     true,
	"interaction":         true,
	"interaction_actions": true,
	"organism":            true,
	"organism_id":         true,
	"pubmed_ids":          true,
	"omim_ids":            true,

	// Statistics columns
	"table_name": true,
	"row_count":  true,
}

// ErrInvalidTableName is returned when a table name is not in the whitelist.
var ErrInvalidTableName = fmt.Errorf("invalid table name")

// ErrInvalidColumnName is returned when a column name is not in the whitelist.
var ErrInvalidColumnName = fmt.Errorf("invalid column name")

// validIdentifierPattern matches valid SQL identifiers (alphanumeric and underscore).
var validIdentifierPattern = regexp.MustCompile(`^[a-zA-Z_][a-zA-Z0-9_]*$`)

// ValidateTableName checks if a table name is in the allowed list.
// Returns nil if valid, ErrInvalidTableName otherwise.
func ValidateTableName(table string) error {
	if !AllowedTables[table] {
		return fmt.Errorf("%w: %q", ErrInvalidTableName, table)
	}
	return nil
}

// ValidateColumnName checks if a column name is in the allowed list.
// Returns nil if valid, ErrInvalidColumnName otherwise.
func ValidateColumnName(column string) error {
	if !AllowedColumns[column] {
		return fmt.Errorf("%w: %q", ErrInvalidColumnName, column)
	}
	return nil
}

// ValidateIdentifier checks if a string is a valid SQL identifier format.
// This is a fallback for dynamic identifiers not in the whitelists.
func ValidateIdentifier(identifier string) error {
	if identifier == "" {
		return fmt.Errorf("empty identifier")
	}
	if !validIdentifierPattern.MatchString(identifier) {
		return fmt.Errorf("invalid identifier format: %q", identifier)
	}
	return nil
}

// SafeTableName returns the table name if valid, otherwise returns an error.
// Use this when you need the table name for SQL construction.
func SafeTableName(table string) (string, error) {
	if err := ValidateTableName(table); err != nil {
		return "", err
	}
	return table, nil
}

// SafeColumnName returns the column name if valid, otherwise returns an error.
// Use this when you need the column name for SQL construction.
func SafeColumnName(column string) (string, error) {
	if err := ValidateColumnName(column); err != nil {
		return "", err
	}
	return column, nil
}
