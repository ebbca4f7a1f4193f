package database

import (
	"fmt"
	"log"
	"strings"
	"time"
)

// ftsTables are the FTS5 virtual tables, rebuilt from the base tables.
var ftsTables = []string{"fts_chemicals", "fts_diseases", "fts_genes"}

// FTS5Manager manages SQLite FTS5 tables for fast text search over the CTD
// vocabularies. This is the zero-setup search path; the Bleve index is the
// richer alternative.
type FTS5Manager struct {
	db *DB
}

// NewFTS5Manager creates a new FTS5 manager
func NewFTS5Manager(db *DB) *FTS5Manager {
	return &FTS5Manager{db: db}
}

// CreateFTSTables rebuilds the FTS5 tables from the current vocabulary tables.
func (f *FTS5Manager) CreateFTSTables() error {
	log.Println("[FTS5] Creating FTS5 tables for fast search")
	start := time.Now()

	if err := f.createChemicalFTSTable(); err != nil {
		return fmt.Errorf("failed to create chemical FTS table: %w", err)
	}
	if err := f.createDiseaseFTSTable(); err != nil {
		return fmt.Errorf("failed to create disease FTS table: %w", err)
	}
	if err := f.createGeneFTSTable(); err != nil {
		return fmt.Errorf("failed to create gene FTS table: %w", err)
	}

	log.Printf("[FTS5] FTS5 tables created in %v", time.Since(start))
	return nil
}

func (f *FTS5Manager) createChemicalFTSTable() error {
	if _, err := f.db.Exec(`DROP TABLE IF EXISTS fts_chemicals`); err != nil {
		return err
	}

	if _, err := f.db.Exec(`
		CREATE VIRTUAL TABLE fts_chemicals USING fts5(
			chemical_id UNINDEXED,
			chemical_name,
			synonyms,
			definition,
			tokenize='porter'
		)
	`); err != nil {
		return err
	}

	_, err := f.db.Exec(`
		INSERT INTO fts_chemicals (chemical_id, chemical_name, synonyms, definition)
		SELECT chemical_id, chemical_name,
			   COALESCE(synonyms, ''), COALESCE(definition, '')
		FROM chemicals
	`)
	return err
}

func (f *FTS5Manager) createDiseaseFTSTable() error {
	if _, err := f.db.Exec(`DROP TABLE IF EXISTS fts_diseases`); err != nil {
		return err
	}

	if _, err := f.db.Exec(`
		CREATE VIRTUAL TABLE fts_diseases USING fts5(
			disease_id UNINDEXED,
			disease_name,
			synonyms,
			definition,
			tokenize='porter'
		)
	`); err != nil {
		return err
	}

	_, err := f.db.Exec(`
		INSERT INTO fts_diseases (disease_id, disease_name, synonyms, definition)
		SELECT disease_id, disease_name,
			   COALESCE(synonyms, ''), COALESCE(definition, '')
		FROM diseases
	`)
	return err
}

func (f *FTS5Manager) createGeneFTSTable() error {
	if _, err := f.db.Exec(`DROP TABLE IF EXISTS fts_genes`); err != nil {
		return err
	}

	if _, err := f.db.Exec(`
		CREATE VIRTUAL TABLE fts_genes USING fts5(
			gene_id UNINDEXED,
			gene_symbol,
			gene_name,
			synonyms,
			tokenize='porter'
		)
	`); err != nil {
		return err
	}

	_, err := f.db.Exec(`
		INSERT INTO fts_genes (gene_id, gene_symbol, gene_name, synonyms)
		SELECT gene_id, gene_symbol, COALESCE(gene_name, ''), COALESCE(synonyms, '')
		FROM genes
	`)
	return err
}

// FTSResult is a hit from the FTS5 search tables.
type FTSResult struct {
	Type  string  `json:"type"` // chemical, disease, or gene
	ID    string  `json:"id"`
	Name  string  `json:"name"`
	Score float64 `json:"score"`
}

// Search runs the query against all three FTS tables and merges results.
// Falls back to a LIKE scan over the base tables when the FTS tables have
// not been built yet.
func (f *FTS5Manager) Search(query string, limit int) ([]FTSResult, error) {
	if !f.HasFTSTables() {
		return f.likeSearch(query, limit)
	}

	match := sanitizeFTSQuery(query)
	var results []FTSResult

	searches := []struct {
		typ string
		sql string
	}{
		{"chemical", `
			SELECT chemical_id, chemical_name, bm25(fts_chemicals)
			FROM fts_chemicals WHERE fts_chemicals MATCH ? ORDER BY rank LIMIT ?`},
		{"disease", `
			SELECT disease_id, disease_name, bm25(fts_diseases)
			FROM fts_diseases WHERE fts_diseases MATCH ? ORDER BY rank LIMIT ?`},
		{"gene", `
			SELECT gene_id, gene_symbol, bm25(fts_genes)
			FROM fts_genes WHERE fts_genes MATCH ? ORDER BY rank LIMIT ?`},
	}

	for _, s := range searches {
		rows, err := f.db.Query(s.sql, match, limit)
		if err != nil {
			return nil, fmt.Errorf("FTS search over %s failed: %w", s.typ, err)
		}

		for rows.Next() {
			var r FTSResult
			r.Type = s.typ
			if err := rows.Scan(&r.ID, &r.Name, &r.Score); err != nil {
				rows.Close()
				return nil, err
			}
			results = append(results, r)
		}
		if err := rows.Err(); err != nil {
			rows.Close()
			return nil, err
		}
		rows.Close()
	}

	if len(results) > limit {
		results = results[:limit]
	}
	return results, nil
}

// HasFTSTables reports whether the FTS5 tables have been built.
func (f *FTS5Manager) HasFTSTables() bool {
	var name string
	err := f.db.QueryRow(`
		SELECT name FROM sqlite_master WHERE type = 'table' AND name = 'fts_chemicals'
	`).Scan(&name)
	return err == nil
}

// likeSearch is the fallback when no FTS tables exist.
func (f *FTS5Manager) likeSearch(query string, limit int) ([]FTSResult, error) {
	term := "%" + query + "%"
	var results []FTSResult

	searches := []struct {
		typ string
		sql string
	}{
		{"chemical", `
			SELECT chemical_id, chemical_name FROM chemicals
			WHERE chemical_name LIKE ? OR synonyms LIKE ? LIMIT ?`},
		{"disease", `
			SELECT disease_id, disease_name FROM diseases
			WHERE disease_name LIKE ? OR synonyms LIKE ? LIMIT ?`},
		{"gene", `
			SELECT gene_id, gene_symbol FROM genes
			WHERE gene_symbol LIKE ? OR gene_name LIKE ? LIMIT ?`},
	}

	for _, s := range searches {
		rows, err := f.db.Query(s.sql, term, term, limit)
		if err != nil {
			return nil, err
		}

		for rows.Next() {
			var r FTSResult
			r.Type = s.typ
			if err := rows.Scan(&r.ID, &r.Name); err != nil {
				rows.Close()
				return nil, err
			}
			results = append(results, r)
		}
		if err := rows.Err(); err != nil {
			rows.Close()
			return nil, err
		}
		rows.Close()
	}

	if len(results) > limit {
		results = results[:limit]
	}
	return results, nil
}

// sanitizeFTSQuery quotes each term so punctuation in chemical names
// (hyphens, parentheses) does not break the FTS5 query syntax.
func sanitizeFTSQuery(query string) string {
	terms := strings.Fields(query)
	for i, t := range terms {
		terms[i] = `"` + strings.ReplaceAll(t, `"`, ``) + `"`
	}
	return strings.Join(terms, " ")
}
