// Package database provides SQLite-backed storage for CTD records including
// chemicals, diseases, genes, pathways, and their curated associations.
package database

import (
	"database/sql"
	"fmt"
	"os"
	"time"

	_ "github.com/mattn/go-sqlite3"
)

// DB wraps the SQL database connection
type DB struct {
	*sql.DB
	path string
}

// ErrNotFound is returned when a record lookup matches nothing.
var ErrNotFound = fmt.Errorf("record not found")

// Initialize creates and configures the database connection
func Initialize(path string) (*DB, error) {
	db, err := sql.Open("sqlite3", path+"?_journal=WAL&_timeout=5000&_sync=NORMAL")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// Pragmas tuned for bulk import of the CTD reports
	pragmas := []string{
		"PRAGMA journal_mode = WAL",    // Write-ahead logging
		"PRAGMA synchronous = NORMAL",  // Balanced safety/speed
		"PRAGMA cache_size = 10000",    // ~40MB cache
		"PRAGMA temp_store = MEMORY",   // Use memory for temp tables
		"PRAGMA mmap_size = 268435456", // 256MB memory mapping
		"PRAGMA busy_timeout = 10000",  // 10 second timeout
		"PRAGMA foreign_keys = OFF",    // Disabled during import
		"PRAGMA wal_autocheckpoint = 10000",
	}

	for _, pragma := range pragmas {
		if _, err := db.Exec(pragma); err != nil {
			return nil, fmt.Errorf("failed to set pragma %s: %w", pragma, err)
		}
	}

	if err := createTables(db); err != nil {
		return nil, fmt.Errorf("failed to create tables: %w", err)
	}

	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(5 * time.Minute)

	return &DB{
		DB:   db,
		path: path,
	}, nil
}

// Path returns the database file path
func (db *DB) Path() string {
	return db.path
}

func createTables(db *sql.DB) error {
	schema := `
	-- Vocabulary tables
	CREATE TABLE IF NOT EXISTS chemicals (
		chemical_id TEXT PRIMARY KEY,
		chemical_name TEXT,
		cas_rn TEXT,
		definition TEXT,
		parent_ids TEXT,
		tree_numbers TEXT,
		parent_tree_numbers TEXT,
		synonyms TEXT,
		drugbank_ids TEXT
	);

	CREATE TABLE IF NOT EXISTS diseases (
		disease_id TEXT PRIMARY KEY,
		disease_name TEXT,
		alt_disease_ids TEXT,
		definition TEXT,
		parent_ids TEXT,
		tree_numbers TEXT,
		parent_tree_numbers TEXT,
		synonyms TEXT,
		slim_mappings TEXT
	);

	CREATE TABLE IF NOT EXISTS genes (
		gene_id INTEGER PRIMARY KEY,
		gene_symbol TEXT,
		gene_name TEXT,
		alt_gene_ids TEXT,
		synonyms TEXT,
		biogrid_ids TEXT,
		pharmgkb_ids TEXT,
		uniprot_ids TEXT
	);

	CREATE TABLE IF NOT EXISTS pathways (
		pathway_id TEXT PRIMARY KEY,
		pathway_name TEXT
	);

	CREATE TABLE IF NOT EXISTS actions (
		code TEXT PRIMARY KEY,
		type_name TEXT,
		description TEXT,
		parent_code TEXT
	);

	-- Association tables
	CREATE TABLE IF NOT EXISTS chem_gene_ixns (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		chemical_id TEXT REFERENCES chemicals(chemical_id),
		chemical_name TEXT,
		cas_rn TEXT,
		gene_id INTEGER REFERENCES genes(gene_id),
		gene_symbol TEXT,
		gene_forms TEXT,
		organism TEXT,
		organism_id INTEGER,
		interaction TEXT,
		interaction_actions TEXT,
		pubmed_ids TEXT
	);

	CREATE TABLE IF NOT EXISTS chemical_diseases (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		chemical_id TEXT REFERENCES chemicals(chemical_id),
		chemical_name TEXT,
		cas_rn TEXT,
		disease_id TEXT REFERENCES diseases(disease_id),
		disease_name TEXT,
		direct_evidence TEXT,
		inference_gene_symbol TEXT,
		inference_score REAL,
		omim_ids TEXT,
		pubmed_ids TEXT
	);

	CREATE TABLE IF NOT EXISTS gene_diseases (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		gene_id INTEGER REFERENCES genes(gene_id),
		gene_symbol TEXT,
		disease_id TEXT REFERENCES diseases(disease_id),
		disease_name TEXT,
		direct_evidence TEXT,
		inference_chemical_name TEXT,
		inference_score REAL,
		omim_ids TEXT,
		pubmed_ids TEXT
	);

	CREATE TABLE IF NOT EXISTS gene_pathways (
		gene_id INTEGER REFERENCES genes(gene_id),
		gene_symbol TEXT,
		pathway_id TEXT REFERENCES pathways(pathway_id),
		pathway_name TEXT,
		PRIMARY KEY (gene_id, pathway_id)
	);

	CREATE TABLE IF NOT EXISTS disease_pathways (
		disease_id TEXT REFERENCES diseases(disease_id),
		disease_name TEXT,
		pathway_id TEXT REFERENCES pathways(pathway_id),
		pathway_name TEXT,
		inference_gene_symbol TEXT,
		PRIMARY KEY (disease_id, pathway_id, inference_gene_symbol)
	);

	CREATE TABLE IF NOT EXISTS exposure_events (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		stressor_name TEXT,
		stressor_id TEXT,
		source_category TEXT,
		receptors TEXT,
		medium_of_exposure TEXT,
		disease_id TEXT,
		disease_name TEXT,
		outcome_relationship TEXT,
		reference TEXT
	);

	-- Indexes for common lookups
	CREATE INDEX IF NOT EXISTS idx_chemical_cas ON chemicals(cas_rn);
	CREATE INDEX IF NOT EXISTS idx_chemical_name ON chemicals(chemical_name);
	CREATE INDEX IF NOT EXISTS idx_disease_name ON diseases(disease_name);
	CREATE INDEX IF NOT EXISTS idx_gene_symbol ON genes(gene_symbol);
	CREATE INDEX IF NOT EXISTS idx_ixn_chemical ON chem_gene_ixns(chemical_id);
	CREATE INDEX IF NOT EXISTS idx_ixn_gene ON chem_gene_ixns(gene_id);
	CREATE INDEX IF NOT EXISTS idx_chem_disease_chemical ON chemical_diseases(chemical_id);
	CREATE INDEX IF NOT EXISTS idx_chem_disease_disease ON chemical_diseases(disease_id);
	CREATE INDEX IF NOT EXISTS idx_gene_disease_gene ON gene_diseases(gene_id);
	CREATE INDEX IF NOT EXISTS idx_gene_disease_disease ON gene_diseases(disease_id);
	CREATE INDEX IF NOT EXISTS idx_gene_pathway_pathway ON gene_pathways(pathway_id);
	CREATE INDEX IF NOT EXISTS idx_disease_pathway_pathway ON disease_pathways(pathway_id);
	CREATE INDEX IF NOT EXISTS idx_exposure_stressor ON exposure_events(stressor_id);

	-- Statistics table for pre-computed counts
	CREATE TABLE IF NOT EXISTS statistics (
		table_name TEXT PRIMARY KEY,
		row_count INTEGER DEFAULT 0,
		last_updated TIMESTAMP DEFAULT CURRENT_TIMESTAMP
	);
	`

	_, err := db.Exec(schema)
	return err
}

// dataTables are the tables holding imported CTD records, in drop order.
var dataTables = []string{
	"chem_gene_ixns",
	"chemical_diseases",
	"gene_diseases",
	"gene_pathways",
	"disease_pathways",
	"exposure_events",
	"chemicals",
	"diseases",
	"genes",
	"pathways",
	"actions",
}

// DropAll drops every data table and the FTS tables, then recreates the
// schema. A population run always starts from an empty set of tables.
func (db *DB) DropAll() error {
	for _, table := range dataTables {
		if _, err := db.Exec(fmt.Sprintf("DROP TABLE IF EXISTS %s", table)); err != nil {
			return fmt.Errorf("failed to drop table %s: %w", table, err)
		}
	}
	for _, table := range ftsTables {
		if _, err := db.Exec(fmt.Sprintf("DROP TABLE IF EXISTS %s", table)); err != nil {
			return fmt.Errorf("failed to drop table %s: %w", table, err)
		}
	}
	if _, err := db.Exec("DELETE FROM statistics"); err != nil {
		return fmt.Errorf("failed to reset statistics: %w", err)
	}
	return createTables(db.DB)
}

// InsertChemical inserts or replaces a chemical record.
func (db *DB) InsertChemical(c *Chemical) error {
	_, err := db.Exec(`
		INSERT OR REPLACE INTO chemicals (
			chemical_id, chemical_name, cas_rn, definition,
			parent_ids, tree_numbers, parent_tree_numbers, synonyms, drugbank_ids
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, c.ChemicalID, c.ChemicalName, c.CasRN, c.Definition,
		c.ParentIDs, c.TreeNumbers, c.ParentTreeNumbers, c.Synonyms, c.DrugBankIDs)
	return err
}

// GetChemical retrieves a chemical by its MeSH identifier.
func (db *DB) GetChemical(chemicalID string) (*Chemical, error) {
	c := &Chemical{}
	err := db.QueryRow(`
		SELECT chemical_id, chemical_name, cas_rn, COALESCE(definition, ''),
			   parent_ids, tree_numbers, parent_tree_numbers, synonyms, drugbank_ids
		FROM chemicals
		WHERE chemical_id = ?
	`, chemicalID).Scan(
		&c.ChemicalID, &c.ChemicalName, &c.CasRN, &c.Definition,
		&c.ParentIDs, &c.TreeNumbers, &c.ParentTreeNumbers, &c.Synonyms, &c.DrugBankIDs)

	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("%w: chemical %s", ErrNotFound, chemicalID)
	}
	return c, err
}

// GetChemicalByCAS retrieves a chemical by its CAS Registry Number.
func (db *DB) GetChemicalByCAS(casRN string) (*Chemical, error) {
	c := &Chemical{}
	err := db.QueryRow(`
		SELECT chemical_id, chemical_name, cas_rn, COALESCE(definition, ''),
			   parent_ids, tree_numbers, parent_tree_numbers, synonyms, drugbank_ids
		FROM chemicals
		WHERE cas_rn = ?
	`, casRN).Scan(
		&c.ChemicalID, &c.ChemicalName, &c.CasRN, &c.Definition,
		&c.ParentIDs, &c.TreeNumbers, &c.ParentTreeNumbers, &c.Synonyms, &c.DrugBankIDs)

	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("%w: chemical with CAS %s", ErrNotFound, casRN)
	}
	return c, err
}

// ListChemicals returns chemicals with pagination.
func (db *DB) ListChemicals(limit, offset int) ([]Chemical, error) {
	rows, err := db.Query(`
		SELECT chemical_id, chemical_name, cas_rn, COALESCE(definition, ''),
			   parent_ids, tree_numbers, parent_tree_numbers, synonyms, drugbank_ids
		FROM chemicals
		ORDER BY chemical_id
		LIMIT ? OFFSET ?
	`, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var chemicals []Chemical
	for rows.Next() {
		var c Chemical
		if err := rows.Scan(
			&c.ChemicalID, &c.ChemicalName, &c.CasRN, &c.Definition,
			&c.ParentIDs, &c.TreeNumbers, &c.ParentTreeNumbers, &c.Synonyms, &c.DrugBankIDs); err != nil {
			return nil, err
		}
		chemicals = append(chemicals, c)
	}
	return chemicals, rows.Err()
}

// InsertDisease inserts or replaces a disease record.
func (db *DB) InsertDisease(d *Disease) error {
	_, err := db.Exec(`
		INSERT OR REPLACE INTO diseases (
			disease_id, disease_name, alt_disease_ids, definition,
			parent_ids, tree_numbers, parent_tree_numbers, synonyms, slim_mappings
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, d.DiseaseID, d.DiseaseName, d.AltDiseaseIDs, d.Definition,
		d.ParentIDs, d.TreeNumbers, d.ParentTreeNumbers, d.Synonyms, d.SlimMappings)
	return err
}

// GetDisease retrieves a disease by its MeSH or OMIM identifier.
func (db *DB) GetDisease(diseaseID string) (*Disease, error) {
	d := &Disease{}
	err := db.QueryRow(`
		SELECT disease_id, disease_name, alt_disease_ids, COALESCE(definition, ''),
			   parent_ids, tree_numbers, parent_tree_numbers, synonyms, slim_mappings
		FROM diseases
		WHERE disease_id = ?
	`, diseaseID).Scan(
		&d.DiseaseID, &d.DiseaseName, &d.AltDiseaseIDs, &d.Definition,
		&d.ParentIDs, &d.TreeNumbers, &d.ParentTreeNumbers, &d.Synonyms, &d.SlimMappings)

	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("%w: disease %s", ErrNotFound, diseaseID)
	}
	return d, err
}

// ListDiseases returns diseases with pagination.
func (db *DB) ListDiseases(limit, offset int) ([]Disease, error) {
	rows, err := db.Query(`
		SELECT disease_id, disease_name, alt_disease_ids, COALESCE(definition, ''),
			   parent_ids, tree_numbers, parent_tree_numbers, synonyms, slim_mappings
		FROM diseases
		ORDER BY disease_id
		LIMIT ? OFFSET ?
	`, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var diseases []Disease
	for rows.Next() {
		var d Disease
		if err := rows.Scan(
			&d.DiseaseID, &d.DiseaseName, &d.AltDiseaseIDs, &d.Definition,
			&d.ParentIDs, &d.TreeNumbers, &d.ParentTreeNumbers, &d.Synonyms, &d.SlimMappings); err != nil {
			return nil, err
		}
		diseases = append(diseases, d)
	}
	return diseases, rows.Err()
}

// InsertGene inserts or replaces a gene record.
func (db *DB) InsertGene(g *Gene) error {
	_, err := db.Exec(`
		INSERT OR REPLACE INTO genes (
			gene_id, gene_symbol, gene_name, alt_gene_ids,
			synonyms, biogrid_ids, pharmgkb_ids, uniprot_ids
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`, g.GeneID, g.GeneSymbol, g.GeneName, g.AltGeneIDs,
		g.Synonyms, g.BioGRIDIDs, g.PharmGKBIDs, g.UniProtIDs)
	return err
}

// GetGene retrieves a gene by its Entrez Gene identifier.
func (db *DB) GetGene(geneID int64) (*Gene, error) {
	g := &Gene{}
	err := db.QueryRow(`
		SELECT gene_id, gene_symbol, gene_name, alt_gene_ids,
			   synonyms, biogrid_ids, pharmgkb_ids, uniprot_ids
		FROM genes
		WHERE gene_id = ?
	`, geneID).Scan(
		&g.GeneID, &g.GeneSymbol, &g.GeneName, &g.AltGeneIDs,
		&g.Synonyms, &g.BioGRIDIDs, &g.PharmGKBIDs, &g.UniProtIDs)

	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("%w: gene %d", ErrNotFound, geneID)
	}
	return g, err
}

// GetGeneBySymbol retrieves a gene by its symbol.
func (db *DB) GetGeneBySymbol(symbol string) (*Gene, error) {
	g := &Gene{}
	err := db.QueryRow(`
		SELECT gene_id, gene_symbol, gene_name, alt_gene_ids,
			   synonyms, biogrid_ids, pharmgkb_ids, uniprot_ids
		FROM genes
		WHERE gene_symbol = ?
	`, symbol).Scan(
		&g.GeneID, &g.GeneSymbol, &g.GeneName, &g.AltGeneIDs,
		&g.Synonyms, &g.BioGRIDIDs, &g.PharmGKBIDs, &g.UniProtIDs)

	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("%w: gene %s", ErrNotFound, symbol)
	}
	return g, err
}

// ListGenes returns genes with pagination.
func (db *DB) ListGenes(limit, offset int) ([]Gene, error) {
	rows, err := db.Query(`
		SELECT gene_id, gene_symbol, gene_name, alt_gene_ids,
			   synonyms, biogrid_ids, pharmgkb_ids, uniprot_ids
		FROM genes
		ORDER BY gene_id
		LIMIT ? OFFSET ?
	`, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var genes []Gene
	for rows.Next() {
		var g Gene
		if err := rows.Scan(
			&g.GeneID, &g.GeneSymbol, &g.GeneName, &g.AltGeneIDs,
			&g.Synonyms, &g.BioGRIDIDs, &g.PharmGKBIDs, &g.UniProtIDs); err != nil {
			return nil, err
		}
		genes = append(genes, g)
	}
	return genes, rows.Err()
}

// InsertPathway inserts or replaces a pathway record.
func (db *DB) InsertPathway(p *Pathway) error {
	_, err := db.Exec(`
		INSERT OR REPLACE INTO pathways (pathway_id, pathway_name) VALUES (?, ?)
	`, p.PathwayID, p.PathwayName)
	return err
}

// GetPathway retrieves a pathway by its KEGG or Reactome identifier.
func (db *DB) GetPathway(pathwayID string) (*Pathway, error) {
	p := &Pathway{}
	err := db.QueryRow(`
		SELECT pathway_id, pathway_name FROM pathways WHERE pathway_id = ?
	`, pathwayID).Scan(&p.PathwayID, &p.PathwayName)

	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("%w: pathway %s", ErrNotFound, pathwayID)
	}
	return p, err
}

// InsertAction inserts or replaces an interaction type record.
func (db *DB) InsertAction(a *Action) error {
	_, err := db.Exec(`
		INSERT OR REPLACE INTO actions (code, type_name, description, parent_code)
		VALUES (?, ?, ?, ?)
	`, a.Code, a.TypeName, a.Description, a.ParentCode)
	return err
}

// GetAction retrieves an interaction type by its code.
func (db *DB) GetAction(code string) (*Action, error) {
	a := &Action{}
	err := db.QueryRow(`
		SELECT code, type_name, COALESCE(description, ''), COALESCE(parent_code, '')
		FROM actions WHERE code = ?
	`, code).Scan(&a.Code, &a.TypeName, &a.Description, &a.ParentCode)

	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("%w: action %s", ErrNotFound, code)
	}
	return a, err
}

// InsertChemGeneIxn inserts a chemical-gene interaction.
func (db *DB) InsertChemGeneIxn(ixn *ChemGeneIxn) error {
	_, err := db.Exec(`
		INSERT INTO chem_gene_ixns (
			chemical_id, chemical_name, cas_rn, gene_id, gene_symbol,
			gene_forms, organism, organism_id, interaction,
			interaction_actions, pubmed_ids
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, ixn.ChemicalID, ixn.ChemicalName, ixn.CasRN, ixn.GeneID, ixn.GeneSymbol,
		ixn.GeneForms, ixn.Organism, ixn.OrganismID, ixn.Interaction,
		ixn.InteractionActions, ixn.PubMedIDs)
	return err
}

// GetChemGeneIxn retrieves an interaction by its row identifier.
func (db *DB) GetChemGeneIxn(id int64) (*ChemGeneIxn, error) {
	ixn := &ChemGeneIxn{}
	err := db.QueryRow(`
		SELECT id, chemical_id, chemical_name, cas_rn, gene_id, gene_symbol,
			   gene_forms, organism, organism_id, interaction,
			   interaction_actions, pubmed_ids
		FROM chem_gene_ixns
		WHERE id = ?
	`, id).Scan(
		&ixn.ID, &ixn.ChemicalID, &ixn.ChemicalName, &ixn.CasRN, &ixn.GeneID,
		&ixn.GeneSymbol, &ixn.GeneForms, &ixn.Organism, &ixn.OrganismID,
		&ixn.Interaction, &ixn.InteractionActions, &ixn.PubMedIDs)

	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("%w: interaction %d", ErrNotFound, id)
	}
	return ixn, err
}

// GetChemGeneIxnsByChemical returns interactions involving the chemical.
func (db *DB) GetChemGeneIxnsByChemical(chemicalID string, limit int) ([]ChemGeneIxn, error) {
	return db.queryIxns(`
		SELECT id, chemical_id, chemical_name, cas_rn, gene_id, gene_symbol,
			   gene_forms, organism, organism_id, interaction,
			   interaction_actions, pubmed_ids
		FROM chem_gene_ixns
		WHERE chemical_id = ?
		LIMIT ?
	`, chemicalID, limit)
}

// GetChemGeneIxnsByGene returns interactions involving the gene.
func (db *DB) GetChemGeneIxnsByGene(geneID int64, limit int) ([]ChemGeneIxn, error) {
	return db.queryIxns(`
		SELECT id, chemical_id, chemical_name, cas_rn, gene_id, gene_symbol,
			   gene_forms, organism, organism_id, interaction,
			   interaction_actions, pubmed_ids
		FROM chem_gene_ixns
		WHERE gene_id = ?
		LIMIT ?
	`, geneID, limit)
}

func (db *DB) queryIxns(query string, args ...interface{}) ([]ChemGeneIxn, error) {
	rows, err := db.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var ixns []ChemGeneIxn
	for rows.Next() {
		var ixn ChemGeneIxn
		if err := rows.Scan(
			&ixn.ID, &ixn.ChemicalID, &ixn.ChemicalName, &ixn.CasRN, &ixn.GeneID,
			&ixn.GeneSymbol, &ixn.GeneForms, &ixn.Organism, &ixn.OrganismID,
			&ixn.Interaction, &ixn.InteractionActions, &ixn.PubMedIDs); err != nil {
			return nil, err
		}
		ixns = append(ixns, ixn)
	}
	return ixns, rows.Err()
}

// InsertChemicalDisease inserts a chemical-disease association.
func (db *DB) InsertChemicalDisease(cd *ChemicalDisease) error {
	_, err := db.Exec(`
		INSERT INTO chemical_diseases (
			chemical_id, chemical_name, cas_rn, disease_id, disease_name,
			direct_evidence, inference_gene_symbol, inference_score,
			omim_ids, pubmed_ids
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, cd.ChemicalID, cd.ChemicalName, cd.CasRN, cd.DiseaseID, cd.DiseaseName,
		cd.DirectEvidence, cd.InferenceGeneSymbol, cd.InferenceScore,
		cd.OmimIDs, cd.PubMedIDs)
	return err
}

// GetChemicalDiseases returns disease associations for a chemical.
func (db *DB) GetChemicalDiseases(chemicalID string, limit int) ([]ChemicalDisease, error) {
	rows, err := db.Query(`
		SELECT id, chemical_id, chemical_name, cas_rn, disease_id, disease_name,
			   direct_evidence, inference_gene_symbol, inference_score,
			   omim_ids, pubmed_ids
		FROM chemical_diseases
		WHERE chemical_id = ?
		LIMIT ?
	`, chemicalID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []ChemicalDisease
	for rows.Next() {
		var cd ChemicalDisease
		if err := rows.Scan(
			&cd.ID, &cd.ChemicalID, &cd.ChemicalName, &cd.CasRN, &cd.DiseaseID,
			&cd.DiseaseName, &cd.DirectEvidence, &cd.InferenceGeneSymbol,
			&cd.InferenceScore, &cd.OmimIDs, &cd.PubMedIDs); err != nil {
			return nil, err
		}
		out = append(out, cd)
	}
	return out, rows.Err()
}

// InsertGeneDisease inserts a gene-disease association.
func (db *DB) InsertGeneDisease(gd *GeneDisease) error {
	_, err := db.Exec(`
		INSERT INTO gene_diseases (
			gene_id, gene_symbol, disease_id, disease_name,
			direct_evidence, inference_chemical_name, inference_score,
			omim_ids, pubmed_ids
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, gd.GeneID, gd.GeneSymbol, gd.DiseaseID, gd.DiseaseName,
		gd.DirectEvidence, gd.InferenceChemicalName, gd.InferenceScore,
		gd.OmimIDs, gd.PubMedIDs)
	return err
}

// InsertGenePathway inserts a gene-pathway association.
func (db *DB) InsertGenePathway(gp *GenePathway) error {
	_, err := db.Exec(`
		INSERT OR REPLACE INTO gene_pathways (
			gene_id, gene_symbol, pathway_id, pathway_name
		) VALUES (?, ?, ?, ?)
	`, gp.GeneID, gp.GeneSymbol, gp.PathwayID, gp.PathwayName)
	return err
}

// InsertDiseasePathway inserts a disease-pathway association.
func (db *DB) InsertDiseasePathway(dp *DiseasePathway) error {
	_, err := db.Exec(`
		INSERT OR REPLACE INTO disease_pathways (
			disease_id, disease_name, pathway_id, pathway_name, inference_gene_symbol
		) VALUES (?, ?, ?, ?, ?)
	`, dp.DiseaseID, dp.DiseaseName, dp.PathwayID, dp.PathwayName, dp.InferenceGeneSymbol)
	return err
}

// InsertExposureEvent inserts an exposure event record.
func (db *DB) InsertExposureEvent(e *ExposureEvent) error {
	_, err := db.Exec(`
		INSERT INTO exposure_events (
			stressor_name, stressor_id, source_category, receptors,
			medium_of_exposure, disease_id, disease_name,
			outcome_relationship, reference
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, e.StressorName, e.StressorID, e.SourceCategory, e.Receptors,
		e.MediumOfExposure, e.DiseaseID, e.DiseaseName,
		e.OutcomeRelationship, e.Reference)
	return err
}

// CountTable counts rows in a table. The table name is validated against the
// whitelist to prevent SQL injection.
func (db *DB) CountTable(table string) (int64, error) {
	safeTable, err := SafeTableName(table)
	if err != nil {
		return 0, fmt.Errorf("CountTable: %w", err)
	}

	var count int64
	query := fmt.Sprintf("SELECT COUNT(*) FROM %s", safeTable)
	err = db.QueryRow(query).Scan(&count)
	return count, err
}

// GetStatistics retrieves cached statistics from the statistics table
func (db *DB) GetStatistics() (map[string]int64, error) {
	stats := make(map[string]int64)

	rows, err := db.Query(`SELECT table_name, row_count FROM statistics`)
	if err != nil {
		// Missing table means no stats yet, not an error
		return stats, nil
	}
	defer rows.Close()

	for rows.Next() {
		var tableName string
		var rowCount int64
		if err := rows.Scan(&tableName, &rowCount); err != nil {
			continue
		}
		stats[tableName] = rowCount
	}

	return stats, rows.Err()
}

// UpdateStatistics recalculates and updates the statistics table.
// This should be called only after a population run completes.
func (db *DB) UpdateStatistics() error {
	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("failed to start transaction: %w", err)
	}
	defer tx.Rollback()

	for _, table := range dataTables {
		var count int64
		// #nosec G201 - table names come from a fixed list, not user input
		query := fmt.Sprintf("SELECT COUNT(*) FROM %s", table)
		if err := tx.QueryRow(query).Scan(&count); err != nil {
			continue
		}

		_, err = tx.Exec(`
			INSERT OR REPLACE INTO statistics (table_name, row_count, last_updated)
			VALUES (?, ?, CURRENT_TIMESTAMP)
		`, table, count)
		if err != nil {
			return fmt.Errorf("failed to update statistics for %s: %w", table, err)
		}
	}

	return tx.Commit()
}

// DatabaseInfo holds database file size and cached table row counts.
type DatabaseInfo struct {
	Path   string           `json:"path"`
	Size   int64            `json:"size_bytes"`
	Counts map[string]int64 `json:"counts"`
}

// GetInfo returns database file information and cached statistics
func (db *DB) GetInfo() (*DatabaseInfo, error) {
	info := &DatabaseInfo{Path: db.path}

	if db.path != "" {
		if stat, err := os.Stat(db.path); err == nil {
			info.Size = stat.Size()
		}
	}

	stats, err := db.GetStatistics()
	if err != nil {
		return nil, err
	}
	info.Counts = stats

	return info, nil
}
