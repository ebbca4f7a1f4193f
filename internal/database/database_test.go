package database

import (
	"errors"
	"path/filepath"
	"testing"
)

// Helper to create a temporary test database
func setupTestDB(t *testing.T) *DB {
	t.Helper()

	dbPath := filepath.Join(t.TempDir(), "test.db")
	db, err := Initialize(dbPath)
	if err != nil {
		t.Fatalf("failed to initialize database: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	return db
}

func TestInitialize(t *testing.T) {
	db := setupTestDB(t)

	if err := db.Ping(); err != nil {
		t.Errorf("Ping failed: %v", err)
	}
}

func TestInitializeInvalidPath(t *testing.T) {
	db, err := Initialize("/nonexistent/path/test.db")
	if err == nil {
		db.Close()
		t.Error("expected error for invalid path, got nil")
	}
}

func TestChemicalOperations(t *testing.T) {
	db := setupTestDB(t)

	chemical := &Chemical{
		ChemicalID:   "MESH:C490728",
		ChemicalName: "lapatinib",
		CasRN:        "231277-92-2",
		Definition:   "A quinazoline derivative that inhibits EGFR and HER2 tyrosine kinases.",
		Synonyms:     "GW-572016|Tykerb",
	}

	if err := db.InsertChemical(chemical); err != nil {
		t.Fatalf("InsertChemical failed: %v", err)
	}

	retrieved, err := db.GetChemical("MESH:C490728")
	if err != nil {
		t.Fatalf("GetChemical failed: %v", err)
	}
	if retrieved.ChemicalName != "lapatinib" {
		t.Errorf("got name %q, want lapatinib", retrieved.ChemicalName)
	}
	if retrieved.CasRN != "231277-92-2" {
		t.Errorf("got CAS %q, want 231277-92-2", retrieved.CasRN)
	}

	byCAS, err := db.GetChemicalByCAS("231277-92-2")
	if err != nil {
		t.Fatalf("GetChemicalByCAS failed: %v", err)
	}
	if byCAS.ChemicalID != "MESH:C490728" {
		t.Errorf("got ID %q, want MESH:C490728", byCAS.ChemicalID)
	}

	_, err = db.GetChemical("MESH:NOPE")
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("got error %v, want ErrNotFound", err)
	}
}

func TestDiseaseOperations(t *testing.T) {
	db := setupTestDB(t)

	disease := &Disease{
		DiseaseID:   "MESH:D003920",
		DiseaseName: "Diabetes Mellitus",
		Definition:  "A heterogeneous group of disorders characterized by hyperglycemia.",
	}

	if err := db.InsertDisease(disease); err != nil {
		t.Fatalf("InsertDisease failed: %v", err)
	}

	retrieved, err := db.GetDisease("MESH:D003920")
	if err != nil {
		t.Fatalf("GetDisease failed: %v", err)
	}
	if retrieved.DiseaseName != "Diabetes Mellitus" {
		t.Errorf("got name %q, want Diabetes Mellitus", retrieved.DiseaseName)
	}

	_, err = db.GetDisease("OMIM:000000")
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("got error %v, want ErrNotFound", err)
	}
}

func TestGeneOperations(t *testing.T) {
	db := setupTestDB(t)

	gene := &Gene{
		GeneID:     2064,
		GeneSymbol: "ERBB2",
		GeneName:   "erb-b2 receptor tyrosine kinase 2",
		UniProtIDs: "P04626",
	}

	if err := db.InsertGene(gene); err != nil {
		t.Fatalf("InsertGene failed: %v", err)
	}

	retrieved, err := db.GetGene(2064)
	if err != nil {
		t.Fatalf("GetGene failed: %v", err)
	}
	if retrieved.GeneSymbol != "ERBB2" {
		t.Errorf("got symbol %q, want ERBB2", retrieved.GeneSymbol)
	}

	bySymbol, err := db.GetGeneBySymbol("ERBB2")
	if err != nil {
		t.Fatalf("GetGeneBySymbol failed: %v", err)
	}
	if bySymbol.GeneID != 2064 {
		t.Errorf("got ID %d, want 2064", bySymbol.GeneID)
	}
}

func TestPathwayAndActionOperations(t *testing.T) {
	db := setupTestDB(t)

	pathway := &Pathway{PathwayID: "KEGG:hsa00010", PathwayName: "Glycolysis / Gluconeogenesis"}
	if err := db.InsertPathway(pathway); err != nil {
		t.Fatalf("InsertPathway failed: %v", err)
	}
	p, err := db.GetPathway("KEGG:hsa00010")
	if err != nil {
		t.Fatalf("GetPathway failed: %v", err)
	}
	if p.PathwayName != "Glycolysis / Gluconeogenesis" {
		t.Errorf("got name %q", p.PathwayName)
	}

	action := &Action{Code: "exp", TypeName: "expression", Description: "expression of a gene product"}
	if err := db.InsertAction(action); err != nil {
		t.Fatalf("InsertAction failed: %v", err)
	}
	a, err := db.GetAction("exp")
	if err != nil {
		t.Fatalf("GetAction failed: %v", err)
	}
	if a.TypeName != "expression" {
		t.Errorf("got type name %q, want expression", a.TypeName)
	}
}

func TestChemGeneIxnOperations(t *testing.T) {
	db := setupTestDB(t)

	ixn := &ChemGeneIxn{
		ChemicalID:         "MESH:C490728",
		ChemicalName:       "lapatinib",
		GeneID:             2064,
		GeneSymbol:         "ERBB2",
		Organism:           "Homo sapiens",
		OrganismID:         9606,
		Interaction:        "lapatinib results in decreased activity of ERBB2 protein",
		InteractionActions: "decreases^activity",
		PubMedIDs:          "17158946",
	}

	if err := db.InsertChemGeneIxn(ixn); err != nil {
		t.Fatalf("InsertChemGeneIxn failed: %v", err)
	}

	byChemical, err := db.GetChemGeneIxnsByChemical("MESH:C490728", 10)
	if err != nil {
		t.Fatalf("GetChemGeneIxnsByChemical failed: %v", err)
	}
	if len(byChemical) != 1 {
		t.Fatalf("got %d interactions, want 1", len(byChemical))
	}

	byGene, err := db.GetChemGeneIxnsByGene(2064, 10)
	if err != nil {
		t.Fatalf("GetChemGeneIxnsByGene failed: %v", err)
	}
	if len(byGene) != 1 {
		t.Fatalf("got %d interactions, want 1", len(byGene))
	}

	byID, err := db.GetChemGeneIxn(byGene[0].ID)
	if err != nil {
		t.Fatalf("GetChemGeneIxn failed: %v", err)
	}
	if byID.InteractionActions != "decreases^activity" {
		t.Errorf("got actions %q", byID.InteractionActions)
	}

	_, err = db.GetChemGeneIxn(99999)
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("got error %v, want ErrNotFound", err)
	}
}

func TestChemicalDiseaseOperations(t *testing.T) {
	db := setupTestDB(t)

	cd := &ChemicalDisease{
		ChemicalID:     "MESH:D001241",
		ChemicalName:   "Aspirin",
		DiseaseID:      "MESH:D003920",
		DiseaseName:    "Diabetes Mellitus",
		DirectEvidence: "therapeutic",
		PubMedIDs:      "12345",
	}

	if err := db.InsertChemicalDisease(cd); err != nil {
		t.Fatalf("InsertChemicalDisease failed: %v", err)
	}

	results, err := db.GetChemicalDiseases("MESH:D001241", 10)
	if err != nil {
		t.Fatalf("GetChemicalDiseases failed: %v", err)
	}
	if len(results) != 1 {
		t.Fatalf("got %d associations, want 1", len(results))
	}
	if results[0].DirectEvidence != "therapeutic" {
		t.Errorf("got direct evidence %q, want therapeutic", results[0].DirectEvidence)
	}
}

func TestBatchInserts(t *testing.T) {
	db := setupTestDB(t)

	chemicals := []Chemical{
		{ChemicalID: "MESH:C1", ChemicalName: "one"},
		{ChemicalID: "MESH:C2", ChemicalName: "two"},
		{ChemicalID: "MESH:C3", ChemicalName: "three"},
	}
	if err := db.BatchInsertChemicals(chemicals); err != nil {
		t.Fatalf("BatchInsertChemicals failed: %v", err)
	}

	count, err := db.CountTable("chemicals")
	if err != nil {
		t.Fatalf("CountTable failed: %v", err)
	}
	if count != 3 {
		t.Errorf("got %d chemicals, want 3", count)
	}

	genes := []Gene{
		{GeneID: 1, GeneSymbol: "A1BG"},
		{GeneID: 2, GeneSymbol: "A2M"},
	}
	if err := db.BatchInsertGenes(genes); err != nil {
		t.Fatalf("BatchInsertGenes failed: %v", err)
	}

	ixns := []ChemGeneIxn{
		{ChemicalID: "MESH:C1", GeneID: 1, GeneSymbol: "A1BG"},
		{ChemicalID: "MESH:C2", GeneID: 2, GeneSymbol: "A2M"},
	}
	if err := db.BatchInsertChemGeneIxns(ixns); err != nil {
		t.Fatalf("BatchInsertChemGeneIxns failed: %v", err)
	}

	count, err = db.CountTable("chem_gene_ixns")
	if err != nil {
		t.Fatalf("CountTable failed: %v", err)
	}
	if count != 2 {
		t.Errorf("got %d interactions, want 2", count)
	}
}

func TestListOperations(t *testing.T) {
	db := setupTestDB(t)

	for _, c := range []Chemical{
		{ChemicalID: "MESH:C1", ChemicalName: "one"},
		{ChemicalID: "MESH:C2", ChemicalName: "two"},
		{ChemicalID: "MESH:C3", ChemicalName: "three"},
	} {
		if err := db.InsertChemical(&c); err != nil {
			t.Fatalf("InsertChemical failed: %v", err)
		}
	}

	page, err := db.ListChemicals(2, 0)
	if err != nil {
		t.Fatalf("ListChemicals failed: %v", err)
	}
	if len(page) != 2 {
		t.Errorf("got %d chemicals, want 2", len(page))
	}

	rest, err := db.ListChemicals(10, 2)
	if err != nil {
		t.Fatalf("ListChemicals with offset failed: %v", err)
	}
	if len(rest) != 1 {
		t.Errorf("got %d chemicals, want 1", len(rest))
	}
}

func TestDropAll(t *testing.T) {
	db := setupTestDB(t)

	if err := db.InsertChemical(&Chemical{ChemicalID: "MESH:C1", ChemicalName: "one"}); err != nil {
		t.Fatalf("InsertChemical failed: %v", err)
	}

	if err := db.DropAll(); err != nil {
		t.Fatalf("DropAll failed: %v", err)
	}

	// Tables are recreated empty
	count, err := db.CountTable("chemicals")
	if err != nil {
		t.Fatalf("CountTable after DropAll failed: %v", err)
	}
	if count != 0 {
		t.Errorf("got %d chemicals after DropAll, want 0", count)
	}
}

func TestStatistics(t *testing.T) {
	db := setupTestDB(t)

	if err := db.InsertChemical(&Chemical{ChemicalID: "MESH:C1"}); err != nil {
		t.Fatalf("InsertChemical failed: %v", err)
	}
	if err := db.InsertGene(&Gene{GeneID: 1, GeneSymbol: "A1BG"}); err != nil {
		t.Fatalf("InsertGene failed: %v", err)
	}

	if err := db.UpdateStatistics(); err != nil {
		t.Fatalf("UpdateStatistics failed: %v", err)
	}

	stats, err := db.GetStatistics()
	if err != nil {
		t.Fatalf("GetStatistics failed: %v", err)
	}
	if stats["chemicals"] != 1 {
		t.Errorf("chemicals stat = %d, want 1", stats["chemicals"])
	}
	if stats["genes"] != 1 {
		t.Errorf("genes stat = %d, want 1", stats["genes"])
	}

	info, err := db.GetInfo()
	if err != nil {
		t.Fatalf("GetInfo failed: %v", err)
	}
	if info.Size == 0 {
		t.Error("database file size should be non-zero")
	}
}

func TestCountTableRejectsUnknownTable(t *testing.T) {
	db := setupTestDB(t)

	if _, err := db.CountTable("sqlite_master; DROP TABLE chemicals"); err == nil {
		t.Error("expected error for malicious table name")
	}
}
