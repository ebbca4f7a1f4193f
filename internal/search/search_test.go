package search

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/bio2bel/ctd/internal/database"
)

func setupIndex(t *testing.T) *Index {
	t.Helper()

	idx, err := Open(filepath.Join(t.TempDir(), "test.bleve"))
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	t.Cleanup(func() { idx.Close() })
	return idx
}

func seedIndex(t *testing.T, idx *Index) {
	t.Helper()

	docs := []interface{}{
		ChemicalDoc{
			Identifier: "MESH:D003042",
			Name:       "Codeine",
			CasRN:      "76-57-3",
			Synonyms:   "Methylmorphine Codicept",
		},
		ChemicalDoc{
			Identifier: "MESH:D002945",
			Name:       "Cisplatin",
			CasRN:      "15663-27-1",
		},
		DiseaseDoc{
			Identifier: "MESH:D003920",
			Name:       "Diabetes Mellitus",
			Definition: "A heterogeneous group of disorders characterized by hyperglycemia.",
		},
		GeneDoc{
			Identifier: "1017",
			Symbol:     "CDK2",
			Name:       "cyclin dependent kinase 2",
		},
	}
	if err := idx.BatchIndex(docs); err != nil {
		t.Fatalf("BatchIndex() error = %v", err)
	}
}

func TestSearchByName(t *testing.T) {
	idx := setupIndex(t)
	seedIndex(t, idx)

	result, err := idx.Search("codeine", 10)
	if err != nil {
		t.Fatalf("Search() error = %v", err)
	}
	if result.Total != 1 {
		t.Fatalf("Search(codeine) total = %d, want 1", result.Total)
	}
	if got := result.Hits[0].Fields["identifier"]; got != "MESH:D003042" {
		t.Errorf("hit identifier = %v, want MESH:D003042", got)
	}
}

func TestSearchByIdentifier(t *testing.T) {
	idx := setupIndex(t)
	seedIndex(t, idx)

	result, err := idx.Search(`identifier:"MESH:D002945"`, 10)
	if err != nil {
		t.Fatalf("Search() error = %v", err)
	}
	if result.Total != 1 {
		t.Fatalf("identifier search total = %d, want 1", result.Total)
	}
	if got := result.Hits[0].Fields["name"]; got != "Cisplatin" {
		t.Errorf("hit name = %v, want Cisplatin", got)
	}
}

func TestSearchBySynonym(t *testing.T) {
	idx := setupIndex(t)
	seedIndex(t, idx)

	result, err := idx.Search("methylmorphine", 10)
	if err != nil {
		t.Fatalf("Search() error = %v", err)
	}
	if result.Total != 1 {
		t.Errorf("synonym search total = %d, want 1", result.Total)
	}
}

func TestSearchType(t *testing.T) {
	idx := setupIndex(t)
	seedIndex(t, idx)

	// "kinase" only matches the gene; a type filter for diseases excludes it
	result, err := idx.SearchType("kinase", DocTypeDisease, 10)
	if err != nil {
		t.Fatalf("SearchType() error = %v", err)
	}
	if result.Total != 0 {
		t.Errorf("disease-filtered search total = %d, want 0", result.Total)
	}

	result, err = idx.SearchType("kinase", DocTypeGene, 10)
	if err != nil {
		t.Fatalf("SearchType() error = %v", err)
	}
	if result.Total != 1 {
		t.Errorf("gene-filtered search total = %d, want 1", result.Total)
	}
}

func TestFuzzySearch(t *testing.T) {
	idx := setupIndex(t)
	seedIndex(t, idx)

	result, err := idx.FuzzySearch("cisplatin", 1, 10)
	if err != nil {
		t.Fatalf("FuzzySearch() error = %v", err)
	}
	if result.Total == 0 {
		t.Error("fuzzy search found no hits for near-exact term")
	}
}

func TestBuild(t *testing.T) {
	db, err := database.Initialize(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("Initialize() error = %v", err)
	}
	t.Cleanup(func() { db.Close() })

	chemicals := []database.Chemical{
		{ChemicalID: "MESH:D003042", ChemicalName: "Codeine", CasRN: "76-57-3"},
		{ChemicalID: "MESH:D002945", ChemicalName: "Cisplatin", CasRN: "15663-27-1"},
	}
	if err := db.BatchInsertChemicals(chemicals); err != nil {
		t.Fatalf("inserting chemicals: %v", err)
	}
	diseases := []database.Disease{
		{DiseaseID: "MESH:D003920", DiseaseName: "Diabetes Mellitus"},
	}
	if err := db.BatchInsertDiseases(diseases); err != nil {
		t.Fatalf("inserting diseases: %v", err)
	}
	genes := []database.Gene{
		{GeneID: 1017, GeneSymbol: "CDK2", GeneName: "cyclin dependent kinase 2"},
	}
	if err := db.BatchInsertGenes(genes); err != nil {
		t.Fatalf("inserting genes: %v", err)
	}

	idx := setupIndex(t)
	stats, err := idx.Build(context.Background(), db, BuildOptions{BatchSize: 1})
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}
	if stats.Chemicals != 2 || stats.Diseases != 1 || stats.Genes != 1 {
		t.Errorf("Build stats = %+v", stats)
	}
	if stats.Total() != 4 {
		t.Errorf("Total() = %d, want 4", stats.Total())
	}

	count, err := idx.DocCount()
	if err != nil {
		t.Fatalf("DocCount() error = %v", err)
	}
	if count != 4 {
		t.Errorf("DocCount() = %d, want 4", count)
	}
}
