package manager

import (
	"bytes"
	"compress/gzip"
	"context"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"github.com/bio2bel/ctd/internal/config"
	"github.com/bio2bel/ctd/internal/ctd"
	"github.com/bio2bel/ctd/internal/progress"
)

// reportBody renders a CTD report file: comment preamble, field header, rows
func reportBody(fields []string, rows [][]string) string {
	var b strings.Builder
	b.WriteString("# Test report\n")
	b.WriteString("#\n")
	b.WriteString("# Fields:\n")
	b.WriteString("# " + strings.Join(fields, "\t") + "\n")
	for _, row := range rows {
		b.WriteString(strings.Join(row, "\t") + "\n")
	}
	return b.String()
}

// testReportRows holds the fixture rows served for each report
var testReportRows = map[string][][]string{
	ctd.ReportChemicals: {
		{"Codeine", "MESH:D003042", "76-57-3", "An opioid analgesic.", "", "", "", "Methylmorphine", "DB11130"},
		{"Cisplatin", "MESH:D002945", "15663-27-1", "", "", "", "", "", ""},
	},
	ctd.ReportGenes: {
		{"CDK2", "cyclin dependent kinase 2", "1017", "", "CDKN2|p33(CDK2)", "", "", ""},
		{"BADID", "broken row", "not-a-number", "", "", "", "", ""},
	},
	ctd.ReportChemGeneIxns: {
		{"Cisplatin", "D002945", "15663-27-1", "CDK2", "1017", "protein", "Homo sapiens", "9606",
			"Cisplatin results in decreased expression of CDK2 protein", "decreases^expression", "12345|67890"},
	},
}

// newReportServer serves gzipped CTD report fixtures by file name
func newReportServer(t *testing.T) *httptest.Server {
	t.Helper()

	bodies := make(map[string][]byte)
	for name, rows := range testReportRows {
		report, err := ctd.Lookup(name)
		if err != nil {
			t.Fatalf("Lookup(%q): %v", name, err)
		}

		content := reportBody(report.Fields, rows)
		if report.Compressed {
			var buf bytes.Buffer
			gz := gzip.NewWriter(&buf)
			gz.Write([]byte(content))
			gz.Close()
			bodies[report.FileName] = buf.Bytes()
		} else {
			bodies[report.FileName] = []byte(content)
		}
	}

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, ok := bodies[strings.TrimPrefix(r.URL.Path, "/")]
		if !ok {
			http.NotFound(w, r)
			return
		}
		w.Write(body)
	}))
	t.Cleanup(server.Close)
	return server
}

func setupManager(t *testing.T) *Manager {
	t.Helper()

	dir := t.TempDir()
	cfg := config.DefaultConfig()
	cfg.Database.Path = filepath.Join(dir, "ctd.db")
	cfg.Database.BatchSize = 1 // exercise batch flushing
	cfg.Download.Directory = filepath.Join(dir, "reports")
	cfg.Download.ParallelJobs = 2

	m, err := New(cfg)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	t.Cleanup(func() { m.Close() })
	return m
}

func TestPopulate(t *testing.T) {
	server := newReportServer(t)
	m := setupManager(t)

	populated, err := m.IsPopulated()
	if err != nil {
		t.Fatalf("IsPopulated() error = %v", err)
	}
	if populated {
		t.Fatal("fresh database reports populated")
	}

	result, err := m.Populate(context.Background(), PopulateOptions{
		BaseURL: server.URL + "/",
		Only:    []string{ctd.ReportChemicals, ctd.ReportGenes, ctd.ReportChemGeneIxns},
	})
	if err != nil {
		t.Fatalf("Populate() error = %v", err)
	}
	if len(result.Reports) != 3 {
		t.Fatalf("got %d report results, want 3", len(result.Reports))
	}

	// The gene row with a non-numeric identifier counts as skipped, not
	// imported
	for _, r := range result.Reports {
		if r.Report != ctd.ReportGenes {
			continue
		}
		if r.Records != 1 || r.Skipped != 1 {
			t.Errorf("genes report result = %d records, %d skipped, want 1 and 1", r.Records, r.Skipped)
		}
	}

	populated, err = m.IsPopulated()
	if err != nil {
		t.Fatalf("IsPopulated() error = %v", err)
	}
	if !populated {
		t.Error("database not populated after Populate()")
	}

	stats, err := m.Summarize()
	if err != nil {
		t.Fatalf("Summarize() error = %v", err)
	}
	if stats["chemicals"] != 2 {
		t.Errorf("chemicals count = %d, want 2", stats["chemicals"])
	}
	// The gene row with a non-numeric identifier is dropped
	if stats["genes"] != 1 {
		t.Errorf("genes count = %d, want 1", stats["genes"])
	}
	if stats["chem_gene_ixns"] != 1 {
		t.Errorf("chem_gene_ixns count = %d, want 1", stats["chem_gene_ixns"])
	}

	// Interaction chemical identifiers get their MESH prefix restored
	ixns, err := m.DB().GetChemGeneIxnsByChemical("MESH:D002945", 10)
	if err != nil {
		t.Fatalf("GetChemGeneIxnsByChemical() error = %v", err)
	}
	if len(ixns) != 1 {
		t.Fatalf("got %d interactions for cisplatin, want 1", len(ixns))
	}
	if ixns[0].GeneSymbol != "CDK2" {
		t.Errorf("interaction gene = %q, want CDK2", ixns[0].GeneSymbol)
	}

	// Query helpers resolve imported records
	chemical, err := m.GetChemicalByMeSH("MESH:D003042")
	if err != nil {
		t.Fatalf("GetChemicalByMeSH() error = %v", err)
	}
	if chemical.ChemicalName != "Codeine" {
		t.Errorf("chemical name = %q, want Codeine", chemical.ChemicalName)
	}
	if chemical.DrugBankIDs != "DB11130" {
		t.Errorf("chemical DrugBank IDs = %q, want DB11130", chemical.DrugBankIDs)
	}
	if byCAS, err := m.GetChemicalByCAS("76-57-3"); err != nil || byCAS.ChemicalID != "MESH:D003042" {
		t.Errorf("GetChemicalByCAS() = %v, %v", byCAS, err)
	}
	gene, err := m.GetGeneBySymbol("CDK2")
	if err != nil {
		t.Fatalf("GetGeneBySymbol() error = %v", err)
	}
	if gene.GeneID != 1017 {
		t.Errorf("gene ID = %d, want 1017", gene.GeneID)
	}
	if ixn, err := m.GetInteractionByID(ixns[0].ID); err != nil || ixn.ChemicalID != "MESH:D002945" {
		t.Errorf("GetInteractionByID() = %v, %v", ixn, err)
	}
	if count, err := m.CountChemicals(); err != nil || count != 2 {
		t.Errorf("CountChemicals() = %d, %v, want 2", count, err)
	}

	// Import progress was recorded for every report
	imp, err := m.Tracker().Get(ctd.ReportChemicals)
	if err != nil {
		t.Fatalf("Tracker().Get() error = %v", err)
	}
	if imp == nil || imp.Records != 2 {
		t.Errorf("chemicals import record = %+v, want 2 records", imp)
	}
	if imp, err := m.Tracker().Get(ctd.ReportGenes); err != nil || imp == nil || imp.Skipped != 1 {
		t.Errorf("genes import record = %+v, %v, want 1 skipped", imp, err)
	}
}

func TestPopulateTracksProgress(t *testing.T) {
	server := newReportServer(t)
	m := setupManager(t)

	// Batch size 1 flushes after every record, so the tracker row should
	// advance while the import is still running.
	var seen []int64
	_, err := m.Populate(context.Background(), PopulateOptions{
		BaseURL: server.URL + "/",
		Only:    []string{ctd.ReportChemicals},
		Progress: func(report string, records int64) {
			imp, err := m.Tracker().Get(report)
			if err != nil {
				t.Errorf("Tracker().Get(%q) during populate: %v", report, err)
				return
			}
			if imp == nil || imp.State != progress.StateImporting {
				t.Errorf("import record during populate = %+v, want importing state", imp)
				return
			}
			seen = append(seen, imp.Records)
		},
	})
	if err != nil {
		t.Fatalf("Populate() error = %v", err)
	}

	if len(seen) == 0 {
		t.Fatal("progress callback never fired")
	}
	if last := seen[len(seen)-1]; last != 2 {
		t.Errorf("last tracked record count = %d, want 2", last)
	}
}

func TestPopulateIsRepeatable(t *testing.T) {
	server := newReportServer(t)
	m := setupManager(t)

	opts := PopulateOptions{
		BaseURL: server.URL + "/",
		Only:    []string{ctd.ReportChemicals},
	}
	for i := 0; i < 2; i++ {
		if _, err := m.Populate(context.Background(), opts); err != nil {
			t.Fatalf("Populate() run %d error = %v", i+1, err)
		}
	}

	stats, err := m.Summarize()
	if err != nil {
		t.Fatalf("Summarize() error = %v", err)
	}
	if stats["chemicals"] != 2 {
		t.Errorf("chemicals count after re-populate = %d, want 2", stats["chemicals"])
	}
}

func TestPopulateUnknownReport(t *testing.T) {
	m := setupManager(t)

	_, err := m.Populate(context.Background(), PopulateOptions{Only: []string{"nonsense"}})
	if err == nil {
		t.Fatal("expected error for unknown report name")
	}
}

func TestPopulateDownloadFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	}))
	defer server.Close()

	m := setupManager(t)
	m.cfg.Download.RetryAttempts = 1

	_, err := m.Populate(context.Background(), PopulateOptions{
		BaseURL: server.URL + "/",
		Only:    []string{ctd.ReportChemicals},
	})
	if err == nil {
		t.Fatal("expected error when downloads fail")
	}

	populated, err := m.IsPopulated()
	if err != nil {
		t.Fatalf("IsPopulated() error = %v", err)
	}
	if populated {
		t.Error("failed populate should leave the database unpopulated")
	}
}

func TestDropAll(t *testing.T) {
	server := newReportServer(t)
	m := setupManager(t)

	if _, err := m.Populate(context.Background(), PopulateOptions{
		BaseURL: server.URL + "/",
		Only:    []string{ctd.ReportChemicals},
	}); err != nil {
		t.Fatalf("Populate() error = %v", err)
	}

	if err := m.DropAll(); err != nil {
		t.Fatalf("DropAll() error = %v", err)
	}

	populated, err := m.IsPopulated()
	if err != nil {
		t.Fatalf("IsPopulated() error = %v", err)
	}
	if populated {
		t.Error("database reports populated after DropAll()")
	}

	imports, err := m.Tracker().List()
	if err != nil {
		t.Fatalf("Tracker().List() error = %v", err)
	}
	if len(imports) != 0 {
		t.Errorf("import records remain after DropAll(): %d", len(imports))
	}
}
