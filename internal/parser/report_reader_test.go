package parser

import (
	"bytes"
	"compress/gzip"
	"context"
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
)

const sampleReport = `# Comparative Toxicogenomics Database (CTD)
# Report created: Wed Aug 26 2026
#
# Fields:
# ChemicalName	ChemicalID	CasRN
#
Lapatinib	MESH:C490728	231277-92-2
Aspirin	MESH:D001241	50-78-2
`

func TestReadAllParsesRecordsAndHeader(t *testing.T) {
	rr, err := NewReader(strings.NewReader(sampleReport), false)
	if err != nil {
		t.Fatalf("NewReader failed: %v", err)
	}

	var records [][]string
	err = rr.ReadAll(context.Background(), func(fields []string) error {
		records = append(records, fields)
		return nil
	})
	if err != nil {
		t.Fatalf("ReadAll failed: %v", err)
	}

	wantHeader := []string{"ChemicalName", "ChemicalID", "CasRN"}
	if !reflect.DeepEqual(rr.Header(), wantHeader) {
		t.Errorf("header = %v, want %v", rr.Header(), wantHeader)
	}

	if len(records) != 2 {
		t.Fatalf("got %d records, want 2", len(records))
	}
	if records[0][1] != "MESH:C490728" {
		t.Errorf("first record ID = %q, want MESH:C490728", records[0][1])
	}
	if rr.Records() != 2 {
		t.Errorf("Records() = %d, want 2", rr.Records())
	}
}

func TestReadAllPadsShortRows(t *testing.T) {
	input := "Lapatinib\tMESH:C490728\nAspirin\tMESH:D001241\t50-78-2\tEXTRA\n"

	rr, err := NewReader(strings.NewReader(input), false)
	if err != nil {
		t.Fatalf("NewReader failed: %v", err)
	}
	rr.SetFieldCount(3)

	var records [][]string
	err = rr.ReadAll(context.Background(), func(fields []string) error {
		records = append(records, fields)
		return nil
	})
	if err != nil {
		t.Fatalf("ReadAll failed: %v", err)
	}

	if len(records) != 2 {
		t.Fatalf("got %d records, want 2", len(records))
	}
	if len(records[0]) != 3 || records[0][2] != "" {
		t.Errorf("short row not padded: %v", records[0])
	}
	if len(records[1]) != 3 {
		t.Errorf("long row not trimmed: %v", records[1])
	}
}

func TestReadAllGzip(t *testing.T) {
	var buf bytes.Buffer
	gz := gzip.NewWriter(&buf)
	if _, err := gz.Write([]byte(sampleReport)); err != nil {
		t.Fatalf("failed to write gzip data: %v", err)
	}
	gz.Close()

	rr, err := NewReader(&buf, true)
	if err != nil {
		t.Fatalf("NewReader failed: %v", err)
	}

	var count int
	err = rr.ReadAll(context.Background(), func(fields []string) error {
		count++
		return nil
	})
	if err != nil {
		t.Fatalf("ReadAll failed: %v", err)
	}
	if count != 2 {
		t.Errorf("got %d records, want 2", count)
	}
}

func TestOpenDetectsGzipByExtension(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "CTD_chemicals.tsv.gz")

	var buf bytes.Buffer
	gz := gzip.NewWriter(&buf)
	gz.Write([]byte(sampleReport))
	gz.Close()

	if err := os.WriteFile(path, buf.Bytes(), 0644); err != nil {
		t.Fatalf("failed to write test file: %v", err)
	}

	rr, err := Open(path)
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	defer rr.Close()

	var count int
	if err := rr.ReadAll(context.Background(), func([]string) error {
		count++
		return nil
	}); err != nil {
		t.Fatalf("ReadAll failed: %v", err)
	}
	if count != 2 {
		t.Errorf("got %d records, want 2", count)
	}
}

func TestReadAllCallbackError(t *testing.T) {
	rr, err := NewReader(strings.NewReader(sampleReport), false)
	if err != nil {
		t.Fatalf("NewReader failed: %v", err)
	}

	wantErr := errors.New("stop")
	err = rr.ReadAll(context.Background(), func([]string) error {
		return wantErr
	})
	if !errors.Is(err, wantErr) {
		t.Errorf("got error %v, want %v", err, wantErr)
	}
}

func TestSkipRecordReclassifiesRow(t *testing.T) {
	rr, err := NewReader(strings.NewReader(sampleReport), false)
	if err != nil {
		t.Fatalf("NewReader failed: %v", err)
	}

	// Drop the second record the way an importer drops a malformed row
	err = rr.ReadAll(context.Background(), func(fields []string) error {
		if fields[0] == "Aspirin" {
			rr.SkipRecord()
		}
		return nil
	})
	if err != nil {
		t.Fatalf("ReadAll failed: %v", err)
	}

	if rr.Records() != 1 {
		t.Errorf("Records() = %d, want 1", rr.Records())
	}
	if rr.Skipped() != 1 {
		t.Errorf("Skipped() = %d, want 1", rr.Skipped())
	}
}

func TestReadAllContextCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	rr, err := NewReader(strings.NewReader(sampleReport), false)
	if err != nil {
		t.Fatalf("NewReader failed: %v", err)
	}

	err = rr.ReadAll(ctx, func([]string) error { return nil })
	if !errors.Is(err, context.Canceled) {
		t.Errorf("got error %v, want context.Canceled", err)
	}
}
