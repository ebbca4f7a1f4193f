// Package parser reads CTD report files: optionally gzip-compressed,
// tab-separated, with a "#"-prefixed comment preamble that carries the
// field header.
package parser

import (
	"bufio"
	"compress/gzip"
	"context"
	"fmt"
	"io"
	"os"
	"strings"
)

// RecordFunc is called for each data record with its fields in report order.
// Returning an error aborts the read.
type RecordFunc func(fields []string) error

// ReportReader streams records from a single CTD report file.
type ReportReader struct {
	scanner *bufio.Scanner
	closers []io.Closer

	header    []string
	numFields int // pad/trim target; 0 means take rows as-is
	records   int64
	skipped   int64
}

// maxLineSize bounds a single report line. Interaction rows with large
// PubMed lists can run long.
const maxLineSize = 4 * 1024 * 1024

// NewReader wraps r, transparently decompressing when compressed is set.
func NewReader(r io.Reader, compressed bool) (*ReportReader, error) {
	var closers []io.Closer

	if compressed {
		gz, err := gzip.NewReader(r)
		if err != nil {
			return nil, fmt.Errorf("failed to create gzip reader: %w", err)
		}
		r = gz
		closers = append(closers, gz)
	}

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 64*1024), maxLineSize)

	return &ReportReader{
		scanner: scanner,
		closers: closers,
	}, nil
}

// Open opens a report file on disk. Files ending in .gz are decompressed.
func Open(path string) (*ReportReader, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open report file: %w", err)
	}

	rr, err := NewReader(f, strings.HasSuffix(path, ".gz"))
	if err != nil {
		f.Close()
		return nil, err
	}
	rr.closers = append(rr.closers, f)
	return rr, nil
}

// SetFieldCount fixes the number of fields per record. Short rows are padded
// with empty strings and long rows trimmed, so downstream code can index
// columns without bounds checks.
func (rr *ReportReader) SetFieldCount(n int) {
	rr.numFields = n
}

// Header returns the field names parsed from the comment preamble. Only
// available once ReadAll has consumed the preamble.
func (rr *ReportReader) Header() []string {
	return rr.header
}

// Records returns the number of data records delivered so far.
func (rr *ReportReader) Records() int64 {
	return rr.records
}

// Skipped returns the number of malformed rows dropped so far.
func (rr *ReportReader) Skipped() int64 {
	return rr.skipped
}

// SkipRecord reclassifies the record currently being delivered as skipped.
// Record callbacks call it when they drop a malformed row instead of
// inserting it.
func (rr *ReportReader) SkipRecord() {
	rr.records--
	rr.skipped++
}

// ReadAll streams every data record to fn, honoring ctx cancellation.
func (rr *ReportReader) ReadAll(ctx context.Context, fn RecordFunc) error {
	sawFieldsMarker := false

	for rr.scanner.Scan() {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		line := rr.scanner.Text()
		if line == "" {
			continue
		}

		// Comment preamble. The line after "# Fields:" carries the
		// tab-separated field names.
		if strings.HasPrefix(line, "#") {
			trimmed := strings.TrimSpace(strings.TrimLeft(line, "# "))
			if strings.EqualFold(trimmed, "Fields:") {
				sawFieldsMarker = true
				continue
			}
			if sawFieldsMarker && rr.header == nil && trimmed != "" {
				rr.header = strings.Split(trimmed, "\t")
			}
			continue
		}

		fields := strings.Split(line, "\t")
		if rr.numFields > 0 {
			switch {
			case len(fields) > rr.numFields:
				fields = fields[:rr.numFields]
			case len(fields) < rr.numFields:
				// Rows with no usable key column are dropped
				if len(fields) == 1 && strings.TrimSpace(fields[0]) == "" {
					rr.skipped++
					continue
				}
				padded := make([]string, rr.numFields)
				copy(padded, fields)
				fields = padded
			}
		}

		rr.records++
		if err := fn(fields); err != nil {
			return err
		}
	}

	if err := rr.scanner.Err(); err != nil {
		return fmt.Errorf("failed to read report: %w", err)
	}
	return nil
}

// Close releases the underlying readers.
func (rr *ReportReader) Close() error {
	var firstErr error
	for _, c := range rr.closers {
		if err := c.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}
