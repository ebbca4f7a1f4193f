package ctd

import (
	"reflect"
	"testing"
)

func TestLookup(t *testing.T) {
	r, err := Lookup("chemicals")
	if err != nil {
		t.Fatalf("Lookup failed: %v", err)
	}
	if r.FileName != "CTD_chemicals.tsv.gz" {
		t.Errorf("got file name %q, want CTD_chemicals.tsv.gz", r.FileName)
	}
	if !r.Compressed {
		t.Error("chemicals report should be compressed")
	}

	// Case and whitespace are normalized
	if _, err := Lookup("  Chemicals "); err != nil {
		t.Errorf("normalized lookup failed: %v", err)
	}

	if _, err := Lookup("nope"); err == nil {
		t.Error("expected error for unknown report, got nil")
	}
}

func TestURL(t *testing.T) {
	r, _ := Lookup("genes")

	tests := []struct {
		name string
		base string
		want string
	}{
		{"default base", "", "http://ctdbase.org/reports/CTD_genes.tsv.gz"},
		{"custom base", "https://mirror.example.org/ctd", "https://mirror.example.org/ctd/CTD_genes.tsv.gz"},
		{"trailing slash", "https://mirror.example.org/ctd/", "https://mirror.example.org/ctd/CTD_genes.tsv.gz"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := r.URL(tt.base); got != tt.want {
				t.Errorf("URL(%q) = %q, want %q", tt.base, got, tt.want)
			}
		})
	}
}

func TestSelect(t *testing.T) {
	// Default selection excludes exposure events
	selected, err := Select(nil, nil)
	if err != nil {
		t.Fatalf("Select failed: %v", err)
	}
	for _, r := range selected {
		if r.Name == ReportExposureEvents {
			t.Error("default selection should exclude exposure_events")
		}
	}
	if len(selected) != len(All())-1 {
		t.Errorf("got %d reports, want %d", len(selected), len(All())-1)
	}

	// Only filter
	only, err := Select([]string{"chemicals", "genes"}, nil)
	if err != nil {
		t.Fatalf("Select with only failed: %v", err)
	}
	if len(only) != 2 {
		t.Errorf("got %d reports, want 2", len(only))
	}

	// Explicit empty exclude means everything
	all, err := Select(nil, []string{})
	if err != nil {
		t.Fatalf("Select with empty exclude failed: %v", err)
	}
	if len(all) != len(All()) {
		t.Errorf("got %d reports, want %d", len(all), len(All()))
	}

	// Unknown names error out
	if _, err := Select([]string{"bogus"}, nil); err == nil {
		t.Error("expected error for unknown only name")
	}
	if _, err := Select(nil, []string{"bogus"}); err == nil {
		t.Error("expected error for unknown exclude name")
	}
}

func TestSplitList(t *testing.T) {
	tests := []struct {
		in   string
		want []string
	}{
		{"", nil},
		{"MESH:D000001", []string{"MESH:D000001"}},
		{"MESH:D000001|MESH:D000002", []string{"MESH:D000001", "MESH:D000002"}},
		{" a | b ", []string{"a", "b"}},
		{"a||b", []string{"a", "b"}},
	}

	for _, tt := range tests {
		if got := SplitList(tt.in); !reflect.DeepEqual(got, tt.want) {
			t.Errorf("SplitList(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestJoinList(t *testing.T) {
	if got := JoinList([]string{"a", "b"}); got != "a|b" {
		t.Errorf("JoinList = %q, want a|b", got)
	}
}
