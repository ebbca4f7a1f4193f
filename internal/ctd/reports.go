// Package ctd describes the report files published by the Comparative
// Toxicogenomics Database (ctdbase.org) and how to locate them.
package ctd

import (
	"fmt"
	"sort"
	"strings"
)

// DefaultBaseURL is where CTD publishes its downloadable reports.
const DefaultBaseURL = "http://ctdbase.org/reports/"

// Report names. These double as the local table names they populate.
const (
	ReportChemicals       = "chemicals"
	ReportDiseases        = "diseases"
	ReportGenes           = "genes"
	ReportPathways        = "pathways"
	ReportActions         = "actions"
	ReportChemGeneIxns    = "chem_gene_ixns"
	ReportChemicalDisease = "chemical_diseases"
	ReportGeneDisease     = "gene_diseases"
	ReportGenePathway     = "gene_pathways"
	ReportDiseasePathway  = "disease_pathways"
	ReportExposureEvents  = "exposure_events"
)

// Report describes a single downloadable CTD report file.
type Report struct {
	Name       string   // logical name, also the target table
	FileName   string   // remote file name under the base URL
	Fields     []string // expected header fields, in order
	Compressed bool     // gzip-compressed on the server
}

// URL returns the download URL for the report under the given base URL.
// An empty base falls back to DefaultBaseURL.
func (r Report) URL(base string) string {
	if base == "" {
		base = DefaultBaseURL
	}
	if !strings.HasSuffix(base, "/") {
		base += "/"
	}
	return base + r.FileName
}

// reports is the catalog of CTD report files, keyed by logical name.
// Field lists follow the "# Fields:" header of each report.
var reports = map[string]Report{
	ReportChemicals: {
		Name:     ReportChemicals,
		FileName: "CTD_chemicals.tsv.gz",
		Fields: []string{
			"ChemicalName", "ChemicalID", "CasRN", "Definition",
			"ParentIDs", "TreeNumbers", "ParentTreeNumbers", "Synonyms",
			"DrugBankIDs",
		},
		Compressed: true,
	},
	ReportDiseases: {
		Name:     ReportDiseases,
		FileName: "CTD_diseases.tsv.gz",
		Fields: []string{
			"DiseaseName", "DiseaseID", "AltDiseaseIDs", "Definition",
			"ParentIDs", "TreeNumbers", "ParentTreeNumbers", "Synonyms",
			"SlimMappings",
		},
		Compressed: true,
	},
	ReportGenes: {
		Name:     ReportGenes,
		FileName: "CTD_genes.tsv.gz",
		Fields: []string{
			"GeneSymbol", "GeneName", "GeneID", "AltGeneIDs",
			"Synonyms", "BioGRIDIDs", "PharmGKBIDs", "UniProtIDs",
		},
		Compressed: true,
	},
	ReportPathways: {
		Name:       ReportPathways,
		FileName:   "CTD_pathways.tsv.gz",
		Fields:     []string{"PathwayName", "PathwayID"},
		Compressed: true,
	},
	ReportActions: {
		Name:       ReportActions,
		FileName:   "CTD_chem_gene_ixn_types.tsv",
		Fields:     []string{"TypeName", "Code", "Description", "ParentCode"},
		Compressed: false,
	},
	ReportChemGeneIxns: {
		Name:     ReportChemGeneIxns,
		FileName: "CTD_chem_gene_ixns.tsv.gz",
		Fields: []string{
			"ChemicalName", "ChemicalID", "CasRN", "GeneSymbol", "GeneID",
			"GeneForms", "Organism", "OrganismID", "Interaction",
			"InteractionActions", "PubMedIDs",
		},
		Compressed: true,
	},
	ReportChemicalDisease: {
		Name:     ReportChemicalDisease,
		FileName: "CTD_chemicals_diseases.tsv.gz",
		Fields: []string{
			"ChemicalName", "ChemicalID", "CasRN", "DiseaseName", "DiseaseID",
			"DirectEvidence", "InferenceGeneSymbol", "InferenceScore",
			"OmimIDs", "PubMedIDs",
		},
		Compressed: true,
	},
	ReportGeneDisease: {
		Name:     ReportGeneDisease,
		FileName: "CTD_genes_diseases.tsv.gz",
		Fields: []string{
			"GeneSymbol", "GeneID", "DiseaseName", "DiseaseID",
			"DirectEvidence", "InferenceChemicalName", "InferenceScore",
			"OmimIDs", "PubMedIDs",
		},
		Compressed: true,
	},
	ReportGenePathway: {
		Name:       ReportGenePathway,
		FileName:   "CTD_genes_pathways.tsv.gz",
		Fields:     []string{"GeneSymbol", "GeneID", "PathwayName", "PathwayID"},
		Compressed: true,
	},
	ReportDiseasePathway: {
		Name:     ReportDiseasePathway,
		FileName: "CTD_diseases_pathways.tsv.gz",
		Fields: []string{
			"DiseaseName", "DiseaseID", "PathwayName", "PathwayID",
			"InferenceGeneSymbol",
		},
		Compressed: true,
	},
	ReportExposureEvents: {
		Name:     ReportExposureEvents,
		FileName: "CTD_exposure_events.tsv.gz",
		Fields: []string{
			"ExposureStressorName", "ExposureStressorID", "StressorSourceCategory",
			"StressorSourceDetails", "NumberOfStressorSamples",
			"StressorNotes", "Receptors", "ReceptorCategory",
			"ReceptorDescription", "MediumOfExposure", "ExposureMarker",
			"ExposureMarkerID", "MarkerLevel", "MarkerUnitsOfMeasurement",
			"MarkerMeasurementStatistic", "AssayNotes", "StudyCountries",
			"StateOrProvince", "CityTownRegionArea", "ExposureEventNotes",
			"OutcomeRelationship", "DiseaseName", "DiseaseID", "PhenotypeName",
			"PhenotypeID", "PhenotypeActionDegreeType", "Anatomy",
			"ExposureOutcomeNotes", "Reference", "AssociatedStudyTitles",
			"EnrollmentStartYear", "EnrollmentEndYear", "StudyFactors",
		},
		Compressed: true,
	},
}

// DefaultExcluded lists reports skipped during population unless requested
// explicitly. Exposure events are large and rarely queried.
var DefaultExcluded = []string{ReportExposureEvents}

// Lookup returns the report with the given logical name.
func Lookup(name string) (Report, error) {
	r, ok := reports[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return Report{}, fmt.Errorf("unknown CTD report: %q", name)
	}
	return r, nil
}

// All returns every report in the catalog, sorted by name.
func All() []Report {
	out := make([]Report, 0, len(reports))
	for _, r := range reports {
		out = append(out, r)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// Names returns the logical names of every report, sorted.
func Names() []string {
	all := All()
	names := make([]string, len(all))
	for i, r := range all {
		names[i] = r.Name
	}
	return names
}

// Select resolves the report set for a population run. With only set, just
// those reports are returned; otherwise all reports minus exclude (defaulting
// to DefaultExcluded when exclude is nil).
func Select(only, exclude []string) ([]Report, error) {
	if len(only) > 0 {
		out := make([]Report, 0, len(only))
		for _, name := range only {
			r, err := Lookup(name)
			if err != nil {
				return nil, err
			}
			out = append(out, r)
		}
		return out, nil
	}

	if exclude == nil {
		exclude = DefaultExcluded
	}
	skip := make(map[string]bool, len(exclude))
	for _, name := range exclude {
		r, err := Lookup(name)
		if err != nil {
			return nil, err
		}
		skip[r.Name] = true
	}

	var out []Report
	for _, r := range All() {
		if !skip[r.Name] {
			out = append(out, r)
		}
	}
	return out, nil
}

// SplitList splits a pipe-delimited multi-value report field. Empty input
// yields nil.
func SplitList(field string) []string {
	field = strings.TrimSpace(field)
	if field == "" {
		return nil
	}
	parts := strings.Split(field, "|")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// JoinList is the inverse of SplitList.
func JoinList(values []string) string {
	return strings.Join(values, "|")
}
