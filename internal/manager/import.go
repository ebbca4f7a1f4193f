package manager

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/bio2bel/ctd/internal/ctd"
	"github.com/bio2bel/ctd/internal/database"
	"github.com/bio2bel/ctd/internal/parser"
)

// importReport streams one downloaded report file into its table
func (m *Manager) importReport(ctx context.Context, report ctd.Report, path string, progressFn func(string, int64, int64)) (records, skipped int64, err error) {
	rr, err := parser.Open(path)
	if err != nil {
		return 0, 0, err
	}
	defer rr.Close()
	rr.SetFieldCount(len(report.Fields))

	batchSize := m.cfg.Database.BatchSize
	if batchSize <= 0 {
		batchSize = 5000
	}

	switch report.Name {
	case ctd.ReportChemicals:
		err = m.importChemicals(ctx, rr, batchSize, progressFn)
	case ctd.ReportDiseases:
		err = m.importDiseases(ctx, rr, batchSize, progressFn)
	case ctd.ReportGenes:
		err = m.importGenes(ctx, rr, batchSize, progressFn)
	case ctd.ReportPathways:
		err = m.importPathways(ctx, rr, batchSize, progressFn)
	case ctd.ReportActions:
		err = m.importActions(ctx, rr, batchSize, progressFn)
	case ctd.ReportChemGeneIxns:
		err = m.importChemGeneIxns(ctx, rr, batchSize, progressFn)
	case ctd.ReportChemicalDisease:
		err = m.importChemicalDiseases(ctx, rr, batchSize, progressFn)
	case ctd.ReportGeneDisease:
		err = m.importGeneDiseases(ctx, rr, batchSize, progressFn)
	case ctd.ReportGenePathway:
		err = m.importGenePathways(ctx, rr, batchSize, progressFn)
	case ctd.ReportDiseasePathway:
		err = m.importDiseasePathways(ctx, rr, batchSize, progressFn)
	case ctd.ReportExposureEvents:
		err = m.importExposureEvents(ctx, rr, batchSize, progressFn)
	default:
		err = fmt.Errorf("no importer for report %q", report.Name)
	}
	if err != nil {
		return rr.Records(), rr.Skipped(), err
	}

	return rr.Records(), rr.Skipped(), nil
}

func (m *Manager) importChemicals(ctx context.Context, rr *parser.ReportReader, batchSize int, progressFn func(string, int64, int64)) error {
	batch := make([]database.Chemical, 0, batchSize)
	flush := func() error {
		if len(batch) == 0 {
			return nil
		}
		if err := m.db.BatchInsertChemicals(batch); err != nil {
			return err
		}
		batch = batch[:0]
		if progressFn != nil {
			progressFn(ctd.ReportChemicals, rr.Records(), rr.Skipped())
		}
		return nil
	}

	err := rr.ReadAll(ctx, func(fields []string) error {
		batch = append(batch, database.Chemical{
			ChemicalName:      fields[0],
			ChemicalID:        fields[1],
			CasRN:             fields[2],
			Definition:        fields[3],
			ParentIDs:         fields[4],
			TreeNumbers:       fields[5],
			ParentTreeNumbers: fields[6],
			Synonyms:          fields[7],
			DrugBankIDs:       fields[8],
		})
		if len(batch) >= batchSize {
			return flush()
		}
		return nil
	})
	if err != nil {
		return err
	}
	return flush()
}

func (m *Manager) importDiseases(ctx context.Context, rr *parser.ReportReader, batchSize int, progressFn func(string, int64, int64)) error {
	batch := make([]database.Disease, 0, batchSize)
	flush := func() error {
		if len(batch) == 0 {
			return nil
		}
		if err := m.db.BatchInsertDiseases(batch); err != nil {
			return err
		}
		batch = batch[:0]
		if progressFn != nil {
			progressFn(ctd.ReportDiseases, rr.Records(), rr.Skipped())
		}
		return nil
	}

	err := rr.ReadAll(ctx, func(fields []string) error {
		batch = append(batch, database.Disease{
			DiseaseName:       fields[0],
			DiseaseID:         fields[1],
			AltDiseaseIDs:     fields[2],
			Definition:        fields[3],
			ParentIDs:         fields[4],
			TreeNumbers:       fields[5],
			ParentTreeNumbers: fields[6],
			Synonyms:          fields[7],
			SlimMappings:      fields[8],
		})
		if len(batch) >= batchSize {
			return flush()
		}
		return nil
	})
	if err != nil {
		return err
	}
	return flush()
}

func (m *Manager) importGenes(ctx context.Context, rr *parser.ReportReader, batchSize int, progressFn func(string, int64, int64)) error {
	batch := make([]database.Gene, 0, batchSize)
	flush := func() error {
		if len(batch) == 0 {
			return nil
		}
		if err := m.db.BatchInsertGenes(batch); err != nil {
			return err
		}
		batch = batch[:0]
		if progressFn != nil {
			progressFn(ctd.ReportGenes, rr.Records(), rr.Skipped())
		}
		return nil
	}

	err := rr.ReadAll(ctx, func(fields []string) error {
		geneID, ok := parseGeneID(fields[2])
		if !ok {
			rr.SkipRecord() // malformed Entrez identifier
			return nil
		}
		batch = append(batch, database.Gene{
			GeneSymbol:  fields[0],
			GeneName:    fields[1],
			GeneID:      geneID,
			AltGeneIDs:  fields[3],
			Synonyms:    fields[4],
			BioGRIDIDs:  fields[5],
			PharmGKBIDs: fields[6],
			UniProtIDs:  fields[7],
		})
		if len(batch) >= batchSize {
			return flush()
		}
		return nil
	})
	if err != nil {
		return err
	}
	return flush()
}

func (m *Manager) importPathways(ctx context.Context, rr *parser.ReportReader, batchSize int, progressFn func(string, int64, int64)) error {
	batch := make([]database.Pathway, 0, batchSize)
	flush := func() error {
		if len(batch) == 0 {
			return nil
		}
		if err := m.db.BatchInsertPathways(batch); err != nil {
			return err
		}
		batch = batch[:0]
		if progressFn != nil {
			progressFn(ctd.ReportPathways, rr.Records(), rr.Skipped())
		}
		return nil
	}

	err := rr.ReadAll(ctx, func(fields []string) error {
		batch = append(batch, database.Pathway{
			PathwayName: fields[0],
			PathwayID:   fields[1],
		})
		if len(batch) >= batchSize {
			return flush()
		}
		return nil
	})
	if err != nil {
		return err
	}
	return flush()
}

func (m *Manager) importActions(ctx context.Context, rr *parser.ReportReader, batchSize int, progressFn func(string, int64, int64)) error {
	batch := make([]database.Action, 0, batchSize)
	flush := func() error {
		if len(batch) == 0 {
			return nil
		}
		if err := m.db.BatchInsertActions(batch); err != nil {
			return err
		}
		batch = batch[:0]
		if progressFn != nil {
			progressFn(ctd.ReportActions, rr.Records(), rr.Skipped())
		}
		return nil
	}

	err := rr.ReadAll(ctx, func(fields []string) error {
		batch = append(batch, database.Action{
			TypeName:    fields[0],
			Code:        fields[1],
			Description: fields[2],
			ParentCode:  fields[3],
		})
		if len(batch) >= batchSize {
			return flush()
		}
		return nil
	})
	if err != nil {
		return err
	}
	return flush()
}

func (m *Manager) importChemGeneIxns(ctx context.Context, rr *parser.ReportReader, batchSize int, progressFn func(string, int64, int64)) error {
	batch := make([]database.ChemGeneIxn, 0, batchSize)
	flush := func() error {
		if len(batch) == 0 {
			return nil
		}
		if err := m.db.BatchInsertChemGeneIxns(batch); err != nil {
			return err
		}
		batch = batch[:0]
		if progressFn != nil {
			progressFn(ctd.ReportChemGeneIxns, rr.Records(), rr.Skipped())
		}
		return nil
	}

	err := rr.ReadAll(ctx, func(fields []string) error {
		geneID, ok := parseGeneID(fields[4])
		if !ok {
			rr.SkipRecord()
			return nil
		}
		batch = append(batch, database.ChemGeneIxn{
			ChemicalName:       fields[0],
			ChemicalID:         prefixMESH(fields[1]),
			CasRN:              fields[2],
			GeneSymbol:         fields[3],
			GeneID:             geneID,
			GeneForms:          fields[5],
			Organism:           fields[6],
			OrganismID:         parseInt(fields[7]),
			Interaction:        fields[8],
			InteractionActions: fields[9],
			PubMedIDs:          fields[10],
		})
		if len(batch) >= batchSize {
			return flush()
		}
		return nil
	})
	if err != nil {
		return err
	}
	return flush()
}

func (m *Manager) importChemicalDiseases(ctx context.Context, rr *parser.ReportReader, batchSize int, progressFn func(string, int64, int64)) error {
	batch := make([]database.ChemicalDisease, 0, batchSize)
	flush := func() error {
		if len(batch) == 0 {
			return nil
		}
		if err := m.db.BatchInsertChemicalDiseases(batch); err != nil {
			return err
		}
		batch = batch[:0]
		if progressFn != nil {
			progressFn(ctd.ReportChemicalDisease, rr.Records(), rr.Skipped())
		}
		return nil
	}

	err := rr.ReadAll(ctx, func(fields []string) error {
		batch = append(batch, database.ChemicalDisease{
			ChemicalName:        fields[0],
			ChemicalID:          prefixMESH(fields[1]),
			CasRN:               fields[2],
			DiseaseName:         fields[3],
			DiseaseID:           fields[4],
			DirectEvidence:      fields[5],
			InferenceGeneSymbol: fields[6],
			InferenceScore:      parseFloat(fields[7]),
			OmimIDs:             fields[8],
			PubMedIDs:           fields[9],
		})
		if len(batch) >= batchSize {
			return flush()
		}
		return nil
	})
	if err != nil {
		return err
	}
	return flush()
}

func (m *Manager) importGeneDiseases(ctx context.Context, rr *parser.ReportReader, batchSize int, progressFn func(string, int64, int64)) error {
	batch := make([]database.GeneDisease, 0, batchSize)
	flush := func() error {
		if len(batch) == 0 {
			return nil
		}
		if err := m.db.BatchInsertGeneDiseases(batch); err != nil {
			return err
		}
		batch = batch[:0]
		if progressFn != nil {
			progressFn(ctd.ReportGeneDisease, rr.Records(), rr.Skipped())
		}
		return nil
	}

	err := rr.ReadAll(ctx, func(fields []string) error {
		geneID, ok := parseGeneID(fields[1])
		if !ok {
			rr.SkipRecord()
			return nil
		}
		batch = append(batch, database.GeneDisease{
			GeneSymbol:            fields[0],
			GeneID:                geneID,
			DiseaseName:           fields[2],
			DiseaseID:             fields[3],
			DirectEvidence:        fields[4],
			InferenceChemicalName: fields[5],
			InferenceScore:        parseFloat(fields[6]),
			OmimIDs:               fields[7],
			PubMedIDs:             fields[8],
		})
		if len(batch) >= batchSize {
			return flush()
		}
		return nil
	})
	if err != nil {
		return err
	}
	return flush()
}

func (m *Manager) importGenePathways(ctx context.Context, rr *parser.ReportReader, batchSize int, progressFn func(string, int64, int64)) error {
	batch := make([]database.GenePathway, 0, batchSize)
	flush := func() error {
		if len(batch) == 0 {
			return nil
		}
		if err := m.db.BatchInsertGenePathways(batch); err != nil {
			return err
		}
		batch = batch[:0]
		if progressFn != nil {
			progressFn(ctd.ReportGenePathway, rr.Records(), rr.Skipped())
		}
		return nil
	}

	err := rr.ReadAll(ctx, func(fields []string) error {
		geneID, ok := parseGeneID(fields[1])
		if !ok {
			rr.SkipRecord()
			return nil
		}
		batch = append(batch, database.GenePathway{
			GeneSymbol:  fields[0],
			GeneID:      geneID,
			PathwayName: fields[2],
			PathwayID:   fields[3],
		})
		if len(batch) >= batchSize {
			return flush()
		}
		return nil
	})
	if err != nil {
		return err
	}
	return flush()
}

func (m *Manager) importDiseasePathways(ctx context.Context, rr *parser.ReportReader, batchSize int, progressFn func(string, int64, int64)) error {
	batch := make([]database.DiseasePathway, 0, batchSize)
	flush := func() error {
		if len(batch) == 0 {
			return nil
		}
		if err := m.db.BatchInsertDiseasePathways(batch); err != nil {
			return err
		}
		batch = batch[:0]
		if progressFn != nil {
			progressFn(ctd.ReportDiseasePathway, rr.Records(), rr.Skipped())
		}
		return nil
	}

	err := rr.ReadAll(ctx, func(fields []string) error {
		batch = append(batch, database.DiseasePathway{
			DiseaseName:         fields[0],
			DiseaseID:           fields[1],
			PathwayName:         fields[2],
			PathwayID:           fields[3],
			InferenceGeneSymbol: fields[4],
		})
		if len(batch) >= batchSize {
			return flush()
		}
		return nil
	})
	if err != nil {
		return err
	}
	return flush()
}

func (m *Manager) importExposureEvents(ctx context.Context, rr *parser.ReportReader, batchSize int, progressFn func(string, int64, int64)) error {
	batch := make([]database.ExposureEvent, 0, batchSize)
	flush := func() error {
		if len(batch) == 0 {
			return nil
		}
		if err := m.db.BatchInsertExposureEvents(batch); err != nil {
			return err
		}
		batch = batch[:0]
		if progressFn != nil {
			progressFn(ctd.ReportExposureEvents, rr.Records(), rr.Skipped())
		}
		return nil
	}

	err := rr.ReadAll(ctx, func(fields []string) error {
		batch = append(batch, database.ExposureEvent{
			StressorName:        fields[0],
			StressorID:          prefixMESH(fields[1]),
			SourceCategory:      fields[2],
			Receptors:           fields[6],
			MediumOfExposure:    fields[9],
			OutcomeRelationship: fields[20],
			DiseaseName:         fields[21],
			DiseaseID:           fields[22],
			Reference:           fields[28],
		})
		if len(batch) >= batchSize {
			return flush()
		}
		return nil
	})
	if err != nil {
		return err
	}
	return flush()
}

// parseGeneID parses an Entrez Gene identifier. Rows with a non-numeric
// identifier are skipped rather than aborting the import.
func parseGeneID(s string) (int64, bool) {
	id, err := strconv.ParseInt(strings.TrimSpace(s), 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}

func parseInt(s string) int64 {
	v, _ := strconv.ParseInt(strings.TrimSpace(s), 10, 64)
	return v
}

func parseFloat(s string) float64 {
	v, _ := strconv.ParseFloat(strings.TrimSpace(s), 64)
	return v
}

// prefixMESH normalizes a bare MeSH identifier to the prefixed form used by
// the vocabulary reports. The interaction reports publish chemical IDs
// without their "MESH:" prefix.
func prefixMESH(id string) string {
	id = strings.TrimSpace(id)
	if id == "" || strings.Contains(id, ":") {
		return id
	}
	return "MESH:" + id
}
