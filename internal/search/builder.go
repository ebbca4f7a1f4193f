package search

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/bio2bel/ctd/internal/ctd"
	"github.com/bio2bel/ctd/internal/database"
)

// BuildOptions configures an index build
type BuildOptions struct {
	BatchSize int
	Progress  func(docType string, indexed int64)
}

// BuildStats reports how many documents of each type were indexed
type BuildStats struct {
	Chemicals int64 `json:"chemicals"`
	Diseases  int64 `json:"diseases"`
	Genes     int64 `json:"genes"`
}

// Total returns the total number of indexed documents
func (s BuildStats) Total() int64 {
	return s.Chemicals + s.Diseases + s.Genes
}

// Build populates the index from the vocabulary tables, paging through each
// table and indexing in batches.
func (idx *Index) Build(ctx context.Context, db *database.DB, opts BuildOptions) (*BuildStats, error) {
	if opts.BatchSize <= 0 {
		opts.BatchSize = 1000
	}

	stats := &BuildStats{}

	count, err := idx.buildChemicals(ctx, db, opts)
	if err != nil {
		return nil, fmt.Errorf("indexing chemicals: %w", err)
	}
	stats.Chemicals = count

	count, err = idx.buildDiseases(ctx, db, opts)
	if err != nil {
		return nil, fmt.Errorf("indexing diseases: %w", err)
	}
	stats.Diseases = count

	count, err = idx.buildGenes(ctx, db, opts)
	if err != nil {
		return nil, fmt.Errorf("indexing genes: %w", err)
	}
	stats.Genes = count

	return stats, nil
}

func (idx *Index) buildChemicals(ctx context.Context, db *database.DB, opts BuildOptions) (int64, error) {
	var indexed int64
	for offset := 0; ; offset += opts.BatchSize {
		if err := ctx.Err(); err != nil {
			return indexed, err
		}

		chemicals, err := db.ListChemicals(opts.BatchSize, offset)
		if err != nil {
			return indexed, err
		}
		if len(chemicals) == 0 {
			break
		}

		docs := make([]interface{}, 0, len(chemicals))
		for _, c := range chemicals {
			docs = append(docs, ChemicalDoc{
				Identifier: c.ChemicalID,
				Name:       c.ChemicalName,
				CasRN:      c.CasRN,
				Definition: c.Definition,
				Synonyms:   spaceJoined(c.Synonyms),
			})
		}
		if err := idx.BatchIndex(docs); err != nil {
			return indexed, err
		}

		indexed += int64(len(chemicals))
		if opts.Progress != nil {
			opts.Progress(DocTypeChemical, indexed)
		}
		if len(chemicals) < opts.BatchSize {
			break
		}
	}
	return indexed, nil
}

func (idx *Index) buildDiseases(ctx context.Context, db *database.DB, opts BuildOptions) (int64, error) {
	var indexed int64
	for offset := 0; ; offset += opts.BatchSize {
		if err := ctx.Err(); err != nil {
			return indexed, err
		}

		diseases, err := db.ListDiseases(opts.BatchSize, offset)
		if err != nil {
			return indexed, err
		}
		if len(diseases) == 0 {
			break
		}

		docs := make([]interface{}, 0, len(diseases))
		for _, d := range diseases {
			docs = append(docs, DiseaseDoc{
				Identifier: d.DiseaseID,
				Name:       d.DiseaseName,
				Definition: d.Definition,
				Synonyms:   spaceJoined(d.Synonyms),
				AltIDs:     spaceJoined(d.AltDiseaseIDs),
			})
		}
		if err := idx.BatchIndex(docs); err != nil {
			return indexed, err
		}

		indexed += int64(len(diseases))
		if opts.Progress != nil {
			opts.Progress(DocTypeDisease, indexed)
		}
		if len(diseases) < opts.BatchSize {
			break
		}
	}
	return indexed, nil
}

func (idx *Index) buildGenes(ctx context.Context, db *database.DB, opts BuildOptions) (int64, error) {
	var indexed int64
	for offset := 0; ; offset += opts.BatchSize {
		if err := ctx.Err(); err != nil {
			return indexed, err
		}

		genes, err := db.ListGenes(opts.BatchSize, offset)
		if err != nil {
			return indexed, err
		}
		if len(genes) == 0 {
			break
		}

		docs := make([]interface{}, 0, len(genes))
		for _, g := range genes {
			docs = append(docs, GeneDoc{
				Identifier: strconv.FormatInt(g.GeneID, 10),
				Symbol:     g.GeneSymbol,
				Name:       g.GeneName,
				Synonyms:   spaceJoined(g.Synonyms),
			})
		}
		if err := idx.BatchIndex(docs); err != nil {
			return indexed, err
		}

		indexed += int64(len(genes))
		if opts.Progress != nil {
			opts.Progress(DocTypeGene, indexed)
		}
		if len(genes) < opts.BatchSize {
			break
		}
	}
	return indexed, nil
}

// spaceJoined turns a pipe-delimited CTD list into analyzable text
func spaceJoined(list string) string {
	return strings.Join(ctd.SplitList(list), " ")
}
