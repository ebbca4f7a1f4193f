// Package search maintains a Bleve full-text index over the CTD vocabulary
// tables (chemicals, diseases, genes) for name and synonym lookup.
package search

import (
	"fmt"

	"github.com/blevesearch/bleve/v2"
	"github.com/blevesearch/bleve/v2/mapping"
	"github.com/blevesearch/bleve/v2/search/query"
)

// Document types stored in the index
const (
	DocTypeChemical = "chemical"
	DocTypeDisease  = "disease"
	DocTypeGene     = "gene"
)

// Index wraps the Bleve search index
type Index struct {
	index bleve.Index
	path  string
}

// Open opens an existing index or creates a new one at indexPath
func Open(indexPath string) (*Index, error) {
	index, err := bleve.Open(indexPath)
	if err == bleve.ErrorIndexPathDoesNotExist {
		index, err = bleve.New(indexPath, createIndexMapping())
		if err != nil {
			return nil, fmt.Errorf("failed to create index: %w", err)
		}
	} else if err != nil {
		return nil, fmt.Errorf("failed to open index: %w", err)
	}

	return &Index{index: index, path: indexPath}, nil
}

// createIndexMapping creates an index mapping for CTD vocabulary terms.
// Identifiers get the keyword analyzer so "MESH:D003042" matches exactly;
// names, synonyms, and definitions get the standard analyzer.
func createIndexMapping() mapping.IndexMapping {
	indexMapping := bleve.NewIndexMapping()
	indexMapping.DefaultAnalyzer = "standard"

	docMapping := bleve.NewDocumentMapping()
	docMapping.AddFieldMappingsAt("type", keywordFieldMapping())
	docMapping.AddFieldMappingsAt("identifier", keywordFieldMapping())
	docMapping.AddFieldMappingsAt("cas_rn", keywordFieldMapping())
	docMapping.AddFieldMappingsAt("symbol", keywordFieldMapping())
	docMapping.AddFieldMappingsAt("name", textFieldMapping())
	docMapping.AddFieldMappingsAt("definition", textFieldMapping())
	docMapping.AddFieldMappingsAt("synonyms", textFieldMapping())
	docMapping.AddFieldMappingsAt("alt_ids", textFieldMapping())

	indexMapping.DefaultMapping = docMapping
	return indexMapping
}

func keywordFieldMapping() *mapping.FieldMapping {
	fieldMapping := bleve.NewTextFieldMapping()
	fieldMapping.Analyzer = "keyword"
	fieldMapping.Store = true
	fieldMapping.IncludeInAll = true
	return fieldMapping
}

func textFieldMapping() *mapping.FieldMapping {
	fieldMapping := bleve.NewTextFieldMapping()
	fieldMapping.Analyzer = "standard"
	fieldMapping.Store = true
	fieldMapping.IncludeInAll = true
	return fieldMapping
}

// ChemicalDoc is the indexed form of a CTD chemical
type ChemicalDoc struct {
	Type       string `json:"type"`
	Identifier string `json:"identifier"`
	Name       string `json:"name"`
	CasRN      string `json:"cas_rn"`
	Definition string `json:"definition"`
	Synonyms   string `json:"synonyms"`
}

// DiseaseDoc is the indexed form of a CTD disease
type DiseaseDoc struct {
	Type       string `json:"type"`
	Identifier string `json:"identifier"`
	Name       string `json:"name"`
	Definition string `json:"definition"`
	Synonyms   string `json:"synonyms"`
	AltIDs     string `json:"alt_ids"`
}

// GeneDoc is the indexed form of a CTD gene
type GeneDoc struct {
	Type       string `json:"type"`
	Identifier string `json:"identifier"`
	Symbol     string `json:"symbol"`
	Name       string `json:"name"`
	Synonyms   string `json:"synonyms"`
}

// IndexChemical adds a single chemical to the index
func (idx *Index) IndexChemical(doc ChemicalDoc) error {
	doc.Type = DocTypeChemical
	return idx.index.Index(docID(DocTypeChemical, doc.Identifier), doc)
}

// IndexDisease adds a single disease to the index
func (idx *Index) IndexDisease(doc DiseaseDoc) error {
	doc.Type = DocTypeDisease
	return idx.index.Index(docID(DocTypeDisease, doc.Identifier), doc)
}

// IndexGene adds a single gene to the index
func (idx *Index) IndexGene(doc GeneDoc) error {
	doc.Type = DocTypeGene
	return idx.index.Index(docID(DocTypeGene, doc.Identifier), doc)
}

// BatchIndex indexes a slice of ChemicalDoc, DiseaseDoc, or GeneDoc values
// in a single Bleve batch.
func (idx *Index) BatchIndex(docs []interface{}) error {
	batch := idx.index.NewBatch()

	for _, doc := range docs {
		var id string
		var typedDoc interface{}

		switch d := doc.(type) {
		case ChemicalDoc:
			d.Type = DocTypeChemical
			id = docID(DocTypeChemical, d.Identifier)
			typedDoc = d
		case DiseaseDoc:
			d.Type = DocTypeDisease
			id = docID(DocTypeDisease, d.Identifier)
			typedDoc = d
		case GeneDoc:
			d.Type = DocTypeGene
			id = docID(DocTypeGene, d.Identifier)
			typedDoc = d
		default:
			continue
		}

		if err := batch.Index(id, typedDoc); err != nil {
			return fmt.Errorf("failed to add document %s to batch: %w", id, err)
		}
	}

	return idx.index.Batch(batch)
}

// docID namespaces identifiers by document type so a MESH term shared
// between vocabularies cannot collide.
func docID(docType, identifier string) string {
	return docType + ":" + identifier
}

// Result is an alias for bleve.SearchResult so callers need not import bleve
type Result = bleve.SearchResult

// Search performs a full-text search across all indexed vocabularies
func (idx *Index) Search(queryStr string, limit int) (*bleve.SearchResult, error) {
	q := bleve.NewQueryStringQuery(queryStr)
	searchRequest := bleve.NewSearchRequest(q)
	searchRequest.Size = limit
	searchRequest.Fields = []string{"*"}
	searchRequest.AddFacet("type", bleve.NewFacetRequest("type", 3))

	return idx.index.Search(searchRequest)
}

// SearchType restricts a search to one document type
func (idx *Index) SearchType(queryStr, docType string, limit int) (*bleve.SearchResult, error) {
	var queries []query.Query

	if queryStr != "" {
		queries = append(queries, bleve.NewQueryStringQuery(queryStr))
	}
	typeQuery := bleve.NewTermQuery(docType)
	typeQuery.SetField("type")
	queries = append(queries, typeQuery)

	var finalQuery query.Query
	if len(queries) == 1 {
		finalQuery = queries[0]
	} else {
		finalQuery = bleve.NewConjunctionQuery(queries...)
	}

	searchRequest := bleve.NewSearchRequest(finalQuery)
	searchRequest.Size = limit
	searchRequest.Fields = []string{"*"}

	return idx.index.Search(searchRequest)
}

// FuzzySearch performs a fuzzy search for typo tolerance
func (idx *Index) FuzzySearch(queryStr string, fuzziness, limit int) (*bleve.SearchResult, error) {
	fuzzyQuery := bleve.NewFuzzyQuery(queryStr)
	fuzzyQuery.Fuzziness = fuzziness

	searchRequest := bleve.NewSearchRequest(fuzzyQuery)
	searchRequest.Size = limit
	searchRequest.Fields = []string{"*"}

	return idx.index.Search(searchRequest)
}

// DocCount returns the number of documents in the index
func (idx *Index) DocCount() (uint64, error) {
	return idx.index.DocCount()
}

// Path returns the on-disk location of the index
func (idx *Index) Path() string {
	return idx.path
}

// Close closes the index
func (idx *Index) Close() error {
	return idx.index.Close()
}
