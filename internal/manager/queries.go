package manager

import (
	"github.com/bio2bel/ctd/internal/database"
)

// Query helpers over the populated database.

// GetChemicalByMeSH looks up a chemical by its MeSH identifier, e.g.
// "MESH:D003042".
func (m *Manager) GetChemicalByMeSH(meshID string) (*database.Chemical, error) {
	return m.db.GetChemical(meshID)
}

// GetChemicalByCAS looks up a chemical by CAS registry number
func (m *Manager) GetChemicalByCAS(casRN string) (*database.Chemical, error) {
	return m.db.GetChemicalByCAS(casRN)
}

// GetGeneByEntrezID looks up a gene by Entrez Gene identifier
func (m *Manager) GetGeneByEntrezID(geneID int64) (*database.Gene, error) {
	return m.db.GetGene(geneID)
}

// GetGeneBySymbol looks up a gene by symbol, e.g. "CDK2"
func (m *Manager) GetGeneBySymbol(symbol string) (*database.Gene, error) {
	return m.db.GetGeneBySymbol(symbol)
}

// GetDiseaseByID looks up a disease by MeSH or OMIM identifier
func (m *Manager) GetDiseaseByID(diseaseID string) (*database.Disease, error) {
	return m.db.GetDisease(diseaseID)
}

// GetPathwayByID looks up a pathway by KEGG or Reactome identifier
func (m *Manager) GetPathwayByID(pathwayID string) (*database.Pathway, error) {
	return m.db.GetPathway(pathwayID)
}

// GetInteractionByID looks up a chemical-gene interaction by row identifier
func (m *Manager) GetInteractionByID(id int64) (*database.ChemGeneIxn, error) {
	return m.db.GetChemGeneIxn(id)
}

// ListChemicals pages through the chemical vocabulary
func (m *Manager) ListChemicals(limit, offset int) ([]database.Chemical, error) {
	return m.db.ListChemicals(limit, offset)
}

// ListDiseases pages through the disease vocabulary
func (m *Manager) ListDiseases(limit, offset int) ([]database.Disease, error) {
	return m.db.ListDiseases(limit, offset)
}

// ListGenes pages through the gene vocabulary
func (m *Manager) ListGenes(limit, offset int) ([]database.Gene, error) {
	return m.db.ListGenes(limit, offset)
}

// CountChemicals returns the number of chemicals in the database
func (m *Manager) CountChemicals() (int64, error) {
	return m.db.CountTable("chemicals")
}

// CountDiseases returns the number of diseases in the database
func (m *Manager) CountDiseases() (int64, error) {
	return m.db.CountTable("diseases")
}

// CountGenes returns the number of genes in the database
func (m *Manager) CountGenes() (int64, error) {
	return m.db.CountTable("genes")
}

// CountPathways returns the number of pathways in the database
func (m *Manager) CountPathways() (int64, error) {
	return m.db.CountTable("pathways")
}

// CountInteractions returns the number of chemical-gene interactions
func (m *Manager) CountInteractions() (int64, error) {
	return m.db.CountTable("chem_gene_ixns")
}
