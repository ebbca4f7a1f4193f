package database

// Chemical represents a CTD chemical vocabulary record (MeSH-derived)
type Chemical struct {
	// Primary key, e.g. "MESH:C490728"
	ChemicalID string `json:"chemical_id"`

	ChemicalName string `json:"chemical_name"`
	CasRN        string `json:"cas_rn"`
	Definition   string `json:"definition"`

	// Pipe-joined multi-value fields, as published
	ParentIDs         string `json:"parent_ids"`
	TreeNumbers       string `json:"tree_numbers"`
	ParentTreeNumbers string `json:"parent_tree_numbers"`
	Synonyms          string `json:"synonyms"`
	DrugBankIDs       string `json:"drugbank_ids"`
}

// Disease represents a CTD disease vocabulary record (MEDIC: MeSH + OMIM)
type Disease struct {
	// Primary key, e.g. "MESH:D003920" or "OMIM:125853"
	DiseaseID string `json:"disease_id"`

	DiseaseName   string `json:"disease_name"`
	AltDiseaseIDs string `json:"alt_disease_ids"`
	Definition    string `json:"definition"`

	ParentIDs         string `json:"parent_ids"`
	TreeNumbers       string `json:"tree_numbers"`
	ParentTreeNumbers string `json:"parent_tree_numbers"`
	Synonyms          string `json:"synonyms"`
	SlimMappings      string `json:"slim_mappings"`
}

// Gene represents a CTD gene vocabulary record (NCBI Gene-derived)
type Gene struct {
	// Primary key: Entrez Gene identifier
	GeneID int64 `json:"gene_id"`

	GeneSymbol string `json:"gene_symbol"`
	GeneName   string `json:"gene_name"`

	AltGeneIDs  string `json:"alt_gene_ids"`
	Synonyms    string `json:"synonyms"`
	BioGRIDIDs  string `json:"biogrid_ids"`
	PharmGKBIDs string `json:"pharmgkb_ids"`
	UniProtIDs  string `json:"uniprot_ids"`
}

// Pathway represents a CTD pathway record (KEGG or Reactome)
type Pathway struct {
	// Primary key, e.g. "KEGG:hsa00010" or "REACT:R-HSA-70171"
	PathwayID string `json:"pathway_id"`

	PathwayName string `json:"pathway_name"`
}

// Action represents a chemical-gene interaction type from the CTD ontology
type Action struct {
	// Primary key, e.g. "exp" for expression
	Code string `json:"code"`

	TypeName    string `json:"type_name"`
	Description string `json:"description"`
	ParentCode  string `json:"parent_code"`
}

// ChemGeneIxn represents a curated chemical-gene interaction
type ChemGeneIxn struct {
	ID int64 `json:"id"`

	ChemicalID   string `json:"chemical_id"`
	ChemicalName string `json:"chemical_name"`
	CasRN        string `json:"cas_rn"`

	GeneID     int64  `json:"gene_id"`
	GeneSymbol string `json:"gene_symbol"`
	GeneForms  string `json:"gene_forms"`

	Organism   string `json:"organism"`
	OrganismID int64  `json:"organism_id"`

	// Free-text interaction sentence plus its coded actions
	Interaction        string `json:"interaction"`
	InteractionActions string `json:"interaction_actions"`
	PubMedIDs          string `json:"pubmed_ids"`
}

// ChemicalDisease represents a chemical-disease association, either directly
// curated (DirectEvidence set) or inferred through a gene.
type ChemicalDisease struct {
	ID int64 `json:"id"`

	ChemicalID   string `json:"chemical_id"`
	ChemicalName string `json:"chemical_name"`
	CasRN        string `json:"cas_rn"`

	DiseaseID   string `json:"disease_id"`
	DiseaseName string `json:"disease_name"`

	DirectEvidence      string  `json:"direct_evidence"`
	InferenceGeneSymbol string  `json:"inference_gene_symbol"`
	InferenceScore      float64 `json:"inference_score"`
	OmimIDs             string  `json:"omim_ids"`
	PubMedIDs           string  `json:"pubmed_ids"`
}

// GeneDisease represents a gene-disease association
type GeneDisease struct {
	ID int64 `json:"id"`

	GeneID     int64  `json:"gene_id"`
	GeneSymbol string `json:"gene_symbol"`

	DiseaseID   string `json:"disease_id"`
	DiseaseName string `json:"disease_name"`

	DirectEvidence        string  `json:"direct_evidence"`
	InferenceChemicalName string  `json:"inference_chemical_name"`
	InferenceScore        float64 `json:"inference_score"`
	OmimIDs               string  `json:"omim_ids"`
	PubMedIDs             string  `json:"pubmed_ids"`
}

// GenePathway represents a gene-pathway association
type GenePathway struct {
	GeneID      int64  `json:"gene_id"`
	GeneSymbol  string `json:"gene_symbol"`
	PathwayID   string `json:"pathway_id"`
	PathwayName string `json:"pathway_name"`
}

// DiseasePathway represents a disease-pathway association
type DiseasePathway struct {
	DiseaseID           string `json:"disease_id"`
	DiseaseName         string `json:"disease_name"`
	PathwayID           string `json:"pathway_id"`
	PathwayName         string `json:"pathway_name"`
	InferenceGeneSymbol string `json:"inference_gene_symbol"`
}

// ExposureEvent represents a CTD exposure event record. Only the core
// stressor/receptor/outcome columns are kept; the full report carries many
// study-design columns that are not queried locally.
type ExposureEvent struct {
	ID int64 `json:"id"`

	StressorName     string `json:"stressor_name"`
	StressorID       string `json:"stressor_id"`
	SourceCategory   string `json:"source_category"`
	Receptors        string `json:"receptors"`
	MediumOfExposure string `json:"medium_of_exposure"`

	DiseaseID   string `json:"disease_id"`
	DiseaseName string `json:"disease_name"`

	OutcomeRelationship string `json:"outcome_relationship"`
	Reference           string `json:"reference"`
}
