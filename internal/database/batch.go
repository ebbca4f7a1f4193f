package database

// Batch inserts run a single transaction with a prepared statement, which is
// what makes importing the multi-million row CTD association reports viable.

// BatchInsertChemicals inserts multiple chemicals in a single transaction.
func (db *DB) BatchInsertChemicals(chemicals []Chemical) error {
	tx, err := db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	stmt, err := tx.Prepare(`
		INSERT OR REPLACE INTO chemicals (
			chemical_id, chemical_name, cas_rn, definition,
			parent_ids, tree_numbers, parent_tree_numbers, synonyms, drugbank_ids
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for _, c := range chemicals {
		if _, err := stmt.Exec(
			c.ChemicalID, c.ChemicalName, c.CasRN, c.Definition,
			c.ParentIDs, c.TreeNumbers, c.ParentTreeNumbers, c.Synonyms, c.DrugBankIDs); err != nil {
			return err
		}
	}

	return tx.Commit()
}

// BatchInsertDiseases inserts multiple diseases in a single transaction.
func (db *DB) BatchInsertDiseases(diseases []Disease) error {
	tx, err := db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	stmt, err := tx.Prepare(`
		INSERT OR REPLACE INTO diseases (
			disease_id, disease_name, alt_disease_ids, definition,
			parent_ids, tree_numbers, parent_tree_numbers, synonyms, slim_mappings
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for _, d := range diseases {
		if _, err := stmt.Exec(
			d.DiseaseID, d.DiseaseName, d.AltDiseaseIDs, d.Definition,
			d.ParentIDs, d.TreeNumbers, d.ParentTreeNumbers, d.Synonyms, d.SlimMappings); err != nil {
			return err
		}
	}

	return tx.Commit()
}

// BatchInsertGenes inserts multiple genes in a single transaction.
func (db *DB) BatchInsertGenes(genes []Gene) error {
	tx, err := db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	stmt, err := tx.Prepare(`
		INSERT OR REPLACE INTO genes (
			gene_id, gene_symbol, gene_name, alt_gene_ids,
			synonyms, biogrid_ids, pharmgkb_ids, uniprot_ids
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for _, g := range genes {
		if _, err := stmt.Exec(
			g.GeneID, g.GeneSymbol, g.GeneName, g.AltGeneIDs,
			g.Synonyms, g.BioGRIDIDs, g.PharmGKBIDs, g.UniProtIDs); err != nil {
			return err
		}
	}

	return tx.Commit()
}

// BatchInsertPathways inserts multiple pathways in a single transaction.
func (db *DB) BatchInsertPathways(pathways []Pathway) error {
	tx, err := db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	stmt, err := tx.Prepare(`
		INSERT OR REPLACE INTO pathways (pathway_id, pathway_name) VALUES (?, ?)
	`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for _, p := range pathways {
		if _, err := stmt.Exec(p.PathwayID, p.PathwayName); err != nil {
			return err
		}
	}

	return tx.Commit()
}

// BatchInsertActions inserts multiple interaction types in a single transaction.
func (db *DB) BatchInsertActions(actions []Action) error {
	tx, err := db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	stmt, err := tx.Prepare(`
		INSERT OR REPLACE INTO actions (code, type_name, description, parent_code)
		VALUES (?, ?, ?, ?)
	`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for _, a := range actions {
		if _, err := stmt.Exec(a.Code, a.TypeName, a.Description, a.ParentCode); err != nil {
			return err
		}
	}

	return tx.Commit()
}

// BatchInsertChemGeneIxns inserts multiple interactions in a single transaction.
func (db *DB) BatchInsertChemGeneIxns(ixns []ChemGeneIxn) error {
	tx, err := db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	stmt, err := tx.Prepare(`
		INSERT INTO chem_gene_ixns (
			chemical_id, chemical_name, cas_rn, gene_id, gene_symbol,
			gene_forms, organism, organism_id, interaction,
			interaction_actions, pubmed_ids
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for _, ixn := range ixns {
		if _, err := stmt.Exec(
			ixn.ChemicalID, ixn.ChemicalName, ixn.CasRN, ixn.GeneID, ixn.GeneSymbol,
			ixn.GeneForms, ixn.Organism, ixn.OrganismID, ixn.Interaction,
			ixn.InteractionActions, ixn.PubMedIDs); err != nil {
			return err
		}
	}

	return tx.Commit()
}

// BatchInsertChemicalDiseases inserts multiple chemical-disease associations
// in a single transaction.
func (db *DB) BatchInsertChemicalDiseases(cds []ChemicalDisease) error {
	tx, err := db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	stmt, err := tx.Prepare(`
		INSERT INTO chemical_diseases (
			chemical_id, chemical_name, cas_rn, disease_id, disease_name,
			direct_evidence, inference_gene_symbol, inference_score,
			omim_ids, pubmed_ids
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for _, cd := range cds {
		if _, err := stmt.Exec(
			cd.ChemicalID, cd.ChemicalName, cd.CasRN, cd.DiseaseID, cd.DiseaseName,
			cd.DirectEvidence, cd.InferenceGeneSymbol, cd.InferenceScore,
			cd.OmimIDs, cd.PubMedIDs); err != nil {
			return err
		}
	}

	return tx.Commit()
}

// BatchInsertGeneDiseases inserts multiple gene-disease associations in a
// single transaction.
func (db *DB) BatchInsertGeneDiseases(gds []GeneDisease) error {
	tx, err := db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	stmt, err := tx.Prepare(`
		INSERT INTO gene_diseases (
			gene_id, gene_symbol, disease_id, disease_name,
			direct_evidence, inference_chemical_name, inference_score,
			omim_ids, pubmed_ids
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for _, gd := range gds {
		if _, err := stmt.Exec(
			gd.GeneID, gd.GeneSymbol, gd.DiseaseID, gd.DiseaseName,
			gd.DirectEvidence, gd.InferenceChemicalName, gd.InferenceScore,
			gd.OmimIDs, gd.PubMedIDs); err != nil {
			return err
		}
	}

	return tx.Commit()
}

// BatchInsertGenePathways inserts multiple gene-pathway associations in a
// single transaction.
func (db *DB) BatchInsertGenePathways(gps []GenePathway) error {
	tx, err := db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	stmt, err := tx.Prepare(`
		INSERT OR REPLACE INTO gene_pathways (
			gene_id, gene_symbol, pathway_id, pathway_name
		) VALUES (?, ?, ?, ?)
	`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for _, gp := range gps {
		if _, err := stmt.Exec(gp.GeneID, gp.GeneSymbol, gp.PathwayID, gp.PathwayName); err != nil {
			return err
		}
	}

	return tx.Commit()
}

// BatchInsertDiseasePathways inserts multiple disease-pathway associations in
// a single transaction.
func (db *DB) BatchInsertDiseasePathways(dps []DiseasePathway) error {
	tx, err := db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	stmt, err := tx.Prepare(`
		INSERT OR REPLACE INTO disease_pathways (
			disease_id, disease_name, pathway_id, pathway_name, inference_gene_symbol
		) VALUES (?, ?, ?, ?, ?)
	`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for _, dp := range dps {
		if _, err := stmt.Exec(
			dp.DiseaseID, dp.DiseaseName, dp.PathwayID, dp.PathwayName,
			dp.InferenceGeneSymbol); err != nil {
			return err
		}
	}

	return tx.Commit()
}

// BatchInsertExposureEvents inserts multiple exposure events in a single
// transaction.
func (db *DB) BatchInsertExposureEvents(events []ExposureEvent) error {
	tx, err := db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	stmt, err := tx.Prepare(`
		INSERT INTO exposure_events (
			stressor_name, stressor_id, source_category, receptors,
			medium_of_exposure, disease_id, disease_name,
			outcome_relationship, reference
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for _, e := range events {
		if _, err := stmt.Exec(
			e.StressorName, e.StressorID, e.SourceCategory, e.Receptors,
			e.MediumOfExposure, e.DiseaseID, e.DiseaseName,
			e.OutcomeRelationship, e.Reference); err != nil {
			return err
		}
	}

	return tx.Commit()
}
