package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strconv"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/bio2bel/ctd/internal/database"
)

var (
	listLimit  int
	listOffset int
	entityJSON bool
)

var chemicalsCmd = &cobra.Command{
	Use:   "chemicals",
	Short: "Query the chemical vocabulary",
}

var chemicalsGetCmd = &cobra.Command{
	Use:   "get <mesh-id|cas-rn>",
	Short: "Look up a chemical by MeSH identifier or CAS registry number",
	Args:  cobra.ExactArgs(1),
	Example: `  bio2bel_ctd chemicals get MESH:D003042
  bio2bel_ctd chemicals get 76-57-3`,
	RunE: runChemicalsGet,
}

var chemicalsListCmd = &cobra.Command{
	Use:   "ls",
	Short: "List chemicals",
	RunE:  runChemicalsList,
}

var diseasesCmd = &cobra.Command{
	Use:   "diseases",
	Short: "Query the disease vocabulary",
}

var diseasesGetCmd = &cobra.Command{
	Use:   "get <disease-id>",
	Short: "Look up a disease by MeSH or OMIM identifier",
	Args:  cobra.ExactArgs(1),
	Example: `  bio2bel_ctd diseases get MESH:D003920
  bio2bel_ctd diseases get OMIM:125853`,
	RunE: runDiseasesGet,
}

var diseasesListCmd = &cobra.Command{
	Use:   "ls",
	Short: "List diseases",
	RunE:  runDiseasesList,
}

var genesCmd = &cobra.Command{
	Use:   "genes",
	Short: "Query the gene vocabulary",
}

var genesGetCmd = &cobra.Command{
	Use:   "get <entrez-id|symbol>",
	Short: "Look up a gene by Entrez identifier or symbol",
	Args:  cobra.ExactArgs(1),
	Example: `  bio2bel_ctd genes get 1017
  bio2bel_ctd genes get CDK2`,
	RunE: runGenesGet,
}

var genesListCmd = &cobra.Command{
	Use:   "ls",
	Short: "List genes",
	RunE:  runGenesList,
}

func init() {
	for _, cmd := range []*cobra.Command{chemicalsListCmd, diseasesListCmd, genesListCmd} {
		cmd.Flags().IntVarP(&listLimit, "limit", "l", 25, "Maximum results")
		cmd.Flags().IntVar(&listOffset, "offset", 0, "Results to skip")
	}
	for _, cmd := range []*cobra.Command{
		chemicalsGetCmd, chemicalsListCmd,
		diseasesGetCmd, diseasesListCmd,
		genesGetCmd, genesListCmd,
	} {
		cmd.Flags().BoolVar(&entityJSON, "json", false, "Emit results as JSON")
	}

	chemicalsCmd.AddCommand(chemicalsGetCmd)
	chemicalsCmd.AddCommand(chemicalsListCmd)
	diseasesCmd.AddCommand(diseasesGetCmd)
	diseasesCmd.AddCommand(diseasesListCmd)
	genesCmd.AddCommand(genesGetCmd)
	genesCmd.AddCommand(genesListCmd)
}

func runChemicalsGet(cmd *cobra.Command, args []string) error {
	m, _, err := openManager()
	if err != nil {
		printError("%v", err)
		return err
	}
	defer m.Close()

	chemical, err := m.GetChemicalByMeSH(args[0])
	if errors.Is(err, database.ErrNotFound) {
		chemical, err = m.GetChemicalByCAS(args[0])
	}
	if err != nil {
		printError("Chemical %q: %v", args[0], err)
		return err
	}

	if entityJSON {
		return json.NewEncoder(os.Stdout).Encode(chemical)
	}

	printInfo("%s  %s", colorize(colorBold, chemical.ChemicalID), chemical.ChemicalName)
	if chemical.CasRN != "" {
		printInfo("  CAS RN:     %s", chemical.CasRN)
	}
	if chemical.Definition != "" {
		printInfo("  Definition: %s", chemical.Definition)
	}
	if chemical.Synonyms != "" {
		printInfo("  Synonyms:   %s", chemical.Synonyms)
	}
	return nil
}

func runChemicalsList(cmd *cobra.Command, args []string) error {
	m, _, err := openManager()
	if err != nil {
		printError("%v", err)
		return err
	}
	defer m.Close()

	chemicals, err := m.ListChemicals(listLimit, listOffset)
	if err != nil {
		printError("%v", err)
		return err
	}

	if entityJSON {
		return json.NewEncoder(os.Stdout).Encode(chemicals)
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, colorize(colorBold, "CHEMICAL ID\tNAME\tCAS RN"))
	for _, c := range chemicals {
		fmt.Fprintf(w, "%s\t%s\t%s\n", c.ChemicalID, c.ChemicalName, c.CasRN)
	}
	return w.Flush()
}

func runDiseasesGet(cmd *cobra.Command, args []string) error {
	m, _, err := openManager()
	if err != nil {
		printError("%v", err)
		return err
	}
	defer m.Close()

	disease, err := m.GetDiseaseByID(args[0])
	if err != nil {
		printError("Disease %q: %v", args[0], err)
		return err
	}

	if entityJSON {
		return json.NewEncoder(os.Stdout).Encode(disease)
	}

	printInfo("%s  %s", colorize(colorBold, disease.DiseaseID), disease.DiseaseName)
	if disease.AltDiseaseIDs != "" {
		printInfo("  Alt IDs:    %s", disease.AltDiseaseIDs)
	}
	if disease.Definition != "" {
		printInfo("  Definition: %s", disease.Definition)
	}
	if disease.Synonyms != "" {
		printInfo("  Synonyms:   %s", disease.Synonyms)
	}
	return nil
}

func runDiseasesList(cmd *cobra.Command, args []string) error {
	m, _, err := openManager()
	if err != nil {
		printError("%v", err)
		return err
	}
	defer m.Close()

	diseases, err := m.ListDiseases(listLimit, listOffset)
	if err != nil {
		printError("%v", err)
		return err
	}

	if entityJSON {
		return json.NewEncoder(os.Stdout).Encode(diseases)
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, colorize(colorBold, "DISEASE ID\tNAME"))
	for _, d := range diseases {
		fmt.Fprintf(w, "%s\t%s\n", d.DiseaseID, d.DiseaseName)
	}
	return w.Flush()
}

func runGenesGet(cmd *cobra.Command, args []string) error {
	m, _, err := openManager()
	if err != nil {
		printError("%v", err)
		return err
	}
	defer m.Close()

	var gene *database.Gene
	if geneID, convErr := strconv.ParseInt(args[0], 10, 64); convErr == nil {
		gene, err = m.GetGeneByEntrezID(geneID)
	} else {
		gene, err = m.GetGeneBySymbol(args[0])
	}
	if err != nil {
		printError("Gene %q: %v", args[0], err)
		return err
	}

	if entityJSON {
		return json.NewEncoder(os.Stdout).Encode(gene)
	}

	printInfo("%s  %s", colorize(colorBold, gene.GeneSymbol), gene.GeneName)
	printInfo("  Entrez ID:  %d", gene.GeneID)
	if gene.Synonyms != "" {
		printInfo("  Synonyms:   %s", gene.Synonyms)
	}
	if gene.UniProtIDs != "" {
		printInfo("  UniProt:    %s", gene.UniProtIDs)
	}
	return nil
}

func runGenesList(cmd *cobra.Command, args []string) error {
	m, _, err := openManager()
	if err != nil {
		printError("%v", err)
		return err
	}
	defer m.Close()

	genes, err := m.ListGenes(listLimit, listOffset)
	if err != nil {
		printError("%v", err)
		return err
	}

	if entityJSON {
		return json.NewEncoder(os.Stdout).Encode(genes)
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, colorize(colorBold, "GENE ID\tSYMBOL\tNAME"))
	for _, g := range genes {
		fmt.Fprintf(w, "%d\t%s\t%s\n", g.GeneID, g.GeneSymbol, g.GeneName)
	}
	return w.Flush()
}
