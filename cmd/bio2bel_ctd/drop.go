package main

import (
	"github.com/spf13/cobra"
)

var dropCmd = &cobra.Command{
	Use:   "drop",
	Short: "Drop all imported CTD data",
	Long: `Drop removes every imported record and recreates the empty schema.
Cached report files are kept, so a following populate run can reuse them.`,
	RunE: runDrop,
}

func runDrop(cmd *cobra.Command, args []string) error {
	if !confirm("Drop all CTD data from the local database?") {
		printInfo("Aborted")
		return nil
	}

	m, _, err := openManager()
	if err != nil {
		printError("%v", err)
		return err
	}
	defer m.Close()

	if err := m.DropAll(); err != nil {
		printError("Drop failed: %v", err)
		return err
	}

	printSuccess("Dropped all CTD data")
	return nil
}
