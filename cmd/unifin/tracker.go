package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var importCmd = &cobra.Command{
	Use:   "import [csv-file]",
	Short: "Import a legacy tracker spreadsheet",
	Long: `Import loads rows from a legacy CSV tracker into the record store.
University names are canonicalized and year tokens ("2022-23", "2023")
normalized on the way in; rows naming unknown institutions are skipped
with a warning.`,
	Args: cobra.ExactArgs(1),
	RunE: runImport,
}

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export the record store as CSV",
	Long:  `Export writes the record store to stdout in the legacy CSV layout.`,
	RunE:  runExport,
}

func init() {
	rootCmd.AddCommand(importCmd)
	rootCmd.AddCommand(exportCmd)
}

func runImport(cmd *cobra.Command, args []string) error {
	cfg, err := loadPipelineConfig()
	if err != nil {
		return err
	}
	store, err := openStore(cfg)
	if err != nil {
		return err
	}
	defer store.Close()

	norm, _, _, _ := buildPipeline(cfg)

	summary, err := store.ImportCSV(cmd.Context(), args[0], norm, logger)
	if err != nil {
		return err
	}
	fmt.Printf("Imported %d rows, skipped %d\n", summary.Imported, summary.Skipped)
	return nil
}

func runExport(cmd *cobra.Command, args []string) error {
	cfg, err := loadPipelineConfig()
	if err != nil {
		return err
	}
	store, err := openStore(cfg)
	if err != nil {
		return err
	}
	defer store.Close()

	return store.ExportCSV(cmd.Context(), os.Stdout)
}
