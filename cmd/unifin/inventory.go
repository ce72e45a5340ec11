package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/pdiddy/unifin/internal/coordinator"
	"github.com/pdiddy/unifin/pkg/types"
)

var inventoryCmd = &cobra.Command{
	Use:   "inventory",
	Short: "Show acquired coverage per university",
	Long: `Inventory reads the record store and prints, per university, which
financial years have an acquired document. Placeholder rows (targeted
but not yet downloaded) are not counted as coverage.`,
	RunE: runInventory,
}

func init() {
	rootCmd.AddCommand(inventoryCmd)
}

func runInventory(cmd *cobra.Command, args []string) error {
	cfg, err := loadPipelineConfig()
	if err != nil {
		return err
	}
	store, err := openStore(cfg)
	if err != nil {
		return err
	}
	defer store.Close()

	norm, fetch, extract, prog := buildPipeline(cfg)
	coord := coordinator.New(norm, store, fetch, extract, prog, cfg, logger)

	inv, err := coord.BuildInventory(cmd.Context())
	if err != nil {
		return err
	}

	t := table.NewWriter()
	t.SetOutputMirror(os.Stdout)
	t.SetStyle(table.StyleLight)
	t.AppendHeader(table.Row{"University", "Years", "Unknown", "Records"})

	totalRecords := 0
	for _, c := range inv.All() {
		t.AppendRow(table.Row{c.University, yearList(c.Years), c.Unknown, c.Records})
		totalRecords += c.Records
	}
	t.AppendFooter(table.Row{"Total", "", "", totalRecords})
	t.Render()

	fmt.Printf("\n%d universities with records\n", len(inv.Universities()))
	return nil
}

func yearList(years []int) string {
	if len(years) == 0 {
		return "-"
	}
	labels := make([]string, len(years))
	for i, y := range years {
		labels[i] = types.FYLabel(y)
	}
	return strings.Join(labels, ", ")
}
