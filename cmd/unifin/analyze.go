package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/pdiddy/unifin/internal/coordinator"
	"github.com/pdiddy/unifin/internal/gaps"
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze",
	Short: "Show missing financial years per university",
	Long: `Analyze computes the coverage window from the configuration and
prints, per inventoried university, the years inside it with no
acquired document, newest first. Universities with no records at all
are listed separately as bootstrap candidates.`,
	RunE: runAnalyze,
}

func init() {
	rootCmd.AddCommand(analyzeCmd)
}

func runAnalyze(cmd *cobra.Command, args []string) error {
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

	inv, gapSet, err := coord.Analyze(cmd.Context())
	if err != nil {
		return err
	}

	w := gaps.NewWindow(cfg.Window)
	fmt.Printf("Coverage window: %d-%d\n\n", w.First, w.Last)

	t := table.NewWriter()
	t.SetOutputMirror(os.Stdout)
	t.SetStyle(table.StyleLight)
	t.AppendHeader(table.Row{"University", "Missing years", "Count"})

	for _, name := range gapSet.Universities() {
		missing, _ := gapSet.Missing(name)
		cell := "complete"
		if len(missing) > 0 {
			parts := make([]string, len(missing))
			for i, y := range missing {
				parts[i] = fmt.Sprintf("%d", y)
			}
			cell = strings.Join(parts, ", ")
		}
		t.AppendRow(table.Row{name, cell, len(missing)})
	}
	t.AppendFooter(table.Row{"Total missing", "", gapSet.Total()})
	t.Render()

	boot := gaps.Bootstrap(norm, inv)
	fmt.Printf("\n%d universities have no records yet\n", len(boot))
	return nil
}
