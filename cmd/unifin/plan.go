package main

import (
	"fmt"
	"os"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/pdiddy/unifin/internal/coordinator"
	"github.com/pdiddy/unifin/pkg/types"
)

var planCmd = &cobra.Command{
	Use:   "plan",
	Short: "Show the next batch of search queries",
	Long: `Plan computes the gap analysis and prints the search tasks the next
run would execute, without touching the network. Universities with the
fewest records come first; within a university, the newest missing
years. Planning is deterministic, so this is exactly what run will do.`,
	RunE: runPlan,
}

func init() {
	rootCmd.AddCommand(planCmd)
}

func runPlan(cmd *cobra.Command, args []string) error {
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

	tasks, err := coord.Plan(cmd.Context())
	if err != nil {
		return err
	}
	if len(tasks) == 0 {
		fmt.Println("Nothing to do: every inventoried university is fully covered.")
		return nil
	}

	t := table.NewWriter()
	t.SetOutputMirror(os.Stdout)
	t.SetStyle(table.StyleLight)
	t.AppendHeader(table.Row{"#", "University", "Year", "Query"})

	for _, task := range tasks {
		year := "bootstrap"
		if task.Year != types.YearUnknown {
			year = types.FYLabel(task.Year)
		}
		t.AppendRow(table.Row{task.Priority + 1, task.University, year, task.Query})
	}
	t.Render()

	fmt.Printf("\n%d tasks planned\n", len(tasks))
	return nil
}
