package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pdiddy/unifin/internal/coordinator"
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Execute one collection cycle",
	Long: `Run executes a full cycle: gap analysis, query planning, searching and
downloading candidate documents, text extraction, and recording results
in the store. A snapshot of the cycle is appended under the snapshots
directory. With --dry-run the cycle stops after planning and reports
what would be done.`,
	RunE: runRun,
}

func init() {
	runCmd.Flags().Bool("dry-run", false, "plan only; download nothing, persist nothing")

	rootCmd.AddCommand(runCmd)
}

func runRun(cmd *cobra.Command, args []string) error {
	dryRun, _ := cmd.Flags().GetBool("dry-run")

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

	snap, err := coord.Run(cmd.Context(), dryRun)
	if err != nil {
		return err
	}

	if dryRun {
		fmt.Printf("Dry run: %d tasks planned, %d years missing across %d universities\n",
			snap.PlannedTasks, totalMissing(snap.Missing), len(snap.Missing))
		return nil
	}

	fmt.Printf("Cycle %d complete: %d tasks planned, %d documents downloaded, %d texts extracted\n",
		snap.Iteration, snap.PlannedTasks, snap.Downloaded, snap.Extracted)
	fmt.Printf("Outstanding: %d missing years across %d universities\n",
		totalMissing(snap.Missing), len(snap.Missing))
	return nil
}

func totalMissing(missing map[string][]int) int {
	n := 0
	for _, years := range missing {
		n += len(years)
	}
	return n
}
