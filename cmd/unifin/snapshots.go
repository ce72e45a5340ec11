package main

import (
	"errors"
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/pdiddy/unifin/internal/progress"
)

var snapshotsCmd = &cobra.Command{
	Use:   "snapshots",
	Short: "List recorded cycle snapshots",
	Long: `Snapshots lists the append-only progress snapshots and summarizes the
latest one. Snapshots are informational: the next cycle always
re-derives its state from the record store.`,
	RunE: runSnapshots,
}

func init() {
	rootCmd.AddCommand(snapshotsCmd)
}

func runSnapshots(cmd *cobra.Command, args []string) error {
	cfg, err := loadPipelineConfig()
	if err != nil {
		return err
	}

	tr := progress.NewTracker(cfg.Snapshots.Dir, logger)

	paths, err := tr.List()
	if err != nil {
		return err
	}
	if len(paths) == 0 {
		fmt.Println("No snapshots recorded yet.")
		return nil
	}

	for _, p := range paths {
		fmt.Println(filepath.Base(p))
	}

	snap, err := tr.LoadLatest()
	if errors.Is(err, progress.ErrCorruptSnapshot) {
		fmt.Println("\nLatest snapshot is unreadable; the next run is unaffected.")
		return nil
	}
	if err != nil {
		return err
	}
	if snap != nil {
		fmt.Printf("\nLatest: cycle %d at %s: %d tasks planned, %d downloaded, %d extracted\n",
			snap.Iteration, snap.Timestamp.Format("2006-01-02 15:04:05"),
			snap.PlannedTasks, snap.Downloaded, snap.Extracted)
	}
	return nil
}
