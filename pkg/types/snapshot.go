// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "time"

// CoverageSummary is the per-university portion of a progress snapshot.
type CoverageSummary struct {
	// Years lists the ending years with an acquired document, ascending.
	Years []int `json:"years" yaml:"years"`

	// MinYear and MaxYear bound the known series (zero when empty).
	MinYear int `json:"min_year" yaml:"min_year"`
	MaxYear int `json:"max_year" yaml:"max_year"`

	// Records counts document-bearing rows, including unknown-year ones.
	Records int `json:"records" yaml:"records"`
}

// Snapshot is the persisted outcome of one planning/execution cycle.
// Snapshots are append-only and exist for human inspection and resumption
// sanity-checks; the next cycle always re-derives state from the record
// store, never from a snapshot. The format is forward-compatible: fields
// are only ever added, never renamed or removed.
type Snapshot struct {
	// RunID uniquely identifies the run that produced this snapshot.
	RunID string `json:"run_id" yaml:"run_id"`

	// Timestamp is when the snapshot was written.
	Timestamp time.Time `json:"timestamp" yaml:"timestamp"`

	// Iteration is a monotonic cycle counter across snapshots.
	Iteration int `json:"iteration" yaml:"iteration"`

	// Universities maps canonical name to its coverage at snapshot time.
	Universities map[string]CoverageSummary `json:"universities" yaml:"universities"`

	// Missing maps canonical name to outstanding gap years, newest first.
	Missing map[string][]int `json:"missing" yaml:"missing"`

	// PlannedTasks counts the search tasks emitted this cycle.
	PlannedTasks int `json:"planned_tasks" yaml:"planned_tasks"`

	// Downloaded and Extracted count documents acquired and texts
	// produced during the cycle (zero for dry runs).
	Downloaded int `json:"downloaded" yaml:"downloaded"`
	Extracted  int `json:"extracted" yaml:"extracted"`
}
