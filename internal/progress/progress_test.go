// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package progress

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/pdiddy/unifin/pkg/types"
)

func newTestTracker(t *testing.T) *Tracker {
	t.Helper()
	return NewTracker(t.TempDir(), zap.NewNop())
}

func testSnapshot(runID string, iteration int) types.Snapshot {
	return types.Snapshot{
		RunID:     runID,
		Timestamp: time.Date(2026, 8, 24, 10, 0, 0, 0, time.UTC),
		Iteration: iteration,
		Universities: map[string]types.CoverageSummary{
			"University of Cambridge": {Years: []int{2022, 2023}, MinYear: 2022, MaxYear: 2023, Records: 2},
		},
		Missing:      map[string][]int{"University of Cambridge": {2024}},
		PlannedTasks: 1,
	}
}

func TestRecordAndLoadLatest(t *testing.T) {
	tr := newTestTracker(t)

	path, err := tr.Record(testSnapshot("run-1", 1))
	require.NoError(t, err)
	assert.FileExists(t, path)

	snap, err := tr.LoadLatest()
	require.NoError(t, err)
	require.NotNil(t, snap)
	assert.Equal(t, "run-1", snap.RunID)
	assert.Equal(t, []int{2024}, snap.Missing["University of Cambridge"])
}

func TestRecordNeverOverwrites(t *testing.T) {
	tr := newTestTracker(t)

	// Identical timestamps collide on filename; each write must still
	// land in its own file.
	p1, err := tr.Record(testSnapshot("run-1", 1))
	require.NoError(t, err)
	p2, err := tr.Record(testSnapshot("run-2", 2))
	require.NoError(t, err)
	assert.NotEqual(t, p1, p2)

	paths, err := tr.List()
	require.NoError(t, err)
	assert.Len(t, paths, 2)

	snap, err := tr.LoadLatest()
	require.NoError(t, err)
	assert.Equal(t, "run-2", snap.RunID)
}

func TestLoadLatestEmptyDir(t *testing.T) {
	tr := newTestTracker(t)

	snap, err := tr.LoadLatest()
	require.NoError(t, err)
	assert.Nil(t, snap)
}

func TestLoadLatestMissingDir(t *testing.T) {
	tr := NewTracker(filepath.Join(t.TempDir(), "nope"), zap.NewNop())

	snap, err := tr.LoadLatest()
	require.NoError(t, err)
	assert.Nil(t, snap)
}

func TestLoadLatestSkipsCorrupt(t *testing.T) {
	dir := t.TempDir()
	tr := NewTracker(dir, zap.NewNop())

	_, err := tr.Record(testSnapshot("run-1", 1))
	require.NoError(t, err)

	// A later, corrupt snapshot must not mask the readable one.
	corrupt := filepath.Join(dir, "progress_20991231T235959Z.yaml")
	require.NoError(t, os.WriteFile(corrupt, []byte("{not yaml"), 0o644))

	snap, err := tr.LoadLatest()
	require.NoError(t, err)
	require.NotNil(t, snap)
	assert.Equal(t, "run-1", snap.RunID)
}

func TestLoadLatestAllCorrupt(t *testing.T) {
	dir := t.TempDir()
	tr := NewTracker(dir, zap.NewNop())

	corrupt := filepath.Join(dir, "progress_20260824T100000Z.yaml")
	require.NoError(t, os.WriteFile(corrupt, []byte("{not yaml"), 0o644))

	snap, err := tr.LoadLatest()
	assert.Nil(t, snap)
	assert.True(t, errors.Is(err, ErrCorruptSnapshot))
}
