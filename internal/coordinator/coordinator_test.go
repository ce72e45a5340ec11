// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package coordinator

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/pdiddy/unifin/internal/extractor"
	"github.com/pdiddy/unifin/internal/fetcher"
	"github.com/pdiddy/unifin/internal/identity"
	"github.com/pdiddy/unifin/internal/progress"
	"github.com/pdiddy/unifin/internal/tracker"
	"github.com/pdiddy/unifin/pkg/types"
)

// fakeFetcher returns one document per task and logs call order.
type fakeFetcher struct {
	mu    sync.Mutex
	tasks []types.SearchTask
	log   *eventLog
}

func (f *fakeFetcher) Fetch(_ context.Context, task types.SearchTask, outDir string) ([]fetcher.Result, error) {
	f.mu.Lock()
	f.tasks = append(f.tasks, task)
	f.mu.Unlock()
	if f.log != nil {
		f.log.add("fetch")
	}

	year := task.Year
	if year == types.YearUnknown {
		year = 2023
	}
	name := strings.ReplaceAll(task.University, " ", "_")
	return []fetcher.Result{{
		LocalPath:   filepath.Join(outDir, fmt.Sprintf("%s_%d.pdf", name, year)),
		SourceURL:   fmt.Sprintf("https://example.ac.uk/%s_%d.pdf", name, year),
		Year:        year,
		RetrievedAt: time.Now().UTC(),
	}}, nil
}

// fakeExtractor pretends every PDF extracts to a two-page text file.
type fakeExtractor struct {
	log *eventLog
}

func (f *fakeExtractor) Extract(_ context.Context, pdfPath string) (extractor.Extraction, error) {
	if f.log != nil {
		f.log.add("extract")
	}
	return extractor.Extraction{
		TextPath: strings.TrimSuffix(pdfPath, ".pdf") + ".txt",
		Pages:    2,
	}, nil
}

type eventLog struct {
	mu     sync.Mutex
	events []string
}

func (l *eventLog) add(e string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.events = append(l.events, e)
}

type fixture struct {
	coord *Coordinator
	store *tracker.Store
	fetch *fakeFetcher
	prog  *progress.Tracker
}

func newFixture(t *testing.T, cfg types.PipelineConfig, log *eventLog) *fixture {
	t.Helper()

	store, err := tracker.Open(filepath.Join(t.TempDir(), "tracker.db"))
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })

	cfg.Fetch.DownloadDir = t.TempDir()
	// One worker makes fetch order deterministic for assertions.
	cfg.Fetch.Workers = 1
	prog := progress.NewTracker(t.TempDir(), zap.NewNop())
	fetch := &fakeFetcher{log: log}

	coord := New(identity.New(), store, fetch, &fakeExtractor{log: log}, prog, cfg, zap.NewNop())
	return &fixture{coord: coord, store: store, fetch: fetch, prog: prog}
}

func seedRecords(t *testing.T, store *tracker.Store, university string, years ...int) {
	t.Helper()
	for _, y := range years {
		require.NoError(t, store.Upsert(context.Background(), types.Record{
			University: university,
			Year:       y,
			PDFPath:    fmt.Sprintf("%s_%d.pdf", university, y),
		}))
	}
}

func TestRunFullCycle(t *testing.T) {
	cfg := types.PipelineConfig{
		Window: types.WindowConfig{LookbackYears: 2, LookaheadYears: 1, ReferenceYear: 2023},
		Batch:  types.BatchConfig{UniversitiesPerBatch: 1, YearsPerUniversity: 2},
	}
	fx := newFixture(t, cfg, nil)
	ctx := context.Background()

	// Window is [2021, 2024]; Cambridge holds 2022 and 2023, missing
	// 2024 and 2021, newest first, both inside the per-university cap.
	seedRecords(t, fx.store, "University of Cambridge", 2022, 2023)

	snap, err := fx.coord.Run(ctx, false)
	require.NoError(t, err)

	require.Len(t, fx.fetch.tasks, 2)
	assert.Equal(t, 2024, fx.fetch.tasks[0].Year)
	assert.Equal(t, 2021, fx.fetch.tasks[1].Year)

	// Both gaps were filled and recorded.
	rec, ok, err := fx.store.Get(ctx, "University of Cambridge", 2024)
	require.NoError(t, err)
	require.True(t, ok)
	assert.True(t, rec.HasDocument())
	assert.NotEmpty(t, rec.TextPath)

	assert.Equal(t, 2, snap.PlannedTasks)
	assert.Equal(t, 2, snap.Downloaded)
	assert.Equal(t, 2, snap.Extracted)
	assert.Empty(t, snap.Missing["University of Cambridge"])

	// The cycle persisted exactly one snapshot.
	paths, err := fx.prog.List()
	require.NoError(t, err)
	assert.Len(t, paths, 1)
}

func TestRunDryRun(t *testing.T) {
	cfg := types.PipelineConfig{
		Window: types.WindowConfig{LookbackYears: 2, LookaheadYears: 0, ReferenceYear: 2023},
		Batch:  types.BatchConfig{UniversitiesPerBatch: 1, YearsPerUniversity: 3},
	}
	fx := newFixture(t, cfg, nil)
	ctx := context.Background()

	seedRecords(t, fx.store, "Cardiff University", 2023)

	before, err := fx.store.Count(ctx)
	require.NoError(t, err)

	snap, err := fx.coord.Run(ctx, true)
	require.NoError(t, err)
	assert.Equal(t, 2, snap.PlannedTasks)
	assert.Zero(t, snap.Downloaded)
	assert.Zero(t, snap.Extracted)

	// Nothing fetched, nothing recorded, nothing persisted.
	assert.Empty(t, fx.fetch.tasks)
	after, err := fx.store.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, before, after)
	paths, err := fx.prog.List()
	require.NoError(t, err)
	assert.Empty(t, paths)
}

func TestRunDownloadsBeforeExtractions(t *testing.T) {
	log := &eventLog{}
	cfg := types.PipelineConfig{
		Window: types.WindowConfig{LookbackYears: 3, LookaheadYears: 0, ReferenceYear: 2023},
		Batch:  types.BatchConfig{UniversitiesPerBatch: 3, YearsPerUniversity: 2},
	}
	fx := newFixture(t, cfg, log)
	ctx := context.Background()

	seedRecords(t, fx.store, "Bangor University", 2023)
	seedRecords(t, fx.store, "Cardiff University", 2023)
	seedRecords(t, fx.store, "Swansea University", 2023)

	_, err := fx.coord.Run(ctx, false)
	require.NoError(t, err)

	var sawExtract bool
	for _, e := range log.events {
		if e == "extract" {
			sawExtract = true
		}
		if e == "fetch" {
			assert.False(t, sawExtract, "fetch after first extract: %v", log.events)
		}
	}
	assert.True(t, sawExtract)
}

func TestRunBootstrapsEmptyStore(t *testing.T) {
	cfg := types.PipelineConfig{
		Window: types.WindowConfig{LookbackYears: 2, LookaheadYears: 0, ReferenceYear: 2023},
		Batch:  types.BatchConfig{UniversitiesPerBatch: 2, YearsPerUniversity: 2},
	}
	fx := newFixture(t, cfg, nil)
	ctx := context.Background()

	snap, err := fx.coord.Run(ctx, false)
	require.NoError(t, err)

	require.Len(t, fx.fetch.tasks, 2)
	for _, task := range fx.fetch.tasks {
		assert.True(t, task.Bootstrap)
		assert.Equal(t, types.YearUnknown, task.Year)
	}
	// Bootstrap results carry the year inferred by the fetcher.
	rec, ok, err := fx.store.Get(ctx, fx.fetch.tasks[0].University, 2023)
	require.NoError(t, err)
	require.True(t, ok)
	assert.True(t, rec.HasDocument())
	assert.Equal(t, 2, snap.Downloaded)
}

func TestRunIterationIncrements(t *testing.T) {
	cfg := types.PipelineConfig{
		Window: types.WindowConfig{LookbackYears: 1, LookaheadYears: 0, ReferenceYear: 2023},
		Batch:  types.BatchConfig{UniversitiesPerBatch: 1, YearsPerUniversity: 1},
	}
	fx := newFixture(t, cfg, nil)
	ctx := context.Background()

	first, err := fx.coord.Run(ctx, false)
	require.NoError(t, err)
	assert.Equal(t, 1, first.Iteration)

	second, err := fx.coord.Run(ctx, false)
	require.NoError(t, err)
	assert.Equal(t, 2, second.Iteration)
}

func TestAnalyzeLeavesPlaceholdersOpen(t *testing.T) {
	cfg := types.PipelineConfig{
		Window: types.WindowConfig{LookbackYears: 2, LookaheadYears: 0, ReferenceYear: 2023},
	}
	fx := newFixture(t, cfg, nil)
	ctx := context.Background()

	seedRecords(t, fx.store, "Ulster University", 2023)
	require.NoError(t, fx.store.AddPlaceholder(ctx, "Ulster University", 2022))

	_, gapSet, err := fx.coord.Analyze(ctx)
	require.NoError(t, err)

	missing, ok := gapSet.Missing("Ulster University")
	require.True(t, ok)
	assert.Contains(t, missing, 2022)
}
