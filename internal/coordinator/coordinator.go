// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package coordinator drives one collection cycle end to end:
// inventory, gap analysis, planning, acquisition, extraction,
// recording, snapshot. Phases are strict: every download finishes
// before the first extraction starts, and the record store is only
// written from results, so a crash at any point leaves a state the
// next cycle re-derives cleanly.
package coordinator

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/pdiddy/unifin/internal/extractor"
	"github.com/pdiddy/unifin/internal/fetcher"
	"github.com/pdiddy/unifin/internal/gaps"
	"github.com/pdiddy/unifin/internal/identity"
	"github.com/pdiddy/unifin/internal/inventory"
	"github.com/pdiddy/unifin/internal/planner"
	"github.com/pdiddy/unifin/internal/progress"
	"github.com/pdiddy/unifin/internal/tracker"
	"github.com/pdiddy/unifin/pkg/types"
)

const (
	defaultLookbackYears  = 5
	defaultLookaheadYears = 2
	defaultWorkers        = 3
	defaultDownloadDir    = "downloads"
)

// Coordinator wires the core stages to their collaborators.
type Coordinator struct {
	norm     *identity.Normalizer
	store    *tracker.Store
	fetch    fetcher.Fetcher
	extract  extractor.Extractor
	progress *progress.Tracker
	cfg      types.PipelineConfig
	log      *zap.Logger
}

// New returns a Coordinator, applying defaults to any zero config
// field.
func New(
	norm *identity.Normalizer,
	store *tracker.Store,
	fetch fetcher.Fetcher,
	extract extractor.Extractor,
	prog *progress.Tracker,
	cfg types.PipelineConfig,
	log *zap.Logger,
) *Coordinator {
	if cfg.Window == (types.WindowConfig{}) {
		cfg.Window.LookbackYears = defaultLookbackYears
		cfg.Window.LookaheadYears = defaultLookaheadYears
	}
	if cfg.Fetch.Workers <= 0 {
		cfg.Fetch.Workers = defaultWorkers
	}
	if cfg.Fetch.DownloadDir == "" {
		cfg.Fetch.DownloadDir = defaultDownloadDir
	}
	return &Coordinator{
		norm:     norm,
		store:    store,
		fetch:    fetch,
		extract:  extract,
		progress: prog,
		cfg:      cfg,
		log:      log,
	}
}

// BuildInventory derives coverage from the record store, the single
// source of truth.
func (c *Coordinator) BuildInventory(ctx context.Context) (*inventory.Inventory, error) {
	records, err := c.store.All(ctx)
	if err != nil {
		return nil, err
	}
	return inventory.NewBuilder(c.norm, c.log).FromRecords(records), nil
}

// Analyze builds the inventory and computes the gap set over the
// configured window.
func (c *Coordinator) Analyze(ctx context.Context) (*inventory.Inventory, *gaps.GapSet, error) {
	inv, err := c.BuildInventory(ctx)
	if err != nil {
		return nil, nil, err
	}
	return inv, gaps.Compute(inv, gaps.NewWindow(c.cfg.Window)), nil
}

// Plan emits the next batch of tasks. Gap filling comes first;
// bootstrap tasks for never-seen universities fill whatever batch
// slots the gap tasks leave free.
func (c *Coordinator) Plan(ctx context.Context) ([]types.SearchTask, error) {
	inv, gapSet, err := c.Analyze(ctx)
	if err != nil {
		return nil, err
	}
	return c.plan(inv, gapSet), nil
}

func (c *Coordinator) plan(inv *inventory.Inventory, gapSet *gaps.GapSet) []types.SearchTask {
	tasks := planner.Plan(inv, gapSet, c.norm, c.cfg.Batch)

	perBatch := c.cfg.Batch.UniversitiesPerBatch
	if perBatch <= 0 {
		perBatch = 5
	}
	used := make(map[string]bool)
	for _, t := range tasks {
		used[t.University] = true
	}
	if free := perBatch - len(used); free > 0 {
		boot := planner.PlanBootstrap(gaps.Bootstrap(c.norm, inv), c.norm, free)
		for _, t := range boot {
			t.Priority = len(tasks)
			tasks = append(tasks, t)
		}
	}
	return tasks
}

// taskOutcome pairs a task with what the fetcher produced for it.
type taskOutcome struct {
	task    types.SearchTask
	results []fetcher.Result
}

// Run executes one full cycle and returns its snapshot. With dryRun
// set it stops after planning: nothing is downloaded, recorded, or
// persisted, and the returned snapshot reports what would be done.
func (c *Coordinator) Run(ctx context.Context, dryRun bool) (*types.Snapshot, error) {
	inv, gapSet, err := c.Analyze(ctx)
	if err != nil {
		return nil, err
	}
	tasks := c.plan(inv, gapSet)

	c.log.Info("cycle planned",
		zap.Int("universities", len(gapSet.Universities())),
		zap.Int("missing_years", gapSet.Total()),
		zap.Int("tasks", len(tasks)),
		zap.Bool("dry_run", dryRun))

	if dryRun {
		snap := c.buildSnapshot(inv, gapSet, len(tasks), 0, 0)
		return &snap, nil
	}

	// Placeholders mark every targeted gap before any network work, so
	// an operator can see in-flight targets even if the run dies.
	for _, task := range tasks {
		if task.Bootstrap {
			continue
		}
		if err := c.store.AddPlaceholder(ctx, task.University, task.Year); err != nil {
			return nil, err
		}
	}

	outcomes, err := c.downloadAll(ctx, tasks)
	if err != nil {
		return nil, err
	}

	downloaded, extracted, err := c.extractAndRecord(ctx, outcomes)
	if err != nil {
		return nil, err
	}

	// Re-derive coverage from the store now that results are in.
	inv, gapSet, err = c.Analyze(ctx)
	if err != nil {
		return nil, err
	}

	snap := c.buildSnapshot(inv, gapSet, len(tasks), downloaded, extracted)
	if _, err := c.progress.Record(snap); err != nil {
		return nil, err
	}
	return &snap, nil
}

// downloadAll runs the fetch phase for every task with a bounded
// worker pool. A task that fails to fetch is logged and yields no
// results; one unreachable site must not sink the whole cycle.
func (c *Coordinator) downloadAll(ctx context.Context, tasks []types.SearchTask) ([]taskOutcome, error) {
	outcomes := make([]taskOutcome, len(tasks))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(c.cfg.Fetch.Workers)

	for i, task := range tasks {
		i, task := i, task
		outcomes[i].task = task
		g.Go(func() error {
			results, err := c.fetch.Fetch(gctx, task, c.cfg.Fetch.DownloadDir)
			if err != nil {
				if gctx.Err() != nil {
					return gctx.Err()
				}
				c.log.Warn("fetch failed",
					zap.String("university", task.University),
					zap.Int("year", task.Year),
					zap.Error(err))
				return nil
			}
			outcomes[i].results = results
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return outcomes, nil
}

// extractAndRecord runs the extraction phase over every downloaded
// document, then records results in the store. Extraction failures
// leave the download recorded with no text path.
func (c *Coordinator) extractAndRecord(ctx context.Context, outcomes []taskOutcome) (downloaded, extracted int, err error) {
	for _, o := range outcomes {
		for _, r := range o.results {
			if !r.Skipped {
				downloaded++
			}

			textPath := ""
			ext, extErr := c.extract.Extract(ctx, r.LocalPath)
			if extErr != nil {
				if ctx.Err() != nil {
					return downloaded, extracted, ctx.Err()
				}
				c.log.Warn("extraction failed",
					zap.String("pdf", r.LocalPath),
					zap.Error(extErr))
			} else {
				textPath = ext.TextPath
				if !ext.Skipped {
					extracted++
				}
			}

			year := o.task.Year
			if year == types.YearUnknown {
				year = r.Year
			}
			acquiredAt := r.RetrievedAt
			if acquiredAt.IsZero() {
				acquiredAt = time.Now().UTC()
			}

			rec := types.Record{
				University: o.task.University,
				Year:       year,
				SourceURL:  r.SourceURL,
				PDFPath:    r.LocalPath,
				TextPath:   textPath,
				AcquiredAt: acquiredAt,
			}
			if err := c.store.Upsert(ctx, rec); err != nil {
				return downloaded, extracted, err
			}
		}
	}
	return downloaded, extracted, nil
}

func (c *Coordinator) buildSnapshot(inv *inventory.Inventory, gapSet *gaps.GapSet, planned, downloaded, extracted int) types.Snapshot {
	iteration := 1
	if prev, err := c.progress.LoadLatest(); err == nil && prev != nil {
		iteration = prev.Iteration + 1
	}

	return types.Snapshot{
		RunID:        uuid.NewString(),
		Timestamp:    time.Now().UTC(),
		Iteration:    iteration,
		Universities: inv.Summary(),
		Missing:      gapSet.AsMap(),
		PlannedTasks: planned,
		Downloaded:   downloaded,
		Extracted:    extracted,
	}
}
