// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package inventory derives per-university coverage from the record
// store or from a directory of already-acquired document files. The
// inventory is a pure function of its inputs: building it twice over
// the same records yields identical coverage.
package inventory

import (
	"sort"

	"go.uber.org/zap"

	"github.com/pdiddy/unifin/internal/identity"
	"github.com/pdiddy/unifin/pkg/types"
)

// Coverage is the acquired-document coverage of one university.
type Coverage struct {
	// University is the canonical institution name.
	University string

	// Years are the distinct known ending years with an acquired
	// document, ascending.
	Years []int

	// Unknown counts acquired documents whose year could not be
	// determined. They count toward Records but never satisfy a gap.
	Unknown int

	// Records is the total number of acquired documents.
	Records int
}

// HasYear reports whether the university has a document for the year.
func (c Coverage) HasYear(year int) bool {
	i := sort.SearchInts(c.Years, year)
	return i < len(c.Years) && c.Years[i] == year
}

// Inventory holds coverage for every university observed in the input.
type Inventory struct {
	byUniversity map[string]Coverage
}

// Get returns the coverage for a canonical university name.
func (inv *Inventory) Get(university string) (Coverage, bool) {
	c, ok := inv.byUniversity[university]
	return c, ok
}

// Universities returns every covered canonical name, sorted.
func (inv *Inventory) Universities() []string {
	out := make([]string, 0, len(inv.byUniversity))
	for name := range inv.byUniversity {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}

// All returns every coverage entry sorted by university name.
func (inv *Inventory) All() []Coverage {
	out := make([]Coverage, 0, len(inv.byUniversity))
	for _, name := range inv.Universities() {
		out = append(out, inv.byUniversity[name])
	}
	return out
}

// Summary renders the inventory in snapshot form.
func (inv *Inventory) Summary() map[string]types.CoverageSummary {
	out := make(map[string]types.CoverageSummary, len(inv.byUniversity))
	for name, c := range inv.byUniversity {
		s := types.CoverageSummary{Years: c.Years, Records: c.Records}
		if len(c.Years) > 0 {
			s.MinYear = c.Years[0]
			s.MaxYear = c.Years[len(c.Years)-1]
		}
		out[name] = s
	}
	return out
}

// Builder assembles inventories, resolving raw names through the
// identity normalizer. Inputs that cannot be attributed to a canonical
// university are logged and skipped, never fatal: one bad filename must
// not abort a whole cycle.
type Builder struct {
	norm *identity.Normalizer
	log  *zap.Logger
}

// NewBuilder returns a Builder over the given normalizer.
func NewBuilder(norm *identity.Normalizer, log *zap.Logger) *Builder {
	return &Builder{norm: norm, log: log}
}

// FromRecords builds an inventory from tracker records. Placeholder
// rows (no acquired document) are excluded: a placeholder marks
// outstanding work and must keep its gap open.
func (b *Builder) FromRecords(records []types.Record) *Inventory {
	acc := newAccumulator()
	for _, r := range records {
		if !r.HasDocument() {
			continue
		}
		u, err := b.norm.Normalize(r.University)
		if err != nil {
			b.log.Warn("skipping record with unresolved university",
				zap.String("university", r.University),
				zap.Error(err))
			continue
		}
		acc.add(u.Name, r.Year)
	}
	return acc.build()
}

// FromFilenames builds an inventory from acquired document filenames.
// A filename with an ambiguous year counts as an unknown-year document
// so that the gap it might have filled stays open.
func (b *Builder) FromFilenames(paths []string) *Inventory {
	acc := newAccumulator()
	for _, p := range paths {
		switch r := ParseFilename(p).(type) {
		case Parsed:
			u, err := b.norm.Normalize(r.Name)
			if err != nil {
				b.log.Warn("skipping file with unresolved university",
					zap.String("path", p),
					zap.String("name", r.Name),
					zap.Error(err))
				continue
			}
			acc.add(u.Name, r.Year)
		case AmbiguousYear:
			u, err := b.norm.Normalize(r.Name)
			if err != nil {
				b.log.Warn("skipping file with unresolved university",
					zap.String("path", p),
					zap.String("name", r.Name),
					zap.Error(err))
				continue
			}
			b.log.Warn("ambiguous year in filename, counting as unknown",
				zap.String("path", p),
				zap.Ints("candidates", r.Candidates))
			acc.add(u.Name, types.YearUnknown)
		case Unparseable:
			b.log.Warn("unparseable filename", zap.String("path", p))
		}
	}
	return acc.build()
}

type accumulator struct {
	years   map[string]map[int]bool
	unknown map[string]int
	records map[string]int
}

func newAccumulator() *accumulator {
	return &accumulator{
		years:   make(map[string]map[int]bool),
		unknown: make(map[string]int),
		records: make(map[string]int),
	}
}

func (a *accumulator) add(university string, year int) {
	a.records[university]++
	if year == types.YearUnknown {
		a.unknown[university]++
		return
	}
	if a.years[university] == nil {
		a.years[university] = make(map[int]bool)
	}
	a.years[university][year] = true
}

func (a *accumulator) build() *Inventory {
	inv := &Inventory{byUniversity: make(map[string]Coverage, len(a.records))}
	for name, total := range a.records {
		years := make([]int, 0, len(a.years[name]))
		for y := range a.years[name] {
			years = append(years, y)
		}
		sort.Ints(years)
		inv.byUniversity[name] = Coverage{
			University: name,
			Years:      years,
			Unknown:    a.unknown[name],
			Records:    total,
		}
	}
	return inv
}
