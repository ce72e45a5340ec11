// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package gaps computes which financial years are missing for each
// university, relative to a bounded coverage window. The analysis is a
// pure set difference over the inventory; running it twice over the
// same inventory yields the same gaps.
package gaps

import (
	"sort"
	"time"

	"github.com/pdiddy/unifin/internal/identity"
	"github.com/pdiddy/unifin/internal/inventory"
	"github.com/pdiddy/unifin/pkg/types"
)

// Window is the closed interval of ending years under evaluation.
type Window struct {
	First int
	Last  int
}

// NewWindow resolves a window configuration against a reference year.
// A zero reference year means the current calendar year.
func NewWindow(cfg types.WindowConfig) Window {
	ref := cfg.ReferenceYear
	if ref == 0 {
		ref = time.Now().Year()
	}
	return Window{First: ref - cfg.LookbackYears, Last: ref + cfg.LookaheadYears}
}

// Contains reports whether the year falls inside the window.
func (w Window) Contains(year int) bool {
	return year >= w.First && year <= w.Last
}

// Years lists every year in the window, ascending.
func (w Window) Years() []int {
	if w.Last < w.First {
		return nil
	}
	out := make([]int, 0, w.Last-w.First+1)
	for y := w.First; y <= w.Last; y++ {
		out = append(out, y)
	}
	return out
}

// GapSet maps each inventoried university to its missing years inside
// the window, newest first. A university with complete coverage is
// present with an explicitly empty slice; absence from the set means
// the university was not in the inventory at all.
type GapSet struct {
	byUniversity map[string][]int
}

// Missing returns the missing years for a university, newest first.
// The second return value distinguishes complete coverage (present,
// empty) from a university the analysis never saw.
func (g *GapSet) Missing(university string) ([]int, bool) {
	years, ok := g.byUniversity[university]
	return years, ok
}

// Complete reports whether the university is fully covered in-window.
func (g *GapSet) Complete(university string) bool {
	years, ok := g.byUniversity[university]
	return ok && len(years) == 0
}

// Universities returns every analyzed canonical name, sorted.
func (g *GapSet) Universities() []string {
	out := make([]string, 0, len(g.byUniversity))
	for name := range g.byUniversity {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}

// Total counts missing years across all universities.
func (g *GapSet) Total() int {
	n := 0
	for _, years := range g.byUniversity {
		n += len(years)
	}
	return n
}

// AsMap renders the gap set in snapshot form. The returned map is a
// copy; mutating it does not affect the set.
func (g *GapSet) AsMap() map[string][]int {
	out := make(map[string][]int, len(g.byUniversity))
	for name, years := range g.byUniversity {
		cp := make([]int, len(years))
		copy(cp, years)
		out[name] = cp
	}
	return out
}

// Compute returns the in-window years each inventoried university is
// missing, newest first. Unknown-year documents satisfy nothing: only a
// record with a known year closes that year's gap. As documents are
// acquired the set can only shrink, never grow, for a fixed window.
func Compute(inv *inventory.Inventory, w Window) *GapSet {
	g := &GapSet{byUniversity: make(map[string][]int)}
	for _, c := range inv.All() {
		missing := []int{}
		for y := w.Last; y >= w.First; y-- {
			if !c.HasYear(y) {
				missing = append(missing, y)
			}
		}
		g.byUniversity[c.University] = missing
	}
	return g
}

// Bootstrap returns reference-table universities with no records at
// all, sorted by name. These need a first acquisition rather than gap
// filling: with no known series there is no year to target.
func Bootstrap(norm *identity.Normalizer, inv *inventory.Inventory) []string {
	var out []string
	for _, u := range norm.Universities() {
		if _, ok := inv.Get(u.Name); !ok {
			out = append(out, u.Name)
		}
	}
	return out
}
