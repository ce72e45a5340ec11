// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package planner turns a gap analysis into a bounded batch of search
// tasks. Planning is deterministic: the same inventory and gap set
// always produce the same tasks in the same order, so a crashed run can
// simply be re-planned.
package planner

import (
	"fmt"
	"sort"

	"github.com/pdiddy/unifin/internal/gaps"
	"github.com/pdiddy/unifin/internal/identity"
	"github.com/pdiddy/unifin/internal/inventory"
	"github.com/pdiddy/unifin/pkg/types"
)

const (
	defaultUniversitiesPerBatch = 5
	defaultYearsPerUniversity   = 3
)

// BuildQuery renders the search query for one (university, year)
// target. With a known domain the query is site-scoped; otherwise the
// quoted institution name keeps general results on topic.
func BuildQuery(u types.University, year int) string {
	label := types.FYLabel(year)
	if u.Domain != "" {
		return fmt.Sprintf("site:%s financial statements %s", u.Domain, label)
	}
	return fmt.Sprintf("%q financial statements %s %q", u.Name, label, "annual report")
}

// BuildBootstrapQuery renders the yearless first-acquisition query for
// a university with no records at all.
func BuildBootstrapQuery(u types.University) string {
	if u.Domain != "" {
		return fmt.Sprintf("site:%s annual report and financial statements", u.Domain)
	}
	return fmt.Sprintf("%q annual report and financial statements", u.Name)
}

// Plan selects the universities most in need of attention and emits
// one task per outstanding gap year, within the batch bounds.
//
// Universities with at least one missing year are ordered by how few
// records they have, fewest first, with ties broken by name so the
// order is stable. Within a university, gap years run newest first;
// recent statements are the most likely to exist and the most valuable.
func Plan(inv *inventory.Inventory, g *gaps.GapSet, norm *identity.Normalizer, cfg types.BatchConfig) []types.SearchTask {
	perBatch := cfg.UniversitiesPerBatch
	if perBatch <= 0 {
		perBatch = defaultUniversitiesPerBatch
	}
	perUniversity := cfg.YearsPerUniversity
	if perUniversity <= 0 {
		perUniversity = defaultYearsPerUniversity
	}

	var selected []string
	for _, name := range g.Universities() {
		if missing, _ := g.Missing(name); len(missing) > 0 {
			selected = append(selected, name)
		}
	}
	sort.SliceStable(selected, func(i, j int) bool {
		ci, _ := inv.Get(selected[i])
		cj, _ := inv.Get(selected[j])
		if ci.Records != cj.Records {
			return ci.Records < cj.Records
		}
		return selected[i] < selected[j]
	})
	if len(selected) > perBatch {
		selected = selected[:perBatch]
	}

	var tasks []types.SearchTask
	seen := make(map[string]bool)
	for _, name := range selected {
		u, ok := norm.Lookup(name)
		if !ok {
			continue
		}
		missing, _ := g.Missing(name)
		if len(missing) > perUniversity {
			missing = missing[:perUniversity]
		}
		for _, year := range missing {
			key := fmt.Sprintf("%s|%d", name, year)
			if seen[key] {
				continue
			}
			seen[key] = true
			tasks = append(tasks, types.SearchTask{
				University: name,
				Year:       year,
				Domain:     u.Domain,
				Query:      BuildQuery(u, year),
				Priority:   len(tasks),
			})
		}
	}
	return tasks
}

// PlanBootstrap emits first-acquisition tasks for up to limit
// universities with no records, in name order.
func PlanBootstrap(missing []string, norm *identity.Normalizer, limit int) []types.SearchTask {
	if limit <= 0 {
		limit = defaultUniversitiesPerBatch
	}
	if len(missing) > limit {
		missing = missing[:limit]
	}

	var tasks []types.SearchTask
	for _, name := range missing {
		u, ok := norm.Lookup(name)
		if !ok {
			continue
		}
		tasks = append(tasks, types.SearchTask{
			University: name,
			Year:       types.YearUnknown,
			Domain:     u.Domain,
			Query:      BuildBootstrapQuery(u),
			Priority:   len(tasks),
			Bootstrap:  true,
		})
	}
	return tasks
}
