// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "time"

// YearUnknown marks a record whose financial year could not be determined.
// Unknown-year records neither satisfy nor create a gap.
const YearUnknown = 0

// University is a canonical UK higher-education institution. Name is the
// single normalized form used as a join key across all records; every
// raw-name variant resolves to exactly one University.
type University struct {
	// Name is the official institution name, e.g. "Anglia Ruskin University".
	Name string `json:"name" yaml:"name"`

	// Country is the UK nation: England, Scotland, Wales or Northern Ireland.
	Country string `json:"country" yaml:"country"`

	// Domain is the institution's primary web domain when known
	// (e.g. "cam.ac.uk"). Used to scope search queries to the owning site.
	Domain string `json:"domain,omitempty" yaml:"domain,omitempty"`
}

// Record is one (university, financial year) observation in the tracker.
// At most one authoritative record exists per (university, year) pair in
// steady state; a row with an empty PDFPath is a placeholder (year known,
// document not yet acquired).
type Record struct {
	// University is the canonical institution name.
	University string `json:"university" yaml:"university"`

	// Year is the ending calendar year of the financial period
	// ("2022-23" reports carry Year 2023), or YearUnknown.
	Year int `json:"year" yaml:"year"`

	// SourceURL is the URL the document was downloaded from, when known.
	SourceURL string `json:"source_url,omitempty" yaml:"source_url,omitempty"`

	// PDFPath is the local path of the acquired document.
	PDFPath string `json:"pdf_path,omitempty" yaml:"pdf_path,omitempty"`

	// TextPath is the local path of the extracted plain text.
	TextPath string `json:"text_path,omitempty" yaml:"text_path,omitempty"`

	// AcquiredAt is when the document was downloaded.
	AcquiredAt time.Time `json:"acquired_at,omitempty" yaml:"acquired_at,omitempty"`
}

// HasDocument reports whether the record carries an acquired document,
// as opposed to being a placeholder for outstanding work.
func (r Record) HasDocument() bool {
	return r.PDFPath != ""
}

// SearchTask is one unit of planned acquisition work. Tasks are derived
// views over the record store: they are reconstructible at any time and
// safe to execute in any order, in parallel, and more than once.
type SearchTask struct {
	// University is the canonical institution name.
	University string `json:"university" yaml:"university"`

	// Year is the target ending year, or YearUnknown for bootstrap tasks.
	Year int `json:"year,omitempty" yaml:"year,omitempty"`

	// Domain scopes the query to the owning site when known.
	Domain string `json:"domain,omitempty" yaml:"domain,omitempty"`

	// Query is the search engine query string.
	Query string `json:"query" yaml:"query"`

	// Priority orders tasks within a batch; lower runs first. It is a
	// preference only, never a correctness requirement for callers.
	Priority int `json:"priority" yaml:"priority"`

	// Bootstrap marks a first-acquisition task for a university with no
	// records at all, as opposed to a gap in an existing series.
	Bootstrap bool `json:"bootstrap,omitempty" yaml:"bootstrap,omitempty"`
}
