// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package inventory

import (
	"path/filepath"
	"strings"

	"github.com/pdiddy/unifin/pkg/types"
)

// ParseResult is the outcome of parsing one document filename. Exactly
// one of Parsed, AmbiguousYear or Unparseable is returned; callers
// switch on the concrete type.
type ParseResult interface {
	parseResult()
}

// Parsed is a filename that yielded a university name, with the ending
// year when exactly one plausible year token was present. Name is the
// raw extracted form, not yet canonical.
type Parsed struct {
	Raw  string
	Name string
	Year int
}

// AmbiguousYear is a filename carrying a university name but more than
// one distinct plausible year token. Candidates preserves first-seen
// order. Ambiguous records never satisfy a gap.
type AmbiguousYear struct {
	Raw        string
	Name       string
	Candidates []int
}

// Unparseable is a filename from which no university name could be
// extracted.
type Unparseable struct {
	Raw string
}

func (Parsed) parseResult()        {}
func (AmbiguousYear) parseResult() {}
func (Unparseable) parseResult()   {}

// docKeywords mark the start of the document-descriptor tail of a
// filename; name extraction stops at the first segment containing one.
var docKeywords = map[string]bool{
	"annual":     true,
	"report":     true,
	"reports":    true,
	"financial":  true,
	"statement":  true,
	"statements": true,
	"accounts":   true,
	"fs":         true,
	"document":   true,
	"final":      true,
}

const (
	// maxSegmentLen: segments longer than this are descriptor blobs
	// ("annual-report-and-financial-statements"), not name words.
	maxSegmentLen = 30

	// maxNameWords caps the extracted name; tracker filenames never
	// lead with more words of institution name than this.
	maxNameWords = 4
)

// ParseFilename extracts a university name and financial year from a
// document filename such as
// "Anglia_Ruskin_University_annual-report-2022-23.txt". The name is the
// run of leading underscore-separated segments before the first year
// token or document keyword.
func ParseFilename(raw string) ParseResult {
	base := filepath.Base(raw)
	base = strings.TrimSuffix(base, filepath.Ext(base))
	if base == "" || base == "." {
		return Unparseable{Raw: raw}
	}

	var words []string
	for _, seg := range strings.Split(base, "_") {
		if seg == "" {
			continue
		}
		if len(seg) > maxSegmentLen || segmentEndsName(seg) {
			break
		}
		words = append(words, seg)
		if len(words) >= maxNameWords {
			break
		}
	}
	if len(words) == 0 {
		return Unparseable{Raw: raw}
	}
	name := strings.Join(words, " ")

	candidates := types.FiscalYearCandidates(base)
	switch len(candidates) {
	case 0:
		return Parsed{Raw: raw, Name: name, Year: types.YearUnknown}
	case 1:
		return Parsed{Raw: raw, Name: name, Year: candidates[0]}
	default:
		return AmbiguousYear{Raw: raw, Name: name, Candidates: candidates}
	}
}

// segmentEndsName reports whether a segment belongs to the descriptor
// tail rather than the institution name: it carries a year token or a
// document keyword.
func segmentEndsName(seg string) bool {
	if _, ok := types.ParseFiscalYear(seg); ok {
		return true
	}
	for _, tok := range strings.FieldsFunc(strings.ToLower(seg), func(r rune) bool {
		return r == '-' || r == '.' || r == ' '
	}) {
		if docKeywords[tok] {
			return true
		}
	}
	return false
}
