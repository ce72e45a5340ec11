// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import (
	"fmt"
	"regexp"
	"strconv"
)

// Financial years are identified by their ending calendar year so that
// ranges and comparisons are well-defined: the "2022-23" reporting period
// normalizes to 2023. UK university financial years run August to July.

const (
	// MinFiscalYear is the earliest ending year accepted as plausible.
	// Four-digit tokens below this are treated as noise, not years.
	MinFiscalYear = 1990

	// MaxFiscalYear is the latest ending year accepted as plausible.
	MaxFiscalYear = 2100
)

// FYLabel renders an ending year in the academic-year form used by
// universities and search engines: FYLabel(2023) == "2022-23".
func FYLabel(endingYear int) string {
	return fmt.Sprintf("%d-%02d", endingYear-1, endingYear%100)
}

// Year token forms observed in tracker rows and document filenames:
// "2023-24", "2023-2024", "2023_24", compact "1920" after a document
// keyword, and bare "2023" or "FS2023".
var (
	rangeToken   = regexp.MustCompile(`(\d{4})[-_](\d{2,4})`)
	compactToken = regexp.MustCompile(`(?i)(?:accounts|fs|statements)[-_]?(\d{2})(\d{2})`)
	singleToken  = regexp.MustCompile(`(?:^|[^0-9])(\d{4})(?:[^0-9]|$)`)
)

// ParseFiscalYear extracts a financial year from a free-form token or
// filename fragment and returns the ending calendar year. The second
// return value reports whether a plausible year was found.
//
// Range forms take the range's second year as the ending year; a bare
// four-digit year is taken as the ending year itself.
func ParseFiscalYear(s string) (int, bool) {
	if m := rangeToken.FindStringSubmatch(s); m != nil {
		start, err := strconv.Atoi(m[1])
		if err == nil && plausibleYear(start) {
			return endOfRange(start, m[2]), true
		}
	}

	if m := compactToken.FindStringSubmatch(s); m != nil {
		// "accounts1920" means the 2019-20 period.
		end, _ := strconv.Atoi("20" + m[2])
		if plausibleYear(end) {
			return end, true
		}
	}

	if m := singleToken.FindStringSubmatch(s); m != nil {
		y, _ := strconv.Atoi(m[1])
		if plausibleYear(y) {
			return y, true
		}
	}

	return 0, false
}

// FiscalYearCandidates returns every distinct plausible ending year found
// in s, range forms first, then compact forms, then bare years. Callers
// use it to detect ambiguous inputs that carry more than one year token.
func FiscalYearCandidates(s string) []int {
	var out []int
	seen := make(map[int]bool)
	add := func(y int) {
		if plausibleYear(y) && !seen[y] {
			seen[y] = true
			out = append(out, y)
		}
	}

	consumed := ""
	for _, m := range rangeToken.FindAllStringSubmatch(s, -1) {
		start, err := strconv.Atoi(m[1])
		if err != nil || !plausibleYear(start) {
			continue
		}
		add(endOfRange(start, m[2]))
		consumed += " " + m[0]
	}
	for _, m := range compactToken.FindAllStringSubmatch(s, -1) {
		end, _ := strconv.Atoi("20" + m[2])
		add(end)
		consumed += " " + m[0]
	}
	for _, m := range singleToken.FindAllStringSubmatch(s, -1) {
		y, _ := strconv.Atoi(m[1])
		// Skip years already accounted for by a range or compact match.
		if containsToken(consumed, m[1]) {
			continue
		}
		add(y)
	}
	return out
}

// endOfRange resolves the second half of a range token against its start
// year: ("2022", "23") -> 2023, ("2022", "2023") -> 2023.
func endOfRange(start int, second string) int {
	if len(second) == 2 {
		century := (start / 100) * 100
		end := century + atoi(second)
		if end < start {
			// "1999-00" style century rollover.
			end += 100
		}
		return end
	}
	return atoi(second)
}

func plausibleYear(y int) bool {
	return y >= MinFiscalYear && y <= MaxFiscalYear
}

func atoi(s string) int {
	n, _ := strconv.Atoi(s)
	return n
}

func containsToken(haystack, token string) bool {
	for i := 0; i+len(token) <= len(haystack); i++ {
		if haystack[i:i+len(token)] == token {
			return true
		}
	}
	return false
}
