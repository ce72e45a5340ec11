// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package fetcher

import (
	"net/url"
	"regexp"
	"strconv"
	"strings"

	"github.com/pdiddy/unifin/pkg/types"
)

// Search engines return plenty of pages that mention a university's
// finances without being its financial statements: accounting course
// listings, prospectus pages, league tables. The relevance filter is
// what keeps those out of the tracker, and it is deliberately strict
// about domain ownership: a document about a university hosted on
// another institution's site must never fulfil that university's gap.

var excludePatterns = []string{
	"courses", "course", "study", "undergraduate", "postgraduate",
	"taught", "degree", "msc", "mba", "phd",
	"programme", "program", "student", "prospectus",
	"admissions", "apply", "module",
	"/courses/", "/study/",
}

var financialKeywords = []string{
	"financial-statement", "financial_statement",
	"annual-report", "annual_report", "annual-review",
	"audited-account", "audited_account",
	"financial-account", "accounts",
	"finance/report", "governance/finance", "about/finance",
}

var pdfTerms = []string{"financial", "annual", "account", "report"}

// Relevant reports whether a URL plausibly points at financial
// statements owned by the university. When domain is known the host
// must match it (subdomains included); otherwise any academic host is
// accepted. Course and admissions pages are rejected outright.
func Relevant(rawURL, domain string) bool {
	u, err := url.Parse(rawURL)
	if err != nil || u.Host == "" {
		return false
	}

	host := strings.ToLower(u.Hostname())
	path := strings.ToLower(u.Path)
	probe := path + " " + strings.ToLower(u.RawQuery)

	if domain != "" {
		d := strings.ToLower(domain)
		if host != d && !strings.HasSuffix(host, "."+d) {
			return false
		}
	} else if !academicHost(host) {
		return false
	}

	for _, pattern := range excludePatterns {
		if strings.Contains(probe, pattern) {
			return false
		}
	}

	for _, kw := range financialKeywords {
		if strings.Contains(probe, kw) {
			return true
		}
	}

	if strings.HasSuffix(path, ".pdf") {
		for _, term := range pdfTerms {
			if strings.Contains(probe, term) {
				return true
			}
		}
	}
	return false
}

func academicHost(host string) bool {
	for _, suffix := range []string{".ac.uk", ".edu"} {
		if strings.HasSuffix(host, suffix) {
			return true
		}
	}
	return false
}

var urlYearPattern = regexp.MustCompile(`20\d{2}`)

// YearFromURL extracts the most recent four-digit year mentioned in a
// URL, or YearUnknown. Used to order candidate downloads newest first.
func YearFromURL(rawURL string) int {
	best := types.YearUnknown
	for _, m := range urlYearPattern.FindAllString(rawURL, -1) {
		y, _ := strconv.Atoi(m)
		if y > best {
			best = y
		}
	}
	return best
}
