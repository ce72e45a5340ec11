// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package fetcher locates and downloads financial statement documents
// for planned search tasks. The production implementation scrapes the
// DuckDuckGo HTML interface; the coordinator only sees the Fetcher
// interface, so tests substitute a fake.
package fetcher

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/rotisserie/eris"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/pdiddy/unifin/internal/httputil"
	"github.com/pdiddy/unifin/pkg/types"
)

// Result is one acquired document.
type Result struct {
	// LocalPath is where the document landed on disk.
	LocalPath string

	// SourceURL is the URL it was downloaded from.
	SourceURL string

	// Year is the ending year inferred from the URL, or YearUnknown.
	Year int

	// RetrievedAt is when the download completed.
	RetrievedAt time.Time

	// Skipped reports the document already existed locally.
	Skipped bool
}

// Fetcher turns one search task into zero or more acquired documents.
// Zero results is a normal outcome, not an error; implementations
// return an error only on unrecoverable transport failure.
type Fetcher interface {
	Fetch(ctx context.Context, task types.SearchTask, outDir string) ([]Result, error)
}

const (
	defaultSearchBaseURL     = "https://duckduckgo.com/html/"
	defaultUserAgent         = "unifin/1.0 (+https://github.com/pdiddy/unifin)"
	defaultTimeout           = 20 * time.Second
	defaultResultsPerQuery   = 30
	defaultDownloadsPerQuery = 2
	defaultRequestsPerSecond = 0.5
)

// DuckDuckGo is a Fetcher backed by DuckDuckGo's HTML interface. All
// outbound requests, search and download alike, share one rate
// limiter; search engines ban scrapers quickly and there is no hurry.
type DuckDuckGo struct {
	client  *http.Client
	limiter *rate.Limiter
	base    string
	cfg     types.FetchConfig
	log     *zap.Logger
}

// NewDuckDuckGo returns a fetcher configured per cfg, with defaults
// applied to any zero field.
func NewDuckDuckGo(cfg types.FetchConfig, log *zap.Logger) *DuckDuckGo {
	if cfg.SearchBaseURL == "" {
		cfg.SearchBaseURL = defaultSearchBaseURL
	}
	if cfg.UserAgent == "" {
		cfg.UserAgent = defaultUserAgent
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = defaultTimeout
	}
	if cfg.ResultsPerQuery <= 0 {
		cfg.ResultsPerQuery = defaultResultsPerQuery
	}
	if cfg.DownloadsPerQuery <= 0 {
		cfg.DownloadsPerQuery = defaultDownloadsPerQuery
	}
	if cfg.RequestsPerSecond <= 0 {
		cfg.RequestsPerSecond = defaultRequestsPerSecond
	}

	return &DuckDuckGo{
		client:  &http.Client{Timeout: cfg.Timeout},
		limiter: rate.NewLimiter(rate.Limit(cfg.RequestsPerSecond), 1),
		base:    cfg.SearchBaseURL,
		cfg:     cfg,
		log:     log,
	}
}

// Fetch searches for the task's query, filters results down to
// documents the target university actually owns, and downloads the
// newest candidates. Re-fetching a fulfilled task is cheap: existing
// files are detected by name and skipped.
func (d *DuckDuckGo) Fetch(ctx context.Context, task types.SearchTask, outDir string) ([]Result, error) {
	links, err := d.search(ctx, task.Query)
	if err != nil {
		return nil, err
	}

	var candidates []string
	seen := make(map[string]bool)
	for _, link := range links {
		if seen[link] {
			continue
		}
		seen[link] = true
		if Relevant(link, task.Domain) {
			candidates = append(candidates, link)
		}
	}
	// Newest documents first; candidates without a year go last.
	sort.SliceStable(candidates, func(i, j int) bool {
		return YearFromURL(candidates[i]) > YearFromURL(candidates[j])
	})

	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return nil, eris.Wrapf(err, "creating download dir %s", outDir)
	}

	var results []Result
	for _, link := range candidates {
		if len(results) >= d.cfg.DownloadsPerQuery {
			break
		}
		if !strings.Contains(strings.ToLower(link), ".pdf") {
			continue
		}

		year := YearFromURL(link)
		dest := filepath.Join(outDir, documentFilename(task.University, year, link))

		if _, err := os.Stat(dest); err == nil {
			d.log.Debug("download exists, skipping",
				zap.String("path", dest))
			results = append(results, Result{
				LocalPath: dest, SourceURL: link, Year: year, Skipped: true,
			})
			continue
		}

		if err := d.download(ctx, link, dest); err != nil {
			d.log.Warn("download failed",
				zap.String("url", link),
				zap.Error(err))
			continue
		}
		results = append(results, Result{
			LocalPath:   dest,
			SourceURL:   link,
			Year:        year,
			RetrievedAt: time.Now().UTC(),
		})
	}

	d.log.Info("task fetched",
		zap.String("university", task.University),
		zap.Int("year", task.Year),
		zap.Int("links", len(links)),
		zap.Int("relevant", len(candidates)),
		zap.Int("downloaded", len(results)))
	return results, nil
}

// search scrapes one results page. A non-200 response or an empty page
// yields zero links, not an error.
func (d *DuckDuckGo) search(ctx context.Context, query string) ([]string, error) {
	if query == "" {
		return nil, nil
	}
	if err := d.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet,
		d.base+"?q="+url.QueryEscape(query), nil)
	if err != nil {
		return nil, eris.Wrap(err, "creating search request")
	}
	req.Header.Set("User-Agent", d.cfg.UserAgent)

	resp, err := httputil.DoWithRetry(ctx, d.client, req, 0)
	if err != nil {
		return nil, eris.Wrapf(err, "searching %q", query)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		d.log.Warn("search returned non-200",
			zap.Int("status", resp.StatusCode),
			zap.String("query", query))
		return nil, nil
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return nil, eris.Wrap(err, "parsing results page")
	}

	var links []string
	doc.Find("a.result__a").EachWithBreak(func(_ int, s *goquery.Selection) bool {
		href, ok := s.Attr("href")
		if !ok || href == "" {
			return true
		}
		links = append(links, decodeRedirect(href))
		return len(links) < d.cfg.ResultsPerQuery
	})
	return links, nil
}

func (d *DuckDuckGo) download(ctx context.Context, rawURL, destPath string) error {
	if err := d.limiter.Wait(ctx); err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return eris.Wrap(err, "creating request")
	}
	req.Header.Set("User-Agent", d.cfg.UserAgent)
	req.Header.Set("Accept", "application/pdf")

	resp, err := httputil.DoWithRetry(ctx, d.client, req, 0)
	if err != nil {
		return eris.Wrap(err, "HTTP request")
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return eris.Errorf("HTTP %d from %s", resp.StatusCode, rawURL)
	}

	// Download to a temp file, rename on success, so a partial download
	// never masquerades as an acquired document.
	tmpFile, err := os.CreateTemp(filepath.Dir(destPath), ".fetch-*.tmp")
	if err != nil {
		return eris.Wrap(err, "creating temp file")
	}
	tmpPath := tmpFile.Name()

	_, copyErr := io.Copy(tmpFile, resp.Body)
	closeErr := tmpFile.Close()
	if copyErr != nil {
		os.Remove(tmpPath)
		return eris.Wrap(copyErr, "writing download")
	}
	if closeErr != nil {
		os.Remove(tmpPath)
		return eris.Wrap(closeErr, "closing temp file")
	}

	if err := os.Rename(tmpPath, destPath); err != nil {
		os.Remove(tmpPath)
		return eris.Wrap(err, "renaming temp file")
	}
	return nil
}

// decodeRedirect unwraps DuckDuckGo's /l/?uddg= redirect links to the
// destination URL. Non-redirect links pass through unchanged.
func decodeRedirect(href string) string {
	if strings.HasPrefix(href, "//") {
		href = "https:" + href
	}
	u, err := url.Parse(href)
	if err != nil {
		return href
	}
	if target := u.Query().Get("uddg"); target != "" {
		return target
	}
	return href
}

var unsafeFilenameChars = regexp.MustCompile(`[^A-Za-z0-9._-]+`)

// documentFilename builds the deterministic on-disk name for a
// download: the underscored university name, a document marker, and
// the year label when known. Determinism is what makes re-runs skip
// already-acquired documents.
func documentFilename(university string, year int, sourceURL string) string {
	name := strings.ReplaceAll(university, " ", "_")
	name = unsafeFilenameChars.ReplaceAllString(name, "")

	if year != types.YearUnknown {
		return fmt.Sprintf("%s_financial_statements_%s.pdf", name, types.FYLabel(year))
	}

	slug := "document"
	if u, err := url.Parse(sourceURL); err == nil && u.Path != "" {
		base := strings.TrimSuffix(filepath.Base(u.Path), filepath.Ext(u.Path))
		if cleaned := unsafeFilenameChars.ReplaceAllString(base, "-"); cleaned != "" {
			slug = cleaned
		}
	}
	return fmt.Sprintf("%s_financial_statements_%s.pdf", name, slug)
}
