// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package fetcher

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/pdiddy/unifin/pkg/types"
)

const pdfBody = "%PDF-1.4 fake statements"

// newSearchServer serves a DuckDuckGo-style results page at /html/ and
// a PDF at /finance/annual-report-2022-23.pdf.
func newSearchServer(t *testing.T) *httptest.Server {
	t.Helper()

	mux := http.NewServeMux()
	var ts *httptest.Server

	mux.HandleFunc("/html/", func(w http.ResponseWriter, _ *http.Request) {
		pdfURL := ts.URL + "/finance/annual-report-2022-23.pdf"
		redirect := "//duckduckgo.com/l/?uddg=" + url.QueryEscape(pdfURL)
		fmt.Fprintf(w, `<html><body>
			<a class="result__a" href="%s">ARU annual report</a>
			<a class="result__a" href="%s/courses/msc-finance">MSc Finance</a>
			<a class="result__a" href="https://www.example.com/annual-report-2023.pdf">Unrelated</a>
		</body></html>`, redirect, ts.URL)
	})
	mux.HandleFunc("/finance/annual-report-2022-23.pdf", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/pdf")
		fmt.Fprint(w, pdfBody)
	})

	ts = httptest.NewServer(mux)
	t.Cleanup(ts.Close)
	return ts
}

func newTestFetcher(t *testing.T, ts *httptest.Server) *DuckDuckGo {
	t.Helper()
	return NewDuckDuckGo(types.FetchConfig{
		SearchBaseURL:     ts.URL + "/html/",
		Timeout:           5 * time.Second,
		ResultsPerQuery:   10,
		DownloadsPerQuery: 5,
		RequestsPerSecond: 1000,
	}, zap.NewNop())
}

func testTask(ts *httptest.Server) types.SearchTask {
	u, _ := url.Parse(ts.URL)
	return types.SearchTask{
		University: "Anglia Ruskin University",
		Year:       2023,
		Domain:     u.Hostname(),
		Query:      "site:aru.ac.uk financial statements 2022-23",
	}
}

func TestFetchDownloadsRelevantResults(t *testing.T) {
	ts := newSearchServer(t)
	f := newTestFetcher(t, ts)
	outDir := t.TempDir()

	results, err := f.Fetch(context.Background(), testTask(ts), outDir)
	require.NoError(t, err)
	require.Len(t, results, 1)

	r := results[0]
	assert.False(t, r.Skipped)
	assert.Equal(t, 2022, r.Year)
	assert.Contains(t, r.SourceURL, "/finance/annual-report-2022-23.pdf")

	data, err := os.ReadFile(r.LocalPath)
	require.NoError(t, err)
	assert.Equal(t, pdfBody, string(data))
}

func TestFetchSkipsExistingDownload(t *testing.T) {
	ts := newSearchServer(t)
	f := newTestFetcher(t, ts)
	outDir := t.TempDir()

	first, err := f.Fetch(context.Background(), testTask(ts), outDir)
	require.NoError(t, err)
	require.Len(t, first, 1)

	second, err := f.Fetch(context.Background(), testTask(ts), outDir)
	require.NoError(t, err)
	require.Len(t, second, 1)
	assert.True(t, second[0].Skipped)
	assert.Equal(t, first[0].LocalPath, second[0].LocalPath)
}

func TestFetchZeroResultsIsNotAnError(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		fmt.Fprint(w, `<html><body>no results</body></html>`)
	}))
	defer ts.Close()

	f := NewDuckDuckGo(types.FetchConfig{
		SearchBaseURL:     ts.URL + "/html/",
		RequestsPerSecond: 1000,
	}, zap.NewNop())

	results, err := f.Fetch(context.Background(), testTask(ts), t.TempDir())
	require.NoError(t, err)
	assert.Empty(t, results)
}

func TestFetchSearchErrorDegradesToEmpty(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer ts.Close()

	f := NewDuckDuckGo(types.FetchConfig{
		SearchBaseURL:     ts.URL + "/html/",
		RequestsPerSecond: 1000,
	}, zap.NewNop())

	results, err := f.Fetch(context.Background(), testTask(ts), t.TempDir())
	require.NoError(t, err)
	assert.Empty(t, results)
}

func TestDecodeRedirect(t *testing.T) {
	wrapped := "//duckduckgo.com/l/?uddg=" + url.QueryEscape("https://www.aru.ac.uk/annual-report.pdf")
	assert.Equal(t, "https://www.aru.ac.uk/annual-report.pdf", decodeRedirect(wrapped))

	direct := "https://www.aru.ac.uk/annual-report.pdf"
	assert.Equal(t, direct, decodeRedirect(direct))
}

func TestDocumentFilename(t *testing.T) {
	assert.Equal(t,
		"Anglia_Ruskin_University_financial_statements_2022-23.pdf",
		documentFilename("Anglia Ruskin University", 2023, "https://x/y.pdf"))

	assert.Equal(t,
		"Kings_College_London_financial_statements_report.pdf",
		documentFilename("King's College London", types.YearUnknown, "https://kcl.ac.uk/docs/report.pdf"))
}
