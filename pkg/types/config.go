// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "time"

// WindowConfig bounds the coverage window relative to a reference year.
// The evaluated range is the closed interval
// [ReferenceYear-LookbackYears, ReferenceYear+LookaheadYears].
type WindowConfig struct {
	// LookbackYears is how far behind the reference year to evaluate
	// (default 5).
	LookbackYears int `yaml:"lookback_years" mapstructure:"lookback_years"`

	// LookaheadYears is how far ahead of the reference year to evaluate
	// (default 2; recently-ended periods publish with a lag).
	LookaheadYears int `yaml:"lookahead_years" mapstructure:"lookahead_years"`

	// ReferenceYear anchors the window. Zero means the current year.
	ReferenceYear int `yaml:"reference_year,omitempty" mapstructure:"reference_year"`
}

// BatchConfig bounds how much work one planning cycle emits.
type BatchConfig struct {
	// UniversitiesPerBatch caps the institutions selected per cycle
	// (default 5).
	UniversitiesPerBatch int `yaml:"universities_per_batch" mapstructure:"universities_per_batch"`

	// YearsPerUniversity caps the gap years queried per institution
	// per cycle (default 3).
	YearsPerUniversity int `yaml:"years_per_university" mapstructure:"years_per_university"`
}

// FetchConfig configures the document fetcher collaborator.
type FetchConfig struct {
	// UserAgent is sent with all HTTP requests.
	UserAgent string `yaml:"user_agent" mapstructure:"user_agent"`

	// Timeout is the per-request HTTP timeout.
	Timeout time.Duration `yaml:"timeout" mapstructure:"timeout"`

	// SearchBaseURL is the HTML search endpoint. Defaults to the
	// DuckDuckGo HTML interface; tests point it at a local server.
	SearchBaseURL string `yaml:"search_base_url,omitempty" mapstructure:"search_base_url"`

	// ResultsPerQuery caps candidate links considered per search.
	ResultsPerQuery int `yaml:"results_per_query" mapstructure:"results_per_query"`

	// DownloadsPerQuery caps documents downloaded per search.
	DownloadsPerQuery int `yaml:"downloads_per_query" mapstructure:"downloads_per_query"`

	// RequestsPerSecond throttles outbound requests to the search
	// engine and university sites.
	RequestsPerSecond float64 `yaml:"requests_per_second" mapstructure:"requests_per_second"`

	// Workers bounds the parallel download pool.
	Workers int `yaml:"workers" mapstructure:"workers"`

	// DownloadDir is where acquired PDFs land.
	DownloadDir string `yaml:"download_dir" mapstructure:"download_dir"`
}

// ExtractConfig configures the text extractor collaborator.
type ExtractConfig struct {
	// PdfToTextPath is the pdftotext binary (default "pdftotext").
	PdfToTextPath string `yaml:"pdftotext_path" mapstructure:"pdftotext_path"`

	// OutputDir is where extracted .txt files land.
	OutputDir string `yaml:"output_dir" mapstructure:"output_dir"`
}

// StoreConfig configures the record store, the single source of truth.
type StoreConfig struct {
	// Path is the SQLite database file.
	Path string `yaml:"path" mapstructure:"path"`
}

// SnapshotConfig configures progress snapshot persistence.
type SnapshotConfig struct {
	// Dir is the append-only snapshot directory.
	Dir string `yaml:"dir" mapstructure:"dir"`
}

// PipelineConfig groups all component configurations. It is passed
// explicitly into each component entry point; nothing reads it from
// process-wide state.
type PipelineConfig struct {
	Window    WindowConfig   `yaml:"window" mapstructure:"window"`
	Batch     BatchConfig    `yaml:"batch" mapstructure:"batch"`
	Fetch     FetchConfig    `yaml:"fetch" mapstructure:"fetch"`
	Extract   ExtractConfig  `yaml:"extract" mapstructure:"extract"`
	Store     StoreConfig    `yaml:"store" mapstructure:"store"`
	Snapshots SnapshotConfig `yaml:"snapshots" mapstructure:"snapshots"`
}
