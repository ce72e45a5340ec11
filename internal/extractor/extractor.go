// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package extractor converts acquired PDF documents to plain text so
// downstream analysis can grep the numbers out. The production
// implementation shells out to poppler's pdftotext; the coordinator
// depends only on the Extractor interface.
package extractor

import (
	"bytes"
	"context"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/pdiddy/unifin/pkg/types"
)

// Extraction is the outcome of one conversion.
type Extraction struct {
	// TextPath is the extracted plain-text file.
	TextPath string

	// Pages counts the pages in the extracted text.
	Pages int

	// Skipped reports the text already existed and was left untouched.
	Skipped bool
}

// Extractor converts one acquired PDF into plain text.
type Extractor interface {
	Extract(ctx context.Context, pdfPath string) (Extraction, error)
}

const defaultBinary = "pdftotext"

// PdfToText extracts text by invoking the pdftotext binary.
type PdfToText struct {
	binary string
	outDir string
	log    *zap.Logger
}

// NewPdfToText returns an extractor configured per cfg.
func NewPdfToText(cfg types.ExtractConfig, log *zap.Logger) *PdfToText {
	binary := cfg.PdfToTextPath
	if binary == "" {
		binary = defaultBinary
	}
	outDir := cfg.OutputDir
	if outDir == "" {
		outDir = "extracted"
	}
	return &PdfToText{binary: binary, outDir: outDir, log: log}
}

// Extract converts pdfPath to outDir/<base>.txt. Extraction is
// idempotent: an existing text file is counted, not regenerated, so
// re-running a cycle after a crash redoes no finished work.
func (p *PdfToText) Extract(ctx context.Context, pdfPath string) (Extraction, error) {
	base := strings.TrimSuffix(filepath.Base(pdfPath), filepath.Ext(pdfPath))
	textPath := filepath.Join(p.outDir, base+".txt")

	if data, err := os.ReadFile(textPath); err == nil {
		p.log.Debug("extraction exists, skipping", zap.String("path", textPath))
		return Extraction{TextPath: textPath, Pages: countPages(data), Skipped: true}, nil
	}

	if err := os.MkdirAll(p.outDir, 0o755); err != nil {
		return Extraction{}, eris.Wrapf(err, "creating output dir %s", p.outDir)
	}

	var stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, p.binary, "-layout", pdfPath, textPath)
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		os.Remove(textPath)
		return Extraction{}, eris.Wrapf(err, "running %s on %s: %s",
			p.binary, pdfPath, strings.TrimSpace(stderr.String()))
	}

	data, err := os.ReadFile(textPath)
	if err != nil {
		return Extraction{}, eris.Wrapf(err, "reading extracted text %s", textPath)
	}
	return Extraction{TextPath: textPath, Pages: countPages(data)}, nil
}

// countPages counts pdftotext's form-feed page separators.
func countPages(data []byte) int {
	if len(data) == 0 {
		return 0
	}
	return bytes.Count(data, []byte{'\f'}) + 1
}
