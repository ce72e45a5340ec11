// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package tracker

import (
	"context"
	"io"
	"os"
	"strconv"

	"github.com/jszwec/csvutil"
	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/pdiddy/unifin/internal/identity"
	"github.com/pdiddy/unifin/pkg/types"
)

// csvRow is the legacy spreadsheet layout the tracker was migrated
// from. Year cells hold free-form tokens ("2022-23", "2023"); import
// normalizes them to ending years.
type csvRow struct {
	ID         string `csv:"id"`
	University string `csv:"university"`
	Year       string `csv:"year"`
	SourceURL  string `csv:"source_url"`
	PDFPath    string `csv:"pdf_path"`
	TxtPath    string `csv:"txt_path"`
	JSONPath   string `csv:"json_path"`
}

// ImportSummary holds counts from a CSV import run.
type ImportSummary struct {
	Imported int
	Skipped  int
}

// ImportCSV loads a legacy tracker spreadsheet into the store. Names
// are canonicalized and year tokens normalized on the way in; rows
// that resolve to no known institution are skipped with a warning,
// never fatal.
func (s *Store) ImportCSV(ctx context.Context, path string, norm *identity.Normalizer, log *zap.Logger) (ImportSummary, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return ImportSummary{}, eris.Wrapf(err, "reading %s", path)
	}

	var rows []csvRow
	if err := csvutil.Unmarshal(data, &rows); err != nil {
		return ImportSummary{}, eris.Wrapf(err, "parsing %s", path)
	}

	var summary ImportSummary
	for _, row := range rows {
		u, err := norm.Normalize(row.University)
		if err != nil {
			log.Warn("skipping row with unresolved university",
				zap.String("university", row.University),
				zap.Error(err))
			summary.Skipped++
			continue
		}

		year := types.YearUnknown
		if y, ok := types.ParseFiscalYear(row.Year); ok {
			year = y
		}

		rec := types.Record{
			University: u.Name,
			Year:       year,
			SourceURL:  row.SourceURL,
			PDFPath:    row.PDFPath,
			TextPath:   row.TxtPath,
		}
		if err := s.Upsert(ctx, rec); err != nil {
			return summary, eris.Wrapf(err, "importing row for %s", u.Name)
		}
		summary.Imported++
	}
	return summary, nil
}

// ExportCSV writes the store in the legacy spreadsheet layout.
func (s *Store) ExportCSV(ctx context.Context, w io.Writer) error {
	records, err := s.All(ctx)
	if err != nil {
		return err
	}

	rows := make([]csvRow, 0, len(records))
	for i, rec := range records {
		yearCell := ""
		if rec.Year != types.YearUnknown {
			yearCell = types.FYLabel(rec.Year)
		}
		rows = append(rows, csvRow{
			ID:         strconv.Itoa(i + 1),
			University: rec.University,
			Year:       yearCell,
			SourceURL:  rec.SourceURL,
			PDFPath:    rec.PDFPath,
			TxtPath:    rec.TextPath,
		})
	}

	data, err := csvutil.Marshal(rows)
	if err != nil {
		return eris.Wrap(err, "marshaling rows")
	}
	if _, err := w.Write(data); err != nil {
		return eris.Wrap(err, "writing csv")
	}
	return nil
}
