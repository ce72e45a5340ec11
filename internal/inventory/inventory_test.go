// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package inventory

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/pdiddy/unifin/internal/identity"
	"github.com/pdiddy/unifin/pkg/types"
)

func newTestBuilder() *Builder {
	return NewBuilder(identity.New(), zap.NewNop())
}

func TestFromRecords(t *testing.T) {
	b := newTestBuilder()

	inv := b.FromRecords([]types.Record{
		{University: "University of Cambridge", Year: 2023, PDFPath: "a.pdf"},
		{University: "University of Cambridge", Year: 2021, PDFPath: "b.pdf"},
		{University: "Univ. of Cambridge", Year: 2023, PDFPath: "c.pdf"},
		{University: "University of Cambridge", Year: types.YearUnknown, PDFPath: "d.pdf"},
		{University: "Cardiff University", Year: 2022, PDFPath: "e.pdf"},
		// Placeholder: no document yet, must not count as coverage.
		{University: "Cardiff University", Year: 2023},
		// Unresolvable name: skipped, not fatal.
		{University: "Ruskin College Oxford", Year: 2020, PDFPath: "f.pdf"},
	})

	c, ok := inv.Get("University of Cambridge")
	require.True(t, ok)
	assert.Equal(t, []int{2021, 2023}, c.Years)
	assert.Equal(t, 1, c.Unknown)
	assert.Equal(t, 4, c.Records)
	assert.True(t, c.HasYear(2023))
	assert.False(t, c.HasYear(2022))

	c, ok = inv.Get("Cardiff University")
	require.True(t, ok)
	assert.Equal(t, []int{2022}, c.Years)
	assert.Equal(t, 1, c.Records)

	_, ok = inv.Get("Ruskin College Oxford")
	assert.False(t, ok)

	assert.Equal(t, []string{"Cardiff University", "University of Cambridge"}, inv.Universities())
}

func TestFromFilenames(t *testing.T) {
	b := newTestBuilder()

	inv := b.FromFilenames([]string{
		"Anglia_Ruskin_University_annual-report-2022-23.txt",
		"Anglia_Ruskin_University_annual-report-2021-22.txt",
		"University_of_Cambridge_report.pdf",
		"Cardiff_University_2018-19_accounts_2021.pdf",
		"annual_report.pdf",
	})

	c, ok := inv.Get("Anglia Ruskin University")
	require.True(t, ok)
	assert.Equal(t, []int{2022, 2023}, c.Years)
	assert.Equal(t, 2, c.Records)

	// No year token: counted, but satisfies no gap.
	c, ok = inv.Get("University of Cambridge")
	require.True(t, ok)
	assert.Empty(t, c.Years)
	assert.Equal(t, 1, c.Unknown)

	// Ambiguous year: counted as unknown so the gap stays open.
	c, ok = inv.Get("Cardiff University")
	require.True(t, ok)
	assert.Empty(t, c.Years)
	assert.Equal(t, 1, c.Unknown)
}

func TestFromRecordsDeterministic(t *testing.T) {
	b := newTestBuilder()
	records := []types.Record{
		{University: "Bangor University", Year: 2023, PDFPath: "a.pdf"},
		{University: "Bangor University", Year: 2019, PDFPath: "b.pdf"},
		{University: "Bangor University", Year: 2021, PDFPath: "c.pdf"},
	}

	first := b.FromRecords(records).All()
	for i := 0; i < 5; i++ {
		assert.Equal(t, first, b.FromRecords(records).All())
	}
}

func TestSummary(t *testing.T) {
	b := newTestBuilder()
	inv := b.FromRecords([]types.Record{
		{University: "Swansea University", Year: 2020, PDFPath: "a.pdf"},
		{University: "Swansea University", Year: 2023, PDFPath: "b.pdf"},
	})

	s := inv.Summary()["Swansea University"]
	assert.Equal(t, []int{2020, 2023}, s.Years)
	assert.Equal(t, 2020, s.MinYear)
	assert.Equal(t, 2023, s.MaxYear)
	assert.Equal(t, 2, s.Records)
}
