// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package gaps

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/pdiddy/unifin/internal/identity"
	"github.com/pdiddy/unifin/internal/inventory"
	"github.com/pdiddy/unifin/pkg/types"
)

func buildInventory(t *testing.T, records []types.Record) *inventory.Inventory {
	t.Helper()
	return inventory.NewBuilder(identity.New(), zap.NewNop()).FromRecords(records)
}

func TestNewWindow(t *testing.T) {
	w := NewWindow(types.WindowConfig{LookbackYears: 5, LookaheadYears: 2, ReferenceYear: 2022})
	assert.Equal(t, Window{First: 2017, Last: 2024}, w)
	assert.True(t, w.Contains(2017))
	assert.True(t, w.Contains(2024))
	assert.False(t, w.Contains(2016))
	assert.False(t, w.Contains(2025))
	assert.Equal(t, []int{2017, 2018, 2019, 2020, 2021, 2022, 2023, 2024}, w.Years())
}

func TestComputeNewestFirst(t *testing.T) {
	inv := buildInventory(t, []types.Record{
		{University: "University of Cambridge", Year: 2021, PDFPath: "a.pdf"},
		{University: "University of Cambridge", Year: 2022, PDFPath: "b.pdf"},
		{University: "University of Cambridge", Year: 2023, PDFPath: "c.pdf"},
	})

	g := Compute(inv, Window{First: 2019, Last: 2024})

	missing, ok := g.Missing("University of Cambridge")
	require.True(t, ok)
	assert.Equal(t, []int{2024, 2020, 2019}, missing)
	assert.Equal(t, 3, g.Total())
}

func TestComputeCompleteIsExplicitlyEmpty(t *testing.T) {
	inv := buildInventory(t, []types.Record{
		{University: "Cardiff University", Year: 2022, PDFPath: "a.pdf"},
		{University: "Cardiff University", Year: 2023, PDFPath: "b.pdf"},
	})

	g := Compute(inv, Window{First: 2022, Last: 2023})

	missing, ok := g.Missing("Cardiff University")
	require.True(t, ok)
	assert.Empty(t, missing)
	assert.True(t, g.Complete("Cardiff University"))

	// Never inventoried is different from complete.
	_, ok = g.Missing("Bangor University")
	assert.False(t, ok)
	assert.False(t, g.Complete("Bangor University"))
}

func TestComputeUnknownYearSatisfiesNothing(t *testing.T) {
	inv := buildInventory(t, []types.Record{
		{University: "Swansea University", Year: types.YearUnknown, PDFPath: "a.pdf"},
	})

	g := Compute(inv, Window{First: 2022, Last: 2024})

	missing, ok := g.Missing("Swansea University")
	require.True(t, ok)
	assert.Equal(t, []int{2024, 2023, 2022}, missing)
}

func TestComputeOutOfWindowYearsIgnored(t *testing.T) {
	inv := buildInventory(t, []types.Record{
		{University: "Bangor University", Year: 1995, PDFPath: "a.pdf"},
		{University: "Bangor University", Year: 2023, PDFPath: "b.pdf"},
	})

	g := Compute(inv, Window{First: 2022, Last: 2024})

	missing, _ := g.Missing("Bangor University")
	assert.Equal(t, []int{2024, 2022}, missing)
}

func TestComputeConvergesMonotonically(t *testing.T) {
	w := Window{First: 2020, Last: 2024}
	records := []types.Record{
		{University: "Ulster University", Year: 2020, PDFPath: "a.pdf"},
	}

	before := Compute(buildInventory(t, records), w)
	records = append(records, types.Record{University: "Ulster University", Year: 2024, PDFPath: "b.pdf"})
	after := Compute(buildInventory(t, records), w)

	beforeMissing, _ := before.Missing("Ulster University")
	afterMissing, _ := after.Missing("Ulster University")
	assert.Less(t, len(afterMissing), len(beforeMissing))
	for _, y := range afterMissing {
		assert.Contains(t, beforeMissing, y)
	}
}

func TestBootstrap(t *testing.T) {
	norm := identity.New()
	inv := buildInventory(t, []types.Record{
		{University: "University of Cambridge", Year: 2023, PDFPath: "a.pdf"},
	})

	missing := Bootstrap(norm, inv)
	require.NotEmpty(t, missing)
	assert.NotContains(t, missing, "University of Cambridge")
	assert.Contains(t, missing, "Cardiff University")
	for i := 1; i < len(missing); i++ {
		assert.Less(t, missing[i-1], missing[i])
	}
}
