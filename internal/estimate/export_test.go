package estimate

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func TestExportExcel(t *testing.T) {
	path := filepath.Join(t.TempDir(), "estimate.xlsx")
	q := NewQuote(DefaultItems(), UrgencyNormal, DefaultOffers())

	require.NoError(t, ExportExcel(q, "Квартира на Ленина", path))

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, []string{itemsSheet, bidsSheet}, f.GetSheetList())

	title, err := f.GetCellValue(itemsSheet, "A1")
	require.NoError(t, err)
	assert.Equal(t, "Квартира на Ленина", title)

	header, err := f.GetCellValue(itemsSheet, "B3")
	require.NoError(t, err)
	assert.Equal(t, "Наименование", header)

	name, err := f.GetCellValue(itemsSheet, "B4")
	require.NoError(t, err)
	assert.Equal(t, "Ламинат Premium 33 класс", name)

	total, err := f.GetCellValue(itemsSheet, "F4", excelize.Options{RawCellValue: true})
	require.NoError(t, err)
	assert.Equal(t, "24000", total)

	contractor, err := f.GetCellValue(bidsSheet, "A3")
	require.NoError(t, err)
	assert.Equal(t, "РемонтПро", contractor)
}
