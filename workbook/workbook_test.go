package workbook

import (
	"path/filepath"
	"testing"

	"github.com/etnz/dashboard"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

// newWorkbook writes a small portfolio workbook in the default layout.
func newWorkbook(t *testing.T) string {
	t.Helper()
	l := dashboard.DefaultLayout()
	f := excelize.NewFile()
	defer f.Close()
	require.NoError(t, f.SetSheetName("Sheet1", l.AssetsSheet))
	_, err := f.NewSheet(l.InputsSheet)
	require.NoError(t, err)

	set := func(sheet string, col, row int, v any) {
		cell, err := excelize.CoordinatesToCellName(col, row)
		require.NoError(t, err)
		require.NoError(t, f.SetCellValue(sheet, cell, v))
	}
	c := l.Columns
	a := l.AssetsSheet
	set(a, c.Category, 5, "RV")
	set(a, c.Name, 5, "Fondo A")
	set(a, c.Quantity, 5, 10)
	set(a, c.CostPrice, 5, 100)
	set(a, c.Invested, 5, 1000)
	set(a, c.Price, 5, 110.5)
	set(a, c.YTD, 5, 0.05)
	set(a, c.Notes, 5, "IE00BYX5NX33")
	set(a, c.Category, 6, "RF")
	set(a, c.Name, 6, "Fondo B")
	set(a, c.Invested, 6, 250)
	set(a, c.Price, 6, "ACTUALIZAR")
	set(a, c.Marker, 7, "TOTAL CARTERA")

	in := l.Inputs
	set(l.InputsSheet, in.RF.Col, in.RF.Row, 2.5)
	set(l.InputsSheet, in.UpdateDate.Col, in.UpdateDate.Row, "13/10/2026")

	path := filepath.Join(t.TempDir(), "cartera.xlsx")
	require.NoError(t, f.SaveAs(path))
	return path
}

func TestWorkbook_Read(t *testing.T) {
	l := dashboard.DefaultLayout()
	w, err := Open(newWorkbook(t), zerolog.Nop())
	require.NoError(t, err)
	defer w.Close()

	assets, err := w.Sheet(l.AssetsSheet)
	require.NoError(t, err)
	table := dashboard.ParseHoldings(assets, l)
	require.Len(t, table.Holdings, 2)
	assert.Equal(t, 7, table.TotalRow)

	a := table.Holdings[0]
	assert.Equal(t, "IE00BYX5NX33", a.ISIN)
	assert.InDelta(t, 1105, a.Value, 1e-9)
	assert.InDelta(t, 0.05, a.YTD, 1e-12)
	assert.False(t, table.Holdings[1].HasPrice())

	inputs, err := w.Sheet(l.InputsSheet)
	require.NoError(t, err)
	got := dashboard.ParseInputs(inputs, l.Inputs)
	assert.InDelta(t, 0.025, got.RF, 1e-12)
	assert.Equal(t, "13/10/2026", got.UpdateDate)

	_, err = w.Sheet("nope")
	assert.ErrorIs(t, err, ErrNoSheet)

	analysis, err := w.OptionalSheet(l.AnalysisSheet)
	require.NoError(t, err)
	assert.Nil(t, analysis.Cell(26, 1))
}

func TestWorkbook_ApplyAndSave(t *testing.T) {
	l := dashboard.DefaultLayout()
	path := newWorkbook(t)

	w, err := Open(path, zerolog.Nop())
	require.NoError(t, err)
	require.NoError(t, w.Apply([]dashboard.CellUpdate{
		{Sheet: l.AssetsSheet, Row: 5, Col: l.Columns.Price, Value: 120.0},
		{Sheet: l.AssetsSheet, Row: 5, Col: l.Columns.Value, Value: 1200.0},
	}))
	require.NoError(t, w.Save())
	require.NoError(t, w.Close())

	w, err = Open(path, zerolog.Nop())
	require.NoError(t, err)
	defer w.Close()
	assets, err := w.Sheet(l.AssetsSheet)
	require.NoError(t, err)
	assert.Equal(t, "120", assets.Cell(5, l.Columns.Price))
	assert.Equal(t, "1200", assets.Cell(5, l.Columns.Value))
	assert.Equal(t, "Fondo A", assets.Cell(5, l.Columns.Name), "other cells kept")

	err = w.Apply([]dashboard.CellUpdate{{Sheet: l.AssetsSheet, Row: 0, Col: 1, Value: 1}})
	assert.Error(t, err)
}

func TestOpen_Missing(t *testing.T) {
	_, err := Open(filepath.Join(t.TempDir(), "missing.xlsx"), zerolog.Nop())
	assert.Error(t, err)
}
