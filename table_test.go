package dashboard

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// assetsGrid builds an assets sheet in the default layout.
func assetsGrid(rows map[int][]any) Grid {
	var g Grid
	for r, cells := range rows {
		for i, v := range cells {
			if v != nil {
				g.Set(r, i+1, v)
			}
		}
	}
	return g
}

func TestParseHoldings(t *testing.T) {
	l := DefaultLayout()
	notes := func(n string) []any {
		row := make([]any, l.Columns.Notes)
		row[l.Columns.Notes-1] = n
		return row
	}
	row := func(cols ...any) []any { return cols }
	withNotes := func(r []any, n string) []any {
		out := notes(n)
		copy(out, r)
		return out
	}

	g := assetsGrid(map[int][]any{
		// marker, cat, name, qty, cost, invested, price, value, gp, rt, ytd, mtd, rt21, weight
		5:  withNotes(row(nil, "rv", "Fondo A", 10.0, 100.0, 1000.0, 120.0, 999.0, 0.0, 0.0, "5%", 1.0, "#N/A"), "ISIN IE00BYX5NX33 acc"),
		6:  row(nil, "RF", "Fondo B", nil, nil, 250.0, "NEEDS UPDATE", nil),
		7:  row(nil, nil, nil, nil, nil, nil),
		8:  row(nil, "RV", "", 3.0),
		9:  row(nil, "CR", "Letras", 5.0, 20.0, "", "-"),
		10: row(nil, " ", "Sin categoría", 1.0, 1.0, 1.0),
		11: row("Total cartera", nil, nil, nil, nil, 1350.0),
		12: row(nil, "RV", "After total", 1.0, 1.0, 1.0),
	})

	got := ParseHoldings(g, l)
	require.Len(t, got.Holdings, 3)
	assert.Equal(t, 11, got.TotalRow)
	assert.Equal(t, []Rejected{{Row: 8, Reason: "empty name"}, {Row: 10, Reason: "empty category"}}, got.Rejected)

	a := got.Holdings[0]
	assert.Equal(t, "Fondo A", a.Name)
	assert.Equal(t, "RV", a.Category)
	assert.Equal(t, "IE00BYX5NX33", a.ISIN)
	assert.Equal(t, 5, a.Row)
	assert.Equal(t, 1200.0, a.Value, "derived cells are recomputed")
	assert.Equal(t, 200.0, a.GainLoss)
	assert.InDelta(t, 0.05, a.YTD, 1e-12)
	assert.Equal(t, 1.0, a.MTD, "1.0 is at the threshold and kept")
	assert.Zero(t, a.RT21)

	b := got.Holdings[1]
	assert.False(t, b.HasPrice())
	assert.Equal(t, 250.0, b.Value)
	assert.Empty(t, b.ISIN)

	c := got.Holdings[2]
	assert.Equal(t, 100.0, c.Invested, "invested from quantity and cost")
	assert.False(t, c.HasPrice())
	assert.Equal(t, 100.0, c.Value)
}

func TestParseHoldings_Empty(t *testing.T) {
	got := ParseHoldings(EmptySheet(), DefaultLayout())
	assert.Empty(t, got.Holdings)
	assert.Zero(t, got.TotalRow)
}

func TestIdentifiers(t *testing.T) {
	hs := []Holding{{ISIN: "B"}, {}, {ISIN: "A"}, {ISIN: "B"}}

	ids, err := Identifiers(hs)
	require.NoError(t, err)
	assert.Equal(t, []string{"B", "A"}, ids)

	ids, err = Identifiers(hs, "A", "Z")
	require.NoError(t, err)
	assert.Equal(t, []string{"A"}, ids)

	_, err = Identifiers(hs, "Z")
	assert.ErrorIs(t, err, ErrNoMatch)

	ids, err = Identifiers(nil)
	assert.NoError(t, err)
	assert.Empty(t, ids)
}
