package renderer

import (
	"testing"
	"time"

	"github.com/etnz/dashboard"
	"github.com/etnz/dashboard/quote"
	"github.com/stretchr/testify/assert"
)

func TestMoney(t *testing.T) {
	tests := []struct {
		name         string
		m            Money
		want, signed string
	}{
		{name: "usd", m: M(1234.5, "USD"), want: "$1,234.50", signed: "+$1,234.50"},
		{name: "negative", m: M(-12.345, "USD"), want: "-$12.35", signed: "-$12.35"},
		{name: "zero", m: M(0.001, "USD"), want: "$0.00", signed: "-"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.m.String())
			assert.Equal(t, tt.signed, tt.m.SignedString())
		})
	}
}

func TestPercent(t *testing.T) {
	assert.Equal(t, "16.00%", Pct(0.16).String())
	assert.Equal(t, "+20.00%", Pct(0.2).SignedString())
	assert.Equal(t, "-4.50%", Pct(-0.045).SignedString())
	assert.Equal(t, "-", Pct(0.00001).SignedString())
	assert.Equal(t, "-", Pct(-0.00001).SignedString())
}

func price(v float64) *float64 { return &v }

func summary() ([]dashboard.Holding, dashboard.Summary) {
	hs := []dashboard.Holding{
		dashboard.Holding{Name: "Fondo A", Category: dashboard.Equity, Quantity: 10, Invested: 1000, Price: price(120)}.Recompute(),
		dashboard.Holding{Name: "Fondo B", Category: dashboard.FixedIncome, Invested: 250}.Recompute(),
	}
	return hs, dashboard.Aggregate(hs, dashboard.DefaultCategories...)
}

func TestUpdateMarkdown(t *testing.T) {
	hs, s := summary()
	got := UpdateMarkdown(Update{
		Repriced:    []dashboard.Repricing{{Index: 0, Holding: hs[0], Quote: quote.Quote{ID: "IE00BYX5NX33", Price: 120, AsOf: "13/10/2026", Source: "quefondos"}}},
		Unavailable: []string{"LU0625737910"},
		Summary:     s,
		Currency:    "USD",
		Output:      "public/data.json",
	})

	assert.Contains(t, got, "# Price Update")
	assert.Contains(t, got, "Fondo A")
	assert.Contains(t, got, "120.0000")
	assert.Contains(t, got, "13/10/2026")
	assert.Contains(t, got, "quefondos")
	assert.Contains(t, got, "$1,200.00")
	assert.Contains(t, got, "+20.00%")
	assert.Contains(t, got, "## Unavailable")
	assert.Contains(t, got, "LU0625737910")
	assert.Contains(t, got, "$1,450.00")
	assert.Contains(t, got, "+16.00%")
	assert.Contains(t, got, "82.76%")
	assert.Contains(t, got, "Best: Fondo A (+20.00%), worst: Fondo B (-).")
	assert.Contains(t, got, "public/data.json")
}

func TestUpdateMarkdown_NothingRepriced(t *testing.T) {
	got := UpdateMarkdown(Update{Summary: dashboard.Aggregate(nil), DryRun: true})
	assert.Contains(t, got, "No holding was repriced.")
	assert.Contains(t, got, "Dry run")
	assert.NotContains(t, got, "Unavailable")
	assert.NotContains(t, got, "Best:")
}

func TestExportMarkdown(t *testing.T) {
	hs, _ := summary()
	now := func() time.Time { return time.Date(2026, time.October, 14, 9, 0, 0, 0, time.UTC) }
	d := dashboard.Assembler{Source: "cartera.xlsx", Now: now}.Assemble(hs, dashboard.Inputs{SharpePortfolio: 1.1}, dashboard.History{},
		[]dashboard.Scenario{{Label: "Crisis", Impact: -0.2}})

	got := ExportMarkdown(d, "USD", "")
	assert.Contains(t, got, "# Portfolio cartera.xlsx")
	assert.Contains(t, got, "2 holdings, 1 snapshots in history, the last on 14/10/2026.")
	assert.Contains(t, got, "1.10")
	assert.Contains(t, got, "Crisis")
	assert.Contains(t, got, "-20.00%")
	assert.Contains(t, got, "$1,160.00")
	assert.NotContains(t, got, "Exported to")
}

func TestQuotesMarkdown(t *testing.T) {
	res := quote.Result{Quotes: map[string]quote.Quote{"A": {ID: "A", Price: 12.5, AsOf: "finect", Source: "finect"}}}
	got := QuotesMarkdown(res, []string{"A", "B", "A"})
	assert.Contains(t, got, "12.5000")
	assert.Contains(t, got, "finect")
	assert.Contains(t, got, "| B ")
}
