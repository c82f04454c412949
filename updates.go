package dashboard

// CellUpdate is a value to write back to the workbook.
type CellUpdate struct {
	Sheet string
	Row   int
	Col   int
	Value any
}

// Updates lists the cells of the assets sheet to rewrite after a price update:
// the price of every repriced holding, the value, gain, return and weight of
// every holding, and the totals row when there is one. Rows then always agree
// with the totals, stale derived cells included.
// holdings and s must come from the same aggregation pass.
func (l Layout) Updates(holdings []Holding, repriced []Repricing, s Summary, totalRow int) []CellUpdate {
	var out []CellUpdate
	c := l.Columns
	set := func(row, col int, v any) {
		if row < 1 || col < 1 {
			return
		}
		out = append(out, CellUpdate{Sheet: l.AssetsSheet, Row: row, Col: col, Value: v})
	}

	newPrice := make(map[int]bool, len(repriced))
	for _, r := range repriced {
		newPrice[r.Index] = true
	}
	for i, h := range holdings {
		if newPrice[i] && h.Price != nil {
			set(h.Row, c.Price, roundFraction(*h.Price))
		}
		set(h.Row, c.Value, roundMoney(h.Value))
		set(h.Row, c.GainLoss, roundMoney(h.GainLoss))
		set(h.Row, c.Return, roundFraction(h.Return))
		w := 0.0
		if i < len(s.Weights) {
			w = s.Weights[i]
		}
		set(h.Row, c.Weight, roundFraction(w))
	}
	if totalRow > 0 {
		total := 0.0
		if s.TotalValue != 0 {
			total = 1
		}
		set(totalRow, c.Invested, roundMoney(s.TotalInvested))
		set(totalRow, c.Value, roundMoney(s.TotalValue))
		set(totalRow, c.GainLoss, roundMoney(s.TotalGainLoss))
		set(totalRow, c.Return, roundFraction(s.TotalReturn))
		set(totalRow, c.Weight, total)
	}
	return out
}
