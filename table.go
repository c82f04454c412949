package dashboard

import (
	"errors"
	"regexp"
	"slices"
	"strings"
)

// ErrNoHoldings is returned when no holding could be read from the workbook.
var ErrNoHoldings = errors.New("no holdings found")

// ErrNoMatch is returned when identifiers are requested but no holding carries them.
var ErrNoMatch = errors.New("no holding matches the requested identifiers")

// isinPattern finds an ISIN token in free text notes.
var isinPattern = regexp.MustCompile(`\b[A-Z]{2}[A-Z0-9]{9}[0-9]\b`)

// Rejected records a row of the holdings range that is not a holding.
type Rejected struct {
	Row    int
	Reason string
}

// Table is the result of mapping the assets sheet to holdings.
type Table struct {
	Holdings []Holding
	Rejected []Rejected
	TotalRow int // row of the totals line, 0 when not found
}

// ParseHoldings maps the rows of the assets sheet to holdings.
//
// Rows are read from l.FirstRow until the totals row or l.LastRow. Blank rows are
// skipped, rows with content but no name or no category are rejected. Every holding is
// recomputed, derived cells of the sheet are never trusted.
func ParseHoldings(s Sheet, l Layout) Table {
	var t Table
	c := l.Columns
	cell := func(row, col int) any {
		if col < 1 {
			return nil
		}
		return s.Cell(row, col)
	}

	for r := l.FirstRow; r <= l.LastRow; r++ {
		name := Text(cell(r, c.Name), "")
		if l.isTotal(Text(cell(r, c.Marker), "")) || l.isTotal(name) {
			t.TotalRow = r
			break
		}
		if name == "" {
			if !blankRow(s, r, c) {
				t.Rejected = append(t.Rejected, Rejected{Row: r, Reason: "empty name"})
			}
			continue
		}

		category := strings.ToUpper(Text(cell(r, c.Category), ""))
		if category == "" {
			t.Rejected = append(t.Rejected, Rejected{Row: r, Reason: "empty category"})
			continue
		}

		h := Holding{
			Name:      name,
			Category:  category,
			Notes:     Text(cell(r, c.Notes), ""),
			Row:       r,
			Quantity:  Number(cell(r, c.Quantity), 0),
			CostPrice: Number(cell(r, c.CostPrice), 0),
			Invested:  Number(cell(r, c.Invested), 0),
			Value:     Number(cell(r, c.Value), 0),
			YTD:       Percent(cell(r, c.YTD), 0),
			MTD:       Percent(cell(r, c.MTD), 0),
			RT21:      Percent(cell(r, c.RT21), 0),
		}
		if h.Invested == 0 {
			h.Invested = h.Quantity * h.CostPrice
		}
		if p, ok := Optional(cell(r, c.Price)); ok {
			h.Price = &p
		}
		h.ISIN = isinPattern.FindString(h.Notes)
		t.Holdings = append(t.Holdings, h.Recompute())
	}
	return t
}

// isTotal reports whether label marks the totals row.
func (l Layout) isTotal(label string) bool {
	if label == "" {
		return false
	}
	return slices.ContainsFunc(l.TotalMarkers, func(m string) bool { return strings.EqualFold(m, label) })
}

// blankRow reports whether every mapped cell of row is empty.
func blankRow(s Sheet, row int, c Columns) bool {
	for _, nc := range c.named() {
		if nc.col < 1 {
			continue
		}
		if Text(s.Cell(row, nc.col), "") != "" {
			return false
		}
	}
	return true
}

// Identifiers returns the distinct ISINs of holdings in row order.
//
// When only is not empty, the result is restricted to those identifiers and
// ErrNoMatch is returned if none of them is held.
func Identifiers(holdings []Holding, only ...string) ([]string, error) {
	var ids []string
	for _, h := range holdings {
		if h.ISIN == "" || slices.Contains(ids, h.ISIN) {
			continue
		}
		if len(only) > 0 && !slices.Contains(only, h.ISIN) {
			continue
		}
		ids = append(ids, h.ISIN)
	}
	if len(only) > 0 && len(ids) == 0 {
		return nil, ErrNoMatch
	}
	return ids, nil
}
