package dashboard

// Sheet gives positional access to an already parsed worksheet.
// Rows and columns are 1-based. Missing cells are nil.
type Sheet interface {
	Cell(row, col int) any
}

// Grid is an in-memory Sheet, rows first.
type Grid [][]any

// Cell implements Sheet.
func (g Grid) Cell(row, col int) any {
	if row < 1 || row > len(g) {
		return nil
	}
	r := g[row-1]
	if col < 1 || col > len(r) {
		return nil
	}
	return r[col-1]
}

// Set stores v at row, col, growing the grid as needed.
func (g *Grid) Set(row, col int, v any) {
	for len(*g) < row {
		*g = append(*g, nil)
	}
	r := (*g)[row-1]
	for len(r) < col {
		r = append(r, nil)
	}
	r[col-1] = v
	(*g)[row-1] = r
}

// emptySheet is used when an optional sheet is missing.
type emptySheet struct{}

func (emptySheet) Cell(int, int) any { return nil }

// EmptySheet returns a Sheet without any cell.
func EmptySheet() Sheet { return emptySheet{} }
