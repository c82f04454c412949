package dashboard

import "github.com/etnz/dashboard/quote"

// Repricing records a holding that received a new price.
type Repricing struct {
	Index   int     // position in the repriced slice
	Holding Holding // after the new price
	Quote   quote.Quote
}

// ApplyQuotes returns a copy of holdings where every holding whose ISIN has a
// quote is repriced. Holdings without a quote keep their previous price and
// derived values.
func ApplyQuotes(holdings []Holding, quotes map[string]quote.Quote) ([]Holding, []Repricing) {
	out := make([]Holding, len(holdings))
	var changes []Repricing
	for i, h := range holdings {
		q, ok := quotes[h.ISIN]
		if h.ISIN == "" || !ok || q.Price <= 0 {
			out[i] = h
			continue
		}
		out[i] = h.Reprice(q.Price, q.AsOf)
		changes = append(changes, Repricing{Index: i, Holding: out[i], Quote: q})
	}
	return out, changes
}
