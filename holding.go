package dashboard

import "encoding/json"

// Holding is one line of the portfolio: a single fund or security.
//
// Value, GainLoss and Return are derived fields, always refreshed together by
// Recompute. Weight is only meaningful after an aggregation pass.
type Holding struct {
	Name     string // identifier of the holding, unique within a category
	Category string // asset class code (RF, RV, CR...)
	ISIN     string // optional quote identifier found in the notes
	Notes    string
	Row      int // row number in the source sheet, 0 when unknown

	Quantity  float64 // units held
	CostPrice float64 // unit price at acquisition
	Invested  float64

	Price     *float64 // latest unit price, nil when unknown
	PriceDate string   // as-of marker of Price, as reported by the source

	Value    float64
	GainLoss float64
	Return   float64

	// period returns are sourced, never derived
	YTD  float64
	MTD  float64
	RT21 float64

	Weight float64
}

// HasPrice reports whether the holding has a known unit price.
func (h Holding) HasPrice() bool { return h.Price != nil }

// Recompute refreshes the derived fields from quantity, price and invested amount.
//
// The value is quantity × price when both are known and nonzero. Otherwise an unset
// value falls back to the invested amount: no gain is assumed without a price.
// Recompute is pure, total and idempotent.
func (h Holding) Recompute() Holding {
	if h.Quantity != 0 && h.Price != nil && *h.Price != 0 {
		h.Value = h.Quantity * *h.Price
	} else if h.Value == 0 {
		h.Value = h.Invested
	}
	h.GainLoss = h.Value - h.Invested
	h.Return = 0
	if h.Invested != 0 {
		h.Return = h.GainLoss / h.Invested
	}
	return h
}

// Reprice sets a new unit price and recomputes the derived fields.
func (h Holding) Reprice(price float64, asOf string) Holding {
	h.Price = &price
	h.PriceDate = asOf
	return h.Recompute()
}

// MarshalJSON writes the holding the way the dashboard reads it.
func (h Holding) MarshalJSON() ([]byte, error) {
	var w jsonObjectWriter
	w.Append("name", h.Name)
	w.Append("cat", h.Category)
	w.Optional("isin", h.ISIN)
	w.Append("titles", roundFraction(h.Quantity))
	w.Append("buy_px", roundFraction(h.CostPrice))
	w.Append("invested", roundMoney(h.Invested))
	if h.Price != nil {
		w.Append("price_now", roundFraction(*h.Price))
	} else {
		w.Append("price_now", nil)
	}
	w.Optional("price_date", h.PriceDate)
	w.Append("val", roundMoney(h.Value))
	w.Append("gp", roundMoney(h.GainLoss))
	w.Append("rt", roundFraction(h.Return))
	w.Append("ytd", roundFraction(h.YTD))
	w.Append("mtd", roundFraction(h.MTD))
	w.Append("rt21", roundFraction(h.RT21))
	w.Append("weight", roundFraction(h.Weight))
	return w.MarshalJSON()
}

var _ json.Marshaler = Holding{}
