package dashboard

import "encoding/json"

// Default asset classes of the workbook.
const (
	FixedIncome = "RF" // renta fija
	Equity      = "RV" // renta variable
	Credit      = "CR" // short-term credit
)

// DefaultCategories are always reported, even when no holding belongs to them.
var DefaultCategories = []string{FixedIncome, Equity, Credit}

// CategoryAggregate sums the holdings of one asset class.
type CategoryAggregate struct {
	Invested float64
	Value    float64
	GainLoss float64
	Return   float64
	YTD      float64 // value weighted
	MTD      float64 // value weighted
	Weight   float64 // share of the portfolio value
	Count    int
}

func (c CategoryAggregate) MarshalJSON() ([]byte, error) {
	var w jsonObjectWriter
	w.Append("inv", roundMoney(c.Invested))
	w.Append("val", roundMoney(c.Value))
	w.Append("gp", roundMoney(c.GainLoss))
	w.Append("rt", roundFraction(c.Return))
	w.Append("ytd", roundFraction(c.YTD))
	w.Append("mtd", roundFraction(c.MTD))
	w.Append("weight", roundFraction(c.Weight))
	w.Append("count", c.Count)
	return w.MarshalJSON()
}

// Extreme names the holding with the best or worst return.
type Extreme struct {
	Name   string  `json:"name"`
	Return float64 `json:"rt"`
	Index  int     `json:"-"` // position in the aggregated slice, -1 when empty
}

// Summary is the result of an aggregation pass.
type Summary struct {
	TotalInvested float64
	TotalValue    float64
	TotalGainLoss float64
	TotalReturn   float64

	Categories map[string]CategoryAggregate
	Order      []string // category codes: requested ones first, then in order of appearance

	Weights []float64 // per holding, parallel to the aggregated slice

	Best  Extreme
	Worst Extreme
}

// CategoryWeights returns the weight of every category.
func (s Summary) CategoryWeights() map[string]float64 {
	weights := make(map[string]float64, len(s.Categories))
	for code, c := range s.Categories {
		weights[code] = c.Weight
	}
	return weights
}

var _ json.Marshaler = CategoryAggregate{}

// Aggregate computes portfolio and category totals from the current holdings.
//
// It never reads previous results: the same holdings always give the same
// Summary. Divisions by zero are defined as 0. The categories listed are always
// present in the result, others are added as they appear.
func Aggregate(holdings []Holding, categories ...string) Summary {
	s := Summary{
		Categories: make(map[string]CategoryAggregate),
		Weights:    make([]float64, len(holdings)),
		Best:       Extreme{Index: -1},
		Worst:      Extreme{Index: -1},
	}
	for _, code := range categories {
		if _, seen := s.Categories[code]; !seen {
			s.Categories[code] = CategoryAggregate{}
			s.Order = append(s.Order, code)
		}
	}

	// value weighted period returns are accumulated as Σ r × value first.
	ytd := make(map[string]float64)
	mtd := make(map[string]float64)

	for i, h := range holdings {
		s.TotalInvested += h.Invested
		s.TotalValue += h.Value

		c, seen := s.Categories[h.Category]
		if !seen {
			s.Order = append(s.Order, h.Category)
		}
		c.Invested += h.Invested
		c.Value += h.Value
		c.Count++
		s.Categories[h.Category] = c
		ytd[h.Category] += h.YTD * h.Value
		mtd[h.Category] += h.MTD * h.Value

		// strict comparisons: the first occurrence wins on ties.
		if s.Best.Index < 0 || h.Return > s.Best.Return {
			s.Best = Extreme{Name: h.Name, Return: h.Return, Index: i}
		}
		if s.Worst.Index < 0 || h.Return < s.Worst.Return {
			s.Worst = Extreme{Name: h.Name, Return: h.Return, Index: i}
		}
	}

	s.TotalGainLoss = s.TotalValue - s.TotalInvested
	s.TotalReturn = ratio(s.TotalGainLoss, s.TotalInvested)

	for code, c := range s.Categories {
		c.GainLoss = c.Value - c.Invested
		c.Return = ratio(c.GainLoss, c.Invested)
		c.YTD = ratio(ytd[code], c.Value)
		c.MTD = ratio(mtd[code], c.Value)
		c.Weight = ratio(c.Value, s.TotalValue)
		s.Categories[code] = c
	}

	for i, h := range holdings {
		s.Weights[i] = ratio(h.Value, s.TotalValue)
	}
	return s
}

// ApplyWeights returns a copy of holdings with the weights of s.
// s must come from Aggregate(holdings).
func ApplyWeights(holdings []Holding, s Summary) []Holding {
	out := make([]Holding, len(holdings))
	for i, h := range holdings {
		h.Weight = 0
		if i < len(s.Weights) {
			h.Weight = s.Weights[i]
		}
		out[i] = h
	}
	return out
}

// ratio returns a/b, or 0 when b is 0.
func ratio(a, b float64) float64 {
	if b == 0 {
		return 0
	}
	return a / b
}
