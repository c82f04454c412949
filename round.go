package dashboard

import (
	"math"

	"github.com/shopspring/decimal"
)

const (
	moneyPlaces    = 2 // currency amounts
	fractionPlaces = 6 // returns, weights and unit prices
)

// round rounds v half away from zero to places decimals. Non finite values round to 0.
func round(v float64, places int32) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return decimal.NewFromFloat(v).Round(places).InexactFloat64()
}

func roundMoney(v float64) float64    { return round(v, moneyPlaces) }
func roundFraction(v float64) float64 { return round(v, fractionPlaces) }
