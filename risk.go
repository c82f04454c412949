package dashboard

import (
	"encoding/json"
	"math"

	"gonum.org/v1/gonum/floats"
)

// DefaultHorizonYears is the projection horizon when the workbook has none.
const DefaultHorizonYears = 10

// Inputs are the risk and return assumptions of the inputs sheet.
// Rates are fractions, Sharpe ratios and years are plain numbers.
type Inputs struct {
	RF            float64
	MarketPremium float64
	Inflation     float64
	TaxRate       float64
	FeeRF         float64
	FeeRV         float64
	FeeCR         float64
	TargetReturn  float64
	TargetVol     float64
	TargetSharpe  float64
	UpdateDate    string
	HorizonYears  float64
	RebalanceFreq string

	TargetWeightRF float64
	TargetWeightRV float64
	TargetWeightCR float64
	ExpRetRF       float64
	ExpRetRV       float64
	ExpRetCR       float64
	ExpVolRF       float64
	ExpVolRV       float64
	ExpVolCR       float64

	ExpReturnPortfolio float64
	ExpVolPortfolio    float64
	SharpePortfolio    float64

	// ExpReturnHorizon is the compounded expected return over the horizon.
	ExpReturnHorizon float64
}

// ParseInputs reads the assumptions at the cells of c.
func ParseInputs(s Sheet, c InputCells) Inputs {
	at := func(cell Cell) any {
		if cell.Row < 1 || cell.Col < 1 {
			return nil
		}
		return s.Cell(cell.Row, cell.Col)
	}
	pct := func(cell Cell) float64 { return Percent(at(cell), 0) }
	num := func(cell Cell) float64 { return Number(at(cell), 0) }
	txt := func(cell Cell) string { return Text(at(cell), "") }

	return Inputs{
		RF:            pct(c.RF),
		MarketPremium: pct(c.MarketPremium),
		Inflation:     pct(c.Inflation),
		TaxRate:       pct(c.TaxRate),
		FeeRF:         pct(c.FeeRF),
		FeeRV:         pct(c.FeeRV),
		FeeCR:         pct(c.FeeCR),
		TargetReturn:  pct(c.TargetReturn),
		TargetVol:     pct(c.TargetVol),
		TargetSharpe:  num(c.TargetSharpe),
		UpdateDate:    txt(c.UpdateDate),
		HorizonYears:  num(c.HorizonYears),
		RebalanceFreq: txt(c.RebalanceFreq),

		TargetWeightRF: pct(c.TargetWeightRF),
		TargetWeightRV: pct(c.TargetWeightRV),
		TargetWeightCR: pct(c.TargetWeightCR),
		ExpRetRF:       pct(c.ExpRetRF),
		ExpRetRV:       pct(c.ExpRetRV),
		ExpRetCR:       pct(c.ExpRetCR),
		ExpVolRF:       pct(c.ExpVolRF),
		ExpVolRV:       pct(c.ExpVolRV),
		ExpVolCR:       pct(c.ExpVolCR),

		ExpReturnPortfolio: pct(c.ExpReturnPortfolio),
		ExpVolPortfolio:    pct(c.ExpVolPortfolio),
		SharpePortfolio:    num(c.SharpePortfolio),
	}
}

// Resolve fills the portfolio level figures that the workbook leaves at zero.
//
// The class weights are the target weights, or the actual category weights when
// no target is set. Classes are assumed uncorrelated:
//
//	return = Σ wᵢ rᵢ
//	vol    = √Σ (wᵢ vᵢ)²
//	sharpe = (return - rf) / vol
//
// A nonzero figure of the workbook is kept as is.
func (in Inputs) Resolve(categoryWeights map[string]float64) Inputs {
	w := []float64{in.TargetWeightRF, in.TargetWeightRV, in.TargetWeightCR}
	if floats.Sum(w) == 0 {
		w = []float64{categoryWeights[FixedIncome], categoryWeights[Equity], categoryWeights[Credit]}
	}
	r := []float64{in.ExpRetRF, in.ExpRetRV, in.ExpRetCR}
	v := []float64{in.ExpVolRF, in.ExpVolRV, in.ExpVolCR}

	if in.ExpReturnPortfolio == 0 {
		in.ExpReturnPortfolio = floats.Dot(w, r)
	}
	if in.ExpVolPortfolio == 0 {
		wv := make([]float64, len(w))
		floats.MulTo(wv, w, v)
		in.ExpVolPortfolio = floats.Norm(wv, 2)
	}
	if in.SharpePortfolio == 0 {
		in.SharpePortfolio = ratio(in.ExpReturnPortfolio-in.RF, in.ExpVolPortfolio)
	}

	years := in.HorizonYears
	if years <= 0 {
		years = DefaultHorizonYears
	}
	in.ExpReturnHorizon = math.Pow(1+in.ExpReturnPortfolio, years) - 1
	return in
}

// MarshalJSON writes the assumptions in workbook order.
func (in Inputs) MarshalJSON() ([]byte, error) {
	var w jsonObjectWriter
	f := func(key string, v float64) { w.Append(key, roundFraction(v)) }
	f("rf", in.RF)
	f("market_premium", in.MarketPremium)
	f("inflation", in.Inflation)
	f("tax_rate", in.TaxRate)
	f("fee_rf", in.FeeRF)
	f("fee_rv", in.FeeRV)
	f("fee_cr", in.FeeCR)
	f("target_return", in.TargetReturn)
	f("target_vol", in.TargetVol)
	f("target_sharpe", in.TargetSharpe)
	w.Append("update_date", in.UpdateDate)
	f("horizon_years", in.HorizonYears)
	w.Append("rebalance_freq", in.RebalanceFreq)
	f("target_weight_rf", in.TargetWeightRF)
	f("target_weight_rv", in.TargetWeightRV)
	f("target_weight_cr", in.TargetWeightCR)
	f("exp_ret_rf", in.ExpRetRF)
	f("exp_ret_rv", in.ExpRetRV)
	f("exp_ret_cr", in.ExpRetCR)
	f("exp_vol_rf", in.ExpVolRF)
	f("exp_vol_rv", in.ExpVolRV)
	f("exp_vol_cr", in.ExpVolCR)
	f("exp_return_portfolio", in.ExpReturnPortfolio)
	f("exp_vol_portfolio", in.ExpVolPortfolio)
	f("sharpe_portfolio", in.SharpePortfolio)
	f("exp_return_horizon", in.ExpReturnHorizon)
	return w.MarshalJSON()
}

var _ json.Marshaler = Inputs{}
