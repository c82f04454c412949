package dashboard

import "encoding/json"

// Scenario is a stress test of the analysis sheet: a shock per asset class and
// its estimated effect on the portfolio.
type Scenario struct {
	Label   string
	ShockRF float64
	ShockRV float64
	ShockCR float64
	Impact  float64 // relative change of the portfolio value
	ValEst  float64 // estimated portfolio value after the shock
	LossEst float64 // estimated change of value, negative for a loss
}

// ParseScenarios reads the scenario rows. A row with an empty label takes the
// default label of its position.
func ParseScenarios(s Sheet, r ScenarioRows) []Scenario {
	if r.Count <= 0 || r.FirstRow < 1 || r.FirstCol < 1 {
		return nil
	}
	out := make([]Scenario, 0, r.Count)
	for i := range r.Count {
		row := r.FirstRow + i
		at := func(offset int) any { return s.Cell(row, r.FirstCol+offset) }

		label := Text(at(0), "")
		if label == "" && i < len(r.Labels) {
			label = r.Labels[i]
		}
		out = append(out, Scenario{
			Label:   label,
			ShockRF: Percent(at(1), 0),
			ShockRV: Percent(at(2), 0),
			ShockCR: Percent(at(3), 0),
			Impact:  Percent(at(4), 0),
			ValEst:  Number(at(5), 0),
			LossEst: Number(at(6), 0),
		})
	}
	return out
}

// Estimate fills the figures the sheet leaves at zero from the current
// category weights and portfolio value:
//
//	impact   = Σ weight × shock
//	val_est  = value × (1 + impact)
//	loss_est = value × impact
func (sc Scenario) Estimate(categoryWeights map[string]float64, totalValue float64) Scenario {
	if sc.Impact == 0 {
		sc.Impact = categoryWeights[FixedIncome]*sc.ShockRF +
			categoryWeights[Equity]*sc.ShockRV +
			categoryWeights[Credit]*sc.ShockCR
	}
	if sc.ValEst == 0 {
		sc.ValEst = totalValue * (1 + sc.Impact)
	}
	if sc.LossEst == 0 {
		sc.LossEst = totalValue * sc.Impact
	}
	return sc
}

func (sc Scenario) MarshalJSON() ([]byte, error) {
	var w jsonObjectWriter
	w.Append("label", sc.Label)
	w.Append("shock_rf", roundFraction(sc.ShockRF))
	w.Append("shock_rv", roundFraction(sc.ShockRV))
	w.Append("shock_cr", roundFraction(sc.ShockCR))
	w.Append("impact", roundFraction(sc.Impact))
	w.Append("val_est", roundMoney(sc.ValEst))
	w.Append("loss_est", roundMoney(sc.LossEst))
	return w.MarshalJSON()
}

var _ json.Marshaler = Scenario{}
