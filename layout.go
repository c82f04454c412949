package dashboard

import (
	"errors"
	"fmt"
)

// Cell addresses one cell by its 1-based row and column.
type Cell struct {
	Row int `toml:"row"`
	Col int `toml:"col"`
}

// Columns maps each holding field to its 1-based column on the assets sheet.
// A zero column means the field is not present in the workbook.
type Columns struct {
	Marker    int `toml:"marker"` // column holding the totals row label
	Category  int `toml:"category"`
	Name      int `toml:"name"`
	Quantity  int `toml:"quantity"`
	CostPrice int `toml:"cost_price"`
	Invested  int `toml:"invested"`
	Price     int `toml:"price"`
	Value     int `toml:"value"`
	GainLoss  int `toml:"gain_loss"`
	Return    int `toml:"return"`
	YTD       int `toml:"ytd"`
	MTD       int `toml:"mtd"`
	RT21      int `toml:"rt21"`
	Weight    int `toml:"weight"`
	Notes     int `toml:"notes"`
}

// InputCells locates the risk and return assumptions on the inputs sheet.
type InputCells struct {
	RF            Cell `toml:"rf"`
	MarketPremium Cell `toml:"market_premium"`
	Inflation     Cell `toml:"inflation"`
	TaxRate       Cell `toml:"tax_rate"`
	FeeRF         Cell `toml:"fee_rf"`
	FeeRV         Cell `toml:"fee_rv"`
	FeeCR         Cell `toml:"fee_cr"`
	TargetReturn  Cell `toml:"target_return"`
	TargetVol     Cell `toml:"target_vol"`
	TargetSharpe  Cell `toml:"target_sharpe"`
	UpdateDate    Cell `toml:"update_date"`
	HorizonYears  Cell `toml:"horizon_years"`
	RebalanceFreq Cell `toml:"rebalance_freq"`

	TargetWeightRF Cell `toml:"target_weight_rf"`
	TargetWeightRV Cell `toml:"target_weight_rv"`
	TargetWeightCR Cell `toml:"target_weight_cr"`
	ExpRetRF       Cell `toml:"exp_ret_rf"`
	ExpRetRV       Cell `toml:"exp_ret_rv"`
	ExpRetCR       Cell `toml:"exp_ret_cr"`
	ExpVolRF       Cell `toml:"exp_vol_rf"`
	ExpVolRV       Cell `toml:"exp_vol_rv"`
	ExpVolCR       Cell `toml:"exp_vol_cr"`

	ExpReturnPortfolio Cell `toml:"exp_return_portfolio"`
	ExpVolPortfolio    Cell `toml:"exp_vol_portfolio"`
	SharpePortfolio    Cell `toml:"sharpe_portfolio"`
}

// ScenarioRows locates the stress scenarios on the analysis sheet. Each row
// holds label, shock RF, shock RV, shock CR, impact, estimated value and
// estimated loss in consecutive columns starting at FirstCol.
type ScenarioRows struct {
	FirstRow int      `toml:"first_row"`
	FirstCol int      `toml:"first_col"`
	Count    int      `toml:"count"`
	Labels   []string `toml:"labels"` // used when the label cell is empty
}

// Layout is the single place that knows where data lives in the workbook.
type Layout struct {
	AssetsSheet   string `toml:"assets_sheet"`
	InputsSheet   string `toml:"inputs_sheet"`
	AnalysisSheet string `toml:"analysis_sheet"` // optional, no scenarios when empty

	FirstRow     int      `toml:"first_row"`
	LastRow      int      `toml:"last_row"`
	TotalMarkers []string `toml:"total_markers"` // labels of the totals row, case insensitive

	Columns   Columns      `toml:"columns"`
	Inputs    InputCells   `toml:"inputs"`
	Scenarios ScenarioRows `toml:"scenarios"`
}

// DefaultLayout returns the layout of the dashboard workbook.
func DefaultLayout() Layout {
	in := func(row int) Cell { return Cell{Row: row, Col: 2} }
	return Layout{
		AssetsSheet:   "📋 ACTIVOS",
		InputsSheet:   "⚙️ INPUTS",
		AnalysisSheet: "🔍 ANÁLISIS",
		FirstRow:      5,
		LastRow:       60,
		TotalMarkers:  []string{"TOTAL CARTERA", "TOTAL"},
		Columns: Columns{
			Marker:    1,
			Category:  2,
			Name:      3,
			Quantity:  4,
			CostPrice: 5,
			Invested:  6,
			Price:     7,
			Value:     8,
			GainLoss:  9,
			Return:    10,
			YTD:       11,
			MTD:       12,
			RT21:      13,
			Weight:    14,
			Notes:     17,
		},
		Inputs: InputCells{
			RF:            in(5),
			MarketPremium: in(6),
			Inflation:     in(7),
			TaxRate:       in(8),
			FeeRF:         in(9),
			FeeRV:         in(10),
			FeeCR:         in(11),
			TargetReturn:  in(12),
			TargetVol:     in(13),
			TargetSharpe:  in(14),
			UpdateDate:    Cell{Row: 5, Col: 6},
			HorizonYears:  Cell{Row: 6, Col: 6},
			RebalanceFreq: Cell{Row: 7, Col: 6},

			TargetWeightRF: in(18),
			TargetWeightRV: in(19),
			TargetWeightCR: in(20),
			ExpRetRF:       Cell{Row: 18, Col: 6},
			ExpRetRV:       Cell{Row: 19, Col: 6},
			ExpRetCR:       Cell{Row: 20, Col: 6},
			ExpVolRF:       Cell{Row: 18, Col: 7},
			ExpVolRV:       Cell{Row: 19, Col: 7},
			ExpVolCR:       Cell{Row: 20, Col: 7},

			ExpReturnPortfolio: in(25),
			ExpVolPortfolio:    in(26),
			SharpePortfolio:    in(27),
		},
		Scenarios: ScenarioRows{
			FirstRow: 26,
			FirstCol: 1,
			Count:    5,
			Labels: []string{
				"🟢 Favorable",
				"⚪ Base",
				"🟡 Corrección moderada",
				"🔴 Mercado bajista",
				"🚨 Crisis severa",
			},
		},
	}
}

// Validate checks that the layout can address a holdings table.
func (l Layout) Validate() error {
	var errs error
	if l.AssetsSheet == "" {
		errs = errors.Join(errs, errors.New("layout: assets sheet is not set"))
	}
	if l.InputsSheet == "" {
		errs = errors.Join(errs, errors.New("layout: inputs sheet is not set"))
	}
	if l.FirstRow < 1 || l.LastRow < l.FirstRow {
		errs = errors.Join(errs, fmt.Errorf("layout: invalid row range [%d, %d]", l.FirstRow, l.LastRow))
	}

	c := l.Columns
	required := []namedColumn{
		{"category", c.Category},
		{"name", c.Name},
		{"quantity", c.Quantity},
		{"invested", c.Invested},
		{"price", c.Price},
		{"value", c.Value},
	}
	for _, r := range required {
		if r.col < 1 {
			errs = errors.Join(errs, fmt.Errorf("layout: %s column is required", r.name))
		}
	}

	seen := make(map[int]string)
	for _, nc := range c.named() {
		name, col := nc.name, nc.col
		if col < 0 {
			errs = errors.Join(errs, fmt.Errorf("layout: %s column is negative", name))
			continue
		}
		if col == 0 {
			continue
		}
		if other, dup := seen[col]; dup {
			errs = errors.Join(errs, fmt.Errorf("layout: column %d used by both %s and %s", col, other, name))
			continue
		}
		seen[col] = name
	}

	if s := l.Scenarios; l.AnalysisSheet != "" && (s.Count < 0 || (s.Count > 0 && (s.FirstRow < 1 || s.FirstCol < 1))) {
		errs = errors.Join(errs, fmt.Errorf("layout: invalid scenario rows %+v", s))
	}
	return errs
}

// named lists the columns by name, in sheet order of the default layout.
func (c Columns) named() []namedColumn {
	return []namedColumn{
		{"marker", c.Marker},
		{"category", c.Category},
		{"name", c.Name},
		{"quantity", c.Quantity},
		{"cost_price", c.CostPrice},
		{"invested", c.Invested},
		{"price", c.Price},
		{"value", c.Value},
		{"gain_loss", c.GainLoss},
		{"return", c.Return},
		{"ytd", c.YTD},
		{"mtd", c.MTD},
		{"rt21", c.RT21},
		{"weight", c.Weight},
		{"notes", c.Notes},
	}
}

type namedColumn struct {
	name string
	col  int
}
