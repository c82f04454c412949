package dashboard

import (
	"time"

	"github.com/etnz/dashboard/date"
)

// UpdatedAtFormat is the format of the summary's update time.
const UpdatedAtFormat = "02/01/2006 15:04"

// Document is the snapshot exported to the dashboard.
type Document struct {
	Generated time.Time
	Source    string // workbook file name
	Assets    []Holding
	Inputs    Inputs
	Summary   Summary
	History   History
	Scenarios []Scenario
}

// Assembler builds documents.
type Assembler struct {
	Source     string
	Categories []string         // always reported, DefaultCategories when nil
	Now        func() time.Time // time.Now when nil
}

// Assemble builds the document of the current holdings.
//
// Holdings are recomputed and weighted, then aggregated from scratch. Today's
// snapshot and asset points are appended to prior unless it already ends
// with today. Portfolio level risk figures missing from inputs are derived, and
// scenario estimates are completed from the current weights.
func (a Assembler) Assemble(holdings []Holding, inputs Inputs, prior History, scenarios []Scenario) *Document {
	now := time.Now()
	if a.Now != nil {
		now = a.Now()
	}
	categories := a.Categories
	if categories == nil {
		categories = DefaultCategories
	}

	recomputed := make([]Holding, len(holdings))
	for i, h := range holdings {
		recomputed[i] = h.Recompute()
	}
	summary := Aggregate(recomputed, categories...)
	assets := ApplyWeights(recomputed, summary)
	weights := summary.CategoryWeights()

	today := date.Of(now)
	points := make(map[string]AssetPoint, len(assets))
	for _, h := range assets {
		points[h.Name] = NewAssetPoint(today, h)
	}

	estimated := make([]Scenario, len(scenarios))
	for i, sc := range scenarios {
		estimated[i] = sc.Estimate(weights, summary.TotalValue)
	}

	return &Document{
		Generated: now,
		Source:    a.Source,
		Assets:    assets,
		Inputs:    inputs.Resolve(weights),
		Summary:   summary,
		History:   prior.Append(NewSnapshot(today, summary), points),
		Scenarios: estimated,
	}
}

// MarshalJSON writes the document in the order the dashboard reads it.
func (d *Document) MarshalJSON() ([]byte, error) {
	var w jsonObjectWriter
	w.Append("generated", d.Generated.Format(time.RFC3339))
	w.Append("source", d.Source)
	w.Append("assets", nonNil(d.Assets))
	w.Append("inputs", d.Inputs)
	w.Append("summary", summaryJSON{d.Summary, d.Generated})
	w.Append("history", nonNil(d.History.Snapshots))
	assets := d.History.Assets
	if assets == nil {
		assets = map[string][]AssetPoint{}
	}
	w.Append("asset_history", assets)
	w.Append("scenarios", nonNil(d.Scenarios))
	return w.MarshalJSON()
}

// summaryJSON writes a Summary with its update time.
type summaryJSON struct {
	Summary
	at time.Time
}

func (s summaryJSON) MarshalJSON() ([]byte, error) {
	extreme := func(e Extreme) Extreme {
		return Extreme{Name: e.Name, Return: roundFraction(e.Return)}
	}
	var cats jsonObjectWriter
	for _, code := range s.Order {
		cats.Append(code, s.Categories[code])
	}

	var w jsonObjectWriter
	w.Append("total_inv", roundMoney(s.TotalInvested))
	w.Append("total_val", roundMoney(s.TotalValue))
	w.Append("total_gp", roundMoney(s.TotalGainLoss))
	w.Append("total_rt", roundFraction(s.TotalReturn))
	w.Append("updated_at", s.at.Format(UpdatedAtFormat))
	w.Append("best_asset", extreme(s.Best))
	w.Append("worst_asset", extreme(s.Worst))
	w.Append("cats", &cats)
	return w.MarshalJSON()
}

// nonNil makes nil slices marshal as [].
func nonNil[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}
