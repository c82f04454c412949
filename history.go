package dashboard

import (
	"maps"
	"slices"

	"github.com/etnz/dashboard/date"
)

// Snapshot is the state of the whole portfolio on one day.
// Snapshots are immutable once appended to a history.
type Snapshot struct {
	Date            date.Date          `json:"date"`
	Value           float64            `json:"value"`
	Invested        float64            `json:"invested"`
	GainLoss        float64            `json:"gain_loss"`
	Return          float64            `json:"return"`
	CategoryWeights map[string]float64 `json:"category_weights"`
}

// NewSnapshot records the totals of s on day, rounded for output.
func NewSnapshot(day date.Date, s Summary) Snapshot {
	weights := make(map[string]float64, len(s.Categories))
	for code, w := range s.CategoryWeights() {
		weights[code] = roundFraction(w)
	}
	return Snapshot{
		Date:            day,
		Value:           roundMoney(s.TotalValue),
		Invested:        roundMoney(s.TotalInvested),
		GainLoss:        roundMoney(s.TotalGainLoss),
		Return:          roundFraction(s.TotalReturn),
		CategoryWeights: weights,
	}
}

// AssetPoint is the return of one holding on one day.
// Return is nil when the holding had no known price that day.
type AssetPoint struct {
	Date   date.Date `json:"date"`
	Return *float64  `json:"return,omitempty"`
}

// NewAssetPoint records the return of h on day.
func NewAssetPoint(day date.Date, h Holding) AssetPoint {
	p := AssetPoint{Date: day}
	if h.HasPrice() {
		rt := roundFraction(h.Return)
		p.Return = &rt
	}
	return p
}

// History is the series carried forward from run to run.
// Series are in append order, with at most one entry per day.
type History struct {
	Snapshots []Snapshot
	Assets    map[string][]AssetPoint // by holding name
}

func (s Snapshot) day() date.Date   { return s.Date }
func (p AssetPoint) day() date.Date { return p.Date }

type dated interface{ day() date.Date }

// appendDaily returns a copy of series extended with v, unless the last entry
// of series is already dated v's day. Only the last entry is compared.
func appendDaily[T dated](series []T, v T) []T {
	if n := len(series); n > 0 && series[n-1].day() == v.day() {
		return slices.Clone(series)
	}
	return append(slices.Clone(series), v)
}

// Append returns a new history with s and the asset points appended.
// h itself is never modified.
func (h History) Append(s Snapshot, points map[string]AssetPoint) History {
	out := History{
		Snapshots: appendDaily(h.Snapshots, s),
		Assets:    make(map[string][]AssetPoint, len(h.Assets)+len(points)),
	}
	for name, series := range h.Assets {
		out.Assets[name] = slices.Clone(series)
	}
	for _, name := range slices.Sorted(maps.Keys(points)) {
		out.Assets[name] = appendDaily(out.Assets[name], points[name])
	}
	return out
}

// Last returns the most recent snapshot.
func (h History) Last() (Snapshot, bool) {
	if len(h.Snapshots) == 0 {
		return Snapshot{}, false
	}
	return h.Snapshots[len(h.Snapshots)-1], true
}
