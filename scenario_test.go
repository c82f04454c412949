package dashboard

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseScenarios(t *testing.T) {
	rows := DefaultLayout().Scenarios
	var g Grid
	g.Set(rows.FirstRow, rows.FirstCol, "Rally")
	g.Set(rows.FirstRow, rows.FirstCol+2, 10.0) // shock RV in percent
	g.Set(rows.FirstRow+1, rows.FirstCol+1, "-3%")
	g.Set(rows.FirstRow+1, rows.FirstCol+4, -0.004)

	got := ParseScenarios(g, rows)
	require.Len(t, got, 5)
	assert.Equal(t, "Rally", got[0].Label)
	assert.InDelta(t, 0.10, got[0].ShockRV, 1e-12)
	assert.Equal(t, "⚪ Base", got[1].Label, "default label")
	assert.InDelta(t, -0.03, got[1].ShockRF, 1e-12)
	assert.Equal(t, -0.004, got[1].Impact)
	assert.Equal(t, "🚨 Crisis severa", got[4].Label)

	assert.Nil(t, ParseScenarios(g, ScenarioRows{}))
}

func TestScenario_Estimate(t *testing.T) {
	weights := map[string]float64{FixedIncome: 0.6, Equity: 0.4}

	t.Run("derived", func(t *testing.T) {
		got := Scenario{ShockRF: -0.02, ShockRV: -0.30}.Estimate(weights, 1000)
		assert.InDelta(t, -0.132, got.Impact, 1e-12)
		assert.InDelta(t, 868, got.ValEst, 1e-9)
		assert.InDelta(t, -132, got.LossEst, 1e-9)
	})

	t.Run("sheet values kept", func(t *testing.T) {
		got := Scenario{ShockRV: -0.30, Impact: -0.1, ValEst: 1, LossEst: 2}.Estimate(weights, 1000)
		assert.Equal(t, Scenario{ShockRV: -0.30, Impact: -0.1, ValEst: 1, LossEst: 2}, got)
	})

	t.Run("estimates from the sheet impact", func(t *testing.T) {
		got := Scenario{Impact: 0.05}.Estimate(weights, 200)
		assert.InDelta(t, 210, got.ValEst, 1e-9)
		assert.InDelta(t, 10, got.LossEst, 1e-9)
	})
}
