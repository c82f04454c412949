package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/etnz/dashboard"
	"github.com/etnz/dashboard/quote"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sample = `
workbook = "cartera.xlsx"
output = "out/data.json"

[log]
level = "debug"
pretty = false

[quote]
timeout = "3s"
delay = "250ms"
cache = true

[[quote.sources]]
name = "tradegate"
kind = "jsonpath"
url = "https://www.tradegate.de/refresh.php?isin={id}"
price = "$.last"

[history]
kind = "sqlite"
path = "data/history.db"

[layout]
first_row = 6
last_row = 40

[layout.columns]
notes = 18
`

func writeFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "dash.toml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoad_Defaults(t *testing.T) {
	c, err := Load(filepath.Join(t.TempDir(), "missing.toml"))
	require.NoError(t, err)
	assert.Equal(t, NewDefaultConfig().Workbook, c.Workbook)
	assert.Equal(t, quote.DefaultSpecs(), c.Quote.Sources)
	assert.Equal(t, dashboard.DefaultCategories, c.Categories)
	assert.Equal(t, quote.DefaultTimeout, c.Quote.GetTimeout())
	assert.Equal(t, quote.DefaultDelay, c.Quote.GetDelay())
	assert.NoError(t, c.Validate())
}

func TestLoad_File(t *testing.T) {
	c, err := Load(writeFile(t, sample))
	require.NoError(t, err)
	require.NoError(t, c.Validate())

	assert.Equal(t, "cartera.xlsx", c.Workbook)
	assert.Equal(t, "out/data.json", c.Output)
	assert.Equal(t, "EUR", c.Currency, "defaults kept")
	assert.Equal(t, LogConfig{Level: "debug"}, c.Log)
	assert.Equal(t, 3*time.Second, c.Quote.GetTimeout())
	assert.Equal(t, 250*time.Millisecond, c.Quote.GetDelay())
	assert.True(t, c.Quote.Cache)
	require.Len(t, c.Quote.Sources, 1)
	assert.Equal(t, quote.KindJSONPath, c.Quote.Sources[0].Kind)
	assert.Equal(t, HistoryConfig{Kind: HistorySQLite, Path: "data/history.db"}, c.History)

	def := dashboard.DefaultLayout()
	assert.Equal(t, 6, c.Layout.FirstRow)
	assert.Equal(t, 40, c.Layout.LastRow)
	assert.Equal(t, 18, c.Layout.Columns.Notes)
	assert.Equal(t, def.Columns.Name, c.Layout.Columns.Name, "unset columns keep their default")
	assert.Equal(t, def.AssetsSheet, c.Layout.AssetsSheet)
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("DASH_WORKBOOK", "env.xlsx")
	t.Setenv("DASH_OUTPUT", "env.json")
	t.Setenv("DASH_LOG_LEVEL", "warn")
	t.Setenv("DASH_HISTORY_DB", "env.db")

	c, err := Load(writeFile(t, sample))
	require.NoError(t, err)
	assert.Equal(t, "env.xlsx", c.Workbook)
	assert.Equal(t, "env.json", c.Output)
	assert.Equal(t, "warn", c.Log.Level)
	assert.Equal(t, HistoryConfig{Kind: HistorySQLite, Path: "env.db"}, c.History)
}

func TestLoad_Invalid(t *testing.T) {
	_, err := Load(writeFile(t, "workbook = "))
	assert.ErrorContains(t, err, "failed to parse config file")
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		edit    func(*Config)
		wantErr string
	}{
		{name: "log level", edit: func(c *Config) { c.Log.Level = "trace" }, wantErr: `unknown log level "trace"`},
		{name: "timeout", edit: func(c *Config) { c.Quote.Timeout = "soon" }, wantErr: "quote timeout"},
		{name: "negative delay", edit: func(c *Config) { c.Quote.Delay = "-1s" }, wantErr: "quote delay is negative"},
		{name: "source kind", edit: func(c *Config) { c.Quote.Sources = []quote.Spec{{Name: "x", Kind: "xml", URL: "u", Price: "p"}} }, wantErr: "unknown kind"},
		{name: "history kind", edit: func(c *Config) { c.History.Kind = "redis" }, wantErr: `unknown history kind "redis"`},
		{name: "sqlite path", edit: func(c *Config) { c.History = HistoryConfig{Kind: HistorySQLite} }, wantErr: "requires a path"},
		{name: "layout", edit: func(c *Config) { c.Layout.Columns.Name = 0 }, wantErr: "name column is required"},
		{name: "workbook", edit: func(c *Config) { c.Workbook = "" }, wantErr: "workbook is not set"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := NewDefaultConfig()
			tt.edit(c)
			assert.ErrorContains(t, c.Validate(), tt.wantErr)
		})
	}
}
