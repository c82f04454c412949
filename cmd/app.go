// Package cmd implements the dash command line application.
package cmd

import (
	"flag"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/charmbracelet/glamour"
	"github.com/etnz/dashboard"
	"github.com/etnz/dashboard/config"
	"github.com/etnz/dashboard/history"
	"github.com/etnz/dashboard/quote"
	"github.com/etnz/dashboard/workbook"
	"github.com/google/subcommands"
	"github.com/rs/zerolog"
)

// Register the subcommands.
// A main package will call Register() to allow subcommands, and Execute() on the user-selected one.
func Register(c *subcommands.Commander) {
	c.Register(&exportCmd{}, "dashboard")
	c.Register(&updateCmd{}, "dashboard")
	c.Register(&quoteCmd{}, "quotes")
}

// as a CLI application, it has a very short lived lifecycle, so it is ok to use global variables.

var configFile = flag.String("config", "dash.toml", "Path to the configuration file (TOML). Missing file means defaults.")
var verbose = flag.Bool("v", false, "Log at debug level.")

// session is the state shared by one command execution.
type session struct {
	cfg *config.Config
	log zerolog.Logger
}

// newSession loads the configuration, applies the command flags that override
// it, and sets the logger up.
func newSession(workbookPath, output string) (*session, error) {
	cfg, err := config.Load(*configFile)
	if err != nil {
		return nil, err
	}
	if workbookPath != "" {
		cfg.Workbook = workbookPath
	}
	if output != "" {
		cfg.Output = output
	}
	if *verbose {
		cfg.Log.Level = "debug"
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return &session{cfg: cfg, log: newLogger(cfg.Log)}, nil
}

// newLogger creates the structured logger. Logs go to stderr, reports to stdout.
func newLogger(cfg config.LogConfig) zerolog.Logger {
	level := zerolog.InfoLevel
	switch cfg.Level {
	case "debug":
		level = zerolog.DebugLevel
	case "warn":
		level = zerolog.WarnLevel
	case "error":
		level = zerolog.ErrorLevel
	}
	zerolog.TimeFieldFormat = time.RFC3339

	if cfg.Pretty {
		return zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: "15:04:05"}).
			Level(level).With().Timestamp().Logger()
	}
	return zerolog.New(os.Stderr).Level(level).With().Timestamp().Logger()
}

// portfolio is what a run reads from the workbook.
type portfolio struct {
	table     dashboard.Table
	inputs    dashboard.Inputs
	scenarios []dashboard.Scenario
}

// readWorkbook opens the configured workbook and maps its sheets.
// The caller closes the workbook.
func (s *session) readWorkbook() (*workbook.Workbook, portfolio, error) {
	var p portfolio
	l := s.cfg.Layout
	w, err := workbook.Open(s.cfg.Workbook, s.log)
	if err != nil {
		return nil, p, err
	}

	assets, err := w.Sheet(l.AssetsSheet)
	if err != nil {
		w.Close()
		return nil, p, err
	}
	p.table = dashboard.ParseHoldings(assets, l)
	for _, r := range p.table.Rejected {
		s.log.Debug().Int("row", r.Row).Str("reason", r.Reason).Msg("row rejected")
	}
	if len(p.table.Holdings) == 0 {
		w.Close()
		return nil, p, fmt.Errorf("%s: %w", s.cfg.Workbook, dashboard.ErrNoHoldings)
	}

	inputs, err := w.OptionalSheet(l.InputsSheet)
	if err != nil {
		w.Close()
		return nil, p, err
	}
	p.inputs = dashboard.ParseInputs(inputs, l.Inputs)

	analysis, err := w.OptionalSheet(l.AnalysisSheet)
	if err != nil {
		w.Close()
		return nil, p, err
	}
	p.scenarios = dashboard.ParseScenarios(analysis, l.Scenarios)

	s.log.Info().Str("workbook", s.cfg.Workbook).Int("holdings", len(p.table.Holdings)).Int("rejected", len(p.table.Rejected)).Msg("workbook read")
	return w, p, nil
}

// openStore returns the configured history store and its close function.
func (s *session) openStore() (history.Store, func() error, error) {
	switch s.cfg.History.Kind {
	case config.HistorySQLite:
		db, err := history.OpenSQLite(s.cfg.History.Path, s.log)
		if err != nil {
			return nil, nil, err
		}
		return db, db.Close, nil
	default:
		return history.JSONStore{Path: s.cfg.Output}, func() error { return nil }, nil
	}
}

// newFetcher builds the quote fetcher of the configured sources.
func (s *session) newFetcher() (*quote.Fetcher, error) {
	q := s.cfg.Quote
	client := &http.Client{}
	if q.Cache {
		client.Transport = quote.DailyCache(http.DefaultTransport, q.CacheDir, s.log)
	}
	chain := quote.Chain{Timeout: q.GetTimeout()}
	for _, spec := range q.Sources {
		src, err := quote.New(spec, client, q.UserAgent)
		if err != nil {
			return nil, err
		}
		chain.Sources = append(chain.Sources, src)
	}
	return quote.NewFetcher(chain, q.GetDelay(), s.log), nil
}

// printMarkdown renders md on the terminal, or prints it as is when it cannot.
func printMarkdown(md string) {
	r, err := glamour.NewTermRenderer(glamour.WithAutoStyle(), glamour.WithWordWrap(120))
	if err == nil {
		if out, err := r.Render(md); err == nil {
			fmt.Print(out)
			return
		}
	}
	fmt.Print(md)
}
