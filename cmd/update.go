package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/etnz/dashboard"
	"github.com/etnz/dashboard/renderer"
	"github.com/google/subcommands"
)

// updateCmd holds the flags for the 'update' subcommand.
type updateCmd struct {
	workbook string
	output   string
	dryRun   bool
	only     stringList
}

func (*updateCmd) Name() string { return "update" }
func (*updateCmd) Synopsis() string {
	return "update fund prices from public quote pages and export the dashboard"
}
func (*updateCmd) Usage() string {
	return `dash update [-w <workbook>] [-o <output>] [-dry-run] [-isin <id>]...

  Looks up the latest price of every holding with an ISIN in its notes, one
  at a time. Repriced rows, weights and totals are written back to the
  workbook, then the dashboard document is exported.

  A holding whose price is unavailable keeps its previous price.
`
}

func (c *updateCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.workbook, "w", "", "Workbook to update. Overrides the configuration.")
	f.StringVar(&c.output, "o", "", "Document to write. Overrides the configuration.")
	f.BoolVar(&c.dryRun, "dry-run", false, "Do not modify the workbook.")
	f.Var(&c.only, "isin", "Only reprice this identifier. Can be repeated.")
}

func (c *updateCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 0 {
		fmt.Fprintln(os.Stderr, "no arguments expected")
		return subcommands.ExitUsageError
	}
	s, err := newSession(c.workbook, c.output)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitUsageError
	}

	w, p, err := s.readWorkbook()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	defer w.Close()

	ids, err := dashboard.Identifiers(p.table.Holdings, c.only...)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}

	fetcher, err := s.newFetcher()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	res, err := fetcher.Fetch(ctx, ids)
	if err != nil {
		// interrupted: what was fetched is still applied.
		s.log.Warn().Err(err).Msg("price update incomplete")
	}

	holdings, repriced := dashboard.ApplyQuotes(p.table.Holdings, res.Quotes)
	summary := dashboard.Aggregate(holdings, s.cfg.Categories...)
	holdings = dashboard.ApplyWeights(holdings, summary)

	if !c.dryRun {
		if err := w.Apply(s.cfg.Layout.Updates(holdings, repriced, summary, p.table.TotalRow)); err != nil {
			fmt.Fprintln(os.Stderr, err)
			return subcommands.ExitFailure
		}
		if err := w.Save(); err != nil {
			fmt.Fprintln(os.Stderr, err)
			return subcommands.ExitFailure
		}
		s.log.Info().Str("workbook", s.cfg.Workbook).Int("repriced", len(repriced)).Msg("workbook updated")
	}

	if _, err := s.export(ctx, holdings, p); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}

	printMarkdown(renderer.UpdateMarkdown(renderer.Update{
		Repriced:    repriced,
		Unavailable: res.Unavailable,
		Summary:     summary,
		Currency:    s.cfg.Currency,
		Output:      s.cfg.Output,
		DryRun:      c.dryRun,
	}))
	return subcommands.ExitSuccess
}

// stringList is a repeatable string flag.
type stringList []string

func (l *stringList) String() string { return strings.Join(*l, ",") }

func (l *stringList) Set(v string) error {
	for _, id := range strings.Split(v, ",") {
		if id = strings.TrimSpace(id); id != "" {
			*l = append(*l, strings.ToUpper(id))
		}
	}
	return nil
}
