package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"github.com/etnz/dashboard"
	"github.com/etnz/dashboard/renderer"
	"github.com/google/subcommands"
)

// exportCmd holds the flags for the 'export' subcommand.
type exportCmd struct {
	workbook string
	output   string
}

func (*exportCmd) Name() string { return "export" }
func (*exportCmd) Synopsis() string {
	return "export the workbook as the dashboard JSON document"
}
func (*exportCmd) Usage() string {
	return `dash export [-w <workbook>] [-o <output>]

  Reads the workbook, recomputes every holding with its current price, and
  writes the dashboard document. Today's snapshot is added to the history
  unless it is already there.
`
}

func (c *exportCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.workbook, "w", "", "Workbook to read. Overrides the configuration.")
	f.StringVar(&c.output, "o", "", "Document to write. Overrides the configuration.")
}

func (c *exportCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
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
	w.Close()

	doc, err := s.export(ctx, p.table.Holdings, p)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	printMarkdown(renderer.ExportMarkdown(doc, s.cfg.Currency, s.cfg.Output))
	return subcommands.ExitSuccess
}

// export assembles the document of holdings, writes it and saves the history.
//
// It is not interrupted by ctx cancellation: an update may already have saved
// the workbook, the document must follow it.
func (s *session) export(ctx context.Context, holdings []dashboard.Holding, p portfolio) (*dashboard.Document, error) {
	ctx = context.WithoutCancel(ctx)
	store, closeStore, err := s.openStore()
	if err != nil {
		return nil, err
	}
	defer closeStore()

	prior, err := store.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("cannot load history: %w", err)
	}

	a := dashboard.Assembler{Source: filepath.Base(s.cfg.Workbook), Categories: s.cfg.Categories}
	doc := a.Assemble(holdings, p.inputs, prior, p.scenarios)

	if err := dashboard.EncodeDocument(s.cfg.Output, doc); err != nil {
		return nil, err
	}
	if err := store.Save(ctx, doc.History); err != nil {
		return nil, fmt.Errorf("cannot save history: %w", err)
	}
	s.log.Info().Str("output", s.cfg.Output).Int("snapshots", len(doc.History.Snapshots)).Msg("document exported")
	return doc, nil
}
