package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/etnz/dashboard/renderer"
	"github.com/google/subcommands"
)

// quoteCmd looks up identifiers without touching the workbook.
type quoteCmd struct{}

func (*quoteCmd) Name() string     { return "quote" }
func (*quoteCmd) Synopsis() string { return "look up the latest price of ISINs" }
func (*quoteCmd) Usage() string {
	return `dash quote <isin>...

  Queries the configured quote sources for each ISIN and prints what was found.
  Neither the workbook nor the document is modified.
`
}

func (*quoteCmd) SetFlags(*flag.FlagSet) {}

func (*quoteCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	var ids stringList
	for _, arg := range f.Args() {
		ids.Set(arg)
	}
	if len(ids) == 0 {
		fmt.Fprintln(os.Stderr, "at least one ISIN is required")
		return subcommands.ExitUsageError
	}

	s, err := newSession("", "")
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitUsageError
	}
	fetcher, err := s.newFetcher()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	res, err := fetcher.Fetch(ctx, ids)
	if err != nil {
		s.log.Warn().Err(err).Msg("lookups incomplete")
	}
	printMarkdown(renderer.QuotesMarkdown(res, ids))
	if len(res.Quotes) == 0 {
		return subcommands.ExitFailure
	}
	return subcommands.ExitSuccess
}
