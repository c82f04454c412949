// Package renderer formats the operator reports of the dash command as markdown.
package renderer

import (
	"bytes"
	"fmt"

	"github.com/etnz/dashboard"
	"github.com/etnz/dashboard/quote"
	md "github.com/nao1215/markdown"
)

// Update is the outcome of a price update run.
type Update struct {
	Repriced    []dashboard.Repricing
	Unavailable []string // identifiers without a price
	Summary     dashboard.Summary
	Currency    string
	Output      string // path of the exported document, empty when not written
	DryRun      bool   // the workbook was left untouched
}

// UpdateMarkdown renders the result of a price update.
func UpdateMarkdown(r Update) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)

	doc.H1("Price Update")
	if len(r.Repriced) == 0 {
		doc.PlainText("No holding was repriced.")
	} else {
		table := md.TableSet{
			Alignment: []md.TableAlignment{md.AlignLeft, md.AlignRight, md.AlignLeft, md.AlignLeft, md.AlignRight, md.AlignRight},
			Header:    []string{"Holding", "Price", "As Of", "Source", "Value", "Return"},
		}
		for _, c := range r.Repriced {
			h := c.Holding
			table.Rows = append(table.Rows, []string{
				h.Name,
				fmt.Sprintf("%.4f", c.Quote.Price),
				c.Quote.AsOf,
				c.Quote.Source,
				M(h.Value, r.Currency).String(),
				Pct(h.Return).SignedString(),
			})
		}
		doc.Table(table)
	}

	if len(r.Unavailable) > 0 {
		doc.H2("Unavailable")
		doc.PlainText("These identifiers kept their previous price:")
		doc.BulletList(r.Unavailable...)
	}

	writeTotals(doc, r.Summary, r.Currency)

	switch {
	case r.DryRun:
		doc.PlainText(md.Italic("Dry run: the workbook was not modified."))
	case r.Output != "":
		doc.PlainText(fmt.Sprintf("Exported to %s.", md.Code(r.Output)))
	}
	return doc.String()
}

// ExportMarkdown renders the summary of an exported document.
func ExportMarkdown(d *dashboard.Document, currency, output string) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)

	doc.H1(fmt.Sprintf("Portfolio %s", d.Source))
	if last, ok := d.History.Last(); ok {
		doc.PlainText(fmt.Sprintf("%d holdings, %d snapshots in history, the last on %s.",
			len(d.Assets), len(d.History.Snapshots), last.Date.European()))
	} else {
		doc.PlainText(fmt.Sprintf("%d holdings, no history.", len(d.Assets)))
	}
	writeTotals(doc, d.Summary, currency)

	in := d.Inputs
	doc.H2("Risk")
	doc.Table(md.TableSet{
		Alignment: []md.TableAlignment{md.AlignLeft, md.AlignRight},
		Header:    []string{"Figure", "Value"},
		Rows: [][]string{
			{"Risk free rate", Pct(in.RF).String()},
			{"Expected return", Pct(in.ExpReturnPortfolio).String()},
			{"Expected volatility", Pct(in.ExpVolPortfolio).String()},
			{"Sharpe ratio", fmt.Sprintf("%.2f", in.SharpePortfolio)},
			{"Expected return over horizon", Pct(in.ExpReturnHorizon).String()},
		},
	})

	if len(d.Scenarios) > 0 {
		doc.H2("Scenarios")
		table := md.TableSet{
			Alignment: []md.TableAlignment{md.AlignLeft, md.AlignRight, md.AlignRight},
			Header:    []string{"Scenario", "Impact", "Estimated Value"},
		}
		for _, sc := range d.Scenarios {
			table.Rows = append(table.Rows, []string{sc.Label, Pct(sc.Impact).SignedString(), M(sc.ValEst, currency).String()})
		}
		doc.Table(table)
	}
	if output != "" {
		doc.PlainText(fmt.Sprintf("Exported to %s.", md.Code(output)))
	}
	return doc.String()
}

// QuotesMarkdown renders quotes looked up on their own.
func QuotesMarkdown(res quote.Result, ids []string) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)

	doc.H1("Quotes")
	table := md.TableSet{
		Alignment: []md.TableAlignment{md.AlignLeft, md.AlignRight, md.AlignLeft, md.AlignLeft},
		Header:    []string{"Identifier", "Price", "As Of", "Source"},
	}
	seen := make(map[string]bool)
	for _, id := range ids {
		if seen[id] {
			continue
		}
		seen[id] = true
		q, ok := res.Quotes[id]
		if !ok {
			table.Rows = append(table.Rows, []string{id, "-", quote.Unknown, ""})
			continue
		}
		table.Rows = append(table.Rows, []string{id, fmt.Sprintf("%.4f", q.Price), q.AsOf, q.Source})
	}
	doc.Table(table)
	return doc.String()
}

// writeTotals writes the portfolio totals and the category split.
func writeTotals(doc *md.Markdown, s dashboard.Summary, currency string) {
	doc.H2("Portfolio")
	doc.Table(md.TableSet{
		Alignment: []md.TableAlignment{md.AlignLeft, md.AlignRight},
		Header:    []string{md.Bold("Total Value"), md.Bold(M(s.TotalValue, currency).String())},
		Rows: [][]string{
			{"Invested", M(s.TotalInvested, currency).String()},
			{"Gain / Loss", M(s.TotalGainLoss, currency).SignedString()},
			{"Return", Pct(s.TotalReturn).SignedString()},
		},
	})

	table := md.TableSet{
		Alignment: []md.TableAlignment{md.AlignLeft, md.AlignRight, md.AlignRight, md.AlignRight, md.AlignRight},
		Header:    []string{"Category", "Holdings", "Value", "Return", "Weight"},
	}
	for _, code := range s.Order {
		c := s.Categories[code]
		table.Rows = append(table.Rows, []string{
			code,
			fmt.Sprint(c.Count),
			M(c.Value, currency).String(),
			Pct(c.Return).SignedString(),
			Pct(c.Weight).String(),
		})
	}
	doc.Table(table)

	if s.Best.Index >= 0 {
		doc.PlainText(fmt.Sprintf("Best: %s (%s), worst: %s (%s).",
			s.Best.Name, Pct(s.Best.Return).SignedString(),
			s.Worst.Name, Pct(s.Worst.Return).SignedString()))
	}
}
