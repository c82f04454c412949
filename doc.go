// Package dashboard turns a portfolio workbook into the JSON document read by
// the portfolio dashboard.
//
// The raw cells of the workbook are coerced into holdings (see Number, Percent
// and Text) whose market value, gain and return are always derived together by
// Holding.Recompute. Live quotes reprice the holdings that carry an
// identifier, the others keep their last known price.
//
// Totals, category aggregates and weights are computed from scratch by
// Aggregate on every run. An Assembler then packages the holdings, the risk
// assumptions, the stress scenarios and the snapshot history into a Document.
// History is carried forward from run to run, with at most one snapshot per
// calendar day.
//
// This package serves as the foundational logic for the `dash` command-line
// tool. Reading and writing the workbook, fetching quotes and persisting the
// history live in the workbook, quote and history packages.
package dashboard
