// Package workbook reads and writes the portfolio spreadsheet.
//
// Cells are read as raw values, before number formatting: a 5% cell reads "0.05".
// Interpretation of the values is left to the dashboard package.
package workbook

import (
	"errors"
	"fmt"

	"github.com/etnz/dashboard"
	"github.com/rs/zerolog"
	"github.com/xuri/excelize/v2"
)

// ErrNoSheet is returned when a required sheet is missing.
var ErrNoSheet = errors.New("sheet not found")

// Workbook is an open spreadsheet file.
type Workbook struct {
	path string
	f    *excelize.File
	log  zerolog.Logger
}

// Open opens the workbook at path.
func Open(path string, log zerolog.Logger) (*Workbook, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("cannot open workbook %q: %w", path, err)
	}
	return &Workbook{path: path, f: f, log: log.With().Str("component", "workbook").Logger()}, nil
}

// Sheet reads the whole sheet called name.
func (w *Workbook) Sheet(name string) (dashboard.Grid, error) {
	if idx, err := w.f.GetSheetIndex(name); err != nil || idx < 0 {
		return nil, fmt.Errorf("%q in %s: %w", name, w.path, ErrNoSheet)
	}
	rows, err := w.f.GetRows(name, excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, fmt.Errorf("cannot read sheet %q: %w", name, err)
	}
	g := make(dashboard.Grid, len(rows))
	for i, row := range rows {
		g[i] = make([]any, len(row))
		for j, v := range row {
			if v != "" {
				g[i][j] = v
			}
		}
	}
	w.log.Debug().Str("sheet", name).Int("rows", len(g)).Msg("sheet read")
	return g, nil
}

// OptionalSheet reads the sheet called name, or returns an empty sheet when the
// workbook has none.
func (w *Workbook) OptionalSheet(name string) (dashboard.Sheet, error) {
	if name == "" {
		return dashboard.EmptySheet(), nil
	}
	g, err := w.Sheet(name)
	if errors.Is(err, ErrNoSheet) {
		w.log.Info().Str("sheet", name).Msg("optional sheet missing")
		return dashboard.EmptySheet(), nil
	}
	if err != nil {
		return nil, err
	}
	return g, nil
}

// Apply writes the updates in memory. Save persists them.
func (w *Workbook) Apply(updates []dashboard.CellUpdate) error {
	var errs error
	for _, u := range updates {
		cell, err := excelize.CoordinatesToCellName(u.Col, u.Row)
		if err != nil {
			errs = errors.Join(errs, fmt.Errorf("invalid cell (%d, %d): %w", u.Row, u.Col, err))
			continue
		}
		if err := w.f.SetCellValue(u.Sheet, cell, u.Value); err != nil {
			errs = errors.Join(errs, fmt.Errorf("cannot write %s!%s: %w", u.Sheet, cell, err))
		}
	}
	w.log.Debug().Int("cells", len(updates)).Msg("cells updated")
	return errs
}

// Save writes the workbook back to its file.
func (w *Workbook) Save() error {
	if err := w.f.Save(); err != nil {
		return fmt.Errorf("cannot save workbook %q: %w", w.path, err)
	}
	return nil
}

// Close releases the workbook.
func (w *Workbook) Close() error { return w.f.Close() }
