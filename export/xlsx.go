// Package export writes extracted response grids to spreadsheet files.
package export

import (
	"errors"
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"github.com/cwbudde/algo-swv/swv/extract"
)

// SheetName is the worksheet holding the response grid.
const SheetName = "VF-SWV"

// ErrEmptyGrid indicates a grid without data.
var ErrEmptyGrid = errors.New("export: empty grid")

// XLSX writes g as a single worksheet: log-frequency values across the
// header row, potential values down the first column, response values as
// the body.
func XLSX(w io.Writer, g *extract.Grid) error {
	if g == nil || len(g.Z) == 0 {
		return ErrEmptyGrid
	}

	f := excelize.NewFile()
	f.SetSheetName("Sheet1", SheetName)

	if err := f.SetCellValue(SheetName, "A1", "E (V vs NHE) \\ log f (Hz)"); err != nil {
		return fmt.Errorf("export: %w", err)
	}

	for j, lf := range g.LogFreqs {
		cell, err := excelize.CoordinatesToCellName(j+2, 1)
		if err != nil {
			return fmt.Errorf("export: %w", err)
		}
		if err := f.SetCellValue(SheetName, cell, lf); err != nil {
			return fmt.Errorf("export: %w", err)
		}
	}

	for i, e := range g.Potentials {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return fmt.Errorf("export: %w", err)
		}
		if err := f.SetCellValue(SheetName, cell, e); err != nil {
			return fmt.Errorf("export: %w", err)
		}

		for j, v := range g.Z[i] {
			cell, err := excelize.CoordinatesToCellName(j+2, i+2)
			if err != nil {
				return fmt.Errorf("export: %w", err)
			}
			if err := f.SetCellValue(SheetName, cell, v); err != nil {
				return fmt.Errorf("export: %w", err)
			}
		}
	}

	if _, err := f.WriteTo(w); err != nil {
		return fmt.Errorf("export: %w", err)
	}

	return nil
}
