// Package spreadsheet writes simple tabular XLSX workbooks.
package spreadsheet

import (
	"fmt"

	"github.com/xuri/excelize/v2"
)

// Sheet is one worksheet: a bold header row followed by data rows.
type Sheet struct {
	Name   string
	Header []string
	Rows   [][]any
	// Widths sets column widths in characters, by position. Missing
	// entries keep the default width.
	Widths []float64
}

// Build renders the sheets into an XLSX file, in order.
func Build(sheets ...Sheet) ([]byte, error) {
	if len(sheets) == 0 {
		return nil, fmt.Errorf("spreadsheet: no sheets")
	}

	f := excelize.NewFile()
	defer f.Close()

	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return nil, fmt.Errorf("spreadsheet: header style: %w", err)
	}

	for i, s := range sheets {
		if i == 0 {
			if err := f.SetSheetName(f.GetSheetName(0), s.Name); err != nil {
				return nil, fmt.Errorf("spreadsheet: rename sheet: %w", err)
			}
		} else if _, err := f.NewSheet(s.Name); err != nil {
			return nil, fmt.Errorf("spreadsheet: new sheet %q: %w", s.Name, err)
		}
		if err := writeSheet(f, s, bold); err != nil {
			return nil, err
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("spreadsheet: write: %w", err)
	}
	return buf.Bytes(), nil
}

func writeSheet(f *excelize.File, s Sheet, headerStyle int) error {
	header := make([]any, len(s.Header))
	for i, h := range s.Header {
		header[i] = h
	}
	if err := f.SetSheetRow(s.Name, "A1", &header); err != nil {
		return fmt.Errorf("spreadsheet: header: %w", err)
	}
	if len(s.Header) > 0 {
		last, _ := excelize.CoordinatesToCellName(len(s.Header), 1)
		if err := f.SetCellStyle(s.Name, "A1", last, headerStyle); err != nil {
			return fmt.Errorf("spreadsheet: header style: %w", err)
		}
	}

	for i, row := range s.Rows {
		cell, _ := excelize.CoordinatesToCellName(1, i+2)
		r := row
		if err := f.SetSheetRow(s.Name, cell, &r); err != nil {
			return fmt.Errorf("spreadsheet: row %d: %w", i+2, err)
		}
	}

	for i, w := range s.Widths {
		if w <= 0 {
			continue
		}
		col, _ := excelize.ColumnNumberToName(i + 1)
		if err := f.SetColWidth(s.Name, col, col, w); err != nil {
			return fmt.Errorf("spreadsheet: width %s: %w", col, err)
		}
	}
	return nil
}
