package export

import (
	"bytes"
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/claytonnetvision/banco-infantil-backend-sub001/internal/model"
)

const (
	minColWidth = 10
	maxColWidth = 60
)

// Excel renders the report as an xlsx workbook with one sheet per section.
func Excel(r *model.Report) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return nil, fmt.Errorf("new style: %w", err)
	}

	for i, t := range buildTables(r) {
		if i == 0 {
			if err := f.SetSheetName("Sheet1", t.Title); err != nil {
				return nil, fmt.Errorf("rename sheet: %w", err)
			}
		} else if _, err := f.NewSheet(t.Title); err != nil {
			return nil, fmt.Errorf("new sheet: %w", err)
		}
		if err := writeSheet(f, t, bold); err != nil {
			return nil, fmt.Errorf("sheet %s: %w", t.Title, err)
		}
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, fmt.Errorf("write workbook: %w", err)
	}
	return buf.Bytes(), nil
}

func writeSheet(f *excelize.File, t table, bold int) error {
	header := make([]interface{}, len(t.Header))
	for i, h := range t.Header {
		header[i] = h
	}
	if err := f.SetSheetRow(t.Title, "A1", &header); err != nil {
		return err
	}
	for r, row := range t.Rows {
		row := row
		cell, _ := excelize.CoordinatesToCellName(1, r+2)
		if err := f.SetSheetRow(t.Title, cell, &row); err != nil {
			return err
		}
	}

	last := columnName(len(t.Header))
	_ = f.SetCellStyle(t.Title, "A1", last+"1", bold)
	_ = f.AutoFilter(t.Title, "A1:"+last+"1", nil)

	// Width heuristic: longest rendered value per column, clamped.
	for c := range t.Header {
		w := float64(len([]rune(t.Header[c]))) + 1.5
		for _, row := range t.Rows {
			if c < len(row) {
				if l := float64(len([]rune(cellText(row[c])))) * 1.1; l > w {
					w = l
				}
			}
		}
		if w < minColWidth {
			w = minColWidth
		}
		if w > maxColWidth {
			w = maxColWidth
		}
		col := columnName(c + 1)
		_ = f.SetColWidth(t.Title, col, col, w)
	}
	return nil
}

// columnName converts a 1-based column index to its letter (1 -> A, 27 -> AA).
func columnName(n int) string {
	s := ""
	for n > 0 {
		n--
		s = string(rune('A'+(n%26))) + s
		n /= 26
	}
	return s
}
