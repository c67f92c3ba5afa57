package export

import (
	"bytes"
	"fmt"
	"time"

	"github.com/signintech/gopdf"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/goregular"

	"github.com/claytonnetvision/banco-infantil-backend-sub001/internal/model"
)

// A4 layout in points.
const (
	pageMargin   = 40.0
	pageWidth    = 595.28
	pageHeight   = 841.89
	contentWidth = pageWidth - 2*pageMargin
	rowHeight    = 18.0
	cellPadding  = 3.0

	fontRegular = "goregular"
	fontBold    = "gobold"
)

type pdfWriter struct {
	pdf *gopdf.GoPdf
	y   float64
}

// PDF renders the report as an A4 document with one table per section.
func PDF(r *model.Report) ([]byte, error) {
	pdf := &gopdf.GoPdf{}
	pdf.Start(gopdf.Config{PageSize: *gopdf.PageSizeA4})
	if err := pdf.AddTTFFontData(fontRegular, goregular.TTF); err != nil {
		return nil, fmt.Errorf("load regular font: %w", err)
	}
	if err := pdf.AddTTFFontData(fontBold, gobold.TTF); err != nil {
		return nil, fmt.Errorf("load bold font: %w", err)
	}

	w := &pdfWriter{pdf: pdf}
	w.newPage()

	if err := w.text(fontBold, 16, "Relatório Escolar"); err != nil {
		return nil, err
	}
	generated := r.GeneratedAt
	if generated.IsZero() {
		generated = time.Now()
	}
	subtitle := fmt.Sprintf("Gerado em %s, últimos %d dias", generated.Format("02/01/2006 15:04"), r.PeriodDays)
	if err := w.text(fontRegular, 10, subtitle); err != nil {
		return nil, err
	}
	w.y += rowHeight / 2

	for _, t := range buildTables(r) {
		if err := w.table(t); err != nil {
			return nil, fmt.Errorf("table %s: %w", t.Title, err)
		}
	}

	var buf bytes.Buffer
	if err := pdf.Write(&buf); err != nil {
		return nil, fmt.Errorf("write pdf: %w", err)
	}
	return buf.Bytes(), nil
}

func (w *pdfWriter) newPage() {
	w.pdf.AddPage()
	w.y = pageMargin
}

// ensure starts a new page when h more points do not fit.
func (w *pdfWriter) ensure(h float64) {
	if w.y+h > pageHeight-pageMargin {
		w.newPage()
	}
}

func (w *pdfWriter) text(font string, size float64, s string) error {
	if err := w.pdf.SetFont(font, "", size); err != nil {
		return err
	}
	w.ensure(size + 6)
	w.pdf.SetXY(pageMargin, w.y)
	if err := w.pdf.Cell(nil, s); err != nil {
		return err
	}
	w.y += size + 6
	return nil
}

func (w *pdfWriter) table(t table) error {
	w.ensure(3 * rowHeight)
	if err := w.text(fontBold, 12, t.Title); err != nil {
		return err
	}

	colWidth := contentWidth / float64(len(t.Header))
	header := make([]interface{}, len(t.Header))
	for i, h := range t.Header {
		header[i] = h
	}
	if err := w.row(fontBold, colWidth, header); err != nil {
		return err
	}
	if len(t.Rows) == 0 {
		if err := w.row(fontRegular, contentWidth, []interface{}{"Sem dados no período"}); err != nil {
			return err
		}
	}
	for _, row := range t.Rows {
		w.ensure(rowHeight)
		if err := w.row(fontRegular, colWidth, row); err != nil {
			return err
		}
	}
	w.y += rowHeight
	return nil
}

func (w *pdfWriter) row(font string, colWidth float64, cells []interface{}) error {
	if err := w.pdf.SetFont(font, "", 9); err != nil {
		return err
	}
	w.ensure(rowHeight)
	x := pageMargin
	for _, v := range cells {
		s := w.fit(cellText(v), colWidth-2*cellPadding)
		w.pdf.SetXY(x, w.y)
		rect := &gopdf.Rect{W: colWidth, H: rowHeight}
		if err := w.pdf.CellWithOption(rect, " "+s, gopdf.CellOption{
			Align:  gopdf.Left | gopdf.Middle,
			Border: gopdf.AllBorders,
		}); err != nil {
			return err
		}
		x += colWidth
	}
	w.y += rowHeight
	return nil
}

// fit truncates s with an ellipsis until it measures at most limit points.
func (w *pdfWriter) fit(s string, limit float64) string {
	if width, err := w.pdf.MeasureTextWidth(s); err != nil || width <= limit {
		return s
	}
	runes := []rune(s)
	for len(runes) > 0 {
		runes = runes[:len(runes)-1]
		candidate := string(runes) + "…"
		if width, err := w.pdf.MeasureTextWidth(candidate); err == nil && width <= limit {
			return candidate
		}
	}
	return ""
}
