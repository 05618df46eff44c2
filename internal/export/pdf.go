package export

import (
	"fmt"
	"io"
	"strconv"

	"github.com/signintech/gopdf"
	"github.com/stemsi/sodaubai-backend/internal/model"
)

const (
	pageWidth   = 210.0
	pageHeight  = 297.0
	pageMargin  = 10.0
	contentW    = pageWidth - 2*pageMargin
	rowHeight   = 7.0
	fontFamily  = "report"
	labelColumn = contentW * 0.7
)

// WriteStatsReport renders report as an A4 portrait PDF. fontPath must point
// at a TrueType font covering Vietnamese.
func WriteStatsReport(w io.Writer, report model.StatsReport, fontPath string) error {
	pdf := &gopdf.GoPdf{}
	pdf.Start(gopdf.Config{PageSize: *gopdf.PageSizeA4, Unit: gopdf.UnitMM})
	pdf.SetMargins(pageMargin, pageMargin, pageMargin, pageMargin)
	pdf.AddPage()

	if err := pdf.AddTTFFont(fontFamily, fontPath); err != nil {
		return fmt.Errorf("load font %s: %w", fontPath, err)
	}

	r := &pdfReport{pdf: pdf}
	r.text(18, report.Title)
	r.text(11, report.Description)
	r.gap()

	r.heading("Tổng quan")
	r.row("Số buổi đã ghi", strconv.Itoa(report.EntryCount))
	r.row("Tổng số tiết", strconv.Itoa(report.Totals.TotalPeriods))
	r.row("Tổng lượt vắng", strconv.Itoa(report.Totals.TotalAbsences))
	r.row("Số lớp", strconv.Itoa(report.Totals.DistinctClasses))
	r.gap()

	r.heading("Số tiết theo tuần")
	for _, s := range report.Weekly {
		r.row(s.Name, strconv.Itoa(s.Periods))
	}
	r.gap()

	r.heading("Số tiết theo tháng")
	for _, s := range report.Monthly {
		r.row(s.Name, strconv.Itoa(s.Periods))
	}

	if r.err != nil {
		return fmt.Errorf("render report: %w", r.err)
	}
	if _, err := pdf.WriteTo(w); err != nil {
		return fmt.Errorf("write pdf: %w", err)
	}
	return nil
}

// pdfReport lays out lines top to bottom, starting a new page when full.
// The first error sticks and later calls do nothing.
type pdfReport struct {
	pdf *gopdf.GoPdf
	err error
}

func (r *pdfReport) ensureRoom(h float64) {
	if r.pdf.GetY()+h > pageHeight-pageMargin {
		r.pdf.AddPage()
		r.pdf.SetXY(pageMargin, pageMargin)
	}
}

func (r *pdfReport) setFont(size float64) {
	if r.err == nil {
		r.err = r.pdf.SetFont(fontFamily, "", size)
	}
}

func (r *pdfReport) text(size float64, s string) {
	if r.err != nil || s == "" {
		return
	}
	r.setFont(size)
	h := size * 0.5
	r.ensureRoom(h)
	r.pdf.SetX(pageMargin)
	if r.err == nil {
		r.err = r.pdf.CellWithOption(&gopdf.Rect{W: contentW, H: h}, s, gopdf.CellOption{Align: gopdf.Left | gopdf.Middle})
	}
	r.pdf.Br(h + 1)
}

func (r *pdfReport) heading(s string) {
	r.text(13, s)
}

func (r *pdfReport) row(label, value string) {
	if r.err != nil {
		return
	}
	r.setFont(10)
	r.ensureRoom(rowHeight)
	y := r.pdf.GetY()
	r.pdf.SetXY(pageMargin, y)
	if r.err == nil {
		r.err = r.pdf.CellWithOption(&gopdf.Rect{W: labelColumn, H: rowHeight}, label,
			gopdf.CellOption{Align: gopdf.Left | gopdf.Middle, Border: gopdf.AllBorders})
	}
	r.pdf.SetXY(pageMargin+labelColumn, y)
	if r.err == nil {
		r.err = r.pdf.CellWithOption(&gopdf.Rect{W: contentW - labelColumn, H: rowHeight}, value,
			gopdf.CellOption{Align: gopdf.Right | gopdf.Middle, Border: gopdf.AllBorders})
	}
	r.pdf.SetXY(pageMargin, y+rowHeight)
}

func (r *pdfReport) gap() {
	r.pdf.Br(rowHeight / 2)
}
