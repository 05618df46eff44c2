// Package export renders logbook data into downloadable files.
package export

import (
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/stemsi/sodaubai-backend/internal/model"
	"github.com/xuri/excelize/v2"
)

// ErrNothingToExport is returned when there are no rows to write.
var ErrNothingToExport = errors.New("nothing to export")

// HistorySheet is the worksheet name of the history workbook.
const HistorySheet = "LichSuGiangDay"

var historyColumns = []struct {
	header string
	width  float64
}{
	{"Ngày dạy", 12},
	{"Buổi dạy", 10},
	{"Môn học", 15},
	{"Lớp", 10},
	{"Tiết", 8},
	{"Số tiết", 8},
	{"Tên bài học", 30},
	{"Sĩ số", 8},
	{"Vắng", 8},
	{"Tên HS vắng", 25},
	{"Nhận xét", 40},
}

// WriteHistoryWorkbook writes entries as an .xlsx workbook, one row each in
// the given order.
func WriteHistoryWorkbook(w io.Writer, entries []model.LessonEntry) error {
	if len(entries) == 0 {
		return ErrNothingToExport
	}

	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", HistorySheet); err != nil {
		return fmt.Errorf("rename sheet: %w", err)
	}

	header := make([]interface{}, len(historyColumns))
	for i, c := range historyColumns {
		header[i] = c.header
		col, err := excelize.ColumnNumberToName(i + 1)
		if err != nil {
			return err
		}
		if err := f.SetColWidth(HistorySheet, col, col, c.width); err != nil {
			return fmt.Errorf("set width: %w", err)
		}
	}
	if err := f.SetSheetRow(HistorySheet, "A1", &header); err != nil {
		return fmt.Errorf("write header: %w", err)
	}

	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return fmt.Errorf("header style: %w", err)
	}
	last, _ := excelize.ColumnNumberToName(len(historyColumns))
	if err := f.SetCellStyle(HistorySheet, "A1", last+"1", bold); err != nil {
		return fmt.Errorf("header style: %w", err)
	}

	for i, e := range entries {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		row := []interface{}{
			displayDate(e.Date),
			e.Session.Label(),
			e.Subject,
			e.ClassName,
			e.PeriodSlot,
			e.Duration,
			e.LessonTopic,
			e.TotalStudents,
			e.AbsentCount,
			e.AbsentNames,
			e.Comment,
		}
		if err := f.SetSheetRow(HistorySheet, cell, &row); err != nil {
			return fmt.Errorf("write row %d: %w", i+2, err)
		}
	}

	if err := f.Write(w); err != nil {
		return fmt.Errorf("write workbook: %w", err)
	}
	return nil
}

// displayDate renders YYYY-MM-DD as d/m/yyyy. Anything else is kept as is.
func displayDate(date string) string {
	d, err := time.Parse(model.DateLayout, date)
	if err != nil {
		return date
	}
	return d.Format("2/1/2006")
}
