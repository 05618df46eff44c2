package export

import (
	"bytes"
	"errors"
	"os"
	"testing"
	"time"

	"github.com/stemsi/sodaubai-backend/internal/model"
	"github.com/xuri/excelize/v2"
)

func TestFileNames(t *testing.T) {
	now := time.Date(2026, time.March, 5, 10, 0, 0, 0, time.UTC)

	if got := HistoryFileName("Nguyễn  Văn A", now); got != "LichSuGiangDay_Nguyễn_Văn_A_5-3-2026.xlsx" {
		t.Errorf("history name = %q", got)
	}
	if got := StatsFileName("Trần Thị B", now); got != "ThongKe_Trần_Thị_B_5-3-2026.pdf" {
		t.Errorf("stats name = %q", got)
	}
	if got := StatsFileName("", now); got != "ThongKe_Toan_Truong_5-3-2026.pdf" {
		t.Errorf("school stats name = %q", got)
	}
}

func TestWriteHistoryWorkbook(t *testing.T) {
	entries := []model.LessonEntry{
		{Subject: "Toán", ClassName: "10A1", Session: model.SessionMorning, PeriodSlot: 1, Duration: 2,
			LessonTopic: "Phương trình bậc hai", TotalStudents: 40, AbsentCount: 1, AbsentNames: "Lê Thị C",
			Comment: "Tốt", Date: "2026-03-05"},
		{Subject: "Vật Lý", ClassName: "11B2", Session: model.SessionEvening, PeriodSlot: 4, Duration: 1,
			LessonTopic: "Động lực học", TotalStudents: 35, Date: "2026-12-25"},
	}

	var buf bytes.Buffer
	if err := WriteHistoryWorkbook(&buf, entries); err != nil {
		t.Fatalf("write: %v", err)
	}

	f, err := excelize.OpenReader(&buf)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer f.Close()

	if sheets := f.GetSheetList(); len(sheets) != 1 || sheets[0] != HistorySheet {
		t.Fatalf("sheets = %v", sheets)
	}
	rows, err := f.GetRows(HistorySheet)
	if err != nil {
		t.Fatalf("rows: %v", err)
	}
	if len(rows) != 3 {
		t.Fatalf("got %d rows, want 3", len(rows))
	}
	if rows[0][0] != "Ngày dạy" || rows[0][10] != "Nhận xét" {
		t.Fatalf("header = %v", rows[0])
	}
	first := rows[1]
	if first[0] != "5/3/2026" || first[1] != "Sáng" || first[4] != "1" || first[9] != "Lê Thị C" {
		t.Fatalf("first row = %v", first)
	}
	if rows[2][0] != "25/12/2026" || rows[2][1] != "Tối" {
		t.Fatalf("second row = %v", rows[2])
	}

	width, err := f.GetColWidth(HistorySheet, "G")
	if err != nil || width != 30 {
		t.Fatalf("width of G = %v, %v", width, err)
	}
}

func TestWriteHistoryWorkbook_Empty(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteHistoryWorkbook(&buf, nil); !errors.Is(err, ErrNothingToExport) {
		t.Fatalf("expected ErrNothingToExport, got %v", err)
	}
}

func TestWriteStatsReport(t *testing.T) {
	font := os.Getenv("PDF_FONT_PATH")
	if font == "" {
		font = "/usr/share/fonts/truetype/dejavu/DejaVuSans.ttf"
	}
	if _, err := os.Stat(font); err != nil {
		t.Skipf("font not available: %v", err)
	}

	report := model.StatsReport{
		Title:       "Thống Kê Toàn Trường",
		Description: "Tổng hợp số liệu từ tất cả giáo viên",
		EntryCount:  2,
		Totals:      model.Totals{TotalPeriods: 3, TotalAbsences: 2, DistinctClasses: 2},
		Weekly:      []model.PeriodStat{{Name: "Week 10", Periods: 3}},
		Monthly:     []model.PeriodStat{{Name: "Month 3", Periods: 3}},
	}
	for i := 0; i < 60; i++ {
		report.Weekly = append(report.Weekly, model.PeriodStat{Name: "Week x", Periods: i})
	}

	var buf bytes.Buffer
	if err := WriteStatsReport(&buf, report, font); err != nil {
		t.Fatalf("write: %v", err)
	}
	if !bytes.HasPrefix(buf.Bytes(), []byte("%PDF-")) {
		t.Fatalf("output is not a PDF")
	}
}

func TestWriteStatsReport_MissingFont(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteStatsReport(&buf, model.StatsReport{Title: "x"}, "/nonexistent/font.ttf"); err == nil {
		t.Fatal("expected font error")
	}
}
