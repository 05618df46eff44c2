package export

import (
	"strings"
	"time"
)

const fileDateLayout = "2-1-2006"

// HistoryFileName is the download name of a teacher's history workbook.
func HistoryFileName(fullName string, now time.Time) string {
	return "LichSuGiangDay_" + underscore(fullName) + "_" + now.Format(fileDateLayout) + ".xlsx"
}

// StatsFileName is the download name of a stats report. An empty scope means
// the whole school.
func StatsFileName(scopeName string, now time.Time) string {
	name := underscore(scopeName)
	if name == "" {
		name = "Toan_Truong"
	}
	return "ThongKe_" + name + "_" + now.Format(fileDateLayout) + ".pdf"
}

func underscore(s string) string {
	return strings.Join(strings.Fields(s), "_")
}
