package stats

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/stemsi/sodaubai-backend/internal/model"
)

// labelSums accumulates a sum per label, remembering first-seen order.
type labelSums struct {
	order []string
	sums  map[string]int
}

func newLabelSums() *labelSums {
	return &labelSums{sums: make(map[string]int)}
}

func (l *labelSums) add(label string, n int) {
	if _, ok := l.sums[label]; !ok {
		l.order = append(l.order, label)
	}
	l.sums[label] += n
}

func (l *labelSums) stats() []model.PeriodStat {
	out := make([]model.PeriodStat, 0, len(l.order))
	for _, label := range l.order {
		out = append(out, model.PeriodStat{Name: label, Periods: l.sums[label]})
	}
	return out
}

// WeekLabel names the ISO-8601 week a date falls in, e.g. "Week 42".
func WeekLabel(d time.Time) string {
	_, week := d.ISOWeek()
	return fmt.Sprintf("Week %d", week)
}

// MonthLabel names the calendar month of a date, e.g. "Month 10".
func MonthLabel(d time.Time) string {
	return fmt.Sprintf("Month %d", int(d.Month()))
}

// GroupByWeek sums durations per ISO week. Groups are ordered by label as
// plain strings, so "Week 10" sorts before "Week 2". Entries whose date does
// not parse are skipped.
func GroupByWeek(entries []model.LessonEntry) []model.PeriodStat {
	out := groupByDate(entries, WeekLabel)
	sort.SliceStable(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// GroupByMonth sums durations per calendar month in first-seen order.
// Entries whose date does not parse are skipped.
func GroupByMonth(entries []model.LessonEntry) []model.PeriodStat {
	return groupByDate(entries, MonthLabel)
}

func groupByDate(entries []model.LessonEntry, label func(time.Time) string) []model.PeriodStat {
	sums := newLabelSums()
	for _, e := range entries {
		d, err := time.Parse(model.DateLayout, e.Date)
		if err != nil {
			continue
		}
		sums.add(label(d), e.Duration)
	}
	return sums.stats()
}

// GroupBySubject summarizes entries per trimmed subject name, skipping blank
// subjects. Teachers are counted by display name, so two accounts sharing a
// name count once. The result is sorted by entry count, descending, with
// ties left in first-seen order.
func GroupBySubject(entries []model.LessonEntry) []model.SubjectSummary {
	var order []string
	byName := make(map[string]*model.SubjectSummary)
	teachers := make(map[string]map[string]struct{})

	for _, e := range entries {
		name := strings.TrimSpace(e.Subject)
		if name == "" {
			continue
		}
		s, ok := byName[name]
		if !ok {
			s = &model.SubjectSummary{Name: name, TeacherNames: []string{}}
			byName[name] = s
			teachers[name] = make(map[string]struct{})
			order = append(order, name)
		}
		s.EntryCount++
		if _, seen := teachers[name][e.TeacherName]; !seen {
			teachers[name][e.TeacherName] = struct{}{}
			s.TeacherNames = append(s.TeacherNames, e.TeacherName)
		}
	}

	out := make([]model.SubjectSummary, 0, len(order))
	for _, name := range order {
		s := byName[name]
		s.TeacherCount = len(s.TeacherNames)
		out = append(out, *s)
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].EntryCount > out[j].EntryCount })
	return out
}

// Summarize computes the headline totals. Classes are distinct by exact,
// untrimmed name.
func Summarize(entries []model.LessonEntry) model.Totals {
	var t model.Totals
	classes := make(map[string]struct{})
	for _, e := range entries {
		t.TotalPeriods += e.Duration
		t.TotalAbsences += e.AbsentCount
		classes[e.ClassName] = struct{}{}
	}
	t.DistinctClasses = len(classes)
	return t
}
