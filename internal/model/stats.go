package model

// PeriodStat is the number of periods taught within one week or month.
type PeriodStat struct {
	Name    string `json:"name"`
	Periods int    `json:"periods"`
}

// SubjectSummary aggregates every entry recorded under one subject name.
type SubjectSummary struct {
	Name         string   `json:"name"`
	EntryCount   int      `json:"entry_count"`
	TeacherCount int      `json:"teacher_count"`
	TeacherNames []string `json:"teacher_names"`
}

// Totals are the headline numbers of a stats page.
type Totals struct {
	TotalPeriods    int `json:"total_periods"`
	TotalAbsences   int `json:"total_absences"`
	DistinctClasses int `json:"distinct_classes"`
}

// StatsReport is what the stats page and its PDF export render.
type StatsReport struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	// ScopeName is the teacher the report covers, empty for the whole school.
	ScopeName  string       `json:"scope_name,omitempty"`
	EntryCount int          `json:"entry_count"`
	Totals     Totals       `json:"totals"`
	Weekly     []PeriodStat `json:"weekly"`
	Monthly    []PeriodStat `json:"monthly"`
}

// FilterOptions lists the values a history filter can take. The first
// element of each list is the "all" wildcard.
type FilterOptions struct {
	Classes  []string `json:"classes"`
	Subjects []string `json:"subjects"`
}

// DeleteSubjectQuery names the subject to purge. The name travels in the
// query string because free-text subjects may contain "/".
type DeleteSubjectQuery struct {
	Name string `form:"name" binding:"required,max=100"`
}
