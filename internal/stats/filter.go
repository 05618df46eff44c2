// Package stats holds the pure filtering and aggregation over lesson
// entries that the history, stats and subject pages are built from.
package stats

import "github.com/stemsi/sodaubai-backend/internal/model"

// Wildcard matches every class or subject.
const Wildcard = "all"

// Criteria narrows a set of entries. Every field is optional; an empty
// field matches everything. Dates are YYYY-MM-DD and bounds are inclusive.
type Criteria struct {
	OwnerID   string
	ClassName string
	Subject   string
	DateFrom  string
	DateTo    string
}

// Match reports whether e satisfies every predicate in c.
func (c Criteria) Match(e model.LessonEntry) bool {
	if c.OwnerID != "" && e.TeacherID != c.OwnerID {
		return false
	}
	if !matchOrWildcard(c.ClassName, e.ClassName) {
		return false
	}
	if !matchOrWildcard(c.Subject, e.Subject) {
		return false
	}
	if c.DateFrom != "" && e.Date < c.DateFrom {
		return false
	}
	if c.DateTo != "" && e.Date > c.DateTo {
		return false
	}
	return true
}

func matchOrWildcard(want, got string) bool {
	return want == "" || want == Wildcard || want == got
}

// Filter returns the entries matching c, in their original order.
func Filter(entries []model.LessonEntry, c Criteria) []model.LessonEntry {
	out := make([]model.LessonEntry, 0, len(entries))
	for _, e := range entries {
		if c.Match(e) {
			out = append(out, e)
		}
	}
	return out
}

// CriteriaFromQuery converts history query parameters for the given owner.
func CriteriaFromQuery(ownerID string, q model.EntryQuery) Criteria {
	return Criteria{
		OwnerID:   ownerID,
		ClassName: q.ClassName,
		Subject:   q.Subject,
		DateFrom:  q.DateFrom,
		DateTo:    q.DateTo,
	}
}
