package stats

import (
	"sort"
	"strings"

	"github.com/stemsi/sodaubai-backend/internal/model"
)

// Options lists the trimmed, non-blank classes and subjects present in
// entries, sorted, each preceded by the wildcard.
func Options(entries []model.LessonEntry) model.FilterOptions {
	classes := make(map[string]struct{})
	subjects := make(map[string]struct{})
	for _, e := range entries {
		if c := strings.TrimSpace(e.ClassName); c != "" {
			classes[c] = struct{}{}
		}
		if s := strings.TrimSpace(e.Subject); s != "" {
			subjects[s] = struct{}{}
		}
	}
	return model.FilterOptions{
		Classes:  withWildcard(classes),
		Subjects: withWildcard(subjects),
	}
}

func withWildcard(set map[string]struct{}) []string {
	values := make([]string, 0, len(set))
	for v := range set {
		values = append(values, v)
	}
	sort.Strings(values)
	return append([]string{Wildcard}, values...)
}

// RecentSubjects returns the distinct non-blank subjects in entries, in
// first-seen order. Used to offer quick picks on the entry form.
func RecentSubjects(entries []model.LessonEntry) []string {
	seen := make(map[string]struct{})
	out := []string{}
	for _, e := range entries {
		if strings.TrimSpace(e.Subject) == "" {
			continue
		}
		if _, ok := seen[e.Subject]; ok {
			continue
		}
		seen[e.Subject] = struct{}{}
		out = append(out, e.Subject)
	}
	return out
}

// SearchSubjects keeps the summaries whose name contains query, ignoring case.
func SearchSubjects(summaries []model.SubjectSummary, query string) []model.SubjectSummary {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return summaries
	}
	out := make([]model.SubjectSummary, 0, len(summaries))
	for _, s := range summaries {
		if strings.Contains(strings.ToLower(s.Name), q) {
			out = append(out, s)
		}
	}
	return out
}
