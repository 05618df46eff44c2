package service

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"
	"github.com/stemsi/sodaubai-backend/internal/model"
	"github.com/stemsi/sodaubai-backend/internal/repository"
	"github.com/stemsi/sodaubai-backend/internal/stats"
)

// StatsService builds the statistics pages and manages subjects.
type StatsService struct {
	entries  *repository.EntryRepository
	accounts *repository.AccountRepository
	log      zerolog.Logger
}

// NewStatsService creates a new StatsService.
func NewStatsService(entries *repository.EntryRepository, accounts *repository.AccountRepository, log zerolog.Logger) *StatsService {
	return &StatsService{
		entries:  entries,
		accounts: accounts,
		log:      log.With().Str("component", "stats_service").Logger(),
	}
}

// Report aggregates the entries visible to account. A teacher always gets
// their own figures and teacherID is ignored. An admin gets the whole school
// when teacherID is empty or "all", otherwise the selected teacher.
func (s *StatsService) Report(ctx context.Context, account model.Account, teacherID string) (*model.StatsReport, error) {
	all, err := s.entries.List(ctx)
	if err != nil {
		return nil, err
	}

	var (
		criteria stats.Criteria
		report   model.StatsReport
	)
	switch {
	case !account.IsAdmin():
		criteria.OwnerID = account.ID
		report.Title = "Thống Kê Giảng Dạy"
		report.Description = "Tổng hợp số liệu của giáo viên " + account.FullName
		report.ScopeName = account.FullName
	case teacherID == "" || teacherID == stats.Wildcard:
		report.Title = "Thống Kê Toàn Trường"
		report.Description = "Tổng hợp số liệu từ tất cả giáo viên"
	default:
		teacher, err := s.accounts.GetByID(ctx, teacherID)
		if err != nil {
			return nil, err
		}
		criteria.OwnerID = teacher.ID
		report.Title = "Thống Kê cho: " + teacher.FullName
		report.Description = "Tổng hợp số liệu từ giáo viên đã chọn"
		report.ScopeName = teacher.FullName
	}

	scoped := stats.Filter(all, criteria)
	report.EntryCount = len(scoped)
	report.Totals = stats.Summarize(scoped)
	report.Weekly = stats.GroupByWeek(scoped)
	report.Monthly = stats.GroupByMonth(scoped)
	return &report, nil
}

// Subjects summarizes every subject whose name contains query, ignoring case.
func (s *StatsService) Subjects(ctx context.Context, query string) ([]model.SubjectSummary, error) {
	all, err := s.entries.List(ctx)
	if err != nil {
		return nil, err
	}
	return stats.SearchSubjects(stats.GroupBySubject(all), query), nil
}

// DeleteSubject removes every entry recorded under exactly this subject name.
func (s *StatsService) DeleteSubject(ctx context.Context, name string) (int, error) {
	removed, err := s.entries.DeleteBySubject(ctx, name)
	if err != nil {
		return 0, fmt.Errorf("delete subject: %w", err)
	}
	s.log.Info().Str("subject", name).Int("removed", removed).Msg("subject deleted")
	return removed, nil
}
