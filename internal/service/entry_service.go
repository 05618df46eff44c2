package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stemsi/sodaubai-backend/internal/model"
	"github.com/stemsi/sodaubai-backend/internal/repository"
	"github.com/stemsi/sodaubai-backend/internal/stats"
)

// ErrNotEntryOwner is returned when a teacher touches another teacher's entry.
var ErrNotEntryOwner = errors.New("entry belongs to another teacher")

// EntryService handles the lesson logbook of the logged-in teacher.
type EntryService struct {
	entries *repository.EntryRepository
	now     func() time.Time
	log     zerolog.Logger
}

// NewEntryService creates a new EntryService. now must return the current
// time in the school's time zone; it decides what "today" is.
func NewEntryService(entries *repository.EntryRepository, now func() time.Time, log zerolog.Logger) *EntryService {
	return &EntryService{
		entries: entries,
		now:     now,
		log:     log.With().Str("component", "entry_service").Logger(),
	}
}

// Create records a new lesson owned by account.
func (s *EntryService) Create(ctx context.Context, account model.Account, req model.EntryRequest) (*model.LessonEntry, error) {
	e := model.LessonEntry{
		ID:          uuid.New().String(),
		TeacherID:   account.ID,
		TeacherName: account.FullName,
		CreatedAt:   s.now().UnixMilli(),
	}
	req.ApplyTo(&e)

	if err := s.entries.Create(ctx, e); err != nil {
		return nil, fmt.Errorf("create entry: %w", err)
	}
	s.log.Info().Str("entry_id", e.ID).Str("teacher_id", account.ID).Msg("entry created")
	return &e, nil
}

// Get returns an entry. Teachers may only read their own; admins read any.
func (s *EntryService) Get(ctx context.Context, account model.Account, id string) (*model.LessonEntry, error) {
	e, err := s.entries.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !account.IsAdmin() && e.TeacherID != account.ID {
		return nil, ErrNotEntryOwner
	}
	return e, nil
}

// Update overwrites the descriptive fields of an entry owned by account.
func (s *EntryService) Update(ctx context.Context, account model.Account, id string, req model.EntryRequest) (*model.LessonEntry, error) {
	e, err := s.entries.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if e.TeacherID != account.ID {
		return nil, ErrNotEntryOwner
	}

	req.ApplyTo(e)
	if err := s.entries.Update(ctx, *e); err != nil {
		return nil, fmt.Errorf("update entry: %w", err)
	}
	s.log.Info().Str("entry_id", id).Msg("entry updated")
	return e, nil
}

// Delete removes an entry owned by account. Deleting an unknown id succeeds.
func (s *EntryService) Delete(ctx context.Context, account model.Account, id string) error {
	e, err := s.entries.GetByID(ctx, id)
	if errors.Is(err, repository.ErrEntryNotFound) {
		return nil
	}
	if err != nil {
		return err
	}
	if e.TeacherID != account.ID {
		return ErrNotEntryOwner
	}

	if err := s.entries.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete entry: %w", err)
	}
	s.log.Info().Str("entry_id", id).Msg("entry deleted")
	return nil
}

// History returns the caller's entries narrowed by q, newest first.
func (s *EntryService) History(ctx context.Context, account model.Account, q model.EntryQuery) ([]model.LessonEntry, error) {
	all, err := s.entries.List(ctx)
	if err != nil {
		return nil, err
	}
	return stats.Filter(all, stats.CriteriaFromQuery(account.ID, q)), nil
}

// Options lists the class and subject filter values of the caller's entries.
func (s *EntryService) Options(ctx context.Context, account model.Account) (model.FilterOptions, error) {
	own, err := s.owned(ctx, account)
	if err != nil {
		return model.FilterOptions{}, err
	}
	return stats.Options(own), nil
}

// Today returns the caller's entries dated today.
func (s *EntryService) Today(ctx context.Context, account model.Account) ([]model.LessonEntry, error) {
	all, err := s.entries.List(ctx)
	if err != nil {
		return nil, err
	}
	today := s.now().Format(model.DateLayout)
	return stats.Filter(all, stats.Criteria{OwnerID: account.ID, DateFrom: today, DateTo: today}), nil
}

// RecentSubjects returns the subjects the caller has taught, most recent first.
func (s *EntryService) RecentSubjects(ctx context.Context, account model.Account) ([]string, error) {
	own, err := s.owned(ctx, account)
	if err != nil {
		return nil, err
	}
	return stats.RecentSubjects(own), nil
}

func (s *EntryService) owned(ctx context.Context, account model.Account) ([]model.LessonEntry, error) {
	all, err := s.entries.List(ctx)
	if err != nil {
		return nil, err
	}
	return stats.Filter(all, stats.Criteria{OwnerID: account.ID}), nil
}
