package repository

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"github.com/stemsi/sodaubai-backend/internal/config"
	"github.com/stemsi/sodaubai-backend/internal/kvstore"
	"github.com/stemsi/sodaubai-backend/internal/model"
)

var ErrEntryNotFound = errors.New("lesson entry not found")

// EntryRepository owns the lesson entry list, newest first.
type EntryRepository struct {
	store kvstore.Store
	key   string
	now   func() time.Time
	log   zerolog.Logger

	mu sync.Mutex
}

// NewEntryRepository creates an EntryRepository. now dates the seed entries
// written into an empty store.
func NewEntryRepository(store kvstore.Store, keys *config.BlobKeyStruct, now func() time.Time, log zerolog.Logger) *EntryRepository {
	if now == nil {
		now = time.Now
	}
	return &EntryRepository{
		store: store,
		key:   keys.EntriesKey(),
		now:   now,
		log:   log.With().Str("component", "entry_repository").Logger(),
	}
}

// List returns every entry in canonical order, seeding the defaults into an
// empty store.
func (r *EntryRepository) List(ctx context.Context) ([]model.LessonEntry, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.load(ctx)
}

// GetByID returns the entry with the given id.
func (r *EntryRepository) GetByID(ctx context.Context, id string) (*model.LessonEntry, error) {
	entries, err := r.List(ctx)
	if err != nil {
		return nil, err
	}
	for i := range entries {
		if entries[i].ID == id {
			return &entries[i], nil
		}
	}
	return nil, ErrEntryNotFound
}

// Create puts e at the front of the list.
func (r *EntryRepository) Create(ctx context.Context, e model.LessonEntry) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	entries, err := r.load(ctx)
	if err != nil {
		return err
	}

	next := make([]model.LessonEntry, 0, len(entries)+1)
	next = append(next, e)
	next = append(next, entries...)
	if err := saveJSON(ctx, r.store, r.key, next); err != nil {
		return err
	}
	r.log.Debug().Str("entry_id", e.ID).Str("teacher_id", e.TeacherID).Msg("entry created")
	return nil
}

// Update replaces the entry carrying e.ID in place. An unknown id is
// silently ignored.
func (r *EntryRepository) Update(ctx context.Context, e model.LessonEntry) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	entries, err := r.load(ctx)
	if err != nil {
		return err
	}
	for i := range entries {
		if entries[i].ID == e.ID {
			entries[i] = e
			return saveJSON(ctx, r.store, r.key, entries)
		}
	}
	return nil
}

// Delete removes the entry with the given id, if any.
func (r *EntryRepository) Delete(ctx context.Context, id string) error {
	_, err := r.removeWhere(ctx, func(e model.LessonEntry) bool { return e.ID == id })
	return err
}

// DeleteBySubject removes every entry whose subject equals subject exactly,
// whoever owns it. It returns how many entries were removed.
func (r *EntryRepository) DeleteBySubject(ctx context.Context, subject string) (int, error) {
	n, err := r.removeWhere(ctx, func(e model.LessonEntry) bool { return e.Subject == subject })
	if err == nil && n > 0 {
		r.log.Info().Str("subject", subject).Int("removed", n).Msg("entries deleted by subject")
	}
	return n, err
}

func (r *EntryRepository) removeWhere(ctx context.Context, match func(model.LessonEntry) bool) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	entries, err := r.load(ctx)
	if err != nil {
		return 0, err
	}
	kept := make([]model.LessonEntry, 0, len(entries))
	for _, e := range entries {
		if !match(e) {
			kept = append(kept, e)
		}
	}
	removed := len(entries) - len(kept)
	if removed == 0 {
		return 0, nil
	}
	return removed, saveJSON(ctx, r.store, r.key, kept)
}

func (r *EntryRepository) load(ctx context.Context) ([]model.LessonEntry, error) {
	var entries []model.LessonEntry
	found, err := loadJSON(ctx, r.store, r.key, &entries)
	if err != nil {
		return nil, err
	}
	if found {
		if entries == nil {
			entries = []model.LessonEntry{}
		}
		return entries, nil
	}

	seed := DefaultEntries(r.now())
	if err := saveJSON(ctx, r.store, r.key, seed); err != nil {
		return nil, err
	}
	r.log.Info().Int("count", len(seed)).Msg("seeded default entries")
	return seed, nil
}
