package repository

import (
	"context"
	"sync"

	"github.com/rs/zerolog"
	"github.com/stemsi/sodaubai-backend/internal/config"
	"github.com/stemsi/sodaubai-backend/internal/kvstore"
	"github.com/stemsi/sodaubai-backend/internal/model"
)

type sessionDoc struct {
	Account   accountDoc `json:"account"`
	TokenID   string     `json:"token_id"`
	StartedAt int64      `json:"started_at"`
}

// SessionRepository persists the single current session. It is never seeded.
type SessionRepository struct {
	store kvstore.Store
	key   string
	log   zerolog.Logger

	// mu serializes UpdateSecret's read-modify-write against Save and Clear.
	mu sync.Mutex
}

func NewSessionRepository(store kvstore.Store, keys *config.BlobKeyStruct, log zerolog.Logger) *SessionRepository {
	return &SessionRepository{
		store: store,
		key:   keys.CurrentSessionKey(),
		log:   log.With().Str("component", "session_repository").Logger(),
	}
}

// Get returns the active session, or nil when nobody is logged in.
func (r *SessionRepository) Get(ctx context.Context) (*model.CurrentSession, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.load(ctx)
}

// Save replaces the active session.
func (r *SessionRepository) Save(ctx context.Context, s model.CurrentSession) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.save(ctx, s)
}

// Clear ends the active session, if any.
func (r *SessionRepository) Clear(ctx context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.store.Delete(ctx, r.key)
}

// UpdateSecret copies a changed credential onto the session account when
// it is the one logged in.
func (r *SessionRepository) UpdateSecret(ctx context.Context, accountID, secret string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	s, err := r.load(ctx)
	if err != nil || s == nil || s.Account.ID != accountID {
		return err
	}
	s.Account.Secret = secret
	return r.save(ctx, *s)
}

func (r *SessionRepository) load(ctx context.Context) (*model.CurrentSession, error) {
	var doc sessionDoc
	found, err := loadJSON(ctx, r.store, r.key, &doc)
	if err != nil || !found {
		return nil, err
	}
	return &model.CurrentSession{
		Account:   doc.Account.model(),
		TokenID:   doc.TokenID,
		StartedAt: unixMilli(doc.StartedAt),
	}, nil
}

func (r *SessionRepository) save(ctx context.Context, s model.CurrentSession) error {
	return saveJSON(ctx, r.store, r.key, sessionDoc{
		Account:   toAccountDoc(s.Account),
		TokenID:   s.TokenID,
		StartedAt: s.StartedAt.UnixMilli(),
	})
}
