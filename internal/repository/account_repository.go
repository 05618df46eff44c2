package repository

import (
	"context"
	"errors"
	"sync"

	"github.com/rs/zerolog"
	"github.com/stemsi/sodaubai-backend/internal/config"
	"github.com/stemsi/sodaubai-backend/internal/kvstore"
	"github.com/stemsi/sodaubai-backend/internal/model"
)

// Account errors.
var (
	ErrDuplicateUsername = errors.New("username already exists")
	ErrAccountNotFound   = errors.New("account not found")
)

// accountDoc is the stored shape of an account. Unlike model.Account it
// serializes the secret.
type accountDoc struct {
	ID       string     `json:"id"`
	Username string     `json:"username"`
	FullName string     `json:"full_name"`
	Role     model.Role `json:"role"`
	Password string     `json:"password,omitempty"`
}

func toAccountDoc(a model.Account) accountDoc {
	return accountDoc{ID: a.ID, Username: a.Username, FullName: a.FullName, Role: a.Role, Password: a.Secret}
}

func (d accountDoc) model() model.Account {
	return model.Account{ID: d.ID, Username: d.Username, FullName: d.FullName, Role: d.Role, Secret: d.Password}
}

// AccountRepository owns the ordered account list.
type AccountRepository struct {
	store kvstore.Store
	key   string
	seed  []model.Account
	log   zerolog.Logger

	// mu serializes every read-modify-write of the list.
	mu sync.Mutex
}

// NewAccountRepository creates an AccountRepository. seed is written the
// first time the list is read from an empty store.
func NewAccountRepository(store kvstore.Store, keys *config.BlobKeyStruct, seed []model.Account, log zerolog.Logger) *AccountRepository {
	return &AccountRepository{
		store: store,
		key:   keys.AccountsKey(),
		seed:  seed,
		log:   log.With().Str("component", "account_repository").Logger(),
	}
}

// List returns every account in insertion order, seeding the defaults into
// an empty store.
func (r *AccountRepository) List(ctx context.Context) ([]model.Account, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.load(ctx)
}

// GetByID returns the account with the given id.
func (r *AccountRepository) GetByID(ctx context.Context, id string) (*model.Account, error) {
	accounts, err := r.List(ctx)
	if err != nil {
		return nil, err
	}
	for i := range accounts {
		if accounts[i].ID == id {
			return &accounts[i], nil
		}
	}
	return nil, ErrAccountNotFound
}

// GetByUsername returns the account whose username matches exactly.
func (r *AccountRepository) GetByUsername(ctx context.Context, username string) (*model.Account, error) {
	accounts, err := r.List(ctx)
	if err != nil {
		return nil, err
	}
	for i := range accounts {
		if accounts[i].Username == username {
			return &accounts[i], nil
		}
	}
	return nil, ErrAccountNotFound
}

// Create appends an account. The list is left untouched when the username
// is already taken.
func (r *AccountRepository) Create(ctx context.Context, a model.Account) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	accounts, err := r.load(ctx)
	if err != nil {
		return err
	}
	for _, existing := range accounts {
		if existing.Username == a.Username {
			return ErrDuplicateUsername
		}
	}

	if err := r.save(ctx, append(accounts, a)); err != nil {
		return err
	}
	r.log.Debug().Str("account_id", a.ID).Str("role", string(a.Role)).Msg("account created")
	return nil
}

// Delete removes the account with the given id. Lesson entries of that
// account are kept. Deleting an unknown id is a no-op.
func (r *AccountRepository) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	accounts, err := r.load(ctx)
	if err != nil {
		return err
	}
	kept := accounts[:0]
	for _, a := range accounts {
		if a.ID != id {
			kept = append(kept, a)
		}
	}
	if len(kept) == len(accounts) {
		return nil
	}
	if err := r.save(ctx, kept); err != nil {
		return err
	}
	r.log.Debug().Str("account_id", id).Msg("account deleted")
	return nil
}

// ChangeSecret replaces the credential of an ADMIN account. Unknown ids and
// teacher accounts yield ErrAccountNotFound.
func (r *AccountRepository) ChangeSecret(ctx context.Context, id, secret string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	accounts, err := r.load(ctx)
	if err != nil {
		return err
	}
	for i := range accounts {
		if accounts[i].ID == id && accounts[i].Role == model.RoleAdmin {
			accounts[i].Secret = secret
			return r.save(ctx, accounts)
		}
	}
	return ErrAccountNotFound
}

func (r *AccountRepository) load(ctx context.Context) ([]model.Account, error) {
	var docs []accountDoc
	found, err := loadJSON(ctx, r.store, r.key, &docs)
	if err != nil {
		return nil, err
	}
	if !found {
		seed := append([]model.Account(nil), r.seed...)
		if err := r.save(ctx, seed); err != nil {
			return nil, err
		}
		r.log.Info().Int("count", len(seed)).Msg("seeded default accounts")
		return seed, nil
	}

	accounts := make([]model.Account, len(docs))
	for i, d := range docs {
		accounts[i] = d.model()
	}
	return accounts, nil
}

func (r *AccountRepository) save(ctx context.Context, accounts []model.Account) error {
	docs := make([]accountDoc, len(accounts))
	for i, a := range accounts {
		docs[i] = toAccountDoc(a)
	}
	return saveJSON(ctx, r.store, r.key, docs)
}
