package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stemsi/sodaubai-backend/internal/model"
	"github.com/stemsi/sodaubai-backend/internal/repository"
)

// ErrNotTeacherAccount is returned when a teacher operation targets an admin.
var ErrNotTeacherAccount = errors.New("account is not a teacher")

// AccountService handles teacher and admin account management.
type AccountService struct {
	accounts *repository.AccountRepository
	sessions *repository.SessionRepository
	auth     *AuthService
	log      zerolog.Logger
}

// NewAccountService creates a new AccountService.
func NewAccountService(
	accounts *repository.AccountRepository,
	sessions *repository.SessionRepository,
	auth *AuthService,
	log zerolog.Logger,
) *AccountService {
	return &AccountService{
		accounts: accounts,
		sessions: sessions,
		auth:     auth,
		log:      log.With().Str("component", "account_service").Logger(),
	}
}

// List returns every account.
func (s *AccountService) List(ctx context.Context) ([]model.Account, error) {
	return s.accounts.List(ctx)
}

// ListTeachers returns only TEACHER accounts, in insertion order.
func (s *AccountService) ListTeachers(ctx context.Context) ([]model.Account, error) {
	all, err := s.List(ctx)
	if err != nil {
		return nil, err
	}
	teachers := make([]model.Account, 0, len(all))
	for _, a := range all {
		if a.Role == model.RoleTeacher {
			teachers = append(teachers, a)
		}
	}
	return teachers, nil
}

// CreateTeacher adds a teacher account. Returns
// repository.ErrDuplicateUsername if the username is taken.
func (s *AccountService) CreateTeacher(ctx context.Context, username, fullName string) (*model.Account, error) {
	a := model.Account{
		ID:       uuid.New().String(),
		Username: username,
		FullName: fullName,
		Role:     model.RoleTeacher,
	}
	if err := s.accounts.Create(ctx, a); err != nil {
		return nil, err
	}
	s.log.Info().Str("account_id", a.ID).Str("username", username).Msg("teacher created")
	return &a, nil
}

// CreateAdmin adds an administrator holding a hashed copy of secret.
func (s *AccountService) CreateAdmin(ctx context.Context, username, fullName, secret string) (*model.Account, error) {
	hash, err := s.auth.HashPassword(secret)
	if err != nil {
		return nil, fmt.Errorf("hash secret: %w", err)
	}
	a := model.Account{
		ID:       uuid.New().String(),
		Username: username,
		FullName: fullName,
		Role:     model.RoleAdmin,
		Secret:   hash,
	}
	if err := s.accounts.Create(ctx, a); err != nil {
		return nil, err
	}
	s.log.Info().Str("account_id", a.ID).Str("username", username).Msg("admin created")
	return &a, nil
}

// DeleteTeacher removes a TEACHER account. Its lesson entries stay in the
// logbook. An unknown id is a no-op; an ADMIN id yields ErrNotTeacherAccount.
func (s *AccountService) DeleteTeacher(ctx context.Context, id string) error {
	a, err := s.accounts.GetByID(ctx, id)
	if errors.Is(err, repository.ErrAccountNotFound) {
		return nil
	}
	if err != nil {
		return err
	}
	if a.Role != model.RoleTeacher {
		return ErrNotTeacherAccount
	}

	if err := s.accounts.Delete(ctx, id); err != nil {
		return err
	}
	s.log.Info().Str("account_id", id).Msg("teacher deleted")
	return nil
}

// ChangeCredential sets a new secret on an ADMIN account and on the current
// session if that account is logged in. Teacher or unknown ids fail with
// repository.ErrAccountNotFound.
func (s *AccountService) ChangeCredential(ctx context.Context, accountID, newSecret string) error {
	hash, err := s.auth.HashPassword(newSecret)
	if err != nil {
		return fmt.Errorf("hash secret: %w", err)
	}
	if err := s.accounts.ChangeSecret(ctx, accountID, hash); err != nil {
		return err
	}
	if err := s.sessions.UpdateSecret(ctx, accountID, hash); err != nil {
		return fmt.Errorf("update session: %w", err)
	}
	s.log.Info().Str("account_id", accountID).Msg("admin credential changed")
	return nil
}
