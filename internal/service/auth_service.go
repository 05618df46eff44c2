package service

import (
	"context"
	"crypto/subtle"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stemsi/sodaubai-backend/internal/config"
	"github.com/stemsi/sodaubai-backend/internal/model"
	"github.com/stemsi/sodaubai-backend/internal/repository"
	"golang.org/x/crypto/bcrypt"
)

// Common auth errors.
var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrNoActiveSession    = errors.New("no active session")
	ErrSessionInvalidated = errors.New("session invalidated by a newer login")
)

// Claims extends JWT standard claims with the logged-in account.
type Claims struct {
	jwt.RegisteredClaims
	AccountID string     `json:"account_id"`
	Role      model.Role `json:"role"`
}

// AuthService is the session gate: it checks credentials, issues tokens and
// keeps the single current session.
type AuthService struct {
	cfg      *config.Config
	accounts *repository.AccountRepository
	sessions *repository.SessionRepository
	now      func() time.Time
	log      zerolog.Logger
}

// NewAuthService creates a new AuthService.
func NewAuthService(
	cfg *config.Config,
	accounts *repository.AccountRepository,
	sessions *repository.SessionRepository,
	log zerolog.Logger,
) *AuthService {
	return &AuthService{
		cfg:      cfg,
		accounts: accounts,
		sessions: sessions,
		now:      time.Now,
		log:      log.With().Str("component", "auth_service").Logger(),
	}
}

// HashPassword hashes a password with the configured bcrypt cost.
func (s *AuthService) HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.cfg.BcryptCost)
	return string(hash), err
}

// CheckPassword compares a password against a stored secret. Secrets that
// are not bcrypt hashes were written by older plain-text deployments and
// are compared verbatim.
func (s *AuthService) CheckPassword(stored, password string) error {
	if stored == "" || password == "" {
		return ErrInvalidCredentials
	}
	if !isBcryptHash(stored) {
		if subtle.ConstantTimeCompare([]byte(stored), []byte(password)) != 1 {
			return ErrInvalidCredentials
		}
		return nil
	}
	if err := bcrypt.CompareHashAndPassword([]byte(stored), []byte(password)); err != nil {
		return ErrInvalidCredentials
	}
	return nil
}

func isBcryptHash(s string) bool {
	return len(s) == 60 && (strings.HasPrefix(s, "$2a$") || strings.HasPrefix(s, "$2b$") || strings.HasPrefix(s, "$2y$"))
}

// Login authenticates username. Teachers need no password and any supplied
// one is ignored; admins must match their secret exactly. On success the
// account becomes the current session, replacing any previous one.
func (s *AuthService) Login(ctx context.Context, username, password string) (*model.LoginResponse, error) {
	account, err := s.accounts.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, repository.ErrAccountNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("lookup account: %w", err)
	}

	if account.IsAdmin() {
		if err := s.CheckPassword(account.Secret, password); err != nil {
			s.log.Warn().Str("username", username).Msg("admin login rejected")
			return nil, err
		}
	}

	jti := uuid.New().String()
	token, err := s.signToken(*account, jti)
	if err != nil {
		return nil, err
	}

	if err := s.sessions.Save(ctx, model.CurrentSession{
		Account:   *account,
		TokenID:   jti,
		StartedAt: s.now(),
	}); err != nil {
		return nil, fmt.Errorf("store session: %w", err)
	}

	s.log.Info().Str("account_id", account.ID).Str("role", string(account.Role)).Msg("login")
	return &model.LoginResponse{Token: token, Account: *account}, nil
}

// Logout clears the current session unconditionally.
func (s *AuthService) Logout(ctx context.Context) error {
	if err := s.sessions.Clear(ctx); err != nil {
		return fmt.Errorf("clear session: %w", err)
	}
	s.log.Info().Msg("logout")
	return nil
}

// CurrentAccount returns the account of the current session, or nil if
// nobody is logged in.
func (s *AuthService) CurrentAccount(ctx context.Context) (*model.Account, error) {
	sess, err := s.sessions.Get(ctx)
	if err != nil || sess == nil {
		return nil, err
	}
	return &sess.Account, nil
}

func (s *AuthService) signToken(account model.Account, jti string) (string, error) {
	now := s.now()
	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			ID:       jti,
			Subject:  account.ID,
			IssuedAt: jwt.NewNumericDate(now),
		},
		AccountID: account.ID,
		Role:      account.Role,
	}
	if s.cfg.JWTExpiry > 0 {
		claims.ExpiresAt = jwt.NewNumericDate(now.Add(s.cfg.JWTExpiry))
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(s.cfg.JWTSecret))
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}

// ValidateToken parses and validates a JWT, returning the claims.
func (s *AuthService) ValidateToken(tokenStr string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenStr, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return []byte(s.cfg.JWTSecret), nil
	})
	if err != nil {
		return nil, fmt.Errorf("parse token: %w", err)
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, errors.New("invalid token claims")
	}
	return claims, nil
}

// ValidateSession checks that the token belongs to the current session and
// returns the session account.
func (s *AuthService) ValidateSession(ctx context.Context, claims *Claims) (*model.Account, error) {
	sess, err := s.sessions.Get(ctx)
	if err != nil {
		return nil, fmt.Errorf("load session: %w", err)
	}
	if sess == nil {
		return nil, ErrNoActiveSession
	}
	if sess.TokenID != claims.ID || sess.Account.ID != claims.AccountID {
		return nil, ErrSessionInvalidated
	}
	return &sess.Account, nil
}
