package auth

import (
	"context"
	"errors"
	"fmt"
	"time"
)

// Service is the session authority: it issues signed, time-bounded session
// tokens, verifies their validity and freshness, and owns the revocation
// set and signing secret. No other component may mint or revoke sessions.
type Service struct {
	users   UserRepository
	revoked *RevocationSet
	secret  string
	ttl     time.Duration
	logger  Logger
}

// NewService creates the session authority.
//
// Parameters:
//   - users: User store collaborator (credentials are read at login and
//     written at registration only)
//   - secret: HMAC signing secret for session tokens
//   - ttl: Token lifetime (the deployment default is 7 days)
//   - logger: Structured logger
func NewService(users UserRepository, secret string, ttl time.Duration, logger Logger) *Service {
	return &Service{
		users:   users,
		revoked: NewRevocationSet(),
		secret:  secret,
		ttl:     ttl,
		logger:  logger,
	}
}

// Register creates a new account. The caller logs in separately; no token
// is issued here.
//
// Returns ErrEmailExists if the email is already registered.
func (s *Service) Register(ctx context.Context, email, password, name string) error {
	hash, err := HashPassword(password)
	if err != nil {
		return fmt.Errorf("registering user: %w", err)
	}

	user := &User{
		Email:        email,
		DisplayName:  name,
		PasswordHash: hash,
	}
	if err := s.users.Create(ctx, user); err != nil {
		if errors.Is(err, ErrEmailExists) {
			return ErrEmailExists
		}
		return fmt.Errorf("registering user: %w", err)
	}

	s.logger.Info("user registered", "email", email)
	return nil
}

// Login checks credentials and issues a session token.
//
// "No such user" and "wrong password" both return the bare
// ErrInvalidCredentials sentinel so the two cases are byte-identical to a
// caller and cannot be used to enumerate registered emails.
func (s *Service) Login(ctx context.Context, email, password string) (token, name string, err error) {
	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			return "", "", ErrInvalidCredentials
		}
		return "", "", fmt.Errorf("looking up user: %w", err)
	}

	if !VerifyPassword(password, user.PasswordHash) {
		return "", "", ErrInvalidCredentials
	}

	token, err = GenerateSessionToken(user.Email, user.DisplayName, s.secret, s.ttl)
	if err != nil {
		return "", "", fmt.Errorf("issuing session: %w", err)
	}

	s.logger.Info("user logged in", "email", email)
	return token, user.DisplayName, nil
}

// Verify checks a session token's validity and freshness.
//
// Failure order is fixed: expiry and signature are checked first (an
// expired token reports ErrTokenExpired regardless of revocation status),
// then the revocation set.
func (s *Service) Verify(token string) (*SessionClaims, error) {
	claims, err := ParseSessionToken(token, s.secret)
	if err != nil {
		return nil, err
	}

	if s.revoked.IsRevoked(token) {
		return nil, ErrTokenRevoked
	}

	return claims, nil
}

// Logout revokes a session token. Idempotent; revoking an expired or
// already-revoked token is safe.
func (s *Service) Logout(token string) {
	s.revoked.Revoke(token)
	s.logger.Info("session revoked", "revoked_total", s.revoked.Size())
}
