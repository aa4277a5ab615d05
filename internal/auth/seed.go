package auth

import (
	"context"
	"errors"
	"fmt"
)

// Default admin credentials, created only when the user table is empty.
// The original deployment bootstrapped the same account into users.json
// so a fresh install is reachable before any registration.
const (
	defaultAdminEmail    = "admin@utc.com"
	defaultAdminPassword = "admin1234"
	defaultAdminName     = "Admin"
)

// Logger is the minimal logging interface the auth package needs.
// Compatible with logging.Logger.
type Logger interface {
	Info(msg string, args ...any)
	Warn(msg string, args ...any)
}

// SeedDefaultAdmin creates the default admin account if no users exist.
// On a populated database it does nothing.
func SeedDefaultAdmin(ctx context.Context, repo UserRepository, logger Logger) error {
	count, err := repo.Count(ctx)
	if err != nil {
		return fmt.Errorf("checking user count: %w", err)
	}
	if count > 0 {
		return nil
	}

	hash, err := HashPassword(defaultAdminPassword)
	if err != nil {
		return fmt.Errorf("hashing default password: %w", err)
	}

	err = repo.Create(ctx, &User{
		Email:        defaultAdminEmail,
		DisplayName:  defaultAdminName,
		PasswordHash: hash,
	})
	if err != nil {
		// Lost a race with a concurrent first registration; not a problem.
		if errors.Is(err, ErrEmailExists) {
			return nil
		}
		return fmt.Errorf("creating default admin: %w", err)
	}

	logger.Warn("seeded default admin account, change the password",
		"email", defaultAdminEmail,
	)
	return nil
}
