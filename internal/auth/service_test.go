package auth

import (
	"context"
	"errors"
	"testing"
	"time"
)

func testService(t *testing.T) *Service {
	t.Helper()
	db := testDB(t)
	return NewService(NewUserRepository(db), testSecret, 7*24*time.Hour, discardLogger{})
}

func TestService_RegisterThenLogin(t *testing.T) {
	svc := testService(t)
	ctx := context.Background()

	if err := svc.Register(ctx, "eve@example.com", "s3cret", "Eve"); err != nil {
		t.Fatalf("Register() error = %v", err)
	}

	token, name, err := svc.Login(ctx, "eve@example.com", "s3cret")
	if err != nil {
		t.Fatalf("Login() error = %v", err)
	}
	if name != "Eve" {
		t.Errorf("Login() name = %q, want Eve", name)
	}

	claims, err := svc.Verify(token)
	if err != nil {
		t.Fatalf("Verify() error = %v", err)
	}
	if claims.Email != "eve@example.com" {
		t.Errorf("Verify() email = %q, want eve@example.com", claims.Email)
	}
}

func TestService_Register_Conflict(t *testing.T) {
	svc := testService(t)
	ctx := context.Background()

	if err := svc.Register(ctx, "frank@example.com", "pw", "Frank"); err != nil {
		t.Fatalf("Register() error = %v", err)
	}
	if err := svc.Register(ctx, "frank@example.com", "other", "Imposter"); !errors.Is(err, ErrEmailExists) {
		t.Errorf("Register(duplicate) error = %v, want ErrEmailExists", err)
	}
}

func TestService_Login_IdenticalFailures(t *testing.T) {
	// Unknown email and wrong password must be indistinguishable: the same
	// sentinel error, with identical text, so neither the API layer nor an
	// attacker can tell the cases apart.
	svc := testService(t)
	ctx := context.Background()

	if err := svc.Register(ctx, "grace@example.com", "right-password", "Grace"); err != nil {
		t.Fatalf("Register() error = %v", err)
	}

	_, _, errUnknown := svc.Login(ctx, "nobody@example.com", "whatever")
	_, _, errWrongPw := svc.Login(ctx, "grace@example.com", "wrong-password")

	if !errors.Is(errUnknown, ErrInvalidCredentials) {
		t.Errorf("unknown email error = %v, want ErrInvalidCredentials", errUnknown)
	}
	if !errors.Is(errWrongPw, ErrInvalidCredentials) {
		t.Errorf("wrong password error = %v, want ErrInvalidCredentials", errWrongPw)
	}
	if errUnknown.Error() != errWrongPw.Error() {
		t.Errorf("failure messages differ: %q vs %q", errUnknown.Error(), errWrongPw.Error())
	}
}

func TestService_VerifyAfterLogout(t *testing.T) {
	svc := testService(t)
	ctx := context.Background()

	if err := svc.Register(ctx, "heidi@example.com", "pw", "Heidi"); err != nil {
		t.Fatalf("Register() error = %v", err)
	}
	token, _, err := svc.Login(ctx, "heidi@example.com", "pw")
	if err != nil {
		t.Fatalf("Login() error = %v", err)
	}

	svc.Logout(token)

	// Revoked forever after.
	for i := 0; i < 2; i++ {
		if _, err := svc.Verify(token); !errors.Is(err, ErrTokenRevoked) {
			t.Errorf("Verify(revoked) error = %v, want ErrTokenRevoked", err)
		}
	}

	// Idempotent: a second logout changes nothing observable.
	svc.Logout(token)
	if _, err := svc.Verify(token); !errors.Is(err, ErrTokenRevoked) {
		t.Errorf("Verify after double logout error = %v, want ErrTokenRevoked", err)
	}
}

func TestService_Verify_ExpiredBeatsRevoked(t *testing.T) {
	db := testDB(t)
	svc := NewService(NewUserRepository(db), testSecret, -time.Minute, discardLogger{})
	ctx := context.Background()

	if err := svc.Register(ctx, "ivan@example.com", "pw", "Ivan"); err != nil {
		t.Fatalf("Register() error = %v", err)
	}
	token, _, err := svc.Login(ctx, "ivan@example.com", "pw")
	if err != nil {
		t.Fatalf("Login() error = %v", err)
	}

	// Revoke it too: expiry must still win.
	svc.Logout(token)

	if _, err := svc.Verify(token); !errors.Is(err, ErrTokenExpired) {
		t.Errorf("Verify(expired+revoked) error = %v, want ErrTokenExpired", err)
	}
}

func TestService_Verify_Malformed(t *testing.T) {
	svc := testService(t)
	if _, err := svc.Verify("garbage-token"); !errors.Is(err, ErrTokenInvalid) {
		t.Errorf("Verify(garbage) error = %v, want ErrTokenInvalid", err)
	}
}

func TestSeedDefaultAdmin(t *testing.T) {
	db := testDB(t)
	repo := NewUserRepository(db)
	ctx := context.Background()

	if err := SeedDefaultAdmin(ctx, repo, discardLogger{}); err != nil {
		t.Fatalf("SeedDefaultAdmin() error = %v", err)
	}

	admin, err := repo.GetByEmail(ctx, defaultAdminEmail)
	if err != nil {
		t.Fatalf("default admin missing: %v", err)
	}
	if !VerifyPassword(defaultAdminPassword, admin.PasswordHash) {
		t.Error("default admin password should verify")
	}

	// A second call on a populated table must not create anything.
	if err := SeedDefaultAdmin(ctx, repo, discardLogger{}); err != nil {
		t.Fatalf("second SeedDefaultAdmin() error = %v", err)
	}
	count, _ := repo.Count(ctx)
	if count != 1 {
		t.Errorf("user count = %d after re-seed, want 1", count)
	}
}
