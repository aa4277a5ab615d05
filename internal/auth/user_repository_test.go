package auth

import (
	"context"
	"errors"
	"testing"
)

func TestUserRepository_CreateAndGetByEmail(t *testing.T) {
	db := testDB(t)
	repo := NewUserRepository(db)
	ctx := context.Background()

	user := &User{
		Email:        "dana@example.com",
		DisplayName:  "Dana",
		PasswordHash: "digest-placeholder",
	}
	if err := repo.Create(ctx, user); err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	if user.ID == "" {
		t.Fatal("Create() should generate an ID")
	}

	got, err := repo.GetByEmail(ctx, "dana@example.com")
	if err != nil {
		t.Fatalf("GetByEmail() error = %v", err)
	}
	if got.DisplayName != "Dana" {
		t.Errorf("DisplayName = %q, want Dana", got.DisplayName)
	}
	if got.PasswordHash != "digest-placeholder" {
		t.Errorf("PasswordHash = %q, want stored digest", got.PasswordHash)
	}
	if got.CreatedAt.IsZero() {
		t.Error("CreatedAt should be populated")
	}
}

func TestUserRepository_DuplicateEmail(t *testing.T) {
	db := testDB(t)
	repo := NewUserRepository(db)
	ctx := context.Background()

	first := &User{Email: "dup@example.com", DisplayName: "First", PasswordHash: "h1"}
	if err := repo.Create(ctx, first); err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	second := &User{Email: "dup@example.com", DisplayName: "Second", PasswordHash: "h2"}
	if err := repo.Create(ctx, second); !errors.Is(err, ErrEmailExists) {
		t.Errorf("Create(duplicate) error = %v, want ErrEmailExists", err)
	}
}

func TestUserRepository_GetByEmail_NotFound(t *testing.T) {
	db := testDB(t)
	repo := NewUserRepository(db)

	_, err := repo.GetByEmail(context.Background(), "nobody@example.com")
	if !errors.Is(err, ErrUserNotFound) {
		t.Errorf("GetByEmail(missing) error = %v, want ErrUserNotFound", err)
	}
}

func TestUserRepository_Count(t *testing.T) {
	db := testDB(t)
	repo := NewUserRepository(db)
	ctx := context.Background()

	count, err := repo.Count(ctx)
	if err != nil {
		t.Fatalf("Count() error = %v", err)
	}
	if count != 0 {
		t.Errorf("Count() = %d on empty table, want 0", count)
	}

	seedTestUser(t, db, "one@example.com", "pw", "One")
	seedTestUser(t, db, "two@example.com", "pw", "Two")

	count, err = repo.Count(ctx)
	if err != nil {
		t.Fatalf("Count() error = %v", err)
	}
	if count != 2 {
		t.Errorf("Count() = %d, want 2", count)
	}
}
