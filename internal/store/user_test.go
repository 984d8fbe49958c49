package store

import (
	"testing"

	"github.com/dukerupert/listmate/internal/database"
)

func setupTestDB(t *testing.T) (*UserStore, *ListStore, *ItemStore) {
	t.Helper()
	db, err := database.Open(":memory:")
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return NewUserStore(db), NewListStore(db), NewItemStore(db)
}

func TestUserCRUD(t *testing.T) {
	us, _, _ := setupTestDB(t)

	user, err := us.Create("Alice", "alice@example.com", "hash")
	if err != nil {
		t.Fatalf("create user: %v", err)
	}
	if user.Name != "Alice" {
		t.Errorf("name = %q, want %q", user.Name, "Alice")
	}
	if user.Email != "alice@example.com" {
		t.Errorf("email = %q, want %q", user.Email, "alice@example.com")
	}

	got, err := us.GetByEmail("alice@example.com")
	if err != nil {
		t.Fatalf("get by email: %v", err)
	}
	if got == nil || got.ID != user.ID {
		t.Fatalf("get by email = %v, want user %d", got, user.ID)
	}

	updated, err := us.Update(user.ID, "Alice B", "aliceb@example.com")
	if err != nil {
		t.Fatalf("update user: %v", err)
	}
	if updated.Name != "Alice B" || updated.Email != "aliceb@example.com" {
		t.Errorf("updated = %q/%q", updated.Name, updated.Email)
	}

	if err := us.SoftDelete(user.ID); err != nil {
		t.Fatalf("soft delete: %v", err)
	}
	got, err = us.GetByID(user.ID)
	if err != nil {
		t.Fatalf("get after delete: %v", err)
	}
	if got != nil {
		t.Error("soft-deleted user should not be returned")
	}
	got, err = us.GetByEmail("aliceb@example.com")
	if err != nil {
		t.Fatalf("get by email after delete: %v", err)
	}
	if got != nil {
		t.Error("soft-deleted user should not resolve by email")
	}
}

func TestUserEmailUnique(t *testing.T) {
	us, _, _ := setupTestDB(t)

	if _, err := us.Create("Alice", "alice@example.com", "hash"); err != nil {
		t.Fatalf("create user: %v", err)
	}
	_, err := us.Create("Imposter", "alice@example.com", "hash")
	if err == nil {
		t.Fatal("duplicate email should fail")
	}
	if !IsUniqueViolation(err) {
		t.Errorf("expected unique violation, got %v", err)
	}
}

func TestUserGetMissing(t *testing.T) {
	us, _, _ := setupTestDB(t)

	got, err := us.GetByID(42)
	if err != nil {
		t.Fatalf("get missing user: %v", err)
	}
	if got != nil {
		t.Error("missing user should be nil, not an error")
	}
}
