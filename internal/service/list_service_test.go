package service

import (
	"errors"
	"testing"

	"github.com/dukerupert/listmate/internal/database"
	"github.com/dukerupert/listmate/internal/model"
	"github.com/dukerupert/listmate/internal/store"
)

type fixture struct {
	users *store.UserStore
	lists *ListService
	items *ItemService
	usrs  *UserService
}

func setup(t *testing.T) *fixture {
	t.Helper()
	db, err := database.Open(":memory:")
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	userStore := store.NewUserStore(db)
	listStore := store.NewListStore(db)
	itemStore := store.NewItemStore(db)
	return &fixture{
		users: userStore,
		lists: NewListService(listStore, itemStore, userStore),
		items: NewItemService(listStore, itemStore, userStore),
		usrs:  NewUserService(userStore, listStore),
	}
}

func (f *fixture) user(t *testing.T, name, email string) *model.User {
	t.Helper()
	u, err := f.users.Create(name, email, "hash")
	if err != nil {
		t.Fatalf("create user %s: %v", name, err)
	}
	return u
}

func TestCreateAndGetList(t *testing.T) {
	f := setup(t)
	alice := f.user(t, "Alice", "alice@example.com")

	list, err := f.lists.Create(alice.ID, "Groceries", "weekly run")
	if err != nil {
		t.Fatalf("create list: %v", err)
	}
	if list.OwnerID != alice.ID {
		t.Errorf("owner = %d, want %d", list.OwnerID, alice.ID)
	}

	detail, err := f.lists.Get(list.ID, alice.ID)
	if err != nil {
		t.Fatalf("get list: %v", err)
	}
	if detail.Owner.ID != alice.ID {
		t.Errorf("detail owner = %d", detail.Owner.ID)
	}
	if len(detail.Participants) != 0 {
		t.Errorf("new list should have no participants, got %d", len(detail.Participants))
	}
}

func TestCreateListRequiresName(t *testing.T) {
	f := setup(t)
	alice := f.user(t, "Alice", "alice@example.com")

	_, err := f.lists.Create(alice.ID, "   ", "")
	if !errors.Is(err, ErrInvalidInput) {
		t.Errorf("expected InvalidInput, got %v", err)
	}
}

func TestGetListAccess(t *testing.T) {
	f := setup(t)
	alice := f.user(t, "Alice", "alice@example.com")
	bob := f.user(t, "Bob", "bob@example.com")
	carol := f.user(t, "Carol", "carol@example.com")

	list, _ := f.lists.Create(alice.ID, "Groceries", "")
	if _, err := f.lists.AddParticipant(list.ID, alice.ID, bob.Email); err != nil {
		t.Fatalf("add participant: %v", err)
	}

	if _, err := f.lists.Get(list.ID, bob.ID); err != nil {
		t.Errorf("participant read: %v", err)
	}
	if _, err := f.lists.Get(list.ID, carol.ID); !errors.Is(err, ErrForbidden) {
		t.Errorf("stranger read: expected Forbidden, got %v", err)
	}
	if _, err := f.lists.Get(999, alice.ID); !errors.Is(err, ErrNotFound) {
		t.Errorf("missing list: expected NotFound, got %v", err)
	}
}

func TestUpdateListOwnerOnly(t *testing.T) {
	f := setup(t)
	alice := f.user(t, "Alice", "alice@example.com")
	bob := f.user(t, "Bob", "bob@example.com")

	list, _ := f.lists.Create(alice.ID, "Groceries", "old")
	f.lists.AddParticipant(list.ID, alice.ID, bob.Email)

	name := "Renamed"
	if _, err := f.lists.Update(list.ID, bob.ID, ListPatch{Name: &name}); !errors.Is(err, ErrForbidden) {
		t.Errorf("participant update: expected Forbidden, got %v", err)
	}

	// Partial update: description untouched when nil.
	updated, err := f.lists.Update(list.ID, alice.ID, ListPatch{Name: &name})
	if err != nil {
		t.Fatalf("owner update: %v", err)
	}
	if updated.Name != "Renamed" || updated.Description != "old" {
		t.Errorf("updated = %q/%q", updated.Name, updated.Description)
	}
}

func TestRemoveListOwnerOnly(t *testing.T) {
	f := setup(t)
	alice := f.user(t, "Alice", "alice@example.com")
	bob := f.user(t, "Bob", "bob@example.com")

	list, _ := f.lists.Create(alice.ID, "Groceries", "")
	f.lists.AddParticipant(list.ID, alice.ID, bob.Email)

	if err := f.lists.Remove(list.ID, bob.ID); !errors.Is(err, ErrForbidden) {
		t.Errorf("participant remove: expected Forbidden, got %v", err)
	}
	if err := f.lists.Remove(list.ID, alice.ID); err != nil {
		t.Fatalf("owner remove: %v", err)
	}
	if _, err := f.lists.Get(list.ID, alice.ID); !errors.Is(err, ErrNotFound) {
		t.Errorf("get after remove: expected NotFound, got %v", err)
	}
}

func TestAddParticipant(t *testing.T) {
	f := setup(t)
	alice := f.user(t, "Alice", "alice@example.com")
	bob := f.user(t, "Bob", "bob@example.com")

	list, _ := f.lists.Create(alice.ID, "Groceries", "")

	detail, err := f.lists.AddParticipant(list.ID, alice.ID, bob.Email)
	if err != nil {
		t.Fatalf("add participant: %v", err)
	}
	if len(detail.Participants) != 1 || detail.Participants[0].ID != bob.ID {
		t.Fatalf("participants = %+v, want bob", detail.Participants)
	}

	// Adding the owner is a conflict: the owner already has full access.
	if _, err := f.lists.AddParticipant(list.ID, alice.ID, alice.Email); !errors.Is(err, ErrConflict) {
		t.Errorf("add owner: expected Conflict, got %v", err)
	}
	// Adding twice is a conflict.
	if _, err := f.lists.AddParticipant(list.ID, alice.ID, bob.Email); !errors.Is(err, ErrConflict) {
		t.Errorf("add duplicate: expected Conflict, got %v", err)
	}
	// Unknown email is not found.
	if _, err := f.lists.AddParticipant(list.ID, alice.ID, "ghost@example.com"); !errors.Is(err, ErrNotFound) {
		t.Errorf("add unknown: expected NotFound, got %v", err)
	}
	// Participants cannot manage membership.
	if _, err := f.lists.AddParticipant(list.ID, bob.ID, "ghost@example.com"); !errors.Is(err, ErrForbidden) {
		t.Errorf("participant adds: expected Forbidden, got %v", err)
	}
}

func TestRemoveParticipantIdempotent(t *testing.T) {
	f := setup(t)
	alice := f.user(t, "Alice", "alice@example.com")
	bob := f.user(t, "Bob", "bob@example.com")

	list, _ := f.lists.Create(alice.ID, "Groceries", "")
	f.lists.AddParticipant(list.ID, alice.ID, bob.Email)

	detail, err := f.lists.RemoveParticipant(list.ID, alice.ID, bob.ID)
	if err != nil {
		t.Fatalf("remove participant: %v", err)
	}
	if len(detail.Participants) != 0 {
		t.Errorf("participants = %+v, want empty", detail.Participants)
	}

	// Removing a non-member succeeds and leaves the roster unchanged.
	detail, err = f.lists.RemoveParticipant(list.ID, alice.ID, bob.ID)
	if err != nil {
		t.Fatalf("second remove: %v", err)
	}
	if len(detail.Participants) != 0 {
		t.Errorf("participants = %+v, want empty", detail.Participants)
	}

	// Manage-level: a participant may not remove anyone, even themselves.
	f.lists.AddParticipant(list.ID, alice.ID, bob.Email)
	if _, err := f.lists.RemoveParticipant(list.ID, bob.ID, bob.ID); !errors.Is(err, ErrForbidden) {
		t.Errorf("participant removes: expected Forbidden, got %v", err)
	}
}

func TestGetParticipantsIsReadLevel(t *testing.T) {
	f := setup(t)
	alice := f.user(t, "Alice", "alice@example.com")
	bob := f.user(t, "Bob", "bob@example.com")
	carol := f.user(t, "Carol", "carol@example.com")

	list, _ := f.lists.Create(alice.ID, "Groceries", "")
	f.lists.AddParticipant(list.ID, alice.ID, bob.Email)

	// Any member may view the roster; the owner is not part of it.
	roster, err := f.lists.GetParticipants(list.ID, bob.ID)
	if err != nil {
		t.Fatalf("participant views roster: %v", err)
	}
	if len(roster) != 1 || roster[0].ID != bob.ID {
		t.Errorf("roster = %+v, want only bob", roster)
	}

	if _, err := f.lists.GetParticipants(list.ID, carol.ID); !errors.Is(err, ErrForbidden) {
		t.Errorf("stranger views roster: expected Forbidden, got %v", err)
	}
}

func TestListForUser(t *testing.T) {
	f := setup(t)
	alice := f.user(t, "Alice", "alice@example.com")
	bob := f.user(t, "Bob", "bob@example.com")

	owned, _ := f.lists.Create(alice.ID, "Owned", "")
	shared, _ := f.lists.Create(bob.ID, "Shared", "")
	f.lists.AddParticipant(shared.ID, bob.ID, alice.Email)
	f.lists.Create(bob.ID, "Private", "")

	lists, err := f.lists.ListForUser(alice.ID)
	if err != nil {
		t.Fatalf("list for user: %v", err)
	}
	if len(lists) != 2 {
		t.Fatalf("expected 2 lists, got %d", len(lists))
	}
	if lists[0].ID != owned.ID || lists[1].ID != shared.ID {
		t.Errorf("got %d,%d want %d,%d", lists[0].ID, lists[1].ID, owned.ID, shared.ID)
	}
}
