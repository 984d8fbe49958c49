package service

import (
	"errors"
	"testing"
)

func strPtr(s string) *string { return &s }
func intPtr(n int) *int       { return &n }

func TestCreateItemDefaults(t *testing.T) {
	f := setup(t)
	alice := f.user(t, "Alice", "alice@example.com")
	list, _ := f.lists.Create(alice.ID, "Groceries", "")

	// Quantity defaults to 1 when not provided.
	item, err := f.items.Create(list.ID, alice.ID, "Milk", nil)
	if err != nil {
		t.Fatalf("create item: %v", err)
	}
	if item.Quantity != 1 {
		t.Errorf("quantity = %d, want 1", item.Quantity)
	}

	if _, err := f.items.Create(list.ID, alice.ID, "Eggs", intPtr(0)); !errors.Is(err, ErrInvalidInput) {
		t.Errorf("zero quantity: expected InvalidInput, got %v", err)
	}
	if _, err := f.items.Create(list.ID, alice.ID, "Eggs", intPtr(-2)); !errors.Is(err, ErrInvalidInput) {
		t.Errorf("negative quantity: expected InvalidInput, got %v", err)
	}
	if _, err := f.items.Create(list.ID, alice.ID, "  ", nil); !errors.Is(err, ErrInvalidInput) {
		t.Errorf("blank name: expected InvalidInput, got %v", err)
	}
}

func TestCreateItemAccess(t *testing.T) {
	f := setup(t)
	alice := f.user(t, "Alice", "alice@example.com")
	bob := f.user(t, "Bob", "bob@example.com")
	carol := f.user(t, "Carol", "carol@example.com")

	list, _ := f.lists.Create(alice.ID, "Groceries", "")
	f.lists.AddParticipant(list.ID, alice.ID, bob.Email)

	if _, err := f.items.Create(list.ID, bob.ID, "Bread", nil); err != nil {
		t.Errorf("participant create: %v", err)
	}
	if _, err := f.items.Create(list.ID, carol.ID, "Butter", nil); !errors.Is(err, ErrForbidden) {
		t.Errorf("stranger create: expected Forbidden, got %v", err)
	}
}

func TestCreateItemDuplicateName(t *testing.T) {
	f := setup(t)
	alice := f.user(t, "Alice", "alice@example.com")
	list, _ := f.lists.Create(alice.ID, "Groceries", "")

	if _, err := f.items.Create(list.ID, alice.ID, "Milk", nil); err != nil {
		t.Fatalf("create item: %v", err)
	}
	if _, err := f.items.Create(list.ID, alice.ID, "Milk", nil); !errors.Is(err, ErrConflict) {
		t.Errorf("duplicate name: expected Conflict, got %v", err)
	}
}

func TestClaimAndRelease(t *testing.T) {
	f := setup(t)
	alice := f.user(t, "Alice", "alice@example.com")
	bob := f.user(t, "Bob", "bob@example.com")

	list, _ := f.lists.Create(alice.ID, "Groceries", "")
	f.lists.AddParticipant(list.ID, alice.ID, bob.Email)
	item, _ := f.items.Create(list.ID, bob.ID, "Bread", nil)

	claimed, err := f.items.Claim(list.ID, item.ID, bob.ID)
	if err != nil {
		t.Fatalf("claim: %v", err)
	}
	if claimed.AssignedTo == nil || claimed.AssignedTo.ID != bob.ID {
		t.Fatalf("assignee = %+v, want bob", claimed.AssignedTo)
	}

	// An already-claimed item cannot be claimed again by anyone.
	if _, err := f.items.Claim(list.ID, item.ID, alice.ID); !errors.Is(err, ErrConflict) {
		t.Errorf("second claim: expected Conflict, got %v", err)
	}

	released, err := f.items.Release(list.ID, item.ID, bob.ID)
	if err != nil {
		t.Fatalf("release: %v", err)
	}
	if released.AssignedTo != nil {
		t.Errorf("released assignee = %+v, want nil", released.AssignedTo)
	}

	// After release the item is claimable again.
	claimed, err = f.items.Claim(list.ID, item.ID, alice.ID)
	if err != nil {
		t.Fatalf("claim after release: %v", err)
	}
	if claimed.AssignedTo == nil || claimed.AssignedTo.ID != alice.ID {
		t.Errorf("assignee = %+v, want alice", claimed.AssignedTo)
	}
}

func TestReleaseUnclaimed(t *testing.T) {
	f := setup(t)
	alice := f.user(t, "Alice", "alice@example.com")
	list, _ := f.lists.Create(alice.ID, "Groceries", "")
	item, _ := f.items.Create(list.ID, alice.ID, "Milk", nil)

	if _, err := f.items.Release(list.ID, item.ID, alice.ID); !errors.Is(err, ErrConflict) {
		t.Errorf("release unclaimed: expected Conflict, got %v", err)
	}
}

func TestClaimAccess(t *testing.T) {
	f := setup(t)
	alice := f.user(t, "Alice", "alice@example.com")
	carol := f.user(t, "Carol", "carol@example.com")
	list, _ := f.lists.Create(alice.ID, "Groceries", "")
	item, _ := f.items.Create(list.ID, alice.ID, "Milk", nil)

	if _, err := f.items.Claim(list.ID, item.ID, carol.ID); !errors.Is(err, ErrForbidden) {
		t.Errorf("stranger claim: expected Forbidden, got %v", err)
	}
	if _, err := f.items.Claim(list.ID, 999, alice.ID); !errors.Is(err, ErrNotFound) {
		t.Errorf("claim missing item: expected NotFound, got %v", err)
	}
}

func TestEditItem(t *testing.T) {
	f := setup(t)
	alice := f.user(t, "Alice", "alice@example.com")
	list, _ := f.lists.Create(alice.ID, "Groceries", "")
	item, _ := f.items.Create(list.ID, alice.ID, "Milk", nil)
	f.items.Create(list.ID, alice.ID, "Eggs", nil)

	edited, err := f.items.Edit(list.ID, item.ID, alice.ID, ItemPatch{Name: strPtr("Whole Milk"), Quantity: intPtr(2)})
	if err != nil {
		t.Fatalf("edit: %v", err)
	}
	if edited.Item.Name != "Whole Milk" || edited.Item.Quantity != 2 {
		t.Errorf("edited = %+v", edited.Item)
	}

	// Partial update: quantity alone leaves the name intact.
	edited, err = f.items.Edit(list.ID, item.ID, alice.ID, ItemPatch{Quantity: intPtr(4)})
	if err != nil {
		t.Fatalf("partial edit: %v", err)
	}
	if edited.Item.Name != "Whole Milk" || edited.Item.Quantity != 4 {
		t.Errorf("partial edit = %+v", edited.Item)
	}

	// Renaming onto another live item's name is a conflict.
	if _, err := f.items.Edit(list.ID, item.ID, alice.ID, ItemPatch{Name: strPtr("Eggs")}); !errors.Is(err, ErrConflict) {
		t.Errorf("rename collision: expected Conflict, got %v", err)
	}
	if _, err := f.items.Edit(list.ID, item.ID, alice.ID, ItemPatch{Quantity: intPtr(0)}); !errors.Is(err, ErrInvalidInput) {
		t.Errorf("zero quantity: expected InvalidInput, got %v", err)
	}
}

func TestEditClaimedItemKeepsAssignee(t *testing.T) {
	f := setup(t)
	alice := f.user(t, "Alice", "alice@example.com")
	list, _ := f.lists.Create(alice.ID, "Groceries", "")
	item, _ := f.items.Create(list.ID, alice.ID, "Milk", nil)
	if _, err := f.items.Claim(list.ID, item.ID, alice.ID); err != nil {
		t.Fatalf("claim: %v", err)
	}

	edited, err := f.items.Edit(list.ID, item.ID, alice.ID, ItemPatch{Name: strPtr("Oat Milk")})
	if err != nil {
		t.Fatalf("edit claimed item: %v", err)
	}
	if edited.AssignedTo == nil || edited.AssignedTo.ID != alice.ID {
		t.Errorf("assignee = %+v, want alice", edited.AssignedTo)
	}
}

func TestDeleteItem(t *testing.T) {
	f := setup(t)
	alice := f.user(t, "Alice", "alice@example.com")
	bob := f.user(t, "Bob", "bob@example.com")
	list, _ := f.lists.Create(alice.ID, "Groceries", "")
	f.lists.AddParticipant(list.ID, alice.ID, bob.Email)
	item, _ := f.items.Create(list.ID, alice.ID, "Milk", nil)

	// Any member may delete, not just the owner.
	if err := f.items.Delete(list.ID, item.ID, bob.ID); err != nil {
		t.Fatalf("participant delete: %v", err)
	}
	if err := f.items.Delete(list.ID, item.ID, bob.ID); !errors.Is(err, ErrNotFound) {
		t.Errorf("delete again: expected NotFound, got %v", err)
	}
}

func TestAssignmentSurvivesParticipantRemoval(t *testing.T) {
	f := setup(t)
	alice := f.user(t, "Alice", "alice@example.com")
	bob := f.user(t, "Bob", "bob@example.com")
	list, _ := f.lists.Create(alice.ID, "Groceries", "")
	f.lists.AddParticipant(list.ID, alice.ID, bob.Email)
	item, _ := f.items.Create(list.ID, bob.ID, "Bread", nil)
	if _, err := f.items.Claim(list.ID, item.ID, bob.ID); err != nil {
		t.Fatalf("claim: %v", err)
	}

	if _, err := f.lists.RemoveParticipant(list.ID, alice.ID, bob.ID); err != nil {
		t.Fatalf("remove participant: %v", err)
	}

	detail, err := f.lists.Get(list.ID, alice.ID)
	if err != nil {
		t.Fatalf("get list: %v", err)
	}
	if len(detail.Items) != 1 {
		t.Fatalf("expected 1 item, got %d", len(detail.Items))
	}
	got := detail.Items[0]
	if got.Item.AssignedTo == nil || *got.Item.AssignedTo != bob.ID {
		t.Errorf("assignment should survive removal, got %v", got.Item.AssignedTo)
	}
	if got.AssignedTo == nil || got.AssignedTo.ID != bob.ID {
		t.Errorf("assignee detail = %+v, want bob", got.AssignedTo)
	}
}

// Full walkthrough: shared grocery list between two users.
func TestSharedListWorkflow(t *testing.T) {
	f := setup(t)
	alice := f.user(t, "Alice", "alice@example.com")
	bob := f.user(t, "Bob", "bob@example.com")

	list, err := f.lists.Create(alice.ID, "Groceries", "")
	if err != nil {
		t.Fatalf("create list: %v", err)
	}
	if _, err := f.lists.AddParticipant(list.ID, alice.ID, bob.Email); err != nil {
		t.Fatalf("invite bob: %v", err)
	}

	bread, err := f.items.Create(list.ID, bob.ID, "Bread", intPtr(1))
	if err != nil {
		t.Fatalf("bob creates item: %v", err)
	}

	if _, err := f.items.Claim(list.ID, bread.ID, bob.ID); err != nil {
		t.Fatalf("bob claims: %v", err)
	}
	if _, err := f.items.Claim(list.ID, bread.ID, alice.ID); !errors.Is(err, ErrConflict) {
		t.Fatalf("alice's claim should lose, got %v", err)
	}
	if _, err := f.items.Release(list.ID, bread.ID, bob.ID); err != nil {
		t.Fatalf("bob releases: %v", err)
	}
	claimed, err := f.items.Claim(list.ID, bread.ID, alice.ID)
	if err != nil {
		t.Fatalf("alice claims: %v", err)
	}
	if claimed.AssignedTo == nil || claimed.AssignedTo.ID != alice.ID {
		t.Errorf("assignee = %+v, want alice", claimed.AssignedTo)
	}
}
