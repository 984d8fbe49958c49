package service

import (
	"strings"

	"github.com/dukerupert/listmate/internal/model"
	"github.com/dukerupert/listmate/internal/store"
)

// ItemService owns the lifecycle of list items, including the claim/release
// protocol. An item is either unclaimed or claimed by exactly one user; the
// assignee column is the whole state.
type ItemService struct {
	lists *store.ListStore
	items *store.ItemStore
	users *store.UserStore
}

func NewItemService(ls *store.ListStore, is *store.ItemStore, us *store.UserStore) *ItemService {
	return &ItemService{lists: ls, items: is, users: us}
}

// ItemPatch carries the optional fields of an edit; nil means unchanged.
type ItemPatch struct {
	Name     *string
	Quantity *int
}

// Create adds an item to the list. Quantity defaults to 1 when absent and
// must be positive. A live item with the same name in the list is a conflict.
func (s *ItemService) Create(listID, userID int64, name string, quantity *int) (*model.ListItem, error) {
	if _, _, err := authorizeList(s.lists, listID, userID, false); err != nil {
		return nil, err
	}

	name = strings.TrimSpace(name)
	if name == "" {
		return nil, invalidInput("name is required")
	}
	qty := 1
	if quantity != nil {
		qty = *quantity
	}
	if qty < 1 {
		return nil, invalidInput("quantity must be a positive integer")
	}

	item, err := s.items.Create(listID, name, qty)
	if err != nil {
		if store.IsUniqueViolation(err) {
			return nil, conflict("an item with that name already exists in this list")
		}
		return nil, err
	}
	return item, nil
}

// Claim assigns the item to the caller. Only an unclaimed item can be
// claimed; a claim on an already-claimed item fails even for the current
// assignee. The caller's full user record must still exist — token claims
// alone are not trusted.
func (s *ItemService) Claim(listID, itemID, userID int64) (*ItemDetail, error) {
	if _, _, err := authorizeList(s.lists, listID, userID, false); err != nil {
		return nil, err
	}

	item, err := s.items.GetByID(listID, itemID)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, notFound("item not found")
	}

	claimant, err := s.users.GetByID(userID)
	if err != nil {
		return nil, err
	}
	if claimant == nil {
		return nil, notFound("user not found")
	}

	ok, err := s.items.Assign(listID, itemID, userID)
	if err != nil {
		return nil, err
	}
	if !ok {
		// The item existed a moment ago, so the conditional write lost to an
		// existing assignment.
		return nil, conflict("item is already assigned to a user")
	}

	item, err = s.items.GetByID(listID, itemID)
	if err != nil {
		return nil, err
	}
	return &ItemDetail{Item: *item, AssignedTo: claimant}, nil
}

// Release clears the assignment. Any member may release, not just the
// current assignee; the group shares responsibility for its items.
func (s *ItemService) Release(listID, itemID, userID int64) (*ItemDetail, error) {
	if _, _, err := authorizeList(s.lists, listID, userID, false); err != nil {
		return nil, err
	}

	item, err := s.items.GetByID(listID, itemID)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, notFound("item not found")
	}

	ok, err := s.items.Unassign(listID, itemID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, conflict("item is not assigned to any user")
	}

	item, err = s.items.GetByID(listID, itemID)
	if err != nil {
		return nil, err
	}
	return &ItemDetail{Item: *item}, nil
}

// Edit applies a partial update. Renames are checked against the per-list
// name-uniqueness rule; a collision with another live item is a conflict.
func (s *ItemService) Edit(listID, itemID, userID int64, patch ItemPatch) (*ItemDetail, error) {
	if _, _, err := authorizeList(s.lists, listID, userID, false); err != nil {
		return nil, err
	}

	item, err := s.items.GetByID(listID, itemID)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, notFound("item not found")
	}

	name := item.Name
	qty := item.Quantity
	if patch.Name != nil {
		name = strings.TrimSpace(*patch.Name)
		if name == "" {
			return nil, invalidInput("name must not be empty")
		}
	}
	if patch.Quantity != nil {
		qty = *patch.Quantity
		if qty < 1 {
			return nil, invalidInput("quantity must be a positive integer")
		}
	}

	updated, err := s.items.Update(listID, itemID, name, qty)
	if err != nil {
		if store.IsUniqueViolation(err) {
			return nil, conflict("an item with that name already exists in this list")
		}
		return nil, err
	}

	detail := &ItemDetail{Item: *updated}
	if updated.AssignedTo != nil {
		assignee, err := s.users.GetByID(*updated.AssignedTo)
		if err != nil {
			return nil, err
		}
		detail.AssignedTo = assignee
	}
	return detail, nil
}

// Delete tombstones the item. Assignment state is irrelevant here.
func (s *ItemService) Delete(listID, itemID, userID int64) error {
	if _, _, err := authorizeList(s.lists, listID, userID, false); err != nil {
		return err
	}

	item, err := s.items.GetByID(listID, itemID)
	if err != nil {
		return err
	}
	if item == nil {
		return notFound("item not found")
	}

	return s.items.SoftDelete(listID, itemID)
}
