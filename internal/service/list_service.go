package service

import (
	"fmt"
	"strings"

	"github.com/dukerupert/listmate/internal/model"
	"github.com/dukerupert/listmate/internal/store"
)

// ListService owns the lifecycle of lists and their participant sets.
type ListService struct {
	lists *store.ListStore
	items *store.ItemStore
	users *store.UserStore
}

func NewListService(ls *store.ListStore, is *store.ItemStore, us *store.UserStore) *ListService {
	return &ListService{lists: ls, items: is, users: us}
}

// ListDetail is the full aggregate view of a list: the list row plus the
// resolved owner, participant users, and items with their assignees.
type ListDetail struct {
	List         model.List
	Owner        model.User
	Participants []model.User
	Items        []ItemDetail
}

// ItemDetail pairs an item with its resolved assignee, if any.
type ItemDetail struct {
	Item       model.ListItem
	AssignedTo *model.User
}

// ListPatch carries the optional fields of an update; nil means unchanged.
type ListPatch struct {
	Name        *string
	Description *string
}

func (s *ListService) Create(ownerID int64, name, description string) (*model.List, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, invalidInput("name is required")
	}
	return s.lists.Create(name, description, ownerID)
}

func (s *ListService) Get(listID, userID int64) (*ListDetail, error) {
	list, _, err := authorizeList(s.lists, listID, userID, false)
	if err != nil {
		return nil, err
	}
	return s.detail(list)
}

// ListForUser returns the union of lists the user owns and lists they
// participate in, deduplicated and stably ordered.
func (s *ListService) ListForUser(userID int64) ([]model.List, error) {
	return s.lists.ListForUser(userID)
}

func (s *ListService) Update(listID, userID int64, patch ListPatch) (*model.List, error) {
	list, _, err := authorizeList(s.lists, listID, userID, true)
	if err != nil {
		return nil, err
	}

	name := list.Name
	description := list.Description
	if patch.Name != nil {
		name = strings.TrimSpace(*patch.Name)
		if name == "" {
			return nil, invalidInput("name must not be empty")
		}
	}
	if patch.Description != nil {
		description = *patch.Description
	}

	return s.lists.Update(listID, name, description)
}

func (s *ListService) Remove(listID, userID int64) error {
	if _, _, err := authorizeList(s.lists, listID, userID, true); err != nil {
		return err
	}
	return s.lists.SoftDelete(listID)
}

// AddParticipant resolves the candidate by email and appends them to the
// participant set. The owner already has full access and is rejected, as is
// an existing participant.
func (s *ListService) AddParticipant(listID, userID int64, email string) (*ListDetail, error) {
	list, participants, err := authorizeList(s.lists, listID, userID, true)
	if err != nil {
		return nil, err
	}

	candidate, err := s.users.GetByEmail(strings.TrimSpace(email))
	if err != nil {
		return nil, err
	}
	if candidate == nil {
		return nil, notFound("no user with that email")
	}
	if candidate.ID == list.OwnerID {
		return nil, conflict("the list owner already has full access")
	}
	for _, p := range participants {
		if p.UserID == candidate.ID {
			return nil, conflict("user is already a participant of this list")
		}
	}

	if _, err := s.lists.AddParticipant(listID, candidate.ID); err != nil {
		// The unique constraint backs the check above against races.
		if store.IsUniqueViolation(err) {
			return nil, conflict("user is already a participant of this list")
		}
		return nil, err
	}

	return s.detail(list)
}

// RemoveParticipant removes the membership. Removing a non-member succeeds
// and returns the unchanged list.
func (s *ListService) RemoveParticipant(listID, userID, candidateID int64) (*ListDetail, error) {
	list, _, err := authorizeList(s.lists, listID, userID, true)
	if err != nil {
		return nil, err
	}
	if err := s.lists.RemoveParticipant(listID, candidateID); err != nil {
		return nil, err
	}
	return s.detail(list)
}

// GetParticipants returns the participant roster. Any member may view it;
// the owner is a distinct role and is not included.
func (s *ListService) GetParticipants(listID, userID int64) ([]model.User, error) {
	if _, _, err := authorizeList(s.lists, listID, userID, false); err != nil {
		return nil, err
	}
	return s.lists.ListParticipantUsers(listID)
}

func (s *ListService) detail(list *model.List) (*ListDetail, error) {
	owner, err := s.users.GetByID(list.OwnerID)
	if err != nil {
		return nil, err
	}
	if owner == nil {
		return nil, fmt.Errorf("list %d has no live owner", list.ID)
	}

	participants, err := s.lists.ListParticipantUsers(list.ID)
	if err != nil {
		return nil, err
	}

	items, err := s.items.ListByList(list.ID)
	if err != nil {
		return nil, err
	}

	detail := &ListDetail{
		List:         *list,
		Owner:        *owner,
		Participants: participants,
	}
	for _, item := range items {
		d := ItemDetail{Item: item}
		if item.AssignedTo != nil {
			assignee, err := s.users.GetByID(*item.AssignedTo)
			if err != nil {
				return nil, err
			}
			d.AssignedTo = assignee
		}
		detail.Items = append(detail.Items, d)
	}
	return detail, nil
}
