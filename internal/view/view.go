// Package view shapes domain data for API responses. Embedded users never
// carry credentials or timestamps; a user as the top-level subject keeps its
// timestamps. Password hashes never leave the server in any shape.
package view

import (
	"time"

	"github.com/dukerupert/listmate/internal/model"
	"github.com/dukerupert/listmate/internal/service"
)

// EmbeddedUser is the trimmed shape for users nested inside other payloads.
type EmbeddedUser struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// UserProfile is the shape for a user as the top-level response subject.
type UserProfile struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type Item struct {
	ID         int64         `json:"id"`
	Name       string        `json:"name"`
	Quantity   int           `json:"quantity"`
	AssignedTo *EmbeddedUser `json:"assigned_to"`
	CreatedAt  time.Time     `json:"created_at"`
	UpdatedAt  time.Time     `json:"updated_at"`
}

type List struct {
	ID           int64          `json:"id"`
	Name         string         `json:"name"`
	Description  string         `json:"description"`
	Owner        EmbeddedUser   `json:"owner"`
	Participants []EmbeddedUser `json:"participants"`
	Items        []Item         `json:"items"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
}

// ListSummary is the shape used in collection responses, where the full
// aggregate is not loaded.
type ListSummary struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	OwnerID     int64     `json:"owner_id"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func NewEmbeddedUser(u model.User) EmbeddedUser {
	return EmbeddedUser{ID: u.ID, Name: u.Name, Email: u.Email}
}

func NewUserProfile(u model.User) UserProfile {
	return UserProfile{
		ID:        u.ID,
		Name:      u.Name,
		Email:     u.Email,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}

func NewItem(d service.ItemDetail) Item {
	item := Item{
		ID:        d.Item.ID,
		Name:      d.Item.Name,
		Quantity:  d.Item.Quantity,
		CreatedAt: d.Item.CreatedAt,
		UpdatedAt: d.Item.UpdatedAt,
	}
	if d.AssignedTo != nil {
		u := NewEmbeddedUser(*d.AssignedTo)
		item.AssignedTo = &u
	}
	return item
}

func NewList(d service.ListDetail) List {
	list := List{
		ID:           d.List.ID,
		Name:         d.List.Name,
		Description:  d.List.Description,
		Owner:        NewEmbeddedUser(d.Owner),
		Participants: make([]EmbeddedUser, 0, len(d.Participants)),
		Items:        make([]Item, 0, len(d.Items)),
		CreatedAt:    d.List.CreatedAt,
		UpdatedAt:    d.List.UpdatedAt,
	}
	for _, p := range d.Participants {
		list.Participants = append(list.Participants, NewEmbeddedUser(p))
	}
	for _, item := range d.Items {
		list.Items = append(list.Items, NewItem(item))
	}
	return list
}

func NewListSummary(l model.List) ListSummary {
	return ListSummary{
		ID:          l.ID,
		Name:        l.Name,
		Description: l.Description,
		OwnerID:     l.OwnerID,
		CreatedAt:   l.CreatedAt,
		UpdatedAt:   l.UpdatedAt,
	}
}

func NewListSummaries(lists []model.List) []ListSummary {
	out := make([]ListSummary, 0, len(lists))
	for _, l := range lists {
		out = append(out, NewListSummary(l))
	}
	return out
}

func NewEmbeddedUsers(users []model.User) []EmbeddedUser {
	out := make([]EmbeddedUser, 0, len(users))
	for _, u := range users {
		out = append(out, NewEmbeddedUser(u))
	}
	return out
}
