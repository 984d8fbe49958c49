package model

import "time"

type ListItem struct {
	ID         int64      `json:"id"`
	ListID     int64      `json:"list_id"`
	Name       string     `json:"name"`
	Quantity   int        `json:"quantity"`
	AssignedTo *int64     `json:"assigned_to"`
	CreatedAt  time.Time  `json:"created_at"`
	UpdatedAt  time.Time  `json:"updated_at"`
	DeletedAt  *time.Time `json:"deleted_at,omitempty"`
}
