package store

import (
	"database/sql"
	"fmt"

	"github.com/dukerupert/listmate/internal/model"
)

type ItemStore struct {
	db *sql.DB
}

func NewItemStore(db *sql.DB) *ItemStore {
	return &ItemStore{db: db}
}

func scanItem(scanner interface{ Scan(...any) error }) (*model.ListItem, error) {
	var item model.ListItem
	var assignedTo sql.NullInt64

	err := scanner.Scan(
		&item.ID, &item.ListID, &item.Name, &item.Quantity, &assignedTo,
		&item.CreatedAt, &item.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	if assignedTo.Valid {
		item.AssignedTo = &assignedTo.Int64
	}
	return &item, nil
}

const itemCols = `id, list_id, name, quantity, assigned_to, created_at, updated_at`

// Create inserts a live item. The partial unique index on (list_id, name)
// rejects duplicate names among live items; callers detect that with
// IsUniqueViolation.
func (s *ItemStore) Create(listID int64, name string, quantity int) (*model.ListItem, error) {
	result, err := s.db.Exec(
		`INSERT INTO list_items (list_id, name, quantity) VALUES (?, ?, ?)`,
		listID, name, quantity,
	)
	if err != nil {
		return nil, fmt.Errorf("insert item: %w", err)
	}
	id, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("last insert id: %w", err)
	}
	return s.GetByID(listID, id)
}

func (s *ItemStore) GetByID(listID, id int64) (*model.ListItem, error) {
	row := s.db.QueryRow(
		`SELECT `+itemCols+` FROM list_items WHERE id = ? AND list_id = ? AND deleted = 0`,
		id, listID,
	)
	item, err := scanItem(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get item: %w", err)
	}
	return item, nil
}

func (s *ItemStore) ListByList(listID int64) ([]model.ListItem, error) {
	rows, err := s.db.Query(
		`SELECT `+itemCols+` FROM list_items WHERE list_id = ? AND deleted = 0 ORDER BY created_at ASC, id ASC`,
		listID,
	)
	if err != nil {
		return nil, fmt.Errorf("list items: %w", err)
	}
	defer rows.Close()

	var items []model.ListItem
	for rows.Next() {
		item, err := scanItem(rows)
		if err != nil {
			return nil, fmt.Errorf("scan item: %w", err)
		}
		items = append(items, *item)
	}
	return items, rows.Err()
}

func (s *ItemStore) Update(listID, id int64, name string, quantity int) (*model.ListItem, error) {
	_, err := s.db.Exec(
		`UPDATE list_items SET name = ?, quantity = ?, updated_at = CURRENT_TIMESTAMP
		 WHERE id = ? AND list_id = ? AND deleted = 0`,
		name, quantity, id, listID,
	)
	if err != nil {
		return nil, fmt.Errorf("update item: %w", err)
	}
	return s.GetByID(listID, id)
}

func (s *ItemStore) SoftDelete(listID, id int64) error {
	_, err := s.db.Exec(
		`UPDATE list_items SET deleted = 1, deleted_at = CURRENT_TIMESTAMP
		 WHERE id = ? AND list_id = ? AND deleted = 0`,
		id, listID,
	)
	if err != nil {
		return fmt.Errorf("soft delete item: %w", err)
	}
	return nil
}

// Assign claims the item for userID. The WHERE clause only matches an
// unclaimed live item, so the check and the write are a single atomic
// statement; concurrent claimants cannot both win. Returns false when no row
// matched (item missing, deleted, or already claimed).
func (s *ItemStore) Assign(listID, id, userID int64) (bool, error) {
	result, err := s.db.Exec(
		`UPDATE list_items SET assigned_to = ?, updated_at = CURRENT_TIMESTAMP
		 WHERE id = ? AND list_id = ? AND deleted = 0 AND assigned_to IS NULL`,
		userID, id, listID,
	)
	if err != nil {
		return false, fmt.Errorf("assign item: %w", err)
	}
	n, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("rows affected: %w", err)
	}
	return n == 1, nil
}

// Unassign releases the item. Returns false when no row matched (item
// missing, deleted, or not currently claimed).
func (s *ItemStore) Unassign(listID, id int64) (bool, error) {
	result, err := s.db.Exec(
		`UPDATE list_items SET assigned_to = NULL, updated_at = CURRENT_TIMESTAMP
		 WHERE id = ? AND list_id = ? AND deleted = 0 AND assigned_to IS NOT NULL`,
		id, listID,
	)
	if err != nil {
		return false, fmt.Errorf("unassign item: %w", err)
	}
	n, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("rows affected: %w", err)
	}
	return n == 1, nil
}
