package store

import (
	"database/sql"
	"fmt"

	"github.com/dukerupert/listmate/internal/model"
)

type ListStore struct {
	db *sql.DB
}

func NewListStore(db *sql.DB) *ListStore {
	return &ListStore{db: db}
}

func scanList(scanner interface{ Scan(...any) error }) (*model.List, error) {
	var l model.List
	err := scanner.Scan(&l.ID, &l.Name, &l.Description, &l.OwnerID, &l.CreatedAt, &l.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &l, nil
}

func scanParticipant(scanner interface{ Scan(...any) error }) (*model.ListParticipant, error) {
	var p model.ListParticipant
	err := scanner.Scan(&p.ID, &p.ListID, &p.UserID, &p.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

const listCols = `id, name, description, owner_id, created_at, updated_at`
const participantCols = `id, list_id, user_id, created_at`

func (s *ListStore) Create(name, description string, ownerID int64) (*model.List, error) {
	result, err := s.db.Exec(
		`INSERT INTO lists (name, description, owner_id) VALUES (?, ?, ?)`,
		name, description, ownerID,
	)
	if err != nil {
		return nil, fmt.Errorf("insert list: %w", err)
	}
	id, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("last insert id: %w", err)
	}
	return s.GetByID(id)
}

func (s *ListStore) GetByID(id int64) (*model.List, error) {
	row := s.db.QueryRow(`SELECT `+listCols+` FROM lists WHERE id = ? AND deleted = 0`, id)
	l, err := scanList(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get list: %w", err)
	}
	return l, nil
}

// ListForUser returns every live list the user owns or participates in. The
// query deduplicates structurally and orders by id so the result is stable.
func (s *ListStore) ListForUser(userID int64) ([]model.List, error) {
	rows, err := s.db.Query(
		`SELECT `+listCols+` FROM lists
		 WHERE deleted = 0
		   AND (owner_id = ? OR id IN (SELECT list_id FROM list_participants WHERE user_id = ?))
		 ORDER BY id ASC`,
		userID, userID,
	)
	if err != nil {
		return nil, fmt.Errorf("list lists for user: %w", err)
	}
	defer rows.Close()

	var lists []model.List
	for rows.Next() {
		l, err := scanList(rows)
		if err != nil {
			return nil, fmt.Errorf("scan list: %w", err)
		}
		lists = append(lists, *l)
	}
	return lists, rows.Err()
}

// CountOwnedBy returns the number of live lists the user owns.
func (s *ListStore) CountOwnedBy(userID int64) (int, error) {
	var n int
	err := s.db.QueryRow(
		`SELECT COUNT(*) FROM lists WHERE owner_id = ? AND deleted = 0`, userID,
	).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("count owned lists: %w", err)
	}
	return n, nil
}

func (s *ListStore) Update(id int64, name, description string) (*model.List, error) {
	_, err := s.db.Exec(
		`UPDATE lists SET name = ?, description = ?, updated_at = CURRENT_TIMESTAMP WHERE id = ? AND deleted = 0`,
		name, description, id,
	)
	if err != nil {
		return nil, fmt.Errorf("update list: %w", err)
	}
	return s.GetByID(id)
}

// SoftDelete tombstones the list and its live items in one transaction.
// Participant rows carry no independent history and are removed outright.
func (s *ListStore) SoftDelete(id int64) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec(
		`UPDATE lists SET deleted = 1, deleted_at = CURRENT_TIMESTAMP WHERE id = ? AND deleted = 0`,
		id,
	); err != nil {
		return fmt.Errorf("soft delete list: %w", err)
	}
	if _, err := tx.Exec(
		`UPDATE list_items SET deleted = 1, deleted_at = CURRENT_TIMESTAMP WHERE list_id = ? AND deleted = 0`,
		id,
	); err != nil {
		return fmt.Errorf("soft delete list items: %w", err)
	}
	if _, err := tx.Exec(`DELETE FROM list_participants WHERE list_id = ?`, id); err != nil {
		return fmt.Errorf("delete participants: %w", err)
	}

	return tx.Commit()
}

func (s *ListStore) AddParticipant(listID, userID int64) (*model.ListParticipant, error) {
	result, err := s.db.Exec(
		`INSERT INTO list_participants (list_id, user_id) VALUES (?, ?)`,
		listID, userID,
	)
	if err != nil {
		return nil, fmt.Errorf("add participant: %w", err)
	}
	id, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("last insert id: %w", err)
	}
	row := s.db.QueryRow(`SELECT `+participantCols+` FROM list_participants WHERE id = ?`, id)
	return scanParticipant(row)
}

// RemoveParticipant deletes the membership row if present. Removing a
// non-member is not an error; the desired end state already holds.
func (s *ListStore) RemoveParticipant(listID, userID int64) error {
	_, err := s.db.Exec(
		`DELETE FROM list_participants WHERE list_id = ? AND user_id = ?`,
		listID, userID,
	)
	if err != nil {
		return fmt.Errorf("remove participant: %w", err)
	}
	return nil
}

func (s *ListStore) ListParticipants(listID int64) ([]model.ListParticipant, error) {
	rows, err := s.db.Query(
		`SELECT `+participantCols+` FROM list_participants WHERE list_id = ? ORDER BY created_at ASC, id ASC`,
		listID,
	)
	if err != nil {
		return nil, fmt.Errorf("list participants: %w", err)
	}
	defer rows.Close()

	var participants []model.ListParticipant
	for rows.Next() {
		p, err := scanParticipant(rows)
		if err != nil {
			return nil, fmt.Errorf("scan participant: %w", err)
		}
		participants = append(participants, *p)
	}
	return participants, rows.Err()
}

// ListParticipantUsers returns the user records behind the participant set.
// The owner is a distinct role and never appears here.
func (s *ListStore) ListParticipantUsers(listID int64) ([]model.User, error) {
	rows, err := s.db.Query(
		`SELECT u.id, u.name, u.email, u.password_hash, u.created_at, u.updated_at
		 FROM users u
		 JOIN list_participants lp ON u.id = lp.user_id
		 WHERE lp.list_id = ? AND u.deleted = 0
		 ORDER BY lp.created_at ASC, lp.id ASC`,
		listID,
	)
	if err != nil {
		return nil, fmt.Errorf("list participant users: %w", err)
	}
	defer rows.Close()

	var users []model.User
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, fmt.Errorf("scan participant user: %w", err)
		}
		users = append(users, *u)
	}
	return users, rows.Err()
}
