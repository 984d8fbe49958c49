package service

import (
	"fmt"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"github.com/dukerupert/listmate/internal/model"
	"github.com/dukerupert/listmate/internal/store"
)

// UserService handles user profile operations. Users may only change or
// remove themselves.
type UserService struct {
	users *store.UserStore
	lists *store.ListStore
}

func NewUserService(us *store.UserStore, ls *store.ListStore) *UserService {
	return &UserService{users: us, lists: ls}
}

// UserPatch carries the optional fields of a profile update. A new password
// is re-hashed before storage.
type UserPatch struct {
	Name     *string
	Email    *string
	Password *string
}

func (s *UserService) Get(id int64) (*model.User, error) {
	user, err := s.users.GetByID(id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, notFound("user not found")
	}
	return user, nil
}

// List returns every live user. Callers shape the result into a safe
// projection before it leaves the server.
func (s *UserService) List() ([]model.User, error) {
	return s.users.List()
}

func (s *UserService) Update(targetID, callerID int64, patch UserPatch) (*model.User, error) {
	if targetID != callerID {
		return nil, forbidden("you may not update another user")
	}

	user, err := s.Get(targetID)
	if err != nil {
		return nil, err
	}

	name := user.Name
	email := user.Email
	if patch.Name != nil {
		name = strings.TrimSpace(*patch.Name)
		if name == "" {
			return nil, invalidInput("name must not be empty")
		}
	}
	if patch.Email != nil {
		email = strings.TrimSpace(*patch.Email)
		if email == "" {
			return nil, invalidInput("email must not be empty")
		}
		existing, err := s.users.GetByEmail(email)
		if err != nil {
			return nil, err
		}
		if existing != nil && existing.ID != targetID {
			return nil, conflict("email is already registered")
		}
	}

	if patch.Password != nil {
		if len(*patch.Password) < 8 {
			return nil, invalidInput("password must be at least 8 characters")
		}
		hash, err := bcrypt.GenerateFromPassword([]byte(*patch.Password), bcrypt.DefaultCost)
		if err != nil {
			return nil, fmt.Errorf("hash password: %w", err)
		}
		if err := s.users.UpdatePassword(targetID, string(hash)); err != nil {
			return nil, err
		}
	}

	updated, err := s.users.Update(targetID, name, email)
	if err != nil {
		if store.IsUniqueViolation(err) {
			return nil, conflict("email is already registered")
		}
		return nil, err
	}
	return updated, nil
}

// Remove tombstones the account. Accounts that still own live lists cannot
// be removed; those lists would otherwise be orphaned with no one able to
// manage them.
func (s *UserService) Remove(targetID, callerID int64) error {
	if targetID != callerID {
		return forbidden("you may not remove another user")
	}
	if _, err := s.Get(targetID); err != nil {
		return err
	}
	owned, err := s.lists.CountOwnedBy(targetID)
	if err != nil {
		return err
	}
	if owned > 0 {
		return conflict("delete your lists before removing the account")
	}
	return s.users.SoftDelete(targetID)
}
