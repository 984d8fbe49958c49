package auth

import (
	"errors"
	"fmt"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"github.com/dukerupert/listmate/internal/model"
	"github.com/dukerupert/listmate/internal/store"
)

var (
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrWeakPassword       = errors.New("password must be at least 8 characters")
	ErrEmailExists        = errors.New("email is already registered")
)

// Authenticator registers and verifies users with bcrypt-hashed passwords.
type Authenticator struct {
	users *store.UserStore
}

func NewAuthenticator(users *store.UserStore) *Authenticator {
	return &Authenticator{users: users}
}

// Register creates a new account. The email must be unused; the database
// unique constraint backs the check against races.
func (a *Authenticator) Register(name, email, password string) (*model.User, error) {
	name = strings.TrimSpace(name)
	email = strings.TrimSpace(email)
	if len(password) < 8 {
		return nil, ErrWeakPassword
	}

	existing, err := a.users.GetByEmail(email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, ErrEmailExists
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user, err := a.users.Create(name, email, string(hash))
	if err != nil {
		if store.IsUniqueViolation(err) {
			return nil, ErrEmailExists
		}
		return nil, err
	}
	return user, nil
}

// Authenticate verifies the credentials and returns the user. Lookup failure
// and a wrong password produce the same error so callers cannot probe for
// registered emails.
func (a *Authenticator) Authenticate(email, password string) (*model.User, error) {
	user, err := a.users.GetByEmail(strings.TrimSpace(email))
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}
	return user, nil
}
