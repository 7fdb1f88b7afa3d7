package domain

import (
	"errors"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"
)

var (
	ErrInvalidEmail    = errors.New("email must contain '@'")
	ErrInvalidUsername = errors.New("username must be between 3 and 50 characters")
	ErrWeakPassword    = errors.New("password must be at least 6 characters")
	ErrEmptyPassword   = errors.New("password is required")
)

// User represents an account: a regular customer or an administrator.
type User struct {
	ID             int64
	Email          string
	Username       string
	HashedPassword string
	FullName       string
	Phone          string
	Address        string
	IsActive       bool
	IsAdmin        bool
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// NewUser builds an active, non-admin user with a bcrypt-hashed password.
// A zero bcryptCost uses the bcrypt default.
func NewUser(email, username, password string, bcryptCost int) (*User, error) {
	user := &User{IsActive: true}
	if err := user.SetEmail(email); err != nil {
		return nil, err
	}
	if err := user.SetUsername(username); err != nil {
		return nil, err
	}
	if err := user.SetPassword(password, bcryptCost); err != nil {
		return nil, err
	}
	return user, nil
}

// SetEmail trims and validates the email address.
func (u *User) SetEmail(email string) error {
	email = strings.TrimSpace(email)
	if !strings.Contains(email, "@") {
		return ErrInvalidEmail
	}
	u.Email = email
	return nil
}

// SetUsername trims and validates the username length.
func (u *User) SetUsername(username string) error {
	username = strings.TrimSpace(username)
	if len(username) < 3 || len(username) > 50 {
		return ErrInvalidUsername
	}
	u.Username = username
	return nil
}

// SetPassword validates basic password strength and stores the bcrypt hash.
func (u *User) SetPassword(password string, bcryptCost int) error {
	if strings.TrimSpace(password) == "" {
		return ErrEmptyPassword
	}
	if len(password) < 6 {
		return ErrWeakPassword
	}
	if bcryptCost == 0 {
		bcryptCost = bcrypt.DefaultCost
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return err
	}
	u.HashedPassword = string(hash)
	return nil
}

// CheckPassword compares the stored hash with the supplied credentials.
func (u *User) CheckPassword(password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(u.HashedPassword), []byte(password)) == nil
}

// UpdateProfile applies optional profile fields.
func (u *User) UpdateProfile(fullName, phone, address string) {
	u.FullName = strings.TrimSpace(fullName)
	u.Phone = strings.TrimSpace(phone)
	u.Address = strings.TrimSpace(address)
}

// Validate re-applies core invariants for persistence.
func (u *User) Validate() error {
	if err := u.SetEmail(u.Email); err != nil {
		return err
	}
	if err := u.SetUsername(u.Username); err != nil {
		return err
	}
	if u.HashedPassword == "" {
		return ErrEmptyPassword
	}
	return nil
}
