package model

import (
	"errors"
	"strings"
	"time"
	"unicode/utf8"
)

const maxUserFieldLen = 250

// User represents a registered catalog user. Users are provisioned on first
// successful login and are never deleted by the application.
type User struct {
	ID        int64     `json:"id"                db:"id"`
	Name      string    `json:"name"              db:"name"`
	Email     string    `json:"email"             db:"email"`
	Picture   *string   `json:"picture,omitempty" db:"picture"`
	CreatedAt time.Time `json:"created_at"        db:"created_at"`
}

// CreateUserRequest represents parameters to provision a User.
type CreateUserRequest struct {
	Name    string  `json:"name"`
	Email   string  `json:"email"`
	Picture *string `json:"picture,omitempty"`
}

// Validate validates CreateUserRequest.
func (r *CreateUserRequest) Validate() error {
	name := strings.TrimSpace(r.Name)
	if name == "" {
		return errors.New("name is required and cannot be empty")
	}
	if utf8.RuneCountInString(name) > maxUserFieldLen {
		return errors.New("name cannot exceed 250 characters")
	}
	email := strings.TrimSpace(r.Email)
	if email == "" {
		return errors.New("email is required")
	}
	if !strings.Contains(email, "@") {
		return errors.New("email is not valid")
	}
	if utf8.RuneCountInString(email) > maxUserFieldLen {
		return errors.New("email cannot exceed 250 characters")
	}
	return nil
}
