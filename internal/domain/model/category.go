package model

import (
	"errors"
	"strings"
	"time"
	"unicode/utf8"

	domainauth "github.com/sportsbazar/catalog-api/internal/domain/auth"
)

const maxCategoryNameLen = 100

// Names that collide with route keywords cannot be used as category names.
var reservedCategoryNames = map[string]bool{
	"categories": true,
}

// Category groups catalog items. Its owner is always the configured
// administrator user.
type Category struct {
	ID        int64     `json:"id"         db:"id"`
	Name      string    `json:"name"       db:"name"`
	UserID    int64     `json:"user_id"    db:"user_id"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}

// AuthResource returns the authorization view of the category.
func (c *Category) AuthResource() domainauth.Resource {
	return domainauth.Resource{Kind: domainauth.ResourceCategory, OwnerID: c.UserID}
}

// CategoryWithItems is the JSON API shape for a category and its items.
type CategoryWithItems struct {
	ID    int64   `json:"id"`
	Name  string  `json:"name"`
	Items []*Item `json:"Items"`
}

// CreateCategoryRequest represents parameters to create a Category.
type CreateCategoryRequest struct {
	Name   string `json:"name"`
	UserID int64  `json:"-"`
}

// UpdateCategoryRequest represents parameters to rename a Category.
type UpdateCategoryRequest struct {
	Name string `json:"name"`
}

// Validate validates CreateCategoryRequest.
func (r *CreateCategoryRequest) Validate() error {
	return validateCategoryName(r.Name)
}

// Validate validates UpdateCategoryRequest.
func (r *UpdateCategoryRequest) Validate() error {
	return validateCategoryName(r.Name)
}

func validateCategoryName(name string) error {
	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return errors.New("category name is required and cannot be empty")
	}
	if utf8.RuneCountInString(trimmed) > maxCategoryNameLen {
		return errors.New("category name cannot exceed 100 characters")
	}
	if reservedCategoryNames[strings.ToLower(trimmed)] {
		return errors.New("route keywords cannot be used as category names")
	}
	return nil
}
