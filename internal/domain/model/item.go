package model

import (
	"errors"
	"strings"
	"time"
	"unicode/utf8"

	domainauth "github.com/sportsbazar/catalog-api/internal/domain/auth"
)

const maxItemNameLen = 250

// Names that collide with route keywords cannot be used as item names.
var reservedItemNames = map[string]bool{
	"categories": true,
	"item":       true,
	"items":      true,
}

// Item is a single catalog entry. Its owner is the user who added it; deleting
// the parent category cascades to its items.
type Item struct {
	ID          int64     `json:"id"                    db:"id"`
	Name        string    `json:"name"                  db:"name"`
	Description *string   `json:"description,omitempty" db:"description"`
	Price       int       `json:"price"                 db:"price"`
	Quantity    int       `json:"quantity"              db:"quantity"`
	CategoryID  int64     `json:"category_id"           db:"category_id"`
	UserID      int64     `json:"user_id"               db:"user_id"`
	CreatedAt   time.Time `json:"created_at"            db:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"            db:"updated_at"`
}

// AuthResource returns the authorization view of the item.
func (i *Item) AuthResource() domainauth.Resource {
	return domainauth.Resource{Kind: domainauth.ResourceItem, OwnerID: i.UserID}
}

// CreateItemRequest represents parameters to create an Item. CategoryID and
// UserID are filled by the service, not the client.
type CreateItemRequest struct {
	Name        string  `json:"name"`
	Description *string `json:"description,omitempty"`
	Price       int     `json:"price"`
	Quantity    int     `json:"quantity"`
	CategoryID  int64   `json:"-"`
	UserID      int64   `json:"-"`
}

// UpdateItemRequest represents parameters to edit an Item. Name is required;
// the remaining fields are applied only when provided.
type UpdateItemRequest struct {
	Name        string  `json:"name"`
	Description *string `json:"description,omitempty"`
	Price       *int    `json:"price,omitempty"`
	Quantity    *int    `json:"quantity,omitempty"`
}

// Validate validates CreateItemRequest.
func (r *CreateItemRequest) Validate() error {
	if err := validateItemName(r.Name); err != nil {
		return err
	}
	if r.Price < 0 {
		return errors.New("price cannot be negative")
	}
	if r.Quantity < 0 {
		return errors.New("quantity cannot be negative")
	}
	return nil
}

// Validate validates UpdateItemRequest.
func (r *UpdateItemRequest) Validate() error {
	if err := validateItemName(r.Name); err != nil {
		return err
	}
	if r.Price != nil && *r.Price < 0 {
		return errors.New("price cannot be negative")
	}
	if r.Quantity != nil && *r.Quantity < 0 {
		return errors.New("quantity cannot be negative")
	}
	return nil
}

func validateItemName(name string) error {
	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return errors.New("item name is required and cannot be empty")
	}
	if utf8.RuneCountInString(trimmed) > maxItemNameLen {
		return errors.New("item name cannot exceed 250 characters")
	}
	if reservedItemNames[strings.ToLower(trimmed)] {
		return errors.New("route keywords cannot be used as item names")
	}
	return nil
}
