// Package core defines repository interfaces shared across services.
// Implementations live in internal/data.
package core

import (
	"context"

	"github.com/sportsbazar/catalog-api/internal/domain/model"
)

// UserRepository provides persistence for users.
type UserRepository interface {
	// Create inserts a new user. A duplicate email surfaces as a Conflict
	// AppError; the unique constraint is the only authority on duplicates.
	Create(ctx context.Context, req *model.CreateUserRequest) (*model.User, error)
	GetByID(ctx context.Context, id int64) (*model.User, error)
	// GetByEmail returns a NotFound AppError when no user has the email.
	GetByEmail(ctx context.Context, email string) (*model.User, error)
}

// CategoryRepository provides persistence for categories.
type CategoryRepository interface {
	Create(ctx context.Context, req *model.CreateCategoryRequest) (*model.Category, error)
	GetByID(ctx context.Context, id int64) (*model.Category, error)
	GetByName(ctx context.Context, name string) (*model.Category, error)
	// List returns all categories ordered by name ascending.
	List(ctx context.Context) ([]*model.Category, error)
	Update(ctx context.Context, id int64, req model.UpdateCategoryRequest) (*model.Category, error)
	// Delete reports whether a row was removed. Items cascade at the store.
	Delete(ctx context.Context, id int64) (bool, error)
}

// ItemRepository provides persistence for items.
type ItemRepository interface {
	Create(ctx context.Context, req *model.CreateItemRequest) (*model.Item, error)
	GetByID(ctx context.Context, id int64) (*model.Item, error)
	GetByName(ctx context.Context, name string) (*model.Item, error)
	// GetByNameInCategory scopes the lookup to one category.
	GetByNameInCategory(ctx context.Context, categoryID int64, name string) (*model.Item, error)
	ListByCategory(ctx context.Context, categoryID int64) ([]*model.Item, error)
	ListByUser(ctx context.Context, userID int64) ([]*model.Item, error)
	// ListLatest returns the most recently added items, newest first.
	ListLatest(ctx context.Context, limit int) ([]*model.Item, error)
	Update(ctx context.Context, id int64, req model.UpdateItemRequest) (*model.Item, error)
	Delete(ctx context.Context, id int64) (bool, error)
}
