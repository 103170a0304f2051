package testutil

import (
	"github.com/sportsbazar/catalog-api/internal/domain/model"
)

// UserBuilder provides a fluent interface for building CreateUserRequest objects for testing.
type UserBuilder struct {
	req *model.CreateUserRequest
}

// NewUser creates a new UserBuilder with sensible defaults.
func NewUser() *UserBuilder {
	return &UserBuilder{
		req: &model.CreateUserRequest{
			Name:  "Test User",
			Email: "test.user@example.com",
		},
	}
}

// WithName sets the user name.
func (b *UserBuilder) WithName(name string) *UserBuilder {
	b.req.Name = name
	return b
}

// WithEmail sets the user email.
func (b *UserBuilder) WithEmail(email string) *UserBuilder {
	b.req.Email = email
	return b
}

// WithPicture sets the user picture URL.
func (b *UserBuilder) WithPicture(picture string) *UserBuilder {
	b.req.Picture = &picture
	return b
}

// Build returns the constructed CreateUserRequest.
func (b *UserBuilder) Build() *model.CreateUserRequest {
	return b.req
}

// CategoryBuilder provides a fluent interface for building CreateCategoryRequest objects for testing.
type CategoryBuilder struct {
	req *model.CreateCategoryRequest
}

// NewCategory creates a new CategoryBuilder with sensible defaults.
func NewCategory() *CategoryBuilder {
	return &CategoryBuilder{
		req: &model.CreateCategoryRequest{
			Name: "Soccer",
		},
	}
}

// WithName sets the category name.
func (b *CategoryBuilder) WithName(name string) *CategoryBuilder {
	b.req.Name = name
	return b
}

// WithUserID sets the owning user id.
func (b *CategoryBuilder) WithUserID(id int64) *CategoryBuilder {
	b.req.UserID = id
	return b
}

// Build returns the constructed CreateCategoryRequest.
func (b *CategoryBuilder) Build() *model.CreateCategoryRequest {
	return b.req
}

// ItemBuilder provides a fluent interface for building CreateItemRequest objects for testing.
type ItemBuilder struct {
	req *model.CreateItemRequest
}

// NewItem creates a new ItemBuilder with sensible defaults.
func NewItem() *ItemBuilder {
	return &ItemBuilder{
		req: &model.CreateItemRequest{
			Name:     "Soccer Ball",
			Price:    25,
			Quantity: 1,
		},
	}
}

// WithName sets the item name.
func (b *ItemBuilder) WithName(name string) *ItemBuilder {
	b.req.Name = name
	return b
}

// WithDescription sets the item description.
func (b *ItemBuilder) WithDescription(desc string) *ItemBuilder {
	b.req.Description = &desc
	return b
}

// WithPrice sets the item price.
func (b *ItemBuilder) WithPrice(price int) *ItemBuilder {
	b.req.Price = price
	return b
}

// WithQuantity sets the item quantity.
func (b *ItemBuilder) WithQuantity(qty int) *ItemBuilder {
	b.req.Quantity = qty
	return b
}

// WithCategoryID sets the parent category id.
func (b *ItemBuilder) WithCategoryID(id int64) *ItemBuilder {
	b.req.CategoryID = id
	return b
}

// WithUserID sets the owning user id.
func (b *ItemBuilder) WithUserID(id int64) *ItemBuilder {
	b.req.UserID = id
	return b
}

// Build returns the constructed CreateItemRequest.
func (b *ItemBuilder) Build() *model.CreateItemRequest {
	return b.req
}
