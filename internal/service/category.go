package service

import (
	"context"
	"fmt"

	"github.com/sportsbazar/catalog-api/internal/core"
	"github.com/sportsbazar/catalog-api/internal/domain/model"
)

// CategoryServiceOptions groups dependencies for CategoryService.
type CategoryServiceOptions struct {
	Categories core.CategoryRepository
	Items      core.ItemRepository

	// AdminUserID is recorded as the owner of every category.
	AdminUserID int64
}

// CategoryService orchestrates category CRUD and browse reads.
type CategoryService struct {
	categories  core.CategoryRepository
	items       core.ItemRepository
	adminUserID int64
}

// NewCategoryService constructs a new CategoryService.
func NewCategoryService(opts CategoryServiceOptions) *CategoryService {
	return &CategoryService{
		categories:  opts.Categories,
		items:       opts.Items,
		adminUserID: opts.AdminUserID,
	}
}

// Create adds a category owned by the configured administrator.
func (s *CategoryService) Create(ctx context.Context, name string) (*model.Category, error) {
	return s.categories.Create(ctx, &model.CreateCategoryRequest{
		Name:   name,
		UserID: s.adminUserID,
	})
}

// Rename changes a category's name.
func (s *CategoryService) Rename(ctx context.Context, id int64, name string) (*model.Category, error) {
	return s.categories.Update(ctx, id, model.UpdateCategoryRequest{Name: name})
}

// Delete removes a category; its items cascade at the store.
func (s *CategoryService) Delete(ctx context.Context, id int64) (bool, error) {
	return s.categories.Delete(ctx, id)
}

// GetByName looks up a category by its exact name.
func (s *CategoryService) GetByName(ctx context.Context, name string) (*model.Category, error) {
	return s.categories.GetByName(ctx, name)
}

// List returns all categories ordered by name.
func (s *CategoryService) List(ctx context.Context) ([]*model.Category, error) {
	return s.categories.List(ctx)
}

// ListWithItems returns every category together with its items, the shape
// served by the catalog JSON endpoint.
func (s *CategoryService) ListWithItems(ctx context.Context) ([]*model.CategoryWithItems, error) {
	categories, err := s.categories.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}

	out := make([]*model.CategoryWithItems, 0, len(categories))
	for _, c := range categories {
		items, itemsErr := s.items.ListByCategory(ctx, c.ID)
		if itemsErr != nil {
			return nil, fmt.Errorf("list items of %q: %w", c.Name, itemsErr)
		}
		out = append(out, &model.CategoryWithItems{
			ID:    c.ID,
			Name:  c.Name,
			Items: items,
		})
	}
	return out, nil
}
