package service

import (
	"context"
	"fmt"

	"github.com/sportsbazar/catalog-api/internal/core"
	"github.com/sportsbazar/catalog-api/internal/domain/model"
)

const latestItemsCount = 10

// ItemServiceOptions groups dependencies for ItemService.
type ItemServiceOptions struct {
	Items      core.ItemRepository
	Categories core.CategoryRepository
}

// ItemService orchestrates item CRUD and browse reads.
type ItemService struct {
	items      core.ItemRepository
	categories core.CategoryRepository
}

// NewItemService constructs a new ItemService.
func NewItemService(opts ItemServiceOptions) *ItemService {
	return &ItemService{
		items:      opts.Items,
		categories: opts.Categories,
	}
}

// Create adds an item to the named category, owned by the given user.
func (s *ItemService) Create(ctx context.Context, categoryName string, userID int64, req *model.CreateItemRequest) (*model.Item, error) {
	category, err := s.categories.GetByName(ctx, categoryName)
	if err != nil {
		return nil, err
	}
	req.CategoryID = category.ID
	req.UserID = userID
	return s.items.Create(ctx, req)
}

// FindInCategory resolves the named category and then the named item within
// it. The lookup order matters: a missing item reports NotFound before any
// ownership question arises.
func (s *ItemService) FindInCategory(ctx context.Context, categoryName, itemName string) (*model.Item, error) {
	category, err := s.categories.GetByName(ctx, categoryName)
	if err != nil {
		return nil, err
	}
	return s.items.GetByNameInCategory(ctx, category.ID, itemName)
}

// Update edits an item.
func (s *ItemService) Update(ctx context.Context, id int64, req model.UpdateItemRequest) (*model.Item, error) {
	return s.items.Update(ctx, id, req)
}

// Delete removes an item.
func (s *ItemService) Delete(ctx context.Context, id int64) (bool, error) {
	return s.items.Delete(ctx, id)
}

// ListByCategory returns the items of the named category.
func (s *ItemService) ListByCategory(ctx context.Context, categoryName string) (*model.Category, []*model.Item, error) {
	category, err := s.categories.GetByName(ctx, categoryName)
	if err != nil {
		return nil, nil, err
	}
	items, err := s.items.ListByCategory(ctx, category.ID)
	if err != nil {
		return nil, nil, fmt.Errorf("list items of %q: %w", categoryName, err)
	}
	return category, items, nil
}

// ListMine returns the items added by the given user.
func (s *ItemService) ListMine(ctx context.Context, userID int64) ([]*model.Item, error) {
	return s.items.ListByUser(ctx, userID)
}

// Latest returns the most recently added items for the homepage.
func (s *ItemService) Latest(ctx context.Context) ([]*model.Item, error) {
	return s.items.ListLatest(ctx, latestItemsCount)
}
