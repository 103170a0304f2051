package data

import (
	"context"
	"database/sql"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sportsbazar/catalog-api/internal/domain/model"
	apperrors "github.com/sportsbazar/catalog-api/internal/errors"
	"github.com/sportsbazar/catalog-api/internal/testutil"
)

// insertCategory is a test helper to create a category owned by the given user.
func insertCategory(t *testing.T, db *sql.DB, name string, userID int64) *model.Category {
	t.Helper()
	repo := NewCategoryRepo(db)
	category, err := repo.Create(context.Background(), testutil.NewCategory().WithName(name).WithUserID(userID).Build())
	require.NoError(t, err)
	return category
}

func TestItemRepo_Create(t *testing.T) {
	testutil.SkipIfNoTestDB(t)

	tests := []struct {
		name    string
		item    func(categoryID, userID int64) *model.CreateItemRequest
		wantErr bool
		errMsg  string
	}{
		{
			name: "valid item",
			item: func(categoryID, userID int64) *model.CreateItemRequest {
				return testutil.NewItem().
					WithName("Shin Guards").
					WithDescription("Protective gear").
					WithPrice(15).
					WithQuantity(4).
					WithCategoryID(categoryID).
					WithUserID(userID).
					Build()
			},
		},
		{
			name: "item without description",
			item: func(categoryID, userID int64) *model.CreateItemRequest {
				return testutil.NewItem().
					WithName("Goal Net").
					WithCategoryID(categoryID).
					WithUserID(userID).
					Build()
			},
		},
		{
			name: "empty name",
			item: func(categoryID, userID int64) *model.CreateItemRequest {
				return testutil.NewItem().WithName("").WithCategoryID(categoryID).WithUserID(userID).Build()
			},
			wantErr: true,
			errMsg:  "name is required and cannot be empty",
		},
		{
			name: "reserved name",
			item: func(categoryID, userID int64) *model.CreateItemRequest {
				return testutil.NewItem().WithName("items").WithCategoryID(categoryID).WithUserID(userID).Build()
			},
			wantErr: true,
			errMsg:  "name is reserved",
		},
		{
			name: "negative price",
			item: func(categoryID, userID int64) *model.CreateItemRequest {
				return testutil.NewItem().WithPrice(-1).WithCategoryID(categoryID).WithUserID(userID).Build()
			},
			wantErr: true,
			errMsg:  "price cannot be negative",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			testutil.WithTestDB(t, func(db *sql.DB) {
				owner := insertUser(t, db, "owner@example.com")
				category := insertCategory(t, db, "Soccer", owner.ID)
				repo := NewItemRepo(db)

				req := tt.item(category.ID, owner.ID)
				item, err := repo.Create(context.Background(), req)

				if tt.wantErr {
					require.Error(t, err)
					assert.Contains(t, err.Error(), tt.errMsg)
					assert.Nil(t, item)
					return
				}

				require.NoError(t, err)
				require.NotNil(t, item)
				assert.NotZero(t, item.ID)
				assert.Equal(t, req.Name, item.Name)
				assert.Equal(t, req.Price, item.Price)
				assert.Equal(t, req.Quantity, item.Quantity)
				assert.Equal(t, category.ID, item.CategoryID)
				assert.Equal(t, owner.ID, item.UserID)
				assert.False(t, item.CreatedAt.IsZero())
			})
		})
	}
}

func TestItemRepo_Create_DuplicateName(t *testing.T) {
	testutil.SkipIfNoTestDB(t)

	testutil.WithTestDB(t, func(db *sql.DB) {
		owner := insertUser(t, db, "owner@example.com")
		category := insertCategory(t, db, "Soccer", owner.ID)
		repo := NewItemRepo(db)
		ctx := context.Background()

		req := testutil.NewItem().WithName("Cleats").WithCategoryID(category.ID).WithUserID(owner.ID).Build()
		_, err := repo.Create(ctx, req)
		require.NoError(t, err)

		dup, err := repo.Create(ctx, req)
		require.Error(t, err)
		assert.Nil(t, dup)
		assert.True(t, apperrors.IsConflict(err))
	})
}

func TestItemRepo_Create_MissingCategory(t *testing.T) {
	testutil.SkipIfNoTestDB(t)

	testutil.WithTestDB(t, func(db *sql.DB) {
		owner := insertUser(t, db, "owner@example.com")
		repo := NewItemRepo(db)

		req := testutil.NewItem().WithCategoryID(99999).WithUserID(owner.ID).Build()
		item, err := repo.Create(context.Background(), req)
		require.Error(t, err)
		assert.Nil(t, item)
		assert.True(t, apperrors.IsForeignKey(err))
	})
}

func TestItemRepo_GetByNameInCategory(t *testing.T) {
	testutil.SkipIfNoTestDB(t)

	testutil.WithTestDB(t, func(db *sql.DB) {
		owner := insertUser(t, db, "owner@example.com")
		soccer := insertCategory(t, db, "Soccer", owner.ID)
		tennis := insertCategory(t, db, "Tennis", owner.ID)
		repo := NewItemRepo(db)
		ctx := context.Background()

		created, err := repo.Create(ctx, testutil.NewItem().WithName("Ball").WithCategoryID(soccer.ID).WithUserID(owner.ID).Build())
		require.NoError(t, err)

		got, err := repo.GetByNameInCategory(ctx, soccer.ID, "Ball")
		require.NoError(t, err)
		assert.Equal(t, created.ID, got.ID)

		// Same name looked up against the wrong category does not match.
		missing, err := repo.GetByNameInCategory(ctx, tennis.ID, "Ball")
		require.Error(t, err)
		assert.Nil(t, missing)
		assert.True(t, apperrors.IsNotFound(err))
	})
}

func TestItemRepo_Listing(t *testing.T) {
	testutil.SkipIfNoTestDB(t)

	testutil.WithTestDB(t, func(db *sql.DB) {
		alice := insertUser(t, db, "alice@example.com")
		bob := insertUser(t, db, "bob@example.com")
		soccer := insertCategory(t, db, "Soccer", alice.ID)
		tennis := insertCategory(t, db, "Tennis", alice.ID)
		repo := NewItemRepo(db)
		ctx := context.Background()

		_, err := repo.Create(ctx, testutil.NewItem().WithName("Ball").WithCategoryID(soccer.ID).WithUserID(alice.ID).Build())
		require.NoError(t, err)
		_, err = repo.Create(ctx, testutil.NewItem().WithName("Cleats").WithCategoryID(soccer.ID).WithUserID(bob.ID).Build())
		require.NoError(t, err)
		_, err = repo.Create(ctx, testutil.NewItem().WithName("Racket").WithCategoryID(tennis.ID).WithUserID(bob.ID).Build())
		require.NoError(t, err)

		byCategory, err := repo.ListByCategory(ctx, soccer.ID)
		require.NoError(t, err)
		require.Len(t, byCategory, 2)
		assert.Equal(t, "Ball", byCategory[0].Name)
		assert.Equal(t, "Cleats", byCategory[1].Name)

		byUser, err := repo.ListByUser(ctx, bob.ID)
		require.NoError(t, err)
		require.Len(t, byUser, 2)
		assert.Equal(t, "Cleats", byUser[0].Name)
		assert.Equal(t, "Racket", byUser[1].Name)

		latest, err := repo.ListLatest(ctx, 2)
		require.NoError(t, err)
		require.Len(t, latest, 2)
		assert.Equal(t, "Racket", latest[0].Name)
		assert.Equal(t, "Cleats", latest[1].Name)
	})
}

func TestItemRepo_Update(t *testing.T) {
	testutil.SkipIfNoTestDB(t)

	testutil.WithTestDB(t, func(db *sql.DB) {
		owner := insertUser(t, db, "owner@example.com")
		category := insertCategory(t, db, "Soccer", owner.ID)
		repo := NewItemRepo(db)
		ctx := context.Background()

		created, err := repo.Create(ctx, testutil.NewItem().
			WithName("Ball").
			WithDescription("Size 5").
			WithPrice(20).
			WithQuantity(3).
			WithCategoryID(category.ID).
			WithUserID(owner.ID).
			Build())
		require.NoError(t, err)

		// Only name provided: other fields keep their stored values.
		updated, err := repo.Update(ctx, created.ID, model.UpdateItemRequest{Name: "Match Ball"})
		require.NoError(t, err)
		assert.Equal(t, "Match Ball", updated.Name)
		require.NotNil(t, updated.Description)
		assert.Equal(t, "Size 5", *updated.Description)
		assert.Equal(t, 20, updated.Price)
		assert.Equal(t, 3, updated.Quantity)

		updated, err = repo.Update(ctx, created.ID, model.UpdateItemRequest{
			Name:     "Match Ball",
			Price:    testutil.IntPtr(25),
			Quantity: testutil.IntPtr(1),
		})
		require.NoError(t, err)
		assert.Equal(t, 25, updated.Price)
		assert.Equal(t, 1, updated.Quantity)

		_, err = repo.Update(ctx, created.ID+1000, model.UpdateItemRequest{Name: "Ghost"})
		require.Error(t, err)
		assert.True(t, apperrors.IsNotFound(err))
	})
}

func TestItemRepo_Delete(t *testing.T) {
	testutil.SkipIfNoTestDB(t)

	testutil.WithTestDB(t, func(db *sql.DB) {
		owner := insertUser(t, db, "owner@example.com")
		category := insertCategory(t, db, "Soccer", owner.ID)
		repo := NewItemRepo(db)
		ctx := context.Background()

		created, err := repo.Create(ctx, testutil.NewItem().WithCategoryID(category.ID).WithUserID(owner.ID).Build())
		require.NoError(t, err)

		deleted, err := repo.Delete(ctx, created.ID)
		require.NoError(t, err)
		assert.True(t, deleted)

		deleted, err = repo.Delete(ctx, created.ID)
		require.NoError(t, err)
		assert.False(t, deleted)
	})
}
