package data

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/sportsbazar/catalog-api/internal/data/pgxutil"
	"github.com/sportsbazar/catalog-api/internal/domain/model"
	apperrors "github.com/sportsbazar/catalog-api/internal/errors"
)

// ItemRepo provides database operations for items.
type ItemRepo struct {
	DB *sql.DB
}

// NewItemRepo creates a new ItemRepo.
func NewItemRepo(db *sql.DB) *ItemRepo {
	return &ItemRepo{DB: db}
}

const itemColumns = `id, name, description, price, quantity, category_id, user_id, created_at, updated_at`

// Create inserts a new item. Duplicate names surface as Conflict; a missing
// category surfaces as ForeignKey.
func (r *ItemRepo) Create(ctx context.Context, req *model.CreateItemRequest) (*model.Item, error) {
	if req == nil {
		return nil, errors.New("create item request is required")
	}
	if err := req.Validate(); err != nil {
		return nil, apperrors.Validation(err.Error())
	}

	var out model.Item
	if err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		rows, err := conn.Query(ctx, `
			INSERT INTO items (name, description, price, quantity, category_id, user_id)
			VALUES ($1, $2, $3, $4, $5, $6)
			RETURNING `+itemColumns,
			strings.TrimSpace(req.Name),
			req.Description,
			req.Price,
			req.Quantity,
			req.CategoryID,
			req.UserID,
		)
		if err != nil {
			return err
		}
		defer rows.Close()
		out, err = pgx.CollectOneRow(rows, pgx.RowToStructByName[model.Item])
		return err
	}); err != nil {
		return nil, apperrors.MapDBError(err)
	}
	return &out, nil
}

// GetByID retrieves an item by id.
func (r *ItemRepo) GetByID(ctx context.Context, id int64) (*model.Item, error) {
	return r.getOne(ctx, `SELECT `+itemColumns+` FROM items WHERE id = $1`, id)
}

// GetByName retrieves an item by exact name.
func (r *ItemRepo) GetByName(ctx context.Context, name string) (*model.Item, error) {
	return r.getOne(ctx, `SELECT `+itemColumns+` FROM items WHERE name = $1`, name)
}

// GetByNameInCategory retrieves an item by name scoped to a category.
func (r *ItemRepo) GetByNameInCategory(ctx context.Context, categoryID int64, name string) (*model.Item, error) {
	var out model.Item
	if err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		rows, err := conn.Query(ctx,
			`SELECT `+itemColumns+` FROM items WHERE category_id = $1 AND name = $2`,
			categoryID, name,
		)
		if err != nil {
			return err
		}
		defer rows.Close()
		out, err = pgx.CollectOneRow(rows, pgx.RowToStructByName[model.Item])
		return err
	}); err != nil {
		return nil, apperrors.MapDBError(err)
	}
	return &out, nil
}

// ListByCategory retrieves all items in a category, name ascending.
func (r *ItemRepo) ListByCategory(ctx context.Context, categoryID int64) ([]*model.Item, error) {
	return r.list(ctx, `SELECT `+itemColumns+` FROM items WHERE category_id = $1 ORDER BY name ASC`, categoryID)
}

// ListByUser retrieves all items added by a user, name ascending.
func (r *ItemRepo) ListByUser(ctx context.Context, userID int64) ([]*model.Item, error) {
	return r.list(ctx, `SELECT `+itemColumns+` FROM items WHERE user_id = $1 ORDER BY name ASC`, userID)
}

// ListLatest retrieves the most recently added items, newest first.
func (r *ItemRepo) ListLatest(ctx context.Context, limit int) ([]*model.Item, error) {
	if limit <= 0 {
		limit = 10
	}
	return r.list(ctx, `SELECT `+itemColumns+` FROM items ORDER BY id DESC LIMIT $1`, limit)
}

// Update edits an item. Name is always set; description, price, and quantity
// are applied only when provided.
func (r *ItemRepo) Update(ctx context.Context, id int64, req model.UpdateItemRequest) (*model.Item, error) {
	if err := req.Validate(); err != nil {
		return nil, apperrors.Validation(err.Error())
	}

	setParts := []string{"name = $1", "updated_at = now()"}
	args := []any{strings.TrimSpace(req.Name)}
	next := func() int { return len(args) + 1 }

	if req.Description != nil {
		setParts = append(setParts, fmt.Sprintf("description = $%d", next()))
		args = append(args, *req.Description)
	}
	if req.Price != nil {
		setParts = append(setParts, fmt.Sprintf("price = $%d", next()))
		args = append(args, *req.Price)
	}
	if req.Quantity != nil {
		setParts = append(setParts, fmt.Sprintf("quantity = $%d", next()))
		args = append(args, *req.Quantity)
	}
	args = append(args, id)

	query := "UPDATE items SET " + strings.Join(setParts, ", ") +
		" WHERE id = $" + strconv.Itoa(len(args)) +
		" RETURNING " + itemColumns

	var out model.Item
	if err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		rows, err := conn.Query(ctx, query, args...)
		if err != nil {
			return err
		}
		defer rows.Close()
		out, err = pgx.CollectOneRow(rows, pgx.RowToStructByName[model.Item])
		return err
	}); err != nil {
		return nil, apperrors.MapDBError(err)
	}
	return &out, nil
}

// Delete deletes an item by id.
func (r *ItemRepo) Delete(ctx context.Context, id int64) (bool, error) {
	var affected int64
	if err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		ct, err := conn.Exec(ctx, `DELETE FROM items WHERE id = $1`, id)
		if err != nil {
			return err
		}
		affected = ct.RowsAffected()
		return nil
	}); err != nil {
		return false, apperrors.MapDBError(err)
	}
	return affected > 0, nil
}

func (r *ItemRepo) getOne(ctx context.Context, query string, arg any) (*model.Item, error) {
	var out model.Item
	if err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		rows, err := conn.Query(ctx, query, arg)
		if err != nil {
			return err
		}
		defer rows.Close()
		out, err = pgx.CollectOneRow(rows, pgx.RowToStructByName[model.Item])
		return err
	}); err != nil {
		return nil, apperrors.MapDBError(err)
	}
	return &out, nil
}

func (r *ItemRepo) list(ctx context.Context, query string, args ...any) ([]*model.Item, error) {
	var rowsOut []model.Item
	if err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		rows, err := conn.Query(ctx, query, args...)
		if err != nil {
			return err
		}
		defer rows.Close()
		rowsOut, err = pgx.CollectRows(rows, pgx.RowToStructByName[model.Item])
		return err
	}); err != nil {
		return nil, apperrors.MapDBError(err)
	}

	res := make([]*model.Item, len(rowsOut))
	for i := range rowsOut {
		res[i] = &rowsOut[i]
	}
	return res, nil
}
