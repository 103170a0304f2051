package data

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/sportsbazar/catalog-api/internal/data/pgxutil"
	"github.com/sportsbazar/catalog-api/internal/domain/model"
	apperrors "github.com/sportsbazar/catalog-api/internal/errors"
)

// CategoryRepo provides database operations for categories.
type CategoryRepo struct {
	DB *sql.DB
}

// NewCategoryRepo creates a new CategoryRepo.
func NewCategoryRepo(db *sql.DB) *CategoryRepo {
	return &CategoryRepo{DB: db}
}

const categoryColumns = `id, name, user_id, created_at, updated_at`

// Create inserts a new category. Duplicate names surface as Conflict.
func (r *CategoryRepo) Create(ctx context.Context, req *model.CreateCategoryRequest) (*model.Category, error) {
	if req == nil {
		return nil, errors.New("create category request is required")
	}
	if err := req.Validate(); err != nil {
		return nil, apperrors.Validation(err.Error())
	}

	var out model.Category
	if err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		rows, err := conn.Query(ctx, `
			INSERT INTO categories (name, user_id)
			VALUES ($1, $2)
			RETURNING `+categoryColumns,
			strings.TrimSpace(req.Name),
			req.UserID,
		)
		if err != nil {
			return err
		}
		defer rows.Close()
		out, err = pgx.CollectOneRow(rows, pgx.RowToStructByName[model.Category])
		return err
	}); err != nil {
		return nil, apperrors.MapDBError(err)
	}
	return &out, nil
}

// GetByID retrieves a category by id.
func (r *CategoryRepo) GetByID(ctx context.Context, id int64) (*model.Category, error) {
	return r.getOne(ctx, `SELECT `+categoryColumns+` FROM categories WHERE id = $1`, id)
}

// GetByName retrieves a category by exact name.
func (r *CategoryRepo) GetByName(ctx context.Context, name string) (*model.Category, error) {
	return r.getOne(ctx, `SELECT `+categoryColumns+` FROM categories WHERE name = $1`, name)
}

// List retrieves all categories ordered by name ascending.
func (r *CategoryRepo) List(ctx context.Context) ([]*model.Category, error) {
	var rowsOut []model.Category
	if err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		rows, err := conn.Query(ctx, `SELECT `+categoryColumns+` FROM categories ORDER BY name ASC`)
		if err != nil {
			return err
		}
		defer rows.Close()
		rowsOut, err = pgx.CollectRows(rows, pgx.RowToStructByName[model.Category])
		return err
	}); err != nil {
		return nil, apperrors.MapDBError(err)
	}

	res := make([]*model.Category, len(rowsOut))
	for i := range rowsOut {
		res[i] = &rowsOut[i]
	}
	return res, nil
}

// Update renames a category.
func (r *CategoryRepo) Update(ctx context.Context, id int64, req model.UpdateCategoryRequest) (*model.Category, error) {
	if err := req.Validate(); err != nil {
		return nil, apperrors.Validation(err.Error())
	}

	var out model.Category
	if err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		rows, err := conn.Query(ctx, `
			UPDATE categories
			SET name = $1, updated_at = now()
			WHERE id = $2
			RETURNING `+categoryColumns,
			strings.TrimSpace(req.Name),
			id,
		)
		if err != nil {
			return err
		}
		defer rows.Close()
		out, err = pgx.CollectOneRow(rows, pgx.RowToStructByName[model.Category])
		return err
	}); err != nil {
		return nil, apperrors.MapDBError(err)
	}
	return &out, nil
}

// Delete deletes a category by id. Items belonging to the category are
// removed by the store's ON DELETE CASCADE.
func (r *CategoryRepo) Delete(ctx context.Context, id int64) (bool, error) {
	var affected int64
	if err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		ct, err := conn.Exec(ctx, `DELETE FROM categories WHERE id = $1`, id)
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

func (r *CategoryRepo) getOne(ctx context.Context, query string, arg any) (*model.Category, error) {
	var out model.Category
	if err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		rows, err := conn.Query(ctx, query, arg)
		if err != nil {
			return err
		}
		defer rows.Close()
		out, err = pgx.CollectOneRow(rows, pgx.RowToStructByName[model.Category])
		return err
	}); err != nil {
		return nil, apperrors.MapDBError(err)
	}
	return &out, nil
}
