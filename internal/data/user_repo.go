// Package data contains the pgx-backed repositories for the catalog store.
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

// UserRepo provides database operations for users.
type UserRepo struct {
	DB *sql.DB
}

// NewUserRepo creates a new UserRepo.
func NewUserRepo(db *sql.DB) *UserRepo {
	return &UserRepo{DB: db}
}

const userColumns = `id, name, email, picture, created_at`

// Create inserts a new user. The unique constraint on email is the only
// authority on duplicates; a violation surfaces as a Conflict AppError so
// callers can treat the conflict as the creation signal.
func (r *UserRepo) Create(ctx context.Context, req *model.CreateUserRequest) (*model.User, error) {
	if req == nil {
		return nil, errors.New("create user request is required")
	}
	if err := req.Validate(); err != nil {
		return nil, apperrors.Validation(err.Error())
	}

	var out model.User
	if err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		rows, err := conn.Query(ctx, `
			INSERT INTO users (name, email, picture)
			VALUES ($1, $2, $3)
			RETURNING `+userColumns,
			strings.TrimSpace(req.Name),
			normalizeEmail(req.Email),
			req.Picture,
		)
		if err != nil {
			return err
		}
		defer rows.Close()
		out, err = pgx.CollectOneRow(rows, pgx.RowToStructByName[model.User])
		return err
	}); err != nil {
		return nil, apperrors.MapDBError(err)
	}
	return &out, nil
}

// GetByID retrieves a user by id.
func (r *UserRepo) GetByID(ctx context.Context, id int64) (*model.User, error) {
	return r.getOne(ctx, `SELECT `+userColumns+` FROM users WHERE id = $1`, id)
}

// GetByEmail retrieves a user by exact email match. Absence is reported as a
// NotFound AppError, an expected and handled case during login.
func (r *UserRepo) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	return r.getOne(ctx, `SELECT `+userColumns+` FROM users WHERE email = $1`, normalizeEmail(email))
}

func (r *UserRepo) getOne(ctx context.Context, query string, arg any) (*model.User, error) {
	var out model.User
	if err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		rows, err := conn.Query(ctx, query, arg)
		if err != nil {
			return err
		}
		defer rows.Close()
		out, err = pgx.CollectOneRow(rows, pgx.RowToStructByName[model.User])
		return err
	}); err != nil {
		return nil, apperrors.MapDBError(err)
	}
	return &out, nil
}

// normalizeEmail trims and lowercases an email for storage and lookup.
func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
