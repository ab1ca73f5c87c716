package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/unibook/room-reservation/internal/model"
)

// UserRepo mirrors the users table.
type UserRepo struct{ DB *sql.DB }

// NewUserRepo returns a UserRepo bound to the given database.
func NewUserRepo(db *sql.DB) *UserRepo { return &UserRepo{DB: db} }

const userCols = `id, email, name, password_hash, role, building_id, is_active, created_at`

func scanUser(row rowScanner) (model.User, error) {
	var (
		u        model.User
		role     string
		building sql.NullInt64
	)
	err := row.Scan(&u.ID, &u.Email, &u.Name, &u.PasswordHash, &role, &building, &u.IsActive, &u.CreatedAt)
	if err != nil {
		return model.User{}, err
	}
	r, ok := model.ParseRole(role)
	if !ok {
		return model.User{}, fmt.Errorf("user %d: unknown role %q", u.ID, role)
	}
	u.Role = r
	if building.Valid {
		id := uint64(building.Int64)
		u.BuildingID = &id
	}
	return u, nil
}

// Create inserts a user with an already-hashed password and returns
// its ID. Duplicate emails yield ErrEmailExists.
func (r *UserRepo) Create(ctx context.Context, email, name, passwordHash string, role model.Role) (uint64, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	res, err := r.DB.ExecContext(ctx,
		`INSERT INTO users (email, name, password_hash, role) VALUES (?,?,?,?)`,
		email, strings.TrimSpace(name), passwordHash, role.String())
	if err != nil {
		if strings.Contains(strings.ToLower(err.Error()), "1062") {
			return 0, ErrEmailExists
		}
		return 0, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, err
	}
	return uint64(id), nil
}

// GetByEmail fetches a user by normalized email.
func (r *UserRepo) GetByEmail(ctx context.Context, email string) (model.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	row := r.DB.QueryRowContext(ctx,
		`SELECT `+userCols+` FROM users WHERE email = ? LIMIT 1`, email)
	return scanUser(row)
}

// GetByID fetches a user by id.
func (r *UserRepo) GetByID(ctx context.Context, id uint64) (model.User, error) {
	row := r.DB.QueryRowContext(ctx,
		`SELECT `+userCols+` FROM users WHERE id = ? LIMIT 1`, id)
	return scanUser(row)
}
