package repository

import (
	"context"
	"database/sql"
	"strings"

	"github.com/unibook/room-reservation/internal/model"
)

// BuildingRepo provides data access to the buildings table. Creating
// a building also creates its incharge account, mirroring the admin
// flow where a building is registered together with the person
// responsible for it.
type BuildingRepo struct {
	db *sql.DB
}

// NewBuildingRepo returns a BuildingRepo bound to the given database.
func NewBuildingRepo(db *sql.DB) *BuildingRepo { return &BuildingRepo{db: db} }

// GetByID returns one building. sql.ErrNoRows passes through for
// unknown ids.
func (r *BuildingRepo) GetByID(ctx context.Context, id uint64) (model.Building, error) {
	var b model.Building
	err := r.db.QueryRowContext(ctx,
		`SELECT id, name, incharge_id, created_at FROM buildings WHERE id = ? LIMIT 1`,
		id).Scan(&b.ID, &b.Name, &b.InchargeID, &b.CreatedAt)
	return b, err
}

// ListAll returns every building ordered by name.
func (r *BuildingRepo) ListAll(ctx context.Context) ([]model.Building, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, name, incharge_id, created_at FROM buildings ORDER BY name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := []model.Building{}
	for rows.Next() {
		var b model.Building
		if err := rows.Scan(&b.ID, &b.Name, &b.InchargeID, &b.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, b)
	}
	return out, rows.Err()
}

// CreateWithIncharge inserts a building together with its incharge
// user in one transaction: the user row is created with role
// BUILDING_INCHARGE, the building references it, and the user's
// building_id is backfilled. Duplicate building names yield
// ErrBuildingExists, duplicate incharge emails ErrEmailExists.
func (r *BuildingRepo) CreateWithIncharge(ctx context.Context, name, inchargeEmail, inchargeName, passwordHash string) (model.Building, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return model.Building{}, err
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()

	userRes, err := tx.ExecContext(ctx,
		`INSERT INTO users (email, name, password_hash, role) VALUES (?,?,?,?)`,
		strings.ToLower(strings.TrimSpace(inchargeEmail)), strings.TrimSpace(inchargeName),
		passwordHash, model.RoleBuildingIncharge.String())
	if err != nil {
		if strings.Contains(strings.ToLower(err.Error()), "1062") {
			return model.Building{}, ErrEmailExists
		}
		return model.Building{}, err
	}
	inchargeID, err := userRes.LastInsertId()
	if err != nil {
		return model.Building{}, err
	}

	bRes, err := tx.ExecContext(ctx,
		`INSERT INTO buildings (name, incharge_id) VALUES (?,?)`,
		strings.TrimSpace(name), inchargeID)
	if err != nil {
		if strings.Contains(strings.ToLower(err.Error()), "1062") {
			return model.Building{}, ErrBuildingExists
		}
		return model.Building{}, err
	}
	buildingID, err := bRes.LastInsertId()
	if err != nil {
		return model.Building{}, err
	}

	if _, err := tx.ExecContext(ctx,
		`UPDATE users SET building_id = ? WHERE id = ?`, buildingID, inchargeID); err != nil {
		return model.Building{}, err
	}
	if err := tx.Commit(); err != nil {
		return model.Building{}, err
	}
	committed = true

	return r.GetByID(ctx, uint64(buildingID))
}
