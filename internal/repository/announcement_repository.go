package repository

import (
	"context"
	"database/sql"

	"github.com/unibook/room-reservation/internal/model"
)

// AnnouncementRepo provides data access to the announcements table.
type AnnouncementRepo struct{ db *sql.DB }

// NewAnnouncementRepo returns an AnnouncementRepo bound to the given
// database.
func NewAnnouncementRepo(db *sql.DB) *AnnouncementRepo { return &AnnouncementRepo{db: db} }

// Create inserts an announcement and returns its ID. buildingID may
// be nil for campus-wide notices.
func (r *AnnouncementRepo) Create(ctx context.Context, title, body string, postedBy uint64, buildingID *uint64) (uint64, error) {
	res, err := r.db.ExecContext(ctx,
		`INSERT INTO announcements (title, body, posted_by, building_id) VALUES (?,?,?,?)`,
		title, body, postedBy, buildingID)
	if err != nil {
		return 0, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, err
	}
	return uint64(id), nil
}

// ListVisible returns announcements newest first. With a non-nil
// buildingID it returns campus-wide notices plus that building's;
// with nil it returns everything.
func (r *AnnouncementRepo) ListVisible(ctx context.Context, buildingID *uint64) ([]model.Announcement, error) {
	query := `SELECT id, title, body, posted_by, building_id, created_at FROM announcements`
	var args []any
	if buildingID != nil {
		query += ` WHERE building_id IS NULL OR building_id = ?`
		args = append(args, *buildingID)
	}
	query += ` ORDER BY id DESC`
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := []model.Announcement{}
	for rows.Next() {
		var (
			a model.Announcement
			b sql.NullInt64
		)
		if err := rows.Scan(&a.ID, &a.Title, &a.Body, &a.PostedBy, &b, &a.CreatedAt); err != nil {
			return nil, err
		}
		if b.Valid {
			id := uint64(b.Int64)
			a.BuildingID = &id
		}
		out = append(out, a)
	}
	return out, rows.Err()
}
