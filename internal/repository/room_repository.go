package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/unibook/room-reservation/internal/booking"
	"github.com/unibook/room-reservation/internal/model"
)

// RoomRepo provides data access to the rooms table. It implements
// booking.Catalog for the reservation engine, which only ever reads
// rooms; the write methods back the program office's admin endpoints.
type RoomRepo struct {
	db *sql.DB
}

// NewRoomRepo returns a RoomRepo bound to the given database.
func NewRoomRepo(db *sql.DB) *RoomRepo { return &RoomRepo{db: db} }

const roomCols = `id, building_id, name, room_type, created_at`

func scanRoom(row rowScanner) (model.Room, error) {
	var (
		r  model.Room
		rt string
	)
	if err := row.Scan(&r.ID, &r.BuildingID, &r.Name, &rt, &r.CreatedAt); err != nil {
		return model.Room{}, err
	}
	t, ok := model.ParseRoomType(rt)
	if !ok {
		return model.Room{}, fmt.Errorf("room %d: unknown room type %q", r.ID, rt)
	}
	r.Type = t
	return r, nil
}

// GetRoom returns one room or *booking.NotFoundError.
func (r *RoomRepo) GetRoom(ctx context.Context, roomID uint64) (model.Room, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+roomCols+` FROM rooms WHERE id = ? LIMIT 1`, roomID)
	room, err := scanRoom(row)
	if err == sql.ErrNoRows {
		return model.Room{}, &booking.NotFoundError{Kind: "room", ID: roomID}
	}
	return room, err
}

// ListRooms returns rooms filtered by building and/or type. A zero
// buildingID or empty roomType leaves that dimension unfiltered.
// Rooms are ordered by name for stable browse and search output.
func (r *RoomRepo) ListRooms(ctx context.Context, buildingID uint64, roomType model.RoomType) ([]model.Room, error) {
	query := `SELECT ` + roomCols + ` FROM rooms`
	var (
		conds []string
		args  []any
	)
	if buildingID != 0 {
		conds = append(conds, "building_id = ?")
		args = append(args, buildingID)
	}
	if roomType != "" {
		conds = append(conds, "room_type = ?")
		args = append(args, roomType.String())
	}
	if len(conds) > 0 {
		query += " WHERE " + strings.Join(conds, " AND ")
	}
	query += " ORDER BY name"
	return r.list(ctx, query, args...)
}

// SearchByName returns rooms whose name contains the query string,
// case-insensitively per the collation, ordered by name.
func (r *RoomRepo) SearchByName(ctx context.Context, query string) ([]model.Room, error) {
	return r.list(ctx,
		`SELECT `+roomCols+` FROM rooms WHERE name LIKE ? ORDER BY name`,
		"%"+strings.TrimSpace(query)+"%")
}

// Create inserts a room and returns its ID. Duplicate names within a
// building yield ErrRoomExists.
func (r *RoomRepo) Create(ctx context.Context, buildingID uint64, name string, roomType model.RoomType) (uint64, error) {
	res, err := r.db.ExecContext(ctx,
		`INSERT INTO rooms (building_id, name, room_type) VALUES (?,?,?)`,
		buildingID, strings.TrimSpace(name), roomType.String())
	if err != nil {
		if strings.Contains(strings.ToLower(err.Error()), "1062") {
			return 0, ErrRoomExists
		}
		return 0, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, err
	}
	return uint64(id), nil
}

func (r *RoomRepo) list(ctx context.Context, query string, args ...any) ([]model.Room, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := []model.Room{}
	for rows.Next() {
		room, err := scanRoom(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, room)
	}
	return out, rows.Err()
}
