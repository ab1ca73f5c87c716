package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/unibook/room-reservation/internal/booking"
	"github.com/unibook/room-reservation/internal/model"
)

// ReservationRepo provides data access to the reservations table and
// implements booking.ReservationStore. Reservations are never
// deleted; terminal rows stay behind for history queries.
//
// The check-then-insert sequence of CreateIfAvailable and the
// check-then-update sequence of Transition are critical sections.
// Both run inside a single transaction: CreateIfAvailable first locks
// the room's row with SELECT ... FOR UPDATE, which serializes all
// admissions (and approvals, which lock the reservation row) per
// room, so two concurrent requests for overlapping windows cannot
// both pass the overlap check.
type ReservationRepo struct {
	db *sql.DB
}

// NewReservationRepo returns a ReservationRepo bound to the given
// database.
func NewReservationRepo(db *sql.DB) *ReservationRepo { return &ReservationRepo{db: db} }

// reservationCols returns the reservation column list with an
// optional table qualifier, formatted for scanReservation.
func reservationCols(q string) string {
	return fmt.Sprintf(`%[1]sid, %[1]sroom_id, %[1]srequester_id, %[1]srequester_role,
		DATE_FORMAT(%[1]sres_date, '%%Y-%%m-%%d'), %[1]sstart_min, %[1]send_min,
		%[1]spurpose, %[1]sstatus, %[1]screated_at, %[1]sdecided_at, %[1]sdecided_by, %[1]sdecision_reason`, q)
}

type rowScanner interface {
	Scan(dest ...any) error
}

// scanReservation maps one row selected with reservationCols onto a
// model.Reservation. Unknown role or status strings are treated as
// data corruption, not matched loosely.
func scanReservation(row rowScanner) (model.Reservation, error) {
	var (
		r         model.Reservation
		role      string
		status    string
		decidedAt sql.NullTime
		decidedBy sql.NullInt64
		reason    sql.NullString
	)
	err := row.Scan(&r.ID, &r.RoomID, &r.RequesterID, &role, &r.Date,
		&r.Window.Start, &r.Window.End, &r.Purpose, &status,
		&r.CreatedAt, &decidedAt, &decidedBy, &reason)
	if err != nil {
		return model.Reservation{}, err
	}
	var ok bool
	if r.Role, ok = model.ParseRole(role); !ok {
		return model.Reservation{}, fmt.Errorf("reservation %d: unknown role %q", r.ID, role)
	}
	if r.Status, ok = model.ParseStatus(status); !ok {
		return model.Reservation{}, fmt.Errorf("reservation %d: unknown status %q", r.ID, status)
	}
	if decidedAt.Valid {
		t := decidedAt.Time
		r.DecidedAt = &t
	}
	if decidedBy.Valid {
		id := uint64(decidedBy.Int64)
		r.DecidedBy = &id
	}
	if reason.Valid {
		s := reason.String
		r.DecisionReason = &s
	}
	return r, nil
}

// CreateIfAvailable inserts the reservation if no PENDING or APPROVED
// reservation overlaps its window. The room row lock taken first
// serializes concurrent admissions for the same room; the overlap
// check and the insert therefore observe a consistent view. On
// overlap a *booking.ConflictError naming the blocking window is
// returned and nothing is written.
func (r *ReservationRepo) CreateIfAvailable(ctx context.Context, res *model.Reservation) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()

	var roomID uint64
	err = tx.QueryRowContext(ctx, `SELECT id FROM rooms WHERE id = ? FOR UPDATE`, res.RoomID).Scan(&roomID)
	if err == sql.ErrNoRows {
		return &booking.NotFoundError{Kind: "room", ID: res.RoomID}
	}
	if err != nil {
		return err
	}

	var (
		blockID  uint64
		blockWin model.Window
	)
	err = tx.QueryRowContext(ctx,
		`SELECT id, start_min, end_min FROM reservations
		 WHERE room_id = ? AND res_date = ? AND status IN ('PENDING','APPROVED')
		   AND start_min < ? AND ? < end_min
		 ORDER BY start_min LIMIT 1`,
		res.RoomID, res.Date, res.Window.End, res.Window.Start,
	).Scan(&blockID, &blockWin.Start, &blockWin.End)
	if err == nil {
		return &booking.ConflictError{
			RoomID:     res.RoomID,
			Date:       res.Date,
			Requested:  res.Window,
			Blocking:   blockWin,
			BlockingID: blockID,
		}
	}
	if err != sql.ErrNoRows {
		return err
	}

	result, err := tx.ExecContext(ctx,
		`INSERT INTO reservations
		 (room_id, requester_id, requester_role, res_date, start_min, end_min, purpose, status, created_at)
		 VALUES (?,?,?,?,?,?,?,?,?)`,
		res.RoomID, res.RequesterID, res.Role.String(), res.Date,
		res.Window.Start, res.Window.End, res.Purpose, res.Status.String(), res.CreatedAt)
	if err != nil {
		return err
	}
	id, err := result.LastInsertId()
	if err != nil {
		return err
	}
	res.ID = uint64(id)

	if err := tx.Commit(); err != nil {
		return err
	}
	committed = true
	return nil
}

// GetByID returns one reservation or *booking.NotFoundError.
func (r *ReservationRepo) GetByID(ctx context.Context, id uint64) (model.Reservation, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+reservationCols("")+` FROM reservations WHERE id = ? LIMIT 1`, id)
	res, err := scanReservation(row)
	if err == sql.ErrNoRows {
		return model.Reservation{}, &booking.NotFoundError{Kind: "reservation", ID: id}
	}
	return res, err
}

// ListBlocking returns the PENDING and APPROVED reservations for a
// room on a date, ordered by start time. This is the read path of the
// availability calculator and runs without locks.
func (r *ReservationRepo) ListBlocking(ctx context.Context, roomID uint64, date string) ([]model.Reservation, error) {
	return r.list(ctx,
		`SELECT `+reservationCols("")+` FROM reservations
		 WHERE room_id = ? AND res_date = ? AND status IN ('PENDING','APPROVED')
		 ORDER BY start_min`, roomID, date)
}

// Transition loads the reservation under FOR UPDATE, applies fn and
// persists the mutated status/decision columns, all in one
// transaction. An error from fn rolls everything back and is returned
// verbatim, typed errors included.
func (r *ReservationRepo) Transition(ctx context.Context, id uint64, fn booking.TransitionFunc) (model.Reservation, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return model.Reservation{}, err
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()

	row := tx.QueryRowContext(ctx,
		`SELECT `+reservationCols("")+` FROM reservations WHERE id = ? FOR UPDATE`, id)
	res, err := scanReservation(row)
	if err == sql.ErrNoRows {
		return model.Reservation{}, &booking.NotFoundError{Kind: "reservation", ID: id}
	}
	if err != nil {
		return model.Reservation{}, err
	}

	if err := fn(&txView{tx: tx}, &res); err != nil {
		return model.Reservation{}, err
	}

	_, err = tx.ExecContext(ctx,
		`UPDATE reservations SET status = ?, decided_at = ?, decided_by = ?, decision_reason = ? WHERE id = ?`,
		res.Status.String(), res.DecidedAt, res.DecidedBy, res.DecisionReason, res.ID)
	if err != nil {
		return model.Reservation{}, err
	}
	if err := tx.Commit(); err != nil {
		return model.Reservation{}, err
	}
	committed = true
	return res, nil
}

// txView runs TransitionFunc queries on the open transaction.
type txView struct {
	tx *sql.Tx
}

// ApprovedOverlap returns the first APPROVED reservation other than
// excludeID overlapping the window on that room and date, or nil when
// the window is clear.
func (v *txView) ApprovedOverlap(ctx context.Context, roomID uint64, date string, win model.Window, excludeID uint64) (*model.Reservation, error) {
	row := v.tx.QueryRowContext(ctx,
		`SELECT `+reservationCols("")+` FROM reservations
		 WHERE room_id = ? AND res_date = ? AND status = 'APPROVED' AND id <> ?
		   AND start_min < ? AND ? < end_min
		 ORDER BY start_min LIMIT 1`,
		roomID, date, excludeID, win.End, win.Start)
	res, err := scanReservation(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &res, nil
}

// ListByRequester returns every reservation requested by the user,
// newest first.
func (r *ReservationRepo) ListByRequester(ctx context.Context, requesterID uint64) ([]model.Reservation, error) {
	return r.list(ctx,
		`SELECT `+reservationCols("")+` FROM reservations
		 WHERE requester_id = ? ORDER BY id DESC`, requesterID)
}

// ListBreakoutByBuilding returns every reservation against a breakout
// room of the given building, newest first.
func (r *ReservationRepo) ListBreakoutByBuilding(ctx context.Context, buildingID uint64) ([]model.Reservation, error) {
	return r.list(ctx,
		`SELECT `+reservationCols("r.")+`
		 FROM reservations r
		 JOIN rooms rm ON rm.id = r.room_id
		 WHERE rm.building_id = ? AND rm.room_type = 'BREAKOUT'
		 ORDER BY r.id DESC`, buildingID)
}

// ListClassroom returns every classroom reservation across all
// buildings, newest first.
func (r *ReservationRepo) ListClassroom(ctx context.Context) ([]model.Reservation, error) {
	return r.list(ctx,
		`SELECT `+reservationCols("r.")+`
		 FROM reservations r
		 JOIN rooms rm ON rm.id = r.room_id
		 WHERE rm.room_type = 'CLASSROOM'
		 ORDER BY r.id DESC`)
}

func (r *ReservationRepo) list(ctx context.Context, query string, args ...any) ([]model.Reservation, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := []model.Reservation{}
	for rows.Next() {
		res, err := scanReservation(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, res)
	}
	return out, rows.Err()
}
