package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/hostelhub/hostelhub/internal/app/models"
	"github.com/hostelhub/hostelhub/internal/pkg/apperrors"
	"github.com/hostelhub/hostelhub/internal/pkg/dberrors"
)

// roomWithOccupants selects room columns plus the live count of active
// allotments. Occupancy is derived, never stored.
const roomWithOccupants = `
	SELECT r.id, r.hostel_id, r.room_no, r.capacity, r.status,
		(SELECT COUNT(*) FROM room_allotments ra
		 WHERE ra.room_id = r.id AND ra.status = 'Active') AS occupants
	FROM rooms r`

// RoomRepository handles database operations for rooms
type RoomRepository struct {
	db *pgxpool.Pool
}

// NewRoomRepository creates a new room repository
func NewRoomRepository(db *pgxpool.Pool) *RoomRepository {
	return &RoomRepository{db: db}
}

func scanRoom(row pgx.Row) (*models.Room, error) {
	var room models.Room
	err := row.Scan(
		&room.ID,
		&room.HostelID,
		&room.RoomNo,
		&room.Capacity,
		&room.Status,
		&room.Occupants,
	)
	if err != nil {
		return nil, err
	}
	return &room, nil
}

// Create inserts a new room
func (r *RoomRepository) Create(ctx context.Context, room *models.Room) error {
	query := `
		INSERT INTO rooms (hostel_id, room_no, capacity, status)
		VALUES ($1, $2, $3, 'Vacant')
		RETURNING id, status
	`

	err := r.db.QueryRow(ctx, query, room.HostelID, room.RoomNo, room.Capacity).
		Scan(&room.ID, &room.Status)
	if err != nil {
		if dberrors.IsDuplicateConstraintError(err, "uq_rooms_hostel_room_no") {
			return apperrors.ErrRoomAlreadyExists
		}
		return fmt.Errorf("error creating room: %w", err)
	}

	return nil
}

// GetByID retrieves a room with its current occupancy
func (r *RoomRepository) GetByID(ctx context.Context, id int64) (*models.Room, error) {
	room, err := scanRoom(r.db.QueryRow(ctx, roomWithOccupants+` WHERE r.id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrRoomNotFound
		}
		return nil, fmt.Errorf("error retrieving room: %w", err)
	}
	return room, nil
}

// GetByHostel retrieves all rooms of a hostel with occupancy, ordered by room number
func (r *RoomRepository) GetByHostel(ctx context.Context, hostelID int64) ([]*models.Room, error) {
	return r.list(ctx, roomWithOccupants+` WHERE r.hostel_id = $1 ORDER BY r.room_no`, hostelID)
}

// FindAvailable retrieves rooms with spare capacity that are not under
// maintenance, ordered by room number. This is the candidate set for
// auto-allocation. A non-nil hostelType restricts candidates to hostels of
// that type, so a Mens-hostel applicant never falls back into a Womens hostel.
func (r *RoomRepository) FindAvailable(ctx context.Context, hostelType *string) ([]*models.Room, error) {
	query := roomWithOccupants + `
		WHERE r.status <> 'Under Maintenance'
		  AND r.capacity > (SELECT COUNT(*) FROM room_allotments ra
							WHERE ra.room_id = r.id AND ra.status = 'Active')`
	var args []any
	if hostelType != nil {
		query += `
		  AND r.hostel_id IN (SELECT h.id FROM hostels h WHERE h.type = $1)`
		args = append(args, *hostelType)
	}
	query += `
		ORDER BY r.room_no`
	return r.list(ctx, query, args...)
}

func (r *RoomRepository) list(ctx context.Context, query string, args ...any) ([]*models.Room, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var rooms []*models.Room
	for rows.Next() {
		room, err := scanRoom(rows)
		if err != nil {
			return nil, err
		}
		rooms = append(rooms, room)
	}

	return rooms, rows.Err()
}

// Update updates a room's number and capacity
func (r *RoomRepository) Update(ctx context.Context, room *models.Room) error {
	tag, err := r.db.Exec(ctx,
		`UPDATE rooms SET room_no = $1, capacity = $2 WHERE id = $3`,
		room.RoomNo, room.Capacity, room.ID)
	if err != nil {
		if dberrors.IsDuplicateConstraintError(err, "uq_rooms_hostel_room_no") {
			return apperrors.ErrRoomAlreadyExists
		}
		return fmt.Errorf("error updating room: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrRoomNotFound
	}

	return nil
}

// SetStatus persists an explicit room status, e.g. the maintenance flag.
func (r *RoomRepository) SetStatus(ctx context.Context, q Querier, roomID int64, status models.RoomStatus) error {
	tag, err := q.Exec(ctx, `UPDATE rooms SET status = $1 WHERE id = $2`, status, roomID)
	if err != nil {
		return fmt.Errorf("error updating room status: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrRoomNotFound
	}
	return nil
}

// RecomputeStatus reads the room's current status and active occupancy,
// derives the status with models.DeriveRoomStatus and persists it, all within
// the caller's query context.
func (r *RoomRepository) RecomputeStatus(ctx context.Context, q Querier, roomID int64) (*models.Room, error) {
	var current models.RoomStatus
	var occupants int
	err := q.QueryRow(ctx, `
		SELECT status,
			(SELECT COUNT(*) FROM room_allotments ra
			 WHERE ra.room_id = rooms.id AND ra.status = 'Active')
		FROM rooms WHERE id = $1`, roomID).Scan(&current, &occupants)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrRoomNotFound
		}
		return nil, fmt.Errorf("error reading room occupancy: %w", err)
	}

	query := `
		UPDATE rooms SET status = $2
		WHERE id = $1
		RETURNING id, hostel_id, room_no, capacity, status,
			(SELECT COUNT(*) FROM room_allotments ra
			 WHERE ra.room_id = rooms.id AND ra.status = 'Active')
	`

	room, err := scanRoom(q.QueryRow(ctx, query, roomID, models.DeriveRoomStatus(current, occupants)))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrRoomNotFound
		}
		return nil, fmt.Errorf("error recomputing room status: %w", err)
	}

	return room, nil
}

// CountActiveAllotments counts active allotments for one room
func (r *RoomRepository) CountActiveAllotments(ctx context.Context, q Querier, roomID int64) (int64, error) {
	var count int64
	err := q.QueryRow(ctx,
		`SELECT COUNT(*) FROM room_allotments WHERE room_id = $1 AND status = 'Active'`,
		roomID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("error counting active allotments: %w", err)
	}
	return count, nil
}

// CountByStatus returns room counts grouped by status
func (r *RoomRepository) CountByStatus(ctx context.Context) (map[models.RoomStatus]int64, error) {
	rows, err := r.db.Query(ctx, `SELECT status, COUNT(*) FROM rooms GROUP BY status`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	counts := make(map[models.RoomStatus]int64)
	for rows.Next() {
		var status models.RoomStatus
		var count int64
		if err := rows.Scan(&status, &count); err != nil {
			return nil, err
		}
		counts[status] = count
	}

	return counts, rows.Err()
}

// DeleteCascadeTx removes a single room and its dependent rows inside the
// caller's transaction, in the same order as hostel deletion restricted to the
// room. The caller must have verified there are no active allotments.
func (r *RoomRepository) DeleteCascadeTx(ctx context.Context, tx pgx.Tx, roomID int64) error {
	steps := []struct {
		desc  string
		query string
	}{
		{"detach allocated room from applications",
			`UPDATE allotment_applications SET allocated_room_id = NULL WHERE allocated_room_id = $1`},
		{"delete room allotments", `DELETE FROM room_allotments WHERE room_id = $1`},
		{"delete maintenance requests", `DELETE FROM maintenance_requests WHERE room_id = $1`},
	}

	for _, step := range steps {
		if _, err := tx.Exec(ctx, step.query, roomID); err != nil {
			return fmt.Errorf("failed to %s: %w", step.desc, err)
		}
	}

	tag, err := tx.Exec(ctx, `DELETE FROM rooms WHERE id = $1`, roomID)
	if err != nil {
		return fmt.Errorf("failed to delete room: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrRoomNotFound
	}

	return nil
}
