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

const allotmentColumns = `id, student_id, room_id, status, allotment_date, vacated_at`

// AllotmentRepository handles database operations for room allotments.
//
// The one-active-allotment-per-student invariant is enforced by the partial
// unique index uq_room_allotments_active_student; the capacity invariant is
// enforced by re-counting occupancy inside the insert transaction while the
// room row is locked. Application-level precondition checks alone would race
// under concurrent requests.
type AllotmentRepository struct {
	db *pgxpool.Pool
}

// NewAllotmentRepository creates a new allotment repository
func NewAllotmentRepository(db *pgxpool.Pool) *AllotmentRepository {
	return &AllotmentRepository{db: db}
}

func scanAllotment(row pgx.Row) (*models.RoomAllotment, error) {
	var a models.RoomAllotment
	err := row.Scan(
		&a.ID,
		&a.StudentID,
		&a.RoomID,
		&a.Status,
		&a.AllotmentDate,
		&a.VacatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &a, nil
}

// CreateActiveTx inserts a new Active allotment inside the caller's
// transaction. It locks the room row, re-validates capacity against the live
// occupancy count, and relies on the partial unique index to reject a second
// active allotment for the same student. Both rejections surface as conflict
// errors.
func (r *AllotmentRepository) CreateActiveTx(ctx context.Context, tx pgx.Tx, studentID, roomID int64) (*models.RoomAllotment, error) {
	var capacity int
	err := tx.QueryRow(ctx,
		`SELECT capacity FROM rooms WHERE id = $1 FOR UPDATE`, roomID).Scan(&capacity)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrRoomNotFound
		}
		return nil, fmt.Errorf("error locking room: %w", err)
	}

	var occupants int
	err = tx.QueryRow(ctx,
		`SELECT COUNT(*) FROM room_allotments WHERE room_id = $1 AND status = 'Active'`,
		roomID).Scan(&occupants)
	if err != nil {
		return nil, fmt.Errorf("error counting occupants: %w", err)
	}
	if occupants >= capacity {
		return nil, apperrors.ErrRoomFull
	}

	allotment, err := scanAllotment(tx.QueryRow(ctx, `
		INSERT INTO room_allotments (student_id, room_id, status)
		VALUES ($1, $2, 'Active')
		RETURNING `+allotmentColumns, studentID, roomID))
	if err != nil {
		if dberrors.IsDuplicateConstraintError(err, "uq_room_allotments_active_student") {
			return nil, apperrors.ErrDuplicateActiveAllotment
		}
		if dberrors.IsForeignKeyViolation(err) {
			return nil, apperrors.ErrStudentNotFound
		}
		return nil, fmt.Errorf("error creating allotment: %w", err)
	}

	return allotment, nil
}

// GetByID retrieves an allotment by ID
func (r *AllotmentRepository) GetByID(ctx context.Context, id int64) (*models.RoomAllotment, error) {
	allotment, err := scanAllotment(r.db.QueryRow(ctx,
		`SELECT `+allotmentColumns+` FROM room_allotments WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrAllotmentNotFound
		}
		return nil, fmt.Errorf("error retrieving allotment: %w", err)
	}
	return allotment, nil
}

// FindActiveByStudent retrieves the student's active allotment, or nil.
func (r *AllotmentRepository) FindActiveByStudent(ctx context.Context, studentID int64) (*models.RoomAllotment, error) {
	allotment, err := scanAllotment(r.db.QueryRow(ctx,
		`SELECT `+allotmentColumns+` FROM room_allotments
		 WHERE student_id = $1 AND status = 'Active'`, studentID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("error retrieving active allotment: %w", err)
	}
	return allotment, nil
}

// ListActiveStudentIDsByHostel returns the student IDs of the hostel's
// current occupants.
func (r *AllotmentRepository) ListActiveStudentIDsByHostel(ctx context.Context, hostelID int64) ([]int64, error) {
	rows, err := r.db.Query(ctx, `
		SELECT ra.student_id
		FROM room_allotments ra
		JOIN rooms r ON r.id = ra.room_id
		WHERE r.hostel_id = $1 AND ra.status = 'Active'
		ORDER BY ra.student_id`, hostelID)
	if err != nil {
		return nil, fmt.Errorf("error listing hostel occupants: %w", err)
	}
	defer rows.Close()

	var ids []int64
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

// ListActiveByRoom retrieves all active allotments for a room
func (r *AllotmentRepository) ListActiveByRoom(ctx context.Context, roomID int64) ([]*models.RoomAllotment, error) {
	rows, err := r.db.Query(ctx,
		`SELECT `+allotmentColumns+` FROM room_allotments
		 WHERE room_id = $1 AND status = 'Active' ORDER BY allotment_date`, roomID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var allotments []*models.RoomAllotment
	for rows.Next() {
		allotment, err := scanAllotment(rows)
		if err != nil {
			return nil, err
		}
		allotments = append(allotments, allotment)
	}

	return allotments, rows.Err()
}

// ListByStudent retrieves a student's full allotment history, newest first
func (r *AllotmentRepository) ListByStudent(ctx context.Context, studentID int64) ([]*models.RoomAllotment, error) {
	rows, err := r.db.Query(ctx,
		`SELECT `+allotmentColumns+` FROM room_allotments
		 WHERE student_id = $1 ORDER BY allotment_date DESC`, studentID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var allotments []*models.RoomAllotment
	for rows.Next() {
		allotment, err := scanAllotment(rows)
		if err != nil {
			return nil, err
		}
		allotments = append(allotments, allotment)
	}

	return allotments, rows.Err()
}

// VacateTx soft-terminates an active allotment inside the caller's
// transaction, returning the updated row.
func (r *AllotmentRepository) VacateTx(ctx context.Context, tx pgx.Tx, allotmentID int64) (*models.RoomAllotment, error) {
	allotment, err := scanAllotment(tx.QueryRow(ctx, `
		UPDATE room_allotments
		SET status = 'Vacated', vacated_at = NOW()
		WHERE id = $1 AND status = 'Active'
		RETURNING `+allotmentColumns, allotmentID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrAllotmentNotFound
		}
		return nil, fmt.Errorf("error vacating allotment: %w", err)
	}

	return allotment, nil
}

// BulkVacateRoomTx soft-terminates every active allotment for a room inside
// the caller's transaction and returns the number of rows affected. Vacated
// rows are retained for history; only cascading room deletion removes them.
func (r *AllotmentRepository) BulkVacateRoomTx(ctx context.Context, tx pgx.Tx, roomID int64) (int64, error) {
	tag, err := tx.Exec(ctx, `
		UPDATE room_allotments
		SET status = 'Vacated', vacated_at = NOW()
		WHERE room_id = $1 AND status = 'Active'`, roomID)
	if err != nil {
		return 0, fmt.Errorf("error bulk vacating room: %w", err)
	}

	return tag.RowsAffected(), nil
}

// CountActive counts all active allotments
func (r *AllotmentRepository) CountActive(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.QueryRow(ctx,
		`SELECT COUNT(*) FROM room_allotments WHERE status = 'Active'`).Scan(&count)
	return count, err
}
