package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/hostelhub/hostelhub/internal/app/models"
	"github.com/hostelhub/hostelhub/internal/pkg/apperrors"
)

// HostelRepository handles database operations for hostels
type HostelRepository struct {
	db *pgxpool.Pool
}

// NewHostelRepository creates a new hostel repository
func NewHostelRepository(db *pgxpool.Pool) *HostelRepository {
	return &HostelRepository{db: db}
}

// Create inserts a new hostel
func (r *HostelRepository) Create(ctx context.Context, hostel *models.Hostel) error {
	query := `
		INSERT INTO hostels (name, type, warden_id)
		VALUES ($1, $2, $3)
		RETURNING id, created_at
	`

	err := r.db.QueryRow(ctx, query, hostel.Name, hostel.Type, hostel.WardenID).
		Scan(&hostel.ID, &hostel.CreatedAt)
	if err != nil {
		return fmt.Errorf("error creating hostel: %w", err)
	}

	return nil
}

// GetByID retrieves a hostel by ID
func (r *HostelRepository) GetByID(ctx context.Context, id int64) (*models.Hostel, error) {
	var hostel models.Hostel
	err := r.db.QueryRow(ctx,
		`SELECT id, name, type, warden_id, created_at FROM hostels WHERE id = $1`, id).Scan(
		&hostel.ID, &hostel.Name, &hostel.Type, &hostel.WardenID, &hostel.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrHostelNotFound
		}
		return nil, fmt.Errorf("error retrieving hostel: %w", err)
	}

	return &hostel, nil
}

// GetAll retrieves all hostels
func (r *HostelRepository) GetAll(ctx context.Context) ([]*models.Hostel, error) {
	rows, err := r.db.Query(ctx,
		`SELECT id, name, type, warden_id, created_at FROM hostels ORDER BY name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var hostels []*models.Hostel
	for rows.Next() {
		var hostel models.Hostel
		if err := rows.Scan(
			&hostel.ID, &hostel.Name, &hostel.Type, &hostel.WardenID, &hostel.CreatedAt,
		); err != nil {
			return nil, err
		}
		hostels = append(hostels, &hostel)
	}

	return hostels, rows.Err()
}

// Update updates an existing hostel
func (r *HostelRepository) Update(ctx context.Context, hostel *models.Hostel) error {
	tag, err := r.db.Exec(ctx,
		`UPDATE hostels SET name = $1, type = $2, warden_id = $3 WHERE id = $4`,
		hostel.Name, hostel.Type, hostel.WardenID, hostel.ID)
	if err != nil {
		return fmt.Errorf("error updating hostel: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrHostelNotFound
	}

	return nil
}

// Count counts all hostels
func (r *HostelRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM hostels`).Scan(&count)
	return count, err
}

// CountActiveAllotments counts active allotments across all rooms of a hostel.
// Used as the guard for cascading hostel deletion.
func (r *HostelRepository) CountActiveAllotments(ctx context.Context, q Querier, hostelID int64) (int64, error) {
	var count int64
	err := q.QueryRow(ctx, `
		SELECT COUNT(*)
		FROM room_allotments ra
		JOIN rooms r ON r.id = ra.room_id
		WHERE r.hostel_id = $1 AND ra.status = 'Active'`, hostelID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("error counting active allotments for hostel: %w", err)
	}
	return count, nil
}

// DeleteCascadeTx removes a hostel and its dependent rows inside the caller's
// transaction, in strict order: detach allocated rooms from applications,
// delete historical allotments, delete maintenance requests, delete rooms,
// detach the hostel from application preferences, delete the hostel. The
// caller must have verified there are no active allotments.
func (r *HostelRepository) DeleteCascadeTx(ctx context.Context, tx pgx.Tx, hostelID int64) error {
	steps := []struct {
		desc  string
		query string
	}{
		{"detach allocated rooms from applications", `
			UPDATE allotment_applications SET allocated_room_id = NULL
			WHERE allocated_room_id IN (SELECT id FROM rooms WHERE hostel_id = $1)`},
		{"delete room allotments", `
			DELETE FROM room_allotments
			WHERE room_id IN (SELECT id FROM rooms WHERE hostel_id = $1)`},
		{"delete maintenance requests", `
			DELETE FROM maintenance_requests
			WHERE room_id IN (SELECT id FROM rooms WHERE hostel_id = $1)`},
		{"delete rooms", `DELETE FROM rooms WHERE hostel_id = $1`},
		{"detach hostel from application preferences", `
			UPDATE allotment_applications SET preferred_hostel_id = NULL
			WHERE preferred_hostel_id = $1`},
	}

	for _, step := range steps {
		if _, err := tx.Exec(ctx, step.query, hostelID); err != nil {
			return fmt.Errorf("failed to %s: %w", step.desc, err)
		}
	}

	tag, err := tx.Exec(ctx, `DELETE FROM hostels WHERE id = $1`, hostelID)
	if err != nil {
		return fmt.Errorf("failed to delete hostel: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrHostelNotFound
	}

	return nil
}
