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

const maintenanceColumns = `id, room_id, student_id, description, status, cost, created_at, resolved_at`

// MaintenanceRepository handles database operations for maintenance requests
type MaintenanceRepository struct {
	db *pgxpool.Pool
}

// NewMaintenanceRepository creates a new maintenance repository
func NewMaintenanceRepository(db *pgxpool.Pool) *MaintenanceRepository {
	return &MaintenanceRepository{db: db}
}

func scanMaintenance(row pgx.Row) (*models.MaintenanceRequest, error) {
	var m models.MaintenanceRequest
	err := row.Scan(
		&m.ID,
		&m.RoomID,
		&m.StudentID,
		&m.Description,
		&m.Status,
		&m.Cost,
		&m.CreatedAt,
		&m.ResolvedAt,
	)
	if err != nil {
		return nil, err
	}
	return &m, nil
}

// Create inserts a new maintenance request
func (r *MaintenanceRepository) Create(ctx context.Context, req *models.MaintenanceRequest) error {
	query := `
		INSERT INTO maintenance_requests (room_id, student_id, description)
		VALUES ($1, $2, $3)
		RETURNING id, status, created_at
	`

	err := r.db.QueryRow(ctx, query, req.RoomID, req.StudentID, req.Description).
		Scan(&req.ID, &req.Status, &req.CreatedAt)
	if err != nil {
		return fmt.Errorf("error creating maintenance request: %w", err)
	}

	return nil
}

// GetByID retrieves a maintenance request by ID
func (r *MaintenanceRepository) GetByID(ctx context.Context, id int64) (*models.MaintenanceRequest, error) {
	req, err := scanMaintenance(r.db.QueryRow(ctx,
		`SELECT `+maintenanceColumns+` FROM maintenance_requests WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrMaintenanceNotFound
		}
		return nil, fmt.Errorf("error retrieving maintenance request: %w", err)
	}
	return req, nil
}

// List retrieves maintenance requests, optionally filtered by status, newest first
func (r *MaintenanceRepository) List(ctx context.Context, status *models.MaintenanceStatus) ([]*models.MaintenanceRequest, error) {
	query := `SELECT ` + maintenanceColumns + ` FROM maintenance_requests`
	var args []any
	if status != nil {
		query += ` WHERE status = $1`
		args = append(args, *status)
	}
	query += ` ORDER BY created_at DESC`

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var reqs []*models.MaintenanceRequest
	for rows.Next() {
		req, err := scanMaintenance(rows)
		if err != nil {
			return nil, err
		}
		reqs = append(reqs, req)
	}

	return reqs, rows.Err()
}

// ListByStudent retrieves a student's maintenance requests, newest first
func (r *MaintenanceRepository) ListByStudent(ctx context.Context, studentID int64) ([]*models.MaintenanceRequest, error) {
	rows, err := r.db.Query(ctx,
		`SELECT `+maintenanceColumns+` FROM maintenance_requests
		 WHERE student_id = $1 ORDER BY created_at DESC`, studentID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var reqs []*models.MaintenanceRequest
	for rows.Next() {
		req, err := scanMaintenance(rows)
		if err != nil {
			return nil, err
		}
		reqs = append(reqs, req)
	}

	return reqs, rows.Err()
}

// UpdateStatus moves a request through its lifecycle; resolving stamps
// resolved_at and records the cost when provided.
func (r *MaintenanceRepository) UpdateStatus(ctx context.Context, id int64, status models.MaintenanceStatus, cost *float64) (*models.MaintenanceRequest, error) {
	req, err := scanMaintenance(r.db.QueryRow(ctx, `
		UPDATE maintenance_requests
		SET status = $2,
			cost = COALESCE($3, cost),
			resolved_at = CASE WHEN $2 = 'resolved' THEN NOW() ELSE resolved_at END
		WHERE id = $1
		RETURNING `+maintenanceColumns, id, status, cost))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrMaintenanceNotFound
		}
		return nil, fmt.Errorf("error updating maintenance request: %w", err)
	}
	return req, nil
}

// CountOpen counts requests that are not yet resolved
func (r *MaintenanceRepository) CountOpen(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.QueryRow(ctx,
		`SELECT COUNT(*) FROM maintenance_requests WHERE status <> 'resolved'`).Scan(&count)
	return count, err
}
