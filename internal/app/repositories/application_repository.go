package repositories

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/hostelhub/hostelhub/internal/app/models"
	"github.com/hostelhub/hostelhub/internal/pkg/apperrors"
	"github.com/hostelhub/hostelhub/internal/pkg/dberrors"
)

const applicationColumns = `id, user_id, preferred_hostel_id, room_type_preference, course,
	academic_year, performance_type, performance_value, distance_from_home, status,
	reviewed_by, reviewed_at, allocated_room_id, allocated_at, created_at`

// ApplicationRepository handles database operations for allotment applications
type ApplicationRepository struct {
	db *pgxpool.Pool
}

// NewApplicationRepository creates a new application repository
func NewApplicationRepository(db *pgxpool.Pool) *ApplicationRepository {
	return &ApplicationRepository{db: db}
}

func scanApplication(row pgx.Row) (*models.AllotmentApplication, error) {
	var a models.AllotmentApplication
	err := row.Scan(
		&a.ID,
		&a.UserID,
		&a.PreferredHostelID,
		&a.RoomTypePreference,
		&a.Course,
		&a.AcademicYear,
		&a.PerformanceType,
		&a.PerformanceValue,
		&a.DistanceFromHome,
		&a.Status,
		&a.ReviewedBy,
		&a.ReviewedAt,
		&a.AllocatedRoomID,
		&a.AllocatedAt,
		&a.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &a, nil
}

// Create inserts a new pending application. The partial unique index
// uq_applications_pending_user rejects a second pending application for the
// same user.
func (r *ApplicationRepository) Create(ctx context.Context, app *models.AllotmentApplication) error {
	query := `
		INSERT INTO allotment_applications (user_id, preferred_hostel_id, room_type_preference,
			course, academic_year, performance_type, performance_value, distance_from_home, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, 'pending')
		RETURNING id, status, created_at
	`

	err := r.db.QueryRow(ctx, query,
		app.UserID, app.PreferredHostelID, app.RoomTypePreference, app.Course,
		app.AcademicYear, app.PerformanceType, app.PerformanceValue, app.DistanceFromHome,
	).Scan(&app.ID, &app.Status, &app.CreatedAt)
	if err != nil {
		if dberrors.IsDuplicateConstraintError(err, "uq_applications_pending_user") {
			return apperrors.ErrPendingApplication
		}
		return fmt.Errorf("error creating application: %w", err)
	}

	return nil
}

// GetByID retrieves an application by ID
func (r *ApplicationRepository) GetByID(ctx context.Context, id int64) (*models.AllotmentApplication, error) {
	app, err := scanApplication(r.db.QueryRow(ctx,
		`SELECT `+applicationColumns+` FROM allotment_applications WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrApplicationNotFound
		}
		return nil, fmt.Errorf("error retrieving application: %w", err)
	}
	return app, nil
}

// ListByStatus retrieves all applications with the given status, oldest first
func (r *ApplicationRepository) ListByStatus(ctx context.Context, status models.ApplicationStatus) ([]*models.AllotmentApplication, error) {
	return r.list(ctx,
		`SELECT `+applicationColumns+` FROM allotment_applications
		 WHERE status = $1 ORDER BY created_at`, status)
}

// ListByUser retrieves a user's applications, newest first
func (r *ApplicationRepository) ListByUser(ctx context.Context, userID int64) ([]*models.AllotmentApplication, error) {
	return r.list(ctx,
		`SELECT `+applicationColumns+` FROM allotment_applications
		 WHERE user_id = $1 ORDER BY created_at DESC`, userID)
}

func (r *ApplicationRepository) list(ctx context.Context, query string, args ...any) ([]*models.AllotmentApplication, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var apps []*models.AllotmentApplication
	for rows.Next() {
		app, err := scanApplication(rows)
		if err != nil {
			return nil, err
		}
		apps = append(apps, app)
	}

	return apps, rows.Err()
}

// MarkApproved transitions a pending application to approved
func (r *ApplicationRepository) MarkApproved(ctx context.Context, applicationID, reviewerID int64) (*models.AllotmentApplication, error) {
	app, err := scanApplication(r.db.QueryRow(ctx, `
		UPDATE allotment_applications
		SET status = 'approved', reviewed_by = $2, reviewed_at = NOW()
		WHERE id = $1 AND status = 'pending'
		RETURNING `+applicationColumns, applicationID, reviewerID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrApplicationNotPending
		}
		return nil, fmt.Errorf("error approving application: %w", err)
	}
	return app, nil
}

// MarkRejected transitions a pending application to rejected
func (r *ApplicationRepository) MarkRejected(ctx context.Context, applicationID, reviewerID int64) (*models.AllotmentApplication, error) {
	app, err := scanApplication(r.db.QueryRow(ctx, `
		UPDATE allotment_applications
		SET status = 'rejected', reviewed_by = $2, reviewed_at = NOW()
		WHERE id = $1 AND status = 'pending'
		RETURNING `+applicationColumns, applicationID, reviewerID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrApplicationNotPending
		}
		return nil, fmt.Errorf("error rejecting application: %w", err)
	}
	return app, nil
}

// MarkAllocatedTx transitions a pending or approved application to allocated
// with the chosen room, inside the caller's transaction so the transition
// commits or rolls back together with the allotment insert.
func (r *ApplicationRepository) MarkAllocatedTx(ctx context.Context, tx pgx.Tx, applicationID, reviewerID, roomID int64, at time.Time) (*models.AllotmentApplication, error) {
	app, err := scanApplication(tx.QueryRow(ctx, `
		UPDATE allotment_applications
		SET status = 'allocated', reviewed_by = $2, reviewed_at = COALESCE(reviewed_at, $4),
			allocated_room_id = $3, allocated_at = $4
		WHERE id = $1 AND status IN ('pending', 'approved')
		RETURNING `+applicationColumns, applicationID, reviewerID, roomID, at))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrApplicationNotPending
		}
		return nil, fmt.Errorf("error allocating application: %w", err)
	}
	return app, nil
}

// CountByStatus counts applications with the given status
func (r *ApplicationRepository) CountByStatus(ctx context.Context, status models.ApplicationStatus) (int64, error) {
	var count int64
	err := r.db.QueryRow(ctx,
		`SELECT COUNT(*) FROM allotment_applications WHERE status = $1`, status).Scan(&count)
	return count, err
}
