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

const feeColumns = `id, student_id, fee_type, amount, due_date, status, paid_at, payment_method, payment_ref, created_at`

// FeeRepository handles database operations for fees
type FeeRepository struct {
	db *pgxpool.Pool
}

// NewFeeRepository creates a new fee repository
func NewFeeRepository(db *pgxpool.Pool) *FeeRepository {
	return &FeeRepository{db: db}
}

func scanFee(row pgx.Row) (*models.Fee, error) {
	var f models.Fee
	err := row.Scan(
		&f.ID,
		&f.StudentID,
		&f.FeeType,
		&f.Amount,
		&f.DueDate,
		&f.Status,
		&f.PaidAt,
		&f.PaymentMethod,
		&f.PaymentRef,
		&f.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &f, nil
}

// Create inserts a new fee charge
func (r *FeeRepository) Create(ctx context.Context, fee *models.Fee) error {
	query := `
		INSERT INTO fees (student_id, fee_type, amount, due_date)
		VALUES ($1, $2, $3, $4)
		RETURNING id, status, created_at
	`

	err := r.db.QueryRow(ctx, query, fee.StudentID, fee.FeeType, fee.Amount, fee.DueDate).
		Scan(&fee.ID, &fee.Status, &fee.CreatedAt)
	if err != nil {
		if dberrors.IsForeignKeyViolation(err) {
			return apperrors.ErrStudentNotFound
		}
		return fmt.Errorf("error creating fee: %w", err)
	}

	return nil
}

// CreateForStudents raises the same charge against every listed student in
// one statement, returning the number of rows inserted.
func (r *FeeRepository) CreateForStudents(ctx context.Context, studentIDs []int64, feeType string, amount float64, dueDate time.Time) (int64, error) {
	tag, err := r.db.Exec(ctx, `
		INSERT INTO fees (student_id, fee_type, amount, due_date)
		SELECT unnest($1::bigint[]), $2, $3, $4`,
		studentIDs, feeType, amount, dueDate)
	if err != nil {
		if dberrors.IsForeignKeyViolation(err) {
			return 0, apperrors.ErrStudentNotFound
		}
		return 0, fmt.Errorf("error creating batch fees: %w", err)
	}
	return tag.RowsAffected(), nil
}

// GetByID retrieves a fee by ID
func (r *FeeRepository) GetByID(ctx context.Context, id int64) (*models.Fee, error) {
	fee, err := scanFee(r.db.QueryRow(ctx,
		`SELECT `+feeColumns+` FROM fees WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrFeeNotFound
		}
		return nil, fmt.Errorf("error retrieving fee: %w", err)
	}
	return fee, nil
}

// List retrieves fees, optionally filtered by status, due soonest first
func (r *FeeRepository) List(ctx context.Context, status *models.FeeStatus) ([]*models.Fee, error) {
	query := `SELECT ` + feeColumns + ` FROM fees`
	var args []any
	if status != nil {
		query += ` WHERE status = $1`
		args = append(args, *status)
	}
	query += ` ORDER BY due_date ASC, id ASC`

	return r.collect(ctx, query, args...)
}

// ListByStudent retrieves a student's fees, due soonest first
func (r *FeeRepository) ListByStudent(ctx context.Context, studentID int64) ([]*models.Fee, error) {
	return r.collect(ctx,
		`SELECT `+feeColumns+` FROM fees WHERE student_id = $1 ORDER BY due_date ASC, id ASC`,
		studentID)
}

func (r *FeeRepository) collect(ctx context.Context, query string, args ...any) ([]*models.Fee, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var fees []*models.Fee
	for rows.Next() {
		fee, err := scanFee(rows)
		if err != nil {
			return nil, err
		}
		fees = append(fees, fee)
	}

	return fees, rows.Err()
}

// MarkPaid records a payment against an unpaid fee. Already-paid fees are
// rejected with ErrFeeAlreadyPaid.
func (r *FeeRepository) MarkPaid(ctx context.Context, id int64, method string, ref *string) (*models.Fee, error) {
	fee, err := scanFee(r.db.QueryRow(ctx, `
		UPDATE fees
		SET status = 'paid', paid_at = NOW(), payment_method = $2, payment_ref = $3
		WHERE id = $1 AND status = 'unpaid'
		RETURNING `+feeColumns, id, method, ref))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			if _, getErr := r.GetByID(ctx, id); getErr != nil {
				return nil, getErr
			}
			return nil, apperrors.ErrFeeAlreadyPaid
		}
		return nil, fmt.Errorf("error recording payment: %w", err)
	}
	return fee, nil
}

// Summary aggregates fee totals for the dashboard
func (r *FeeRepository) Summary(ctx context.Context) (totalDue, totalCollected float64, unpaidCount int64, err error) {
	err = r.db.QueryRow(ctx, `
		SELECT
			COALESCE(SUM(amount) FILTER (WHERE status = 'unpaid'), 0),
			COALESCE(SUM(amount) FILTER (WHERE status = 'paid'), 0),
			COUNT(*) FILTER (WHERE status = 'unpaid')
		FROM fees
	`).Scan(&totalDue, &totalCollected, &unpaidCount)
	return
}
