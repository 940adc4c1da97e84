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

const studentColumns = `id, user_id, name, reg_no, year_of_study, department, category,
	keam_rank, sgpa, distance_category, backlogs, created_at`

// StudentRepository handles database operations for student records
type StudentRepository struct {
	db *pgxpool.Pool
}

// NewStudentRepository creates a new student repository
func NewStudentRepository(db *pgxpool.Pool) *StudentRepository {
	return &StudentRepository{db: db}
}

func scanStudent(row pgx.Row) (*models.Student, error) {
	var s models.Student
	err := row.Scan(
		&s.ID,
		&s.UserID,
		&s.Name,
		&s.RegNo,
		&s.YearOfStudy,
		&s.Department,
		&s.Category,
		&s.KeamRank,
		&s.SGPA,
		&s.DistanceCategory,
		&s.Backlogs,
		&s.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &s, nil
}

// Create inserts a new student record
func (r *StudentRepository) Create(ctx context.Context, student *models.Student) error {
	query := `
		INSERT INTO students (user_id, name, reg_no, year_of_study, department, category,
			keam_rank, sgpa, distance_category, backlogs)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING id, created_at
	`

	err := r.db.QueryRow(ctx, query,
		student.UserID, student.Name, student.RegNo, student.YearOfStudy,
		student.Department, student.Category, student.KeamRank, student.SGPA,
		student.DistanceCategory, student.Backlogs,
	).Scan(&student.ID, &student.CreatedAt)
	if err != nil {
		if dberrors.IsDuplicateConstraintError(err, "uq_students_reg_no") {
			return apperrors.ErrRegNoAlreadyExists
		}
		return fmt.Errorf("error creating student: %w", err)
	}

	return nil
}

// GetByID retrieves a student by ID
func (r *StudentRepository) GetByID(ctx context.Context, id int64) (*models.Student, error) {
	student, err := scanStudent(r.db.QueryRow(ctx,
		`SELECT `+studentColumns+` FROM students WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrStudentNotFound
		}
		return nil, fmt.Errorf("error retrieving student: %w", err)
	}
	return student, nil
}

// FindByUserID retrieves the student record linked to a user account, or nil.
func (r *StudentRepository) FindByUserID(ctx context.Context, userID int64) (*models.Student, error) {
	student, err := scanStudent(r.db.QueryRow(ctx,
		`SELECT `+studentColumns+` FROM students WHERE user_id = $1`, userID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("error retrieving student by user: %w", err)
	}
	return student, nil
}

// List retrieves a page of students ordered by register number
func (r *StudentRepository) List(ctx context.Context, offset uint64, limit int) ([]*models.Student, error) {
	rows, err := r.db.Query(ctx,
		`SELECT `+studentColumns+` FROM students ORDER BY reg_no OFFSET $1 LIMIT $2`,
		offset, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var students []*models.Student
	for rows.Next() {
		student, err := scanStudent(rows)
		if err != nil {
			return nil, err
		}
		students = append(students, student)
	}

	return students, rows.Err()
}

// Count counts all student records
func (r *StudentRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM students`).Scan(&count)
	return count, err
}

// Update updates the mutable fields of a student record
func (r *StudentRepository) Update(ctx context.Context, student *models.Student) error {
	query := `
		UPDATE students
		SET name = $1, year_of_study = $2, department = $3, category = $4,
			keam_rank = $5, sgpa = $6, distance_category = $7, backlogs = $8
		WHERE id = $9
	`

	tag, err := r.db.Exec(ctx, query,
		student.Name, student.YearOfStudy, student.Department, student.Category,
		student.KeamRank, student.SGPA, student.DistanceCategory, student.Backlogs,
		student.ID)
	if err != nil {
		return fmt.Errorf("error updating student: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrStudentNotFound
	}

	return nil
}

// LinkUser attaches a user account to a student record
func (r *StudentRepository) LinkUser(ctx context.Context, studentID, userID int64) error {
	tag, err := r.db.Exec(ctx,
		`UPDATE students SET user_id = $1 WHERE id = $2`, userID, studentID)
	if err != nil {
		return fmt.Errorf("error linking user to student: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrStudentNotFound
	}
	return nil
}

// Delete removes a student record. Callers must first verify the student has
// no active allotment.
func (r *StudentRepository) Delete(ctx context.Context, id int64) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM students WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("error deleting student: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrStudentNotFound
	}
	return nil
}
