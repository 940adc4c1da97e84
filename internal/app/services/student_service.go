package services

import (
	"context"
	"slices"
	"strings"

	"github.com/hostelhub/hostelhub/internal/app/models"
	"github.com/hostelhub/hostelhub/internal/app/models/dto"
	"github.com/hostelhub/hostelhub/internal/app/repositories"
	"github.com/hostelhub/hostelhub/internal/pkg/apperrors"
)

// StudentService handles student resident records
type StudentService struct {
	students   *repositories.StudentRepository
	users      *repositories.UserRepository
	allotments *AllotmentService
}

// NewStudentService creates a new student service instance
func NewStudentService(repos *repositories.Repositories, allotments *AllotmentService) *StudentService {
	return &StudentService{
		students:   repos.StudentRepository,
		users:      repos.UserRepository,
		allotments: allotments,
	}
}

// CreateStudent creates a resident record from warden tooling
func (s *StudentService) CreateStudent(ctx context.Context, req *dto.CreateStudentRequest) (*models.Student, error) {
	if strings.TrimSpace(req.RegNo) == "" {
		return nil, apperrors.NewBadRequestError("Register number cannot be empty")
	}
	if req.Category != nil && !slices.Contains(models.StudentCategories, *req.Category) {
		return nil, apperrors.NewBadRequestError("Unknown admission category")
	}
	if req.SGPA != nil && (*req.SGPA < 0 || *req.SGPA > 10) {
		return nil, apperrors.NewBadRequestError("SGPA must be between 0 and 10")
	}
	if req.KeamRank != nil && *req.KeamRank < 0 {
		return nil, apperrors.NewBadRequestError("KEAM rank cannot be negative")
	}

	if req.UserID != nil {
		if _, err := s.users.GetByID(ctx, *req.UserID); err != nil {
			return nil, err
		}
	}

	student := &models.Student{
		UserID:           req.UserID,
		Name:             strings.TrimSpace(req.Name),
		RegNo:            strings.ToUpper(strings.TrimSpace(req.RegNo)),
		YearOfStudy:      req.YearOfStudy,
		Department:       req.Department,
		Category:         req.Category,
		KeamRank:         req.KeamRank,
		SGPA:             req.SGPA,
		DistanceCategory: req.DistanceCategory,
		Backlogs:         req.Backlogs,
	}

	if err := s.students.Create(ctx, student); err != nil {
		return nil, err
	}
	return student, nil
}

// GetStudent retrieves a student record, including the active allotment if any
func (s *StudentService) GetStudent(ctx context.Context, id int64) (*models.Student, error) {
	return s.students.GetByID(ctx, id)
}

// GetStudentByUser resolves the student record linked to a user account
func (s *StudentService) GetStudentByUser(ctx context.Context, userID int64) (*models.Student, error) {
	student, err := s.students.FindByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if student == nil {
		return nil, apperrors.ErrStudentNotFound
	}
	return student, nil
}

// ListStudents retrieves a page of student records
func (s *StudentService) ListStudents(ctx context.Context, offset uint64, limit int) ([]*models.Student, int64, error) {
	students, err := s.students.List(ctx, offset, limit)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.students.Count(ctx)
	if err != nil {
		return nil, 0, err
	}
	return students, total, nil
}

// UpdateStudent applies partial updates to a student record
func (s *StudentService) UpdateStudent(ctx context.Context, id int64, req *dto.UpdateStudentRequest) (*models.Student, error) {
	student, err := s.students.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		student.Name = strings.TrimSpace(*req.Name)
	}
	if req.YearOfStudy != nil {
		student.YearOfStudy = *req.YearOfStudy
	}
	if req.Department != nil {
		student.Department = req.Department
	}
	if req.Category != nil {
		if !slices.Contains(models.StudentCategories, *req.Category) {
			return nil, apperrors.NewBadRequestError("Unknown admission category")
		}
		student.Category = req.Category
	}
	if req.KeamRank != nil {
		student.KeamRank = req.KeamRank
	}
	if req.SGPA != nil {
		if *req.SGPA < 0 || *req.SGPA > 10 {
			return nil, apperrors.NewBadRequestError("SGPA must be between 0 and 10")
		}
		student.SGPA = req.SGPA
	}
	if req.DistanceCategory != nil {
		student.DistanceCategory = req.DistanceCategory
	}
	if req.Backlogs != nil {
		student.Backlogs = req.Backlogs
	}

	if err := s.students.Update(ctx, student); err != nil {
		return nil, err
	}
	return student, nil
}

// LinkUser attaches a user account to a student record
func (s *StudentService) LinkUser(ctx context.Context, studentID, userID int64) error {
	if _, err := s.students.GetByID(ctx, studentID); err != nil {
		return err
	}
	if _, err := s.users.GetByID(ctx, userID); err != nil {
		return err
	}
	return s.students.LinkUser(ctx, studentID, userID)
}

// DeleteStudent removes a student record. Rejected while the student holds
// an active allotment; vacate first.
func (s *StudentService) DeleteStudent(ctx context.Context, id int64) error {
	if _, err := s.students.GetByID(ctx, id); err != nil {
		return err
	}

	active, err := s.allotments.GetActiveAllotmentForStudent(ctx, id)
	if err != nil {
		return err
	}
	if active != nil {
		return apperrors.ErrStudentHasActiveRoom
	}

	return s.students.Delete(ctx, id)
}
