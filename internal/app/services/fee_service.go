package services

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/hostelhub/hostelhub/internal/app/models"
	"github.com/hostelhub/hostelhub/internal/app/models/dto"
	"github.com/hostelhub/hostelhub/internal/app/repositories"
	"github.com/hostelhub/hostelhub/internal/pkg/apperrors"
)

// FeeService handles fee charges and recorded payments. Payments are
// recorded, not processed; there is no gateway integration.
type FeeService struct {
	fees       *repositories.FeeRepository
	students   *repositories.StudentRepository
	hostels    *repositories.HostelRepository
	allotments *repositories.AllotmentRepository
}

// NewFeeService creates a new fee service instance
func NewFeeService(repos *repositories.Repositories) *FeeService {
	return &FeeService{
		fees:       repos.FeeRepository,
		students:   repos.StudentRepository,
		hostels:    repos.HostelRepository,
		allotments: repos.AllotmentRepository,
	}
}

// CreateFee raises a charge against a student
func (s *FeeService) CreateFee(ctx context.Context, req *dto.CreateFeeRequest) (*models.Fee, error) {
	dueDate, err := time.Parse("2006-01-02", req.DueDate)
	if err != nil {
		return nil, apperrors.NewBadRequestError("Due date must be in YYYY-MM-DD format")
	}

	if _, err := s.students.GetByID(ctx, req.StudentID); err != nil {
		return nil, err
	}

	fee := &models.Fee{
		StudentID: req.StudentID,
		FeeType:   req.FeeType,
		Amount:    req.Amount,
		DueDate:   dueDate,
	}

	if err := s.fees.Create(ctx, fee); err != nil {
		return nil, err
	}
	return fee, nil
}

// CreateHostelFees raises the same charge against every current occupant of
// the hostel, returning how many fee rows were created. A hostel with no
// occupants yields zero without error.
func (s *FeeService) CreateHostelFees(ctx context.Context, hostelID int64, req *dto.CreateHostelFeesRequest) (int64, error) {
	dueDate, err := time.Parse("2006-01-02", req.DueDate)
	if err != nil {
		return 0, apperrors.NewBadRequestError("Due date must be in YYYY-MM-DD format")
	}

	if _, err := s.hostels.GetByID(ctx, hostelID); err != nil {
		return 0, err
	}

	studentIDs, err := s.allotments.ListActiveStudentIDsByHostel(ctx, hostelID)
	if err != nil {
		return 0, err
	}
	if len(studentIDs) == 0 {
		return 0, nil
	}

	return s.fees.CreateForStudents(ctx, studentIDs, req.FeeType, req.Amount, dueDate)
}

// GetFee retrieves a fee by ID
func (s *FeeService) GetFee(ctx context.Context, id int64) (*models.Fee, error) {
	return s.fees.GetByID(ctx, id)
}

// ListFees lists fees, optionally filtered by status
func (s *FeeService) ListFees(ctx context.Context, status *models.FeeStatus) ([]*models.Fee, error) {
	return s.fees.List(ctx, status)
}

// ListStudentFees lists a student's fees
func (s *FeeService) ListStudentFees(ctx context.Context, studentID int64) ([]*models.Fee, error) {
	if _, err := s.students.GetByID(ctx, studentID); err != nil {
		return nil, err
	}
	return s.fees.ListByStudent(ctx, studentID)
}

// ListMyFees lists the fees of the user's student record
func (s *FeeService) ListMyFees(ctx context.Context, userID int64) ([]*models.Fee, error) {
	student, err := s.students.FindByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if student == nil {
		return nil, nil
	}
	return s.fees.ListByStudent(ctx, student.ID)
}

// RecordPayment marks a fee as paid with the received method and reference
func (s *FeeService) RecordPayment(ctx context.Context, feeID int64, req *dto.RecordPaymentRequest) (*models.Fee, error) {
	return s.fees.MarkPaid(ctx, feeID, req.PaymentMethod, req.PaymentRef)
}

// Summary aggregates fee totals for the dashboard
func (s *FeeService) Summary(ctx context.Context) (*dto.FeeSummaryResponse, error) {
	totalDue, totalCollected, unpaidCount, err := s.fees.Summary(ctx)
	if err != nil {
		return nil, err
	}
	return &dto.FeeSummaryResponse{
		TotalDue:       totalDue,
		TotalCollected: totalCollected,
		UnpaidCount:    unpaidCount,
	}, nil
}

// ExportCSV writes all fees matching the status filter as CSV, one row per
// fee, for office bookkeeping.
func (s *FeeService) ExportCSV(ctx context.Context, w io.Writer, status *models.FeeStatus) error {
	fees, err := s.fees.List(ctx, status)
	if err != nil {
		return err
	}

	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"id", "student_id", "fee_type", "amount", "due_date", "status", "paid_at", "payment_method", "payment_ref"}); err != nil {
		return err
	}

	for _, fee := range fees {
		paidAt := ""
		if fee.PaidAt != nil {
			paidAt = fee.PaidAt.Format(time.RFC3339)
		}
		method := ""
		if fee.PaymentMethod != nil {
			method = *fee.PaymentMethod
		}
		ref := ""
		if fee.PaymentRef != nil {
			ref = *fee.PaymentRef
		}

		record := []string{
			strconv.FormatInt(fee.ID, 10),
			strconv.FormatInt(fee.StudentID, 10),
			fee.FeeType,
			fmt.Sprintf("%.2f", fee.Amount),
			fee.DueDate.Format("2006-01-02"),
			string(fee.Status),
			paidAt,
			method,
			ref,
		}
		if err := cw.Write(record); err != nil {
			return err
		}
	}

	cw.Flush()
	return cw.Error()
}
