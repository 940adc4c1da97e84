package services

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/hostelhub/hostelhub/internal/app/models"
	"github.com/hostelhub/hostelhub/internal/app/repositories"
	"github.com/hostelhub/hostelhub/internal/db"
	"github.com/hostelhub/hostelhub/internal/events"
	"github.com/hostelhub/hostelhub/internal/pkg/apperrors"
)

// allotmentStore is the slice of the allotment repository the lifecycle
// manager uses.
type allotmentStore interface {
	CreateActiveTx(ctx context.Context, tx pgx.Tx, studentID, roomID int64) (*models.RoomAllotment, error)
	GetByID(ctx context.Context, id int64) (*models.RoomAllotment, error)
	FindActiveByStudent(ctx context.Context, studentID int64) (*models.RoomAllotment, error)
	ListActiveByRoom(ctx context.Context, roomID int64) ([]*models.RoomAllotment, error)
	ListByStudent(ctx context.Context, studentID int64) ([]*models.RoomAllotment, error)
	VacateTx(ctx context.Context, tx pgx.Tx, allotmentID int64) (*models.RoomAllotment, error)
	BulkVacateRoomTx(ctx context.Context, tx pgx.Tx, roomID int64) (int64, error)
}

// roomStatusStore is the slice of the room repository the lifecycle manager
// uses.
type roomStatusStore interface {
	GetByID(ctx context.Context, id int64) (*models.Room, error)
	RecomputeStatus(ctx context.Context, q repositories.Querier, roomID int64) (*models.Room, error)
}

type studentFinder interface {
	GetByID(ctx context.Context, id int64) (*models.Student, error)
}

// AllotmentService is the only component that creates or terminates room
// allotments. Every mutation runs in one transaction together with the room
// status recomputation, and emits a domain event after commit.
type AllotmentService struct {
	allotments allotmentStore
	rooms      roomStatusStore
	students   studentFinder
	dispatcher *events.Dispatcher
	runTx      func(ctx context.Context, fn db.TransactionFn) error
}

// NewAllotmentService creates a new allotment service instance
func NewAllotmentService(pool *pgxpool.Pool, repos *repositories.Repositories, dispatcher *events.Dispatcher) *AllotmentService {
	return &AllotmentService{
		allotments: repos.AllotmentRepository,
		rooms:      repos.RoomRepository,
		students:   repos.StudentRepository,
		dispatcher: dispatcher,
		runTx: func(ctx context.Context, fn db.TransactionFn) error {
			return db.WithTransaction(ctx, pool, fn)
		},
	}
}

// CreateAllotment assigns a student to a room. The student must exist and
// must not hold an active allotment; the room must have spare capacity and
// must not be under maintenance. Retrying after success fails with a conflict
// rather than creating a second row.
func (s *AllotmentService) CreateAllotment(ctx context.Context, studentID, roomID int64) (*models.RoomAllotment, error) {
	student, err := s.students.GetByID(ctx, studentID)
	if err != nil {
		return nil, err
	}

	room, err := s.rooms.GetByID(ctx, roomID)
	if err != nil {
		return nil, err
	}
	if room.Status == models.RoomStatusUnderMaintenance {
		return nil, apperrors.ErrRoomUnderMaintenance
	}

	if existing, err := s.allotments.FindActiveByStudent(ctx, studentID); err != nil {
		return nil, err
	} else if existing != nil {
		return nil, apperrors.ErrDuplicateActiveAllotment
	}

	var allotment *models.RoomAllotment
	err = s.runTx(ctx, func(ctx context.Context, tx pgx.Tx) error {
		var txErr error
		allotment, txErr = s.allotments.CreateActiveTx(ctx, tx, studentID, roomID)
		if txErr != nil {
			return txErr
		}
		_, txErr = s.rooms.RecomputeStatus(ctx, tx, roomID)
		return txErr
	})
	if err != nil {
		return nil, err
	}

	s.dispatch(ctx, events.AllotmentCreated, map[string]any{
		"allotmentId": allotment.ID,
		"studentId":   studentID,
		"userId":      userIDOf(student),
		"roomId":      roomID,
		"roomNo":      room.RoomNo,
	})

	return allotment, nil
}

// AllocateInTx inserts an active allotment and recomputes the room's status
// inside the caller's transaction. Used by application allocation so the
// application transition and the allotment insert commit together. The caller
// dispatches events after commit.
func (s *AllotmentService) AllocateInTx(ctx context.Context, tx pgx.Tx, studentID, roomID int64) (*models.RoomAllotment, error) {
	allotment, err := s.allotments.CreateActiveTx(ctx, tx, studentID, roomID)
	if err != nil {
		return nil, err
	}
	if _, err := s.rooms.RecomputeStatus(ctx, tx, roomID); err != nil {
		return nil, err
	}
	return allotment, nil
}

// VacateAllotment soft-terminates an active allotment, keeping the row for
// history, and recomputes the room's status in the same transaction.
func (s *AllotmentService) VacateAllotment(ctx context.Context, allotmentID int64) (*models.RoomAllotment, error) {
	var allotment *models.RoomAllotment
	err := s.runTx(ctx, func(ctx context.Context, tx pgx.Tx) error {
		var txErr error
		allotment, txErr = s.allotments.VacateTx(ctx, tx, allotmentID)
		if txErr != nil {
			return txErr
		}
		_, txErr = s.rooms.RecomputeStatus(ctx, tx, allotment.RoomID)
		return txErr
	})
	if err != nil {
		return nil, err
	}

	payload := map[string]any{
		"allotmentId": allotment.ID,
		"studentId":   allotment.StudentID,
		"roomId":      allotment.RoomID,
	}
	if student, err := s.students.GetByID(ctx, allotment.StudentID); err == nil {
		payload["userId"] = userIDOf(student)
	}
	if room, err := s.rooms.GetByID(ctx, allotment.RoomID); err == nil {
		payload["roomNo"] = room.RoomNo
	}
	s.dispatch(ctx, events.AllotmentVacated, payload)

	return allotment, nil
}

// BulkVacateRoom terminates every active allotment in a room atomically and
// returns how many were vacated. Used by the admin clear-room action and by
// callers preparing a room for deletion.
func (s *AllotmentService) BulkVacateRoom(ctx context.Context, roomID int64) (int64, error) {
	if _, err := s.rooms.GetByID(ctx, roomID); err != nil {
		return 0, err
	}

	var count int64
	err := s.runTx(ctx, func(ctx context.Context, tx pgx.Tx) error {
		var txErr error
		count, txErr = s.allotments.BulkVacateRoomTx(ctx, tx, roomID)
		if txErr != nil {
			return txErr
		}
		_, txErr = s.rooms.RecomputeStatus(ctx, tx, roomID)
		return txErr
	})
	if err != nil {
		return 0, err
	}

	if count > 0 {
		s.dispatch(ctx, events.RoomVacatedBulk, map[string]any{
			"roomId": roomID,
			"count":  count,
		})
	}

	return count, nil
}

// RecomputeRoomStatus re-derives a room's status from its current occupancy
func (s *AllotmentService) RecomputeRoomStatus(ctx context.Context, roomID int64) (*models.Room, error) {
	var room *models.Room
	err := s.runTx(ctx, func(ctx context.Context, tx pgx.Tx) error {
		var txErr error
		room, txErr = s.rooms.RecomputeStatus(ctx, tx, roomID)
		return txErr
	})
	return room, err
}

// GetAllotment retrieves an allotment by ID
func (s *AllotmentService) GetAllotment(ctx context.Context, id int64) (*models.RoomAllotment, error) {
	return s.allotments.GetByID(ctx, id)
}

// GetActiveAllotmentForStudent returns the student's active allotment, or nil
func (s *AllotmentService) GetActiveAllotmentForStudent(ctx context.Context, studentID int64) (*models.RoomAllotment, error) {
	return s.allotments.FindActiveByStudent(ctx, studentID)
}

// ListAllotmentsForStudent returns a student's allotment history, newest first
func (s *AllotmentService) ListAllotmentsForStudent(ctx context.Context, studentID int64) ([]*models.RoomAllotment, error) {
	return s.allotments.ListByStudent(ctx, studentID)
}

// ListActiveOccupants returns the active allotments for a room
func (s *AllotmentService) ListActiveOccupants(ctx context.Context, roomID int64) ([]*models.RoomAllotment, error) {
	return s.allotments.ListActiveByRoom(ctx, roomID)
}

func (s *AllotmentService) dispatch(ctx context.Context, t events.Type, payload map[string]any) {
	if s.dispatcher != nil {
		s.dispatcher.Dispatch(ctx, events.New(t, payload))
	}
}

func userIDOf(student *models.Student) any {
	if student == nil || student.UserID == nil {
		return nil
	}
	return *student.UserID
}
