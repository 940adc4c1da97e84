package services

import (
	"context"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/hostelhub/hostelhub/internal/app/models"
	"github.com/hostelhub/hostelhub/internal/app/repositories"
	"github.com/hostelhub/hostelhub/internal/db"
	"github.com/hostelhub/hostelhub/internal/events"
	"github.com/hostelhub/hostelhub/internal/pkg/apperrors"
)

// roomStore is the slice of the room repository the room service uses.
type roomStore interface {
	Create(ctx context.Context, room *models.Room) error
	GetByID(ctx context.Context, id int64) (*models.Room, error)
	GetByHostel(ctx context.Context, hostelID int64) ([]*models.Room, error)
	FindAvailable(ctx context.Context, hostelType *string) ([]*models.Room, error)
	Update(ctx context.Context, room *models.Room) error
	SetStatus(ctx context.Context, q repositories.Querier, roomID int64, status models.RoomStatus) error
	RecomputeStatus(ctx context.Context, q repositories.Querier, roomID int64) (*models.Room, error)
	CountActiveAllotments(ctx context.Context, q repositories.Querier, roomID int64) (int64, error)
	DeleteCascadeTx(ctx context.Context, tx pgx.Tx, roomID int64) error
}

type hostelFinder interface {
	GetByID(ctx context.Context, id int64) (*models.Hostel, error)
}

// RoomService handles room management: creation, maintenance status changes,
// the admin clear-room action and guarded single-room deletion.
type RoomService struct {
	rooms      roomStore
	hostels    hostelFinder
	allotments *AllotmentService
	dispatcher *events.Dispatcher
	runTx      func(ctx context.Context, fn db.TransactionFn) error
}

// NewRoomService creates a new room service instance
func NewRoomService(pool *pgxpool.Pool, repos *repositories.Repositories, allotments *AllotmentService, dispatcher *events.Dispatcher) *RoomService {
	return &RoomService{
		rooms:      repos.RoomRepository,
		hostels:    repos.HostelRepository,
		allotments: allotments,
		dispatcher: dispatcher,
		runTx: func(ctx context.Context, fn db.TransactionFn) error {
			return db.WithTransaction(ctx, pool, fn)
		},
	}
}

// CreateRoom creates a room within a hostel
func (s *RoomService) CreateRoom(ctx context.Context, room *models.Room) error {
	if strings.TrimSpace(room.RoomNo) == "" {
		return apperrors.NewBadRequestError("Room number cannot be empty")
	}
	if room.Capacity < 1 {
		return apperrors.NewBadRequestError("Room capacity must be at least 1")
	}

	if _, err := s.hostels.GetByID(ctx, room.HostelID); err != nil {
		return err
	}

	room.Status = models.RoomStatusVacant
	return s.rooms.Create(ctx, room)
}

// GetRoom retrieves a room with its live occupancy count
func (s *RoomService) GetRoom(ctx context.Context, id int64) (*models.Room, error) {
	return s.rooms.GetByID(ctx, id)
}

// ListRoomsByHostel retrieves a hostel's rooms with occupancy counts
func (s *RoomService) ListRoomsByHostel(ctx context.Context, hostelID int64) ([]*models.Room, error) {
	if _, err := s.hostels.GetByID(ctx, hostelID); err != nil {
		return nil, err
	}
	return s.rooms.GetByHostel(ctx, hostelID)
}

// ListAvailableRooms retrieves rooms with spare capacity that are not under
// maintenance, optionally restricted to hostels of one type.
func (s *RoomService) ListAvailableRooms(ctx context.Context, hostelType *string) ([]*models.Room, error) {
	return s.rooms.FindAvailable(ctx, hostelType)
}

// UpdateRoom updates a room's number and capacity. Capacity cannot drop
// below the current occupancy.
func (s *RoomService) UpdateRoom(ctx context.Context, room *models.Room) error {
	if room.Capacity < 1 {
		return apperrors.NewBadRequestError("Room capacity must be at least 1")
	}

	current, err := s.rooms.GetByID(ctx, room.ID)
	if err != nil {
		return err
	}
	if room.Capacity < current.Occupants {
		return apperrors.NewConflictError("Room capacity cannot be lower than current occupancy")
	}

	return s.rooms.Update(ctx, room)
}

// SetMaintenanceStatus puts a room under maintenance or clears the flag.
// A room with occupants cannot be put under maintenance; clearing the flag
// re-derives the status from occupancy.
func (s *RoomService) SetMaintenanceStatus(ctx context.Context, roomID int64, underMaintenance bool) (*models.Room, error) {
	room, err := s.rooms.GetByID(ctx, roomID)
	if err != nil {
		return nil, err
	}

	if underMaintenance {
		if room.Occupants > 0 {
			return nil, apperrors.ErrRoomOccupied
		}
		err = s.runTx(ctx, func(ctx context.Context, tx pgx.Tx) error {
			return s.rooms.SetStatus(ctx, tx, roomID, models.RoomStatusUnderMaintenance)
		})
		if err != nil {
			return nil, err
		}
		return s.rooms.GetByID(ctx, roomID)
	}

	// Clearing maintenance hands the status back to occupancy derivation.
	var updated *models.Room
	err = s.runTx(ctx, func(ctx context.Context, tx pgx.Tx) error {
		if txErr := s.rooms.SetStatus(ctx, tx, roomID, models.RoomStatusVacant); txErr != nil {
			return txErr
		}
		var txErr error
		updated, txErr = s.rooms.RecomputeStatus(ctx, tx, roomID)
		return txErr
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

// VacateRoom is the admin clear-room action: every active occupant is
// soft-terminated and the room status recomputed.
func (s *RoomService) VacateRoom(ctx context.Context, roomID int64) (int64, error) {
	return s.allotments.BulkVacateRoom(ctx, roomID)
}

// DeleteRoom removes a room and its dependent rows in one transaction.
// Rejected while the room has active allotments.
func (s *RoomService) DeleteRoom(ctx context.Context, roomID int64) error {
	if _, err := s.rooms.GetByID(ctx, roomID); err != nil {
		return err
	}

	err := s.runTx(ctx, func(ctx context.Context, tx pgx.Tx) error {
		active, txErr := s.rooms.CountActiveAllotments(ctx, tx, roomID)
		if txErr != nil {
			return txErr
		}
		if active > 0 {
			return apperrors.ErrRoomHasActiveAllotments
		}
		return s.rooms.DeleteCascadeTx(ctx, tx, roomID)
	})
	if err != nil {
		return err
	}

	if s.dispatcher != nil {
		s.dispatcher.Dispatch(ctx, events.New(events.RoomDeleted, map[string]any{
			"roomId": roomID,
		}))
	}

	return nil
}
