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

// hostelStore is the slice of the hostel repository the hostel service uses.
type hostelStore interface {
	Create(ctx context.Context, hostel *models.Hostel) error
	GetByID(ctx context.Context, id int64) (*models.Hostel, error)
	GetAll(ctx context.Context) ([]*models.Hostel, error)
	Update(ctx context.Context, hostel *models.Hostel) error
	CountActiveAllotments(ctx context.Context, q repositories.Querier, hostelID int64) (int64, error)
	DeleteCascadeTx(ctx context.Context, tx pgx.Tx, hostelID int64) error
}

type hostelRoomLister interface {
	GetByHostel(ctx context.Context, hostelID int64) ([]*models.Room, error)
}

type userFinder interface {
	GetByID(ctx context.Context, id int64) (*models.User, error)
}

// HostelService handles hostel management, including the guarded cascading
// deletion of a hostel and all its dependent rows.
type HostelService struct {
	hostels    hostelStore
	rooms      hostelRoomLister
	users      userFinder
	dispatcher *events.Dispatcher
	runTx      func(ctx context.Context, fn db.TransactionFn) error
}

// NewHostelService creates a new hostel service instance
func NewHostelService(pool *pgxpool.Pool, repos *repositories.Repositories, dispatcher *events.Dispatcher) *HostelService {
	return &HostelService{
		hostels:    repos.HostelRepository,
		rooms:      repos.RoomRepository,
		users:      repos.UserRepository,
		dispatcher: dispatcher,
		runTx: func(ctx context.Context, fn db.TransactionFn) error {
			return db.WithTransaction(ctx, pool, fn)
		},
	}
}

// CreateHostel creates a hostel, optionally assigned to a warden user
func (s *HostelService) CreateHostel(ctx context.Context, hostel *models.Hostel) error {
	if strings.TrimSpace(hostel.Name) == "" {
		return apperrors.NewBadRequestError("Hostel name cannot be empty")
	}

	if hostel.WardenID != nil {
		warden, err := s.users.GetByID(ctx, *hostel.WardenID)
		if err != nil {
			return err
		}
		if warden.RoleType != models.RoleWarden {
			return apperrors.NewBadRequestError("Assigned warden must have the WARDEN role")
		}
	}

	return s.hostels.Create(ctx, hostel)
}

// GetHostel retrieves a hostel with its rooms and live occupancy counts
func (s *HostelService) GetHostel(ctx context.Context, id int64) (*models.Hostel, error) {
	hostel, err := s.hostels.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	rooms, err := s.rooms.GetByHostel(ctx, id)
	if err != nil {
		return nil, err
	}
	hostel.Rooms = rooms

	return hostel, nil
}

// ListHostels retrieves all hostels
func (s *HostelService) ListHostels(ctx context.Context) ([]*models.Hostel, error) {
	return s.hostels.GetAll(ctx)
}

// UpdateHostel updates hostel details
func (s *HostelService) UpdateHostel(ctx context.Context, hostel *models.Hostel) error {
	if strings.TrimSpace(hostel.Name) == "" {
		return apperrors.NewBadRequestError("Hostel name cannot be empty")
	}
	return s.hostels.Update(ctx, hostel)
}

// DeleteHostel removes a hostel and every dependent row in one transaction.
// Rejected outright while any room in the hostel holds an active allotment;
// occupants must be vacated first.
func (s *HostelService) DeleteHostel(ctx context.Context, id int64) error {
	if _, err := s.hostels.GetByID(ctx, id); err != nil {
		return err
	}

	err := s.runTx(ctx, func(ctx context.Context, tx pgx.Tx) error {
		active, txErr := s.hostels.CountActiveAllotments(ctx, tx, id)
		if txErr != nil {
			return txErr
		}
		if active > 0 {
			return apperrors.ErrHostelHasActiveAllotments
		}
		return s.hostels.DeleteCascadeTx(ctx, tx, id)
	})
	if err != nil {
		return err
	}

	if s.dispatcher != nil {
		s.dispatcher.Dispatch(ctx, events.New(events.HostelDeleted, map[string]any{
			"hostelId": id,
		}))
	}

	return nil
}
