package services

import (
	"context"
	"errors"
	"strconv"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/hostelhub/hostelhub/internal/app/models"
	"github.com/hostelhub/hostelhub/internal/app/models/dto"
	"github.com/hostelhub/hostelhub/internal/app/repositories"
	"github.com/hostelhub/hostelhub/internal/db"
	"github.com/hostelhub/hostelhub/internal/events"
	"github.com/hostelhub/hostelhub/internal/pkg/apperrors"
)

// SettingAllotmentOpen gates new application submissions. Absent means open.
const SettingAllotmentOpen = "allotment_open"

// ApplicationService handles the room application workflow: submission by
// students, scored triage listing for wardens, and the
// approve/reject/allocate review actions.
type ApplicationService struct {
	applications *repositories.ApplicationRepository
	students     *repositories.StudentRepository
	rooms        *repositories.RoomRepository
	hostels      *repositories.HostelRepository
	settings     *repositories.SettingsRepository
	allotments   *AllotmentService
	scorer       *PriorityScorer
	selector     *RoomSelector
	dispatcher   *events.Dispatcher
	runTx        func(ctx context.Context, fn db.TransactionFn) error
}

// NewApplicationService creates a new application service instance
func NewApplicationService(
	pool *pgxpool.Pool,
	repos *repositories.Repositories,
	allotments *AllotmentService,
	dispatcher *events.Dispatcher,
) *ApplicationService {
	return &ApplicationService{
		applications: repos.ApplicationRepository,
		students:     repos.StudentRepository,
		rooms:        repos.RoomRepository,
		hostels:      repos.HostelRepository,
		settings:     repos.SettingsRepository,
		allotments:   allotments,
		scorer:       NewPriorityScorer(),
		selector:     NewRoomSelector(),
		dispatcher:   dispatcher,
		runTx: func(ctx context.Context, fn db.TransactionFn) error {
			return db.WithTransaction(ctx, pool, fn)
		},
	}
}

// SubmitApplication files a new pending application for the user. The
// performance metric is derived from the academic year: first years are
// scored on their entrance rank, seniors on CGPA. A user with a pending
// application cannot file another.
func (s *ApplicationService) SubmitApplication(ctx context.Context, userID int64, req *dto.SubmitApplicationRequest) (*models.AllotmentApplication, error) {
	open, err := s.allotmentOpen(ctx)
	if err != nil {
		return nil, err
	}
	if !open {
		return nil, apperrors.NewConflictError("Room applications are currently closed")
	}

	performanceType := models.PerformanceTypeCGPA
	if req.AcademicYear <= 1 {
		performanceType = models.PerformanceTypeKeamRank
	}

	app := &models.AllotmentApplication{
		UserID:             userID,
		PreferredHostelID:  req.PreferredHostelID,
		RoomTypePreference: req.RoomTypePreference,
		Course:             req.Course,
		AcademicYear:       req.AcademicYear,
		PerformanceType:    performanceType,
		PerformanceValue:   req.PerformanceValue,
		DistanceFromHome:   req.DistanceFromHome,
	}

	if err := s.applications.Create(ctx, app); err != nil {
		return nil, err
	}

	return app, nil
}

// GetApplication retrieves an application by ID
func (s *ApplicationService) GetApplication(ctx context.Context, id int64) (*models.AllotmentApplication, error) {
	return s.applications.GetByID(ctx, id)
}

// ListUserApplications returns a user's applications, newest first
func (s *ApplicationService) ListUserApplications(ctx context.Context, userID int64) ([]*models.AllotmentApplication, error) {
	return s.applications.ListByUser(ctx, userID)
}

// ListPendingScored returns all pending applications annotated with their
// priority score, ordered for warden triage.
func (s *ApplicationService) ListPendingScored(ctx context.Context) ([]*dto.ScoredApplicationResponse, error) {
	pending, err := s.applications.ListByStatus(ctx, models.ApplicationStatusPending)
	if err != nil {
		return nil, err
	}
	return s.scorer.ScoreAll(pending), nil
}

// ApproveApplication marks a pending application approved without assigning
// a room. Allocation happens separately, manually or via auto-allocate.
func (s *ApplicationService) ApproveApplication(ctx context.Context, applicationID, reviewerID int64) (*models.AllotmentApplication, error) {
	app, err := s.applications.MarkApproved(ctx, applicationID, reviewerID)
	if err != nil {
		return nil, err
	}

	s.dispatch(ctx, events.ApplicationApproved, map[string]any{
		"applicationId": app.ID,
		"userId":        app.UserID,
	})

	return app, nil
}

// RejectApplication marks a pending application rejected
func (s *ApplicationService) RejectApplication(ctx context.Context, applicationID, reviewerID int64) (*models.AllotmentApplication, error) {
	app, err := s.applications.MarkRejected(ctx, applicationID, reviewerID)
	if err != nil {
		return nil, err
	}

	s.dispatch(ctx, events.ApplicationRejected, map[string]any{
		"applicationId": app.ID,
		"userId":        app.UserID,
	})

	return app, nil
}

// AllocateApplication assigns a room to a pending or approved application.
// When roomID is nil a room is auto-selected from the available set,
// honoring the applicant's hostel preference when possible. The application
// transition and the allotment insert commit in one transaction.
func (s *ApplicationService) AllocateApplication(ctx context.Context, applicationID, reviewerID int64, roomID *int64) (*models.AllotmentApplication, error) {
	app, err := s.applications.GetByID(ctx, applicationID)
	if err != nil {
		return nil, err
	}
	if app.Status != models.ApplicationStatusPending && app.Status != models.ApplicationStatusApproved {
		return nil, apperrors.ErrApplicationNotPending
	}

	student, err := s.students.FindByUserID(ctx, app.UserID)
	if err != nil {
		return nil, err
	}
	if student == nil {
		return nil, apperrors.NewConflictError("Applicant has no student profile; create one before allocating")
	}

	room, err := s.resolveRoom(ctx, app, roomID)
	if err != nil {
		return nil, err
	}

	var allocated *models.AllotmentApplication
	var allotment *models.RoomAllotment
	err = s.runTx(ctx, func(ctx context.Context, tx pgx.Tx) error {
		var txErr error
		allotment, txErr = s.allotments.AllocateInTx(ctx, tx, student.ID, room.ID)
		if txErr != nil {
			return txErr
		}
		allocated, txErr = s.applications.MarkAllocatedTx(ctx, tx, app.ID, reviewerID, room.ID, allotment.AllotmentDate)
		return txErr
	})
	if err != nil {
		return nil, err
	}

	s.dispatch(ctx, events.AllotmentCreated, map[string]any{
		"allotmentId": allotment.ID,
		"studentId":   student.ID,
		"userId":      app.UserID,
		"roomId":      room.ID,
		"roomNo":      room.RoomNo,
	})
	s.dispatch(ctx, events.ApplicationAllocated, map[string]any{
		"applicationId": app.ID,
		"userId":        app.UserID,
		"roomId":        room.ID,
		"roomNo":        room.RoomNo,
	})

	return allocated, nil
}

// resolveRoom validates an explicitly requested room or auto-selects one
// from the rooms with spare capacity.
func (s *ApplicationService) resolveRoom(ctx context.Context, app *models.AllotmentApplication, roomID *int64) (*models.Room, error) {
	if roomID != nil {
		room, err := s.rooms.GetByID(ctx, *roomID)
		if err != nil {
			return nil, err
		}
		if room.Status == models.RoomStatusUnderMaintenance {
			return nil, apperrors.ErrRoomUnderMaintenance
		}
		if room.AvailableSpots() == 0 {
			return nil, apperrors.ErrRoomFull
		}
		return room, nil
	}

	// Restrict the candidate pool to the type of the preferred hostel, so a
	// fallback to another hostel never crosses a Mens/Womens boundary.
	var typeFilter *string
	if app.PreferredHostelID != nil {
		hostel, err := s.hostels.GetByID(ctx, *app.PreferredHostelID)
		if err != nil {
			return nil, err
		}
		typeFilter = &hostel.Type
	}

	candidates, err := s.rooms.FindAvailable(ctx, typeFilter)
	if err != nil {
		return nil, err
	}
	return s.selector.Select(candidates, app.PreferredHostelID)
}

// allotmentOpen reads the submission gate setting. A missing setting or an
// unparseable value leaves submissions open.
func (s *ApplicationService) allotmentOpen(ctx context.Context) (bool, error) {
	setting, err := s.settings.Get(ctx, SettingAllotmentOpen)
	if err != nil {
		if errors.Is(err, apperrors.ErrSettingNotFound) {
			return true, nil
		}
		return false, err
	}
	open, err := strconv.ParseBool(setting.Value)
	if err != nil {
		return true, nil
	}
	return open, nil
}

// CountByStatus counts applications with the given status
func (s *ApplicationService) CountByStatus(ctx context.Context, status models.ApplicationStatus) (int64, error) {
	return s.applications.CountByStatus(ctx, status)
}

func (s *ApplicationService) dispatch(ctx context.Context, t events.Type, payload map[string]any) {
	if s.dispatcher != nil {
		s.dispatcher.Dispatch(ctx, events.New(t, payload))
	}
}
