package services

import (
	"context"
	"strings"

	"github.com/hostelhub/hostelhub/internal/app/models"
	"github.com/hostelhub/hostelhub/internal/app/models/dto"
	"github.com/hostelhub/hostelhub/internal/app/repositories"
	"github.com/hostelhub/hostelhub/internal/events"
	"github.com/hostelhub/hostelhub/internal/pkg/apperrors"
)

// MaintenanceService handles the maintenance ticket workflow
type MaintenanceService struct {
	maintenance *repositories.MaintenanceRepository
	rooms       *repositories.RoomRepository
	students    *repositories.StudentRepository
	dispatcher  *events.Dispatcher
}

// NewMaintenanceService creates a new maintenance service instance
func NewMaintenanceService(repos *repositories.Repositories, dispatcher *events.Dispatcher) *MaintenanceService {
	return &MaintenanceService{
		maintenance: repos.MaintenanceRepository,
		rooms:       repos.RoomRepository,
		students:    repos.StudentRepository,
		dispatcher:  dispatcher,
	}
}

// ReportIssue files a ticket against a room. When the reporter has a student
// record, the ticket is attributed to it.
func (s *MaintenanceService) ReportIssue(ctx context.Context, reporterUserID int64, req *dto.CreateMaintenanceRequest) (*models.MaintenanceRequest, error) {
	if strings.TrimSpace(req.Description) == "" {
		return nil, apperrors.NewBadRequestError("Description cannot be empty")
	}

	room, err := s.rooms.GetByID(ctx, req.RoomID)
	if err != nil {
		return nil, err
	}

	ticket := &models.MaintenanceRequest{
		RoomID:      room.ID,
		Description: strings.TrimSpace(req.Description),
	}

	student, err := s.students.FindByUserID(ctx, reporterUserID)
	if err != nil {
		return nil, err
	}
	if student != nil {
		ticket.StudentID = &student.ID
	}

	if err := s.maintenance.Create(ctx, ticket); err != nil {
		return nil, err
	}

	if s.dispatcher != nil {
		s.dispatcher.Dispatch(ctx, events.New(events.MaintenanceReported, map[string]any{
			"maintenanceId": ticket.ID,
			"roomId":        room.ID,
			"roomNo":        room.RoomNo,
		}))
	}

	return ticket, nil
}

// GetRequest retrieves a maintenance ticket by ID
func (s *MaintenanceService) GetRequest(ctx context.Context, id int64) (*models.MaintenanceRequest, error) {
	return s.maintenance.GetByID(ctx, id)
}

// ListRequests lists tickets, optionally filtered by status
func (s *MaintenanceService) ListRequests(ctx context.Context, status *models.MaintenanceStatus) ([]*models.MaintenanceRequest, error) {
	return s.maintenance.List(ctx, status)
}

// ListMyRequests lists the tickets filed by the user's student record
func (s *MaintenanceService) ListMyRequests(ctx context.Context, userID int64) ([]*models.MaintenanceRequest, error) {
	student, err := s.students.FindByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if student == nil {
		return nil, nil
	}
	return s.maintenance.ListByStudent(ctx, student.ID)
}

// UpdateStatus moves a ticket through pending, in_progress and resolved.
// Resolving records the expense and notifies the reporter.
func (s *MaintenanceService) UpdateStatus(ctx context.Context, id int64, req *dto.UpdateMaintenanceStatusRequest) (*models.MaintenanceRequest, error) {
	status := models.MaintenanceStatus(req.Status)
	if req.Cost != nil && *req.Cost < 0 {
		return nil, apperrors.NewBadRequestError("Cost cannot be negative")
	}

	ticket, err := s.maintenance.UpdateStatus(ctx, id, status, req.Cost)
	if err != nil {
		return nil, err
	}

	if status == models.MaintenanceStatusResolved && s.dispatcher != nil {
		payload := map[string]any{
			"maintenanceId": ticket.ID,
			"roomId":        ticket.RoomID,
		}
		if room, roomErr := s.rooms.GetByID(ctx, ticket.RoomID); roomErr == nil {
			payload["roomNo"] = room.RoomNo
		}
		if ticket.StudentID != nil {
			if student, stErr := s.students.GetByID(ctx, *ticket.StudentID); stErr == nil && student.UserID != nil {
				payload["userId"] = *student.UserID
			}
		}
		s.dispatcher.Dispatch(ctx, events.New(events.MaintenanceResolved, payload))
	}

	return ticket, nil
}

// CountOpen counts unresolved tickets for the dashboard
func (s *MaintenanceService) CountOpen(ctx context.Context) (int64, error) {
	return s.maintenance.CountOpen(ctx)
}
