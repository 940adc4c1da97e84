package dto

import (
	"time"

	"github.com/hostelhub/hostelhub/internal/app/models"
)

// SubmitApplicationRequest is the payload for a student applying for a room.
// The performance metric is derived server-side: first-year applicants are
// scored on their KEAM rank, seniors on CGPA.
type SubmitApplicationRequest struct {
	PreferredHostelID  *int64  `json:"preferredHostelId,omitempty" example:"1"`
	RoomTypePreference string  `json:"roomTypePreference" binding:"required" example:"shared"`
	Course             string  `json:"course" binding:"required" example:"B.Tech CSE"`
	AcademicYear       int     `json:"academicYear" binding:"required,min=1,max=5" example:"2"`
	PerformanceValue   float64 `json:"performanceValue" binding:"required" example:"8.5"`
	DistanceFromHome   string  `json:"distanceFromHome" binding:"required" example:"25-50km"`
}

// ReviewApplicationRequest is the payload for a warden approving an
// application. RoomID is optional; when absent a room is auto-selected.
type ReviewApplicationRequest struct {
	RoomID *int64 `json:"roomId,omitempty" example:"12"`
}

// ScoredApplicationResponse is an application annotated with its computed
// triage priority, ordered for warden review.
type ScoredApplicationResponse struct {
	Application *models.AllotmentApplication `json:"application"`
	Score       float64                      `json:"score" example:"71.5"`
	Priority    string                       `json:"priority" example:"High"`
	WaitingDays int                          `json:"waitingDays" example:"14"`
	ScoredAt    time.Time                    `json:"scoredAt"`
}
