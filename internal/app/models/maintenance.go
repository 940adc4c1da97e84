package models

import "time"

// MaintenanceRequest defines a repair/complaint ticket raised against a room,
// based on the 'maintenance_requests' table.
type MaintenanceRequest struct {
	ID          int64             `json:"id" db:"id" example:"9"`
	RoomID      int64             `json:"roomId" db:"room_id" example:"12"`
	StudentID   *int64            `json:"studentId,omitempty" db:"student_id" example:"1"`
	Description string            `json:"description" db:"description" example:"Ceiling fan not working"`
	Status      MaintenanceStatus `json:"status" db:"status" example:"pending"`
	Cost        *float64          `json:"cost,omitempty" db:"cost" example:"450"` // expense recorded on resolution
	CreatedAt   time.Time         `json:"createdAt" db:"created_at"`
	ResolvedAt  *time.Time        `json:"resolvedAt,omitempty" db:"resolved_at"`

	// Relations (populated when needed)
	Room    *Room    `json:"room,omitempty"`
	Student *Student `json:"student,omitempty"`
}
