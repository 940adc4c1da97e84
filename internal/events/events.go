package events

import "time"

// Type identifies a domain event kind
type Type string

const (
	AllotmentCreated      Type = "allotment.created"
	AllotmentVacated      Type = "allotment.vacated"
	RoomVacatedBulk       Type = "room.vacated_bulk"
	RoomDeleted           Type = "room.deleted"
	HostelDeleted         Type = "hostel.deleted"
	ApplicationApproved   Type = "application.approved"
	ApplicationRejected   Type = "application.rejected"
	ApplicationAllocated  Type = "application.allocated"
	MaintenanceReported   Type = "maintenance.reported"
	MaintenanceResolved   Type = "maintenance.resolved"
	AnnouncementPublished Type = "announcement.published"
)

// Event is a domain event emitted after a state change has been committed.
// Payload carries event-specific fields and must be JSON-serializable.
type Event struct {
	Type       Type           `json:"type"`
	OccurredAt time.Time      `json:"occurredAt"`
	Payload    map[string]any `json:"payload"`
}

// New builds an event stamped with the current time
func New(t Type, payload map[string]any) Event {
	return Event{Type: t, OccurredAt: time.Now().UTC(), Payload: payload}
}
