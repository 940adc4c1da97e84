package models

import "time"

// AllotmentApplication defines a student's request for a hostel room, based on
// the 'allotment_applications' table. Lifecycle:
// pending -> {approved -> allocated | rejected}. At most one pending
// application may exist per user.
type AllotmentApplication struct {
	ID                 int64             `json:"id" db:"id" example:"4"`
	UserID             int64             `json:"userId" db:"user_id" example:"5"`
	PreferredHostelID  *int64            `json:"preferredHostelId,omitempty" db:"preferred_hostel_id" example:"1"`
	RoomTypePreference string            `json:"roomTypePreference" db:"room_type_preference" example:"shared"`
	Course             string            `json:"course" db:"course" example:"B.Tech CSE"`
	AcademicYear       int               `json:"academicYear" db:"academic_year" example:"2"`
	PerformanceType    PerformanceType   `json:"performanceType" db:"performance_type" example:"cgpa"`
	PerformanceValue   float64           `json:"performanceValue" db:"performance_value" example:"8.5"`
	DistanceFromHome   string            `json:"distanceFromHome" db:"distance_from_home" example:"25-50km"`
	Status             ApplicationStatus `json:"status" db:"status" example:"pending"`
	ReviewedBy         *int64            `json:"reviewedBy,omitempty" db:"reviewed_by"`
	ReviewedAt         *time.Time        `json:"reviewedAt,omitempty" db:"reviewed_at"`
	AllocatedRoomID    *int64            `json:"allocatedRoomId,omitempty" db:"allocated_room_id"`
	AllocatedAt        *time.Time        `json:"allocatedAt,omitempty" db:"allocated_at"`
	CreatedAt          time.Time         `json:"createdAt" db:"created_at"`

	// Relations (populated when needed)
	Applicant       *User   `json:"applicant,omitempty"`
	PreferredHostel *Hostel `json:"preferredHostel,omitempty"`
	AllocatedRoom   *Room   `json:"allocatedRoom,omitempty"`
}
