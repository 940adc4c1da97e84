package models

import "time"

// RoomAllotment defines an assignment of one student to one room, based on the
// 'room_allotments' table. At most one Active allotment may exist per student
// at any time; vacated rows are retained for history.
type RoomAllotment struct {
	ID            int64           `json:"id" db:"id" example:"7"`
	StudentID     int64           `json:"studentId" db:"student_id" example:"1"`
	RoomID        int64           `json:"roomId" db:"room_id" example:"12"`
	Status        AllotmentStatus `json:"status" db:"status" example:"Active"`
	AllotmentDate time.Time       `json:"allotmentDate" db:"allotment_date"`
	VacatedAt     *time.Time      `json:"vacatedAt,omitempty" db:"vacated_at"`

	// Relations (populated when needed)
	Student *Student `json:"student,omitempty"`
	Room    *Room    `json:"room,omitempty"`
}
