package models

import "time"

// Hostel defines a hostel building based on the 'hostels' table
type Hostel struct {
	ID        int64     `json:"id" db:"id" example:"1"`
	Name      string    `json:"name" db:"name" example:"MH-A"`
	Type      string    `json:"type" db:"type" example:"Mens"` // Mens or Womens
	WardenID  *int64    `json:"wardenId,omitempty" db:"warden_id" example:"3"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`

	// Relations (populated when needed)
	Warden *User `json:"warden,omitempty"`
	Rooms  []*Room `json:"rooms,omitempty"`
}
