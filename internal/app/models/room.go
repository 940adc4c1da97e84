package models

// Room defines a hostel room based on the 'rooms' table.
//
// Status is denormalized: it is recomputed from the count of active allotments
// after every allotment mutation, except that "Under Maintenance" is an explicit
// administrative state which recomputation never clears.
type Room struct {
	ID       int64      `json:"id" db:"id" example:"12"`
	HostelID int64      `json:"hostelId" db:"hostel_id" example:"1"`
	RoomNo   string     `json:"roomNo" db:"room_no" example:"A-102"` // unique within the hostel
	Capacity int        `json:"capacity" db:"capacity" example:"3"`
	Status   RoomStatus `json:"status" db:"status" example:"Vacant"`

	// Occupants is the current count of active allotments, populated by
	// listing queries; it is not a stored column.
	Occupants int `json:"occupants" example:"1"`

	// Relations (populated when needed)
	Hostel *Hostel `json:"hostel,omitempty"`
}

// DeriveRoomStatus returns the status a room should carry given its current
// status and its count of active allotments. Any occupant makes the room
// Occupied. An empty room under maintenance keeps that status until a warden
// clears it; an empty room otherwise is Vacant.
func DeriveRoomStatus(current RoomStatus, occupants int) RoomStatus {
	if occupants >= 1 {
		return RoomStatusOccupied
	}
	if current == RoomStatusUnderMaintenance {
		return RoomStatusUnderMaintenance
	}
	return RoomStatusVacant
}

// AvailableSpots returns the spare capacity of the room.
func (r *Room) AvailableSpots() int {
	spots := r.Capacity - r.Occupants
	if spots < 0 {
		return 0
	}
	return spots
}
