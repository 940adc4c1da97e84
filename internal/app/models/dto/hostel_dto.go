package dto

// CreateHostelRequest is the payload for creating a hostel
type CreateHostelRequest struct {
	Name     string `json:"name" binding:"required" example:"MH-A"`
	Type     string `json:"type" binding:"required,oneof=Mens Womens" example:"Mens"`
	WardenID *int64 `json:"wardenId,omitempty" example:"3"`
}

// UpdateHostelRequest is the payload for updating a hostel
type UpdateHostelRequest struct {
	Name     *string `json:"name,omitempty"`
	Type     *string `json:"type,omitempty" binding:"omitempty,oneof=Mens Womens"`
	WardenID *int64  `json:"wardenId,omitempty"`
}

// CreateRoomRequest is the payload for adding a room to a hostel
type CreateRoomRequest struct {
	RoomNo   string `json:"roomNo" binding:"required" example:"A-102"`
	Capacity int    `json:"capacity" binding:"required,min=1" example:"3"`
}

// UpdateRoomRequest is the payload for updating a room
type UpdateRoomRequest struct {
	RoomNo   *string `json:"roomNo,omitempty"`
	Capacity *int    `json:"capacity,omitempty" binding:"omitempty,min=1"`
}

// UpdateRoomStatusRequest toggles the maintenance flag on a room
type UpdateRoomStatusRequest struct {
	Status string `json:"status" binding:"required,oneof=Vacant Occupied 'Under Maintenance'" example:"Under Maintenance"`
}
