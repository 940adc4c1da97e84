package dto

// CreateAllotmentRequest is the payload for a warden manually allotting a room
type CreateAllotmentRequest struct {
	StudentID int64 `json:"studentId" binding:"required" example:"1"`
	RoomID    int64 `json:"roomId" binding:"required" example:"12"`
}
