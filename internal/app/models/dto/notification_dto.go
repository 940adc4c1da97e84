package dto

// CreateAnnouncementRequest is the payload for a warden broadcast
type CreateAnnouncementRequest struct {
	Title    string  `json:"title" binding:"required" example:"Water supply interruption"`
	Message  string  `json:"message" binding:"required" example:"No water in MH-A on Saturday morning"`
	Audience *string `json:"audience,omitempty" binding:"omitempty,oneof=STUDENT WARDEN SUPER_ADMIN" example:"STUDENT"`
}
