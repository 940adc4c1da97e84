package dto

// CreateMaintenanceRequest is the payload for filing a maintenance ticket
type CreateMaintenanceRequest struct {
	RoomID      int64  `json:"roomId" binding:"required" example:"12"`
	Description string `json:"description" binding:"required" example:"Ceiling fan not working"`
}

// UpdateMaintenanceStatusRequest moves a ticket through its lifecycle; Cost
// records the expense when resolving.
type UpdateMaintenanceStatusRequest struct {
	Status string   `json:"status" binding:"required,oneof=pending in_progress resolved" example:"in_progress"`
	Cost   *float64 `json:"cost,omitempty" example:"450"`
}
