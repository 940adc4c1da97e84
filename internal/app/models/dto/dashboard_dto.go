package dto

// DashboardStatsResponse aggregates the counters shown on the admin dashboard
type DashboardStatsResponse struct {
	Students            int64   `json:"students" example:"248"`
	Hostels             int64   `json:"hostels" example:"4"`
	RoomsTotal          int64   `json:"roomsTotal" example:"120"`
	RoomsVacant         int64   `json:"roomsVacant" example:"18"`
	RoomsOccupied       int64   `json:"roomsOccupied" example:"98"`
	RoomsMaintenance    int64   `json:"roomsMaintenance" example:"4"`
	OccupancyRate       float64 `json:"occupancyRate" example:"0.84"`
	PendingApplications int64   `json:"pendingApplications" example:"31"`
	OpenMaintenance     int64   `json:"openMaintenance" example:"7"`
	FeesDue             float64 `json:"feesDue" example:"42000"`
	FeesCollected       float64 `json:"feesCollected" example:"183500"`
}

// SetSettingRequest upserts a key-value setting
type SetSettingRequest struct {
	Value string `json:"value" binding:"required" example:"true"`
}
