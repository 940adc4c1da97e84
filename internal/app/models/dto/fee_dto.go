package dto

// CreateFeeRequest raises a fee against a single student
type CreateFeeRequest struct {
	StudentID int64   `json:"studentId" binding:"required" example:"1"`
	FeeType   string  `json:"feeType" binding:"required" example:"mess"`
	Amount    float64 `json:"amount" binding:"required,gt=0" example:"3500"`
	DueDate   string  `json:"dueDate" binding:"required" example:"2026-09-30"`
}

// CreateHostelFeesRequest raises the same charge against every current
// occupant of a hostel
type CreateHostelFeesRequest struct {
	FeeType string  `json:"feeType" binding:"required" example:"mess"`
	Amount  float64 `json:"amount" binding:"required,gt=0" example:"3500"`
	DueDate string  `json:"dueDate" binding:"required" example:"2026-09-30"`
}

// RecordPaymentRequest marks a fee as paid. Payments are recorded, not
// processed; the reference is whatever the office received.
type RecordPaymentRequest struct {
	PaymentMethod string  `json:"paymentMethod" binding:"required" example:"upi"`
	PaymentRef    *string `json:"paymentRef,omitempty" example:"UPI-8831245"`
}

// FeeSummaryResponse aggregates fee totals for dashboards
type FeeSummaryResponse struct {
	TotalDue       float64 `json:"totalDue" example:"42000"`
	TotalCollected float64 `json:"totalCollected" example:"183500"`
	UnpaidCount    int64   `json:"unpaidCount" example:"12"`
}
