package models

import "time"

// Fee defines a charge raised against a student, based on the 'fees' table.
// Payments are recorded, not processed: marking a fee paid stores the method
// and an optional external reference.
type Fee struct {
	ID            int64      `json:"id" db:"id" example:"15"`
	StudentID     int64      `json:"studentId" db:"student_id" example:"1"`
	FeeType       string     `json:"feeType" db:"fee_type" example:"mess"`
	Amount        float64    `json:"amount" db:"amount" example:"3500"`
	DueDate       time.Time  `json:"dueDate" db:"due_date"`
	Status        FeeStatus  `json:"status" db:"status" example:"unpaid"`
	PaidAt        *time.Time `json:"paidAt,omitempty" db:"paid_at"`
	PaymentMethod *string    `json:"paymentMethod,omitempty" db:"payment_method" example:"upi"`
	PaymentRef    *string    `json:"paymentRef,omitempty" db:"payment_ref"`
	CreatedAt     time.Time  `json:"createdAt" db:"created_at"`

	// Relations (populated when needed)
	Student *Student `json:"student,omitempty"`
}
