package models

import "time"

// Notification defines a message delivered to a user, based on the
// 'notifications' table. A nil UserID makes the row a broadcast announcement
// visible to every user whose role matches Audience.
type Notification struct {
	ID        int64     `json:"id" db:"id" example:"21"`
	UserID    *int64    `json:"userId,omitempty" db:"user_id" example:"5"`
	Audience  *RoleType `json:"audience,omitempty" db:"audience" example:"STUDENT"`
	Title     string    `json:"title" db:"title" example:"Room allotted"`
	Message   string    `json:"message" db:"message" example:"You have been allotted room A-102"`
	IsRead    bool      `json:"isRead" db:"is_read"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
}
