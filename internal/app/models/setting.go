package models

import "time"

// Setting defines a key-value administrative setting, based on the 'settings' table
type Setting struct {
	Key       string    `json:"key" db:"key" example:"allotment_open"`
	Value     string    `json:"value" db:"value" example:"true"`
	UpdatedAt time.Time `json:"updatedAt" db:"updated_at"`
}
