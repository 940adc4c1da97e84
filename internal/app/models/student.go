package models

import "time"

// Student defines a hostel resident record based on the 'students' table.
// A student record is created by warden tooling and may later be linked to a
// user account for self-service access.
type Student struct {
	ID               int64     `json:"id" db:"id" example:"1"`
	UserID           *int64    `json:"userId,omitempty" db:"user_id" example:"5"`
	Name             string    `json:"name" db:"name" example:"Anjali Menon"`
	RegNo            string    `json:"regNo" db:"reg_no" example:"TVE21CS044"` // unique register number
	YearOfStudy      int       `json:"yearOfStudy" db:"year_of_study" example:"2"`
	Department       *string   `json:"department,omitempty" db:"department" example:"CSE"`
	Category         *string   `json:"category,omitempty" db:"category" example:"General"`
	KeamRank         *int      `json:"keamRank,omitempty" db:"keam_rank" example:"1420"`
	SGPA             *float64  `json:"sgpa,omitempty" db:"sgpa" example:"8.7"`
	DistanceCategory *string   `json:"distanceCategory,omitempty" db:"distance_category" example:">50km"`
	Backlogs         *int      `json:"backlogs,omitempty" db:"backlogs" example:"0"`
	CreatedAt        time.Time `json:"createdAt" db:"created_at"`

	// Relations (populated when needed)
	User *User `json:"user,omitempty"`
}

// StudentCategories lists the admission categories accepted for a student record.
var StudentCategories = []string{"General", "OBC", "SC", "ST", "Other"}
