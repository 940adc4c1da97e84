package models

import "time"

// User defines an account that can sign in, based on the 'users' table
type User struct {
	ID        int64     `json:"id" db:"id" example:"1"`
	Email     string    `json:"email" db:"email" example:"student@college.edu"`
	Password  string    `json:"-" db:"password"` // bcrypt hash, never serialized
	FullName  string    `json:"fullName" db:"full_name" example:"Anjali Menon"`
	RoleType  RoleType  `json:"roleType" db:"role_type" example:"STUDENT"`
	IsActive  bool      `json:"isActive" db:"is_active"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
}
