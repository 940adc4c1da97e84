package dto

// CreateStudentRequest is the payload for warden-created student records
type CreateStudentRequest struct {
	UserID           *int64   `json:"userId,omitempty" example:"5"`
	Name             string   `json:"name" binding:"required" example:"Anjali Menon"`
	RegNo            string   `json:"regNo" binding:"required" example:"TVE21CS044"`
	YearOfStudy      int      `json:"yearOfStudy" binding:"required,min=1,max=5" example:"2"`
	Department       *string  `json:"department,omitempty" example:"CSE"`
	Category         *string  `json:"category,omitempty" example:"General"`
	KeamRank         *int     `json:"keamRank,omitempty" example:"1420"`
	SGPA             *float64 `json:"sgpa,omitempty" example:"8.7"`
	DistanceCategory *string  `json:"distanceCategory,omitempty" example:">50km"`
	Backlogs         *int     `json:"backlogs,omitempty" example:"0"`
}

// UpdateStudentRequest is the payload for updating a student record
type UpdateStudentRequest struct {
	Name             *string  `json:"name,omitempty"`
	YearOfStudy      *int     `json:"yearOfStudy,omitempty" binding:"omitempty,min=1,max=5"`
	Department       *string  `json:"department,omitempty"`
	Category         *string  `json:"category,omitempty"`
	KeamRank         *int     `json:"keamRank,omitempty"`
	SGPA             *float64 `json:"sgpa,omitempty"`
	DistanceCategory *string  `json:"distanceCategory,omitempty"`
	Backlogs         *int     `json:"backlogs,omitempty"`
}

// LinkUserRequest attaches a user account to a student record
type LinkUserRequest struct {
	UserID int64 `json:"userId" binding:"required" example:"5"`
}
