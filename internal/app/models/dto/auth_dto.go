package dto

// RegisterRequest is the payload for student self-registration
type RegisterRequest struct {
	Email    string `json:"email" binding:"required,email" example:"student@college.edu"`
	Password string `json:"password" binding:"required,min=8" example:"s3cretpass"`
	FullName string `json:"fullName" binding:"required" example:"Anjali Menon"`
}

// LoginRequest is the payload for signing in
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email" example:"student@college.edu"`
	Password string `json:"password" binding:"required" example:"s3cretpass"`
}

// RefreshTokenRequest exchanges a refresh token for a new token pair
type RefreshTokenRequest struct {
	RefreshToken string `json:"refreshToken" binding:"required"`
}

// TokenResponse carries an issued token pair
type TokenResponse struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
	ExpiresIn    int    `json:"expiresIn" example:"3600"`
	TokenType    string `json:"tokenType" example:"Bearer"`
}

// ProfileResponse describes the authenticated user
type ProfileResponse struct {
	ID       int64  `json:"id" example:"5"`
	Email    string `json:"email" example:"student@college.edu"`
	FullName string `json:"fullName" example:"Anjali Menon"`
	RoleType string `json:"roleType" example:"STUDENT"`
}
