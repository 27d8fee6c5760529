package dto

// LoginRequest represents login credentials. Identifier accepts either the
// email address or the username.
type LoginRequest struct {
	Identifier string `json:"identifier" binding:"required" example:"goodadmin"`
	Password   string `json:"password" binding:"required"`
}

// RegisterRequest represents a user registration request
type RegisterRequest struct {
	Email    string  `json:"email" binding:"required,email"`
	Username string  `json:"username" binding:"required,min=3,max=30"`
	Password string  `json:"password" binding:"required,min=8"`
	FullName *string `json:"fullName,omitempty"`
	NickName *string `json:"nickName,omitempty"`
}

// TokenResponse represents JWT token information
type TokenResponse struct {
	AccessToken string `json:"accessToken"`
	TokenType   string `json:"tokenType" example:"Bearer"`
	ExpiresIn   int    `json:"expiresIn"`
}

// AuthResponse represents a successful authentication response
type AuthResponse struct {
	Token TokenResponse `json:"token"`
	User  UserResponse  `json:"user"`
}
