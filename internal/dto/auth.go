package dto

// LoginRequest authenticates an agent with email and password.
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// LoginResponse represents the response for a successful login.
type LoginResponse struct {
	Token string `json:"token"`
}

// ClientTokenResponse carries the processor token the hosted-fields
// front-end initializes with.
type ClientTokenResponse struct {
	ClientToken string `json:"clientToken"`
}
