package domain

// LoginRequest holds admin credentials for POST /login.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// LoginResponse is the token grant returned by a successful login.
// ExpiresIn is in seconds; zero means the backend did not say.
type LoginResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type,omitempty"`
	ExpiresIn   int64  `json:"expires_in,omitempty"`
	Email       string `json:"email"`
	Message     string `json:"message,omitempty"`
}
