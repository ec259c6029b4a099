package dto

// CredentialsRequest is the body of signup and signin
type CredentialsRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// TokenResponse is returned after a successful signup or signin
type TokenResponse struct {
	Message string `json:"message"`
	Token   string `json:"token"`
}
