package deps

import "context"

// TokenService issues and verifies bearer tokens
type TokenService interface {
	Issue(userID string) (string, error)
	Verify(token string) (string, error)
}

// AuthService is the use case behind the auth endpoints
type AuthService interface {
	Signup(ctx context.Context, username, password string) (string, error)
	Signin(ctx context.Context, username, password string) (string, error)
}
