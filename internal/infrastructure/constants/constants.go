package constants

// Context keys for storing values in fasthttp.RequestCtx
const (
	UserIDContextKey = "user_id"
)
