package constants

// Header and token constants shared by middleware and handlers.
const (
	HeaderAuthorization = "Authorization"
	BearerPrefix        = "Bearer"
)

// Gin context keys set by the auth middleware.
const (
	GinKeyUserID    = "user_id"
	GinKeyUserEmail = "email"
	GinKeyUserRole  = "role"
)

// Pagination defaults for list endpoints.
const (
	DefaultPage  = 1
	DefaultLimit = 10
	MaxLimit     = 100
)
