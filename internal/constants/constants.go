package constants

// Context keys
const (
	ContextKeyUserID = "user_id"
	ContextKeyClaims = "token_claims"
)

// Pagination
const (
	DefaultPage     = 0
	DefaultPageSize = 5
	MinPageSize     = 1
	MaxPageSize     = 100
)

// Routing
const (
	APIBasePath       = "/api/v1"
	BearerScheme      = "Bearer"
	AuthHeader        = "Authorization"
	ProtectedPassword = "[PROTECTED]"
)

// Revocation keys in the token store
const RevokedTokenKeyPrefix = "revoked_token:"
