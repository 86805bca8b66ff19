package common

const (
	// AuthorizationHeaderName is the HTTP header carrying the access token.
	AuthorizationHeaderName = "Authorization"

	// BearerPrefix is the scheme label prepended to issued tokens.
	BearerPrefix = "Bearer "
)
