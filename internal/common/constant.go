// Package common contains shared constants, sentinel errors and small helpers
// used by both the smartmeet client and the development server.
package common

// HTTP header and scheme used to carry the access token.
const (
	AuthorizationHeader = "Authorization"
	BearerScheme        = "Bearer"

	// TokenTypeBearer is the token_type value returned by the login endpoint.
	TokenTypeBearer = "bearer"
)

// Keys of the locally persisted session entries.
const (
	MetaKeyAccessToken = "access_token"
	MetaKeyUser        = "user"
)
