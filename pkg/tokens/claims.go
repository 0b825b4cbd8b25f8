package tokens

import "github.com/golang-jwt/jwt/v5"

// SessionClaims is the payload of a bearer token. Subject holds the user id.
type SessionClaims struct {
	Email string `json:"email"`
	Role  string `json:"role"`
	jwt.RegisteredClaims
}
