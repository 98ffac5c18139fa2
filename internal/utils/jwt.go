package utils // package utils provides helper functions for token creation and hashing

import (
	"time" // time utilities for generating expirations

	"github.com/golang-jwt/jwt/v5" // JWT library for creating signed tokens

	"github.com/iliyamo/sneaker-store/internal/model"
)

// AccessToken represents a signed JWT bearer token along with its expiry.
// The Token field contains the JWT string.  Exp stores the expiration
// timestamp as a time.Time.  The token is encoded in the Authorization
// header when calling protected endpoints.
type AccessToken struct {
	Token string    // the serialized JWT string
	Exp   time.Time // the UTC expiration time
}

// NewAccessToken builds and signs an HS256 JWT for a user.  It takes the
// signing secret, the user record and a TTL in days.  The JWT includes the
// subject (sub) set to the user ID, the username, email and role claims
// consumed by the authorization middleware, plus the standard expiration
// (exp) and issued at (iat) claims.
func NewAccessToken(secret string, u model.User, ttlDays int) (AccessToken, error) {
	// Calculate the expiration time by adding the TTL to the current UTC time.
	exp := time.Now().UTC().Add(time.Duration(ttlDays) * 24 * time.Hour)
	claims := jwt.MapClaims{
		"sub":      u.ID,
		"username": u.Username,
		"email":    u.Email,
		"role":     string(u.Role),
		"exp":      exp.Unix(),
		"iat":      time.Now().UTC().Unix(),
	}
	// Create a new token object specifying the signing method (HS256) and
	// include the claims, then sign it with the provided secret.
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := t.SignedString([]byte(secret))
	if err != nil {
		return AccessToken{}, err
	}
	return AccessToken{Token: signed, Exp: exp}, nil
}
