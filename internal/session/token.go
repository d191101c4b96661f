package session

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// tokenExpired inspects a bearer token's expiry without verifying its
// signature (the backend owns verification; the client only uses the
// claim to avoid presenting a token it already knows is dead). The
// second return is false for opaque, non-JWT tokens.
func tokenExpired(raw string) (expired, known bool) {
	claims := jwt.MapClaims{}
	parser := jwt.NewParser()
	if _, _, err := parser.ParseUnverified(raw, claims); err != nil {
		return false, false
	}
	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return false, false
	}
	return time.Now().After(exp.Time), true
}
