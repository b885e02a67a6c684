package choco

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

type TokenInfo struct {
	Subject   string
	ExpiresAt time.Time
	Scopes    []string
}

// InspectToken reads the bearer token's claims without verifying the
// signature; the key belongs to the upstream. An expired token yields
// ErrTokenExpired together with the decoded info.
func InspectToken(token string, now time.Time) (TokenInfo, error) {
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return TokenInfo{}, fmt.Errorf("parse bearer token: %w", err)
	}

	var info TokenInfo
	info.Subject, _ = claims.GetSubject()
	if exp, err := claims.GetExpirationTime(); err == nil && exp != nil {
		info.ExpiresAt = exp.Time
	}
	if raw, ok := claims["scopes"].([]any); ok {
		for _, scope := range raw {
			if s, ok := scope.(string); ok {
				info.Scopes = append(info.Scopes, s)
			}
		}
	}

	if !info.ExpiresAt.IsZero() && !info.ExpiresAt.After(now) {
		return info, fmt.Errorf("%w at %s", ErrTokenExpired, info.ExpiresAt.Format(time.RFC3339))
	}
	return info, nil
}
