// Package auth verifies bearer tokens issued by the external auth service.
// Token issuance, signup, and login all live upstream; this core only needs
// to know which band a request belongs to.
package auth

import (
	"fmt"
	"strconv"

	"github.com/golang-jwt/jwt/v5"

	"gigcalendar/internal/domain"
)

type bandClaims struct {
	jwt.RegisteredClaims
	BandName string `json:"band_name,omitempty"`
}

type jwtVerifier struct {
	secret []byte
}

// NewJWTVerifier returns a TokenVerifier for HS256 tokens signed with the
// shared secret. The token subject carries the band id.
func NewJWTVerifier(secret string) domain.TokenVerifier {
	return &jwtVerifier{secret: []byte(secret)}
}

func (v *jwtVerifier) Verify(token string) (int64, error) {
	parsed, err := jwt.ParseWithClaims(token, &bandClaims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return v.secret, nil
	})
	if err != nil {
		return 0, fmt.Errorf("failed to parse token: %w", err)
	}
	claims, ok := parsed.Claims.(*bandClaims)
	if !ok || !parsed.Valid {
		return 0, fmt.Errorf("invalid token claims")
	}
	bandID, err := strconv.ParseInt(claims.Subject, 10, 64)
	if err != nil || bandID <= 0 {
		return 0, fmt.Errorf("token subject is not a band id: %q", claims.Subject)
	}
	return bandID, nil
}
