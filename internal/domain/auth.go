package domain

// TokenVerifier validates a bearer token issued by the external auth service
// and returns the band id it was issued to. Token issuance (login, signup)
// lives entirely upstream.
type TokenVerifier interface {
	Verify(token string) (bandID int64, err error)
}
