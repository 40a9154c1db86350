package auth

// Provider validates a bearer token. The tracker is single-user, so a valid
// token carries no identity beyond "the owner".
type Provider interface {
	ValidateToken(token string) error
}
