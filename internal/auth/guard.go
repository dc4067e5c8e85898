// Package auth gates write operations behind a shared admin credential.
package auth

// Guard decides whether a supplied credential may perform writes. It is an
// interface so the plain shared-secret scheme can be swapped for hashed
// tokens or per-action scopes without touching the services.
type Guard interface {
	Check(credential string) bool
}

// Secret is a Guard comparing against a single configured secret.
type Secret struct {
	secret string
}

// NewSecret returns a Guard for the given secret. An empty secret means the
// credential was never configured, so every check fails.
func NewSecret(secret string) Secret {
	return Secret{secret: secret}
}

// Check reports whether the supplied credential matches the configured secret.
func (s Secret) Check(credential string) bool {
	return s.secret != "" && credential == s.secret
}
