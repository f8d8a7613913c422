package model

// TokenManager issues and verifies signed capability tokens.
type TokenManager interface {
	// Issue encodes and signs a claim set for the given subject. The role is
	// fixed at issuance; privilege changes take effect only on re-issuance.
	Issue(memberID int64, role Role) (string, error)
	// Verify checks signature and expiry and returns the embedded identity.
	// Every failure is reported as ErrInvalidToken.
	Verify(token string) (Identity, error)
}

// PasswordHasher performs one-way transformation and verification of secrets.
type PasswordHasher interface {
	// Hash produces a salted hash; two calls on the same plaintext yield
	// different strings.
	Hash(plaintext string) (string, error)
	// Verify reports whether plaintext matches hash. A mismatch is
	// (false, nil); a hash that fails to parse is ErrDataIntegrity.
	Verify(plaintext, hash string) (bool, error)
}
