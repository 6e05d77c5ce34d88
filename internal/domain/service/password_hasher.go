package service

// PasswordHasher abstracts password hashing so the use case layer never
// touches bcrypt directly.
type PasswordHasher interface {
	// Hash generates a salted hash from a plaintext password.
	Hash(password string) (string, error)

	// Check compares a plaintext password with a stored hash.
	Check(password, hash string) bool

	// ValidatePasswordStrength rejects passwords below the configured policy.
	ValidatePasswordStrength(password string) error
}
