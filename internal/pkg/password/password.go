package password

import "golang.org/x/crypto/bcrypt"

// Hash returns a bcrypt hash of the plaintext password. The salt is
// embedded in the output, so equal inputs produce different but mutually
// verifiable hashes.
func Hash(plain string) (string, error) {
	h, err := bcrypt.GenerateFromPassword([]byte(plain), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(h), nil
}

// Verify reports whether plain matches the stored hash. A malformed hash
// is treated as non-matching, never as an error.
func Verify(plain, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(plain)) == nil
}
