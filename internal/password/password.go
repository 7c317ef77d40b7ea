package password

import (
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// hashCost is fixed at 10 rounds; changing it only affects newly created
// hashes because bcrypt embeds the cost and salt in the digest.
const hashCost = 10

// Hash returns a salted bcrypt digest of the plaintext password.
func Hash(password string) (string, error) {
	sum, err := bcrypt.GenerateFromPassword([]byte(password), hashCost)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}
	return string(sum), nil
}

// Verify reports whether the plaintext password matches the digest.
func Verify(password, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}
