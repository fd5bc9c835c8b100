package auth

import (
	"golang.org/x/crypto/bcrypt"

	"github.com/goliatone/go-errors"
)

// HashPassword will generate a salted bcrypt hash for the given password.
// Two calls with the same input produce different strings; both verify.
func HashPassword(password string) (string, error) {
	if password == "" {
		return "", ErrNoEmptyString
	}

	h, err := bcrypt.GenerateFromPassword([]byte(password), passwordHashCost())
	if err != nil {
		// a primitive-level failure is not a credential failure
		return "", errors.Wrap(err, errors.CategoryInternal, "failed to hash password")
	}

	return string(h), nil
}

// ComparePasswordAndHash will validate the given cleartext password against
// the hashed password. A malformed stored hash fails verification the same
// way a wrong password does; it never panics or leaks the reason.
func ComparePasswordAndHash(password, hash string) error {
	if err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)); err != nil {
		return ErrMismatchedHashAndPassword
	}
	return nil
}
