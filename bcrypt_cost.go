//go:build !race

package auth

import "golang.org/x/crypto/bcrypt"

func passwordHashCost() int {
	// bcrypt.DefaultCost is 10 rounds, matching stored hashes.
	return bcrypt.DefaultCost
}
