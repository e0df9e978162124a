package handler

import "golang.org/x/crypto/bcrypt"

func init() {
	// keep fixture hashing fast in tests
	passwordCost = bcrypt.MinCost
}
