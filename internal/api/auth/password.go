package auth

import (
	"sync"
	"unicode/utf8"

	"golang.org/x/crypto/bcrypt"
)

const (
	minPasswordLength = 8
	// bcrypt ignores input past 72 bytes.
	maxPasswordBytes = 72
)

// HashPassword wraps bcrypt.GenerateFromPassword for local auth storage.
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

var compareHash = bcrypt.CompareHashAndPassword

var (
	unknownUserHash     []byte
	unknownUserHashOnce sync.Once
)

// VerifyPassword wraps bcrypt.CompareHashAndPassword for local auth checks.
func VerifyPassword(hash, password string) bool {
	return compareHash([]byte(hash), []byte(password)) == nil
}

// rejectUnknownUser runs one bcrypt comparison against a fixed hash and
// always reports failure.
func rejectUnknownUser(password string) bool {
	unknownUserHashOnce.Do(func() {
		unknownUserHash, _ = bcrypt.GenerateFromPassword([]byte("unknown-user"), bcrypt.DefaultCost)
	})
	_ = compareHash(unknownUserHash, []byte(password))
	return false
}

// validatePassword returns a user-facing reason, or "" when acceptable.
func validatePassword(password string) string {
	switch {
	case utf8.RuneCountInString(password) < minPasswordLength:
		return "password must be at least 8 characters"
	case len(password) > maxPasswordBytes:
		return "password must be at most 72 bytes"
	default:
		return ""
	}
}
