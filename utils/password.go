package utils

import "golang.org/x/crypto/bcrypt"

// HashPassword hashes a password for DASHBOARD_USERS.
func HashPassword(password string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	return string(bytes), err
}

// CheckPasswordHash compares password with hash
func CheckPasswordHash(password, hash string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
	return err == nil
}

// IsBcryptHash reports whether s parses as a bcrypt hash.
func IsBcryptHash(s string) bool {
	_, err := bcrypt.Cost([]byte(s))
	return err == nil
}

// LooksLikeMangledHash catches a bcrypt hash whose "$2a$10$" prefix was eaten
// by variable expansion: no "$", bcrypt alphabet only, near hash length.
func LooksLikeMangledHash(s string) bool {
	if len(s) < 30 || len(s) > 60 {
		return false
	}
	for _, r := range s {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '.', r == '/':
		default:
			return false
		}
	}
	return true
}
