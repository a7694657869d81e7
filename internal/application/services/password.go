package services

import (
	"unicode"

	"golang.org/x/crypto/bcrypt"

	"github.com/taskflow/core/internal/domain/entities"
)

const (
	// BcryptCost matches the work factor used for every stored hash.
	BcryptCost = 12

	minPasswordLength = 6
	maxPasswordLength = 128
)

// ValidatePassword applies the password policy, first failure wins: the
// password must be non-empty, between 6 and 128 characters, and contain at
// least one lowercase letter, one uppercase letter, and one digit.
func ValidatePassword(password string) error {
	if password == "" {
		return entities.NewValidationError("password is required")
	}
	if len(password) < minPasswordLength {
		return entities.NewValidationError("password must be at least %d characters long", minPasswordLength)
	}
	if len(password) > maxPasswordLength {
		return entities.NewValidationError("password must not exceed %d characters", maxPasswordLength)
	}

	var hasLower, hasUpper, hasDigit bool
	for _, r := range password {
		switch {
		case unicode.IsLower(r):
			hasLower = true
		case unicode.IsUpper(r):
			hasUpper = true
		case unicode.IsDigit(r):
			hasDigit = true
		}
	}

	if !hasLower {
		return entities.NewValidationError("password must contain at least one lowercase letter")
	}
	if !hasUpper {
		return entities.NewValidationError("password must contain at least one uppercase letter")
	}
	if !hasDigit {
		return entities.NewValidationError("password must contain at least one number")
	}

	return nil
}

// HashPassword hashes a password with bcrypt at the fixed cost.
func HashPassword(password string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), BcryptCost)
	if err != nil {
		return "", err
	}
	return string(bytes), nil
}

// ComparePassword reports whether the candidate matches the stored hash.
func ComparePassword(password, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}
