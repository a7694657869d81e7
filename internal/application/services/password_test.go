package services

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidatePassword(t *testing.T) {
	tests := []struct {
		name     string
		password string
		wantErr  string
	}{
		{"valid", "Passw0rd", ""},
		{"valid at minimum length", "Aa1bbb", ""},
		{"valid at maximum length", "Aa1" + strings.Repeat("x", 125), ""},
		{"empty", "", "password is required"},
		{"too short", "Aa1bb", "at least 6 characters"},
		{"too long", "Aa1" + strings.Repeat("x", 126), "must not exceed 128 characters"},
		{"no lowercase", "PASSW0RD", "lowercase letter"},
		{"no uppercase", "passw0rd", "uppercase letter"},
		{"no digit", "Password", "one number"},
		{"special chars allowed", "Passw0rd!@#", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidatePassword(tt.password)
			if tt.wantErr == "" {
				assert.NoError(t, err)
			} else {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
			}
		})
	}
}

// Length checks run before composition checks, so a short password reports
// its length even when it also lacks character classes.
func TestValidatePasswordRuleOrder(t *testing.T) {
	err := ValidatePassword("abc")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "at least 6 characters")
}

func TestHashAndComparePassword(t *testing.T) {
	hash, err := HashPassword("Passw0rd")
	require.NoError(t, err)
	assert.NotEqual(t, "Passw0rd", hash)

	assert.True(t, ComparePassword("Passw0rd", hash))
	assert.False(t, ComparePassword("passw0rd", hash))
	assert.False(t, ComparePassword("", hash))
}
