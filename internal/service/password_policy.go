package service

import (
	"unicode"

	"github.com/gemledger/internal/config"
)

func passwordPolicyError(key string, args ...interface{}) error {
	return localizedError{target: ErrWeakPassword, key: key, args: args}
}

func validatePassword(policy config.PasswordPolicyConfig, password string) error {
	if policy.MinLength > 0 && len([]rune(password)) < policy.MinLength {
		return passwordPolicyError("error.password_min_length", policy.MinLength)
	}

	var hasUpper, hasLower, hasNumber bool
	for _, r := range password {
		switch {
		case unicode.IsUpper(r):
			hasUpper = true
		case unicode.IsLower(r):
			hasLower = true
		case unicode.IsDigit(r):
			hasNumber = true
		}
	}

	if policy.RequireUpper && !hasUpper {
		return passwordPolicyError("error.password_require_upper")
	}
	if policy.RequireLower && !hasLower {
		return passwordPolicyError("error.password_require_lower")
	}
	if policy.RequireNumber && !hasNumber {
		return passwordPolicyError("error.password_require_number")
	}
	return nil
}
