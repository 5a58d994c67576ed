package helpers

import "strings"

func StringTrim(s string) string {
	return strings.TrimSpace(s)
}

// IsPasswordStrong enforces the minimum bar for new accounts: length plus at
// least one letter and one digit.
func IsPasswordStrong(password string) bool {
	if len(password) < 8 {
		return false
	}
	var hasLetter, hasDigit bool
	for _, r := range password {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z':
			hasLetter = true
		case r >= '0' && r <= '9':
			hasDigit = true
		}
	}
	return hasLetter && hasDigit
}
