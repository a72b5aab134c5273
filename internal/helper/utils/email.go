package utils

import (
	"errors"
	"strings"
)

func ExtractEmailDomain(email string) (string, error) {
	parts := strings.Split(email, "@")
	if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
		return "", errors.New("invalid email format")
	}
	return parts[1], nil
}

// MaskEmail keeps the first character of the local part, for log fields.
func MaskEmail(email string) string {
	domain, err := ExtractEmailDomain(email)
	if err != nil {
		return "***"
	}
	return email[:1] + "***@" + domain
}
