// Package validation provides input validation helpers for API request payloads.
package validation

import (
	"fmt"
	"net/mail"
	"strings"
	"time"
)

// MinPasswordLength is the minimum accepted password length on registration.
const MinPasswordLength = 6

// ValidateEmail checks that the address parses as a bare RFC 5322 address.
func ValidateEmail(email string) error {
	addr, err := mail.ParseAddress(email)
	if err != nil || addr.Address != email {
		return fmt.Errorf("please include a valid email")
	}
	return nil
}

// ValidatePassword enforces the registration password policy.
func ValidatePassword(password string) error {
	if len(password) < MinPasswordLength {
		return fmt.Errorf("please enter a password with %d or more characters", MinPasswordLength)
	}
	return nil
}

// ParseSkills splits a comma-separated skill list into trimmed entries,
// preserving order and dropping empty segments.
func ParseSkills(skills string) []string {
	parts := strings.Split(skills, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if s := strings.TrimSpace(p); s != "" {
			out = append(out, s)
		}
	}
	return out
}

var dateLayouts = []string{
	"2006-01-02",
	time.RFC3339,
}

// ParseDate parses a date field accepted as either a plain date or RFC 3339.
func ParseDate(value string) (time.Time, error) {
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("invalid date %q", value)
}

// ParseOptionalDate parses a date that may be absent; empty input yields nil.
func ParseOptionalDate(value string) (*time.Time, error) {
	if value == "" {
		return nil, nil
	}
	t, err := ParseDate(value)
	if err != nil {
		return nil, err
	}
	return &t, nil
}
