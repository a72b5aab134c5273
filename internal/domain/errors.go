package domain

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// Base kinds. Handlers map errors to HTTP status by checking these with
// errors.Is, so every specific error below wraps exactly one of them.
var (
	ErrNotFound     = errors.New("not found")
	ErrConflict     = errors.New("conflict")
	ErrForbidden    = errors.New("forbidden")
	ErrUnauthorized = errors.New("unauthorized")
	ErrInvalidInput = errors.New("invalid input")
)

var (
	ErrAccountNotFound    = fmt.Errorf("account %w", ErrNotFound)
	ErrProfileNotFound    = fmt.Errorf("profile %w", ErrNotFound)
	ErrProjectNotFound    = fmt.Errorf("project %w", ErrNotFound)
	ErrTaskNotFound       = fmt.Errorf("task %w", ErrNotFound)
	ErrInvitationNotFound = fmt.Errorf("invitation %w", ErrNotFound)
	ErrUnknownInvitee     = fmt.Errorf("no account registered for this email: %w", ErrNotFound)

	ErrAlreadyMember       = fmt.Errorf("user is already a member of this project: %w", ErrConflict)
	ErrDuplicateInvitation = fmt.Errorf("a pending invitation already exists for this user: %w", ErrConflict)
	ErrDuplicateMembership = fmt.Errorf("membership already exists: %w", ErrConflict)
	ErrEmailTaken          = fmt.Errorf("email is already registered: %w", ErrConflict)

	ErrNotEligible = fmt.Errorf("you do not have permission to perform this action: %w", ErrForbidden)

	ErrInvalidCredentials = fmt.Errorf("invalid email or password: %w", ErrUnauthorized)
	ErrAccountNotVerified = fmt.Errorf("account is not verified: %w", ErrUnauthorized)

	ErrNotAMember       = fmt.Errorf("assignee is not a member of this project: %w", ErrInvalidInput)
	ErrInvalidDueDate   = fmt.Errorf("due date cannot be earlier than creation time: %w", ErrInvalidInput)
	ErrAlreadyVerified  = fmt.Errorf("account is already verified: %w", ErrInvalidInput)
	ErrInvalidCode      = fmt.Errorf("invalid verification code: %w", ErrInvalidInput)
	ErrCodeExpired      = fmt.Errorf("verification code has expired: %w", ErrInvalidInput)
	ErrWrongPassword    = fmt.Errorf("old password is incorrect: %w", ErrInvalidInput)
	ErrInvalidResetLink = fmt.Errorf("reset link is invalid or has expired: %w", ErrInvalidInput)
	ErrInvalidImage     = fmt.Errorf("unsupported or oversized image: %w", ErrInvalidInput)
)

// Token errors carry no information about the entity the token refers to.
var (
	ErrExpiredToken = errors.New("token has expired")
	ErrInvalidToken = errors.New("token is invalid")
)

// ErrDeliveryFailed is returned after a notification could not be handed off
// and the partially created record was removed again.
var ErrDeliveryFailed = errors.New("could not deliver notification, please try again")

// ValidationError carries field level messages for a 400 response.
type ValidationError struct {
	Fields map[string][]string
}

func NewValidationError() *ValidationError {
	return &ValidationError{Fields: map[string][]string{}}
}

func (e *ValidationError) Add(field, msg string) {
	e.Fields[field] = append(e.Fields[field], msg)
}

func (e *ValidationError) HasErrors() bool {
	return len(e.Fields) > 0
}

// OrNil returns e when it holds messages and a nil error otherwise.
func (e *ValidationError) OrNil() error {
	if e.HasErrors() {
		return e
	}
	return nil
}

func (e *ValidationError) Error() string {
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+": "+strings.Join(e.Fields[k], "; "))
	}
	return "validation failed: " + strings.Join(parts, ", ")
}

func (e *ValidationError) Unwrap() error {
	return ErrInvalidInput
}
