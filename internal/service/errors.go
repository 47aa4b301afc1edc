package service

import (
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/Marga-Ghale/ora-boards-backend/internal/repository"
)

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUserExists         = errors.New("user already exists")
	ErrInvalidToken       = errors.New("invalid token")
	ErrNotFound           = errors.New("not found")
	ErrForbidden          = errors.New("forbidden")
	ErrConflict           = errors.New("already exists")
	ErrInvalidInput       = errors.New("invalid input")
)

func invalid(format string, args ...interface{}) error {
	return fmt.Errorf("%w: %s", ErrInvalidInput, fmt.Sprintf(format, args...))
}

func notFound(resource string) error {
	return fmt.Errorf("%s %w", resource, ErrNotFound)
}

func forbidden(reason string) error {
	return fmt.Errorf("%w: %s", ErrForbidden, reason)
}

func conflict(what string) error {
	return fmt.Errorf("%s %w", what, ErrConflict)
}

// storeError maps repository sentinels onto service errors for resource.
// Other errors pass through unchanged.
func storeError(err error, resource string) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, repository.ErrNotFound):
		return notFound(resource)
	case errors.Is(err, repository.ErrDuplicate):
		return conflict(resource)
	default:
		return err
	}
}

// requireText trims value and checks it is non-empty and at most max runes.
func requireText(field, value string, max int) (string, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return "", invalid("%s is required", field)
	}
	if utf8.RuneCountInString(value) > max {
		return "", invalid("%s must be at most %d characters", field, max)
	}
	return value, nil
}

func isNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// positionError reports a (parent, position) unique violation as a conflict.
func positionError(err error, resource string) error {
	if errors.Is(err, repository.ErrDuplicate) {
		return fmt.Errorf("%w: %s position is taken", ErrConflict, resource)
	}
	return storeError(err, resource)
}

// appendError maps a failed append. parent names the row the append hangs off.
func appendError(err error, parent string) error {
	if errors.Is(err, repository.ErrDuplicate) {
		return fmt.Errorf("%w: position was taken concurrently", ErrConflict)
	}
	return storeError(err, parent)
}
