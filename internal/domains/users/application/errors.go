package application

import (
	"errors"
	"fmt"

	"github.com/beandock/coffeeshop-api/internal/domains/users/domain"
	"github.com/beandock/coffeeshop-api/internal/domains/users/ports"
)

var (
	// ErrInvalidInput signals the request violated a domain invariant.
	ErrInvalidInput = errors.New("invalid user input")
	// ErrConflict signals a uniqueness violation on email or username.
	ErrConflict = errors.New("user conflict")
	// ErrAuthentication wraps authentication failures.
	ErrAuthentication = errors.New("authentication failed")
)

func mapError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, domain.ErrInvalidEmail) ||
		errors.Is(err, domain.ErrInvalidUsername) ||
		errors.Is(err, domain.ErrWeakPassword) ||
		errors.Is(err, domain.ErrEmptyPassword) {
		return fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}
	if errors.Is(err, ports.ErrEmailTaken) || errors.Is(err, ports.ErrUsernameTaken) {
		return fmt.Errorf("%w: %w", ErrConflict, err)
	}
	if errors.Is(err, ports.ErrInvalidCredentials) || errors.Is(err, ports.ErrInactiveUser) {
		return fmt.Errorf("%w: %w", ErrAuthentication, err)
	}
	return err
}
