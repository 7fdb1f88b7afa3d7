package application

import (
	"errors"
	"fmt"

	"github.com/beandock/coffeeshop-api/internal/domains/orders/domain"
	"github.com/beandock/coffeeshop-api/internal/domains/orders/ports"
)

var (
	// ErrInvalidInput signals the request violated a domain invariant.
	ErrInvalidInput = errors.New("invalid order input")
	// ErrRejected signals the catalog refused the order (missing product,
	// unavailable product, or insufficient stock).
	ErrRejected = errors.New("order cannot be created")
)

func mapError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, domain.ErrInvalidProductID) ||
		errors.Is(err, domain.ErrInvalidQuantity) ||
		errors.Is(err, domain.ErrInvalidStatus) ||
		errors.Is(err, domain.ErrEmptyAddress) ||
		errors.Is(err, domain.ErrEmptyPhone) ||
		errors.Is(err, domain.ErrNoItems) {
		return fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}
	if errors.Is(err, ports.ErrProductNotFound) ||
		errors.Is(err, ports.ErrProductUnavailable) ||
		errors.Is(err, ports.ErrInsufficientStock) {
		return fmt.Errorf("%w: %w", ErrRejected, err)
	}
	return err
}
