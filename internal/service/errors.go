package service

import (
	"errors"
	"fmt"

	"github.com/Skotchmaster/shopcart/internal/repo"
)

var (
	ErrValidation         = errors.New("validation")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrConflict           = errors.New("conflict")
	ErrNotFound           = errors.New("not found")
	ErrStoreUnavailable   = errors.New("store unavailable")
	ErrStore              = errors.New("store operation failed")
)

// ValidationError carries a message meant for the client.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string { return "validation: " + e.Message }

func (e *ValidationError) Unwrap() error { return ErrValidation }

func invalid(msg string) error {
	return &ValidationError{Message: msg}
}

// storeErr folds repo failures into the service taxonomy. Not-found and
// duplicate are handled by callers that expect them.
func storeErr(op string, err error) error {
	if errors.Is(err, repo.ErrUnavailable) {
		return fmt.Errorf("%s: %w: %w", op, ErrStoreUnavailable, err)
	}
	return fmt.Errorf("%s: %w: %w", op, ErrStore, err)
}
