package domain

import (
	"errors"
	"fmt"
)

// Error kinds surfaced to the user. Every kind is recoverable: the action is
// refused and a single message is shown.

// ValidationError reports malformed or missing input.
type ValidationError struct {
	Msg string
}

func (e *ValidationError) Error() string { return e.Msg }

// AuthorizationError reports a failed role check.
type AuthorizationError struct {
	Msg string
}

func (e *AuthorizationError) Error() string { return e.Msg }

// NotFoundError reports a referenced entity that does not exist.
type NotFoundError struct {
	Entity string
	ID     string
}

func (e *NotFoundError) Error() string { return fmt.Sprintf("%s %q not found", e.Entity, e.ID) }

// InsufficientFundsError reports a transfer the balance cannot cover.
type InsufficientFundsError struct {
	Balance int64
	Amount  int64
}

func (e *InsufficientFundsError) Error() string {
	if e.Amount <= 0 {
		return fmt.Sprintf("invalid amount %d", e.Amount)
	}
	return fmt.Sprintf("insufficient funds: balance %d, requested %d", e.Balance, e.Amount)
}

// ServiceError wraps a failure of an external collaborator.
type ServiceError struct {
	Service string
	err     error
}

func (e *ServiceError) Error() string { return e.Service + ": " + e.err.Error() }

func (e *ServiceError) Unwrap() error { return e.err }

// DecodeError reports an image that could not be loaded.
type DecodeError struct {
	Path string
	err  error
}

func (e *DecodeError) Error() string { return fmt.Sprintf("decode %s: %v", e.Path, e.err) }

func (e *DecodeError) Unwrap() error { return e.err }

// Validationf builds a ValidationError.
func Validationf(format string, args ...any) error {
	return &ValidationError{Msg: fmt.Sprintf(format, args...)}
}

// Unauthorizedf builds an AuthorizationError.
func Unauthorizedf(format string, args ...any) error {
	return &AuthorizationError{Msg: fmt.Sprintf(format, args...)}
}

// NotFound builds a NotFoundError.
func NotFound(entity, id string) error {
	return &NotFoundError{Entity: entity, ID: id}
}

// InsufficientFunds builds an InsufficientFundsError.
func InsufficientFunds(balance, amount int64) error {
	return &InsufficientFundsError{Balance: balance, Amount: amount}
}

// NewServiceError wraps err as a collaborator failure.
func NewServiceError(service string, err error) error {
	return &ServiceError{Service: service, err: err}
}

// NewDecodeError wraps err as an image decoding failure.
func NewDecodeError(path string, err error) error {
	return &DecodeError{Path: path, err: err}
}

// IsValidation reports whether err is a ValidationError.
func IsValidation(err error) bool {
	var target *ValidationError
	return errors.As(err, &target)
}

// IsAuthorization reports whether err is an AuthorizationError.
func IsAuthorization(err error) bool {
	var target *AuthorizationError
	return errors.As(err, &target)
}

// IsNotFound reports whether err is a NotFoundError.
func IsNotFound(err error) bool {
	var target *NotFoundError
	return errors.As(err, &target)
}

// IsInsufficientFunds reports whether err is an InsufficientFundsError.
func IsInsufficientFunds(err error) bool {
	var target *InsufficientFundsError
	return errors.As(err, &target)
}

// IsService reports whether err is a ServiceError.
func IsService(err error) bool {
	var target *ServiceError
	return errors.As(err, &target)
}

// IsDecode reports whether err is a DecodeError.
func IsDecode(err error) bool {
	var target *DecodeError
	return errors.As(err, &target)
}

// KindOf returns a stable label for err, used in metrics and logs.
func KindOf(err error) string {
	switch {
	case err == nil:
		return "ok"
	case IsValidation(err):
		return "validation"
	case IsAuthorization(err):
		return "authorization"
	case IsNotFound(err):
		return "not_found"
	case IsInsufficientFunds(err):
		return "insufficient_funds"
	case IsService(err):
		return "service"
	case IsDecode(err):
		return "decode"
	}
	return "internal"
}
