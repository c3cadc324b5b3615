package services

import (
	"errors"
	"fmt"
	"strings"

	"github.com/ruangkopi/cafe/pkg/validate"
	"gorm.io/gorm"
)

// Error kinds. Controllers map each kind to an HTTP status; match with
// errors.Is.
var (
	ErrUnauthenticated = errors.New("unauthenticated")
	ErrForbidden       = errors.New("forbidden")
	ErrInvalidInput    = errors.New("invalid input")
	ErrNotFound        = errors.New("not found")
	ErrConflict        = errors.New("conflict")
	ErrInvalidState    = errors.New("invalid state")
)

// Error is a domain failure with a caller-facing message.
type Error struct {
	Kind    error
	Message string
}

func (e *Error) Error() string { return e.Message }

func (e *Error) Unwrap() error { return e.Kind }

func newError(kind error, format string, args ...any) error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

func unauthenticated() error {
	return newError(ErrUnauthenticated, "Authentication required")
}

func forbidden(format string, args ...any) error {
	return newError(ErrForbidden, format, args...)
}

func invalidInput(format string, args ...any) error {
	return newError(ErrInvalidInput, format, args...)
}

func notFound(format string, args ...any) error {
	return newError(ErrNotFound, format, args...)
}

func conflict(format string, args ...any) error {
	return newError(ErrConflict, format, args...)
}

func invalidState(format string, args ...any) error {
	return newError(ErrInvalidState, format, args...)
}

// lookup translates a missing-row error into ErrNotFound with message and
// passes any other error through.
func lookup(err error, format string, args ...any) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return notFound(format, args...)
	}
	return err
}

// isDuplicate reports a unique-constraint violation. Drivers that do not
// translate errors to gorm.ErrDuplicatedKey are matched by message.
func isDuplicate(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "unique") || strings.Contains(msg, "duplicate")
}

// checkInput runs struct-tag validation and reports the first failure.
func checkInput(v any) error {
	if errs := validate.Struct(v); validate.HasErrors(errs) {
		return invalidInput("%s", validate.First(errs))
	}
	return nil
}
