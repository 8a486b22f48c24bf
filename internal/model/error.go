package model

import (
	"errors"
	"strings"
)

var (
	ErrValidation   = errors.New("validation error")           // 400
	ErrPartNotFound = errors.New("part not found")             // 404
	ErrDuplicateKey = errors.New("part number already exists") // 409
	ErrPersistence  = errors.New("persistence failure")        // 503
)

// Message renders err on a single line. Joined errors are separated by ": ".
func Message(err error) string {
	if err == nil {
		return ""
	}
	return strings.ReplaceAll(err.Error(), "\n", ": ")
}

// ReportMessage renders err for callers outside the service, without the
// operation chain it was wrapped in.
func ReportMessage(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrValidation):
		return Message(validationCause(err))
	case errors.Is(err, ErrDuplicateKey):
		return ErrDuplicateKey.Error()
	case errors.Is(err, ErrPartNotFound):
		return ErrPartNotFound.Error()
	case errors.Is(err, ErrPersistence):
		return ErrPersistence.Error()
	default:
		return "internal error"
	}
}

// validationCause walks down to the errors.Join that carries ErrValidation.
func validationCause(err error) error {
	for e := err; e != nil; e = errors.Unwrap(e) {
		joined, ok := e.(interface{ Unwrap() []error })
		if !ok {
			continue
		}

		parts := joined.Unwrap()
		for i, p := range parts {
			if p == ErrValidation {
				return errors.Join(append([]error{ErrValidation}, append(parts[:i:i], parts[i+1:]...)...)...)
			}
		}
		for _, p := range parts {
			if errors.Is(p, ErrValidation) {
				return validationCause(p)
			}
		}
		return e
	}
	return ErrValidation
}
