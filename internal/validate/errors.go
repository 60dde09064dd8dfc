// errors.go defines sentinel errors for validation failures.
//
// Sentinel errors (not error types) because a validation failure carries no
// context beyond its category; detailed messages come from wrapping these
// with fmt.Errorf at the validation site. Check with errors.Is.

package validate

import "errors"

var (
	ErrInvalidOffset     = errors.New("invalid offset")
	ErrInvalidLimit      = errors.New("invalid limit")
	ErrInvalidID         = errors.New("invalid id")
	ErrInvalidName       = errors.New("invalid name")
	ErrInvalidProperties = errors.New("invalid properties")
)
