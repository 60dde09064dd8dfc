// name.go validates entity ids and display names.
//
// Validation is minimal by design: reject clearly broken inputs (empty
// strings, control characters, oversized values) without constraining
// legitimate naming. Ids are caller-supplied for locations, so they get the
// stricter no-whitespace rule; names are free-form display text.

package validate

import (
	"fmt"
	"strings"
	"unicode"
)

const (
	// MaxID caps caller-supplied location ids.
	MaxID = 128
	// MaxName caps display names for both locations and items.
	MaxName = 255
)

// ID validates a caller-supplied identifier.
func ID(id string) error {
	if id == "" {
		return fmt.Errorf("%w: empty id", ErrInvalidID)
	}
	if len(id) > MaxID {
		return fmt.Errorf("%w: id exceeds %d bytes", ErrInvalidID, MaxID)
	}
	for _, r := range id {
		if unicode.IsSpace(r) || unicode.IsControl(r) {
			return fmt.Errorf("%w: id contains whitespace or control characters", ErrInvalidID)
		}
	}
	return nil
}

// Name validates a display name and returns the trimmed form.
func Name(name string) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", fmt.Errorf("%w: empty name", ErrInvalidName)
	}
	if len(name) > MaxName {
		return "", fmt.Errorf("%w: name exceeds %d bytes", ErrInvalidName, MaxName)
	}
	if strings.ContainsRune(name, 0) {
		return "", fmt.Errorf("%w: null byte in name", ErrInvalidName)
	}
	return name, nil
}
