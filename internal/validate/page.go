// page.go validates pagination parameters.
//
// Pagination errors are caller-input errors and must be raised before any
// database work happens; the search executors call Page first for exactly
// that reason.

package validate

import "fmt"

// MaxLimit is the largest page size a single search call may request.
const MaxLimit = 100

// Page validates a zero-based offset and a page size limit. Bounds are
// rejected, not clamped: a caller asking for limit 0 or 5000 has a bug that
// silent adjustment would hide.
func Page(offset, limit int) error {
	if offset < 0 {
		return fmt.Errorf("%w: offset must be >= 0, got %d", ErrInvalidOffset, offset)
	}
	if limit <= 0 {
		return fmt.Errorf("%w: limit must be > 0, got %d", ErrInvalidLimit, limit)
	}
	if limit > MaxLimit {
		return fmt.Errorf("%w: limit must be <= %d, got %d", ErrInvalidLimit, MaxLimit, limit)
	}
	return nil
}
