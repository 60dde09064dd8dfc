// Package validate provides input validation for stash's domain types.
//
// Validation happens at the store layer (not just the service layer)
// because the store is the persistence boundary: anyone with direct store
// access must have their inputs checked before they reach SQL.
//
// All validation errors wrap one of the sentinel errors in errors.go; use
// errors.Is for type-safe checks:
//
//	if errors.Is(err, validate.ErrInvalidLimit) {
//	    // bad pagination input
//	}
package validate
