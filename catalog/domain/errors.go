package domain

import "errors"

// Error taxonomy for the catalog. Storage failures are wrapped with
// fmt.Errorf and carry none of these sentinels; the boundary layer treats
// them as server errors.
var (
	// ErrNotFound signals an unknown item id or image ref.
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput signals a rejected request: empty name or category,
	// or an image in the wrong format.
	ErrInvalidInput = errors.New("invalid input")

	// ErrConstraintViolation signals a write that would break referential
	// integrity, such as an item referencing a missing category.
	ErrConstraintViolation = errors.New("constraint violation")
)
