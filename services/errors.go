package services

import "errors"

// Sentinel errors surfaced by the booking core. Controllers match on these
// with errors.Is to pick status codes.
var (
	// ErrInvalidDateRange rejects stays where check_out <= check_in.
	ErrInvalidDateRange = errors.New("invalid_date_range")

	// ErrNotAvailable means no free room of the requested type exists for
	// the interval. No state is created in that case.
	ErrNotAvailable = errors.New("not_available")

	// ErrOrderNumberCollision is returned when the per-day sequence could
	// not produce a unique order number even after retries.
	ErrOrderNumberCollision = errors.New("order_number_collision")

	// ErrReceiptWrite wraps artifact-store failures during receipt
	// generation. The order persists regardless; callers report it as a
	// warning.
	ErrReceiptWrite = errors.New("receipt_write_failed")

	ErrOrderNotFound   = errors.New("order_not_found")
	ErrProfileNotFound = errors.New("profile_not_found")
)
