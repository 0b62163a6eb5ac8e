package interfaces

import "errors"

var (
	// ErrNotFound is returned when a document does not exist.
	ErrNotFound = errors.New("not found")

	// ErrDuplicate is returned when a unique index rejects a write.
	ErrDuplicate = errors.New("already exists")

	// ErrVoucherUnavailable is returned by MarkPurchased when the voucher
	// is no longer active, so two buyers can never hold the same voucher.
	ErrVoucherUnavailable = errors.New("voucher no longer available")
)
