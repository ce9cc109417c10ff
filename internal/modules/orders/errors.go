package orders

import "errors"

var (
	ErrNotFound          = errors.New("order not found")
	ErrInvalidTransition = errors.New("invalid order status transition")
	ErrConflict          = errors.New("order status changed concurrently")
	ErrUnknownStatus     = errors.New("unknown order status")

	ErrNegativeAmount          = errors.New("monetary amount is negative")
	ErrDiscountExceedsSubtotal = errors.New("discount exceeds subtotal")
	ErrTotalMismatch           = errors.New("total does not equal subtotal - discount + shipping")
)
