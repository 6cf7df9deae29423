package models

import "errors"

// Booking error taxonomy. Repositories and services wrap these with
// fmt.Errorf("...: %w", ...); handlers map them to HTTP status codes
// with errors.Is.
var (
	ErrUnauthorized      = errors.New("unauthorized")
	ErrForbidden         = errors.New("forbidden")
	ErrNotFound          = errors.New("not found")
	ErrSlotInvalid       = errors.New("invalid slot number")
	ErrSlotTaken         = errors.New("slot already booked")
	ErrPaymentIncomplete = errors.New("payment not completed")
	ErrMetadataMismatch  = errors.New("payment verification failed - metadata mismatch")
	ErrGateway           = errors.New("payment gateway error")
	ErrInvalidInput      = errors.New("invalid input")
)
