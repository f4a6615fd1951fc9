package domain

import "errors"

var (
	ErrMissingInput     = errors.New("required input is missing")
	ErrUnsupportedMedia = errors.New("unsupported media type")
	ErrInvalidAmount    = errors.New("quantity must be positive and unit price non-negative")
	ErrInvalidBill      = errors.New("bill has no items and no total")
	ErrEmptyTranscript  = errors.New("transcript is empty")
	ErrExtractionFailed = errors.New("extraction service returned no usable data")
	ErrPersistFailed    = errors.New("ledger write failed")
	ErrEntryNotFound    = errors.New("ledger entry not found")
)
