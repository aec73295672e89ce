package domain

import (
	"errors"
	"fmt"
)

// Sentinel errors for the surcharge engine.
var (
	// ErrInvalidRequest is returned when a quote request fails validation
	ErrInvalidRequest = errors.New("invalid request")

	// ErrMemoryOverused is raised when path generation exceeds its budget
	ErrMemoryOverused = errors.New("yqyr: memory overused")

	// ErrUnknownFeeApplIndicator is raised when a lower bound meets an unknown indicator
	ErrUnknownFeeApplIndicator = errors.New("yqyr: unknown fee application indicator")

	// ErrDataUnavailable is returned when filing data cannot be read
	ErrDataUnavailable = errors.New("filing data unavailable")

	// ErrCurrencyConversion is returned when an amount cannot be converted
	ErrCurrencyConversion = errors.New("currency conversion failed")

	// ErrNotProcessed is returned when a calculator is queried before Process
	ErrNotProcessed = errors.New("yqyr: calculator not processed")

	// ErrUnknownValidatingCarrier is returned when a query names a carrier the
	// calculator did not process
	ErrUnknownValidatingCarrier = errors.New("yqyr: unknown validating carrier")
)

// DataError wraps a failed filing lookup with the lookup name.
type DataError struct {
	Lookup    string
	Err       error
	Transient bool
}

// Error implements the error interface.
func (e *DataError) Error() string {
	return fmt.Sprintf("%s: %s: %v", ErrDataUnavailable, e.Lookup, e.Err)
}

// Unwrap lets errors.Is see both the cause and ErrDataUnavailable.
func (e *DataError) Unwrap() []error {
	return []error{ErrDataUnavailable, e.Err}
}

// NewDataError creates a non-transient data error.
func NewDataError(lookup string, err error) *DataError {
	return &DataError{Lookup: lookup, Err: err}
}

// NewTransientDataError creates a data error worth retrying.
func NewTransientDataError(lookup string, err error) *DataError {
	return &DataError{Lookup: lookup, Err: err, Transient: true}
}

// IsTransient reports whether err is a DataError marked transient.
func IsTransient(err error) bool {
	var de *DataError
	if errors.As(err, &de) {
		return de.Transient
	}
	return false
}
