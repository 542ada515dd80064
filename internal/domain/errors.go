package domain

import "fmt"

// ValidationError rejects malformed input before any state changes.
type ValidationError struct {
	Msg string
}

func (e *ValidationError) Error() string { return e.Msg }

func Validationf(format string, args ...any) error {
	return &ValidationError{Msg: fmt.Sprintf(format, args...)}
}

// NotFoundError marks an operation that referenced an unknown resource.
type NotFoundError struct {
	Resource string
}

func (e *NotFoundError) Error() string { return e.Resource + " not found" }

func NotFound(resource string) error {
	return &NotFoundError{Resource: resource}
}

// DataUnavailableError marks a failed market-data fetch for one ticker.
// It degrades the affected field to "unavailable" and never fails the
// overall request.
type DataUnavailableError struct {
	Ticker string
	Err    error
}

func (e *DataUnavailableError) Error() string {
	return fmt.Sprintf("market data unavailable for %s: %v", e.Ticker, e.Err)
}

func (e *DataUnavailableError) Unwrap() error { return e.Err }

func Unavailable(ticker string, err error) error {
	return &DataUnavailableError{Ticker: ticker, Err: err}
}
