package profile

import "fmt"

// LoadError signals that the dataset resource could not be read or parsed
// as a delimited table. Every operation on the same source fails with the
// same error; there are no partial results.
type LoadError struct {
	Err error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("load dataset: %v", e.Err)
}

func (e *LoadError) Unwrap() error {
	return e.Err
}

// ComputationError signals a statistical computation that produced an
// unusable result, such as a non-finite quantile. These are surfaced to the
// caller rather than coerced into a malformed report.
type ComputationError struct {
	Op     string
	Column string
	Err    error
}

func (e *ComputationError) Error() string {
	if e.Column != "" {
		return fmt.Sprintf("%s: column %q: %v", e.Op, e.Column, e.Err)
	}
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *ComputationError) Unwrap() error {
	return e.Err
}
