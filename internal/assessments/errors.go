package assessments

import "errors"

var (
	ErrNotFound             = errors.New("assessment not found")
	ErrIncompleteAssessment = errors.New("assessment incomplete")
	ErrInvalidAnswer        = errors.New("invalid answer")
	ErrPersistence          = errors.New("assessment persistence failed")
	ErrInvalidBank          = errors.New("invalid question bank")
)

// PersistenceError reports a storage failure after scoring succeeded. Result
// holds the computed outcome so callers can still show it.
type PersistenceError struct {
	Result Result
	Err    error
}

func (e *PersistenceError) Error() string {
	if e.Err == nil {
		return ErrPersistence.Error()
	}
	return ErrPersistence.Error() + ": " + e.Err.Error()
}

func (e *PersistenceError) Unwrap() []error {
	return []error{ErrPersistence, e.Err}
}
