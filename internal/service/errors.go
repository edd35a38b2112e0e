package service

import (
	"errors"
	"fmt"
)

var (
	// ErrStoreUnavailable indicates the persistent store could not be reached.
	ErrStoreUnavailable = errors.New("user store unavailable")
	// ErrEmptyQuestion indicates a blank analysis question was submitted.
	ErrEmptyQuestion = errors.New("question must not be empty")
	// ErrAnalysisUnavailable indicates the downstream analysis capability failed.
	ErrAnalysisUnavailable = errors.New("analysis capability unavailable")
	// ErrAnalysisTimeout indicates the downstream analysis call exceeded its deadline.
	ErrAnalysisTimeout = errors.New("analysis request timed out")
	// ErrUserNotFound indicates no profile exists for the given email.
	ErrUserNotFound = errors.New("user not found")
)

func storeError(err error) error {
	return fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
}
