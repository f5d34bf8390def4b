package service

import (
	"errors"
	"fmt"
)

var (
	ErrNotFound           = errors.New("not found")
	ErrPermissionDenied   = errors.New("permission denied")
	ErrInvalidInput       = errors.New("invalid input")
	ErrPreconditionFailed = errors.New("precondition failed")
	ErrConflict           = errors.New("conflict")
)

// MissingMarginError asks the caller for a default margin covering Count
// rows.
type MissingMarginError struct {
	Count int
}

func (e *MissingMarginError) Error() string {
	return fmt.Sprintf("%d item(s) without margin; a default margin is required", e.Count)
}

func (e *MissingMarginError) Unwrap() error {
	return ErrPreconditionFailed
}

// UncomputedItemsError rejects a full commit while Count rows are not
// calculated.
type UncomputedItemsError struct {
	Count int
}

func (e *UncomputedItemsError) Error() string {
	return fmt.Sprintf("%d item(s) not calculated", e.Count)
}

func (e *UncomputedItemsError) Unwrap() error {
	return ErrPreconditionFailed
}
