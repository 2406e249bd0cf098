package service

import (
	"errors"
	"fmt"
)

var (
	ErrDivisionByZero = errors.New("division by zero")
	ErrInvalidRecord  = errors.New("invalid financial record")
	ErrEmptyBatch     = errors.New("batch is empty")
	ErrBatchTooLarge  = errors.New("batch exceeds maximum size")
)

// DivisionByZeroError names the divisor that was zero.
type DivisionByZeroError struct {
	Field string
}

func (e *DivisionByZeroError) Error() string {
	return fmt.Sprintf("%s is zero: %v", e.Field, ErrDivisionByZero)
}

func (e *DivisionByZeroError) Unwrap() error {
	return ErrDivisionByZero
}
