// Package storage persists the tracker's state as whole values under string
// keys, in SQLite or in memory.
package storage

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

// Validation errors.
var (
	ErrNilContext  = errors.New("context cannot be nil")
	ErrEmptyString = errors.New("string parameter cannot be empty")
	ErrNilValue    = errors.New("value cannot be nil")
)

func validateContext(ctx context.Context) error {
	if ctx == nil {
		return ErrNilContext
	}
	return nil
}

func validateString(s, paramName string) error {
	if strings.TrimSpace(s) == "" {
		return fmt.Errorf("%w: %s", ErrEmptyString, paramName)
	}
	return nil
}

// validateRead checks the arguments of a Load.
func validateRead(ctx context.Context, key string) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	return validateString(key, "key")
}

// validateWrite checks the arguments of a Save. An empty JSON document is
// still a value; only nil is rejected.
func validateWrite(ctx context.Context, key string, value []byte) error {
	if err := validateRead(ctx, key); err != nil {
		return err
	}
	if value == nil {
		return ErrNilValue
	}
	return nil
}
