package models

import (
	"errors"
	"fmt"
)

var (
	// ErrStoreNotConfigured means no record store identifier was supplied
	ErrStoreNotConfigured = errors.New("record store is not configured")

	// ErrMissingColumn means the record store lacks a required column
	ErrMissingColumn = errors.New("record store is missing a required column")
)

// ConfigError marks record store misconfiguration. It is fatal for the call in
// progress and must not be confused with duplicates or transient I/O failures.
type ConfigError struct {
	Store  string
	Detail string
	Err    error
}

func (e *ConfigError) Error() string {
	if e.Detail == "" {
		return fmt.Sprintf("%s store configuration error: %v", e.Store, e.Err)
	}
	return fmt.Sprintf("%s store configuration error: %v: %s", e.Store, e.Err, e.Detail)
}

func (e *ConfigError) Unwrap() error {
	return e.Err
}

// NewMissingColumnError reports the first required column absent from a store
func NewMissingColumnError(store, column string) *ConfigError {
	return &ConfigError{Store: store, Detail: column, Err: ErrMissingColumn}
}
