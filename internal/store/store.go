// Package store provides the record persistence drivers and their registry.
package store

import (
	"context"
	"errors"

	"bmi-tracker/internal/domain"
)

// ErrClosed is returned by drivers used after Close.
var ErrClosed = errors.New("store closed")

// Driver is a persistence backend for records.
// Implementations must be safe for concurrent use.
type Driver interface {
	domain.RecordStore

	// Name returns the registered driver name (memory, sqlite, postgres).
	Name() string

	// Close releases resources held by the driver.
	Close() error
}

// Open builds the configured driver and initialises its schema.
func Open(ctx context.Context, cfg Config) (Driver, error) {
	d, err := New(cfg)
	if err != nil {
		return nil, err
	}
	if err := d.Init(ctx); err != nil {
		_ = d.Close()
		return nil, err
	}
	return d, nil
}
