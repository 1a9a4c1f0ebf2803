// Package memory implements an in-memory record store for development and testing.
package memory

import (
	"context"
	"slices"
	"sync"

	"bmi-tracker/internal/apperr"
	"bmi-tracker/internal/domain"
	"bmi-tracker/internal/store"
)

func init() {
	store.Register("memory", func(map[string]any) (store.Driver, error) {
		return New(), nil
	})
}

// DB holds records in a slice guarded by a mutex.
type DB struct {
	mu      sync.Mutex
	records []domain.Record
	closed  bool

	// lastID only ever grows, so deleted ids are never handed out again.
	lastID int64
}

// New creates an empty in-memory store.
func New() *DB {
	return &DB{}
}

var _ store.Driver = (*DB)(nil)

func (db *DB) Name() string { return "memory" }

// Init is a no-op; the store has no schema.
func (db *DB) Init(ctx context.Context) error {
	db.mu.Lock()
	defer db.mu.Unlock()
	if db.closed {
		return apperr.Storage("init", store.ErrClosed)
	}
	return nil
}

// Close marks the store unusable.
func (db *DB) Close() error {
	db.mu.Lock()
	defer db.mu.Unlock()
	db.closed = true
	return nil
}

// CreateRecord appends a record with the next id.
func (db *DB) CreateRecord(ctx context.Context, in domain.NewRecord) (domain.Record, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	if db.closed {
		return domain.Record{}, apperr.Storage("create record", store.ErrClosed)
	}

	db.lastID++
	r := domain.Record{
		RecordID:   db.lastID,
		Weight:     in.Weight,
		Height:     in.Height,
		BMI:        in.BMI,
		RecordDate: in.RecordDate,
	}
	db.records = append(db.records, r)
	return r, nil
}

// ListRecords returns a sorted copy of all records.
func (db *DB) ListRecords(ctx context.Context) ([]domain.Record, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	if db.closed {
		return nil, apperr.Storage("list records", store.ErrClosed)
	}

	out := make([]domain.Record, len(db.records))
	copy(out, db.records)
	slices.SortFunc(out, domain.NewestFirst)
	return out, nil
}

// DeleteRecord removes the record with id, if present.
func (db *DB) DeleteRecord(ctx context.Context, id int64) (int64, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	if db.closed {
		return 0, apperr.Storage("delete record", store.ErrClosed)
	}

	for i, r := range db.records {
		if r.RecordID == id {
			db.records = slices.Delete(db.records, i, i+1)
			return 1, nil
		}
	}
	return 0, nil
}
