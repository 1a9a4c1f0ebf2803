// Package domain contains the record entity and the persistence port.
package domain

import (
	"cmp"
	"context"

	"bmi-tracker/internal/bmi"
)

// Record is one persisted measurement event.
type Record struct {
	RecordID   int64     `json:"record_id"`
	Weight     float64   `json:"weight"`
	Height     float64   `json:"height"`
	BMI        bmi.Value `json:"bmi"`
	RecordDate string    `json:"record_date"`
}

// NewRecord is the input to RecordStore.CreateRecord. The store assigns the id.
type NewRecord struct {
	Weight     float64
	Height     float64
	BMI        bmi.Value
	RecordDate string
}

// RecordStore is the port for record persistence. Implementations must be
// safe for concurrent use and must not reuse ids of deleted records.
type RecordStore interface {
	// Init ensures the backing schema exists. It is idempotent.
	Init(ctx context.Context) error
	CreateRecord(ctx context.Context, in NewRecord) (Record, error)
	// ListRecords returns every record, newest first (see NewestFirst).
	ListRecords(ctx context.Context) ([]Record, error)
	// DeleteRecord returns the number of rows removed, 0 when id is unknown.
	DeleteRecord(ctx context.Context, id int64) (int64, error)
}

// NewestFirst orders records by date descending, then by id descending so
// that later inserts on the same day come first.
func NewestFirst(a, b Record) int {
	if c := cmp.Compare(b.RecordDate, a.RecordDate); c != 0 {
		return c
	}
	return cmp.Compare(b.RecordID, a.RecordID)
}
