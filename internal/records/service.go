// Package records implements the records API: the service that applies the
// BMI rules and the HTTP handlers that expose it.
package records

import (
	"context"

	"bmi-tracker/internal/apperr"
	"bmi-tracker/internal/bmi"
	"bmi-tracker/internal/clock"
	"bmi-tracker/internal/domain"
)

// Service applies the record rules on top of a RecordStore. It holds no
// locks; the store serialises writes.
type Service struct {
	store domain.RecordStore
	clock clock.Clock
}

func NewService(store domain.RecordStore, c clock.Clock) *Service {
	if c == nil {
		c = clock.System{}
	}
	return &Service{store: store, clock: c}
}

// List returns every record, newest first. It never returns a nil slice.
func (s *Service) List(ctx context.Context) ([]domain.Record, error) {
	recs, err := s.store.ListRecords(ctx)
	if err != nil {
		return nil, apperr.Storage("list records", err)
	}
	if recs == nil {
		recs = []domain.Record{}
	}
	return recs, nil
}

// Create computes the BMI for weight (kg) and height (cm), stamps today's
// date and stores the record. Invalid measurements never reach the store.
func (s *Service) Create(ctx context.Context, weight, height float64) (domain.Record, error) {
	value, err := bmi.Calculate(weight, height)
	if err != nil {
		return domain.Record{}, err
	}

	rec, err := s.store.CreateRecord(ctx, domain.NewRecord{
		Weight:     weight,
		Height:     height,
		BMI:        value,
		RecordDate: clock.Today(s.clock),
	})
	if err != nil {
		return domain.Record{}, apperr.Storage("create record", err)
	}
	return rec, nil
}

// Delete removes the record with id and reports how many rows went away.
// An unknown id is not an error.
func (s *Service) Delete(ctx context.Context, id int64) (int64, error) {
	n, err := s.store.DeleteRecord(ctx, id)
	if err != nil {
		return 0, apperr.Storage("delete record", err)
	}
	return n, nil
}
