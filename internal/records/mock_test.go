package records

import (
	"context"

	"bmi-tracker/internal/domain"
)

// mockStore is a RecordStore whose behaviour is set per test. Nil functions
// panic so unexpected calls are loud.
type mockStore struct {
	InitFunc   func(ctx context.Context) error
	CreateFunc func(ctx context.Context, in domain.NewRecord) (domain.Record, error)
	ListFunc   func(ctx context.Context) ([]domain.Record, error)
	DeleteFunc func(ctx context.Context, id int64) (int64, error)
}

func (m *mockStore) Init(ctx context.Context) error {
	return m.InitFunc(ctx)
}

func (m *mockStore) CreateRecord(ctx context.Context, in domain.NewRecord) (domain.Record, error) {
	return m.CreateFunc(ctx, in)
}

func (m *mockStore) ListRecords(ctx context.Context) ([]domain.Record, error) {
	return m.ListFunc(ctx)
}

func (m *mockStore) DeleteRecord(ctx context.Context, id int64) (int64, error) {
	return m.DeleteFunc(ctx, id)
}
