package records

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bmi-tracker/internal/apperr"
	"bmi-tracker/internal/bmi"
	"bmi-tracker/internal/clock"
	"bmi-tracker/internal/domain"
)

var fixedDay = clock.Fixed(time.Date(2026, 3, 14, 23, 30, 0, 0, time.UTC))

func TestServiceCreateStampsDateAndBMI(t *testing.T) {
	var got domain.NewRecord
	store := &mockStore{
		CreateFunc: func(_ context.Context, in domain.NewRecord) (domain.Record, error) {
			got = in
			return domain.Record{RecordID: 1, Weight: in.Weight, Height: in.Height, BMI: in.BMI, RecordDate: in.RecordDate}, nil
		},
	}

	rec, err := NewService(store, fixedDay).Create(context.Background(), 70, 175)
	require.NoError(t, err)

	assert.Equal(t, "2026-03-14", got.RecordDate)
	assert.True(t, got.BMI.Equal(bmi.MustParse("22.86")), "bmi %s", got.BMI)
	assert.Equal(t, int64(1), rec.RecordID)
	assert.Equal(t, "22.86", rec.BMI.String())
}

func TestServiceCreateRejectsInvalidWithoutStoring(t *testing.T) {
	store := &mockStore{
		CreateFunc: func(context.Context, domain.NewRecord) (domain.Record, error) {
			t.Fatal("store must not be called for invalid input")
			return domain.Record{}, nil
		},
	}
	svc := NewService(store, fixedDay)

	for _, in := range [][2]float64{{0, 175}, {70, 0}, {-1, 175}, {70, -5}} {
		_, err := svc.Create(context.Background(), in[0], in[1])
		assert.True(t, apperr.IsValidation(err), "weight=%g height=%g: %v", in[0], in[1], err)
	}
}

func TestServiceWrapsStoreFailures(t *testing.T) {
	boom := errors.New("disk I/O error")
	store := &mockStore{
		CreateFunc: func(context.Context, domain.NewRecord) (domain.Record, error) { return domain.Record{}, boom },
		ListFunc:   func(context.Context) ([]domain.Record, error) { return nil, boom },
		DeleteFunc: func(context.Context, int64) (int64, error) { return 0, boom },
	}
	svc := NewService(store, fixedDay)
	ctx := context.Background()

	_, err := svc.Create(ctx, 70, 175)
	assert.True(t, apperr.IsStorage(err))
	assert.ErrorIs(t, err, boom)

	_, err = svc.List(ctx)
	assert.True(t, apperr.IsStorage(err))

	_, err = svc.Delete(ctx, 3)
	assert.True(t, apperr.IsStorage(err))
	assert.ErrorIs(t, err, boom)
}

func TestServiceListNeverNil(t *testing.T) {
	store := &mockStore{
		ListFunc: func(context.Context) ([]domain.Record, error) { return nil, nil },
	}

	recs, err := NewService(store, fixedDay).List(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, recs)
	assert.Empty(t, recs)
}

func TestServiceDeletePassesChanges(t *testing.T) {
	store := &mockStore{
		DeleteFunc: func(_ context.Context, id int64) (int64, error) {
			if id == 4 {
				return 1, nil
			}
			return 0, nil
		},
	}
	svc := NewService(store, fixedDay)

	n, err := svc.Delete(context.Background(), 4)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	n, err = svc.Delete(context.Background(), 99)
	require.NoError(t, err)
	assert.Equal(t, int64(0), n)
}
