// Package storetest is the conformance suite every record store driver must pass.
package storetest

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bmi-tracker/internal/bmi"
	"bmi-tracker/internal/domain"
	"bmi-tracker/internal/store"
)

// NewDriverFunc returns a fresh, initialised, empty driver. It is called once
// per subtest; cleanup is the caller's responsibility (t.Cleanup).
type NewDriverFunc func(t *testing.T) store.Driver

// Run exercises the store contract against drivers produced by newDriver.
func Run(t *testing.T, newDriver NewDriverFunc) {
	t.Run("EmptyList", func(t *testing.T) { testEmptyList(t, newDriver(t)) })
	t.Run("InitIdempotent", func(t *testing.T) { testInitIdempotent(t, newDriver(t)) })
	t.Run("CreateThenList", func(t *testing.T) { testCreateThenList(t, newDriver(t)) })
	t.Run("BMIBoundsRoundTrip", func(t *testing.T) { testBMIBoundsRoundTrip(t, newDriver(t)) })
	t.Run("DeleteUnknown", func(t *testing.T) { testDeleteUnknown(t, newDriver(t)) })
	t.Run("DeleteNeverReusesID", func(t *testing.T) { testDeleteNeverReusesID(t, newDriver(t)) })
	t.Run("OrderedNewestFirst", func(t *testing.T) { testOrderedNewestFirst(t, newDriver(t)) })
	t.Run("ConcurrentCreates", func(t *testing.T) { testConcurrentCreates(t, newDriver(t)) })
}

// Measurement builds a NewRecord with its BMI computed.
func Measurement(t testing.TB, weight, height float64, date string) domain.NewRecord {
	t.Helper()
	v, err := bmi.Calculate(weight, height)
	require.NoError(t, err)
	return domain.NewRecord{Weight: weight, Height: height, BMI: v, RecordDate: date}
}

func testEmptyList(t *testing.T, d store.Driver) {
	records, err := d.ListRecords(context.Background())
	require.NoError(t, err)
	require.NotNil(t, records, "empty store must return an empty slice, not nil")
	assert.Empty(t, records)
}

func testInitIdempotent(t *testing.T, d store.Driver) {
	ctx := context.Background()
	_, err := d.CreateRecord(ctx, Measurement(t, 70, 175, "2026-01-01"))
	require.NoError(t, err)

	require.NoError(t, d.Init(ctx))
	require.NoError(t, d.Init(ctx))

	records, err := d.ListRecords(ctx)
	require.NoError(t, err)
	assert.Len(t, records, 1, "re-running Init must keep existing records")
}

func testCreateThenList(t *testing.T, d store.Driver) {
	ctx := context.Background()

	created, err := d.CreateRecord(ctx, Measurement(t, 70, 175, "2026-02-08"))
	require.NoError(t, err)
	assert.NotZero(t, created.RecordID)
	assert.Equal(t, 70.0, created.Weight)
	assert.Equal(t, 175.0, created.Height)
	assert.Equal(t, "22.86", created.BMI.String())
	assert.Equal(t, "2026-02-08", created.RecordDate)

	records, err := d.ListRecords(ctx)
	require.NoError(t, err)
	require.Len(t, records, 1)

	got := records[0]
	assert.Equal(t, created.RecordID, got.RecordID)
	assert.Equal(t, 70.0, got.Weight)
	assert.Equal(t, 175.0, got.Height)
	assert.Equal(t, "22.86", got.BMI.String())
	assert.Equal(t, "2026-02-08", got.RecordDate)
}

// testBMIBoundsRoundTrip stores the smallest and largest BMI Calculate can
// produce and reads both back unchanged.
func testBMIBoundsRoundTrip(t *testing.T, d store.Driver) {
	ctx := context.Background()

	_, err := d.CreateRecord(ctx, Measurement(t, 0.005, 100, "2026-02-07"))
	require.NoError(t, err)
	_, err = d.CreateRecord(ctx, Measurement(t, 9999.99, 100, "2026-02-08"))
	require.NoError(t, err)

	records, err := d.ListRecords(ctx)
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, bmi.Max, records[0].BMI.String())
	assert.Equal(t, "0.01", records[1].BMI.String())

	// The store keeps serving after reading the extremes.
	_, err = d.ListRecords(ctx)
	require.NoError(t, err)
}

func testDeleteUnknown(t *testing.T, d store.Driver) {
	ctx := context.Background()
	created, err := d.CreateRecord(ctx, Measurement(t, 80, 180, "2026-02-08"))
	require.NoError(t, err)

	n, err := d.DeleteRecord(ctx, created.RecordID+1000)
	require.NoError(t, err)
	assert.Zero(t, n)

	records, err := d.ListRecords(ctx)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, created.RecordID, records[0].RecordID)
}

func testDeleteNeverReusesID(t *testing.T, d store.Driver) {
	ctx := context.Background()

	first, err := d.CreateRecord(ctx, Measurement(t, 70, 175, "2026-02-01"))
	require.NoError(t, err)
	last, err := d.CreateRecord(ctx, Measurement(t, 71, 175, "2026-02-02"))
	require.NoError(t, err)
	require.Greater(t, last.RecordID, first.RecordID)

	n, err := d.DeleteRecord(ctx, last.RecordID)
	require.NoError(t, err)
	assert.EqualValues(t, 1, n)

	n, err = d.DeleteRecord(ctx, last.RecordID)
	require.NoError(t, err)
	assert.Zero(t, n, "second delete of the same id removes nothing")

	records, err := d.ListRecords(ctx)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, first.RecordID, records[0].RecordID)

	next, err := d.CreateRecord(ctx, Measurement(t, 72, 175, "2026-02-03"))
	require.NoError(t, err)
	assert.Greater(t, next.RecordID, last.RecordID, "deleted id must not be reassigned")
}

func testOrderedNewestFirst(t *testing.T, d store.Driver) {
	ctx := context.Background()

	d2, err := d.CreateRecord(ctx, Measurement(t, 70, 175, "2026-01-02"))
	require.NoError(t, err)
	d3, err := d.CreateRecord(ctx, Measurement(t, 69, 175, "2026-01-03"))
	require.NoError(t, err)
	d1, err := d.CreateRecord(ctx, Measurement(t, 71, 175, "2026-01-01"))
	require.NoError(t, err)
	d3b, err := d.CreateRecord(ctx, Measurement(t, 68, 175, "2026-01-03"))
	require.NoError(t, err)

	records, err := d.ListRecords(ctx)
	require.NoError(t, err)

	var got []int64
	for _, r := range records {
		got = append(got, r.RecordID)
	}
	want := []int64{d3b.RecordID, d3.RecordID, d2.RecordID, d1.RecordID}
	assert.Equal(t, want, got)
}

func testConcurrentCreates(t *testing.T, d store.Driver) {
	ctx := context.Background()
	const writers = 8

	var wg sync.WaitGroup
	ids := make(chan int64, writers)
	errs := make(chan error, writers)

	for i := 0; i < writers; i++ {
		in := Measurement(t, 60+float64(i), 170, "2026-03-01")
		wg.Add(1)
		go func() {
			defer wg.Done()
			r, err := d.CreateRecord(ctx, in)
			if err != nil {
				errs <- err
				return
			}
			ids <- r.RecordID
		}()
	}
	wg.Wait()
	close(ids)
	close(errs)

	for err := range errs {
		require.NoError(t, err)
	}

	seen := make(map[int64]bool)
	for id := range ids {
		assert.False(t, seen[id], "duplicate id %d", id)
		seen[id] = true
	}
	assert.Len(t, seen, writers)

	records, err := d.ListRecords(ctx)
	require.NoError(t, err)
	assert.Len(t, records, writers)
}
