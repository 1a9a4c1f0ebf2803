// Package view holds the client-side state of the tracker and renders it for
// terminals. Both the one-shot CLI commands and the TUI are built on it.
package view

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strconv"
	"strings"
	"sync"

	"go.uber.org/zap"

	"bmi-tracker/internal/bmi"
	"bmi-tracker/internal/domain"
)

// ErrIncomplete is returned by Save when either field is blank.
var ErrIncomplete = errors.New("please fill in both weight and height")

// API is the records endpoint as seen by the client.
type API interface {
	List(ctx context.Context) ([]domain.Record, error)
	Create(ctx context.Context, weight, height float64) (domain.Record, error)
	Delete(ctx context.Context, id int64) (int64, error)
}

// Point is one sample of the BMI trend.
type Point struct {
	Date string    `json:"record_date"`
	BMI  bmi.Value `json:"bmi"`
}

// Model caches the last successfully fetched record list. It is safe for
// concurrent use.
type Model struct {
	api    API
	logger *zap.Logger

	mu      sync.RWMutex
	records []domain.Record
}

func New(api API, logger *zap.Logger) *Model {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Model{api: api, logger: logger, records: []domain.Record{}}
}

// Refresh replaces the cached list with the server's. A failed fetch is
// logged and leaves the previous list in place.
func (m *Model) Refresh(ctx context.Context) error {
	recs, err := m.api.List(ctx)
	if err != nil {
		m.logger.Error("fetching records failed", zap.Error(err))
		return err
	}
	if recs == nil {
		recs = []domain.Record{}
	}

	m.mu.Lock()
	m.records = recs
	m.mu.Unlock()
	return nil
}

// Records returns a copy of the cached list, newest first.
func (m *Model) Records() []domain.Record {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return slices.Clone(m.records)
}

// LatestBMI is the BMI of the newest record, or zero when there are none.
func (m *Model) LatestBMI() bmi.Value {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if len(m.records) == 0 {
		return bmi.Value{}
	}
	return m.records[0].BMI
}

// Save submits a measurement typed by the user. Range checks are left to
// the server; only blank or non-numeric fields are caught here.
func (m *Model) Save(ctx context.Context, weightText, heightText string) (domain.Record, error) {
	weightText = strings.TrimSpace(weightText)
	heightText = strings.TrimSpace(heightText)
	if weightText == "" || heightText == "" {
		return domain.Record{}, ErrIncomplete
	}

	weight, err := strconv.ParseFloat(weightText, 64)
	if err != nil {
		return domain.Record{}, fmt.Errorf("weight %q is not a number", weightText)
	}
	height, err := strconv.ParseFloat(heightText, 64)
	if err != nil {
		return domain.Record{}, fmt.Errorf("height %q is not a number", heightText)
	}

	rec, err := m.api.Create(ctx, weight, height)
	if err != nil {
		m.logger.Error("saving record failed", zap.Error(err))
		return domain.Record{}, fmt.Errorf("save failed: %w", err)
	}

	_ = m.Refresh(ctx)
	return rec, nil
}

// Delete removes a record and refreshes the cache.
func (m *Model) Delete(ctx context.Context, id int64) (int64, error) {
	n, err := m.api.Delete(ctx, id)
	if err != nil {
		m.logger.Error("deleting record failed", zap.Int64("record_id", id), zap.Error(err))
		return 0, fmt.Errorf("delete failed: %w", err)
	}

	_ = m.Refresh(ctx)
	return n, nil
}

// Series returns the cached records oldest first, for plotting.
func (m *Model) Series() []Point {
	m.mu.RLock()
	defer m.mu.RUnlock()

	points := make([]Point, len(m.records))
	for i, r := range m.records {
		points[len(m.records)-1-i] = Point{Date: r.RecordDate, BMI: r.BMI}
	}
	return points
}
