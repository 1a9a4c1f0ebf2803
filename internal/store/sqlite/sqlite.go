// Package sqlite implements the SQLite record store using GORM.
package sqlite

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"bmi-tracker/internal/apperr"
	"bmi-tracker/internal/bmi"
	"bmi-tracker/internal/domain"
	"bmi-tracker/internal/store"
)

func init() {
	store.Register("sqlite", NewDriver)
}

// Options configures the SQLite driver.
type Options struct {
	// Path is the database file; its directory is created if missing.
	Path string `mapstructure:"path"`

	// BusyTimeoutMS is how long a writer waits on SQLite's file lock.
	BusyTimeoutMS int `mapstructure:"busy_timeout_ms"`
}

// ApplyDefaults fills unset options.
func (o *Options) ApplyDefaults() {
	if o.Path == "" {
		o.Path = "bmi_tracker.db"
	}
	if o.BusyTimeoutMS <= 0 {
		o.BusyTimeoutMS = 5000
	}
}

// record is the table row. Column names match the records table the
// tracker has always used.
type record struct {
	RecordID   int64     `gorm:"column:record_id;primaryKey;autoIncrement"`
	Weight     float64   `gorm:"column:weight;not null"`
	Height     float64   `gorm:"column:height;not null"`
	BMI        bmi.Value `gorm:"column:bmi;type:numeric;not null"`
	RecordDate string    `gorm:"column:record_date;type:text;not null;index:idx_records_record_date"`
}

func (record) TableName() string { return "records" }

func (r record) toDomain() domain.Record {
	return domain.Record{
		RecordID:   r.RecordID,
		Weight:     r.Weight,
		Height:     r.Height,
		BMI:        r.BMI,
		RecordDate: r.RecordDate,
	}
}

// Driver implements store.Driver on a SQLite file.
type Driver struct {
	opts Options

	mu sync.RWMutex // guards db
	db *gorm.DB
}

// NewDriver creates a SQLite driver from raw options.
func NewDriver(options map[string]any) (store.Driver, error) {
	var opts Options
	if err := store.DecodeOptions(options, &opts); err != nil {
		return nil, err
	}
	return &Driver{opts: opts}, nil
}

func (d *Driver) Name() string { return "sqlite" }

// Path returns the database file in use.
func (d *Driver) Path() string { return d.opts.Path }

// Init opens the database file and migrates the records table.
func (d *Driver) Init(ctx context.Context) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.db == nil {
		if dir := filepath.Dir(d.opts.Path); dir != "." {
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return apperr.Storage("init", err)
			}
		}

		// _txlock=immediate takes the write lock at BEGIN so concurrent
		// writers queue on busy_timeout instead of failing with SQLITE_BUSY.
		dsn := fmt.Sprintf("%s?_busy_timeout=%d&_txlock=immediate", d.opts.Path, d.opts.BusyTimeoutMS)
		db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
			Logger: logger.Default.LogMode(logger.Silent),
		})
		if err != nil {
			return apperr.Storage("open database", err)
		}
		d.db = db
	}

	if err := d.db.WithContext(ctx).AutoMigrate(&record{}); err != nil {
		return apperr.Storage("migrate", err)
	}
	return nil
}

// Close closes the database connection.
func (d *Driver) Close() error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.db == nil {
		return nil
	}
	sqlDB, err := d.db.DB()
	if err != nil {
		return err
	}
	d.db = nil
	return sqlDB.Close()
}

func (d *Driver) conn(ctx context.Context) (*gorm.DB, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()

	if d.db == nil {
		return nil, store.ErrClosed
	}
	return d.db.WithContext(ctx), nil
}

// CreateRecord inserts a record. The insert is committed before it returns.
func (d *Driver) CreateRecord(ctx context.Context, in domain.NewRecord) (domain.Record, error) {
	db, err := d.conn(ctx)
	if err != nil {
		return domain.Record{}, apperr.Storage("create record", err)
	}

	row := record{
		Weight:     in.Weight,
		Height:     in.Height,
		BMI:        in.BMI,
		RecordDate: in.RecordDate,
	}
	if err := db.Create(&row).Error; err != nil {
		return domain.Record{}, apperr.Storage("create record", err)
	}
	return row.toDomain(), nil
}

// ListRecords returns all records, newest first.
func (d *Driver) ListRecords(ctx context.Context) ([]domain.Record, error) {
	db, err := d.conn(ctx)
	if err != nil {
		return nil, apperr.Storage("list records", err)
	}

	var rows []record
	if err := db.Order("record_date DESC").Order("record_id DESC").Find(&rows).Error; err != nil {
		return nil, apperr.Storage("list records", err)
	}

	out := make([]domain.Record, 0, len(rows))
	for _, r := range rows {
		out = append(out, r.toDomain())
	}
	return out, nil
}

// DeleteRecord removes the record with id and reports how many rows went.
func (d *Driver) DeleteRecord(ctx context.Context, id int64) (int64, error) {
	db, err := d.conn(ctx)
	if err != nil {
		return 0, apperr.Storage("delete record", err)
	}

	result := db.Delete(&record{}, "record_id = ?", id)
	if result.Error != nil {
		return 0, apperr.Storage("delete record", result.Error)
	}
	return result.RowsAffected, nil
}
