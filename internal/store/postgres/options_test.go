package postgres

import (
	"testing"
	"time"

	"bmi-tracker/internal/store"
)

func TestNewDriverRequiresDSN(t *testing.T) {
	if _, err := store.New(store.Config{Driver: "postgres"}); err == nil {
		t.Fatal("expected error without dsn")
	}
}

func TestNewDriverDecodesOptions(t *testing.T) {
	d, err := store.New(store.Config{
		Driver: "postgres",
		Options: map[string]any{
			"dsn":               "postgres://bmi@localhost/bmi?sslmode=disable",
			"max_open_conns":    20,
			"conn_max_lifetime": "90s",
		},
	})
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	db := d.(*DB)
	if db.opts.MaxOpenConns != 20 {
		t.Errorf("expected max_open_conns 20, got %d", db.opts.MaxOpenConns)
	}
	if db.opts.MaxIdleConns != 5 {
		t.Errorf("expected default max_idle_conns 5, got %d", db.opts.MaxIdleConns)
	}
	if db.opts.ConnMaxLifetime != 90*time.Second {
		t.Errorf("expected 90s lifetime, got %v", db.opts.ConnMaxLifetime)
	}
}

func TestUninitialisedDriverReportsClosed(t *testing.T) {
	d, err := NewDriver(map[string]any{"dsn": "postgres://localhost/bmi"})
	if err != nil {
		t.Fatal(err)
	}
	if _, err := d.ListRecords(t.Context()); err == nil {
		t.Fatal("expected error before Init")
	}
}
