package apperr

import (
	"errors"
	"fmt"
	"testing"
)

func TestValidationErrorMessage(t *testing.T) {
	err := Invalid("height", "must be > 0, got %g", -1.0)
	if got, want := err.Error(), "height: must be > 0, got -1"; got != want {
		t.Fatalf("expected %q, got %q", want, got)
	}

	bare := &ValidationError{Msg: "invalid json"}
	if got := bare.Error(); got != "invalid json" {
		t.Fatalf("expected message without field prefix, got %q", got)
	}
}

func TestStorageWrapsAndUnwraps(t *testing.T) {
	cause := errors.New("disk I/O error")
	err := Storage("create record", cause)

	if !IsStorage(err) {
		t.Fatal("expected storage error")
	}
	if !errors.Is(err, cause) {
		t.Fatal("expected wrapped cause to be reachable")
	}
	if got, want := err.Error(), "create record: disk I/O error"; got != want {
		t.Fatalf("expected %q, got %q", want, got)
	}

	if again := Storage("outer", fmt.Errorf("ctx: %w", err)); !errors.Is(again, cause) {
		t.Fatal("expected rewrap to keep cause")
	}
	if Storage("noop", nil) != nil {
		t.Fatal("expected nil for nil error")
	}
}

func TestClassifiers(t *testing.T) {
	v := fmt.Errorf("create: %w", Invalid("weight", "required"))
	if !IsValidation(v) || IsStorage(v) {
		t.Fatal("expected wrapped validation error to classify as validation only")
	}
}
