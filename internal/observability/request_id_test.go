package observability

import (
	"context"
	"testing"

	"github.com/google/uuid"
)

func TestNewRequestIDIsValid(t *testing.T) {
	seen := make(map[string]struct{})
	for range 16 {
		id := NewRequestID()
		if !ValidRequestID(id) {
			t.Fatalf("expected valid UUID, got %q", id)
		}
		if _, dup := seen[id]; dup {
			t.Fatalf("duplicate request id %q", id)
		}
		seen[id] = struct{}{}
	}
}

func TestValidRequestID(t *testing.T) {
	tests := []struct {
		id   string
		want bool
	}{
		{id: uuid.NewString(), want: true},
		{id: "", want: false},
		{id: "req-1", want: false},
		{id: "0000-not-a-uuid-0000", want: false},
	}

	for _, tc := range tests {
		if got := ValidRequestID(tc.id); got != tc.want {
			t.Fatalf("ValidRequestID(%q): expected %t, got %t", tc.id, tc.want, got)
		}
	}
}

func TestRequestIDFromContext(t *testing.T) {
	t.Run("round trip", func(t *testing.T) {
		ctx := ContextWithRequestID(context.Background(), "abc-123")
		if got := RequestIDFromContext(ctx); got != "abc-123" {
			t.Fatalf("expected %q, got %q", "abc-123", got)
		}
	})

	t.Run("missing", func(t *testing.T) {
		if got := RequestIDFromContext(context.Background()); got != "" {
			t.Fatalf("expected empty string, got %q", got)
		}
	})

	t.Run("wrong type", func(t *testing.T) {
		ctx := context.WithValue(context.Background(), RequestIDKey, 42)
		if got := RequestIDFromContext(ctx); got != "" {
			t.Fatalf("expected empty string, got %q", got)
		}
	})
}
