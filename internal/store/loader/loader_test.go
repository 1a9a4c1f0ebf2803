package loader_test

import (
	"slices"
	"testing"

	"bmi-tracker/internal/store"
	_ "bmi-tracker/internal/store/loader"
)

func TestAllDriversRegistered(t *testing.T) {
	got := store.Drivers()
	for _, name := range []string{"memory", "postgres", "sqlite"} {
		if !slices.Contains(got, name) {
			t.Errorf("driver %q not registered (have %v)", name, got)
		}
	}
}
