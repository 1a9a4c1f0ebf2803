// Package loader registers every record store driver via blank imports.
//
// Usage in main.go:
//
//	import _ "bmi-tracker/internal/store/loader"
package loader

import (
	_ "bmi-tracker/internal/store/memory"
	_ "bmi-tracker/internal/store/postgres"
	_ "bmi-tracker/internal/store/sqlite"
)
