package store

import (
	"fmt"
	"sort"
	"sync"

	"github.com/mitchellh/mapstructure"
)

// Config selects a driver and carries its driver-specific options.
type Config struct {
	Driver  string
	Options map[string]any
}

// Factory creates a driver from its raw options.
type Factory func(options map[string]any) (Driver, error)

var (
	driversMu sync.RWMutex
	drivers   = make(map[string]Factory)
)

// Register makes a driver available under name. Drivers call it from init.
func Register(name string, factory Factory) {
	driversMu.Lock()
	defer driversMu.Unlock()
	drivers[name] = factory
}

// New creates, but does not initialise, the driver named by cfg.
func New(cfg Config) (Driver, error) {
	driversMu.RLock()
	factory, ok := drivers[cfg.Driver]
	driversMu.RUnlock()

	if !ok {
		return nil, fmt.Errorf("unknown store driver %q (registered: %v)", cfg.Driver, Drivers())
	}
	return factory(cfg.Options)
}

// Drivers lists registered driver names.
func Drivers() []string {
	driversMu.RLock()
	defer driversMu.RUnlock()

	names := make([]string, 0, len(drivers))
	for name := range drivers {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Setter is implemented by option structs that fill in their own defaults.
type Setter interface {
	ApplyDefaults()
}

// DecodeOptions decodes raw driver options into dst. Durations may be given
// as strings such as "5m". If dst implements Setter, defaults are applied
// after decoding.
func DecodeOptions(input map[string]any, dst any) error {
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           dst,
		TagName:          "mapstructure",
		WeaklyTypedInput: true,
		DecodeHook:       mapstructure.StringToTimeDurationHookFunc(),
	})
	if err != nil {
		return err
	}
	if err := decoder.Decode(input); err != nil {
		return fmt.Errorf("decode store options: %w", err)
	}

	if s, ok := dst.(Setter); ok {
		s.ApplyDefaults()
	}
	return nil
}
