package uinputs

import (
	"log/slog"

	"github.com/evmap/evmap/internal/keys"
	"github.com/evmap/evmap/internal/macros"
)

// BrokenAnnotation is appended to a symbol when no registered device can
// emit every code it requires. The mapping is kept so users can repair it.
const BrokenAnnotation = "\n# Broken mapping:\n# No target can handle all specified keycodes"

// Resolver picks the output device capable of emitting a mapping symbol.
type Resolver struct {
	registry *Registry
}

// NewResolver creates a Resolver over the given registry.
func NewResolver(registry *Registry) *Resolver {
	return &Resolver{registry: registry}
}

// Resolve determines the target device for symbol.
//
// Policy, in priority order:
//  1. Symbols requiring any relative-motion code resolve to the mouse
//     device; only that device class emits relative motion.
//  2. Otherwise the first registered device whose key capabilities are a
//     superset of the required key codes wins.
//  3. Otherwise the symbol falls back to the keyboard device and gains the
//     broken-mapping annotation.
//
// The returned symbol equals the input except in the fallback case. An
// error means the symbol could not be understood at all (unknown key name
// or malformed macro) and the mapping entry should be left untouched.
func (r *Resolver) Resolve(symbol string) (string, string, error) {
	caps, err := requiredCapabilities(symbol)
	if err != nil {
		return "", "", err
	}

	if len(caps.Rel) > 0 {
		return symbol, Mouse, nil
	}

	for _, dev := range r.registry.Devices() {
		if dev.Capabilities.Key.SupersetOf(caps.Key) {
			return symbol, dev.Name, nil
		}
	}

	slog.Info("no suitable target device", "symbol", symbol)
	return symbol + BrokenAnnotation, Keyboard, nil
}

// requiredCapabilities computes the codes a symbol needs: macros via the
// macro parser, plain names via the key table.
func requiredCapabilities(symbol string) (keys.Capabilities, error) {
	if macros.IsMacro(symbol) {
		macro, err := macros.Parse(symbol)
		if err != nil {
			return keys.Capabilities{}, err
		}
		return macro.Capabilities()
	}

	code, err := keys.Get(symbol)
	if err != nil {
		return keys.Capabilities{}, err
	}
	caps := keys.NewCapabilities()
	caps.Key.Add(code)
	return caps, nil
}
