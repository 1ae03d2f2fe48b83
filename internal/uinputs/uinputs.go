// Package uinputs models the virtual output devices mappings are emitted
// through, and resolves which device can handle a given mapping symbol.
//
// The registry is an explicit dependency: callers construct one, call
// Prepare, and pass it where needed. Nothing in this package holds global
// state, so tests can build registries with arbitrary capability sets.
package uinputs

import (
	"github.com/gvalkov/golang-evdev"

	"github.com/evmap/evmap/internal/keys"
)

// Well-known device names.
const (
	Keyboard      = "keyboard"
	Mouse         = "mouse"
	KeyboardMouse = "keyboard + mouse"
)

// UInput is one virtual output device with its declared capabilities.
type UInput struct {
	Name         string
	Capabilities keys.Capabilities
}

// Registry holds the virtual output devices in registration order.
//
// Registration order is the documented tie-break for target resolution:
// when several devices could handle a symbol, the earliest registered one
// wins. Prepare registers keyboard, then mouse, then the combined device.
type Registry struct {
	devices  []UInput
	prepared bool
}

// NewRegistry returns an empty registry. Call Prepare to register the
// default devices, or Register to build a custom set.
func NewRegistry() *Registry {
	return &Registry{}
}

// Prepare registers the default virtual devices. It is idempotent and a
// no-op on registries that already have explicit registrations, so callers
// may invoke it unconditionally before steps that resolve targets.
func (r *Registry) Prepare() {
	if r.prepared || len(r.devices) > 0 {
		return
	}
	r.prepared = true

	keyboard := keys.Capabilities{
		Key: keys.All().Difference(keys.Buttons()),
		Rel: keys.NewSet(),
	}
	mouse := keys.Capabilities{
		Key: keys.Buttons(),
		Rel: keys.NewSet(
			evdev.REL_X,
			evdev.REL_Y,
			evdev.REL_WHEEL,
			evdev.REL_HWHEEL,
		),
	}
	combined := keys.Capabilities{
		Key: keyboard.Key.Union(mouse.Key),
		Rel: keyboard.Rel.Union(mouse.Rel),
	}

	r.Register(Keyboard, keyboard)
	r.Register(Mouse, mouse)
	r.Register(KeyboardMouse, combined)
}

// Register appends a device. Order of calls fixes resolution priority.
func (r *Registry) Register(name string, caps keys.Capabilities) {
	r.devices = append(r.devices, UInput{Name: name, Capabilities: caps})
}

// Devices returns the devices in registration order.
func (r *Registry) Devices() []UInput {
	return r.devices
}

// Get returns the device with the given name.
func (r *Registry) Get(name string) (UInput, bool) {
	for _, dev := range r.devices {
		if dev.Name == name {
			return dev, true
		}
	}
	return UInput{}, false
}
