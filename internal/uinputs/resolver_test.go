package uinputs

import (
	"testing"

	"github.com/gvalkov/golang-evdev"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/evmap/evmap/internal/keys"
)

func defaultResolver() *Resolver {
	reg := NewRegistry()
	reg.Prepare()
	return NewResolver(reg)
}

func TestResolve_PlainKeyGoesToKeyboard(t *testing.T) {
	symbol, target, err := defaultResolver().Resolve("a")
	require.NoError(t, err)
	assert.Equal(t, "a", symbol)
	assert.Equal(t, Keyboard, target)
}

func TestResolve_MouseButtonSkipsKeyboard(t *testing.T) {
	// The virtual keyboard cannot emit buttons, so the scan falls through
	// to the mouse device.
	symbol, target, err := defaultResolver().Resolve("btn_left")
	require.NoError(t, err)
	assert.Equal(t, "btn_left", symbol)
	assert.Equal(t, Mouse, target)
}

func TestResolve_RelativeMotionAlwaysMouse(t *testing.T) {
	// Even when another device's key capabilities would match, relative
	// motion forces the mouse target.
	for _, symbol := range []string{"wheel(up, 1)", "mouse(left, 4)", "k(a).wheel(down, 1)"} {
		got, target, err := defaultResolver().Resolve(symbol)
		require.NoError(t, err)
		assert.Equal(t, symbol, got)
		assert.Equal(t, Mouse, target, "symbol %q", symbol)
	}
}

func TestResolve_FirstSupersetWins(t *testing.T) {
	reg := NewRegistry()
	reg.Register("partial", keys.Capabilities{Key: keys.NewSet(evdev.KEY_B), Rel: keys.NewSet()})
	reg.Register("full", keys.Capabilities{Key: keys.NewSet(evdev.KEY_A, evdev.KEY_B, evdev.KEY_C), Rel: keys.NewSet()})
	reg.Register("also-full", keys.Capabilities{Key: keys.NewSet(evdev.KEY_A, evdev.KEY_B, evdev.KEY_C), Rel: keys.NewSet()})

	_, target, err := NewResolver(reg).Resolve("m(b, k(a))")
	require.NoError(t, err)
	assert.Equal(t, "full", target, "registration order breaks the tie")
}

func TestResolve_NoDeviceFallsBackAnnotated(t *testing.T) {
	reg := NewRegistry()
	reg.Register(Keyboard, keys.Capabilities{Key: keys.NewSet(evdev.KEY_A), Rel: keys.NewSet()})

	symbol, target, err := NewResolver(reg).Resolve("z")
	require.NoError(t, err)
	assert.Equal(t, Keyboard, target)
	assert.Equal(t, "z"+BrokenAnnotation, symbol)
}

func TestResolve_UnknownSymbolErrors(t *testing.T) {
	_, _, err := defaultResolver().Resolve("no_such_key")
	assert.ErrorIs(t, err, keys.ErrUnknownSymbol)
}

func TestResolve_MalformedMacroErrors(t *testing.T) {
	_, _, err := defaultResolver().Resolve("frob(a)")
	assert.Error(t, err)
}
