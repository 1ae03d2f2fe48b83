package jsondoc

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMarshal_Format(t *testing.T) {
	obj, err := Parse([]byte(`{"mapping": {"1,5,1": ["a", "keyboard"]}, "version": "1.6.0"}`))
	require.NoError(t, err)

	data, err := obj.Marshal()
	require.NoError(t, err)

	want := `{
    "mapping": {
        "1,5,1": [
            "a",
            "keyboard"
        ]
    },
    "version": "1.6.0"
}
`
	assert.Equal(t, want, string(data))
}

func TestMarshal_EmptyContainers(t *testing.T) {
	obj, err := Parse([]byte(`{"mapping": {}, "list": []}`))
	require.NoError(t, err)

	data, err := obj.Marshal()
	require.NoError(t, err)

	want := `{
    "mapping": {},
    "list": []
}
`
	assert.Equal(t, want, string(data))
}

func TestMarshal_RoundTripStable(t *testing.T) {
	src := `{
    "version": "1.2.0",
    "autoload": {
        "device 1": "preset",
        "enabled": true
    },
    "macros": {
        "keystroke_sleep_ms": 10
    },
    "nothing": null
}
`
	obj, err := Parse([]byte(src))
	require.NoError(t, err)

	first, err := obj.Marshal()
	require.NoError(t, err)
	assert.Equal(t, src, string(first), "untouched document must round-trip byte-identical")

	reparsed, err := Parse(first)
	require.NoError(t, err)
	second, err := reparsed.Marshal()
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestMarshal_NumberFidelity(t *testing.T) {
	// A large integer would lose precision through float64.
	obj, err := Parse([]byte(`{"big": 9007199254740993, "small": 0.25}`))
	require.NoError(t, err)

	data, err := obj.Marshal()
	require.NoError(t, err)

	assert.Contains(t, string(data), "9007199254740993")
	assert.Contains(t, string(data), "0.25")
}
