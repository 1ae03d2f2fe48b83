package preset

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func TestAll_EnumeratesGroups(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "device 1", "gaming.json"), "{}")
	writeFile(t, filepath.Join(dir, "device 1", "typing.json"), "{}")
	writeFile(t, filepath.Join(dir, "device 2", "default.json"), "{}")
	writeFile(t, filepath.Join(dir, "device 2", "notes.txt"), "ignored")
	writeFile(t, filepath.Join(dir, "stray.json"), "{}") // not in a group dir

	presets, err := All(dir)
	require.NoError(t, err)

	assert.Equal(t, []string{
		filepath.Join(dir, "device 1", "gaming.json"),
		filepath.Join(dir, "device 1", "typing.json"),
		filepath.Join(dir, "device 2", "default.json"),
	}, presets)
}

func TestAll_MissingDir(t *testing.T) {
	presets, err := All(filepath.Join(t.TempDir(), "does-not-exist"))
	require.NoError(t, err)
	assert.Empty(t, presets)
}

func TestLoad_Mapping(t *testing.T) {
	path := filepath.Join(t.TempDir(), "p.json")
	writeFile(t, path, `{"mapping": {"1,5,1": "a"}, "extra": true}`)

	p, err := Load(path)
	require.NoError(t, err)

	mapping, ok := p.Mapping()
	require.True(t, ok)
	assert.Equal(t, []string{"1,5,1"}, mapping.Keys())
}

func TestLoad_NoMapping(t *testing.T) {
	path := filepath.Join(t.TempDir(), "p.json")
	writeFile(t, path, `{"something": "else"}`)

	p, err := Load(path)
	require.NoError(t, err)

	_, ok := p.Mapping()
	assert.False(t, ok)
}

func TestLoad_Malformed(t *testing.T) {
	path := filepath.Join(t.TempDir(), "p.json")
	writeFile(t, path, `{"mapping": `)

	_, err := Load(path)
	assert.Error(t, err)
}

func TestSave_RewritesPretty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "p.json")
	writeFile(t, path, `{"mapping":{"1,5,1":"a"}}`)

	p, err := Load(path)
	require.NoError(t, err)
	require.NoError(t, p.Save())

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	want := `{
    "mapping": {
        "1,5,1": "a"
    }
}
`
	assert.Equal(t, want, string(data))
}
