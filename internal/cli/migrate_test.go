package cli

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/evmap/evmap/internal/config"
)

// seedLegacyTree writes a pre-migration tree under base: a config file
// without a version and one preset with a two-component mapping key and a
// bare symbol value.
func seedLegacyTree(t *testing.T, base string) config.Paths {
	t.Helper()
	paths := config.PathsAt(base)

	require.NoError(t, os.MkdirAll(paths.GroupDir("device-1"), 0o755))
	require.NoError(t, os.WriteFile(paths.ConfigFile(),
		[]byte("{\n    \"autoload\": {}\n}\n"), 0o644))
	require.NoError(t, os.WriteFile(paths.PresetFile("device-1", "default"),
		[]byte("{\n    \"mapping\": {\n        \"1,30\": \"a\"\n    }\n}\n"), 0o644))
	return paths
}

func TestMigrateCommand(t *testing.T) {
	tmpDir := t.TempDir()
	paths := seedLegacyTree(t, tmpDir)

	buf := &bytes.Buffer{}
	rootOpts := &RootOptions{Format: "text", ConfigDir: tmpDir}
	cmd := NewMigrateCommand(rootOpts)
	cmd.SetOut(buf)
	cmd.SetArgs([]string{})

	require.NoError(t, cmd.Execute())
	assert.Equal(t, "migrated 0.0.0 -> 1.6.0\n", buf.String())

	configData, err := os.ReadFile(paths.ConfigFile())
	require.NoError(t, err)
	assert.Contains(t, string(configData), `"version": "1.6.0"`)

	presetData, err := os.ReadFile(paths.PresetFile("device-1", "default"))
	require.NoError(t, err)
	assert.Contains(t, string(presetData), `"1,30,1"`)
	assert.Contains(t, string(presetData), `"keyboard"`)
}

func TestMigrateCommandJSON(t *testing.T) {
	tmpDir := t.TempDir()
	seedLegacyTree(t, tmpDir)

	buf := &bytes.Buffer{}
	rootOpts := &RootOptions{Format: "json", ConfigDir: tmpDir}
	cmd := NewMigrateCommand(rootOpts)
	cmd.SetOut(buf)
	cmd.SetArgs([]string{})

	require.NoError(t, cmd.Execute())

	var resp Response
	require.NoError(t, json.Unmarshal(buf.Bytes(), &resp))
	assert.Equal(t, "ok", resp.Status)

	data, ok := resp.Data.(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "0.0.0", data["from"])
	assert.Equal(t, "1.6.0", data["to"])
}

func TestMigrateCommandFreshInstall(t *testing.T) {
	tmpDir := t.TempDir()

	buf := &bytes.Buffer{}
	rootOpts := &RootOptions{Format: "text", ConfigDir: tmpDir}
	cmd := NewMigrateCommand(rootOpts)
	cmd.SetOut(buf)
	cmd.SetArgs([]string{})

	require.NoError(t, cmd.Execute())

	// No config file means nothing to migrate and nothing to stamp.
	paths := config.PathsAt(tmpDir)
	_, err := os.Stat(paths.ConfigFile())
	assert.True(t, os.IsNotExist(err))
}

func TestMigrateCommandAlreadyCurrent(t *testing.T) {
	tmpDir := t.TempDir()
	paths := config.PathsAt(tmpDir)

	require.NoError(t, os.MkdirAll(paths.Root, 0o755))
	original := "{\n    \"version\": \"1.6.0\",\n    \"autoload\": {}\n}\n"
	require.NoError(t, os.WriteFile(paths.ConfigFile(), []byte(original), 0o644))

	buf := &bytes.Buffer{}
	rootOpts := &RootOptions{Format: "text", ConfigDir: tmpDir}
	cmd := NewMigrateCommand(rootOpts)
	cmd.SetOut(buf)
	cmd.SetArgs([]string{})

	require.NoError(t, cmd.Execute())
	assert.Equal(t, "migrated 1.6.0 -> 1.6.0\n", buf.String())

	after, err := os.ReadFile(paths.ConfigFile())
	require.NoError(t, err)
	assert.Equal(t, original, string(after))
}

func TestMigrateCommandRelocatesLegacyRoot(t *testing.T) {
	tmpDir := t.TempDir()
	legacy := filepath.Join(tmpDir, config.LegacyDirName)

	require.NoError(t, os.MkdirAll(legacy, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(legacy, config.ConfigName),
		[]byte("{\n    \"autoload\": {}\n}\n"), 0o644))

	buf := &bytes.Buffer{}
	rootOpts := &RootOptions{Format: "text", ConfigDir: tmpDir}
	cmd := NewMigrateCommand(rootOpts)
	cmd.SetOut(buf)
	cmd.SetArgs([]string{})

	require.NoError(t, cmd.Execute())

	paths := config.PathsAt(tmpDir)
	_, err := os.Stat(legacy)
	assert.True(t, os.IsNotExist(err))

	configData, err := os.ReadFile(paths.ConfigFile())
	require.NoError(t, err)
	assert.Contains(t, string(configData), `"version": "1.6.0"`)
}

func TestMigrateCommandRejectsArgs(t *testing.T) {
	rootOpts := &RootOptions{Format: "text"}
	cmd := NewMigrateCommand(rootOpts)
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{"extra"})

	err := cmd.Execute()
	require.Error(t, err)
}
