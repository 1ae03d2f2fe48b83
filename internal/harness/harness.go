package harness

import (
	"bytes"
	"context"
	"io/fs"
	"os"
	"path/filepath"
	"testing"

	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/evmap/evmap/internal/config"
	"github.com/evmap/evmap/internal/migrate"
	"github.com/evmap/evmap/internal/uinputs"
)

// Run materializes the scenario tree in a fresh temp dir, runs a full
// migration against it with the default device registry, and checks the
// scenario's existence expectations. It returns the base directory for
// further inspection.
func Run(t *testing.T, sc *Scenario) string {
	t.Helper()

	base := t.TempDir()
	for rel, content := range sc.Tree {
		path := filepath.Join(base, filepath.FromSlash(rel))
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	}

	paths := config.PathsAt(base)
	runner := migrate.NewRunner(paths, uinputs.NewRegistry())
	require.NoError(t, runner.Run(context.Background()), "scenario %s", sc.Name)

	for _, rel := range sc.Exists {
		assert.True(t, pathExists(filepath.Join(base, filepath.FromSlash(rel))),
			"scenario %s: expected %s to exist", sc.Name, rel)
	}
	for _, rel := range sc.Absent {
		assert.False(t, pathExists(filepath.Join(base, filepath.FromSlash(rel))),
			"scenario %s: expected %s to be absent", sc.Name, rel)
	}
	return base
}

func pathExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// SnapshotTree serializes every file under base into one deterministic
// byte stream: files in lexical path order, each prefixed by a header line
// and followed by a separating newline.
func SnapshotTree(t *testing.T, base string) []byte {
	t.Helper()

	var buf bytes.Buffer
	err := filepath.WalkDir(base, func(path string, d fs.DirEntry, err error) error {
		if err != nil || d.IsDir() {
			return err
		}
		rel, err := filepath.Rel(base, path)
		if err != nil {
			return err
		}
		data, err := os.ReadFile(path)
		if err != nil {
			return err
		}
		buf.WriteString("=== " + filepath.ToSlash(rel) + " ===\n")
		buf.Write(data)
		buf.WriteByte('\n')
		return nil
	})
	require.NoError(t, err)
	return buf.Bytes()
}

// AssertGolden compares the post-migration tree against the golden file
// named after the scenario. Regenerate goldens with:
//
//	go test ./internal/harness -update
func AssertGolden(t *testing.T, sc *Scenario, base string) {
	t.Helper()

	g := goldie.New(t,
		goldie.WithFixtureDir("testdata/golden"),
		goldie.WithNameSuffix(".golden"),
	)
	g.Assert(t, sc.Name, SnapshotTree(t, base))
}
