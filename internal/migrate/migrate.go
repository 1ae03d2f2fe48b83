// Package migrate brings old configuration layouts and schemas up to the
// current release, exactly once per outdated aspect.
//
// The engine runs unconditionally at application startup, before anything
// else touches the configuration tree. Safety rests on two properties:
// every step is gated by the schema version stored in config.json, and
// every per-file transform is idempotent, so a crash mid-step followed by
// a restart re-runs the step without damage.
//
// Steps live in a fixed, ordered table of (threshold, action) pairs. New
// thresholds are appended at the end as the application evolves; that
// ordered list is the entire extensibility contract. A step may assume all
// earlier steps already ran and never needs to know about later ones.
package migrate

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/evmap/evmap/internal/config"
	"github.com/evmap/evmap/internal/uinputs"
)

// step is one version-gated migration. It runs only when the stored
// version is below the threshold.
type step struct {
	threshold Version
	name      string
	run       func(*Runner) error
}

// steps is the migration table, in strictly ascending threshold order.
// Forward-only: there is no downgrade path.
var steps = []step{
	{Version{0, 4, 0}, "layout", (*Runner).migrateLayout},
	{Version{1, 2, 2}, "mapping-keys", (*Runner).migrateMappingKeys},
	{Version{1, 3, 0}, "config-relocation", (*Runner).relocateConfigDir},
	{Version{1, 4, 0}, "targets", (*Runner).migrateTargets},
}

// Runner executes the migration table against one configuration tree.
type Runner struct {
	paths    config.Paths
	registry *uinputs.Registry
	resolver *uinputs.Resolver
	store    *VersionStore
}

// NewRunner creates a Runner. The registry is an explicit dependency; the
// targets step prepares it before resolving anything.
func NewRunner(paths config.Paths, registry *uinputs.Registry) *Runner {
	return &Runner{
		paths:    paths,
		registry: registry,
		resolver: uinputs.NewResolver(registry),
		store:    NewVersionStore(paths),
	}
}

// Store exposes the version store, mainly for inspection commands.
func (r *Runner) Store() *VersionStore {
	return r.store
}

// Run reads the stored version once, runs every step whose threshold
// exceeds it in table order, then stamps the config with the current
// application version. Step failures abort the run; per-file and per-entry
// problems inside a step are logged and skipped instead.
func (r *Runner) Run(ctx context.Context) error {
	token := uuid.Must(uuid.NewV7()).String()
	log := slog.With("run", token)

	stored := r.store.Read()
	log.Info("checking migrations", "stored", stored, "current", Current)

	for _, s := range steps {
		if !stored.Less(s.threshold) {
			continue
		}
		if err := ctx.Err(); err != nil {
			return err
		}
		log.Info("running migration step", "step", s.name, "threshold", s.threshold)
		if err := s.run(r); err != nil {
			return fmt.Errorf("migration step %q: %w", s.name, err)
		}
	}

	if stored.Less(Current) {
		if err := r.store.Write(Current); err != nil {
			return fmt.Errorf("stamping version: %w", err)
		}
	}

	log.Info("migrations done")
	return nil
}
