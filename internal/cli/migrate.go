package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/evmap/evmap/internal/migrate"
	"github.com/evmap/evmap/internal/uinputs"
)

// MigrateResult is the payload reported after a migration run.
type MigrateResult struct {
	From string `json:"from"`
	To   string `json:"to"`
}

func (r MigrateResult) String() string {
	return fmt.Sprintf("migrated %s -> %s", r.From, r.To)
}

// NewMigrateCommand creates the migrate command.
func NewMigrateCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Bring the configuration tree up to the current schema",
		Long: `Run all pending schema migrations against the configuration tree.

Migration is safe to run unconditionally: every step is gated by the
version stored in config.json and runs at most once per installation.
The application runs this automatically at startup; the command exists
for repairing installations and for scripting.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runMigrate(rootOpts, cmd)
		},
	}
	return cmd
}

func runMigrate(opts *RootOptions, cmd *cobra.Command) error {
	formatter := &OutputFormatter{Format: opts.Format, Writer: cmd.OutOrStdout()}

	paths, err := opts.Paths()
	if err != nil {
		return WrapExitError(ExitCommandError, "resolving config dir", err)
	}

	registry := uinputs.NewRegistry()
	runner := migrate.NewRunner(paths, registry)
	from := runner.Store().Read()

	if err := runner.Run(cmd.Context()); err != nil {
		return WrapExitError(ExitCommandError, "migration failed", err)
	}

	return formatter.Success(MigrateResult{
		From: from.String(),
		To:   migrate.Current.String(),
	})
}
