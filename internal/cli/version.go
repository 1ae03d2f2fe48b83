package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/evmap/evmap/internal/migrate"
)

// VersionResult reports the config format versions relevant to this build.
type VersionResult struct {
	Current string `json:"current"`
	Stored  string `json:"stored"`
}

func (r VersionResult) String() string {
	return fmt.Sprintf("config format %s (stored: %s)", r.Current, r.Stored)
}

// NewVersionCommand creates the version command.
func NewVersionCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "version",
		Short: "Show the config format version",
		Long: `Show the config format version this build writes and the version
currently stored in config.json. A stored version below the current one
means "evmap migrate" has pending steps.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runVersion(rootOpts, cmd)
		},
	}
	return cmd
}

func runVersion(opts *RootOptions, cmd *cobra.Command) error {
	formatter := &OutputFormatter{Format: opts.Format, Writer: cmd.OutOrStdout()}

	paths, err := opts.Paths()
	if err != nil {
		return WrapExitError(ExitCommandError, "resolving config dir", err)
	}

	stored := migrate.NewVersionStore(paths).Read()
	return formatter.Success(VersionResult{
		Current: migrate.Current.String(),
		Stored:  stored.String(),
	})
}
