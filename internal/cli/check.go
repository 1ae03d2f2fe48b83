package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/evmap/evmap/internal/config"
	"github.com/evmap/evmap/internal/preset"
	"github.com/evmap/evmap/internal/schema"
)

// CheckIssue is one validation finding for a single file.
type CheckIssue struct {
	File    string `json:"file"`
	Message string `json:"message"`
}

// CheckResult is the payload reported by the check command.
type CheckResult struct {
	Checked int          `json:"checked"`
	Issues  []CheckIssue `json:"issues,omitempty"`
}

func (r CheckResult) String() string {
	if len(r.Issues) == 0 {
		return fmt.Sprintf("checked %d files, no issues", r.Checked)
	}
	var b strings.Builder
	fmt.Fprintf(&b, "checked %d files, %d with issues", r.Checked, len(r.Issues))
	for _, issue := range r.Issues {
		fmt.Fprintf(&b, "\n  %s: %s", issue.File, issue.Message)
	}
	return b.String()
}

// NewCheckCommand creates the check command.
func NewCheckCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "check",
		Short: "Validate the configuration tree against the current schema",
		Long: `Validate config.json and every preset file against the current
on-disk format. Files that predate the current format are reported as
issues; run "evmap migrate" to bring them up to date.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCheck(rootOpts, cmd)
		},
	}
	return cmd
}

func runCheck(opts *RootOptions, cmd *cobra.Command) error {
	formatter := &OutputFormatter{Format: opts.Format, Writer: cmd.OutOrStdout()}

	paths, err := opts.Paths()
	if err != nil {
		return WrapExitError(ExitCommandError, "resolving config dir", err)
	}

	result, err := checkTree(paths)
	if err != nil {
		return WrapExitError(ExitCommandError, "checking config tree", err)
	}

	if len(result.Issues) > 0 {
		message := fmt.Sprintf("%d of %d files failed validation", len(result.Issues), result.Checked)
		if err := formatter.Failure(message, result); err != nil {
			return err
		}
		return NewExitError(ExitFailure, message)
	}
	return formatter.Success(result)
}

func checkTree(paths config.Paths) (CheckResult, error) {
	var result CheckResult

	data, err := os.ReadFile(paths.ConfigFile())
	switch {
	case os.IsNotExist(err):
		// Nothing written yet, nothing to validate.
	case err != nil:
		return result, err
	default:
		result.Checked++
		if err := schema.ValidateConfig(data); err != nil {
			result.Issues = append(result.Issues, CheckIssue{
				File:    config.ConfigName,
				Message: err.Error(),
			})
		}
	}

	files, err := preset.All(paths.PresetDir())
	if err != nil {
		return result, err
	}
	for _, file := range files {
		result.Checked++
		data, err := os.ReadFile(file)
		if err != nil {
			return result, err
		}
		rel, relErr := filepath.Rel(paths.Root, file)
		if relErr != nil {
			rel = file
		}
		if err := schema.ValidatePreset(data); err != nil {
			result.Issues = append(result.Issues, CheckIssue{
				File:    filepath.ToSlash(rel),
				Message: err.Error(),
			})
		}
	}
	return result, nil
}
