package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

// CheckDiagnostic is one failed item in check output.
type CheckDiagnostic struct {
	Path    string `json:"path"`
	Item    string `json:"item,omitempty"`
	Line    int    `json:"line"`
	Column  int    `json:"column"`
	Code    string `json:"code"`
	Message string `json:"message"`
}

// CheckResult is the JSON payload of a clean check.
type CheckResult struct {
	Files int `json:"files"`
	Items int `json:"items"`
}

// NewCheckCommand creates the check command.
func NewCheckCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "check <path>...",
		Short: "Report items that cannot be expanded",
		Long: `Run the expansion over the given files or directories without writing
anything, and report every #[as_method] item that would expand to a
compile_error! instead of a trait and impl.`,
		Args:          cobra.MinimumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCheck(rootOpts, args, cmd)
		},
	}

	return cmd
}

func runCheck(opts *RootOptions, paths []string, cmd *cobra.Command) error {
	formatter := &OutputFormatter{
		Format:    opts.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(),
		Verbose:   opts.Verbose,
	}

	reports, err := processPaths(cmd, opts, paths)
	if err != nil {
		return reportLoadError(formatter, err)
	}

	var diags []CheckDiagnostic
	items := 0
	for _, r := range reports {
		items += len(r.Items)
		for _, item := range r.Items {
			formatter.VerboseLog("Checked %s in %s", item.Name, r.Path)
			if !item.Failed() {
				continue
			}
			diags = append(diags, CheckDiagnostic{
				Path:    r.Path,
				Item:    item.Name,
				Line:    item.Pos.Line,
				Column:  item.Pos.Column,
				Code:    item.Code,
				Message: item.Message,
			})
		}
	}

	if len(diags) > 0 {
		return outputCheckFailures(formatter, reports, diags)
	}

	if formatter.Format == "json" {
		return formatter.Success(CheckResult{Files: len(reports), Items: items})
	}
	fmt.Fprintf(formatter.Writer, "✓ %d item(s) in %d file(s) expand cleanly\n", items, len(reports))
	return nil
}

func outputCheckFailures(formatter *OutputFormatter, reports []*FileReport, diags []CheckDiagnostic) error {
	msg := fmt.Sprintf("%d item(s) failed to expand", len(diags))

	if formatter.Format == "json" {
		if err := formatter.Error(diags[0].Code, msg, diags); err != nil {
			return err
		}
		return NewExitError(ExitFailure, msg)
	}

	for _, r := range reports {
		for _, item := range r.Items {
			if item.Failed() {
				fmt.Fprintln(formatter.Writer, item.diagnostic())
			}
		}
	}
	fmt.Fprintf(formatter.Writer, "\n✗ %s\n", msg)
	return NewExitError(ExitFailure, msg)
}
