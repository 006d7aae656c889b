package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/roach88/asmethod/internal/syntax"
)

// NewInspectCommand creates the inspect command.
func NewInspectCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "inspect <file>",
		Short: "Show parsed signatures and expansion digests",
		Long: `Print one canonical JSON object per #[as_method] item in a file: the
signature as parsed, the signature after impl Trait promotion, a stable
expansion ID and a digest of the emitted code.

Running inspect twice on the same file prints identical output, which makes
it suitable for checking that expansion is deterministic.`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInspect(rootOpts, args[0], cmd)
		},
	}

	return cmd
}

func runInspect(opts *RootOptions, path string, cmd *cobra.Command) error {
	formatter := &OutputFormatter{
		Format:    opts.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(),
		Verbose:   opts.Verbose,
	}

	reports, err := processPaths(cmd, opts, []string{path})
	if err != nil {
		return reportLoadError(formatter, err)
	}

	var entries []json.RawMessage
	var traceSrc []byte
	for _, r := range reports {
		traceSrc = append(traceSrc, r.Output...)
		for _, item := range r.Items {
			data, err := syntax.MarshalCanonical(inspectEntry(item))
			if err != nil {
				_ = formatter.Error(ErrCodeGeneric, fmt.Sprintf("encoding %s: %v", item.Name, err), nil)
				return WrapExitError(ExitCommandError, "encoding inspect output", err)
			}
			entries = append(entries, data)
		}
	}

	if formatter.Format == "json" {
		traceID, _ := syntax.ExpansionID("", string(traceSrc))
		if entries == nil {
			entries = []json.RawMessage{}
		}
		return formatter.SuccessWithTrace(entries, traceID)
	}

	for _, e := range entries {
		fmt.Fprintln(formatter.Writer, string(e))
	}
	return nil
}

// inspectEntry builds the canonical-JSON form of one item report.
func inspectEntry(item *ItemReport) map[string]any {
	entry := map[string]any{
		"name":          item.Name,
		"line":          item.Pos.Line,
		"column":        item.Pos.Column,
		"expansion_id":  item.ExpansionID,
		"output_digest": item.OutputDigest,
	}
	if item.Signature != nil {
		entry["signature"] = item.Signature
	}
	if item.Rewritten != nil {
		entry["rewritten"] = item.Rewritten
	}
	if item.Failed() {
		entry["error"] = map[string]any{"code": item.Code, "message": item.Message}
	}
	return entry
}
