package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
)

// ExpandOptions holds flags for the expand command.
type ExpandOptions struct {
	*RootOptions
	Write  bool   // rewrite files in place
	Output string // directory for expanded files
}

// ExpandResult is the JSON payload of the expand command.
type ExpandResult struct {
	Files  []*FileReport `json:"files"`
	Items  int           `json:"items"`
	Failed int           `json:"failed"`
}

// NewExpandCommand creates the expand command.
func NewExpandCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &ExpandOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "expand <path>...",
		Short: "Expand #[as_method] functions",
		Long: `Expand every #[as_method] function in the given Rust files or directories.

By default the expanded sources are printed to stdout. Use --write to
replace the files in place, or --output to write them under a directory.
Items that cannot be expanded are replaced by a compile_error! invocation
and the command exits with status 1.

Example:
  asmethod expand src/lib.rs
  asmethod expand --write src/
  asmethod expand -o target/expanded src/`,
		Args:          cobra.MinimumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runExpand(opts, args, cmd)
		},
	}

	cmd.Flags().BoolVarP(&opts.Write, "write", "w", false, "write result to source files instead of stdout")
	cmd.Flags().StringVarP(&opts.Output, "output", "o", "", "write expanded files under this directory")

	return cmd
}

func runExpand(opts *ExpandOptions, paths []string, cmd *cobra.Command) error {
	formatter := &OutputFormatter{
		Format:    opts.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(),
		Verbose:   opts.Verbose,
	}

	if opts.Write && opts.Output != "" {
		_ = formatter.Error(ErrCodeGeneric, "--write and --output are mutually exclusive", nil)
		return NewExitError(ExitCommandError, "--write and --output are mutually exclusive")
	}

	reports, err := processPaths(cmd, opts.RootOptions, paths)
	if err != nil {
		return reportLoadError(formatter, err)
	}

	result := &ExpandResult{Files: reports}
	for _, r := range reports {
		result.Items += len(r.Items)
		result.Failed += r.Failed()

		dest := ""
		switch {
		case opts.Write:
			if len(r.Items) > 0 {
				dest = r.Path
			}
		case opts.Output != "":
			dest = filepath.Join(opts.Output, r.Rel)
		}
		if dest == "" {
			continue
		}
		if err := writeFile(dest, r.Output); err != nil {
			_ = formatter.Error(ErrCodeWriteFailed, fmt.Sprintf("writing %s: %v", dest, err), nil)
			return WrapExitError(ExitCommandError, "writing output", err)
		}
		formatter.VerboseLog("Wrote %s", dest)
	}

	if err := outputExpandResult(formatter, opts, result); err != nil {
		return err
	}

	if result.Failed > 0 {
		return NewExitError(ExitFailure, fmt.Sprintf("%d of %d item(s) failed to expand", result.Failed, result.Items))
	}
	return nil
}

func outputExpandResult(formatter *OutputFormatter, opts *ExpandOptions, result *ExpandResult) error {
	if formatter.Format == "json" {
		return formatter.Success(result)
	}

	for _, r := range result.Files {
		for _, item := range r.Items {
			if item.Failed() {
				fmt.Fprintln(formatter.GetErrWriter(), item.diagnostic())
			}
		}
	}

	if opts.Write || opts.Output != "" {
		fmt.Fprintf(formatter.Writer, "✓ Expanded %d item(s) in %d file(s)\n", result.Items-result.Failed, len(result.Files))
		return nil
	}

	multi := len(result.Files) > 1
	for _, r := range result.Files {
		if multi {
			fmt.Fprintf(formatter.Writer, "// ==> %s <==\n", r.Path)
		}
		if _, err := formatter.Writer.Write(r.Output); err != nil {
			return err
		}
	}
	return nil
}

func writeFile(path string, data []byte) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

// processPaths loads config and sources and expands every file.
func processPaths(cmd *cobra.Command, opts *RootOptions, paths []string) ([]*FileReport, error) {
	cfg, err := loadConfig(opts)
	if err != nil {
		return nil, err
	}
	files, err := LoadSources(paths, cfg)
	if err != nil {
		return nil, err
	}

	logger := newLogger(opts, cmd.ErrOrStderr())
	if cfg.Source != "" {
		logger.Debug("loaded config", "path", cfg.Source)
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	s := newSession(cfg, logger)
	defer s.Close()

	reports := make([]*FileReport, 0, len(files))
	for _, f := range files {
		report, err := s.processFile(ctx, f)
		if err != nil {
			return nil, err
		}
		reports = append(reports, report)
	}
	return reports, nil
}

// reportLoadError prints a load failure and converts it to an exit error.
func reportLoadError(formatter *OutputFormatter, err error) error {
	var loadErr *LoadError
	if errors.As(err, &loadErr) {
		msg := loadErr.Message
		if loadErr.Pos.IsValid() {
			msg = fmt.Sprintf("%s: %s", loadErr.Pos, loadErr.Message)
		}
		_ = formatter.Error(loadErr.Code, msg, nil)
		return WrapExitError(ExitCommandError, "loading sources", err)
	}
	_ = formatter.Error(ErrCodeGeneric, err.Error(), nil)
	return WrapExitError(ExitCommandError, "loading sources", err)
}
