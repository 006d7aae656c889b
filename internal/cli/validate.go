package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/roach88/asmethod/internal/config"
)

// ValidationError is one configuration problem.
type ValidationError struct {
	Path    string `json:"path"`
	Code    string `json:"code"`
	Message string `json:"message"`
}

// ValidationResult holds validation results.
type ValidationResult struct {
	Valid  bool              `json:"valid"`
	Source string            `json:"source,omitempty"` // empty when defaults apply
	Config *config.Config    `json:"config,omitempty"`
	Errors []ValidationError `json:"errors,omitempty"`
}

// NewValidateCommand creates the validate command.
func NewValidateCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "validate [config-file]",
		Short: "Validate the asmethod configuration",
		Long: `Validate an asmethod.cue or asmethod.yaml file against the configuration
schema and print the effective settings.

Without an argument the file named by --config is used, or the first of
asmethod.cue, asmethod.yaml and asmethod.yml in the working directory.`,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			path := rootOpts.Config
			if len(args) == 1 {
				path = args[0]
			}
			return runValidate(rootOpts, path, cmd)
		},
	}

	return cmd
}

func runValidate(opts *RootOptions, path string, cmd *cobra.Command) error {
	formatter := &OutputFormatter{
		Format:    opts.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(),
		Verbose:   opts.Verbose,
	}

	if path != "" {
		if _, err := os.Stat(path); err != nil {
			return outputValidateError(formatter, ErrCodeNotFound, fmt.Sprintf("config file not found: %s", path), nil)
		}
	}

	wd, err := os.Getwd()
	if err != nil {
		wd = "."
	}
	formatter.VerboseLog("Searching %s for %v", wd, config.FileNames)

	cfg, err := config.Load(path, wd)
	if err != nil {
		verr := ValidationError{Path: path, Code: ErrCodeConfig, Message: err.Error()}
		var cerr *config.Error
		if errors.As(err, &cerr) {
			verr.Path = cerr.Path
			verr.Message = cerr.Message
		}
		return outputValidationErrors(formatter, []ValidationError{verr})
	}

	return outputValidateSuccess(formatter, cfg)
}

// outputValidateSuccess outputs successful validation results.
func outputValidateSuccess(formatter *OutputFormatter, cfg *config.Config) error {
	if formatter.Format == "json" {
		result := ValidationResult{Valid: true, Source: cfg.Source, Config: cfg}
		return formatter.Success(result)
	}

	source := cfg.Source
	if source == "" {
		source = "defaults"
	}
	fmt.Fprintf(formatter.Writer, "✓ Config valid (%s)\n", source)
	fmt.Fprintf(formatter.Writer, "  attribute:         %s\n", cfg.Attribute)
	fmt.Fprintf(formatter.Writer, "  type_param_prefix: %s\n", cfg.TypeParamPrefix)
	fmt.Fprintf(formatter.Writer, "  indent_width:      %d\n", cfg.IndentWidth)
	fmt.Fprintf(formatter.Writer, "  allow_lint:        %t\n", cfg.AllowLint)
	fmt.Fprintf(formatter.Writer, "  extensions:        %v\n", cfg.Extensions)
	return nil
}

// outputValidateError outputs a single command-level error.
func outputValidateError(formatter *OutputFormatter, code, message string, details interface{}) error {
	_ = formatter.Error(code, message, details)
	return NewExitError(ExitCommandError, fmt.Sprintf("%s: %s", code, message))
}

// outputValidationErrors outputs schema violations.
func outputValidationErrors(formatter *OutputFormatter, errs []ValidationError) error {
	if formatter.Format == "json" {
		response := CLIResponse{
			Status: "error",
			Data:   ValidationResult{Valid: false, Errors: errs},
			Error: &CLIError{
				Code:    errs[0].Code,
				Message: errs[0].Message,
			},
		}

		encoder := json.NewEncoder(formatter.Writer)
		encoder.SetIndent("", "  ")
		if err := encoder.Encode(response); err != nil {
			return err
		}

		return NewExitError(ExitFailure, fmt.Sprintf("validation failed with %d error(s)", len(errs)))
	}

	fmt.Fprintln(formatter.Writer, "✗ Validation failed")
	fmt.Fprintln(formatter.Writer)

	for _, err := range errs {
		if err.Path != "" {
			fmt.Fprintln(formatter.Writer, err.Path)
		}
		fmt.Fprintf(formatter.Writer, "  %s: %s\n\n", err.Code, err.Message)
	}

	return NewExitError(ExitFailure, fmt.Sprintf("validation failed with %d error(s)", len(errs)))
}
