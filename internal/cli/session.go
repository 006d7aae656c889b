package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/roach88/asmethod/internal/config"
	"github.com/roach88/asmethod/internal/expand"
	"github.com/roach88/asmethod/internal/rustparse"
	"github.com/roach88/asmethod/internal/syntax"
)

// ItemReport is the outcome of expanding one annotated item.
type ItemReport struct {
	Name         string         `json:"name,omitempty"`
	Pos          syntax.Pos     `json:"pos"`
	ExpansionID  string         `json:"expansion_id"`
	OutputDigest string         `json:"output_digest"`
	Code         string         `json:"code,omitempty"`
	Message      string         `json:"message,omitempty"`
	Signature    map[string]any `json:"-"` // as parsed
	Rewritten    map[string]any `json:"-"` // after existential promotion

	err error
}

// Failed reports whether the item expanded to a diagnostic.
func (r *ItemReport) Failed() bool { return r.err != nil }

// FileReport is the outcome of expanding one source file.
type FileReport struct {
	Path   string        `json:"path"`
	Rel    string        `json:"-"`
	Items  []*ItemReport `json:"items"`
	Output []byte        `json:"-"`
}

// Failed counts the items that expanded to a diagnostic.
func (r *FileReport) Failed() int {
	n := 0
	for _, item := range r.Items {
		if item.Failed() {
			n++
		}
	}
	return n
}

// session runs the expansion over files one at a time with a single
// tree-sitter parser.
type session struct {
	opts   expand.Options
	parser *rustparse.Parser
	logger *slog.Logger
}

func newSession(cfg *config.Config, logger *slog.Logger) *session {
	return &session{
		opts:   cfg.ExpandOptions(),
		parser: rustparse.NewParser(cfg.Attribute),
		logger: logger,
	}
}

func (s *session) Close() {
	s.parser.Close()
}

// processFile expands every annotated item in f. Item failures are recorded
// in the report and replaced by diagnostics in the output; only a file that
// cannot be parsed at all returns an error.
func (s *session) processFile(ctx context.Context, f SourceFile) (*FileReport, error) {
	parsed, err := s.parser.ParseFile(ctx, f.Path, f.Src)
	if err != nil {
		var perr *rustparse.ParseError
		if errors.As(err, &perr) {
			return nil, &LoadError{Code: ErrCodeParseFailed, Message: perr.Reason(), Pos: perr.Pos}
		}
		return nil, &LoadError{Code: ErrCodeParseFailed, Message: err.Error()}
	}

	report := &FileReport{Path: f.Path, Rel: f.Rel}
	rendered := make(map[*rustparse.Annotated]string, len(parsed.Items))
	for _, item := range parsed.Items {
		itemReport, out := s.expandItem(f, item)
		report.Items = append(report.Items, itemReport)
		rendered[item] = out
	}
	report.Output = parsed.Rewrite(func(a *rustparse.Annotated) string { return rendered[a] })

	s.logger.Info("expanded file", "path", f.Path, "items", len(report.Items), "failed", report.Failed())
	return report, nil
}

func (s *session) expandItem(f SourceFile, item *rustparse.Annotated) (*ItemReport, string) {
	report := &ItemReport{Name: item.Name, Pos: item.AttrPos}

	id, err := syntax.ExpansionID(item.Attr, string(f.Src[item.Start:item.End]))
	if err != nil {
		s.logger.Debug("expansion id unavailable", "path", f.Path, "error", err)
	}
	report.ExpansionID = id

	if item.Fn != nil {
		report.Signature = syntax.Describe(item.Fn)
	}

	res := expand.Run(expand.Invocation{
		Attr:    item.Attr,
		AttrPos: item.AttrPos,
		Item:    item.Fn,
		ItemErr: item.Err,
	}, s.opts)
	out := res.Render(s.opts.Printer(item.Indent))
	report.OutputDigest = syntax.OutputDigest(out)

	if res.Err != nil {
		report.err = res.Err
		report.Code = expand.ErrorCode(res.Err)
		report.Message = expand.Message(res.Err)
		if pos := expand.Position(res.Err); pos.IsValid() {
			report.Pos = pos
		}
		s.logger.Warn("expansion failed", "path", f.Path, "item", item.Name, "pos", report.Pos.String(), "error", report.Message)
		return report, out
	}

	report.Rewritten = syntax.Describe(res.Expansion.Function)
	s.logger.Debug("expanded item", "path", f.Path, "item", item.Name, "expansion_id", id)
	return report, out
}

// diagnostic formats a failed item the way compilers report errors.
func (r *ItemReport) diagnostic() string {
	return fmt.Sprintf("%s: error[%s]: %s", r.Pos, r.Code, r.Message)
}

// newLogger builds the command logger: text on w, debug level when verbose.
func newLogger(opts *RootOptions, w io.Writer) *slog.Logger {
	logLevel := slog.LevelInfo
	if opts.Verbose {
		logLevel = slog.LevelDebug
	}
	handler := slog.NewTextHandler(w, &slog.HandlerOptions{
		Level: logLevel,
	})
	return slog.New(handler)
}
