package harness

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/roach88/asmethod/internal/config"
	"github.com/roach88/asmethod/internal/expand"
	"github.com/roach88/asmethod/internal/rustparse"
	"github.com/roach88/asmethod/internal/syntax"
)

// Harness is the scenario execution engine. It owns one tree-sitter parser
// and is not safe for concurrent use.
type Harness struct {
	cfg    *config.Config
	opts   expand.Options
	parser *rustparse.Parser
	logger *slog.Logger
}

// New builds a harness for the scenario's configuration overrides.
func New(scenario *Scenario) (*Harness, error) {
	cfg, err := scenarioConfig(scenario)
	if err != nil {
		return nil, err
	}
	return &Harness{
		cfg:    cfg,
		opts:   cfg.ExpandOptions(),
		parser: rustparse.NewParser(cfg.Attribute),
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)), // Suppress logs in tests
	}, nil
}

// Close releases the parser.
func (h *Harness) Close() {
	h.parser.Close()
}

// Run executes a scenario and returns the result.
//
// Execution flow:
// 1. Parse the item with a fresh tree-sitter parser
// 2. Run the expansion and print it
// 3. Check the expect clause
// 4. Evaluate assertions
//
// The returned error reports harness failures (bad config, hashing); a
// scenario that does not hold yields a Result with Pass false.
func Run(ctx context.Context, scenario *Scenario) (*Result, error) {
	h, err := New(scenario)
	if err != nil {
		return nil, err
	}
	defer h.Close()

	result, err := h.execute(ctx, scenario)
	if err != nil {
		return nil, err
	}

	checkExpect(scenario.Expect, result)

	actx := &AssertionContext{
		Ctx:    ctx,
		Prefix: h.opts.TypeParamPrefix,
		Rerun: func(ctx context.Context) (string, error) {
			again, err := New(scenario)
			if err != nil {
				return "", err
			}
			defer again.Close()
			res, err := again.execute(ctx, scenario)
			if err != nil {
				return "", err
			}
			return res.Output, nil
		},
	}
	for _, errMsg := range EvaluateAssertions(result, scenario.Assertions, actx) {
		result.AddError(errMsg)
	}

	h.logger.Debug("scenario finished", "name", scenario.Name, "pass", result.Pass, "errors", len(result.Errors))
	return result, nil
}

// execute runs the expansion once and fills in everything but Pass/Errors.
func (h *Harness) execute(ctx context.Context, scenario *Scenario) (*Result, error) {
	id, err := syntax.ExpansionID(scenario.Attr, scenario.Item)
	if err != nil {
		return nil, fmt.Errorf("scenario %s: %w", scenario.Name, err)
	}

	inv := expand.Invocation{Attr: scenario.Attr}
	if strings.TrimSpace(scenario.Attr) == "" {
		inv.Item, inv.ItemErr = h.parser.ParseItem(ctx, []byte(scenario.Item))
	}

	res := expand.Run(inv, h.opts)
	printer := h.opts.Printer("")

	result := NewResult()
	result.ExpansionID = id
	result.Output = res.Render(printer)
	result.OutputDigest = syntax.OutputDigest(result.Output)

	if res.Err != nil {
		result.Err = res.Err
		result.Code = expand.ErrorCode(res.Err)
		result.Message = expand.Message(res.Err)
		result.Pos = expand.Position(res.Err)
		h.logger.Debug("expansion failed", "name", scenario.Name, "code", result.Code, "error", result.Message)
		return result, nil
	}

	result.Expansion = res.Expansion
	result.Units[UnitFunction] = printer.Function(res.Expansion.Function)
	result.Units[UnitTrait] = printer.Trait(res.Expansion.Trait)
	result.Units[UnitImpl] = printer.Impl(res.Expansion.Impl)
	h.logger.Debug("expanded", "name", scenario.Name, "expansion_id", id)
	return result, nil
}

// checkExpect compares the outcome against the expect clause. A nil clause
// expects a successful expansion.
func checkExpect(expect *ExpectClause, result *Result) {
	if expect == nil || expect.Outcome == OutcomeExpansion {
		if result.Failed() {
			result.AddError(fmt.Sprintf("expected expansion, got error[%s]: %s", result.Code, result.Message))
		}
		return
	}

	if !result.Failed() {
		result.AddError(fmt.Sprintf("expected error[%s], got expansion", expect.Code))
		return
	}
	if result.Code != expect.Code {
		result.AddError(fmt.Sprintf("error code: expected %s, got %s", expect.Code, result.Code))
	}
	if expect.Message != "" && result.Message != expect.Message {
		result.AddError(fmt.Sprintf("error message: expected %q, got %q", expect.Message, result.Message))
	}
	if expect.Line != 0 && result.Pos.Line != expect.Line {
		result.AddError(fmt.Sprintf("error line: expected %d, got %d", expect.Line, result.Pos.Line))
	}
	if expect.Column != 0 && result.Pos.Column != expect.Column {
		result.AddError(fmt.Sprintf("error column: expected %d, got %d", expect.Column, result.Pos.Column))
	}
}

// scenarioConfig validates the scenario's overrides against the config
// schema. No overrides yields the defaults.
func scenarioConfig(scenario *Scenario) (*config.Config, error) {
	if len(scenario.Config) == 0 {
		return config.Default(), nil
	}
	data, err := yaml.Marshal(scenario.Config)
	if err != nil {
		return nil, fmt.Errorf("scenario %s: encoding config: %w", scenario.Name, err)
	}
	cfg, err := config.Parse(scenario.Name+".yaml", data)
	if err != nil {
		return nil, fmt.Errorf("scenario %s: %w", scenario.Name, err)
	}
	return cfg, nil
}
