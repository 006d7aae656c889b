package harness

import (
	"context"
	"fmt"
	"strings"

	"github.com/roach88/asmethod/internal/syntax"
)

// AssertionError is returned when an assertion fails.
// It includes the printed output to help debug the failure.
type AssertionError struct {
	Type     string // Assertion type for categorization
	Expected string // Human-readable expected outcome
	Actual   string // Human-readable actual outcome
	Output   string // Printed output for context
}

// Error implements the error interface.
func (e *AssertionError) Error() string {
	var buf strings.Builder

	fmt.Fprintf(&buf, "Assertion failed: %s\n", e.Type)
	fmt.Fprintf(&buf, "  Expected: %s\n", e.Expected)
	fmt.Fprintf(&buf, "  Actual: %s\n", e.Actual)

	if e.Output != "" {
		fmt.Fprintf(&buf, "\nOutput:\n")
		for _, line := range strings.Split(strings.TrimRight(e.Output, "\n"), "\n") {
			fmt.Fprintf(&buf, "  | %s\n", line)
		}
	}

	return buf.String()
}

// AssertionContext provides what assertions need beyond the result.
type AssertionContext struct {
	Ctx    context.Context
	Prefix string // generated type parameter prefix

	// Rerun executes the scenario again from scratch and returns the output.
	Rerun func(ctx context.Context) (string, error)
}

// EvaluateAssertions runs all assertions and returns error messages for
// those that fail.
func EvaluateAssertions(result *Result, assertions []Assertion, actx *AssertionContext) []string {
	var errs []string
	for i, a := range assertions {
		if err := evaluateAssertion(result, a, actx); err != nil {
			errs = append(errs, fmt.Sprintf("assertion %d (%s): %s", i, a.Type, err.Error()))
		}
	}
	return errs
}

func evaluateAssertion(result *Result, a Assertion, actx *AssertionContext) error {
	switch a.Type {
	case AssertOutputContains:
		return assertOutputContains(result, a)
	case AssertOutputExcludes:
		return assertOutputExcludes(result, a)
	case AssertGeneratedParams:
		return assertGeneratedParams(result, a, actx)
	case AssertMethodArgs:
		return assertMethodArgs(result, a)
	case AssertReceiverType:
		return assertReceiverType(result, a)
	case AssertNoExistentials:
		return assertNoExistentials(result)
	case AssertDeterministic:
		return assertDeterministic(result, actx)
	default:
		return fmt.Errorf("unknown assertion type: %s", a.Type)
	}
}

// outputFor returns the text an output assertion inspects.
func outputFor(result *Result, unit string) (string, error) {
	if unit == "" {
		return result.Output, nil
	}
	text, ok := result.Units[unit]
	if !ok {
		return "", &AssertionError{
			Type:     "unit",
			Expected: fmt.Sprintf("%s unit present", unit),
			Actual:   "expansion failed",
			Output:   result.Output,
		}
	}
	return text, nil
}

func assertOutputContains(result *Result, a Assertion) error {
	text, err := outputFor(result, a.Unit)
	if err != nil {
		return err
	}
	if !strings.Contains(text, a.Text) {
		return &AssertionError{
			Type:     AssertOutputContains,
			Expected: fmt.Sprintf("%q in %s", a.Text, unitName(a.Unit)),
			Actual:   "not found",
			Output:   text,
		}
	}
	return nil
}

func assertOutputExcludes(result *Result, a Assertion) error {
	text, err := outputFor(result, a.Unit)
	if err != nil {
		return err
	}
	if strings.Contains(text, a.Text) {
		return &AssertionError{
			Type:     AssertOutputExcludes,
			Expected: fmt.Sprintf("no %q in %s", a.Text, unitName(a.Unit)),
			Actual:   "found",
			Output:   text,
		}
	}
	return nil
}

func unitName(unit string) string {
	if unit == "" {
		return "output"
	}
	return unit + " unit"
}

// expansionFor fails assertions that need the structured expansion when the
// scenario produced a diagnostic.
func expansionFor(result *Result, typ string) (*syntax.Expansion, error) {
	if result.Expansion == nil {
		return nil, &AssertionError{
			Type:     typ,
			Expected: "successful expansion",
			Actual:   fmt.Sprintf("error[%s]: %s", result.Code, result.Message),
			Output:   result.Output,
		}
	}
	return result.Expansion, nil
}

func assertGeneratedParams(result *Result, a Assertion, actx *AssertionContext) error {
	exp, err := expansionFor(result, AssertGeneratedParams)
	if err != nil {
		return err
	}

	var names []string
	for _, gp := range exp.Function.Generics.Params {
		if gp.Kind == syntax.GenericTypeParam && strings.HasPrefix(gp.Name, actx.Prefix) {
			names = append(names, gp.Name)
		}
	}
	if len(names) != *a.Count {
		return &AssertionError{
			Type:     AssertGeneratedParams,
			Expected: fmt.Sprintf("%d generated type parameter(s)", *a.Count),
			Actual:   fmt.Sprintf("%d %v", len(names), names),
			Output:   result.Output,
		}
	}
	return nil
}

func assertMethodArgs(result *Result, a Assertion) error {
	exp, err := expansionFor(result, AssertMethodArgs)
	if err != nil {
		return err
	}

	got := len(exp.Trait.Methods[0].Params)
	if got != *a.Count {
		return &AssertionError{
			Type:     AssertMethodArgs,
			Expected: fmt.Sprintf("%d argument(s) after self", *a.Count),
			Actual:   fmt.Sprintf("%d", got),
			Output:   result.Output,
		}
	}
	return nil
}

func assertReceiverType(result *Result, a Assertion) error {
	exp, err := expansionFor(result, AssertReceiverType)
	if err != nil {
		return err
	}

	got := syntax.FormatType(exp.Impl.SelfType)
	if got != a.Text {
		return &AssertionError{
			Type:     AssertReceiverType,
			Expected: a.Text,
			Actual:   got,
			Output:   result.Output,
		}
	}
	return nil
}

func assertNoExistentials(result *Result) error {
	exp, err := expansionFor(result, AssertNoExistentials)
	if err != nil {
		return err
	}

	n := syntax.Count(exp.Impl.SelfType, func(t syntax.Type) bool {
		_, ok := t.(*syntax.ImplTraitType)
		return ok
	})
	if n > 0 {
		return &AssertionError{
			Type:     AssertNoExistentials,
			Expected: "no impl Trait in receiver type",
			Actual:   fmt.Sprintf("%d left in %s", n, syntax.FormatType(exp.Impl.SelfType)),
			Output:   result.Output,
		}
	}
	return nil
}

func assertDeterministic(result *Result, actx *AssertionContext) error {
	if actx == nil || actx.Rerun == nil {
		return fmt.Errorf("deterministic assertion requires a rerun function")
	}
	ctx := actx.Ctx
	if ctx == nil {
		ctx = context.Background()
	}

	again, err := actx.Rerun(ctx)
	if err != nil {
		return fmt.Errorf("rerun failed: %w", err)
	}
	if again != result.Output {
		return &AssertionError{
			Type:     AssertDeterministic,
			Expected: fmt.Sprintf("identical output (digest %s)", result.OutputDigest),
			Actual:   fmt.Sprintf("digest %s", syntax.OutputDigest(again)),
			Output:   again,
		}
	}
	return nil
}
