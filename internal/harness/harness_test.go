package harness

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRun_Scenarios(t *testing.T) {
	scenarios, err := LoadScenarioDir("testdata/scenarios")
	require.NoError(t, err)

	for _, scenario := range scenarios {
		t.Run(scenario.Name, func(t *testing.T) {
			result, err := Run(context.Background(), scenario)
			require.NoError(t, err)
			assert.True(t, result.Pass, "errors: %v\noutput:\n%s", result.Errors, result.Output)
		})
	}
}

func TestRun_Push(t *testing.T) {
	scenario := &Scenario{
		Name:        "push",
		Description: "push",
		Item:        "fn push<T>(v: &mut Vec<T>, x: T) { v.push(x) }",
	}

	result, err := Run(context.Background(), scenario)
	require.NoError(t, err)
	require.True(t, result.Pass, result.Errors)

	assert.False(t, result.Failed())
	assert.NotEmpty(t, result.ExpansionID)
	assert.Len(t, result.OutputDigest, 64)
	assert.Equal(t, "fn push<T>(v: &mut Vec<T>, x: T) { v.push(x) }\n", result.Units[UnitFunction])
	assert.Equal(t, "#[allow(non_camel_case_types)]\ntrait push<T> {\n    fn push(self, x1: T);\n}\n", result.Units[UnitTrait])
	assert.Contains(t, result.Units[UnitImpl], "impl<T> push<T> for &mut Vec<T> {\n")
	assert.Equal(t,
		result.Units[UnitFunction]+"\n"+result.Units[UnitTrait]+"\n"+result.Units[UnitImpl],
		result.Output)
}

func TestRun_ExpansionIDStable(t *testing.T) {
	scenario := &Scenario{Name: "id", Description: "id", Item: "fn id(v: u8) -> u8 { v }"}

	first, err := Run(context.Background(), scenario)
	require.NoError(t, err)
	second, err := Run(context.Background(), scenario)
	require.NoError(t, err)

	assert.Equal(t, first.ExpansionID, second.ExpansionID)
	assert.Equal(t, first.OutputDigest, second.OutputDigest)

	other, err := Run(context.Background(), &Scenario{Name: "id", Description: "id", Item: "fn id(v: u16) -> u16 { v }"})
	require.NoError(t, err)
	assert.NotEqual(t, first.ExpansionID, other.ExpansionID)
}

func TestRun_UnexpectedError(t *testing.T) {
	scenario := &Scenario{
		Name:        "unexpected",
		Description: "expects an expansion but the item has no parameters",
		Item:        "fn nothing() {}",
	}

	result, err := Run(context.Background(), scenario)
	require.NoError(t, err)

	assert.False(t, result.Pass)
	assert.True(t, result.Failed())
	assert.Equal(t, "E202", result.Code)
	assert.Equal(t, "expected at least one parameter", result.Message)
	assert.Empty(t, result.Units)
	require.Len(t, result.Errors, 1)
	assert.Contains(t, result.Errors[0], "expected expansion, got error[E202]")
}

func TestRun_ExpectMismatch(t *testing.T) {
	scenario := &Scenario{
		Name:        "mismatch",
		Description: "wrong code, message and column",
		Item:        "fn nothing() {}",
		Expect: &ExpectClause{
			Outcome: OutcomeError,
			Code:    "E201",
			Message: "unexpected attr(s)",
			Line:    1,
			Column:  1,
		},
	}

	result, err := Run(context.Background(), scenario)
	require.NoError(t, err)

	assert.False(t, result.Pass)
	assert.Len(t, result.Errors, 3)
	assert.Contains(t, result.Errors[0], "error code: expected E201, got E202")
	assert.Contains(t, result.Errors[1], "error message")
	assert.Contains(t, result.Errors[2], "error column: expected 1, got 11")
}

func TestRun_ExpectedErrorButExpanded(t *testing.T) {
	scenario := &Scenario{
		Name:        "no_error",
		Description: "expects an error from a valid item",
		Item:        "fn id(v: u8) -> u8 { v }",
		Expect:      &ExpectClause{Outcome: OutcomeError, Code: "E202"},
	}

	result, err := Run(context.Background(), scenario)
	require.NoError(t, err)

	assert.False(t, result.Pass)
	require.Len(t, result.Errors, 1)
	assert.Contains(t, result.Errors[0], "expected error[E202], got expansion")
}

func TestRun_AssertionFailuresReported(t *testing.T) {
	two := 2
	scenario := &Scenario{
		Name:        "failing",
		Description: "assertions that do not hold",
		Item:        "fn id(v: u8) -> u8 { v }",
		Assertions: []Assertion{
			{Type: AssertMethodArgs, Count: &two},
			{Type: AssertReceiverType, Text: "u16"},
			{Type: AssertOutputContains, Unit: UnitTrait, Text: "impl"},
		},
	}

	result, err := Run(context.Background(), scenario)
	require.NoError(t, err)

	assert.False(t, result.Pass)
	require.Len(t, result.Errors, 3)
	assert.Contains(t, result.Errors[0], "assertion 0 (method_args)")
	assert.Contains(t, result.Errors[1], "Actual: u8")
	assert.Contains(t, result.Errors[2], `"impl" in trait unit`)
}

func TestRun_InvalidConfig(t *testing.T) {
	scenario := &Scenario{
		Name:        "bad_config",
		Description: "prefix violates the schema",
		Item:        "fn id(v: u8) {}",
		Config:      map[string]any{"type_param_prefix": "lower"},
		Assertions:  []Assertion{{Type: AssertDeterministic}},
	}

	_, err := Run(context.Background(), scenario)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "scenario bad_config")
}

func TestRun_UnknownConfigField(t *testing.T) {
	scenario := &Scenario{
		Name:        "unknown_config",
		Description: "closed schema",
		Item:        "fn id(v: u8) {}",
		Config:      map[string]any{"prefix": "GEN"},
		Assertions:  []Assertion{{Type: AssertDeterministic}},
	}

	_, err := Run(context.Background(), scenario)
	require.Error(t, err)
}

func TestRun_CustomAttribute(t *testing.T) {
	scenario := &Scenario{
		Name:        "custom_attribute",
		Description: "attribute name does not matter for a bare item",
		Item:        "fn id(v: u8) {}",
		Config:      map[string]any{"attribute": "method", "indent_width": 2},
	}

	result, err := Run(context.Background(), scenario)
	require.NoError(t, err)
	require.True(t, result.Pass, result.Errors)
	assert.Contains(t, result.Units[UnitImpl], "\n  fn id(self) {\n    id(self)\n  }\n")
}
