package harness

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"gopkg.in/yaml.v3"
)

// Scenario defines one expansion conformance case.
type Scenario struct {
	// Name uniquely identifies this scenario and names its golden file.
	Name string `yaml:"name"`

	// Description explains what this scenario validates.
	Description string `yaml:"description"`

	// Attr is the attribute argument text. Anything but whitespace is
	// rejected by the expansion.
	Attr string `yaml:"attr,omitempty"`

	// Item is the source text of the annotated item, without the attribute.
	Item string `yaml:"item"`

	// Config overrides the project configuration. Keys and constraints are
	// those of asmethod.yaml.
	Config map[string]any `yaml:"config,omitempty"`

	// Expect states the outcome. Nil means a successful expansion.
	Expect *ExpectClause `yaml:"expect,omitempty"`

	// Assertions validate the printed output and the expansion units.
	Assertions []Assertion `yaml:"assertions,omitempty"`
}

// ExpectClause specifies the expected outcome of the expansion.
type ExpectClause struct {
	// Outcome is "expansion" or "error".
	Outcome string `yaml:"outcome"`

	// Code is the expected error code (E201, E202).
	Code string `yaml:"code,omitempty"`

	// Message is the expected error message, without position.
	Message string `yaml:"message,omitempty"`

	// Line and Column anchor the error. Zero skips the check.
	Line   int `yaml:"line,omitempty"`
	Column int `yaml:"column,omitempty"`
}

// Assertion validates one property of the result.
type Assertion struct {
	// Type is one of the Assert* constants.
	Type string `yaml:"type"`

	// Text is the substring (output_contains, output_excludes) or the
	// printed type (receiver_type).
	Text string `yaml:"text,omitempty"`

	// Unit narrows output_contains and output_excludes to "function",
	// "trait" or "impl". Empty means the whole output.
	Unit string `yaml:"unit,omitempty"`

	// Count is the expected number (generated_params, method_args).
	Count *int `yaml:"count,omitempty"`
}

// Outcome values.
const (
	OutcomeExpansion = "expansion"
	OutcomeError     = "error"
)

// Assertion type constants.
const (
	AssertOutputContains  = "output_contains"
	AssertOutputExcludes  = "output_excludes"
	AssertGeneratedParams = "generated_params"
	AssertMethodArgs      = "method_args"
	AssertReceiverType    = "receiver_type"
	AssertNoExistentials  = "no_existentials"
	AssertDeterministic   = "deterministic"
)

// Unit names accepted by Assertion.Unit.
const (
	UnitFunction = "function"
	UnitTrait    = "trait"
	UnitImpl     = "impl"
)

// LoadScenario reads and parses a scenario YAML file.
// Returns an error if the file doesn't exist, is malformed,
// contains unknown fields (typos), or is missing required fields.
func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read scenario file: %w", err)
	}
	return ParseScenario(data)
}

// ParseScenario decodes and validates scenario YAML.
func ParseScenario(data []byte) (*Scenario, error) {
	// Strict field validation catches typos like "assertion:" vs "assertions:"
	var scenario Scenario
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&scenario); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	if err := validateScenario(&scenario); err != nil {
		return nil, fmt.Errorf("invalid scenario: %w", err)
	}

	return &scenario, nil
}

// LoadScenarioDir loads every *.yaml scenario in dir, sorted by file name.
func LoadScenarioDir(dir string) ([]*Scenario, error) {
	paths, err := filepath.Glob(filepath.Join(dir, "*.yaml"))
	if err != nil {
		return nil, fmt.Errorf("failed to list scenarios: %w", err)
	}
	sort.Strings(paths)

	scenarios := make([]*Scenario, 0, len(paths))
	names := make(map[string]string, len(paths))
	for _, path := range paths {
		s, err := LoadScenario(path)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", path, err)
		}
		if prev, ok := names[s.Name]; ok {
			return nil, fmt.Errorf("%s: duplicate scenario name %q (also in %s)", path, s.Name, prev)
		}
		names[s.Name] = path
		scenarios = append(scenarios, s)
	}
	return scenarios, nil
}

// validateScenario checks that required fields are present and valid.
func validateScenario(s *Scenario) error {
	if s.Name == "" {
		return fmt.Errorf("name is required")
	}

	if s.Description == "" {
		return fmt.Errorf("description is required")
	}

	if s.Item == "" {
		return fmt.Errorf("item is required")
	}

	if s.Expect != nil {
		switch s.Expect.Outcome {
		case OutcomeExpansion:
			if s.Expect.Code != "" || s.Expect.Message != "" {
				return fmt.Errorf("expect: code and message only apply to outcome %q", OutcomeError)
			}
		case OutcomeError:
			if s.Expect.Code == "" {
				return fmt.Errorf("expect: code is required for outcome %q", OutcomeError)
			}
		case "":
			return fmt.Errorf("expect: outcome is required")
		default:
			return fmt.Errorf("expect: unknown outcome %q", s.Expect.Outcome)
		}
		if s.Expect.Line < 0 || s.Expect.Column < 0 {
			return fmt.Errorf("expect: line and column must be positive")
		}
	}

	if len(s.Assertions) == 0 && s.Expect == nil {
		return fmt.Errorf("assertions list is required when expect is absent")
	}

	for i, assertion := range s.Assertions {
		if err := validateAssertion(i, &assertion); err != nil {
			return err
		}
	}

	return nil
}

// validateAssertion validates a single assertion based on its type.
func validateAssertion(index int, a *Assertion) error {
	if a.Type == "" {
		return fmt.Errorf("assertions[%d]: type is required", index)
	}

	switch a.Type {
	case AssertOutputContains, AssertOutputExcludes:
		if a.Text == "" {
			return fmt.Errorf("assertions[%d]: text is required for %s", index, a.Type)
		}
		switch a.Unit {
		case "", UnitFunction, UnitTrait, UnitImpl:
		default:
			return fmt.Errorf("assertions[%d]: unknown unit %q", index, a.Unit)
		}

	case AssertGeneratedParams, AssertMethodArgs:
		if a.Count == nil {
			return fmt.Errorf("assertions[%d]: count is required for %s", index, a.Type)
		}
		if *a.Count < 0 {
			return fmt.Errorf("assertions[%d]: count must be non-negative", index)
		}

	case AssertReceiverType:
		if a.Text == "" {
			return fmt.Errorf("assertions[%d]: text is required for %s", index, a.Type)
		}

	case AssertNoExistentials, AssertDeterministic:

	default:
		return fmt.Errorf("assertions[%d]: unknown assertion type %q", index, a.Type)
	}

	return nil
}
