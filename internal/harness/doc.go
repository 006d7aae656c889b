// Package harness provides conformance testing for the as_method expansion.
//
// The harness feeds scenario items through the real tree-sitter parser and
// the expansion pipeline, then checks the outcome against the scenario's
// expect clause and assertions.
//
// # Scenario Format
//
// Scenarios are defined in YAML files with the following structure:
//
//	name: scenario_name
//	description: "What this scenario validates"
//	attr: ""                # attribute argument text, usually empty
//	item: |
//	  fn push<T>(v: &mut Vec<T>, x: T) { v.push(x) }
//	config:                 # optional, same keys as asmethod.yaml
//	  type_param_prefix: GEN
//	expect:
//	  outcome: error        # "expansion" (default) or "error"
//	  code: E202
//	  message: "expected at least one parameter"
//	  line: 1
//	  column: 11
//	assertions:
//	  - type: output_contains
//	    unit: impl
//	    text: "impl<T> push<T> for &mut Vec<T>"
//	  - type: method_args
//	    count: 1
//
// # Assertion Types
//
//   - output_contains: the output (or one unit of it) contains text
//   - output_excludes: the output (or one unit of it) does not contain text
//   - generated_params: number of promoted type parameters on the function
//   - method_args: number of arguments of the trait method after self
//   - receiver_type: printed type the impl is written for
//   - no_existentials: the receiver type has no `impl Trait` left
//   - deterministic: a second run with a fresh parser prints the same bytes
//
// # Usage
//
//	scenario, err := harness.LoadScenario("testdata/scenarios/push.yaml")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	result, err := harness.Run(ctx, scenario)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	if !result.Pass {
//	    for _, msg := range result.Errors {
//	        fmt.Println(msg)
//	    }
//	}
//
// In tests, RunWithGolden additionally compares the printed output against
// testdata/golden/{name}.golden.
package harness
