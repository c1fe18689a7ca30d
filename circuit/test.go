package circuit

import "fmt"

// Assertion is one per-tick check a test harness runs: when Condition is
// true (all of its nodes set), Expected must match the live value of Actual
// or the test fails. SourceLine is carried through purely for diagnostics,
// echoed back in a Fail outcome.
type Assertion struct {
	Condition  []int
	Actual     []int
	Expected   []bool
	SourceLine int
}

// Test wraps a unit (conventionally named "!TEST:<name>") that drives and
// observes a design under test: it supplies stimulus through its own
// elements/sub-unit instantiation of the unit under test, and is itself
// flattened just like any other unit.
type Test struct {
	Name string
	Unit *Unit

	// Limit bounds how many ticks the driver runs before declaring Timeout.
	Limit int

	// Completion names the node set that must be entirely true for the test
	// to Pass.
	Completion []int

	Assertions []Assertion
}

// NewTest starts a test named name, wrapping the given driver unit.
func NewTest(name string, unit *Unit, limit int) (*Test, error) {
	if limit < 1 {
		return nil, fmt.Errorf("circuit: test %q limit must be >= 1, got %d", name, limit)
	}
	return &Test{Name: name, Unit: unit, Limit: limit}, nil
}

// SetCompletion declares the node set checked for the Pass condition.
func (t *Test) SetCompletion(nodes []int) {
	t.Completion = append([]int(nil), nodes...)
}

// AppendAssertion records one conditional check.
func (t *Test) AppendAssertion(condition, actual []int, expected []bool, sourceLine int) error {
	if len(actual) != len(expected) {
		return fmt.Errorf("circuit: test %q assertion actual/expected width mismatch: %d vs %d",
			t.Name, len(actual), len(expected))
	}
	t.Assertions = append(t.Assertions, Assertion{
		Condition:  append([]int(nil), condition...),
		Actual:     append([]int(nil), actual...),
		Expected:   append([]bool(nil), expected...),
		SourceLine: sourceLine,
	})
	return nil
}
