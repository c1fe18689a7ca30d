package driver

import (
	"fmt"
	"log/slog"
	"sort"

	"github.com/circuitlab/logicsim/circuit"
	"github.com/circuitlab/logicsim/engine"
	"github.com/circuitlab/logicsim/flatten"
	"github.com/circuitlab/logicsim/mesh"
)

// Result pairs a test's name with the outcome its run produced.
type Result struct {
	Name    string
	Outcome Outcome
}

// RunTest drives a fresh engine over t.Mesh for up to t.Limit ticks.
func RunTest(t *mesh.Test) Outcome {
	return run(t, false)
}

// run is RunTest's body, with an optional per-tick display echo so
// RunSuite's --test-display mode shares the exact same tick-budget loop
// instead of a parallel copy.
func run(t *mesh.Test, echoDisplay bool) Outcome {
	eng := engine.New(t.Mesh)

	for cycle := 1; cycle <= t.Limit; cycle++ {
		eng.Tick()

		if echoDisplay {
			if lines, any := eng.ShowDisplay(); any {
				for _, line := range lines {
					slog.Info("Display", "test", t.Name, "cycle", cycle, "line", line)
				}
			}
		}

		// Assertions are checked before completion: a tick that both
		// settles completion and mismatches an assertion is a failing
		// tick, not a passing one.
		for i, a := range t.Assertions {
			if !eng.AreSet(a.Condition, true) {
				continue
			}
			got := eng.GetValues(a.Actual)
			if !boolsEqual(got, a.Expected) {
				return Fail(cycle, i, a.SourceLine, got, a.Expected)
			}
		}

		if eng.AreSet(t.Completion, true) {
			return Pass(cycle)
		}
	}

	return Timeout(t.Limit)
}

func boolsEqual(a, b []bool) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// RunSuite flattens and runs every test in root whose name matches glob, in
// sorted name order for reproducible reporting. When echoDisplay is set,
// every show_display line an engine produces mid-run is logged through
// log/slog as the test executes, the same structured-logging idiom
// core/emu.go uses for its own flow tracing. It reports whether every
// matched test passed.
func RunSuite(root *circuit.Root, glob string, echoDisplay bool) (bool, []Result, error) {
	tests, err := flatten.FlattenTests(root)
	if err != nil {
		return false, nil, fmt.Errorf("driver: %w", err)
	}

	names := make([]string, 0, len(tests))
	for name := range tests {
		if matchName(glob, name) {
			names = append(names, name)
		}
	}
	sort.Strings(names)

	results := make([]Result, 0, len(names))
	allPass := true
	for _, name := range names {
		outcome := run(tests[name], echoDisplay)
		if outcome.Kind != Passed {
			allPass = false
		}
		results = append(results, Result{Name: name, Outcome: outcome})
	}
	return allPass, results, nil
}
