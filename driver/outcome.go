// Package driver runs a flattened mesh.Test to completion and reports a
// Pass, Fail or Timeout outcome. It never returns a Go error for a failed
// circuit: per the spec's error taxonomy, simulation does not fail, it
// produces outcomes.
package driver

import "fmt"

// OutcomeKind tags which of the three terminal states a test run reached.
type OutcomeKind string

const (
	Passed   OutcomeKind = "PASS"
	Failed   OutcomeKind = "FAIL"
	TimedOut OutcomeKind = "TIMEOUT"
)

// Outcome is the result of running one test harness to completion.
type Outcome struct {
	Kind OutcomeKind

	// Cycle is the tick on which the outcome was decided: the tick
	// completion went true for Pass, the tick the failing assertion was
	// checked for Fail, or the exhausted limit for Timeout.
	Cycle int

	// The following are only meaningful when Kind == Failed.
	AssertionIndex int
	SourceLine     int
	Got            []bool
	Want           []bool
}

// Pass reports a test that reached its completion condition on cycle.
func Pass(cycle int) Outcome {
	return Outcome{Kind: Passed, Cycle: cycle}
}

// Fail reports a test whose assertionIndex-th assertion mismatched on cycle.
func Fail(cycle, assertionIndex, sourceLine int, got, want []bool) Outcome {
	return Outcome{
		Kind:           Failed,
		Cycle:          cycle,
		AssertionIndex: assertionIndex,
		SourceLine:     sourceLine,
		Got:            append([]bool(nil), got...),
		Want:           append([]bool(nil), want...),
	}
}

// Timeout reports a test that exhausted its tick limit without completing.
func Timeout(limit int) Outcome {
	return Outcome{Kind: TimedOut, Cycle: limit}
}

// String renders the outcome the way a test report line prints it.
func (o Outcome) String() string {
	switch o.Kind {
	case Passed:
		return fmt.Sprintf("PASS(%d)", o.Cycle)
	case Failed:
		return fmt.Sprintf("FAIL(%d, assertion #%d, line %d): got %v want %v",
			o.Cycle, o.AssertionIndex, o.SourceLine, o.Got, o.Want)
	case TimedOut:
		return fmt.Sprintf("TIMEOUT(%d)", o.Cycle)
	default:
		return "UNKNOWN"
	}
}
