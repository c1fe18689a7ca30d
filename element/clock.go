package element

import "fmt"

func init() {
	register("CLOCK", func(params map[string]int, nInputs int) (Kind, error) {
		period := intParam(params, "period", 1)
		duty := intParam(params, "duty", 1)
		if period < 1 {
			return nil, fmt.Errorf("CLOCK: period must be >= 1, got %d", period)
		}
		if duty < 1 || duty >= period {
			return nil, fmt.Errorf("CLOCK: duty must satisfy 1 <= duty < period, got duty=%d period=%d", duty, period)
		}
		if nInputs != 1 {
			return nil, fmt.Errorf("CLOCK: expects 1 input (enable), got %d", nInputs)
		}
		return &clock{period: period, duty: duty}, nil
	})
}

// clock is a free-running modulo-period counter. Its internal counter
// advances every tick regardless of the enable input; enable only gates
// whether the computed waveform is driven onto the output (spec.md §9(ii):
// the documented period is used as the true modulus, with no off-by-one).
type clock struct {
	period  int
	duty    int
	counter int
}

func (e *clock) OutputCount() int { return 1 }

func (e *clock) Update(outputs []bool, inputs []bool) {
	high := e.counter < e.duty
	e.counter = (e.counter + 1) % e.period
	if inputs[0] {
		outputs[0] = high
	}
}

func (e *clock) Clone() Kind {
	cp := *e
	return &cp
}
