package element

import "fmt"

func init() {
	register("HOLD", func(params map[string]int, nInputs int) (Kind, error) {
		t := intParam(params, "t", 1)
		if t < 1 {
			return nil, fmt.Errorf("HOLD: t must be >= 1, got %d", t)
		}
		return &hold{t: t, counters: make([]int, nInputs)}, nil
	})
}

// hold stretches each input pulse into a run of t high cycles.
type hold struct {
	t        int
	counters []int
}

func (e *hold) OutputCount() int { return len(e.counters) }

func (e *hold) Update(outputs []bool, inputs []bool) {
	for i := range e.counters {
		if inputs[i] {
			e.counters[i] = e.t
		}
		if e.counters[i] > 0 {
			outputs[i] = true
			e.counters[i]--
		}
	}
}

func (e *hold) Clone() Kind {
	return &hold{t: e.t, counters: append([]int(nil), e.counters...)}
}
