package element

import "fmt"

func init() {
	register("LATCH", func(params map[string]int, nInputs int) (Kind, error) {
		size := intParam(params, "size", 1)
		if size < 1 {
			return nil, fmt.Errorf("LATCH: size must be >= 1, got %d", size)
		}
		want := 2 + size
		if nInputs != want {
			return nil, fmt.Errorf("LATCH{%d}: expects %d inputs (enable, reset, data[%d]), got %d", size, want, size, nInputs)
		}
		return &latch{size: size, state: make([]bool, size)}, nil
	})
}

// latch is an enable/reset gated OR-accumulator over size data lines.
type latch struct {
	size  int
	state []bool
}

func (e *latch) OutputCount() int { return 1 + e.size }

func (e *latch) Update(outputs []bool, inputs []bool) {
	enable, reset := inputs[0], inputs[1]
	data := inputs[2:]

	if !enable {
		return
	}

	outputs[0] = true
	if reset {
		for i := range e.state {
			e.state[i] = false
		}
	} else {
		for i := range e.state {
			e.state[i] = e.state[i] || data[i]
		}
	}
	copy(outputs[1:], e.state)
}

func (e *latch) Clone() Kind {
	return &latch{size: e.size, state: append([]bool(nil), e.state...)}
}
