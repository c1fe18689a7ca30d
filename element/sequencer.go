package element

import "fmt"

func init() {
	register("SEQUENCER", func(params map[string]int, nInputs int) (Kind, error) {
		count := intParam(params, "count", 1)
		if count < 1 {
			return nil, fmt.Errorf("SEQUENCER: count must be >= 1, got %d", count)
		}
		if nInputs != 3 {
			return nil, fmt.Errorf("SEQUENCER: expects 3 inputs (enable, reset, next), got %d", nInputs)
		}
		return &sequencer{count: count}, nil
	})
}

// sequencer is a one-hot modulo counter: reset forces position 0, next
// advances by one (wrapping), otherwise the position holds.
type sequencer struct {
	count int
	pos   int
}

func (e *sequencer) OutputCount() int { return e.count }

func (e *sequencer) Update(outputs []bool, inputs []bool) {
	enable, reset, next := inputs[0], inputs[1], inputs[2]

	if enable {
		switch {
		case reset:
			e.pos = 0
		case next:
			e.pos = (e.pos + 1) % e.count
		}
		outputs[e.pos] = true
	}
}

func (e *sequencer) Clone() Kind {
	cp := *e
	return &cp
}
