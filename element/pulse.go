package element

import "fmt"

func init() {
	register("PULSE", func(params map[string]int, nInputs int) (Kind, error) {
		dir := intParam(params, "dir", 1)
		if dir != 0 && dir != 1 {
			return nil, fmt.Errorf("PULSE: dir must be 0 or 1, got %d", dir)
		}
		if nInputs != 1 {
			return nil, fmt.Errorf("PULSE: expects exactly 1 input, got %d", nInputs)
		}
		return &pulse{rising: dir == 1}, nil
	})
}

// pulse emits a single true cycle on the selected edge (rising if dir=1,
// falling if dir=0) of its one input.
type pulse struct {
	rising bool
	prev   bool
}

func (e *pulse) OutputCount() int { return 1 }

func (e *pulse) Update(outputs []bool, inputs []bool) {
	cur := inputs[0]
	edge := false
	if e.rising {
		edge = cur && !e.prev
	} else {
		edge = !cur && e.prev
	}
	outputs[0] = edge
	e.prev = cur
}

func (e *pulse) Clone() Kind {
	cp := *e
	return &cp
}
