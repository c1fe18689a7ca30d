package element

import "fmt"

func init() {
	register("JKFLIPFLOP", func(params map[string]int, nInputs int) (Kind, error) {
		if nInputs != 3 {
			return nil, fmt.Errorf("JKFLIPFLOP: expects 3 inputs (clk, J, K), got %d", nInputs)
		}
		return &jkFlipFlop{}, nil
	})
}

// jkFlipFlop implements the classic JK table on the falling edge of clk,
// driving both Q and its complement every tick.
type jkFlipFlop struct {
	q       bool
	prevClk bool
}

func (e *jkFlipFlop) OutputCount() int { return 2 }

func (e *jkFlipFlop) Update(outputs []bool, inputs []bool) {
	clk, j, k := inputs[0], inputs[1], inputs[2]
	fallingEdge := !clk && e.prevClk
	if fallingEdge {
		switch {
		case !j && !k: // hold
		case !j && k:
			e.q = false
		case j && !k:
			e.q = true
		default: // toggle
			e.q = !e.q
		}
	}
	e.prevClk = clk
	outputs[0] = e.q
	outputs[1] = !e.q
}

func (e *jkFlipFlop) Clone() Kind {
	cp := *e
	return &cp
}
