package element

import "fmt"

func init() {
	register("DELAY", func(params map[string]int, nInputs int) (Kind, error) {
		k := intParam(params, "k", 1)
		if k < 1 {
			return nil, fmt.Errorf("DELAY: k must be >= 1, got %d", k)
		}
		// k=1 is pass-through: the input OR-merges into the output on the
		// same tick, no buffering at all. k>1 needs only k-1 slots, since
		// the k-th tick of delay is already accounted for by the one-tick
		// lag every element's inputs carry from the engine's curstate read.
		buf := make([][]bool, k-1)
		for i := range buf {
			buf[i] = make([]bool, nInputs)
		}
		return &delay{n: nInputs, k: k, buf: buf}, nil
	})
}

// delay is a per-wire ring buffer of depth k-1. Each tick it emits the value
// written k-1 ticks ago, then records this tick's input in its place. k=1
// skips the buffer entirely and OR-merges the input straight through.
type delay struct {
	n    int
	k    int
	buf  [][]bool
	head int
}

func (e *delay) OutputCount() int { return e.n }

func (e *delay) Update(outputs []bool, inputs []bool) {
	if e.k == 1 {
		for i, v := range inputs {
			if v {
				outputs[i] = true
			}
		}
		return
	}

	slot := e.buf[e.head]
	copy(outputs, slot)
	copy(slot, inputs)
	e.head = (e.head + 1) % len(e.buf)
}

func (e *delay) Clone() Kind {
	buf := make([][]bool, len(e.buf))
	for i, row := range e.buf {
		buf[i] = append([]bool(nil), row...)
	}
	return &delay{n: e.n, k: e.k, buf: buf, head: e.head}
}
