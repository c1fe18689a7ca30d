package element

import "fmt"

func init() {
	register("MUX", func(params map[string]int, nInputs int) (Kind, error) {
		bits := intParam(params, "bits", 1)
		bussize := intParam(params, "bussize", 1)
		if bits < 1 || bits > 10 {
			return nil, fmt.Errorf("MUX: bits must be in [1,10], got %d", bits)
		}
		if bussize < 1 {
			return nil, fmt.Errorf("MUX: bussize must be >= 1, got %d", bussize)
		}
		ways := 1 << uint(bits)
		want := 1 + bits + ways*bussize
		if nInputs != want {
			return nil, fmt.Errorf("MUX{%d,%d}: expects %d inputs, got %d", bits, bussize, want, nInputs)
		}
		return &mux{bits: bits, bussize: bussize}, nil
	})
}

// mux selects one of 2^bits data slices of width bussize, driven by an
// LSB-first selector, and OR-merges it into the outputs when enabled.
type mux struct {
	bits    int
	bussize int
}

func (e *mux) OutputCount() int { return e.bussize }

func (e *mux) Update(outputs []bool, inputs []bool) {
	if !inputs[0] {
		return
	}
	sel := 0
	for i := 0; i < e.bits; i++ {
		if inputs[1+i] {
			sel |= 1 << uint(i)
		}
	}
	base := 1 + e.bits + sel*e.bussize
	for i := 0; i < e.bussize; i++ {
		outputs[i] = outputs[i] || inputs[base+i]
	}
}

func (e *mux) Clone() Kind {
	cp := *e
	return &cp
}
