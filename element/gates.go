package element

import "fmt"

// gateOp is the associative binary operator a gate kind reduces over.
type gateOp struct {
	identity bool
	combine  func(acc, bit bool) bool
	negate   bool
}

var gateOps = map[string]gateOp{
	"AND":  {identity: true, combine: func(a, b bool) bool { return a && b }},
	"OR":   {identity: false, combine: func(a, b bool) bool { return a || b }},
	"XOR":  {identity: false, combine: func(a, b bool) bool { return a != b }},
	"NAND": {identity: true, combine: func(a, b bool) bool { return a && b }, negate: true},
	"NOR":  {identity: false, combine: func(a, b bool) bool { return a || b }, negate: true},
	"NXOR": {identity: false, combine: func(a, b bool) bool { return a != b }, negate: true},
}

func init() {
	for name, op := range gateOps {
		register(name, makeGateFactory(op))
		if name == "NXOR" {
			register("XNOR", makeGateFactory(op))
		}
	}
}

// gate is the shared implementation behind AND/OR/XOR/NAND/NOR/NXOR.
type gate struct {
	op       gateOp
	fixed    int
	bussize  int
	buscount int
}

func makeGateFactory(op gateOp) Factory {
	return func(params map[string]int, nInputs int) (Kind, error) {
		bussize := intParam(params, "bussize", 1)
		buscount := intParam(params, "buscount", 1)
		if bussize < 1 {
			return nil, fmt.Errorf("gate: bussize must be >= 1, got %d", bussize)
		}
		if buscount < 1 {
			return nil, fmt.Errorf("gate: buscount must be >= 1, got %d", buscount)
		}
		busTotal := bussize * buscount
		if nInputs < busTotal {
			return nil, fmt.Errorf("gate: nInputs=%d smaller than bussize*buscount=%d", nInputs, busTotal)
		}
		return &gate{
			op:       op,
			fixed:    nInputs - busTotal,
			bussize:  bussize,
			buscount: buscount,
		}, nil
	}
}

func (g *gate) OutputCount() int { return g.bussize }

func (g *gate) Update(outputs []bool, inputs []bool) {
	for i := 0; i < g.bussize; i++ {
		acc := g.op.identity
		for k := 0; k < g.fixed; k++ {
			acc = g.op.combine(acc, inputs[k])
		}
		for j := 0; j < g.buscount; j++ {
			bit := inputs[g.fixed+j*g.bussize+i]
			acc = g.op.combine(acc, bit)
		}
		if g.op.negate {
			acc = !acc
		}
		outputs[i] = acc
	}
}

func (g *gate) Clone() Kind {
	cp := *g
	return &cp
}
