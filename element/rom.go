package element

import "fmt"

func init() {
	register("ROM", func(params map[string]int, nInputs int) (Kind, error) {
		wordsize := intParam(params, "wordsize", 8)
		index, ok := params["index"]
		if !ok {
			return nil, fmt.Errorf("ROM: missing required parameter index")
		}
		if wordsize < 1 {
			return nil, fmt.Errorf("ROM: wordsize must be >= 1, got %d", wordsize)
		}
		if nInputs < 1 {
			return nil, fmt.Errorf("ROM: expects at least the enable input, got %d", nInputs)
		}
		return &rom{index: index, wordsize: wordsize, addrbits: nInputs - 1}, nil
	})
}

// rom reads words, big-endian addressed and LSB-first emitted, from a
// data table attached by Finalise after the owning unit is known.
type rom struct {
	index    int
	wordsize int
	addrbits int
	words    []uint64
}

func (e *rom) OutputCount() int { return e.wordsize }

// Finalise attaches this ROM's data table, looked up by index from the
// owning unit, the way the teacher resolves an opcode name to behavior
// lazily rather than at construction time.
func (e *rom) Finalise(owner RomSource) {
	e.words = owner.GetROM(e.index)
}

func (e *rom) Update(outputs []bool, inputs []bool) {
	if !inputs[0] {
		return
	}

	addr := 0
	for i := 0; i < e.addrbits; i++ {
		if inputs[1+i] {
			addr |= 1 << uint(e.addrbits-1-i)
		}
	}

	var word uint64
	if addr >= 0 && addr < len(e.words) {
		word = e.words[addr]
	}

	for i := 0; i < e.wordsize; i++ {
		outputs[i] = word&(1<<uint(i)) != 0
	}
}

func (e *rom) Clone() Kind {
	cp := *e
	cp.words = e.words
	return &cp
}
