package element

import (
	"fmt"
	"log/slog"
)

func init() {
	register("MEMORY_DRAM", func(params map[string]int, nInputs int) (Kind, error) {
		wordsize := intParam(params, "wordsize", 1)
		addrbits := intParam(params, "addrbits", 1)
		if wordsize < 1 || wordsize > 64 {
			return nil, fmt.Errorf("MEMORY_DRAM: wordsize must be in [1,64], got %d", wordsize)
		}
		if addrbits < 1 || addrbits > 20 {
			return nil, fmt.Errorf("MEMORY_DRAM: addrbits must be in [1,20], got %d", addrbits)
		}
		want := 1 + addrbits + 1 + 2*wordsize
		if nInputs != want {
			return nil, fmt.Errorf("MEMORY_DRAM{%d,%d}: expects %d inputs, got %d", wordsize, addrbits, want, nInputs)
		}
		if wordsize > 6 {
			// The output-count formula below (1 + 1<<wordsize) is the
			// source's stated contract (spec.md §9(i)); it is not a
			// sizing formula anyone should rely on past wordsize=6.
			slog.Warn("MEMORY_DRAM output-count formula grows as 1<<wordsize; preserved verbatim", "wordsize", wordsize)
		}
		return &memoryDRAM{
			wordsize: wordsize,
			addrbits: addrbits,
			mem:      make([]uint64, 1<<uint(addrbits)),
		}, nil
	})
}

// memoryDRAM is a single read/write-ported word-addressable RAM. Its
// OutputCount reproduces spec.md §9(i)'s literal (and oversized) formula.
type memoryDRAM struct {
	wordsize int
	addrbits int
	mem      []uint64
}

func (e *memoryDRAM) OutputCount() int { return 1 + (1 << uint(e.wordsize)) }

func (e *memoryDRAM) Update(outputs []bool, inputs []bool) {
	enable := inputs[0]
	if !enable {
		return
	}

	addr := uint64(0)
	for i := 0; i < e.addrbits; i++ {
		if inputs[1+i] {
			addr |= 1 << uint(i)
		}
	}

	write := inputs[1+e.addrbits]
	maskBits := inputs[2+e.addrbits : 2+e.addrbits+e.wordsize]
	dataBits := inputs[2+e.addrbits+e.wordsize : 2+e.addrbits+2*e.wordsize]

	if write {
		var val, mask uint64
		for i := 0; i < e.wordsize; i++ {
			if dataBits[i] {
				val |= 1 << uint(i)
			}
			if maskBits[i] {
				mask |= 1 << uint(i)
			}
		}
		e.mem[addr] = (e.mem[addr] &^ mask) | val
	}

	outputs[0] = true
	word := e.mem[addr]
	for i := 0; i < e.wordsize; i++ {
		outputs[1+i] = word&(1<<uint(i)) != 0
	}
}

func (e *memoryDRAM) Clone() Kind {
	return &memoryDRAM{
		wordsize: e.wordsize,
		addrbits: e.addrbits,
		mem:      append([]uint64(nil), e.mem...),
	}
}
