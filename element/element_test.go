package element_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/circuitlab/logicsim/element"
)

var _ = Describe("gates", func() {
	It("computes NAND{2} over two inputs", func() {
		k, err := element.New("NAND", map[string]int{"bussize": 1, "buscount": 1}, 2)
		Expect(err).NotTo(HaveOccurred())
		Expect(k.OutputCount()).To(Equal(1))

		out := make([]bool, 1)
		k.Update(out, []bool{true, true})
		Expect(out[0]).To(BeFalse())

		out[0] = false
		k.Update(out, []bool{true, false})
		Expect(out[0]).To(BeTrue())
	})

	It("rejects a bus arity smaller than declared", func() {
		_, err := element.New("AND", map[string]int{"bussize": 2, "buscount": 1}, 1)
		Expect(err).To(HaveOccurred())
	})

	It("combines fixed leading inputs with bused inputs for OR{1,2}", func() {
		// 1 fixed input + bussize=1 * buscount=2 -> 3 total inputs.
		k, err := element.New("OR", map[string]int{"bussize": 1, "buscount": 2}, 3)
		Expect(err).NotTo(HaveOccurred())
		out := make([]bool, 1)
		k.Update(out, []bool{false, false, false})
		Expect(out[0]).To(BeFalse())
		k.Update(out, []bool{true, false, false})
		Expect(out[0]).To(BeTrue())
	})
})

var _ = Describe("NOT", func() {
	It("inverts every bit and overwrites", func() {
		k, err := element.New("NOT", nil, 3)
		Expect(err).NotTo(HaveOccurred())
		out := []bool{true, true, true}
		k.Update(out, []bool{true, false, true})
		Expect(out).To(Equal([]bool{false, true, false}))
	})
})

var _ = Describe("DELAY (S2)", func() {
	It("emits a pulse three ticks after a one-tick input pulse", func() {
		k, err := element.New("DELAY", map[string]int{"k": 3}, 1)
		Expect(err).NotTo(HaveOccurred())

		inputs := [][]bool{{true}, {false}, {false}, {false}, {false}}
		var got []bool
		for _, in := range inputs {
			out := []bool{false}
			k.Update(out, in)
			got = append(got, out[0])
		}
		Expect(got).To(Equal([]bool{false, false, true, false, false}))
	})

	It("OR-merges the input straight through when k=1", func() {
		k, err := element.New("DELAY", map[string]int{"k": 1}, 1)
		Expect(err).NotTo(HaveOccurred())

		out := []bool{false}
		k.Update(out, []bool{true})
		Expect(out[0]).To(BeTrue())

		out[0] = false
		k.Update(out, []bool{false})
		Expect(out[0]).To(BeFalse())
	})
})

var _ = Describe("MUX (S3)", func() {
	It("selects index 1 (LSB-first selector 01) when enabled", func() {
		// enable + 2 selector bits + 4 data bits (bussize=1)
		k, err := element.New("MUX", map[string]int{"bits": 2, "bussize": 1}, 7)
		Expect(err).NotTo(HaveOccurred())

		out := make([]bool, 1)
		// selector bits LSB-first: index 1 -> bit0=true,bit1=false
		in := []bool{true, true, false, false, true, false, false}
		k.Update(out, in)
		Expect(out[0]).To(BeTrue())
	})

	It("drives nothing when disabled", func() {
		k, err := element.New("MUX", map[string]int{"bits": 2, "bussize": 1}, 7)
		Expect(err).NotTo(HaveOccurred())
		out := make([]bool, 1)
		in := []bool{false, true, false, false, true, false, false}
		k.Update(out, in)
		Expect(out[0]).To(BeFalse())
	})
})

var _ = Describe("SEQUENCER (S4)", func() {
	It("cycles through one-hot positions on reset/next", func() {
		k, err := element.New("SEQUENCER", map[string]int{"count": 4}, 3)
		Expect(err).NotTo(HaveOccurred())

		step := func(enable, reset, next bool) []bool {
			out := make([]bool, 4)
			k.Update(out, []bool{enable, reset, next})
			return out
		}

		Expect(step(true, true, false)).To(Equal([]bool{true, false, false, false}))
		Expect(step(true, false, true)).To(Equal([]bool{false, true, false, false}))
		Expect(step(true, false, true)).To(Equal([]bool{false, false, true, false}))
		Expect(step(true, false, true)).To(Equal([]bool{false, false, false, true}))
		Expect(step(true, false, true)).To(Equal([]bool{true, false, false, false}))
	})

	It("freezes its position when disabled, even with reset or next asserted", func() {
		k, err := element.New("SEQUENCER", map[string]int{"count": 4}, 3)
		Expect(err).NotTo(HaveOccurred())

		step := func(enable, reset, next bool) []bool {
			out := make([]bool, 4)
			k.Update(out, []bool{enable, reset, next})
			return out
		}

		Expect(step(true, false, true)).To(Equal([]bool{false, true, false, false}))
		Expect(step(false, false, true)).To(Equal([]bool{false, false, false, false}))
		Expect(step(true, false, true)).To(Equal([]bool{false, false, true, false}))
	})
})

var _ = Describe("LATCH", func() {
	It("accumulates data with OR while enabled, clears on reset", func() {
		k, err := element.New("LATCH", map[string]int{"size": 2}, 4)
		Expect(err).NotTo(HaveOccurred())

		out := make([]bool, 3)
		k.Update(out, []bool{true, false, true, false})
		Expect(out).To(Equal([]bool{true, true, false}))

		out = make([]bool, 3)
		k.Update(out, []bool{true, false, false, true})
		Expect(out).To(Equal([]bool{true, true, true}))

		out = make([]bool, 3)
		k.Update(out, []bool{true, true, false, false})
		Expect(out).To(Equal([]bool{true, false, false}))
	})
})

var _ = Describe("JKFLIPFLOP", func() {
	It("toggles on J=K=1 at the falling clk edge", func() {
		k, err := element.New("JKFLIPFLOP", nil, 3)
		Expect(err).NotTo(HaveOccurred())

		out := make([]bool, 2)
		k.Update(out, []bool{true, true, true}) // clk high, no edge yet
		Expect(out[0]).To(BeFalse())

		k.Update(out, []bool{false, true, true}) // falling edge -> toggle
		Expect(out[0]).To(BeTrue())
		Expect(out[1]).To(BeFalse())
	})
})

var _ = Describe("MEMORY_DRAM", func() {
	It("writes through a mask and reads back the updated word", func() {
		// enable + addrbits(2) + write + mask(4) + data(4) = 12 inputs
		k, err := element.New("MEMORY_DRAM", map[string]int{"wordsize": 4, "addrbits": 2}, 12)
		Expect(err).NotTo(HaveOccurred())

		out := make([]bool, k.OutputCount())
		// enable, addr=01 (LSB-first => 1), write=true, mask=0011, data=1111.
		// The mask only clears bits of the stored word before data is OR-ed in,
		// so the zeroed word becomes 1111. A mask/data swap would store 0011
		// instead, so this distinguishes field order.
		in := []bool{true, true, false, true, true, true, false, false, true, true, true, true}
		k.Update(out, in)
		Expect(out[0]).To(BeTrue())
		Expect(out[1:5]).To(Equal([]bool{true, true, true, true}))
	})
})

var _ = Describe("ROM", func() {
	type stubRomSource map[int][]uint64

	It("reads a big-endian address and emits LSB-first", func() {
		k, err := element.New("ROM", map[string]int{"index": 0, "wordsize": 4}, 3)
		Expect(err).NotTo(HaveOccurred())

		fin, ok := k.(element.Finaliser)
		Expect(ok).To(BeTrue())
		fin.Finalise(stubRomRomSource{0: {0x0, 0x5}})

		out := make([]bool, 4)
		// addr bits big-endian: inputs[1]=MSB, inputs[2]=LSB -> "01" = 1
		k.Update(out, []bool{true, false, true})
		Expect(out).To(Equal([]bool{true, false, true, false})) // 0x5 LSB-first
	})
})

type stubRomRomSource map[int][]uint64

func (s stubRomRomSource) GetROM(index int) []uint64 { return s[index] }
