package circuit_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/circuitlab/logicsim/circuit"
)

var _ = Describe("UnitBuilder", func() {
	It("declares wires then exposes a subset as inputs/outputs", func() {
		u, err := circuit.NewUnitBuilder("adder").
			WithWires("a", "b", "sum").
			WithInputs("a", "b").
			WithOutputs("sum").
			Build()
		Expect(err).NotTo(HaveOccurred())

		a, err := u.Wire("a")
		Expect(err).NotTo(HaveOccurred())
		b, err := u.Wire("b")
		Expect(err).NotTo(HaveOccurred())
		sum, err := u.Wire("sum")
		Expect(err).NotTo(HaveOccurred())

		Expect(u.Inputs().Indices).To(Equal([]int{a, b}))
		Expect(u.Outputs().Indices).To(Equal([]int{sum}))
	})

	It("fails when an input name was never declared", func() {
		_, err := circuit.NewUnitBuilder("bad").WithInputs("missing").Build()
		Expect(err).To(HaveOccurred())
	})
})
