package circuit_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/circuitlab/logicsim/circuit"
)

var _ = Describe("Unit", func() {
	It("allocates wires, groups and elements with fresh, stable indices", func() {
		u := circuit.NewUnit("NandLatch")

		in := u.AddGroup("in", 2)
		outs, err := u.AppendElement("g1", "NAND", map[string]int{"bussize": 1, "buscount": 1}, in.Indices, 1)
		Expect(err).NotTo(HaveOccurred())
		Expect(outs).To(HaveLen(1))

		Expect(u.Arena().Len()).To(Equal(3))
		Expect(u.Elements()).To(HaveLen(1))
	})

	It("resolves a wire's alias chain to its terminal index", func() {
		u := circuit.NewUnit("Aliasing")
		a := u.AddWire("a")
		b := u.AddWire("b")
		Expect(u.Bind(b, a)).To(Succeed())

		Expect(u.Arena().Resolve(b)).To(Equal(a))
	})

	It("rejects setting inputs twice", func() {
		u := circuit.NewUnit("X")
		w := u.AddWire("w")
		Expect(u.SetInputs([]int{w})).To(Succeed())
		Expect(u.SetInputs([]int{w})).To(HaveOccurred())
	})

	It("zero-pads a group slice that runs past its declared width", func() {
		u := circuit.NewUnit("Y")
		g := u.AddGroup("g", 2)
		wide := g.Slice(u.Arena(), 0, 4)
		Expect(wide.Width()).To(Equal(4))
	})

	It("auto-sizes an element's outputs from its kind when none are declared", func() {
		u := circuit.NewUnit("Z")
		in := u.AddGroup("in", 2)
		outs, err := u.AppendElement("g1", "NAND", map[string]int{"bussize": 1, "buscount": 1}, in.Indices, 0)
		Expect(err).NotTo(HaveOccurred())
		Expect(outs).To(HaveLen(1))
	})

	It("rejects a declared output count that disagrees with the kind's own arity", func() {
		u := circuit.NewUnit("Z")
		in := u.AddGroup("in", 2)
		_, err := u.AppendElement("g1", "NAND", map[string]int{"bussize": 1, "buscount": 1}, in.Indices, 2)
		Expect(err).To(HaveOccurred())
	})
})

var _ = Describe("Root", func() {
	It("rejects registering two units under the same name", func() {
		r := circuit.NewRoot()
		Expect(r.AddUnit(circuit.NewUnit("A"))).To(Succeed())
		Expect(r.AddUnit(circuit.NewUnit("A"))).To(HaveOccurred())
	})

	It("finds the conventional root unit by name", func() {
		r := circuit.NewRoot()
		Expect(r.AddUnit(circuit.NewUnit(circuit.RootUnitName))).To(Succeed())
		u, err := r.GetRootUnit()
		Expect(err).NotTo(HaveOccurred())
		Expect(u.Name).To(Equal(circuit.RootUnitName))
	})
})
