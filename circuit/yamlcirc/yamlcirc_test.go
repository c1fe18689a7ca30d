package yamlcirc_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/circuitlab/logicsim/circuit/yamlcirc"
	"github.com/circuitlab/logicsim/driver"
)

const halfAndFullAdderYAML = `
units:
  HalfAdder:
    wires: [a, b]
    elements:
      - name: xor1
        kind: XOR
        params: {bussize: 1, buscount: 2}
        inputs: [a, b]
        outputs: [s]
      - name: and1
        kind: AND
        params: {bussize: 1, buscount: 2}
        inputs: [a, b]
        outputs: [c]
    inputs: [a, b]
    outputs: [s, c]

  FullAdder:
    wires: [a, b, ci]
    subunits:
      - name: ha1
        unit: HalfAdder
        inputs: [a, b]
        outputs: [ha1s, ha1c]
      - name: ha2
        unit: HalfAdder
        inputs: [ha1s, ci]
        outputs: [s, ha2c]
    elements:
      - name: or1
        kind: OR
        params: {bussize: 1, buscount: 2}
        inputs: [ha1c, ha2c]
        outputs: [co]
    inputs: [a, b, ci]
    outputs: [s, co]

  fa:
    subunits:
      - name: fa1
        unit: FullAdder
        inputs: ["1", "0", "0"]
        outputs: [s, co]
    elements:
      - name: done
        kind: DELAY
        params: {k: 2}
        inputs: ["1"]
        outputs: [done]
    inputs: []
    outputs: []

tests:
  fa:
    unit: fa
    limit: 10
    completion: [done]
    assertions:
      - condition: [done]
        actual: [s, co]
        expected: [true, false]
        sourceLine: 1
`

var _ = Describe("Load", func() {
	It("builds a circuit.Root whose test harness passes via RunSuite", func() {
		root, err := yamlcirc.Load([]byte(halfAndFullAdderYAML))
		Expect(err).NotTo(HaveOccurred())

		ok, results, err := driver.RunSuite(root, "", false)
		Expect(err).NotTo(HaveOccurred())
		Expect(ok).To(BeTrue())
		Expect(results).To(HaveLen(1))
		Expect(results[0].Outcome.Kind).To(Equal(driver.Passed))
		Expect(results[0].Outcome.Cycle).To(Equal(2))
	})

	It("rejects a reference to an undeclared wire", func() {
		_, err := yamlcirc.Load([]byte(`
units:
  main:
    inputs: []
    outputs: [nosuchwire]
`))
		Expect(err).To(HaveOccurred())
	})
})
