// Package mesh holds the flattened intermediate representation: a single
// flat node space with no hierarchy left, ready for the engine to tick.
package mesh

import "github.com/circuitlab/logicsim/element"

// Node references are plain ints, with two reserved sentinel values standing
// in for the constant rails; every other value is a dense node index. This
// keeps the hot tick loop free of any per-reference type switch.
const (
	NodeZero = -1
	NodeOne  = -2
)

// IsConstant reports whether a node reference names one of the constant
// rails rather than a real node index.
func IsConstant(ref int) bool { return ref == NodeZero || ref == NodeOne }

// ConstantValue returns the fixed value of a constant node reference. It
// panics if ref is not a constant; callers are expected to guard with
// IsConstant first.
func ConstantValue(ref int) bool {
	switch ref {
	case NodeZero:
		return false
	case NodeOne:
		return true
	default:
		panic("mesh: ConstantValue called on a non-constant node reference")
	}
}

// ElementInstance is one primitive element owned by a mesh, together with
// the node references that feed its inputs and receive its outputs.
type ElementInstance struct {
	Kind    element.Kind
	Inputs  []int
	Outputs []int
}

// Breakpoint names a flat node set that must all be set for the breakpoint
// to trigger.
type Breakpoint struct {
	Name  string
	Nodes []int
}

// Display names a formatted readout over a flat node set: Condition gates
// whether it fires this tick, Values supplies the bits it renders.
type Display struct {
	Format    string
	Condition []int
	Values    []int
}

// Mesh is a fully flattened circuit: NumNodes dense boolean node slots, an
// element table evaluated in declaration order, and the unit's declared
// boundary and diagnostics.
type Mesh struct {
	NumNodes    int
	Elements    []ElementInstance
	Inputs      []int
	Outputs     []int
	Breakpoints []Breakpoint
	Displays    []Display
}

// New returns an empty mesh with room for n nodes.
func New(n int) *Mesh {
	return &Mesh{NumNodes: n}
}

// AddElement appends one already-flat-wired element instance.
func (m *Mesh) AddElement(inst ElementInstance) {
	m.Elements = append(m.Elements, inst)
}

// Assertion is one flattened conditional check, mirroring
// circuit.Assertion but against flat node references.
type Assertion struct {
	Condition  []int
	Actual     []int
	Expected   []bool
	SourceLine int
}

// Test is a flattened test harness: the mesh being driven, its tick budget,
// completion condition, and assertions.
type Test struct {
	Name       string
	Mesh       *Mesh
	Limit      int
	Completion []int
	Assertions []Assertion
}
