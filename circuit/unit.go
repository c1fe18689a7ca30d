package circuit

import (
	"fmt"

	"github.com/circuitlab/logicsim/element"
)

// ElementInst is one primitive element instantiated inside a unit, still
// referring to its inputs by local wire index.
type ElementInst struct {
	Name   string
	Kind   string
	Params map[string]int
	Inputs []int
	// Outputs is this instance's own freshly allocated output wires,
	// allocated when the instance is appended so later wiring can refer to
	// them like any other wire.
	Outputs []int
}

// SubunitRef is a reference to another unit, instantiated as a black box
// whose inputs are bound to wires in the referencing unit and whose outputs
// are exposed as fresh wires in the referencing unit's arena.
type SubunitRef struct {
	Name     string
	UnitName string
	Inputs   []int
	Outputs  []int
}

// Breakpoint names a condition worth reporting during a run: the
// free-standing run in cmd/logicsim checks, every tick, whether all of Nodes
// are set.
type Breakpoint struct {
	Name  string
	Nodes []int
}

// Display names a formatted readout of one or more node groups, using the
// "%<count><conv>" mini-language described alongside the engine package.
// It fires only on ticks where every Condition node is set, rendering
// Values.
type Display struct {
	Format    string
	Condition []int
	Values    []int
}

// Unit is one hierarchical node of the unflattened design: a named
// collection of wires, groups, primitive element instances, references to
// other units, and the breakpoints/displays local to it.
type Unit struct {
	Name string

	arena  WireArena
	wires  map[string]int
	groups map[string]Group

	elements []ElementInst
	subunits []SubunitRef

	breakpoints []Breakpoint
	displays    []Display

	inputs  Group
	outputs Group

	roms map[int][]uint64
}

// NewUnit starts an empty unit named name.
func NewUnit(name string) *Unit {
	return &Unit{
		Name:   name,
		wires:  map[string]int{},
		groups: map[string]Group{},
		roms:   map[int][]uint64{},
	}
}

// Arena exposes the unit's wire arena for packages that flatten it.
func (u *Unit) Arena() *WireArena { return &u.arena }

// Elements exposes the unit's local element instances.
func (u *Unit) Elements() []ElementInst { return u.elements }

// Subunits exposes the unit's sub-unit references.
func (u *Unit) Subunits() []SubunitRef { return u.subunits }

// Breakpoints exposes the unit's local breakpoints.
func (u *Unit) Breakpoints() []Breakpoint { return u.breakpoints }

// Displays exposes the unit's local displays.
func (u *Unit) Displays() []Display { return u.displays }

// Inputs returns the group of wires this unit exposes as its inputs.
func (u *Unit) Inputs() Group { return u.inputs }

// Outputs returns the group of wires this unit exposes as its outputs.
func (u *Unit) Outputs() Group { return u.outputs }

// AddConstant allocates a wire permanently tied to v and returns its index.
func (u *Unit) AddConstant(v bool) int {
	if v {
		return u.arena.Add(ConstOne())
	}
	return u.arena.Add(ConstZero())
}

// AddWire allocates a fresh anonymous wire and, if name is non-empty, binds
// it under that name for later lookup by Wire.
func (u *Unit) AddWire(name string) int {
	idx := u.arena.Add(NewWire())
	if name != "" {
		u.wires[name] = idx
	}
	return idx
}

// AddGroup allocates a fresh n-wide named bus.
func (u *Unit) AddGroup(name string, n int) Group {
	g := NewGroup(&u.arena, name, n)
	u.groups[name] = g
	return g
}

// NameWire binds an already-allocated wire index (typically one of
// AppendElement's or AppendSubunit's freshly allocated outputs) under name,
// so later callers can look it up with Wire the same as any declared wire.
func (u *Unit) NameWire(name string, idx int) error {
	if idx < 0 || idx >= u.arena.Len() {
		return fmt.Errorf("circuit: unit %q cannot name out-of-range wire %d", u.Name, idx)
	}
	if _, exists := u.wires[name]; exists {
		return fmt.Errorf("circuit: unit %q already has a wire named %q", u.Name, name)
	}
	u.wires[name] = idx
	return nil
}

// Wire looks up a single named wire.
func (u *Unit) Wire(name string) (int, error) {
	idx, ok := u.wires[name]
	if !ok {
		return 0, fmt.Errorf("circuit: unit %q has no wire named %q", u.Name, name)
	}
	return idx, nil
}

// Group looks up a named bus.
func (u *Unit) Group(name string) (Group, error) {
	g, ok := u.groups[name]
	if !ok {
		return Group{}, fmt.Errorf("circuit: unit %q has no group named %q", u.Name, name)
	}
	return g, nil
}

// SetInputs declares which wires this unit exposes as its input ports, in
// order. It may only be called once per unit.
func (u *Unit) SetInputs(indices []int) error {
	if u.inputs.Indices != nil {
		return fmt.Errorf("circuit: unit %q inputs already set", u.Name)
	}
	u.inputs = Group{Name: "!inputs", Indices: append([]int(nil), indices...)}
	return nil
}

// SetOutputs declares which wires this unit exposes as its output ports, in
// order. It may only be called once per unit.
func (u *Unit) SetOutputs(indices []int) error {
	if u.outputs.Indices != nil {
		return fmt.Errorf("circuit: unit %q outputs already set", u.Name)
	}
	u.outputs = Group{Name: "!outputs", Indices: append([]int(nil), indices...)}
	return nil
}

// AppendElement instantiates a primitive element kind by name, wires it to
// inputs, allocates its output wires, and returns them. It constructs the
// kind itself to learn its declared output count: if nOutputs is 0, that
// count decides how many anonymous outputs to allocate; otherwise nOutputs
// must agree with it exactly, or this is a construction-time schema error
// rather than a mismatch discovered later at simulation time.
func (u *Unit) AppendElement(name, kind string, params map[string]int, inputs []int, nOutputs int) ([]int, error) {
	k, err := element.New(kind, params, len(inputs))
	if err != nil {
		return nil, fmt.Errorf("circuit: unit %q element %q: %w", u.Name, name, err)
	}
	want := k.OutputCount()
	if nOutputs != 0 && nOutputs != want {
		return nil, fmt.Errorf("circuit: unit %q element %q: declared %d outputs, kind %q produces %d", u.Name, name, nOutputs, kind, want)
	}

	outputs := make([]int, want)
	for i := range outputs {
		outputs[i] = u.arena.Add(NewWire())
	}
	u.elements = append(u.elements, ElementInst{
		Name:    name,
		Kind:    kind,
		Params:  params,
		Inputs:  append([]int(nil), inputs...),
		Outputs: outputs,
	})
	return outputs, nil
}

// AppendSubunit instantiates another unit by name, wires unitOutputCount
// fresh wires as its outputs, and records the reference for flattening.
func (u *Unit) AppendSubunit(name, unitName string, inputs []int, unitOutputCount int) ([]int, error) {
	outputs := make([]int, unitOutputCount)
	for i := range outputs {
		outputs[i] = u.arena.Add(NewWire())
	}
	u.subunits = append(u.subunits, SubunitRef{
		Name:     name,
		UnitName: unitName,
		Inputs:   append([]int(nil), inputs...),
		Outputs:  outputs,
	})
	return outputs, nil
}

// AppendBreakpoint records a named breakpoint over the given node indices.
func (u *Unit) AppendBreakpoint(name string, nodes []int) {
	u.breakpoints = append(u.breakpoints, Breakpoint{Name: name, Nodes: append([]int(nil), nodes...)})
}

// AppendDisplay records a formatted display gated by condition and
// rendering values.
func (u *Unit) AppendDisplay(format string, condition, values []int) {
	u.displays = append(u.displays, Display{
		Format:    format,
		Condition: append([]int(nil), condition...),
		Values:    append([]int(nil), values...),
	})
}

// Bind aliases the wire at idx to point at target, the way a unit's
// declared-but-not-yet-driven output is wired up once its driver is known.
func (u *Unit) Bind(idx, target int) error {
	if idx < 0 || idx >= u.arena.Len() {
		return fmt.Errorf("circuit: bind source %d out of range", idx)
	}
	if target < 0 || target >= u.arena.Len() {
		return fmt.Errorf("circuit: bind target %d out of range", target)
	}
	t := target
	u.arena.wires[idx].Reflink = &t
	return nil
}

// SetRomData attaches data words to a named ROM index, retrievable later via
// GetROM by any ROM element instance inside this unit.
func (u *Unit) SetRomData(index int, words []uint64) {
	u.roms[index] = words
}

// GetROM implements element.RomSource so a flattened mesh can finalise ROM
// elements against the data tables declared on their owning unit.
func (u *Unit) GetROM(index int) []uint64 {
	return u.roms[index]
}
