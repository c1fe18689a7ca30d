package circuit

// UnitBuilder is sugar over Unit's primitive operations for the common
// shape of "declare some named wires, then expose a subset as inputs and
// another subset as outputs" — a fluent With* chain returning the receiver
// by value, finalized by Build, the same pattern engine.Builder uses. It adds
// no semantics beyond what AddWire/SetInputs/SetOutputs already provide.
type UnitBuilder struct {
	name    string
	wires   []string
	inputs  []string
	outputs []string
}

// NewUnitBuilder starts a builder for a unit named name.
func NewUnitBuilder(name string) UnitBuilder {
	return UnitBuilder{name: name}
}

// WithWires declares additional named wires, in order.
func (b UnitBuilder) WithWires(names ...string) UnitBuilder {
	b.wires = append(append([]string(nil), b.wires...), names...)
	return b
}

// WithInputs declares which already-named wires this unit exposes as
// inputs, in order.
func (b UnitBuilder) WithInputs(names ...string) UnitBuilder {
	b.inputs = append(append([]string(nil), b.inputs...), names...)
	return b
}

// WithOutputs declares which already-named wires this unit exposes as
// outputs, in order.
func (b UnitBuilder) WithOutputs(names ...string) UnitBuilder {
	b.outputs = append(append([]string(nil), b.outputs...), names...)
	return b
}

// Build allocates every declared wire and finalizes the unit's input/output
// boundary. Callers still use AppendElement/AppendSubunit/Bind on the
// returned Unit for anything past the boilerplate this builder covers.
func (b UnitBuilder) Build() (*Unit, error) {
	u := NewUnit(b.name)
	for _, name := range b.wires {
		u.AddWire(name)
	}

	inputs, err := namesToIndices(u, b.inputs)
	if err != nil {
		return nil, err
	}
	if err := u.SetInputs(inputs); err != nil {
		return nil, err
	}

	outputs, err := namesToIndices(u, b.outputs)
	if err != nil {
		return nil, err
	}
	if err := u.SetOutputs(outputs); err != nil {
		return nil, err
	}

	return u, nil
}

func namesToIndices(u *Unit, names []string) ([]int, error) {
	out := make([]int, len(names))
	for i, name := range names {
		idx, err := u.Wire(name)
		if err != nil {
			return nil, err
		}
		out[i] = idx
	}
	return out, nil
}
