// Package element implements the closed catalogue of primitive element
// kinds that the flattener and simulation engine operate over: gates,
// latches, memories, and delays, each exposing a uniform update contract.
package element

import "fmt"

// Kind is the uniform interface every primitive element exposes. An
// instance is constructed once per element instantiation and cloned once
// per occurrence in a flattened Mesh.
type Kind interface {
	// OutputCount returns how many outputs this instance drives, given the
	// number of inputs it was constructed with.
	OutputCount() int

	// Update runs one tick of this element. outputs is pre-cleared to
	// false by the caller; Update may leave entries untouched to mean
	// "drive nothing this cycle" under the engine's OR-merge rule, or may
	// overwrite unconditionally when its semantics require that (NOT,
	// ENABLE, DELAY, JKFLIPFLOP).
	Update(outputs []bool, inputs []bool)

	// Clone returns an independently-stateful copy, used when the same
	// kind is instantiated more than once in a flat mesh.
	Clone() Kind
}

// Finaliser is implemented by kinds that need a post-flatten hook to
// resolve data owned by the enclosing unit (currently only ROM).
type Finaliser interface {
	Finalise(owner RomSource)
}

// RomSource is the subset of circuit.Unit that ROM.Finalise needs: a way
// to look up a rom-data table by index.
type RomSource interface {
	GetROM(index int) []uint64
}

// Factory constructs a Kind from its textual parameters and the number of
// inputs it was instantiated with. Errors are returned, never panicked,
// per the propagation rule in spec.md §7.
type Factory func(params map[string]int, nInputs int) (Kind, error)

var registry = map[string]Factory{}

func register(name string, f Factory) {
	registry[name] = f
}

// New looks up name in the closed catalogue and constructs a Kind,
// validating arity and parameters the way the factory function prescribes.
func New(name string, params map[string]int, nInputs int) (Kind, error) {
	f, ok := registry[name]
	if !ok {
		return nil, fmt.Errorf("element: unknown kind %q", name)
	}
	return f(params, nInputs)
}

// IsKnown reports whether name names a primitive kind (used by the IR to
// decide between a primitive instantiation and a sub-unit reference).
func IsKnown(name string) bool {
	_, ok := registry[name]
	return ok
}

func intParam(params map[string]int, key string, def int) int {
	if v, ok := params[key]; ok {
		return v
	}
	return def
}
