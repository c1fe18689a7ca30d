// Package flatten compiles the hierarchical circuit.Unit/circuit.Root IR
// into the flat mesh.Mesh the engine executes.
package flatten

import (
	"fmt"

	"github.com/circuitlab/logicsim/circuit"
	"github.com/circuitlab/logicsim/element"
	"github.com/circuitlab/logicsim/mesh"
)

// aliasRef converts a node reference in the unit's own alias table, as
// computed by tagNodes, to a flat node reference.
func aliasRef(aliases []int, idx int) int { return aliases[idx] }

func aliasAll(aliases []int, idxs []int) []int {
	out := make([]int, len(idxs))
	for i, idx := range idxs {
		out[i] = aliasRef(aliases, idx)
	}
	return out
}

// tagNodes implements §4.3 step 2: a two-pass sweep over the unit's wire
// arena that assigns every non-reference wire a dense index (or, for a
// constant wire, its sentinel node reference) and then lets every reference
// wire copy the terminal alias of its reflink chain.
func tagNodes(u *circuit.Unit) ([]int, int, error) {
	arena := u.Arena()
	n := arena.Len()
	aliases := make([]int, n)
	tagged := make([]bool, n)
	next := 0

	for i := 0; i < n; i++ {
		w := arena.At(i)
		switch w.Kind {
		case circuit.WireConstZero:
			aliases[i] = mesh.NodeZero
			tagged[i] = true
		case circuit.WireConstOne:
			aliases[i] = mesh.NodeOne
			tagged[i] = true
		default:
			if w.Reflink == nil {
				aliases[i] = next
				next++
				tagged[i] = true
			}
		}
	}

	for i := 0; i < n; i++ {
		if tagged[i] {
			continue
		}
		terminal := arena.Resolve(i)
		if !tagged[terminal] {
			panic(fmt.Sprintf("BUG: flatten: wire %d's reflink chain left terminal %d untagged", i, terminal))
		}
		aliases[i] = aliases[terminal]
	}

	return aliases, next, nil
}

// FlattenUnit compiles u into a flat mesh, given the already-flattened
// meshes of every unit it references as a sub-unit. It also returns u's own
// alias table so callers that need to convert additional node-index lists
// declared directly on u (a test's completion set and assertions) can reuse
// the exact same local tagging pass.
func FlattenUnit(u *circuit.Unit, preFlattened map[string]*mesh.Mesh) (*mesh.Mesh, []int, error) {
	aliases, localNodes, err := tagNodes(u)
	if err != nil {
		return nil, nil, err
	}

	m := mesh.New(localNodes)

	for _, inst := range u.Elements() {
		kind, err := element.New(inst.Kind, inst.Params, len(inst.Inputs))
		if err != nil {
			return nil, nil, fmt.Errorf("flatten: unit %q element %q: %w", u.Name, inst.Name, err)
		}
		if fin, ok := kind.(element.Finaliser); ok {
			fin.Finalise(u)
		}
		m.AddElement(mesh.ElementInstance{
			Kind:    kind,
			Inputs:  aliasAll(aliases, inst.Inputs),
			Outputs: aliasAll(aliases, inst.Outputs),
		})
	}

	for _, bp := range u.Breakpoints() {
		m.Breakpoints = append(m.Breakpoints, mesh.Breakpoint{
			Name:  bp.Name,
			Nodes: aliasAll(aliases, bp.Nodes),
		})
	}

	for _, d := range u.Displays() {
		m.Displays = append(m.Displays, mesh.Display{
			Format:    d.Format,
			Condition: aliasAll(aliases, d.Condition),
			Values:    aliasAll(aliases, d.Values),
		})
	}

	if u.Inputs().Indices != nil {
		m.Inputs = aliasAll(aliases, u.Inputs().Indices)
	}
	if u.Outputs().Indices != nil {
		m.Outputs = aliasAll(aliases, u.Outputs().Indices)
	}

	for _, sub := range u.Subunits() {
		sm, ok := preFlattened[sub.UnitName]
		if !ok {
			panic(fmt.Sprintf("BUG: flatten: unit %q references sub-unit %q with no flattened mesh", u.Name, sub.UnitName))
		}
		if err := mergeSubunit(m, sub, sm, aliases); err != nil {
			return nil, nil, fmt.Errorf("flatten: unit %q sub-unit %q: %w", u.Name, sub.Name, err)
		}
	}

	return m, aliases, nil
}

// mergeSubunit implements §4.3 step 5: build the alias vector mapping the
// sub-mesh's own node space onto the parent's, binding boundary nodes to the
// outer wires supplied at the reference site and lifting every remaining
// interior node into a fresh parent index, then rewrites and appends every
// element instance, breakpoint and display from the sub-mesh.
func mergeSubunit(parent *mesh.Mesh, ref circuit.SubunitRef, sub *mesh.Mesh, outerAliases []int) error {
	if len(ref.Inputs) != len(sub.Inputs) {
		return fmt.Errorf("input arity mismatch: reference supplies %d, sub-unit declares %d", len(ref.Inputs), len(sub.Inputs))
	}
	if len(ref.Outputs) != len(sub.Outputs) {
		return fmt.Errorf("output arity mismatch: reference supplies %d, sub-unit declares %d", len(ref.Outputs), len(sub.Outputs))
	}

	subAliases := make([]int, sub.NumNodes)
	set := make([]bool, sub.NumNodes)

	bindBoundary := func(innerRefs []int, outerWires []int) {
		for j, inner := range innerRefs {
			if mesh.IsConstant(inner) {
				continue
			}
			subAliases[inner] = aliasRef(outerAliases, outerWires[j])
			set[inner] = true
		}
	}
	bindBoundary(sub.Inputs, ref.Inputs)
	bindBoundary(sub.Outputs, ref.Outputs)

	next := parent.NumNodes
	for i := 0; i < sub.NumNodes; i++ {
		if set[i] {
			continue
		}
		subAliases[i] = next
		next++
	}
	parent.NumNodes = next

	rewrite := func(refs []int) []int {
		out := make([]int, len(refs))
		for i, r := range refs {
			if mesh.IsConstant(r) {
				out[i] = r
				continue
			}
			out[i] = subAliases[r]
		}
		return out
	}

	for _, e := range sub.Elements {
		parent.AddElement(mesh.ElementInstance{
			Kind:    e.Kind.Clone(),
			Inputs:  rewrite(e.Inputs),
			Outputs: rewrite(e.Outputs),
		})
	}
	for _, bp := range sub.Breakpoints {
		parent.Breakpoints = append(parent.Breakpoints, mesh.Breakpoint{
			Name:  ref.Name + "." + bp.Name,
			Nodes: rewrite(bp.Nodes),
		})
	}
	for _, d := range sub.Displays {
		parent.Displays = append(parent.Displays, mesh.Display{
			Format:    d.Format,
			Condition: rewrite(d.Condition),
			Values:    rewrite(d.Values),
		})
	}

	return nil
}

// flattenNamed flattens the unit registered under name in root, using and
// populating cache so each unit is compiled at most once.
func flattenNamed(root *circuit.Root, name string, cache map[string]*mesh.Mesh) (*mesh.Mesh, error) {
	if m, ok := cache[name]; ok {
		return m, nil
	}
	u, err := root.GetUnit(name)
	if err != nil {
		return nil, err
	}
	m, err := flattenWithSubunits(root, u, cache)
	if err != nil {
		return nil, err
	}
	cache[name] = m
	return m, nil
}

// flattenWithSubunits recursively flattens every sub-unit u references
// (post-order, per §4.5) before compiling u itself.
func flattenWithSubunits(root *circuit.Root, u *circuit.Unit, cache map[string]*mesh.Mesh) (*mesh.Mesh, error) {
	pre := map[string]*mesh.Mesh{}
	for _, sub := range u.Subunits() {
		m, err := flattenNamed(root, sub.UnitName, cache)
		if err != nil {
			return nil, err
		}
		pre[sub.UnitName] = m
	}
	m, _, err := FlattenUnit(u, pre)
	return m, err
}

// FlattenRoot flattens root's top-level unit, recursively flattening every
// unit it transitively references first.
func FlattenRoot(root *circuit.Root) (*mesh.Mesh, error) {
	cache := map[string]*mesh.Mesh{}
	return flattenNamed(root, circuit.RootUnitName, cache)
}

// FlattenTests flattens every test registered in root, using one unit cache
// across all of them so tests share flattened sub-units with each other. The
// cache is not shared with FlattenRoot.
func FlattenTests(root *circuit.Root) (map[string]*mesh.Test, error) {
	cache := map[string]*mesh.Mesh{}
	out := map[string]*mesh.Test{}

	var firstErr error
	root.IterTests(func(t *circuit.Test) {
		if firstErr != nil {
			return
		}
		pre := map[string]*mesh.Mesh{}
		for _, sub := range t.Unit.Subunits() {
			sm, err := flattenNamed(root, sub.UnitName, cache)
			if err != nil {
				firstErr = fmt.Errorf("flatten test %q: %w", t.Name, err)
				return
			}
			pre[sub.UnitName] = sm
		}
		m, aliases, err := FlattenUnit(t.Unit, pre)
		if err != nil {
			firstErr = fmt.Errorf("flatten test %q: %w", t.Name, err)
			return
		}

		assertions := make([]mesh.Assertion, len(t.Assertions))
		for i, a := range t.Assertions {
			assertions[i] = mesh.Assertion{
				Condition:  aliasAll(aliases, a.Condition),
				Actual:     aliasAll(aliases, a.Actual),
				Expected:   append([]bool(nil), a.Expected...),
				SourceLine: a.SourceLine,
			}
		}

		out[t.Name] = &mesh.Test{
			Name:       t.Name,
			Mesh:       m,
			Limit:      t.Limit,
			Completion: aliasAll(aliases, t.Completion),
			Assertions: assertions,
		}
	})
	if firstErr != nil {
		return nil, firstErr
	}
	return out, nil
}
