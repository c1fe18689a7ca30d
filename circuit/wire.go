// Package circuit holds the hierarchical, unflattened intermediate
// representation of a design: units built from wires, groups, primitive
// element instances and sub-unit references.
package circuit

import "fmt"

// WireKind distinguishes a plain anonymous/named wire from one bound to a
// constant rail.
type WireKind int

const (
	// WireFloating is an ordinary wire, not yet tied to anything.
	WireFloating WireKind = iota
	// WireConstZero is permanently tied low.
	WireConstZero
	// WireConstOne is permanently tied high.
	WireConstOne
)

// Wire is one node of the unflattened design. A wire either stands on its
// own or aliases another wire via Reflink, mirroring how the source lets a
// unit's output simply refer back to an interior signal instead of
// duplicating it.
type Wire struct {
	Kind WireKind

	// Reflink, when non-nil, names the index (within the same unit's wire
	// arena) this wire is an alias of. A wire with a non-nil Reflink carries
	// no identity of its own at flatten time: it resolves by following the
	// chain until it reaches a wire with Reflink == nil.
	Reflink *int
}

// NewWire returns a fresh, unbound wire.
func NewWire() Wire {
	return Wire{Kind: WireFloating}
}

// ConstZero returns a wire permanently tied to logical false.
func ConstZero() Wire {
	return Wire{Kind: WireConstZero}
}

// ConstOne returns a wire permanently tied to logical true.
func ConstOne() Wire {
	return Wire{Kind: WireConstOne}
}

// WireArena owns a unit's flat array of wires, addressed by small integer
// index, and lets later wires alias earlier ones by index rather than by
// pointer — the same arena-of-indices shape the teacher uses for its
// register file and instruction operands.
type WireArena struct {
	wires []Wire
}

// Add appends a wire and returns its index.
func (a *WireArena) Add(w Wire) int {
	a.wires = append(a.wires, w)
	return len(a.wires) - 1
}

// Alias appends a wire that refers back to target, an index already present
// in the arena.
func (a *WireArena) Alias(target int) (int, error) {
	if target < 0 || target >= len(a.wires) {
		return 0, fmt.Errorf("circuit: alias target %d out of range [0,%d)", target, len(a.wires))
	}
	t := target
	idx := a.Add(Wire{Kind: WireFloating, Reflink: &t})
	return idx, nil
}

// Len reports how many wires the arena holds.
func (a *WireArena) Len() int { return len(a.wires) }

// At returns the wire stored at idx.
func (a *WireArena) At(idx int) Wire { return a.wires[idx] }

// Resolve follows Reflink chains starting at idx until it reaches a wire
// with no further alias, returning that terminal index.
func (a *WireArena) Resolve(idx int) int {
	seen := map[int]bool{}
	for {
		if seen[idx] {
			// A cycle would be a malformed unit; return the index at which
			// the chain first revisits a wire rather than spin forever.
			return idx
		}
		seen[idx] = true
		w := a.wires[idx]
		if w.Reflink == nil {
			return idx
		}
		idx = *w.Reflink
	}
}
