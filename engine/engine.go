// Package engine runs a flattened mesh.Mesh: a synchronous, two-buffer,
// OR-merged tick loop plus the node queries a test driver or free-standing
// run needs.
package engine

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/circuitlab/logicsim/mesh"
)

// workingElement pairs a cloned element.Kind with scratch input/output
// buffers sized once at construction, so Tick never allocates.
type workingElement struct {
	inst    mesh.ElementInstance
	inputs  []bool
	outputs []bool
}

// Engine owns a mesh and two dense state buffers. Two engines over the same
// mesh execute independently: each clones the mesh's elements into its own
// working set at construction.
type Engine struct {
	mesh *mesh.Mesh

	curstate []bool
	newstate []bool

	working []workingElement
}

// New builds an engine over m, cloning every element instance so this
// engine's internal state is independent of any other engine over the same
// mesh.
func New(m *mesh.Mesh) *Engine {
	e := &Engine{
		mesh:     m,
		curstate: make([]bool, m.NumNodes),
		newstate: make([]bool, m.NumNodes),
		working:  make([]workingElement, len(m.Elements)),
	}
	for i, inst := range m.Elements {
		e.working[i] = workingElement{
			inst:    mesh.ElementInstance{Kind: inst.Kind.Clone(), Inputs: inst.Inputs, Outputs: inst.Outputs},
			inputs:  make([]bool, len(inst.Inputs)),
			outputs: make([]bool, len(inst.Outputs)),
		}
	}
	return e
}

func (e *Engine) nodeValue(ref int) bool {
	switch {
	case ref == mesh.NodeZero:
		return false
	case ref == mesh.NodeOne:
		return true
	default:
		return e.curstate[ref]
	}
}

// Tick evaluates every element against the previous cycle's state, OR-merging
// results into the next cycle's state, then swaps the two buffers.
func (e *Engine) Tick() {
	for i := range e.working {
		w := &e.working[i]

		for j, ref := range w.inst.Inputs {
			w.inputs[j] = e.nodeValue(ref)
		}
		for j := range w.outputs {
			w.outputs[j] = false
		}

		w.inst.Kind.Update(w.outputs, w.inputs)

		for j, ref := range w.inst.Outputs {
			if ref == mesh.NodeZero || ref == mesh.NodeOne {
				continue
			}
			e.newstate[ref] = e.newstate[ref] || w.outputs[j]
		}
	}

	e.curstate, e.newstate = e.newstate, e.curstate
	for i := range e.newstate {
		e.newstate[i] = false
	}
}

// SetInputs drives external stimulus directly onto curstate, ahead of the
// next Tick, for the node references named in nodes. This is how a
// free-standing run (outside the assertion-driven test harness, which
// drives its inputs with ordinary constant elements instead) injects
// primary-input values between ticks; constant references in nodes are
// silently ignored, matching the engine's "writes to a constant are
// discarded" rule for outputs.
func (e *Engine) SetInputs(nodes []int, values []bool) {
	for i, ref := range nodes {
		if ref == mesh.NodeZero || ref == mesh.NodeOne {
			continue
		}
		e.curstate[ref] = values[i]
	}
}

// AreSet reports, over curstate, whether every node in nodes is set
// (logicalAnd true) or whether any node in nodes is set (logicalAnd false).
// Constants resolve directly without touching curstate.
func (e *Engine) AreSet(nodes []int, logicalAnd bool) bool {
	if len(nodes) == 0 {
		return logicalAnd
	}
	for _, ref := range nodes {
		v := e.nodeValue(ref)
		if logicalAnd && !v {
			return false
		}
		if !logicalAnd && v {
			return true
		}
	}
	return logicalAnd
}

// GetValues snapshots the current value of every node in nodes.
func (e *Engine) GetValues(nodes []int) []bool {
	out := make([]bool, len(nodes))
	for i, ref := range nodes {
		out[i] = e.nodeValue(ref)
	}
	return out
}

// CheckBreakpoints returns the names of every mesh breakpoint whose condition
// set is entirely true this tick (nil when none is hit).
func (e *Engine) CheckBreakpoints() []string {
	var hit []string
	for _, bp := range e.mesh.Breakpoints {
		if e.AreSet(bp.Nodes, true) {
			hit = append(hit, bp.Name)
		}
	}
	return hit
}

// ShowDisplay renders every display whose condition set is entirely true
// this tick and reports whether any were emitted. Format syntax is
// "%<count><conv>" repeated across the string: count defaults to 1 and is
// consumed LSB-first from the display's value list; conv is 'i' (decimal),
// 'x' (hex) or anything else ("UNK"). Unconsumed trailing bits are appended
// after a ">>" marker as a raw bit string.
func (e *Engine) ShowDisplay() (lines []string, any bool) {
	for _, d := range e.mesh.Displays {
		if !e.AreSet(d.Condition, true) {
			continue
		}
		values := e.GetValues(d.Values)
		lines = append(lines, renderDisplay(d.Format, values))
		any = true
	}
	return lines, any
}

func renderDisplay(format string, values []bool) string {
	var out strings.Builder
	pos := 0

	i := 0
	for i < len(format) {
		ch := format[i]
		if ch != '%' {
			out.WriteByte(ch)
			i++
			continue
		}
		i++
		count, consumed := parseCount(format[i:])
		i += consumed
		if i >= len(format) {
			break
		}
		conv := format[i]
		i++

		if count > 63 {
			slog.Warn("Display", "Behavior", "bit-field count above 63 accepted verbatim", "count", count)
		}

		bits := nextBits(values, pos, count)
		pos += count
		out.WriteString(renderBits(bits, conv))
	}

	if pos < len(values) {
		out.WriteString(">>")
		for _, v := range values[pos:] {
			if v {
				out.WriteByte('1')
			} else {
				out.WriteByte('0')
			}
		}
	}

	return out.String()
}

func parseCount(s string) (count, consumed int) {
	count = 0
	for consumed < len(s) && s[consumed] >= '0' && s[consumed] <= '9' {
		count = count*10 + int(s[consumed]-'0')
		consumed++
	}
	if consumed == 0 {
		return 1, 0
	}
	return count, consumed
}

func nextBits(values []bool, pos, count int) []bool {
	end := pos + count
	if end > len(values) {
		end = len(values)
	}
	if pos > len(values) {
		pos = len(values)
	}
	return values[pos:end]
}

func renderBits(bits []bool, conv byte) string {
	switch conv {
	case 'i':
		var v uint64
		for i, b := range bits {
			if b {
				v |= 1 << uint(i)
			}
		}
		return fmt.Sprintf("%d", v)
	case 'x':
		var v uint64
		for i, b := range bits {
			if b {
				v |= 1 << uint(i)
			}
		}
		return fmt.Sprintf("%x", v)
	default:
		return "UNK"
	}
}
