package engine

import (
	"github.com/sarchlab/akita/v4/sim"

	"github.com/circuitlab/logicsim/mesh"
)

// Component wraps an Engine as an akita ticking component, so a
// free-standing run can be driven by a sim.Engine the same way the teacher
// drives its CGRA tiles.
type Component struct {
	*sim.TickingComponent

	engine *Engine
}

// Builder constructs a Component, following the fluent With* chain every
// builder in this codebase uses.
type Builder struct {
	engine sim.Engine
	freq   sim.Freq
	mesh   *mesh.Mesh
}

// NewBuilder starts a Component builder at a reasonable default frequency.
func NewBuilder() Builder {
	return Builder{freq: 1 * sim.GHz}
}

// WithEngine sets the akita simulation engine that drives ticking.
func (b Builder) WithEngine(engine sim.Engine) Builder {
	b.engine = engine
	return b
}

// WithFreq sets the component's tick frequency.
func (b Builder) WithFreq(freq sim.Freq) Builder {
	b.freq = freq
	return b
}

// WithMesh sets the flattened mesh this component ticks.
func (b Builder) WithMesh(m *mesh.Mesh) Builder {
	b.mesh = m
	return b
}

// Build creates the Component.
func (b Builder) Build(name string) *Component {
	c := &Component{engine: New(b.mesh)}
	c.TickingComponent = sim.NewTickingComponent(name, b.engine, b.freq, c)
	return c
}

// Tick advances the circuit by one cycle. A mesh always has something to
// settle (constant drivers, free-running CLOCK elements), so it always
// reports progress, mirroring how the teacher's own free-running tiles tick
// unconditionally rather than waiting on an external event.
func (c *Component) Tick(now sim.VTimeInSec) (madeProgress bool) {
	c.engine.Tick()
	return true
}

// Inner exposes the underlying Engine for direct ticking and queries (used by
// cmd/logicsim's free-standing run, which ticks it outside any akita
// simulation loop).
func (c *Component) Inner() *Engine { return c.engine }
