package circuit

import "fmt"

// RootUnitName is the conventional name of the design's top-level unit.
const RootUnitName = "main"

// Root is the whole unflattened design: every declared unit plus every
// declared test, addressed by name.
type Root struct {
	units map[string]*Unit
	tests map[string]*Test
}

// NewRoot returns an empty design.
func NewRoot() *Root {
	return &Root{
		units: map[string]*Unit{},
		tests: map[string]*Test{},
	}
}

// AddUnit registers a unit under its own name. It is an error to register
// two units with the same name.
func (r *Root) AddUnit(u *Unit) error {
	if _, exists := r.units[u.Name]; exists {
		return fmt.Errorf("circuit: duplicate unit name %q", u.Name)
	}
	r.units[u.Name] = u
	return nil
}

// AddTest registers a test harness under its own name.
func (r *Root) AddTest(t *Test) error {
	if _, exists := r.tests[t.Name]; exists {
		return fmt.Errorf("circuit: duplicate test name %q", t.Name)
	}
	r.tests[t.Name] = t
	return nil
}

// GetUnit looks up a unit by name.
func (r *Root) GetUnit(name string) (*Unit, error) {
	u, ok := r.units[name]
	if !ok {
		return nil, fmt.Errorf("circuit: no unit named %q", name)
	}
	return u, nil
}

// GetRootUnit looks up the design's top-level unit, conventionally named
// RootUnitName.
func (r *Root) GetRootUnit() (*Unit, error) {
	return r.GetUnit(RootUnitName)
}

// GetTest looks up a test by name.
func (r *Root) GetTest(name string) (*Test, error) {
	t, ok := r.tests[name]
	if !ok {
		return nil, fmt.Errorf("circuit: no test named %q", name)
	}
	return t, nil
}

// IterTests calls fn for every registered test, in no particular order.
func (r *Root) IterTests(fn func(*Test)) {
	for _, t := range r.tests {
		fn(t)
	}
}

// TestNames returns the names of every registered test.
func (r *Root) TestNames() []string {
	names := make([]string, 0, len(r.tests))
	for name := range r.tests {
		names = append(names, name)
	}
	return names
}
