// Package yamlcirc loads a circuit.Root from a declarative YAML document,
// the same way core/program.go unmarshals a CGRA kernel's YAML into its
// program structures: read the file, unmarshal into a plain struct tree,
// then walk it calling the same construction API a hand-written builder
// would use. It is a convenience front-end over circuit.Unit, not a
// replacement for the text grammar in spec.md's §6, which stays
// unimplemented by design.
package yamlcirc

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/circuitlab/logicsim/circuit"
)

type yamlRoot struct {
	Units map[string]yamlUnit `yaml:"units"`
	Tests map[string]yamlTest `yaml:"tests"`
}

type yamlUnit struct {
	Wires       []string         `yaml:"wires"`
	Groups      []yamlGroup      `yaml:"groups"`
	Elements    []yamlElement    `yaml:"elements"`
	Subunits    []yamlSubunit    `yaml:"subunits"`
	Breakpoints []yamlBreakpoint `yaml:"breakpoints"`
	Displays    []yamlDisplay    `yaml:"displays"`
	Rom         map[int][]uint64 `yaml:"rom"`
	Inputs      []string         `yaml:"inputs"`
	Outputs     []string         `yaml:"outputs"`
}

type yamlGroup struct {
	Name  string `yaml:"name"`
	Width int    `yaml:"width"`
}

type yamlElement struct {
	Name    string         `yaml:"name"`
	Kind    string         `yaml:"kind"`
	Params  map[string]int `yaml:"params"`
	Inputs  []string       `yaml:"inputs"`
	Outputs []string       `yaml:"outputs"`
}

type yamlSubunit struct {
	Name    string   `yaml:"name"`
	Unit    string   `yaml:"unit"`
	Inputs  []string `yaml:"inputs"`
	Outputs []string `yaml:"outputs"`
}

type yamlBreakpoint struct {
	Name  string   `yaml:"name"`
	Nodes []string `yaml:"nodes"`
}

type yamlDisplay struct {
	Format    string   `yaml:"format"`
	Condition []string `yaml:"condition"`
	Values    []string `yaml:"values"`
}

type yamlTest struct {
	Unit       string          `yaml:"unit"`
	Limit      int             `yaml:"limit"`
	Completion []string        `yaml:"completion"`
	Assertions []yamlAssertion `yaml:"assertions"`
}

type yamlAssertion struct {
	Condition  []string `yaml:"condition"`
	Actual     []string `yaml:"actual"`
	Expected   []bool   `yaml:"expected"`
	SourceLine int      `yaml:"sourceLine"`
}

// env is the name resolution scope built while loading one unit: plain
// wire names, group names (for "name[bit]" references) and a lazily
// populated pair of constant wires for the "0"/"1" literals.
type env struct {
	unit    *circuit.Unit
	wires   map[string]int
	groups  map[string]circuit.Group
	zero    *int
	one     *int
}

func newEnv(u *circuit.Unit) *env {
	return &env{unit: u, wires: map[string]int{}, groups: map[string]circuit.Group{}}
}

func (e *env) resolve(ref string) (int, error) {
	switch ref {
	case "0":
		if e.zero == nil {
			idx := e.unit.AddConstant(false)
			e.zero = &idx
		}
		return *e.zero, nil
	case "1":
		if e.one == nil {
			idx := e.unit.AddConstant(true)
			e.one = &idx
		}
		return *e.one, nil
	}

	if open := strings.IndexByte(ref, '['); open >= 0 && strings.HasSuffix(ref, "]") {
		name := ref[:open]
		bitStr := ref[open+1 : len(ref)-1]
		bit, err := strconv.Atoi(bitStr)
		if err != nil {
			return 0, fmt.Errorf("yamlcirc: bad bit index in %q: %w", ref, err)
		}
		g, ok := e.groups[name]
		if !ok {
			return 0, fmt.Errorf("yamlcirc: no group named %q", name)
		}
		return g.Bit(bit)
	}

	if idx, ok := e.wires[ref]; ok {
		return idx, nil
	}
	// Fall back to the unit's own name table: element/sub-unit outputs
	// bound via NameWire during buildUnit are reachable this way without
	// the resolving env needing its own copy of that map.
	if idx, err := e.unit.Wire(ref); err == nil {
		return idx, nil
	}
	return 0, fmt.Errorf("yamlcirc: no wire named %q", ref)
}

func (e *env) resolveAll(refs []string) ([]int, error) {
	out := make([]int, len(refs))
	for i, r := range refs {
		idx, err := e.resolve(r)
		if err != nil {
			return nil, err
		}
		out[i] = idx
	}
	return out, nil
}

// bindOutputs names the freshly allocated output indices of an element or
// sub-unit instantiation, if names were supplied for them.
func (e *env) bindOutputs(names []string, indices []int) error {
	if names == nil {
		return nil
	}
	if len(names) != len(indices) {
		return fmt.Errorf("yamlcirc: output name count %d does not match output count %d", len(names), len(indices))
	}
	for i, name := range names {
		if name == "" {
			continue
		}
		e.wires[name] = indices[i]
		if err := e.unit.NameWire(name, indices[i]); err != nil {
			return err
		}
	}
	return nil
}

func buildUnit(name string, yu yamlUnit) (*circuit.Unit, error) {
	u := circuit.NewUnit(name)
	e := newEnv(u)

	for _, w := range yu.Wires {
		e.wires[w] = u.AddWire(w)
	}
	for _, g := range yu.Groups {
		e.groups[g.Name] = u.AddGroup(g.Name, g.Width)
	}

	for _, el := range yu.Elements {
		inputs, err := e.resolveAll(el.Inputs)
		if err != nil {
			return nil, fmt.Errorf("yamlcirc: unit %q element %q: %w", name, el.Name, err)
		}
		outputs, err := u.AppendElement(el.Name, el.Kind, el.Params, inputs, len(el.Outputs))
		if err != nil {
			return nil, fmt.Errorf("yamlcirc: unit %q element %q: %w", name, el.Name, err)
		}
		if err := e.bindOutputs(el.Outputs, outputs); err != nil {
			return nil, fmt.Errorf("yamlcirc: unit %q element %q: %w", name, el.Name, err)
		}
	}

	for _, su := range yu.Subunits {
		inputs, err := e.resolveAll(su.Inputs)
		if err != nil {
			return nil, fmt.Errorf("yamlcirc: unit %q sub-unit %q: %w", name, su.Name, err)
		}
		outputs, err := u.AppendSubunit(su.Name, su.Unit, inputs, len(su.Outputs))
		if err != nil {
			return nil, fmt.Errorf("yamlcirc: unit %q sub-unit %q: %w", name, su.Name, err)
		}
		if err := e.bindOutputs(su.Outputs, outputs); err != nil {
			return nil, fmt.Errorf("yamlcirc: unit %q sub-unit %q: %w", name, su.Name, err)
		}
	}

	for _, bp := range yu.Breakpoints {
		nodes, err := e.resolveAll(bp.Nodes)
		if err != nil {
			return nil, fmt.Errorf("yamlcirc: unit %q breakpoint %q: %w", name, bp.Name, err)
		}
		u.AppendBreakpoint(bp.Name, nodes)
	}

	for _, d := range yu.Displays {
		cond, err := e.resolveAll(d.Condition)
		if err != nil {
			return nil, fmt.Errorf("yamlcirc: unit %q display: %w", name, err)
		}
		values, err := e.resolveAll(d.Values)
		if err != nil {
			return nil, fmt.Errorf("yamlcirc: unit %q display: %w", name, err)
		}
		u.AppendDisplay(d.Format, cond, values)
	}

	for index, words := range yu.Rom {
		u.SetRomData(index, words)
	}

	inputs, err := e.resolveAll(yu.Inputs)
	if err != nil {
		return nil, fmt.Errorf("yamlcirc: unit %q inputs: %w", name, err)
	}
	if err := u.SetInputs(inputs); err != nil {
		return nil, err
	}
	outputs, err := e.resolveAll(yu.Outputs)
	if err != nil {
		return nil, fmt.Errorf("yamlcirc: unit %q outputs: %w", name, err)
	}
	if err := u.SetOutputs(outputs); err != nil {
		return nil, err
	}

	return u, nil
}

// Load unmarshals data into a populated circuit.Root.
func Load(data []byte) (*circuit.Root, error) {
	var doc yamlRoot
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("yamlcirc: parse: %w", err)
	}

	root := circuit.NewRoot()
	built := map[string]*circuit.Unit{}

	for name, yu := range doc.Units {
		u, err := buildUnit(name, yu)
		if err != nil {
			return nil, err
		}
		built[name] = u
		if err := root.AddUnit(u); err != nil {
			return nil, err
		}
	}

	for name, yt := range doc.Tests {
		u, ok := built[yt.Unit]
		if !ok {
			return nil, fmt.Errorf("yamlcirc: test %q references undeclared unit %q", name, yt.Unit)
		}

		limit := yt.Limit
		if limit <= 0 {
			limit = 1
		}
		t, err := circuit.NewTest(name, u, limit)
		if err != nil {
			return nil, err
		}

		// The test's node references name wires already declared (and, for
		// element/sub-unit outputs, already bound via NameWire) on its
		// driver unit, so resolve directly against the unit itself.
		e := newEnv(u)

		completion, err := e.resolveAll(yt.Completion)
		if err != nil {
			return nil, fmt.Errorf("yamlcirc: test %q completion: %w", name, err)
		}
		t.SetCompletion(completion)

		for _, ya := range yt.Assertions {
			cond, err := e.resolveAll(ya.Condition)
			if err != nil {
				return nil, fmt.Errorf("yamlcirc: test %q assertion: %w", name, err)
			}
			actual, err := e.resolveAll(ya.Actual)
			if err != nil {
				return nil, fmt.Errorf("yamlcirc: test %q assertion: %w", name, err)
			}
			if err := t.AppendAssertion(cond, actual, ya.Expected, ya.SourceLine); err != nil {
				return nil, fmt.Errorf("yamlcirc: test %q: %w", name, err)
			}
		}

		if err := root.AddTest(t); err != nil {
			return nil, err
		}
	}

	return root, nil
}

// LoadFile reads path and loads it the same way Load does.
func LoadFile(path string) (*circuit.Root, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("yamlcirc: read %q: %w", path, err)
	}
	return Load(data)
}
