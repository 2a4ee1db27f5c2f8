package expr

// PropertyGroup maps property names to typed Values. Assignment is type
// checked against any existing entry for the same name — the first Set for
// a name establishes that property's type, every later Set must agree.
type PropertyGroup struct {
	values map[string]Value
}

// NewPropertyGroup creates an empty PropertyGroup.
//
// Returns:
//   - *PropertyGroup: a new, empty group
func NewPropertyGroup() *PropertyGroup {
	return &PropertyGroup{values: make(map[string]Value)}
}

// Get looks up a property by name.
//
// Parameters:
//   - name: the property name
//
// Returns:
//   - Value: the stored value
//   - bool: true if name is present
func (g *PropertyGroup) Get(name string) (Value, bool) {
	v, ok := g.values[name]
	return v, ok
}

// Set assigns value to name. If name already has a value of a different
// Kind, the assignment is rejected and the group is left unchanged.
//
// Parameters:
//   - name: the property name
//   - value: the value to assign
//
// Returns:
//   - error: *PropertyTypeMismatchError if name exists with a different kind
func (g *PropertyGroup) Set(name string, value Value) error {
	if existing, ok := g.values[name]; ok && existing.Kind != value.Kind {
		return &PropertyTypeMismatchError{Property: name, ExpectedType: existing.Kind, GivenType: value.Kind}
	}
	g.values[name] = value
	return nil
}

// Define sets the default value and type for name, overriding any existing
// entry regardless of its kind. Used to seed a group's defaults (e.g. from
// a shader's PropertyGroup) before type-checked Set calls begin.
//
// Parameters:
//   - name: the property name
//   - value: the default value
func (g *PropertyGroup) Define(name string, value Value) {
	g.values[name] = value
}

// Names returns all property names currently defined in the group.
//
// Returns:
//   - []string: the property names
func (g *PropertyGroup) Names() []string {
	names := make([]string, 0, len(g.values))
	for name := range g.values {
		names = append(names, name)
	}
	return names
}

// Clone returns a deep-enough copy of the group (Values are plain structs,
// so a shallow map copy suffices) for seeding a new ShaderInstance's
// defaults without aliasing the source group's map.
//
// Returns:
//   - *PropertyGroup: an independent copy
func (g *PropertyGroup) Clone() *PropertyGroup {
	out := NewPropertyGroup()
	for k, v := range g.values {
		out.values[k] = v
	}
	return out
}
