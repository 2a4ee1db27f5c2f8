package shaderfx

import "github.com/Yinigma/Pibald/engine/expr"

// Shader is a complete procedural paint description: a set of placements
// and color maps, plus the default property values their expressions
// resolve free variables against.
type Shader struct {
	Id          string
	ColorMaps   []ColorMap
	Placements  []Placement
	DefaultArgs *expr.PropertyGroup
}

// CreatePropertiesInstance returns a fresh copy of this shader's default
// property values, ready for a ShaderInstance to override.
//
// Returns:
//   - *expr.PropertyGroup: an independent copy of DefaultArgs
func (s Shader) CreatePropertiesInstance() *expr.PropertyGroup {
	return s.DefaultArgs.Clone()
}

// CreateValueTableInstance builds an EvalTable pre-populated by evaluating
// this shader against its own defaults.
//
// Returns:
//   - *expr.EvalTable: a table seeded with the shader's default results
func (s Shader) CreateValueTableInstance() *expr.EvalTable {
	table := expr.NewEvalTable()
	s.Eval(s.DefaultArgs, table)
	return table
}

// Eval evaluates every expression reachable from this shader's placements
// and color maps against args, storing each successful result in dest
//. Evaluation order between placements and color maps is not
// observable; the only postcondition is that dest reflects each
// expression's most recent successful evaluation.
//
// Parameters:
//   - args: the property values free variables resolve against
//   - dest: the table receiving successful results
func (s Shader) Eval(args *expr.PropertyGroup, dest *expr.EvalTable) {
	for _, placement := range s.Placements {
		placement.Eval(args, dest)
	}
	for _, m := range s.ColorMaps {
		m.Eval(args, dest)
	}
}
