package shaderfx

import "github.com/Yinigma/Pibald/engine/expr"

// PlacementKind tags whether a Placement repeats via a tile offset or
// applies once.
type PlacementKind int

const (
	Singular PlacementKind = iota
	TilePattern
)

// Placement positions one instance (or a tiled repetition) of a shader's
// paint within its local space.
type Placement struct {
	Index      uint32
	Transform  expr.Expression
	Kind       PlacementKind
	TileOffset expr.Expression // meaningful only when Kind == TilePattern
}

// Eval updates dest with this placement's transform and, for a tiled
// placement, its tile-offset expression.
func (p Placement) Eval(args *expr.PropertyGroup, dest *expr.EvalTable) {
	dest.Update(p.Transform, args)
	if p.Kind == TilePattern {
		dest.Update(p.TileOffset, args)
	}
}
