package shaderfx

import "github.com/Yinigma/Pibald/engine/expr"

// GradientInterpolation selects how a ColorPoint blends into its neighbors.
type GradientInterpolation int

const (
	Linear GradientInterpolation = iota
	Step
)

// GradientExtrapolation selects how a gradient behaves past its last point.
type GradientExtrapolation int

const (
	LastColor GradientExtrapolation = iota
	Repeat
	RepeatReflect
)

// ColorPoint anchors a color at a position along a gradient.
type ColorPoint struct {
	Val             expr.Expression
	Color           expr.Expression
	Interpolation   GradientInterpolation
}

// ColorGradient is an ordered set of ColorPoints plus an extrapolation mode
// and a max-distance expression bounding the gradient's support.
type ColorGradient struct {
	Extrapolation GradientExtrapolation
	ColorPoints   []ColorPoint
	MaxDistance   expr.Expression
}

func (g ColorGradient) eval(args *expr.PropertyGroup, dest *expr.EvalTable) {
	dest.Update(g.MaxDistance, args)
	for _, p := range g.ColorPoints {
		dest.Update(p.Color, args)
		dest.Update(p.Val, args)
	}
}

// GradientColorMap paints by distance through an inner gradient and an
// optional outer gradient past the SDF support's boundary.
type GradientColorMap struct {
	InnerGrad ColorGradient
	OuterGrad *ColorGradient
}

// BinaryColorMap paints a single flat color across the whole SDF support.
type BinaryColorMap struct {
	Color expr.Expression
}

// ColorMapKind tags which variant of ColorMap is populated.
type ColorMapKind int

const (
	GradientMap ColorMapKind = iota
	BinaryMap
)

// ColorMap is a tagged union over Gradient/Binary paint, backed by an SDF
// term stack describing where the paint applies.
type ColorMap struct {
	Kind     ColorMapKind
	Gradient GradientColorMap
	Binary   BinaryColorMap
	SDFStack []SDFTerm
}

// Eval updates dest with every expression reachable from this color map:
// its SDF stack's operand terms, then its variant's color/value/distance
// expressions.
func (m ColorMap) Eval(args *expr.PropertyGroup, dest *expr.EvalTable) {
	for _, term := range m.SDFStack {
		term.Eval(args, dest)
	}
	switch m.Kind {
	case GradientMap:
		m.Gradient.InnerGrad.eval(args, dest)
		if m.Gradient.OuterGrad != nil {
			m.Gradient.OuterGrad.eval(args, dest)
		}
	case BinaryMap:
		dest.Update(m.Binary.Color, args)
	}
}
