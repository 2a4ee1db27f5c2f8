// Package shaderfx holds the in-memory result of the procedural shader
// description language (C7): placements, color maps, and the SDF term
// trees that back them, every numeric leaf an expr.Expression. Parsing the
// source DSL into this tree is out of scope; this package only evaluates
// and samples it.
package shaderfx

import "github.com/Yinigma/Pibald/engine/expr"

// SDFOperator combines the results of the operand terms beneath it in an
// SDF stack.
type SDFOperator int

const (
	Minimum SDFOperator = iota
	Average
	Mask
	Round
	WaveSheet
	WaveRing
)

// SDFOperandKind tags which shape an SDFOperand describes.
type SDFOperandKind int

const (
	Circle SDFOperandKind = iota
	Rectangle
	Sphere
	Plane
	Polygon
	RegularPolygon
	PolyStar
)

// SDFOperand is a leaf shape term in an SDF stack. Every numeric field is
// itself an expr.Expression; which fields are meaningful depends on Kind.
type SDFOperand struct {
	Kind SDFOperandKind

	Transform expr.Expression

	// Circle, Sphere, RegularPolygon
	Radius expr.Expression

	// Rectangle
	Width  expr.Expression
	Height expr.Expression

	// Polygon
	Points []expr.Expression

	// RegularPolygon
	NumPoints expr.Expression

	// PolyStar
	PolyStarNumPoints  expr.Expression
	InnerRadius        expr.Expression
	OuterRadius        expr.Expression
}

// Eval updates dest with every expression reachable from this operand's
// numeric fields. Operator terms contribute no expressions of their own
// and are skipped by the caller.
func (o SDFOperand) Eval(args *expr.PropertyGroup, dest *expr.EvalTable) {
	dest.Update(o.Transform, args)
	switch o.Kind {
	case Circle, Sphere:
		dest.Update(o.Radius, args)
	case Rectangle:
		dest.Update(o.Width, args)
		dest.Update(o.Height, args)
	case Plane:
		// transform only
	case Polygon:
		for _, p := range o.Points {
			dest.Update(p, args)
		}
	case RegularPolygon:
		dest.Update(o.NumPoints, args)
		dest.Update(o.Radius, args)
	case PolyStar:
		dest.Update(o.PolyStarNumPoints, args)
		dest.Update(o.InnerRadius, args)
		dest.Update(o.OuterRadius, args)
	}
}

// SDFTerm is one node of an SDF stack: either an operator (Minimum,
// Average, Mask, Round, WaveSheet, WaveRing) or an operand shape. A
// tagged union, preferred here over an interface hierarchy.
type SDFTerm struct {
	IsOperator bool
	Operator   SDFOperator
	Operand    SDFOperand
}

// OperatorTerm builds an operator SDFTerm.
func OperatorTerm(op SDFOperator) SDFTerm {
	return SDFTerm{IsOperator: true, Operator: op}
}

// OperandTerm builds an operand SDFTerm.
func OperandTerm(operand SDFOperand) SDFTerm {
	return SDFTerm{IsOperator: false, Operand: operand}
}

// Eval updates dest with every expression reachable from this term.
// Operator terms carry no expressions and are a no-op.
func (t SDFTerm) Eval(args *expr.PropertyGroup, dest *expr.EvalTable) {
	if t.IsOperator {
		return
	}
	t.Operand.Eval(args, dest)
}
