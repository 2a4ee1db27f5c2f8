package shaderfx

import (
	"testing"

	"github.com/Yinigma/Pibald/engine/expr"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func constExpr(id uint16, v float32) expr.Expression {
	return expr.NewExpression(id, expr.OperandTerm(expr.LiteralOperand(expr.Scalar(v))))
}

func TestShader_EvalPopulatesEveryReachableExpression(t *testing.T) {
	placement := Placement{
		Index:     0,
		Transform: constExpr(1, 1.0),
		Kind:      TilePattern,
		TileOffset: constExpr(2, 2.0),
	}
	circle := OperandTerm(SDFOperand{Kind: Circle, Transform: constExpr(3, 0.0), Radius: constExpr(4, 5.0)})
	colorMap := ColorMap{
		Kind:     BinaryMap,
		Binary:   BinaryColorMap{Color: constExpr(5, 1.0)},
		SDFStack: []SDFTerm{circle, OperatorTerm(Minimum)},
	}

	shader := Shader{
		Id:          "test",
		Placements:  []Placement{placement},
		ColorMaps:   []ColorMap{colorMap},
		DefaultArgs: expr.NewPropertyGroup(),
	}

	table := expr.NewEvalTable()
	shader.Eval(shader.DefaultArgs, table)

	for _, id := range []uint16{1, 2, 3, 4, 5} {
		_, ok := table.Get(id)
		assert.True(t, ok, "expected expression %d to be evaluated", id)
	}
}

func TestShaderInstance_SetPropertyRejectsTypeChange(t *testing.T) {
	defaults := expr.NewPropertyGroup()
	defaults.Define("radius", expr.Scalar(1.0))
	shader := Shader{Id: "s", DefaultArgs: defaults}

	inst := NewShaderInstance(shader, nil)
	err := inst.SetProperty("radius", expr.Vector2(mgl32.Vec2{1, 2}))
	require.Error(t, err)
}

func TestShaderInstance_SetLinkToggleOutOfRangeIsNoOp(t *testing.T) {
	shader := Shader{Id: "s", DefaultArgs: expr.NewPropertyGroup()}
	inst := NewShaderInstance(shader, []ShaderValueLink{{PropertyName: "a"}})
	assert.NotPanics(t, func() { inst.SetLinkToggle(5, true) })
	assert.False(t, inst.Links[0].Active)
}

func TestColorMap_GradientEvalIncludesOuterGrad(t *testing.T) {
	inner := ColorGradient{
		ColorPoints: []ColorPoint{{Val: constExpr(10, 0), Color: constExpr(11, 1)}},
		MaxDistance: constExpr(12, 1),
	}
	outer := ColorGradient{
		ColorPoints: []ColorPoint{{Val: constExpr(13, 0), Color: constExpr(14, 1)}},
		MaxDistance: constExpr(15, 1),
	}
	m := ColorMap{Kind: GradientMap, Gradient: GradientColorMap{InnerGrad: inner, OuterGrad: &outer}}

	table := expr.NewEvalTable()
	m.Eval(expr.NewPropertyGroup(), table)

	for _, id := range []uint16{10, 11, 12, 13, 14, 15} {
		_, ok := table.Get(id)
		assert.True(t, ok)
	}
}
