package model

import (
	"testing"

	"github.com/Yinigma/Pibald/common"
	"github.com/Yinigma/Pibald/engine/animstate"
	"github.com/Yinigma/Pibald/engine/armature"
	"github.com/Yinigma/Pibald/engine/expr"
	"github.com/Yinigma/Pibald/engine/shaderfx"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func constExpr(id uint16, v float32) expr.Expression {
	return expr.NewExpression(id, expr.OperandTerm(expr.LiteralOperand(expr.Scalar(v))))
}

func tintShader(id string) shaderfx.Shader {
	return shaderfx.Shader{
		Id: id,
		ColorMaps: []shaderfx.ColorMap{
			{Kind: shaderfx.BinaryMap, Binary: shaderfx.BinaryColorMap{Color: constExpr(1, 1.0)}},
		},
		DefaultArgs: expr.NewPropertyGroup(),
	}
}

func testModel() Model {
	return Model{
		Polygons: []Polygon{{Tris: []Triangle{{Indices: [3]uint32{0, 1, 2}}}}},
		Palettes: []ColorPalette{
			{Colors: []common.Color{common.NewColor(1, 0, 0, 1), common.NewColor(0, 1, 0, 1)}},
		},
		DefaultPalette: 0,
		ShaderSlots: map[string]ShaderSlot{
			"body": {Tris: []int{0}, Shader: tintShader("body")},
		},
		MinBound: mgl32.Vec3{-1, -1, -1},
		MaxBound: mgl32.Vec3{1, 1, 1},
	}
}

func TestNewStaticModelInstance_SeedsFromModelDefaults(t *testing.T) {
	sm := StaticModel{Id: "cube", ModelData: testModel()}
	inst := NewStaticModelInstance(common.Id{Index: 1}, sm, mgl32.Ident4())

	assert.True(t, inst.Dirty())
	assert.Equal(t, "cube", inst.ModelId())
	assert.Len(t, inst.Colors(), 2)
	assert.Equal(t, common.NewAABB(mgl32.Vec3{-1, -1, -1}, mgl32.Vec3{1, 1, 1}), inst.BoundingBox())

	_, ok := inst.ShaderInstance("body")
	assert.True(t, ok)
	_, ok = inst.ShaderInstance("nonexistent")
	assert.False(t, ok)
}

func TestStaticModelInstance_SetTransformMarksDirty(t *testing.T) {
	sm := StaticModel{Id: "cube", ModelData: testModel()}
	inst := NewStaticModelInstance(common.Id{Index: 1}, sm, mgl32.Ident4())
	inst.ClearDirtyState()
	require.False(t, inst.Dirty())

	tf := mgl32.Translate3D(1, 2, 3)
	inst.SetTransform(tf)

	assert.True(t, inst.Dirty())
	assert.Equal(t, tf, inst.Transform())
}

func TestStaticModelInstance_SetShaderPropertyRejectsUnknownSlot(t *testing.T) {
	sm := StaticModel{Id: "cube", ModelData: testModel()}
	inst := NewStaticModelInstance(common.Id{Index: 1}, sm, mgl32.Ident4())

	err := inst.SetShaderProperty("nonexistent", "tint", expr.Scalar(1))
	var notFound *NoSuchShaderSlotError
	require.ErrorAs(t, err, &notFound)
}

func TestStaticModelInstance_SetColorAndPalette(t *testing.T) {
	sm := StaticModel{Id: "cube", ModelData: testModel()}
	inst := NewStaticModelInstance(common.Id{Index: 1}, sm, mgl32.Ident4())
	inst.ClearDirtyState()

	inst.SetColor(0, common.NewColor(0, 0, 1, 1))
	assert.True(t, inst.Dirty())
	assert.Equal(t, common.NewColor(0, 0, 1, 1), inst.Colors()[0])

	inst.ClearDirtyState()
	newPalette := ColorPalette{Colors: []common.Color{common.NewColor(1, 1, 1, 1)}}
	inst.SetPalette(newPalette)
	assert.True(t, inst.Dirty())
	require.Len(t, inst.Colors(), 1)
}

func singleBoneArmature() armature.Armature {
	return armature.NewArmature("arm", []armature.Bone{armature.NewBone(-1, mgl32.Vec3{}, mgl32.QuatIdent())}, 0)
}

func TestAnimatedModelInstance_UpdateAdvancesPoseAndMarksDirty(t *testing.T) {
	arm := singleBoneArmature()
	state := animstate.NewAnimationStateBuilder(arm).Build()

	am := AnimatedModel{Id: "hero", ModelData: testModel(), ArmatureId: "arm"}
	inst := NewAnimatedModelInstance(common.Id{Index: 2}, am, mgl32.Ident4(), state)
	inst.ClearDirtyState()
	require.False(t, inst.Dirty())

	inst.Update(0.1)
	assert.True(t, inst.Dirty())
	assert.Equal(t, state.Pose(), inst.CurrentPose())
}

func TestAnimatedModelInstance_SetShaderPropertyMarksDirtyEvenOnError(t *testing.T) {
	arm := singleBoneArmature()
	state := animstate.NewAnimationStateBuilder(arm).Build()
	am := AnimatedModel{Id: "hero", ModelData: testModel(), ArmatureId: "arm"}
	inst := NewAnimatedModelInstance(common.Id{Index: 2}, am, mgl32.Ident4(), state)
	inst.ClearDirtyState()

	err := inst.SetShaderProperty("nonexistent", "tint", expr.Scalar(1))
	require.Error(t, err)
	assert.True(t, inst.Dirty())
}
