package gpustore

import (
	"testing"

	"github.com/Yinigma/Pibald/common"
	"github.com/Yinigma/Pibald/engine/model"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGPUStaticVertex_MarshalLayout(t *testing.T) {
	v := GPUStaticVertex{Color: 3, Position: [3]float32{1, 2, 3}, Normal: [3]float32{0, 1, 0}}
	buf := v.Marshal()
	require.Len(t, buf, 28)
	assert.Equal(t, v.Size(), len(buf))
}

func TestGPUAnimatedVertex_MarshalEmbedsStatic(t *testing.T) {
	v := GPUAnimatedVertex{
		Static:     GPUStaticVertex{Color: 1, Position: [3]float32{1, 1, 1}, Normal: [3]float32{0, 0, 1}},
		RigWeights: [8]uint16{65535, 0, 0, 0, 0, 0, 0, 0},
		RigIds:     [8]uint8{0, 255, 255, 255, 255, 255, 255, 255},
	}
	buf := v.Marshal()
	require.Len(t, buf, 52)
	assert.Equal(t, v.Static.Marshal(), buf[0:28])
}

func TestStaticVertexLayout_AttributeOffsets(t *testing.T) {
	layout := StaticVertexLayout()
	require.Len(t, layout.Attributes, 3)
	assert.Equal(t, uint64(28), layout.ArrayStride)
	assert.EqualValues(t, 2, layout.Attributes[0].ShaderLocation)
	assert.EqualValues(t, 0, layout.Attributes[1].ShaderLocation)
	assert.EqualValues(t, 1, layout.Attributes[2].ShaderLocation)
	assert.EqualValues(t, 4, layout.Attributes[1].Offset)
	assert.EqualValues(t, 16, layout.Attributes[2].Offset)
}

func TestAnimatedVertexLayout_AppendsRigAttributes(t *testing.T) {
	layout := AnimatedVertexLayout()
	require.Len(t, layout.Attributes, 5)
	assert.Equal(t, uint64(52), layout.ArrayStride)
	assert.EqualValues(t, 3, layout.Attributes[3].ShaderLocation)
	assert.EqualValues(t, 28, layout.Attributes[3].Offset)
	assert.EqualValues(t, 4, layout.Attributes[4].ShaderLocation)
	assert.EqualValues(t, 44, layout.Attributes[4].Offset)
}

func testPolygons() []model.Polygon {
	return []model.Polygon{
		{Tris: []model.Triangle{{Indices: [3]uint32{0, 1, 2}}}},
		{Tris: []model.Triangle{{Indices: [3]uint32{2, 1, 3}}, {Indices: [3]uint32{3, 1, 4}}}},
	}
}

func TestFlattenIndices_ConcatenatesAllPolygons(t *testing.T) {
	indices := flattenIndices(testPolygons())
	assert.Equal(t, []uint32{0, 1, 2, 2, 1, 3, 3, 1, 4}, indices)
}

func TestFlattenMaterialIndices_SelectsNamedPolygonsOnly(t *testing.T) {
	polys := testPolygons()
	slot := model.ShaderSlot{Tris: []int{1}}
	indices := flattenMaterialIndices(polys, slot)
	assert.Equal(t, []uint32{2, 1, 3, 3, 1, 4}, indices)
}

func TestAnimatedVertexOf_PacksWeightsAndPadsUnusedSlots(t *testing.T) {
	v := model.AnimatedVertex{
		Vert: model.StaticVertex{Loc: mgl32.Vec3{1, 2, 3}, Col: 2, Normal: mgl32.Vec3{0, 1, 0}},
		Weights: []model.ArmatureWeight{
			{Weight: common.Clamped(1.0), Index: 5},
			{Weight: common.Clamped(0.5), Index: 7},
		},
	}
	gv := animatedVertexOf(v)

	assert.Equal(t, uint32(2), gv.Static.Color)
	assert.EqualValues(t, 65535, gv.RigWeights[0])
	assert.EqualValues(t, 5, gv.RigIds[0])
	assert.InDelta(t, 32768, gv.RigWeights[1], 1)
	assert.EqualValues(t, 7, gv.RigIds[1])
	for i := 2; i < numBonesPerVert; i++ {
		assert.EqualValues(t, 0, gv.RigWeights[i])
		assert.EqualValues(t, 255, gv.RigIds[i])
	}
}

func TestAnimatedVertexOf_DropsInfluencesBeyondBudget(t *testing.T) {
	weights := make([]model.ArmatureWeight, 10)
	for i := range weights {
		weights[i] = model.ArmatureWeight{Weight: common.Clamped(1.0), Index: i}
	}
	v := model.AnimatedVertex{Vert: model.StaticVertex{}, Weights: weights}
	gv := animatedVertexOf(v)

	for i := 0; i < numBonesPerVert; i++ {
		assert.EqualValues(t, i, gv.RigIds[i])
	}
}

func TestGPUMaterialId_DistinctModelsDoNotCollide(t *testing.T) {
	a := GPUMaterialId{ModelId: "cube", MaterialSlot: "body"}
	b := GPUMaterialId{ModelId: "sphere", MaterialSlot: "body"}
	assert.NotEqual(t, a, b)
	store := map[GPUMaterialId]int{a: 1, b: 2}
	assert.Equal(t, 1, store[a])
	assert.Equal(t, 2, store[b])
}
