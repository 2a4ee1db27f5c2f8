package scene

import (
	"testing"

	"github.com/Yinigma/Pibald/common"
	"github.com/Yinigma/Pibald/engine/camera"
	"github.com/Yinigma/Pibald/engine/light"
	"github.com/Yinigma/Pibald/engine/model"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testStaticModel() model.StaticModel {
	return model.StaticModel{
		Id: "cube",
		ModelData: model.Model{
			Palettes:       []model.ColorPalette{{Colors: []common.Color{common.NewColor(1, 1, 1, 1)}}},
			DefaultPalette: 0,
			ShaderSlots:    map[string]model.ShaderSlot{},
			MinBound:       mgl32.Vec3{-1, -1, -1},
			MaxBound:       mgl32.Vec3{1, 1, 1},
		},
	}
}

func TestRenderState_AddStaticModel_RequiresExistingGroup(t *testing.T) {
	s := NewRenderState()
	_, ok := s.AddStaticModel(common.Id{Index: 99}, testStaticModel(), mgl32.Ident4())
	assert.False(t, ok)
}

func TestRenderState_AddStaticModel_TracksAddedSet(t *testing.T) {
	s := NewRenderState()
	groupId := s.AddGroup()

	id, ok := s.AddStaticModel(groupId, testStaticModel(), mgl32.Ident4())
	require.True(t, ok)

	group := s.GetGroupMut(groupId)
	require.NotNil(t, group)
	assert.Equal(t, []common.Id{id}, group.GetAddedStaticModels())

	s.ClearDirtyState()
	assert.Empty(t, group.GetAddedStaticModels())
}

func TestRenderState_RemoveItem_TracksRemovedSetAndFreesId(t *testing.T) {
	s := NewRenderState()
	groupId := s.AddGroup()
	id, _ := s.AddStaticModel(groupId, testStaticModel(), mgl32.Ident4())

	s.RemoveItem(id)

	group := s.GetGroupMut(groupId)
	assert.Equal(t, []common.Id{id}, group.GetRemovedStaticModels())
	_, stillThere := group.GetStaticModel(id)
	assert.False(t, stillThere)
}

func TestRenderState_RemoveItem_UnknownIdIsNoOp(t *testing.T) {
	s := NewRenderState()
	groupId := s.AddGroup()
	s.RemoveItem(common.Id{Index: 12345})
	group := s.GetGroupMut(groupId)
	assert.Empty(t, group.GetRemovedStaticModels())
}

func TestRenderGroup_GetStaticModelMut_MutatesStoredInstance(t *testing.T) {
	s := NewRenderState()
	groupId := s.AddGroup()
	id, _ := s.AddStaticModel(groupId, testStaticModel(), mgl32.Ident4())
	group := s.GetGroupMut(groupId)

	tf := mgl32.Translate3D(1, 2, 3)
	group.GetStaticModelMut(id).SetTransform(tf)

	inst, _ := group.GetStaticModel(id)
	assert.Equal(t, tf, inst.Transform())
}

func TestRenderGroup_GetStaticModelsCulled_FiltersAndSortsByDepth(t *testing.T) {
	s := NewRenderState()
	groupId := s.AddGroup()

	near, _ := s.AddStaticModel(groupId, testStaticModel(), mgl32.Translate3D(0, 0, 2))
	far, _ := s.AddStaticModel(groupId, testStaticModel(), mgl32.Translate3D(0, 0, 10))
	_, _ = s.AddStaticModel(groupId, testStaticModel(), mgl32.Translate3D(1000, 0, 0))

	cam := camera.NewCamera(1,
		camera.WithLocation(mgl32.Vec3{0, 0, -5}),
		camera.WithForward(mgl32.Vec3{0, 0, 1}),
		camera.WithUp(mgl32.Vec3{0, 1, 0}),
		camera.WithLens(1.0472, 1.0, 0.1, 100),
	)

	group := s.GetGroupMut(groupId)
	culled := group.GetStaticModelsCulled(cam)

	require.Len(t, culled, 2)
	assert.Equal(t, near, culled[0].Id())
	assert.Equal(t, far, culled[1].Id())
}

func TestRenderState_LightSlotLifecycle(t *testing.T) {
	s := NewRenderState()
	groupId := s.AddGroup()

	_, _ = s.AddPointLight(groupId, light.NewPointLightDescriptor())
	b, _ := s.AddPointLight(groupId, light.NewPointLightDescriptor())
	_, _ = s.AddPointLight(groupId, light.NewPointLightDescriptor())

	group := s.GetGroupMut(groupId)
	assert.Len(t, group.GetPointLights(), 3)
	assert.Len(t, group.GetAddedPointLights(), 3)

	s.RemoveItem(b)
	assert.Len(t, group.GetPointLights(), 2)
	assert.Equal(t, []common.Id{b}, group.GetRemovedPointLights())
}
