// Package scene implements the scene-state container: groups of placed
// model instances, lights, and cameras, plus the per-frame added/removed
// change-sets and dirty-bit bookkeeping the GPU sync pipeline consumes.
package scene

import (
	"github.com/Yinigma/Pibald/common"
	"github.com/Yinigma/Pibald/engine/animstate"
	"github.com/Yinigma/Pibald/engine/camera"
	"github.com/Yinigma/Pibald/engine/light"
	"github.com/Yinigma/Pibald/engine/model"
	"github.com/go-gl/mathgl/mgl32"
)

// RenderGroup is one named bucket of scene entities: model instances,
// lights, and cameras, each independently CRUD-addressable by common.Id,
// with added/removed id lists tracking this frame's membership changes.
// Entities are stored by pointer so a GetXMut call mutates the same
// instance the group holds, not a detached copy.
type RenderGroup struct {
	id common.Id

	staticModels   map[common.Id]*model.StaticModelInstance
	animatedModels map[common.Id]*model.AnimatedModelInstance
	cameras        map[common.Id]camera.Camera
	spotLights     map[common.Id]*light.SpotLight
	pointLights    map[common.Id]*light.PointLight

	addedStaticModels, removedStaticModels     []common.Id
	addedAnimatedModels, removedAnimatedModels []common.Id
	addedPointLights, removedPointLights       []common.Id
	addedSpotLights, removedSpotLights         []common.Id
	addedCameras, removedCameras               []common.Id
}

// NewRenderGroup builds an empty group under id.
func NewRenderGroup(id common.Id) *RenderGroup {
	return &RenderGroup{
		id:             id,
		staticModels:   make(map[common.Id]*model.StaticModelInstance),
		animatedModels: make(map[common.Id]*model.AnimatedModelInstance),
		cameras:        make(map[common.Id]camera.Camera),
		spotLights:     make(map[common.Id]*light.SpotLight),
		pointLights:    make(map[common.Id]*light.PointLight),
	}
}

func (g *RenderGroup) Id() common.Id { return g.id }

// GetCameras returns every camera currently in the group.
func (g *RenderGroup) GetCameras() []camera.Camera {
	out := make([]camera.Camera, 0, len(g.cameras))
	for _, c := range g.cameras {
		out = append(out, c)
	}
	return out
}

// GetCameraIds returns the ids of every camera currently in the group,
// for callers (the renderer's frame loop) that need to look a camera's
// GPU mirror and output view up by id rather than hold the Camera value
// itself.
func (g *RenderGroup) GetCameraIds() []common.Id {
	out := make([]common.Id, 0, len(g.cameras))
	for id := range g.cameras {
		out = append(out, id)
	}
	return out
}

// GetStaticModels returns every static model instance in the group.
func (g *RenderGroup) GetStaticModels() []*model.StaticModelInstance {
	out := make([]*model.StaticModelInstance, 0, len(g.staticModels))
	for _, m := range g.staticModels {
		out = append(out, m)
	}
	return out
}

// GetAnimatedModels returns every animated model instance in the group.
func (g *RenderGroup) GetAnimatedModels() []*model.AnimatedModelInstance {
	out := make([]*model.AnimatedModelInstance, 0, len(g.animatedModels))
	for _, m := range g.animatedModels {
		out = append(out, m)
	}
	return out
}

func (g *RenderGroup) GetSpotLights() []*light.SpotLight {
	out := make([]*light.SpotLight, 0, len(g.spotLights))
	for _, l := range g.spotLights {
		out = append(out, l)
	}
	return out
}

func (g *RenderGroup) GetPointLights() []*light.PointLight {
	out := make([]*light.PointLight, 0, len(g.pointLights))
	for _, l := range g.pointLights {
		out = append(out, l)
	}
	return out
}

// cameraDistance projects an instance's transform translation onto the
// camera's forward axis, giving a sortable (not true-metric) depth value.
func cameraDistance(cam camera.Camera, tf mgl32.Mat4) float32 {
	loc := mgl32.Vec3{tf[12], tf[13], tf[14]}
	return loc.Sub(cam.Location()).Dot(cam.Forward())
}

// GetStaticModelsCulled returns the group's static model instances visible
// from cam, sorted near-to-far along the camera's forward axis.
func (g *RenderGroup) GetStaticModelsCulled(cam camera.Camera) []*model.StaticModelInstance {
	dest := make([]*model.StaticModelInstance, 0, len(g.staticModels))
	for _, m := range g.staticModels {
		if cam.BBoxInView(m.BoundingBox(), m.Transform()) {
			dest = append(dest, m)
		}
	}
	sortByCameraDistance(dest, cam, func(m *model.StaticModelInstance) mgl32.Mat4 { return m.Transform() })
	return dest
}

// GetAnimatedModelsCulled returns the group's animated model instances
// visible from cam, sorted near-to-far along the camera's forward axis.
func (g *RenderGroup) GetAnimatedModelsCulled(cam camera.Camera) []*model.AnimatedModelInstance {
	dest := make([]*model.AnimatedModelInstance, 0, len(g.animatedModels))
	for _, m := range g.animatedModels {
		if cam.BBoxInView(m.BoundingBox(), m.Transform()) {
			dest = append(dest, m)
		}
	}
	sortByCameraDistance(dest, cam, func(m *model.AnimatedModelInstance) mgl32.Mat4 { return m.Transform() })
	return dest
}

// sortByCameraDistance is a small insertion sort — group sizes are small
// enough per frame that this beats pulling in sort.Slice's overhead and
// keeps the comparison (which itself does vector math) easy to read.
func sortByCameraDistance[T any](items []T, cam camera.Camera, transformOf func(T) mgl32.Mat4) {
	for i := 1; i < len(items); i++ {
		j := i
		for j > 0 && cameraDistance(cam, transformOf(items[j-1])) > cameraDistance(cam, transformOf(items[j])) {
			items[j-1], items[j] = items[j], items[j-1]
			j--
		}
	}
}

// -- create --

func (g *RenderGroup) addStaticModel(id common.Id, m model.StaticModel, tf mgl32.Mat4) {
	inst := model.NewStaticModelInstance(id, m, tf)
	g.staticModels[id] = &inst
	g.addedStaticModels = append(g.addedStaticModels, id)
}

func (g *RenderGroup) addAnimatedModel(id common.Id, m model.AnimatedModel, tf mgl32.Mat4, state *animstate.AnimationState) {
	inst := model.NewAnimatedModelInstance(id, m, tf, state)
	g.animatedModels[id] = &inst
	g.addedAnimatedModels = append(g.addedAnimatedModels, id)
}

func (g *RenderGroup) addCamera(id common.Id, cam camera.Camera) {
	g.cameras[id] = cam
	g.addedCameras = append(g.addedCameras, id)
}

func (g *RenderGroup) addSpotLight(id common.Id, descriptor light.SpotLightDescriptor) {
	l := light.NewSpotLight(int(id.Index), descriptor)
	g.spotLights[id] = &l
	g.addedSpotLights = append(g.addedSpotLights, id)
}

func (g *RenderGroup) addPointLight(id common.Id, descriptor light.PointLightDescriptor) {
	l := light.NewPointLight(int(id.Index), descriptor)
	g.pointLights[id] = &l
	g.addedPointLights = append(g.addedPointLights, id)
}

// -- read --

func (g *RenderGroup) GetStaticModel(id common.Id) (*model.StaticModelInstance, bool) {
	m, ok := g.staticModels[id]
	return m, ok
}

func (g *RenderGroup) GetAnimatedModel(id common.Id) (*model.AnimatedModelInstance, bool) {
	m, ok := g.animatedModels[id]
	return m, ok
}

func (g *RenderGroup) GetCamera(id common.Id) (camera.Camera, bool) {
	c, ok := g.cameras[id]
	return c, ok
}

func (g *RenderGroup) GetPointLight(id common.Id) (*light.PointLight, bool) {
	l, ok := g.pointLights[id]
	return l, ok
}

func (g *RenderGroup) GetSpotLight(id common.Id) (*light.SpotLight, bool) {
	l, ok := g.spotLights[id]
	return l, ok
}

// -- update --
//
// Entities are already stored by pointer, so the mutable accessors are
// identical to the read accessors minus the "present" bool — callers
// mutate the returned pointer directly. Kept as separate named methods
// (rather than reusing the Get* accessors) to mirror the read/update
// split the source makes explicit.

func (g *RenderGroup) GetStaticModelMut(id common.Id) *model.StaticModelInstance {
	return g.staticModels[id]
}

func (g *RenderGroup) GetAnimatedModelMut(id common.Id) *model.AnimatedModelInstance {
	return g.animatedModels[id]
}

func (g *RenderGroup) GetPointLightMut(id common.Id) *light.PointLight {
	return g.pointLights[id]
}

func (g *RenderGroup) GetSpotLightMut(id common.Id) *light.SpotLight {
	return g.spotLights[id]
}

// removeItem removes id from whichever entity map holds it, recording it
// on that kind's removed list. No-op if id isn't present in any map.
func (g *RenderGroup) removeItem(id common.Id) {
	if _, ok := g.animatedModels[id]; ok {
		delete(g.animatedModels, id)
		g.removedAnimatedModels = append(g.removedAnimatedModels, id)
		return
	}
	if _, ok := g.staticModels[id]; ok {
		delete(g.staticModels, id)
		g.removedStaticModels = append(g.removedStaticModels, id)
		return
	}
	if _, ok := g.cameras[id]; ok {
		delete(g.cameras, id)
		g.removedCameras = append(g.removedCameras, id)
		return
	}
	if _, ok := g.pointLights[id]; ok {
		delete(g.pointLights, id)
		g.removedPointLights = append(g.removedPointLights, id)
		return
	}
	if _, ok := g.spotLights[id]; ok {
		delete(g.spotLights, id)
		g.removedSpotLights = append(g.removedSpotLights, id)
		return
	}
}

// clearDirtyState empties every added/removed change-set and clears each
// entity's own dirty bit, normally called once per frame after the GPU
// sync pipeline has observed both.
func (g *RenderGroup) clearDirtyState() {
	g.addedStaticModels = nil
	g.removedStaticModels = nil
	g.addedAnimatedModels = nil
	g.removedAnimatedModels = nil
	g.addedPointLights = nil
	g.removedPointLights = nil
	g.addedSpotLights = nil
	g.removedSpotLights = nil
	g.addedCameras = nil
	g.removedCameras = nil

	for _, m := range g.staticModels {
		m.ClearDirtyState()
	}
	for _, m := range g.animatedModels {
		m.ClearDirtyState()
	}
	for _, l := range g.spotLights {
		l.ClearDirtyState()
	}
	for _, l := range g.pointLights {
		l.ClearDirtyState()
	}
}

func (g *RenderGroup) GetAddedStaticModels() []common.Id   { return g.addedStaticModels }
func (g *RenderGroup) GetRemovedStaticModels() []common.Id { return g.removedStaticModels }

func (g *RenderGroup) GetAddedAnimatedModels() []common.Id   { return g.addedAnimatedModels }
func (g *RenderGroup) GetRemovedAnimatedModels() []common.Id { return g.removedAnimatedModels }

func (g *RenderGroup) GetAddedSpotLights() []common.Id   { return g.addedSpotLights }
func (g *RenderGroup) GetRemovedSpotLights() []common.Id { return g.removedSpotLights }

func (g *RenderGroup) GetAddedPointLights() []common.Id   { return g.addedPointLights }
func (g *RenderGroup) GetRemovedPointLights() []common.Id { return g.removedPointLights }

func (g *RenderGroup) GetAddedCameras() []common.Id   { return g.addedCameras }
func (g *RenderGroup) GetRemovedCameras() []common.Id { return g.removedCameras }
