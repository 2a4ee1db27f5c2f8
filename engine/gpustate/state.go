package gpustate

import (
	"github.com/Yinigma/Pibald/common"
	"github.com/Yinigma/Pibald/engine/camera"
	"github.com/Yinigma/Pibald/engine/scene"
	"github.com/cogentcore/webgpu/wgpu"
)

// GPUState is one render group's GPU mirror: its light store, and the
// per-camera, per-static-instance, and per-animated-instance GPU
// resources keyed by the same ids the group uses.
type GPUState struct {
	device *wgpu.Device
	queue  *wgpu.Queue

	cameraLayout   *wgpu.BindGroupLayout
	lightLayout    *wgpu.BindGroupLayout
	staticLayout   *wgpu.BindGroupLayout
	animatedLayout *wgpu.BindGroupLayout

	lights *GPULightStore

	cameras  map[common.Id]*GPUCamera
	statics  map[common.Id]*GPUStaticModelInstance
	animated map[common.Id]*GPUAnimatedModelInstance
}

// NewGPUState builds an empty GPU mirror for group, using the renderer's
// shared bind-group layouts (cameraLayout/lightLayout/staticLayout/
// animatedLayout must be the same layout objects the renderer's pipeline
// layouts were built from, so every group's bind groups stay compatible
// with the shared pipelines), and seeds its light store from whatever
// lights the group already holds.
func NewGPUState(group *scene.RenderGroup, device *wgpu.Device, queue *wgpu.Queue, cameraLayout, lightLayout, staticLayout, animatedLayout *wgpu.BindGroupLayout) (*GPUState, error) {
	lights, err := NewGPULightStore(group.GetPointLights(), group.GetSpotLights(), device, queue, lightLayout)
	if err != nil {
		return nil, err
	}

	return &GPUState{
		device:         device,
		queue:          queue,
		cameraLayout:   cameraLayout,
		lightLayout:    lightLayout,
		staticLayout:   staticLayout,
		animatedLayout: animatedLayout,
		lights:         lights,
		cameras:        make(map[common.Id]*GPUCamera),
		statics:        make(map[common.Id]*GPUStaticModelInstance),
		animated:       make(map[common.Id]*GPUAnimatedModelInstance),
	}, nil
}

// LightBindGroup returns the group's combined point/spot light bind
// group, for the renderer to bind at set 1.
func (s *GPUState) LightBindGroup() *wgpu.BindGroup { return s.lights.BindGroup }

// GetCamera returns the GPU mirror mounted under id, if any.
func (s *GPUState) GetCamera(id common.Id) (*GPUCamera, bool) {
	c, ok := s.cameras[id]
	return c, ok
}

// GetStaticInstance returns the GPU mirror for a static model instance.
func (s *GPUState) GetStaticInstance(id common.Id) (*GPUStaticModelInstance, bool) {
	i, ok := s.statics[id]
	return i, ok
}

// GetAnimatedInstance returns the GPU mirror for an animated model
// instance.
func (s *GPUState) GetAnimatedInstance(id common.Id) (*GPUAnimatedModelInstance, bool) {
	i, ok := s.animated[id]
	return i, ok
}

// AddCamera mounts cam's GPU resources (view-projection uniform, depth
// attachment sized to width x height) under id. Cameras are mounted by
// this explicit call rather than by Update's generic added-sets sweep,
// since only the caller knows the output viewport a camera renders into.
func (s *GPUState) AddCamera(id common.Id, cam camera.Camera, width, height uint32) error {
	gc, err := NewGPUCamera(cam, s.device, s.queue, s.cameraLayout, width, height)
	if err != nil {
		return err
	}
	s.cameras[id] = gc
	return nil
}

// RemoveCamera releases and unmounts the camera GPU mirror under id, a
// no-op if none exists. Symmetric with AddCamera: camera teardown is
// also outside Update's generic removed-sets sweep.
func (s *GPUState) RemoveCamera(id common.Id) {
	if gc, ok := s.cameras[id]; ok {
		gc.Destroy()
		delete(s.cameras, id)
	}
}

// Update consumes group's added/removed change-sets and every entity's
// dirty bit, in a fixed order: added static → removed static → dirty
// static; same for animated; then lights added →
// dirty → removed, independently for point and spot; then every camera
// whose GPU mirror exists. A missing mirror for any id is silently
// skipped rather than treated as an error.
func (s *GPUState) Update(group *scene.RenderGroup, device *wgpu.Device, queue *wgpu.Queue) error {
	for _, id := range group.GetAddedStaticModels() {
		inst, ok := group.GetStaticModel(id)
		if !ok {
			continue
		}
		gi, err := NewGPUStaticModelInstance(inst, s.staticLayout, device, queue)
		if err != nil {
			return err
		}
		s.statics[id] = gi
	}
	for _, id := range group.GetRemovedStaticModels() {
		if gi, ok := s.statics[id]; ok {
			gi.Destroy()
			delete(s.statics, id)
		}
	}
	for _, inst := range group.GetStaticModels() {
		if !inst.Dirty() {
			continue
		}
		if gi, ok := s.statics[inst.Id()]; ok {
			gi.UpdateStaticModelInstance(inst, queue)
		}
	}

	for _, id := range group.GetAddedAnimatedModels() {
		inst, ok := group.GetAnimatedModel(id)
		if !ok {
			continue
		}
		gi, err := NewGPUAnimatedModelInstance(inst, s.animatedLayout, device, queue)
		if err != nil {
			return err
		}
		s.animated[id] = gi
	}
	for _, id := range group.GetRemovedAnimatedModels() {
		if gi, ok := s.animated[id]; ok {
			gi.Destroy()
			delete(s.animated, id)
		}
	}
	for _, inst := range group.GetAnimatedModels() {
		if !inst.Dirty() {
			continue
		}
		if gi, ok := s.animated[inst.Id()]; ok {
			gi.UpdateAnimatedModelInstance(inst, queue)
		}
	}

	for _, id := range group.GetAddedPointLights() {
		if l, ok := group.GetPointLight(id); ok {
			s.lights.AddPointLight(l)
		}
	}
	for _, l := range group.GetPointLights() {
		if l.IsDirty() {
			s.lights.UpdatePointLight(l)
		}
	}
	for _, id := range group.GetRemovedPointLights() {
		s.lights.RemovePointLight(int(id.Index))
	}

	for _, id := range group.GetAddedSpotLights() {
		if l, ok := group.GetSpotLight(id); ok {
			s.lights.AddSpotLight(l)
		}
	}
	for _, l := range group.GetSpotLights() {
		if l.IsDirty() {
			s.lights.UpdateSpotLight(l)
		}
	}
	for _, id := range group.GetRemovedSpotLights() {
		s.lights.RemoveSpotLight(int(id.Index))
	}

	for id, gc := range s.cameras {
		if cam, ok := group.GetCamera(id); ok {
			gc.UpdateCamera(cam, queue)
		}
	}

	return nil
}
