package scene

import (
	"github.com/Yinigma/Pibald/common"
	"github.com/Yinigma/Pibald/engine/animstate"
	"github.com/Yinigma/Pibald/engine/camera"
	"github.com/Yinigma/Pibald/engine/light"
	"github.com/Yinigma/Pibald/engine/model"
	"github.com/go-gl/mathgl/mgl32"
)

// RenderState is the top-level scene-state container: a set of named
// groups, each holding its own model instances, lights, and cameras,
// sharing one id space so an id is unambiguous across every group
//. Single-threaded cooperative, per the core's concurrency
// model — no internal locking.
type RenderState struct {
	idGenerator *common.IdGenerator
	groups      map[common.Id]*RenderGroup
}

// NewRenderState builds an empty RenderState.
func NewRenderState() *RenderState {
	return &RenderState{
		idGenerator: common.NewIdGenerator(),
		groups:      make(map[common.Id]*RenderGroup),
	}
}

// AddGroup allocates a fresh id and creates an empty group under it.
func (s *RenderState) AddGroup() common.Id {
	id := s.idGenerator.Allocate()
	s.groups[id] = NewRenderGroup(id)
	return id
}

// GetGroups returns every group currently in the state.
func (s *RenderState) GetGroups() []*RenderGroup {
	out := make([]*RenderGroup, 0, len(s.groups))
	for _, g := range s.groups {
		out = append(out, g)
	}
	return out
}

// GetGroupMut returns the named group, or nil if groupId is unknown.
func (s *RenderState) GetGroupMut(groupId common.Id) *RenderGroup {
	return s.groups[groupId]
}

// AddStaticModel places m at tf in the named group.
//
// Returns:
//   - common.Id: the new instance's id
//   - bool: false if groupId names no group, in which case no id is allocated
func (s *RenderState) AddStaticModel(groupId common.Id, m model.StaticModel, tf mgl32.Mat4) (common.Id, bool) {
	group, ok := s.groups[groupId]
	if !ok {
		return common.Id{}, false
	}
	id := s.idGenerator.Allocate()
	group.addStaticModel(id, m, tf)
	return id, true
}

// AddAnimatedModel places m at tf in the named group, driven by state.
//
// Returns:
//   - common.Id: the new instance's id
//   - bool: false if groupId names no group
func (s *RenderState) AddAnimatedModel(groupId common.Id, m model.AnimatedModel, tf mgl32.Mat4, animState *animstate.AnimationState) (common.Id, bool) {
	group, ok := s.groups[groupId]
	if !ok {
		return common.Id{}, false
	}
	id := s.idGenerator.Allocate()
	group.addAnimatedModel(id, m, tf, animState)
	return id, true
}

// AddCamera places a new camera built from opts in the named group.
//
// Returns:
//   - common.Id: the new camera's id
//   - bool: false if groupId names no group
func (s *RenderState) AddCamera(groupId common.Id, opts ...camera.CameraOption) (common.Id, bool) {
	group, ok := s.groups[groupId]
	if !ok {
		return common.Id{}, false
	}
	id := s.idGenerator.Allocate()
	group.addCamera(id, camera.NewCamera(int(id.Index), opts...))
	return id, true
}

// AddSpotLight places a spot light built from descriptor in the named group.
//
// Returns:
//   - common.Id: the new light's id
//   - bool: false if groupId names no group
func (s *RenderState) AddSpotLight(groupId common.Id, descriptor light.SpotLightDescriptor) (common.Id, bool) {
	group, ok := s.groups[groupId]
	if !ok {
		return common.Id{}, false
	}
	id := s.idGenerator.Allocate()
	group.addSpotLight(id, descriptor)
	return id, true
}

// AddPointLight places a point light built from descriptor in the named
// group.
//
// Returns:
//   - common.Id: the new light's id
//   - bool: false if groupId names no group
func (s *RenderState) AddPointLight(groupId common.Id, descriptor light.PointLightDescriptor) (common.Id, bool) {
	group, ok := s.groups[groupId]
	if !ok {
		return common.Id{}, false
	}
	id := s.idGenerator.Allocate()
	group.addPointLight(id, descriptor)
	return id, true
}

// RemoveItem frees id and, if it was live, removes the entity it names
// from whichever group holds it. No-op if id was already free or unknown.
func (s *RenderState) RemoveItem(id common.Id) {
	if !s.idGenerator.Free(id) {
		return
	}
	for _, group := range s.groups {
		group.removeItem(id)
	}
}

// ClearDirtyState clears every group's added/removed change-sets and
// every entity's dirty bit. Called once per frame, after the GPU sync
// pipeline has observed both.
func (s *RenderState) ClearDirtyState() {
	for _, group := range s.groups {
		group.clearDirtyState()
	}
}
