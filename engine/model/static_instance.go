package model

import (
	"github.com/Yinigma/Pibald/common"
	"github.com/Yinigma/Pibald/engine/expr"
	"github.com/Yinigma/Pibald/engine/shaderfx"
	"github.com/go-gl/mathgl/mgl32"
)

// StaticModelInstance is a non-skinned model placed in a scene group: its
// own transform, active palette, per-slot shader properties, and dirty
// bit, all independent of every other instance sharing the same model.
type StaticModelInstance struct {
	id       common.Id
	modelId  string
	instance modelInstance
	dirty    bool
}

// NewStaticModelInstance places model at tf under id.
//
// Parameters:
//   - id: the instance's scene entity id
//   - model: the shared model template
//   - tf: the instance's initial world transform
//
// Returns:
//   - StaticModelInstance: the constructed instance, starting dirty
func NewStaticModelInstance(id common.Id, model StaticModel, tf mgl32.Mat4) StaticModelInstance {
	return StaticModelInstance{
		id:       id,
		modelId:  model.Id,
		instance: newModelInstance(model.ModelData, tf),
		dirty:    true,
	}
}

func (s *StaticModelInstance) Id() common.Id { return s.id }

func (s *StaticModelInstance) ModelId() string { return s.modelId }

// SetTransform updates the instance's world transform and marks it dirty.
func (s *StaticModelInstance) SetTransform(tf mgl32.Mat4) {
	s.instance.setTransform(tf)
	s.dirty = true
}

// SetShaderProperty type-checks and assigns val to the named property of
// the named shader slot.
//
// Returns:
//   - error: *NoSuchShaderSlotError, or a property type-mismatch error
func (s *StaticModelInstance) SetShaderProperty(shaderId, propertyName string, val expr.Value) error {
	return s.instance.setShaderProperty(shaderId, propertyName, val)
}

// SetPalette replaces the instance's active color palette and marks it
// dirty.
func (s *StaticModelInstance) SetPalette(p ColorPalette) {
	s.instance.setPalette(p)
	s.dirty = true
}

// SetColor overrides a single palette slot and marks the instance dirty.
func (s *StaticModelInstance) SetColor(index int, c common.Color) {
	s.instance.setColor(index, c)
	s.dirty = true
}

// ClearDirtyState resets the instance's dirty bit, normally called once
// per frame after the GPU sync pipeline has observed it.
func (s *StaticModelInstance) ClearDirtyState() { s.dirty = false }

func (s *StaticModelInstance) Dirty() bool { return s.dirty }

// ShaderInstance returns the named shader slot's live instance.
func (s *StaticModelInstance) ShaderInstance(id string) (*shaderfx.ShaderInstance, bool) {
	return s.instance.shaderInstance(id)
}

func (s *StaticModelInstance) BoundingBox() common.AABB { return s.instance.boundingBox() }

func (s *StaticModelInstance) Transform() mgl32.Mat4 { return s.instance.transform() }

func (s *StaticModelInstance) Colors() []common.Color { return s.instance.colors }
