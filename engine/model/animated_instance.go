package model

import (
	"github.com/Yinigma/Pibald/common"
	"github.com/Yinigma/Pibald/engine/animstate"
	"github.com/Yinigma/Pibald/engine/armature"
	"github.com/Yinigma/Pibald/engine/expr"
	"github.com/Yinigma/Pibald/engine/shaderfx"
	"github.com/go-gl/mathgl/mgl32"
)

// AnimatedModelInstance is a skinned model placed in a scene group: a
// modelInstance plus a live AnimationState driving its pose.
type AnimatedModelInstance struct {
	id        common.Id
	modelId   string
	instance  modelInstance
	animState *animstate.AnimationState
	dirty     bool
}

// NewAnimatedModelInstance places template at tf under id, driven by state.
//
// Parameters:
//   - id: the instance's scene entity id
//   - template: the shared animated model template
//   - tf: the instance's initial world transform
//   - state: the animation state driving this instance's pose
//
// Returns:
//   - AnimatedModelInstance: the constructed instance, starting dirty
func NewAnimatedModelInstance(id common.Id, template AnimatedModel, tf mgl32.Mat4, state *animstate.AnimationState) AnimatedModelInstance {
	return AnimatedModelInstance{
		id:        id,
		modelId:   template.Id,
		instance:  newModelInstance(template.ModelData, tf),
		animState: state,
		dirty:     true,
	}
}

func (a *AnimatedModelInstance) Id() common.Id { return a.id }

func (a *AnimatedModelInstance) ModelId() string { return a.modelId }

// CurrentPose returns the instance's most recently computed pose.
func (a *AnimatedModelInstance) CurrentPose() armature.Pose { return a.animState.Pose() }

// SetTransform updates the instance's world transform and marks it dirty.
func (a *AnimatedModelInstance) SetTransform(tf mgl32.Mat4) {
	a.instance.setTransform(tf)
	a.dirty = true
}

// SetShaderProperty type-checks and assigns val to the named property of
// the named shader slot, marking the instance dirty regardless of outcome
// (matching the source, which flags dirty before checking the result).
//
// Returns:
//   - error: *NoSuchShaderSlotError, or a property type-mismatch error
func (a *AnimatedModelInstance) SetShaderProperty(shaderId, propertyName string, val expr.Value) error {
	a.dirty = true
	return a.instance.setShaderProperty(shaderId, propertyName, val)
}

// SetColor overrides a single palette slot and marks the instance dirty.
func (a *AnimatedModelInstance) SetColor(index int, c common.Color) {
	a.instance.setColor(index, c)
	a.dirty = true
}

// SetPalette replaces the instance's active color palette and marks it
// dirty.
func (a *AnimatedModelInstance) SetPalette(p ColorPalette) {
	a.instance.setPalette(p)
	a.dirty = true
}

// ClearDirtyState resets the instance's dirty bit.
func (a *AnimatedModelInstance) ClearDirtyState() { a.dirty = false }

func (a *AnimatedModelInstance) Dirty() bool { return a.dirty }

// Update advances the instance's animation state by dt and marks the
// instance dirty (its pose, hence its skinning matrices, changed).
func (a *AnimatedModelInstance) Update(dt float32) {
	a.animState.Update(dt)
	a.dirty = true
}

func (a *AnimatedModelInstance) BoundingBox() common.AABB { return a.instance.boundingBox() }

func (a *AnimatedModelInstance) Transform() mgl32.Mat4 { return a.instance.transform() }

func (a *AnimatedModelInstance) Colors() []common.Color { return a.instance.colors }

// AnimState returns the instance's animation state.
func (a *AnimatedModelInstance) AnimState() *animstate.AnimationState { return a.animState }

// ShaderInstance returns the named shader slot's live instance.
func (a *AnimatedModelInstance) ShaderInstance(id string) (*shaderfx.ShaderInstance, bool) {
	return a.instance.shaderInstance(id)
}
