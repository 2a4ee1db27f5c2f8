package animstate

import (
	"testing"

	"github.com/Yinigma/Pibald/common"
	"github.com/Yinigma/Pibald/engine/armature"
	"github.com/Yinigma/Pibald/engine/clip"
	"github.com/Yinigma/Pibald/engine/mixer"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
)

func singleBoneArmature() armature.Armature {
	root := armature.NewBone(-1, mgl32.Vec3{0, 0, 0}, mgl32.QuatIdent())
	return armature.NewArmature("single", []armature.Bone{root}, 0)
}

func TestArmatureLayer_UpdateAdvancesPortion(t *testing.T) {
	c := clip.NewAnimationClip(0, 30, 30)
	m := mixer.NewSingleClipMixer("idle", c)
	layer := NewLayerBuilder("base").AddMixer(m).WithStartingMixer("idle").Build()

	layer.Update(0.5) // half a second into a one-second clip
	assert.InDelta(t, 0.5, layer.portionIntoWorking.Val(), 1e-4)
}

func TestArmatureLayer_QueueClipMixerIgnoresUnknownMixer(t *testing.T) {
	layer := NewLayerBuilder("base").Build()
	layer.QueueClipMixer("nonexistent", 1.0)
	assert.Empty(t, layer.transitionQueue)
}

func TestAnimationState_UpdateProducesPose(t *testing.T) {
	arm := singleBoneArmature()
	track := clip.NewClipChannel([]clip.Key{{Frame: 0, Value: 0}, {Frame: 30, Value: 10}})
	c := clip.NewAnimationClip(0, 30, 30, clip.WithLocationTrack(0, 0, track))
	m := mixer.NewSingleClipMixer("idle", c)

	state := NewAnimationStateBuilder(arm, m).BaseStartingAnimation("idle").Build()
	state.Update(0.5)

	pose := state.Pose()
	assert.InDelta(t, 5.0, pose.Joints[0].Location[0], 1e-3)
}

func TestAnimationState_SetLayerWeightAffectsComposition(t *testing.T) {
	arm := singleBoneArmature()
	baseTrack := clip.NewClipChannel([]clip.Key{{Frame: 0, Value: 0}, {Frame: 30, Value: 0}})
	baseClip := clip.NewAnimationClip(0, 30, 30, clip.WithLocationTrack(0, 0, baseTrack))
	baseMixer := mixer.NewSingleClipMixer("rest", baseClip)

	overlayTrack := clip.NewClipChannel([]clip.Key{{Frame: 0, Value: 100}, {Frame: 30, Value: 100}})
	overlayClip := clip.NewAnimationClip(0, 30, 30, clip.WithLocationTrack(0, 0, overlayTrack))
	overlayMixer := mixer.NewSingleClipMixer("wave", overlayClip)

	overlayLayer := NewLayerBuilder("arms").
		WithWeight(common.Clamped(1)).
		AddMixer(overlayMixer).
		WithStartingMixer("wave")

	state := NewAnimationStateBuilder(arm, baseMixer).
		BaseStartingAnimation("rest").
		AddLayer(overlayLayer).
		Build()

	state.Update(0.1)
	pose := state.Pose()
	assert.InDelta(t, 100.0, pose.Joints[0].Location[0], 1e-2)
}
