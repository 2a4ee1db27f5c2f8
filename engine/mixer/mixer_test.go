package mixer

import (
	"testing"

	"github.com/Yinigma/Pibald/common"
	"github.com/Yinigma/Pibald/engine/armature"
	"github.com/Yinigma/Pibald/engine/clip"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
)

func singleBoneArmature() armature.Armature {
	root := armature.NewBone(-1, mgl32.Vec3{0, 0, 0}, mgl32.QuatIdent())
	return armature.NewArmature("single", []armature.Bone{root}, 0)
}

func TestSingleClipMixer_MixToPoseForwardsToClip(t *testing.T) {
	track := clip.NewClipChannel([]clip.Key{{Frame: 0, Value: 0}, {Frame: 10, Value: 10}})
	c := clip.NewAnimationClip(0, 10, 30, clip.WithLocationTrack(0, 0, track))
	m := NewSingleClipMixer("walk", c)

	arm := singleBoneArmature()
	pose := arm.EmptyPose()
	m.MixToPose(Override, common.Clamped(0.5), nil, 1.0, &pose)

	assert.InDelta(t, 5.0, pose.Joints[0].Location[0], 1e-4)
}

func TestLinearBlendMixer_BlendWeightZeroAtStartPoint(t *testing.T) {
	slow := clip.NewAnimationClip(0, 10, 30)
	fast := clip.NewAnimationClip(0, 10, 30)
	blend := LinearBlendMixer{
		Points: []BlendPoint{{Pos: 0, Clip: slow}, {Pos: 1, Clip: fast}},
		Blend:  0,
	}
	assert.InDelta(t, 0.0, blend.blendWeight(), 1e-6)
}

func TestLinearBlendMixer_BlendWeightMidpoint(t *testing.T) {
	slow := clip.NewAnimationClip(0, 10, 30)
	fast := clip.NewAnimationClip(0, 10, 30)
	blend := LinearBlendMixer{
		Points: []BlendPoint{{Pos: 0, Clip: slow}, {Pos: 2, Clip: fast}},
		Blend:  1,
	}
	// Only the point at pos 0 has pos <= blend, so startPoint and endPoint
	// both select it and the weight is zero.
	assert.InDelta(t, 0.0, blend.blendWeight(), 1e-6)
}

func TestLinearBlendMixer_BelowEveryPointFallsBackToBoundaries(t *testing.T) {
	// blend below every point's pos: startPoint has no candidate with
	// pos<=blend so it falls back to the last point, endPoint finds the
	// first point (its pos is also > blend doesn't matter, first scan
	// still returns it as soon as a pos<=blend match exists; with none
	// matching, endPoint falls back to the first point too).
	a := clip.NewAnimationClip(0, 10, 30)
	b := clip.NewAnimationClip(0, 20, 30)
	blend := LinearBlendMixer{
		Points: []BlendPoint{{Pos: 5, Clip: a}, {Pos: 10, Clip: b}},
		Blend:  -1,
	}
	start := blend.startPoint()
	end := blend.endPoint()
	assert.Equal(t, b, start.Clip)
	assert.Equal(t, a, end.Clip)
}

func TestClipMixer_DurationSecondsSingle(t *testing.T) {
	c := clip.NewAnimationClip(0, 30, 30)
	m := NewSingleClipMixer("idle", c)
	assert.Equal(t, float32(1.0), m.DurationSeconds())
}
