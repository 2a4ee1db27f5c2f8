package armature

import (
	"testing"

	"github.com/Yinigma/Pibald/engine/clip"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
)

func emptyClip(t *testing.T) clip.AnimationClip {
	t.Helper()
	return clip.NewAnimationClip(0, 10, 30)
}

func TestTransforms_TwoBoneChainRestPoseIsIdentity(t *testing.T) {
	// A root bone and a child one unit further along X; sampling the
	// identity pose should produce identity skinning matrices everywhere,
	// since pose == bind in the rest configuration.
	root := NewBone(-1, mgl32.Vec3{0, 0, 0}, mgl32.QuatIdent())
	child := NewBone(0, mgl32.Vec3{1, 0, 0}, mgl32.QuatIdent())
	arm := NewArmature("chain", []Bone{root, child}, 0)

	pose := arm.EmptyPose()
	dest := make([]mgl32.Mat4, 2)
	bindBuf := make([]mgl32.Mat4, 2)
	pose.Transforms(arm, dest, bindBuf)

	identity := mgl32.Ident4()
	assert.InDeltaSlice(t, identity[:], dest[0][:], 1e-4)
	assert.InDeltaSlice(t, identity[:], dest[1][:], 1e-4)
}

func TestTransforms_PreconditionMismatchIsNoOp(t *testing.T) {
	root := NewBone(-1, mgl32.Vec3{0, 0, 0}, mgl32.QuatIdent())
	arm := NewArmature("single", []Bone{root}, 0)
	pose := arm.EmptyPose()

	dest := make([]mgl32.Mat4, 0) // too short: precondition fails
	bindBuf := make([]mgl32.Mat4, 1)

	assert.NotPanics(t, func() { pose.Transforms(arm, dest, bindBuf) })
}

func TestMixClip_LeavesUntrackedComponentsUnchanged(t *testing.T) {
	root := NewBone(-1, mgl32.Vec3{0, 0, 0}, mgl32.QuatIdent())
	arm := NewArmature("single", []Bone{root}, 0)
	pose := arm.EmptyPose()
	pose.Joints[0].Location = mgl32.Vec3{5, 6, 7}

	empty := emptyClip(t)
	pose.MixClip(empty, 0.5, 0, nil, 1.0)

	assert.Equal(t, mgl32.Vec3{5, 6, 7}, pose.Joints[0].Location)
}
