package armature

import "github.com/go-gl/mathgl/mgl32"

// PoseTransform is a single joint's local-space offset from its bone's rest
// pose: location and scale are additive/multiplicative offsets, orientation
// is a rotation composed onto the bone's rest rotation.
type PoseTransform struct {
	Location    mgl32.Vec3
	Orientation mgl32.Quat
	Scale       mgl32.Vec3
}

// IdentityTransform returns the neutral PoseTransform: zero location, no
// rotation, unit scale.
//
// Returns:
//   - PoseTransform: the identity joint transform
func IdentityTransform() PoseTransform {
	return PoseTransform{Location: mgl32.Vec3{0, 0, 0}, Orientation: mgl32.QuatIdent(), Scale: mgl32.Vec3{1, 1, 1}}
}

// ToMatrix composes this joint transform into a single scale-rotate-translate
// matrix, matching common.ComposeTRS.
//
// Returns:
//   - mgl32.Mat4: the composed local transform
func (t PoseTransform) ToMatrix() mgl32.Mat4 {
	translate := mgl32.Translate3D(t.Location[0], t.Location[1], t.Location[2])
	rotate := t.Orientation.Mat4()
	scale := mgl32.Scale3D(t.Scale[0], t.Scale[1], t.Scale[2])
	return translate.Mul4(rotate).Mul4(scale)
}

// Pose is the complete set of per-joint transforms and scalar control
// values needed to draw an armature for one frame.
type Pose struct {
	Joints   []PoseTransform
	Controls []float32
}

// Clear resets every joint to identity and every control value to zero,
// the baseline the next add/mix pass builds on.
//
// Returns: none.
func (p *Pose) Clear() {
	for i := range p.Joints {
		p.Joints[i] = IdentityTransform()
	}
	for i := range p.Controls {
		p.Controls[i] = 0
	}
}

// Transforms computes, for every bone, the per-vertex skinning matrix:
// pose-in-world-space composed with the inverse of the bone's bind pose
//. Preconditions: armature and pose joint counts match, and
// dest/bindBuffer are each at least that long. On precondition failure the
// call is a no-op.
//
// Parameters:
//   - armature: the armature this pose was sampled against
//   - dest: receives the per-bone skinning matrix
//   - bindBuffer: scratch space receiving the per-bone world bind transform
func (p Pose) Transforms(armature Armature, dest []mgl32.Mat4, bindBuffer []mgl32.Mat4) {
	if len(armature.Bones) != len(p.Joints) || len(p.Joints) > len(dest) || len(p.Joints) > len(bindBuffer) {
		return
	}
	poseBuffer := make([]mgl32.Mat4, len(bindBuffer))
	identity := mgl32.Ident4()
	for i := range poseBuffer {
		poseBuffer[i] = identity
	}

	for i := range p.Joints {
		parent := armature.Bones[i].Parent
		parentPose := identity
		parentBind := identity
		if parent >= 0 {
			parentPose = poseBuffer[parent]
			parentBind = bindBuffer[parent]
		}
		bindBuffer[i] = parentBind.Mul4(armature.Bones[i].LocalTransform)
		poseBuffer[i] = parentPose.Mul4(armature.Bones[i].LocalTransform).Mul4(p.Joints[i].ToMatrix())
		dest[i] = poseBuffer[i].Mul4(bindBuffer[i].Inv())
	}
}
