// Package armature holds the skeleton (Armature/Bone) and per-frame pose
// (Pose/PoseTransform) types that animation clips are sampled into, plus the
// world-space skinning matrix sweep (C3).
package armature

import "github.com/go-gl/mathgl/mgl32"

// Bone is one joint of an Armature's rest-pose hierarchy.
type Bone struct {
	// Parent is the index of this bone's parent, or -1 for a root bone.
	Parent int
	// LocalTransform is the bone's rest-pose transform relative to its parent.
	LocalTransform mgl32.Mat4
}

// NewBone builds a Bone from a parent index and a location/rotation pair.
//
// Parameters:
//   - parent: the parent bone index, or -1 for a root bone
//   - loc: the bone's local translation
//   - rot: the bone's local rotation
//
// Returns:
//   - Bone: the constructed bone
func NewBone(parent int, loc mgl32.Vec3, rot mgl32.Quat) Bone {
	t := mgl32.Translate3D(loc[0], loc[1], loc[2])
	return Bone{Parent: parent, LocalTransform: t.Mul4(rot.Mat4())}
}

// Armature is a named bone hierarchy. Bones must be ordered so that every
// parent index precedes its children.
type Armature struct {
	id    string
	Bones []Bone
	// NumControls is the number of non-skeletal scalar control values this
	// armature's poses carry alongside joint transforms.
	NumControls int
}

// NewArmature builds an Armature from an id and an already parent-ordered
// bone list.
//
// Parameters:
//   - id: the armature's identifier
//   - bones: the bone list, parents preceding children
//   - numControls: the number of scalar control channels
//
// Returns:
//   - Armature: the constructed armature
func NewArmature(id string, bones []Bone, numControls int) Armature {
	return Armature{id: id, Bones: bones, NumControls: numControls}
}

// Id returns the armature's identifier.
func (a Armature) Id() string { return a.id }

// NumBones returns the number of bones in the armature.
//
// Returns:
//   - int: the bone count
func (a Armature) NumBones() int {
	return len(a.Bones)
}

// EmptyPose builds a Pose sized for this armature, every joint at identity
// and every control value at zero.
//
// Returns:
//   - Pose: a fresh identity pose
func (a Armature) EmptyPose() Pose {
	joints := make([]PoseTransform, len(a.Bones))
	for i := range joints {
		joints[i] = IdentityTransform()
	}
	return Pose{Joints: joints, Controls: make([]float32, a.NumControls)}
}
