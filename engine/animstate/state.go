package animstate

import (
	"github.com/Yinigma/Pibald/common"
	"github.com/Yinigma/Pibald/engine/armature"
	"github.com/go-gl/mathgl/mgl32"
)

// AnimationState composes a base layer and any number of additional
// weighted layers into a single current pose.
type AnimationState struct {
	armature    armature.Armature
	currentPose armature.Pose
	baseLayer   *ArmatureLayer
	layers      []*ArmatureLayer
}

// Pose returns the state's most recently computed pose.
func (s *AnimationState) Pose() armature.Pose { return s.currentPose }

// Armature returns the skeleton this state's poses are sampled against.
func (s *AnimationState) Armature() armature.Armature { return s.armature }

// Update advances every layer by dt, then recomposes the current pose:
// layers are weighted back-to-front so the last-added layer takes
// precedence, with the base layer absorbing whatever weight remains.
//
// Parameters:
//   - dt: elapsed time in seconds
func (s *AnimationState) Update(dt float32) {
	s.baseLayer.Update(dt)
	for _, l := range s.layers {
		l.Update(dt)
	}

	normalizedWeights := make([]float32, 0, len(s.layers))
	baseWeight := float32(0)
	for i := len(s.layers) - 1; i >= 0; i-- {
		last := float32(0)
		if len(normalizedWeights) > 0 {
			last = normalizedWeights[len(normalizedWeights)-1]
		}
		w := (1 - last) * s.layers[i].Weight().Val()
		normalizedWeights = append(normalizedWeights, w)
		baseWeight += w
	}

	s.currentPose.Clear()
	s.baseLayer.ApplyToPose(&s.currentPose, common.Clamped(1-baseWeight))
	for i, l := range s.layers {
		l.ApplyToPose(&s.currentPose, common.Clamped(normalizedWeights[len(normalizedWeights)-1-i]))
	}
}

// WriteCurrentPoseTransforms sweeps the current pose into world-space
// skinning matrices, per armature.Pose.Transforms.
//
// Parameters:
//   - dest: receives the final skinning matrices, length == bone count
//   - bindBuffer: scratch space for accumulated bind transforms, same length
func (s *AnimationState) WriteCurrentPoseTransforms(dest, bindBuffer []mgl32.Mat4) {
	s.currentPose.Transforms(s.armature, dest, bindBuffer)
}

// SetLayerWeight updates the weight of the named layer, a no-op if no layer
// with that name exists.
func (s *AnimationState) SetLayerWeight(layerName string, weight common.NormalizedFloat) {
	for _, l := range s.layers {
		if l.Name() == layerName {
			l.SetWeight(weight)
			return
		}
	}
}

// GetLayer returns the named layer, or nil if none matches.
func (s *AnimationState) GetLayer(layerId string) *ArmatureLayer {
	for _, l := range s.layers {
		if l.Name() == layerId {
			return l
		}
	}
	return nil
}

// BaseLayer returns the state's always-present base layer.
func (s *AnimationState) BaseLayer() *ArmatureLayer { return s.baseLayer }
