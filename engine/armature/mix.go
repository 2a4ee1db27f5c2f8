package armature

import (
	"github.com/Yinigma/Pibald/engine/clip"
	"github.com/go-gl/mathgl/mgl32"
)

// MixClip overrides p's joints and controls toward other's sampled values
// (Override mix): for every joint/control whose mask weight
// times clipWeight is > 0, each present component is replaced by
// lerp(old, sampled, weight) (slerp for orientation). A component absent
// from the clip leaves the destination's existing value untouched — this
// is the documented behavior, not an omission: a clip that never tracked a
// bone's Z location should not zero it out on every mix pass.
//
// Parameters:
//   - other: the clip to sample
//   - t: normalized playback position within other
//   - playback: other's extrapolation mode
//   - mask: scopes which joints/controls participate, nil applies full weight
//   - clipWeight: overall weight for this mix pass
func (p *Pose) MixClip(other clip.AnimationClip, t float32, playback clip.PlaybackType, mask *Mask, clipWeight float32) {
	multiplier := maskMultiplier(mask)
	if multiplier <= 0 {
		return
	}
	for i := range p.Joints {
		jointWeight := boneWeight(mask, i) * clipWeight
		if jointWeight <= 0 {
			continue
		}
		loc := other.SampleLocation(i, t, playback)
		if loc[0] != nil {
			p.Joints[i].Location[0] = lerp(p.Joints[i].Location[0], *loc[0], jointWeight)
		}
		if loc[1] != nil {
			p.Joints[i].Location[1] = lerp(p.Joints[i].Location[1], *loc[1], jointWeight)
		}
		if loc[2] != nil {
			p.Joints[i].Location[2] = lerp(p.Joints[i].Location[2], *loc[2], jointWeight)
		}

		if rot := other.SampleOrientation(i, t, playback); rot != nil {
			p.Joints[i].Orientation = mgl32.QuatSlerp(p.Joints[i].Orientation, *rot, jointWeight)
		}

		scale := other.SampleScale(i, t, playback)
		if scale[0] != nil {
			p.Joints[i].Scale[0] = lerp(p.Joints[i].Scale[0], *scale[0], jointWeight)
		}
		if scale[1] != nil {
			p.Joints[i].Scale[1] = lerp(p.Joints[i].Scale[1], *scale[1], jointWeight)
		}
		if scale[2] != nil {
			p.Joints[i].Scale[2] = lerp(p.Joints[i].Scale[2], *scale[2], jointWeight)
		}
	}
	for i := range p.Controls {
		controlWeight := controlWeight(mask, i) * clipWeight
		if controlWeight <= 0 {
			continue
		}
		if v := other.SampleControl(i, t, playback); v != nil {
			p.Controls[i] = lerp(p.Controls[i], *v, controlWeight)
		}
	}
}

// AddClip adds other's sampled values onto p (Additive mix):
// location and control values accumulate by sampled*weight; orientation
// composes by old·slerp(identity, sampled, weight); scale multiplies by
// lerp(1, sampled, weight). A mask multiplier of exactly zero makes the
// whole call a no-op.
//
// Parameters:
//   - other: the clip to sample
//   - t: normalized playback position within other
//   - playback: other's extrapolation mode
//   - mask: scopes which joints/controls participate, nil applies full weight
//   - clipWeight: overall weight for this mix pass
func (p *Pose) AddClip(other clip.AnimationClip, t float32, playback clip.PlaybackType, mask *Mask, clipWeight float32) {
	multiplier := maskMultiplier(mask)
	if multiplier <= 0 {
		return
	}
	for i := range p.Joints {
		jointWeight := boneWeight(mask, i) * clipWeight
		if jointWeight <= 0 {
			continue
		}
		loc := other.SampleLocation(i, t, playback)
		if loc[0] != nil {
			p.Joints[i].Location[0] += *loc[0] * jointWeight
		}
		if loc[1] != nil {
			p.Joints[i].Location[1] += *loc[1] * jointWeight
		}
		if loc[2] != nil {
			p.Joints[i].Location[2] += *loc[2] * jointWeight
		}

		if rot := other.SampleOrientation(i, t, playback); rot != nil {
			identity := mgl32.QuatIdent()
			p.Joints[i].Orientation = p.Joints[i].Orientation.Mul(mgl32.QuatSlerp(identity, *rot, jointWeight))
		}

		scale := other.SampleScale(i, t, playback)
		if scale[0] != nil {
			p.Joints[i].Scale[0] *= lerp(1, *scale[0], jointWeight)
		}
		if scale[1] != nil {
			p.Joints[i].Scale[1] *= lerp(1, *scale[1], jointWeight)
		}
		if scale[2] != nil {
			p.Joints[i].Scale[2] *= lerp(1, *scale[2], jointWeight)
		}
	}
	for i := range p.Controls {
		w := controlWeight(mask, i) * clipWeight
		if w <= 0 {
			continue
		}
		if v := other.SampleControl(i, t, playback); v != nil {
			p.Controls[i] += *v * w
		}
	}
}

func lerp(a, b, t float32) float32 { return a + (b-a)*t }

func maskMultiplier(mask *Mask) float32 {
	if mask == nil {
		return 1
	}
	return mask.Multiplier.Val()
}

func boneWeight(mask *Mask, i int) float32 {
	if mask == nil {
		return 1
	}
	return mask.BoneWeights[i].Val()
}

func controlWeight(mask *Mask, i int) float32 {
	if mask == nil {
		return 1
	}
	return mask.ControlWeights[i].Val()
}
