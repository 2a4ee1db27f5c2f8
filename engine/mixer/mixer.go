// Package mixer implements ClipMixer (C5): a named wrapper around either a
// single clip or a linear blend of several clips, routing a mix pass to the
// destination pose's Override or Additive path and tracking a normalized
// event schedule.
package mixer

import (
	"github.com/Yinigma/Pibald/common"
	"github.com/Yinigma/Pibald/engine/armature"
	"github.com/Yinigma/Pibald/engine/clip"
)

// MixType selects whether a mixer's contribution overrides or adds to the
// destination pose.
type MixType int

const (
	// Override replaces destination components via lerp/slerp toward the
	// sampled clip.
	Override MixType = iota
	// Additive accumulates the sampled clip onto the destination.
	Additive
)

// Event is a named trigger point in a mixer's normalized timeline.
type Event struct {
	TriggerTime common.NormalizedFloat
	Callbacks   []func()
}

// ClipMixer is a playback-rate/type-scoped wrapper around a ClipMixerVariant
// (Single or LinearBlend), plus a map of named events fired as the mixer's
// normalized time crosses their trigger point.
type ClipMixer struct {
	id            string
	PlaybackRate  float32
	PlaybackType  clip.PlaybackType
	Variant       ClipMixerVariant
	Events        map[string]*Event
}

// Id returns the mixer's identifier.
func (m ClipMixer) Id() string { return m.id }

// MixToPose routes to the destination's Override or Additive path using
// the mixer's variant-resolved sample at time t.
//
// Parameters:
//   - mix: Override or Additive
//   - t: normalized position within the mixer's own timeline
//   - mask: scopes which joints/controls participate
//   - clipWeight: overall weight for this mix pass
//   - dest: the pose being mixed into
func (m ClipMixer) MixToPose(mix MixType, t common.NormalizedFloat, mask *armature.Mask, clipWeight float32, dest *armature.Pose) {
	switch mix {
	case Override:
		m.Variant.mixToPose(t, m.PlaybackType, mask, clipWeight, dest)
	case Additive:
		m.Variant.addToPose(t, m.PlaybackType, mask, clipWeight, dest)
	}
}

// DurationSeconds returns the mixer's current effective duration in seconds.
func (m ClipMixer) DurationSeconds() float32 {
	return m.Variant.durationSeconds()
}

// DurationFrames returns the mixer's current effective duration in frames.
func (m ClipMixer) DurationFrames() float32 {
	return m.Variant.durationFrames()
}

// ClipMixerVariant is the tagged union of mixer behaviors: evaluation
// dispatches on which field is set rather than through a virtual method
// hierarchy.
type ClipMixerVariant struct {
	single *SingleClipMixer
	blend  *LinearBlendMixer
}

func singleVariant(s *SingleClipMixer) ClipMixerVariant { return ClipMixerVariant{single: s} }
func blendVariant(b *LinearBlendMixer) ClipMixerVariant { return ClipMixerVariant{blend: b} }

func (v ClipMixerVariant) mixToPose(t common.NormalizedFloat, playback clip.PlaybackType, mask *armature.Mask, clipWeight float32, dest *armature.Pose) {
	if v.single != nil {
		v.single.mixToPose(t, playback, mask, clipWeight, dest)
		return
	}
	v.blend.mixToPose(t, playback, mask, clipWeight, dest)
}

func (v ClipMixerVariant) addToPose(t common.NormalizedFloat, playback clip.PlaybackType, mask *armature.Mask, clipWeight float32, dest *armature.Pose) {
	if v.single != nil {
		v.single.addToPose(t, playback, mask, clipWeight, dest)
		return
	}
	v.blend.addToPose(t, playback, mask, clipWeight, dest)
}

func (v ClipMixerVariant) durationSeconds() float32 {
	if v.single != nil {
		return v.single.Clip.DurationSeconds()
	}
	return v.blend.durationSeconds()
}

func (v ClipMixerVariant) durationFrames() float32 {
	if v.single != nil {
		return float32(v.single.Clip.DurationFrames())
	}
	return v.blend.durationFrames()
}

// SingleClipMixer forwards every mix pass directly to one clip.
type SingleClipMixer struct {
	Clip clip.AnimationClip
}

func (s *SingleClipMixer) mixToPose(t common.NormalizedFloat, playback clip.PlaybackType, mask *armature.Mask, clipWeight float32, dest *armature.Pose) {
	dest.MixClip(s.Clip, t.Val(), playback, mask, clipWeight)
}

func (s *SingleClipMixer) addToPose(t common.NormalizedFloat, playback clip.PlaybackType, mask *armature.Mask, clipWeight float32, dest *armature.Pose) {
	dest.AddClip(s.Clip, t.Val(), playback, mask, clipWeight)
}
