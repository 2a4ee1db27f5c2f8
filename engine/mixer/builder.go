package mixer

import (
	"github.com/Yinigma/Pibald/common"
	"github.com/Yinigma/Pibald/engine/clip"
)

// ClipMixerOption configures a ClipMixer under construction.
type ClipMixerOption func(*ClipMixer)

// WithPlaybackRate scales how fast the mixer's timeline advances per second
// of real time.
func WithPlaybackRate(rate float32) ClipMixerOption {
	return func(m *ClipMixer) { m.PlaybackRate = rate }
}

// WithPlaybackType sets the extrapolation mode applied past the mixer's
// timeline bounds.
func WithPlaybackType(p clip.PlaybackType) ClipMixerOption {
	return func(m *ClipMixer) { m.PlaybackType = p }
}

// WithEvent registers a named event firing when the mixer's normalized time
// crosses triggerTime.
func WithEvent(name string, triggerTime float32, callbacks ...func()) ClipMixerOption {
	return func(m *ClipMixer) {
		if m.Events == nil {
			m.Events = make(map[string]*Event)
		}
		m.Events[name] = &Event{TriggerTime: common.Clamped(triggerTime), Callbacks: callbacks}
	}
}

// NewSingleClipMixer builds a ClipMixer wrapping exactly one clip.
//
// Parameters:
//   - id: mixer identifier
//   - c: the clip played back
//   - opts: functional options (playback rate/type, events)
//
// Returns:
//   - ClipMixer: ready to mix into a pose
func NewSingleClipMixer(id string, c clip.AnimationClip, opts ...ClipMixerOption) ClipMixer {
	m := ClipMixer{
		id:           id,
		PlaybackRate: 1,
		PlaybackType: clip.Sequential,
		Variant:      singleVariant(&SingleClipMixer{Clip: c}),
	}
	for _, opt := range opts {
		opt(&m)
	}
	return m
}

// NewLinearBlendMixer builds a ClipMixer that cross-fades across the given
// blend points.
//
// Parameters:
//   - id: mixer identifier
//   - points: the clips and their blend-axis positions; must be non-empty
//   - opts: functional options (playback rate/type, events)
//
// Returns:
//   - ClipMixer: ready to mix into a pose
func NewLinearBlendMixer(id string, points []BlendPoint, opts ...ClipMixerOption) ClipMixer {
	m := ClipMixer{
		id:           id,
		PlaybackRate: 1,
		PlaybackType: clip.Sequential,
		Variant:      blendVariant(&LinearBlendMixer{Points: points}),
	}
	for _, opt := range opts {
		opt(&m)
	}
	return m
}

// SetBlend updates the blend value of a mixer built with
// NewLinearBlendMixer. It is a no-op on a single-clip mixer.
//
// Parameters:
//   - m: the mixer to update
//   - blend: the new blend-axis value
func SetBlend(m *ClipMixer, blend float32) {
	if m.Variant.blend == nil {
		return
	}
	m.Variant.blend.Blend = blend
}
