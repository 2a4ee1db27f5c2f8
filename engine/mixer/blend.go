package mixer

import (
	"github.com/Yinigma/Pibald/common"
	"github.com/Yinigma/Pibald/engine/armature"
	"github.com/Yinigma/Pibald/engine/clip"
)

// BlendPoint anchors a clip at a position along a LinearBlendMixer's blend
// axis. Pos is not normalized to [0,1] — callers are free to
// lay points out on whatever scale is convenient (e.g. a speed in m/s).
type BlendPoint struct {
	Pos  float32
	Clip clip.AnimationClip
}

// LinearBlendMixer cross-fades between the two BlendPoints surrounding a
// blend value.
type LinearBlendMixer struct {
	Points []BlendPoint
	Blend  float32
}

// startPoint and endPoint select the two points a given blend value falls
// between. This selection rule is carried over from the source material
// verbatim and is flagged as ambiguous: start is the last point with
// pos <= blend (falling back to the last point overall), end is the first
// point with pos <= blend (falling back to the first point overall). For
// a blend value below every point's pos, this makes start and end both
// resolve to the boundary points in a way that does not symmetrically
// bracket blend — that asymmetry is intentional, not a bug introduced here.
func (m LinearBlendMixer) startPoint() BlendPoint {
	for i := len(m.Points) - 1; i >= 0; i-- {
		if m.Points[i].Pos <= m.Blend {
			return m.Points[i]
		}
	}
	return m.Points[len(m.Points)-1]
}

func (m LinearBlendMixer) endPoint() BlendPoint {
	for i := 0; i < len(m.Points); i++ {
		if m.Points[i].Pos <= m.Blend {
			return m.Points[i]
		}
	}
	return m.Points[0]
}

// blendWeight is the corrected (non-buggy) interpolation factor between
// startPoint and endPoint: zero when the two points coincide.
func (m LinearBlendMixer) blendWeight() float32 {
	start := m.startPoint()
	end := m.endPoint()
	if end.Pos == start.Pos {
		return 0
	}
	return (m.Blend - start.Pos) / (end.Pos - start.Pos)
}

func (m LinearBlendMixer) mixToPose(t common.NormalizedFloat, playback clip.PlaybackType, mask *armature.Mask, clipWeight float32, dest *armature.Pose) {
	start := m.startPoint()
	end := m.endPoint()
	w := m.blendWeight()
	dest.MixClip(start.Clip, t.Val(), playback, mask, clipWeight*(1-w))
	dest.MixClip(end.Clip, t.Val(), playback, mask, clipWeight*w)
}

func (m LinearBlendMixer) addToPose(t common.NormalizedFloat, playback clip.PlaybackType, mask *armature.Mask, clipWeight float32, dest *armature.Pose) {
	start := m.startPoint()
	end := m.endPoint()
	w := m.blendWeight()
	dest.AddClip(start.Clip, t.Val(), playback, mask, clipWeight*(1-w))
	dest.AddClip(end.Clip, t.Val(), playback, mask, clipWeight*w)
}

func (m LinearBlendMixer) durationSeconds() float32 {
	start := m.startPoint()
	end := m.endPoint()
	w := m.blendWeight()
	return lerp(start.Clip.DurationSeconds(), end.Clip.DurationSeconds(), w)
}

func (m LinearBlendMixer) durationFrames() float32 {
	start := m.startPoint()
	end := m.endPoint()
	w := m.blendWeight()
	return lerp(float32(start.Clip.DurationFrames()), float32(end.Clip.DurationFrames()), w)
}

func lerp(a, b, t float32) float32 { return a + (b-a)*t }
