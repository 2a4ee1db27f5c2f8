// Package clip implements animation clips and their per-component sample
// curves (C4): ClipChannel keyframe interpolation with Sequential/Looping
// extrapolation, and AnimationClip's per-bone track lookup.
package clip

import "github.com/go-gl/mathgl/mgl32"

// PlaybackType controls how a channel extrapolates past its keyframe range.
type PlaybackType int

const (
	// Sequential clamps to the first/last key past the ends of the range.
	Sequential PlaybackType = iota
	// Looping wraps past the ends of the range, treating the clip as cyclic.
	Looping
)

// Key is one keyframe of a ClipChannel: a value at a frame number.
type Key struct {
	Frame uint16
	Value float32
}

// ClipChannel is a single scalar animation curve: an ordered, non-empty
// list of keyframes. Orientation tracks are stored as four independent
// ClipChannel[x,y,z,w] and reassembled into a quaternion after sampling.
type ClipChannel struct {
	keys []Key
}

// NewClipChannel builds a ClipChannel from keys ordered by ascending frame.
// Panics if keys is empty: a channel with no data should instead be omitted
// from whatever per-bone track map it would otherwise occupy.
//
// Parameters:
//   - keys: the channel's keyframes, ascending by frame
//
// Returns:
//   - ClipChannel: the constructed channel
func NewClipChannel(keys []Key) ClipChannel {
	if len(keys) == 0 {
		panic("clip: cannot create a ClipChannel with no keyframe data")
	}
	return ClipChannel{keys: keys}
}

// Sample evaluates this channel at normalized time t within [minFrame,
// maxFrame]: find the surrounding keys, handle the loop-wrap case when
// the found "end" key's frame precedes the "start" key's frame, and
// linearly interpolate (or return the exact key value on a zero-width
// span).
//
// Parameters:
//   - minFrame: the clip's start frame
//   - maxFrame: the clip's end frame
//   - t: normalized playback position in [0,1]
//   - playback: extrapolation mode used when t falls outside the keyed range
//
// Returns:
//   - float32: the interpolated value
func (c ClipChannel) Sample(minFrame, maxFrame uint16, t float32, playback PlaybackType) float32 {
	frameRange := float32(maxFrame - minFrame)
	sampleFrame := float32(minFrame) + t*frameRange

	startKey := c.lastKeyAtOrBefore(sampleFrame)
	if startKey == nil {
		if playback == Sequential {
			startKey = &c.keys[0]
		} else {
			startKey = &c.keys[len(c.keys)-1]
		}
	}
	endKey := c.firstKeyAtOrAfter(sampleFrame)
	if endKey == nil {
		if playback == Sequential {
			endKey = &c.keys[len(c.keys)-1]
		} else {
			endKey = &c.keys[0]
		}
	}

	fStart := float32(startKey.Frame)
	fEnd := float32(endKey.Frame)

	if endKey.Frame < startKey.Frame {
		loopSample := sampleFrame
		if sampleFrame < fStart {
			loopSample += frameRange
		}
		phantomEnd := fEnd + frameRange
		return lerp(startKey.Value, endKey.Value, (loopSample-fStart)/(phantomEnd-fStart))
	}
	if startKey.Frame == endKey.Frame {
		return startKey.Value
	}
	return lerp(startKey.Value, endKey.Value, (sampleFrame-fStart)/(fEnd-fStart))
}

func (c ClipChannel) lastKeyAtOrBefore(frame float32) *Key {
	for i := len(c.keys) - 1; i >= 0; i-- {
		if float32(c.keys[i].Frame) <= frame {
			return &c.keys[i]
		}
	}
	return nil
}

func (c ClipChannel) firstKeyAtOrAfter(frame float32) *Key {
	for i := range c.keys {
		if float32(c.keys[i].Frame) >= frame {
			return &c.keys[i]
		}
	}
	return nil
}

func lerp(a, b, t float32) float32 {
	return a + (b-a)*t
}

// SampleQuat samples four independent channels for x/y/z/w and reassembles
// them into a quaternion, this engine's orientation-track convention.
//
// Parameters:
//   - x, y, z, w: the four component channels
//   - minFrame, maxFrame: the clip's frame range
//   - t: normalized playback position in [0,1]
//   - playback: extrapolation mode
//
// Returns:
//   - mgl32.Quat: the reassembled orientation
func SampleQuat(x, y, z, w ClipChannel, minFrame, maxFrame uint16, t float32, playback PlaybackType) mgl32.Quat {
	return mgl32.Quat{
		W: w.Sample(minFrame, maxFrame, t, playback),
		V: mgl32.Vec3{
			x.Sample(minFrame, maxFrame, t, playback),
			y.Sample(minFrame, maxFrame, t, playback),
			z.Sample(minFrame, maxFrame, t, playback),
		},
	}
}
