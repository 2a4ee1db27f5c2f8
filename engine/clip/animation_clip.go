package clip

import "github.com/go-gl/mathgl/mgl32"

type orientationTracks struct {
	x, y, z, w ClipChannel
}

// AnimationClip is a complete animation: per-bone location/scale component
// tracks, per-bone orientation tracks (four scalar channels each), and a
// set of control-value tracks, all indexed by bone index. Bones or controls
// with no keyed motion are simply absent from the relevant map.
type AnimationClip struct {
	startFrame, endFrame uint16
	fps                  uint16

	xLocation, yLocation, zLocation map[int]ClipChannel
	orientation                     map[int]orientationTracks
	xScale, yScale, zScale          map[int]ClipChannel

	controls []ClipChannel
}

// AnimationClipOption configures an AnimationClip's per-bone tracks during
// construction.
type AnimationClipOption func(*AnimationClip)

// NewAnimationClip builds an AnimationClip spanning [start,end] at the
// given playback rate, configured by the supplied track options.
//
// Parameters:
//   - start: the clip's start frame
//   - end: the clip's end frame
//   - fps: the clip's native frame rate
//   - opts: track-configuring options (WithLocationTrack, WithOrientationTrack, etc.)
//
// Returns:
//   - AnimationClip: the constructed clip
func NewAnimationClip(start, end, fps uint16, opts ...AnimationClipOption) AnimationClip {
	c := AnimationClip{
		startFrame:  start,
		endFrame:    end,
		fps:         fps,
		xLocation:   map[int]ClipChannel{},
		yLocation:   map[int]ClipChannel{},
		zLocation:   map[int]ClipChannel{},
		orientation: map[int]orientationTracks{},
		xScale:      map[int]ClipChannel{},
		yScale:      map[int]ClipChannel{},
		zScale:      map[int]ClipChannel{},
	}
	for _, opt := range opts {
		opt(&c)
	}
	return c
}

// WithLocationTrack adds a location component track for the given bone and axis.
func WithLocationTrack(bone int, axis int, track ClipChannel) AnimationClipOption {
	return func(c *AnimationClip) {
		switch axis {
		case 0:
			c.xLocation[bone] = track
		case 1:
			c.yLocation[bone] = track
		case 2:
			c.zLocation[bone] = track
		}
	}
}

// WithScaleTrack adds a scale component track for the given bone and axis.
func WithScaleTrack(bone int, axis int, track ClipChannel) AnimationClipOption {
	return func(c *AnimationClip) {
		switch axis {
		case 0:
			c.xScale[bone] = track
		case 1:
			c.yScale[bone] = track
		case 2:
			c.zScale[bone] = track
		}
	}
}

// WithOrientationTrack adds the four component channels of a bone's orientation track.
func WithOrientationTrack(bone int, x, y, z, w ClipChannel) AnimationClipOption {
	return func(c *AnimationClip) {
		c.orientation[bone] = orientationTracks{x: x, y: y, z: z, w: w}
	}
}

// WithControlTrack appends a control-value track. Controls are ordered
// by insertion/add order and referenced by that index.
func WithControlTrack(track ClipChannel) AnimationClipOption {
	return func(c *AnimationClip) {
		c.controls = append(c.controls, track)
	}
}

// DurationSeconds returns the clip's length in seconds.
//
// Returns:
//   - float32: duration in seconds
func (c AnimationClip) DurationSeconds() float32 {
	return float32(c.endFrame-c.startFrame) / float32(c.fps)
}

// DurationFrames returns the clip's length in frames.
//
// Returns:
//   - uint16: duration in frames
func (c AnimationClip) DurationFrames() uint16 {
	return c.endFrame - c.startFrame
}

// SampleLocation samples the x/y/z location tracks for bone, returning
// nil per axis where that bone has no keyed track on that axis.
//
// Parameters:
//   - bone: the bone index
//   - t: normalized playback position in [0,1]
//   - playback: extrapolation mode
//
// Returns:
//   - [3]*float32: per-axis sampled values, nil where untracked
func (c AnimationClip) SampleLocation(bone int, t float32, playback PlaybackType) [3]*float32 {
	return [3]*float32{
		c.sampleOptional(c.xLocation, bone, t, playback),
		c.sampleOptional(c.yLocation, bone, t, playback),
		c.sampleOptional(c.zLocation, bone, t, playback),
	}
}

// SampleScale samples the x/y/z scale tracks for bone, returning nil per
// axis where that bone has no keyed track on that axis.
func (c AnimationClip) SampleScale(bone int, t float32, playback PlaybackType) [3]*float32 {
	return [3]*float32{
		c.sampleOptional(c.xScale, bone, t, playback),
		c.sampleOptional(c.yScale, bone, t, playback),
		c.sampleOptional(c.zScale, bone, t, playback),
	}
}

// SampleOrientation samples bone's orientation track, returning nil if the
// bone has no keyed orientation.
func (c AnimationClip) SampleOrientation(bone int, t float32, playback PlaybackType) *mgl32.Quat {
	tracks, ok := c.orientation[bone]
	if !ok {
		return nil
	}
	q := SampleQuat(tracks.x, tracks.y, tracks.z, tracks.w, c.startFrame, c.endFrame, t, playback)
	return &q
}

// SampleControl samples the control track at index, returning nil if
// index has no keyed track.
func (c AnimationClip) SampleControl(index int, t float32, playback PlaybackType) *float32 {
	if index < 0 || index >= len(c.controls) {
		return nil
	}
	v := c.controls[index].Sample(c.startFrame, c.endFrame, t, playback)
	return &v
}

func (c AnimationClip) sampleOptional(tracks map[int]ClipChannel, bone int, t float32, playback PlaybackType) *float32 {
	track, ok := tracks[bone]
	if !ok {
		return nil
	}
	v := track.Sample(c.startFrame, c.endFrame, t, playback)
	return &v
}
