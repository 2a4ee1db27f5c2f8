package clip

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClipChannel_SampleMidpoint(t *testing.T) {
	ch := NewClipChannel([]Key{{Frame: 0, Value: 0}, {Frame: 10, Value: 10}})
	v := ch.Sample(0, 10, 0.5, Sequential)
	assert.InDelta(t, 5.0, v, 1e-5)
}

func TestClipChannel_SampleExactKey(t *testing.T) {
	ch := NewClipChannel([]Key{{Frame: 0, Value: 0}, {Frame: 10, Value: 10}})
	v := ch.Sample(0, 10, 0, Sequential)
	assert.InDelta(t, 0.0, v, 1e-5)
}

func TestClipChannel_LoopWrap(t *testing.T) {
	// Two keys at the ends of the range; looping should wrap smoothly past
	// the last key back to the first.
	ch := NewClipChannel([]Key{{Frame: 2, Value: 2}, {Frame: 8, Value: 8}})
	// t near the very end samples frame ~9.9 — past the last key (8), so the
	// loop wraps using the first key (2) as phantom end at frame 12:
	// fraction (9.9-8)/(12-8) = 0.475, so 8 + (2-8)*0.475 = 5.15.
	v := ch.Sample(0, 10, 0.99, Looping)
	assert.InDelta(t, 5.15, v, 1e-4)
}

func TestClipChannel_PanicsOnEmpty(t *testing.T) {
	defer func() {
		r := recover()
		require.NotNil(t, r)
	}()
	NewClipChannel(nil)
}

func TestAnimationClip_DurationSeconds(t *testing.T) {
	c := NewAnimationClip(0, 30, 30)
	assert.Equal(t, float32(1.0), c.DurationSeconds())
}

func TestAnimationClip_UntrackedBoneReturnsNil(t *testing.T) {
	c := NewAnimationClip(0, 10, 30)
	loc := c.SampleLocation(0, 0.5, Sequential)
	assert.Nil(t, loc[0])
	assert.Nil(t, loc[1])
	assert.Nil(t, loc[2])
}

func TestAnimationClip_TrackedBoneSamples(t *testing.T) {
	track := NewClipChannel([]Key{{Frame: 0, Value: 0}, {Frame: 10, Value: 100}})
	c := NewAnimationClip(0, 10, 30, WithLocationTrack(3, 0, track))
	loc := c.SampleLocation(3, 0.5, Sequential)
	require.NotNil(t, loc[0])
	assert.InDelta(t, 50.0, *loc[0], 1e-4)
	assert.Nil(t, loc[1])
}
