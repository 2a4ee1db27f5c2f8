// Package animstate implements ArmatureLayer and AnimationState (C6): the
// layer-weighted composition of ClipMixers into a final pose, with
// crossfade transitions queued per layer and fired named events.
package animstate

import (
	"github.com/Yinigma/Pibald/common"
	"github.com/Yinigma/Pibald/engine/armature"
	"github.com/Yinigma/Pibald/engine/clip"
	"github.com/Yinigma/Pibald/engine/mixer"
)

// BaseLayerId names the always-present base layer of an AnimationState.
const BaseLayerId = "base"

// transition is one queued crossfade target: a mixer to transition into and
// how long the fade takes.
type transition struct {
	mixerId  string
	duration float32
	elapsed  float32
}

// ArmatureLayer advances and samples one weighted track of mixers, handling
// crossfade transitions between them.
type ArmatureLayer struct {
	name               string
	mix                mixer.MixType
	mask               *armature.Mask
	weight             common.NormalizedFloat
	transitionQueue    []transition
	workingMixer       string
	hasWorkingMixer    bool
	portionIntoWorking common.NormalizedFloat
	mixers             map[string]mixer.ClipMixer
}

// Name returns the layer's identifier.
func (l *ArmatureLayer) Name() string { return l.name }

// Weight returns the layer's current blend weight.
func (l *ArmatureLayer) Weight() common.NormalizedFloat { return l.weight }

// SetWeight updates the layer's blend weight.
func (l *ArmatureLayer) SetWeight(w common.NormalizedFloat) { l.weight = w }

// QueueClipMixer appends a crossfade target to the layer's transition queue,
// a no-op if mixerId names no mixer registered on this layer.
//
// Parameters:
//   - mixerId: the mixer to transition into
//   - duration: the crossfade duration in seconds
func (l *ArmatureLayer) QueueClipMixer(mixerId string, duration float32) {
	if _, ok := l.mixers[mixerId]; !ok {
		return
	}
	l.transitionQueue = append(l.transitionQueue, transition{mixerId: mixerId, duration: duration})
}

// Update advances the layer's working mixer and any in-flight transitions
// by dt seconds, firing named events whose trigger time is crossed and
// promoting the next queued transition once its duration elapses.
//
// Parameters:
//   - dt: elapsed time in seconds
func (l *ArmatureLayer) Update(dt float32) {
	if !l.hasWorkingMixer {
		return
	}
	working := l.mixers[l.workingMixer]
	step := (working.PlaybackRate * dt) / working.DurationSeconds()
	l.portionIntoWorking = advance(working.PlaybackType, l.portionIntoWorking.Val(), step)

	i := 0
	for i < len(l.transitionQueue) {
		tr := &l.transitionQueue[i]
		tclip := l.mixers[tr.mixerId]
		prevElapsed := tr.elapsed
		tr.elapsed += dt

		for _, event := range tclip.Events {
			prevPortion := prevElapsed / tclip.DurationSeconds()
			curPortion := tr.elapsed / tclip.DurationSeconds()
			if event.TriggerTime.Val() > prevPortion && event.TriggerTime.Val() <= curPortion {
				for _, cb := range event.Callbacks {
					cb()
				}
			}
		}

		if tr.duration <= tr.elapsed {
			portion := tr.elapsed / tclip.DurationSeconds()
			l.transitionQueue = l.transitionQueue[i+1:]
			nextId := tr.mixerId
			l.workingMixer = nextId
			l.hasWorkingMixer = true
			l.portionIntoWorking = advance(l.mixers[nextId].PlaybackType, 0, portion)
			i = 0
			continue
		}
		i++
	}
}

func advance(playback clip.PlaybackType, current, step float32) common.NormalizedFloat {
	switch playback {
	case clip.Looping:
		return common.Wrapped(current + step)
	default:
		return common.Clamped(current + step)
	}
}

// ApplyToPose mixes this layer's working mixer and any active transitions
// into destination, scaled by currentWeight: transitions are
// weighted back-to-front so the most recently queued transition dominates
// as it completes, with the working mixer taking whatever weight remains.
//
// Parameters:
//   - destination: the pose being mixed into
//   - currentWeight: this layer's overall contribution weight
func (l *ArmatureLayer) ApplyToPose(destination *armature.Pose, currentWeight common.NormalizedFloat) {
	if !l.hasWorkingMixer {
		return
	}
	working := l.mixers[l.workingMixer]

	transitionWeights := make([]float32, 0, len(l.transitionQueue))
	baseWeight := float32(0)
	for i := len(l.transitionQueue) - 1; i >= 0; i-- {
		tr := l.transitionQueue[i]
		last := float32(0)
		if len(transitionWeights) > 0 {
			last = transitionWeights[len(transitionWeights)-1]
		}
		w := (1 - last) * (tr.elapsed / tr.duration)
		transitionWeights = append(transitionWeights, w)
		baseWeight += w
	}
	baseWeight = 1 - baseWeight

	working.MixToPose(l.mix, l.portionIntoWorking, l.mask, baseWeight*currentWeight.Val(), destination)

	for i := 0; i < len(l.transitionQueue); i++ {
		tr := l.transitionQueue[i]
		tclip := l.mixers[tr.mixerId]
		portion := advance(tclip.PlaybackType, 0, tr.elapsed/tclip.DurationSeconds())
		w := transitionWeights[len(transitionWeights)-1-i]
		tclip.MixToPose(l.mix, portion, l.mask, w*currentWeight.Val(), destination)
	}
}
