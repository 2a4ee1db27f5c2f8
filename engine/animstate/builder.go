package animstate

import (
	"github.com/Yinigma/Pibald/common"
	"github.com/Yinigma/Pibald/engine/armature"
	"github.com/Yinigma/Pibald/engine/mixer"
)

// LayerBuilder assembles an ArmatureLayer from its mix mode, mask, starting
// mixer, and registered mixers.
type LayerBuilder struct {
	name          string
	mix           mixer.MixType
	weight        common.NormalizedFloat
	mask          *armature.Mask
	startingMixer string
	mixers        []mixer.ClipMixer
}

// NewLayerBuilder starts a LayerBuilder for the layer named id, defaulting
// to full weight and Override mixing.
func NewLayerBuilder(id string) *LayerBuilder {
	return &LayerBuilder{
		name:   id,
		mix:    mixer.Override,
		weight: common.Clamped(1),
	}
}

// WithWeight sets the layer's initial weight.
func (b *LayerBuilder) WithWeight(w common.NormalizedFloat) *LayerBuilder {
	b.weight = w
	return b
}

// WithMix sets the layer's mix mode.
func (b *LayerBuilder) WithMix(mix mixer.MixType) *LayerBuilder {
	b.mix = mix
	return b
}

// WithMask scopes the layer to a subset of joints/controls.
func (b *LayerBuilder) WithMask(mask armature.Mask) *LayerBuilder {
	b.mask = &mask
	return b
}

// AddMixer registers a mixer on the layer.
func (b *LayerBuilder) AddMixer(m mixer.ClipMixer) *LayerBuilder {
	b.mixers = append(b.mixers, m)
	return b
}

// WithStartingMixer names which registered mixer the layer should begin
// playing, once built.
func (b *LayerBuilder) WithStartingMixer(id string) *LayerBuilder {
	b.startingMixer = id
	return b
}

// Build constructs the ArmatureLayer.
func (b *LayerBuilder) Build() *ArmatureLayer {
	mixers := make(map[string]mixer.ClipMixer, len(b.mixers))
	startingFound := false
	for _, m := range b.mixers {
		mixers[m.Id()] = m
		if m.Id() == b.startingMixer {
			startingFound = true
		}
	}
	return &ArmatureLayer{
		name:            b.name,
		mix:             b.mix,
		mask:            b.mask,
		weight:          b.weight,
		workingMixer:    b.startingMixer,
		hasWorkingMixer: startingFound,
		mixers:          mixers,
	}
}

// AnimationStateBuilder assembles an AnimationState from an armature, a
// base layer, and any number of additional named layers.
type AnimationStateBuilder struct {
	arm         armature.Armature
	baseBuilder *LayerBuilder
	layers      []*LayerBuilder
}

// NewAnimationStateBuilder starts a builder over arm, pre-registering
// baseMixers on the implicit base layer.
func NewAnimationStateBuilder(arm armature.Armature, baseMixers ...mixer.ClipMixer) *AnimationStateBuilder {
	base := NewLayerBuilder(BaseLayerId)
	for _, m := range baseMixers {
		base.AddMixer(m)
	}
	return &AnimationStateBuilder{arm: arm, baseBuilder: base}
}

// BaseStartingAnimation names which base-layer mixer should begin playing.
func (b *AnimationStateBuilder) BaseStartingAnimation(id string) *AnimationStateBuilder {
	b.baseBuilder.WithStartingMixer(id)
	return b
}

// AddLayer registers an additional weighted layer.
func (b *AnimationStateBuilder) AddLayer(layer *LayerBuilder) *AnimationStateBuilder {
	b.layers = append(b.layers, layer)
	return b
}

// Build constructs the AnimationState.
func (b *AnimationStateBuilder) Build() *AnimationState {
	layers := make([]*ArmatureLayer, len(b.layers))
	for i, l := range b.layers {
		layers[i] = l.Build()
	}
	pose := b.arm.EmptyPose()
	return &AnimationState{
		armature:    b.arm,
		currentPose: pose,
		baseLayer:   b.baseBuilder.Build(),
		layers:      layers,
	}
}
