package armature

import "github.com/Yinigma/Pibald/common"

// Mask scopes how much of a clip applies to a pose during mixing:
// multiplier gates the whole mask, bone/control weights scope individual
// joints and control values.
type Mask struct {
	Multiplier     common.NormalizedFloat
	BoneWeights    []common.NormalizedFloat
	ControlWeights []common.NormalizedFloat
}

// FullMask builds a Mask that passes every joint and control through at
// full weight, sized for the given armature.
//
// Parameters:
//   - a: the armature the mask will be applied against
//
// Returns:
//   - Mask: a full-weight mask
func FullMask(a Armature) Mask {
	m := Mask{
		Multiplier:     common.Clamped(1),
		BoneWeights:    make([]common.NormalizedFloat, len(a.Bones)),
		ControlWeights: make([]common.NormalizedFloat, a.NumControls),
	}
	for i := range m.BoneWeights {
		m.BoneWeights[i] = common.Clamped(1)
	}
	for i := range m.ControlWeights {
		m.ControlWeights[i] = common.Clamped(1)
	}
	return m
}
