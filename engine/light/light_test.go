package light

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
)

func TestNewPointLight_StartsDirty(t *testing.T) {
	p := NewPointLight(1, NewPointLightDescriptor())
	assert.True(t, p.IsDirty())
}

func TestNewSpotLight_StartsDirtyViaEmbeddedLight(t *testing.T) {
	// SpotLight's own dirty flag starts false, but its embedded Light
	// starts dirty (matching PointLight's defaults), so IsDirty is true
	// until both are cleared.
	s := NewSpotLight(1, NewSpotLightDescriptor(0.5, mgl32.Vec3{0, 0, 1}))
	assert.True(t, s.IsDirty())
	s.ClearDirtyState()
	assert.False(t, s.IsDirty())
}

func TestSpotLight_SetAngleMarksDirty(t *testing.T) {
	s := NewSpotLight(1, NewSpotLightDescriptor(0.5, mgl32.Vec3{0, 0, 1}))
	s.SetAngle(1.0)
	assert.True(t, s.IsDirty())
}

func TestPointLight_ClearDirtyState(t *testing.T) {
	p := NewPointLight(1, NewPointLightDescriptor())
	p.ClearDirtyState()
	assert.False(t, p.IsDirty())
}
