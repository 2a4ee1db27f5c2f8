// Package light implements point and spot lights (part of C8's scene
// state): dirty-tracked intrinsic/extrinsic light fields, matching
// original_source's attenuation-model field layout.
package light

import (
	"github.com/Yinigma/Pibald/common"
	"github.com/go-gl/mathgl/mgl32"
)

// Light is the shared intrinsic/extrinsic state of a point or spot light,
// modeled on the inverse-square-with-cutoff attenuation scheme.
type Light struct {
	Color          common.Color
	Intensity      float32
	CutoffDistance float32
	// Radius is the physical size of the light source itself, used to
	// soften specular highlights.
	Radius   float32
	Location mgl32.Vec3
	dirty    bool
}

func defaultLight() Light {
	return Light{
		Color:          common.NewColor(1, 1, 1, 1),
		Intensity:      4.0,
		CutoffDistance: 10.0,
		Radius:         2.0,
		Location:       mgl32.Vec3{0, 0, 0},
		dirty:          true,
	}
}

func (l *Light) clearDirtyState() { l.dirty = false }

// SetColor updates the light's color and marks it dirty.
func (l *Light) SetColor(c common.Color) {
	l.Color = c
	l.dirty = true
}

// SetIntensity updates the light's intensity and marks it dirty.
func (l *Light) SetIntensity(intensity float32) {
	l.Intensity = intensity
	l.dirty = true
}

// SetCutoffDistance updates the light's cutoff distance and marks it dirty.
func (l *Light) SetCutoffDistance(cutoff float32) {
	l.CutoffDistance = cutoff
	l.dirty = true
}

// SetRadius updates the light's physical radius and marks it dirty.
func (l *Light) SetRadius(radius float32) {
	l.Radius = radius
	l.dirty = true
}

// SetLocation updates the light's world position and marks it dirty.
func (l *Light) SetLocation(loc mgl32.Vec3) {
	l.Location = loc
	l.dirty = true
}

// PointLightDescriptor seeds a PointLight's initial state.
type PointLightDescriptor struct {
	light Light
}

// NewPointLightDescriptor builds a descriptor with the default light
// settings (matching the source's constants).
func NewPointLightDescriptor() PointLightDescriptor {
	return PointLightDescriptor{light: defaultLight()}
}

// PointLight is an omnidirectional light placed in a scene group.
type PointLight struct {
	Id    int
	Light Light
}

// NewPointLight builds a PointLight from an id and descriptor.
func NewPointLight(id int, descriptor PointLightDescriptor) PointLight {
	return PointLight{Id: id, Light: descriptor.light}
}

// IsDirty reports whether this light's state changed since the last
// ClearDirtyState call.
func (p *PointLight) IsDirty() bool { return p.Light.dirty }

// ClearDirtyState resets the light's dirty bit.
func (p *PointLight) ClearDirtyState() { p.Light.clearDirtyState() }

// SpotLightDescriptor seeds a SpotLight's initial state.
type SpotLightDescriptor struct {
	light Light
	angle float32
	dir   mgl32.Vec3
}

// NewSpotLightDescriptor builds a descriptor with the default light
// settings plus the given cone angle and direction.
func NewSpotLightDescriptor(angle float32, dir mgl32.Vec3) SpotLightDescriptor {
	return SpotLightDescriptor{light: defaultLight(), angle: angle, dir: dir}
}

// SpotLight is a directional cone light placed in a scene group.
type SpotLight struct {
	Id    int
	Light Light
	Angle float32
	Dir   mgl32.Vec3
	dirty bool
}

// NewSpotLight builds a SpotLight from an id and descriptor. The spot's
// own dirty flag starts false, but its embedded Light still starts dirty
// (every fresh Light does), so IsDirty is true until the caller clears it.
func NewSpotLight(id int, descriptor SpotLightDescriptor) SpotLight {
	return SpotLight{
		Id:    id,
		Light: descriptor.light,
		Angle: descriptor.angle,
		Dir:   descriptor.dir,
		dirty: false,
	}
}

// IsDirty reports whether this light's own fields or its embedded Light
// changed since the last ClearDirtyState call.
func (s *SpotLight) IsDirty() bool { return s.dirty || s.Light.dirty }

// SetAngle updates the spot cone angle and marks the light dirty.
func (s *SpotLight) SetAngle(angle float32) {
	s.Angle = angle
	s.dirty = true
}

// SetDir updates the spot direction and marks the light dirty.
func (s *SpotLight) SetDir(dir mgl32.Vec3) {
	s.Dir = dir
	s.dirty = true
}

// ClearDirtyState resets both this light's own dirty bit and its embedded
// Light's.
func (s *SpotLight) ClearDirtyState() {
	s.dirty = false
	s.Light.clearDirtyState()
}
