package model

import (
	"github.com/Yinigma/Pibald/common"
	"github.com/Yinigma/Pibald/engine/expr"
	"github.com/Yinigma/Pibald/engine/shaderfx"
	"github.com/go-gl/mathgl/mgl32"
)

// modelInstance is the shared state every placed model instance (static or
// animated) composes around: world transform, active palette, one
// ShaderInstance per shader slot, and the model's bounding box. It carries
// no identity or dirty bit of its own — those belong to the entity type
// that embeds it.
type modelInstance struct {
	tf      mgl32.Mat4
	colors  []common.Color
	shaders map[string]*shaderfx.ShaderInstance
	bbox    common.AABB
}

func newModelInstance(m Model, tf mgl32.Mat4) modelInstance {
	shaders := make(map[string]*shaderfx.ShaderInstance, len(m.ShaderSlots))
	for id, slot := range m.ShaderSlots {
		shaders[id] = shaderfx.NewShaderInstance(slot.Shader, slot.Links)
	}
	palette := m.Palettes[m.DefaultPalette]
	colors := make([]common.Color, len(palette.Colors))
	copy(colors, palette.Colors)
	return modelInstance{
		tf:      tf,
		colors:  colors,
		shaders: shaders,
		bbox:    common.NewAABB(m.MinBound, m.MaxBound),
	}
}

func (m *modelInstance) setTransform(tf mgl32.Mat4) { m.tf = tf }

func (m *modelInstance) setColor(index int, c common.Color) { m.colors[index] = c }

func (m *modelInstance) shaderInstance(id string) (*shaderfx.ShaderInstance, bool) {
	s, ok := m.shaders[id]
	return s, ok
}

func (m *modelInstance) setShaderProperty(shaderId, propertyName string, val expr.Value) error {
	s, ok := m.shaders[shaderId]
	if !ok {
		return &NoSuchShaderSlotError{ShaderId: shaderId}
	}
	return s.SetProperty(propertyName, val)
}

func (m *modelInstance) setPalette(p ColorPalette) {
	colors := make([]common.Color, len(p.Colors))
	copy(colors, p.Colors)
	m.colors = colors
}

func (m *modelInstance) boundingBox() common.AABB { return m.bbox }

func (m *modelInstance) transform() mgl32.Mat4 { return m.tf }

// NoSuchShaderSlotError reports a SetShaderProperty call against a shader
// slot id the instance's model doesn't have.
type NoSuchShaderSlotError struct {
	ShaderId string
}

func (e *NoSuchShaderSlotError) Error() string {
	return "model: no such shader slot: " + e.ShaderId
}
