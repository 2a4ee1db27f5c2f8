// Package model implements model descriptions and their placed instances
// (static or animated), the scene's renderable unit. A Model
// is shared, immutable template data; instances carry the per-placement
// transform, palette, shader properties, and dirty bit.
package model

import (
	"github.com/Yinigma/Pibald/common"
	"github.com/Yinigma/Pibald/engine/shaderfx"
	"github.com/go-gl/mathgl/mgl32"
)

// Triangle indexes three vertices of a model's shared vertex list.
type Triangle struct {
	Indices [3]uint32
}

// Polygon groups triangles that share a material/shader-slot grouping
// boundary.
type Polygon struct {
	Tris []Triangle
}

// ColorPalette is a named set of colors a model's vertices index into.
type ColorPalette struct {
	Colors []common.Color
}

// ShaderSlot binds a sub-list of a model's polygons (by index into
// Model.Polygons) to a shader and its external value links.
type ShaderSlot struct {
	Tris   []int
	Shader shaderfx.Shader
	Links  []shaderfx.ShaderValueLink
}

// Model is the shared template data for any number of placed instances:
// geometry, color palettes, shader slot assignment, and bounds.
type Model struct {
	Polygons       []Polygon
	Palettes       []ColorPalette
	DefaultPalette int
	ShaderSlots    map[string]ShaderSlot
	MinBound       mgl32.Vec3
	MaxBound       mgl32.Vec3
}

// StaticVertex is one vertex of a non-skinned model.
type StaticVertex struct {
	Loc    mgl32.Vec3
	Col    int // index into the active ColorPalette
	Normal mgl32.Vec3
}

// ArmatureWeight is one bone's influence on a skinned vertex.
type ArmatureWeight struct {
	Weight common.NormalizedFloat
	Index  int
}

// AnimatedVertex is one vertex of a skinned model: a StaticVertex plus its
// bone weights.
type AnimatedVertex struct {
	Vert    StaticVertex
	Weights []ArmatureWeight
}

// StaticModel is a named, non-skinned model template.
type StaticModel struct {
	Id        string
	Vertices  []StaticVertex
	ModelData Model
}

// AnimatedModel is a named, skinned model template bound to an armature.
type AnimatedModel struct {
	Id          string
	Vertices    []AnimatedVertex
	ModelData   Model
	ArmatureId  string
}
