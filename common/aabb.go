package common

import "github.com/go-gl/mathgl/mgl32"

// AABB is an axis-aligned bounding box described by its min and max corners.
type AABB struct {
	Min mgl32.Vec3
	Max mgl32.Vec3
}

// NewAABB builds an AABB from min/max corners.
//
// Parameters:
//   - min: the minimum corner
//   - max: the maximum corner
//
// Returns:
//   - AABB: the constructed box
func NewAABB(min, max mgl32.Vec3) AABB {
	return AABB{Min: min, Max: max}
}

// Corners enumerates the 8 corner points of the box, in the fixed order:
// (minX,minY,minZ), (maxX,minY,minZ), (minX,maxY,minZ), (maxX,maxY,minZ),
// (minX,minY,maxZ), (maxX,minY,maxZ), (minX,maxY,maxZ), (maxX,maxY,maxZ).
//
// Returns:
//   - [8]mgl32.Vec3: the eight corner points
func (b AABB) Corners() [8]mgl32.Vec3 {
	return [8]mgl32.Vec3{
		{b.Min[0], b.Min[1], b.Min[2]},
		{b.Max[0], b.Min[1], b.Min[2]},
		{b.Min[0], b.Max[1], b.Min[2]},
		{b.Max[0], b.Max[1], b.Min[2]},
		{b.Min[0], b.Min[1], b.Max[2]},
		{b.Max[0], b.Min[1], b.Max[2]},
		{b.Min[0], b.Max[1], b.Max[2]},
		{b.Max[0], b.Max[1], b.Max[2]},
	}
}

// Center returns the midpoint of the box.
//
// Returns:
//   - mgl32.Vec3: the center point
func (b AABB) Center() mgl32.Vec3 {
	return b.Min.Add(b.Max).Mul(0.5)
}
