package common

import (
	"math"
	"unsafe"

	"github.com/go-gl/mathgl/mgl32"
)

// SliceToBytes reinterprets a slice of fixed-size values as a raw byte
// slice, for staging GPU buffer writes without a manual marshal loop.
// The returned slice aliases data's backing array — callers must treat it
// as read-only and must not let data escape before the write completes.
//
// Parameters:
//   - data: the source slice
//
// Returns:
//   - []byte: a byte view over data, or nil if data is empty
func SliceToBytes[T any](data []T) []byte {
	if len(data) == 0 {
		return nil
	}
	var zero T
	size := unsafe.Sizeof(zero)
	return unsafe.Slice((*byte)(unsafe.Pointer(&data[0])), int(size)*len(data))
}

// StructToBytes reinterprets a pointer to a fixed-size struct as a raw byte
// slice of the struct's in-memory size, for GPU uniform buffer writes.
//
// Parameters:
//   - v: pointer to the value to reinterpret
//
// Returns:
//   - []byte: a byte view over *v
func StructToBytes[T any](v *T) []byte {
	return unsafe.Slice((*byte)(unsafe.Pointer(v)), int(unsafe.Sizeof(*v)))
}

// ComposeTRS builds a column-major 4x4 model matrix from a translation,
// rotation (quaternion), and scale, matching the TRS composition every
// pose/instance transform in this engine uses: scale first, then rotate,
// then translate.
//
// Parameters:
//   - location: translation component
//   - orientation: rotation component
//   - scale: per-axis scale component
//
// Returns:
//   - mgl32.Mat4: the composed matrix
func ComposeTRS(location mgl32.Vec3, orientation mgl32.Quat, scale mgl32.Vec3) mgl32.Mat4 {
	s := mgl32.Scale3D(scale[0], scale[1], scale[2])
	r := orientation.Mat4()
	t := mgl32.Translate3D(location[0], location[1], location[2])
	return t.Mul4(r).Mul4(s)
}

// LookAtLH builds a left-handed view matrix, matching this engine's
// left-handed-projection camera convention. mgl32's stock LookAtV is
// right-handed, so the engine's cameras use this variant instead,
// following the same eye/center/up composition a hand-rolled LookAt
// would use, but with +Z pointing into the scene rather than out of it.
//
// Parameters:
//   - eye: camera position
//   - center: look-at target
//   - up: up direction (need not be normalized)
//
// Returns:
//   - mgl32.Mat4: the left-handed view matrix
func LookAtLH(eye, center, up mgl32.Vec3) mgl32.Mat4 {
	zAxis := center.Sub(eye).Normalize()
	xAxis := up.Cross(zAxis).Normalize()
	yAxis := zAxis.Cross(xAxis)

	return mgl32.Mat4{
		xAxis[0], yAxis[0], zAxis[0], 0,
		xAxis[1], yAxis[1], zAxis[1], 0,
		xAxis[2], yAxis[2], zAxis[2], 0,
		-xAxis.Dot(eye), -yAxis.Dot(eye), -zAxis.Dot(eye), 1,
	}
}

// PerspectiveLH builds a left-handed perspective projection matrix
// targeting WebGPU's [0,1] depth clip-space convention.
//
// Parameters:
//   - fovY: vertical field of view in radians
//   - aspect: viewport aspect ratio (width/height)
//   - near: near clip distance (> 0)
//   - far: far clip distance (> near)
//
// Returns:
//   - mgl32.Mat4: the left-handed perspective matrix
func PerspectiveLH(fovY, aspect, near, far float32) mgl32.Mat4 {
	f := float32(1.0 / math.Tan(float64(fovY)/2.0))
	var m mgl32.Mat4
	m[0] = f / aspect
	m[5] = f
	m[10] = far / (far - near)
	m[11] = 1.0
	m[14] = -(near * far) / (far - near)
	return m
}
