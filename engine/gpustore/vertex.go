// Package gpustore manages per-model GPU buffer residency: vertex and
// index buffers uploaded once per model and held immutable until the
// model is unloaded.
package gpustore

import (
	"encoding/binary"
	"math"
	"unsafe"

	"github.com/cogentcore/webgpu/wgpu"
)

// numBonesPerVert is the fixed per-vertex bone influence budget; weights
// and ids beyond this count are dropped, per the source's packing.
const numBonesPerVert = 8

// GPUStaticVertex is the GPU-resident layout for a non-skinned vertex:
// a palette color index plus position and normal. 28 bytes, no padding.
type GPUStaticVertex struct {
	Color    uint32
	Position [3]float32
	Normal   [3]float32
}

// Size returns the marshaled size of GPUStaticVertex in bytes.
func (v GPUStaticVertex) Size() int { return int(unsafe.Sizeof(v)) }

// Marshal serializes v into a tightly packed 28-byte buffer.
func (v GPUStaticVertex) Marshal() []byte {
	buf := make([]byte, 28)
	binary.LittleEndian.PutUint32(buf[0:4], v.Color)
	binary.LittleEndian.PutUint32(buf[4:8], math.Float32bits(v.Position[0]))
	binary.LittleEndian.PutUint32(buf[8:12], math.Float32bits(v.Position[1]))
	binary.LittleEndian.PutUint32(buf[12:16], math.Float32bits(v.Position[2]))
	binary.LittleEndian.PutUint32(buf[16:20], math.Float32bits(v.Normal[0]))
	binary.LittleEndian.PutUint32(buf[20:24], math.Float32bits(v.Normal[1]))
	binary.LittleEndian.PutUint32(buf[24:28], math.Float32bits(v.Normal[2]))
	return buf
}

// StaticVertexLayout describes GPUStaticVertex for a static mesh pipeline's
// vertex buffer slot: color at location 2, position at 0, normal at 1.
func StaticVertexLayout() wgpu.VertexBufferLayout {
	return wgpu.VertexBufferLayout{
		ArrayStride: uint64(GPUStaticVertex{}.Size()),
		StepMode:    wgpu.VertexStepModeVertex,
		Attributes: []wgpu.VertexAttribute{
			{Format: wgpu.VertexFormatUint32, Offset: 0, ShaderLocation: 2},
			{Format: wgpu.VertexFormatFloat32x3, Offset: 4, ShaderLocation: 0},
			{Format: wgpu.VertexFormatFloat32x3, Offset: 16, ShaderLocation: 1},
		},
	}
}

// GPUAnimatedVertex extends GPUStaticVertex with packed bone weights and
// ids for skinned meshes. 52 bytes: 28 base + 16 weights + 8 ids.
type GPUAnimatedVertex struct {
	Static    GPUStaticVertex
	RigWeights [numBonesPerVert]uint16
	RigIds     [numBonesPerVert]uint8
}

// Size returns the marshaled size of GPUAnimatedVertex in bytes.
func (v GPUAnimatedVertex) Size() int { return int(unsafe.Sizeof(v)) }

// Marshal serializes v into a tightly packed 52-byte buffer.
func (v GPUAnimatedVertex) Marshal() []byte {
	buf := make([]byte, 52)
	copy(buf[0:28], v.Static.Marshal())
	for i, w := range v.RigWeights {
		binary.LittleEndian.PutUint16(buf[28+i*2:30+i*2], w)
	}
	for i, id := range v.RigIds {
		buf[44+i] = id
	}
	return buf
}

// AnimatedVertexLayout describes GPUAnimatedVertex for a skinned mesh
// pipeline's vertex buffer slot: the static attributes at locations 0-2,
// packed rig weights at location 3, packed rig ids at location 4.
func AnimatedVertexLayout() wgpu.VertexBufferLayout {
	return wgpu.VertexBufferLayout{
		ArrayStride: uint64(GPUAnimatedVertex{}.Size()),
		StepMode:    wgpu.VertexStepModeVertex,
		Attributes: []wgpu.VertexAttribute{
			{Format: wgpu.VertexFormatUint32, Offset: 0, ShaderLocation: 2},
			{Format: wgpu.VertexFormatFloat32x3, Offset: 4, ShaderLocation: 0},
			{Format: wgpu.VertexFormatFloat32x3, Offset: 16, ShaderLocation: 1},
			{Format: wgpu.VertexFormatUint32x4, Offset: 28, ShaderLocation: 3},
			{Format: wgpu.VertexFormatUint32x2, Offset: 44, ShaderLocation: 4},
		},
	}
}
