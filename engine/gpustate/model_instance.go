package gpustate

import (
	"encoding/binary"
	"math"

	"github.com/Yinigma/Pibald/common"
	"github.com/Yinigma/Pibald/engine/model"
	"github.com/cogentcore/webgpu/wgpu"
	"github.com/go-gl/mathgl/mgl32"
)

// NumInstanceColors is the fixed capacity of an instance's color
// uniform — colors beyond this many are silently dropped on upload.
const NumInstanceColors = 128

// NumInstanceBones is the fixed capacity of an animated instance's pose
// uniform, sized for the largest armature this engine supports.
const NumInstanceBones = 256

const mat4Size = 64 // 4x4 f32

// StaticInstanceLayoutDescriptor describes set 2 for the static
// pipeline: a transform uniform visible to both stages (the fragment
// stage reads it for shader effects keyed on world position) and a
// vertex-only color uniform.
func StaticInstanceLayoutDescriptor() wgpu.BindGroupLayoutDescriptor {
	return wgpu.BindGroupLayoutDescriptor{
		Label: "Static Model Parameters",
		Entries: []wgpu.BindGroupLayoutEntry{
			{
				Binding:    0,
				Visibility: wgpu.ShaderStageVertex | wgpu.ShaderStageFragment,
				Buffer:     wgpu.BufferBindingLayout{Type: wgpu.BufferBindingTypeUniform},
			},
			{
				Binding:    1,
				Visibility: wgpu.ShaderStageVertex,
				Buffer:     wgpu.BufferBindingLayout{Type: wgpu.BufferBindingTypeUniform},
			},
		},
	}
}

// AnimatedInstanceLayoutDescriptor describes set 2 for the skinned
// pipeline: transform, color, and skinning-pose uniforms, all
// vertex-only.
func AnimatedInstanceLayoutDescriptor() wgpu.BindGroupLayoutDescriptor {
	return wgpu.BindGroupLayoutDescriptor{
		Label: "Skinned Model Parameters",
		Entries: []wgpu.BindGroupLayoutEntry{
			{
				Binding:    0,
				Visibility: wgpu.ShaderStageVertex,
				Buffer:     wgpu.BufferBindingLayout{Type: wgpu.BufferBindingTypeUniform},
			},
			{
				Binding:    1,
				Visibility: wgpu.ShaderStageVertex,
				Buffer:     wgpu.BufferBindingLayout{Type: wgpu.BufferBindingTypeUniform},
			},
			{
				Binding:    2,
				Visibility: wgpu.ShaderStageVertex,
				Buffer:     wgpu.BufferBindingLayout{Type: wgpu.BufferBindingTypeUniform},
			},
		},
	}
}

// colorUniformBytes packs colors into a fixed NumInstanceColors-capacity
// buffer, colors beyond the capacity dropped, unused slots left zeroed.
func colorUniformBytes(colors []common.Color) []byte {
	buf := make([]byte, NumInstanceColors*16)
	for i, c := range colors {
		if i >= NumInstanceColors {
			break
		}
		offset := i * 16
		binary.LittleEndian.PutUint32(buf[offset:offset+4], math.Float32bits(c.R))
		binary.LittleEndian.PutUint32(buf[offset+4:offset+8], math.Float32bits(c.G))
		binary.LittleEndian.PutUint32(buf[offset+8:offset+12], math.Float32bits(c.B))
		binary.LittleEndian.PutUint32(buf[offset+12:offset+16], math.Float32bits(c.A))
	}
	return buf
}

// GPUStaticModelInstance mirrors a static model instance's transform and
// color palette as GPU uniforms.
type GPUStaticModelInstance struct {
	modelId    string
	tfUniform  *wgpu.Buffer
	colorStore *wgpu.Buffer
	BindGroup  *wgpu.BindGroup
}

// NewGPUStaticModelInstance uploads inst's initial transform and color
// palette and builds its bind group.
func NewGPUStaticModelInstance(inst *model.StaticModelInstance, layout *wgpu.BindGroupLayout, device *wgpu.Device, queue *wgpu.Queue) (*GPUStaticModelInstance, error) {
	tfBuf, err := createUniformBuffer(device, queue, "Modelspace Uniform", mat4Bytes(inst.Transform()))
	if err != nil {
		return nil, err
	}
	colorBuf, err := createUniformBuffer(device, queue, "Vertex Color Uniform", colorUniformBytes(inst.Colors()))
	if err != nil {
		return nil, err
	}
	bindGroup, err := device.CreateBindGroup(&wgpu.BindGroupDescriptor{
		Label:  "Static Model",
		Layout: layout,
		Entries: []wgpu.BindGroupEntry{
			{Binding: 0, Buffer: tfBuf, Offset: 0, Size: wgpu.WholeSize},
			{Binding: 1, Buffer: colorBuf, Offset: 0, Size: wgpu.WholeSize},
		},
	})
	if err != nil {
		return nil, err
	}
	return &GPUStaticModelInstance{
		modelId:    inst.ModelId(),
		tfUniform:  tfBuf,
		colorStore: colorBuf,
		BindGroup:  bindGroup,
	}, nil
}

// UpdateStaticModelInstance rewrites only the transform uniform — the
// color palette is not re-uploaded on a plain update.
func (g *GPUStaticModelInstance) UpdateStaticModelInstance(inst *model.StaticModelInstance, queue *wgpu.Queue) {
	queue.WriteBuffer(g.tfUniform, 0, mat4Bytes(inst.Transform()))
}

// Destroy releases the instance's GPU resources. The color uniform is
// intentionally left alive here, matching the original asymmetric
// destroy (it releases only the transform uniform) — preserved rather
// than "fixed" since no documented behavior requires releasing it here.
func (g *GPUStaticModelInstance) Destroy() {
	g.tfUniform.Release()
}

// GPUAnimatedModelInstance mirrors an animated model instance's
// transform, color palette, and current skinning pose as GPU uniforms.
type GPUAnimatedModelInstance struct {
	modelId     string
	tfUniform   *wgpu.Buffer
	colorStore  *wgpu.Buffer
	poseUniform *wgpu.Buffer
	BindGroup   *wgpu.BindGroup

	poseScratch []mgl32.Mat4
	bindScratch []mgl32.Mat4
}

// NewGPUAnimatedModelInstance uploads inst's initial transform, color
// palette, and current pose, and builds its bind group.
func NewGPUAnimatedModelInstance(inst *model.AnimatedModelInstance, layout *wgpu.BindGroupLayout, device *wgpu.Device, queue *wgpu.Queue) (*GPUAnimatedModelInstance, error) {
	tfBuf, err := createUniformBuffer(device, queue, "Modelspace Uniform", mat4Bytes(inst.Transform()))
	if err != nil {
		return nil, err
	}
	colorBuf, err := createUniformBuffer(device, queue, "Vertex Color Uniform", colorUniformBytes(inst.Colors()))
	if err != nil {
		return nil, err
	}

	poseScratch := identityMats(NumInstanceBones)
	bindScratch := identityMats(NumInstanceBones)
	inst.AnimState().WriteCurrentPoseTransforms(poseScratch, bindScratch)

	poseBuf, err := createUniformBuffer(device, queue, "Animation State Buffer", posesToBytes(poseScratch))
	if err != nil {
		return nil, err
	}

	bindGroup, err := device.CreateBindGroup(&wgpu.BindGroupDescriptor{
		Label:  "Anim State",
		Layout: layout,
		Entries: []wgpu.BindGroupEntry{
			{Binding: 0, Buffer: tfBuf, Offset: 0, Size: wgpu.WholeSize},
			{Binding: 1, Buffer: colorBuf, Offset: 0, Size: wgpu.WholeSize},
			{Binding: 2, Buffer: poseBuf, Offset: 0, Size: wgpu.WholeSize},
		},
	})
	if err != nil {
		return nil, err
	}

	return &GPUAnimatedModelInstance{
		modelId:     inst.ModelId(),
		tfUniform:   tfBuf,
		colorStore:  colorBuf,
		poseUniform: poseBuf,
		BindGroup:   bindGroup,
		poseScratch: poseScratch,
		bindScratch: bindScratch,
	}, nil
}

// UpdateAnimatedModelInstance rewrites the transform uniform, then
// resweeps the instance's current pose into skinning matrices and
// uploads only the first armature.NumBones()*16 floats of it — bones
// beyond the instance's own armature are left at their previous values
// in the uniform but are never read, since the shader only consumes the
// first NumBones entries for that draw.
func (g *GPUAnimatedModelInstance) UpdateAnimatedModelInstance(inst *model.AnimatedModelInstance, queue *wgpu.Queue) {
	queue.WriteBuffer(g.tfUniform, 0, mat4Bytes(inst.Transform()))

	inst.AnimState().WriteCurrentPoseTransforms(g.poseScratch, g.bindScratch)
	numBones := inst.AnimState().Armature().NumBones()
	if numBones > NumInstanceBones {
		numBones = NumInstanceBones
	}
	queue.WriteBuffer(g.poseUniform, 0, posesToBytes(g.poseScratch[:numBones]))
}

// Destroy releases the instance's transform and pose uniforms. As with
// the static instance, the color uniform is left alive, matching the
// source.
func (g *GPUAnimatedModelInstance) Destroy() {
	g.tfUniform.Release()
	g.poseUniform.Release()
}

func identityMats(n int) []mgl32.Mat4 {
	out := make([]mgl32.Mat4, n)
	for i := range out {
		out[i] = mgl32.Ident4()
	}
	return out
}

func posesToBytes(mats []mgl32.Mat4) []byte {
	buf := make([]byte, 0, len(mats)*mat4Size)
	for _, m := range mats {
		buf = append(buf, mat4Bytes(m)...)
	}
	return buf
}

func createUniformBuffer(device *wgpu.Device, queue *wgpu.Queue, label string, data []byte) (*wgpu.Buffer, error) {
	buf, err := device.CreateBuffer(&wgpu.BufferDescriptor{
		Label:            label,
		Size:             uint64(len(data)),
		Usage:            wgpu.BufferUsageUniform | wgpu.BufferUsageCopyDst,
		MappedAtCreation: false,
	})
	if err != nil {
		return nil, err
	}
	queue.WriteBuffer(buf, 0, data)
	return buf, nil
}
