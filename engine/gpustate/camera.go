package gpustate

import (
	"encoding/binary"
	"math"

	"github.com/Yinigma/Pibald/engine/camera"
	"github.com/cogentcore/webgpu/wgpu"
	"github.com/go-gl/mathgl/mgl32"
)

// DepthFormat is the shared depth attachment format every camera's depth
// texture and every pipeline's depth-stencil state uses.
const DepthFormat = wgpu.TextureFormatDepth32Float

// CameraBindGroupLayoutDescriptor describes set 0: the camera's combined
// view-projection uniform, vertex-stage visible only.
func CameraBindGroupLayoutDescriptor() wgpu.BindGroupLayoutDescriptor {
	return wgpu.BindGroupLayoutDescriptor{
		Label: "Camera",
		Entries: []wgpu.BindGroupLayoutEntry{
			{
				Binding:    0,
				Visibility: wgpu.ShaderStageVertex,
				Buffer:     wgpu.BufferBindingLayout{Type: wgpu.BufferBindingTypeUniform},
			},
		},
	}
}

func mat4Bytes(m mgl32.Mat4) []byte {
	buf := make([]byte, 64)
	for i := 0; i < 16; i++ {
		binary.LittleEndian.PutUint32(buf[i*4:i*4+4], math.Float32bits(m[i]))
	}
	return buf
}

// GPUCamera mirrors one camera's view-projection uniform and its own
// depth attachment, sized to the viewport it renders into.
type GPUCamera struct {
	tfUniform *wgpu.Buffer
	BindGroup *wgpu.BindGroup
	depthTex  *wgpu.Texture
	DepthView *wgpu.TextureView
	depthSamp *wgpu.Sampler
}

// NewGPUCamera allocates cam's view-projection uniform and bind group,
// plus a width x height depth texture/view/sampler, and writes cam's
// initial matrix.
func NewGPUCamera(cam camera.Camera, device *wgpu.Device, queue *wgpu.Queue, layout *wgpu.BindGroupLayout, width, height uint32) (*GPUCamera, error) {
	buf, err := device.CreateBuffer(&wgpu.BufferDescriptor{
		Label:            "View Projection Buffer",
		Size:             64,
		Usage:            wgpu.BufferUsageUniform | wgpu.BufferUsageCopyDst,
		MappedAtCreation: false,
	})
	if err != nil {
		return nil, err
	}

	bindGroup, err := device.CreateBindGroup(&wgpu.BindGroupDescriptor{
		Label:  "Camera",
		Layout: layout,
		Entries: []wgpu.BindGroupEntry{
			{Binding: 0, Buffer: buf, Offset: 0, Size: wgpu.WholeSize},
		},
	})
	if err != nil {
		return nil, err
	}

	depthTex, err := device.CreateTexture(&wgpu.TextureDescriptor{
		Label: "Camera Depth",
		Size: wgpu.Extent3D{
			Width:              width,
			Height:             height,
			DepthOrArrayLayers: 1,
		},
		MipLevelCount: 1,
		SampleCount:   1,
		Dimension:     wgpu.TextureDimension2D,
		Format:        DepthFormat,
		Usage:         wgpu.TextureUsageRenderAttachment | wgpu.TextureUsageTextureBinding,
	})
	if err != nil {
		return nil, err
	}
	depthView, err := depthTex.CreateView(nil)
	if err != nil {
		depthTex.Release()
		return nil, err
	}
	depthSamp, err := device.CreateSampler(&wgpu.SamplerDescriptor{
		Label:         "Camera Depth Sampler",
		AddressModeU:  wgpu.AddressModeClampToEdge,
		AddressModeV:  wgpu.AddressModeClampToEdge,
		AddressModeW:  wgpu.AddressModeClampToEdge,
		MagFilter:     wgpu.FilterModeLinear,
		MinFilter:     wgpu.FilterModeLinear,
		MipmapFilter:  wgpu.MipmapFilterModeNearest,
		Compare:       wgpu.CompareFunctionLess,
		MaxAnisotropy: 1,
	})
	if err != nil {
		return nil, err
	}

	gc := &GPUCamera{
		tfUniform: buf,
		BindGroup: bindGroup,
		depthTex:  depthTex,
		DepthView: depthView,
		depthSamp: depthSamp,
	}
	gc.UpdateCamera(cam, queue)
	return gc, nil
}

// UpdateCamera rewrites the view-projection uniform from cam's current
// placement and lens, matching the source's perspective * view order.
func (c *GPUCamera) UpdateCamera(cam camera.Camera, queue *wgpu.Queue) {
	vp := cam.ProjectionMatrix().Mul4(cam.ViewMatrix())
	queue.WriteBuffer(c.tfUniform, 0, mat4Bytes(vp))
}

// Destroy releases the camera's GPU resources.
func (c *GPUCamera) Destroy() {
	c.depthSamp.Release()
	c.DepthView.Release()
	c.depthTex.Release()
	c.tfUniform.Release()
}
