package renderer

import (
	_ "embed"

	"github.com/Yinigma/Pibald/engine/gpustate"
	"github.com/Yinigma/Pibald/engine/gpustore"
	"github.com/cogentcore/webgpu/wgpu"
)

//go:embed assets/static.wgsl
var staticShaderSource string

//go:embed assets/skinned.wgsl
var skinnedShaderSource string

// primitiveState is shared by both pipelines: triangle
// list, CCW front face, back-face cull, fill polygon mode (the wgpu
// default), conservative rasterization off (also the default, so left
// unset).
func primitiveState() wgpu.PrimitiveState {
	return wgpu.PrimitiveState{
		Topology:  wgpu.PrimitiveTopologyTriangleList,
		FrontFace: wgpu.FrontFaceCCW,
		CullMode:  wgpu.CullModeBack,
	}
}

// depthStencilState is shared by both pipelines: Depth32Float, less
// compare, depth writes enabled, stencil test disabled.
func depthStencilState() *wgpu.DepthStencilState {
	return &wgpu.DepthStencilState{
		Format:            gpustate.DepthFormat,
		DepthWriteEnabled: true,
		DepthCompare:      wgpu.CompareFunctionLess,
		StencilFront:      wgpu.StencilFaceState{Compare: wgpu.CompareFunctionAlways},
		StencilBack:       wgpu.StencilFaceState{Compare: wgpu.CompareFunctionAlways},
	}
}

// createStaticPipeline builds the non-skinned render pipeline: pipeline
// layout sets camera/lights/static-instance (0/1/2), the static vertex
// layout, and the shared primitive/depth state.
func createStaticPipeline(device *wgpu.Device, colorFormat wgpu.TextureFormat, layout *wgpu.PipelineLayout) (*wgpu.RenderPipeline, error) {
	vs, err := device.CreateShaderModule(&wgpu.ShaderModuleDescriptor{
		Label:          "Static Vertex Shader",
		WGSLDescriptor: &wgpu.ShaderModuleWGSLDescriptor{Code: staticShaderSource},
	})
	if err != nil {
		return nil, err
	}
	fs, err := device.CreateShaderModule(&wgpu.ShaderModuleDescriptor{
		Label:          "Static Fragment Shader",
		WGSLDescriptor: &wgpu.ShaderModuleWGSLDescriptor{Code: staticShaderSource},
	})
	if err != nil {
		return nil, err
	}

	return device.CreateRenderPipeline(&wgpu.RenderPipelineDescriptor{
		Label:  "Static Model Pipeline",
		Layout: layout,
		Vertex: wgpu.VertexState{
			Module:     vs,
			EntryPoint: "vs_main",
			Buffers:    []wgpu.VertexBufferLayout{gpustore.StaticVertexLayout()},
		},
		Fragment: &wgpu.FragmentState{
			Module:     fs,
			EntryPoint: "fs_main",
			Targets: []wgpu.ColorTargetState{
				{Format: colorFormat, WriteMask: wgpu.ColorWriteMaskAll},
			},
		},
		Primitive:    primitiveState(),
		Multisample:  wgpu.MultisampleState{Count: 1, Mask: 0xFFFFFFFF},
		DepthStencil: depthStencilState(),
	})
}

// createSkinnedPipeline builds the skinned render pipeline: pipeline
// layout sets camera/lights/animated-instance (0/1/2), the animated
// vertex layout, and the shared primitive/depth state.
func createSkinnedPipeline(device *wgpu.Device, colorFormat wgpu.TextureFormat, layout *wgpu.PipelineLayout) (*wgpu.RenderPipeline, error) {
	vs, err := device.CreateShaderModule(&wgpu.ShaderModuleDescriptor{
		Label:          "Skinned Vertex Shader",
		WGSLDescriptor: &wgpu.ShaderModuleWGSLDescriptor{Code: skinnedShaderSource},
	})
	if err != nil {
		return nil, err
	}
	fs, err := device.CreateShaderModule(&wgpu.ShaderModuleDescriptor{
		Label:          "Skinned Fragment Shader",
		WGSLDescriptor: &wgpu.ShaderModuleWGSLDescriptor{Code: skinnedShaderSource},
	})
	if err != nil {
		return nil, err
	}

	return device.CreateRenderPipeline(&wgpu.RenderPipelineDescriptor{
		Label:  "Skinned Model Pipeline",
		Layout: layout,
		Vertex: wgpu.VertexState{
			Module:     vs,
			EntryPoint: "vs_main",
			Buffers:    []wgpu.VertexBufferLayout{gpustore.AnimatedVertexLayout()},
		},
		Fragment: &wgpu.FragmentState{
			Module:     fs,
			EntryPoint: "fs_main",
			Targets: []wgpu.ColorTargetState{
				{Format: colorFormat, WriteMask: wgpu.ColorWriteMaskAll},
			},
		},
		Primitive:    primitiveState(),
		Multisample:  wgpu.MultisampleState{Count: 1, Mask: 0xFFFFFFFF},
		DepthStencil: depthStencilState(),
	})
}
