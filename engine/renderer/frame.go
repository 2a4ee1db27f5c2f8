package renderer

import (
	"github.com/Yinigma/Pibald/engine/camera"
	"github.com/Yinigma/Pibald/engine/gpustate"
	"github.com/Yinigma/Pibald/engine/gpustore"
	"github.com/Yinigma/Pibald/engine/model"
	"github.com/Yinigma/Pibald/engine/scene"
	"github.com/cogentcore/webgpu/wgpu"
)

// renderStaticPass begins a render pass that clears color and depth,
// binds the static pipeline and camera/light bind groups, then draws
// every static instance cam can see.
func (r *Renderer) renderStaticPass(encoder *wgpu.CommandEncoder, gs *gpustate.GPUState, gpuStore *gpustore.GPUStore, group *scene.RenderGroup, cam camera.Camera, cameraBindGroup *wgpu.BindGroup, outputView, depthView *wgpu.TextureView) {
	pass := encoder.BeginRenderPass(&wgpu.RenderPassDescriptor{
		Label: "Static Pass",
		ColorAttachments: []wgpu.RenderPassColorAttachment{
			{
				View:       outputView,
				LoadOp:     wgpu.LoadOpClear,
				StoreOp:    wgpu.StoreOpStore,
				ClearValue: backgroundClearColor,
			},
		},
		DepthStencilAttachment: &wgpu.RenderPassDepthStencilAttachment{
			View:            depthView,
			DepthLoadOp:     wgpu.LoadOpClear,
			DepthStoreOp:    wgpu.StoreOpStore,
			DepthClearValue: 1.0,
		},
	})

	pass.SetPipeline(r.staticPipeline)
	pass.SetBindGroup(0, cameraBindGroup, nil)
	pass.SetBindGroup(1, gs.LightBindGroup(), nil)

	for _, inst := range group.GetStaticModelsCulled(cam) {
		drawStaticInstance(pass, gs, gpuStore, inst)
	}

	pass.End()
}

// renderAnimatedPass begins a second pass that loads (does not clear)
// color and depth, binds the skinned pipeline, and draws every animated
// instance cam can see.
func (r *Renderer) renderAnimatedPass(encoder *wgpu.CommandEncoder, gs *gpustate.GPUState, gpuStore *gpustore.GPUStore, group *scene.RenderGroup, cam camera.Camera, cameraBindGroup *wgpu.BindGroup, outputView, depthView *wgpu.TextureView) {
	pass := encoder.BeginRenderPass(&wgpu.RenderPassDescriptor{
		Label: "Skinned Pass",
		ColorAttachments: []wgpu.RenderPassColorAttachment{
			{
				View:    outputView,
				LoadOp:  wgpu.LoadOpLoad,
				StoreOp: wgpu.StoreOpStore,
			},
		},
		DepthStencilAttachment: &wgpu.RenderPassDepthStencilAttachment{
			View:         depthView,
			DepthLoadOp:  wgpu.LoadOpLoad,
			DepthStoreOp: wgpu.StoreOpStore,
		},
	})

	pass.SetPipeline(r.skinnedPipeline)
	pass.SetBindGroup(0, cameraBindGroup, nil)
	pass.SetBindGroup(1, gs.LightBindGroup(), nil)

	for _, inst := range group.GetAnimatedModelsCulled(cam) {
		drawAnimatedInstance(pass, gs, gpuStore, inst)
	}

	pass.End()
}

func drawStaticInstance(pass *wgpu.RenderPassEncoder, gs *gpustate.GPUState, gpuStore *gpustore.GPUStore, inst *model.StaticModelInstance) {
	gi, ok := gs.GetStaticInstance(inst.Id())
	if !ok {
		return
	}
	vertBuf, ok := gpuStore.GetStaticVertexBuffer(inst.ModelId())
	if !ok {
		return
	}
	idxBuf, ok := gpuStore.GetIndexBuffer(inst.ModelId())
	if !ok {
		return
	}

	pass.SetBindGroup(2, gi.BindGroup, nil)
	pass.SetVertexBuffer(0, vertBuf, 0, wgpu.WholeSize)
	pass.SetIndexBuffer(idxBuf.Buf, wgpu.IndexFormatUint32, 0, wgpu.WholeSize)
	pass.DrawIndexed(idxBuf.Length, 1, 0, 0, 0)
}

func drawAnimatedInstance(pass *wgpu.RenderPassEncoder, gs *gpustate.GPUState, gpuStore *gpustore.GPUStore, inst *model.AnimatedModelInstance) {
	gi, ok := gs.GetAnimatedInstance(inst.Id())
	if !ok {
		return
	}
	vertBuf, ok := gpuStore.GetAnimatedVertexBuffer(inst.ModelId())
	if !ok {
		return
	}
	idxBuf, ok := gpuStore.GetIndexBuffer(inst.ModelId())
	if !ok {
		return
	}

	pass.SetBindGroup(2, gi.BindGroup, nil)
	pass.SetVertexBuffer(0, vertBuf, 0, wgpu.WholeSize)
	pass.SetIndexBuffer(idxBuf.Buf, wgpu.IndexFormatUint32, 0, wgpu.WholeSize)
	pass.DrawIndexed(idxBuf.Length, 1, 0, 0, 0)
}
