// Package renderer is the core render loop: two pipelines (static,
// skinned) sharing a camera/lights/instance bind-group layout contract,
// a PushBufferUpdates step that keeps every group's GPU mirror in
// sync, and a render step that draws each group's culled instances
// through a per-camera two-pass clear/load sequence.
package renderer

import (
	"github.com/Yinigma/Pibald/common"
	"github.com/Yinigma/Pibald/engine/gpustate"
	"github.com/Yinigma/Pibald/engine/gpustore"
	"github.com/Yinigma/Pibald/engine/scene"
	"github.com/cogentcore/webgpu/wgpu"
)

// backgroundClearColor is the fixed color the static pass clears to.
var backgroundClearColor = wgpu.Color{R: 0.1, G: 0.1, B: 0.1, A: 1.0}

// Renderer owns the two render pipelines and the per-group GPU state
// mirrors built against their shared bind-group layouts. One Renderer
// serves an entire RenderState: every group's GPUState is created lazily,
// the first time PushBufferUpdates or MountCamera sees that group.
type Renderer struct {
	device *wgpu.Device
	queue  *wgpu.Queue

	cameraLayout   *wgpu.BindGroupLayout
	lightLayout    *wgpu.BindGroupLayout
	staticLayout   *wgpu.BindGroupLayout
	animatedLayout *wgpu.BindGroupLayout

	staticPipeline  *wgpu.RenderPipeline
	skinnedPipeline *wgpu.RenderPipeline

	states map[common.Id]*gpustate.GPUState

	// outputViews holds the color target each camera renders into this
	// frame, set by the caller via SetOutputView. A camera with no entry
	// here is "without an attached output view" and is skipped by Render.
	outputViews map[common.Id]*wgpu.TextureView
}

// NewRenderer builds both pipelines against one shared set of bind-group
// layouts (camera=0, lights=1, instance=2) and colorFormat as the single
// color target format both pipelines render to.
func NewRenderer(device *wgpu.Device, queue *wgpu.Queue, colorFormat wgpu.TextureFormat) (*Renderer, error) {
	cameraLayout, err := device.CreateBindGroupLayout(descPtr(gpustate.CameraBindGroupLayoutDescriptor()))
	if err != nil {
		return nil, err
	}
	lightLayout, err := device.CreateBindGroupLayout(descPtr(gpustate.LightBindGroupLayoutDescriptor()))
	if err != nil {
		return nil, err
	}
	staticLayout, err := device.CreateBindGroupLayout(descPtr(gpustate.StaticInstanceLayoutDescriptor()))
	if err != nil {
		return nil, err
	}
	animatedLayout, err := device.CreateBindGroupLayout(descPtr(gpustate.AnimatedInstanceLayoutDescriptor()))
	if err != nil {
		return nil, err
	}

	staticPipelineLayout, err := device.CreatePipelineLayout(&wgpu.PipelineLayoutDescriptor{
		Label:            "Static Pipeline Layout",
		BindGroupLayouts: []*wgpu.BindGroupLayout{cameraLayout, lightLayout, staticLayout},
	})
	if err != nil {
		return nil, err
	}
	skinnedPipelineLayout, err := device.CreatePipelineLayout(&wgpu.PipelineLayoutDescriptor{
		Label:            "Skinned Pipeline Layout",
		BindGroupLayouts: []*wgpu.BindGroupLayout{cameraLayout, lightLayout, animatedLayout},
	})
	if err != nil {
		return nil, err
	}

	staticPipeline, err := createStaticPipeline(device, colorFormat, staticPipelineLayout)
	if err != nil {
		return nil, err
	}
	skinnedPipeline, err := createSkinnedPipeline(device, colorFormat, skinnedPipelineLayout)
	if err != nil {
		return nil, err
	}

	return &Renderer{
		device:          device,
		queue:           queue,
		cameraLayout:    cameraLayout,
		lightLayout:     lightLayout,
		staticLayout:    staticLayout,
		animatedLayout:  animatedLayout,
		staticPipeline:  staticPipeline,
		skinnedPipeline: skinnedPipeline,
		states:          make(map[common.Id]*gpustate.GPUState),
		outputViews:     make(map[common.Id]*wgpu.TextureView),
	}, nil
}

func descPtr(d wgpu.BindGroupLayoutDescriptor) *wgpu.BindGroupLayoutDescriptor { return &d }

// SetOutputView attaches view as the color target camId renders into for
// the next Render call. Passing a nil view detaches it, so the camera is
// no longer "with an attached output view" and Render skips it.
func (r *Renderer) SetOutputView(camId common.Id, view *wgpu.TextureView) {
	if view == nil {
		delete(r.outputViews, camId)
		return
	}
	r.outputViews[camId] = view
}

// MountCamera ensures groupId's GPU mirror exists, then mounts camId's
// GPU camera resources (view-projection uniform, own depth attachment
// sized width x height). Cameras are mounted by this explicit call
// rather than discovered through PushBufferUpdates' generic sweep —
// only the caller knows the viewport a camera renders into.
func (r *Renderer) MountCamera(group *scene.RenderGroup, camId common.Id, width, height uint32) error {
	gs, err := r.ensureGroupState(group)
	if err != nil {
		return err
	}
	cam, ok := group.GetCamera(camId)
	if !ok {
		return nil
	}
	return gs.AddCamera(camId, cam, width, height)
}

// UnmountCamera releases camId's GPU camera resources in groupId, if any.
func (r *Renderer) UnmountCamera(groupId, camId common.Id) {
	if gs, ok := r.states[groupId]; ok {
		gs.RemoveCamera(camId)
	}
	delete(r.outputViews, camId)
}

func (r *Renderer) ensureGroupState(group *scene.RenderGroup) (*gpustate.GPUState, error) {
	if gs, ok := r.states[group.Id()]; ok {
		return gs, nil
	}
	gs, err := gpustate.NewGPUState(group, r.device, r.queue, r.cameraLayout, r.lightLayout, r.staticLayout, r.animatedLayout)
	if err != nil {
		return nil, err
	}
	r.states[group.Id()] = gs
	return gs, nil
}

// PushBufferUpdates syncs every group's GPU mirror: if a group has no
// mirror yet, one is created; then its added/removed/dirty change-sets
// are drained via GPUState.Update.
func (r *Renderer) PushBufferUpdates(renderState *scene.RenderState, device *wgpu.Device, queue *wgpu.Queue) error {
	for _, group := range renderState.GetGroups() {
		gs, err := r.ensureGroupState(group)
		if err != nil {
			return err
		}
		if err := gs.Update(group, device, queue); err != nil {
			return err
		}
	}
	return nil
}

// Render draws every group's visible instances into every camera with an
// attached output view: a clear pass of static instances, then a load
// pass of animated instances, both culled and z-sorted by
// GetStaticModelsCulled/GetAnimatedModelsCulled.
func (r *Renderer) Render(renderState *scene.RenderState, gpuStore *gpustore.GPUStore, device *wgpu.Device, queue *wgpu.Queue) error {
	encoder, err := device.CreateCommandEncoder(nil)
	if err != nil {
		return err
	}

	for _, group := range renderState.GetGroups() {
		gs, ok := r.states[group.Id()]
		if !ok {
			continue
		}
		for _, camId := range group.GetCameraIds() {
			outputView, ok := r.outputViews[camId]
			if !ok {
				continue
			}
			gpuCam, ok := gs.GetCamera(camId)
			if !ok {
				continue
			}
			cam, ok := group.GetCamera(camId)
			if !ok {
				continue
			}

			r.renderStaticPass(encoder, gs, gpuStore, group, cam, gpuCam.BindGroup, outputView, gpuCam.DepthView)
			r.renderAnimatedPass(encoder, gs, gpuStore, group, cam, gpuCam.BindGroup, outputView, gpuCam.DepthView)
		}
	}

	commandBuffer, err := encoder.Finish(nil)
	if err != nil {
		return err
	}
	queue.Submit(commandBuffer)
	return nil
}
