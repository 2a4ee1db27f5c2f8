package renderer

import (
	"testing"

	"github.com/Yinigma/Pibald/common"
	"github.com/Yinigma/Pibald/engine/gpustate"
	"github.com/cogentcore/webgpu/wgpu"
	"github.com/stretchr/testify/assert"
)

// newBareRenderer builds a Renderer with only its map fields initialized,
// for tests that exercise output-view bookkeeping without a real device.
func newBareRenderer() *Renderer {
	return &Renderer{
		states:      make(map[common.Id]*gpustate.GPUState),
		outputViews: make(map[common.Id]*wgpu.TextureView),
	}
}

func TestPrimitiveState_MatchesSharedConvention(t *testing.T) {
	p := primitiveState()
	assert.Equal(t, wgpu.PrimitiveTopologyTriangleList, p.Topology)
	assert.Equal(t, wgpu.FrontFaceCCW, p.FrontFace)
	assert.Equal(t, wgpu.CullModeBack, p.CullMode)
}

func TestDepthStencilState_LessCompareWriteEnabled(t *testing.T) {
	d := depthStencilState()
	assert.Equal(t, wgpu.TextureFormatDepth32Float, d.Format)
	assert.True(t, d.DepthWriteEnabled)
	assert.Equal(t, wgpu.CompareFunctionLess, d.DepthCompare)
}

func TestBackgroundClearColor_IsFixed(t *testing.T) {
	assert.Equal(t, wgpu.Color{R: 0.1, G: 0.1, B: 0.1, A: 1.0}, backgroundClearColor)
}

// TestSetOutputView_NilDetaches exercises the "camera with an attached
// output view" gate Render checks: setting a view attaches it, setting
// nil removes it again.
func TestSetOutputView_NilDetaches(t *testing.T) {
	r := newBareRenderer()
	id := common.Id{Index: 1}

	view := &wgpu.TextureView{}
	r.SetOutputView(id, view)
	_, ok := r.outputViews[id]
	assert.True(t, ok)

	r.SetOutputView(id, nil)
	_, ok = r.outputViews[id]
	assert.False(t, ok)
}

func TestUnmountCamera_ClearsOutputViewEvenWithoutGroupState(t *testing.T) {
	r := newBareRenderer()
	id := common.Id{Index: 2}
	r.outputViews[id] = &wgpu.TextureView{}

	r.UnmountCamera(common.Id{Index: 99}, id)

	_, ok := r.outputViews[id]
	assert.False(t, ok, "unmounting a camera with no group state must still clear its output view")
}
