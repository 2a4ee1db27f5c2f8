package camera

import (
	"testing"

	"github.com/Yinigma/Pibald/common"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
)

func TestBBoxInView_OriginCubeVisibleFromBehind(t *testing.T) {
	// Scenario S6: a unit cube at the world origin, camera at (0,0,-5)
	// looking down +Z, should be visible.
	cam := NewCamera(1,
		WithLocation(mgl32.Vec3{0, 0, -5}),
		WithForward(mgl32.Vec3{0, 0, 1}),
		WithUp(mgl32.Vec3{0, 1, 0}),
		WithLens(1.0472, 1.0, 0.1, 100),
	)
	box := common.NewAABB(mgl32.Vec3{-0.5, -0.5, -0.5}, mgl32.Vec3{0.5, 0.5, 0.5})
	assert.True(t, cam.BBoxInView(box, mgl32.Ident4()))
}

func TestBBoxInView_FarOffsetCubeNotVisible(t *testing.T) {
	cam := NewCamera(1,
		WithLocation(mgl32.Vec3{0, 0, -5}),
		WithForward(mgl32.Vec3{0, 0, 1}),
		WithUp(mgl32.Vec3{0, 1, 0}),
		WithLens(1.0472, 1.0, 0.1, 100),
	)
	box := common.NewAABB(mgl32.Vec3{-0.5, -0.5, -0.5}, mgl32.Vec3{0.5, 0.5, 0.5})
	worldTf := mgl32.Translate3D(1000, 0, 0)
	assert.False(t, cam.BBoxInView(box, worldTf))
}

func TestCamera_RightIsUpCrossForward(t *testing.T) {
	cam := NewCamera(1, WithForward(mgl32.Vec3{0, 0, 1}), WithUp(mgl32.Vec3{0, 1, 0}))
	right := cam.Right()
	expected := mgl32.Vec3{0, 1, 0}.Cross(mgl32.Vec3{0, 0, 1})
	assert.Equal(t, expected, right)
}
