// Package camera implements the scene camera: intrinsic/extrinsic state,
// left-handed view/projection matrices, and the bounding-box visibility
// test the renderer culls instances with.
package camera

import (
	"math"
	"sync"

	"github.com/Yinigma/Pibald/common"
	"github.com/go-gl/mathgl/mgl32"
)

type cameraImpl struct {
	mu *sync.Mutex

	id int

	loc     mgl32.Vec3
	forward mgl32.Vec3
	up      mgl32.Vec3

	fov    float32
	aspect float32
	near   float32
	far    float32
}

// Camera holds a camera's placement and lens settings and derives its
// view/projection matrices from them on demand, per the left-handed
// convention this engine uses throughout.
type Camera interface {
	Id() int
	Location() mgl32.Vec3
	Forward() mgl32.Vec3
	Up() mgl32.Vec3
	// Right is derived as up x forward, matching the source convention.
	Right() mgl32.Vec3

	Translate(displacement mgl32.Vec3)
	// Pitch rotates forward around the up x forward axis; positive angle
	// looks up, clamped to stop just short of the up vector to avoid a
	// degenerate look direction.
	Pitch(angle float32)
	Yaw(angle float32)

	ViewMatrix() mgl32.Mat4
	ProjectionMatrix() mgl32.Mat4

	// BBoxInView tests whether bbox, placed in the world by worldTransform,
	// intersects this camera's clip-space frustum.
	BBoxInView(bbox common.AABB, worldTransform mgl32.Mat4) bool
}

var _ Camera = &cameraImpl{}

// CameraOption configures a Camera under construction.
type CameraOption func(*cameraImpl)

// WithLocation sets the camera's initial world position.
func WithLocation(loc mgl32.Vec3) CameraOption {
	return func(c *cameraImpl) { c.loc = loc }
}

// WithForward sets the camera's initial look direction.
func WithForward(forward mgl32.Vec3) CameraOption {
	return func(c *cameraImpl) { c.forward = forward }
}

// WithUp sets the camera's up vector.
func WithUp(up mgl32.Vec3) CameraOption {
	return func(c *cameraImpl) { c.up = up }
}

// WithLens sets the camera's field of view (radians), aspect ratio, and
// near/far clip distances.
func WithLens(fovY, aspect, near, far float32) CameraOption {
	return func(c *cameraImpl) {
		c.fov = fovY
		c.aspect = aspect
		c.near = near
		c.far = far
	}
}

// NewCamera builds a Camera with default placement (origin, looking +Z,
// up +Y) and lens (60deg fov, 16:9, 0.1/100 clip), configured by opts.
//
// Parameters:
//   - id: the camera's scene entity id
//   - opts: functional options (location/forward/up/lens)
//
// Returns:
//   - Camera: the constructed camera
func NewCamera(id int, opts ...CameraOption) Camera {
	c := &cameraImpl{
		mu:      &sync.Mutex{},
		id:      id,
		loc:     mgl32.Vec3{0, 0, 0},
		forward: mgl32.Vec3{0, 0, 1},
		up:      mgl32.Vec3{0, 1, 0},
		fov:     1.0472, // 60 degrees
		aspect:  16.0 / 9.0,
		near:    0.1,
		far:     100,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *cameraImpl) Id() int { return c.id }

func (c *cameraImpl) Location() mgl32.Vec3 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.loc
}

func (c *cameraImpl) Forward() mgl32.Vec3 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.forward
}

func (c *cameraImpl) Up() mgl32.Vec3 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.up
}

func (c *cameraImpl) Right() mgl32.Vec3 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.up.Cross(c.forward)
}

func (c *cameraImpl) Translate(displacement mgl32.Vec3) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.loc = c.loc.Add(displacement)
}

func (c *cameraImpl) Pitch(angle float32) {
	c.mu.Lock()
	defer c.mu.Unlock()
	between := angleBetween(c.forward, c.up)
	safeAngle := min32(between-0.05, angle)
	axis := c.up.Cross(c.forward)
	// A positive rotation about up x forward tilts forward away from up,
	// so looking up by safeAngle is a rotation by -safeAngle.
	c.forward = mgl32.QuatRotate(-safeAngle, axis).Rotate(c.forward)
}

func (c *cameraImpl) Yaw(angle float32) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.forward = mgl32.QuatRotate(angle, c.up).Rotate(c.forward)
}

func (c *cameraImpl) ViewMatrix() mgl32.Mat4 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return common.LookAtLH(c.loc, c.loc.Add(c.forward), c.up)
}

func (c *cameraImpl) ProjectionMatrix() mgl32.Mat4 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return common.PerspectiveLH(c.fov, c.aspect, c.near, c.far)
}

// BBoxInView projects bbox's 8 corners through the camera's combined
// model-view-projection matrix and rejects the box only if every corner
// falls outside the same clip-space boundary: this is the
// separating-axis-per-clip-plane test, not an exact frustum intersection,
// matching the source's own conservative culling check.
func (c *cameraImpl) BBoxInView(bbox common.AABB, worldTransform mgl32.Mat4) bool {
	mvp := c.ProjectionMatrix().Mul4(c.ViewMatrix()).Mul4(worldTransform)
	corners := bbox.Corners()
	points := make([]mgl32.Vec3, 8)
	for i, p := range corners {
		points[i] = projectPoint(mvp, p)
	}

	allTrue := func(pred func(mgl32.Vec3) bool) bool {
		for _, p := range points {
			if !pred(p) {
				return false
			}
		}
		return true
	}

	outside := allTrue(func(p mgl32.Vec3) bool { return p[2] < 0 }) ||
		allTrue(func(p mgl32.Vec3) bool { return p[0] > 1 }) ||
		allTrue(func(p mgl32.Vec3) bool { return p[0] < -1 }) ||
		allTrue(func(p mgl32.Vec3) bool { return p[1] > 1 }) ||
		allTrue(func(p mgl32.Vec3) bool { return p[1] < -1 }) ||
		allTrue(func(p mgl32.Vec3) bool { return p[2] > 1 })

	return !outside
}

// projectPoint applies an homogeneous 4x4 transform to a point and
// performs the perspective divide.
func projectPoint(m mgl32.Mat4, p mgl32.Vec3) mgl32.Vec3 {
	v := m.Mul4x1(mgl32.Vec4{p[0], p[1], p[2], 1})
	if v[3] == 0 {
		return mgl32.Vec3{v[0], v[1], v[2]}
	}
	return mgl32.Vec3{v[0] / v[3], v[1] / v[3], v[2] / v[3]}
}

func angleBetween(a, b mgl32.Vec3) float32 {
	denom := a.Len() * b.Len()
	if denom == 0 {
		return 0
	}
	cos := a.Dot(b) / denom
	if cos > 1 {
		cos = 1
	}
	if cos < -1 {
		cos = -1
	}
	return float32(math.Acos(float64(cos)))
}

func min32(a, b float32) float32 {
	if a < b {
		return a
	}
	return b
}
