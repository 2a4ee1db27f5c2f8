package gpustate

import (
	"testing"

	"github.com/Yinigma/Pibald/common"
	"github.com/Yinigma/Pibald/engine/light"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGPUPointLight_MarshalLayout(t *testing.T) {
	descriptor := light.NewPointLightDescriptor()
	l := light.NewPointLight(3, descriptor)
	l.Light.SetColor(common.NewColor(0.1, 0.2, 0.3, 1))
	l.Light.SetIntensity(2.5)
	l.Light.SetRadius(1.5)
	l.Light.SetCutoffDistance(20)
	l.Light.SetLocation(mgl32.Vec3{1, 2, 3})

	buf := newGPUPointLight(&l).marshal()
	require.Len(t, buf, pointLightSize)
}

func TestEmptyGPUPointLight_IntensityIsNegative(t *testing.T) {
	e := emptyGPUPointLight()
	assert.Less(t, e.intensity, float32(0))
}

func TestEmptyGPUSpotLight_IntensityIsNegative(t *testing.T) {
	e := emptyGPUSpotLight()
	assert.Less(t, e.intensity, float32(0))
}

func TestGPUSpotLight_FieldMapping(t *testing.T) {
	descriptor := light.NewSpotLightDescriptor(0.5, mgl32.Vec3{0, -1, 0})
	l := light.NewSpotLight(7, descriptor)
	l.Light.SetLocation(mgl32.Vec3{4, 5, 6})

	gl := newGPUSpotLight(&l)
	assert.Equal(t, [3]float32{4, 5, 6}, gl.loc)
	assert.Equal(t, [3]float32{0, -1, 0}, gl.dir)

	buf := gl.marshal()
	require.Len(t, buf, spotLightSize)
}

// TestNextPointSlot_ReusesFreedSlotBeforeGrowing: three lights occupy
// slots 0,1,2; freeing the middle one returns slot 1 to the free-list;
// the next add reuses slot 1 rather than allocating slot 3.
func TestNextPointSlot_ReusesFreedSlotBeforeGrowing(t *testing.T) {
	s := &GPULightStore{pointIndex: make(map[int]int), spotIndex: make(map[int]int)}

	a := s.nextPointSlot()
	b := s.nextPointSlot()
	c := s.nextPointSlot()
	assert.Equal(t, []int{0, 1, 2}, []int{a, b, c})
	assert.EqualValues(t, 3, s.pointCount)

	s.freePoints = append(s.freePoints, b)
	reused := s.nextPointSlot()
	assert.Equal(t, b, reused)
	assert.EqualValues(t, 3, s.pointCount, "reusing a freed slot must not grow the occupied count")
}

// TestNextSpotSlot_IndependentOfPointFreeList is the fixed-source-bug
// regression: populating the spot free-list must never influence which
// slot a point light add receives, and vice versa.
func TestNextSpotSlot_IndependentOfPointFreeList(t *testing.T) {
	s := &GPULightStore{pointIndex: make(map[int]int), spotIndex: make(map[int]int)}

	s.nextPointSlot() // occupies point slot 0
	s.freeSpots = append(s.freeSpots, 41)

	nextPoint := s.nextPointSlot()
	assert.Equal(t, 1, nextPoint, "a vacated spot slot must never be handed out as a point slot")

	nextSpot := s.nextSpotSlot()
	assert.Equal(t, 41, nextSpot, "the spot free-list is still consulted correctly for spot adds")
}

func TestColorUniformBytes_PacksAndCapsAtCapacity(t *testing.T) {
	colors := make([]common.Color, NumInstanceColors+5)
	for i := range colors {
		colors[i] = common.NewColor(float32(i), 0, 0, 1)
	}
	buf := colorUniformBytes(colors)
	require.Len(t, buf, NumInstanceColors*16)
}

func TestMat4Bytes_IdentityIs64Bytes(t *testing.T) {
	buf := mat4Bytes(mgl32.Ident4())
	require.Len(t, buf, 64)
}

func TestPosesToBytes_LengthMatchesBoneCount(t *testing.T) {
	mats := identityMats(10)
	buf := posesToBytes(mats)
	require.Len(t, buf, 10*mat4Size)
}

func TestIdentityMats_AllIdentity(t *testing.T) {
	mats := identityMats(4)
	for _, m := range mats {
		assert.Equal(t, mgl32.Ident4(), m)
	}
}
