// Package gpustate owns the GPU-resident mirror of a scene group: light
// storage buffers, per-camera view/depth resources, and per-instance
// transform/color/pose uniforms, kept in sync with the scene's dirty and
// added/removed change-sets.
package gpustate

import (
	"encoding/binary"
	"math"

	"github.com/Yinigma/Pibald/engine/light"
	"github.com/cogentcore/webgpu/wgpu"
)

// MaxPointLights and MaxSpotLights are the fixed slot counts of each
// light store's dense array.
const (
	MaxPointLights = 1024
	MaxSpotLights  = 1024
)

const (
	pointLightSize  = 48 // 36 bytes useful + 12 pad, 16-byte aligned
	spotLightSize   = 48
	storeFooterSize = 16 // trailing u32 count + 12 bytes padding
)

// LightBindGroupLayoutDescriptor describes set 1: the point and spot
// light storage buffers, both read-only and fragment-visible.
func LightBindGroupLayoutDescriptor() wgpu.BindGroupLayoutDescriptor {
	return wgpu.BindGroupLayoutDescriptor{
		Label: "Scene Lights",
		Entries: []wgpu.BindGroupLayoutEntry{
			{
				Binding:    0,
				Visibility: wgpu.ShaderStageFragment,
				Buffer:     wgpu.BufferBindingLayout{Type: wgpu.BufferBindingTypeReadOnlyStorage},
			},
			{
				Binding:    1,
				Visibility: wgpu.ShaderStageFragment,
				Buffer:     wgpu.BufferBindingLayout{Type: wgpu.BufferBindingTypeReadOnlyStorage},
			},
		},
	}
}

// gpuPointLight is the wire layout for one point light slot:
// color[3] f32, intensity f32, loc[3] f32, radius f32, cutoff f32, then
// padding to round the slot out to 48 bytes, 16-byte aligned.
type gpuPointLight struct {
	color     [3]float32
	intensity float32
	loc       [3]float32
	radius    float32
	cutoff    float32
}

func newGPUPointLight(l *light.PointLight) gpuPointLight {
	return gpuPointLight{
		color:     [3]float32{l.Light.Color.R, l.Light.Color.G, l.Light.Color.B},
		intensity: l.Light.Intensity,
		loc:       [3]float32{l.Light.Location[0], l.Light.Location[1], l.Light.Location[2]},
		radius:    l.Light.Radius,
		cutoff:    l.Light.CutoffDistance,
	}
}

// emptyGPUPointLight is the vacated-slot sentinel: intensity < 0 marks
// the slot unoccupied.
func emptyGPUPointLight() gpuPointLight {
	return gpuPointLight{intensity: -1}
}

func (l gpuPointLight) marshal() []byte {
	buf := make([]byte, pointLightSize)
	binary.LittleEndian.PutUint32(buf[0:4], math.Float32bits(l.color[0]))
	binary.LittleEndian.PutUint32(buf[4:8], math.Float32bits(l.color[1]))
	binary.LittleEndian.PutUint32(buf[8:12], math.Float32bits(l.color[2]))
	binary.LittleEndian.PutUint32(buf[12:16], math.Float32bits(l.intensity))
	binary.LittleEndian.PutUint32(buf[16:20], math.Float32bits(l.loc[0]))
	binary.LittleEndian.PutUint32(buf[20:24], math.Float32bits(l.loc[1]))
	binary.LittleEndian.PutUint32(buf[24:28], math.Float32bits(l.loc[2]))
	binary.LittleEndian.PutUint32(buf[28:32], math.Float32bits(l.radius))
	binary.LittleEndian.PutUint32(buf[32:36], math.Float32bits(l.cutoff))
	return buf
}

// gpuSpotLight is the wire layout for one spot light slot:
// color[3] f32, intensity f32, loc[3] f32, radius f32, dir[3] f32,
// cutoff f32 — 48 bytes, no trailing pad needed.
//
// Note: the cone half-angle (light.SpotLight.Angle) is never transmitted
// here — the original system tracks it only on the CPU side and this
// layout preserves that gap rather than inventing a field for it.
type gpuSpotLight struct {
	color     [3]float32
	intensity float32
	loc       [3]float32
	radius    float32
	dir       [3]float32
	cutoff    float32
}

func newGPUSpotLight(l *light.SpotLight) gpuSpotLight {
	return gpuSpotLight{
		color:     [3]float32{l.Light.Color.R, l.Light.Color.G, l.Light.Color.B},
		intensity: l.Light.Intensity,
		loc:       [3]float32{l.Light.Location[0], l.Light.Location[1], l.Light.Location[2]},
		radius:    l.Light.Radius,
		dir:       [3]float32{l.Dir[0], l.Dir[1], l.Dir[2]},
		cutoff:    l.Light.CutoffDistance,
	}
}

func emptyGPUSpotLight() gpuSpotLight {
	return gpuSpotLight{intensity: -1}
}

func (l gpuSpotLight) marshal() []byte {
	buf := make([]byte, spotLightSize)
	binary.LittleEndian.PutUint32(buf[0:4], math.Float32bits(l.color[0]))
	binary.LittleEndian.PutUint32(buf[4:8], math.Float32bits(l.color[1]))
	binary.LittleEndian.PutUint32(buf[8:12], math.Float32bits(l.color[2]))
	binary.LittleEndian.PutUint32(buf[12:16], math.Float32bits(l.intensity))
	binary.LittleEndian.PutUint32(buf[16:20], math.Float32bits(l.loc[0]))
	binary.LittleEndian.PutUint32(buf[20:24], math.Float32bits(l.loc[1]))
	binary.LittleEndian.PutUint32(buf[24:28], math.Float32bits(l.loc[2]))
	binary.LittleEndian.PutUint32(buf[28:32], math.Float32bits(l.radius))
	binary.LittleEndian.PutUint32(buf[32:36], math.Float32bits(l.dir[0]))
	binary.LittleEndian.PutUint32(buf[36:40], math.Float32bits(l.dir[1]))
	binary.LittleEndian.PutUint32(buf[40:44], math.Float32bits(l.dir[2]))
	binary.LittleEndian.PutUint32(buf[44:48], math.Float32bits(l.cutoff))
	return buf
}

// GPULightStore mirrors a group's point and spot lights in two
// fixed-capacity dense GPU arrays, each with its own free-list of
// vacated slots so ids can be added and removed without ever
// reshuffling another light's slot.
//
// The point and spot free-lists are kept fully independent — the
// source's add_point_light consults the spot free-list in one branch,
// which would let adding a point light steal a vacated spot slot; this
// store always pops from the list matching the kind of light being added.
type GPULightStore struct {
	device *wgpu.Device
	queue  *wgpu.Queue

	pointSlots []gpuPointLight
	pointCount uint32
	freePoints []int
	pointIndex map[int]int

	spotSlots []gpuSpotLight
	spotCount uint32
	freeSpots []int
	spotIndex map[int]int

	pointBuffer *wgpu.Buffer
	spotBuffer  *wgpu.Buffer
	BindGroup   *wgpu.BindGroup
}

// NewGPULightStore builds a light store seeded from a group's current
// point and spot lights, uploads both storage buffers, and creates the
// combined bind group under layout.
func NewGPULightStore(points []*light.PointLight, spots []*light.SpotLight, device *wgpu.Device, queue *wgpu.Queue, layout *wgpu.BindGroupLayout) (*GPULightStore, error) {
	s := &GPULightStore{
		device:     device,
		queue:      queue,
		pointSlots: make([]gpuPointLight, MaxPointLights),
		pointIndex: make(map[int]int),
		spotSlots:  make([]gpuSpotLight, MaxSpotLights),
		spotIndex:  make(map[int]int),
	}
	for i := range s.pointSlots {
		s.pointSlots[i] = emptyGPUPointLight()
	}
	for i := range s.spotSlots {
		s.spotSlots[i] = emptyGPUSpotLight()
	}

	for i, p := range points {
		if i >= MaxPointLights {
			break
		}
		s.pointSlots[i] = newGPUPointLight(p)
		s.pointIndex[p.Id] = i
	}
	s.pointCount = uint32(len(s.pointIndex))

	for i, sp := range spots {
		if i >= MaxSpotLights {
			break
		}
		s.spotSlots[i] = newGPUSpotLight(sp)
		s.spotIndex[sp.Id] = i
	}
	s.spotCount = uint32(len(s.spotIndex))

	pointBuf, err := s.createPointBuffer()
	if err != nil {
		return nil, err
	}
	s.pointBuffer = pointBuf

	spotBuf, err := s.createSpotBuffer()
	if err != nil {
		return nil, err
	}
	s.spotBuffer = spotBuf

	bindGroup, err := device.CreateBindGroup(&wgpu.BindGroupDescriptor{
		Label:  "Light Bind Group",
		Layout: layout,
		Entries: []wgpu.BindGroupEntry{
			{Binding: 0, Buffer: s.pointBuffer, Offset: 0, Size: wgpu.WholeSize},
			{Binding: 1, Buffer: s.spotBuffer, Offset: 0, Size: wgpu.WholeSize},
		},
	})
	if err != nil {
		return nil, err
	}
	s.BindGroup = bindGroup

	return s, nil
}

func (s *GPULightStore) marshalPoints() []byte {
	buf := make([]byte, MaxPointLights*pointLightSize+storeFooterSize)
	for i, l := range s.pointSlots {
		copy(buf[i*pointLightSize:(i+1)*pointLightSize], l.marshal())
	}
	binary.LittleEndian.PutUint32(buf[MaxPointLights*pointLightSize:], s.pointCount)
	return buf
}

func (s *GPULightStore) marshalSpots() []byte {
	buf := make([]byte, MaxSpotLights*spotLightSize+storeFooterSize)
	for i, l := range s.spotSlots {
		copy(buf[i*spotLightSize:(i+1)*spotLightSize], l.marshal())
	}
	binary.LittleEndian.PutUint32(buf[MaxSpotLights*spotLightSize:], s.spotCount)
	return buf
}

func (s *GPULightStore) createPointBuffer() (*wgpu.Buffer, error) {
	data := s.marshalPoints()
	buf, err := s.device.CreateBuffer(&wgpu.BufferDescriptor{
		Label:            "Point Light Store",
		Size:             uint64(len(data)),
		Usage:            wgpu.BufferUsageStorage | wgpu.BufferUsageCopyDst,
		MappedAtCreation: false,
	})
	if err != nil {
		return nil, err
	}
	s.queue.WriteBuffer(buf, 0, data)
	return buf, nil
}

func (s *GPULightStore) createSpotBuffer() (*wgpu.Buffer, error) {
	data := s.marshalSpots()
	buf, err := s.device.CreateBuffer(&wgpu.BufferDescriptor{
		Label:            "Spot Light Store",
		Size:             uint64(len(data)),
		Usage:            wgpu.BufferUsageStorage | wgpu.BufferUsageCopyDst,
		MappedAtCreation: false,
	})
	if err != nil {
		return nil, err
	}
	s.queue.WriteBuffer(buf, 0, data)
	return buf, nil
}

// AddPointLight occupies the next free point slot (reusing a vacated
// one if the point free-list is non-empty) and uploads it.
func (s *GPULightStore) AddPointLight(l *light.PointLight) {
	index := s.nextPointSlot()
	s.pointSlots[index] = newGPUPointLight(l)
	s.pointIndex[l.Id] = index
	s.queue.WriteBuffer(s.pointBuffer, uint64(index*pointLightSize), s.pointSlots[index].marshal())
	s.queue.WriteBuffer(s.pointBuffer, uint64(MaxPointLights*pointLightSize), countBytes(s.pointCount))
}

func (s *GPULightStore) nextPointSlot() int {
	if n := len(s.freePoints); n > 0 {
		idx := s.freePoints[n-1]
		s.freePoints = s.freePoints[:n-1]
		return idx
	}
	idx := int(s.pointCount)
	s.pointCount++
	return idx
}

// RemovePointLight vacates the slot held by id, if any, writing the
// empty sentinel and returning the slot to the point free-list.
func (s *GPULightStore) RemovePointLight(id int) {
	index, ok := s.pointIndex[id]
	if !ok {
		return
	}
	delete(s.pointIndex, id)
	s.pointSlots[index] = emptyGPUPointLight()
	s.freePoints = append(s.freePoints, index)
	s.queue.WriteBuffer(s.pointBuffer, uint64(index*pointLightSize), s.pointSlots[index].marshal())
}

// UpdatePointLight overwrites the slot held by l.Id in place, a no-op if
// no mirror exists for that id — GPU updates never fail in-core.
func (s *GPULightStore) UpdatePointLight(l *light.PointLight) {
	index, ok := s.pointIndex[l.Id]
	if !ok {
		return
	}
	s.pointSlots[index] = newGPUPointLight(l)
	s.queue.WriteBuffer(s.pointBuffer, uint64(index*pointLightSize), s.pointSlots[index].marshal())
}

// AddSpotLight occupies the next free spot slot (reusing a vacated one
// if the spot free-list is non-empty) and uploads it.
func (s *GPULightStore) AddSpotLight(l *light.SpotLight) {
	index := s.nextSpotSlot()
	s.spotSlots[index] = newGPUSpotLight(l)
	s.spotIndex[l.Id] = index
	s.queue.WriteBuffer(s.spotBuffer, uint64(index*spotLightSize), s.spotSlots[index].marshal())
	s.queue.WriteBuffer(s.spotBuffer, uint64(MaxSpotLights*spotLightSize), countBytes(s.spotCount))
}

func (s *GPULightStore) nextSpotSlot() int {
	if n := len(s.freeSpots); n > 0 {
		idx := s.freeSpots[n-1]
		s.freeSpots = s.freeSpots[:n-1]
		return idx
	}
	idx := int(s.spotCount)
	s.spotCount++
	return idx
}

// RemoveSpotLight vacates the slot held by id, if any, writing the
// empty sentinel and returning the slot to the spot free-list.
func (s *GPULightStore) RemoveSpotLight(id int) {
	index, ok := s.spotIndex[id]
	if !ok {
		return
	}
	delete(s.spotIndex, id)
	s.spotSlots[index] = emptyGPUSpotLight()
	s.freeSpots = append(s.freeSpots, index)
	s.queue.WriteBuffer(s.spotBuffer, uint64(index*spotLightSize), s.spotSlots[index].marshal())
}

// UpdateSpotLight overwrites the slot held by l.Id in place, a no-op if
// no mirror exists for that id.
func (s *GPULightStore) UpdateSpotLight(l *light.SpotLight) {
	index, ok := s.spotIndex[l.Id]
	if !ok {
		return
	}
	s.spotSlots[index] = newGPUSpotLight(l)
	s.queue.WriteBuffer(s.spotBuffer, uint64(index*spotLightSize), s.spotSlots[index].marshal())
}

func countBytes(count uint32) []byte {
	buf := make([]byte, 4)
	binary.LittleEndian.PutUint32(buf, count)
	return buf
}
