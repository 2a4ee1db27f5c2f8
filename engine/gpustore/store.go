package gpustore

import (
	"math"

	"github.com/Yinigma/Pibald/engine/model"
	"github.com/cogentcore/webgpu/wgpu"
)

// IndexBuffer pairs a GPU index buffer with its index count, so draw
// calls don't need a separate lookup to know how many indices to issue.
type IndexBuffer struct {
	Buf    *wgpu.Buffer
	Length uint32
}

// GPUMaterialId keys a per-material index buffer: one model can have
// several shader slots, each drawn with its own index subset.
type GPUMaterialId struct {
	ModelId      string
	MaterialSlot string
}

// GPUStore holds every model's GPU buffer residency: static and animated
// vertex buffers, the whole-model index buffer used for passes that don't
// care about material boundaries (e.g. shadow maps), and the per-material
// index buffers used for forward draws. Buffers are immutable once
// uploaded — a model is replaced only by unloading and reloading it.
type GPUStore struct {
	device *wgpu.Device
	queue  *wgpu.Queue

	staticVertBuffers map[string]*wgpu.Buffer
	animVertBuffers   map[string]*wgpu.Buffer
	indexBuffers      map[string]IndexBuffer
	matIndexBuffers   map[GPUMaterialId]IndexBuffer
}

// NewGPUStore builds an empty store bound to device/queue.
func NewGPUStore(device *wgpu.Device, queue *wgpu.Queue) *GPUStore {
	return &GPUStore{
		device:            device,
		queue:             queue,
		staticVertBuffers: make(map[string]*wgpu.Buffer),
		animVertBuffers:   make(map[string]*wgpu.Buffer),
		indexBuffers:      make(map[string]IndexBuffer),
		matIndexBuffers:   make(map[GPUMaterialId]IndexBuffer),
	}
}

func (s *GPUStore) GetStaticVertexBuffer(modelId string) (*wgpu.Buffer, bool) {
	b, ok := s.staticVertBuffers[modelId]
	return b, ok
}

func (s *GPUStore) GetAnimatedVertexBuffer(modelId string) (*wgpu.Buffer, bool) {
	b, ok := s.animVertBuffers[modelId]
	return b, ok
}

func (s *GPUStore) GetIndexBuffer(modelId string) (IndexBuffer, bool) {
	b, ok := s.indexBuffers[modelId]
	return b, ok
}

func (s *GPUStore) GetIndicesForMaterial(modelId, materialSlot string) (IndexBuffer, bool) {
	b, ok := s.matIndexBuffers[GPUMaterialId{ModelId: modelId, MaterialSlot: materialSlot}]
	return b, ok
}

// flattenIndices concatenates the triangle indices of every polygon in
// polys, in polygon order, as a draw-ready flat index list.
func flattenIndices(polys []model.Polygon) []uint32 {
	indices := make([]uint32, 0)
	for _, poly := range polys {
		for _, tri := range poly.Tris {
			indices = append(indices, tri.Indices[0], tri.Indices[1], tri.Indices[2])
		}
	}
	return indices
}

// flattenMaterialIndices concatenates the triangle indices of only the
// polygons named by slot.Tris (indices into polys), in that order.
func flattenMaterialIndices(polys []model.Polygon, slot model.ShaderSlot) []uint32 {
	indices := make([]uint32, 0)
	for _, polyIdx := range slot.Tris {
		for _, tri := range polys[polyIdx].Tris {
			indices = append(indices, tri.Indices[0], tri.Indices[1], tri.Indices[2])
		}
	}
	return indices
}

func indicesToBytes(indices []uint32) []byte {
	buf := make([]byte, len(indices)*4)
	for i, idx := range indices {
		buf[i*4] = byte(idx)
		buf[i*4+1] = byte(idx >> 8)
		buf[i*4+2] = byte(idx >> 16)
		buf[i*4+3] = byte(idx >> 24)
	}
	return buf
}

func (s *GPUStore) createIndexBuffer(label string, indices []uint32) (IndexBuffer, error) {
	data := indicesToBytes(indices)
	buf, err := s.device.CreateBuffer(&wgpu.BufferDescriptor{
		Label:            label,
		Size:             uint64(len(data)),
		Usage:            wgpu.BufferUsageIndex | wgpu.BufferUsageCopyDst,
		MappedAtCreation: false,
	})
	if err != nil {
		return IndexBuffer{}, err
	}
	if len(data) > 0 {
		s.queue.WriteBuffer(buf, 0, data)
	}
	return IndexBuffer{Buf: buf, Length: uint32(len(indices))}, nil
}

func (s *GPUStore) loadMaterialMappings(modelId string, polys []model.Polygon, slots map[string]model.ShaderSlot) error {
	for slotName, slot := range slots {
		indices := flattenMaterialIndices(polys, slot)
		buf, err := s.createIndexBuffer(modelId+" "+slotName+" Index Buffer", indices)
		if err != nil {
			return err
		}
		s.matIndexBuffers[GPUMaterialId{ModelId: modelId, MaterialSlot: slotName}] = buf
	}
	return nil
}

// LoadStaticModel uploads m's vertex, whole-model index, and per-material
// index buffers. Replaces any buffers already held under m.Id.
func (s *GPUStore) LoadStaticModel(m model.StaticModel) error {
	polys := m.ModelData.Polygons

	fullIndices := flattenIndices(polys)
	idxBuf, err := s.createIndexBuffer(m.Id+" Index Buffer", fullIndices)
	if err != nil {
		return err
	}
	s.indexBuffers[m.Id] = idxBuf

	gpuVerts := make([]byte, 0, len(m.Vertices)*(GPUStaticVertex{}).Size())
	for _, v := range m.Vertices {
		gpuVerts = append(gpuVerts, staticVertexOf(v).Marshal()...)
	}
	vertBuf, err := s.device.CreateBuffer(&wgpu.BufferDescriptor{
		Label:            m.Id + " Static Vertex Buffer",
		Size:             uint64(len(gpuVerts)),
		Usage:            wgpu.BufferUsageVertex | wgpu.BufferUsageCopyDst,
		MappedAtCreation: false,
	})
	if err != nil {
		return err
	}
	if len(gpuVerts) > 0 {
		s.queue.WriteBuffer(vertBuf, 0, gpuVerts)
	}
	s.staticVertBuffers[m.Id] = vertBuf

	return s.loadMaterialMappings(m.Id, polys, m.ModelData.ShaderSlots)
}

// LoadSkinnedModel uploads m's skinned vertex, whole-model index, and
// per-material index buffers. Replaces any buffers already held under
// m.Id.
func (s *GPUStore) LoadSkinnedModel(m model.AnimatedModel) error {
	polys := m.ModelData.Polygons

	if err := s.loadMaterialMappings(m.Id, polys, m.ModelData.ShaderSlots); err != nil {
		return err
	}

	fullIndices := flattenIndices(polys)
	idxBuf, err := s.createIndexBuffer(m.Id+" Index Buffer", fullIndices)
	if err != nil {
		return err
	}
	s.indexBuffers[m.Id] = idxBuf

	gpuVerts := make([]byte, 0, len(m.Vertices)*(GPUAnimatedVertex{}).Size())
	for _, v := range m.Vertices {
		gpuVerts = append(gpuVerts, animatedVertexOf(v).Marshal()...)
	}
	vertBuf, err := s.device.CreateBuffer(&wgpu.BufferDescriptor{
		Label:            m.Id + " Anim Vertex Buffer",
		Size:             uint64(len(gpuVerts)),
		Usage:            wgpu.BufferUsageVertex | wgpu.BufferUsageCopyDst,
		MappedAtCreation: false,
	})
	if err != nil {
		return err
	}
	if len(gpuVerts) > 0 {
		s.queue.WriteBuffer(vertBuf, 0, gpuVerts)
	}
	s.animVertBuffers[m.Id] = vertBuf

	return nil
}

// UnloadModel releases every buffer owned by handle: its vertex buffer
// (static or animated, whichever is present), its whole-model index
// buffer, and every per-material index buffer keyed under it. Buffers
// belonging to other models are left untouched.
func (s *GPUStore) UnloadModel(handle string) {
	for key, buf := range s.matIndexBuffers {
		if key.ModelId == handle {
			buf.Buf.Release()
			delete(s.matIndexBuffers, key)
		}
	}
	if buf, ok := s.indexBuffers[handle]; ok {
		buf.Buf.Release()
		delete(s.indexBuffers, handle)
	}
	if buf, ok := s.animVertBuffers[handle]; ok {
		buf.Release()
		delete(s.animVertBuffers, handle)
	}
	if buf, ok := s.staticVertBuffers[handle]; ok {
		buf.Release()
		delete(s.staticVertBuffers, handle)
	}
}

func staticVertexOf(v model.StaticVertex) GPUStaticVertex {
	return GPUStaticVertex{
		Color:    uint32(v.Col),
		Position: [3]float32{v.Loc[0], v.Loc[1], v.Loc[2]},
		Normal:   [3]float32{v.Normal[0], v.Normal[1], v.Normal[2]},
	}
}

// animatedVertexOf packs v's bone influences into the fixed 8-slot GPU
// layout: weights quantized to u16, influences beyond the 8th dropped,
// unused id slots filled with 0xFF so the shader can detect them.
func animatedVertexOf(v model.AnimatedVertex) GPUAnimatedVertex {
	gv := GPUAnimatedVertex{Static: staticVertexOf(v.Vert)}
	for i := range gv.RigIds {
		gv.RigIds[i] = math.MaxUint8
	}
	for i := 0; i < len(v.Weights) && i < numBonesPerVert; i++ {
		gv.RigWeights[i] = uint16(math.Round(float64(v.Weights[i].Weight.Val()) * math.MaxUint16))
		gv.RigIds[i] = uint8(v.Weights[i].Index)
	}
	return gv
}
