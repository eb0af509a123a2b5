package gpu

import (
	"unsafe"

	"github.com/cogentcore/webgpu/wgpu"

	"github.com/gekko3d/tweakview/render/core"
	"github.com/gekko3d/tweakview/render/shaders"
)

type gpuMesh struct {
	vertices   *wgpu.Buffer
	indices    *wgpu.Buffer
	indexCount uint32
}

func (m *gpuMesh) release() {
	m.vertices.Release()
	m.indices.Release()
}

// drawSlot is the per-draw uniform buffer and its bind group. Slots are reused
// across frames by draw index.
type drawSlot struct {
	buffer    *wgpu.Buffer
	bindGroup *wgpu.BindGroup
}

type meshCall struct {
	mesh *gpuMesh
	slot *drawSlot
}

// MeshPass draws lit, depth-tested triangle meshes. Vertex and index buffers
// are uploaded once per MeshDraw.Key and kept until the pass is released.
type MeshPass struct {
	device     *wgpu.Device
	queue      *wgpu.Queue
	pipeline   *wgpu.RenderPipeline
	sceneGroup *wgpu.BindGroup

	cache map[string]*gpuMesh
	slots []*drawSlot
	calls []meshCall
}

func NewMeshPass(device *wgpu.Device, format wgpu.TextureFormat, sceneBuffer *wgpu.Buffer) (*MeshPass, error) {
	pipeline, err := createPipeline(device, pipelineDesc{
		label: "MeshPipeline",
		code:  shaders.MeshWGSL,
		buffers: []wgpu.VertexBufferLayout{
			{
				ArrayStride: uint64(unsafe.Sizeof(meshVertex{})),
				StepMode:    wgpu.VertexStepModeVertex,
				Attributes: []wgpu.VertexAttribute{
					{Format: wgpu.VertexFormatFloat32x3, Offset: 0, ShaderLocation: 0},
					{Format: wgpu.VertexFormatFloat32x3, Offset: 12, ShaderLocation: 1},
				},
			},
		},
		topology: wgpu.PrimitiveTopologyTriangleList,
		format:   format,
		depth:    depthTest,
		blend:    alphaBlend,
	})
	if err != nil {
		return nil, err
	}
	sceneGroup, err := uniformBindGroup(device, "MeshSceneBG", pipeline, 0, sceneBuffer)
	if err != nil {
		return nil, err
	}
	return &MeshPass{
		device:     device,
		queue:      device.GetQueue(),
		pipeline:   pipeline,
		sceneGroup: sceneGroup,
		cache:      make(map[string]*gpuMesh),
	}, nil
}

func (p *MeshPass) upload(key string, mesh *core.Mesh) (*gpuMesh, error) {
	if m, ok := p.cache[key]; ok {
		return m, nil
	}
	vertices, err := p.device.CreateBufferInit(&wgpu.BufferInitDescriptor{
		Label:    "MeshVertices " + key,
		Contents: wgpu.ToBytes(interleave(mesh)),
		Usage:    wgpu.BufferUsageVertex,
	})
	if err != nil {
		return nil, err
	}
	indices, err := p.device.CreateBufferInit(&wgpu.BufferInitDescriptor{
		Label:    "MeshIndices " + key,
		Contents: wgpu.ToBytes(mesh.Indices),
		Usage:    wgpu.BufferUsageIndex,
	})
	if err != nil {
		vertices.Release()
		return nil, err
	}
	m := &gpuMesh{vertices: vertices, indices: indices, indexCount: uint32(len(mesh.Indices))}
	p.cache[key] = m
	return m, nil
}

func (p *MeshPass) slot(i int) (*drawSlot, error) {
	for len(p.slots) <= i {
		buffer, err := p.device.CreateBuffer(&wgpu.BufferDescriptor{
			Label: "MeshDrawUniforms",
			Size:  uint64(unsafe.Sizeof(drawUniforms{})),
			Usage: wgpu.BufferUsageUniform | wgpu.BufferUsageCopyDst,
		})
		if err != nil {
			return nil, err
		}
		bg, err := uniformBindGroup(p.device, "MeshDrawBG", p.pipeline, 1, buffer)
		if err != nil {
			buffer.Release()
			return nil, err
		}
		p.slots = append(p.slots, &drawSlot{buffer: buffer, bindGroup: bg})
	}
	return p.slots[i], nil
}

// Prepare uploads new meshes and this frame's per-draw uniforms.
func (p *MeshPass) Prepare(draws []core.MeshDraw) error {
	p.calls = p.calls[:0]
	for i := range draws {
		d := &draws[i]
		if d.Mesh == nil || len(d.Mesh.Indices) == 0 {
			continue
		}
		mesh, err := p.upload(d.Key, d.Mesh)
		if err != nil {
			return err
		}
		slot, err := p.slot(len(p.calls))
		if err != nil {
			return err
		}
		p.queue.WriteBuffer(slot.buffer, 0, wgpu.ToBytes([]drawUniforms{packDraw(d)}))
		p.calls = append(p.calls, meshCall{mesh: mesh, slot: slot})
	}
	return nil
}

func (p *MeshPass) Draw(pass *wgpu.RenderPassEncoder) {
	if len(p.calls) == 0 {
		return
	}
	pass.SetPipeline(p.pipeline)
	pass.SetBindGroup(0, p.sceneGroup, nil)
	for _, c := range p.calls {
		pass.SetBindGroup(1, c.slot.bindGroup, nil)
		pass.SetVertexBuffer(0, c.mesh.vertices, 0, c.mesh.vertices.GetSize())
		pass.SetIndexBuffer(c.mesh.indices, wgpu.IndexFormatUint32, 0, c.mesh.indices.GetSize())
		pass.DrawIndexed(c.mesh.indexCount, 1, 0, 0, 0)
	}
}

func (p *MeshPass) Release() {
	for _, m := range p.cache {
		m.release()
	}
	for _, s := range p.slots {
		s.bindGroup.Release()
		s.buffer.Release()
	}
	p.sceneGroup.Release()
	p.pipeline.Release()
}
