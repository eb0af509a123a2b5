package gpu

import (
	"unsafe"

	"github.com/cogentcore/webgpu/wgpu"

	"github.com/gekko3d/tweakview/render/core"
	"github.com/gekko3d/tweakview/render/shaders"
)

// LinePass draws a coloured line list, rebuilt every frame. An on-top pass
// ignores the depth buffer so gizmo handles stay visible inside meshes.
type LinePass struct {
	device     *wgpu.Device
	queue      *wgpu.Queue
	pipeline   *wgpu.RenderPipeline
	sceneGroup *wgpu.BindGroup

	buffer   *wgpu.Buffer
	capacity uint32
	count    uint32
}

func NewLinePass(device *wgpu.Device, format wgpu.TextureFormat, sceneBuffer *wgpu.Buffer, onTop bool) (*LinePass, error) {
	label, depth := "LinePipeline", depthTest
	if onTop {
		label, depth = "OverlayLinePipeline", depthIgnore
	}
	pipeline, err := createPipeline(device, pipelineDesc{
		label: label,
		code:  shaders.LinesWGSL,
		buffers: []wgpu.VertexBufferLayout{
			{
				ArrayStride: uint64(unsafe.Sizeof(core.LineVertex{})),
				StepMode:    wgpu.VertexStepModeVertex,
				Attributes: []wgpu.VertexAttribute{
					{Format: wgpu.VertexFormatFloat32x3, Offset: 0, ShaderLocation: 0},
					{Format: wgpu.VertexFormatFloat32x4, Offset: 12, ShaderLocation: 1},
				},
			},
		},
		topology: wgpu.PrimitiveTopologyLineList,
		format:   format,
		depth:    depth,
		blend:    alphaBlend,
	})
	if err != nil {
		return nil, err
	}
	sceneGroup, err := uniformBindGroup(device, label+"BG", pipeline, 0, sceneBuffer)
	if err != nil {
		return nil, err
	}
	return &LinePass{
		device:     device,
		queue:      device.GetQueue(),
		pipeline:   pipeline,
		sceneGroup: sceneGroup,
	}, nil
}

// Prepare uploads the frame's vertices, growing the buffer when needed.
func (p *LinePass) Prepare(vertices []core.LineVertex) error {
	p.count = uint32(len(vertices))
	if p.count == 0 {
		return nil
	}
	if p.buffer == nil || p.capacity < p.count {
		if p.buffer != nil {
			p.buffer.Release()
		}
		p.capacity = p.count + 1024
		buffer, err := p.device.CreateBuffer(&wgpu.BufferDescriptor{
			Label: "LineVertexBuffer",
			Size:  uint64(p.capacity) * uint64(unsafe.Sizeof(core.LineVertex{})),
			Usage: wgpu.BufferUsageVertex | wgpu.BufferUsageCopyDst,
		})
		if err != nil {
			p.buffer, p.capacity, p.count = nil, 0, 0
			return err
		}
		p.buffer = buffer
	}
	p.queue.WriteBuffer(p.buffer, 0, wgpu.ToBytes(vertices))
	return nil
}

func (p *LinePass) Draw(pass *wgpu.RenderPassEncoder) {
	if p.count == 0 || p.buffer == nil {
		return
	}
	pass.SetPipeline(p.pipeline)
	pass.SetBindGroup(0, p.sceneGroup, nil)
	pass.SetVertexBuffer(0, p.buffer, 0, p.buffer.GetSize())
	pass.Draw(p.count, 1, 0, 0)
}

func (p *LinePass) Release() {
	if p.buffer != nil {
		p.buffer.Release()
	}
	p.sceneGroup.Release()
	p.pipeline.Release()
}
