package gpu

import (
	"github.com/cogentcore/webgpu/wgpu"
)

const depthFormat = wgpu.TextureFormatDepth24Plus

// depthMode selects how a pipeline uses the shared depth buffer.
type depthMode int

const (
	depthTest depthMode = iota
	depthIgnore
)

var alphaBlend = &wgpu.BlendState{
	Color: wgpu.BlendComponent{
		Operation: wgpu.BlendOperationAdd,
		SrcFactor: wgpu.BlendFactorSrcAlpha,
		DstFactor: wgpu.BlendFactorOneMinusSrcAlpha,
	},
	Alpha: wgpu.BlendComponent{
		Operation: wgpu.BlendOperationAdd,
		SrcFactor: wgpu.BlendFactorOne,
		DstFactor: wgpu.BlendFactorOneMinusSrcAlpha,
	},
}

// premultipliedBlend is for image.RGBA content, which stores premultiplied alpha.
var premultipliedBlend = &wgpu.BlendState{
	Color: wgpu.BlendComponent{
		Operation: wgpu.BlendOperationAdd,
		SrcFactor: wgpu.BlendFactorOne,
		DstFactor: wgpu.BlendFactorOneMinusSrcAlpha,
	},
	Alpha: wgpu.BlendComponent{
		Operation: wgpu.BlendOperationAdd,
		SrcFactor: wgpu.BlendFactorOne,
		DstFactor: wgpu.BlendFactorOneMinusSrcAlpha,
	},
}

type pipelineDesc struct {
	label    string
	code     string
	buffers  []wgpu.VertexBufferLayout
	topology wgpu.PrimitiveTopology
	format   wgpu.TextureFormat
	depth    depthMode
	blend    *wgpu.BlendState
}

func depthState(mode depthMode) *wgpu.DepthStencilState {
	stencil := wgpu.StencilFaceState{
		Compare:     wgpu.CompareFunctionAlways,
		FailOp:      wgpu.StencilOperationKeep,
		DepthFailOp: wgpu.StencilOperationKeep,
		PassOp:      wgpu.StencilOperationKeep,
	}
	state := &wgpu.DepthStencilState{
		Format:            depthFormat,
		DepthWriteEnabled: true,
		DepthCompare:      wgpu.CompareFunctionLess,
		StencilFront:      stencil,
		StencilBack:       stencil,
	}
	if mode == depthIgnore {
		state.DepthWriteEnabled = false
		state.DepthCompare = wgpu.CompareFunctionAlways
	}
	return state
}

// createPipeline builds a render pipeline with an automatic layout. Every
// pipeline renders into the surface format with the shared depth attachment.
func createPipeline(device *wgpu.Device, d pipelineDesc) (*wgpu.RenderPipeline, error) {
	shader, err := device.CreateShaderModule(&wgpu.ShaderModuleDescriptor{
		Label:          d.label,
		WGSLDescriptor: &wgpu.ShaderModuleWGSLDescriptor{Code: d.code},
	})
	if err != nil {
		return nil, err
	}
	defer shader.Release()

	return device.CreateRenderPipeline(&wgpu.RenderPipelineDescriptor{
		Label: d.label,
		Vertex: wgpu.VertexState{
			Module:     shader,
			EntryPoint: "vs_main",
			Buffers:    d.buffers,
		},
		Fragment: &wgpu.FragmentState{
			Module:     shader,
			EntryPoint: "fs_main",
			Targets: []wgpu.ColorTargetState{
				{
					Format:    d.format,
					Blend:     d.blend,
					WriteMask: wgpu.ColorWriteMaskAll,
				},
			},
		},
		Primitive: wgpu.PrimitiveState{
			Topology:  d.topology,
			FrontFace: wgpu.FrontFaceCCW,
			CullMode:  wgpu.CullModeNone,
		},
		DepthStencil: depthState(d.depth),
		Multisample: wgpu.MultisampleState{
			Count:                  1,
			Mask:                   0xFFFFFFFF,
			AlphaToCoverageEnabled: false,
		},
	})
}

func uniformBindGroup(device *wgpu.Device, label string, pipeline *wgpu.RenderPipeline, group uint32, buffer *wgpu.Buffer) (*wgpu.BindGroup, error) {
	return device.CreateBindGroup(&wgpu.BindGroupDescriptor{
		Label:  label,
		Layout: pipeline.GetBindGroupLayout(group),
		Entries: []wgpu.BindGroupEntry{
			{
				Binding: 0,
				Buffer:  buffer,
				Size:    buffer.GetSize(),
			},
		},
	})
}
