package gpu

import (
	"unsafe"

	"github.com/cogentcore/webgpu/wgpu"

	"github.com/gekko3d/tweakview/render/core"
	"github.com/gekko3d/tweakview/render/shaders"
)

type overlayTexture struct {
	texture   *wgpu.Texture
	view      *wgpu.TextureView
	uniform   *wgpu.Buffer
	bindGroup *wgpu.BindGroup
	width     int
	height    int
	version   uint64
	uploaded  bool
}

func (t *overlayTexture) release() {
	if t.bindGroup != nil {
		t.bindGroup.Release()
	}
	if t.view != nil {
		t.view.Release()
	}
	if t.texture != nil {
		t.texture.Release()
	}
	t.bindGroup, t.view, t.texture = nil, nil, nil
}

// OverlayPass draws screen-space RGBA images as textured quads. Each overlay
// key owns a texture that is rewritten only when the overlay version changes.
type OverlayPass struct {
	device   *wgpu.Device
	queue    *wgpu.Queue
	pipeline *wgpu.RenderPipeline
	sampler  *wgpu.Sampler

	cache   map[string]*overlayTexture
	visible []*overlayTexture
}

func NewOverlayPass(device *wgpu.Device, format wgpu.TextureFormat) (*OverlayPass, error) {
	pipeline, err := createPipeline(device, pipelineDesc{
		label:    "OverlayPipeline",
		code:     shaders.OverlayWGSL,
		topology: wgpu.PrimitiveTopologyTriangleList,
		format:   format,
		depth:    depthIgnore,
		blend:    premultipliedBlend,
	})
	if err != nil {
		return nil, err
	}
	sampler, err := device.CreateSampler(&wgpu.SamplerDescriptor{
		AddressModeU:  wgpu.AddressModeClampToEdge,
		AddressModeV:  wgpu.AddressModeClampToEdge,
		AddressModeW:  wgpu.AddressModeClampToEdge,
		MinFilter:     wgpu.FilterModeNearest,
		MagFilter:     wgpu.FilterModeNearest,
		MaxAnisotropy: 1,
	})
	if err != nil {
		pipeline.Release()
		return nil, err
	}
	return &OverlayPass{
		device:   device,
		queue:    device.GetQueue(),
		pipeline: pipeline,
		sampler:  sampler,
		cache:    make(map[string]*overlayTexture),
	}, nil
}

func (p *OverlayPass) texture(o *core.Overlay) (*overlayTexture, error) {
	b := o.Image.Bounds()
	t, ok := p.cache[o.Key]
	if ok && t.width == b.Dx() && t.height == b.Dy() {
		return t, nil
	}
	if !ok {
		uniform, err := p.device.CreateBuffer(&wgpu.BufferDescriptor{
			Label: "OverlayPlacement " + o.Key,
			Size:  uint64(unsafe.Sizeof(overlayPlacement{})),
			Usage: wgpu.BufferUsageUniform | wgpu.BufferUsageCopyDst,
		})
		if err != nil {
			return nil, err
		}
		t = &overlayTexture{uniform: uniform}
		p.cache[o.Key] = t
	}
	t.release()

	texture, err := p.device.CreateTexture(&wgpu.TextureDescriptor{
		Label:         "Overlay " + o.Key,
		Size:          wgpu.Extent3D{Width: uint32(b.Dx()), Height: uint32(b.Dy()), DepthOrArrayLayers: 1},
		Format:        wgpu.TextureFormatRGBA8Unorm,
		Usage:         wgpu.TextureUsageTextureBinding | wgpu.TextureUsageCopyDst,
		Dimension:     wgpu.TextureDimension2D,
		MipLevelCount: 1,
		SampleCount:   1,
	})
	if err != nil {
		return nil, err
	}
	view, err := texture.CreateView(nil)
	if err != nil {
		texture.Release()
		return nil, err
	}
	bg, err := p.device.CreateBindGroup(&wgpu.BindGroupDescriptor{
		Label:  "OverlayBG " + o.Key,
		Layout: p.pipeline.GetBindGroupLayout(0),
		Entries: []wgpu.BindGroupEntry{
			{Binding: 0, Buffer: t.uniform, Size: t.uniform.GetSize()},
			{Binding: 1, TextureView: view},
			{Binding: 2, Sampler: p.sampler},
		},
	})
	if err != nil {
		view.Release()
		texture.Release()
		return nil, err
	}
	t.texture, t.view, t.bindGroup = texture, view, bg
	t.width, t.height = b.Dx(), b.Dy()
	t.uploaded = false
	return t, nil
}

// Prepare uploads changed overlay images and their placement for a viewport
// of width x height pixels.
func (p *OverlayPass) Prepare(overlays []core.Overlay, width, height uint32) error {
	p.visible = p.visible[:0]
	for i := range overlays {
		o := &overlays[i]
		if o.Image == nil || o.Image.Bounds().Empty() {
			continue
		}
		t, err := p.texture(o)
		if err != nil {
			return err
		}
		if !t.uploaded || t.version != o.Version {
			extent := wgpu.Extent3D{Width: uint32(t.width), Height: uint32(t.height), DepthOrArrayLayers: 1}
			p.queue.WriteTexture(t.texture.AsImageCopy(), o.Image.Pix, &wgpu.TextureDataLayout{
				Offset:       0,
				BytesPerRow:  uint32(o.Image.Stride),
				RowsPerImage: uint32(t.height),
			}, &extent)
			t.version = o.Version
			t.uploaded = true
		}
		p.queue.WriteBuffer(t.uniform, 0, wgpu.ToBytes([]overlayPlacement{placeOverlay(o, width, height)}))
		p.visible = append(p.visible, t)
	}
	return nil
}

func (p *OverlayPass) Draw(pass *wgpu.RenderPassEncoder) {
	if len(p.visible) == 0 {
		return
	}
	pass.SetPipeline(p.pipeline)
	for _, t := range p.visible {
		pass.SetBindGroup(0, t.bindGroup, nil)
		pass.Draw(6, 1, 0, 0)
	}
}

func (p *OverlayPass) Release() {
	for _, t := range p.cache {
		t.release()
		t.uniform.Release()
	}
	p.sampler.Release()
	p.pipeline.Release()
}
