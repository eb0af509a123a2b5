package gpu

import (
	"fmt"
	"unsafe"

	"github.com/cogentcore/webgpu/wgpu"

	"github.com/gekko3d/tweakview/render/core"
)

// Renderer owns the device and swapchain and draws one core.Frame per call to
// Render: meshes, then depth-tested lines, then on-top lines and overlays.
type Renderer struct {
	surface *wgpu.Surface
	adapter *wgpu.Adapter
	device  *wgpu.Device
	queue   *wgpu.Queue
	config  *wgpu.SurfaceConfiguration

	depthTexture *wgpu.Texture
	depthView    *wgpu.TextureView

	sceneBuffer *wgpu.Buffer
	meshes      *MeshPass
	lines       *LinePass
	onTop       *LinePass
	overlays    *OverlayPass
}

// NewRenderer creates a surface from desc and configures it for a
// width x height framebuffer.
func NewRenderer(desc *wgpu.SurfaceDescriptor, width, height int) (*Renderer, error) {
	instance := wgpu.CreateInstance(nil)
	defer instance.Release()

	surface := instance.CreateSurface(desc)
	adapter, err := instance.RequestAdapter(&wgpu.RequestAdapterOptions{
		CompatibleSurface: surface,
		PowerPreference:   wgpu.PowerPreferenceHighPerformance,
	})
	if err != nil {
		return nil, fmt.Errorf("request adapter: %w", err)
	}
	device, err := adapter.RequestDevice(&wgpu.DeviceDescriptor{
		Label: "Main Device",
	})
	if err != nil {
		return nil, fmt.Errorf("request device: %w", err)
	}

	caps := surface.GetCapabilities(adapter)
	if len(caps.Formats) == 0 {
		return nil, fmt.Errorf("surface reports no formats")
	}
	r := &Renderer{
		surface: surface,
		adapter: adapter,
		device:  device,
		queue:   device.GetQueue(),
		config: &wgpu.SurfaceConfiguration{
			Usage:       wgpu.TextureUsageRenderAttachment,
			Format:      pickFormat(caps.Formats),
			Width:       uint32(max(width, 1)),
			Height:      uint32(max(height, 1)),
			PresentMode: wgpu.PresentModeFifo,
			AlphaMode:   caps.AlphaModes[0],
		},
	}
	surface.Configure(adapter, device, r.config)
	if err := r.createDepth(); err != nil {
		return nil, err
	}

	r.sceneBuffer, err = device.CreateBuffer(&wgpu.BufferDescriptor{
		Label: "SceneUniforms",
		Size:  uint64(unsafe.Sizeof(sceneUniforms{})),
		Usage: wgpu.BufferUsageUniform | wgpu.BufferUsageCopyDst,
	})
	if err != nil {
		return nil, fmt.Errorf("scene uniforms: %w", err)
	}
	if r.meshes, err = NewMeshPass(device, r.config.Format, r.sceneBuffer); err != nil {
		return nil, fmt.Errorf("mesh pass: %w", err)
	}
	if r.lines, err = NewLinePass(device, r.config.Format, r.sceneBuffer, false); err != nil {
		return nil, fmt.Errorf("line pass: %w", err)
	}
	if r.onTop, err = NewLinePass(device, r.config.Format, r.sceneBuffer, true); err != nil {
		return nil, fmt.Errorf("overlay line pass: %w", err)
	}
	if r.overlays, err = NewOverlayPass(device, r.config.Format); err != nil {
		return nil, fmt.Errorf("overlay pass: %w", err)
	}
	return r, nil
}

// pickFormat prefers a non-sRGB swapchain format so colours written by the
// shaders and the CPU-drawn overlays reach the screen unchanged.
func pickFormat(formats []wgpu.TextureFormat) wgpu.TextureFormat {
	for _, f := range formats {
		if f == wgpu.TextureFormatBGRA8Unorm || f == wgpu.TextureFormatRGBA8Unorm {
			return f
		}
	}
	return formats[0]
}

func (r *Renderer) createDepth() error {
	if r.depthView != nil {
		r.depthView.Release()
		r.depthTexture.Release()
	}
	tex, err := r.device.CreateTexture(&wgpu.TextureDescriptor{
		Label:         "Depth",
		Size:          wgpu.Extent3D{Width: r.config.Width, Height: r.config.Height, DepthOrArrayLayers: 1},
		Format:        depthFormat,
		Usage:         wgpu.TextureUsageRenderAttachment,
		Dimension:     wgpu.TextureDimension2D,
		MipLevelCount: 1,
		SampleCount:   1,
	})
	if err != nil {
		return fmt.Errorf("depth texture: %w", err)
	}
	view, err := tex.CreateView(nil)
	if err != nil {
		tex.Release()
		return fmt.Errorf("depth view: %w", err)
	}
	r.depthTexture, r.depthView = tex, view
	return nil
}

// Size is the configured framebuffer size.
func (r *Renderer) Size() (int, int) {
	return int(r.config.Width), int(r.config.Height)
}

// Resize reconfigures the swapchain and depth buffer. Zero sizes (minimised
// windows) are ignored.
func (r *Renderer) Resize(width, height int) error {
	if width <= 0 || height <= 0 {
		return nil
	}
	if uint32(width) == r.config.Width && uint32(height) == r.config.Height {
		return nil
	}
	r.config.Width = uint32(width)
	r.config.Height = uint32(height)
	r.surface.Configure(r.adapter, r.device, r.config)
	return r.createDepth()
}

// Render draws f and presents it.
func (r *Renderer) Render(f *core.Frame) error {
	r.queue.WriteBuffer(r.sceneBuffer, 0, wgpu.ToBytes([]sceneUniforms{packScene(f)}))
	if err := r.meshes.Prepare(f.Meshes); err != nil {
		return fmt.Errorf("prepare meshes: %w", err)
	}
	if err := r.lines.Prepare(f.Lines); err != nil {
		return fmt.Errorf("prepare lines: %w", err)
	}
	if err := r.onTop.Prepare(f.OverlayLines); err != nil {
		return fmt.Errorf("prepare overlay lines: %w", err)
	}
	vw, vh := r.config.Width, r.config.Height
	if f.Width > 0 && f.Height > 0 {
		vw, vh = uint32(f.Width), uint32(f.Height)
	}
	if err := r.overlays.Prepare(f.Overlays, vw, vh); err != nil {
		return fmt.Errorf("prepare overlays: %w", err)
	}

	next, err := r.surface.GetCurrentTexture()
	if err != nil {
		return fmt.Errorf("get current texture: %w", err)
	}
	defer next.Release()
	view, err := next.CreateView(nil)
	if err != nil {
		return fmt.Errorf("create view: %w", err)
	}
	defer view.Release()

	encoder, err := r.device.CreateCommandEncoder(nil)
	if err != nil {
		return fmt.Errorf("create command encoder: %w", err)
	}
	defer encoder.Release()

	pass := encoder.BeginRenderPass(&wgpu.RenderPassDescriptor{
		ColorAttachments: []wgpu.RenderPassColorAttachment{{
			View:       view,
			LoadOp:     wgpu.LoadOpClear,
			StoreOp:    wgpu.StoreOpStore,
			ClearValue: wgpu.Color{R: float64(f.Clear[0]), G: float64(f.Clear[1]), B: float64(f.Clear[2]), A: float64(f.Clear[3])},
		}},
		DepthStencilAttachment: &wgpu.RenderPassDepthStencilAttachment{
			View:            r.depthView,
			DepthLoadOp:     wgpu.LoadOpClear,
			DepthStoreOp:    wgpu.StoreOpStore,
			DepthClearValue: 1,
		},
	})
	r.meshes.Draw(pass)
	r.lines.Draw(pass)
	r.onTop.Draw(pass)
	r.overlays.Draw(pass)
	if err := pass.End(); err != nil {
		return fmt.Errorf("end render pass: %w", err)
	}

	cmd, err := encoder.Finish(nil)
	if err != nil {
		return fmt.Errorf("finish encoder: %w", err)
	}
	defer cmd.Release()
	r.queue.Submit(cmd)
	r.surface.Present()
	return nil
}

func (r *Renderer) Release() {
	r.overlays.Release()
	r.onTop.Release()
	r.lines.Release()
	r.meshes.Release()
	r.sceneBuffer.Release()
	r.depthView.Release()
	r.depthTexture.Release()
	r.queue.Release()
	r.device.Release()
	r.adapter.Release()
	r.surface.Release()
}
