package tweakview

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

var (
	panelBg       = color.RGBA{0x18, 0x1c, 0x20, 0xe6}
	panelTitleBg  = color.RGBA{0x28, 0x2d, 0x34, 0xff}
	panelHoverBg  = color.RGBA{0x22, 0x27, 0x2e, 0xff}
	panelText     = color.RGBA{0xc8, 0xcc, 0xd2, 0xff}
	panelDim      = color.RGBA{0x8c, 0x92, 0x9a, 0xff}
	panelTrack    = color.RGBA{0x37, 0x3c, 0x44, 0xff}
	panelAccent   = color.RGBA{0x00, 0x7b, 0xff, 0xff}
	panelEditBg   = color.RGBA{0x0e, 0x10, 0x13, 0xff}
	panelEditLine = color.RGBA{0x00, 0x7b, 0xff, 0xff}
)

// PanelRaster draws the tweak panel into an RGBA image on the CPU. The image
// is only redrawn when the panel signature changes.
type PanelRaster struct {
	face      font.Face
	image     *image.RGBA
	signature string
	loading   *image.RGBA
	Version   uint64
}

func NewPanelRaster() *PanelRaster {
	return &PanelRaster{face: basicfont.Face7x13}
}

// Render returns the current panel image and the panel's window position.
func (r *PanelRaster) Render(p *TweakPanel) (*image.RGBA, image.Point) {
	b := p.Bounds()
	sig := fmt.Sprintf("%s/%v/%v", p.Signature(), b, p.Collapsed)
	if r.image != nil && sig == r.signature {
		return r.image, b.Min
	}

	img := image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	r.drawPanel(img, p)
	r.image = img
	r.signature = sig
	r.Version++
	return img, b.Min
}

func fillRect(img *image.RGBA, rect image.Rectangle, c color.Color) {
	draw.Draw(img, rect.Intersect(img.Bounds()), image.NewUniform(c), image.Point{}, draw.Over)
}

func (r *PanelRaster) drawText(img *image.RGBA, x, y int, s string, c color.Color) {
	d := font.Drawer{
		Dst:  img,
		Src:  image.NewUniform(c),
		Face: r.face,
		Dot:  fixed.P(x, y),
	}
	d.DrawString(s)
}

func (r *PanelRaster) textWidth(s string) int {
	return font.MeasureString(r.face, s).Ceil()
}

// baseline centres the font vertically in a band starting at top.
func (r *PanelRaster) baseline(top, height int) int {
	m := r.face.Metrics()
	textH := (m.Ascent + m.Descent).Ceil()
	return top + (height-textH)/2 + m.Ascent.Ceil()
}

func (r *PanelRaster) drawPanel(img *image.RGBA, p *TweakPanel) {
	ox, oy := p.x, p.y
	local := func(rect image.Rectangle) image.Rectangle {
		return rect.Sub(image.Pt(ox, oy))
	}

	fillRect(img, img.Bounds(), panelBg)
	title := image.Rect(0, 0, img.Bounds().Dx(), panelTitleH)
	fillRect(img, title, panelTitleBg)
	arrow := "v"
	if p.Collapsed {
		arrow = ">"
	}
	r.drawText(img, panelPadX, r.baseline(0, panelTitleH), arrow+" "+p.Title, panelText)
	if p.Collapsed {
		return
	}

	x0, x1 := p.sliderTrack()
	x0, x1 = x0-ox, x1-ox
	for i, row := range p.rows {
		rect := local(p.rowRect(i))
		if i == p.hoverRow || i == p.activeSlider {
			fillRect(img, rect, panelHoverBg)
		}
		base := r.baseline(rect.Min.Y, panelRowH)
		r.drawText(img, panelPadX, base, row.label, panelDim)
		midY := (rect.Min.Y + rect.Max.Y) / 2

		switch row.kind {
		case widgetSlider:
			v := row.getFloat()
			fillRect(img, image.Rect(x0, midY-2, x1, midY+2), panelTrack)
			knob := x0 + int(row.rng.Fraction(v)*float32(x1-x0))
			fillRect(img, image.Rect(x0, midY-2, knob, midY+2), panelAccent)
			fillRect(img, image.Rect(knob-3, midY-6, knob+3, midY+6), panelText)

			text := fmt.Sprintf("%.2f", v)
			if row.integer {
				text = fmt.Sprintf("%d", int(v))
			}
			r.drawText(img, x1+panelPadX, base, text, panelText)

		case widgetToggle:
			box := image.Rect(x0, midY-6, x0+12, midY+6)
			fillRect(img, box, panelTrack)
			if row.getBool() {
				fillRect(img, box.Inset(3), panelAccent)
			}

		case widgetColor:
			c := row.getColor()
			swatch := image.Rect(x0, midY-7, x0+14, midY+7)
			fillRect(img, swatch, color.RGBA{c.R, c.G, c.B, 0xff})
			text := c.Hex()
			if p.editing == i {
				field := image.Rect(x0+20, rect.Min.Y+2, rect.Max.X-panelPadX, rect.Max.Y-2)
				fillRect(img, field, panelEditBg)
				fillRect(img, image.Rect(field.Min.X, field.Max.Y-1, field.Max.X, field.Max.Y), panelEditLine)
				text = p.editText + "_"
			}
			r.drawText(img, x0+24, base, text, panelText)
		}
	}
}

// LabelImage renders a single line of text on a dark plate.
func (r *PanelRaster) LabelImage(text string) *image.RGBA {
	w := r.textWidth(text) + 2*panelPadX
	img := image.NewRGBA(image.Rect(0, 0, w, panelRowH+4))
	fillRect(img, img.Bounds(), panelBg)
	r.drawText(img, panelPadX, r.baseline(0, img.Bounds().Dy()), text, panelText)
	return img
}

func (r *PanelRaster) loadingLabel() *image.RGBA {
	if r.loading == nil {
		r.loading = r.LabelImage("Loading...")
	}
	return r.loading
}
