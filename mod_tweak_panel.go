package tweakview

import (
	"fmt"
	"image"
	"unicode"
)

type widgetKind int

const (
	widgetSlider widgetKind = iota
	widgetToggle
	widgetColor
)

// panelRow is one labelled control. Exactly one of the accessor pairs is set,
// according to kind.
type panelRow struct {
	label string
	kind  widgetKind
	rng   FloatRange
	// integer sliders print without decimals
	integer bool

	getFloat func() float32
	setFloat func(float32)
	getBool  func() bool
	setBool  func(bool)
	getColor func() Color
	setColor func(Color)
}

const (
	panelWidth     = 300
	panelMargin    = 10
	panelTitleH    = 22
	panelRowH      = 20
	panelLabelW    = 112
	panelPadX      = 8
	panelValueW    = 44
	maxHexInputLen = 7
)

// TweakPanel is the widget model of the parameter panel: a collapsible,
// right-docked column of sliders, toggles and colour fields bound to TweakParams.
type TweakPanel struct {
	Title     string
	Collapsed bool

	params *TweakParams
	rows   []panelRow
	x, y   int

	activeSlider int
	hoverRow     int
	editing      int
	editText     string

	version uint64
}

func NewTweakPanel(params *TweakParams) *TweakPanel {
	p := &TweakPanel{
		Title:        "Controls",
		params:       params,
		activeSlider: -1,
		hoverRow:     -1,
		editing:      -1,
		y:            panelMargin,
	}
	p.rows = buildPanelRows(params)
	return p
}

func objectLabel(id SelectableId) string {
	switch id {
	case SelectHero:
		return "Hero"
	case SelectTrump:
		return "Trump"
	case SelectCube:
		return "Cube"
	}
	return id.String()
}

func buildPanelRows(params *TweakParams) []panelRow {
	var rows []panelRow
	for _, id := range params.Objects() {
		id := id
		spec := params.Spec(id)
		obj, _ := params.Object(id)
		name := objectLabel(id)

		if obj.HasColor {
			rows = append(rows, panelRow{
				label: name + " Color",
				kind:  widgetColor,
				getColor: func() Color {
					o, _ := params.Object(id)
					return o.Color
				},
				setColor: func(c Color) { _ = params.SetColor(id, c) },
			})
		}
		rows = append(rows, panelRow{
			label: name + " Scale",
			kind:  widgetSlider,
			rng:   spec.Scale,
			getFloat: func() float32 {
				o, _ := params.Object(id)
				return o.Scale
			},
			setFloat: func(v float32) { _, _ = params.SetScale(id, v) },
		})
		for axis, axisName := range []string{"X", "Y", "Z"} {
			axis := axis
			rows = append(rows, panelRow{
				label: name + " " + axisName,
				kind:  widgetSlider,
				rng:   spec.Position,
				getFloat: func() float32 {
					o, _ := params.Object(id)
					return o.Position[axis]
				},
				setFloat: func(v float32) { _, _ = params.SetPosition(id, axis, v) },
			})
		}
	}

	rows = append(rows,
		panelRow{
			label:    "Bloom",
			kind:     widgetSlider,
			rng:      BloomRange,
			getFloat: func() float32 { return params.Scene().BloomIntensity },
			setFloat: func(v float32) { params.SetBloom(v) },
		},
		panelRow{
			label:    "Grid Size",
			kind:     widgetSlider,
			rng:      GridRange,
			integer:  true,
			getFloat: func() float32 { return float32(params.Scene().GridSize) },
			setFloat: func(v float32) { params.SetGridSize(int(v + 0.5)) },
		},
		panelRow{
			label:    "Grid Divisions",
			kind:     widgetSlider,
			rng:      GridRange,
			integer:  true,
			getFloat: func() float32 { return float32(params.Scene().GridDivisions) },
			setFloat: func(v float32) { params.SetGridDivisions(int(v + 0.5)) },
		},
		panelRow{
			label:   "Show Axes",
			kind:    widgetToggle,
			getBool: func() bool { return params.Scene().AxesVisible },
			setBool: func(v bool) { params.SetAxesVisible(v) },
		},
		panelRow{
			label:    "Background",
			kind:     widgetColor,
			getColor: func() Color { return params.Scene().BackgroundColor },
			setColor: func(c Color) { params.SetBackground(c) },
		},
	)
	return rows
}

// Layout docks the panel to the right edge of a window of the given width.
func (p *TweakPanel) Layout(windowWidth int) {
	x := windowWidth - panelWidth - panelMargin
	if x < 0 {
		x = 0
	}
	if x != p.x {
		p.x = x
		p.version++
	}
}

// Bounds is the panel rectangle in window pixels.
func (p *TweakPanel) Bounds() image.Rectangle {
	h := panelTitleH
	if !p.Collapsed {
		h += len(p.rows)*panelRowH + panelPadX/2
	}
	return image.Rect(p.x, p.y, p.x+panelWidth, p.y+h)
}

// rowAt returns -2 for the title bar, a row index, or -1 outside the panel.
func (p *TweakPanel) rowAt(mx, my int) int {
	pt := image.Pt(mx, my)
	if !pt.In(p.Bounds()) {
		return -1
	}
	if my < p.y+panelTitleH {
		return -2
	}
	row := (my - p.y - panelTitleH) / panelRowH
	if row < 0 || row >= len(p.rows) {
		return -1
	}
	return row
}

// rowRect is the rectangle of row i in window pixels.
func (p *TweakPanel) rowRect(i int) image.Rectangle {
	top := p.y + panelTitleH + i*panelRowH
	return image.Rect(p.x, top, p.x+panelWidth, top+panelRowH)
}

// sliderTrack is the horizontal extent of the slider track of any row.
func (p *TweakPanel) sliderTrack() (x0, x1 int) {
	x0 = p.x + panelLabelW + panelPadX
	x1 = p.x + panelWidth - panelPadX - panelValueW
	return
}

func (p *TweakPanel) widgetX() int {
	return p.x + panelLabelW + panelPadX
}

// Editing reports whether the colour text field has keyboard focus.
func (p *TweakPanel) Editing() bool {
	return p.editing >= 0
}

func (p *TweakPanel) EditText() string {
	return p.editText
}

// RowIndex finds a row by label, -1 if absent.
func (p *TweakPanel) RowIndex(label string) int {
	for i, r := range p.rows {
		if r.label == label {
			return i
		}
	}
	return -1
}

// RowCenter is the middle of a row's widget, in window pixels.
func (p *TweakPanel) RowCenter(i int) (float64, float64) {
	r := p.rowRect(i)
	x0, x1 := p.sliderTrack()
	return float64(x0+x1) / 2, float64(r.Min.Y+r.Max.Y) / 2
}

// SliderX is the window x coordinate at which row i's slider shows value v.
func (p *TweakPanel) SliderX(i int, v float32) float64 {
	x0, x1 := p.sliderTrack()
	return float64(x0) + float64(p.rows[i].rng.Fraction(v))*float64(x1-x0)
}

func (p *TweakPanel) setSliderFromX(i int, mx float64) {
	x0, x1 := p.sliderTrack()
	if x1 <= x0 {
		return
	}
	f := float32((mx - float64(x0)) / float64(x1-x0))
	row := p.rows[i]
	v := row.rng.Apply(row.rng.Lerp(f))
	if v != row.getFloat() {
		row.setFloat(v)
	}
}

func (p *TweakPanel) beginEdit(i int) {
	p.editing = i
	p.editText = p.rows[i].getColor().Hex()
	p.version++
}

// commitEdit applies the edited text. Text that is not a colour leaves the value unchanged.
func (p *TweakPanel) commitEdit(logger Logger) {
	if p.editing < 0 {
		return
	}
	row := p.rows[p.editing]
	if c, err := ParseColor(p.editText); err != nil {
		logger.Warnf("%s: %v", row.label, err)
	} else if c != row.getColor() {
		row.setColor(c)
	}
	p.cancelEdit()
}

func (p *TweakPanel) cancelEdit() {
	p.editing = -1
	p.editText = ""
	p.version++
}

// HandleInput runs the panel for one frame. Pointer events over the panel and
// all typed characters while editing are consumed.
func (p *TweakPanel) HandleInput(input *Input, focus *UiFocus, logger Logger) {
	p.Layout(input.WindowWidth)

	if p.editing >= 0 {
		for _, ch := range input.CharBuffer {
			if len(p.editText) < maxHexInputLen && ch < unicode.MaxASCII && (ch == '#' || unicode.Is(unicode.ASCII_Hex_Digit, ch)) {
				p.editText += string(ch)
				p.version++
			}
		}
		input.CharBuffer = input.CharBuffer[:0]

		switch {
		case input.JustPressed[KeyEscape]:
			p.cancelEdit()
		case input.JustPressed[KeyEnter]:
			p.commitEdit(logger)
		case input.JustPressed[KeyBackspace] && len(p.editText) > 0:
			p.editText = p.editText[:len(p.editText)-1]
			p.version++
		}
	}

	mx, my := int(input.MouseX), int(input.MouseY)
	row := p.rowAt(mx, my)
	if row != p.hoverRow {
		p.hoverRow = row
		p.version++
	}

	if input.JustPressed[MouseButtonLeft] {
		if p.editing >= 0 && row != p.editing {
			p.commitEdit(logger)
		}
		switch {
		case row == -2:
			p.Collapsed = !p.Collapsed
			p.version++
		case row >= 0 && mx >= p.widgetX():
			switch p.rows[row].kind {
			case widgetSlider:
				p.activeSlider = row
			case widgetToggle:
				p.rows[row].setBool(!p.rows[row].getBool())
			case widgetColor:
				if p.editing != row {
					p.beginEdit(row)
				}
			}
		}
	}

	if p.activeSlider >= 0 {
		if input.Pressed[MouseButtonLeft] && !p.Collapsed {
			p.setSliderFromX(p.activeSlider, input.MouseX)
			input.MouseConsumed = true
		} else {
			p.activeSlider = -1
			p.version++
		}
	}

	if row != -1 {
		input.MouseConsumed = true
	}

	focus.TextInput = p.editing >= 0
	if focus.TextInput {
		focus.Owner = p.rows[p.editing].label
	} else {
		focus.Owner = ""
	}
}

// Signature changes whenever anything visible on the panel changes.
func (p *TweakPanel) Signature() string {
	var sum uint64
	for _, id := range p.params.Objects() {
		sum += p.params.Revision(id)
	}
	return fmt.Sprintf("%d/%d/%d", p.version, sum, p.params.SceneRevision())
}

type TweakPanelModule struct{}

func (TweakPanelModule) Install(app *App, cmd *Commands) {
	params := Resource[TweakParams](app)
	if params == nil {
		params = DefaultTweakParams()
		cmd.AddResources(params)
	}
	if Resource[UiFocus](app) == nil {
		cmd.AddResources(&UiFocus{})
	}
	cmd.AddResources(NewTweakPanel(params), NewPanelRaster())
	app.UseSystem(
		System(panelInputSystem).
			InStage(PreUpdate),
	)
}

func panelInputSystem(cmd *Commands, input *Input, focus *UiFocus, panel *TweakPanel) {
	panel.HandleInput(input, focus, cmd.Logger())
}
