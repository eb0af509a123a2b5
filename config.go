package tweakview

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"sort"
	"time"

	"gopkg.in/yaml.v3"
)

// ViewerConfig is the YAML configuration of the viewer. Zero values in a file
// leave the defaults in place.
type ViewerConfig struct {
	Window         WindowConfig  `yaml:"window"`
	Assets         AssetsConfig  `yaml:"assets"`
	Debug          bool          `yaml:"debug"`
	LoadTimeout    time.Duration `yaml:"load_timeout"`
	LiveBackground bool          `yaml:"live_background"`
	Environment    string        `yaml:"environment"`
	Params         ParamsConfig  `yaml:"params"`
}

type WindowConfig struct {
	Width  int    `yaml:"width"`
	Height int    `yaml:"height"`
	Title  string `yaml:"title"`
}

// AssetsConfig locates the two models. Relative model paths resolve under Root.
type AssetsConfig struct {
	Root  string `yaml:"root"`
	Hero  string `yaml:"hero"`
	Trump string `yaml:"trump"`
}

// ParamsConfig overrides initial tweak values. Values go through the same
// clamping and snapping as panel edits.
type ParamsConfig struct {
	Objects       map[string]ObjectOverride `yaml:"objects"`
	Bloom         *float32                  `yaml:"bloom"`
	GridSize      *int                      `yaml:"grid_size"`
	GridDivisions *int                      `yaml:"grid_divisions"`
	AxesVisible   *bool                     `yaml:"axes_visible"`
	Background    string                    `yaml:"background"`
}

type ObjectOverride struct {
	Position *[3]float32 `yaml:"position"`
	Scale    *float32    `yaml:"scale"`
	Color    string      `yaml:"color"`
}

func DefaultViewerConfig() ViewerConfig {
	return ViewerConfig{
		Window: WindowConfig{
			Width:  1280,
			Height: 720,
			Title:  "tweakview",
		},
		Assets: AssetsConfig{
			Root:  ".",
			Hero:  "models/hero.glb",
			Trump: "models/minecraft_donald_trump_build_schematic.glb",
		},
		Environment: "sunset",
	}
}

// LoadConfig reads a YAML file over the defaults. Unknown keys are an error.
func LoadConfig(path string) (ViewerConfig, error) {
	cfg := DefaultViewerConfig()
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("read config: %w", err)
	}
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return cfg, fmt.Errorf("parse config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

func (c ViewerConfig) Validate() error {
	var errs []error
	if c.Window.Width <= 0 || c.Window.Height <= 0 {
		errs = append(errs, fmt.Errorf("window size %dx%d must be positive", c.Window.Width, c.Window.Height))
	}
	if c.Assets.Hero == "" || c.Assets.Trump == "" {
		errs = append(errs, errors.New("assets.hero and assets.trump are required"))
	}
	if c.LoadTimeout < 0 {
		errs = append(errs, fmt.Errorf("load_timeout %s is negative", c.LoadTimeout))
	}
	if _, err := LookupEnvironment(c.Environment); err != nil {
		errs = append(errs, err)
	}
	if err := c.Params.Apply(DefaultTweakParams()); err != nil {
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}

// Apply writes the overrides into params.
func (p ParamsConfig) Apply(params *TweakParams) error {
	names := make([]string, 0, len(p.Objects))
	for name := range p.Objects {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		o := p.Objects[name]
		id, err := ParseSelectableId(name)
		if err != nil {
			return fmt.Errorf("params.objects: %w", err)
		}
		if o.Position != nil {
			for axis, v := range o.Position {
				if _, err := params.SetPosition(id, axis, v); err != nil {
					return fmt.Errorf("params.objects.%s.position: %w", name, err)
				}
			}
		}
		if o.Scale != nil {
			if _, err := params.SetScale(id, *o.Scale); err != nil {
				return fmt.Errorf("params.objects.%s.scale: %w", name, err)
			}
		}
		if o.Color != "" {
			c, err := ParseColor(o.Color)
			if err != nil {
				return fmt.Errorf("params.objects.%s.color: %w", name, err)
			}
			if err := params.SetColor(id, c); err != nil {
				return fmt.Errorf("params.objects.%s.color: %w", name, err)
			}
		}
	}

	if p.Bloom != nil {
		params.SetBloom(*p.Bloom)
	}
	if p.GridSize != nil {
		params.SetGridSize(*p.GridSize)
	}
	if p.GridDivisions != nil {
		params.SetGridDivisions(*p.GridDivisions)
	}
	if p.AxesVisible != nil {
		params.SetAxesVisible(*p.AxesVisible)
	}
	if p.Background != "" {
		c, err := ParseColor(p.Background)
		if err != nil {
			return fmt.Errorf("params.background: %w", err)
		}
		params.SetBackground(c)
	}
	return nil
}
