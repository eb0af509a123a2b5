package tweakview

import (
	"fmt"
	"sort"
	"strings"

	"github.com/go-gl/mathgl/mgl32"
)

type LightType uint32

const (
	LightTypePoint   LightType = 0
	LightTypeSpot    LightType = 2
	LightTypeAmbient LightType = 3
)

// LightComponent is a light in the scene; its position comes from the entity's TransformComponent.
type LightComponent struct {
	Type      LightType
	Color     [3]float32
	Intensity float32
	// Spot only
	Target    mgl32.Vec3
	Angle     float32 // half-angle in radians
	Penumbra  float32
}

// EnvironmentPreset is a named sky/ground colour pair used for hemisphere
// ambient lighting in place of an environment map.
type EnvironmentPreset struct {
	Sky    mgl32.Vec3
	Ground mgl32.Vec3
}

var environmentPresets = map[string]EnvironmentPreset{
	"sunset": {Sky: mgl32.Vec3{1.0, 0.62, 0.42}, Ground: mgl32.Vec3{0.28, 0.16, 0.22}},
	"dawn":   {Sky: mgl32.Vec3{0.86, 0.72, 0.78}, Ground: mgl32.Vec3{0.22, 0.2, 0.26}},
	"night":  {Sky: mgl32.Vec3{0.16, 0.2, 0.36}, Ground: mgl32.Vec3{0.04, 0.04, 0.08}},
	"studio": {Sky: mgl32.Vec3{0.9, 0.9, 0.92}, Ground: mgl32.Vec3{0.4, 0.4, 0.42}},
}

func LookupEnvironment(name string) (EnvironmentPreset, error) {
	if p, ok := environmentPresets[strings.ToLower(name)]; ok {
		return p, nil
	}
	names := make([]string, 0, len(environmentPresets))
	for n := range environmentPresets {
		names = append(names, n)
	}
	sort.Strings(names)
	return EnvironmentPreset{}, fmt.Errorf("unknown environment preset %q (known: %s)", name, strings.Join(names, ", "))
}

// SceneEnvironment holds the scene-wide rendering settings that are not
// tweakable, plus the clear colour captured at startup.
type SceneEnvironment struct {
	Preset         EnvironmentPreset
	BloomThreshold float32
	GridCenter     Color
	GridColor      Color
	AxesLength     float32
	// Clear is the background colour. It only follows the panel when LiveBackground is set.
	Clear          Color
	LiveBackground bool
}
