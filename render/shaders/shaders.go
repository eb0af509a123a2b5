package shaders

import (
	_ "embed"
)

//go:embed mesh.wgsl
var MeshWGSL string

//go:embed lines.wgsl
var LinesWGSL string

//go:embed overlay.wgsl
var OverlayWGSL string
