package core

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// Mesh is a triangle list in object space.
type Mesh struct {
	Positions []mgl32.Vec3
	Normals   []mgl32.Vec3
	Indices   []uint32
}

func (m *Mesh) Bounds() AABB {
	if len(m.Positions) == 0 {
		return AABB{}
	}
	inf := float32(math.Inf(1))
	b := AABB{Min: mgl32.Vec3{inf, inf, inf}, Max: mgl32.Vec3{-inf, -inf, -inf}}
	for _, p := range m.Positions {
		for i := 0; i < 3; i++ {
			b.Min[i] = min(b.Min[i], p[i])
			b.Max[i] = max(b.Max[i], p[i])
		}
	}
	return b
}

// ComputeNormals fills Normals with area-weighted vertex normals when they are missing.
func (m *Mesh) ComputeNormals() {
	if len(m.Normals) == len(m.Positions) {
		return
	}
	m.Normals = make([]mgl32.Vec3, len(m.Positions))
	for i := 0; i+2 < len(m.Indices); i += 3 {
		a, b, c := m.Indices[i], m.Indices[i+1], m.Indices[i+2]
		n := m.Positions[b].Sub(m.Positions[a]).Cross(m.Positions[c].Sub(m.Positions[a]))
		m.Normals[a] = m.Normals[a].Add(n)
		m.Normals[b] = m.Normals[b].Add(n)
		m.Normals[c] = m.Normals[c].Add(n)
	}
	for i, n := range m.Normals {
		if n.Len() > 1e-12 {
			m.Normals[i] = n.Normalize()
		} else {
			m.Normals[i] = mgl32.Vec3{0, 1, 0}
		}
	}
}

// Append merges other into m, applying the transform to positions and normals.
func (m *Mesh) Append(other *Mesh, transform mgl32.Mat4) {
	base := uint32(len(m.Positions))
	normalMat := transform.Mat3().Inv().Transpose()
	for i, p := range other.Positions {
		m.Positions = append(m.Positions, transform.Mul4x1(p.Vec4(1)).Vec3())
		n := mgl32.Vec3{0, 1, 0}
		if i < len(other.Normals) {
			n = normalMat.Mul3x1(other.Normals[i])
			if n.Len() > 1e-12 {
				n = n.Normalize()
			}
		}
		m.Normals = append(m.Normals, n)
	}
	for _, idx := range other.Indices {
		m.Indices = append(m.Indices, base+idx)
	}
}
