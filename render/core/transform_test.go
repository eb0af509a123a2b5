package core

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
)

func TestEulerMatchesAxisRotations(t *testing.T) {
	e := mgl32.Vec3{0.2, 0.3, 0.4}
	want := mgl32.HomogRotate3DX(e.X()).
		Mul4(mgl32.HomogRotate3DY(e.Y())).
		Mul4(mgl32.HomogRotate3DZ(e.Z()))
	got := EulerToQuat(e).Mat4()
	assert.True(t, want.ApproxEqualThreshold(got, 1e-5))
}

func TestMeshBoundsAndNormals(t *testing.T) {
	m := &Mesh{
		Positions: []mgl32.Vec3{{0, 0, 0}, {1, 0, 0}, {0, 1, 0}},
		Indices:   []uint32{0, 1, 2},
	}
	b := m.Bounds()
	assert.Equal(t, mgl32.Vec3{0, 0, 0}, b.Min)
	assert.Equal(t, mgl32.Vec3{1, 1, 0}, b.Max)

	m.ComputeNormals()
	for _, n := range m.Normals {
		assert.InDelta(t, 1, n.Z(), 1e-6)
	}
}

func TestLineListShapes(t *testing.T) {
	var l LineList
	l.Box(AABB{Max: mgl32.Vec3{1, 1, 1}}, mgl32.Vec4{1, 1, 1, 1})
	assert.Len(t, l, 24)

	l = l[:0]
	l.Circle(mgl32.Vec3{}, mgl32.Vec3{0, 0, 1}, 2, 32, mgl32.Vec4{1, 0, 0, 1})
	assert.Len(t, l, 64)
	for _, v := range l {
		assert.InDelta(t, 2, mgl32.Vec3(v.Position).Len(), 1e-4)
		assert.InDelta(t, 0, v.Position[2], 1e-5)
	}
}

func TestModelAppliesOrientationBeforeEuler(t *testing.T) {
	o := mgl32.QuatRotate(mgl32.DegToRad(90), mgl32.Vec3{0, 1, 0})
	m := Model(mgl32.Vec3{1, 0, 0}, o, mgl32.Vec3{}, mgl32.Vec3{2, 2, 2})

	p := m.Mul4x1(mgl32.Vec4{1, 0, 0, 1}).Vec3()
	assert.InDelta(t, 1, p.X(), 1e-5)
	assert.InDelta(t, -2, p.Z(), 1e-5)
}
