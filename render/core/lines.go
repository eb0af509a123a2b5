package core

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// LineList accumulates line segments as vertex pairs.
type LineList []LineVertex

func (l *LineList) Segment(a, b mgl32.Vec3, color mgl32.Vec4) {
	*l = append(*l,
		LineVertex{Position: a, Color: color},
		LineVertex{Position: b, Color: color},
	)
}

func (l *LineList) Box(b AABB, color mgl32.Vec4) {
	c := b.Corners()
	edges := [12][2]int{
		{0, 1}, {1, 2}, {2, 3}, {3, 0},
		{4, 5}, {5, 6}, {6, 7}, {7, 4},
		{0, 4}, {1, 5}, {2, 6}, {3, 7},
	}
	for _, e := range edges {
		l.Segment(c[e[0]], c[e[1]], color)
	}
}

// Circle draws a ring around center in the plane orthogonal to normal.
func (l *LineList) Circle(center, normal mgl32.Vec3, radius float32, segments int, color mgl32.Vec4) {
	u, v := basis(normal)
	prev := center.Add(u.Mul(radius))
	for i := 1; i <= segments; i++ {
		a := 2 * math.Pi * float64(i) / float64(segments)
		p := center.
			Add(u.Mul(radius * float32(math.Cos(a)))).
			Add(v.Mul(radius * float32(math.Sin(a))))
		l.Segment(prev, p, color)
		prev = p
	}
}

// Arrow draws a shaft from a to b with a small cone of head lines.
func (l *LineList) Arrow(a, b mgl32.Vec3, head float32, color mgl32.Vec4) {
	l.Segment(a, b, color)
	dir := b.Sub(a)
	if dir.Len() < 1e-6 {
		return
	}
	dir = dir.Normalize()
	u, v := basis(dir)
	base := b.Sub(dir.Mul(head))
	for _, side := range []mgl32.Vec3{u, u.Mul(-1), v, v.Mul(-1)} {
		l.Segment(b, base.Add(side.Mul(head*0.4)), color)
	}
}

// basis returns two unit vectors orthogonal to n and to each other.
func basis(n mgl32.Vec3) (mgl32.Vec3, mgl32.Vec3) {
	n = n.Normalize()
	ref := mgl32.Vec3{0, 1, 0}
	if math.Abs(float64(n.Dot(ref))) > 0.9 {
		ref = mgl32.Vec3{1, 0, 0}
	}
	u := ref.Cross(n).Normalize()
	v := n.Cross(u)
	return u, v
}
