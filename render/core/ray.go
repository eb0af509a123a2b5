package core

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

type Ray struct {
	Origin mgl32.Vec3
	Dir    mgl32.Vec3
}

func (r Ray) At(t float32) mgl32.Vec3 {
	return r.Origin.Add(r.Dir.Mul(t))
}

// ScreenRay unprojects a pixel position (origin top-left) through the inverse view-projection.
func ScreenRay(viewProj mgl32.Mat4, x, y, width, height float32) Ray {
	if width <= 0 || height <= 0 {
		return Ray{Dir: mgl32.Vec3{0, 0, -1}}
	}
	ndcX := 2*x/width - 1
	ndcY := 1 - 2*y/height

	inv := viewProj.Inv()
	near := inv.Mul4x1(mgl32.Vec4{ndcX, ndcY, -1, 1})
	far := inv.Mul4x1(mgl32.Vec4{ndcX, ndcY, 1, 1})
	p0 := near.Vec3().Mul(1 / near.W())
	p1 := far.Vec3().Mul(1 / far.W())

	return Ray{Origin: p0, Dir: p1.Sub(p0).Normalize()}
}

// WorldToScreen projects p to pixel coordinates. ok is false for points behind
// the camera or outside the viewport.
func WorldToScreen(viewProj mgl32.Mat4, p mgl32.Vec3, width, height float32) (x, y float32, ok bool) {
	clip := viewProj.Mul4x1(p.Vec4(1.0))
	if clip.W() < 0.1 {
		return 0, 0, false
	}
	ndc := clip.Vec3().Mul(1.0 / clip.W())

	x = (ndc.X()*0.5 + 0.5) * width
	y = (1.0 - (ndc.Y()*0.5 + 0.5)) * height
	if x < 0 || x > width || y < 0 || y > height {
		return x, y, false
	}
	return x, y, true
}

type AABB struct {
	Min mgl32.Vec3
	Max mgl32.Vec3
}

func (b AABB) Center() mgl32.Vec3 {
	return b.Min.Add(b.Max).Mul(0.5)
}

func (b AABB) Size() mgl32.Vec3 {
	return b.Max.Sub(b.Min)
}

func (b AABB) Corners() [8]mgl32.Vec3 {
	return [8]mgl32.Vec3{
		{b.Min.X(), b.Min.Y(), b.Min.Z()},
		{b.Max.X(), b.Min.Y(), b.Min.Z()},
		{b.Max.X(), b.Max.Y(), b.Min.Z()},
		{b.Min.X(), b.Max.Y(), b.Min.Z()},
		{b.Min.X(), b.Min.Y(), b.Max.Z()},
		{b.Max.X(), b.Min.Y(), b.Max.Z()},
		{b.Max.X(), b.Max.Y(), b.Max.Z()},
		{b.Min.X(), b.Max.Y(), b.Max.Z()},
	}
}

// Transform returns the axis-aligned bounds of the box after applying m.
func (b AABB) Transform(m mgl32.Mat4) AABB {
	inf := float32(math.Inf(1))
	out := AABB{Min: mgl32.Vec3{inf, inf, inf}, Max: mgl32.Vec3{-inf, -inf, -inf}}
	for _, c := range b.Corners() {
		p := m.Mul4x1(c.Vec4(1.0)).Vec3()
		for i := 0; i < 3; i++ {
			out.Min[i] = min(out.Min[i], p[i])
			out.Max[i] = max(out.Max[i], p[i])
		}
	}
	return out
}

// IntersectAABB returns the entry distance along the ray (slab test). A ray
// starting inside the box hits at t = 0.
func (r Ray) IntersectAABB(b AABB) (float32, bool) {
	tMin := float32(0)
	tMax := float32(math.MaxFloat32)
	for i := 0; i < 3; i++ {
		if math.Abs(float64(r.Dir[i])) < 1e-8 {
			if r.Origin[i] < b.Min[i] || r.Origin[i] > b.Max[i] {
				return 0, false
			}
			continue
		}
		inv := 1 / r.Dir[i]
		t1 := (b.Min[i] - r.Origin[i]) * inv
		t2 := (b.Max[i] - r.Origin[i]) * inv
		if t1 > t2 {
			t1, t2 = t2, t1
		}
		tMin = max(tMin, t1)
		tMax = min(tMax, t2)
		if tMin > tMax {
			return 0, false
		}
	}
	return tMin, true
}

// IntersectPlane returns t where the ray meets the plane through point with the given normal.
func (r Ray) IntersectPlane(point, normal mgl32.Vec3) (float32, bool) {
	denom := r.Dir.Dot(normal)
	if math.Abs(float64(denom)) < 1e-6 {
		return 0, false
	}
	t := point.Sub(r.Origin).Dot(normal) / denom
	return t, t > 0
}

// ClosestPoints between the ray and the line ao + s*ad. Returns the ray
// parameter t, the line parameter s and the distance between the two points.
func ClosestPoints(ro, rd, ao, ad mgl32.Vec3) (float32, float32, float32) {
	r := ro.Sub(ao)
	a := rd.Dot(rd)
	b := rd.Dot(ad)
	e := ad.Dot(ad)
	f := ad.Dot(r)

	det := a*e - b*b
	if det < 1e-6 {
		return 0, 0, r.Len()
	}

	c := rd.Dot(r)
	t := (b*f - c*e) / det
	s := (a*f - b*c) / det

	p1 := ro.Add(rd.Mul(t))
	p2 := ao.Add(ad.Mul(s))
	return t, s, p1.Sub(p2).Len()
}
