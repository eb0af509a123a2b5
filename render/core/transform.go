package core

import (
	"github.com/go-gl/mathgl/mgl32"
)

// Model builds M = T * O * R * S where O is a free orientation and R comes from
// intrinsic XYZ Euler angles.
func Model(position mgl32.Vec3, orientation mgl32.Quat, euler mgl32.Vec3, scale mgl32.Vec3) mgl32.Mat4 {
	translate := mgl32.Translate3D(position.X(), position.Y(), position.Z())
	rotate := orientation.Mat4().Mul4(EulerToQuat(euler).Mat4())
	s := mgl32.Scale3D(scale.X(), scale.Y(), scale.Z())
	return translate.Mul4(rotate).Mul4(s)
}

// EulerToQuat converts XYZ-ordered Euler angles (radians) to a quaternion, R = Rx * Ry * Rz.
func EulerToQuat(e mgl32.Vec3) mgl32.Quat {
	return mgl32.AnglesToQuat(e.X(), e.Y(), e.Z(), mgl32.XYZ)
}
