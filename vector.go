package rvo

import "math"

// Vector is the set of operations the update rule needs from a position type.
// V is the concrete vector type itself (Vec2 or Vec3).
type Vector[V any] interface {
	Add(V) V
	Sub(V) V
	Scale(float64) V
	Norm() float64
	Unit() V
	Dot(V) float64
	Perp() V
	Coords() []float64
}

var (
	_ Vector[Vec2] = Vec2{}
	_ Vector[Vec3] = Vec3{}
)

// A Vec2 is a simple 2D vector.
type Vec2 struct {
	X float64
	Y float64
}

// Add returns u+v.
func (u Vec2) Add(v Vec2) Vec2 { return Vec2{u.X + v.X, u.Y + v.Y} }

// Sub returns u-v.
func (u Vec2) Sub(v Vec2) Vec2 { return Vec2{u.X - v.X, u.Y - v.Y} }

// Scale returns k*u.
func (u Vec2) Scale(k float64) Vec2 { return Vec2{u.X * k, u.Y * k} }

// Norm returns the Euclidean norm of u.
func (u Vec2) Norm() float64 { return math.Sqrt(u.X*u.X + u.Y*u.Y) }

// Unit returns u divided componentwise by its norm.
// The zero vector yields NaNs.
func (u Vec2) Unit() Vec2 {
	n := u.Norm()
	return Vec2{u.X / n, u.Y / n}
}

// Dot returns the dot product of u and v.
func (u Vec2) Dot(v Vec2) float64 { return u.X*v.X + u.Y*v.Y }

// Perp returns u rotated by 90 degrees counterclockwise.
func (u Vec2) Perp() Vec2 { return Vec2{-u.Y, u.X} }

// Coords returns the coordinates of u as a slice.
func (u Vec2) Coords() []float64 { return []float64{u.X, u.Y} }

// A Vec3 is a simple 3D vector.
type Vec3 struct {
	X float64
	Y float64
	Z float64
}

// Add returns u+v.
func (u Vec3) Add(v Vec3) Vec3 { return Vec3{u.X + v.X, u.Y + v.Y, u.Z + v.Z} }

// Sub returns u-v.
func (u Vec3) Sub(v Vec3) Vec3 { return Vec3{u.X - v.X, u.Y - v.Y, u.Z - v.Z} }

// Scale returns k*u.
func (u Vec3) Scale(k float64) Vec3 { return Vec3{u.X * k, u.Y * k, u.Z * k} }

// Norm returns the Euclidean norm of u.
func (u Vec3) Norm() float64 { return math.Sqrt(u.X*u.X + u.Y*u.Y + u.Z*u.Z) }

// Unit returns u divided componentwise by its norm.
// The zero vector yields NaNs.
func (u Vec3) Unit() Vec3 {
	n := u.Norm()
	return Vec3{u.X / n, u.Y / n, u.Z / n}
}

// Dot returns the dot product of u and v.
func (u Vec3) Dot(v Vec3) float64 { return u.X*v.X + u.Y*v.Y + u.Z*v.Z }

// Cross returns the cross product u×v.
func (u Vec3) Cross(v Vec3) Vec3 {
	return Vec3{
		u.Y*v.Z - u.Z*v.Y,
		u.Z*v.X - u.X*v.Z,
		u.X*v.Y - u.Y*v.X,
	}
}

// Perp rotates the XY projection of u by 90 degrees about the z axis
// and drops the z component. It is zero when u is parallel to z.
func (u Vec3) Perp() Vec3 { return Vec3{-u.Y, u.X, 0} }

// CrossPerp returns a vector perpendicular to u: ẑ×u, or x̂×u when u is
// parallel to the z axis. It only returns the zero vector when u is zero.
func (u Vec3) CrossPerp() Vec3 {
	p := Vec3{Z: 1}.Cross(u)
	if p.X == 0 && p.Y == 0 && p.Z == 0 {
		p = Vec3{X: 1}.Cross(u)
	}
	return p
}

// Coords returns the coordinates of u as a slice.
func (u Vec3) Coords() []float64 { return []float64{u.X, u.Y, u.Z} }
