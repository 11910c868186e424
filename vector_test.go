package rvo

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestVec2(t *testing.T) {
	u, v := Vec2{3, 4}, Vec2{1, -2}
	assert.Equal(t, Vec2{4, 2}, u.Add(v))
	assert.Equal(t, Vec2{2, 6}, u.Sub(v))
	assert.Equal(t, Vec2{6, 8}, u.Scale(2))
	assert.Equal(t, 5.0, u.Norm())
	assert.Equal(t, Vec2{0.6, 0.8}, u.Unit())
	assert.Equal(t, -5.0, u.Dot(v))
	assert.Equal(t, Vec2{-4, 3}, u.Perp())
	assert.Equal(t, 0.0, u.Dot(u.Perp()))
	assert.Equal(t, []float64{3, 4}, u.Coords())
}

func TestVec3(t *testing.T) {
	u, v := Vec3{1, 2, 2}, Vec3{0, 1, -1}
	assert.Equal(t, Vec3{1, 3, 1}, u.Add(v))
	assert.Equal(t, Vec3{1, 1, 3}, u.Sub(v))
	assert.Equal(t, 3.0, u.Norm())
	assert.Equal(t, 0.0, u.Dot(v))
	assert.Equal(t, Vec3{-4, 1, 1}, u.Cross(v))
	assert.Equal(t, []float64{1, 2, 2}, u.Coords())
}

func TestVec3Perp(t *testing.T) {
	// the z component is ignored
	assert.Equal(t, Vec3{-2, 1, 0}, Vec3{1, 2, 7}.Perp())
	assert.Zero(t, Vec3{0, 0, 5}.Perp().Norm())
}

func TestVec3CrossPerp(t *testing.T) {
	tests := []struct {
		name string
		v    Vec3
	}{
		{"planar", Vec3{1, 2, 0}},
		{"oblique", Vec3{1, 2, 3}},
		{"along z", Vec3{0, 0, 5}},
		{"along -z", Vec3{0, 0, -0.5}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := tt.v.CrossPerp()
			assert.Greater(t, p.Norm(), 0.0)
			assert.InDelta(t, 0, p.Dot(tt.v), 1e-12)
		})
	}
	assert.Equal(t, Vec3{-2, 1, 0}, Vec3{1, 2, 3}.CrossPerp())
	assert.Zero(t, Vec3{}.CrossPerp().Norm())
}

func TestUnitOfZero(t *testing.T) {
	u := Vec2{}.Unit()
	assert.True(t, math.IsNaN(u.X) && math.IsNaN(u.Y))
}
