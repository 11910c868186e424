package opengl

import "math"

func sqrt32(x float32) float32 { return float32(math.Sqrt(float64(x))) }

func sincos32(x float32) (sin, cos float32) {
	s, c := math.Sincos(float64(x))
	return float32(s), float32(c)
}
