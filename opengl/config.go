package opengl

// Config holds the parameters of the OpenGL driver.
type Config struct {
	Title      string               // window title
	Dim        int                  // 2 or 3; only 3D views can be rotated
	MaxPoints  int                  // maximum number of points per path
	Step       func() error         // go to next step
	Done       func() bool          // no more steps
	Paths      func() [][][]float64 // current paths, one per agent
	ForcePause bool                 // step manually only?

	// bounds of default view, Dim coordinates each
	Min []float64
	Max []float64
}

// A view is the state of the camera: it looks at center from a direction
// given by yaw and pitch, and shows a square of half side scale.
type view struct {
	center     [3]float32
	scale      float32
	yaw, pitch float32
}

// defaultView returns a view showing the whole box delimited by conf.Min and conf.Max.
func defaultView(conf *Config) view {
	var v view
	var r float32
	for k := 0; k < len(conf.Min) && k < 3; k++ {
		v.center[k] = float32(conf.Min[k]+conf.Max[k]) / 2
		h := float32(conf.Max[k]-conf.Min[k]) / 2
		if conf.Dim == 3 {
			r += h * h
		} else if h > r {
			r = h
		}
	}
	if conf.Dim == 3 {
		r = sqrt32(r)
		v.yaw, v.pitch = 0.6, -0.9
	}
	if r == 0 {
		r = 1
	}
	v.scale = r
	return v
}

// rotation returns the column-major rotation matrix of the view.
func (v view) rotation() [9]float32 {
	sy, cy := sincos32(v.yaw)
	sp, cp := sincos32(v.pitch)
	// rotate about z by yaw, then about x by pitch
	return [9]float32{
		cy, sy * cp, sy * sp,
		-sy, cy * cp, cy * sp,
		0, -sp, cp,
	}
}

// flatten converts paths to xyz float32 triples, one block of
// maxPoints triples per path. It also returns the number of points of each path.
func flatten(paths [][][]float64, maxPoints int) ([]float32, []int32) {
	buf := make([]float32, 3*maxPoints*len(paths))
	counts := make([]int32, len(paths))
	for i, path := range paths {
		if len(path) > maxPoints {
			path = path[len(path)-maxPoints:]
		}
		counts[i] = int32(len(path))
		for k, p := range path {
			off := 3 * (i*maxPoints + k)
			for c := 0; c < len(p) && c < 3; c++ {
				buf[off+c] = float32(p[c])
			}
		}
	}
	return buf, counts
}
