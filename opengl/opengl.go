//go:build !nogl

// Package opengl displays the paths of a running simulation in an OpenGL window.
package opengl

import (
	"fmt"
	"strings"

	"github.com/go-gl/gl/v3.3-core/gl"
	"github.com/go-gl/glfw/v3.3/glfw"
)

// colors of the successive paths
var palette = [][4]float32{
	{1, 0.8, 0, 1},
	{0, 0.7, 1, 1},
	{1, 0.3, 0.3, 1},
	{0.4, 1, 0.4, 1},
}

// Run runs an interactive simulation in an OpenGL window.
func Run(conf *Config) error {
	// init GLFW and OpenGL
	if err := glfw.Init(); err != nil {
		return err
	}
	defer glfw.Terminate()

	glfw.WindowHint(glfw.Samples, 4)
	glfw.WindowHint(glfw.Resizable, glfw.False)
	glfw.WindowHint(glfw.ContextVersionMajor, 3)
	glfw.WindowHint(glfw.ContextVersionMinor, 3)
	glfw.WindowHint(glfw.OpenGLForwardCompatible, glfw.True)
	glfw.WindowHint(glfw.OpenGLProfile, glfw.OpenGLCoreProfile)

	// create OpenGL window
	const (
		width  = 800
		height = 800
	)
	title := conf.Title
	if title == "" {
		title = "Reciprocal Velocity Obstacles (RVO)"
	}
	w, err := glfw.CreateWindow(width, height, title, nil, nil)
	if err != nil {
		return err
	}
	w.MakeContextCurrent()

	if err := gl.Init(); err != nil {
		return err
	}

	// set background color and enable alpha blending
	gl.Enable(gl.BLEND)
	gl.BlendFunc(gl.SRC_ALPHA, gl.ONE_MINUS_SRC_ALPHA)
	gl.ClearColor(0, 0, 0, 1)
	gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)
	w.SwapBuffers()

	// initialize OpenGL objects
	d, err := newDisplay(conf.MaxPoints, len(conf.Paths()))
	if err != nil {
		return err
	}

	// handle scrolling zoom
	v := defaultView(conf)
	w.SetScrollCallback(func(w *glfw.Window, xo, yo float64) {
		v.scale *= 1 - 0.05*float32(yo)
	})

	var quit, step bool
	pause := conf.ForcePause
	w.SetKeyCallback(func(w *glfw.Window, key glfw.Key, _ int, action glfw.Action, mod glfw.ModifierKey) {
		press := action == glfw.Press || action == glfw.Repeat
		switch {
		case key == glfw.KeyEscape && action == glfw.Press:
			quit = true
		case key == glfw.KeySpace && action == glfw.Press && !conf.ForcePause:
			pause = !pause
		case key == glfw.KeyRight && press && pause:
			step = true
		case key == glfw.KeyR && action == glfw.Press:
			v = defaultView(conf)
		case conf.Dim == 3 && press:
			switch key {
			case glfw.KeyA:
				v.yaw -= 0.05
			case glfw.KeyD:
				v.yaw += 0.05
			case glfw.KeyW:
				v.pitch -= 0.05
			case glfw.KeyS:
				v.pitch += 0.05
			}
		}
	})

	for !(quit || w.ShouldClose()) {
		if (step || !pause) && !conf.Done() {
			if err := conf.Step(); err != nil {
				return err
			}
		}
		step = false
		d.draw(conf.Paths(), v)
		w.SwapBuffers()
		glfw.PollEvents()
	}
	return nil
}

// display contains all the OpenGL objects required to display the paths.
type display struct {
	vao       uint32 // vertex array object
	vbo       uint32 // path vertices
	prog      uint32
	maxPoints int
	uni       struct {
		rot    int32 // rotation matrix
		center int32 // center of the view
		scale  int32 // half side of the view
		color  int32 // path color
	}
}

// draw updates the OpenGL buffer and draws the paths on screen.
func (d *display) draw(paths [][][]float64, v view) {
	buf, counts := flatten(paths, d.maxPoints)
	gl.BindBuffer(gl.ARRAY_BUFFER, d.vbo)
	if len(buf) > 0 {
		gl.BufferSubData(gl.ARRAY_BUFFER, 0, 4*len(buf), gl.Ptr(buf))
	}

	gl.UseProgram(d.prog)
	rot := v.rotation()
	gl.UniformMatrix3fv(d.uni.rot, 1, false, &rot[0])
	gl.Uniform3f(d.uni.center, v.center[0], v.center[1], v.center[2])
	gl.Uniform1f(d.uni.scale, v.scale)

	gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)
	gl.BindVertexArray(d.vao)
	for i, n := range counts {
		if n == 0 {
			continue
		}
		c := palette[i%len(palette)]
		gl.Uniform4fv(d.uni.color, 1, &c[0])
		first := int32(i * d.maxPoints)
		gl.DrawArrays(gl.LINE_STRIP, first, n)
		gl.DrawArrays(gl.POINTS, first+n-1, 1)
	}
}

// newDisplay compiles shaders and initializes a display for n paths.
func newDisplay(maxPoints, n int) (*display, error) {
	d := &display{maxPoints: maxPoints}

	var err error
	d.prog, err = makeProg([]shader{
		{"Vertex", vertexShader, gl.CreateShader(gl.VERTEX_SHADER)},
		{"Fragment", fragmentShader, gl.CreateShader(gl.FRAGMENT_SHADER)},
	})
	if err != nil {
		return nil, err
	}

	d.uni.rot = gl.GetUniformLocation(d.prog, gl.Str("rot\x00"))
	d.uni.center = gl.GetUniformLocation(d.prog, gl.Str("center\x00"))
	d.uni.scale = gl.GetUniformLocation(d.prog, gl.Str("scale\x00"))
	d.uni.color = gl.GetUniformLocation(d.prog, gl.Str("color\x00"))

	gl.GenVertexArrays(1, &d.vao)
	gl.BindVertexArray(d.vao)

	gl.GenBuffers(1, &d.vbo)
	gl.BindBuffer(gl.ARRAY_BUFFER, d.vbo)
	gl.BufferData(gl.ARRAY_BUFFER, 4*3*maxPoints*n, nil, gl.STREAM_DRAW)

	// attribute location is specified in the shader with layout(location=0)
	gl.EnableVertexAttribArray(0)
	gl.VertexAttribPointer(0, 3, gl.FLOAT, false, 0, nil)

	gl.BindBuffer(gl.ARRAY_BUFFER, 0)
	gl.PointSize(6)

	return d, nil
}

const vertexShader = `
#version 330 core
layout(location = 0) in vec3 pos;
uniform mat3 rot;
uniform vec3 center;
uniform float scale;
void main() {
	vec3 p = rot * (pos - center);
	gl_Position = vec4(p.xy / scale, -p.z / (4.0 * scale), 1.0);
}
`

const fragmentShader = `
#version 330 core
uniform vec4 color;
out vec4 frag;
void main() {
	frag = color;
}
`

// A shader wraps an OpenGL shader.
type shader struct {
	name   string
	src    string
	shader uint32
}

// makeProg builds OpenGL programs.
func makeProg(shaders []shader) (uint32, error) {
	var fail []string
	for _, s := range shaders {
		str, free := gl.Strs(strings.TrimSpace(s.src) + "\x00")
		gl.ShaderSource(s.shader, 1, str, nil)
		free()
		gl.CompileShader(s.shader)
		var status int32
		gl.GetShaderiv(s.shader, gl.COMPILE_STATUS, &status)
		if status != gl.TRUE {
			var n int32
			gl.GetShaderiv(s.shader, gl.INFO_LOG_LENGTH, &n)
			log := make([]uint8, n+1)
			gl.GetShaderInfoLog(s.shader, n, &n, &log[0])
			fail = append(fail, fmt.Sprintf("%s shader: %s", s.name, gl.GoStr(&log[0])))
			gl.DeleteShader(s.shader)
		}
	}
	if len(fail) > 0 {
		return 0, fmt.Errorf("opengl: GLSL errors:\n%s", strings.Join(fail, "\n"))
	}
	prog := gl.CreateProgram()
	for _, s := range shaders {
		gl.AttachShader(prog, s.shader)
	}
	gl.LinkProgram(prog)

	var status int32
	gl.GetProgramiv(prog, gl.LINK_STATUS, &status)
	if status != gl.TRUE {
		return 0, fmt.Errorf("opengl: cannot link shader program")
	}
	return prog, nil
}
