// Command rvo2d simulates two robots crossing each other in the plane.
//
// # Usage
//
// The rvo2d command takes one optional argument:
//
//	rvo2d [config_file]
//
// It is the path to a TOML config file, or a YAML one if its name ends
// with .yaml or .yml. If no config file is specified, the default
// crossing runs in an OpenGL window.
//
// # Interactive mode
//
// In interactive mode, the simulation can be paused/resumed with space.
// While in pause, pressing right arrow will perform a single step.
// Scrolling zooms, R resets the view.
// Pressing Esc or closing the window will quit.
package main

import (
	"fmt"
	"os"
	"runtime"

	"github.com/markusbuchholz/rvo"
	"github.com/markusbuchholz/rvo/geojson"
	"github.com/markusbuchholz/rvo/hdf5"
	"github.com/markusbuchholz/rvo/logging"
	"github.com/markusbuchholz/rvo/opengl"
	"github.com/markusbuchholz/rvo/scenario"
	"go.uber.org/zap"
)

const usage = `Usage: rvo2d [config_file]

The first argument is optional and is the path to a TOML (or YAML) config file.
If no config file is specified, an interactive simulation
with default parameters will run in an OpenGL window.
`

func init() {
	// Most OpenGL functions have to run from the main thread.
	// This is needed to arrange that main() runs on main thread.
	// See https://github.com/golang/go/wiki/LockOSThread for more info.
	runtime.LockOSThread()
}

func main() {
	conf := scenario.DefaultConf2D()
	var err error
	switch len(os.Args) {
	case 1:
	case 2:
		conf, err = scenario.ParseConfig(os.Args[1], conf)
	default:
		err = fmt.Errorf("%d arguments provided (0 required, 1 optional)\n\n%s", len(os.Args)-1, usage)
	}
	if err != nil {
		Fatal(err)
	}

	log, err := logging.New(conf.LogLevel)
	if err != nil {
		Fatal(err)
	}
	defer log.Sync()

	sim, err := scenario.Build2D(conf, log)
	if err != nil {
		Fatal(err)
	}

	// run interactively or not depending on config
	if conf.Output == "" {
		err = opengl.Run(viewer(conf, sim))
	} else {
		var id string
		id, err = hdf5.Run(&hdf5.Config{
			Output:   conf.Output,
			Steps:    conf.Steps,
			Step:     sim.Step,
			Datasets: hdf5.Trajectories(sim),
			Meta:     conf,
			Progress: os.Stdout,
		})
		log = log.With(zap.String("run_id", id))
	}
	if err != nil {
		log.Error("simulation failed", zap.Error(err))
		Fatal(err)
	}

	if conf.GeoJSON != "" {
		if err := geojson.Write(conf.GeoJSON, sim.Agents[0], sim.Agents[1]); err != nil {
			Fatal(err)
		}
		log.Info("paths exported", zap.String("geojson", conf.GeoJSON))
	}
	scenario.Report(log, sim)
}

// Fatal prints an error on the standard output and exits with a non-zero status.
func Fatal(err error) {
	fmt.Fprintf(os.Stderr, "Error: %s\n", err)
	os.Exit(1)
}

// viewer returns the OpenGL driver parameters for sim.
func viewer(conf *scenario.Config, sim *rvo.Simulation[rvo.Vec2]) *opengl.Config {
	min, max := conf.Bounds()
	return &opengl.Config{
		Title:     "Reciprocal Velocity Obstacles (RVO)",
		Dim:       2,
		MaxPoints: conf.Steps + 1,
		Step:      sim.Step,
		Done:      sim.Done,
		Paths: func() [][][]float64 {
			return [][][]float64{
				rvo.Trajectory(sim.Agents[0].Path),
				rvo.Trajectory(sim.Agents[1].Path),
			}
		},
		Min: min,
		Max: max,
	}
}
