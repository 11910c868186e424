package hdf5

import (
	"io"

	"github.com/markusbuchholz/rvo"
)

// A Dataset stipulates how to generate data and where to store them in the HDF5 file.
type Dataset struct {
	// Name the name of the dataset in the HDF5 file.
	Name string

	// Val is a value of the same concrete type as the underlying type of the data.
	Val interface{}

	// Dims are the dimensions of the data for a single step.
	Dims []int

	// Data is a function that produces the data of the current step
	// as a pointer to a slice of row-major concrete values.
	Data func() interface{}

	h handles
}

// Config holds the parameters of the HDF5 driver.
type Config struct {
	Output   string       // path of output file
	Steps    int          // total number of steps, Steps+1 rows are written
	Step     func() error // go to next step
	Datasets []*Dataset   // list of datasets

	// Meta is a pointer to a struct whose string and numeric fields
	// are saved as attributes of the "config" dataset.
	Meta interface{}

	// Progress receives a percentage counter if not nil.
	Progress io.Writer
}

// Names of the datasets written by Trajectories.
const (
	Positions = "positions" // steps+1 × agents × dim positions
	Branches  = "branches"  // steps+1 × agents branch taken to get there
)

// Trajectories returns the datasets recording the positions of both agents
// of s and the branch each took at every step. The first row holds the
// initial positions and a branch of -1.
func Trajectories[V rvo.Vector[V]](s *rvo.Simulation[V]) []*Dataset {
	var zero V
	dim := len(zero.Coords())
	n := len(s.Agents)
	return []*Dataset{
		{
			Name: Positions,
			Val:  0.0,
			Dims: []int{n, dim},
			Data: func() interface{} {
				p := make([]float64, 0, n*dim)
				for _, a := range s.Agents {
					p = append(p, a.Pos.Coords()...)
				}
				return &p
			},
		},
		{
			Name: Branches,
			Val:  int32(0),
			Dims: []int{n},
			Data: func() interface{} {
				b := make([]int32, n)
				for i, a := range s.Agents {
					b[i] = int32(a.Last)
				}
				return &b
			},
		},
	}
}
