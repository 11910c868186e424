//go:build !nohdf5

package hdf5

import (
	"fmt"

	"gonum.org/v1/hdf5"
)

// LoadPaths reads a steps × agents × dim dataset of positions, such as the
// one written for Trajectories, and returns the path of every agent.
func LoadPaths(filename, dataset string) (paths [][][]float64, err error) {
	file, err := hdf5.OpenFile(filename, hdf5.F_ACC_RDONLY)
	if err != nil {
		return nil, err
	}
	defer checkClose(&err, file)

	dset, err := file.OpenDataset(dataset)
	if err != nil {
		return nil, err
	}
	defer checkClose(&err, dset)

	fspace := dset.Space()
	defer checkClose(&err, fspace)

	dims, _, err := fspace.SimpleExtentDims()
	if err != nil {
		return nil, err
	}
	if len(dims) != 3 {
		return nil, fmt.Errorf("loader: expected 3 dimensions, got %d", len(dims))
	}
	steps, agents, dim := int(dims[0]), int(dims[1]), int(dims[2])

	data := make([]float64, steps*agents*dim)
	if err := dset.Read(&data); err != nil {
		return nil, err
	}

	paths = make([][][]float64, agents)
	for i := range paths {
		paths[i] = make([][]float64, steps)
		for k := range paths[i] {
			off := (k*agents + i) * dim
			paths[i][k] = data[off : off+dim : off+dim]
		}
	}
	return paths, nil
}
