//go:build nohdf5

// Package hdf5 records simulations step by step in HDF5 files.
package hdf5

import (
	"fmt"
	"os"
)

type handles struct{}

// Run returns an error explaining that HDF5 support is disabled.
func Run(conf *Config) (string, error) {
	return "", fmt.Errorf("%s was built without HDF5 support", os.Args[0])
}

// LoadPaths returns an error explaining that HDF5 support is disabled.
func LoadPaths(filename, dataset string) ([][][]float64, error) {
	return nil, fmt.Errorf("%s was built without HDF5 support", os.Args[0])
}
