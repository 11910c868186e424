//go:build !nohdf5

// Package hdf5 records simulations step by step in HDF5 files.
package hdf5

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"reflect"
	"time"

	"github.com/google/uuid"
	"gonum.org/v1/hdf5"
)

// handles are the HDF5 objects backing a Dataset.
type handles struct {
	dset   *hdf5.Dataset
	fspace *hdf5.Dataspace
	mspace *hdf5.Dataspace
}

// Run runs a simulation and saves data to an HDF5 file.
// It returns the identifier of the run, also saved in the file.
func Run(conf *Config) (id string, err error) {
	if err := os.MkdirAll(filepath.Dir(conf.Output), 0755); err != nil {
		return "", err
	}

	file, err := hdf5.CreateFile(conf.Output, hdf5.F_ACC_TRUNC)
	if err != nil {
		return "", err
	}
	defer checkClose(&err, file)

	id = uuid.NewString()
	if err := saveConfig(file, conf, id); err != nil {
		return "", err
	}

	rows := uint(conf.Steps) + 1
	for _, d := range conf.Datasets {
		if err := d.init(file, rows); err != nil {
			return "", err
		}
		defer checkClose(&err, d)
	}

	for k := uint(0); k < rows; k++ {
		// show progress as percentage
		if conf.Progress != nil {
			fmt.Fprintf(conf.Progress, "\r% 3d%%", 100*k/rows)
		}

		for _, d := range conf.Datasets {
			start := make([]uint, len(d.Dims)+1)
			start[0] = k
			if err := d.h.fspace.SetOffset(start); err != nil {
				return "", err
			}
			if err := d.h.dset.WriteSubset(d.Data(), d.h.mspace, d.h.fspace); err != nil {
				return "", fmt.Errorf("hdf5: writing %s row %d: %w", d.Name, k, err)
			}
		}

		if k+1 < rows {
			if err := conf.Step(); err != nil {
				return "", err
			}
		}
	}
	if conf.Progress != nil {
		fmt.Fprintf(conf.Progress, "\r100%%\n")
	}
	return id, nil
}

// saveConfig creates a "config" dataset with a null dataspace whose attributes
// reflect the whole configuration plus some other appropriate metadata.
func saveConfig(file *hdf5.File, conf *Config, id string) (err error) {
	null, err := hdf5.CreateDataspace(hdf5.S_NULL)
	if err != nil {
		return err
	}
	defer checkClose(&err, null)

	anytype, err := hdf5.NewDatatypeFromValue(0)
	if err != nil {
		return err
	}
	defer checkClose(&err, anytype)

	dset, err := file.CreateDataset("config", anytype, null)
	if err != nil {
		return err
	}
	defer checkClose(&err, dset)

	scalar, err := hdf5.CreateDataspace(hdf5.S_SCALAR)
	if err != nil {
		return err
	}
	defer checkClose(&err, scalar)

	now := time.Now().String()
	if err := writeAttr(dset, scalar, "Time", &now); err != nil {
		return err
	}
	if err := writeAttr(dset, scalar, "RunID", &id); err != nil {
		return err
	}

	if conf.Meta == nil {
		return nil
	}
	v := reflect.Indirect(reflect.ValueOf(conf.Meta))
	if v.Kind() != reflect.Struct || !v.CanAddr() {
		return fmt.Errorf("hdf5: meta must be a pointer to a struct, got %T", conf.Meta)
	}
	for i := 0; i < v.NumField(); i++ {
		if !v.Type().Field(i).IsExported() {
			continue
		}
		switch v.Field(i).Kind() {
		case reflect.String, reflect.Int, reflect.Float64:
		default:
			continue
		}
		if err := writeAttr(dset, scalar, v.Type().Field(i).Name, v.Field(i).Addr().Interface()); err != nil {
			return err
		}
	}
	return nil
}

// writeAttr writes the value pointed to by ptr as a scalar attribute of dset.
func writeAttr(dset *hdf5.Dataset, scalar *hdf5.Dataspace, name string, ptr interface{}) (err error) {
	dtype, err := hdf5.NewDatatypeFromValue(reflect.ValueOf(ptr).Elem().Interface())
	if err != nil {
		return err
	}
	defer checkClose(&err, dtype)

	attr, err := dset.CreateAttribute(name, dtype, scalar)
	if err != nil {
		return err
	}
	defer checkClose(&err, attr)

	return attr.Write(ptr, dtype)
}

// init creates the dataset and the dataspaces used to write one row at a time.
func (d *Dataset) init(file *hdf5.File, rows uint) (err error) {
	dtype, err := hdf5.NewDatatypeFromValue(d.Val)
	if err != nil {
		return err
	}
	defer checkClose(&err, dtype)

	udims := make([]uint, len(d.Dims)+1)
	udims[0] = rows
	for i, n := range d.Dims {
		udims[i+1] = uint(n)
	}

	d.h.fspace, err = hdf5.CreateSimpleDataspace(udims, nil)
	if err != nil {
		return err
	}

	start := make([]uint, len(udims))
	count := make([]uint, len(udims))
	copy(count, udims)
	count[0] = 1

	if err := d.h.fspace.SelectHyperslab(start, nil, count, nil); err != nil {
		checkClose(&err, d.h.fspace)
		return err
	}

	if len(d.Dims) == 0 {
		d.h.mspace, err = hdf5.CreateDataspace(hdf5.S_SCALAR)
	} else {
		d.h.mspace, err = hdf5.CreateSimpleDataspace(udims[1:], nil)
	}
	if err != nil {
		checkClose(&err, d.h.fspace)
		return err
	}

	d.h.dset, err = file.CreateDataset(d.Name, dtype, d.h.fspace)
	if err != nil {
		checkClose(&err, d.h.fspace)
		checkClose(&err, d.h.mspace)
	}

	return err
}

// Close closes the HDF5 dataset and Dataspaces.
func (d *Dataset) Close() error {
	if err := d.h.dset.Close(); err != nil {
		return err
	}
	if err := d.h.mspace.Close(); err != nil {
		return err
	}
	if err := d.h.fspace.Close(); err != nil {
		return err
	}
	return nil
}

// checkClose checks for errors in deferred calls.
func checkClose(err *error, c io.Closer) {
	if cerr := c.Close(); *err == nil {
		*err = cerr
	}
}
