// Package geojson exports 2D paths as GeoJSON line strings,
// a format most plotting and GIS tools can display directly.
package geojson

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/markusbuchholz/rvo"
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
	"github.com/paulmach/orb/planar"
)

// LineString converts a path to an orb line string.
func LineString(path []rvo.Vec2) orb.LineString {
	ls := make(orb.LineString, len(path))
	for i, p := range path {
		ls[i] = orb.Point{p.X, p.Y}
	}
	return ls
}

// Collection returns one feature per agent, with its name,
// number of steps and travelled length as properties.
func Collection(agents ...*rvo.Agent[rvo.Vec2]) *geojson.FeatureCollection {
	fc := geojson.NewFeatureCollection()
	for _, a := range agents {
		ls := LineString(a.Path)
		f := geojson.NewFeature(ls)
		f.Properties["name"] = a.Name
		f.Properties["steps"] = len(a.Path) - 1
		f.Properties["length"] = planar.Length(ls)
		f.Properties["avoid_steps"] = a.Stats.Avoidance
		fc.Append(f)
	}
	return fc
}

// Write saves the paths of all agents to a GeoJSON file.
func Write(path string, agents ...*rvo.Agent[rvo.Vec2]) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	data, err := Collection(agents...).MarshalJSON()
	if err != nil {
		return fmt.Errorf("geojson: %w", err)
	}
	return os.WriteFile(path, data, 0644)
}
