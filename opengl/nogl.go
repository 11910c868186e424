//go:build nogl

package opengl

import (
	"fmt"
	"os"
)

// Run returns an error explaining that OpenGL support is disabled.
func Run(conf *Config) error {
	return fmt.Errorf("%s was built without OpenGL support\n"+
		"You must specify an output file ('output' key in the config file).", os.Args[0])
}
