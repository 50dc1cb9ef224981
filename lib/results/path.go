/*package results writes the products of an analysis run to a results
directory: spectrum bundles, spectrum figures, and per-frame diagnostic
tables.*/
package results

import (
	"fmt"
	"os"
	"path/filepath"
)

// Path is a results directory.
type Path struct {
	Dir string
}

// NewPath returns the results directory dir, creating it (and its parents)
// if it doesn't exist.
func NewPath(dir string) (Path, error) {
	if dir == "" {
		return Path{ }, fmt.Errorf("The results directory has not been set.")
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return Path{ }, fmt.Errorf("Could not create the results directory " +
			"%s: %w", dir, err)
	}
	return Path{ dir }, nil
}

// File returns the path to name within the results directory.
func (p Path) File(name string) string { return filepath.Join(p.Dir, name) }

// SpectrumName returns the base name, without extension, of the outputs for
// the spectrum of a given frame.
func SpectrumName(frame int) string {
	return fmt.Sprintf("beam_spectrum_%d", frame)
}
