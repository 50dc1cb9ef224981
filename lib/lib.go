/*package lib contains the frame-level pipeline used by the lpadiag modes:
loading every species of a frame, selecting particles, and turning them into
diagnostics. The numeric work is done by lib/'s subpackages.
*/
package lib

import (
	"fmt"

	"github.com/phil-mansfield/lpadiag/lib/config"
	"github.com/phil-mansfield/lpadiag/lib/particles"
	"github.com/phil-mansfield/lpadiag/lib/snapshot"
)

// Version is the version of the software.
const Version = "0.1.0"

// Frame holds the selected particles of every species in a single frame.
type Frame struct {
	Index int
	Species []string
	Files []string
	Selections []*particles.Particles
}

// CollectParticles loads frame from every species' snapshot file and applies
// the configured gamma and region-of-interest cuts.
func CollectParticles(args *config.Args, frame int) (*Frame, error) {
	f := &Frame{ Index: frame, Species: args.Species }
	for _, species := range args.Species {
		file := args.Input.Expand(frame, species)
		snap, err := snapshot.Load(file, args.Groups...)
		if err != nil { return nil, err }

		sel, err := snap.Select(args.Gamma, args.ROI)
		if err != nil { return nil, err }

		f.Files = append(f.Files, file)
		f.Selections = append(f.Selections, sel)
	}
	return f, nil
}

// Len returns the total number of selected particles.
func (f *Frame) Len() int {
	n := 0
	for _, sel := range f.Selections { n += sel.Len() }
	return n
}

// PerSpecies returns the named column of each species.
func (f *Frame) PerSpecies(name string) ([][]float64, error) {
	out := make([][]float64, len(f.Selections))
	for i, sel := range f.Selections {
		x, ok := sel.Float64s(name)
		if !ok {
			return nil, fmt.Errorf("The column '%s' was not loaded from %s.",
				name, f.Files[i])
		}
		out[i] = x
	}
	return out, nil
}

// Combined returns the named column of every species concatenated together.
func (f *Frame) Combined(name string) ([]float64, error) {
	xs, err := f.PerSpecies(name)
	if err != nil { return nil, err }
	out := []float64{ }
	for _, x := range xs { out = append(out, x...) }
	return out, nil
}
