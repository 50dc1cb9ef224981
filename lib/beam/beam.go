/*package beam computes diagnostics of a selected electron beam: total
charge, the energy spectrum, the location of spectral peaks, the energy spread
around a peak, and the transverse emittance.

None of these functions panic when given empty or degenerate input. Instead
they return zero values (or an empty Spectrum) along with one of the errors
below, and log a warning.
*/
package beam

import (
	"errors"

	"gonum.org/v1/gonum/floats"

	"github.com/phil-mansfield/lpadiag/lib/logger"
	"github.com/phil-mansfield/lpadiag/lib/units"
)

var (
	// ErrEmptyInput is returned when there are no particles or species to
	// work with.
	ErrEmptyInput = errors.New("empty input")
	// ErrDegenerate is returned when the input is non-empty but no
	// meaningful value can be computed from it, such as a zero-width
	// energy range or a division by zero.
	ErrDegenerate = errors.New("numerically degenerate input")
	// ErrNoPeak is returned by FindPeaks when no ridge line survives
	// filtering.
	ErrNoPeak = errors.New("no peak found")
)

// warn logs a degraded result and passes err through.
func warn(op string, err error) error {
	logger.WithComponent("beam").Warn(err.Error(), "op", op)
	return err
}

// Charge returns the total charge, in Coulombs, of macro-particles with
// weights w.
func Charge(w []float64) float64 {
	if len(w) == 0 { return 0 }
	return floats.Sum(units.WeightToCharge(w))
}
