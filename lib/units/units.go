/*package units contains the unit conversions and small interpolation helpers
shared by the beam diagnostics: Lorentz factor to kinetic energy, macro-particle
weight to charge, and the crossing search used by the energy-spread
calculation.
*/
package units

import (
	"errors"
	"fmt"
)

const (
	// ElementaryCharge is the charge of a single electron in Coulombs.
	ElementaryCharge = 1.602176634e-19
	// ElectronRestEnergy is m_e c^2 in MeV.
	ElectronRestEnergy = 0.51099895000
)

var (
	// ErrNoCrossing is returned when a curve never drops to the requested
	// level on one side of its peak.
	ErrNoCrossing = errors.New("curve does not cross the requested level")
	// ErrFlat is returned when an interpolation bracket has zero height.
	ErrFlat = errors.New("interpolation bracket is flat")
)

// GammaToEnergy converts Lorentz factors to kinetic energies in MeV.
func GammaToEnergy(gamma []float64) []float64 {
	out := make([]float64, len(gamma))
	for i := range gamma {
		out[i] = (gamma[i] - 1)*ElectronRestEnergy
	}
	return out
}

// WeightToCharge converts macro-particle weights to the physical charge, in
// Coulombs, that each macro-particle carries.
func WeightToCharge(w []float64) []float64 {
	out := make([]float64, len(w))
	for i := range w {
		out[i] = w[i]*ElementaryCharge
	}
	return out
}

// LinearCrossing returns the x value at which the line through (x1, y1) and
// (x2, y2) reaches y.
func LinearCrossing(y1, y2, x1, x2, y float64) (float64, error) {
	if y1 == y2 {
		return 0, fmt.Errorf("%w: both ends of the bracket [%g, %g] have " +
			"height %g.", ErrFlat, x1, x2, y1)
	}
	return x1 + (y - y1)*(x2 - x1)/(y2 - y1), nil
}

// Bracket is a pair of neighbouring indices, Lo < Hi, whose values straddle
// a level.
type Bracket struct {
	Lo, Hi int
}

// HalfHeightBrackets walks outwards from y[peak] and returns the first bracket
// on each side where y drops to level or below. The left bracket's Lo index
// and the right bracket's Hi index are the first points at or below level.
func HalfHeightBrackets(
	y []float64, peak int, level float64,
) (left, right Bracket, err error) {
	if peak < 0 || peak >= len(y) {
		return left, right, fmt.Errorf("Peak index %d is outside of an " +
			"array of length %d.", peak, len(y))
	}

	lo := -1
	for i := peak - 1; i >= 0; i-- {
		if y[i] <= level {
			lo = i
			break
		}
	}
	if lo == -1 {
		return left, right, fmt.Errorf("%w: no point left of index %d is " +
			"at or below %g.", ErrNoCrossing, peak, level)
	}

	hi := -1
	for i := peak + 1; i < len(y); i++ {
		if y[i] <= level {
			hi = i
			break
		}
	}
	if hi == -1 {
		return left, right, fmt.Errorf("%w: no point right of index %d is " +
			"at or below %g.", ErrNoCrossing, peak, level)
	}

	return Bracket{lo, lo + 1}, Bracket{hi - 1, hi}, nil
}
