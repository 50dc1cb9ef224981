package beam

import (
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"

	"github.com/phil-mansfield/lpadiag/lib/logger"
)

// Emittance returns the statistical emittance of the phase space (x, ux):
// the square root of the determinant of its covariance matrix. Every
// particle counts equally. w is only used to report how many particles carry
// weight; see WeightedEmittance for the weighted version.
//
// Empty input and undefined results (NaN) give an emittance of zero.
func Emittance(x, ux, w []float64) float64 {
	if len(x) != len(ux) {
		warn("emittance", ErrDegenerate)
		return 0
	} else if len(x) == 0 {
		return 0
	}

	nonZero := 0
	for i := range w {
		if w[i] != 0 { nonZero++ }
	}
	logger.WithComponent("beam").Debug("Computing emittance.",
		"particles", len(x), "weighted", nonZero)

	n := float64(len(x))
	meanX, meanUx := stat.Mean(x, nil), stat.Mean(ux, nil)
	cov := floats.Dot(x, ux)/n - meanX*meanUx

	return phaseSpaceArea(
		stat.PopVariance(x, nil), stat.PopVariance(ux, nil), cov,
	)
}

// WeightedEmittance is Emittance with every moment weighted by w.
func WeightedEmittance(x, ux, w []float64) float64 {
	if len(x) == 0 { return 0 }
	if len(x) != len(ux) || len(x) != len(w) {
		warn("weighted emittance", ErrDegenerate)
		return 0
	}

	sum := floats.Sum(w)
	if sum == 0 { return 0 }

	meanX, varX := stat.PopMeanVariance(x, w)
	meanUx, varUx := stat.PopMeanVariance(ux, w)
	cov := 0.0
	for i := range x {
		cov += w[i] * (x[i] - meanX) * (ux[i] - meanUx)
	}
	cov /= sum

	return phaseSpaceArea(varX, varUx, cov)
}

func phaseSpaceArea(varX, varUx, cov float64) float64 {
	m := mat.NewDense(2, 2, []float64{ varX, cov, cov, varUx })
	e := math.Sqrt(mat.Det(m))
	if math.IsNaN(e) { return 0 }
	return e
}
