package snapshot

import (
	"fmt"
	"math"

	"github.com/phil-mansfield/lpadiag/lib/particles"
)

// Range is an open interval (Lo, Hi). A Range without an upper bound only
// requires values to be above Lo.
type Range struct {
	Lo, Hi float64
}

// Above returns the range (lo, +inf).
func Above(lo float64) *Range { return &Range{ lo, math.Inf(+1) } }

// Between returns the range (lo, hi).
func Between(lo, hi float64) *Range { return &Range{ lo, hi } }

// Contains returns true if lo < v < hi.
func (r *Range) Contains(v float64) bool { return r.Lo < v && v < r.Hi }

func (r *Range) String() string {
	if math.IsInf(r.Hi, +1) { return fmt.Sprintf("(%g, inf)", r.Lo) }
	return fmt.Sprintf("(%g, %g)", r.Lo, r.Hi)
}

// Select returns the particles whose gamma lies in the gamma range and whose
// z position lies in the roi range. A nil range does not filter. The result
// is in ascending particle order and does not share memory with s.
func (s *Snapshot) Select(gamma, roi *Range) (*particles.Particles, error) {
	if gamma != nil && !s.loaded[Momentum] {
		return nil, fmt.Errorf("%w: %s must be loaded with the %s group to " +
			"filter on gamma.", ErrNotLoaded, s.fileName, Momentum)
	} else if roi != nil && !s.loaded[Position] {
		return nil, fmt.Errorf("%w: %s must be loaded with the %s group to " +
			"filter on position.", ErrNotLoaded, s.fileName, Position)
	}

	g, z := s.cols["gamma"], s.cols["z"]
	idx := make([]int, 0, s.Len())
	for i := 0; i < s.Len(); i++ {
		if gamma != nil && !gamma.Contains(g[i]) { continue }
		if roi != nil && !roi.Contains(z[i]) { continue }
		idx = append(idx, i)
	}

	return s.FilterByIndices(idx)
}
