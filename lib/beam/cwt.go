package beam

/* cwt.go locates peaks by finding ridge lines in the continuous wavelet
transform of a signal: a peak is a relative maximum which persists across a
range of wavelet widths and stands out above the small-width noise floor. */

import (
	"math"
	"sort"

	"gonum.org/v1/gonum/floats"
)

// ridgeLine is a chain of relative maxima in the CWT, one (or occasionally
// more) per row. gap counts the rows since the line was last extended.
type ridgeLine struct {
	rows, cols []int
	gap int
}

// ricker returns the Ricker ("Mexican hat") wavelet with width a sampled at
// points points centered on the middle of the array.
func ricker(points int, a float64) []float64 {
	amp := 2 / (math.Sqrt(3*a) * math.Pow(math.Pi, 0.25))
	wsq := a*a
	out := make([]float64, points)
	for i := range out {
		v := float64(i) - float64(points - 1)/2
		xsq := v*v
		out[i] = amp * (1 - xsq/wsq) * math.Exp(-xsq/(2*wsq))
	}
	return out
}

// convolveSame convolves x with kernel and returns the central len(x)
// elements of the full convolution. len(kernel) must not exceed len(x).
func convolveSame(x, kernel []float64) []float64 {
	n, m := len(x), len(kernel)
	out := make([]float64, n)
	rev := make([]float64, m)
	for j := range kernel { rev[j] = kernel[m - 1 - j] }

	off := (m - 1)/2
	for i := range out {
		// full[k] = sum_j x[k-j] kernel[j], with k = i + off.
		k := i + off
		jLo, jHi := k - (n - 1), k
		if jLo < 0 { jLo = 0 }
		if jHi > m - 1 { jHi = m - 1 }
		if jLo > jHi { continue }
		// x[k-jHi .. k-jLo] against kernel[jHi .. jLo], i.e. rev[m-1-jHi ..].
		out[i] = floats.Dot(x[k - jHi: k - jLo + 1],
			rev[m - 1 - jHi: m - jLo])
	}
	return out
}

// cwt returns the continuous wavelet transform of x using Ricker wavelets:
// row i is x convolved with a wavelet of width widths[i].
func cwt(x, widths []float64) [][]float64 {
	out := make([][]float64, len(widths))
	for i, w := range widths {
		points := int(10*w)
		if points > len(x) { points = len(x) }
		out[i] = convolveSame(x, ricker(points, w))
	}
	return out
}

// relativeMaxima flags the points which are strictly larger than both
// neighbors. The end points are compared against themselves, so they are
// never maxima.
func relativeMaxima(row []float64) []bool {
	n := len(row)
	out := make([]bool, n)
	for i := range row {
		lo, hi := i - 1, i + 1
		if lo < 0 { lo = 0 }
		if hi > n - 1 { hi = n - 1 }
		out[i] = row[i] > row[lo] && row[i] > row[hi]
	}
	return out
}

// identifyRidgeLines connects the relative maxima of each CWT row with the
// closest maxima in the wider row above it, starting from the widest row
// that has any maxima. Lines that go more than gapThresh rows without being
// extended are closed. Returned lines run in ascending row order.
func identifyRidgeLines(
	matr [][]float64, maxDistances []float64, gapThresh float64,
) []*ridgeLine {
	gapThresh = math.Ceil(gapThresh)

	maxCols := make([][]bool, len(matr))
	startRow := -1
	for i := range matr {
		maxCols[i] = relativeMaxima(matr[i])
		for _, ok := range maxCols[i] {
			if ok {
				startRow = i
				break
			}
		}
	}
	if startRow == -1 { return nil }

	lines := []*ridgeLine{ }
	for col, ok := range maxCols[startRow] {
		if !ok { continue }
		lines = append(lines, &ridgeLine{
			[]int{ startRow }, []int{ col }, 0,
		})
	}
	final := []*ridgeLine{ }

	for row := startRow - 1; row >= 0; row-- {
		for _, line := range lines { line.gap++ }

		prevCols := make([]int, len(lines))
		for i, line := range lines { prevCols[i] = line.cols[len(line.cols) - 1] }

		for col, ok := range maxCols[row] {
			if !ok { continue }

			var line *ridgeLine
			if len(prevCols) > 0 {
				closest, diff := 0, math.Inf(+1)
				for i := range prevCols {
					d := math.Abs(float64(col - prevCols[i]))
					if d < diff { closest, diff = i, d }
				}
				if diff <= maxDistances[row] { line = lines[closest] }
			}

			if line != nil {
				line.cols = append(line.cols, col)
				line.rows = append(line.rows, row)
				line.gap = 0
			} else {
				lines = append(lines, &ridgeLine{ []int{ row }, []int{ col }, 0 })
			}
		}

		for i := len(lines) - 1; i >= 0; i-- {
			if float64(lines[i].gap) > gapThresh {
				final = append(final, lines[i])
				lines = append(lines[:i], lines[i+1:]...)
			}
		}
	}

	out := append(final, lines...)
	for _, line := range out {
		reverseInts(line.rows)
		reverseInts(line.cols)
	}
	return out
}

func reverseInts(x []int) {
	for i, j := 0, len(x) - 1; i < j; i, j = i + 1, j - 1 {
		x[i], x[j] = x[j], x[i]
	}
}

// percentile returns the p-th percentile of x, linearly interpolating
// between the two closest ranks.
func percentile(x []float64, p float64) float64 {
	sorted := append([]float64{ }, x...)
	sort.Float64s(sorted)

	idx := p/100 * float64(len(sorted) - 1)
	i := int(math.Floor(idx))
	if i + 1 >= len(sorted) { return sorted[len(sorted) - 1] }
	frac := idx - float64(i)
	return sorted[i] + (sorted[i+1] - sorted[i])*frac
}

// filterRidgeLines keeps ridge lines that are at least minLength rows long
// and whose smallest-width response exceeds minSNR times the local noise.
// The noise at each point is the noisePerc percentile of the first CWT row in
// a window of windowSize points around it.
func filterRidgeLines(
	matr [][]float64, lines []*ridgeLine,
	minLength, windowSize int, minSNR, noisePerc float64,
) []*ridgeLine {
	rowOne := matr[0]
	n := len(rowOne)
	hf, odd := windowSize/2, windowSize%2

	noises := make([]float64, n)
	for i := range rowOne {
		start, end := i - hf, i + hf + odd
		if start < 0 { start = 0 }
		if end > n { end = n }
		noises[i] = percentile(rowOne[start: end], noisePerc)
	}

	out := []*ridgeLine{ }
	for _, line := range lines {
		if len(line.rows) < minLength { continue }
		row, col := line.rows[0], line.cols[0]
		snr := math.Abs(matr[row][col] / noises[col])
		if snr < minSNR { continue }
		out = append(out, line)
	}
	return out
}

// findPeaksCWT returns the sorted indices of peaks in x which have widths
// in the range covered by widths.
func findPeaksCWT(x, widths []float64) []int {
	maxDistances := make([]float64, len(widths))
	for i := range widths { maxDistances[i] = widths[i]/4 }
	gapThresh := math.Ceil(widths[0])

	matr := cwt(x, widths)
	lines := identifyRidgeLines(matr, maxDistances, gapThresh)

	minLength := int(math.Ceil(float64(len(widths))/4))
	windowSize := int(math.Ceil(float64(len(x))/20))
	lines = filterRidgeLines(matr, lines, minLength, windowSize, 1, 10)

	peaks := make([]int, len(lines))
	for i := range lines { peaks[i] = lines[i].cols[0] }
	sort.Ints(peaks)
	return peaks
}
