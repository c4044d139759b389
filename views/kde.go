package views

import (
	"math"
	"sort"

	"gonum.org/v1/gonum/stat"

	"saudicars/dataset"
)

const maxBins = 100

// BinCount picks a histogram bin count the way numpy's "auto" rule does:
// the narrower of the Sturges and Freedman-Diaconis bin widths.
func BinCount(values []float64) int {
	n := len(values)
	if n < 2 {
		return 1
	}
	sorted := make([]float64, n)
	copy(sorted, values)
	sort.Float64s(sorted)

	span := sorted[n-1] - sorted[0]
	if span == 0 {
		return 1
	}

	width := span / (math.Log2(float64(n)) + 1)
	iqr := dataset.Quantile(sorted, 0.75) - dataset.Quantile(sorted, 0.25)
	if fd := 2 * iqr * math.Pow(float64(n), -1.0/3); fd > 0 && fd < width {
		width = fd
	}

	bins := int(math.Ceil(span / width))
	if bins < 1 {
		bins = 1
	}
	if bins > maxBins {
		bins = maxBins
	}
	return bins
}

// ScaledKDE evaluates a Gaussian kernel density estimate (Scott's
// bandwidth) on gridSize points spanning the data range, scaled to the
// counts of a histogram with the given bin count. It returns nil when the
// bandwidth is undefined.
func ScaledKDE(values []float64, bins, gridSize int) []Point {
	n := len(values)
	if n < 2 || bins < 1 || gridSize < 2 {
		return nil
	}
	std := stat.StdDev(values, nil)
	if std == 0 || math.IsNaN(std) {
		return nil
	}
	bw := std * math.Pow(float64(n), -0.2)

	lo, hi := values[0], values[0]
	for _, v := range values {
		lo = math.Min(lo, v)
		hi = math.Max(hi, v)
	}
	binWidth := (hi - lo) / float64(bins)
	step := (hi - lo) / float64(gridSize-1)

	norm := 1 / (float64(n) * bw * math.Sqrt(2*math.Pi))
	scale := float64(n) * binWidth

	out := make([]Point, gridSize)
	for i := range out {
		x := lo + float64(i)*step
		var sum float64
		for _, v := range values {
			z := (x - v) / bw
			sum += math.Exp(-0.5 * z * z)
		}
		out[i] = Point{X: x, Y: sum * norm * scale}
	}
	return out
}
