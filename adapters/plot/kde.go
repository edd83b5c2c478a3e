package plot

import (
	"math"
	"slices"

	"gonum.org/v1/gonum/stat"
	"gonum.org/v1/gonum/stat/distuv"
)

// kdeGridSize is the number of evaluation points along a violin
const kdeGridSize = 100

// density is a Gaussian kernel density estimate evaluated on a grid
type density struct {
	Y []float64 // evaluation points, ascending
	D []float64 // density at each point
}

// scottBandwidth returns std * n^(-1/5) using the sample standard deviation
func scottBandwidth(sample []float64) float64 {
	if len(sample) < 2 {
		return 0
	}
	return stat.StdDev(sample, nil) * math.Pow(float64(len(sample)), -0.2)
}

// estimateDensity evaluates the KDE from min-2bw to max+2bw. A zero
// bandwidth (one value, or all values equal) yields nil.
func estimateDensity(sample []float64) *density {
	bw := scottBandwidth(sample)
	if bw == 0 || math.IsNaN(bw) {
		return nil
	}

	lo := slices.Min(sample) - 2*bw
	hi := slices.Max(sample) + 2*bw
	step := (hi - lo) / float64(kdeGridSize-1)

	kernels := make([]distuv.Normal, len(sample))
	for i, x := range sample {
		kernels[i] = distuv.Normal{Mu: x, Sigma: bw}
	}

	d := &density{Y: make([]float64, kdeGridSize), D: make([]float64, kdeGridSize)}
	for i := range d.Y {
		y := lo + float64(i)*step
		var sum float64
		for _, k := range kernels {
			sum += k.Prob(y)
		}
		d.Y[i] = y
		d.D[i] = sum / float64(len(sample))
	}
	return d
}

// at linearly interpolates the density at y, zero outside the grid
func (d *density) at(y float64) float64 {
	n := len(d.Y)
	if n == 0 || y < d.Y[0] || y > d.Y[n-1] {
		return 0
	}
	i, found := slices.BinarySearch(d.Y, y)
	if found {
		return d.D[i]
	}
	t := (y - d.Y[i-1]) / (d.Y[i] - d.Y[i-1])
	return d.D[i-1] + t*(d.D[i]-d.D[i-1])
}

func (d *density) max() float64 {
	return slices.Max(d.D)
}
