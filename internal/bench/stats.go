package bench

import "gonum.org/v1/gonum/stat"

// Stats summarizes a sample of run outcomes: best (per betterIsHigher),
// mean and standard deviation, computed with gonum/stat rather than the
// hand-rolled variance loop this package used to carry.
type Stats struct {
	N    int
	Best float64
	Mean float64
	Std  float64
}

// CalcStats computes Stats over values. higherIsBetter selects whether Best
// is the maximum (fitness) or the minimum (wall-clock time) of values.
func CalcStats(values []float64, higherIsBetter bool) Stats {
	s := Stats{N: len(values)}
	if s.N == 0 {
		return s
	}

	best := values[0]
	for _, v := range values {
		if higherIsBetter && v > best {
			best = v
		}
		if !higherIsBetter && v < best {
			best = v
		}
	}
	s.Best = best
	s.Mean = stat.Mean(values, nil)
	if s.N >= 2 {
		s.Std = stat.StdDev(values, nil)
	}
	return s
}
