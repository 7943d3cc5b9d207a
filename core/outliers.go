package core

import (
	"math"
	"sort"
)

// Outlier detection parameters.
const (
	iqrMultiplier  = 1.5
	zScoreCutoff   = 3.0
	minOutlierSize = 4 // below this many points neither method is reliable
)

// detectOutliers flags suspicious sizes within a single lesion's measurement
// series. Values are flagged when they fall outside the interquartile fences
// or carry an extreme z-score. The returned slice parallels the input.
func detectOutliers(sizes []float64) []bool {
	flags := make([]bool, len(sizes))
	if len(sizes) < minOutlierSize {
		return flags
	}

	q1, q3 := quartiles(sizes)
	iqr := q3 - q1
	lower := q1 - iqrMultiplier*iqr
	upper := q3 + iqrMultiplier*iqr

	m := mean(sizes)
	sd := stddev(sizes, m)

	for i, v := range sizes {
		if v < lower || v > upper {
			flags[i] = true
			continue
		}
		if sd > 0 && math.Abs(v-m)/sd > zScoreCutoff {
			flags[i] = true
		}
	}
	return flags
}

// quartiles returns the first and third quartiles using linear interpolation
// between closest ranks.
func quartiles(vals []float64) (q1, q3 float64) {
	sorted := make([]float64, len(vals))
	copy(sorted, vals)
	sort.Float64s(sorted)
	return percentile(sorted, 0.25), percentile(sorted, 0.75)
}

// percentile computes the p-th percentile of an already sorted sample.
func percentile(sorted []float64, p float64) float64 {
	if len(sorted) == 0 {
		return 0
	}
	pos := p * float64(len(sorted)-1)
	lo := int(math.Floor(pos))
	hi := int(math.Ceil(pos))
	if lo == hi {
		return sorted[lo]
	}
	frac := pos - float64(lo)
	return sorted[lo]*(1-frac) + sorted[hi]*frac
}

func stddev(vals []float64, m float64) float64 {
	if len(vals) < 2 {
		return 0
	}
	var sum float64
	for _, v := range vals {
		d := v - m
		sum += d * d
	}
	return math.Sqrt(sum / float64(len(vals)-1))
}
