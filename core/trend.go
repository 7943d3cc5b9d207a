package core

import (
	"math"

	"github.com/lesiontrack/lesiontrack/schema"
)

// computeTrend classifies the growth trend of a lesion from its chronologically
// sorted measurements. It returns the direction alongside the Pearson
// correlation between exam date and size, and the least-squares slope in
// centimeters per day.
func computeTrend(group []schema.Measurement) (schema.TrendDirection, float64, float64) {
	if len(group) < 2 {
		return schema.TrendInsufficient, 0, 0
	}

	xs := make([]float64, len(group))
	ys := make([]float64, len(group))
	base := group[0].ExamDate
	for i, rec := range group {
		xs[i] = rec.ExamDate.Sub(base).Hours() / 24.0
		ys[i] = rec.SizeCM
	}

	corr := pearsonCorrelation(xs, ys)
	slope := leastSquaresSlope(xs, ys)

	switch {
	case math.Abs(corr) < schema.CorrelationCutoff:
		return schema.TrendUnclear, corr, slope
	case corr > schema.CorrelationCutoff:
		return schema.TrendGrowth, corr, slope
	default:
		return schema.TrendReduction, corr, slope
	}
}

// pearsonCorrelation computes the Pearson correlation coefficient of two
// equally sized samples. Degenerate (zero variance) samples yield 0.
func pearsonCorrelation(xs, ys []float64) float64 {
	meanX, meanY := mean(xs), mean(ys)

	var cov, varX, varY float64
	for i := range xs {
		dx := xs[i] - meanX
		dy := ys[i] - meanY
		cov += dx * dy
		varX += dx * dx
		varY += dy * dy
	}

	denom := math.Sqrt(varX * varY)
	if denom == 0 {
		return 0
	}
	return cov / denom
}

// leastSquaresSlope computes the ordinary least squares slope of ys over xs.
// A degenerate x sample (all equal) yields 0.
func leastSquaresSlope(xs, ys []float64) float64 {
	meanX, meanY := mean(xs), mean(ys)

	var num, denom float64
	for i := range xs {
		dx := xs[i] - meanX
		num += dx * (ys[i] - meanY)
		denom += dx * dx
	}
	if denom == 0 {
		return 0
	}
	return num / denom
}

func mean(vals []float64) float64 {
	sum := 0.0
	for _, v := range vals {
		sum += v
	}
	return sum / float64(len(vals))
}
