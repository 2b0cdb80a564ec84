package triage

import "math"

// FastingStats summarises up to three recent fasting readings.
type FastingStats struct {
	Mean   float64 `json:"mean"`
	StdDev float64 `json:"std_dev"`
	Range  float64 `json:"range"`
}

// ComputeFastingStats returns mean, sample standard deviation and range.
func ComputeFastingStats(readings []float64) FastingStats {
	return FastingStats{
		Mean:   Mean(readings),
		StdDev: SampleStdDev(readings),
		Range:  Range(readings),
	}
}

// Mean returns 0 for an empty slice.
func Mean(xs []float64) float64 {
	if len(xs) == 0 {
		return 0
	}
	var sum float64
	for _, x := range xs {
		sum += x
	}
	return sum / float64(len(xs))
}

// SampleStdDev uses the n-1 denominator and is 0 below two samples.
func SampleStdDev(xs []float64) float64 {
	if len(xs) < 2 {
		return 0
	}
	m := Mean(xs)
	var ss float64
	for _, x := range xs {
		d := x - m
		ss += d * d
	}
	return math.Sqrt(ss / float64(len(xs)-1))
}

// Range is max-min, 0 for an empty slice.
func Range(xs []float64) float64 {
	if len(xs) == 0 {
		return 0
	}
	lo, hi := xs[0], xs[0]
	for _, x := range xs[1:] {
		if x < lo {
			lo = x
		}
		if x > hi {
			hi = x
		}
	}
	return hi - lo
}
