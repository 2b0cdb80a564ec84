package services

import "math"

func round2(v float64) float64 { return math.Round(v*100) / 100 }

func pct(part, total int) float64 {
	if total <= 0 {
		return 0
	}
	return round2(float64(part) / float64(total) * 100.0)
}
