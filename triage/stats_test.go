package triage

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSampleStdDev(t *testing.T) {
	assert.Equal(t, 0.0, SampleStdDev(nil))
	assert.Equal(t, 0.0, SampleStdDev([]float64{}))
	assert.Equal(t, 0.0, SampleStdDev([]float64{123}))
	assert.Equal(t, 0.0, SampleStdDev([]float64{100, 100, 100}))
	assert.InDelta(t, 21.2132, SampleStdDev([]float64{80, 110}), 1e-4)
	assert.InDelta(t, 45.0925, SampleStdDev([]float64{60, 100, 150}), 1e-4)
}

func TestMeanAndRange(t *testing.T) {
	assert.Equal(t, 0.0, Mean(nil))
	assert.Equal(t, 0.0, Range(nil))
	assert.Equal(t, 95.0, Mean([]float64{80, 110}))
	assert.Equal(t, 30.0, Range([]float64{110, 80}))
	assert.Equal(t, 0.0, Range([]float64{42}))
}

func TestComputeFastingStats(t *testing.T) {
	st := ComputeFastingStats([]float64{90, 95, 260})
	assert.InDelta(t, 148.333, st.Mean, 1e-3)
	assert.InDelta(t, 96.738, st.StdDev, 1e-3)
	assert.Equal(t, 170.0, st.Range)

	assert.Equal(t, FastingStats{}, ComputeFastingStats(nil))
}
