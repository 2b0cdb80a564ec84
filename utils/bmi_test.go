package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCalculateBMI(t *testing.T) {
	bmi, err := CalculateBMI(180, 81)
	require.NoError(t, err)
	assert.InDelta(t, 25.0, bmi, 1e-9)

	_, err = CalculateBMI(0, 70)
	assert.ErrorIs(t, err, ErrBMIInput)
	_, err = CalculateBMI(260, 70)
	assert.ErrorIs(t, err, ErrBMIImplausible)
	_, err = CalculateBMI(170, 5)
	assert.ErrorIs(t, err, ErrBMIImplausible)
}

func TestBMICategory(t *testing.T) {
	for bmi, want := range map[float64]string{
		17:   "Underweight",
		18.5: "Normal weight",
		24.9: "Normal weight",
		25:   "Overweight",
		32:   "Obesity class I",
		39.9: "Obesity class II",
		45:   "Obesity class III",
	} {
		assert.Equal(t, want, BMICategory(bmi), bmi)
	}
}
