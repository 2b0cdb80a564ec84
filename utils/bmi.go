package utils

import "errors"

var (
	ErrBMIInput       = errors.New("height and weight must be positive")
	ErrBMIImplausible = errors.New("height/weight out of plausible range")
)

// CalculateBMI expects height in centimeters and weight in kilograms. The
// result is informational and never feeds triage.
func CalculateBMI(heightCm, weightKg float64) (float64, error) {
	if heightCm <= 0 || weightKg <= 0 {
		return 0, ErrBMIInput
	}
	if heightCm < 50 || heightCm > 250 || weightKg < 10 || weightKg > 400 {
		return 0, ErrBMIImplausible
	}

	m := heightCm / 100.0
	return weightKg / (m * m), nil
}

// BMICategory uses the WHO adult bands.
func BMICategory(bmi float64) string {
	switch {
	case bmi < 18.5:
		return "Underweight"
	case bmi < 25.0:
		return "Normal weight"
	case bmi < 30.0:
		return "Overweight"
	case bmi < 35.0:
		return "Obesity class I"
	case bmi < 40.0:
		return "Obesity class II"
	default:
		return "Obesity class III"
	}
}
