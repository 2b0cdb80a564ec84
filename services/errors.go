package services

import (
	"errors"
	"fmt"
)

var (
	ErrValidation      = errors.New("invalid input")
	ErrProfileRequired = errors.New("create your profile first")
	ErrTriageBlocked   = errors.New("disabled due to RED triage; please seek clinician evaluation")
	ErrPlanNotFound    = errors.New("no meal plan generated yet")
	ErrInvalidDay      = errors.New("day must be between 1 and 7")
)

func validationf(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrValidation, fmt.Sprintf(format, args...))
}
