package triage

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Thresholds holds every numeric cutoff the engine compares against.
// Glucose values are mg/dL, A1c is %, cholesterol is mg/dL.
type Thresholds struct {
	BPStage2Sys float64 `yaml:"bp_stage2_sys" json:"bp_stage2_sys"`
	BPStage2Dia float64 `yaml:"bp_stage2_dia" json:"bp_stage2_dia"`
	BPCrisisSys float64 `yaml:"bp_crisis_sys" json:"bp_crisis_sys"`
	BPCrisisDia float64 `yaml:"bp_crisis_dia" json:"bp_crisis_dia"`

	Hypo         float64 `yaml:"hypo" json:"hypo"`
	PremealHigh  float64 `yaml:"premeal_high" json:"premeal_high"`
	PostmealHigh float64 `yaml:"postmeal_high" json:"postmeal_high"`
	VeryHigh     float64 `yaml:"very_high" json:"very_high"`

	A1cGoal    float64 `yaml:"a1c_goal" json:"a1c_goal"`
	A1cCaution float64 `yaml:"a1c_caution" json:"a1c_caution"`
	A1cRed     float64 `yaml:"a1c_red" json:"a1c_red"`

	TCBorderline float64 `yaml:"tc_borderline" json:"tc_borderline"`
	TCHigh       float64 `yaml:"tc_high" json:"tc_high"`

	FastingStdAmber float64 `yaml:"fasting_std_amber" json:"fasting_std_amber"`
	FastingStdRed   float64 `yaml:"fasting_std_red" json:"fasting_std_red"`
	FastingRangeRed float64 `yaml:"fasting_range_red" json:"fasting_range_red"`
}

// DefaultThresholds returns the prototype routing cutoffs.
func DefaultThresholds() Thresholds {
	return Thresholds{
		BPStage2Sys: 140,
		BPStage2Dia: 90,
		BPCrisisSys: 180,
		BPCrisisDia: 120,

		Hypo:         70,
		PremealHigh:  130,
		PostmealHigh: 180,
		VeryHigh:     300,

		A1cGoal:    7.0,
		A1cCaution: 8.0,
		A1cRed:     9.0,

		TCBorderline: 200,
		TCHigh:       240,

		FastingStdAmber: 25.0,
		FastingStdRed:   45.0,
		FastingRangeRed: 120.0,
	}
}

// LoadThresholds reads a YAML override file. Keys missing from the file keep
// their default values. An empty path returns the defaults.
func LoadThresholds(path string) (Thresholds, error) {
	th := DefaultThresholds()
	if path == "" {
		return th, nil
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		return th, fmt.Errorf("read thresholds file: %w", err)
	}
	if err := yaml.Unmarshal(raw, &th); err != nil {
		return th, fmt.Errorf("parse thresholds file %s: %w", path, err)
	}
	if err := th.Validate(); err != nil {
		return th, fmt.Errorf("thresholds file %s: %w", path, err)
	}
	return th, nil
}

// Validate checks that every band is ordered the way the rules assume.
func (t Thresholds) Validate() error {
	switch {
	case t.BPStage2Sys <= 0 || t.BPCrisisSys < t.BPStage2Sys:
		return fmt.Errorf("systolic cutoffs out of order (stage2=%v crisis=%v)", t.BPStage2Sys, t.BPCrisisSys)
	case t.BPStage2Dia <= 0 || t.BPCrisisDia < t.BPStage2Dia:
		return fmt.Errorf("diastolic cutoffs out of order (stage2=%v crisis=%v)", t.BPStage2Dia, t.BPCrisisDia)
	case t.A1cGoal <= 0 || t.A1cCaution < t.A1cGoal || t.A1cRed < t.A1cCaution:
		return fmt.Errorf("a1c cutoffs out of order (goal=%v caution=%v red=%v)", t.A1cGoal, t.A1cCaution, t.A1cRed)
	case t.TCBorderline <= 0 || t.TCHigh < t.TCBorderline:
		return fmt.Errorf("cholesterol cutoffs out of order (borderline=%v high=%v)", t.TCBorderline, t.TCHigh)
	case t.Hypo <= 0 || t.VeryHigh <= t.Hypo:
		return fmt.Errorf("glucose cutoffs out of order (hypo=%v very_high=%v)", t.Hypo, t.VeryHigh)
	case t.FastingStdAmber <= 0 || t.FastingStdRed < t.FastingStdAmber:
		return fmt.Errorf("fasting std cutoffs out of order (amber=%v red=%v)", t.FastingStdAmber, t.FastingStdRed)
	}
	return nil
}
