package triage

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEvaluate(t *testing.T) {
	th := DefaultThresholds()

	tests := []struct {
		name      string
		flags     ProfileFlags
		vitals    Vitals
		wantTier  Tier
		wantFlags []string
	}{
		{
			name:      "other major condition overrides everything",
			flags:     ProfileFlags{DiabetesType: Type1, HasHypertension: true, OtherMajorCondition: true},
			vitals:    Vitals{Systolic: 200, Diastolic: 130, HbA1c: 12},
			wantTier:  Red,
			wantFlags: []string{FlagOtherMajor},
		},
		{
			name:      "type 1 is informational only",
			flags:     ProfileFlags{DiabetesType: Type1},
			vitals:    Vitals{HbA1c: 6.5},
			wantTier:  Green,
			wantFlags: []string{FlagType1},
		},
		{
			name:      "systolic crisis stops before cholesterol and glycemic rules",
			flags:     ProfileFlags{DiabetesType: Type1, HasHighCholesterol: true},
			vitals:    Vitals{Systolic: 185, Diastolic: 80, HbA1c: 8.5, TotalCholesterol: 250},
			wantTier:  Red,
			wantFlags: []string{FlagBPCrisis},
		},
		{
			name:      "diastolic crisis",
			vitals:    Vitals{Systolic: 120, Diastolic: 121, HbA1c: 6},
			wantTier:  Red,
			wantFlags: []string{FlagBPCrisis},
		},
		{
			name:      "crisis cutoffs are exclusive",
			vitals:    Vitals{Systolic: 180, Diastolic: 120},
			wantTier:  Amber,
			wantFlags: []string{FlagBPStage2, FlagInsufficientData},
		},
		{
			name:      "stage 2 diastolic",
			vitals:    Vitals{Systolic: 120, Diastolic: 90, HbA1c: 6},
			wantTier:  Amber,
			wantFlags: []string{FlagBPStage2},
		},
		{
			name:      "hypertension selected without values",
			flags:     ProfileFlags{HasHypertension: true},
			vitals:    Vitals{HbA1c: 6},
			wantTier:  Amber,
			wantFlags: []string{FlagBPMissing},
		},
		{
			name:      "hypertension selected with only systolic",
			flags:     ProfileFlags{HasHypertension: true},
			vitals:    Vitals{Systolic: 150, HbA1c: 6},
			wantTier:  Amber,
			wantFlags: []string{FlagBPMissing},
		},
		{
			name:      "single bp value without the flag is not evaluated",
			vitals:    Vitals{Systolic: 190, HbA1c: 6},
			wantTier:  Green,
			wantFlags: []string{},
		},
		{
			name:      "normal bp with the flag adds nothing",
			flags:     ProfileFlags{HasHypertension: true},
			vitals:    Vitals{Systolic: 130, Diastolic: 80, HbA1c: 6},
			wantTier:  Green,
			wantFlags: []string{},
		},
		{
			name:      "borderline cholesterol is a note",
			vitals:    Vitals{TotalCholesterol: 210, HbA1c: 6},
			wantTier:  Green,
			wantFlags: []string{FlagTCBorderline},
		},
		{
			name:      "high cholesterol raises to amber",
			vitals:    Vitals{TotalCholesterol: 240, HbA1c: 6},
			wantTier:  Amber,
			wantFlags: []string{FlagTCHigh},
		},
		{
			name:      "cholesterol selected without value",
			flags:     ProfileFlags{HasHighCholesterol: true},
			vitals:    Vitals{HbA1c: 6},
			wantTier:  Amber,
			wantFlags: []string{FlagTCMissing},
		},
		{
			name:      "a1c red is a single flag",
			flags:     ProfileFlags{DiabetesType: Type1, HasHypertension: true},
			vitals:    Vitals{HbA1c: 9.5},
			wantTier:  Red,
			wantFlags: []string{FlagA1cRed},
		},
		{
			name:      "a1c at caution cutoff",
			vitals:    Vitals{HbA1c: 8.0},
			wantTier:  Amber,
			wantFlags: []string{FlagA1cCaution},
		},
		{
			name:      "a1c at goal adds nothing",
			vitals:    Vitals{HbA1c: 7.0},
			wantTier:  Green,
			wantFlags: []string{},
		},
		{
			name:      "a1c just above goal",
			vitals:    Vitals{HbA1c: 7.1},
			wantTier:  Green,
			wantFlags: []string{FlagA1cAboveGoal},
		},
		{
			name:      "a1c is preferred over fasting readings",
			vitals:    Vitals{HbA1c: 6.2, Fasting: []float64{50, 350}},
			wantTier:  Green,
			wantFlags: []string{},
		},
		{
			name:      "fasting reading at very high cutoff",
			vitals:    Vitals{Fasting: []float64{90, 95, 300}},
			wantTier:  Red,
			wantFlags: []string{FlagFastingVeryHigh},
		},
		{
			name:      "260 is not very high but the swing is",
			vitals:    Vitals{Fasting: []float64{90, 95, 260}},
			wantTier:  Red,
			wantFlags: []string{FlagVariabilityRed},
		},
		{
			name:      "stable in-range readings add nothing",
			vitals:    Vitals{Fasting: []float64{80, 110}},
			wantTier:  Green,
			wantFlags: []string{},
		},
		{
			name:      "single low reading",
			vitals:    Vitals{Fasting: []float64{65}},
			wantTier:  Amber,
			wantFlags: []string{FlagFastingLow},
		},
		{
			name:      "low reading with small spread",
			vitals:    Vitals{Fasting: []float64{65, 80}},
			wantTier:  Amber,
			wantFlags: []string{FlagFastingLow},
		},
		{
			name:      "std above amber cutoff",
			vitals:    Vitals{Fasting: []float64{100, 140}},
			wantTier:  Amber,
			wantFlags: []string{FlagVariabilityAmber},
		},
		{
			name:      "stable but above premeal range",
			vitals:    Vitals{Fasting: []float64{131, 135}},
			wantTier:  Amber,
			wantFlags: []string{FlagVariabilityAmber},
		},
		{
			name:      "variability red discards the earlier low flag",
			flags:     ProfileFlags{DiabetesType: Type2},
			vitals:    Vitals{Fasting: []float64{60, 100, 150}},
			wantTier:  Red,
			wantFlags: []string{FlagVariabilityRed},
		},
		{
			name:      "single high-normal reading skips variability",
			vitals:    Vitals{Fasting: []float64{150}},
			wantTier:  Green,
			wantFlags: []string{},
		},
		{
			name:      "no glycemic data",
			wantTier:  Amber,
			wantFlags: []string{FlagInsufficientData},
		},
		{
			name:     "flags keep rule order",
			flags:    ProfileFlags{DiabetesType: Type1, HasHypertension: true},
			vitals:   Vitals{TotalCholesterol: 205, HbA1c: 7.5},
			wantTier: Amber,
			wantFlags: []string{
				FlagType1,
				FlagBPMissing,
				FlagTCBorderline,
				FlagA1cAboveGoal,
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Evaluate(th, tt.flags, tt.vitals)
			assert.Equal(t, tt.wantTier, got.Tier)
			assert.Equal(t, tt.wantFlags, got.Flags)
		})
	}
}

func TestEvaluate_OtherMajorAlwaysSingleRed(t *testing.T) {
	e := NewEngine(DefaultThresholds())
	for _, v := range vitalsGrid() {
		for _, f := range flagsGrid() {
			f.OtherMajorCondition = true
			got := e.Evaluate(f, v)
			require.Equal(t, Red, got.Tier)
			require.Equal(t, []string{FlagOtherMajor}, got.Flags)
		}
	}
}

func TestEvaluate_BPCrisisTerminates(t *testing.T) {
	e := NewEngine(DefaultThresholds())
	for _, v := range vitalsGrid() {
		v.Systolic, v.Diastolic = 181, 85
		for _, f := range flagsGrid() {
			got := e.Evaluate(f, v)
			require.Equal(t, Red, got.Tier)
			require.Equal(t, []string{FlagBPCrisis}, got.Flags)
		}
	}
}

// The glycemic rule runs last; whatever it finds can only keep or raise the
// tier reached by the blood pressure and cholesterol rules.
func TestEvaluate_TierNeverDecreases(t *testing.T) {
	e := NewEngine(DefaultThresholds())
	for _, f := range flagsGrid() {
		for _, v := range vitalsGrid() {
			base := e.Evaluate(f, Vitals{Systolic: v.Systolic, Diastolic: v.Diastolic, TotalCholesterol: v.TotalCholesterol, HbA1c: 6})
			full := e.Evaluate(f, v)
			assert.GreaterOrEqual(t, int(full.Tier), int(base.Tier), "flags=%+v vitals=%+v", f, v)
			if full.Tier == Red {
				assert.Len(t, full.Flags, 1)
			}
		}
	}
}

func TestEngine_CustomThresholds(t *testing.T) {
	th := DefaultThresholds()
	th.A1cRed = 10
	got := NewEngine(th).Evaluate(ProfileFlags{}, Vitals{HbA1c: 9.5})
	assert.Equal(t, Amber, got.Tier)
	assert.Equal(t, []string{FlagA1cCaution}, got.Flags)
}

func TestTier_JSON(t *testing.T) {
	b, err := json.Marshal(Result{Tier: Amber, Flags: []string{"x"}})
	require.NoError(t, err)
	assert.JSONEq(t, `{"tier":"AMBER","flags":["x"]}`, string(b))

	var r Result
	require.NoError(t, json.Unmarshal([]byte(`{"tier":"red","flags":[]}`), &r))
	assert.Equal(t, Red, r.Tier)
	assert.True(t, r.Blocked())

	assert.Error(t, json.Unmarshal([]byte(`{"tier":"PURPLE"}`), &r))
}

func TestTier_Scan(t *testing.T) {
	var tier Tier
	require.NoError(t, tier.Scan([]byte("AMBER")))
	assert.Equal(t, Amber, tier)
	require.NoError(t, tier.Scan(nil))
	assert.Equal(t, Green, tier)
	assert.Error(t, tier.Scan(42))

	v, err := Red.Value()
	require.NoError(t, err)
	assert.Equal(t, "RED", v)
}

func TestParseDiabetesType(t *testing.T) {
	assert.Equal(t, Type1, ParseDiabetesType("Type 1"))
	assert.Equal(t, Type1, ParseDiabetesType(" type1 "))
	assert.Equal(t, Type2, ParseDiabetesType("TYPE 2"))
	assert.Equal(t, Unsure, ParseDiabetesType("Not sure"))
	assert.Equal(t, Unsure, ParseDiabetesType(""))
}

func flagsGrid() []ProfileFlags {
	var out []ProfileFlags
	for _, dt := range []DiabetesType{Type1, Type2, Unsure} {
		for _, ht := range []bool{false, true} {
			for _, hc := range []bool{false, true} {
				out = append(out, ProfileFlags{DiabetesType: dt, HasHypertension: ht, HasHighCholesterol: hc})
			}
		}
	}
	return out
}

func vitalsGrid() []Vitals {
	var out []Vitals
	bps := [][2]float64{{0, 0}, {120, 80}, {145, 85}, {150, 95}}
	tcs := []float64{0, 190, 220, 260}
	a1cs := []float64{0, 6.5, 7.5, 8.5}
	fastings := [][]float64{nil, {65}, {100, 140}, {131, 135}, {80, 110, 120}}
	for _, bp := range bps {
		for _, tc := range tcs {
			for _, a := range a1cs {
				for _, fr := range fastings {
					out = append(out, Vitals{Systolic: bp[0], Diastolic: bp[1], TotalCholesterol: tc, HbA1c: a, Fasting: fr})
				}
			}
		}
	}
	return out
}
