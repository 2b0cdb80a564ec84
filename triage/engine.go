package triage

const (
	FlagOtherMajor       = "Other major conditions selected → this prototype is not suitable. Please consult a clinician."
	FlagType1            = "Type 1 selected → this tool is supportive only; do not use for medication decisions."
	FlagBPCrisis         = "Blood pressure is in a severe range → seek urgent medical care."
	FlagBPStage2         = "Blood pressure is elevated (Stage 2 range) → clinician follow-up recommended."
	FlagBPMissing        = "Hypertension selected but BP not provided → proceed with caution."
	FlagTCHigh           = "Total cholesterol is high → heart-healthy plan + clinician follow-up recommended."
	FlagTCBorderline     = "Total cholesterol is borderline → heart-healthy plan recommended."
	FlagTCMissing        = "High cholesterol selected but value not provided → proceed with caution."
	FlagA1cRed           = "HbA1c is very high → clinician review recommended before using an app-based plan."
	FlagA1cCaution       = "HbA1c above typical target → proceed with caution + clinician follow-up."
	FlagA1cAboveGoal     = "HbA1c slightly above common target → focus on consistency and follow-up."
	FlagFastingVeryHigh  = "Very high fasting glucose recorded → seek medical advice, especially if unwell."
	FlagFastingLow       = "Low fasting glucose detected → be cautious and discuss with clinician."
	FlagVariabilityRed   = "Large variation in recent fasting readings → clinician evaluation recommended."
	FlagVariabilityAmber = "Recent fasting readings show variability or are above typical range → proceed with caution."
	FlagInsufficientData = "No A1c or recent fasting readings provided → proceed with caution."
)

// finding is one rule output. A stop finding ends evaluation with RED and
// discards every flag gathered so far.
type finding struct {
	tier Tier
	flag string
	stop bool
}

func note(flag string) finding  { return finding{tier: Green, flag: flag} }
func amber(flag string) finding { return finding{tier: Amber, flag: flag} }
func stop(flag string) finding  { return finding{tier: Red, flag: flag, stop: true} }

type input struct {
	flags  ProfileFlags
	vitals Vitals
	th     Thresholds
}

// rule returns its findings in the order they should be applied.
type rule func(in input) []finding

// Engine applies the ordered rules against one Thresholds value.
type Engine struct {
	th    Thresholds
	rules []rule
}

// NewEngine builds an engine over the given cutoffs.
func NewEngine(th Thresholds) *Engine {
	return &Engine{
		th: th,
		rules: []rule{
			hardStopRule,
			diabetesTypeRule,
			bloodPressureRule,
			cholesterolRule,
			glycemicRule,
		},
	}
}

// Thresholds returns the cutoffs the engine was built with.
func (e *Engine) Thresholds() Thresholds { return e.th }

// Evaluate runs every rule in order. The tier only moves up; the first stop
// finding returns RED with that single flag.
func (e *Engine) Evaluate(flags ProfileFlags, vitals Vitals) Result {
	in := input{flags: flags, vitals: vitals, th: e.th}
	res := Result{Tier: Green, Flags: []string{}}
	for _, r := range e.rules {
		for _, f := range r(in) {
			if f.stop {
				return Result{Tier: Red, Flags: []string{f.flag}}
			}
			if f.tier > res.Tier {
				res.Tier = f.tier
			}
			res.Flags = append(res.Flags, f.flag)
		}
	}
	return res
}

// Evaluate is a convenience wrapper for one-off evaluations.
func Evaluate(th Thresholds, flags ProfileFlags, vitals Vitals) Result {
	return NewEngine(th).Evaluate(flags, vitals)
}

func hardStopRule(in input) []finding {
	if in.flags.OtherMajorCondition {
		return []finding{stop(FlagOtherMajor)}
	}
	return nil
}

func diabetesTypeRule(in input) []finding {
	if in.flags.DiabetesType == Type1 {
		return []finding{note(FlagType1)}
	}
	return nil
}

func bloodPressureRule(in input) []finding {
	v, th := in.vitals, in.th
	both := v.Systolic > 0 && v.Diastolic > 0
	if !in.flags.HasHypertension && !both {
		return nil
	}
	if !both {
		return []finding{amber(FlagBPMissing)}
	}
	if v.Systolic > th.BPCrisisSys || v.Diastolic > th.BPCrisisDia {
		return []finding{stop(FlagBPCrisis)}
	}
	if v.Systolic >= th.BPStage2Sys || v.Diastolic >= th.BPStage2Dia {
		return []finding{amber(FlagBPStage2)}
	}
	return nil
}

func cholesterolRule(in input) []finding {
	tc := in.vitals.TotalCholesterol
	if !in.flags.HasHighCholesterol && tc <= 0 {
		return nil
	}
	switch {
	case tc <= 0:
		return []finding{amber(FlagTCMissing)}
	case tc >= in.th.TCHigh:
		return []finding{amber(FlagTCHigh)}
	case tc >= in.th.TCBorderline:
		return []finding{note(FlagTCBorderline)}
	}
	return nil
}

// glycemicRule prefers A1c over the fasting history.
func glycemicRule(in input) []finding {
	th := in.th
	if a1c := in.vitals.HbA1c; a1c > 0 {
		switch {
		case a1c >= th.A1cRed:
			return []finding{stop(FlagA1cRed)}
		case a1c >= th.A1cCaution:
			return []finding{amber(FlagA1cCaution)}
		case a1c > th.A1cGoal:
			return []finding{note(FlagA1cAboveGoal)}
		}
		return nil
	}

	fr := in.vitals.Fasting
	if len(fr) == 0 {
		return []finding{amber(FlagInsufficientData)}
	}

	var out []finding
	if anyAtLeast(fr, th.VeryHigh) {
		return []finding{stop(FlagFastingVeryHigh)}
	}
	if anyBelow(fr, th.Hypo) {
		out = append(out, amber(FlagFastingLow))
	}
	if len(fr) >= 2 {
		st := ComputeFastingStats(fr)
		if st.Range >= th.FastingRangeRed || st.StdDev >= th.FastingStdRed {
			return append(out, stop(FlagVariabilityRed))
		}
		if st.StdDev >= th.FastingStdAmber || anyAbove(fr, th.PremealHigh) {
			out = append(out, amber(FlagVariabilityAmber))
		}
	}
	return out
}

func anyAtLeast(xs []float64, cut float64) bool {
	for _, x := range xs {
		if x >= cut {
			return true
		}
	}
	return false
}

func anyAbove(xs []float64, cut float64) bool {
	for _, x := range xs {
		if x > cut {
			return true
		}
	}
	return false
}

func anyBelow(xs []float64, cut float64) bool {
	for _, x := range xs {
		if x < cut {
			return true
		}
	}
	return false
}
