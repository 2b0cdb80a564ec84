package main

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"metabolic-care/triage"
)

type triageOptions struct {
	thresholdsFile string
	format         string

	diabetesType    string
	hypertension    bool
	highCholesterol bool
	otherMajor      bool

	systolic, diastolic, a1c, tc float64
	fasting                      []float64
}

func newTriageCommand() *cobra.Command {
	opts := &triageOptions{}
	cmd := &cobra.Command{
		Use:   "triage",
		Short: "Classify a profile into GREEN, AMBER or RED",
		Example: `  metabolic-care triage --type "Type 2" --a1c 8.2
  metabolic-care triage --hypertension --sys 150 --dia 92 --fasting 90,140,210`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTriage(opts, cmd.OutOrStdout())
		},
	}
	f := cmd.Flags()
	f.StringVar(&opts.thresholdsFile, "thresholds", "", "YAML file overriding the default cutoffs")
	f.StringVar(&opts.format, "format", "text", "output format (json|text)")
	f.StringVar(&opts.diabetesType, "type", "Type 2", `diabetes type ("Type 1", "Type 2", "Not sure")`)
	f.BoolVar(&opts.hypertension, "hypertension", false, "hypertension diagnosed")
	f.BoolVar(&opts.highCholesterol, "high-cholesterol", false, "high cholesterol diagnosed")
	f.BoolVar(&opts.otherMajor, "other-major", false, "other major condition (kidney, heart, pregnancy, ...)")
	f.Float64Var(&opts.systolic, "sys", 0, "systolic blood pressure, mmHg")
	f.Float64Var(&opts.diastolic, "dia", 0, "diastolic blood pressure, mmHg")
	f.Float64Var(&opts.a1c, "a1c", 0, "HbA1c, %")
	f.Float64Var(&opts.tc, "tc", 0, "total cholesterol, mg/dL")
	f.Float64SliceVar(&opts.fasting, "fasting", nil, "up to 3 recent fasting readings, mg/dL")
	return cmd
}

func runTriage(opts *triageOptions, w io.Writer) error {
	th, err := triage.LoadThresholds(opts.thresholdsFile)
	if err != nil {
		return err
	}

	var fasting []float64
	for _, v := range opts.fasting {
		if v > 0 && len(fasting) < 3 {
			fasting = append(fasting, v)
		}
	}
	res := triage.Evaluate(th,
		triage.ProfileFlags{
			DiabetesType:        triage.ParseDiabetesType(opts.diabetesType),
			HasHypertension:     opts.hypertension,
			HasHighCholesterol:  opts.highCholesterol,
			OtherMajorCondition: opts.otherMajor,
		},
		triage.Vitals{
			Systolic:         opts.systolic,
			Diastolic:        opts.diastolic,
			HbA1c:            opts.a1c,
			TotalCholesterol: opts.tc,
			Fasting:          fasting,
		},
	)

	switch opts.format {
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(res)
	case "text":
		fmt.Fprintf(w, "Tier: %s\n", res.Tier)
		for _, f := range res.Flags {
			fmt.Fprintf(w, "- %s\n", f)
		}
		return nil
	default:
		return fmt.Errorf("invalid format %q: must be json or text", opts.format)
	}
}
