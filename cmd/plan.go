package main

import (
	"encoding/json"
	"io"
	"math/rand/v2"

	"github.com/spf13/cobra"

	"metabolic-care/planner"
)

type planOptions struct {
	catalogFile string
	seed        uint64
	prefs       planner.Preferences
}

func newPlanCommand() *cobra.Command {
	opts := &planOptions{}
	cmd := &cobra.Command{
		Use:   "plan",
		Short: "Print a 7-day meal plan as JSON",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPlan(opts, cmd.OutOrStdout())
		},
	}
	f := cmd.Flags()
	f.StringVar(&opts.catalogFile, "catalog", "", "YAML meal catalog (defaults to the built-in bank)")
	f.Uint64Var(&opts.seed, "seed", 0, "random seed for a reproducible plan (0 picks at random)")
	f.BoolVar(&opts.prefs.PreferDesi, "desi", true, "prefer desi-style meals")
	f.BoolVar(&opts.prefs.VegOnly, "veg", false, "vegetarian-leaning meals only")
	f.BoolVar(&opts.prefs.HasHypertension, "hypertension", false, "prefer low-sodium meals")
	f.BoolVar(&opts.prefs.HasHighCholesterol, "high-cholesterol", false, "prefer low saturated fat meals")
	return cmd
}

func runPlan(opts *planOptions, w io.Writer) error {
	catalog, err := planner.LoadCatalog(opts.catalogFile)
	if err != nil {
		return err
	}
	var popts []planner.Option
	if opts.seed != 0 {
		popts = append(popts, planner.WithRand(rand.New(rand.NewPCG(opts.seed, opts.seed))))
	}
	p, err := planner.New(catalog, popts...)
	if err != nil {
		return err
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(map[string]any{
		"preferences": opts.prefs,
		"days":        p.GenerateWeek(opts.prefs),
	})
}
