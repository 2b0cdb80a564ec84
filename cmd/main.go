package main

import (
	"os"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

func main() {
	if err := newRootCommand().Execute(); err != nil {
		log.Error().Err(err).Msg("command failed")
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "metabolic-care",
		Short:         "Diabetes self-management backend",
		Long:          "Triage, 7-day meal plans, glucose logging and adherence tracking for people with diabetes.",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	cmd.AddCommand(newServeCommand())
	cmd.AddCommand(newTriageCommand())
	cmd.AddCommand(newPlanCommand())
	return cmd
}
