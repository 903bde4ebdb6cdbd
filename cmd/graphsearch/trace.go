package main

import (
	"github.com/spf13/cobra"
)

func newTraceCmd(a *app) *cobra.Command {
	var (
		flags    searchFlags
		maxSteps int
	)
	cmd := &cobra.Command{
		Use:   "trace [problem]",
		Short: "Print the search one frontier extraction at a time",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			strategy, err := a.strategy(&flags)
			if err != nil {
				return err
			}
			r, err := a.loadRunner(&flags, args)
			if err != nil {
				return err
			}
			return r.trace(cmd.Context(), cmd.OutOrStdout(), strategy, maxSteps, a.searchOptions(&flags)...)
		},
	}
	flags.register(cmd, true)
	cmd.Flags().IntVar(&maxSteps, "max-steps", 0, "stop printing after this many steps (0 for all)")
	return cmd
}
