package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"

	"github.com/pdrpinto/graphsearch"
	"github.com/pdrpinto/graphsearch/metrics"
)

func newSolveCmd(a *app) *cobra.Command {
	var (
		flags       searchFlags
		request     solveRequest
		metricsFile string
	)
	cmd := &cobra.Command{
		Use:   "solve [problem]",
		Short: "Run one strategy and print the plan",
		Long: `Loads a maze layout or a YAML graph, runs the configured strategy and
prints the plan, its cost and the search counters.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			strategy, err := a.strategy(&flags)
			if err != nil {
				return err
			}
			r, err := a.loadRunner(&flags, args)
			if err != nil {
				return err
			}

			registry := prometheus.NewRegistry()
			recorder, err := metrics.NewRecorder(registry)
			if err != nil {
				return err
			}

			s, err := r.solve(cmd.Context(), strategy, request,
				a.searchOptions(&flags, graphsearch.WithHooks(recorder.Hooks()))...)
			if err != nil {
				return err
			}
			printSummary(cmd.OutOrStdout(), s)

			if metricsFile != "" {
				if err := prometheus.WriteToTextfile(metricsFile, registry); err != nil {
					return fmt.Errorf("failed to write metrics: %w", err)
				}
			}
			return s.Err
		},
	}
	flags.register(cmd, true)
	cmd.Flags().BoolVar(&request.validate, "validate", false, "replay the plan against the problem")
	cmd.Flags().BoolVar(&request.render, "render", false, "draw the plan on the maze (grid problems)")
	cmd.Flags().StringVar(&metricsFile, "metrics-file", "", "write Prometheus metrics to this file after the search")
	return cmd
}

func printSummary(w io.Writer, s summary) {
	fmt.Fprintf(w, "strategy:  %s\n", s.Strategy)
	if s.Found {
		fmt.Fprintf(w, "plan:      %s\n", strings.Join(s.Plan, " "))
		fmt.Fprintf(w, "length:    %d\n", len(s.Plan))
		fmt.Fprintf(w, "cost:      %g\n", s.Cost)
	} else {
		fmt.Fprintf(w, "plan:      none (%v)\n", s.Err)
	}
	fmt.Fprintf(w, "expanded:  %d\n", s.Expanded)
	fmt.Fprintf(w, "generated: %d\n", s.Generated)
	fmt.Fprintf(w, "frontier:  %d peak\n", s.PeakFrontier)
	if s.Validated {
		fmt.Fprintf(w, "validated: replay cost %g\n", s.ReplayCost)
	}
	if s.Rendered != "" {
		fmt.Fprintf(w, "\n%s", s.Rendered)
	}
}
