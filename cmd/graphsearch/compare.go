package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/pdrpinto/graphsearch"
	"github.com/pdrpinto/graphsearch/metrics"
)

func newCompareCmd(a *app) *cobra.Command {
	var (
		flags       searchFlags
		metricsFile string
	)
	cmd := &cobra.Command{
		Use:   "compare [problem]",
		Short: "Run every strategy on one problem and tabulate the results",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			r, err := a.loadRunner(&flags, args)
			if err != nil {
				return err
			}

			registry := prometheus.NewRegistry()
			recorder, err := metrics.NewRecorder(registry)
			if err != nil {
				return err
			}

			summaries, err := compare(cmd.Context(), r, a.searchOptions(&flags, graphsearch.WithHooks(recorder.Hooks())))
			if err != nil {
				return err
			}
			if err := printTable(cmd.OutOrStdout(), summaries); err != nil {
				return err
			}

			if metricsFile != "" {
				if err := prometheus.WriteToTextfile(metricsFile, registry); err != nil {
					return fmt.Errorf("failed to write metrics: %w", err)
				}
			}
			return nil
		},
	}
	flags.register(cmd, false)
	cmd.Flags().StringVar(&metricsFile, "metrics-file", "", "write Prometheus metrics to this file after the searches")
	return cmd
}

// compare runs the built-in strategies in parallel, one goroutine each. A
// strategy that ends without a plan is a table row, not a failure; only
// cancellation aborts the comparison.
func compare(ctx context.Context, r runner, options []graphsearch.Option) ([]summary, error) {
	strategies := graphsearch.Strategies()
	summaries := make([]summary, len(strategies))

	g, gCtx := errgroup.WithContext(ctx)
	for i, strategy := range strategies {
		g.Go(func() error {
			s, err := r.solve(gCtx, strategy, solveRequest{}, options...)
			if err != nil {
				return err
			}
			if errors.Is(s.Err, context.Canceled) || errors.Is(s.Err, context.DeadlineExceeded) {
				return s.Err
			}
			summaries[i] = s
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return summaries, nil
}

func printTable(w io.Writer, summaries []summary) error {
	tw := tabwriter.NewWriter(w, 0, 8, 2, ' ', 0)
	fmt.Fprintln(tw, "STRATEGY\tFOUND\tCOST\tLENGTH\tEXPANDED\tGENERATED\tPEAK\tDURATION")
	for _, s := range summaries {
		cost, length := "-", "-"
		if s.Found {
			cost = fmt.Sprintf("%g", s.Cost)
			length = fmt.Sprint(len(s.Plan))
		}
		fmt.Fprintf(tw, "%s\t%t\t%s\t%s\t%d\t%d\t%d\t%s\n",
			s.Strategy, s.Found, cost, length, s.Expanded, s.Generated, s.PeakFrontier, s.Duration)
	}
	return tw.Flush()
}
