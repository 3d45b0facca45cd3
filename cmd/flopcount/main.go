package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/sansecio/flopcount/cost"
	"github.com/sansecio/flopcount/parser"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "flopcount",
		Short:         "Static cost model for stencil kernels",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	cmd.AddCommand(newAnalyzeCmd())
	return cmd
}

func newAnalyzeCmd() *cobra.Command {
	var weightsFile string

	cmd := &cobra.Command{
		Use:   "analyze <kernel-file>",
		Short: "Estimate operation count and memory traffic of a kernel",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			weights := cost.DefaultWeights()
			if weightsFile != "" {
				var err error
				weights, err = cost.LoadWeights(weightsFile)
				if err != nil {
					return err
				}
			}

			p, err := parser.New()
			if err != nil {
				return err
			}
			kernel, err := p.ParseFile(args[0])
			if err != nil {
				return fmt.Errorf("parsing %s: %w", args[0], err)
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "%s: %d equation(s), %d dimension(s)\n",
				args[0], len(kernel.Equations), len(kernel.Dims))

			handle := cost.Batch(kernel.Nodes()...)
			flops, err := cost.EstimateCostWith(handle, false, weights)
			if err != nil {
				return err
			}
			weighted, err := cost.EstimateCostWith(handle, true, weights)
			if err != nil {
				return err
			}
			fmt.Fprintf(out, "operations:            %d\n", flops)
			fmt.Fprintf(out, "operations (weighted): %d\n", weighted)

			for _, mode := range []cost.TrafficMode{cost.Ideal, cost.IdealWithStores, cost.Realistic} {
				fmt.Fprintf(out, "traffic %-18s %d\n", string(mode)+":",
					cost.EstimateMemory(kernel.Equations, mode))
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&weightsFile, "weights", "", "YAML function weight table overriding the defaults")
	return cmd
}
