package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"vcrc/cycle"
	"vcrc/fluid"
	"vcrc/model"
	"vcrc/sweep"
)

var sweepFlags struct {
	format  string
	workers int
}

var sweepCmd = &cobra.Command{
	Use:   "sweep CASE_FILE",
	Short: "Run the parametric sweeps of a case file",
	Args:  cobra.ExactArgs(1),
	RunE:  runSweep,
}

func init() {
	f := sweepCmd.Flags()
	f.StringVarP(&sweepFlags.format, "format", "f", formatTable, "output format: table, json or yaml")
	f.IntVarP(&sweepFlags.workers, "workers", "w", 0, "concurrent builds, overrides [sweep] Workers")
}

// sweepResult is one sweep with its computed points.
type sweepResult struct {
	Name      string             `json:"name" yaml:"name"`
	Parameter string             `json:"parameter" yaml:"parameter"`
	Points    []model.SweepPoint `json:"points" yaml:"points"`
}

func runSweep(cmd *cobra.Command, args []string) error {
	c, err := model.LoadCase(args[0])
	if err != nil {
		return err
	}
	if len(c.Sweeps) == 0 {
		return fmt.Errorf("%s defines no sweeps", args[0])
	}
	workers := cfg.Sweep.Workers
	if sweepFlags.workers > 0 {
		workers = sweepFlags.workers
	}
	e, err := sweep.NewExecutor(workers, fluid.NewCorrelationOracle(), cycle.SolverOptions(cfg.Solver))
	if err != nil {
		return err
	}
	results := make([]sweepResult, 0, len(c.Sweeps))
	for _, s := range c.Sweeps {
		points, err := e.Run(cmd.Context(), s)
		if err != nil {
			return fmt.Errorf("sweep %q: %w", s.Name, err)
		}
		results = append(results, sweepResult{Name: s.Name, Parameter: s.Parameter, Points: points})
	}
	out := cmd.OutOrStdout()
	if sweepFlags.format != formatTable {
		return encode(out, sweepFlags.format, results)
	}
	for _, r := range results {
		renderSweep(out, r)
	}
	return nil
}
