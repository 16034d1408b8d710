package cmd

import (
	"fmt"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"vcrc/cycle"
	"vcrc/fluid"
	"vcrc/model"
)

var calcFlags struct {
	format string
}

var calcCmd = &cobra.Command{
	Use:   "calc CASE_FILE",
	Short: "Compute the cycles of a case file",
	Args:  cobra.ExactArgs(1),
	RunE:  runCalc,
}

func init() {
	calcCmd.Flags().StringVarP(&calcFlags.format, "format", "f", formatTable, "output format: table, json or yaml")
}

func runCalc(cmd *cobra.Command, args []string) error {
	c, err := model.LoadCase(args[0])
	if err != nil {
		return err
	}
	if len(c.Cycles) == 0 {
		return fmt.Errorf("%s defines no cycles", args[0])
	}
	oracle := fluid.NewCorrelationOracle()
	results := make([]model.CycleResult, 0, len(c.Cycles))
	failed := 0
	for i, req := range c.Cycles {
		res, err := cycle.Run(req, oracle, cycle.SolverOptions(cfg.Solver))
		if err != nil {
			failed++
			log.WithFields(log.Fields{"cycle": i + 1, "name": req.Name}).Error(err)
			continue
		}
		results = append(results, res)
	}
	out := cmd.OutOrStdout()
	if calcFlags.format == formatTable {
		for _, res := range results {
			renderCycle(out, res)
		}
	} else if err := encode(out, calcFlags.format, results); err != nil {
		return err
	}
	if failed > 0 {
		return fmt.Errorf("%d of %d cycles failed", failed, len(c.Cycles))
	}
	return nil
}

var topologiesCmd = &cobra.Command{
	Use:   "topologies",
	Short: "List the supported topologies",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, _ []string) {
		for _, t := range cycle.Topologies() {
			fmt.Fprintln(cmd.OutOrStdout(), t)
		}
	},
}
