package cmd

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/delivery-sim/delivery-sim/chart"
	sim "github.com/delivery-sim/delivery-sim/sim"
	"github.com/delivery-sim/delivery-sim/sim/stats"
)

var (
	minDrivers int  // Lowest staffing level in the sweep
	maxDrivers int  // Highest staffing level in the sweep
	showChart  bool // Render the ASCII chart after the table
)

// sweepCmd runs the scenario once per staffing level in
// [--min-drivers, --max-drivers], every run under the same seed, and
// reports one summary row per level. Same seed means the arrival
// pattern and every stage duration are identical across levels; only
// driver contention differs.
var sweepCmd = &cobra.Command{
	Use:   "sweep",
	Short: "Sweep the driver pool capacity and compare summaries",
	Run: func(cmd *cobra.Command, args []string) {
		cfg := buildConfig(cmd)
		if minDrivers < 0 || maxDrivers < minDrivers {
			logrus.Fatalf("invalid sweep range [%d, %d]", minDrivers, maxDrivers)
		}

		logrus.Infof("Sweeping drivers %d..%d, %.0f orders/hour, horizon=%.0fmin, seed=%d",
			minDrivers, maxDrivers, cfg.ArrivalRatePerHour, cfg.Horizon, cfg.Seed)

		points := make([]chart.Point, 0, maxDrivers-minDrivers+1)

		w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', tabwriter.AlignRight)
		fmt.Fprintln(w, "Drivers\tCompleted\tAvg Wait (min)\tAvg Total (min)\tSLA %\t")
		for d := minDrivers; d <= maxDrivers; d++ {
			runCfg := cfg
			runCfg.Drivers = d

			records, err := sim.Run(runCfg)
			if err != nil {
				logrus.Fatalf("%v", err)
			}
			summary := stats.Summarize(records)

			fmt.Fprintf(w, "%d\t%d\t%.2f\t%.2f\t%.2f\t\n",
				d, summary.Completed, summary.MeanWait, summary.MeanTotal, summary.SLACompliance)
			points = append(points, chart.Point{Drivers: d, MeanTotal: summary.MeanTotal})
		}
		if err := w.Flush(); err != nil {
			logrus.Fatalf("unable to write sweep table: %v", err)
		}

		if showChart {
			fmt.Print(chart.NewGenerator().MeanTotalChart(points, cfg.SLATarget))
		}
	},
}

func init() {
	simulationFlags(sweepCmd)
	sweepCmd.Flags().IntVar(&minDrivers, "min-drivers", 5, "Lowest driver pool capacity to simulate")
	sweepCmd.Flags().IntVar(&maxDrivers, "max-drivers", 20, "Highest driver pool capacity to simulate")
	sweepCmd.Flags().BoolVar(&showChart, "chart", true, "Render an ASCII chart of mean total time vs drivers")
}
