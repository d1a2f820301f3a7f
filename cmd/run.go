package cmd

import (
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	sim "github.com/delivery-sim/delivery-sim/sim"
	"github.com/delivery-sim/delivery-sim/sim/stats"
)

var outputPath string // Optional CSV export of per-order records

// runCmd executes one simulation using parameters from CLI flags and/or
// a scenario file, prints the engine metrics and the run summary, and
// optionally exports the per-order records as CSV.
var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run one delivery simulation",
	Run: func(cmd *cobra.Command, args []string) {
		cfg := buildConfig(cmd)

		logrus.Infof("Starting simulation: %d drivers, %.0f orders/hour, horizon=%.0fmin, seed=%d",
			cfg.Drivers, cfg.ArrivalRatePerHour, cfg.Horizon, cfg.Seed)

		s, err := sim.NewSimulator(cfg)
		if err != nil {
			logrus.Fatalf("%v", err)
		}
		records := s.Run()

		s.Metrics.Print()
		printSummary(cfg, stats.Summarize(records))

		if outputPath != "" {
			writeRecordsCSV(outputPath, s)
		}

		logrus.Info("Simulation complete.")
	},
}

func printSummary(cfg sim.Config, summary stats.Summary) {
	fmt.Println("=== Run Summary ===")
	fmt.Printf("Completed orders     : %d\n", summary.Completed)
	fmt.Printf("Mean wait for driver : %.2f min\n", summary.MeanWait)
	fmt.Printf("Mean total time      : %.2f min\n", summary.MeanTotal)
	fmt.Printf("SLA compliance       : %.2f%% (target %.0f min)\n", summary.SLACompliance, cfg.SLATarget)
}

func writeRecordsCSV(path string, s *sim.Simulator) {
	f, err := os.Create(path)
	if err != nil {
		logrus.Fatalf("unable to create %s: %v", path, err)
	}
	defer f.Close()

	if err := s.Collector.WriteCSV(f); err != nil {
		logrus.Fatalf("unable to write %s: %v", path, err)
	}
	logrus.Infof("wrote %d records to %s", s.Collector.Len(), path)
}

func init() {
	simulationFlags(runCmd)
	runCmd.Flags().StringVar(&outputPath, "output", "", "Write per-order records to this CSV file")
}
