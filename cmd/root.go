package cmd

import (
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	sim "github.com/delivery-sim/delivery-sim/sim"
)

var (
	// CLI flags shared by run and sweep
	logLevel           string  // Log verbosity level
	scenarioPath       string  // Optional YAML scenario file
	seed               int64   // Master seed for all RNG subsystems
	horizon            float64 // Total simulation horizon (minutes)
	drivers            int     // Driver pool capacity
	arrivalRatePerHour float64 // Order arrival rate (orders/hour)
	prepMean           float64 // Kitchen prep time mean (minutes)
	prepStd            float64 // Kitchen prep time std dev (minutes)
	prepFloor          float64 // Kitchen prep time minimum (minutes)
	deliveryMean       float64 // Delivery travel time mean (minutes)
	deliveryStd        float64 // Delivery travel time std dev (minutes)
	deliveryFloor      float64 // Delivery travel time minimum (minutes)
	slaTarget          float64 // SLA target for total delivery time (minutes)
)

// rootCmd is the base command for the CLI
var rootCmd = &cobra.Command{
	Use:   "delivery-sim",
	Short: "Discrete-event simulator for delivery staffing analysis",
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		level, err := logrus.ParseLevel(logLevel)
		if err != nil {
			logrus.Fatalf("Invalid log level: %s", logLevel)
		}
		logrus.SetLevel(level)
	},
}

// Execute runs the CLI root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// simulationFlags registers the scenario parameters on a subcommand.
// Flag defaults mirror sim.DefaultConfig so that --help shows the
// baseline scenario.
func simulationFlags(cmd *cobra.Command) {
	def := sim.DefaultConfig()

	cmd.Flags().StringVar(&scenarioPath, "scenario", "", "YAML scenario file (flags set on the command line take precedence)")
	cmd.Flags().Int64Var(&seed, "seed", def.Seed, "Master seed for random generation")
	cmd.Flags().Float64Var(&horizon, "horizon", def.Horizon, "Total simulation horizon (minutes)")
	cmd.Flags().IntVar(&drivers, "drivers", def.Drivers, "Driver pool capacity")
	cmd.Flags().Float64Var(&arrivalRatePerHour, "rate", def.ArrivalRatePerHour, "Order arrival rate (orders/hour)")
	cmd.Flags().Float64Var(&prepMean, "prep-mean", def.Prep.Mean, "Kitchen prep time mean (minutes)")
	cmd.Flags().Float64Var(&prepStd, "prep-std", def.Prep.Std, "Kitchen prep time std dev (minutes)")
	cmd.Flags().Float64Var(&prepFloor, "prep-floor", def.Prep.Floor, "Kitchen prep time minimum (minutes)")
	cmd.Flags().Float64Var(&deliveryMean, "delivery-mean", def.Delivery.Mean, "Delivery travel time mean (minutes)")
	cmd.Flags().Float64Var(&deliveryStd, "delivery-std", def.Delivery.Std, "Delivery travel time std dev (minutes)")
	cmd.Flags().Float64Var(&deliveryFloor, "delivery-floor", def.Delivery.Floor, "Delivery travel time minimum (minutes)")
	cmd.Flags().Float64Var(&slaTarget, "sla", def.SLATarget, "SLA target for total delivery time (minutes)")
}

// buildConfig assembles the effective configuration: defaults, then the
// scenario file if given, then any flag explicitly set on the command line.
func buildConfig(cmd *cobra.Command) sim.Config {
	cfg := sim.DefaultConfig()

	if scenarioPath != "" {
		loaded, err := LoadScenario(scenarioPath)
		if err != nil {
			logrus.Fatalf("unable to read scenario file: %v", err)
		}
		cfg = loaded
	}

	flagOverrides := map[string]func(){
		"seed":           func() { cfg.Seed = seed },
		"horizon":        func() { cfg.Horizon = horizon },
		"drivers":        func() { cfg.Drivers = drivers },
		"rate":           func() { cfg.ArrivalRatePerHour = arrivalRatePerHour },
		"prep-mean":      func() { cfg.Prep.Mean = prepMean },
		"prep-std":       func() { cfg.Prep.Std = prepStd },
		"prep-floor":     func() { cfg.Prep.Floor = prepFloor },
		"delivery-mean":  func() { cfg.Delivery.Mean = deliveryMean },
		"delivery-std":   func() { cfg.Delivery.Std = deliveryStd },
		"delivery-floor": func() { cfg.Delivery.Floor = deliveryFloor },
		"sla":            func() { cfg.SLATarget = slaTarget },
	}
	for name, apply := range flagOverrides {
		if cmd.Flags().Changed(name) {
			apply()
		}
	}

	return cfg
}

// init sets up subcommands
func init() {
	rootCmd.PersistentFlags().StringVar(&logLevel, "log", "error", "Log level (trace, debug, info, warn, error, fatal, panic)")
	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(sweepCmd)
}
