package sim

import "fmt"

// StageConfig describes the duration distribution of one workflow stage.
// Durations are drawn from Normal(Mean, Std) and floored at Floor so the
// distribution's negative tail can never produce a non-physical duration.
type StageConfig struct {
	Mean  float64 `yaml:"mean"`  // minutes
	Std   float64 `yaml:"std"`   // minutes
	Floor float64 `yaml:"floor"` // minimum duration, must be > 0
}

// Config holds every parameter of a single simulation run.
// All times are in virtual minutes.
type Config struct {
	Horizon            float64     `yaml:"horizon"`               // simulation horizon (minutes)
	Drivers            int         `yaml:"drivers"`               // driver pool capacity; 0 is legal (no order is ever delivered)
	ArrivalRatePerHour float64     `yaml:"arrival_rate_per_hour"` // Poisson arrival rate (orders/hour)
	Prep               StageConfig `yaml:"prep"`                  // kitchen preparation stage
	Delivery           StageConfig `yaml:"delivery"`              // delivery travel stage
	SLATarget          float64     `yaml:"sla_target"`            // max arrival-to-completion time counted as SLA-met
	Seed               int64       `yaml:"seed"`                  // master RNG seed
}

// DefaultConfig returns the peak-hour baseline scenario.
func DefaultConfig() Config {
	return Config{
		Horizon:            1000,
		Drivers:            5,
		ArrivalRatePerHour: 40,
		Prep:               StageConfig{Mean: 15, Std: 3, Floor: 5},
		Delivery:           StageConfig{Mean: 12, Std: 4, Floor: 5},
		SLATarget:          30,
		Seed:               42,
	}
}

// InterArrivalRate returns the per-minute Poisson rate lambda.
func (c Config) InterArrivalRate() float64 {
	return c.ArrivalRatePerHour / 60.0
}

func (s StageConfig) validate(stage string) error {
	if s.Std < 0 {
		return fmt.Errorf("%s std must be >= 0, got %v", stage, s.Std)
	}
	if s.Floor <= 0 {
		return fmt.Errorf("%s floor must be > 0, got %v", stage, s.Floor)
	}
	return nil
}

// Validate rejects configurations the engine cannot run. It never clamps:
// a bad parameter is a caller error, not something to silently repair.
// Drivers == 0 is deliberately allowed; it models a pool that never grants.
func (c Config) Validate() error {
	if c.Horizon <= 0 {
		return fmt.Errorf("horizon must be > 0, got %v", c.Horizon)
	}
	if c.Drivers < 0 {
		return fmt.Errorf("drivers must be >= 0, got %d", c.Drivers)
	}
	if c.ArrivalRatePerHour <= 0 {
		return fmt.Errorf("arrival rate must be > 0, got %v", c.ArrivalRatePerHour)
	}
	if c.SLATarget < 0 {
		return fmt.Errorf("sla target must be >= 0, got %v", c.SLATarget)
	}
	if err := c.Prep.validate("prep"); err != nil {
		return err
	}
	if err := c.Delivery.validate("delivery"); err != nil {
		return err
	}
	return nil
}
