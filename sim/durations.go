package sim

import (
	"math/rand"

	"gonum.org/v1/gonum/stat/distuv"
)

// FlooredNormal samples stage durations from Normal(mean, std), floored
// at a positive minimum. The floor cuts off the distribution's negative
// tail: without it a draw could be zero or negative, and a stage would
// complete at or before it started.
type FlooredNormal struct {
	dist  distuv.Normal
	floor float64
}

// NewFlooredNormal builds a sampler backed by the given RNG stream.
func NewFlooredNormal(mean, std, floor float64, rng *rand.Rand) FlooredNormal {
	return FlooredNormal{
		dist:  distuv.Normal{Mu: mean, Sigma: std, Src: rng},
		floor: floor,
	}
}

// Sample draws one duration, never below the floor.
func (g FlooredNormal) Sample() float64 {
	return max(g.floor, g.dist.Rand())
}

// ExponentialGap samples Poisson-process inter-arrival gaps with the
// given per-minute rate.
type ExponentialGap struct {
	dist distuv.Exponential
}

// NewExponentialGap builds a sampler for rate lambda (arrivals/minute).
func NewExponentialGap(lambda float64, rng *rand.Rand) ExponentialGap {
	return ExponentialGap{
		dist: distuv.Exponential{Rate: lambda, Src: rng},
	}
}

// Sample draws one inter-arrival gap. Mean gap is 1/lambda.
func (g ExponentialGap) Sample() float64 {
	return g.dist.Rand()
}
