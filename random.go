package folio

import "math/rand/v2"

// RandomSource yields uniform values in [0, 1). The camera draws its shake
// jitter from one.
type RandomSource interface {
	Float64() float64
}

// globalRNG uses the math/rand/v2 top-level generator.
type globalRNG struct{}

func (globalRNG) Float64() float64 { return rand.Float64() }

// DefaultRNG returns the process-wide random source.
func DefaultRNG() RandomSource { return globalRNG{} }

// seededRNG is a reproducible source for tests and recorded sessions.
type seededRNG struct{ r *rand.Rand }

// NewSeededRNG returns a deterministic PCG-backed source.
func NewSeededRNG(seed uint64) RandomSource {
	return &seededRNG{r: rand.New(rand.NewPCG(seed, 0))}
}

func (s *seededRNG) Float64() float64 { return s.r.Float64() }
