package core

import (
	"math"
	"math/rand"

	"gonum.org/v1/gonum/mat"
)

// Space describes the layout and bounds of an observation or action. A Space
// is either continuous (Box) or discrete (Discrete); environments expose one
// of each so agents can size their models and sample valid actions without
// knowing the concrete environment.
type Space interface {
	// Size returns the flat number of elements in a value of this space.
	Size() int

	// Sample draws a uniformly random valid value using the provided source.
	Sample(rng *rand.Rand) []float64

	// Contains reports whether v is a valid value of this space.
	Contains(v []float64) bool
}

// Box is a continuous space with per-dimension lower and upper bounds.
// Bounds are dense vectors of equal length; an unbounded dimension uses
// -Inf/+Inf. Sampling an unbounded dimension falls back to the standard
// normal distribution.
type Box struct {
	Low  mat.Vector
	High mat.Vector
}

// NewBox constructs a Box from raw bound slices. Both slices must have the
// same length; the caller retains ownership of the inputs.
func NewBox(low, high []float64) Box {
	return Box{
		Low:  mat.NewVecDense(len(low), append([]float64(nil), low...)),
		High: mat.NewVecDense(len(high), append([]float64(nil), high...)),
	}
}

// Size returns the dimensionality of the box.
func (b Box) Size() int { return b.Low.Len() }

// Sample draws a uniform value within the bounds of each dimension.
func (b Box) Sample(rng *rand.Rand) []float64 {
	v := make([]float64, b.Size())
	for i := range v {
		lo, hi := b.Low.AtVec(i), b.High.AtVec(i)
		if math.IsInf(lo, -1) || math.IsInf(hi, 1) {
			v[i] = rng.NormFloat64()
			continue
		}
		v[i] = lo + rng.Float64()*(hi-lo)
	}
	return v
}

// Contains reports whether v has the right length and every element lies
// within its dimension bounds.
func (b Box) Contains(v []float64) bool {
	if len(v) != b.Size() {
		return false
	}
	for i, x := range v {
		if x < b.Low.AtVec(i) || x > b.High.AtVec(i) {
			return false
		}
	}
	return true
}

// Discrete is a finite space of n labeled options. Values are encoded as a
// single-element slice holding the option index, which keeps the agent-facing
// value type uniform across space kinds.
type Discrete struct {
	N      int
	Labels []string // optional human-readable option names, len N when set
}

// NewDiscrete constructs a Discrete space with n unlabeled options.
func NewDiscrete(n int) Discrete { return Discrete{N: n} }

// Size returns 1; discrete values are single option indices.
func (d Discrete) Size() int { return 1 }

// Sample draws a uniformly random option index.
func (d Discrete) Sample(rng *rand.Rand) []float64 {
	return []float64{float64(rng.Intn(d.N))}
}

// Contains reports whether v encodes an integral index in [0, N).
func (d Discrete) Contains(v []float64) bool {
	if len(v) != 1 {
		return false
	}
	i := v[0]
	return i == math.Trunc(i) && i >= 0 && int(i) < d.N
}

// Label returns the name of option i, or the empty string when unlabeled or
// out of range.
func (d Discrete) Label(i int) string {
	if i < 0 || i >= len(d.Labels) {
		return ""
	}
	return d.Labels[i]
}
