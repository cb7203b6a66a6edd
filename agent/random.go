package agent

import (
	"context"
	"math/rand"
	"sync"

	"github.com/rlmesh/rlmesh/core"
	"github.com/rlmesh/rlmesh/model"
)

// Random is an agent that samples uniformly from the environment's action
// space. It learns nothing and is primarily useful as an exploration
// baseline and as the simplest working override of Base.
type Random struct {
	Base

	mu  sync.Mutex
	rng *rand.Rand
}

// Compile-time interface check.
var _ core.Agent = (*Random)(nil)

// NewRandom creates a Random agent for the given environment. Sampling is
// seeded from the configured seed so runs are reproducible.
func NewRandom(env core.Environment, models map[string]model.Model, optFns ...func(o *Options)) (*Random, error) {
	base, err := NewBase("random", env, models, optFns...)
	if err != nil {
		return nil, err
	}
	return &Random{
		Base: base,
		rng:  rand.New(rand.NewSource(base.Config().Seed)),
	}, nil
}

// Act samples an action uniformly from the action space.
func (r *Random) Act(_ context.Context, _ []float64, _, _ int) ([]float64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.Env().ActionSpace().Sample(r.rng), nil
}
