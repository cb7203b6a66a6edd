package agent

import (
	"context"
	"fmt"
	"time"

	"github.com/rlmesh/rlmesh/core"
	"github.com/rlmesh/rlmesh/model"
)

// PolicyModelKey is the model map key the ModelAgent acts with.
const PolicyModelKey = "policy"

// ModelAgent delegates action selection to its policy model. It pairs Base
// with any model.Model implementation: a mock in tests, an LLM-backed policy,
// or a learned function approximator.
type ModelAgent struct {
	Base
}

// Compile-time interface check.
var _ core.Agent = (*ModelAgent)(nil)

// NewModelAgent creates an agent that acts through the given policy model.
// The model is registered under PolicyModelKey.
func NewModelAgent(name string, env core.Environment, policy model.Model, optFns ...func(o *Options)) (*ModelAgent, error) {
	if policy == nil {
		return nil, fmt.Errorf("agent %s: policy model must not be nil", name)
	}
	base, err := NewBase(name, env, map[string]model.Model{PolicyModelKey: policy}, optFns...)
	if err != nil {
		return nil, err
	}
	return &ModelAgent{Base: base}, nil
}

// Act forwards the observation to the policy model and logs the call timing.
func (a *ModelAgent) Act(ctx context.Context, state []float64, timestep, timesteps int) ([]float64, error) {
	policy := a.Model(PolicyModelKey)

	start := time.Now()
	action, err := policy.Act(ctx, state, timestep, timesteps)
	dur := time.Since(start)

	if err != nil {
		a.Logger().Error("model act failed",
			"agent", a.Name(), "model", policy.Info().Name, "duration", dur, "error", err)
		return nil, fmt.Errorf("agent %s: act: %w", a.Name(), err)
	}

	a.Logger().Debug("model act",
		"agent", a.Name(), "model", policy.Info().Name, "duration", dur)
	return action, nil
}
