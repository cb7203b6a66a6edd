package testutil

import "github.com/rlmesh/rlmesh/core"

// TransitionBuilder provides a fluent helper for constructing transitions in
// tests. Example:
//
//	tr := NewTransitionBuilder().State(0).Action(1).Reward(-1).NextState(0.5).Build()
//
// Chain only the parts you need; sensible defaults are applied.
type TransitionBuilder struct {
	t core.Transition
}

// NewTransitionBuilder creates a builder with single-element zero vectors.
func NewTransitionBuilder() *TransitionBuilder {
	return &TransitionBuilder{t: core.Transition{
		State:     []float64{0},
		Action:    []float64{0},
		NextState: []float64{0},
	}}
}

// State sets the observation the action was taken in (chainable).
func (b *TransitionBuilder) State(v ...float64) *TransitionBuilder { b.t.State = v; return b }

// Action sets the action vector (chainable).
func (b *TransitionBuilder) Action(v ...float64) *TransitionBuilder { b.t.Action = v; return b }

// Reward sets the instantaneous reward (chainable).
func (b *TransitionBuilder) Reward(r float64) *TransitionBuilder { b.t.Reward = r; return b }

// NextState sets the successor observation (chainable).
func (b *TransitionBuilder) NextState(v ...float64) *TransitionBuilder { b.t.NextState = v; return b }

// Done marks the transition as episode-terminating (chainable).
func (b *TransitionBuilder) Done() *TransitionBuilder { b.t.Done = true; return b }

// Timestep sets the global timestep index (chainable).
func (b *TransitionBuilder) Timestep(n int) *TransitionBuilder { b.t.Timestep = n; return b }

// Build constructs the core.Transition value.
func (b *TransitionBuilder) Build() core.Transition { return b.t }

// Trajectory builds n sequential transitions with increasing timesteps and
// the given per-step reward. The last transition is marked done.
func Trajectory(n int, reward float64) []core.Transition {
	out := make([]core.Transition, n)
	for i := range out {
		out[i] = NewTransitionBuilder().
			State(float64(i)).
			Action(float64(i % 2)).
			Reward(reward).
			NextState(float64(i + 1)).
			Timestep(i).
			Build()
		if i == n-1 {
			out[i].Done = true
		}
	}
	return out
}
