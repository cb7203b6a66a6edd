package core

import "context"

// Timestep is the result of advancing an environment by one step.
type Timestep struct {
	// Observation is the environment state after the step.
	Observation []float64

	// Reward is the instantaneous reward for the action taken.
	Reward float64

	// Done signals that the episode has ended and the environment must be
	// reset before the next step.
	Done bool

	// Info carries optional diagnostic data. It must not be used for
	// training or evaluation decisions.
	Info map[string]any
}

// Environment is the step/reset contract agents interact with. Implementations
// own all simulation state; agents only ever see observations, rewards and
// the done flag.
//
// Implementations must respect context cancellation on Reset and Step so
// trainers can shut down cleanly mid-episode.
type Environment interface {
	// Reset starts a new episode and returns the initial observation.
	Reset(ctx context.Context) ([]float64, error)

	// Step applies an action and advances the simulation by one timestep.
	Step(ctx context.Context, action []float64) (Timestep, error)

	// ObservationSpace describes the layout of observations.
	ObservationSpace() Space

	// ActionSpace describes the layout of valid actions.
	ActionSpace() Space

	// Close releases any resources held by the environment.
	Close() error
}
