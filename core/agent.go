package core

import "context"

// Agent defines the core contract every rlmesh agent implements.
//
// Agents are the decision-making units driven by a trainer: each step the
// trainer calls PreInteraction, asks the agent to Act on the current
// observation, advances the environment, hands the resulting transition to
// RecordTransition and finishes with PostInteraction. SetMode switches the
// agent (and its models) between training and evaluation behavior.
//
// Implementations embed agent.Base to inherit defaulted hooks and only
// override what their algorithm needs.
type Agent interface {
	// Name returns the human-readable agent name.
	Name() string

	// Act maps an observation to an action using the main policy.
	Act(ctx context.Context, state []float64, timestep, timesteps int) ([]float64, error)

	// RecordTransition records an environment transition (and any derived
	// per-step metrics) after the environment has been stepped.
	RecordTransition(ctx context.Context, t Transition, timestep, timesteps int) error

	// PreInteraction is called before the interaction with the environment.
	PreInteraction(ctx context.Context, timestep, timesteps int) error

	// PostInteraction is called after the interaction with the environment.
	PostInteraction(ctx context.Context, timestep, timesteps int) error

	// SetMode switches all owned models between training and evaluation.
	SetMode(mode Mode) error
}
