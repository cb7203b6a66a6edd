// Package rlmesh provides a high-level façade over the trainer and service
// abstractions (memory, checkpoints, metrics & logging) enabling rapid
// construction of agent/environment experiments. Most applications interact
// with this package by:
//  1. Creating an RLMesh via New() (optionally overriding default in-memory services)
//  2. Wiring an agent and an environment with the shared services (NewAgentOptions)
//  3. Running training or evaluation loops (Train, Eval)
//
// The façade delegates the interaction loop to trainer.Sequential while keeping
// setup and usage ergonomics concise. All defaults are safe for local
// development and testing; production deployments typically supply durable
// store implementations and a structured logger.
package rlmesh

import (
	"context"

	"github.com/rlmesh/rlmesh/agent"
	"github.com/rlmesh/rlmesh/checkpoint"
	"github.com/rlmesh/rlmesh/core"
	"github.com/rlmesh/rlmesh/logging"
	"github.com/rlmesh/rlmesh/memory"
	"github.com/rlmesh/rlmesh/metrics"
	"github.com/rlmesh/rlmesh/trainer"
)

// Options configures the RLMesh instance.
type Options struct {
	// Timesteps is the default run length for Train and Eval.
	Timesteps int

	// Stores (default to in-memory implementations if not provided)
	Memory      core.Memory
	Checkpoints core.CheckpointStore

	// Writer receives per-step scalar metrics (defaults to Noop).
	Writer metrics.ScalarWriter

	// Logger (defaults to NoOp logger if nil)
	Logger logging.Logger

	// AgentConfig is the shared agent configuration.
	AgentConfig agent.Config
}

// RLMesh is the high-level façade aggregating the shared experiment services.
type RLMesh struct {
	opts Options
}

// New creates a new RLMesh instance with optional overrides. Any unset service
// is initialized with an in-memory implementation.
func New(optFns ...func(o *Options)) (*RLMesh, error) {
	mem, err := memory.NewRing(10000, 0)
	if err != nil {
		return nil, err
	}

	opts := Options{
		Timesteps:   1000,
		Memory:      mem,
		Checkpoints: checkpoint.NewInMemoryStore(),
		Writer:      metrics.Noop{},
		Logger:      logging.NoOpLogger{},
		AgentConfig: agent.DefaultConfig(),
	}

	for _, fn := range optFns {
		fn(&opts)
	}

	return &RLMesh{opts: opts}, nil
}

// AgentOptions returns an agent option function wiring the mesh's shared
// services into an agent constructor.
func (m *RLMesh) AgentOptions() func(o *agent.Options) {
	return func(o *agent.Options) {
		o.Memory = m.opts.Memory
		o.Checkpoints = m.opts.Checkpoints
		o.Writer = m.opts.Writer
		o.Logger = m.opts.Logger
		o.Config = m.opts.AgentConfig
	}
}

// Train runs a training loop for the agent on the environment using the
// mesh's default run length and logger.
func (m *RLMesh) Train(ctx context.Context, a core.Agent, env core.Environment) (trainer.Result, error) {
	seq, err := m.sequential(a, env)
	if err != nil {
		return trainer.Result{}, err
	}
	return seq.Train(ctx)
}

// Eval runs an evaluation loop for the agent on the environment.
func (m *RLMesh) Eval(ctx context.Context, a core.Agent, env core.Environment) (trainer.Result, error) {
	seq, err := m.sequential(a, env)
	if err != nil {
		return trainer.Result{}, err
	}
	return seq.Eval(ctx)
}

func (m *RLMesh) sequential(a core.Agent, env core.Environment) (*trainer.Sequential, error) {
	return trainer.NewSequential(a, env, func(o *trainer.Options) {
		o.Timesteps = m.opts.Timesteps
		o.Logger = m.opts.Logger
	})
}
