package trainer

import (
	"context"
	"fmt"
	"time"

	"github.com/rlmesh/rlmesh/core"
	"github.com/rlmesh/rlmesh/logging"
)

// Options configure a Sequential trainer.
type Options struct {
	// Timesteps is the total number of environment steps per run.
	Timesteps int

	// Logger receives structured progress diagnostics.
	Logger logging.Logger

	// Callbacks are registered on the trainer's callback manager in order.
	Callbacks []Callback
}

// Result summarizes a completed run.
type Result struct {
	// Timesteps is the number of environment steps executed.
	Timesteps int

	// Episodes is the number of episodes completed.
	Episodes int

	// TotalReward is the reward summed over all steps.
	TotalReward float64

	// Duration is the wall-clock time of the run.
	Duration time.Duration
}

// Sequential runs a single agent against a single environment, one timestep
// at a time. Each step runs the full lifecycle: PreInteraction, Act,
// environment Step, RecordTransition, PostInteraction. Episodes are reset
// transparently when the environment reports done.
type Sequential struct {
	agent core.Agent
	env   core.Environment
	opts  Options
	cbs   *CallbackManager
}

// NewSequential creates a trainer for the given agent and environment.
func NewSequential(agent core.Agent, env core.Environment, optFns ...func(o *Options)) (*Sequential, error) {
	if agent == nil {
		return nil, fmt.Errorf("agent must not be nil")
	}
	if env == nil {
		return nil, fmt.Errorf("environment must not be nil")
	}

	opts := Options{
		Timesteps: 1000,
		Logger:    logging.NoOpLogger{},
	}
	for _, fn := range optFns {
		fn(&opts)
	}
	if opts.Timesteps <= 0 {
		return nil, fmt.Errorf("timesteps must be positive, got %d", opts.Timesteps)
	}

	cbs := NewCallbackManager()
	for _, cb := range opts.Callbacks {
		cbs.RegisterCallback(cb)
	}

	return &Sequential{agent: agent, env: env, opts: opts, cbs: cbs}, nil
}

// Train switches the agent to training mode and runs the interaction loop.
func (t *Sequential) Train(ctx context.Context) (Result, error) {
	return t.run(ctx, core.ModeTrain)
}

// Eval switches the agent to evaluation mode and runs the interaction loop.
func (t *Sequential) Eval(ctx context.Context) (Result, error) {
	return t.run(ctx, core.ModeEval)
}

func (t *Sequential) run(ctx context.Context, mode core.Mode) (Result, error) {
	if err := t.agent.SetMode(mode); err != nil {
		return Result{}, fmt.Errorf("set mode: %w", err)
	}

	start := time.Now()
	t.opts.Logger.Info("run started",
		"agent", t.agent.Name(), "mode", string(mode), "timesteps", t.opts.Timesteps)

	res, err := t.loop(ctx)
	res.Duration = time.Since(start)

	if err != nil {
		t.opts.Logger.Error("run failed",
			"agent", t.agent.Name(), "mode", string(mode),
			"timestep", res.Timesteps, "error", err)
		return res, err
	}

	t.opts.Logger.Info("run finished",
		"agent", t.agent.Name(), "mode", string(mode),
		"timesteps", res.Timesteps, "episodes", res.Episodes,
		"total_reward", res.TotalReward, "duration", res.Duration)
	return res, nil
}

func (t *Sequential) loop(ctx context.Context) (Result, error) {
	var res Result

	obs, err := t.env.Reset(ctx)
	if err != nil {
		return res, fmt.Errorf("reset environment: %w", err)
	}

	for timestep := 0; timestep < t.opts.Timesteps; timestep++ {
		select {
		case <-ctx.Done():
			return res, ctx.Err()
		default:
		}

		cbCtx := &CallbackContext{
			Agent:     t.agent,
			Timestep:  timestep,
			Timesteps: t.opts.Timesteps,
			Episode:   res.Episodes,
		}

		tr, err := t.step(ctx, obs, timestep, cbCtx)
		if err != nil {
			cbCtx.CallbackType = CallbackOnError
			cbCtx.Err = err
			_ = t.cbs.ExecuteCallbacks(ctx, CallbackOnError, cbCtx)
			return res, err
		}

		res.Timesteps++
		res.TotalReward += tr.Reward
		t.opts.Logger.Debug("step",
			"timestep", timestep, "reward", tr.Reward, "done", tr.Done)

		obs = tr.NextState
		if tr.Done {
			res.Episodes++
			cbCtx.CallbackType = CallbackEpisodeEnd
			if err := t.cbs.ExecuteCallbacks(ctx, CallbackEpisodeEnd, cbCtx); err != nil {
				return res, fmt.Errorf("episode end callback: %w", err)
			}
			if obs, err = t.env.Reset(ctx); err != nil {
				return res, fmt.Errorf("reset environment: %w", err)
			}
		}
	}

	return res, nil
}

// step executes one full agent/environment interaction and returns the
// recorded transition. The callback context is updated in place.
func (t *Sequential) step(ctx context.Context, obs []float64, timestep int, cbCtx *CallbackContext) (core.Transition, error) {
	cbCtx.CallbackType = CallbackBeforeStep
	if err := t.cbs.ExecuteCallbacks(ctx, CallbackBeforeStep, cbCtx); err != nil {
		return core.Transition{}, fmt.Errorf("before step callback: %w", err)
	}

	if err := t.agent.PreInteraction(ctx, timestep, t.opts.Timesteps); err != nil {
		return core.Transition{}, fmt.Errorf("pre interaction: %w", err)
	}

	action, err := t.agent.Act(ctx, obs, timestep, t.opts.Timesteps)
	if err != nil {
		return core.Transition{}, fmt.Errorf("act: %w", err)
	}

	ts, err := t.env.Step(ctx, action)
	if err != nil {
		return core.Transition{}, fmt.Errorf("step environment: %w", err)
	}

	tr := core.Transition{
		State:     obs,
		Action:    action,
		Reward:    ts.Reward,
		NextState: ts.Observation,
		Done:      ts.Done,
		Timestep:  timestep,
	}
	if err := t.agent.RecordTransition(ctx, tr, timestep, t.opts.Timesteps); err != nil {
		return core.Transition{}, fmt.Errorf("record transition: %w", err)
	}

	cbCtx.CallbackType = CallbackAfterStep
	cbCtx.Transition = tr
	if err := t.cbs.ExecuteCallbacks(ctx, CallbackAfterStep, cbCtx); err != nil {
		return core.Transition{}, fmt.Errorf("after step callback: %w", err)
	}

	if err := t.agent.PostInteraction(ctx, timestep, t.opts.Timesteps); err != nil {
		return core.Transition{}, fmt.Errorf("post interaction: %w", err)
	}

	return tr, nil
}
