package trainer

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rlmesh/rlmesh/agent"
	"github.com/rlmesh/rlmesh/core"
	"github.com/rlmesh/rlmesh/env"
	"github.com/rlmesh/rlmesh/metrics"
	"github.com/rlmesh/rlmesh/model"
)

func newTestEnv(t *testing.T, stepLimit int) *env.GridWorld {
	t.Helper()
	g, err := env.NewGridWorld(func(o *env.GridWorldOptions) {
		o.Rows, o.Cols = 3, 3
		o.Wind = nil
		o.StepLimit = stepLimit
	})
	require.NoError(t, err)
	return g
}

func newTestAgent(t *testing.T, e core.Environment, optFns ...func(o *agent.Options)) *agent.Random {
	t.Helper()
	a, err := agent.NewRandom(e, nil, optFns...)
	require.NoError(t, err)
	return a
}

func TestNewSequentialValidation(t *testing.T) {
	e := newTestEnv(t, 10)
	a := newTestAgent(t, e)

	_, err := NewSequential(nil, e)
	assert.Error(t, err)

	_, err = NewSequential(a, nil)
	assert.Error(t, err)

	_, err = NewSequential(a, e, func(o *Options) { o.Timesteps = 0 })
	assert.Error(t, err)
}

func TestSequentialTrainRunsAllTimesteps(t *testing.T) {
	e := newTestEnv(t, 5)
	rec := metrics.NewRecorder()
	a := newTestAgent(t, e, func(o *agent.Options) {
		o.Writer = rec
		o.Config.Seed = 3
	})

	tr, err := NewSequential(a, e, func(o *Options) { o.Timesteps = 20 })
	require.NoError(t, err)

	res, err := tr.Train(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 20, res.Timesteps)
	assert.GreaterOrEqual(t, res.Episodes, 4, "episodes cap at 5 steps")
	assert.Len(t, rec.ByTag(agent.TagRewardMean), 20)
}

func TestSequentialEvalSetsMode(t *testing.T) {
	e := newTestEnv(t, 5)
	m := model.NewMockModel("policy", []float64{0})
	a, err := agent.NewRandom(e, map[string]model.Model{"policy": m})
	require.NoError(t, err)

	tr, err := NewSequential(a, e, func(o *Options) { o.Timesteps = 1 })
	require.NoError(t, err)

	_, err = tr.Eval(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []core.Mode{core.ModeEval}, m.ModeHistory())
	assert.Equal(t, core.ModeEval, m.Mode())
}

func TestSequentialCallbackOrder(t *testing.T) {
	e := newTestEnv(t, 2)
	a := newTestAgent(t, e)

	var events []CallbackType
	record := func(ct CallbackType) Callback {
		return NewFunctionCallback(ct, func(_ context.Context, cbCtx *CallbackContext) error {
			events = append(events, cbCtx.CallbackType)
			return nil
		})
	}

	tr, err := NewSequential(a, e, func(o *Options) {
		o.Timesteps = 2
		o.Callbacks = []Callback{
			record(CallbackBeforeStep),
			record(CallbackAfterStep),
			record(CallbackEpisodeEnd),
		}
	})
	require.NoError(t, err)

	_, err = tr.Train(context.Background())
	require.NoError(t, err)

	assert.Equal(t, []CallbackType{
		CallbackBeforeStep, CallbackAfterStep,
		CallbackBeforeStep, CallbackAfterStep, CallbackEpisodeEnd,
	}, events)
}

func TestSequentialAfterStepSeesTransition(t *testing.T) {
	e := newTestEnv(t, 10)
	a := newTestAgent(t, e)

	var rewards []float64
	cb := NewFunctionCallback(CallbackAfterStep, func(_ context.Context, cbCtx *CallbackContext) error {
		rewards = append(rewards, cbCtx.Transition.Reward)
		return nil
	})

	tr, err := NewSequential(a, e, func(o *Options) {
		o.Timesteps = 3
		o.Callbacks = []Callback{cb}
	})
	require.NoError(t, err)

	_, err = tr.Train(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []float64{-1, -1, -1}, rewards)
}

func TestSequentialCallbackErrorAbortsRun(t *testing.T) {
	e := newTestEnv(t, 10)
	a := newTestAgent(t, e)

	boom := errors.New("boom")
	cb := NewFunctionCallback(CallbackBeforeStep, func(_ context.Context, cbCtx *CallbackContext) error {
		if cbCtx.Timestep == 2 {
			return boom
		}
		return nil
	})

	var reported error
	onErr := NewFunctionCallback(CallbackOnError, func(_ context.Context, cbCtx *CallbackContext) error {
		reported = cbCtx.Err
		return nil
	})

	tr, err := NewSequential(a, e, func(o *Options) {
		o.Timesteps = 10
		o.Callbacks = []Callback{cb, onErr}
	})
	require.NoError(t, err)

	res, err := tr.Train(context.Background())
	assert.ErrorIs(t, err, boom)
	assert.Equal(t, 2, res.Timesteps)
	assert.ErrorIs(t, reported, boom)
}

func TestSequentialContextCancellation(t *testing.T) {
	e := newTestEnv(t, 10)
	a := newTestAgent(t, e)

	tr, err := NewSequential(a, e, func(o *Options) { o.Timesteps = 1000 })
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	var once bool
	tr.cbs.RegisterCallback(NewFunctionCallback(CallbackAfterStep, func(context.Context, *CallbackContext) error {
		if !once {
			once = true
			cancel()
		}
		return nil
	}))

	res, err := tr.Train(ctx)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Less(t, res.Timesteps, 1000)
}

func TestSequentialBaseAgentActFails(t *testing.T) {
	e := newTestEnv(t, 10)
	base, err := agent.NewBase("bare", e, nil)
	require.NoError(t, err)

	tr, err := NewSequential(&base, e, func(o *Options) { o.Timesteps = 1 })
	require.NoError(t, err)

	_, err = tr.Train(context.Background())
	assert.ErrorIs(t, err, core.ErrNotImplemented)
}
