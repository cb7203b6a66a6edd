package agent

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rlmesh/rlmesh/checkpoint"
	"github.com/rlmesh/rlmesh/core"
	"github.com/rlmesh/rlmesh/memory"
	"github.com/rlmesh/rlmesh/metrics"
	"github.com/rlmesh/rlmesh/model"
)

// stubEnv is a minimal deterministic environment for exercising Base.
type stubEnv struct {
	obs core.Discrete
	act core.Discrete
}

func newStubEnv() *stubEnv {
	return &stubEnv{
		obs: core.Discrete{N: 4},
		act: core.Discrete{N: 2, Labels: []string{"left", "right"}},
	}
}

func (e *stubEnv) Reset(context.Context) ([]float64, error) { return []float64{0}, nil }

func (e *stubEnv) Step(_ context.Context, action []float64) (core.Timestep, error) {
	return core.Timestep{Observation: []float64{action[0] + 1}, Reward: 1}, nil
}

func (e *stubEnv) ObservationSpace() core.Space { return e.obs }
func (e *stubEnv) ActionSpace() core.Space      { return e.act }
func (e *stubEnv) Close() error                 { return nil }

var _ core.Environment = (*stubEnv)(nil)

func TestNewBaseValidation(t *testing.T) {
	_, err := NewBase("", newStubEnv(), nil)
	assert.Error(t, err)

	_, err = NewBase("test", nil, nil)
	assert.Error(t, err)
}

func TestNewBaseDefaults(t *testing.T) {
	base, err := NewBase("test", newStubEnv(), nil)
	require.NoError(t, err)

	assert.Equal(t, "test", base.Name())
	assert.NotEmpty(t, base.RunID())
	assert.Contains(t, base.ExperimentDir(), "_test")
	assert.Equal(t, 100, base.Config().RewardWindow)
	assert.Nil(t, base.Memory())
}

func TestNewBaseExperimentName(t *testing.T) {
	base, err := NewBase("test", newStubEnv(), nil, func(o *Options) {
		o.Config.LogDir = "out"
		o.Config.ExperimentName = "exp1"
	})
	require.NoError(t, err)
	assert.Equal(t, "out/exp1", base.ExperimentDir())
}

func TestBaseActNotImplemented(t *testing.T) {
	base, err := NewBase("test", newStubEnv(), nil)
	require.NoError(t, err)

	_, err = base.Act(context.Background(), []float64{0}, 0, 10)
	assert.ErrorIs(t, err, core.ErrNotImplemented)
}

func TestBaseRecordTransitionMetrics(t *testing.T) {
	rec := metrics.NewRecorder()
	base, err := NewBase("test", newStubEnv(), nil, func(o *Options) {
		o.Writer = rec
		o.Config.RewardWindow = 2
	})
	require.NoError(t, err)

	rewards := []float64{1, 3, 5}
	for i, r := range rewards {
		tr := core.Transition{State: []float64{0}, Action: []float64{0}, Reward: r, Timestep: i}
		require.NoError(t, base.RecordTransition(context.Background(), tr, i, len(rewards)))
	}

	maxes := rec.ByTag(TagRewardMax)
	mins := rec.ByTag(TagRewardMin)
	means := rec.ByTag(TagRewardMean)
	require.Len(t, maxes, 3)
	require.Len(t, mins, 3)
	require.Len(t, means, 3)

	// Window of 2: the last step sees rewards {3, 5}.
	assert.Equal(t, 5.0, maxes[2].Value)
	assert.Equal(t, 3.0, mins[2].Value)
	assert.Equal(t, 4.0, means[2].Value)
	assert.Equal(t, 2, maxes[2].Step)
}

func TestBaseRecordTransitionMemory(t *testing.T) {
	mem, err := memory.NewRing(8, 1)
	require.NoError(t, err)

	base, err := NewBase("test", newStubEnv(), nil, func(o *Options) {
		o.Memory = mem
	})
	require.NoError(t, err)

	tr := core.Transition{State: []float64{1}, Action: []float64{0}, Reward: 0.5, NextState: []float64{2}}
	require.NoError(t, base.RecordTransition(context.Background(), tr, 0, 1))
	assert.Equal(t, 1, mem.Len())
}

func TestBaseEvalSkipsMemoryWrites(t *testing.T) {
	mem, err := memory.NewRing(8, 1)
	require.NoError(t, err)

	base, err := NewBase("test", newStubEnv(), nil, func(o *Options) {
		o.Memory = mem
	})
	require.NoError(t, err)
	require.NoError(t, base.SetMode(core.ModeEval))

	require.NoError(t, base.RecordTransition(context.Background(), core.Transition{Reward: 1}, 0, 1))
	assert.Equal(t, 0, mem.Len(), "evaluation must not pollute the replay buffer")
	assert.Equal(t, core.ModeEval, base.Mode())

	require.NoError(t, base.SetMode(core.ModeTrain))
	require.NoError(t, base.RecordTransition(context.Background(), core.Transition{Reward: 1}, 1, 2))
	assert.Equal(t, 1, mem.Len())
}

func TestBaseSetModeFanOut(t *testing.T) {
	m1 := model.NewMockModel("policy", []float64{0})
	m2 := model.NewMockModel("target", []float64{1})
	base, err := NewBase("test", newStubEnv(), map[string]model.Model{"policy": m1, "target": m2})
	require.NoError(t, err)

	require.NoError(t, base.SetMode(core.ModeTrain))
	require.NoError(t, base.SetMode(core.ModeEval))

	assert.Equal(t, []core.Mode{core.ModeTrain, core.ModeEval}, m1.ModeHistory())
	assert.Equal(t, []core.Mode{core.ModeTrain, core.ModeEval}, m2.ModeHistory())

	err = base.SetMode(core.Mode("bogus"))
	assert.Error(t, err)
}

func TestBaseHooksDefaultToNoOps(t *testing.T) {
	base, err := NewBase("test", newStubEnv(), nil)
	require.NoError(t, err)

	assert.NoError(t, base.PreInteraction(context.Background(), 0, 10))
	assert.NoError(t, base.PostInteraction(context.Background(), 0, 10))
}

func TestBaseCheckpointRoundTrip(t *testing.T) {
	m := model.NewMockModel("policy", []float64{2})
	store := checkpoint.NewInMemoryStore()
	base, err := NewBase("test", newStubEnv(), map[string]model.Model{"policy": m}, func(o *Options) {
		o.Checkpoints = store
	})
	require.NoError(t, err)

	require.NoError(t, base.SaveCheckpoint())

	names, err := store.List(base.RunID())
	require.NoError(t, err)
	assert.Equal(t, []string{"policy"}, names)

	require.NoError(t, base.LoadCheckpoint())
}

func TestBaseCheckpointUnconfigured(t *testing.T) {
	base, err := NewBase("test", newStubEnv(), nil)
	require.NoError(t, err)

	assert.Error(t, base.SaveCheckpoint())
	assert.Error(t, base.LoadCheckpoint())
}

func TestBaseString(t *testing.T) {
	base, err := NewBase("test", newStubEnv(), nil, func(o *Options) {
		o.Config.Extra = map[string]any{"epsilon": 0.1}
	})
	require.NoError(t, err)

	s := base.String()
	assert.Contains(t, s, "Agent: test")
	assert.Contains(t, s, "|-- log_dir: runs")
	assert.Contains(t, s, "|     |-- epsilon: 0.1")
}

func TestBaseModelsCopy(t *testing.T) {
	m := model.NewMockModel("policy", []float64{0})
	base, err := NewBase("test", newStubEnv(), map[string]model.Model{"policy": m})
	require.NoError(t, err)

	models := base.Models()
	delete(models, "policy")
	assert.NotNil(t, base.Model("policy"))
}

func TestBaseRecordTransitionMemoryError(t *testing.T) {
	base, err := NewBase("test", newStubEnv(), nil, func(o *Options) {
		o.Memory = failingMemory{}
	})
	require.NoError(t, err)

	err = base.RecordTransition(context.Background(), core.Transition{}, 0, 1)
	assert.Error(t, err)
}

type failingMemory struct{}

func (failingMemory) Record(core.Transition) error          { return errors.New("full") }
func (failingMemory) Sample(int) ([]core.Transition, error) { return nil, errors.New("empty") }
func (failingMemory) Len() int                              { return 0 }
func (failingMemory) Clear() error                          { return nil }
