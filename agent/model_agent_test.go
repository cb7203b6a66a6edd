package agent

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rlmesh/rlmesh/core"
	"github.com/rlmesh/rlmesh/model"
)

func TestNewModelAgentRequiresPolicy(t *testing.T) {
	_, err := NewModelAgent("llm", newStubEnv(), nil)
	assert.Error(t, err)
}

func TestModelAgentActDelegates(t *testing.T) {
	m := model.NewMockModel("policy", []float64{1})
	a, err := NewModelAgent("llm", newStubEnv(), m)
	require.NoError(t, err)

	action, err := a.Act(context.Background(), []float64{0.5}, 3, 10)
	require.NoError(t, err)
	assert.Equal(t, []float64{1}, action)
	assert.Equal(t, 1, m.ActCalls())
}

func TestModelAgentActError(t *testing.T) {
	m := model.NewMockModel("policy", nil)
	boom := errors.New("rate limited")
	m.FailWith(boom)

	a, err := NewModelAgent("llm", newStubEnv(), m)
	require.NoError(t, err)

	_, err = a.Act(context.Background(), []float64{0}, 0, 1)
	assert.ErrorIs(t, err, boom)
}

func TestModelAgentSetModeReachesPolicy(t *testing.T) {
	m := model.NewMockModel("policy", []float64{0})
	a, err := NewModelAgent("llm", newStubEnv(), m)
	require.NoError(t, err)

	require.NoError(t, a.SetMode(core.ModeTrain))
	assert.Equal(t, core.ModeTrain, m.Mode())
	assert.NotNil(t, a.Model(PolicyModelKey))
}
