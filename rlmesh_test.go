package rlmesh

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rlmesh/rlmesh/agent"
	"github.com/rlmesh/rlmesh/env"
	"github.com/rlmesh/rlmesh/metrics"
)

func TestMeshTrainsRandomAgent(t *testing.T) {
	rec := metrics.NewRecorder()
	mesh, err := New(func(o *Options) {
		o.Timesteps = 50
		o.Writer = rec
		o.AgentConfig.Seed = 7
	})
	require.NoError(t, err)

	world, err := env.NewGridWorld(func(o *env.GridWorldOptions) {
		o.StepLimit = 10
	})
	require.NoError(t, err)
	defer world.Close()

	a, err := agent.NewRandom(world, nil, mesh.AgentOptions())
	require.NoError(t, err)

	res, err := mesh.Train(context.Background(), a, world)
	require.NoError(t, err)

	assert.Equal(t, 50, res.Timesteps)
	assert.Greater(t, res.Episodes, 0)
	assert.Len(t, rec.ByTag(agent.TagRewardMean), 50)
	assert.Greater(t, a.Memory().Len(), 0, "mesh wires the shared memory into the agent")
}

func TestMeshEval(t *testing.T) {
	mesh, err := New(func(o *Options) { o.Timesteps = 5 })
	require.NoError(t, err)

	world, err := env.NewGridWorld()
	require.NoError(t, err)
	defer world.Close()

	a, err := agent.NewRandom(world, nil, mesh.AgentOptions())
	require.NoError(t, err)

	res, err := mesh.Eval(context.Background(), a, world)
	require.NoError(t, err)
	assert.Equal(t, 5, res.Timesteps)
}
