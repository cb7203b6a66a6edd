package env

import (
	"context"
	"fmt"
	"sync"

	"github.com/rlmesh/rlmesh/core"
)

// GridWorld action indices, in action-space order.
const (
	ActionUp = iota
	ActionDown
	ActionLeft
	ActionRight
)

// GridWorldOptions configure the windy grid world.
type GridWorldOptions struct {
	// Rows and Cols set the grid dimensions.
	Rows int
	Cols int

	// Wind holds the upward push per column. Length must equal Cols when
	// set; nil means no wind.
	Wind []int

	// StepLimit caps episode length. Reaching it ends the episode without
	// the goal reward.
	StepLimit int

	// GoalReward is granted on reaching the bottom-right cell. Every other
	// step costs StepPenalty.
	GoalReward  float64
	StepPenalty float64
}

// GridWorld is a windy grid world: the agent starts in the top-left cell and
// must reach the bottom-right cell while a per-column wind pushes it upward
// after each move. Moves that would leave the grid are clipped to the edge.
// Observations are the normalized (row, col) position.
type GridWorld struct {
	opts GridWorldOptions

	obsSpace core.Box
	actSpace core.Discrete

	mu    sync.Mutex
	row   int
	col   int
	steps int
	done  bool
}

// Compile-time interface check.
var _ core.Environment = (*GridWorld)(nil)

// NewGridWorld creates a windy grid world. Zero-valued options select a
// 7x10 grid with the classic wind column profile, -1 step penalty and a
// 200-step episode cap.
func NewGridWorld(optFns ...func(o *GridWorldOptions)) (*GridWorld, error) {
	opts := GridWorldOptions{
		Rows:        7,
		Cols:        10,
		Wind:        []int{0, 0, 0, 1, 1, 1, 2, 2, 1, 0},
		StepLimit:   200,
		GoalReward:  0,
		StepPenalty: -1,
	}
	for _, fn := range optFns {
		fn(&opts)
	}
	if opts.Rows < 2 || opts.Cols < 2 {
		return nil, fmt.Errorf("grid must be at least 2x2, got %dx%d", opts.Rows, opts.Cols)
	}
	if opts.Wind != nil && len(opts.Wind) != opts.Cols {
		return nil, fmt.Errorf("wind profile has %d columns, grid has %d", len(opts.Wind), opts.Cols)
	}
	if opts.StepLimit <= 0 {
		return nil, fmt.Errorf("step limit must be positive, got %d", opts.StepLimit)
	}

	return &GridWorld{
		opts:     opts,
		obsSpace: core.NewBox([]float64{0, 0}, []float64{1, 1}),
		actSpace: core.Discrete{N: 4, Labels: []string{"up", "down", "left", "right"}},
		done:     true,
	}, nil
}

// Reset starts a new episode in the top-left cell.
func (g *GridWorld) Reset(ctx context.Context) ([]float64, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	g.mu.Lock()
	defer g.mu.Unlock()
	g.row, g.col = 0, 0
	g.steps = 0
	g.done = false
	return g.observation(), nil
}

// Step applies a movement action, then the wind of the destination column.
func (g *GridWorld) Step(ctx context.Context, action []float64) (core.Timestep, error) {
	if err := ctx.Err(); err != nil {
		return core.Timestep{}, err
	}
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.done {
		return core.Timestep{}, fmt.Errorf("episode finished, call Reset")
	}
	if len(action) != 1 {
		return core.Timestep{}, fmt.Errorf("expected a single action index, got %d values", len(action))
	}
	idx := int(action[0])
	if idx < 0 || idx >= g.actSpace.N {
		return core.Timestep{}, fmt.Errorf("action index %d out of range [0,%d)", idx, g.actSpace.N)
	}

	switch idx {
	case ActionUp:
		g.row--
	case ActionDown:
		g.row++
	case ActionLeft:
		g.col--
	case ActionRight:
		g.col++
	}
	g.col = clip(g.col, 0, g.opts.Cols-1)
	g.row = clip(g.row, 0, g.opts.Rows-1)
	if g.opts.Wind != nil {
		g.row = clip(g.row-g.opts.Wind[g.col], 0, g.opts.Rows-1)
	}
	g.steps++

	atGoal := g.row == g.opts.Rows-1 && g.col == g.opts.Cols-1
	reward := g.opts.StepPenalty
	if atGoal {
		reward = g.opts.GoalReward
	}
	g.done = atGoal || g.steps >= g.opts.StepLimit

	return core.Timestep{
		Observation: g.observation(),
		Reward:      reward,
		Done:        g.done,
		Info: map[string]any{
			"row":   g.row,
			"col":   g.col,
			"steps": g.steps,
			"goal":  atGoal,
		},
	}, nil
}

// ObservationSpace returns the normalized position box.
func (g *GridWorld) ObservationSpace() core.Space { return g.obsSpace }

// ActionSpace returns the four movement actions.
func (g *GridWorld) ActionSpace() core.Space { return g.actSpace }

// Close implements core.Environment. GridWorld holds no resources.
func (g *GridWorld) Close() error { return nil }

// observation returns the position normalized to [0,1] per axis.
// Callers must hold g.mu.
func (g *GridWorld) observation() []float64 {
	return []float64{
		float64(g.row) / float64(g.opts.Rows-1),
		float64(g.col) / float64(g.opts.Cols-1),
	}
}

func clip(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
