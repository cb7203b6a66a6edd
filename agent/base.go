package agent

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"github.com/rlmesh/rlmesh/core"
	"github.com/rlmesh/rlmesh/internal/util"
	"github.com/rlmesh/rlmesh/logging"
	"github.com/rlmesh/rlmesh/metrics"
	"github.com/rlmesh/rlmesh/model"
)

// Scalar tags emitted by the default RecordTransition.
const (
	TagRewardMax  = "reward/instantaneous/max"
	TagRewardMin  = "reward/instantaneous/min"
	TagRewardMean = "reward/instantaneous/mean"
)

// Options holds dependency and configuration overrides passed to NewBase().
type Options struct {
	// Memory stores recorded transitions. Optional; when nil transitions
	// are only reflected in metrics.
	Memory core.Memory

	// Checkpoints persists model snapshots. Optional.
	Checkpoints core.CheckpointStore

	// Writer receives per-step scalar metrics.
	Writer metrics.ScalarWriter

	// Logger receives structured diagnostics.
	Logger logging.Logger

	// Config carries the shared agent settings.
	Config Config
}

// Base bundles the state every agent owns: the environment handle, the named
// model set, an optional experience memory, the scalar metric sink and the
// run identity. Embed it in concrete agent implementations and supply an Act
// method to satisfy core.Agent; the remaining hooks have sensible defaults.
//
// All exported methods are goroutine-safe unless otherwise documented.
type Base struct {
	name   string
	env    core.Environment
	models map[string]model.Model

	memory      core.Memory
	checkpoints core.CheckpointStore
	writer      metrics.ScalarWriter
	logger      logging.Logger
	cfg         Config

	runID         string
	experimentDir string

	rewards *rewardWindow
	mode    *modeState
}

// modeState holds the active mode behind a pointer so Base stays copyable
// when embedded.
type modeState struct {
	mu sync.Mutex
	m  core.Mode
}

func (s *modeState) set(m core.Mode) {
	s.mu.Lock()
	s.m = m
	s.mu.Unlock()
}

func (s *modeState) get() core.Mode {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.m
}

// rewardWindow is a fixed-capacity sliding window over recent rewards.
// Held behind a pointer so Base stays copyable when embedded.
type rewardWindow struct {
	mu     sync.Mutex
	values []float64
	limit  int
}

func (w *rewardWindow) push(r float64) []float64 {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.values = append(w.values, r)
	if len(w.values) > w.limit {
		w.values = w.values[len(w.values)-w.limit:]
	}
	return append([]float64(nil), w.values...)
}

// NewBase constructs a Base with the given environment and named models.
// The experiment directory is derived from the config as
// <log_dir>/<yy-mm-dd_HH-MM-SS>_<name> unless an explicit experiment name is
// configured. The directory itself is created lazily by metric writers.
func NewBase(name string, env core.Environment, models map[string]model.Model, optFns ...func(o *Options)) (Base, error) {
	if name == "" {
		return Base{}, fmt.Errorf("agent name must not be empty")
	}
	if env == nil {
		return Base{}, fmt.Errorf("agent %s: environment must not be nil", name)
	}

	opts := Options{
		Writer: metrics.Noop{},
		Logger: logging.NoOpLogger{},
		Config: DefaultConfig(),
	}
	for _, fn := range optFns {
		fn(&opts)
	}
	if opts.Config.LogDir == "" {
		opts.Config.LogDir = "runs"
	}
	if opts.Config.RewardWindow <= 0 {
		opts.Config.RewardWindow = 100
	}

	experiment := opts.Config.ExperimentName
	if experiment == "" {
		experiment = fmt.Sprintf("%s_%s", time.Now().Format("06-01-02_15-04-05"), name)
	}

	return Base{
		name:          name,
		env:           env,
		models:        models,
		memory:        opts.Memory,
		checkpoints:   opts.Checkpoints,
		writer:        opts.Writer,
		logger:        opts.Logger,
		cfg:           opts.Config,
		runID:         util.NewID(),
		experimentDir: filepath.Join(opts.Config.LogDir, experiment),
		rewards:       &rewardWindow{limit: opts.Config.RewardWindow},
		mode:          &modeState{m: core.ModeTrain},
	}, nil
}

// Name returns the human-readable name for this agent.
func (b *Base) Name() string { return b.name }

// RunID returns the unique identifier generated for this agent instance.
func (b *Base) RunID() string { return b.runID }

// ExperimentDir returns the directory metric writers and checkpoints for
// this run should live in.
func (b *Base) ExperimentDir() string { return b.experimentDir }

// Env returns the environment handle.
func (b *Base) Env() core.Environment { return b.env }

// Model returns the named model or nil when absent.
func (b *Base) Model(name string) model.Model { return b.models[name] }

// Models returns a shallow copy of the named model set for safe iteration.
func (b *Base) Models() map[string]model.Model {
	out := make(map[string]model.Model, len(b.models))
	for k, v := range b.models {
		out[k] = v
	}
	return out
}

// Memory returns the configured experience memory or nil.
func (b *Base) Memory() core.Memory { return b.memory }

// Writer returns the scalar metric sink.
func (b *Base) Writer() metrics.ScalarWriter { return b.writer }

// Logger returns the structured logger.
func (b *Base) Logger() logging.Logger { return b.logger }

// Config returns the agent configuration.
func (b *Base) Config() Config { return b.cfg }

// Mode returns the active mode. Agents start in training mode.
func (b *Base) Mode() core.Mode { return b.mode.get() }

// Act is a must-override: Base carries no policy. Concrete agents embed Base
// and supply their own implementation.
func (b *Base) Act(_ context.Context, _ []float64, _, _ int) ([]float64, error) {
	return nil, fmt.Errorf("agent %s: act: %w", b.name, core.ErrNotImplemented)
}

// RecordTransition records an environment transition: the transition is
// appended to the memory when one is configured, and the instantaneous
// reward min/max/mean over the recent window are written to the scalar sink
// keyed by the current timestep. Evaluation runs skip the memory write so
// replay buffers only hold training experience. Overrides that still want
// the metric side effect should call this method before their own logic.
func (b *Base) RecordTransition(_ context.Context, t core.Transition, timestep, _ int) error {
	if b.memory != nil && b.mode.get() != core.ModeEval {
		if err := b.memory.Record(t); err != nil {
			return fmt.Errorf("agent %s: record transition: %w", b.name, err)
		}
	}

	window := b.rewards.push(t.Reward)

	if err := b.writer.WriteScalar(TagRewardMax, floats.Max(window), timestep); err != nil {
		return fmt.Errorf("agent %s: write scalar: %w", b.name, err)
	}
	if err := b.writer.WriteScalar(TagRewardMin, floats.Min(window), timestep); err != nil {
		return fmt.Errorf("agent %s: write scalar: %w", b.name, err)
	}
	if err := b.writer.WriteScalar(TagRewardMean, stat.Mean(window, nil), timestep); err != nil {
		return fmt.Errorf("agent %s: write scalar: %w", b.name, err)
	}
	return nil
}

// PreInteraction is called before the interaction with the environment.
// The default does nothing.
func (b *Base) PreInteraction(_ context.Context, _, _ int) error { return nil }

// PostInteraction is called after the interaction with the environment.
// The default does nothing.
func (b *Base) PostInteraction(_ context.Context, _, _ int) error { return nil }

// SetMode switches the agent and every owned model between training and
// evaluation.
func (b *Base) SetMode(mode core.Mode) error {
	if !mode.Valid() {
		return fmt.Errorf("agent %s: unknown mode %q", b.name, mode)
	}
	b.mode.set(mode)
	for name, m := range b.models {
		m.SetMode(mode)
		b.logger.Debug("model mode switched", "agent", b.name, "model", name, "mode", string(mode))
	}
	return nil
}

// SaveCheckpoint snapshots every named model into the checkpoint store under
// this agent's run ID.
func (b *Base) SaveCheckpoint() error {
	if b.checkpoints == nil {
		return fmt.Errorf("agent %s: checkpoint store not configured", b.name)
	}
	for name, m := range b.models {
		data, err := m.Snapshot()
		if err != nil {
			return fmt.Errorf("agent %s: snapshot model %s: %w", b.name, name, err)
		}
		if err := b.checkpoints.Save(b.runID, name, data); err != nil {
			return fmt.Errorf("agent %s: save checkpoint %s: %w", b.name, name, err)
		}
	}
	return nil
}

// LoadCheckpoint restores every named model from the checkpoint store.
// Models without a stored snapshot are left untouched.
func (b *Base) LoadCheckpoint() error {
	if b.checkpoints == nil {
		return fmt.Errorf("agent %s: checkpoint store not configured", b.name)
	}
	for name, m := range b.models {
		data, err := b.checkpoints.Get(b.runID, name)
		if errors.Is(err, core.ErrNotFound) {
			continue
		}
		if err != nil {
			return fmt.Errorf("agent %s: load checkpoint %s: %w", b.name, name, err)
		}
		if err := m.Restore(data); err != nil {
			return fmt.Errorf("agent %s: restore model %s: %w", b.name, name, err)
		}
	}
	return nil
}

// String renders the agent and its configuration as an indented tree.
func (b *Base) String() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Agent: %s", b.name)
	b.cfg.render(&sb)
	return sb.String()
}
