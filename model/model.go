package model

import (
	"context"
	"sync"

	"github.com/vmihailenco/msgpack/v5"

	"github.com/rlmesh/rlmesh/core"
)

// Info contains metadata about a model implementation.
type Info struct {
	Name     string `json:"name"`
	Provider string `json:"provider"` // "mock", "openai", "anthropic", "local", etc.
}

// Model is the minimal interface required by agents to drive action
// selection. Implementations must be safe for sequential use from a single
// trainer goroutine; they are not required to be goroutine-safe.
type Model interface {
	// Act maps an observation to an action. timestep/timesteps communicate
	// loop progress so implementations can schedule exploration.
	Act(ctx context.Context, observation []float64, timestep, timesteps int) ([]float64, error)

	// SetMode switches between training and evaluation behavior.
	SetMode(mode core.Mode)

	// Mode returns the currently active mode.
	Mode() core.Mode

	// Info returns information about the model implementation.
	Info() Info

	// Snapshot serializes the model parameters for checkpointing.
	Snapshot() ([]byte, error)

	// Restore loads previously snapshotted parameters.
	Restore(data []byte) error
}

// MockModel is a lightweight in-memory Model useful for tests and examples.
// It replays a fixed action, records every mode switch and counts Act calls.
type MockModel struct {
	mu          sync.Mutex
	info        Info
	mode        core.Mode
	action      []float64
	actErr      error
	actCalls    int
	modeHistory []core.Mode
}

// NewMockModel constructs a MockModel that always returns action.
func NewMockModel(name string, action []float64) *MockModel {
	return &MockModel{
		info:   Info{Name: name, Provider: "mock"},
		mode:   core.ModeEval,
		action: append([]float64(nil), action...),
	}
}

// Act implements Model; returns the canned action or the configured error.
func (m *MockModel) Act(_ context.Context, _ []float64, _, _ int) ([]float64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.actCalls++
	if m.actErr != nil {
		return nil, m.actErr
	}
	return append([]float64(nil), m.action...), nil
}

// FailWith makes every subsequent Act call return err.
func (m *MockModel) FailWith(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.actErr = err
}

// SetMode records and applies the mode switch.
func (m *MockModel) SetMode(mode core.Mode) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.mode = mode
	m.modeHistory = append(m.modeHistory, mode)
}

// Mode returns the active mode.
func (m *MockModel) Mode() core.Mode {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.mode
}

// Info implements Model.
func (m *MockModel) Info() Info { return m.info }

// Snapshot serializes the canned action so checkpoint round-trips are
// observable in tests.
func (m *MockModel) Snapshot() ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return msgpack.Marshal(m.action)
}

// Restore loads a snapshotted action.
func (m *MockModel) Restore(data []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return msgpack.Unmarshal(data, &m.action)
}

// ActCalls returns the number of Act invocations.
func (m *MockModel) ActCalls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.actCalls
}

// ModeHistory returns a copy of the recorded mode switches.
func (m *MockModel) ModeHistory() []core.Mode {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]core.Mode(nil), m.modeHistory...)
}
