// Package model defines the policy/value model contract used by agents. A
// Model maps observations to actions, carries a train/eval mode switch, and
// can snapshot its parameters for checkpointing. The package also provides
// MockModel, a deterministic in-memory implementation for tests and examples.
//
// Provider-backed implementations live in subpackages (openai, anthropic) to
// keep their SDK dependencies out of the core import graph.
package model
