// Package core provides the foundational domain types and interfaces used by
// rlmesh. It defines the core abstractions for:
//
//   - Spaces (the layout and bounds of observations and actions)
//   - Transitions (single-step interaction records)
//   - Environments (the step/reset contract agents interact with)
//   - Memories (pluggable experience stores)
//   - Checkpoint stores (pluggable model snapshot persistence)
//
// The package intentionally keeps implementation concerns (concrete agents,
// environments, durable storage backends) out of scope, exposing small
// interfaces to enable custom backends and extensions.
package core
