// Package agent contains the agent base type and supporting utilities for
// building rlmesh agents. The package focuses on three concerns:
//
//  1. Shared construction plumbing (Base): environment handle, named model
//     set, optional memory, metric sink, run identity and experiment directory
//  2. Defaulted lifecycle hooks: reward metric emission in RecordTransition,
//     mode fan-out in SetMode, no-op pre/post interaction callbacks
//  3. A minimal concrete agent (Random) used as the reference override
//     example and test vehicle
//
// Design principles:
//   - Minimal hidden global state - explicit wiring via functional options
//   - Extensibility - embed Base; only implement Act plus any custom hooks
//   - Observability - per-step reward scalars and structured logging hooks
//
// Learning algorithms live outside this package; Base deliberately performs
// no optimization.
package agent
