// Package checkpoint provides core.CheckpointStore implementations for
// persisting model snapshots: an in-memory store for tests and prototypes,
// and a filesystem store writing one file per snapshot under the run's
// directory.
package checkpoint
