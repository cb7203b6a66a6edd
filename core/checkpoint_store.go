package core

// CheckpointStore defines persistence for model snapshots produced during a
// run. Snapshots are opaque byte payloads keyed by run ID and model name;
// the store never interprets their contents.
type CheckpointStore interface {
	Save(runID, name string, data []byte) error
	Get(runID, name string) ([]byte, error)
	List(runID string) ([]string, error)
	Delete(runID, name string) error
}
