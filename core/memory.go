package core

// Memory defines persistence and retrieval for experience transitions.
// Implementations can back storage with process-local buffers or durable
// stores. Short method names align with the other store interfaces.
type Memory interface {
	// Record appends a transition to the store.
	Record(t Transition) error

	// Sample returns up to n transitions drawn uniformly at random.
	Sample(n int) ([]Transition, error)

	// Len returns the number of stored transitions.
	Len() int

	// Clear removes all stored transitions.
	Clear() error
}
