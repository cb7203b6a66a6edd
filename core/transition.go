package core

// Transition is a single environment interaction record: the observation the
// agent acted on, the action it took, the instantaneous reward, the resulting
// observation and the episode-termination flag. Timestep is the global step
// index at which the transition was produced.
//
// Transitions are msgpack-serializable so durable memories can persist them
// without a separate wire type.
type Transition struct {
	State     []float64 `msgpack:"state"`
	Action    []float64 `msgpack:"action"`
	Reward    float64   `msgpack:"reward"`
	NextState []float64 `msgpack:"next_state"`
	Done      bool      `msgpack:"done"`
	Timestep  int       `msgpack:"timestep"`
}

// Clone returns a deep copy; stores keep clones so callers can reuse their
// slices between steps.
func (t Transition) Clone() Transition {
	c := t
	c.State = append([]float64(nil), t.State...)
	c.Action = append([]float64(nil), t.Action...)
	c.NextState = append([]float64(nil), t.NextState...)
	return c
}
