package core

// Mode selects the behavioral profile of models and agents: training
// typically explores while evaluation acts greedily.
type Mode string

const (
	// ModeTrain enables training behavior (exploration, stochastic acting).
	ModeTrain Mode = "train"
	// ModeEval enables evaluation behavior (deterministic acting).
	ModeEval Mode = "eval"
)

// Valid reports whether m is a known mode.
func (m Mode) Valid() bool { return m == ModeTrain || m == ModeEval }
