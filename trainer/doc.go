// Package trainer drives the agent/environment interaction loop.
//
// The Sequential trainer implements the canonical single-environment loop:
// for each timestep it calls the agent's PreInteraction hook, asks the agent
// to act on the current observation, steps the environment, hands the
// resulting transition to RecordTransition and finishes with PostInteraction.
// Episodes are reset transparently when the environment reports done.
//
// Callbacks provide a flexible mechanism for hooking into the loop without
// modifying core logic: before/after each step, at episode boundaries and on
// errors. Callbacks run synchronously in registration order and can abort
// training by returning an error.
package trainer
