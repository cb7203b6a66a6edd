package trainer

import (
	"context"

	"github.com/rlmesh/rlmesh/core"
)

// CallbackType defines the lifecycle points where callbacks can be executed.
type CallbackType string

const (
	// CallbackBeforeStep is triggered before the agent acts on a timestep.
	CallbackBeforeStep CallbackType = "before_step"

	// CallbackAfterStep is triggered after the transition has been recorded.
	CallbackAfterStep CallbackType = "after_step"

	// CallbackEpisodeEnd is triggered when the environment reports done,
	// before the next reset.
	CallbackEpisodeEnd CallbackType = "episode_end"

	// CallbackOnError is triggered when a step fails. The original error is
	// returned to the caller regardless of what the callback does.
	CallbackOnError CallbackType = "on_error"
)

// CallbackContext carries the loop state a callback might need. Fields not
// meaningful for a given callback type are zero-valued: Transition is only
// populated from CallbackAfterStep onward, Err only for CallbackOnError.
type CallbackContext struct {
	// Agent is the agent being trained or evaluated.
	Agent core.Agent

	// CallbackType indicates which lifecycle point triggered this execution.
	CallbackType CallbackType

	// Timestep and Timesteps locate the callback within the run.
	Timestep  int
	Timesteps int

	// Episode counts completed episodes so far.
	Episode int

	// Transition is the most recent environment transition.
	Transition core.Transition

	// Err is the failure being reported for CallbackOnError.
	Err error
}

// Callback defines the interface for training loop lifecycle hooks.
//
// Implementations should be fast (callbacks run synchronously on the loop)
// and must not panic. Returning an error aborts the run.
type Callback interface {
	// Type returns the callback type this implementation handles.
	Type() CallbackType

	// Execute performs the callback logic with the provided context.
	Execute(ctx context.Context, cbCtx *CallbackContext) error
}

// FunctionCallback wraps a function as a callback implementation. Useful for
// simple, stateless hooks without a dedicated type.
type FunctionCallback struct {
	callbackType CallbackType
	fn           func(ctx context.Context, cbCtx *CallbackContext) error
}

// NewFunctionCallback creates a new function-based callback for the given
// lifecycle point.
func NewFunctionCallback(
	callbackType CallbackType,
	fn func(ctx context.Context, cbCtx *CallbackContext) error,
) *FunctionCallback {
	return &FunctionCallback{
		callbackType: callbackType,
		fn:           fn,
	}
}

// Type returns the callback type this function handles.
func (c *FunctionCallback) Type() CallbackType {
	return c.callbackType
}

// Execute calls the wrapped function with the provided context.
func (c *FunctionCallback) Execute(ctx context.Context, cbCtx *CallbackContext) error {
	return c.fn(ctx, cbCtx)
}

// CallbackManager routes lifecycle events to registered callbacks.
//
// Callbacks are executed sequentially in registration order; the first error
// stops execution and is propagated. Registration is not goroutine-safe;
// register everything before starting the loop.
type CallbackManager struct {
	callbacks map[CallbackType][]Callback
}

// NewCallbackManager creates an empty callback manager.
func NewCallbackManager() *CallbackManager {
	return &CallbackManager{
		callbacks: make(map[CallbackType][]Callback),
	}
}

// RegisterCallback adds a callback for its declared type. Multiple callbacks
// per type are allowed and run in registration order.
func (cm *CallbackManager) RegisterCallback(callback Callback) {
	callbackType := callback.Type()
	cm.callbacks[callbackType] = append(cm.callbacks[callbackType], callback)
}

// ExecuteCallbacks runs every callback registered for the type. The first
// error aborts the sequence and is returned.
func (cm *CallbackManager) ExecuteCallbacks(
	ctx context.Context,
	callbackType CallbackType,
	cbCtx *CallbackContext,
) error {
	callbacks, exists := cm.callbacks[callbackType]
	if !exists {
		return nil
	}

	for _, callback := range callbacks {
		if err := callback.Execute(ctx, cbCtx); err != nil {
			return err
		}
	}

	return nil
}
