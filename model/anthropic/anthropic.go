// Package anthropic provides a model.Model backed by the Anthropic Messages
// API. Like its openai sibling it is a non-learning discrete policy: Act
// renders the observation and action menu as a prompt and parses the chosen
// option index from the reply.
package anthropic

import (
	"context"
	"fmt"
	"strings"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"

	"github.com/rlmesh/rlmesh/core"
	"github.com/rlmesh/rlmesh/model"
)

const defaultSystemPrompt = "You control an agent in a simulated environment. " +
	"Each turn you receive the current observation vector and a numbered list of actions. " +
	"Reply with the index of the single best action and nothing else."

// Options configures the Anthropic policy adapter (model id, temperature,
// max tokens, API key). Extend via functional options to preserve stability.
type Options struct {
	Model        anthropic.Model
	Temperature  float64
	MaxTokens    int64
	APIKey       string
	SystemPrompt string
}

// Model wraps the Anthropic Messages API behind the generic model.Model
// interface. It carries no learnable parameters; Snapshot returns an empty
// payload.
type Model struct {
	client *anthropic.Client
	space  core.Discrete
	mode   core.Mode
	opts   Options
}

// NewModel creates a new Anthropic policy using the official client.
func NewModel(space core.Discrete, optFns ...func(o *Options)) *Model {
	opts := defaultOptions()
	for _, fn := range optFns {
		fn(&opts)
	}

	var clientOpts []option.RequestOption
	if opts.APIKey != "" {
		clientOpts = append(clientOpts, option.WithAPIKey(opts.APIKey))
	}
	client := anthropic.NewClient(clientOpts...)

	return &Model{client: &client, space: space, mode: core.ModeEval, opts: opts}
}

// NewModelFromClient creates a new Anthropic policy from an existing client.
func NewModelFromClient(client *anthropic.Client, space core.Discrete, optFns ...func(o *Options)) *Model {
	opts := defaultOptions()
	for _, fn := range optFns {
		fn(&opts)
	}
	return &Model{client: client, space: space, mode: core.ModeEval, opts: opts}
}

func defaultOptions() Options {
	return Options{
		Model:        anthropic.ModelClaude3_5Sonnet20241022,
		Temperature:  0.7,
		MaxTokens:    64,
		SystemPrompt: defaultSystemPrompt,
	}
}

// Act implements model.Model by asking the model to pick an action index.
func (m *Model) Act(ctx context.Context, observation []float64, timestep, timesteps int) ([]float64, error) {
	params := anthropic.MessageNewParams{
		Model:       m.opts.Model,
		MaxTokens:   m.opts.MaxTokens,
		Temperature: anthropic.Float(m.temperature()),
		System:      []anthropic.TextBlockParam{{Text: m.opts.SystemPrompt}},
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(m.buildUserPrompt(observation, timestep, timesteps))),
		},
	}

	resp, err := m.client.Messages.New(ctx, params)
	if err != nil {
		return nil, fmt.Errorf("anthropic api error: %w", err)
	}

	var text strings.Builder
	for _, block := range resp.Content {
		if block.Type == "text" {
			text.WriteString(block.AsText().Text)
		}
	}

	idx, err := model.ParseActionIndex(text.String(), m.space.N)
	if err != nil {
		return nil, err
	}
	return []float64{float64(idx)}, nil
}

// temperature returns the sampling temperature for the active mode;
// evaluation acts greedily.
func (m *Model) temperature() float64 {
	if m.mode == core.ModeEval {
		return 0
	}
	return m.opts.Temperature
}

func (m *Model) buildUserPrompt(observation []float64, timestep, timesteps int) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Timestep %d of %d.\n", timestep, timesteps)
	fmt.Fprintf(&b, "Observation: %s\n", model.FormatObservation(observation))
	b.WriteString("Actions:\n")
	b.WriteString(model.FormatActionMenu(m.space))
	b.WriteString("Answer with the action index only.")
	return b.String()
}

// SetMode switches between exploratory and greedy sampling.
func (m *Model) SetMode(mode core.Mode) { m.mode = mode }

// Mode returns the active mode.
func (m *Model) Mode() core.Mode { return m.mode }

// Info returns metadata describing this Anthropic policy.
func (m *Model) Info() model.Info {
	return model.Info{Name: string(m.opts.Model), Provider: "anthropic"}
}

// Snapshot implements model.Model. The policy holds no learnable state.
func (m *Model) Snapshot() ([]byte, error) { return nil, nil }

// Restore implements model.Model as a no-op.
func (m *Model) Restore([]byte) error { return nil }
