// Package openai provides a model.Model backed by the OpenAI Chat Completions
// API. It is a non-learning policy for discrete action spaces: each Act call
// renders the observation and the labeled action menu as a prompt and parses
// the chosen option index out of the completion. Suitable for
// text-describable environments and for baselining learned policies.
package openai

import (
	"context"
	"fmt"
	"strings"

	"github.com/openai/openai-go"

	"github.com/rlmesh/rlmesh/core"
	"github.com/rlmesh/rlmesh/model"
)

const defaultSystemPrompt = "You control an agent in a simulated environment. " +
	"Each turn you receive the current observation vector and a numbered list of actions. " +
	"Reply with the index of the single best action and nothing else."

// Options configure the OpenAI policy adapter. Fields mirror a subset of Chat
// Completion parameters intentionally kept minimal; extend via functional
// options without breaking callers.
type Options struct {
	Model               string
	Temperature         float64
	MaxCompletionTokens int64
	SystemPrompt        string
}

// Model wraps the OpenAI Chat Completions API behind the generic model.Model
// interface. It carries no learnable parameters; Snapshot returns an empty
// payload.
type Model struct {
	client *openai.Client
	space  core.Discrete
	mode   core.Mode
	opts   Options
}

// NewModel creates a new OpenAI policy using the official client. The API key
// is read from the environment by the SDK.
func NewModel(space core.Discrete, optFns ...func(o *Options)) *Model {
	client := openai.NewClient()
	return NewModelFromClient(&client, space, optFns...)
}

// NewModelFromClient creates a new OpenAI policy from an existing client.
func NewModelFromClient(client *openai.Client, space core.Discrete, optFns ...func(o *Options)) *Model {
	opts := Options{
		Model:               openai.ChatModelGPT4oMini,
		Temperature:         0.7,
		MaxCompletionTokens: 64,
		SystemPrompt:        defaultSystemPrompt,
	}
	for _, fn := range optFns {
		fn(&opts)
	}
	return &Model{client: client, space: space, mode: core.ModeEval, opts: opts}
}

// Act implements model.Model by asking the chat model to pick an action index.
func (m *Model) Act(ctx context.Context, observation []float64, timestep, timesteps int) ([]float64, error) {
	params := openai.ChatCompletionNewParams{
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage(m.opts.SystemPrompt),
			openai.UserMessage(m.buildUserPrompt(observation, timestep, timesteps)),
		},
		Model:               m.opts.Model,
		Temperature:         openai.Float(m.temperature()),
		MaxCompletionTokens: openai.Int(m.opts.MaxCompletionTokens),
	}

	resp, err := m.client.Chat.Completions.New(ctx, params)
	if err != nil {
		return nil, fmt.Errorf("openai api error: %w", err)
	}
	if len(resp.Choices) == 0 {
		return nil, fmt.Errorf("no choices returned")
	}

	idx, err := model.ParseActionIndex(resp.Choices[0].Message.Content, m.space.N)
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

// Info returns metadata describing this OpenAI policy.
func (m *Model) Info() model.Info {
	return model.Info{Name: m.opts.Model, Provider: "openai"}
}

// Snapshot implements model.Model. The policy holds no learnable state.
func (m *Model) Snapshot() ([]byte, error) { return nil, nil }

// Restore implements model.Model as a no-op.
func (m *Model) Restore([]byte) error { return nil }
