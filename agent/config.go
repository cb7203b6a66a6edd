package agent

import (
	"fmt"
	"os"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

// Config holds the construction-time settings shared by all agents. Fields
// are fixed at construction; agents never mutate their config afterwards.
type Config struct {
	// LogDir is the parent directory experiment directories are created in.
	LogDir string `yaml:"log_dir"`

	// ExperimentName overrides the generated "<timestamp>_<agent>" directory
	// name when set.
	ExperimentName string `yaml:"experiment_name"`

	// Seed seeds agent-owned randomness (exploration, sampling).
	Seed int64 `yaml:"seed"`

	// RewardWindow is the number of recent rewards aggregated into the
	// per-step reward scalars. Zero selects the default.
	RewardWindow int `yaml:"reward_window"`

	// Extra carries algorithm-specific settings opaque to Base.
	Extra map[string]any `yaml:"extra"`
}

// DefaultConfig returns the baseline configuration.
func DefaultConfig() Config {
	return Config{
		LogDir:       "runs",
		RewardWindow: 100,
	}
}

// LoadConfig reads a YAML config file, applying defaults for unset fields.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}
	if cfg.LogDir == "" {
		cfg.LogDir = "runs"
	}
	if cfg.RewardWindow <= 0 {
		cfg.RewardWindow = 100
	}
	return cfg, nil
}

// render writes the config as an indented tree, one "|--" line per setting,
// recursing one level into Extra.
func (c Config) render(b *strings.Builder) {
	fmt.Fprintf(b, "\n  |-- log_dir: %s", c.LogDir)
	if c.ExperimentName != "" {
		fmt.Fprintf(b, "\n  |-- experiment_name: %s", c.ExperimentName)
	}
	fmt.Fprintf(b, "\n  |-- seed: %d", c.Seed)
	fmt.Fprintf(b, "\n  |-- reward_window: %d", c.RewardWindow)
	if len(c.Extra) == 0 {
		return
	}
	b.WriteString("\n  |-- extra")
	keys := make([]string, 0, len(c.Extra))
	for k := range c.Extra {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		fmt.Fprintf(b, "\n  |     |-- %s: %v", k, c.Extra[k])
	}
}
