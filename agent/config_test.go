package agent

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	assert.Equal(t, "runs", cfg.LogDir)
	assert.Equal(t, 100, cfg.RewardWindow)
}

func TestLoadConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "agent.yaml")
	data := []byte("log_dir: experiments\nseed: 9\nextra:\n  epsilon: 0.05\n")
	require.NoError(t, os.WriteFile(path, data, 0o644))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, "experiments", cfg.LogDir)
	assert.Equal(t, int64(9), cfg.Seed)
	assert.Equal(t, 100, cfg.RewardWindow, "unset fields keep defaults")
	assert.Equal(t, 0.05, cfg.Extra["epsilon"])
}

func TestLoadConfigMissingFile(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestLoadConfigInvalidYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte("log_dir: [unclosed"), 0o644))

	_, err := LoadConfig(path)
	assert.Error(t, err)
}

func TestConfigRender(t *testing.T) {
	cfg := Config{
		LogDir:       "runs",
		Seed:         3,
		RewardWindow: 50,
		Extra:        map[string]any{"gamma": 0.99, "alpha": 0.1},
	}

	var b strings.Builder
	cfg.render(&b)
	out := b.String()

	assert.Contains(t, out, "|-- log_dir: runs")
	assert.Contains(t, out, "|-- seed: 3")
	assert.Contains(t, out, "|-- reward_window: 50")
	// Extra keys render sorted.
	alpha := strings.Index(out, "alpha")
	gamma := strings.Index(out, "gamma")
	assert.True(t, alpha >= 0 && gamma >= 0 && alpha < gamma)
}
