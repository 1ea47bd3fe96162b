package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "game.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestLoad_DefaultsWithoutPath(t *testing.T) {
	t.Setenv("GAME_CONFIG", "")

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
	assert.NoError(t, cfg.Validate())
}

func TestLoad_OverridesDefaults(t *testing.T) {
	path := writeConfig(t, `
player:
  attack_value: 3
world:
  width: 10
  index: grid
  cell_size: 2
sim:
  ticks: 5
telemetry:
  enabled: true
  endpoint: collector:4318
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 3, cfg.Player.AttackValue)
	assert.Equal(t, 10, cfg.World.Width)
	assert.Equal(t, 24, cfg.World.Height, "незаданные поля остаются по умолчанию")
	assert.Equal(t, IndexGrid, cfg.World.Index)
	assert.Equal(t, 2.0, cfg.World.CellSize)
	assert.Equal(t, 5, cfg.Sim.Ticks)
	assert.Equal(t, 0.6, cfg.Sim.ColliderSize)
	assert.True(t, cfg.Telemetry.Enabled)
	assert.Equal(t, "collector:4318", cfg.Telemetry.Endpoint)
	assert.Equal(t, "tile-adventure", cfg.Telemetry.Service)
}

func TestLoad_FromEnv(t *testing.T) {
	path := writeConfig(t, "world:\n  name: cave\n")
	t.Setenv("GAME_CONFIG", path)

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "cave", cfg.World.Name)
}

func TestLoad_Errors(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)

	_, err = Load(writeConfig(t, "world: [1, 2"))
	assert.Error(t, err)

	_, err = Load(writeConfig(t, "world:\n  index: quadtree\n"))
	assert.ErrorContains(t, err, "world.index")

	_, err = Load(writeConfig(t, "player:\n  attack_range: -1\n"))
	assert.Error(t, err)

	_, err = Load(writeConfig(t, "sim:\n  collider_size: 1.5\n"))
	assert.ErrorContains(t, err, "sim.collider_size")

	_, err = Load(writeConfig(t, "player:\n  attack_range: .inf\n"))
	assert.ErrorContains(t, err, "finite")

	_, err = Load(writeConfig(t, "player:\n  interaction_range: .nan\n"))
	assert.ErrorContains(t, err, "finite")
}

func TestMetricsAddr_EnvFallback(t *testing.T) {
	t.Setenv("GAME_METRICS_ADDR", ":9100")

	m := MetricsConfig{}
	assert.Equal(t, ":9100", m.GetMetricsAddr())

	m.Addr = ":2112"
	assert.Equal(t, ":2112", m.GetMetricsAddr())
}
