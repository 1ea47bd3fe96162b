package config

import (
	"fmt"
	"math"
	"os"

	"gopkg.in/yaml.v3"
)

// Config корневая структура конфигурации симуляции.
type Config struct {
	Player    PlayerConfig    `yaml:"player"`
	World     WorldConfig     `yaml:"world"`
	Sim       SimConfig       `yaml:"sim"`
	Log       LogConfig       `yaml:"log"`
	Metrics   MetricsConfig   `yaml:"metrics"`
	Telemetry TelemetryConfig `yaml:"telemetry"`
}

// PlayerConfig переопределяет значения игрока по умолчанию. Нулевые поля не применяются.
type PlayerConfig struct {
	MaxHitpoints     int     `yaml:"max_hitpoints"`
	AttackRange      float64 `yaml:"attack_range"`
	AttackValue      int     `yaml:"attack_value"`
	InteractionRange float64 `yaml:"interaction_range"`
}

type WorldConfig struct {
	Name     string  `yaml:"name"`
	Width    int     `yaml:"width"`
	Height   int     `yaml:"height"`
	Layers   int     `yaml:"layers"`
	Seed     int64   `yaml:"seed"`
	Index    string  `yaml:"index"` // linear | grid
	CellSize float64 `yaml:"cell_size"`
	Monsters int     `yaml:"monsters"`
	Goodies  int     `yaml:"goodies"`
	Portal   bool    `yaml:"portal"`
	PortalTo string  `yaml:"portal_to"`
}

type SimConfig struct {
	Ticks        int     `yaml:"ticks"`
	TickRate     int     `yaml:"tick_rate"` // тиков в секунду; 0 — без ожидания
	PortalRadius float64 `yaml:"portal_radius"`
	BusCapacity  int     `yaml:"bus_capacity"`
	ColliderSize float64 `yaml:"collider_size"` // 0 — движение без коллизий
}

type LogConfig struct {
	Level string `yaml:"level"`
	Dir   string `yaml:"dir"` // пусто — только консоль
}

type MetricsConfig struct {
	Addr string `yaml:"addr"` // пусто — HTTP-эндпоинт не поднимается
}

// TelemetryConfig включает экспорт трассировок OTLP
type TelemetryConfig struct {
	Enabled  bool   `yaml:"enabled"`
	Service  string `yaml:"service"`
	Endpoint string `yaml:"endpoint"` // host:port; пусто — localhost:4318
	Insecure bool   `yaml:"insecure"`
}

// Индексы области
const (
	IndexLinear = "linear"
	IndexGrid   = "grid"
)

// Default возвращает конфигурацию по умолчанию
func Default() *Config {
	return &Config{
		World: WorldConfig{
			Name:     "meadow",
			Width:    32,
			Height:   24,
			Layers:   3,
			Seed:     12345,
			Index:    IndexLinear,
			CellSize: 4,
			Monsters: 4,
			Goodies:  6,
			Portal:   true,
			PortalTo: "cave",
		},
		Sim: SimConfig{
			Ticks:        120,
			TickRate:     0,
			PortalRadius: 0.5,
			BusCapacity:  256,
			ColliderSize: 0.6,
		},
		Log: LogConfig{
			Level: "info",
		},
		Telemetry: TelemetryConfig{
			Service:  "tile-adventure",
			Insecure: true,
		},
	}
}

// Validate проверяет согласованность значений
func (c *Config) Validate() error {
	if c.World.Index != IndexLinear && c.World.Index != IndexGrid {
		return fmt.Errorf("world.index: unknown index %q", c.World.Index)
	}
	if c.World.Layers < 0 {
		return fmt.Errorf("world.layers: must be >= 0, got %d", c.World.Layers)
	}
	if !finite(c.Player.AttackRange) || !finite(c.Player.InteractionRange) {
		return fmt.Errorf("player: ranges must be finite")
	}
	if c.Player.AttackRange < 0 || c.Player.InteractionRange < 0 {
		return fmt.Errorf("player: ranges must be >= 0")
	}
	if !finite(c.World.CellSize) || !finite(c.Sim.PortalRadius) {
		return fmt.Errorf("world.cell_size and sim.portal_radius must be finite")
	}
	if c.Player.AttackValue < 0 || c.Player.MaxHitpoints < 0 {
		return fmt.Errorf("player: attack_value and max_hitpoints must be >= 0")
	}
	if c.Sim.Ticks < 0 || c.Sim.TickRate < 0 {
		return fmt.Errorf("sim: ticks and tick_rate must be >= 0")
	}
	if c.Sim.ColliderSize < 0 || c.Sim.ColliderSize > 1 {
		return fmt.Errorf("sim.collider_size: must be in [0, 1], got %v", c.Sim.ColliderSize)
	}
	return nil
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

// GetMetricsAddr возвращает адрес метрик с приоритетом: config -> env
func (m *MetricsConfig) GetMetricsAddr() string {
	if m.Addr != "" {
		return m.Addr
	}
	return os.Getenv("GAME_METRICS_ADDR")
}

// Load читает YAML файл конфигурации поверх значений по умолчанию.
// Если path == "", пытается прочитать из ENV GAME_CONFIG, иначе возвращает Default().
func Load(path string) (*Config, error) {
	cfg := Default()

	if path == "" {
		path = os.Getenv("GAME_CONFIG")
		if path == "" {
			return cfg, nil // конфиг не задан — использовать дефолты
		}
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}
