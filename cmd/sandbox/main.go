package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/annel0/tile-adventure/internal/config"
	"github.com/annel0/tile-adventure/internal/eventbus"
	"github.com/annel0/tile-adventure/internal/game"
	"github.com/annel0/tile-adventure/internal/input"
	"github.com/annel0/tile-adventure/internal/logging"
	"github.com/annel0/tile-adventure/internal/metrics"
	"github.com/annel0/tile-adventure/internal/observability"
	"github.com/annel0/tile-adventure/internal/physics"
	"github.com/annel0/tile-adventure/internal/resolver"
	"github.com/annel0/tile-adventure/internal/vec"
	"github.com/annel0/tile-adventure/internal/world"
	"github.com/annel0/tile-adventure/internal/world/entity"
	"github.com/annel0/tile-adventure/internal/worldgen"
	"github.com/prometheus/client_golang/prometheus"
)

func main() {
	configPath := flag.String("config", "", "путь к YAML-конфигурации (по умолчанию GAME_CONFIG)")
	ticks := flag.Int("ticks", -1, "количество тиков (перекрывает sim.ticks)")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("❌ Ошибка загрузки конфигурации: %v", err)
	}
	if *ticks >= 0 {
		cfg.Sim.Ticks = *ticks
	}

	level, err := logging.ParseLevel(cfg.Log.Level)
	if err != nil {
		log.Fatalf("❌ %v", err)
	}
	if cfg.Log.Dir != "" {
		if err := logging.InitDefaultLogger("sandbox", cfg.Log.Dir); err != nil {
			log.Fatalf("❌ Ошибка инициализации логирования: %v", err)
		}
	}
	defer logging.CloseDefaultLogger()
	logging.GetLoggerManager().Configure(os.Stdout, level)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if cfg.Telemetry.Enabled {
		shutdown, err := observability.InitTelemetry(ctx, cfg.Telemetry)
		if err != nil {
			logging.Warn("трассировка не инициализирована: %v", err)
		} else {
			defer func() {
				if err := shutdown(context.Background()); err != nil {
					logging.Warn("остановка трассировки: %v", err)
				}
			}()
		}
	}

	// === МЕТРИКИ И СОБЫТИЯ ===
	reg := prometheus.NewRegistry()
	simMetrics, err := metrics.NewSimMetrics(reg)
	if err != nil {
		log.Fatalf("❌ %v", err)
	}
	if err := metrics.RegisterProcessCollectors(reg); err != nil {
		logging.Warn("метрики процесса недоступны: %v", err)
	}

	bus := eventbus.NewMemoryBus(cfg.Sim.BusCapacity)
	defer bus.Close()

	busMetrics, err := eventbus.NewMetricsExporter(bus, reg)
	if err != nil {
		log.Fatalf("❌ %v", err)
	}
	busMetrics.Start(time.Second)
	defer busMetrics.Stop()

	if _, err := eventbus.StartLoggingListener(bus, logging.GetComponentLogger("events")); err != nil {
		logging.Warn("журнал событий не подключён: %v", err)
	}

	if addr := cfg.Metrics.GetMetricsAddr(); addr != "" {
		srv := metrics.Serve(addr, reg, func(err error) {
			logging.Error("Ошибка Prometheus HTTP сервера: %v", err)
		})
		logging.Info("📈 Prometheus /metrics доступен по адресу %s", addr)
		defer func() {
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
			defer cancel()
			_ = srv.Shutdown(shutdownCtx)
		}()
	}

	// === МИР ===
	generated, err := worldgen.Generate(cfg.World)
	if err != nil {
		log.Fatalf("❌ Ошибка генерации мира: %v", err)
	}
	game.ApplyPlayerConfig(generated.Player, cfg.Player)

	simOpts := []game.Option{
		game.WithEventBus(bus),
		game.WithMetrics(simMetrics),
		game.WithResolverOptions(resolver.WithPortalRadius(cfg.Sim.PortalRadius)),
	}
	if cfg.Sim.ColliderSize > 0 {
		collider := physics.NewBoxCollider(cfg.Sim.ColliderSize, cfg.Sim.ColliderSize)
		simOpts = append(simOpts, game.WithCollider(collider, worldgen.Passable))
	}
	sim, err := game.New(generated.Area, generated.Player, simOpts...)
	if err != nil {
		log.Fatalf("❌ %v", err)
	}

	atlas := newAtlas(cfg.World)
	atlas.put(generated.Area)

	menuOpened := false
	chain := input.NewChain(sim, input.CloseHandler(func(ctx context.Context) error {
		menuOpened = true
		logging.Info("📜 Открыто главное меню")
		return nil
	}))

	logging.Info("🎮 Симуляция запущена: %d тиков, область %s", cfg.Sim.Ticks, sim.Area().Name())

	var interval time.Duration
	if cfg.Sim.TickRate > 0 {
		interval = time.Second / time.Duration(cfg.Sim.TickRate)
	}

	pilot := &autopilot{}
	for i := 0; i < cfg.Sim.Ticks && !menuOpened; i++ {
		if ctx.Err() != nil {
			break
		}

		intents := pilot.next(sim)
		if _, err := chain.Dispatch(ctx, intents); err != nil {
			logging.Error("❌ %v", err)
			break
		}

		retaliate(ctx, sim)

		if sim.Player().Dead() {
			logging.Info("💀 Игрок погиб на тике %d", sim.Tick())
			break
		}
		if err := followPortal(ctx, sim, atlas); err != nil {
			logging.Error("❌ %v", err)
			break
		}

		if interval > 0 {
			select {
			case <-ctx.Done():
			case <-time.After(interval):
			}
		}
	}

	busMetrics.Sync()
	snap := sim.Snapshot()
	logging.Info("🏁 Тик %d, область %s: здоровье %d/%d, инвентарь %d, предметов в области %d",
		snap.Tick, snap.Area, snap.Player.Hitpoints, snap.Player.MaxHitpoints, len(snap.Player.Inventory), len(snap.Items))
}

// retaliate — сценарий песочницы: монстры, рядом с которыми стоит игрок, бьют в ответ раз в 10 тиков
func retaliate(ctx context.Context, sim *game.Simulation) {
	if sim.Tick()%10 != 0 {
		return
	}
	for _, item := range sim.Area().Items() {
		monster, ok := item.(*entity.Monster)
		if !ok || !monster.AttackableItems().Has(sim.Player()) {
			continue
		}
		if _, err := sim.ResolveAttack(ctx, monster); err != nil {
			logging.Warn("ответный удар %s: %v", monster.Name(), err)
		}
	}
}

// followPortal — коллаборатор переходов: если игрок стоит в портале, меняет область
func followPortal(ctx context.Context, sim *game.Simulation, atlas *atlas) error {
	p := sim.Player()
	if !p.InPortal {
		return nil
	}
	portal := sim.Resolver().RefreshPortal(p)
	if portal == nil {
		return nil
	}
	dest, err := atlas.get(portal.Destination)
	if err != nil {
		return err
	}
	// Точка выхода может оказаться в воде: переносим её на ближайшую сушу
	target := vec.FromVec2(worldgen.NearestWalkable(dest, portal.Target.Cell()))
	return sim.EnterArea(ctx, dest, target)
}

// atlas хранит уже построенные области и лениво генерирует новые
type atlas struct {
	base  config.WorldConfig
	areas map[string]*world.Area
}

func newAtlas(base config.WorldConfig) *atlas {
	return &atlas{base: base, areas: make(map[string]*world.Area)}
}

func (a *atlas) put(area *world.Area) {
	a.areas[area.Name()] = area
}

func (a *atlas) get(name string) (*world.Area, error) {
	if area, ok := a.areas[name]; ok {
		return area, nil
	}
	cfg := a.base
	cfg.Name = name
	cfg.Seed = a.base.Seed + int64(len(a.areas))*7919
	cfg.PortalTo = a.base.Name
	area, err := worldgen.GenerateArea(cfg)
	if err != nil {
		return nil, err
	}
	a.put(area)
	return area, nil
}
