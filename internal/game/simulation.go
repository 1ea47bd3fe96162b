package game

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"time"

	"github.com/annel0/tile-adventure/internal/eventbus"
	"github.com/annel0/tile-adventure/internal/input"
	"github.com/annel0/tile-adventure/internal/logging"
	"github.com/annel0/tile-adventure/internal/metrics"
	"github.com/annel0/tile-adventure/internal/physics"
	"github.com/annel0/tile-adventure/internal/resolver"
	"github.com/annel0/tile-adventure/internal/vec"
	"github.com/annel0/tile-adventure/internal/world"
	"github.com/annel0/tile-adventure/internal/world/entity"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

const (
	eventSource = "sim"
	tracerName  = "github.com/annel0/tile-adventure/internal/game"
)

// TickReport — итог одного тика
type TickReport struct {
	Tick         uint64
	Hits         int
	Interactions int
	Despawned    []entity.Item
	PickedUp     []entity.Item
	Transitions  []resolver.Transition
	Portal       *entity.Portal
	Blocked      bool // движение отклонено коллайдером
}

// Passable сообщает, можно ли стоять в ячейке области
type Passable func(area *world.Area, cell vec.Vec2) bool

// Simulation продвигает один мир дискретными тиками в одном логическом потоке.
// Не потокобезопасна: коллабораторы рендера читают Snapshot между тиками.
type Simulation struct {
	area     *world.Area
	player   *entity.Player
	resolver *resolver.Resolver
	resOpts  []resolver.Option

	collider *physics.BoxCollider
	passable Passable

	bus     eventbus.EventBus
	metrics *metrics.SimMetrics
	tracer  trace.Tracer
	logger  *logging.Logger

	tick uint64
}

// Option настраивает симуляцию
type Option func(*Simulation)

// WithEventBus задаёт шину для уведомлений наблюдателей
func WithEventBus(bus eventbus.EventBus) Option {
	return func(s *Simulation) { s.bus = bus }
}

// WithMetrics подключает Prometheus-метрики
func WithMetrics(m *metrics.SimMetrics) Option {
	return func(s *Simulation) { s.metrics = m }
}

// WithLogger задаёт логгер
func WithLogger(l *logging.Logger) Option {
	return func(s *Simulation) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithTracer задаёт трассировщик
func WithTracer(t trace.Tracer) Option {
	return func(s *Simulation) {
		if t != nil {
			s.tracer = t
		}
	}
}

// WithCollider ограничивает движение игрока границами области и проходимыми ячейками.
// passable может быть nil: тогда проверяются только границы.
func WithCollider(c *physics.BoxCollider, passable Passable) Option {
	return func(s *Simulation) {
		s.collider = c
		s.passable = passable
	}
}

// WithResolverOptions передаёт опции резолверу
func WithResolverOptions(opts ...resolver.Option) Option {
	return func(s *Simulation) {
		s.resOpts = append(s.resOpts, opts...)
	}
}

// New создаёт симуляцию для области и игрока; игрок размещается в области, если ещё не там
func New(area *world.Area, player *entity.Player, opts ...Option) (*Simulation, error) {
	if area == nil || player == nil {
		return nil, fmt.Errorf("%w: area and player are required", world.ErrInvalidArgument)
	}
	if !area.Contains(player) {
		if err := area.AddItem(player); err != nil {
			return nil, fmt.Errorf("place player: %w", err)
		}
	}

	s := &Simulation{
		area:   area,
		player: player,
		tracer: otel.Tracer(tracerName),
		logger: logging.GetSimLogger(),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.resolver = resolver.New(area, s.resOpts...)
	s.resolver.RefreshAll()
	return s, nil
}

func (s *Simulation) Area() *world.Area            { return s.area }
func (s *Simulation) Player() *entity.Player       { return s.player }
func (s *Simulation) Resolver() *resolver.Resolver { return s.resolver }
func (s *Simulation) Tick() uint64                 { return s.tick }

// HandleInput делает симуляцию звеном цепочки ввода: мир забирает любой ввод,
// кроме Close, который уходит запасному обработчику (меню).
func (s *Simulation) HandleInput(ctx context.Context, in input.Intents) (input.Claim, error) {
	if in.Close {
		return input.Pass, nil
	}
	if _, err := s.Step(ctx, in); err != nil {
		return input.Claimed, err
	}
	return input.Claimed, nil
}

// Step выполняет один тик: движение, обновление кэшей, атака, взаимодействие,
// повторное обновление (удалённые предметы исчезают из кэшей), портал.
func (s *Simulation) Step(ctx context.Context, in input.Intents) (TickReport, error) {
	start := time.Now()
	s.tick++
	report := TickReport{Tick: s.tick}

	ctx, span := s.tracer.Start(ctx, "sim.Step", trace.WithAttributes(
		attribute.Int64("tick", int64(s.tick)),
		attribute.String("area", s.area.Name()),
	))
	defer span.End()

	if !in.Move.IsZero() && s.player.Alive() && s.area.Contains(s.player) {
		from := s.player.Position()
		if s.CanOccupy(from.Add(in.Move)) {
			if err := s.player.Move(in.Move); err != nil {
				return report, fmt.Errorf("tick %d move: %w", s.tick, err)
			}
			to := s.player.Position()
			logging.LogEntityMovement(s.logger, s.player.Name(), from.X, from.Y, to.X, to.Y)
		} else {
			report.Blocked = true
		}
	}

	before := s.area.Items()
	carried := s.player.InventoryLen()
	report.Transitions = append(report.Transitions, s.resolver.RefreshAll()...)

	// Ошибка атаки не отменяет взаимодействие: обе фазы отрабатывают, ошибки объединяются
	var attackErr, interactErr error
	if in.Attack && s.player.Alive() {
		report.Hits, attackErr = s.resolver.Attack(ctx, s.player)
	}
	if in.Interact && s.player.Alive() {
		report.Interactions, interactErr = s.resolver.Interact(ctx, s.player)
	}
	stepErr := errors.Join(attackErr, interactErr)

	if inv := s.player.InventoryItems(); len(inv) > carried {
		report.PickedUp = inv[carried:]
	}
	report.Despawned = removedSince(before, s.area, report.PickedUp)
	report.Transitions = append(report.Transitions, s.resolver.RefreshAll()...)
	report.Portal = s.resolver.RefreshPortal(s.player)

	s.publish(ctx, report)
	s.record(report, time.Since(start), stepErr)

	if stepErr != nil {
		span.RecordError(stepErr)
		span.SetStatus(codes.Error, "reaction failed")
		return report, fmt.Errorf("tick %d: %w", s.tick, stepErr)
	}
	return report, nil
}

// CanOccupy проверяет, может ли тело с коллайдером симуляции встать в pos активной области.
// Без коллайдера допустимо любое положение.
func (s *Simulation) CanOccupy(pos vec.Vec2Float) bool {
	if s.collider == nil {
		return true
	}
	area := s.area
	return physics.CanMoveToPosition(pos, s.collider, func(cell vec.Vec2) bool {
		if !cell.InBounds(area.Width(), area.Height()) {
			return false
		}
		return s.passable == nil || s.passable(area, cell)
	})
}

// ResolveAttack обновляет кэш актёра и проводит его атаку. Используется внешними
// коллабораторами (сценарии песочницы, ответные удары монстров), которые сами решают, когда атаковать.
func (s *Simulation) ResolveAttack(ctx context.Context, attacker entity.Attacker) (int, error) {
	s.resolver.Refresh(attacker)
	hits, err := s.resolver.Attack(ctx, attacker)
	if s.metrics != nil {
		s.metrics.Hits.Add(float64(hits))
		if err != nil {
			s.metrics.CallbackErrors.Inc()
		}
	}
	s.resolver.RefreshAll()
	return hits, err
}

// EnterArea переводит игрока в другую область и ставит его в pos.
// Это единственное внешнее структурное изменение "активной области".
func (s *Simulation) EnterArea(ctx context.Context, area *world.Area, pos vec.Vec2Float) error {
	if area == nil {
		return fmt.Errorf("%w: nil area", world.ErrInvalidArgument)
	}
	if s.area.Contains(s.player) {
		if err := s.area.RemoveItem(s.player); err != nil {
			return fmt.Errorf("leave %s: %w", s.area.Name(), err)
		}
	}
	s.player.AttackableItems().Clear()
	s.player.InteractableItems().Clear()
	s.player.InPortal = false
	s.player.SetPosition(pos)

	if err := area.AddItem(s.player); err != nil {
		return fmt.Errorf("enter %s: %w", area.Name(), err)
	}

	from := s.area.Name()
	s.area = area
	s.resolver.SetArea(area)
	s.resolver.RefreshAll()

	s.logger.Info("🚪 %s: %s -> %s (%.2f, %.2f)", s.player.Name(), from, area.Name(), pos.X, pos.Y)
	s.emit(ctx, eventbus.EventAreaEntered, map[string]interface{}{
		"from": from,
		"to":   area.Name(),
		"x":    pos.X,
		"y":    pos.Y,
	})
	return nil
}

// removedSince возвращает предметы, которые были в области до фазы реакций и исчезли.
// Подобранные предметы не исчезли, а перешли в инвентарь, поэтому не учитываются.
func removedSince(before []entity.Item, area *world.Area, picked []entity.Item) []entity.Item {
	var removed []entity.Item
	for _, item := range before {
		if area.Contains(item) || slices.Contains(picked, item) {
			continue
		}
		removed = append(removed, item)
	}
	return removed
}

var _ input.Handler = (*Simulation)(nil)
