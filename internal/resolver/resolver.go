package resolver

import (
	"context"
	"errors"
	"fmt"

	"github.com/annel0/tile-adventure/internal/logging"
	"github.com/annel0/tile-adventure/internal/world"
	"github.com/annel0/tile-adventure/internal/world/entity"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// DefaultPortalRadius — расстояние, на котором игрок считается стоящим в портале
const DefaultPortalRadius = 0.5

const tracerName = "github.com/annel0/tile-adventure/internal/resolver"

// Resolver поддерживает кэши кандидатов у атакующих и взаимодействующих
// и превращает намерения (атака, взаимодействие) в вызовы реакций целей.
type Resolver struct {
	area         *world.Area
	portalRadius float64
	tracer       trace.Tracer
	logger       *logging.Logger
}

// Option настраивает резолвер
type Option func(*Resolver)

// WithPortalRadius задаёт радиус срабатывания портала
func WithPortalRadius(r float64) Option {
	return func(rs *Resolver) {
		if r >= 0 {
			rs.portalRadius = r
		}
	}
}

// WithTracer задаёт трассировщик OpenTelemetry
func WithTracer(t trace.Tracer) Option {
	return func(rs *Resolver) {
		if t != nil {
			rs.tracer = t
		}
	}
}

// WithLogger задаёт логгер
func WithLogger(l *logging.Logger) Option {
	return func(rs *Resolver) {
		if l != nil {
			rs.logger = l
		}
	}
}

// New создаёт резолвер для области
func New(area *world.Area, opts ...Option) *Resolver {
	rs := &Resolver{
		area:         area,
		portalRadius: DefaultPortalRadius,
		tracer:       otel.Tracer(tracerName),
		logger:       logging.GetResolverLogger(),
	}
	for _, opt := range opts {
		opt(rs)
	}
	return rs
}

// Area возвращает активную область
func (rs *Resolver) Area() *world.Area {
	return rs.area
}

// SetArea переключает резолвер на другую область (переход через портал)
func (rs *Resolver) SetArea(area *world.Area) {
	rs.area = area
}

// Refresh пересчитывает кэши кандидатов одного актёра
func (rs *Resolver) Refresh(actor entity.Item) []Transition {
	rs.area.Reindex()
	return rs.refresh(actor)
}

// RefreshAll пересчитывает кэши всех атакующих и взаимодействующих в области
func (rs *Resolver) RefreshAll() []Transition {
	rs.area.Reindex()

	var transitions []Transition
	for _, item := range rs.area.Items() {
		transitions = append(transitions, rs.refresh(item)...)
	}
	return transitions
}

func (rs *Resolver) refresh(actor entity.Item) []Transition {
	var transitions []Transition

	if attacker, ok := actor.(entity.Attacker); ok {
		next := rs.candidates(attacker, attacker.AttackRange(), isAttackable)
		transitions = append(transitions, replace(attacker, attacker.AttackableItems(), next, RelevanceAttack)...)
	}
	if interactor, ok := actor.(entity.Interactor); ok {
		next := rs.candidates(interactor, interactor.InteractionRange(), isInteractable)
		transitions = append(transitions, replace(interactor, interactor.InteractableItems(), next, RelevanceInteract)...)
	}
	return transitions
}

// candidates возвращает предметы области в радиусе r от актёра, удовлетворяющие роли.
// Актёр вне области кандидатов не имеет.
func (rs *Resolver) candidates(actor entity.Item, r float64, accept func(entity.Item) bool) []entity.Item {
	if r <= 0 || !rs.area.Contains(actor) {
		return nil
	}
	inRange := rs.area.ItemsInRange(actor.Position(), r)
	out := make([]entity.Item, 0, len(inRange))
	for _, item := range inRange {
		if item == actor || !accept(item) {
			continue
		}
		out = append(out, item)
	}
	return out
}

// RefreshPortal выставляет InPortal и возвращает портал, в котором стоит игрок
func (rs *Resolver) RefreshPortal(p *entity.Player) *entity.Portal {
	p.InPortal = false
	if !rs.area.Contains(p) {
		return nil
	}
	for _, item := range rs.area.ItemsInRange(p.Position(), rs.portalRadius) {
		if portal, ok := item.(*entity.Portal); ok {
			p.InPortal = true
			return portal
		}
	}
	return nil
}

// Attack вызывает OnHit ровно один раз для каждого предмета в AttackableItems.
// Порядок обхода не определён. Цели, покинувшие область во время этой же атаки,
// пропускаются. Ошибки реакций не маскируются: все они возвращаются вызывающему.
// Возвращает количество вызванных реакций.
func (rs *Resolver) Attack(ctx context.Context, attacker entity.Attacker) (int, error) {
	_, span := rs.tracer.Start(ctx, "resolver.Attack", trace.WithAttributes(
		attribute.String("attacker", attacker.Name()),
		attribute.Int("candidates", attacker.AttackableItems().Len()),
	))
	defer span.End()

	if !rs.area.Contains(attacker) {
		rs.logger.Debug("атака %s не выполнена: актёр вне области", attacker.Name())
		return 0, nil
	}

	var errs []error
	hits := 0
	for _, item := range attacker.AttackableItems().Slice() {
		if !rs.area.Contains(item) {
			continue
		}
		target, ok := item.(entity.Attackable)
		if !ok {
			continue
		}
		hits++
		if err := target.OnHit(rs.area, attacker, target); err != nil {
			errs = append(errs, fmt.Errorf("%s hit %s: %w", attacker.Name(), target.Name(), err))
		}
	}

	span.SetAttributes(attribute.Int("hits", hits))
	err := errors.Join(errs...)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "on hit failed")
		rs.logger.Error("ошибка реакции на попадание: %v", err)
	}
	rs.logger.Trace("%s атакует: %d попаданий", attacker.Name(), hits)
	return hits, err
}

// Interact вызывает OnInteract ровно один раз для каждого предмета в InteractableItems
func (rs *Resolver) Interact(ctx context.Context, actor entity.Interactor) (int, error) {
	_, span := rs.tracer.Start(ctx, "resolver.Interact", trace.WithAttributes(
		attribute.String("actor", actor.Name()),
		attribute.Int("candidates", actor.InteractableItems().Len()),
	))
	defer span.End()

	if !rs.area.Contains(actor) {
		rs.logger.Debug("взаимодействие %s не выполнено: актёр вне области", actor.Name())
		return 0, nil
	}

	var errs []error
	count := 0
	for _, item := range actor.InteractableItems().Slice() {
		if !rs.area.Contains(item) {
			continue
		}
		target, ok := item.(entity.Interactable)
		if !ok {
			continue
		}
		count++
		if err := target.OnInteract(rs.area, actor, target); err != nil {
			errs = append(errs, fmt.Errorf("%s interact %s: %w", actor.Name(), target.Name(), err))
		}
	}

	span.SetAttributes(attribute.Int("interactions", count))
	err := errors.Join(errs...)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "on interact failed")
		rs.logger.Error("ошибка реакции на взаимодействие: %v", err)
	}
	return count, err
}

func isAttackable(item entity.Item) bool {
	_, ok := item.(entity.Attackable)
	return ok
}

func isInteractable(item entity.Item) bool {
	_, ok := item.(entity.Interactable)
	return ok
}
