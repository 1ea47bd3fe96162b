package game

import (
	"context"
	"strconv"

	"github.com/annel0/tile-adventure/internal/eventbus"
	"github.com/annel0/tile-adventure/internal/world/entity"
)

// publish рассылает наблюдателям копии данных тика
func (s *Simulation) publish(ctx context.Context, report TickReport) {
	if s.bus == nil {
		return
	}

	for _, t := range report.Transitions {
		s.emit(ctx, eventbus.EventRelevanceChanged, map[string]interface{}{
			"actor":     t.Actor.ID().String(),
			"item":      t.Item.ID().String(),
			"name":      t.Item.Name(),
			"relevance": t.Relevance.String(),
			"kind":      t.Kind.String(),
		})
	}
	for _, item := range report.Despawned {
		s.emit(ctx, eventbus.EventItemDespawned, itemPayload(item))
	}
	for _, item := range report.PickedUp {
		s.emit(ctx, eventbus.EventItemPickedUp, itemPayload(item))
	}
	if report.Hits > 0 {
		s.emit(ctx, eventbus.EventItemHit, map[string]interface{}{
			"attacker": s.player.Name(),
			"hits":     report.Hits,
		})
	}
	if report.Portal != nil {
		s.emit(ctx, eventbus.EventPortalEntered, map[string]interface{}{
			"destination": report.Portal.Destination,
			"x":           report.Portal.Target.X,
			"y":           report.Portal.Target.Y,
		})
	}
	s.emit(ctx, eventbus.EventTick, map[string]interface{}{
		"hits":         report.Hits,
		"interactions": report.Interactions,
		"items":        s.area.Len(),
	})
}

// emit публикует событие; ошибки шины не прерывают тик
func (s *Simulation) emit(ctx context.Context, eventType string, payload map[string]interface{}) {
	if s.bus == nil {
		return
	}
	ev, err := eventbus.NewEnvelope(eventSource, eventType, payload)
	if err != nil {
		s.logger.Warn("событие %s не собрано: %v", eventType, err)
		return
	}
	ev.CorrelationID = strconv.FormatUint(s.tick, 10)
	if err := s.bus.Publish(ctx, ev); err != nil {
		s.logger.Warn("событие %s не опубликовано: %v", eventType, err)
	}
}

func itemPayload(item entity.Item) map[string]interface{} {
	pos := item.Position()
	return map[string]interface{}{
		"id":      item.ID().String(),
		"name":    item.Name(),
		"texture": item.Texture(),
		"x":       pos.X,
		"y":       pos.Y,
	}
}
