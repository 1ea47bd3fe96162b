package game

import (
	"time"

	"github.com/annel0/tile-adventure/internal/resolver"
)

// record обновляет метрики и пишет итог тика в лог
func (s *Simulation) record(report TickReport, elapsed time.Duration, stepErr error) {
	if s.metrics != nil {
		s.metrics.ObserveTick(elapsed)
		s.metrics.Hits.Add(float64(report.Hits))
		s.metrics.Interactions.Add(float64(report.Interactions))
		s.metrics.Despawns.Add(float64(len(report.Despawned)))
		s.metrics.Items.Set(float64(s.area.Len()))
		s.metrics.Candidates.WithLabelValues(resolver.RelevanceAttack.String()).
			Set(float64(s.player.AttackableItems().Len()))
		s.metrics.Candidates.WithLabelValues(resolver.RelevanceInteract.String()).
			Set(float64(s.player.InteractableItems().Len()))
		for _, t := range report.Transitions {
			s.metrics.Transitions.WithLabelValues(t.Relevance.String(), t.Kind.String()).Inc()
		}
		if stepErr != nil {
			s.metrics.CallbackErrors.Inc()
		}
	}

	if report.Hits > 0 || report.Interactions > 0 || len(report.Despawned) > 0 {
		s.logger.Debug("тик %d: попаданий=%d взаимодействий=%d исчезло=%d",
			report.Tick, report.Hits, report.Interactions, len(report.Despawned))
	}
}
