package game

import (
	"github.com/annel0/tile-adventure/internal/config"
	"github.com/annel0/tile-adventure/internal/world/entity"
)

// ApplyPlayerConfig переопределяет значения игрока по умолчанию ненулевыми полями конфигурации
func ApplyPlayerConfig(p *entity.Player, c config.PlayerConfig) {
	if c.MaxHitpoints > 0 {
		p.SetMaxHitpoints(c.MaxHitpoints)
		p.SetHitpoints(c.MaxHitpoints)
	}
	if c.AttackRange > 0 {
		p.SetAttackRange(c.AttackRange)
	}
	if c.AttackValue > 0 {
		p.SetAttackValue(c.AttackValue)
	}
	if c.InteractionRange > 0 {
		p.SetInteractionRange(c.InteractionRange)
	}
}
